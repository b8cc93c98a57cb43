package config

import (
	"os"
	"strconv"
)

// Environment variables overriding file configuration.
const (
	EnvToolchain = "SELFBUILD_TOOLCHAIN"
	EnvLock      = "SELFBUILD_LOCK"
	EnvLogLevel  = "SELFBUILD_LOG_LEVEL"
)

// ApplyEnv overrides cfg with any selfbuild environment variables that are set.
func ApplyEnv(cfg *Config) error {
	if v := os.Getenv(EnvToolchain); v != "" {
		cfg.Toolchain = v
		// A named toolchain from the environment beats a compiler section.
		cfg.Compiler = nil
	}
	if v := os.Getenv(EnvLock); v != "" {
		lock, err := strconv.ParseBool(v)
		if err != nil {
			return &ValidationError{Field: EnvLock, Message: "must be a boolean"}
		}
		cfg.Lock = &lock
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		if cfg.Log == nil {
			cfg.Log = &LogConfig{}
		}
		cfg.Log.Level = v
		return validateLogLevel(v)
	}
	return nil
}
