package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a configuration with defaults applied.
func Validate(cfg *Config) error {
	if err := validateBackupSuffix(cfg.BackupSuffix); err != nil {
		return err
	}
	if err := validateCompiler(cfg.Compiler); err != nil {
		return err
	}
	return validateLogLevel(cfg.LogLevel())
}

func validateBackupSuffix(suffix string) error {
	if suffix == "" {
		return &ValidationError{Field: "backup_suffix", Message: "must not be empty"}
	}
	if strings.ContainsAny(suffix, `/\`) {
		return &ValidationError{Field: "backup_suffix", Message: "must not contain a path separator"}
	}
	return nil
}

func validateCompiler(cc *CompilerConfig) error {
	if cc == nil {
		return nil
	}
	if strings.TrimSpace(cc.Program) == "" {
		return &ValidationError{Field: "compiler.program", Message: "is required"}
	}
	for key := range cc.Env {
		if key == "" || strings.Contains(key, "=") {
			return &ValidationError{Field: "compiler.env", Message: fmt.Sprintf("invalid variable name %q", key)}
		}
	}
	return nil
}

func validateLogLevel(level string) error {
	if level == "" {
		return nil
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(level)); err != nil {
		return &ValidationError{Field: "log.level", Message: fmt.Sprintf("unknown level %q", level)}
	}
	return nil
}
