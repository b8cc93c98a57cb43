package config

// Default configuration values.
const (
	DefaultBackupSuffix = ".old"
	DefaultLock         = true
)

// Default returns the configuration used when no file is found.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults fills in default values for unset configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.BackupSuffix == "" {
		cfg.BackupSuffix = DefaultBackupSuffix
	}
	if cfg.Lock == nil {
		lock := DefaultLock
		cfg.Lock = &lock
	}
	if cfg.Log == nil {
		cfg.Log = &LogConfig{}
	}
}
