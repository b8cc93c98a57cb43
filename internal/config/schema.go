// Package config provides loading and validation for selfbuild configuration files.
package config

// Config represents a selfbuild configuration file.
type Config struct {
	Toolchain      string          `json:"toolchain,omitempty"`
	Compiler       *CompilerConfig `json:"compiler,omitempty"`
	BackupSuffix   string          `json:"backup_suffix,omitempty"`
	Lock           *bool           `json:"lock,omitempty"`
	ReplaceProcess bool            `json:"replace_process,omitempty"`
	Log            *LogConfig      `json:"log,omitempty"`
}

// CompilerConfig defines a custom compiler invocation.
type CompilerConfig struct {
	Program     string            `json:"program"`
	Args        []string          `json:"args,omitempty"` // Template with {source} and {output}
	Env         map[string]string `json:"env,omitempty"`
	InSourceDir bool              `json:"in_source_dir,omitempty"`
}

// LogConfig configures diagnostic logging.
type LogConfig struct {
	Level string `json:"level,omitempty"`
}

// LockEnabled reports whether rebuilds take the rebuild lock.
func (c *Config) LockEnabled() bool {
	return c.Lock == nil || *c.Lock
}

// LogLevel returns the configured log level, or "" when unset.
func (c *Config) LogLevel() string {
	if c.Log == nil {
		return ""
	}
	return c.Log.Level
}
