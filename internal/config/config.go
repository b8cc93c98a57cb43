package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/AndreyAkinshin/selfbuild/internal/schema"
)

// FileNames lists the config file names searched for, in order of preference.
var FileNames = []string{
	"selfbuild.yaml",
	"selfbuild.yml",
	"selfbuild.toml",
	"selfbuild.json",
}

// ErrNotFound is returned when no config file exists in a directory or any parent.
var ErrNotFound = errors.New("no selfbuild config file found (or any parent up to the root)")

// Discover walks up from startDir until it finds one of FileNames.
func Discover(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", ErrNotFound
		}
		dir = parent
	}
}

// Load reads, validates and decodes a config file. The format is chosen from
// the file extension. Unknown fields produce warnings instead of errors.
func Load(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data, formatOf(path))
}

// LoadFrom loads the config file discovered from startDir, or the defaults
// when there is none.
func LoadFrom(startDir string) (*Config, []string, error) {
	path, err := Discover(startDir)
	if errors.Is(err, ErrNotFound) {
		return Default(), nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return Load(path)
}

// Format identifies a config file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

func formatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".json":
		return FormatJSON
	default:
		return FormatYAML
	}
}

// Parse decodes config data of the given format, applies defaults and validates it.
func Parse(data []byte, format Format) (*Config, []string, error) {
	jsonData, err := toJSON(data, format)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := schema.ValidateConfig(jsonData); err != nil {
		return nil, nil, err
	}

	cfg, warnings, err := LoadWithWarnings(jsonData)
	if err != nil {
		return nil, nil, err
	}

	applyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, warnings, err
	}
	return cfg, warnings, nil
}

// toJSON normalises every supported format to JSON so schema validation and
// unknown-field detection only deal with one representation.
func toJSON(data []byte, format Format) ([]byte, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []byte("{}"), nil
	}

	var doc any
	switch format {
	case FormatJSON:
		return data, nil
	case FormatTOML:
		var m map[string]any
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, err
		}
		doc = m
	default:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		if doc == nil {
			return []byte("{}"), nil
		}
	}

	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("config keys must be strings: %w", err)
	}
	return out, nil
}
