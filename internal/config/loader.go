package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked up in the working directory.
const DefaultConfigFile = ".hotspot-map.yaml"

// FindConfigFile searches for a configuration file in the following order:
//  1. configPath, when set
//  2. .hotspot-map.yaml in the current directory
//  3. $XDG_CONFIG_HOME/hotspot-map/config.yaml
//
// It returns "" when nothing is found. An explicit configPath that does not
// exist yields ErrConfigNotFound.
func FindConfigFile(configPath string) (string, error) {
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return "", fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return configPath, nil
	}

	for _, candidate := range []string{DefaultConfigFile, XDGConfigFile()} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", nil
}

// LoadFile overlays the YAML file at path onto cfg. Keys absent from the file
// keep their current values; unknown keys are an error.
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

// Load returns Default overlaid by the config file FindConfigFile selects,
// and the path used ("" when none).
func Load(configPath string) (*Config, string, error) {
	cfg := Default()

	path, err := FindConfigFile(configPath)
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		return cfg, "", nil
	}

	if err := LoadFile(cfg, path); err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}
