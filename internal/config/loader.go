package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "colorswitch.yaml"

// Load loads the game configuration.
// Search order: customPath -> ~/.colorswitch/configs/colorswitch.yaml ->
// ./configs/colorswitch.yaml -> embedded default.
// Values missing from a file keep their defaults.
func Load(customPath string) (ColorSwitchConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return ColorSwitchConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return ColorSwitchConfig{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	candidates := []string{filepath.Join("configs", configFile)}
	if userPath := userConfigPath(configFile); userPath != "" {
		candidates = append([]string{userPath}, candidates...)
	}
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parse(data); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	if cfg, err := parse(defaultColorSwitchYAML); err == nil {
		return cfg, nil
	}
	return DefaultColorSwitchConfig(), nil
}

// parse decodes YAML on top of the hard-coded defaults.
func parse(data []byte) (ColorSwitchConfig, error) {
	cfg := DefaultColorSwitchConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ColorSwitchConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".colorswitch", "configs", filename)
}
