package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFileName = "spikes.yaml"

// Load loads the spike arena configuration and validates it.
// Search order: customPath -> ~/.spikegame/configs/spikes.yaml -> ./configs/spikes.yaml -> embedded default.
// Keys missing from a file keep their default values.
func Load(customPath string) (SpikesConfig, error) {
	cfg := embeddedDefault()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	for _, path := range []string{userConfigPath(configFileName), filepath.Join("configs", configFileName)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := embeddedDefault()
		if err := yaml.Unmarshal(data, &candidate); err != nil {
			continue
		}
		return candidate, candidate.Validate()
	}

	return cfg, cfg.Validate()
}

// Marshal renders the configuration as YAML.
func Marshal(cfg SpikesConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: cannot encode: %w", err)
	}
	return data, nil
}

// embeddedDefault parses the embedded YAML, falling back to the hard-coded defaults.
func embeddedDefault() SpikesConfig {
	var cfg SpikesConfig
	if err := yaml.Unmarshal(defaultSpikesYAML, &cfg); err != nil {
		return DefaultSpikesConfig()
	}
	return cfg
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".spikegame", "configs", filename)
}
