package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

var (
	homePath       string
	configHomePath string
	stateHomePath  string
)

type Config struct {
	// Path to the source image
	Source string `yaml:"source,omitempty" json:"source,omitempty"`
	// Directory the icons are written into
	Out string `yaml:"out,omitempty" json:"out,omitempty"`
	// How much larger than the target the content is rendered before cropping
	ScaleFactor float64 `yaml:"scaleFactor,omitempty" json:"scaleFactor,omitempty"`
	// Custom size table; empty means the built-in Apple app icon set
	Sizes []SizeEntry `yaml:"sizes,omitempty" json:"sizes,omitempty"`
	// command run on each generated file, e.g. a PNG optimizer
	OptimizeCommand string `yaml:"optimizeCommand,omitempty" json:"optimizeCommand,omitempty"`
}

type SizeEntry struct {
	Px       int    `yaml:"px" json:"px"`
	Filename string `yaml:"filename,omitempty" json:"filename,omitempty"`
}

func init() {
	var err error
	homePath, err = os.UserHomeDir()
	if err != nil {
		panic(fmt.Sprintf("failed to get home directory: %v", err))
	}
}

// Load loads the configuration from the config file.
// It searches for config files in the following order:
// 1. $XDG_CONFIG_HOME/iconbake/config-{profile}.yml
// 2. $XDG_CONFIG_HOME/iconbake/config.yml
// If no config file is found, it returns an empty Config struct.
func Load(profile string) (*Config, error) {
	var configBasePaths []string
	if profile != "" {
		configBasePaths = append(configBasePaths, filepath.Join(configPath(), fmt.Sprintf("config-%s", profile)))
	}
	configBasePaths = append(configBasePaths, filepath.Join(configPath(), "config"))
	cfg := &Config{}
	for _, basePath := range configBasePaths {
		for _, ext := range []string{".yml", ".yaml"} {
			configPath := basePath + ext
			if b, err := os.ReadFile(configPath); err == nil {
				if err := yaml.Unmarshal(b, cfg); err != nil {
					return nil, fmt.Errorf("failed to unmarshal config: %w", err)
				}
				return cfg, nil
			}
		}
	}
	// If no config file is found, return an empty config
	return cfg, nil
}

// configPath returns the path to the configuration directory.
func configPath() string {
	if configHomePath != "" {
		return configHomePath
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		configHomePath = filepath.Join(v, "iconbake")
	} else {
		configHomePath = filepath.Join(homePath, ".config", "iconbake")
	}
	return configHomePath
}

// StateHomePath returns the path to the state home directory.
func StateHomePath() string {
	if stateHomePath != "" {
		return stateHomePath
	}
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		stateHomePath = filepath.Join(v, "iconbake")
	} else {
		stateHomePath = filepath.Join(homePath, ".local", "state", "iconbake")
	}
	return stateHomePath
}
