package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/daedaleanai/gypconf/log"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v2"
)

// Config holds the user's defaults. Empty fields are unset.
type Config struct {
	TargetArch   string `yaml:"target-arch"`
	Toolchain    string `yaml:"toolchain"`
	Nasm         string `yaml:"nasm"`
	Generator    string `yaml:"generator"`
	ProbeTimeout string `yaml:"probe-timeout"`
}

const configFileName string = "config.yaml"

var config *Config

// Dir returns the directory the configuration file is read from.
func Dir() (string, error) {
	if dir, ok := os.LookupEnv("GYPCONF_CONFIG_DIR"); ok && dir != "" {
		return dir, nil
	}

	if xdgConfigHome, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok && xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, "gypconf"), nil
	}

	homeDir, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("Unable to locate the configuration directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "gypconf"), nil
}

// Load reads the configuration file in `dir`. A missing file yields the empty configuration.
func Load(dir string) (Config, error) {
	var config Config

	configFilePath := filepath.Join(dir, configFileName)
	data, err := os.ReadFile(configFilePath)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, err
	}
	if err := yaml.UnmarshalStrict(data, &config); err != nil {
		return config, fmt.Errorf("parsing '%s': %w", configFilePath, err)
	}
	return config, nil
}

func loadConfiguration() Config {
	configDir, err := Dir()
	if err != nil {
		log.Debug("Unable to find gypconf config directory. Using default configuration\n")
		return Config{}
	}

	config, err := Load(configDir)
	if err != nil {
		log.Warning("Error reading configuration file: %s. Using default configuration\n", err)
		return Config{}
	}

	log.Debug("Running with configuration from '%s': %+v\n", configDir, config)
	return config
}

// GetConfig returns the configuration, reading it on first use.
func GetConfig() Config {
	if config == nil {
		loadedConfig := loadConfiguration()
		config = &loadedConfig
	}

	return *config
}
