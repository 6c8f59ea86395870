package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	PolarsDir   string `yaml:"polarsDir"`
	ArchivedDir string `yaml:"archivedDir"`
}

func defaults() Config {
	return Config{PolarsDir: "polars", ArchivedDir: "archived"}
}

// Load reads the yaml config at path. When the file does not exist, the
// defaults are written there and returned.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		config := defaults()
		data, err := yaml.Marshal(config)
		if err != nil {
			return config, err
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return config, fmt.Errorf("error writing config file %s : %w", path, err)
		}
		return config, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("error reading config file %s : %w", path, err)
	}

	config := defaults()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("error parsing config file %s : %w", path, err)
	}
	return config, nil
}
