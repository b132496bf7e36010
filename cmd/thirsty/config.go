package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFileName = "thirsty.yml"

// fileConfig mirrors the optional thirsty.yml that can sit next to a script
// or be passed with -config. Zero fields fall back to the engine defaults.
type fileConfig struct {
	MaxCallDepth      int      `yaml:"max_call_depth"`
	MaxLoopIterations int      `yaml:"max_loop_iterations"`
	ModulePaths       []string `yaml:"module_paths"`
}

// resolveConfig loads the explicit config file when given, otherwise looks
// for thirsty.yml in the script's directory. A missing implicit file is not
// an error.
func resolveConfig(explicitPath, scriptDir string) (fileConfig, error) {
	if explicitPath != "" {
		return loadConfigFile(explicitPath)
	}
	implicit := filepath.Join(scriptDir, configFileName)
	if _, err := os.Stat(implicit); err != nil {
		if os.IsNotExist(err) {
			return fileConfig{}, nil
		}
		return fileConfig{}, fmt.Errorf("access config %q: %w", implicit, err)
	}
	return loadConfigFile(implicit)
}

func loadConfigFile(path string) (fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("read config: %w", err)
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fileConfig{}, fmt.Errorf("parse config %q: %w", path, err)
	}
	if cfg.MaxCallDepth < 0 {
		return fileConfig{}, fmt.Errorf("config %q: max_call_depth must not be negative", path)
	}
	if cfg.MaxLoopIterations < 0 {
		return fileConfig{}, fmt.Errorf("config %q: max_loop_iterations must not be negative", path)
	}
	// Relative module paths are resolved against the config file location.
	base := filepath.Dir(path)
	for i, p := range cfg.ModulePaths {
		if !filepath.IsAbs(p) {
			cfg.ModulePaths[i] = filepath.Join(base, p)
		}
	}
	return cfg, nil
}
