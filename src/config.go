package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config mirrors the CLI flags so recurring runs can keep their settings in
// a small YAML file next to the data.
type Config struct {
	File       string `yaml:"file,omitempty"`
	Method     string `yaml:"method,omitempty"`
	Categories int    `yaml:"categories,omitempty"`
	ChartType  string `yaml:"chart_type,omitempty"`
	OutDir     string `yaml:"out_dir,omitempty"`
	Width      int    `yaml:"width,omitempty"`
	Height     int    `yaml:"height,omitempty"`
	LogLevel   string `yaml:"log_level,omitempty"`
}

// defaultConfigFile is picked up from the working directory when -config is
// not given.
const defaultConfigFile = "sofia.yaml"

// loadConfig reads path, or defaultConfigFile when path is empty. A missing
// implicit file is not an error; a missing explicit one is.
func loadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	fmt.Printf("[init] loaded config %s\n", path)
	return &cfg, nil
}

// apply copies config values onto flags the user did not set explicitly.
func (c *Config) apply(set map[string]bool, file, method *string, categories *int, chartType, outDir *string, width, height *int, logLevel *string) {
	if c.File != "" && !set["file"] {
		*file = c.File
	}
	if c.Method != "" && !set["method"] {
		*method = c.Method
	}
	if c.Categories != 0 && !set["cats"] {
		*categories = c.Categories
	}
	if c.ChartType != "" && !set["type"] {
		*chartType = c.ChartType
	}
	if c.OutDir != "" && !set["out-dir"] {
		*outDir = c.OutDir
	}
	if c.Width != 0 && !set["width"] {
		*width = c.Width
	}
	if c.Height != 0 && !set["height"] {
		*height = c.Height
	}
	if c.LogLevel != "" && !set["log-level"] {
		*logLevel = c.LogLevel
	}
}
