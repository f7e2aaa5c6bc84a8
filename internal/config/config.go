// Package config provides configuration loading and management for sudoku-reader.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Processing parameters
	Processing struct {
		// NumWorkers is the number of goroutines processing cells
		NumWorkers int `yaml:"numWorkers"`

		// WorkingWidth and WorkingHeight are the resolution photos are resized to
		WorkingWidth  int `yaml:"workingWidth"`
		WorkingHeight int `yaml:"workingHeight"`

		// ThickLine is the dilation used to find the grid outline
		ThickLine int `yaml:"thickLine"`

		// ThinLine is the dilation used for the rectified grid
		ThinLine int `yaml:"thinLine"`

		// ExpandRatio grows cells toward their neighbours
		ExpandRatio float64 `yaml:"expandRatio"`

		// CanvasSize is the side of each normalized cell image
		CanvasSize int `yaml:"canvasSize"`

		BlurKernel     int     `yaml:"blurKernel"`
		ThresholdBlock int     `yaml:"thresholdBlock"`
		ThresholdC     float64 `yaml:"thresholdC"`
	} `yaml:"processing"`

	// OCR parameters
	OCR struct {
		Language  string `yaml:"language"`
		Whitelist string `yaml:"whitelist"`
	} `yaml:"ocr"`

	// Output parameters
	Output struct {
		// Verbose enables debug logging
		Verbose bool `yaml:"verbose"`

		// JSONLogs switches the log formatter to JSON
		JSONLogs bool `yaml:"jsonLogs"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Processing.NumWorkers = runtime.NumCPU()
	cfg.Processing.WorkingWidth = 1200
	cfg.Processing.WorkingHeight = 900
	cfg.Processing.ThickLine = 3
	cfg.Processing.ThinLine = 1
	cfg.Processing.ExpandRatio = 1.05
	cfg.Processing.CanvasSize = 28
	cfg.Processing.BlurKernel = 9
	cfg.Processing.ThresholdBlock = 11
	cfg.Processing.ThresholdC = 4

	cfg.OCR.Language = "eng"
	cfg.OCR.Whitelist = "123456789"

	cfg.Output.Verbose = false
	cfg.Output.JSONLogs = false

	return cfg
}

// Validate checks that the configuration can drive the pipeline.
func (c *Config) Validate() error {
	p := c.Processing
	var errs []error
	if p.NumWorkers < 1 {
		errs = append(errs, fmt.Errorf("numWorkers must be at least 1, got %d", p.NumWorkers))
	}
	if p.WorkingWidth < 1 || p.WorkingHeight < 1 {
		errs = append(errs, fmt.Errorf("working resolution must be positive, got %dx%d", p.WorkingWidth, p.WorkingHeight))
	}
	if p.ThickLine < 1 || p.ThinLine < 1 {
		errs = append(errs, errors.New("line thickness must be at least 1"))
	}
	if p.ExpandRatio <= 1 {
		errs = append(errs, fmt.Errorf("expandRatio must be greater than 1, got %v", p.ExpandRatio))
	}
	if p.CanvasSize < 1 {
		errs = append(errs, fmt.Errorf("canvasSize must be at least 1, got %d", p.CanvasSize))
	}
	if p.BlurKernel < 1 || p.BlurKernel%2 == 0 {
		errs = append(errs, fmt.Errorf("blurKernel must be odd and positive, got %d", p.BlurKernel))
	}
	if p.ThresholdBlock < 3 || p.ThresholdBlock%2 == 0 {
		errs = append(errs, fmt.Errorf("thresholdBlock must be odd and at least 3, got %d", p.ThresholdBlock))
	}
	return errors.Join(errs...)
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}
