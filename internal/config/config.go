// Package config loads run configuration for the ID card generator.
//
// Precedence, lowest to highest: built-in defaults, YAML config file,
// IDGEN_* environment variables, CLI flags (applied by the caller).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Madison-Country-Day-School/id-gen/internal/fileutil"
	"github.com/Madison-Country-Day-School/id-gen/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidWorkers  = errors.New("invalid worker count")
	ErrInvalidPhotoExt = errors.New("invalid photo extension")
)

// Config holds all configuration for card generation.
type Config struct {
	Paths   PathsConfig  `yaml:"paths"`
	Photos  PhotosConfig `yaml:"photos"`
	Workers int          `yaml:"workers"` // 0 = auto
	Timeout string       `yaml:"timeout"` // Go duration string, e.g. "30s"
	KeepTmp bool         `yaml:"keepTmp"` // keep intermediate page PDFs
}

// PathsConfig defines input and output locations.
type PathsConfig struct {
	Templates string `yaml:"templates"` // directory holding front.svg and back.svg
	Data      string `yaml:"data"`      // roster file (.csv or .xlsx)
	Images    string `yaml:"images"`    // photo directory root
	Out       string `yaml:"out"`       // output directory
}

// PhotosConfig defines photo lookup options.
type PhotosConfig struct {
	Ext string `yaml:"ext"` // photo file extension including the dot (default ".jpg")
}

// Validate checks value ranges and formats.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkers, c.Workers)
	}
	if ext := c.Photos.Ext; ext != "" {
		if !strings.HasPrefix(ext, ".") || strings.ContainsAny(ext, "/\\\x00") {
			return fmt.Errorf("%w: %q (want e.g. \".jpg\")", ErrInvalidPhotoExt, ext)
		}
	}
	return nil
}

// DefaultConfig returns a neutral configuration.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/id-gen/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	// Try current directory first (both extensions)
	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	// Try user config directory (both extensions)
	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "id-gen", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
