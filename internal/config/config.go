// Package config holds user preferences for gemterm, stored as YAML in
// the user config directory. The GEMINI_API_KEY environment variable
// overrides the stored key so CI and one-off runs never need a file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds user preferences.
type Config struct {
	APIKey     string `yaml:"api_key"`
	ChatModel  string `yaml:"chat_model"`
	ImageModel string `yaml:"image_model"`
	Greeting   string `yaml:"greeting"`
	Theme      string `yaml:"theme"` // "light" or "dark"
	Debug      bool   `yaml:"debug"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		ChatModel:  "gemini-2.5-flash",
		ImageModel: "gemini-2.5-flash-image",
		Theme:      "dark",
	}
}

// Dir returns the directory where config is stored.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(base, "gemterm"), nil
}

// File returns the full path to the config file.
func File() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the configuration from its default location, applying
// defaults for a missing file and the environment override for the key.
func Load() (Config, error) {
	path, err := File()
	if err != nil {
		return Default(), err
	}
	cfg, err := LoadFile(path)
	if err != nil {
		return cfg, err
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.APIKey = key
	}
	return cfg, nil
}

// LoadFile reads configuration from an explicit path. A missing file is
// not an error; it yields the defaults.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config: %w", err)
	}

	// Backfill anything an older file left blank.
	def := Default()
	if cfg.ChatModel == "" {
		cfg.ChatModel = def.ChatModel
	}
	if cfg.ImageModel == "" {
		cfg.ImageModel = def.ImageModel
	}
	if cfg.Theme == "" {
		cfg.Theme = def.Theme
	}
	return cfg, nil
}

// Save writes the configuration to its default location.
func Save(cfg Config) error {
	path, err := File()
	if err != nil {
		return err
	}
	return SaveFile(path, cfg)
}

// SaveFile writes the configuration to an explicit path, creating the
// parent directory as needed.
func SaveFile(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
