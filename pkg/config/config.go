// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package config contains the definition of the persisted client settings
// and the logic required to load and update them.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// Config holds the connection defaults used when neither a flag nor an
// environment variable provides a value. The password is never stored.
type Config struct {
	URL        string `yaml:"url,omitempty"`
	Username   string `yaml:"username,omitempty"`
	Project    string `yaml:"project,omitempty"`
	APIVersion string `yaml:"api_version,omitempty"`
	CACertPath string `yaml:"ca_cert_path,omitempty"`
	Insecure   bool   `yaml:"insecure,omitempty"`
	// Timeout is the request timeout in seconds; zero keeps the default.
	Timeout int `yaml:"timeout,omitempty"`
}

// defaultPathGenerator generates the default config path using xdg
var defaultPathGenerator = func() (string, error) {
	return xdg.ConfigFile("harbor/config.yaml")
}

// getConfigPath is the current path generator, can be replaced in tests
var getConfigPath = defaultPathGenerator

// GetConfigPath returns the path of the default config file.
func GetConfigPath() (string, error) {
	return getConfigPath()
}

// createNewConfigWithDefaults creates a new config with default values
func createNewConfigWithDefaults() Config {
	return Config{}
}

// LoadOrCreateConfig fetches the client configuration.
// If it does not already exist - it will create a new config file with default values.
func LoadOrCreateConfig() (*Config, error) {
	return LoadOrCreateConfigWithPath("")
}

// LoadOrCreateConfigWithPath fetches the client configuration from a specific path.
// If configPath is empty, it uses the default path.
func LoadOrCreateConfigWithPath(configPath string) (*Config, error) {
	return NewLocalStore(configPath).Load(context.Background())
}

// saveToPath serializes the config struct and writes it to a specific path.
// If configPath is empty, it uses the default path.
func (c *Config) saveToPath(configPath string) error {
	if configPath == "" {
		var err error
		configPath, err = getConfigPath()
		if err != nil {
			return fmt.Errorf("unable to fetch config path: %w", err)
		}
	}

	configBytes, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("error serializing config file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0700); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	err = os.WriteFile(configPath, configBytes, 0600)
	if err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}

// UpdateConfig performs a locked update of the default config file.
func UpdateConfig(updateFn func(*Config)) error {
	return UpdateConfigAtPath("", updateFn)
}

// UpdateConfigAtPath performs a locked update of the config file at
// configPath. If configPath is empty, it uses the default path.
func UpdateConfigAtPath(configPath string, updateFn func(*Config)) error {
	store := NewLocalStore(configPath)

	var updated *Config
	err := store.Update(context.Background(), func(c *Config) {
		updateFn(c)
		updated = c
	})
	if err != nil {
		return err
	}

	// Update singleton cache if this is the default config
	if configPath == "" {
		lock.Lock()
		if appConfig != nil {
			appConfig = updated
		}
		lock.Unlock()
	}

	return nil
}
