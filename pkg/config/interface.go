// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package config

// Provider defines the interface for configuration operations
type Provider interface {
	GetConfig() *Config
	UpdateConfig(updateFn func(*Config)) error
	LoadOrCreateConfig() (*Config, error)
}

// DefaultProvider implements Provider using the default XDG config path
type DefaultProvider struct{}

// NewDefaultProvider creates a new default config provider
func NewDefaultProvider() *DefaultProvider {
	return &DefaultProvider{}
}

// GetConfig returns the singleton config
func (*DefaultProvider) GetConfig() *Config {
	return getSingletonConfig()
}

// UpdateConfig updates the config using the default path
func (*DefaultProvider) UpdateConfig(updateFn func(*Config)) error {
	return UpdateConfig(updateFn)
}

// LoadOrCreateConfig loads or creates config using the default path
func (*DefaultProvider) LoadOrCreateConfig() (*Config, error) {
	return LoadOrCreateConfig()
}

// PathProvider implements Provider for a config file at an explicit path
type PathProvider struct {
	configPath string
}

// NewPathProvider creates a provider bound to configPath
func NewPathProvider(configPath string) *PathProvider {
	return &PathProvider{configPath: configPath}
}

// GetConfig loads the config from the path, falling back to defaults when
// the file cannot be read.
func (p *PathProvider) GetConfig() *Config {
	cfg, err := LoadOrCreateConfigWithPath(p.configPath)
	if err != nil {
		defaults := createNewConfigWithDefaults()
		return &defaults
	}
	return cfg
}

// UpdateConfig updates the config at the path
func (p *PathProvider) UpdateConfig(updateFn func(*Config)) error {
	return UpdateConfigAtPath(p.configPath, updateFn)
}

// LoadOrCreateConfig loads or creates config at the path
func (p *PathProvider) LoadOrCreateConfig() (*Config, error) {
	return LoadOrCreateConfigWithPath(p.configPath)
}

// NewProvider returns a PathProvider when configPath is set and the default
// provider otherwise.
func NewProvider(configPath string) Provider {
	if configPath != "" {
		return NewPathProvider(configPath)
	}
	return NewDefaultProvider()
}
