// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// MockConfigPath replaces the getConfigPath function with a mock that returns a specified path
func MockConfigPath(configPath string) func() {
	original := getConfigPath

	// Replace the function with our mock
	getConfigPath = func() (string, error) {
		return configPath, nil
	}

	// Return a cleanup function to restore the original
	return func() {
		getConfigPath = original
	}
}

// writeTestConfig writes cfg to a fresh config file and returns its path.
func writeTestConfig(t *testing.T, cfg *Config) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "harbor", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(configPath), 0700))

	if cfg != nil {
		configBytes, err := yaml.Marshal(cfg)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(configPath, configBytes, 0600))
	}
	return configPath
}

func TestLoadOrCreateConfigWithPath(t *testing.T) {
	t.Parallel()

	t.Run("existing file", func(t *testing.T) {
		t.Parallel()

		want := &Config{
			URL:        "https://harbor.example.com",
			Username:   "admin",
			Project:    "library",
			APIVersion: "2.latest",
			Insecure:   true,
			Timeout:    15,
		}
		configPath := writeTestConfig(t, want)

		got, err := LoadOrCreateConfigWithPath(configPath)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("missing file is created with defaults", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), "nested", "harbor", "config.yaml")

		got, err := LoadOrCreateConfigWithPath(configPath)
		require.NoError(t, err)
		assert.Equal(t, &Config{}, got)

		info, err := os.Stat(configPath)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()

		configPath := writeTestConfig(t, nil)
		require.NoError(t, os.WriteFile(configPath, []byte("url: [unterminated"), 0600))

		_, err := LoadOrCreateConfigWithPath(configPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file yaml")
	})
}

func TestConfigFileFormat(t *testing.T) {
	t.Parallel()

	configPath := writeTestConfig(t, nil)
	cfg := &Config{URL: "harbor.local", APIVersion: "2.3"}
	require.NoError(t, cfg.saveToPath(configPath))

	raw, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "url: harbor.local")
	assert.Contains(t, string(raw), "api_version: \"2.3\"")
	assert.NotContains(t, string(raw), "password")
	assert.NotContains(t, string(raw), "insecure", "unset fields are omitted")
}

func TestUpdateConfigAtPath(t *testing.T) {
	t.Parallel()

	configPath := writeTestConfig(t, &Config{URL: "harbor.local"})

	err := UpdateConfigAtPath(configPath, func(c *Config) {
		c.Project = "demo"
	})
	require.NoError(t, err)

	got, err := LoadOrCreateConfigWithPath(configPath)
	require.NoError(t, err)
	assert.Equal(t, "harbor.local", got.URL)
	assert.Equal(t, "demo", got.Project)
}

func TestUpdateConfigAtPath_Concurrent(t *testing.T) {
	t.Parallel()

	configPath := writeTestConfig(t, &Config{})

	// Every update reads the latest file under the lock, so none are lost.
	const writers = 5
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, UpdateConfigAtPath(configPath, func(c *Config) {
				c.Timeout++
			}))
		}()
	}
	wg.Wait()

	got, err := LoadOrCreateConfigWithPath(configPath)
	require.NoError(t, err)
	assert.Equal(t, writers, got.Timeout)
}

func TestDefaultConfigPath(t *testing.T) { //nolint:paralleltest // mutates getConfigPath and the singleton
	configPath := writeTestConfig(t, &Config{Username: "alice"})
	cleanup := MockConfigPath(configPath)
	defer cleanup()
	ResetSingleton()
	defer ResetSingleton()

	got, err := GetConfigPath()
	require.NoError(t, err)
	assert.Equal(t, configPath, got)

	provider := NewDefaultProvider()
	assert.Equal(t, "alice", provider.GetConfig().Username)

	require.NoError(t, provider.UpdateConfig(func(c *Config) { c.Username = "bob" }))
	assert.Equal(t, "bob", provider.GetConfig().Username, "singleton cache follows updates")

	loaded, err := provider.LoadOrCreateConfig()
	require.NoError(t, err)
	assert.Equal(t, "bob", loaded.Username)
}
