// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"sync"

	"github.com/stacklok/harbor-cli/pkg/logger"
)

// Singleton value - should only be written to by the getSingletonConfig function.
var appConfig *Config

var lock = &sync.RWMutex{}

// SetSingletonConfig allows tests to pre-initialize the singleton with test data
// This prevents the singleton from loading the real config file during tests
func SetSingletonConfig(cfg *Config) {
	lock.Lock()
	defer lock.Unlock()
	appConfig = cfg
}

// ResetSingleton clears the singleton - useful for test cleanup
func ResetSingleton() {
	lock.Lock()
	defer lock.Unlock()
	appConfig = nil
}

// getSingletonConfig returns the cached client configuration, loading it on
// first use. A config file that cannot be loaded degrades to the defaults so
// that flags and environment variables still work.
func getSingletonConfig() *Config {
	// First check with read lock for performance
	lock.RLock()
	if appConfig != nil {
		defer lock.RUnlock()
		return appConfig
	}
	lock.RUnlock()

	// If config is nil, acquire write lock and double-check
	lock.Lock()
	defer lock.Unlock()
	if appConfig == nil {
		config, err := LoadOrCreateConfig()
		if err != nil {
			logger.Warnf("error loading configuration, using defaults: %v", err)
			defaults := createNewConfigWithDefaults()
			config = &defaults
		}
		appConfig = config
	}
	return appConfig
}
