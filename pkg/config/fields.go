// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"sort"
	"sync"
)

// ConfigFieldSpec describes one key managed by `harbor config`.
type ConfigFieldSpec struct {
	// Name is the key used on the command line, e.g. "api-version".
	Name string
	// Description is shown by `harbor config show`.
	Description string
	// SetValidator checks a value before it is stored. Optional.
	SetValidator func(provider Provider, value string) error
	// Setter stores an already validated value.
	Setter func(cfg *Config, value string)
	// Getter renders the stored value; empty means unset.
	Getter func(cfg *Config) string
	// Unsetter resets the field to its default.
	Unsetter func(cfg *Config)
}

var (
	fieldsMu sync.RWMutex
	fields   = map[string]ConfigFieldSpec{}
)

// RegisterConfigField adds a field. It panics on an invalid spec or a
// duplicate name, which is a programming error.
func RegisterConfigField(spec ConfigFieldSpec) {
	if spec.Name == "" {
		panic("config field name cannot be empty")
	}
	if spec.Setter == nil || spec.Getter == nil || spec.Unsetter == nil {
		panic(fmt.Sprintf("config field %q must define a setter, a getter and an unsetter", spec.Name))
	}

	fieldsMu.Lock()
	defer fieldsMu.Unlock()
	if _, exists := fields[spec.Name]; exists {
		panic(fmt.Sprintf("config field %q is already registered", spec.Name))
	}
	fields[spec.Name] = spec
}

// RegisterStringField is a shorthand for fields backed by a single string.
func RegisterStringField(
	name, description string,
	field func(cfg *Config) *string,
	validator func(provider Provider, value string) error,
) {
	RegisterConfigField(ConfigFieldSpec{
		Name:         name,
		Description:  description,
		SetValidator: validator,
		Setter:       func(cfg *Config, value string) { *field(cfg) = value },
		Getter:       func(cfg *Config) string { return *field(cfg) },
		Unsetter:     func(cfg *Config) { *field(cfg) = "" },
	})
}

// GetConfigFieldSpec looks up a field by name.
func GetConfigFieldSpec(name string) (ConfigFieldSpec, bool) {
	fieldsMu.RLock()
	defer fieldsMu.RUnlock()
	spec, ok := fields[name]
	return spec, ok
}

// ListConfigFields returns the registered field names in sorted order.
func ListConfigFields() []string {
	fieldsMu.RLock()
	defer fieldsMu.RUnlock()
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupField(name string) (ConfigFieldSpec, error) {
	spec, ok := GetConfigFieldSpec(name)
	if !ok {
		return ConfigFieldSpec{}, fmt.Errorf("unknown config field: %s (valid fields: %v)", name, ListConfigFields())
	}
	return spec, nil
}

// SetConfigField validates value and stores it under name.
func SetConfigField(provider Provider, name, value string) error {
	spec, err := lookupField(name)
	if err != nil {
		return err
	}

	if spec.SetValidator != nil {
		if err := spec.SetValidator(provider, value); err != nil {
			return err
		}
	}

	if err := provider.UpdateConfig(func(cfg *Config) { spec.Setter(cfg, value) }); err != nil {
		return fmt.Errorf("failed to update configuration: %w", err)
	}
	return nil
}

// GetConfigField returns the stored value of name and whether it is set.
func GetConfigField(provider Provider, name string) (string, bool, error) {
	spec, err := lookupField(name)
	if err != nil {
		return "", false, err
	}
	value := spec.Getter(provider.GetConfig())
	return value, value != "", nil
}

// UnsetConfigField resets name to its default. Unsetting a field that is
// not set is a no-op.
func UnsetConfigField(provider Provider, name string) error {
	spec, err := lookupField(name)
	if err != nil {
		return err
	}

	if spec.Getter(provider.GetConfig()) == "" {
		return nil
	}

	if err := provider.UpdateConfig(spec.Unsetter); err != nil {
		return fmt.Errorf("failed to update configuration: %w", err)
	}
	return nil
}
