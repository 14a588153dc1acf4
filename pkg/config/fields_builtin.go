// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"crypto/x509"
	"fmt"
	neturl "net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/stacklok/harbor-cli/pkg/apiversion"
)

// Field names accepted by `harbor config set`.
const (
	FieldURL        = "url"
	FieldUsername   = "username"
	FieldProject    = "project"
	FieldAPIVersion = "api-version"
	FieldCACert     = "ca-cert-path"
	FieldInsecure   = "insecure"
	FieldTimeout    = "timeout"
)

// init registers all built-in config fields
func init() {
	registerURLField()
	RegisterStringField(FieldUsername, "user to authenticate as",
		func(cfg *Config) *string { return &cfg.Username }, nil)
	RegisterStringField(FieldProject, "default project",
		func(cfg *Config) *string { return &cfg.Project }, nil)
	registerAPIVersionField()
	registerCACertField()
	registerInsecureField()
	registerTimeoutField()
}

func registerURLField() {
	RegisterStringField(FieldURL, "Harbor server URL",
		func(cfg *Config) *string { return &cfg.URL },
		func(_ Provider, value string) error {
			raw := value
			if !strings.Contains(raw, "://") {
				raw = "http://" + raw
			}
			u, err := neturl.Parse(raw)
			if err != nil {
				return fmt.Errorf("invalid URL format: %w", err)
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return fmt.Errorf("URL must start with http:// or https://")
			}
			if u.Host == "" {
				return fmt.Errorf("URL %q has no host", value)
			}
			return nil
		})
}

// registerAPIVersionField only checks the syntax; the installed majors are
// checked by the command that knows them.
func registerAPIVersionField() {
	RegisterStringField(FieldAPIVersion, "requested API version (X.Y or X.latest)",
		func(cfg *Config) *string { return &cfg.APIVersion },
		func(_ Provider, value string) error {
			v, err := apiversion.Parse(value)
			if err != nil {
				return err
			}
			if v.IsNull() {
				return fmt.Errorf("api version must not be empty")
			}
			return nil
		})
}

// registerCACertField registers the CA certificate config field
func registerCACertField() {
	RegisterConfigField(ConfigFieldSpec{
		Name:        FieldCACert,
		Description: "CA bundle used to verify the server certificate",
		SetValidator: func(_ Provider, value string) error {
			// #nosec G304: File path is user-provided and only read for validation
			certContent, err := os.ReadFile(filepath.Clean(value))
			if err != nil {
				return fmt.Errorf("CA certificate file not found or not accessible: %w", err)
			}
			if !x509.NewCertPool().AppendCertsFromPEM(certContent) {
				return fmt.Errorf("invalid CA certificate: no PEM certificate found in %s", value)
			}
			return nil
		},
		Setter: func(cfg *Config, value string) {
			cleanPath := filepath.Clean(value)
			if absPath, err := filepath.Abs(cleanPath); err == nil {
				cleanPath = absPath
			}
			cfg.CACertPath = cleanPath
		},
		Getter: func(cfg *Config) string {
			return cfg.CACertPath
		},
		Unsetter: func(cfg *Config) {
			cfg.CACertPath = ""
		},
	})
}

func registerInsecureField() {
	RegisterConfigField(ConfigFieldSpec{
		Name:        FieldInsecure,
		Description: "skip server certificate verification",
		SetValidator: func(_ Provider, value string) error {
			if _, err := strconv.ParseBool(value); err != nil {
				return fmt.Errorf("insecure must be a boolean: %w", err)
			}
			return nil
		},
		Setter: func(cfg *Config, value string) {
			cfg.Insecure, _ = strconv.ParseBool(value)
		},
		Getter: func(cfg *Config) string {
			if !cfg.Insecure {
				return ""
			}
			return "true"
		},
		Unsetter: func(cfg *Config) {
			cfg.Insecure = false
		},
	})
}

func registerTimeoutField() {
	RegisterConfigField(ConfigFieldSpec{
		Name:        FieldTimeout,
		Description: "request timeout in seconds",
		SetValidator: func(_ Provider, value string) error {
			seconds, err := strconv.Atoi(value)
			if err != nil || seconds <= 0 {
				return fmt.Errorf("timeout must be a positive number of seconds, got %q", value)
			}
			return nil
		},
		Setter: func(cfg *Config, value string) {
			cfg.Timeout, _ = strconv.Atoi(value)
		},
		Getter: func(cfg *Config) string {
			if cfg.Timeout == 0 {
				return ""
			}
			return strconv.Itoa(cfg.Timeout)
		},
		Unsetter: func(cfg *Config) {
			cfg.Timeout = 0
		},
	})
}
