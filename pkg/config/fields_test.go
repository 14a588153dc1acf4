// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testProvider is a simple in-memory implementation of Provider
type testProvider struct {
	config      *Config
	updateError error
}

func (p *testProvider) GetConfig() *Config {
	if p.config == nil {
		cfg := createNewConfigWithDefaults()
		p.config = &cfg
	}
	return p.config
}

func (p *testProvider) UpdateConfig(updateFn func(*Config)) error {
	if p.updateError != nil {
		return p.updateError
	}
	updateFn(p.GetConfig())
	return nil
}

func (p *testProvider) LoadOrCreateConfig() (*Config, error) {
	return p.GetConfig(), nil
}

const testPEM = `-----BEGIN CERTIFICATE-----
MIIDeTCCAmGgAwIBAgIUN4MtKQdT5lEx53a3ZnUoSuAQ5fswDQYJKoZIhvcNAQEL
BQAwTDELMAkGA1UEBhMCVVMxDTALBgNVBAgMBFRlc3QxDTALBgNVBAcMBFRlc3Qx
DTALBgNVBAoMBFRlc3QxEDAOBgNVBAMMB1Rlc3QgQ0EwHhcNMjUwNzA3MTMyNzIw
WhcNMjYwNzA3MTMyNzIwWjBMMQswCQYDVQQGEwJVUzENMAsGA1UECAwEVGVzdDEN
MAsGA1UEBwwEVGVzdDENMAsGA1UECgwEVGVzdDEQMA4GA1UEAwwHVGVzdCBDQTCC
ASIwDQYJKoZIhvcNAQEBBQADggEPADCCAQoCggEBAN/hmz1T3M+HSjarU4qk8oMz
sYX/PI+TMPC5rHSbQ1+Tve2EwbDKUu2d4wT60lHlcVJ3eEw4N6OuRq6DV2mgmbcY
RzJLorgqLG7WsXv660azu0Ln14kK1z+x4cAYzvQ9x54g1PPep7RNPNUEBex0AjG+
m3BZSk42t76TJg/82KxT2KmmNs6iUwXBptkaGw7CSBKGQOMq00jq0Xcp+ttfZtfx
IGZ9Q5ABc/j1FhPW96NxYbkdTJrhSbsoxWeRx8RSr5r5ZsP4IBw25t3oL8SZKNsR
Ln3Whb9GkupnAfVHxAPOTSwttLa1RqFJJwpBUQErSyD7aoisd5/pMjw0+9wk/IEC
AwEAAaNTMFEwHQYDVR0OBBYEFCl3yBkrEQ9qGGSPanmhwNqyqy7/MB8GA1UdIwQY
MBaAFCl3yBkrEQ9qGGSPanmhwNqyqy7/MA8GA1UdEwEB/wQFMAMBAf8wDQYJKoZI
hvcNAQELBQADggEBAFpv9f+xbCjuvaaNJg1s8UtVzgiJXkMYfvD+EvN2FRHkR++0
PIpeq1khxoP/INCXFBDz2+4N7nZUi79FH+IkXVAAK9w1Vg8mFOHkiRpCvHxOMU3J
FN0qsmIyA3D8LYQwJZDi6QE9qiNKGTnk7h676rAgk+ez2NS+nJNHUrPKu5zVCU4r
SaYEYg/JrY5DzgHel85LjteLiGE+6HVf8kKXAxSmxdxTDH73jdpEBtxVYxhnnxpF
d3JSN0mL1/vDlI27PofXsisvLH29wRo4Cev+naGLtdB5D8tZ6F6WBYaa9ZK86JSJ
lT/G27CBRUlDiDhthwY1dccTCFhICg6ENUGqh2I=
-----END CERTIFICATE-----`

func TestRegisterConfigField(t *testing.T) {
	t.Parallel()

	valid := func(name string) ConfigFieldSpec {
		return ConfigFieldSpec{
			Name:     name,
			Setter:   func(cfg *Config, value string) { cfg.Project = value },
			Getter:   func(cfg *Config) string { return cfg.Project },
			Unsetter: func(cfg *Config) { cfg.Project = "" },
		}
	}

	tests := []struct {
		name     string
		spec     func() ConfigFieldSpec
		panicMsg string
	}{
		{
			name: "successful registration",
			spec: func() ConfigFieldSpec { return valid("test-field-ok") },
		},
		{
			name:     "empty field name",
			spec:     func() ConfigFieldSpec { return valid("") },
			panicMsg: "config field name cannot be empty",
		},
		{
			name: "missing setter",
			spec: func() ConfigFieldSpec {
				s := valid("test-field-no-setter")
				s.Setter = nil
				return s
			},
			panicMsg: `config field "test-field-no-setter" must define a setter, a getter and an unsetter`,
		},
		{
			name:     "duplicate name",
			spec:     func() ConfigFieldSpec { return valid(FieldURL) },
			panicMsg: `config field "url" is already registered`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			spec := tt.spec()
			if tt.panicMsg != "" {
				assert.PanicsWithValue(t, tt.panicMsg, func() { RegisterConfigField(spec) })
				return
			}
			RegisterConfigField(spec)
			got, exists := GetConfigFieldSpec(spec.Name)
			require.True(t, exists)
			assert.Equal(t, spec.Name, got.Name)
		})
	}
}

func TestListConfigFields(t *testing.T) {
	t.Parallel()

	fields := ListConfigFields()
	for _, name := range []string{FieldAPIVersion, FieldCACert, FieldInsecure, FieldProject, FieldTimeout, FieldURL, FieldUsername} {
		assert.Contains(t, fields, name)
	}
	assert.IsNonDecreasing(t, fields)
}

func TestSetConfigField(t *testing.T) {
	t.Parallel()

	certPath := filepath.Join(t.TempDir(), "ca.pem")
	require.NoError(t, os.WriteFile(certPath, []byte(testPEM), 0600))
	junkPath := filepath.Join(t.TempDir(), "junk.pem")
	require.NoError(t, os.WriteFile(junkPath, []byte("junk"), 0600))

	tests := []struct {
		name        string
		field       string
		value       string
		provider    *testProvider
		want        Config
		errContains string
	}{
		{
			name:  "url without scheme",
			field: FieldURL, value: "harbor.local:8080",
			want: Config{URL: "harbor.local:8080"},
		},
		{
			name:  "url with unsupported scheme",
			field: FieldURL, value: "ftp://harbor.local",
			errContains: "URL must start with http:// or https://",
		},
		{
			name:  "username",
			field: FieldUsername, value: "admin",
			want: Config{Username: "admin"},
		},
		{
			name:  "api version",
			field: FieldAPIVersion, value: "2.latest",
			want: Config{APIVersion: "2.latest"},
		},
		{
			name:  "malformed api version",
			field: FieldAPIVersion, value: "2.x",
			errContains: "Invalid format of client version '2.x'",
		},
		{
			name:  "empty api version",
			field: FieldAPIVersion, value: "",
			errContains: "api version must not be empty",
		},
		{
			name:  "ca cert",
			field: FieldCACert, value: certPath,
			want: Config{CACertPath: certPath},
		},
		{
			name:  "missing ca cert",
			field: FieldCACert, value: "/non/existent/cert.pem",
			errContains: "not found or not accessible",
		},
		{
			name:  "ca cert without certificates",
			field: FieldCACert, value: junkPath,
			errContains: "invalid CA certificate",
		},
		{
			name:  "insecure",
			field: FieldInsecure, value: "true",
			want: Config{Insecure: true},
		},
		{
			name:  "insecure not a boolean",
			field: FieldInsecure, value: "sometimes",
			errContains: "insecure must be a boolean",
		},
		{
			name:  "timeout",
			field: FieldTimeout, value: "45",
			want: Config{Timeout: 45},
		},
		{
			name:  "negative timeout",
			field: FieldTimeout, value: "-1",
			errContains: "timeout must be a positive number",
		},
		{
			name:  "unknown field",
			field: "non-existent-field", value: "x",
			errContains: "unknown config field",
		},
		{
			name:  "update failure",
			field: FieldProject, value: "library",
			provider:    &testProvider{updateError: fmt.Errorf("update failed")},
			errContains: "failed to update configuration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			provider := tt.provider
			if provider == nil {
				provider = &testProvider{}
			}

			err := SetConfigField(provider, tt.field, tt.value)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, *provider.GetConfig()); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGetAndUnsetConfigField(t *testing.T) {
	t.Parallel()

	provider := &testProvider{config: &Config{Project: "library", Timeout: 10}}

	value, isSet, err := GetConfigField(provider, FieldProject)
	require.NoError(t, err)
	assert.True(t, isSet)
	assert.Equal(t, "library", value)

	value, isSet, err = GetConfigField(provider, FieldTimeout)
	require.NoError(t, err)
	assert.True(t, isSet)
	assert.Equal(t, "10", value)

	_, isSet, err = GetConfigField(provider, FieldInsecure)
	require.NoError(t, err)
	assert.False(t, isSet)

	_, _, err = GetConfigField(provider, "bogus")
	assert.ErrorContains(t, err, "unknown config field")

	require.NoError(t, UnsetConfigField(provider, FieldProject))
	require.NoError(t, UnsetConfigField(provider, FieldTimeout))
	assert.Equal(t, Config{}, *provider.GetConfig())

	// Unsetting an unset field does not touch the store.
	failing := &testProvider{updateError: fmt.Errorf("update failed")}
	assert.NoError(t, UnsetConfigField(failing, FieldProject))
}
