package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "wf://", cfg.SchemeMarker)
	assert.Equal(t, "http://localhost:8080/", cfg.GatewayBase)
	assert.Equal(t, FormatXML, cfg.ResultFormat)
	assert.Equal(t, 30, cfg.Timeout)
}

func TestValidate(t *testing.T) {
	valid := DefaultConfig()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid default", func(*Config) {}, false},
		{"json format", func(c *Config) { c.ResultFormat = FormatJSON }, false},
		{"https gateway", func(c *Config) { c.GatewayBase = "https://gw.example.com/" }, false},
		{"zero timeout uses default", func(c *Config) { c.Timeout = 0 }, false},
		{"missing marker", func(c *Config) { c.SchemeMarker = "" }, true},
		{"missing gateway", func(c *Config) { c.GatewayBase = "" }, true},
		{"non-http gateway", func(c *Config) { c.GatewayBase = "ftp://host/" }, true},
		{"unparseable gateway", func(c *Config) { c.GatewayBase = "http://bad\x00host/" }, true},
		{"unknown format", func(c *Config) { c.ResultFormat = "csv" }, true},
		{"negative timeout", func(c *Config) { c.Timeout = -1 }, true},
		{"oversized timeout", func(c *Config) { c.Timeout = 301 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "semfed.json")
	content := `{"scheme_marker": "svc://", "gateway_base": "https://gw.example.com/", "result_format": "json"}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "svc://", cfg.SchemeMarker)
	assert.Equal(t, "https://gw.example.com/", cfg.GatewayBase)
	assert.Equal(t, FormatJSON, cfg.ResultFormat)
	assert.Equal(t, 30, cfg.Timeout, "absent fields keep defaults")
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope.json"))
		assert.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("invalid values", func(t *testing.T) {
		path := filepath.Join(dir, "invalid.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"result_format": "csv"}`), 0o600))
		_, err := Load(path)
		assert.Error(t, err)
	})
}
