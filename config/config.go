// Package config holds the federation adapter's configuration: the scheme
// marker it claims, the HTTP gateway its identifiers resolve against, the
// single result wire format it accepts, and the request timeout.
package config

import (
	"encoding/json"
	"net/url"
	"os"

	"github.com/c360/semfed/errors"
)

// Result format names accepted by Config.ResultFormat.
const (
	FormatXML  = "xml"
	FormatJSON = "json"
)

// Config represents the adapter configuration. Both the scheme marker and
// the gateway base are configurable without touching adapter logic.
type Config struct {
	// SchemeMarker is the literal identifier prefix this adapter claims,
	// e.g. "wf://". Matching is case-sensitive.
	SchemeMarker string `json:"scheme_marker"`

	// GatewayBase is the HTTP(S) base URL the marker is rewritten to,
	// e.g. "http://localhost:8080/".
	GatewayBase string `json:"gateway_base"`

	// ResultFormat names the single wire format the remote endpoint must
	// produce: "xml" or "json". No fallback format is attempted.
	ResultFormat string `json:"result_format"`

	// Timeout is the per-request timeout in seconds. Zero uses the
	// default. The caller's context may impose a tighter deadline.
	Timeout int `json:"timeout"`
}

// DefaultConfig returns the default adapter configuration, matching the
// wf:// scheme against a local gateway speaking SPARQL/XML.
func DefaultConfig() Config {
	return Config{
		SchemeMarker: "wf://",
		GatewayBase:  "http://localhost:8080/",
		ResultFormat: FormatXML,
		Timeout:      30,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.SchemeMarker == "" {
		return errors.WrapInvalid(errors.ErrMissingConfig, "Config", "Validate",
			"scheme_marker is required")
	}

	if c.GatewayBase == "" {
		return errors.WrapInvalid(errors.ErrMissingConfig, "Config", "Validate",
			"gateway_base is required")
	}

	u, err := url.Parse(c.GatewayBase)
	if err != nil {
		return errors.WrapInvalid(err, "Config", "Validate", "gateway_base parse")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate",
			"gateway_base must be an http or https URL")
	}

	if c.ResultFormat != FormatXML && c.ResultFormat != FormatJSON {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate",
			"result_format must be \"xml\" or \"json\"")
	}

	if c.Timeout < 0 || c.Timeout > 300 {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate",
			"timeout must be between 0 and 300 seconds")
	}

	return nil
}

// Load reads and validates a JSON configuration file. Fields absent from
// the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.WrapInvalid(err, "Config", "Load", "config file read")
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.WrapInvalid(err, "Config", "Load", "config file unmarshal")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
