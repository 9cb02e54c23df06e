// Package sparql parses SPARQL SELECT result documents and adapts them
// into lazy binding streams the execution engine can consume.
package sparql

import (
	"github.com/c360/semfed/errors"
)

// Format identifies a SPARQL results wire format.
type Format struct {
	// Name is the short configuration name ("xml", "json").
	Name string
	// MediaType is the value sent in the Accept header.
	MediaType string
}

// Supported wire formats. The adapter is configured with exactly one of
// these; no fallback format is ever attempted on a parse failure.
var (
	// FormatXML is SPARQL Query Results XML, the default, matching the
	// format the wf:// gateway endpoints speak.
	FormatXML = Format{Name: "xml", MediaType: "application/sparql-results+xml"}

	// FormatJSON is SPARQL Query Results JSON.
	FormatJSON = Format{Name: "json", MediaType: "application/sparql-results+json"}
)

var formats = []Format{FormatXML, FormatJSON}

// FormatByName looks up a format by its configuration name.
func FormatByName(name string) (Format, error) {
	for _, f := range formats {
		if f.Name == name {
			return f, nil
		}
	}
	return Format{}, errors.WrapInvalid(errors.ErrInvalidConfig,
		"Format", "FormatByName", "unknown result format "+name)
}
