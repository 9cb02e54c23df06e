// Package testutil provides an in-process fake SPARQL endpoint for
// exercising the federation adapter without a real gateway.
package testutil

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// RequestInfo captures what the endpoint observed in the last request.
type RequestInfo struct {
	Path   string
	Query  string // decoded value of the query parameter
	Accept string
}

// Endpoint is a fake SPARQL HTTP endpoint backed by httptest. It serves
// one configured response and records the last request for assertions.
type Endpoint struct {
	srv *httptest.Server

	mu          sync.Mutex
	status      int
	contentType string
	body        string
	last        RequestInfo
	requests    int
}

// NewEndpoint starts a fake endpoint answering 200 with an empty SPARQL
// XML result document until configured otherwise. Callers must Close it.
func NewEndpoint() *Endpoint {
	e := &Endpoint{
		status:      http.StatusOK,
		contentType: "application/sparql-results+xml",
		body:        SelectXML(nil, nil),
	}
	e.srv = httptest.NewServer(http.HandlerFunc(e.handle))
	return e
}

func (e *Endpoint) handle(w http.ResponseWriter, r *http.Request) {
	e.mu.Lock()
	e.last = RequestInfo{
		Path:   r.URL.Path,
		Query:  r.URL.Query().Get("query"),
		Accept: r.Header.Get("Accept"),
	}
	e.requests++
	status, contentType, body := e.status, e.contentType, e.body
	e.mu.Unlock()

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// URL returns the endpoint's base URL without a trailing slash.
func (e *Endpoint) URL() string {
	return e.srv.URL
}

// GatewayBase returns the endpoint's base URL with a trailing slash, in
// the shape a scheme resolver expects for its gateway base.
func (e *Endpoint) GatewayBase() string {
	return e.srv.URL + "/"
}

// Client returns the HTTP client wired to this endpoint.
func (e *Endpoint) Client() *http.Client {
	return e.srv.Client()
}

// SetResponse configures the status, content type, and body served to
// subsequent requests.
func (e *Endpoint) SetResponse(status int, contentType, body string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.status = status
	e.contentType = contentType
	e.body = body
}

// LastRequest returns what the endpoint saw most recently.
func (e *Endpoint) LastRequest() RequestInfo {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last
}

// Requests returns how many requests the endpoint has served.
func (e *Endpoint) Requests() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.requests
}

// Close shuts the endpoint down.
func (e *Endpoint) Close() {
	e.srv.Close()
}

// SelectXML builds a SPARQL Query Results XML document. Each row maps
// variable names to plain literal values; variables absent from a row
// stay unbound.
func SelectXML(vars []string, rows []map[string]string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0"?>` + "\n")
	b.WriteString(`<sparql xmlns="http://www.w3.org/2005/sparql-results#">` + "\n")

	b.WriteString("  <head>\n")
	for _, v := range vars {
		fmt.Fprintf(&b, "    <variable name=%q/>\n", v)
	}
	b.WriteString("  </head>\n")

	b.WriteString("  <results>\n")
	for _, row := range rows {
		b.WriteString("    <result>\n")
		// Emit bindings in head order so documents are reproducible.
		for _, v := range vars {
			value, bound := row[v]
			if !bound {
				continue
			}
			var escaped strings.Builder
			_ = xml.EscapeText(&escaped, []byte(value))
			fmt.Fprintf(&b, "      <binding name=%q><literal>%s</literal></binding>\n", v, escaped.String())
		}
		b.WriteString("    </result>\n")
	}
	b.WriteString("  </results>\n")
	b.WriteString("</sparql>\n")
	return b.String()
}

// SelectJSON builds a SPARQL Query Results JSON document with plain
// literal values, mirroring SelectXML.
func SelectJSON(vars []string, rows []map[string]string) string {
	var b strings.Builder
	b.WriteString(`{"head":{"vars":[`)
	for i, v := range vars {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%q", v)
	}
	b.WriteString(`]},"results":{"bindings":[`)
	for i, row := range rows {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('{')
		first := true
		for _, v := range vars {
			value, bound := row[v]
			if !bound {
				continue
			}
			if !first {
				b.WriteByte(',')
			}
			first = false
			fmt.Fprintf(&b, `%q:{"type":"literal","value":%q}`, v, value)
		}
		b.WriteByte('}')
	}
	b.WriteString(`]}}`)
	return b.String()
}
