// Package scheme maps custom-scheme identifiers to reachable HTTP gateway
// URLs. It is pure string rewriting: no state, no I/O, no URL validation
// beyond what the transport layer later enforces.
package scheme

import "strings"

// Resolver rewrites identifiers carrying a registered scheme marker into
// URLs under a configured HTTP(S) gateway base.
//
// The zero value is unusable; construct with NewResolver.
type Resolver struct {
	marker string
	base   string
}

// NewResolver creates a resolver for the given scheme marker and gateway
// base. Marker matching is case-sensitive and unnormalized.
func NewResolver(marker, gatewayBase string) *Resolver {
	return &Resolver{marker: marker, base: gatewayBase}
}

// Marker returns the scheme marker this resolver claims.
func (r *Resolver) Marker() string {
	return r.marker
}

// CanHandle reports whether the identifier carries this resolver's scheme
// marker. The engine calls this for every candidate service fragment, so
// it must stay a plain prefix test with no allocation.
func (r *Resolver) CanHandle(identifier string) bool {
	return strings.HasPrefix(identifier, r.marker)
}

// Resolve replaces the scheme marker with the gateway base. The
// substitution applies to the prefix only: a gateway base or identifier
// path that happens to contain the marker substring elsewhere is left
// untouched. Identifiers that do not carry the marker are returned
// unchanged; callers are expected to have filtered via CanHandle first.
func (r *Resolver) Resolve(identifier string) string {
	if !strings.HasPrefix(identifier, r.marker) {
		return identifier
	}
	return r.base + identifier[len(r.marker):]
}
