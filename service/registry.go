package service

import (
	"sync"

	"github.com/c360/semfed/errors"
)

// Registry holds the registered federation services the engine selects
// from. Selection is deterministic: Lookup scans services in registration
// order and the first whose claim check passes wins. Scheme markers must
// therefore be chosen to avoid collision, and duplicate markers are
// rejected outright.
type Registry struct {
	mu       sync.RWMutex
	services []*Service
	markers  map[string]struct{}
}

// NewRegistry creates an empty service registry.
func NewRegistry() *Registry {
	return &Registry{markers: make(map[string]struct{})}
}

// Register adds a service. A service whose scheme marker is already
// registered is rejected.
func (r *Registry) Register(s *Service) error {
	if s == nil {
		return errors.WrapInvalid(errors.ErrInvalidConfig,
			"Registry", "Register", "nil service")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	marker := s.resolver.Marker()
	if _, exists := r.markers[marker]; exists {
		return errors.WrapInvalid(errors.ErrInvalidConfig,
			"Registry", "Register", "duplicate scheme marker "+marker)
	}

	r.markers[marker] = struct{}{}
	r.services = append(r.services, s)
	return nil
}

// Lookup returns the first registered service that claims the identifier.
func (r *Registry) Lookup(identifier string) (*Service, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.services {
		if s.CanEvaluate(identifier) {
			return s, true
		}
	}
	return nil, false
}

// Len returns the number of registered services.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.services)
}
