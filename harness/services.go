package harness

import (
	"sort"
	"sync"

	"github.com/teranos/sharpgen/errors"
)

// Services is a name-keyed set of collaborators shared by the generators of
// one pipeline. It is safe for concurrent use.
type Services struct {
	mu       sync.RWMutex
	services map[string]interface{}
}

// NewServices creates an empty service set.
func NewServices() *Services {
	return &Services{services: make(map[string]interface{})}
}

// Register adds a service under name.
// Returns an error if the name is blank, the service is nil or the name is taken.
func (s *Services) Register(name string, service interface{}) error {
	if name == "" {
		return errors.InvalidArgumentf("service name cannot be empty")
	}
	if service == nil {
		return errors.InvalidArgumentf("service %q cannot be nil", name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.services[name]; exists {
		return errors.InvalidOperationf("service already registered: %s", name)
	}
	s.services[name] = service
	return nil
}

// Lookup retrieves a service by name
func (s *Services) Lookup(name string) (interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	svc, ok := s.services[name]
	return svc, ok
}

// Names returns all registered service names in sorted order
func (s *Services) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.services))
	for name := range s.services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MustLookup returns the service registered under name as a T.
// It panics with an ErrNotFound error when nothing is registered and with
// an ErrInvalidOperation error when the service has another type.
func MustLookup[T any](s *Services, name string) T {
	svc, ok := s.Lookup(name)
	if !ok {
		panic(errors.WithHintf(
			errors.NewNotFoundError("service not registered: %s", name),
			"registered services: %v", s.Names()))
	}
	typed, ok := svc.(T)
	if !ok {
		panic(errors.InvalidOperationf("service %s has type %T", name, svc))
	}
	return typed
}

// LookupAs is the non-panicking form of MustLookup.
func LookupAs[T any](s *Services, name string) (T, bool) {
	var zero T
	svc, ok := s.Lookup(name)
	if !ok {
		return zero, false
	}
	typed, ok := svc.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
