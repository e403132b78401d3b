package digo

import "sync"

//go:generate mockgen -source=registry.go -destination=mock/registry.go -package=mock Registry

// Registry is the target service registry a pipeline appends bindings to.
// Resolve calls Add once per binding, in report order.
type Registry interface {
	Add(d Descriptor) error
}

// Descriptor is a single (surface, implementation, lifetime) registration.
type Descriptor struct {
	Service        Surface
	Implementation Candidate
	Lifetime       Lifetime
}

// Collection is an in-memory, append-only Registry.
// It is safe for concurrent use.
type Collection struct {
	mu          sync.RWMutex
	descriptors []Descriptor
	index       map[string]struct{}
}

var _ Registry = (*Collection)(nil)

func makeBindingKey(lifetime Lifetime, service Surface, impl Candidate) string {
	return string(lifetime) + ":" + service.Key() + ":" + impl.Key()
}

// NewCollection creates an empty Collection.
func NewCollection() *Collection {
	return &Collection{
		descriptors: make([]Descriptor, 0, 32),
		index:       make(map[string]struct{}, 32),
	}
}

// Add appends d to the collection.
// Returns InvalidArgumentError if the descriptor misses its surface,
// implementation or a valid lifetime.
func (c *Collection) Add(d Descriptor) error {
	switch {
	case d.Service.IsZero():
		return &InvalidArgumentError{Arg: "descriptor", Reason: "service surface is required"}
	case d.Implementation.Name() == "":
		return &InvalidArgumentError{Arg: "descriptor", Reason: "implementation is required for " + d.Service.Name()}
	case !d.Lifetime.Valid():
		return &InvalidArgumentError{Arg: "descriptor", Reason: "invalid lifetime for " + d.Implementation.Name()}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.index == nil {
		c.index = make(map[string]struct{})
	}
	c.descriptors = append(c.descriptors, d)
	c.index[makeBindingKey(d.Lifetime, d.Service, d.Implementation)] = struct{}{}
	return nil
}

// Descriptors returns a snapshot of every descriptor in append order.
func (c *Collection) Descriptors() []Descriptor {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Descriptor(nil), c.descriptors...)
}

// Len returns the number of descriptors.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.descriptors)
}

// Lookup returns the descriptors registered for service, in append order.
func (c *Collection) Lookup(service Surface) []Descriptor {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var found []Descriptor
	key := service.Key()
	for _, d := range c.descriptors {
		if d.Service.Key() == key {
			found = append(found, d)
		}
	}
	return found
}

// Contains reports whether impl is registered for service with lifetime.
func (c *Collection) Contains(service Surface, impl Candidate, lifetime Lifetime) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.index[makeBindingKey(lifetime, service, impl)]
	return ok
}

// Reset removes every descriptor.
// This function is intended for testing purposes only.
func (c *Collection) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.descriptors = make([]Descriptor, 0, 32)
	c.index = make(map[string]struct{}, 32)
}
