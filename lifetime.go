package digo

import (
	"fmt"
	"strings"
)

// Lifetime defines how a registry shares the implementation bound to a surface.
type Lifetime string

// Available lifetimes
const (
	// Transient creates a new instance for each resolution
	Transient Lifetime = "Transient"
	// Scoped shares an instance within one scope, typically a request
	Scoped Lifetime = "Scoped"
	// Singleton shares a single instance across the application
	Singleton Lifetime = "Singleton"
)

// String returns the lifetime name as it appears in binding reports.
func (l Lifetime) String() string {
	return string(l)
}

// Valid reports whether l is one of the declared lifetimes.
func (l Lifetime) Valid() bool {
	switch l {
	case Transient, Scoped, Singleton:
		return true
	}
	return false
}

// ParseLifetime converts a case-insensitive lifetime name into a Lifetime.
// Returns InvalidArgumentError for unknown names.
func ParseLifetime(s string) (Lifetime, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "transient":
		return Transient, nil
	case "scoped", "scope":
		return Scoped, nil
	case "singleton":
		return Singleton, nil
	}
	return "", &InvalidArgumentError{Arg: "lifetime", Reason: fmt.Sprintf("unknown lifetime %q", s)}
}
