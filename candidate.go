package digo

import "reflect"

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Candidate describes an implementation type considered for registration.
// It is immutable once built.
type Candidate struct {
	pkgPath   string
	name      string
	typ       reflect.Type
	surfaces  []Surface
	excluded  bool
	lifetimes []Lifetime
	isError   bool
}

// CandidateOption adds declarations to a Candidate.
type CandidateOption func(*Candidate)

// Implements declares that the candidate exposes the interface I.
func Implements[I any]() CandidateOption {
	return WithSurfaces(SurfaceOf[I]())
}

// WithSurfaces declares surfaces exposed by the candidate, in order.
func WithSurfaces(surfaces ...Surface) CandidateOption {
	return func(c *Candidate) {
		c.surfaces = append(c.surfaces, surfaces...)
	}
}

// WithLifetime adds a lifetime declaration. Declaring more than one
// lifetime, by option or marker, makes the candidate fail resolution.
func WithLifetime(l Lifetime) CandidateOption {
	return func(c *Candidate) {
		c.lifetimes = append(c.lifetimes, l)
	}
}

// Excluded marks the candidate as never to be registered.
func Excluded() CandidateOption {
	return func(c *Candidate) {
		c.excluded = true
	}
}

// ErrorShaped flags the candidate as an error type for the legacy
// exclusion policy. CandidateOf detects this itself.
func ErrorShaped() CandidateOption {
	return func(c *Candidate) {
		c.isError = true
	}
}

// NewCandidate builds a candidate from its package path and type name.
// Surfaces, lifetimes and exclusion come from opts only.
func NewCandidate(pkgPath, name string, opts ...CandidateOption) Candidate {
	c := Candidate{pkgPath: pkgPath, name: name}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// CandidateOf builds a candidate for T, reading its embedded markers.
// T may be the struct type or a pointer to it; both describe the same candidate.
func CandidateOf[T any](opts ...CandidateOption) Candidate {
	return CandidateFor(reflect.TypeOf((*T)(nil)).Elem(), opts...)
}

// CandidateFor is the reflect.Type form of CandidateOf.
func CandidateFor(t reflect.Type, opts ...CandidateOption) Candidate {
	if t == nil {
		return NewCandidate("", "", opts...)
	}
	base := t
	for base.Kind() == reflect.Pointer {
		base = base.Elem()
	}
	excluded, lifetimes := readMarkers(base)
	c := Candidate{
		pkgPath:   base.PkgPath(),
		name:      base.Name(),
		typ:       t,
		excluded:  excluded,
		lifetimes: lifetimes,
		isError:   base.Implements(errorType) || reflect.PointerTo(base).Implements(errorType),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Name returns the unqualified type name used in reports.
func (c Candidate) Name() string { return c.name }

func (c Candidate) PkgPath() string { return c.pkgPath }

// Type returns the reflected type, or nil for candidates built by name.
func (c Candidate) Type() reflect.Type { return c.typ }

// Key identifies the candidate; value and pointer forms share a key.
func (c Candidate) Key() string {
	if c.pkgPath == "" {
		return c.name
	}
	return c.pkgPath + "." + c.name
}

// IsExcluded reports whether the candidate carries an explicit do-not-register marker.
func (c Candidate) IsExcluded() bool { return c.excluded }

// IsError reports whether the candidate is an error type.
func (c Candidate) IsError() bool { return c.isError }

// DeclaredLifetime returns the candidate's own lifetime declaration, if any.
func (c Candidate) DeclaredLifetime() (Lifetime, bool) {
	if len(c.lifetimes) == 0 {
		return "", false
	}
	return c.lifetimes[0], true
}

// Lifetimes returns a copy of every lifetime declaration on the candidate.
func (c Candidate) Lifetimes() []Lifetime {
	return append([]Lifetime(nil), c.lifetimes...)
}

// HasMultipleLifetimeDeclarations reports a configuration error: more than one lifetime declared.
func (c Candidate) HasMultipleLifetimeDeclarations() bool {
	return len(c.lifetimes) > 1
}

// DeclaredSurfaces returns a copy of every surface declared on the candidate.
func (c Candidate) DeclaredSurfaces() []Surface {
	return append([]Surface(nil), c.surfaces...)
}

// ExposedSurfaces returns the declared surfaces that are exported, non-nested
// interfaces, without duplicates, in declaration order.
func (c Candidate) ExposedSurfaces() []Surface {
	seen := make(map[string]struct{}, len(c.surfaces))
	exposed := make([]Surface, 0, len(c.surfaces))
	for _, s := range c.surfaces {
		if !s.IsInterface() || !s.IsExported() || s.IsNested() {
			continue
		}
		if _, dup := seen[s.Key()]; dup {
			continue
		}
		seen[s.Key()] = struct{}{}
		exposed = append(exposed, s)
	}
	return exposed
}

func (c Candidate) String() string {
	return c.name
}
