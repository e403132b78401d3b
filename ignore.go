package digo

import (
	"fmt"
	"slices"
)

// ignoreSet holds the surfaces a pass never binds against. Exact entries
// match by key; open entries match every instantiation with the same base key.
// Updates copy, so pipelines derived from one another never share a backing array.
type ignoreSet struct {
	exact []Surface
	open  []Surface
}

func newIgnoreSet() ignoreSet {
	var s ignoreSet
	for _, d := range DefaultIgnoredSurfaces() {
		if d.IsOpen() {
			s = s.withOpen(d)
		} else {
			s = s.withExact(d)
		}
	}
	return s
}

func (s ignoreSet) withExact(x Surface) ignoreSet {
	for _, e := range s.exact {
		if e.Key() == x.Key() {
			return s
		}
	}
	s.exact = append(slices.Clip(s.exact), x)
	return s
}

func (s ignoreSet) withOpen(x Surface) ignoreSet {
	for _, e := range s.open {
		if e.BaseKey() == x.BaseKey() {
			return s
		}
	}
	s.open = append(slices.Clip(s.open), x)
	return s
}

func (s ignoreSet) matches(x Surface) bool {
	key := x.Key()
	for _, e := range s.exact {
		if e.Key() == key {
			return true
		}
	}
	if !x.IsGeneric() {
		return false
	}
	base := x.BaseKey()
	for _, e := range s.open {
		if e.BaseKey() == base {
			return true
		}
	}
	return false
}

// entries returns exact entries then open entries, each in insertion order.
func (s ignoreSet) entries() []Surface {
	all := make([]Surface, 0, len(s.exact)+len(s.open))
	all = append(all, s.exact...)
	return append(all, s.open...)
}

// IgnoreExact returns a pipeline that never binds against surface.
// Returns InvalidArgumentError if surface is not an interface.
func (p Pipeline) IgnoreExact(surface Surface) (Pipeline, error) {
	if err := p.usable(); err != nil {
		return p, err
	}
	if surface.IsZero() {
		return p, &InvalidArgumentError{Arg: "surface", Reason: "surface is required"}
	}
	if !surface.IsInterface() {
		return p, &InvalidArgumentError{Arg: "surface", Reason: fmt.Sprintf("%s is not an interface", surface.Name())}
	}
	next := p.derive()
	next.ignore = p.ignore.withExact(surface)
	next.opts.logger.Debug().Str("surface", surface.Key()).Msg("surface ignored")
	return next, nil
}

// IgnoreOpenShape returns a pipeline that never binds against any
// instantiation of the generic interface surface. Build the argument with
// OpenSurfaceOf or ParseSurface("pkg.Name[_]").
// Returns InvalidArgumentError if surface is not a generic interface or is
// fully parameterized.
func (p Pipeline) IgnoreOpenShape(surface Surface) (Pipeline, error) {
	if err := p.usable(); err != nil {
		return p, err
	}
	switch {
	case surface.IsZero():
		return p, &InvalidArgumentError{Arg: "surface", Reason: "surface is required"}
	case !surface.IsInterface():
		return p, &InvalidArgumentError{Arg: "surface", Reason: fmt.Sprintf("%s is not an interface", surface.Name())}
	case !surface.IsGeneric():
		return p, &InvalidArgumentError{Arg: "surface", Reason: fmt.Sprintf("%s is not a generic interface", surface.Name())}
	case !surface.IsOpen():
		return p, &InvalidArgumentError{Arg: "surface", Reason: fmt.Sprintf("%s is fully parameterized", surface.Name())}
	}
	next := p.derive()
	next.ignore = p.ignore.withOpen(surface)
	next.opts.logger.Debug().Str("surface", surface.Key()).Msg("open surface ignored")
	return next, nil
}

// Ignore is IgnoreExact for the interface I.
func Ignore[I any](p Pipeline) (Pipeline, error) {
	return p.IgnoreExact(SurfaceOf[I]())
}

// IgnoreOpen is IgnoreOpenShape for every instantiation of the generic interface I.
// Any instantiation names the shape: IgnoreOpen[Repository[any]](p).
func IgnoreOpen[I any](p Pipeline) (Pipeline, error) {
	return p.IgnoreOpenShape(OpenSurfaceOf[I]())
}

// IgnoredSurfaces returns the ignore entries in announcement order.
func (p Pipeline) IgnoredSurfaces() []Surface {
	return p.ignore.entries()
}
