// Package digo registers implementation types against the interfaces they
// expose, by convention.
//
// A registration pass starts with BeginRegistration, narrows its candidates
// with Filter, excludes surfaces with IgnoreExact and IgnoreOpenShape, and
// ends with Resolve, which appends one Descriptor per (type, interface) pair
// to the target Registry and returns the ordered report of what was bound
// and what was ignored:
//
//	p, err := digo.BeginRegistration(services, digo.Scan(contracts, types...))
//	p, err = p.Filter(digo.NameHasSuffix("Service"))
//	p, err = digo.Ignore[Auditor](p)
//	bindings, err := p.Resolve(digo.Scoped)
//
// Every step returns a new Pipeline; the receiver is left untouched.
package digo

import (
	"path"
	"reflect"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

// Predicate selects the candidates a pipeline keeps.
type Predicate func(Candidate) bool

// Pipeline is one registration pass: a target registry, the candidates still
// under consideration and the surfaces to ignore. Pipelines are values;
// Filter and the Ignore methods return new ones. A Pipeline is not safe for
// concurrent use and resolves at most once.
type Pipeline struct {
	registry   Registry
	candidates []Candidate
	ignore     ignoreSet
	opts       options
	passID     string
	state      *passState
}

type passState struct {
	resolved atomic.Bool
}

// BeginRegistration starts a registration pass over candidates.
// Candidates are deduplicated by Key, first occurrence wins, and excluded
// candidates are dropped here, before any Filter runs. The ignore set starts
// with DefaultIgnoredSurfaces.
// Returns InvalidArgumentError if registry is nil.
func BeginRegistration(registry Registry, candidates []Candidate, opts ...Option) (Pipeline, error) {
	if isNilRegistry(registry) {
		return Pipeline{}, &InvalidArgumentError{Arg: "registry", Reason: "registry is required"}
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	passID := uuid.NewString()
	o.logger = o.logger.With().Str("pass_id", passID).Logger()

	seen := make(map[string]struct{}, len(candidates))
	kept := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if _, dup := seen[c.Key()]; dup {
			continue
		}
		seen[c.Key()] = struct{}{}
		if o.excludes(c) {
			o.logger.Debug().Str("type", c.Key()).Msg("candidate excluded")
			continue
		}
		kept = append(kept, c)
	}

	o.logger.Debug().Int("candidates", len(kept)).Msg("registration pass started")
	return Pipeline{
		registry:   registry,
		candidates: kept,
		ignore:     newIgnoreSet(),
		opts:       o,
		passID:     passID,
		state:      &passState{},
	}, nil
}

// Filter returns a pipeline keeping only the candidates accepted by pred.
// Successive filters combine as a logical AND in call order.
// Returns InvalidArgumentError if pred is nil.
func (p Pipeline) Filter(pred Predicate) (Pipeline, error) {
	if err := p.usable(); err != nil {
		return p, err
	}
	if pred == nil {
		return p, &InvalidArgumentError{Arg: "predicate", Reason: "predicate is required"}
	}
	kept := make([]Candidate, 0, len(p.candidates))
	for _, c := range p.candidates {
		if pred(c) {
			kept = append(kept, c)
		}
	}
	next := p.derive()
	next.candidates = kept
	next.opts.logger.Debug().Int("before", len(p.candidates)).Int("after", len(kept)).Msg("candidates filtered")
	return next, nil
}

// Candidates returns a copy of the candidates currently under consideration.
func (p Pipeline) Candidates() []Candidate {
	return append([]Candidate(nil), p.candidates...)
}

// PassID identifies the registration pass in logs.
func (p Pipeline) PassID() string {
	return p.passID
}

// derive copies p into a pipeline with its own resolution state.
func (p Pipeline) derive() Pipeline {
	p.state = &passState{}
	return p
}

func (p Pipeline) usable() error {
	if p.registry == nil || p.state == nil {
		return &InvalidArgumentError{Arg: "pipeline", Reason: "pipeline was not created by BeginRegistration"}
	}
	if p.state.resolved.Load() {
		return ErrAlreadyResolved
	}
	return nil
}

func isNilRegistry(r Registry) bool {
	if r == nil {
		return true
	}
	v := reflect.ValueOf(r)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// NameHasSuffix keeps candidates whose type name ends with suffix.
func NameHasSuffix(suffix string) Predicate {
	return func(c Candidate) bool {
		return strings.HasSuffix(c.Name(), suffix)
	}
}

// NameMatches keeps candidates whose type name matches the path.Match
// pattern. A malformed pattern matches nothing.
func NameMatches(pattern string) Predicate {
	return func(c Candidate) bool {
		ok, err := path.Match(pattern, c.Name())
		return err == nil && ok
	}
}

// InPackage keeps candidates declared in the package with import path pkgPath.
func InPackage(pkgPath string) Predicate {
	return func(c Candidate) bool {
		return c.PkgPath() == pkgPath
	}
}
