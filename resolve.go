package digo

import "fmt"

// Resolve ends the registration pass. It reports every ignored surface,
// exact entries first, then binds each remaining candidate to its exposed,
// non-ignored surfaces, appending to the registry in report order.
//
// The default lifetime applies to candidates without their own declaration
// and is Transient when omitted. An unknown default or declared lifetime is
// an InvalidArgumentError and leaves the pipeline unresolved.
//
// Returns ConflictingLifetimeError for a candidate with more than one
// lifetime declaration and RegistrationError when the registry rejects a
// descriptor. In both cases the bindings made before the failure are
// returned and stay in the registry. A pipeline resolves once; further calls
// return ErrAlreadyResolved.
func (p Pipeline) Resolve(defaultLifetime ...Lifetime) ([]Binding, error) {
	if err := p.usable(); err != nil {
		return nil, err
	}
	lifetime := Transient
	if len(defaultLifetime) > 0 {
		lifetime = defaultLifetime[0]
	}
	if !lifetime.Valid() {
		return nil, &InvalidArgumentError{Arg: "lifetime", Reason: fmt.Sprintf("unknown lifetime %q", string(lifetime))}
	}
	for _, c := range p.candidates {
		for _, l := range c.lifetimes {
			if !l.Valid() {
				return nil, &InvalidArgumentError{Arg: "lifetime", Reason: fmt.Sprintf("type %s declares unknown lifetime %q", c.Key(), string(l))}
			}
		}
	}
	if !p.state.resolved.CompareAndSwap(false, true) {
		return nil, ErrAlreadyResolved
	}

	logger := p.opts.logger
	ignored := p.ignore.entries()
	results := make([]Binding, 0, len(ignored)+len(p.candidates))
	for _, s := range ignored {
		results = append(results, Binding{surface: s})
	}

	skipped := 0
	for _, c := range p.candidates {
		p.opts.metrics.candidate()
		if c.HasMultipleLifetimeDeclarations() {
			p.opts.metrics.conflict()
			logger.Warn().Str("type", c.Key()).Strs("lifetimes", lifetimeNames(c.lifetimes)).Msg("conflicting lifetime declarations")
			return results, &ConflictingLifetimeError{Type: c.Key(), Lifetimes: c.Lifetimes()}
		}

		effective := lifetime
		if l, ok := c.DeclaredLifetime(); ok {
			effective = l
		}

		for _, s := range c.ExposedSurfaces() {
			if p.ignore.matches(s) {
				skipped++
				p.opts.metrics.ignored()
				logger.Debug().Str("type", c.Key()).Str("surface", s.Key()).Msg("surface skipped")
				continue
			}
			if err := p.registry.Add(Descriptor{Service: s, Implementation: c, Lifetime: effective}); err != nil {
				return results, &RegistrationError{Type: c.Key(), Surface: s.Key(), Err: err}
			}
			results = append(results, Binding{candidate: c, hasCandidate: true, surface: s, lifetime: effective})
			p.opts.metrics.bound(effective)
			logger.Debug().Str("type", c.Key()).Str("surface", s.Key()).Stringer("lifetime", effective).Msg("candidate bound")
		}
	}

	logger.Info().
		Int("candidates", len(p.candidates)).
		Int("bindings", len(results)-len(ignored)).
		Int("skipped_surfaces", skipped).
		Msg("registration pass resolved")
	return results, nil
}

func lifetimeNames(ls []Lifetime) []string {
	names := make([]string, len(ls))
	for i, l := range ls {
		names[i] = l.String()
	}
	return names
}
