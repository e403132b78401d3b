package digo

import (
	"fmt"
	"io"
)

// Binding is one entry of a Resolve report. It either records a candidate
// bound to a surface with a lifetime, or, without a candidate, announces a
// surface the pass ignores.
type Binding struct {
	candidate    Candidate
	hasCandidate bool
	surface      Surface
	lifetime     Lifetime
}

// Candidate returns the bound candidate; ok is false for ignored-surface announcements.
func (b Binding) Candidate() (c Candidate, ok bool) {
	return b.candidate, b.hasCandidate
}

func (b Binding) Surface() Surface { return b.surface }

// Lifetime is empty for ignored-surface announcements.
func (b Binding) Lifetime() Lifetime { return b.lifetime }

// Ignored reports whether b announces an ignored surface.
func (b Binding) Ignored() bool { return !b.hasCandidate }

// String renders "The interface <surface> is ignored" or
// "<type> : <surface> (<lifetime>)".
func (b Binding) String() string {
	if !b.hasCandidate {
		return fmt.Sprintf("The interface %s is ignored", b.surface.Name())
	}
	return fmt.Sprintf("%s : %s (%s)", b.candidate.Name(), b.surface.Name(), b.lifetime)
}

// Report renders every binding, in order.
func Report(bindings []Binding) []string {
	lines := make([]string, len(bindings))
	for i, b := range bindings {
		lines[i] = b.String()
	}
	return lines
}

// WriteReport writes the report to w, one binding per line.
func WriteReport(w io.Writer, bindings []Binding) error {
	for _, b := range bindings {
		if _, err := fmt.Fprintln(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}
