package digo

import (
	"go/token"
	"reflect"
	"strings"
)

// Scan builds candidates from concrete types. Each candidate declares, in
// contract order, the contracts its value or pointer type implements.
//
// Only named, exported, non-generic, non-interface types are kept, the first
// occurrence of a type wins, and non-interface contracts are skipped.
// Markers embedded in the types are honoured as with CandidateOf.
func Scan(contracts []reflect.Type, types ...reflect.Type) []Candidate {
	ifaces := make([]reflect.Type, 0, len(contracts))
	for _, c := range contracts {
		if c != nil && c.Kind() == reflect.Interface {
			ifaces = append(ifaces, c)
		}
	}

	seen := make(map[reflect.Type]struct{}, len(types))
	candidates := make([]Candidate, 0, len(types))
	for _, t := range types {
		if t == nil {
			continue
		}
		base := t
		for base.Kind() == reflect.Pointer {
			base = base.Elem()
		}
		if !scannable(base) {
			continue
		}
		if _, dup := seen[base]; dup {
			continue
		}
		seen[base] = struct{}{}

		ptr := reflect.PointerTo(base)
		var surfaces []Surface
		for _, iface := range ifaces {
			if base.Implements(iface) || ptr.Implements(iface) {
				surfaces = append(surfaces, SurfaceFor(iface))
			}
		}
		candidates = append(candidates, CandidateFor(ptr, WithSurfaces(surfaces...)))
	}
	return candidates
}

func scannable(t reflect.Type) bool {
	name := t.Name()
	if name == "" || strings.Contains(name, "[") {
		return false
	}
	return t.Kind() != reflect.Interface && token.IsExported(name)
}
