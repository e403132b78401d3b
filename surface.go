package digo

import (
	"fmt"
	"go/token"
	"reflect"
	"regexp"
	"strings"
)

// Surface describes an interface a candidate can be bound against.
// Generic surfaces carry their type arguments. An open surface has an
// arity but no arguments and stands for every instantiation of its base.
type Surface struct {
	pkgPath string
	name    string
	args    []string
	arity   int
	iface   bool
	nested  bool
	typ     reflect.Type
}

// SurfaceOption configures a Surface built by NewSurface.
type SurfaceOption func(*Surface)

// WithTypeArgs makes the surface a closed generic instantiation.
func WithTypeArgs(args ...string) SurfaceOption {
	return func(s *Surface) {
		s.args = append([]string(nil), args...)
		s.arity = len(args)
	}
}

// WithOpenArity makes the surface an open generic shape with n type parameters.
func WithOpenArity(n int) SurfaceOption {
	return func(s *Surface) {
		s.args = nil
		s.arity = n
	}
}

// NotInterface marks the surface as a concrete type rather than a contract.
func NotInterface() SurfaceOption {
	return func(s *Surface) {
		s.iface = false
	}
}

// NestedIn marks the surface as declared inside another type or function,
// which keeps it out of the exposed surface set.
func NestedIn() SurfaceOption {
	return func(s *Surface) {
		s.nested = true
	}
}

// NewSurface builds an interface surface from its package path and base name.
func NewSurface(pkgPath, name string, opts ...SurfaceOption) Surface {
	s := Surface{pkgPath: pkgPath, name: name, iface: true}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// SurfaceOf returns the surface for the type parameter T.
func SurfaceOf[T any]() Surface {
	return SurfaceFor(reflect.TypeOf((*T)(nil)).Elem())
}

// SurfaceFor returns the surface for t. Type arguments of generic
// instantiations are taken from the reflected name.
func SurfaceFor(t reflect.Type) Surface {
	if t == nil {
		return Surface{}
	}
	name, args := splitTypeName(t.Name())
	return Surface{
		pkgPath: t.PkgPath(),
		name:    name,
		args:    args,
		arity:   len(args),
		iface:   t.Kind() == reflect.Interface,
		typ:     t,
	}
}

// OpenSurfaceOf returns the open generic shape of the instantiation T,
// e.g. OpenSurfaceOf[Equatable[any]]() stands for every Equatable[X].
// For a non-generic T the surface is returned unchanged.
func OpenSurfaceOf[T any]() Surface {
	s := SurfaceOf[T]()
	if s.arity > 0 {
		s.args = nil
		s.typ = nil
	}
	return s
}

// ParseSurface parses the textual form "pkg/path.Name" with optional type
// arguments "pkg/path.Name[Arg1,Arg2]". Arguments written as "_" mark an
// open shape; mixing "_" with concrete arguments is rejected.
func ParseSurface(text string) (Surface, error) {
	text = strings.TrimSpace(text)
	qualified, args := splitTypeName(text)
	if strings.Contains(qualified, "[") || strings.Contains(qualified, "]") {
		return Surface{}, &InvalidArgumentError{Arg: "surface", Reason: fmt.Sprintf("malformed type arguments in %q", text)}
	}

	var pkgPath, name string
	if i := strings.LastIndexByte(qualified, '.'); i >= 0 {
		pkgPath, name = qualified[:i], qualified[i+1:]
	} else {
		name = qualified
	}
	if name == "" {
		return Surface{}, &InvalidArgumentError{Arg: "surface", Reason: fmt.Sprintf("missing type name in %q", text)}
	}

	if strings.HasSuffix(text, "[]") {
		return Surface{}, &InvalidArgumentError{Arg: "surface", Reason: fmt.Sprintf("empty type argument list in %q", text)}
	}
	if len(args) == 0 {
		return NewSurface(pkgPath, name), nil
	}

	open := 0
	for _, arg := range args {
		if arg == "" {
			return Surface{}, &InvalidArgumentError{Arg: "surface", Reason: fmt.Sprintf("empty type argument in %q", text)}
		}
		if arg == "_" {
			open++
		}
	}
	switch open {
	case 0:
		return NewSurface(pkgPath, name, WithTypeArgs(args...)), nil
	case len(args):
		return NewSurface(pkgPath, name, WithOpenArity(len(args))), nil
	default:
		return Surface{}, &InvalidArgumentError{Arg: "surface", Reason: fmt.Sprintf("partially open type arguments in %q", text)}
	}
}

// PkgPath returns the import path of the package declaring the surface.
func (s Surface) PkgPath() string { return s.pkgPath }

// BaseName returns the type name without type arguments.
func (s Surface) BaseName() string { return s.name }

func (s Surface) Arity() int { return s.arity }

func (s Surface) IsInterface() bool { return s.iface }

func (s Surface) IsNested() bool { return s.nested }

// Type returns the reflected type, or nil for surfaces built by name and for open shapes.
func (s Surface) Type() reflect.Type { return s.typ }

// TypeArgs returns a copy of the type arguments; nil for open and non-generic surfaces.
func (s Surface) TypeArgs() []string {
	if len(s.args) == 0 {
		return nil
	}
	return append([]string(nil), s.args...)
}

// IsGeneric reports whether the surface has type parameters.
func (s Surface) IsGeneric() bool { return s.arity > 0 }

// IsOpen reports whether the surface is a generic shape without type arguments.
func (s Surface) IsOpen() bool { return s.arity > 0 && len(s.args) == 0 }

// IsExported reports whether the surface is visible outside its package.
func (s Surface) IsExported() bool { return token.IsExported(s.name) }

// IsZero reports whether s is the zero Surface.
func (s Surface) IsZero() bool { return s.name == "" && s.pkgPath == "" }

// BaseKey identifies the surface without its type arguments.
// Open-shape matching compares base keys only.
func (s Surface) BaseKey() string {
	if s.pkgPath == "" {
		return s.name
	}
	return s.pkgPath + "." + s.name
}

// Key identifies the surface including its type arguments.
func (s Surface) Key() string {
	if s.arity == 0 {
		return s.BaseKey()
	}
	return s.BaseKey() + "[" + strings.Join(s.params(), ",") + "]"
}

// Name is the unqualified display name used in reports: "Closer",
// "Repository[mock.User]", "Equatable[_]".
func (s Surface) Name() string {
	if s.arity == 0 {
		return s.name
	}
	params := s.params()
	for i, p := range params {
		params[i] = shortTypeName(p)
	}
	return s.name + "[" + strings.Join(params, ",") + "]"
}

func (s Surface) String() string {
	return s.Name()
}

func (s Surface) params() []string {
	if len(s.args) > 0 {
		return append([]string(nil), s.args...)
	}
	params := make([]string, s.arity)
	for i := range params {
		params[i] = "_"
	}
	return params
}

// splitTypeName separates "Name[A,B]" into "Name" and ["A", "B"].
func splitTypeName(n string) (string, []string) {
	i := strings.IndexByte(n, '[')
	if i < 0 || !strings.HasSuffix(n, "]") {
		return n, nil
	}
	return n[:i], splitTopLevel(n[i+1 : len(n)-1])
}

// splitTopLevel splits on commas that are not nested inside brackets,
// parentheses or braces.
func splitTopLevel(s string) []string {
	var (
		parts []string
		depth int
		start int
	)
	for i, r := range s {
		switch r {
		case '[', '(', '{':
			depth++
		case ']', ')', '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	if last := strings.TrimSpace(s[start:]); last != "" || len(parts) > 0 {
		parts = append(parts, last)
	}
	return parts
}

var importPathPrefix = regexp.MustCompile(`(?:[\w.~-]+/)+`)

// shortTypeName trims import paths from a reflected type argument:
// "github.com/centraunit/digo/mock.User" becomes "mock.User".
func shortTypeName(arg string) string {
	return importPathPrefix.ReplaceAllString(arg, "")
}
