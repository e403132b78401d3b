package digo

import "reflect"

// Markers are zero-size structs embedded in an implementation type to
// declare how it is registered:
//
//	type SessionStore struct {
//	    digo.RegisterAsScoped
//	    ...
//	}
//
// Markers are inherited: a marker embedded in an embedded struct, by value
// or by pointer, declares for the outer type too. Each embedding path counts
// as its own declaration.

// DoNotAutoRegister excludes the embedding type from every registration pass.
type DoNotAutoRegister struct{}

// RegisterAsTransient binds the embedding type with Transient lifetime.
type RegisterAsTransient struct{}

// RegisterAsScoped binds the embedding type with Scoped lifetime.
type RegisterAsScoped struct{}

// RegisterAsSingleton binds the embedding type with Singleton lifetime.
type RegisterAsSingleton struct{}

var (
	doNotAutoRegisterType = reflect.TypeOf((*DoNotAutoRegister)(nil)).Elem()

	lifetimeMarkers = map[reflect.Type]Lifetime{
		reflect.TypeOf((*RegisterAsTransient)(nil)).Elem(): Transient,
		reflect.TypeOf((*RegisterAsScoped)(nil)).Elem():    Scoped,
		reflect.TypeOf((*RegisterAsSingleton)(nil)).Elem(): Singleton,
	}
)

// readMarkers returns the exclusion flag and the lifetime declarations
// carried by the embedded markers of t and of the structs it embeds,
// depth first in field order.
func readMarkers(t reflect.Type) (excluded bool, lifetimes []Lifetime) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	var walk func(t reflect.Type, path map[reflect.Type]bool)
	walk = func(t reflect.Type, path map[reflect.Type]bool) {
		if t.Kind() != reflect.Struct || path[t] {
			return
		}
		path[t] = true
		defer delete(path, t)
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.Anonymous {
				continue
			}
			ft := f.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft == doNotAutoRegisterType {
				excluded = true
				continue
			}
			if l, ok := lifetimeMarkers[ft]; ok {
				lifetimes = append(lifetimes, l)
				continue
			}
			walk(ft, path)
		}
	}
	walk(t, map[reflect.Type]bool{})
	return excluded, lifetimes
}
