package digo

import (
	"encoding/json"
	"io"
)

// Equatable is the generic equality contract. Every instantiation of it is
// ignored by default, the same way io.Closer and json.Marshaler are.
type Equatable[T any] interface {
	Equal(other T) bool
}

// DefaultIgnoredSurfaces returns the surfaces every pipeline starts out
// ignoring: the disposal contract, the serialization contract and the open
// generic equality contract.
func DefaultIgnoredSurfaces() []Surface {
	return []Surface{
		SurfaceOf[io.Closer](),
		SurfaceOf[json.Marshaler](),
		OpenSurfaceOf[Equatable[any]](),
	}
}
