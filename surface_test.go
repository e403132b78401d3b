package digo_test

import (
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centraunit/digo"
	"github.com/centraunit/digo/mock"
)

func TestSurfaceOf(t *testing.T) {
	closer := digo.SurfaceOf[io.Closer]()
	assert.Equal(t, "Closer", closer.Name())
	assert.Equal(t, "io.Closer", closer.Key())
	assert.True(t, closer.IsInterface())
	assert.False(t, closer.IsGeneric())

	repo := digo.SurfaceOf[mock.Repository[mock.User]]()
	assert.Equal(t, "Repository[mock.User]", repo.Name())
	assert.Equal(t, mockPkg+".Repository["+mockPkg+".User]", repo.Key())
	assert.Equal(t, mockPkg+".Repository", repo.BaseKey())
	assert.Equal(t, []string{mockPkg + ".User"}, repo.TypeArgs())
	assert.True(t, repo.IsGeneric())
	assert.False(t, repo.IsOpen())
	assert.NotNil(t, repo.Type())

	open := digo.OpenSurfaceOf[mock.Repository[any]]()
	assert.Equal(t, "Repository[_]", open.Name())
	assert.True(t, open.IsOpen())
	assert.Equal(t, repo.BaseKey(), open.BaseKey())
	assert.Nil(t, open.Type())

	assert.False(t, digo.SurfaceOf[mock.User]().IsInterface())
	assert.False(t, digo.SurfaceOf[error]().IsExported())
}

func TestParseSurface(t *testing.T) {
	tests := []struct {
		in      string
		key     string
		name    string
		open    bool
		wantErr bool
	}{
		{in: "io.Closer", key: "io.Closer", name: "Closer"},
		{in: "gopkg.in/yaml.v3.Marshaler", key: "gopkg.in/yaml.v3.Marshaler", name: "Marshaler"},
		{in: "example.com/store.Repository[example.com/model.User]", key: "example.com/store.Repository[example.com/model.User]", name: "Repository[model.User]"},
		{in: "example.com/store.Index[string, map[string]int]", key: "example.com/store.Index[string,map[string]int]", name: "Index[string,map[string]int]"},
		{in: "example.com/store.Repository[_]", key: "example.com/store.Repository[_]", name: "Repository[_]", open: true},
		{in: "example.com/store.Pair[_,_]", key: "example.com/store.Pair[_,_]", name: "Pair[_,_]", open: true},
		{in: "Local", key: "Local", name: "Local"},
		{in: "example.com/store.Pair[_,int]", wantErr: true},
		{in: "example.com/store.Repository[]", wantErr: true},
		{in: "example.com/store.Repository[", wantErr: true},
		{in: "example.com/store.Pair[,]", wantErr: true},
		{in: "example.com/store.Pair[int,]", wantErr: true},
		{in: "example.com/store.", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			s, err := digo.ParseSurface(tt.in)
			if tt.wantErr {
				var argErr *digo.InvalidArgumentError
				assert.True(t, errors.As(err, &argErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.key, s.Key())
			assert.Equal(t, tt.name, s.Name())
			assert.Equal(t, tt.open, s.IsOpen())
			assert.True(t, s.IsInterface())
		})
	}
}

func TestParsedSurfaceMatchesReflected(t *testing.T) {
	parsed, err := digo.ParseSurface(mockPkg + ".Repository[" + mockPkg + ".User]")
	require.NoError(t, err)
	assert.Equal(t, digo.SurfaceOf[mock.Repository[mock.User]]().Key(), parsed.Key())
}

func TestIgnoreValidation(t *testing.T) {
	p, err := digo.BeginRegistration(digo.NewCollection(), nil)
	require.NoError(t, err)

	tests := []struct {
		name    string
		ignore  func() (digo.Pipeline, error)
		wantErr bool
	}{
		{"ExactInterface", func() (digo.Pipeline, error) { return p.IgnoreExact(digo.SurfaceOf[mock.Cache]()) }, false},
		{"ExactClosedGeneric", func() (digo.Pipeline, error) { return digo.Ignore[mock.Repository[mock.User]](p) }, false},
		{"ExactConcrete", func() (digo.Pipeline, error) { return p.IgnoreExact(digo.SurfaceOf[mock.MockDB]()) }, true},
		{"ExactZero", func() (digo.Pipeline, error) { return p.IgnoreExact(digo.Surface{}) }, true},
		{"ExactNamedConcrete", func() (digo.Pipeline, error) {
			return p.IgnoreExact(digo.NewSurface("example.com/app", "Config", digo.NotInterface()))
		}, true},
		{"OpenShape", func() (digo.Pipeline, error) { return digo.IgnoreOpen[mock.Repository[any]](p) }, false},
		{"OpenNonGeneric", func() (digo.Pipeline, error) { return p.IgnoreOpenShape(digo.SurfaceOf[json.Marshaler]()) }, true},
		{"OpenClosed", func() (digo.Pipeline, error) { return p.IgnoreOpenShape(digo.SurfaceOf[mock.Repository[mock.Order]]()) }, true},
		{"OpenConcrete", func() (digo.Pipeline, error) {
			return p.IgnoreOpenShape(digo.NewSurface("example.com/app", "Box", digo.WithOpenArity(1), digo.NotInterface()))
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := tt.ignore()
			if !tt.wantErr {
				assert.NoError(t, err)
				assert.Len(t, next.IgnoredSurfaces(), 4)
				return
			}
			var argErr *digo.InvalidArgumentError
			assert.True(t, errors.As(err, &argErr))
			assert.Equal(t, "surface", argErr.Arg)
		})
	}
}

func TestIgnoreIsIdempotent(t *testing.T) {
	p, err := digo.BeginRegistration(digo.NewCollection(), nil)
	require.NoError(t, err)

	p, err = digo.Ignore[io.Closer](p)
	require.NoError(t, err)
	p, err = digo.IgnoreOpen[digo.Equatable[int]](p)
	require.NoError(t, err)

	bindings, err := p.Resolve()
	require.NoError(t, err)
	assert.Equal(t, defaultAnnouncements, digo.Report(bindings))
}
