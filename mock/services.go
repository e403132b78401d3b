package mock

import (
	"encoding/json"
	"io"
	"reflect"

	"github.com/centraunit/digo"
)

// Core interfaces
type Database interface {
	Connect() error
}

type Cache interface {
	Get(key string) any
}

type Repository[T any] interface {
	Find(id string) (T, error)
}

type FieldError interface {
	error
	FieldName() string
}

type hiddenContract interface {
	hidden()
}

type User struct{ ID string }

type Order struct{ ID string }

// MockDB implements Database and io.Closer with no lifetime marker.
type MockDB struct {
	isConnected bool
}

func (m *MockDB) Connect() error {
	m.isConnected = true
	return nil
}

func (m *MockDB) Close() error {
	m.isConnected = false
	return nil
}

func (m *MockDB) IsConnected() bool {
	return m.isConnected
}

type MockCache struct {
	digo.RegisterAsSingleton
	items map[string]any
}

func (m *MockCache) Get(key string) any {
	return m.items[key]
}

type SessionStore struct {
	digo.RegisterAsScoped
	sessions map[string]any
}

func (s *SessionStore) Get(key string) any {
	return s.sessions[key]
}

func (s *SessionStore) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.sessions)
}

type AuditLog struct {
	digo.DoNotAutoRegister
}

func (a *AuditLog) Connect() error { return nil }

type UserRepository struct{}

func (r *UserRepository) Find(id string) (User, error) {
	return User{ID: id}, nil
}

func (r *UserRepository) Equal(other *UserRepository) bool {
	return r == other
}

type OrderRepository struct {
	digo.RegisterAsTransient
}

func (r *OrderRepository) Find(id string) (Order, error) {
	return Order{ID: id}, nil
}

// ConflictingService declares two lifetimes and can never be resolved.
type ConflictingService struct {
	digo.RegisterAsSingleton
	digo.RegisterAsScoped
}

func (c *ConflictingService) Connect() error { return nil }

type HiddenService struct{}

func (h *HiddenService) Connect() error { return nil }

func (h *HiddenService) hidden() {}

type ValidationError struct {
	Field string
}

func (e ValidationError) Error() string { return "invalid " + e.Field }

func (e ValidationError) FieldName() string { return e.Field }

// ScopedValidationError opts back in to registration under the legacy error-type policy.
type ScopedValidationError struct {
	digo.RegisterAsScoped
	Field string
}

func (e *ScopedValidationError) Error() string { return "invalid " + e.Field }

func (e *ScopedValidationError) FieldName() string { return e.Field }

// Markers reached through embedding.
type scopedBase struct {
	digo.RegisterAsScoped
}

type retiredBase struct {
	digo.DoNotAutoRegister
}

type PointerMarkedService struct {
	*digo.RegisterAsSingleton
}

type InheritedScopeService struct {
	scopedBase
}

// RedeclaredScopeService inherits Scoped and declares Singleton, which conflicts.
type RedeclaredScopeService struct {
	scopedBase
	digo.RegisterAsSingleton
}

type RetiredService struct {
	*retiredBase
}

type SelfEmbedding struct {
	*SelfEmbedding
	digo.RegisterAsTransient
}

type internalService struct{}

func (s *internalService) Connect() error { return nil }

// Contracts returns the interfaces the fixtures are scanned against.
func Contracts() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf((*Database)(nil)).Elem(),
		reflect.TypeOf((*Cache)(nil)).Elem(),
		reflect.TypeOf((*Repository[User])(nil)).Elem(),
		reflect.TypeOf((*Repository[Order])(nil)).Elem(),
		reflect.TypeOf((*FieldError)(nil)).Elem(),
		reflect.TypeOf((*io.Closer)(nil)).Elem(),
		reflect.TypeOf((*json.Marshaler)(nil)).Elem(),
		reflect.TypeOf((*digo.Equatable[*UserRepository])(nil)).Elem(),
		reflect.TypeOf((*hiddenContract)(nil)).Elem(),
	}
}

// Types returns every resolvable fixture type, in discovery order.
func Types() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf((*MockDB)(nil)).Elem(),
		reflect.TypeOf((*MockCache)(nil)).Elem(),
		reflect.TypeOf((*SessionStore)(nil)).Elem(),
		reflect.TypeOf((*AuditLog)(nil)).Elem(),
		reflect.TypeOf((*UserRepository)(nil)).Elem(),
		reflect.TypeOf((*OrderRepository)(nil)).Elem(),
		reflect.TypeOf((*HiddenService)(nil)).Elem(),
		reflect.TypeOf((*ValidationError)(nil)).Elem(),
		reflect.TypeOf((*internalService)(nil)).Elem(),
	}
}

// ConflictingTypes returns Types with ConflictingService inserted after MockCache.
func ConflictingTypes() []reflect.Type {
	types := Types()
	return append(types[:2:2], append([]reflect.Type{reflect.TypeOf((*ConflictingService)(nil)).Elem()}, types[2:]...)...)
}
