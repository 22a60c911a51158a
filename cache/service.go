package cache

import (
	"context"
	"errors"
)

// ErrInvalidResultType is returned when a stored value cannot be converted to
// the type the caller asked for. It means two readers disagree about what a
// query key holds, which is always a programming error.
var ErrInvalidResultType = errors.New("cache: stored value has unexpected type")

// KeySerializer builds a query key from a resource name + its ordered filter
// params. It is responsible for producing stable keys across calls, including
// for nil params, so that (products, nil, nil) always addresses the same entry.
type KeySerializer interface {
	SerializeKey(resource string, params ...any) string
}

// FetchFn is the function signature QueryStore expects when loading a resource
// from the backend on a cache miss.
type FetchFn[T any] func(ctx context.Context) (T, error)

// QueryStore holds the last-fetched payload of every resource read, keyed by
// serialized (resource, params) tuples. It is exported so other packages can
// provide alternate backends; the default implementation lives in
// internal/cacheinfra.
type QueryStore interface {
	// GetOrFetch returns the stored value for key, or invokes fetchFn, stores
	// the result and returns it. Concurrent calls for the same key share a
	// single in-flight fetch; the loader runs once.
	GetOrFetch(ctx context.Context, key string, fetchFn any) (any, error)

	// Read returns the stored value for key, signalling absence with false.
	// Absence is not an error; it is the normal signal to fetch.
	Read(ctx context.Context, key string) (any, bool)

	// Write unconditionally replaces the value stored under key.
	Write(ctx context.Context, key string, value any)

	// Delete drops a single entry.
	Delete(ctx context.Context, key string) error

	// DeleteByPrefix drops every entry whose key starts with prefix.
	DeleteByPrefix(ctx context.Context, prefix string) error

	// Keys returns the keys of all live entries.
	Keys(ctx context.Context) []string
}

// GetOrFetch is a type-safe wrapper function that provides generic support for
// QueryStore.GetOrFetch.
func GetOrFetch[T any](ctx context.Context, store QueryStore, key string, fetchFn FetchFn[T]) (T, error) {
	result, err := store.GetOrFetch(ctx, key, fetchFn)
	if err != nil {
		var zero T
		return zero, err
	}
	if result == nil {
		var zero T
		return zero, nil
	}
	typed, ok := result.(T)
	if !ok {
		var zero T
		return zero, ErrInvalidResultType
	}
	return typed, nil
}

// Read is the typed counterpart of QueryStore.Read.
func Read[T any](ctx context.Context, store QueryStore, key string) (T, bool) {
	value, ok := store.Read(ctx, key)
	if !ok {
		var zero T
		return zero, false
	}
	typed, ok := value.(T)
	if !ok {
		var zero T
		return zero, false
	}
	return typed, true
}
