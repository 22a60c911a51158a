// Package cache provides the query store contract and key serialization for
// the seller console.
//
// # Overview
//
// This package exports two main interfaces and their default implementations:
//
//   - QueryStore: the keyed store holding the last-fetched payload of every
//     resource read, with read-through loading and targeted writes
//   - KeySerializer: builds stable query keys from a resource name and its
//     ordered filter params
//
// A query key identifies one cache entry: the same (resource, params) tuple
// always serializes to the same string, including when params are nil, so the
// unfiltered product list is one stable entry.
//
// # Basic Usage
//
// The simplest way to use the cache package is with the default key serializer:
//
//	serializer := cache.NewDefaultKeySerializer()
//	key := serializer.SerializeKey("Products", search, status)
//
// For resource reads, combine it with a QueryStore implementation:
//
//	products, err := cache.GetOrFetch(ctx, store, key, func(ctx context.Context) ([]client.Product, error) {
//		return api.ListProducts(ctx, query)
//	})
//
// Concurrent GetOrFetch calls for the same key share one in-flight load; the
// backend is hit exactly once per miss.
//
// # Staleness Policy
//
// Entries never go stale on a timer. A value written under a key is served
// until the session TTL elapses, the entry is explicitly overwritten or
// deleted, or capacity eviction removes it. Mutation flows are responsible for
// patching entries after writes; see the console package.
//
// # Key Serialization Strategy
//
// The default serializer joins segments with "::":
//
//   - nil params (and nil pointers) serialize to "nil"
//   - basic types use their string representation
//   - slices serialize recursively with their length
//   - anything else falls back to JSON
//
// Prefix matching over serialized keys is how callers address "every entry of
// one resource": resource names must therefore not be prefixes of each other
// when they take params.
//
// # Error Handling
//
// Loader errors propagate unchanged and nothing is stored. A type mismatch
// between the stored value and the caller's expectation surfaces as
// ErrInvalidResultType rather than a panic.
//
// # See Also
//
// For the sturdyc-backed store see internal/cacheinfra. For the mutation flows
// that keep entries in sync with the backend, see the console package.
package cache
