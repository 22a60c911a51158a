package cacheinfra

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/viccon/sturdyc"
)

// Config holds the configuration for the sturdyc query store.
type Config struct {
	// Capacity defines the maximum number of entries the store can hold.
	// Must be greater than 0.
	Capacity int

	// NumShards determines the number of shards for concurrent access.
	// Higher values improve concurrency but increase memory overhead.
	// Must be greater than 0.
	NumShards int

	// SessionTTL is how long an entry may live before it is dropped. Entries
	// are never refreshed on a timer; the TTL is an upper bound on one
	// dashboard session, not a freshness policy.
	// Must be greater than 0.
	SessionTTL time.Duration

	// EvictionPercentage specifies what percentage of entries to evict
	// when the store reaches its capacity. Must be between 1-100.
	EvictionPercentage int

	// MissingRecordStorage enables storage for missing record flags so a
	// resource that returned nothing is not fetched again on every read.
	MissingRecordStorage bool

	// EvictionInterval sets how often the store checks for expired entries.
	// Zero value uses the default interval.
	EvictionInterval time.Duration
}

// DefaultConfig returns a Config sized for a single dashboard session.
func DefaultConfig() Config {
	return Config{
		Capacity:             10000,
		NumShards:            64,
		SessionTTL:           12 * time.Hour,
		EvictionPercentage:   10,
		MissingRecordStorage: false,
		EvictionInterval:     0,
	}
}

// ToSturdycOptions converts the Config to a sturdyc.Option slice.
// Capacity, NumShards, SessionTTL and EvictionPercentage are passed directly
// to sturdyc.New() and are not included in the options. Early refreshes stay
// disabled: a refresh timer would violate the never-stale-on-its-own contract.
func (c Config) ToSturdycOptions() []sturdyc.Option {
	var options []sturdyc.Option

	if c.MissingRecordStorage {
		options = append(options, sturdyc.WithMissingRecordStorage())
	}

	if c.EvictionInterval > 0 {
		options = append(options, sturdyc.WithEvictionInterval(c.EvictionInterval))
	}

	return options
}

// Validate checks if the configuration values are valid.
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return &ConfigError{Field: "Capacity", Message: "must be greater than 0"}
	}

	if c.NumShards <= 0 {
		return &ConfigError{Field: "NumShards", Message: "must be greater than 0"}
	}

	if c.SessionTTL <= 0 {
		return &ConfigError{Field: "SessionTTL", Message: "must be greater than 0"}
	}

	if c.EvictionPercentage < 1 || c.EvictionPercentage > 100 {
		return &ConfigError{Field: "EvictionPercentage", Message: "must be between 1 and 100"}
	}

	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}

// sturdycStore wraps a sturdyc client providing the query store behaviour.
// sturdyc contributes the sharded keyed storage, capacity eviction and the
// in-flight request coalescing that de-duplicates concurrent identical reads.
type sturdycStore struct {
	client *sturdyc.Client[any]
}

// NewSturdycStore creates a new sturdyc-backed query store.
// It validates the configuration and initializes a sturdyc client with the
// provided settings.
func NewSturdycStore(cfg Config) (*sturdycStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := sturdyc.New[any](
		cfg.Capacity,
		cfg.NumShards,
		cfg.SessionTTL,
		cfg.EvictionPercentage,
		cfg.ToSturdycOptions()...,
	)

	return &sturdycStore{client: client}, nil
}

// validateFetchFn ensures fetchFn matches the expected signature:
// func(context.Context) (T, error)
func validateFetchFn(fetchFn any) error {
	if fetchFn == nil {
		return &ConfigError{Field: "fetchFn", Message: "cannot be nil"}
	}

	fnType := reflect.TypeOf(fetchFn)

	if fnType.Kind() != reflect.Func {
		return &ConfigError{Field: "fetchFn", Message: "must be a function"}
	}

	if fnType.NumIn() != 1 || fnType.NumOut() != 2 {
		return &ConfigError{Field: "fetchFn", Message: "must have signature func(context.Context) (T, error)"}
	}

	contextType := reflect.TypeOf((*context.Context)(nil)).Elem()
	if !fnType.In(0).Implements(contextType) {
		return &ConfigError{Field: "fetchFn", Message: "first parameter must be context.Context"}
	}

	errorType := reflect.TypeOf((*error)(nil)).Elem()
	if !fnType.Out(1).Implements(errorType) {
		return &ConfigError{Field: "fetchFn", Message: "second return value must be error"}
	}

	return nil
}

// GetOrFetch implements cache.QueryStore.GetOrFetch.
// It attempts to retrieve the value for the provided key. On a miss it
// executes fetchFn, stores the fresh value and returns it. sturdyc coalesces
// concurrent calls for the same key, so the loader runs once per miss.
//
// The fetchFn parameter must be of type cache.FetchFn[T]; the generic
// signature is bridged with reflection since the interface is not generic.
func (s *sturdycStore) GetOrFetch(ctx context.Context, key string, fetchFn any) (any, error) {
	if err := validateFetchFn(fetchFn); err != nil {
		return nil, err
	}

	typedFetchFn := func(ctx context.Context) (any, error) {
		return callFetchFn(ctx, fetchFn)
	}

	return s.client.GetOrFetch(ctx, key, typedFetchFn)
}

// callFetchFn invokes any function matching func(context.Context) (T, error).
// fetchFn is guaranteed valid because validateFetchFn ran first.
func callFetchFn(ctx context.Context, fetchFn any) (any, error) {
	if fn, ok := fetchFn.(func(context.Context) (any, error)); ok {
		return fn(ctx)
	}

	results := reflect.ValueOf(fetchFn).Call([]reflect.Value{reflect.ValueOf(ctx)})

	var result any
	if resultValue := results[0]; resultValue.IsValid() && resultValue.CanInterface() {
		result = resultValue.Interface()
	}

	var err error
	if errValue := results[1]; errValue.IsValid() && !errValue.IsNil() {
		err = errValue.Interface().(error)
	}

	return result, err
}

// Read implements cache.QueryStore.Read.
func (s *sturdycStore) Read(ctx context.Context, key string) (any, bool) {
	return s.client.Get(key)
}

// Write implements cache.QueryStore.Write. The previous value, if any, is
// replaced unconditionally.
func (s *sturdycStore) Write(ctx context.Context, key string, value any) {
	s.client.Set(key, value)
}

// Delete implements cache.QueryStore.Delete. Subsequent GetOrFetch calls for
// the key will load fresh data from the backend.
func (s *sturdycStore) Delete(ctx context.Context, key string) error {
	s.client.Delete(key)
	return nil
}

// DeleteByPrefix implements cache.QueryStore.DeleteByPrefix. It removes every
// entry whose key starts with the given prefix, which maps one resource name
// to all of its filtered variants.
func (s *sturdycStore) DeleteByPrefix(ctx context.Context, prefix string) error {
	for _, key := range s.client.ScanKeys() {
		if strings.HasPrefix(key, prefix) {
			s.client.Delete(key)
		}
	}

	return nil
}

// Keys implements cache.QueryStore.Keys.
func (s *sturdycStore) Keys(ctx context.Context) []string {
	return s.client.ScanKeys()
}
