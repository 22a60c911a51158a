package di

import (
	"github.com/sellerhub/go-seller-console/cache"
	"github.com/sellerhub/go-seller-console/client"
	"github.com/sellerhub/go-seller-console/console"
)

// Container provides dependency injection for the seller console. It manages
// the session-scoped singletons — query store, key serializer, API client and
// console — so ownership is explicit instead of ambient global state.
type Container struct {
	store    cache.QueryStore
	keys     cache.KeySerializer
	api      *client.Client
	console  *console.Console
	cacheCfg cache.Config
}

// NewContainer creates a new DI container from the client and cache
// configurations. A nil notifier selects the logging notifier.
func NewContainer(clientCfg client.Config, cacheCfg cache.Config, notify console.Notifier) (*Container, error) {
	store, err := cache.NewQueryStore(cacheCfg)
	if err != nil {
		return nil, err
	}

	api, err := client.New(clientCfg)
	if err != nil {
		return nil, err
	}

	keys := cache.NewDefaultKeySerializer()

	return &Container{
		store:    store,
		keys:     keys,
		api:      api,
		console:  console.New(api, store, keys, notify),
		cacheCfg: cacheCfg,
	}, nil
}

// NewContainerWithDefaults creates a container using the default cache
// configuration. This is the typical entry point when only the backend
// location varies.
func NewContainerWithDefaults(clientCfg client.Config) (*Container, error) {
	return NewContainer(clientCfg, cache.DefaultConfig(), nil)
}

// NewContainerFromEnv creates a container configured from the environment
// (see client.ConfigFromEnv).
func NewContainerFromEnv() (*Container, error) {
	return NewContainerWithDefaults(client.ConfigFromEnv())
}

// Console returns the singleton console instance.
func (c *Container) Console() *console.Console {
	return c.console
}

// API returns the singleton API client, for callers that need an endpoint
// outside the cached read paths.
func (c *Container) API() *client.Client {
	return c.api
}

// QueryStore returns the singleton query store instance.
func (c *Container) QueryStore() cache.QueryStore {
	return c.store
}

// KeySerializer returns the singleton key serializer instance.
func (c *Container) KeySerializer() cache.KeySerializer {
	return c.keys
}

// CacheConfig returns a copy of the cache configuration used by this
// container. Useful for debugging and monitoring.
func (c *Container) CacheConfig() cache.Config {
	return c.cacheCfg
}
