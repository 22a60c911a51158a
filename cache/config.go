package cache

import (
	"time"

	"github.com/sellerhub/go-seller-console/internal/cacheinfra"
)

// Config exposes query store configuration options for consumers of the cache
// package. There is deliberately no refresh or background revalidation knob:
// entries are served until the session TTL elapses or a mutation overwrites
// them, which is the staleness policy the console relies on.
type Config struct {
	Capacity             int
	NumShards            int
	SessionTTL           time.Duration
	EvictionPercentage   int
	MissingRecordStorage bool
	EvictionInterval     time.Duration
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() Config {
	return convertFromInternal(cacheinfra.DefaultConfig())
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	return c.toInternal().Validate()
}

// NewQueryStore constructs the default query store implementation using the
// provided configuration.
func NewQueryStore(cfg Config) (QueryStore, error) {
	return cacheinfra.NewSturdycStore(cfg.toInternal())
}

func (c Config) toInternal() cacheinfra.Config {
	return cacheinfra.Config{
		Capacity:             c.Capacity,
		NumShards:            c.NumShards,
		SessionTTL:           c.SessionTTL,
		EvictionPercentage:   c.EvictionPercentage,
		MissingRecordStorage: c.MissingRecordStorage,
		EvictionInterval:     c.EvictionInterval,
	}
}

func convertFromInternal(cfg cacheinfra.Config) Config {
	return Config{
		Capacity:             cfg.Capacity,
		NumShards:            cfg.NumShards,
		SessionTTL:           cfg.SessionTTL,
		EvictionPercentage:   cfg.EvictionPercentage,
		MissingRecordStorage: cfg.MissingRecordStorage,
		EvictionInterval:     cfg.EvictionInterval,
	}
}
