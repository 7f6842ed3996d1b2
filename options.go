package discovery

import (
	"time"

	"go.uber.org/zap"
)

// Option configures the Engine.
type Option interface {
	apply(*engineConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*engineConfig)

func (f optionFunc) apply(c *engineConfig) { f(c) }

type engineConfig struct {
	addrs    []string
	username string
	password string
	db       int

	corpus []Item

	cacheTTL time.Duration
	logger   *zap.Logger
}

// WithRedis configures the engine to load content and persist analytics
// through a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *engineConfig) {
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedisCluster configures the engine against a Redis cluster.
func WithRedisCluster(addrs []string, username, password string) Option {
	return optionFunc(func(c *engineConfig) {
		c.addrs = addrs
		c.username = username
		c.password = password
	})
}

// WithSources runs the engine over a static in-memory corpus instead of a
// database. Analytics are kept in memory only and per-user history and
// reference pools are unavailable.
func WithSources(items ...Item) Option {
	return optionFunc(func(c *engineConfig) {
		c.corpus = items
	})
}

// WithCacheTTL sets how long cached search results stay fresh.
// Non-positive values fall back to the 10 minute default.
func WithCacheTTL(ttl time.Duration) Option {
	return optionFunc(func(c *engineConfig) {
		c.cacheTTL = ttl
	})
}

// WithLogger enables structured logging for engine operations.
// The default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *engineConfig) {
		c.logger = l
	})
}
