package memdb

import (
	"log/slog"

	"github.com/shrtyk/memdb/internal/core/store"
)

type Hasher = store.Hasher

type Option func(*options)

type options struct {
	shards int
	hasher Hasher
	logger *slog.Logger
}

// WithShards sets the number of shards, rounded up to a power of two.
// Non-positive values keep the default.
func WithShards(n int) Option {
	return func(o *options) {
		o.shards = n
	}
}

// WithHasher replaces the default xxhash key hasher.
func WithHasher(h Hasher) Option {
	return func(o *options) {
		o.hasher = h
	}
}

// WithLogger sets the logger used by the DB. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Murmur3 returns the murmur3 key hasher.
func Murmur3() Hasher {
	return store.Murmur3Hasher{}
}
