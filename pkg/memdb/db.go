package memdb

import (
	"context"
	"log/slog"

	"github.com/shrtyk/memdb/internal/core/store"
)

const DefaultShards = store.DefaultShardsCount

// Entry is a key with the value it held when it was removed.
type Entry struct {
	Key   []byte
	Value []byte
}

// DB is safe for concurrent use. Copies of a *DB share the same data.
type DB struct {
	m      *store.ShardedMap
	logger *slog.Logger
}

func Open(_ context.Context, opts ...Option) (*DB, error) {
	o := &options{
		shards: DefaultShards,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(o)
	}

	m := store.NewShardedMap(nil, o.shards, o.hasher)
	o.logger.Debug("memdb opened", slog.Int("shards", m.ShardsCount()))

	return &DB{m: m, logger: o.logger}, nil
}

// Set stores value under key and returns the value it replaced, if any.
func (db *DB) Set(_ context.Context, key, value []byte) (prev []byte, replaced bool, err error) {
	prev, replaced = db.m.Set(key, value)
	return prev, replaced, nil
}

func (db *DB) Get(_ context.Context, key []byte) ([]byte, bool, error) {
	val, ok := db.m.Get(key)
	return val, ok, nil
}

// Del removes key and returns the removed pair, or nil when key was absent.
func (db *DB) Del(_ context.Context, key []byte) (*Entry, error) {
	e, ok := db.m.Delete(key)
	if !ok {
		return nil, nil
	}
	return &Entry{Key: e.Key, Value: e.Value}, nil
}

func (db *DB) Len() int {
	return db.m.Len()
}

func (db *DB) Shards() int {
	return db.m.ShardsCount()
}

// Range calls fn for every entry until fn returns false. Entries written
// concurrently may or may not be visited, and fn must not write to db.
func (db *DB) Range(fn func(key, value []byte) bool) {
	db.m.Range(fn)
}
