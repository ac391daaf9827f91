package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/shrtyk/memdb/internal/cfg"
	"github.com/shrtyk/memdb/internal/core/ports/metrics"
	pstore "github.com/shrtyk/memdb/internal/core/ports/store"
)

var _ pstore.Store = (*store)(nil)

type store struct {
	cfg     *cfg.StoreCfg
	storage *ShardedMap

	logger *slog.Logger
}

func NewStore(
	cfg *cfg.StoreCfg,
	shardCfg *cfg.ShardsCfg,
	hasher Hasher,
	m metrics.Metrics,
	l *slog.Logger,
) *store {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}

	storage := NewShardedMap(shardCfg, shardCfg.ShardsCount, hasher)
	storage.log = l
	if m != nil {
		storage.onRebuild = func(took time.Duration) {
			m.ShardRebuild(took.Seconds())
		}
	}

	return &store{
		cfg:     cfg,
		storage: storage,
		logger:  l,
	}
}

func (s *store) Put(key, value []byte) ([]byte, bool, error) {
	if s.cfg.MaxKeySize > 0 && len(key) > s.cfg.MaxKeySize {
		return nil, false, pstore.ErrKeyTooLarge
	}
	if s.cfg.MaxValSize > 0 && len(value) > s.cfg.MaxValSize {
		return nil, false, pstore.ErrValueTooLarge
	}
	prev, replaced := s.storage.Set(key, value)
	return prev, replaced, nil
}

func (s *store) Get(key []byte) ([]byte, error) {
	val, ok := s.storage.Get(key)
	if !ok {
		return nil, pstore.ErrNoSuchKey
	}
	return val, nil
}

func (s *store) Delete(key []byte) ([]byte, error) {
	e, ok := s.storage.Delete(key)
	if !ok {
		return nil, pstore.ErrNoSuchKey
	}
	return e.Value, nil
}

func (s *store) Len() int {
	return s.storage.Len()
}

func (s *store) ShardsCount() int {
	return s.storage.ShardsCount()
}

func (s *store) StartMapRebuilder(ctx context.Context, wg *sync.WaitGroup) {
	s.storage.StartShardsSupervisor(ctx, wg)
}
