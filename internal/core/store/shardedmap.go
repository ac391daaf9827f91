package store

import (
	"context"
	"log/slog"
	"maps"
	"math/bits"
	"sync"
	"time"

	"github.com/shrtyk/memdb/internal/cfg"
)

const (
	// Fallback number of shards
	DefaultShardsCount = 128
)

type Entry struct {
	Key   []byte
	Value []byte
}

// Shard owns one slice of the key space. All fields are guarded by mu.
type Shard struct {
	mu  sync.RWMutex
	cfg *cfg.ShardsCfg
	m   map[string][]byte

	puts    uint64
	deletes uint64
	// high-water mark of len(m) since the last rebuild
	maxSize int
}

// ShardedMap is a concurrent hash map split into a power-of-two number of
// independently locked shards. A key always maps to the same shard.
type ShardedMap struct {
	cfg    *cfg.ShardsCfg
	shards []*Shard
	mask   uint64
	hash   Hasher

	log       *slog.Logger
	onRebuild func(took time.Duration)
}

type Hasher interface {
	Sum64([]byte) uint64
}

// NewShardedMap rounds shardsCount up to the next power of two.
// A nil hasher means xxhash.
func NewShardedMap(shardsCfg *cfg.ShardsCfg, shardsCount int, hasher Hasher) *ShardedMap {
	if shardsCount <= 0 {
		shardsCount = DefaultShardsCount
	}
	if hasher == nil {
		hasher = Xxhasher{}
	}

	n := roundUpPow2(shardsCount)
	shards := make([]*Shard, n)
	for i := range n {
		shards[i] = &Shard{
			cfg: shardsCfg,
			m:   make(map[string][]byte),
		}
	}

	return &ShardedMap{
		cfg:    shardsCfg,
		shards: shards,
		mask:   uint64(n - 1),
		hash:   hasher,
		log:    slog.New(slog.DiscardHandler),
	}
}

func roundUpPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

func (m *ShardedMap) getShard(key []byte) *Shard {
	return m.shards[m.hash.Sum64(key)&m.mask]
}

// Set stores a private copy of value and returns the value it replaced.
func (m *ShardedMap) Set(key, value []byte) (prev []byte, replaced bool) {
	v := clone(value)
	shard := m.getShard(key)

	shard.mu.Lock()
	defer shard.mu.Unlock()

	prev, replaced = shard.m[string(key)]
	shard.m[string(key)] = v
	shard.puts++
	if !replaced && len(shard.m) > shard.maxSize {
		shard.maxSize = len(shard.m)
	}
	// prev is no longer reachable from the shard, so it is handed out as is
	return prev, replaced
}

// Get returns a copy of the stored value.
func (m *ShardedMap) Get(key []byte) ([]byte, bool) {
	shard := m.getShard(key)

	shard.mu.RLock()
	defer shard.mu.RUnlock()

	val, ok := shard.m[string(key)]
	if !ok {
		return nil, false
	}
	return clone(val), true
}

func (m *ShardedMap) Delete(key []byte) (Entry, bool) {
	shard := m.getShard(key)

	shard.mu.Lock()
	defer shard.mu.Unlock()

	val, ok := shard.m[string(key)]
	if !ok {
		return Entry{}, false
	}
	delete(shard.m, string(key))
	shard.deletes++

	return Entry{Key: clone(key), Value: val}, true
}

func (m *ShardedMap) Len() int {
	count := 0
	for _, shard := range m.shards {
		shard.mu.RLock()
		count += len(shard.m)
		shard.mu.RUnlock()
	}
	return count
}

func (m *ShardedMap) ShardsCount() int {
	return len(m.shards)
}

// Range calls fn with copies of every entry until fn returns false.
// Shards are visited one at a time under their read lock, so the view is not
// a consistent snapshot and fn must not write to the same map.
func (m *ShardedMap) Range(fn func(key, value []byte) bool) {
	for _, shard := range m.shards {
		shard.mu.RLock()
		for k, v := range shard.m {
			if !fn([]byte(k), clone(v)) {
				shard.mu.RUnlock()
				return
			}
		}
		shard.mu.RUnlock()
	}
}

// StartShardsSupervisor periodically rebuilds sparse shards until ctx is done.
// Go maps never give memory back after deletes, a rebuild reallocates the
// shard's map at its live size.
func (m *ShardedMap) StartShardsSupervisor(ctx context.Context, wg *sync.WaitGroup) {
	if m.cfg == nil || m.cfg.CheckFreq <= 0 {
		m.log.Info("shards supervisor disabled")
		return
	}

	jobs := make(chan int)
	for range max(m.cfg.WorkersCount, 1) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				m.tryRebuild(idx)
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(jobs)

		t := time.NewTicker(m.cfg.CheckFreq)
		defer t.Stop()

		for {
			select {
			case <-ctx.Done():
				m.log.Info("shards supervisor shutting down")
				return
			case <-t.C:
				for idx := range m.shards {
					select {
					case jobs <- idx:
					case <-ctx.Done():
						m.log.Info("shards supervisor shutting down")
						return
					}
				}
			}
		}
	}()
}

func (m *ShardedMap) tryRebuild(idx int) {
	shard := m.shards[idx]

	shard.mu.Lock()
	defer shard.mu.Unlock()

	if !shard.needsRebuild() {
		return
	}

	start := time.Now()
	sizeBefore := shard.maxSize
	shard.rebuild()
	took := time.Since(start)

	m.log.Debug(
		"shard rebuilt",
		slog.Int("shard", idx),
		slog.Int("max_size_before", sizeBefore),
		slog.Int("size", len(shard.m)),
		slog.Duration("took", took))
	if m.onRebuild != nil {
		m.onRebuild(took)
	}
}

// needsRebuild must be called with mu held.
func (s *Shard) needsRebuild() bool {
	if s.cfg == nil || s.maxSize == 0 {
		return false
	}
	if s.puts+s.deletes < uint64(max(s.cfg.MinOpsUntilRebuild, 0)) {
		return false
	}
	if s.deletes < uint64(max(s.cfg.MinDeletes, 0)) {
		return false
	}
	return float64(len(s.m))/float64(s.maxSize) <= s.cfg.SparseRatio
}

// rebuild must be called with mu held for writing.
func (s *Shard) rebuild() {
	fresh := make(map[string][]byte, len(s.m))
	maps.Copy(fresh, s.m)
	s.m = fresh

	s.puts = 0
	s.deletes = 0
	s.maxSize = len(s.m)
}

func clone(b []byte) []byte {
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
