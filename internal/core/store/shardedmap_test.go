package store

import (
	"bytes"
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/shrtyk/memdb/internal/cfg"
	tu "github.com/shrtyk/memdb/internal/tests/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func b(s string) []byte { return []byte(s) }

func TestNewShardedMap(t *testing.T) {
	m := NewShardedMap(tu.NewMockShardsCfg(), 16, Xxhasher{})
	assert.Len(t, m.shards, 16)
	assert.Equal(t, uint64(15), m.mask)
	assert.NotNil(t, m.hash)
}

func TestNewShardedMap_ShardsCount(t *testing.T) {
	testCases := []struct {
		name  string
		count int
		want  int
	}{
		{name: "power of two kept", count: 32, want: 32},
		{name: "rounded up", count: 100, want: 128},
		{name: "one shard", count: 1, want: 1},
		{name: "zero falls back to default", count: 0, want: DefaultShardsCount},
		{name: "negative falls back to default", count: -4, want: DefaultShardsCount},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := NewShardedMap(tu.NewMockShardsCfg(), tc.count, nil)
			assert.Equal(t, tc.want, m.ShardsCount())
			assert.IsType(t, Xxhasher{}, m.hash)
		})
	}
}

func TestShardedMap_GetShard(t *testing.T) {
	m := NewShardedMap(tu.NewMockShardsCfg(), 16, Xxhasher{})
	shard := m.getShard(b("test_key"))
	assert.NotNil(t, shard)
	assert.Same(t, shard, m.getShard(b("test_key")), "shard assignment must be stable")
}

func TestShardedMap_SetAndGet(t *testing.T) {
	m := NewShardedMap(tu.NewMockShardsCfg(), 16, Xxhasher{})

	prev, replaced := m.Set(b("beep"), b("boop"))
	assert.False(t, replaced)
	assert.Nil(t, prev)

	val, ok := m.Get(b("beep"))
	assert.True(t, ok)
	assert.Equal(t, b("boop"), val)

	_, ok = m.Get(b("non_existent_key"))
	assert.False(t, ok)
}

func TestShardedMap_SetReturnsPrevious(t *testing.T) {
	m := NewShardedMap(tu.NewMockShardsCfg(), 16, Xxhasher{})

	_, replaced := m.Set(b("k"), b("v1"))
	require.False(t, replaced)

	prev, replaced := m.Set(b("k"), b("v2"))
	assert.True(t, replaced)
	assert.Equal(t, b("v1"), prev)

	val, ok := m.Get(b("k"))
	assert.True(t, ok)
	assert.Equal(t, b("v2"), val)
	assert.Equal(t, 1, m.Len())
}

func TestShardedMap_EmptyKeyAndValue(t *testing.T) {
	m := NewShardedMap(tu.NewMockShardsCfg(), 16, Xxhasher{})

	_, replaced := m.Set([]byte{}, []byte{})
	assert.False(t, replaced)

	val, ok := m.Get(nil)
	assert.True(t, ok, "nil and empty keys are the same key")
	assert.NotNil(t, val)
	assert.Empty(t, val)

	e, ok := m.Delete([]byte{})
	assert.True(t, ok)
	assert.Empty(t, e.Key)
	assert.Empty(t, e.Value)
}

func TestShardedMap_Delete(t *testing.T) {
	m := NewShardedMap(tu.NewMockShardsCfg(), 16, Xxhasher{})
	m.Set(b("k"), b("v1"))

	e, ok := m.Delete(b("k"))
	assert.True(t, ok)
	assert.Equal(t, Entry{Key: b("k"), Value: b("v1")}, e)

	_, ok = m.Get(b("k"))
	assert.False(t, ok)
}

func TestShardedMap_DeleteMissing(t *testing.T) {
	m := NewShardedMap(tu.NewMockShardsCfg(), 16, Xxhasher{})

	e, ok := m.Delete(b("missing"))
	assert.False(t, ok)
	assert.Equal(t, Entry{}, e)
}

func TestShardedMap_CopiesValues(t *testing.T) {
	m := NewShardedMap(tu.NewMockShardsCfg(), 16, Xxhasher{})

	in := b("value")
	m.Set(b("k"), in)
	in[0] = 'X'

	got, _ := m.Get(b("k"))
	assert.Equal(t, b("value"), got, "caller mutation after Set must not leak into the map")

	got[0] = 'Y'
	again, _ := m.Get(b("k"))
	assert.Equal(t, b("value"), again, "mutating a Get result must not leak into the map")

	key := b("k")
	e, _ := m.Delete(key)
	key[0] = 'z'
	assert.Equal(t, b("k"), e.Key)
}

func TestShardedMap_Len(t *testing.T) {
	m := NewShardedMap(tu.NewMockShardsCfg(), 16, Xxhasher{})
	assert.Equal(t, 0, m.Len())

	m.Set(b("key1"), b("value1"))
	m.Set(b("key2"), b("value2"))
	assert.Equal(t, 2, m.Len())

	m.Delete(b("key1"))
	assert.Equal(t, 1, m.Len())
}

func TestShardedMap_Range(t *testing.T) {
	m := NewShardedMap(tu.NewMockShardsCfg(), 16, Xxhasher{})
	m.Set(b("key1"), b("value1"))
	m.Set(b("key2"), b("value2"))

	items := make(map[string]string)
	m.Range(func(key, value []byte) bool {
		items[string(key)] = string(value)
		return true
	})

	expected := map[string]string{
		"key1": "value1",
		"key2": "value2",
	}
	assert.Equal(t, expected, items)
}

func TestShardedMap_RangeEarlyStop(t *testing.T) {
	m := NewShardedMap(tu.NewMockShardsCfg(), 16, Xxhasher{})
	for i := range 100 {
		m.Set(b(strconv.Itoa(i)), b("v"))
	}

	count := 0
	m.Range(func(_, _ []byte) bool {
		count++
		return count < 10
	})
	assert.Equal(t, 10, count)
}

func TestShardedMap_ConcurrentAccess(t *testing.T) {
	m := NewShardedMap(tu.NewMockShardsCfg(), 16, Xxhasher{})
	var wg sync.WaitGroup

	// Concurrent Sets
	for i := range 100 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := "key" + strconv.Itoa(i)
			value := "value" + strconv.Itoa(i)
			m.Set(b(key), b(value))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 100, m.Len())

	// Concurrent Gets
	for i := range 100 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := "key" + strconv.Itoa(i)
			val, ok := m.Get(b(key))
			assert.True(t, ok)
			assert.Equal(t, "value"+strconv.Itoa(i), string(val))
		}(i)
	}
	wg.Wait()

	// Concurrent Deletes
	for i := range 50 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := "key" + strconv.Itoa(i)
			_, ok := m.Delete(b(key))
			assert.True(t, ok)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, m.Len())
}

func TestShardedMap_CrossKeyIndependence(t *testing.T) {
	m := NewShardedMap(tu.NewMockShardsCfg(), 16, Xxhasher{})

	k1 := b("alpha")
	var k2 []byte
	for i := 0; ; i++ {
		cand := b("beta" + strconv.Itoa(i))
		if m.getShard(cand) != m.getShard(k1) {
			k2 = cand
			break
		}
	}

	var wg sync.WaitGroup
	wg.Go(func() { m.Set(k1, b("v1")) })
	wg.Go(func() { m.Set(k2, b("v2")) })
	wg.Wait()

	v1, ok := m.Get(k1)
	require.True(t, ok)
	assert.Equal(t, b("v1"), v1)
	v2, ok := m.Get(k2)
	require.True(t, ok)
	assert.Equal(t, b("v2"), v2)
}

func TestShardedMap_SameKeyNeverObservesUnwrittenValue(t *testing.T) {
	m := NewShardedMap(tu.NewMockShardsCfg(), 4, Xxhasher{})
	key := b("hot")

	const writers = 8
	const iterations = 2000

	written := make(map[string]struct{}, writers*iterations)
	for w := range writers {
		for i := range iterations {
			written["w"+strconv.Itoa(w)+"-"+strconv.Itoa(i)] = struct{}{}
		}
	}

	var wg sync.WaitGroup
	for w := range writers {
		wg.Go(func() {
			for i := range iterations {
				m.Set(key, b("w"+strconv.Itoa(w)+"-"+strconv.Itoa(i)))
				if i%7 == 0 {
					m.Delete(key)
				}
			}
		})
	}

	invalid := make(chan string, 1)
	for range 4 {
		wg.Go(func() {
			for range iterations {
				v, ok := m.Get(key)
				if !ok {
					continue
				}
				if _, known := written[string(v)]; !known {
					select {
					case invalid <- string(v):
					default:
					}
					return
				}
			}
		})
	}
	wg.Wait()
	close(invalid)

	for v := range invalid {
		t.Fatalf("observed a value that was never written: %q", v)
	}

	// after a completed delete with no intervening set the key stays gone
	m.Delete(key)
	_, ok := m.Get(key)
	assert.False(t, ok)
}

func TestShardedMap_VisibleAcrossGoroutines(t *testing.T) {
	m := NewShardedMap(tu.NewMockShardsCfg(), 16, Xxhasher{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		m.Set(b("beep"), b("boop"))
	}()
	<-done

	got := make(chan []byte)
	go func() {
		v, _ := m.Get(b("beep"))
		got <- v
	}()
	assert.Equal(t, b("boop"), <-got)
}

func TestShardRebuild(t *testing.T) {
	shardsCfg := &cfg.ShardsCfg{
		SparseRatio:        0.5,
		MinOpsUntilRebuild: 200,
		MinDeletes:         100,
	}
	shard := &Shard{
		cfg: shardsCfg,
		m:   make(map[string][]byte),
	}

	for i := range 200 {
		shard.m["key"+strconv.Itoa(i)] = b("value")
	}
	shard.puts = 200
	shard.maxSize = 200

	for i := range 100 {
		delete(shard.m, "key"+strconv.Itoa(i))
	}
	shard.deletes = 100

	assert.True(t, shard.needsRebuild())

	shard.rebuild()

	assert.Equal(t, uint64(0), shard.puts)
	assert.Equal(t, uint64(0), shard.deletes)
	assert.Equal(t, 100, shard.maxSize)
	assert.Len(t, shard.m, 100)
	assert.False(t, shard.needsRebuild())
}

func TestShardNeedsRebuild(t *testing.T) {
	shardsCfg := &cfg.ShardsCfg{
		SparseRatio:        0.5,
		MinOpsUntilRebuild: 10,
		MinDeletes:         5,
	}

	testCases := []struct {
		name    string
		cfg     *cfg.ShardsCfg
		live    int
		puts    uint64
		deletes uint64
		maxSize int
		want    bool
	}{
		{name: "sparse", cfg: shardsCfg, live: 5, puts: 10, deletes: 5, maxSize: 10, want: true},
		{name: "too few operations", cfg: shardsCfg, live: 2, puts: 4, deletes: 5, maxSize: 4, want: false},
		{name: "too few deletes", cfg: shardsCfg, live: 6, puts: 20, deletes: 4, maxSize: 10, want: false},
		{name: "still dense", cfg: shardsCfg, live: 15, puts: 20, deletes: 5, maxSize: 20, want: false},
		{name: "never filled", cfg: shardsCfg, live: 0, puts: 0, deletes: 0, maxSize: 0, want: false},
		{name: "no config", cfg: nil, live: 1, puts: 100, deletes: 100, maxSize: 100, want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			shard := &Shard{cfg: tc.cfg, m: make(map[string][]byte)}
			for i := range tc.live {
				shard.m[strconv.Itoa(i)] = nil
			}
			shard.puts = tc.puts
			shard.deletes = tc.deletes
			shard.maxSize = tc.maxSize

			assert.Equal(t, tc.want, shard.needsRebuild())
		})
	}
}

func TestShardedMap_MaxSizeTracking(t *testing.T) {
	m := NewShardedMap(tu.NewMockShardsCfg(), 1, Xxhasher{})
	shard := m.shards[0]

	m.Set(b("a"), b("1"))
	m.Set(b("b"), b("1"))
	m.Set(b("b"), b("2"))
	m.Delete(b("a"))
	m.Delete(b("missing"))

	assert.Equal(t, 2, shard.maxSize)
	assert.Equal(t, uint64(3), shard.puts)
	assert.Equal(t, uint64(1), shard.deletes)
}

type mockHasher struct{}

func (h *mockHasher) Sum64([]byte) uint64 {
	return 0
}

func TestShardsSupervisor(t *testing.T) {
	shardsCfg := &cfg.ShardsCfg{
		CheckFreq:          10 * time.Millisecond,
		SparseRatio:        0.5,
		MinOpsUntilRebuild: 200,
		MinDeletes:         100,
		WorkersCount:       4,
	}
	m := NewShardedMap(shardsCfg, 1, &mockHasher{})
	shard := m.shards[0]

	var rebuilds int
	var mu sync.Mutex
	m.onRebuild = func(time.Duration) {
		mu.Lock()
		rebuilds++
		mu.Unlock()
	}

	for i := range 200 {
		m.Set(b("key"+strconv.Itoa(i)), b("value"))
	}

	for i := range 100 {
		m.Delete(b("key" + strconv.Itoa(i)))
	}

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	m.StartShardsSupervisor(ctx, &wg)

	assert.Eventually(t, func() bool {
		shard.mu.RLock()
		defer shard.mu.RUnlock()
		return shard.puts == 0 && shard.deletes == 0
	}, time.Second, 10*time.Millisecond, "shard was not rebuilt")

	cancel()
	wg.Wait()

	shard.mu.RLock()
	assert.Equal(t, uint64(0), shard.puts)
	assert.Equal(t, uint64(0), shard.deletes)
	assert.Equal(t, 100, shard.maxSize)
	assert.Len(t, shard.m, 100)
	shard.mu.RUnlock()

	mu.Lock()
	assert.Equal(t, 1, rebuilds)
	mu.Unlock()

	for i := 100; i < 200; i++ {
		v, ok := m.Get(b("key" + strconv.Itoa(i)))
		require.True(t, ok)
		assert.True(t, bytes.Equal(b("value"), v))
	}
}

func TestShardsSupervisor_Disabled(t *testing.T) {
	l, buf := tu.NewMockLogger()
	m := NewShardedMap(&cfg.ShardsCfg{}, 1, Xxhasher{})
	m.log = l

	var wg sync.WaitGroup
	m.StartShardsSupervisor(context.Background(), &wg)
	wg.Wait()

	assert.Contains(t, buf.String(), "shards supervisor disabled")
}
