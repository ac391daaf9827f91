package testutils

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"testing"

	"github.com/shrtyk/memdb/internal/cfg"
)

func NewMockLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}

func NewMockStoreCfg() *cfg.StoreCfg {
	return &cfg.StoreCfg{
		MaxKeySize: 100,
		MaxValSize: 100,
	}
}

func NewMockShardsCfg() *cfg.ShardsCfg {
	return &cfg.ShardsCfg{
		ShardsCount:        16,
		SparseRatio:        0.1,
		MinOpsUntilRebuild: 1000,
		MinDeletes:         500,
	}
}

// RandomString returns a hex string of exactly n characters.
func RandomString(t testing.TB, n int) string {
	t.Helper()
	b := make([]byte, (n+1)/2)
	if _, err := rand.Read(b); err != nil {
		t.Fatalf("failed to read random bytes: %v", err)
	}
	return hex.EncodeToString(b)[:n]
}
