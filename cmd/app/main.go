package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/shrtyk/memdb/internal/cfg"
	"github.com/shrtyk/memdb/internal/core/store"
	metrics "github.com/shrtyk/memdb/internal/infrastructure/prometheus"
	"github.com/shrtyk/memdb/pkg/logger"
)

// @title           memdb API
// @version         1.0
// @description     In-memory sharded key-value store.
// @host            localhost:16700
// @BasePath        /
func main() {
	cfg := cfg.ReadConfig()
	l := logger.NewLogger(cfg.Env)

	hasher, err := store.NewHasher(cfg.Store.Hasher)
	if err != nil {
		l.Error("invalid store configuration", logger.ErrorAttr(err))
		os.Exit(1)
	}

	m := metrics.NewPrometheusMetrics()
	st := store.NewStore(&cfg.Store, &cfg.ShardsCfg, hasher, m, l)

	ap := NewApp()
	ap.Init(
		WithCfg(cfg),
		WithStore(st),
		WithLogger(l),
		WithMetrics(m),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = ap.Serve(ctx)
	stop()

	if err != nil {
		l.Error("application stopped with error", logger.ErrorAttr(err))
		os.Exit(1)
	}
}
