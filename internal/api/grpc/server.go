package grpc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"github.com/shrtyk/memdb/internal/api/grpc/kvpb"
	"github.com/shrtyk/memdb/internal/cfg"
	"github.com/shrtyk/memdb/internal/core/ports/metrics"
	"github.com/shrtyk/memdb/internal/core/ports/store"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"
)

type Server struct {
	cfg      *cfg.GRPCCfg
	store    store.Store
	metrics  metrics.Metrics
	logger   *slog.Logger
	grpcServ *grpc.Server

	kvpb.UnimplementedKVStoreServer
}

func NewGRPCServer(
	cfg *cfg.GRPCCfg,
	store store.Store,
	metrics metrics.Metrics,
	logger *slog.Logger,
) *Server {
	s := &Server{
		cfg:     cfg,
		store:   store,
		metrics: metrics,
		logger:  logger,
	}
	s.grpcServ = grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			s.metricsInterceptor,
			s.recoverInterceptor,
		),
	)

	kvpb.RegisterKVStoreServer(s.grpcServ, s)
	reflection.Register(s.grpcServ)

	return s
}

// ListenAndServe blocks until the server stops. A stop caused by Shutdown
// is not reported as an error.
func (s *Server) ListenAndServe() error {
	l, err := net.Listen("tcp", ":"+s.cfg.Port)
	if err != nil {
		return fmt.Errorf("failed to create net.Listener: %w", err)
	}
	return s.Serve(l)
}

func (s *Server) Serve(l net.Listener) error {
	s.logger.Info("grpc server started", slog.String("addr", l.Addr().String()))
	if err := s.grpcServ.Serve(l); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("grpc server failed: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.grpcServ.GracefulStop()
		close(done)
	}()

	select {
	case <-ctx.Done():
		s.logger.Warn("grpc server graceful shutdown timed out; forcing stop")
		s.grpcServ.Stop()
		return ctx.Err()
	case <-done:
		s.logger.Info("grpc server graceful shutdown complete")
		return nil
	}
}
