package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shrtyk/memdb/internal/api/grpc/kvpb"
	"github.com/shrtyk/memdb/internal/core/ports/store"
	"github.com/shrtyk/memdb/pkg/logger"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *Server) Get(ctx context.Context, in *kvpb.GetRequest) (*kvpb.GetResponse, error) {
	start := time.Now()
	key := in.GetKey()

	value, err := s.store.Get(key)
	if err != nil {
		if errors.Is(err, store.ErrNoSuchKey) {
			return nil, status.Error(codes.NotFound, err.Error())
		}
		return nil, status.Error(codes.Internal, err.Error())
	}

	s.metrics.GrpcGet(string(key), time.Since(start).Seconds())
	logger.FromCtx(ctx).Debug("Get operation successfully completed", slog.String("key", string(key)))
	return kvpb.NewGetResponse(kvpb.NewEntry(key, value)), nil
}

func (s *Server) Put(ctx context.Context, in *kvpb.PutRequest) (*kvpb.PutResponse, error) {
	start := time.Now()
	key := in.GetKey()

	prev, replaced, err := s.store.Put(key, in.GetValue())
	if err != nil {
		if errors.Is(err, store.ErrKeyTooLarge) || errors.Is(err, store.ErrValueTooLarge) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		return nil, status.Error(codes.Internal, err.Error())
	}

	s.metrics.GrpcPut(string(key), time.Since(start).Seconds())
	logger.FromCtx(ctx).Debug(
		"Put operation successfully completed",
		slog.String("key", string(key)),
		slog.Bool("replaced", replaced))
	return kvpb.NewPutResponse(prev, replaced), nil
}

func (s *Server) Delete(ctx context.Context, in *kvpb.DeleteRequest) (*kvpb.DeleteResponse, error) {
	start := time.Now()
	key := in.GetKey()

	value, err := s.store.Delete(key)
	switch {
	case errors.Is(err, store.ErrNoSuchKey):
		s.metrics.GrpcDelete(string(key), time.Since(start).Seconds())
		return kvpb.NewDeleteResponse(nil, false), nil
	case err != nil:
		return nil, status.Error(codes.Internal, err.Error())
	}

	s.metrics.GrpcDelete(string(key), time.Since(start).Seconds())
	logger.FromCtx(ctx).Debug("Delete operation successfully completed", slog.String("key", string(key)))
	return kvpb.NewDeleteResponse(kvpb.NewEntry(key, value), true), nil
}
