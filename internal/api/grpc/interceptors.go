package grpc

import (
	"context"
	"log/slog"
	"path"
	"runtime/debug"
	"time"

	"github.com/shrtyk/memdb/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *Server) metricsInterceptor(
	ctx context.Context,
	req any,
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	service, method := splitMethod(info.FullMethod)
	s.metrics.GrpcRequest(status.Code(err), service, method, time.Since(start).Seconds())
	return resp, err
}

func (s *Server) recoverInterceptor(
	ctx context.Context,
	req any,
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (resp any, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error(
				"panic in grpc handler",
				slog.String("method", info.FullMethod),
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())))
			err = status.Error(codes.Internal, "internal error")
		}
	}()

	return handler(logger.ToCtx(ctx, s.logger.With(slog.String("method", info.FullMethod))), req)
}

// splitMethod turns "/memdb.v1.KVStore/Get" into ("memdb.v1.KVStore", "Get").
func splitMethod(fullMethod string) (string, string) {
	dir, method := path.Split(fullMethod)
	return path.Clean(dir)[1:], method
}
