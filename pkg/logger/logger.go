package logger

import (
	"context"
	"log/slog"
	"os"
)

const (
	envDev  = "dev"
	envProd = "production"
)

var fallbackLogger = slog.New(slog.NewJSONHandler(
	os.Stdout,
	&slog.HandlerOptions{
		Level: slog.LevelDebug,
	}),
)

// NewLogger returns a JSON logger for the given environment.
// Unknown environments get the production setup.
func NewLogger(env string) *slog.Logger {
	switch env {
	case envDev:
		return slog.New(slog.NewJSONHandler(
			os.Stdout,
			&slog.HandlerOptions{
				AddSource: false,
				Level:     slog.LevelDebug,
			}),
		)
	default:
		return slog.New(slog.NewJSONHandler(
			os.Stdout,
			&slog.HandlerOptions{
				AddSource: true,
				Level:     slog.LevelInfo,
			}),
		)
	}
}

func ErrorAttr(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

type ctxKeyType string

const (
	ctxKey ctxKeyType = "logger"
)

func ToCtx(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey, l)
}

func FromCtx(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxKey).(*slog.Logger); ok {
		return logger
	}
	return fallbackLogger
}
