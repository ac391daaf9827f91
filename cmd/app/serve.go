package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	_ "github.com/shrtyk/memdb/api/openapi"
	"github.com/shrtyk/memdb/internal/api/grpc"
	appHttp "github.com/shrtyk/memdb/internal/api/http"
	mw "github.com/shrtyk/memdb/internal/api/http/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// Serve runs the http and grpc servers and the shards supervisor until ctx is
// done, then shuts everything down and waits for it.
func (app *application) Serve(ctx context.Context) error {
	httpServ := &http.Server{
		Addr:         app.cfg.HttpCfg.Host + ":" + app.cfg.HttpCfg.Port,
		Handler:      app.NewRouter(),
		IdleTimeout:  app.cfg.HttpCfg.ServerIdleTimeout,
		WriteTimeout: app.cfg.HttpCfg.ServerWriteTimeout,
		ReadTimeout:  app.cfg.HttpCfg.ServerReadTimeout,
	}
	grpcServ := grpc.NewGRPCServer(
		&app.cfg.GRPCCfg,
		app.store,
		app.metrics,
		app.logger,
	)

	g, gCtx := errgroup.WithContext(ctx)

	var wg sync.WaitGroup
	app.store.StartMapRebuilder(gCtx, &wg)

	g.Go(func() error {
		app.logger.Info("grpc listening", slog.String("port", app.cfg.GRPCCfg.Port))
		return grpcServ.ListenAndServe()
	})

	g.Go(func() error {
		app.logger.Info("http listening", slog.String("addr", httpServ.Addr))
		if err := httpServ.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		app.logger.Info("got a signal to stop work. executing graceful shutdown")

		tCtx, tCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer tCancel()

		return errors.Join(
			grpcServ.Shutdown(tCtx),
			httpServ.Shutdown(tCtx),
		)
	})

	err := g.Wait()
	wg.Wait()

	if err != nil {
		return err
	}
	app.logger.Info("application stopped")
	return nil
}

type HandlersProvider interface {
	Healthz(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
	PutHandler(w http.ResponseWriter, r *http.Request)
	GetHandler(w http.ResponseWriter, r *http.Request)
	DeleteHandler(w http.ResponseWriter, r *http.Request)
}

type Middlewares interface {
	HttpMetrics(http.Handler) http.Handler
	Logging(next http.Handler) http.Handler
	RequestTimeout(d time.Duration) func(http.Handler) http.Handler
	RateLimit(rps float64, burst int) func(http.Handler) http.Handler
}

func (app *application) NewRouter() *chi.Mux {
	var handlers HandlersProvider = appHttp.NewHandlersProvider(app.store, app.metrics)
	var mws Middlewares = mw.NewMiddlewares(app.logger, app.metrics)

	mux := chi.NewMux()

	mux.Mount("/debug", chimw.Profiler())

	mux.Handle("/metrics", promhttp.Handler())
	mux.Get("/swagger/*", httpSwagger.WrapHandler)
	mux.Get("/healthz", handlers.Healthz)
	mux.Get("/stats", handlers.Stats)
	mux.Route("/v1", func(r chi.Router) {
		r.Use(
			chimw.Recoverer,
			cors.Handler(cors.Options{
				AllowedOrigins: app.cfg.HttpCfg.CORSAllowedOrigins,
				AllowedMethods: []string{http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodOptions},
				AllowedHeaders: []string{"Content-Type"},
				MaxAge:         300,
			}),
			mws.Logging,
			mws.HttpMetrics,
			mws.RequestTimeout(app.cfg.HttpCfg.RequestTimeout),
			mws.RateLimit(app.cfg.HttpCfg.RateLimitRPS, app.cfg.HttpCfg.RateLimitBurst),
		)

		r.Put("/{key}", handlers.PutHandler)
		r.Get("/{key}", handlers.GetHandler)
		r.Delete("/{key}", handlers.DeleteHandler)
	})

	return mux
}
