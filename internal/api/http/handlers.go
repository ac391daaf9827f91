package httphandlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shrtyk/memdb/internal/core/ports/metrics"
	"github.com/shrtyk/memdb/internal/core/ports/store"
	"github.com/shrtyk/memdb/pkg/logger"
)

type handlersProvider struct {
	store   store.Store
	metrics metrics.Metrics
}

func NewHandlersProvider(store store.Store, m metrics.Metrics) *handlersProvider {
	return &handlersProvider{
		store:   store,
		metrics: m,
	}
}

// Healthz godoc
// @Summary      Healthz
// @Description  Health check
// @Tags         service
// @Produce      text/plain
// @Success      200 {string} string
// @Failure      500 {string} string "Internal Server Error"
// @Router       /healthz [get]
func (h *handlersProvider) Healthz(w http.ResponseWriter, r *http.Request) {
	if _, err := fmt.Fprint(w, "memdb up and healthy"); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// keyParam returns the decoded {key} segment. chi matches on the escaped
// path whenever one is present, so the segment may still be percent-encoded.
func keyParam(r *http.Request) (string, error) {
	key := chi.URLParam(r, "key")
	if r.URL.RawPath == "" {
		return key, nil
	}

	decoded, err := url.PathUnescape(key)
	if err != nil {
		return "", fmt.Errorf("invalid key %q: %w", key, err)
	}
	return decoded, nil
}

type StatsResponse struct {
	Keys   int `json:"keys"`
	Shards int `json:"shards"`
}

// Stats godoc
// @Summary      Store statistics
// @Description  Number of live keys and shards
// @Tags         service
// @Produce      json
// @Success      200 {object} StatsResponse
// @Failure      500 {string} string "Internal Server Error"
// @Router       /stats [get]
func (h *handlersProvider) Stats(w http.ResponseWriter, r *http.Request) {
	resp := StatsResponse{
		Keys:   h.store.Len(),
		Shards: h.store.ShardsCount(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// PutHandler godoc
// @Summary      Puts a value into the store
// @Description  Puts a value into the store. Replacing an existing key returns the previous value.
// @Tags         store
// @Accept       application/octet-stream
// @Produce      application/octet-stream
// @Param        key path string true "key"
// @Param        value body string true "value"
// @Success      200 {string} string "previous value"
// @Success      201
// @Failure      400 {string} string "Invalid key encoding, key or value too large"
// @Failure      500 {string} string "Internal Server Error"
// @Router       /v1/{key} [put]
func (h *handlersProvider) PutHandler(w http.ResponseWriter, r *http.Request) {
	l := logger.FromCtx(r.Context())
	start := time.Now()

	key, err := keyParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	val, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			l.Error("failed to close request body", logger.ErrorAttr(err))
		}
	}()

	prev, replaced, err := h.store.Put([]byte(key), val)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrKeyTooLarge), errors.Is(err, store.ErrValueTooLarge):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	if replaced {
		w.Header().Set("Content-Type", "application/octet-stream")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(prev); err != nil {
			l.Error("failed to write response", logger.ErrorAttr(err))
		}
	} else {
		w.WriteHeader(http.StatusCreated)
	}

	h.metrics.HttpPut(key, time.Since(start).Seconds())
	l.Debug(
		"Put operation successfully completed",
		slog.String("key", key),
		slog.Int("value_size", len(val)),
		slog.Bool("replaced", replaced))
}

// GetHandler godoc
// @Summary      Gets a value from the store
// @Description  Gets a value from the store
// @Tags         store
// @Produce      application/octet-stream
// @Param        key path string true "key"
// @Success      200 {string} string "value"
// @Failure      400 {string} string "Invalid key encoding"
// @Failure      404
// @Failure      500 {string} string "Internal Server Error"
// @Router       /v1/{key} [get]
func (h *handlersProvider) GetHandler(w http.ResponseWriter, r *http.Request) {
	l := logger.FromCtx(r.Context())
	start := time.Now()

	key, err := keyParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	val, err := h.store.Get([]byte(key))
	if err != nil {
		if errors.Is(err, store.ErrNoSuchKey) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	if _, err := w.Write(val); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.metrics.HttpGet(key, time.Since(start).Seconds())
	l.Debug(
		"Get operation successfully completed",
		slog.String("key", key),
		slog.Int("value_size", len(val)))
}

// DeleteHandler godoc
// @Summary      Deletes a value from the store
// @Description  Deletes a value from the store and returns it
// @Tags         store
// @Produce      application/octet-stream
// @Param        key path string true "key"
// @Success      200 {string} string "removed value"
// @Success      204
// @Failure      400 {string} string "Invalid key encoding"
// @Failure      500 {string} string "Internal Server Error"
// @Router       /v1/{key} [delete]
func (h *handlersProvider) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	l := logger.FromCtx(r.Context())
	start := time.Now()

	key, err := keyParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	val, err := h.store.Delete([]byte(key))
	switch {
	case errors.Is(err, store.ErrNoSuchKey):
		w.WriteHeader(http.StatusNoContent)
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	default:
		w.Header().Set("Content-Type", "application/octet-stream")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(val); err != nil {
			l.Error("failed to write response", logger.ErrorAttr(err))
		}
	}

	h.metrics.HttpDelete(key, time.Since(start).Seconds())
	l.Debug(
		"Delete operation successfully completed",
		slog.String("key", key),
		slog.Bool("deleted", err == nil))
}
