package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	metricsmocks "github.com/shrtyk/memdb/internal/core/ports/metrics/mocks"
	tutils "github.com/shrtyk/memdb/internal/tests/testutils"
	"github.com/shrtyk/memdb/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHttpMetrics(t *testing.T) {
	l, _ := tutils.NewMockLogger()
	mockMetrics := metricsmocks.NewMockMetrics(t)
	mws := NewMiddlewares(l, mockMetrics)

	var latency float64
	mockMetrics.On("HttpRequest", http.StatusCreated, http.MethodGet, "/test/{id}", mock.AnythingOfType("float64")).
		Run(func(args mock.Arguments) { latency = args.Get(3).(float64) }).
		Return().Once()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, err := w.Write([]byte("test"))
		require.NoError(t, err)
	})

	router := chi.NewRouter()
	router.With(mws.HttpMetrics).Get("/test/{id}", handler)

	req := httptest.NewRequest(http.MethodGet, "/test/42", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Greater(t, latency, 0.0)
}

func TestHttpMetrics_ImplicitOK(t *testing.T) {
	l, _ := tutils.NewMockLogger()
	mockMetrics := metricsmocks.NewMockMetrics(t)
	mws := NewMiddlewares(l, mockMetrics)

	mockMetrics.On("HttpRequest", http.StatusOK, http.MethodGet, "/test", mock.Anything).Return().Once()

	router := chi.NewRouter()
	router.With(mws.HttpMetrics).Get("/test", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))
}

func TestLogging(t *testing.T) {
	l, buf := tutils.NewMockLogger()
	mws := NewMiddlewares(l, metricsmocks.NewMockMetrics(t))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := logger.FromCtx(r.Context())
		logger.Info("test message")
	})

	router := chi.NewRouter()
	router.With(mws.Logging).Get("/test", handler)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("X-Real-Ip", "10.1.2.3")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	out := buf.String()
	assert.Contains(t, out, "test message")
	assert.Contains(t, out, "ip=10.1.2.3")
	assert.Contains(t, out, "user-agent=test-agent")
	assert.Contains(t, out, "request_id")
	assert.Contains(t, out, "method=GET")
	assert.Contains(t, out, "url=/test")
}

func TestRequestTimeout(t *testing.T) {
	l, _ := tutils.NewMockLogger()
	mws := NewMiddlewares(l, metricsmocks.NewMockMetrics(t))

	t.Run("sets deadline", func(t *testing.T) {
		var deadline time.Time
		var ok bool
		h := mws.RequestTimeout(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			deadline, ok = r.Context().Deadline()
		}))

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		assert.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(time.Second), deadline, time.Second)
	})

	t.Run("disabled", func(t *testing.T) {
		var ok bool
		h := mws.RequestTimeout(0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok = r.Context().Deadline()
		}))

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		assert.False(t, ok)
	})
}

func TestRateLimit(t *testing.T) {
	l, _ := tutils.NewMockLogger()
	mws := NewMiddlewares(l, metricsmocks.NewMockMetrics(t))

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("rejects over burst", func(t *testing.T) {
		// a tiny rate makes refills during the test negligible
		h := mws.RateLimit(0.001, 2)(ok)

		codes := make([]int, 0, 3)
		for range 3 {
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
			codes = append(codes, rr.Code)
		}

		assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	})

	t.Run("disabled", func(t *testing.T) {
		h := mws.RateLimit(0, 0)(ok)
		for range 50 {
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
			require.Equal(t, http.StatusOK, rr.Code)
		}
	})
}
