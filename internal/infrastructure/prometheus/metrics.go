package metrics

import (
	"strconv"

	p "github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc/codes"

	pmetrics "github.com/shrtyk/memdb/internal/core/ports/metrics"
)

const namespace = "memdb"

type apiType string

const (
	httpApi apiType = "http"
	grpcApi apiType = "grpc"
)

type opType string

const (
	getOp    opType = "get"
	putOp    opType = "put"
	deleteOp opType = "delete"
)

var (
	_ pmetrics.Metrics = (*metrics)(nil)
	_ pmetrics.Metrics = (*noop)(nil)
)

type metrics struct {
	requests          *p.CounterVec
	requestsHistogram *p.HistogramVec

	opsCounter   *p.CounterVec
	opsHistogram *p.HistogramVec

	rebuilds          p.Counter
	rebuildsHistogram p.Histogram
}

// NewPrometheusMetrics registers all collectors in the default registerer.
func NewPrometheusMetrics() *metrics {
	opsCounter := p.NewCounterVec(p.CounterOpts{
		Namespace: namespace,
		Name:      "operations_total",
		Help:      "The total number of store operations",
	}, []string{"transport", "operation"})

	opsHistogram := p.NewHistogramVec(p.HistogramOpts{
		Namespace: namespace,
		Name:      "operations_latency_seconds",
		Help:      "The latency of store operations in seconds",
		Buckets:   p.ExponentialBuckets(0.00001, 4, 8),
	}, []string{"transport", "operation"})

	requests := p.NewCounterVec(p.CounterOpts{
		Namespace: namespace,
		Name:      "requests_total",
		Help:      "The total number of http/grpc requests",
	}, []string{"transport", "code", "method", "endpoint"})

	requestsHistogram := p.NewHistogramVec(p.HistogramOpts{
		Namespace: namespace,
		Name:      "requests_seconds",
		Help:      "The http/grpc requests latency in seconds",
		Buckets:   p.ExponentialBuckets(0.0001, 4, 8),
	}, []string{"transport", "code", "method", "endpoint"})

	rebuilds := p.NewCounter(p.CounterOpts{
		Namespace: namespace,
		Name:      "shard_rebuilds_total",
		Help:      "The total number of sparse shard rebuilds",
	})

	rebuildsHistogram := p.NewHistogram(p.HistogramOpts{
		Namespace: namespace,
		Name:      "shard_rebuild_seconds",
		Help:      "The time spent rebuilding one shard in seconds",
		Buckets:   p.ExponentialBuckets(0.0001, 4, 8),
	})

	p.MustRegister(
		opsCounter, opsHistogram,
		requests, requestsHistogram,
		rebuilds, rebuildsHistogram,
	)

	return &metrics{
		opsCounter:        opsCounter,
		opsHistogram:      opsHistogram,
		requests:          requests,
		requestsHistogram: requestsHistogram,
		rebuilds:          rebuilds,
		rebuildsHistogram: rebuildsHistogram,
	}
}

func (m *metrics) observeOp(api apiType, op opType, duration float64) {
	m.opsCounter.WithLabelValues(string(api), string(op)).Inc()
	m.opsHistogram.WithLabelValues(string(api), string(op)).Observe(duration)
}

func (m *metrics) HttpPut(_ string, duration float64)    { m.observeOp(httpApi, putOp, duration) }
func (m *metrics) HttpDelete(_ string, duration float64) { m.observeOp(httpApi, deleteOp, duration) }
func (m *metrics) HttpGet(_ string, duration float64)    { m.observeOp(httpApi, getOp, duration) }
func (m *metrics) GrpcPut(_ string, duration float64)    { m.observeOp(grpcApi, putOp, duration) }
func (m *metrics) GrpcDelete(_ string, duration float64) { m.observeOp(grpcApi, deleteOp, duration) }
func (m *metrics) GrpcGet(_ string, duration float64)    { m.observeOp(grpcApi, getOp, duration) }

// HttpRequest increments the request counter and observes the latency
func (m *metrics) HttpRequest(code int, method, path string, latency float64) {
	labels := []string{string(httpApi), strconv.Itoa(code), method, path}
	m.requests.WithLabelValues(labels...).Inc()
	m.requestsHistogram.WithLabelValues(labels...).Observe(latency)
}

// GrpcRequest increments the request counter and observes the latency
func (m *metrics) GrpcRequest(code codes.Code, service, method string, latency float64) {
	labels := []string{string(grpcApi), code.String(), method, service}
	m.requests.WithLabelValues(labels...).Inc()
	m.requestsHistogram.WithLabelValues(labels...).Observe(latency)
}

func (m *metrics) ShardRebuild(duration float64) {
	m.rebuilds.Inc()
	m.rebuildsHistogram.Observe(duration)
}

type noop struct{}

// NewNoopMetrics returns metrics that record nothing.
func NewNoopMetrics() *noop {
	return &noop{}
}

func (noop) HttpPut(string, float64)                         {}
func (noop) HttpDelete(string, float64)                      {}
func (noop) HttpGet(string, float64)                         {}
func (noop) HttpRequest(int, string, string, float64)        {}
func (noop) GrpcPut(string, float64)                         {}
func (noop) GrpcDelete(string, float64)                      {}
func (noop) GrpcGet(string, float64)                         {}
func (noop) GrpcRequest(codes.Code, string, string, float64) {}
func (noop) ShardRebuild(float64)                            {}
