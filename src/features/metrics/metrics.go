package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder holds the Prometheus collectors for the request-orchestration
// layer. A nil *Recorder is valid and records nothing, so callers don't need
// metrics wired to function.
type Recorder struct {
	cacheHits        *prometheus.CounterVec
	cacheMisses      *prometheus.CounterVec
	rateLimited      prometheus.Counter
	providerRequests *prometheus.CounterVec
	providerDuration *prometheus.HistogramVec
}

// NewRecorder creates a Recorder and registers its collectors on reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lyrico_cache_hits_total",
			Help: "Cache hits per client operation.",
		}, []string{"op"}),
		cacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lyrico_cache_misses_total",
			Help: "Cache misses per client operation.",
		}, []string{"op"}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lyrico_rate_limited_total",
			Help: "Requests rejected by the outbound rate limiter.",
		}),
		providerRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lyrico_provider_requests_total",
			Help: "Provider calls per operation and outcome.",
		}, []string{"op", "status"}),
		providerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lyrico_provider_request_duration_seconds",
			Help:    "Latency of provider calls.",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
	}

	reg.MustRegister(r.cacheHits, r.cacheMisses, r.rateLimited, r.providerRequests, r.providerDuration)
	return r
}

// CacheHit records a cache hit for the given operation.
func (r *Recorder) CacheHit(op string) {
	if r == nil {
		return
	}
	r.cacheHits.WithLabelValues(op).Inc()
}

// CacheMiss records a cache miss for the given operation.
func (r *Recorder) CacheMiss(op string) {
	if r == nil {
		return
	}
	r.cacheMisses.WithLabelValues(op).Inc()
}

// RateLimited records a request rejected by the limiter.
func (r *Recorder) RateLimited() {
	if r == nil {
		return
	}
	r.rateLimited.Inc()
}

// ProviderCall records one provider call with its duration and outcome.
func (r *Recorder) ProviderCall(op string, elapsed time.Duration, err error) {
	if r == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.providerRequests.WithLabelValues(op, status).Inc()
	r.providerDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}
