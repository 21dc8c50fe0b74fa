package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the HTTP
// surface and the schedule generation engine.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec

	generationDuration prometheus.Observer
	plansGenerated     prometheus.Histogram
	generationFailures *prometheus.CounterVec
	combinationsTested prometheus.Counter
	datasetsLoaded     prometheus.Gauge
	cartHits           prometheus.Counter
	cartMisses         prometheus.Counter
}

// NewMetricsService registers the service's Prometheus collectors on a
// private registry.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	generationDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "plan_generation_duration_seconds",
		Help:    "Duration of schedule generation calls",
		Buckets: prometheus.DefBuckets,
	})

	plansGenerated := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "plans_generated",
		Help:    "Number of feasible plans returned per generation call",
		Buckets: []float64{0, 1, 5, 10, 50, 100, 500, 1000},
	})

	generationFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "plan_generation_failures_total",
		Help: "Generation calls rejected before search, by error code",
	}, []string{"code"})

	combinationsTested := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "plan_combinations_tested_total",
		Help: "Section combinations validated across all generation calls",
	})

	datasetsLoaded := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_datasets_loaded",
		Help: "Datasets currently held in the in-memory catalog store",
	})

	cartHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_hits_total",
		Help: "Cart lookups that found a stored cart",
	})

	cartMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_misses_total",
		Help: "Cart lookups that found nothing",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, generationDuration,
		plansGenerated, generationFailures, combinationsTested, datasetsLoaded,
		cartHits, cartMisses, goroutines)

	return &MetricsService{
		registry:           registry,
		handler:            promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:    requestDuration,
		requestTotal:       requestTotal,
		generationDuration: generationDuration,
		plansGenerated:     plansGenerated,
		generationFailures: generationFailures,
		combinationsTested: combinationsTested,
		datasetsLoaded:     datasetsLoaded,
		cartHits:           cartHits,
		cartMisses:         cartMisses,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveGeneration records one successful generation call.
func (m *MetricsService) ObserveGeneration(plans, combinationsTested int, duration time.Duration) {
	if m == nil {
		return
	}
	m.generationDuration.Observe(duration.Seconds())
	m.plansGenerated.Observe(float64(plans))
	m.combinationsTested.Add(float64(combinationsTested))
}

// RecordGenerationFailure counts a structurally rejected generation call.
func (m *MetricsService) RecordGenerationFailure(code string) {
	if m == nil {
		return
	}
	m.generationFailures.WithLabelValues(code).Inc()
}

// SetDatasetsLoaded reports the catalog store population.
func (m *MetricsService) SetDatasetsLoaded(count int) {
	if m == nil {
		return
	}
	m.datasetsLoaded.Set(float64(count))
}

// RecordCartLookup counts cart hits and misses.
func (m *MetricsService) RecordCartLookup(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.cartHits.Inc()
	} else {
		m.cartMisses.Inc()
	}
}
