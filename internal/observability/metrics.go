package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "tripmind", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tripmind", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	LLMRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "tripmind", Name: "llm_requests_total", Help: "Model provider calls."},
		[]string{"provider", "model", "outcome"}, // outcome: ok|provider_error|unexpected_response|error
	)
	LLMLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tripmind", Name: "llm_request_duration_seconds",
			Help:    "Model provider call duration seconds.",
			Buckets: []float64{.25, .5, 1, 2, 4, 8, 15, 30, 60},
		},
		[]string{"provider", "model"},
	)
	StageLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tripmind", Name: "stage_duration_seconds",
			Help:    "Pipeline stage duration seconds.",
			Buckets: []float64{.5, 1, 2, 4, 8, 15, 30, 60, 120},
		},
		[]string{"stage"},
	)
)

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, LLMRequests, LLMLatency, StageLatency)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveLLM(provider, model, outcome string, dur time.Duration) {
	LLMRequests.WithLabelValues(provider, model, outcome).Inc()
	LLMLatency.WithLabelValues(provider, model).Observe(dur.Seconds())
}

func ObserveStage(stage string, dur time.Duration) {
	StageLatency.WithLabelValues(stage).Observe(dur.Seconds())
}
