// Package metrics содержит метрики Prometheus сервиса рекомендаций.
// Метрики доступны на эндпоинте /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Набор данных
	DatasetLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataset_loaded",
			Help: "1 when the neighborhood dataset is loaded, 0 otherwise",
		},
	)

	DatasetRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataset_records",
			Help: "Number of neighborhood records in memory",
		},
	)

	// Рекомендации
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Total number of recommendation requests by outcome",
		},
		[]string{"outcome"}, // ok, not_loaded, invalid
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Time spent scoring one recommendation query",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
		},
	)

	RecommendationFilteredAreas = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_filtered_areas",
			Help:    "Number of areas left after budget and zone filters",
			Buckets: []float64{0, 1, 3, 5, 10, 25, 50, 100, 250},
		},
	)

	SelectedAreaForced = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_selected_area_forced_total",
			Help: "Number of times the selected area replaced the third-ranked result",
		},
	)

	// История поиска
	HistoryOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_history_operations_total",
			Help: "Search history storage operations by result",
		},
		[]string{"operation", "result"},
	)

	// Сервис прогноза
	ForecastRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forecast_requests_total",
			Help: "Forecast service requests by result",
		},
		[]string{"result"}, // success, failure, rejected
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
		},
		[]string{"name"},
	)
)
