package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// RouterConfig содержит параметры HTTP маршрутизации.
type RouterConfig struct {
	AllowedOrigin   string
	RateLimitReqs   int
	RateLimitWindow time.Duration
	SwaggerURL      string // адрес doc.json для Swagger UI
}

// NewRouter регистрирует маршруты API и оборачивает их в middleware.
func NewRouter(h *Handlers, cfg RouterConfig) http.Handler {
	limited := rateLimit(cfg.RateLimitReqs, cfg.RateLimitWindow)

	router := mux.NewRouter()
	router.Use(requestMiddleware)

	router.HandleFunc("/health", h.HealthCheck).Methods("GET")
	router.HandleFunc("/areas", h.GetAreas).Methods("GET")
	// /zones/stats регистрируется раньше шаблона /zones/{area}.
	router.HandleFunc("/zones/stats", h.GetZoneStats).Methods("GET")
	router.HandleFunc("/zones/{area}", h.GetAreaZone).Methods("GET")
	router.HandleFunc("/parameters", h.GetParameters).Methods("GET")
	router.Handle("/recommend", limited(http.HandlerFunc(h.Recommend))).Methods("POST")
	router.HandleFunc("/neighborhoods/overview", h.GetNeighborhoodsOverview).Methods("GET")
	router.HandleFunc("/neighborhoods/plots", h.GetPlots).Methods("GET")
	router.HandleFunc("/neighborhoods/detailed/{areas}", h.GetDetailedNeighborhoods).Methods("GET")
	router.Handle("/forecast", limited(http.HandlerFunc(h.GetForecast))).Methods("POST")
	router.HandleFunc("/history", h.GetHistory).Methods("GET")
	router.HandleFunc("/history", h.ClearHistory).Methods("DELETE")
	router.HandleFunc("/history/{id}", h.DeleteHistoryEntry).Methods("DELETE")
	router.HandleFunc("/analytics/search-history", h.GetSearchAnalytics).Methods("GET")

	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	swaggerURL := cfg.SwaggerURL
	if swaggerURL == "" {
		swaggerURL = "/swagger/doc.json"
	}
	router.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL(swaggerURL),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("none"),
		httpSwagger.DomID("swagger-ui"),
	))

	// Preflight запросы обрабатываются до маршрутизации.
	return corsMiddleware(cfg.AllowedOrigin)(router)
}
