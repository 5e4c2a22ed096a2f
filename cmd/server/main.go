// @title           Chennai Neighborhood Recommendation API
// @version         1.0
// @description     REST API для подбора районов Ченнаи. Сервис ранжирует районы зоны выбранного района по взвешенной сумме оценок с учетом предпочтений пользователя и бюджета.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.email  akozadaev@inbox.ru
// @contact.url    https://github.com/akozadaev/go_neighborhood_recommender

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @schemes   http https
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	_ "github.com/akozadaev/go_neighborhood_recommender/docs" // swagger docs
	"github.com/akozadaev/go_neighborhood_recommender/internal/config"
	"github.com/akozadaev/go_neighborhood_recommender/internal/dataset"
	"github.com/akozadaev/go_neighborhood_recommender/internal/forecast"
	"github.com/akozadaev/go_neighborhood_recommender/internal/handlers"
	"github.com/akozadaev/go_neighborhood_recommender/internal/logging"
	"github.com/akozadaev/go_neighborhood_recommender/internal/recommend"
	"github.com/akozadaev/go_neighborhood_recommender/internal/storage"
	"github.com/akozadaev/go_neighborhood_recommender/internal/zones"
	"github.com/elastic/go-elasticsearch/v8"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Error loading configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Набор данных загружается в фоне; до готовности API отвечает 503.
	store := dataset.LoadAsync(ctx, cfg.Dataset.Path)
	go func() {
		select {
		case <-store.Ready():
			if err := store.Err(); err != nil {
				logging.Warn().Err(err).Msg("Dataset unavailable, recommendation endpoints will respond 503")
				return
			}
			logging.Info().Msg("Dataset ready, serving recommendations")
		case <-ctx.Done():
		}
	}()

	// Инициализация PostgreSQL клиента
	pgStorage, err := storage.NewPostgresStorage(cfg.Postgres.DSN())
	if err != nil {
		logging.Fatal().Err(err).Msg("Error creating PostgreSQL client")
	}
	defer pgStorage.Close()
	logging.Info().Str("host", cfg.Postgres.Host).Msg("Connected to PostgreSQL")

	// Инициализация Elasticsearch клиента
	// Используем прямые HTTP запросы для поиска, поэтому мета-заголовок клиента не нужен
	esClient, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:         []string{cfg.Elasticsearch.URL},
		DisableMetaHeader: true,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Error creating Elasticsearch client")
	}
	esStorage := storage.NewElasticsearchStorageWithURL(esClient, cfg.Elasticsearch.Index, cfg.Elasticsearch.URL)
	logging.Info().Str("url", cfg.Elasticsearch.URL).Msg("Elasticsearch/OpenSearch client initialized")

	if mapping, err := readMapping(cfg.Elasticsearch.MappingPath); err != nil {
		logging.Warn().Err(err).Msg("Could not read mapping file from any location")
	} else if err := esStorage.CreateIndex(ctx, string(mapping)); err != nil {
		logging.Warn().Err(err).Msg("Could not create index")
	} else {
		logging.Info().Str("index", cfg.Elasticsearch.Index).Msg("Elasticsearch index created/verified")
	}

	forecastClient := forecast.NewClient(forecast.Config{
		URL:           cfg.Forecast.URL,
		Timeout:       cfg.Forecast.Timeout,
		DefaultMonths: cfg.Forecast.DefaultMonths,
	})

	classifier := zones.Chennai()

	// Инициализация handlers
	h := handlers.NewHandlers(handlers.Deps{
		Engine:   recommend.NewEngine(store, classifier),
		Dataset:  store,
		Zones:    classifier,
		History:  pgStorage,
		Index:    esStorage,
		Forecast: forecastClient,
	})

	router := handlers.NewRouter(h, handlers.RouterConfig{
		AllowedOrigin:   cfg.Server.AllowedOrigin,
		RateLimitReqs:   cfg.Server.RateLimitReqs,
		RateLimitWindow: cfg.Server.RateLimitWindow,
	})

	// Настройка сервера
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	go func() {
		logging.Info().Str("port", cfg.Server.Port).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Ожидание сигнала для graceful shutdown
	<-ctx.Done()

	logging.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("Server forced to shutdown")
		return
	}

	logging.Info().Msg("Server exited")
}

// readMapping ищет файл маппинга по пути из конфигурации и рядом с бинарником.
func readMapping(path string) ([]byte, error) {
	candidates := []string{
		path,
		filepath.Join("..", path),
		filepath.Join(filepath.Dir(os.Args[0]), "..", path),
	}

	var lastErr error
	for _, p := range candidates {
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		lastErr = err
	}
	return nil, lastErr
}
