package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/akozadaev/go_neighborhood_recommender/internal/config"
	"github.com/akozadaev/go_neighborhood_recommender/internal/dataset"
	"github.com/akozadaev/go_neighborhood_recommender/internal/logging"
	"github.com/akozadaev/go_neighborhood_recommender/internal/models"
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

	datasetPath := flag.String("dataset", cfg.Dataset.Path, "path to the neighborhood CSV")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// Инициализация Elasticsearch клиента
	esClient, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.Elasticsearch.URL},
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Error creating Elasticsearch client")
	}

	esStorage := storage.NewElasticsearchStorageWithURL(esClient, cfg.Elasticsearch.Index, cfg.Elasticsearch.URL)

	mapping, err := os.ReadFile(cfg.Elasticsearch.MappingPath)
	if err != nil {
		logging.Fatal().Err(err).Str("path", cfg.Elasticsearch.MappingPath).Msg("Error reading mapping file")
	}
	if err := esStorage.CreateIndex(ctx, string(mapping)); err != nil {
		logging.Fatal().Err(err).Msg("Error creating index")
	}

	records, err := dataset.LoadFile(ctx, *datasetPath)
	if err != nil {
		logging.Fatal().Err(err).Msg("Error loading dataset")
	}

	docs := buildDocuments(records, zones.Chennai())

	logging.Info().Int("count", len(docs)).Str("index", cfg.Elasticsearch.Index).Msg("Indexing neighborhoods...")

	// Индексация данных
	if err := esStorage.BulkIndexNeighborhoods(ctx, docs); err != nil {
		logging.Fatal().Err(err).Msg("Error indexing neighborhoods")
	}

	logging.Info().Msg("Indexing completed successfully!")
}

// buildDocuments дополняет записи набора данных зоной и производными оценками.
func buildDocuments(records []models.Neighborhood, classifier *zones.Classifier) []storage.NeighborhoodDocument {
	docs := make([]storage.NeighborhoodDocument, 0, len(records))
	for _, n := range records {
		var zone *models.Zone
		if z, ok := classifier.ZoneOf(n.Location); ok {
			zone = &z
		} else {
			logging.Warn().Str("location", n.Location).Msg("No zone for location")
		}
		docs = append(docs, storage.NewNeighborhoodDocument(n, zone))
	}
	return docs
}
