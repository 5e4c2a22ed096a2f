// Package storage содержит реализации хранилищ для Elasticsearch/OpenSearch и PostgreSQL.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/akozadaev/go_neighborhood_recommender/internal/models"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/goccy/go-json"
)

// ErrNeighborhoodNotFound возвращается, если ни один из запрошенных районов не найден в индексе.
var ErrNeighborhoodNotFound = errors.New("neighborhood not found")

// NeighborhoodDocument представляет район в индексе Elasticsearch.
type NeighborhoodDocument struct {
	models.ScoredNeighborhood
	AmenitiesScore float64 `json:"amenities_score"`
}

// NewNeighborhoodDocument строит документ индекса из записи набора данных.
func NewNeighborhoodDocument(n models.Neighborhood, zone *models.Zone) NeighborhoodDocument {
	return NeighborhoodDocument{
		ScoredNeighborhood: models.ScoredNeighborhood{
			Neighborhood:     n,
			Zone:             zone,
			ResidentialScore: n.ResidentialScore(),
			SafetyScore:      n.SafetyScore(),
		},
		AmenitiesScore: (n.HospitalScore + n.CollegeScore + n.MallScore + n.ServicesScore) / 4,
	}
}

// ElasticsearchStorage предоставляет методы для работы с индексом районов в Elasticsearch/OpenSearch.
// Использует прямые HTTP запросы для совместимости с OpenSearch.
type ElasticsearchStorage struct {
	client     *elasticsearch.Client // Официальный клиент Elasticsearch
	index      string                // Имя индекса для районов
	httpClient *http.Client          // HTTP клиент для прямых запросов
	baseURL    string                // Базовый URL Elasticsearch/OpenSearch
}

// NewElasticsearchStorageWithURL создает новый экземпляр ElasticsearchStorage с указанным URL.
// Используется для поддержки OpenSearch через прямые HTTP запросы.
func NewElasticsearchStorageWithURL(client *elasticsearch.Client, index string, baseURL string) *ElasticsearchStorage {
	return &ElasticsearchStorage{
		client:     client,
		index:      index,
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// CreateIndex создает индекс в Elasticsearch/OpenSearch с заданным маппингом.
// Если индекс уже существует, функция возвращает nil без ошибки.
func (es *ElasticsearchStorage) CreateIndex(ctx context.Context, mappingJSON string) error {
	res, err := es.client.Indices.Exists([]string{es.index}, es.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to check index existence: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}

	res, err = es.client.Indices.Create(
		es.index,
		es.client.Indices.Create.WithBody(strings.NewReader(mappingJSON)),
		es.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("error creating index: %s", string(body))
	}

	return nil
}

// BulkIndexNeighborhoods индексирует районы за один запрос Bulk API.
// Идентификатором документа служит название района.
func (es *ElasticsearchStorage) BulkIndexNeighborhoods(ctx context.Context, docs []NeighborhoodDocument) error {
	if len(docs) == 0 {
		return nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)

	for _, doc := range docs {
		meta := map[string]interface{}{
			"index": map[string]interface{}{
				"_index": es.index,
				"_id":    doc.Location,
			},
		}
		if err := enc.Encode(meta); err != nil {
			return fmt.Errorf("failed to encode meta: %w", err)
		}
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode neighborhood: %w", err)
		}
	}

	url := fmt.Sprintf("%s/_bulk?refresh=true", es.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-ndjson")

	res, err := es.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to bulk index: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("error bulk indexing: status %d, body: %s", res.StatusCode, string(body))
	}

	var result struct {
		Errors bool `json:"errors"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode bulk response: %w", err)
	}
	if result.Errors {
		return errors.New("bulk indexing reported item errors")
	}

	return nil
}

// FindNeighborhoods возвращает документы районов с указанными названиями.
// Названия сравниваются без учёта регистра. Если не найдено ни одного района,
// возвращает ErrNeighborhoodNotFound.
func (es *ElasticsearchStorage) FindNeighborhoods(ctx context.Context, locations []string) ([]NeighborhoodDocument, error) {
	query := buildFindQuery(locations)

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}

	url := fmt.Sprintf("%s/%s/_search?size=%d", es.baseURL, es.index, len(locations))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := es.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, ErrNeighborhoodNotFound
	}
	if res.StatusCode >= 400 {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("error searching: status %d, body: %s", res.StatusCode, string(body))
	}

	var result struct {
		Hits struct {
			Hits []struct {
				Source NeighborhoodDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}

	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Hits.Hits) == 0 {
		return nil, ErrNeighborhoodNotFound
	}

	docs := make([]NeighborhoodDocument, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		docs = append(docs, hit.Source)
	}

	return docs, nil
}

// buildFindQuery строит запрос поиска районов по точным названиям.
// Подполе location.normalized приводится к нижнему регистру нормализатором индекса.
func buildFindQuery(locations []string) map[string]interface{} {
	lowered := make([]string, 0, len(locations))
	for _, l := range locations {
		lowered = append(lowered, strings.ToLower(strings.TrimSpace(l)))
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"terms": map[string]interface{}{
				"location.normalized": lowered,
			},
		},
		"sort": []map[string]interface{}{
			{
				"location": map[string]interface{}{
					"order": "asc",
				},
			},
		},
	}
}
