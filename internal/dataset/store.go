package dataset

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/akozadaev/go_neighborhood_recommender/internal/logging"
	"github.com/akozadaev/go_neighborhood_recommender/internal/metrics"
	"github.com/akozadaev/go_neighborhood_recommender/internal/models"
)

// ErrNotLoaded возвращается, пока набор данных не загружен или если загрузка не удалась.
var ErrNotLoaded = errors.New("data not loaded")

// Статусы загрузки набора данных.
const (
	StatusLoading = "loading"
	StatusReady   = "ready"
	StatusFailed  = "failed"
)

// Store хранит набор данных, загружаемый асинхронно.
// До завершения загрузки все чтения возвращают ErrNotLoaded.
type Store struct {
	ready   chan struct{}
	records []models.Neighborhood
	err     error
}

// NewStore возвращает готовое к чтению хранилище с переданными записями.
func NewStore(records []models.Neighborhood) *Store {
	s := &Store{ready: make(chan struct{})}
	s.finish(records, nil)
	return s
}

// LoadFile синхронно читает набор данных из CSV файла.
func LoadFile(ctx context.Context, path string) ([]models.Neighborhood, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	records, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s: %w", path, err)
	}
	return records, nil
}

// LoadAsync запускает загрузку набора данных в фоне и сразу возвращает хранилище.
// Повторных попыток при ошибке не выполняется.
func LoadAsync(ctx context.Context, path string) *Store {
	s := &Store{ready: make(chan struct{})}
	metrics.DatasetLoaded.Set(0)

	go func() {
		start := time.Now()
		records, err := LoadFile(ctx, path)
		if err != nil {
			logging.Error().Err(err).Str("path", path).Msg("dataset load failed")
			s.finish(nil, err)
			return
		}
		logging.Info().
			Str("path", path).
			Int("records", len(records)).
			Dur("took", time.Since(start)).
			Msg("dataset loaded")
		s.finish(records, nil)
	}()

	return s
}

func (s *Store) finish(records []models.Neighborhood, err error) {
	s.records = records
	s.err = err
	if err == nil {
		metrics.DatasetLoaded.Set(1)
		metrics.DatasetRecords.Set(float64(len(records)))
	}
	close(s.ready)
}

// Ready возвращает канал, закрываемый по завершении загрузки (успешной или нет).
func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

// Wait блокируется до завершения загрузки или отмены контекста.
func (s *Store) Wait(ctx context.Context) error {
	select {
	case <-s.ready:
		return s.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Err возвращает ошибку загрузки, если она завершилась неудачно.
func (s *Store) Err() error {
	select {
	case <-s.ready:
		return s.err
	default:
		return nil
	}
}

// Status возвращает текущее состояние загрузки.
func (s *Store) Status() string {
	select {
	case <-s.ready:
		if s.err != nil {
			return StatusFailed
		}
		return StatusReady
	default:
		return StatusLoading
	}
}

// Records возвращает загруженные записи. Срез общий для всех вызывающих
// и не должен изменяться.
func (s *Store) Records() ([]models.Neighborhood, error) {
	select {
	case <-s.ready:
		if s.err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNotLoaded, s.err)
		}
		return s.records, nil
	default:
		return nil, ErrNotLoaded
	}
}

// Locations возвращает отсортированный список названий районов.
func (s *Store) Locations() ([]string, error) {
	records, err := s.Records()
	if err != nil {
		return nil, err
	}
	locations := make([]string, 0, len(records))
	for _, r := range records {
		locations = append(locations, r.Location)
	}
	sort.Strings(locations)
	return locations, nil
}
