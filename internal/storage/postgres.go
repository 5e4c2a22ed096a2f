package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/akozadaev/go_neighborhood_recommender/internal/metrics"
	"github.com/akozadaev/go_neighborhood_recommender/internal/models"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// HistoryLimit задаёт число хранимых записей истории на пользователя.
const HistoryLimit = 20

// ErrHistoryNotFound возвращается, если запись истории не найдена у пользователя.
var ErrHistoryNotFound = errors.New("search history entry not found")

// PostgresStorage предоставляет методы для работы с историей поиска в PostgreSQL.
type PostgresStorage struct {
	db  *sql.DB          // Подключение к базе данных PostgreSQL
	now func() time.Time // Источник времени
}

// NewPostgresStorage создает новый экземпляр PostgresStorage и устанавливает подключение к БД.
// DSN должен быть в формате: "host=... port=... user=... password=... dbname=... sslmode=..."
func NewPostgresStorage(dsn string) (*PostgresStorage, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return NewPostgresStorageWithDB(db), nil
}

// NewPostgresStorageWithDB создает PostgresStorage поверх готового подключения.
func NewPostgresStorageWithDB(db *sql.DB) *PostgresStorage {
	return &PostgresStorage{db: db, now: time.Now}
}

// Close закрывает подключение к базе данных PostgreSQL.
func (ps *PostgresStorage) Close() error {
	return ps.db.Close()
}

// AddSearch сохраняет запись истории и оставляет у пользователя только HistoryLimit последних записей.
// Заполняет ID и SearchDate записи.
func (ps *PostgresStorage) AddSearch(ctx context.Context, entry *models.SearchHistoryEntry) (err error) {
	defer func() { observe("add", err) }()

	entry.ID = uuid.NewString()
	entry.SearchDate = ps.now().UTC()

	results, err := json.Marshal(entry.Results)
	if err != nil {
		return fmt.Errorf("failed to marshal search results: %w", err)
	}

	tx, err := ps.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	insert := `INSERT INTO search_history (id, user_id, search_date, selected_area, budget, preferences, results)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := tx.ExecContext(ctx, insert,
		entry.ID,
		entry.UserID,
		entry.SearchDate,
		entry.SelectedArea,
		entry.Budget,
		pq.Array(entry.Preferences),
		results,
	); err != nil {
		return fmt.Errorf("failed to insert search history: %w", err)
	}

	trim := `DELETE FROM search_history
		WHERE user_id = $1 AND id NOT IN (
			SELECT id FROM search_history WHERE user_id = $1 ORDER BY search_date DESC LIMIT $2
		)`
	if _, err := tx.ExecContext(ctx, trim, entry.UserID, HistoryLimit); err != nil {
		return fmt.Errorf("failed to trim search history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit search history: %w", err)
	}
	return nil
}

// ListSearches возвращает последние записи истории пользователя, новые первыми.
func (ps *PostgresStorage) ListSearches(ctx context.Context, userID string, limit int) (entries []*models.SearchHistoryEntry, err error) {
	defer func() { observe("list", err) }()

	if limit <= 0 || limit > HistoryLimit {
		limit = HistoryLimit
	}

	query := `SELECT id, user_id, search_date, selected_area, budget, preferences, results
		FROM search_history WHERE user_id = $1 ORDER BY search_date DESC LIMIT $2`

	rows, err := ps.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query search history: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e models.SearchHistoryEntry
		var results []byte
		if err := rows.Scan(
			&e.ID,
			&e.UserID,
			&e.SearchDate,
			&e.SelectedArea,
			&e.Budget,
			pq.Array(&e.Preferences),
			&results,
		); err != nil {
			return nil, fmt.Errorf("failed to scan search history: %w", err)
		}
		if len(results) > 0 {
			if err := json.Unmarshal(results, &e.Results); err != nil {
				return nil, fmt.Errorf("failed to decode search results: %w", err)
			}
		}
		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return entries, nil
}

// DeleteSearch удаляет одну запись истории пользователя.
func (ps *PostgresStorage) DeleteSearch(ctx context.Context, userID, id string) (err error) {
	defer func() { observe("delete", err) }()

	if _, perr := uuid.Parse(id); perr != nil {
		return ErrHistoryNotFound
	}

	res, err := ps.db.ExecContext(ctx, `DELETE FROM search_history WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete search history: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrHistoryNotFound
	}
	return nil
}

// ClearSearches удаляет всю историю пользователя.
func (ps *PostgresStorage) ClearSearches(ctx context.Context, userID string) (err error) {
	defer func() { observe("clear", err) }()

	if _, err := ps.db.ExecContext(ctx, `DELETE FROM search_history WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear search history: %w", err)
	}
	return nil
}

func observe(operation string, err error) {
	result := "success"
	if err != nil && !errors.Is(err, ErrHistoryNotFound) {
		result = "error"
	}
	metrics.HistoryOperations.WithLabelValues(operation, result).Inc()
}
