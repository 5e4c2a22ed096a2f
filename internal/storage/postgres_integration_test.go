//go:build integration

package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/akozadaev/go_neighborhood_recommender/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Запуск: POSTGRES_TEST_DSN="host=... dbname=..." go test -tags integration ./internal/storage/
func newIntegrationStorage(t *testing.T) *PostgresStorage {
	t.Helper()

	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set")
	}

	ps, err := NewPostgresStorage(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { ps.Close() })

	schema, err := os.ReadFile("../../migrations/001_search_history.sql")
	require.NoError(t, err)
	_, err = ps.db.Exec(string(schema))
	require.NoError(t, err)

	return ps
}

func TestSearchHistoryRoundTrip(t *testing.T) {
	ps := newIntegrationStorage(t)
	ctx := context.Background()
	user := "it-" + time.Now().Format("150405.000000")
	t.Cleanup(func() { _ = ps.ClearSearches(ctx, user) })

	entry := &models.SearchHistoryEntry{
		UserID:       user,
		SelectedArea: "Adyar",
		Budget:       6,
		Preferences:  []string{"SafetyScore", "CostScore", "PowerScore"},
		Results:      []models.SearchResult{{Location: "Adyar", Score: 21.5}},
	}
	require.NoError(t, ps.AddSearch(ctx, entry))
	assert.NotEmpty(t, entry.ID)

	entries, err := ps.ListSearches(ctx, user, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entry.Preferences, entries[0].Preferences)
	assert.Equal(t, entry.Results, entries[0].Results)

	require.NoError(t, ps.DeleteSearch(ctx, user, entry.ID))
	assert.ErrorIs(t, ps.DeleteSearch(ctx, user, entry.ID), ErrHistoryNotFound)
	assert.ErrorIs(t, ps.DeleteSearch(ctx, user, "not-a-uuid"), ErrHistoryNotFound)
}

func TestSearchHistoryKeepsNewestEntries(t *testing.T) {
	ps := newIntegrationStorage(t)
	ctx := context.Background()
	user := "it-trim-" + time.Now().Format("150405.000000")
	t.Cleanup(func() { _ = ps.ClearSearches(ctx, user) })

	base := time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < HistoryLimit+5; i++ {
		at := base.Add(time.Duration(i) * time.Minute)
		ps.now = func() time.Time { return at }
		require.NoError(t, ps.AddSearch(ctx, &models.SearchHistoryEntry{
			UserID:       user,
			SelectedArea: "Adyar",
			Preferences:  []string{"MallScore", "PowerScore", "CostScore"},
		}))
	}

	entries, err := ps.ListSearches(ctx, user, 100)
	require.NoError(t, err)
	require.Len(t, entries, HistoryLimit)
	assert.True(t, entries[0].SearchDate.Equal(base.Add(time.Duration(HistoryLimit+4)*time.Minute)))
	assert.True(t, entries[HistoryLimit-1].SearchDate.Equal(base.Add(5*time.Minute)))
}
