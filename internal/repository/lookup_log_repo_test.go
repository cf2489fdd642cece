package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"autosphere-api/internal/database"
	"autosphere-api/internal/model"
)

// newTestPool connects to TEST_DATABASE_URL and applies migrations. Tests
// are skipped when it is unset.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, database.RunMigrations(ctx, pool, zaptest.NewLogger(t)))
	_, err = pool.Exec(ctx, `TRUNCATE lookup_log`)
	require.NoError(t, err)
	return pool
}

func TestLookupLogRepo(t *testing.T) {
	pool := newTestPool(t)
	repo := NewLookupLogRepo(pool)
	ctx := context.Background()

	ok := &model.LookupLog{Kind: model.LookupKindSearch, Query: "1998 Toyota Supra", Success: true, ResultCount: 1, LatencyMS: 120}
	require.NoError(t, repo.Record(ctx, ok))
	_, err := uuid.Parse(ok.ID)
	assert.NoError(t, err)
	assert.False(t, ok.CreatedAt.IsZero())

	for _, et := range []string{model.ErrorTypeParse, model.ErrorTypeParse, model.ErrorTypeNetwork} {
		require.NoError(t, repo.Record(ctx, &model.LookupLog{
			Kind:         model.LookupKindFeatured,
			ErrorType:    et,
			ErrorMessage: "boom",
		}))
	}

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{model.ErrorTypeParse: 2, model.ErrorTypeNetwork: 1}, stats)

	recent, err := repo.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, recent, 4)

	old := &model.LookupLog{Kind: model.LookupKindSearch, Query: "old", Success: true, CreatedAt: time.Now().Add(-48 * time.Hour)}
	require.NoError(t, repo.Record(ctx, old))

	deleted, err := repo.DeleteOlderThan(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}
