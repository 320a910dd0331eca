package clientdata

import (
	"database/sql"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/mattn/go-sqlite3"
)

type cachedReport struct {
	Text  string
	Model string
}

func setupRepo(t *testing.T) *Repository {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewRepository(db)
	require.NoError(t, repo.EnsureSchema())
	return repo
}

func TestStoreAndGetIfFresh(t *testing.T) {
	repo := setupRepo(t)

	in := cachedReport{Text: "counseling report", Model: "gpt-4o-mini"}
	require.NoError(t, repo.Store("key-1", in, time.Hour))

	var out cachedReport
	hit, err := repo.GetIfFresh("key-1", &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, in, out)
}

func TestGetIfFreshMiss(t *testing.T) {
	repo := setupRepo(t)

	var out cachedReport
	hit, err := repo.GetIfFresh("absent", &out)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestExpiredEntryIsMiss(t *testing.T) {
	repo := setupRepo(t)

	require.NoError(t, repo.Store("stale", cachedReport{Text: "old"}, -time.Minute))

	var out cachedReport
	hit, err := repo.GetIfFresh("stale", &out)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestStoreUpserts(t *testing.T) {
	repo := setupRepo(t)

	require.NoError(t, repo.Store("key", cachedReport{Text: "v1"}, time.Hour))
	require.NoError(t, repo.Store("key", cachedReport{Text: "v2"}, time.Hour))

	var out cachedReport
	hit, err := repo.GetIfFresh("key", &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "v2", out.Text)
}

func TestDeleteExpired(t *testing.T) {
	repo := setupRepo(t)

	require.NoError(t, repo.Store("fresh", cachedReport{Text: "keep"}, time.Hour))
	require.NoError(t, repo.Store("stale-1", cachedReport{Text: "drop"}, -time.Minute))
	require.NoError(t, repo.Store("stale-2", cachedReport{Text: "drop"}, -time.Hour))

	deleted, err := repo.DeleteExpired()
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	var out cachedReport
	hit, err := repo.GetIfFresh("fresh", &out)
	require.NoError(t, err)
	assert.True(t, hit)
}

func TestCleanupJob(t *testing.T) {
	repo := setupRepo(t)
	require.NoError(t, repo.Store("stale", cachedReport{}, -time.Minute))

	job := NewCleanupJob(repo, zerolog.Nop())
	assert.Equal(t, "report_cache_cleanup", job.Name())
	require.NoError(t, job.Run())

	deleted, err := repo.DeleteExpired()
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
}
