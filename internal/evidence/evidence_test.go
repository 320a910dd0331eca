package evidence

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/mattn/go-sqlite3"
)

func TestLoadSeed(t *testing.T) {
	table, err := LoadSeed()
	require.NoError(t, err)
	assert.Greater(t, table.Len(), 10)

	ref, ok := table.Get("ESC2019-VH-ASCVD")
	require.True(t, ok)
	assert.Equal(t, 2019, ref.Year)
	require.NotNil(t, ref.Quote)
	assert.Contains(t, *ref.Quote, "ASCVD")

	// The flagged engineering default carries a note, not a quote.
	ref, ok = table.Get("ESC2019-H-DM")
	require.True(t, ok)
	assert.Nil(t, ref.Quote)
	require.NotNil(t, ref.Note)
	assert.Contains(t, *ref.Note, "Engineering default")

	_, ok = table.Get("nonexistent")
	assert.False(t, ok)
}

func TestTableResolve(t *testing.T) {
	table, err := LoadSeed()
	require.NoError(t, err)

	refs := table.Resolve("KRNHI-SEC", "", "nope", "ESC2019-LOW")
	assert.Len(t, refs, 2)
	assert.Contains(t, refs, "KRNHI-SEC")
	assert.Contains(t, refs, "ESC2019-LOW")
}

func TestTableAllSorted(t *testing.T) {
	table, err := LoadSeed()
	require.NoError(t, err)

	all := table.All()
	require.NotEmpty(t, all)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ID, all[i].ID)
	}
}

func TestLoadFallsBackToSeed(t *testing.T) {
	table, err := Load(filepath.Join(t.TempDir(), "missing.db"), zerolog.Nop())
	require.NoError(t, err)
	assert.Greater(t, table.Len(), 0)
}

func TestLoadFromDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "evidence.db")

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = db.Exec(`
		CREATE TABLE citations (
			id TEXT PRIMARY KEY,
			guideline TEXT NOT NULL,
			year INTEGER NOT NULL,
			section TEXT NOT NULL,
			quote TEXT,
			note TEXT
		)
	`)
	require.NoError(t, err)
	_, err = db.Exec(`
		INSERT INTO citations (id, guideline, year, section, quote, note) VALUES
			('TEST-1', 'Test Guideline', 2024, 'Section 1', 'quoted text', NULL),
			('TEST-2', 'Test Guideline', 2024, 'Section 2', NULL, 'a note')
	`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	table, err := Load(path, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())

	ref, ok := table.Get("TEST-1")
	require.True(t, ok)
	require.NotNil(t, ref.Quote)
	assert.Equal(t, "quoted text", *ref.Quote)
	assert.Nil(t, ref.Note)
}
