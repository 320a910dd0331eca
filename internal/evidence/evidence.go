// Package evidence holds the read-only citation table that decision
// outputs reference by id. The table is loaded once at startup and passed
// explicitly to the components that attach citation ids; it is never
// mutated afterwards, so concurrent readers need no coordination.
package evidence

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/rs/zerolog"

	"github.com/haneul-health/lipidlens/internal/database"
)

//go:embed seed.json
var seedJSON []byte

// Reference is one citation entry: guideline metadata plus an optional
// quoted passage and free-text note.
type Reference struct {
	ID        string  `json:"id"`
	Guideline string  `json:"guideline"`
	Year      int     `json:"year"`
	Section   string  `json:"section"`
	Quote     *string `json:"quote"`
	Note      *string `json:"note"`
}

// Table is the immutable id -> Reference mapping.
type Table struct {
	refs map[string]Reference
}

// Get looks up a citation by id.
func (t *Table) Get(id string) (Reference, bool) {
	ref, ok := t.refs[id]
	return ref, ok
}

// All returns every reference sorted by id.
func (t *Table) All() []Reference {
	out := make([]Reference, 0, len(t.refs))
	for _, ref := range t.refs {
		out = append(out, ref)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of references.
func (t *Table) Len() int {
	return len(t.refs)
}

// Resolve returns the subset of the table for the given ids, skipping ids
// with no entry. Used to attach citation metadata to API responses.
func (t *Table) Resolve(ids ...string) map[string]Reference {
	out := make(map[string]Reference)
	for _, id := range ids {
		if id == "" {
			continue
		}
		if ref, ok := t.refs[id]; ok {
			out[id] = ref
		}
	}
	return out
}

func newTable(refs []Reference) (*Table, error) {
	m := make(map[string]Reference, len(refs))
	for _, ref := range refs {
		if ref.ID == "" {
			return nil, fmt.Errorf("citation with empty id")
		}
		if _, dup := m[ref.ID]; dup {
			return nil, fmt.Errorf("duplicate citation id %q", ref.ID)
		}
		m[ref.ID] = ref
	}
	return &Table{refs: m}, nil
}

// LoadSeed builds the table from the embedded seed data.
func LoadSeed() (*Table, error) {
	var refs []Reference
	if err := json.Unmarshal(seedJSON, &refs); err != nil {
		return nil, fmt.Errorf("failed to parse embedded citation seed: %w", err)
	}
	return newTable(refs)
}

// LoadDB reads the citations table from an evidence database.
func LoadDB(db *database.DB) (*Table, error) {
	rows, err := db.Conn().Query(`SELECT id, guideline, year, section, quote, note FROM citations`)
	if err != nil {
		return nil, fmt.Errorf("failed to query citations: %w", err)
	}
	defer rows.Close()

	var refs []Reference
	for rows.Next() {
		var ref Reference
		var quote, note sql.NullString
		if err := rows.Scan(&ref.ID, &ref.Guideline, &ref.Year, &ref.Section, &quote, &note); err != nil {
			return nil, fmt.Errorf("failed to scan citation: %w", err)
		}
		if quote.Valid {
			ref.Quote = &quote.String
		}
		if note.Valid {
			ref.Note = &note.String
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read citations: %w", err)
	}
	return newTable(refs)
}

// Load prefers an evidence database at dbPath and falls back to the
// embedded seed when the file does not exist.
func Load(dbPath string, log zerolog.Logger) (*Table, error) {
	if _, err := os.Stat(dbPath); err == nil {
		db, err := database.New(database.Config{
			Path:    dbPath,
			Profile: database.ProfileReference,
			Name:    "evidence",
		})
		if err != nil {
			return nil, err
		}
		defer db.Close()

		table, err := LoadDB(db)
		if err != nil {
			return nil, err
		}
		log.Info().Str("path", dbPath).Int("citations", table.Len()).Msg("Loaded citation table from database")
		return table, nil
	}

	table, err := LoadSeed()
	if err != nil {
		return nil, err
	}
	log.Info().Int("citations", table.Len()).Msg("Loaded embedded citation table")
	return table, nil
}
