package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/nightwatch-ai/nightwatch/internal/models"
	"github.com/nightwatch-ai/nightwatch/internal/vectorindex"
)

const schema = `CREATE TABLE IF NOT EXISTS incidents (
	id                TEXT PRIMARY KEY,
	text              TEXT NOT NULL,
	location          TEXT NOT NULL,
	original_location TEXT NOT NULL,
	time              TEXT NOT NULL,
	severity          TEXT NOT NULL,
	sos               INTEGER NOT NULL DEFAULT 0,
	vector            BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_incidents_sos ON incidents(sos);
CREATE INDEX IF NOT EXISTS idx_incidents_location ON incidents(location);`

// SQLiteStore persists incidents in a modernc.org/sqlite database and keeps
// an in-memory vector index over their embeddings for similarity queries.
// The database is the source of truth; the index is rebuilt from it on open.
type SQLiteStore struct {
	db    *sql.DB
	index vectorindex.VectorIndex
}

// OpenSQLite opens (creating if needed) the incident database at path and
// populates the given vector index from the stored embeddings.
func OpenSQLite(path string, index vectorindex.VectorIndex) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening incident db: %w", err)
	}

	// WAL keeps readers unblocked during the small, frequent writes this
	// store sees.
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	s := &SQLiteStore{db: db, index: index}
	if err := s.loadIndex(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("rebuilding vector index: %w", err)
	}
	return s, nil
}

// loadIndex streams all stored vectors into the in-memory index.
func (s *SQLiteStore) loadIndex(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, `SELECT id, vector FROM incidents`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var blob []byte
		if err := rows.Scan(&id, &blob); err != nil {
			return err
		}
		var vec []float32
		if err := json.Unmarshal(blob, &vec); err != nil {
			return fmt.Errorf("decoding vector for %s: %w", id, err)
		}
		if err := s.index.Add(ctx, id, vec); err != nil {
			return err
		}
	}
	return rows.Err()
}

// Upsert inserts or replaces the incident and indexes its vector.
func (s *SQLiteStore) Upsert(ctx context.Context, inc models.Incident) error {
	if len(inc.Vector) == 0 {
		return ErrEmptyVector
	}

	blob, err := json.Marshal(inc.Vector)
	if err != nil {
		return fmt.Errorf("encoding vector: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `INSERT OR REPLACE INTO incidents
		(id, text, location, original_location, time, severity, sos, vector)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		inc.ID, inc.Text, inc.Location, inc.OriginalLocation, inc.Time,
		string(inc.Severity), boolToInt(inc.SOS), blob)
	if err != nil {
		return fmt.Errorf("upserting incident %s: %w", inc.ID, err)
	}

	return s.index.Add(ctx, inc.ID, inc.Vector)
}

// Query returns up to limit incidents, similarity-ordered when a vector is
// given. With a nil vector the rows come back in whatever order SQLite
// produces them; the contract promises no cross-record order.
func (s *SQLiteStore) Query(ctx context.Context, vector []float32, limit int) ([]models.Incident, error) {
	if limit <= 0 {
		return nil, nil
	}

	if vector == nil {
		rows, err := s.db.QueryContext(ctx,
			`SELECT id, text, location, original_location, time, severity, sos, vector
			 FROM incidents LIMIT ?`, limit)
		if err != nil {
			return nil, fmt.Errorf("querying incidents: %w", err)
		}
		defer rows.Close()
		return scanIncidents(rows)
	}

	hits, err := s.index.Search(ctx, vector, limit)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	out := make([]models.Incident, 0, len(hits))
	for _, h := range hits {
		inc, err := s.get(ctx, h.IncidentID)
		if err != nil {
			return nil, err
		}
		if inc != nil {
			out = append(out, *inc)
		}
	}
	return out, nil
}

// Count returns the number of stored incidents.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM incidents`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting incidents: %w", err)
	}
	return n, nil
}

// Close closes the vector index and the database.
func (s *SQLiteStore) Close() error {
	if err := s.index.Close(); err != nil {
		s.db.Close()
		return err
	}
	return s.db.Close()
}

func (s *SQLiteStore) get(ctx context.Context, id string) (*models.Incident, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, text, location, original_location, time, severity, sos, vector
		 FROM incidents WHERE id = ?`, id)

	inc, err := scanIncident(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		// Index can briefly know IDs the table no longer has; skip them.
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading incident %s: %w", id, err)
	}
	return &inc, nil
}

func scanIncidents(rows *sql.Rows) ([]models.Incident, error) {
	var out []models.Incident
	for rows.Next() {
		inc, err := scanIncident(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, inc)
	}
	return out, rows.Err()
}

func scanIncident(scan func(...any) error) (models.Incident, error) {
	var (
		inc  models.Incident
		sev  string
		sos  int
		blob []byte
	)
	if err := scan(&inc.ID, &inc.Text, &inc.Location, &inc.OriginalLocation,
		&inc.Time, &sev, &sos, &blob); err != nil {
		return models.Incident{}, err
	}
	inc.Severity = models.Severity(sev)
	inc.SOS = sos != 0
	if err := json.Unmarshal(blob, &inc.Vector); err != nil {
		return models.Incident{}, fmt.Errorf("decoding vector for %s: %w", inc.ID, err)
	}
	return inc, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
