package researcher

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"cpgg/internal/adapters/storage"
	domain "cpgg/internal/domain/researcher"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const researcherColumns = `id, name, title, email, areas, bio, photo_url, lattes_url, updated_at`

// GetByID retrieves a researcher by ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Researcher, error) {
	var r domain.Researcher
	var updatedAt sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT `+researcherColumns+` FROM researcher WHERE id = ?`, id).
		Scan(&r.ID, &r.Name, &r.Title, &r.Email, &r.Areas, &r.Bio, &r.PhotoURL, &r.LattesURL, &updatedAt)
	if err != nil {
		return domain.Researcher{}, err
	}
	r.UpdatedAt = parseNullableTime(updatedAt, r.ID)
	return r, nil
}

// Save inserts or updates a researcher.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, r domain.Researcher) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO researcher (id, name, title, email, areas, bio, photo_url, lattes_url, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name=excluded.name, title=excluded.title, email=excluded.email, areas=excluded.areas,
		   bio=excluded.bio, photo_url=excluded.photo_url, lattes_url=excluded.lattes_url,
		   updated_at=excluded.updated_at`,
		r.ID, r.Name, r.Title, r.Email, r.Areas, r.Bio, r.PhotoURL, r.LattesURL,
		nullableTime(r.UpdatedAt))
	return err
}

// Delete removes a researcher by ID.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM researcher WHERE id = ?`, id)
	return err
}

// List returns all researchers ordered by name.
// PRE: none
// POST: Returns all researchers
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Researcher, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+researcherColumns+` FROM researcher ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var researchers []domain.Researcher
	for rows.Next() {
		var r domain.Researcher
		var updatedAt sql.NullString
		if err := rows.Scan(&r.ID, &r.Name, &r.Title, &r.Email, &r.Areas, &r.Bio,
			&r.PhotoURL, &r.LattesURL, &updatedAt); err != nil {
			return nil, err
		}
		r.UpdatedAt = parseNullableTime(updatedAt, r.ID)
		researchers = append(researchers, r)
	}
	return researchers, rows.Err()
}

// parseNullableTime parses a nullable time string, logging a warning on failure.
func parseNullableTime(ns sql.NullString, researcherID string) time.Time {
	if !ns.Valid {
		return time.Time{}
	}
	t, err := time.Parse(timeLayout, ns.String)
	if err != nil {
		slog.Warn("researcher: failed to parse time", "field", "updated_at", "researcher_id", researcherID, "raw", ns.String, "error", err)
	}
	return t
}

func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(timeLayout)
}
