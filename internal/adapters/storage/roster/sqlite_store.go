package roster

import (
	"context"

	"cpgg/internal/adapters/storage"
	domain "cpgg/internal/domain/roster"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const memberColumns = `id, name, title, section, position`

// GetByID retrieves a roster member by ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Member, error) {
	var m domain.Member
	err := s.db.QueryRowContext(ctx,
		`SELECT `+memberColumns+` FROM roster_member WHERE id = ?`, id).
		Scan(&m.ID, &m.Name, &m.Title, &m.Section, &m.Position)
	return m, err
}

// Save inserts or updates a roster member.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, m domain.Member) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO roster_member (id, name, title, section, position)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name=excluded.name, title=excluded.title, section=excluded.section,
		   position=excluded.position`,
		m.ID, m.Name, m.Title, m.Section, m.Position)
	return err
}

// Delete removes a roster member by ID.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM roster_member WHERE id = ?`, id)
	return err
}

// List returns all roster members grouped by section, then by name.
// PRE: none
// POST: Returns all members
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+memberColumns+` FROM roster_member ORDER BY section, position, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.Member
	for rows.Next() {
		var m domain.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Title, &m.Section, &m.Position); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// Count returns the number of roster members.
// PRE: none
// POST: Returns the row count
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM roster_member`).Scan(&n)
	return n, err
}
