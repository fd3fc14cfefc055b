package laboratory

import (
	"context"
	"strings"

	"cpgg/internal/adapters/storage"
	domain "cpgg/internal/domain/laboratory"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const laboratoryColumns = `id, acronym, name, chief_name, chief_email`

// GetByAcronym retrieves a laboratory by its acronym, case-insensitively.
// PRE: acronym is non-empty
// POST: Returns the entity or sql.ErrNoRows if not found
func (s *SQLiteStore) GetByAcronym(ctx context.Context, acronym string) (domain.Laboratory, error) {
	var l domain.Laboratory
	err := s.db.QueryRowContext(ctx,
		`SELECT `+laboratoryColumns+` FROM laboratory WHERE acronym = ? COLLATE NOCASE`,
		strings.TrimSpace(acronym)).
		Scan(&l.ID, &l.Acronym, &l.Name, &l.ChiefName, &l.ChiefEmail)
	return l, err
}

// Save inserts or updates a laboratory.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, l domain.Laboratory) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO laboratory (id, acronym, name, chief_name, chief_email)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   acronym=excluded.acronym, name=excluded.name,
		   chief_name=excluded.chief_name, chief_email=excluded.chief_email`,
		l.ID, l.Acronym, l.Name, l.ChiefName, l.ChiefEmail)
	return err
}

// List returns all laboratories ordered by acronym.
// PRE: none
// POST: Returns all laboratories
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Laboratory, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+laboratoryColumns+` FROM laboratory ORDER BY acronym`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var labs []domain.Laboratory
	for rows.Next() {
		var l domain.Laboratory
		if err := rows.Scan(&l.ID, &l.Acronym, &l.Name, &l.ChiefName, &l.ChiefEmail); err != nil {
			return nil, err
		}
		labs = append(labs, l)
	}
	return labs, rows.Err()
}

// Count returns the number of laboratories.
// PRE: none
// POST: Returns the row count
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM laboratory`).Scan(&n)
	return n, err
}
