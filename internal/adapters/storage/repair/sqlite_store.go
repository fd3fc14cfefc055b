package repair

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"cpgg/internal/adapters/storage"
	domain "cpgg/internal/domain/repair"
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

const requestColumns = `id, first_name, last_name, email, problem_type, description, status, created_at`

// GetByID retrieves a repair request by ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Request, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+requestColumns+` FROM repair_request WHERE id = ?`, id)
	return scanRequest(row)
}

// Save inserts or updates a repair request.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, r domain.Request) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO repair_request (id, first_name, last_name, email, problem_type, description, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   first_name=excluded.first_name, last_name=excluded.last_name, email=excluded.email,
		   problem_type=excluded.problem_type, description=excluded.description, status=excluded.status`,
		r.ID, r.FirstName, r.LastName, r.Email, r.ProblemType, r.Description,
		r.Status, r.CreatedAt.Format(timeLayout))
	return err
}

// Delete removes a repair request by ID.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM repair_request WHERE id = ?`, id)
	return err
}

// List returns all repair requests, newest first.
// PRE: none
// POST: Returns all requests ordered by created_at DESC
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Request, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+requestColumns+` FROM repair_request ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []domain.Request
	for rows.Next() {
		var r domain.Request
		var createdAt string
		if err := rows.Scan(&r.ID, &r.FirstName, &r.LastName, &r.Email, &r.ProblemType,
			&r.Description, &r.Status, &createdAt); err != nil {
			return nil, err
		}
		r.CreatedAt = parseTime(createdAt, r.ID)
		requests = append(requests, r)
	}
	return requests, rows.Err()
}

// scanRequest scans a single row into a Request.
func scanRequest(row *sql.Row) (domain.Request, error) {
	var r domain.Request
	var createdAt string
	err := row.Scan(&r.ID, &r.FirstName, &r.LastName, &r.Email, &r.ProblemType,
		&r.Description, &r.Status, &createdAt)
	if err != nil {
		return domain.Request{}, err
	}
	r.CreatedAt = parseTime(createdAt, r.ID)
	return r, nil
}

// parseTime parses a time string, logging a warning on failure.
func parseTime(raw, requestID string) time.Time {
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		slog.Warn("repair: failed to parse time", "field", "created_at", "request_id", requestID, "raw", raw, "error", err)
	}
	return t
}
