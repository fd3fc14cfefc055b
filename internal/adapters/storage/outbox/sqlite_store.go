package outbox

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"cpgg/internal/adapters/storage"
	domain "cpgg/internal/domain/outbox"
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

const entryColumns = `id, action_type, payload, status, attempts, max_attempts,
		last_attempted_at, created_at, error_message`

// GetByID retrieves an outbox entry by ID.
// PRE: id is non-empty
// POST: Returns the entry or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM outbox WHERE id = ?`, id)
	return scanEntry(row)
}

// Save inserts or updates an outbox entry.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, e domain.Entry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO outbox (id, action_type, payload, status, attempts, max_attempts,
		   last_attempted_at, created_at, error_message)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   action_type=excluded.action_type, payload=excluded.payload, status=excluded.status,
		   attempts=excluded.attempts, max_attempts=excluded.max_attempts,
		   last_attempted_at=excluded.last_attempted_at, error_message=excluded.error_message`,
		e.ID, e.ActionType, e.Payload, e.Status, e.Attempts, e.MaxAttempts,
		nullableTime(e.LastAttemptedAt), e.CreatedAt.Format(timeLayout), e.ErrorMessage)
	return err
}

// ListPending returns entries waiting to be processed, oldest first.
// PRE: limit > 0
// POST: Returns up to limit pending/retrying entries ordered by created_at
func (s *SQLiteStore) ListPending(ctx context.Context, limit int) ([]domain.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM outbox
		 WHERE status IN (?, ?) AND attempts < max_attempts
		 ORDER BY created_at LIMIT ?`,
		domain.StatusPending, domain.StatusRetrying, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

// ListFailed returns permanently failed entries, most recent attempt first.
// PRE: limit > 0
// POST: Returns up to limit failed entries ordered by last_attempted_at desc
func (s *SQLiteStore) ListFailed(ctx context.Context, limit int) ([]domain.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM outbox
		 WHERE status = ? ORDER BY last_attempted_at DESC LIMIT ?`,
		domain.StatusFailed, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

// Delete removes an outbox entry by ID.
// PRE: id is non-empty
// POST: Entry with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM outbox WHERE id = ?`, id)
	return err
}

// scanEntry scans a single row into an Entry.
func scanEntry(row *sql.Row) (domain.Entry, error) {
	var e domain.Entry
	var lastAttemptedAt sql.NullString
	var createdAt string

	err := row.Scan(&e.ID, &e.ActionType, &e.Payload, &e.Status, &e.Attempts, &e.MaxAttempts,
		&lastAttemptedAt, &createdAt, &e.ErrorMessage)
	if err != nil {
		return domain.Entry{}, err
	}

	e.CreatedAt = parseTime(createdAt, "created_at", e.ID)
	if lastAttemptedAt.Valid {
		e.LastAttemptedAt = parseTime(lastAttemptedAt.String, "last_attempted_at", e.ID)
	}
	return e, nil
}

// scanEntries scans multiple rows into a slice of Entries.
func scanEntries(rows *sql.Rows) ([]domain.Entry, error) {
	var entries []domain.Entry
	for rows.Next() {
		var e domain.Entry
		var lastAttemptedAt sql.NullString
		var createdAt string

		err := rows.Scan(&e.ID, &e.ActionType, &e.Payload, &e.Status, &e.Attempts, &e.MaxAttempts,
			&lastAttemptedAt, &createdAt, &e.ErrorMessage)
		if err != nil {
			return nil, err
		}

		e.CreatedAt = parseTime(createdAt, "created_at", e.ID)
		if lastAttemptedAt.Valid {
			e.LastAttemptedAt = parseTime(lastAttemptedAt.String, "last_attempted_at", e.ID)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// parseTime parses a time string, logging a warning on failure.
func parseTime(raw, field, entryID string) time.Time {
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		slog.Warn("outbox: failed to parse time", "field", field, "entry_id", entryID, "raw", raw, "error", err)
	}
	return t
}

func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(timeLayout)
}
