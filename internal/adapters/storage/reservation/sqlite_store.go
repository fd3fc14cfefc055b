package reservation

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	"cpgg/internal/adapters/storage"
	domain "cpgg/internal/domain/reservation"
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

const reservationColumns = `id, first_name, last_name, email, purpose, kind, equipment,
		start_time, end_time, status, created_at`

// GetByID retrieves a reservation by ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Reservation, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+reservationColumns+` FROM reservation WHERE id = ?`, id)
	return scanReservation(row)
}

// Save inserts or updates a reservation. Undo relies on the upsert keeping
// the original ID and created_at of a restored row.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, r domain.Reservation) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO reservation (id, first_name, last_name, email, purpose, kind, equipment,
		   start_time, end_time, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   first_name=excluded.first_name, last_name=excluded.last_name, email=excluded.email,
		   purpose=excluded.purpose, kind=excluded.kind, equipment=excluded.equipment,
		   start_time=excluded.start_time, end_time=excluded.end_time, status=excluded.status,
		   created_at=excluded.created_at`,
		r.ID, r.FirstName, r.LastName, r.Email, r.Purpose, r.Kind, r.Equipment,
		r.StartTime.Format(timeLayout), r.EndTime.Format(timeLayout),
		r.Status, r.CreatedAt.Format(timeLayout))
	return err
}

// Delete removes reservations by ID.
// PRE: ids is non-empty
// POST: All rows whose id is in ids are removed
func (s *SQLiteStore) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM reservation WHERE id IN (`+placeholders+`)`, args...)
	return err
}

// ListAll returns every reservation, newest first.
// PRE: none
// POST: Returns all reservations ordered by created_at DESC
func (s *SQLiteStore) ListAll(ctx context.Context) ([]domain.Reservation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+reservationColumns+` FROM reservation ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReservations(rows)
}

// ListByKinds returns reservations of the given kinds, newest first.
// PRE: kinds is non-empty
// POST: Returns matching reservations ordered by created_at DESC
func (s *SQLiteStore) ListByKinds(ctx context.Context, kinds []string) ([]domain.Reservation, error) {
	if len(kinds) == 0 {
		return nil, nil
	}
	placeholders := strings.Repeat("?,", len(kinds))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(kinds))
	for i, k := range kinds {
		args[i] = k
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+reservationColumns+` FROM reservation WHERE kind IN (`+placeholders+`)
		 ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReservations(rows)
}

// scanReservation scans a single row into a Reservation.
func scanReservation(row *sql.Row) (domain.Reservation, error) {
	var r domain.Reservation
	var startTime, endTime, createdAt string

	err := row.Scan(&r.ID, &r.FirstName, &r.LastName, &r.Email, &r.Purpose, &r.Kind,
		&r.Equipment, &startTime, &endTime, &r.Status, &createdAt)
	if err != nil {
		return domain.Reservation{}, err
	}

	r.StartTime = parseTime(startTime, "start_time", r.ID)
	r.EndTime = parseTime(endTime, "end_time", r.ID)
	r.CreatedAt = parseTime(createdAt, "created_at", r.ID)
	return r, nil
}

// scanReservations scans multiple rows into a slice of Reservations.
func scanReservations(rows *sql.Rows) ([]domain.Reservation, error) {
	var reservations []domain.Reservation
	for rows.Next() {
		var r domain.Reservation
		var startTime, endTime, createdAt string

		err := rows.Scan(&r.ID, &r.FirstName, &r.LastName, &r.Email, &r.Purpose, &r.Kind,
			&r.Equipment, &startTime, &endTime, &r.Status, &createdAt)
		if err != nil {
			return nil, err
		}

		r.StartTime = parseTime(startTime, "start_time", r.ID)
		r.EndTime = parseTime(endTime, "end_time", r.ID)
		r.CreatedAt = parseTime(createdAt, "created_at", r.ID)
		reservations = append(reservations, r)
	}
	return reservations, rows.Err()
}

// parseTime parses a time string, logging a warning on failure.
func parseTime(raw, field, reservationID string) time.Time {
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		slog.Warn("reservation: failed to parse time", "field", field, "reservation_id", reservationID, "raw", raw, "error", err)
	}
	return t
}
