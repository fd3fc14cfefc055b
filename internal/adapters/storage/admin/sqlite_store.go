package admin

import (
	"context"

	"cpgg/internal/adapters/storage"
	domain "cpgg/internal/domain/admin"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const grantColumns = `id, account_id, email, role`

// GetByAccountID retrieves the grant held by an account.
// PRE: accountID is non-empty
// POST: Returns the grant or sql.ErrNoRows if the account holds none
func (s *SQLiteStore) GetByAccountID(ctx context.Context, accountID string) (domain.Grant, error) {
	var g domain.Grant
	err := s.db.QueryRowContext(ctx,
		`SELECT `+grantColumns+` FROM admin_user WHERE account_id = ?`, accountID).
		Scan(&g.ID, &g.AccountID, &g.Email, &g.Role)
	return g, err
}

// GetEmailByRole returns the email of the first admin holding a role.
// Used as the notification recipient lookup for a department.
// PRE: role is a valid role value
// POST: Returns the email or sql.ErrNoRows if no admin holds the role
func (s *SQLiteStore) GetEmailByRole(ctx context.Context, role string) (string, error) {
	var email string
	err := s.db.QueryRowContext(ctx,
		`SELECT email FROM admin_user WHERE role = ? ORDER BY email LIMIT 1`, role).
		Scan(&email)
	return email, err
}

// Save inserts or updates a grant.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, g domain.Grant) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO admin_user (id, account_id, email, role)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   account_id=excluded.account_id, email=excluded.email, role=excluded.role`,
		g.ID, g.AccountID, g.Email, g.Role)
	return err
}

// Delete removes a grant by ID.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM admin_user WHERE id = ?`, id)
	return err
}

// List returns all grants ordered by email.
// PRE: none
// POST: Returns all grants
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Grant, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+grantColumns+` FROM admin_user ORDER BY email`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grants []domain.Grant
	for rows.Next() {
		var g domain.Grant
		if err := rows.Scan(&g.ID, &g.AccountID, &g.Email, &g.Role); err != nil {
			return nil, err
		}
		grants = append(grants, g)
	}
	return grants, rows.Err()
}
