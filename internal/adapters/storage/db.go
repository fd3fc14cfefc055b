package storage

import (
	"database/sql"
	"fmt"
)

// LatestSchemaVersion is bumped whenever the schema below changes shape.
// Stored in PRAGMA user_version after a successful migration.
const LatestSchemaVersion = 1

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	// Enable foreign key enforcement
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Create tables
	schema := `
	CREATE TABLE IF NOT EXISTS account (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		failed_logins INTEGER NOT NULL DEFAULT 0,
		locked_until TEXT
	);

	CREATE TABLE IF NOT EXISTS admin_user (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		role TEXT NOT NULL,
		FOREIGN KEY (account_id) REFERENCES account(id)
	);

	CREATE TABLE IF NOT EXISTS reservation (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL,
		purpose TEXT NOT NULL,
		kind TEXT NOT NULL,
		equipment TEXT NOT NULL DEFAULT '',
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pendente',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS repair_request (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL,
		problem_type TEXT NOT NULL,
		description TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pendente',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS roster_member (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		section TEXT NOT NULL,
		position INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS researcher (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		areas TEXT NOT NULL DEFAULT '',
		bio TEXT NOT NULL DEFAULT '',
		photo_url TEXT NOT NULL DEFAULT '',
		lattes_url TEXT NOT NULL DEFAULT '',
		updated_at TEXT
	);

	CREATE TABLE IF NOT EXISTS laboratory (
		id TEXT PRIMARY KEY,
		acronym TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		chief_name TEXT NOT NULL DEFAULT '',
		chief_email TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS outbox (
		id TEXT PRIMARY KEY,
		action_type TEXT NOT NULL,
		payload TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		attempts INTEGER NOT NULL DEFAULT 0,
		max_attempts INTEGER NOT NULL DEFAULT 5,
		last_attempted_at TEXT,
		created_at TEXT NOT NULL,
		error_message TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_reservation_kind ON reservation(kind);
	CREATE INDEX IF NOT EXISTS idx_reservation_created ON reservation(created_at);
	CREATE INDEX IF NOT EXISTS idx_outbox_status ON outbox(status);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// MigrateDB brings the schema to LatestSchemaVersion.
// PRE: db is a valid database connection
// POST: schema created or upgraded, PRAGMA user_version = LatestSchemaVersion
func MigrateDB(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if version > LatestSchemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported %d", version, LatestSchemaVersion)
	}

	if err := InitDB(db); err != nil {
		return err
	}

	// Per-version upgrades go here as the schema evolves. CREATE IF NOT
	// EXISTS in InitDB already covers additive table changes.

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", LatestSchemaVersion)); err != nil {
		return fmt.Errorf("failed to set schema version: %w", err)
	}
	return nil
}
