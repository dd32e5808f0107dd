// Package sqlite implements the domain repositories using SQLite. It is the
// default store when no PostgreSQL connection string is configured.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"knowyourplant/internal/domain"

	_ "modernc.org/sqlite"
)

// DB wraps a *sql.DB and implements domain repository interfaces.
type DB struct {
	sql *sql.DB
}

// Open opens (or creates) a SQLite database at path and runs migrations.
// Use ":memory:" for an in-memory database (useful in tests).
func Open(path string) (*DB, error) {
	s, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	// WAL mode for better concurrent read performance.
	if _, err := s.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("pragma wal: %w", err)
	}
	if _, err := s.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("pragma foreign_keys: %w", err)
	}

	d := &DB{sql: s}
	if err := d.migrate(); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate() error {
	stmts := []string{
		"CREATE TABLE IF NOT EXISTS users (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT NOT NULL, email TEXT UNIQUE NOT NULL, password_hash TEXT NOT NULL, created_at TIMESTAMP NOT NULL);",
		"CREATE TABLE IF NOT EXISTS sessions (token TEXT PRIMARY KEY, user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE, expires_at TIMESTAMP NOT NULL, created_at TIMESTAMP NOT NULL);",
		"CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at);",
		"CREATE TABLE IF NOT EXISTS scans (id TEXT PRIMARY KEY, user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE, plant_name TEXT NOT NULL, confidence REAL NOT NULL, capture_type TEXT NOT NULL CHECK(capture_type IN ('image','live')), scanned_at TIMESTAMP NOT NULL);",
		"CREATE INDEX IF NOT EXISTS idx_scans_user_id ON scans(user_id, scanned_at DESC);",
	}
	for _, stmt := range stmts {
		if _, err := d.sql.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// Ensure interfaces are met.
var _ domain.UserRepository = (*DB)(nil)
var _ domain.ScanRepository = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// --- UserRepository ---

// GetByEmail retrieves a user by email.
func (d *DB) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := d.sql.QueryRowContext(ctx,
		"SELECT id, name, email, password_hash, created_at FROM users WHERE email = ?",
		email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID retrieves a user by ID.
func (d *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	err := d.sql.QueryRowContext(ctx,
		"SELECT id, name, email, password_hash, created_at FROM users WHERE id = ?",
		id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create creates a new user.
func (d *DB) Create(ctx context.Context, name, email, passwordHash string) (*domain.User, error) {
	now := time.Now().UTC()
	res, err := d.sql.ExecContext(ctx,
		"INSERT INTO users (name, email, password_hash, created_at) VALUES (?, ?, ?, ?)",
		name, email, passwordHash, now,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &domain.User{ID: id, Name: name, Email: email, PasswordHash: passwordHash, CreatedAt: now}, nil
}

// Count returns the total number of users.
func (d *DB) Count(ctx context.Context) (int, error) {
	var count int
	err := d.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}

// --- ScanRepository ---

// AddScan records a completed identification.
func (d *DB) AddScan(ctx context.Context, rec domain.ScanRecord) error {
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO scans (id, user_id, plant_name, confidence, capture_type, scanned_at) VALUES (?, ?, ?, ?, ?, ?)",
		rec.ID, rec.UserID, rec.PlantName, rec.Confidence, string(rec.CaptureType), rec.ScannedAt.UTC(),
	)
	return err
}

// ListScans lists the user's most recent scans, newest first.
func (d *DB) ListScans(ctx context.Context, userID int64, limit int) ([]domain.ScanRecord, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, user_id, plant_name, confidence, capture_type, scanned_at FROM scans WHERE user_id = ? ORDER BY scanned_at DESC LIMIT ?",
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scans []domain.ScanRecord
	for rows.Next() {
		var rec domain.ScanRecord
		var capture string
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.PlantName, &rec.Confidence, &capture, &rec.ScannedAt); err != nil {
			return nil, err
		}
		rec.CaptureType = domain.CaptureType(capture)
		scans = append(scans, rec)
	}
	return scans, rows.Err()
}

// --- SessionRepository ---

// SessionRepo implements session repository operations on DB.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo wraps a DB as a SessionRepository.
func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	_, err := r.db.sql.ExecContext(ctx,
		"INSERT INTO sessions (user_id, token, expires_at, created_at) VALUES (?, ?, ?, ?)",
		userID, token, expiresAt.UTC(), time.Now().UTC(),
	)
	return err
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	var s domain.Session
	err := r.db.sql.QueryRowContext(ctx,
		"SELECT token, user_id, expires_at, created_at FROM sessions WHERE token = ?",
		token,
	).Scan(&s.Token, &s.UserID, &s.ExpiresAt, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Delete deletes a session by token.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	_, err := r.db.sql.ExecContext(ctx, "DELETE FROM sessions WHERE token = ?", token)
	return err
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	_, err := r.db.sql.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at < ?", time.Now().UTC())
	return err
}
