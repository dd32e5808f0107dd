// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"knowyourplant/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu       sync.Mutex
	users    []*domain.User
	sessions map[string]*domain.Session
	scans    []domain.ScanRecord

	userIDCounter int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		sessions: make(map[string]*domain.Session),
	}
}

// Ensure interfaces are met.
var _ domain.UserRepository = (*DB)(nil)
var _ domain.ScanRepository = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// --- UserRepository ---

// GetByEmail retrieves a user by email.
func (db *DB) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Email == email {
			return u, nil
		}
	}
	// Return nil if not found
	return nil, nil
}

// GetByID retrieves a user by ID.
func (db *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

// Create creates a new user.
func (db *DB) Create(ctx context.Context, name, email, passwordHash string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Email == email {
			return nil, errors.New("user already exists")
		}
	}

	db.userIDCounter++
	u := &domain.User{
		ID:           db.userIDCounter,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	db.users = append(db.users, u)
	return u, nil
}

// Count returns the total number of users.
func (db *DB) Count(ctx context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.users), nil
}

// --- ScanRepository ---

// AddScan records a completed identification.
func (db *DB) AddScan(ctx context.Context, rec domain.ScanRecord) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	rec.ScannedAt = rec.ScannedAt.UTC()
	db.scans = append(db.scans, rec)
	return nil
}

// ListScans lists the user's most recent scans, newest first.
func (db *DB) ListScans(ctx context.Context, userID int64, limit int) ([]domain.ScanRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var result []domain.ScanRecord
	for _, s := range db.scans {
		if s.UserID == userID {
			result = append(result, s)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ScannedAt.After(result[j].ScannedAt)
	})

	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// --- SessionRepository ---

// SessionRepo implements session persistence.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates a new session repository.
func (db *DB) NewSessionRepo() *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.sessions[token] = &domain.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if s, ok := r.db.sessions[token]; ok {
		if time.Now().After(s.ExpiresAt) {
			delete(r.db.sessions, token)
			return nil, nil
		}
		return s, nil
	}
	return nil, nil
}

// Delete deletes a session.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.sessions, token)
	return nil
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now := time.Now()
	for k, v := range r.db.sessions {
		if now.After(v.ExpiresAt) {
			delete(r.db.sessions, k)
		}
	}
	return nil
}
