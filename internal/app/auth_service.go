// Package app holds the application services and business logic.
package app

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"knowyourplant/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials indicates that the provided email or password was incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken indicates that the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidProfile indicates a malformed registration request.
	ErrInvalidProfile = errors.New("name, email and password are required")
	// ErrSessionNotFound indicates that the requested session does not exist.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired indicates that the session has expired.
	ErrSessionExpired = errors.New("session expired")
	// ErrUserNotFound indicates that the user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrGoogleDisabled indicates that Google sign-in is not configured.
	ErrGoogleDisabled = errors.New("google sign-in is not configured")
)

const sessionTTL = 24 * time.Hour

// IdentityVerifier checks an externally issued identity token (a Google
// id-token) and returns the asserted email and display name.
type IdentityVerifier interface {
	Verify(ctx context.Context, rawToken string) (email, name string, err error)
}

// AuthService handles registration, authentication and session management.
type AuthService struct {
	users    domain.UserRepository
	sessions domain.SessionRepository
	google   IdentityVerifier // nil when Google sign-in is disabled
}

// NewAuthService creates an authentication service. google may be nil.
func NewAuthService(users domain.UserRepository, sessions domain.SessionRepository, google IdentityVerifier) *AuthService {
	return &AuthService{users: users, sessions: sessions, google: google}
}

// Register creates an account. It does not authenticate the caller; a
// registered user still logs in afterward.
func (s *AuthService) Register(ctx context.Context, name, email, password string) error {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return ErrInvalidProfile
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = s.users.Create(ctx, name, email, string(hash))
	return err
}

// Login authenticates a user and creates a session, returning the bearer
// token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil || user == nil {
		return "", ErrInvalidCredentials
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.createSession(ctx, user.ID)
}

// GoogleLogin verifies a Google id-token, provisions the user on first
// sign-in, and creates a session.
func (s *AuthService) GoogleLogin(ctx context.Context, rawToken string) (string, error) {
	if s.google == nil {
		return "", ErrGoogleDisabled
	}

	email, name, err := s.google.Verify(ctx, rawToken)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	email = strings.ToLower(email)
	if name == "" {
		name = "Google User"
	}

	return s.LoginWithIdentity(ctx, name, email)
}

// LoginWithIdentity creates a session for an externally authenticated
// identity, auto-provisioning the user. Provisioned users carry no usable
// password hash; they sign in through the external identity only.
func (s *AuthService) LoginWithIdentity(ctx context.Context, name, email string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		user, err = s.users.Create(ctx, name, email, "")
		if err != nil {
			// Creation can race a concurrent first sign-in; read again.
			user, err = s.users.GetByEmail(ctx, email)
			if err != nil || user == nil {
				return "", err
			}
		}
	}

	return s.createSession(ctx, user.ID)
}

// Logout invalidates a session; unknown tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// ValidateToken checks a bearer token and returns the owning user.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*domain.User, error) {
	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil || session == nil {
		return nil, ErrSessionNotFound
	}

	if time.Now().After(session.ExpiresAt) {
		_ = s.sessions.Delete(ctx, token)
		return nil, ErrSessionExpired
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil || user == nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}

func (s *AuthService) createSession(ctx context.Context, userID int64) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}

	expiresAt := time.Now().Add(sessionTTL)
	if err := s.sessions.Create(ctx, userID, token, expiresAt); err != nil {
		return "", err
	}

	return token, nil
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
