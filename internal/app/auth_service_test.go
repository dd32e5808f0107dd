package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"knowyourplant/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

type mockUserRepo struct {
	getByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	getByIDFn    func(ctx context.Context, id int64) (*domain.User, error)
	createFn     func(ctx context.Context, name, email, passwordHash string) (*domain.User, error)
	countFn      func(ctx context.Context) (int, error)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) Create(ctx context.Context, name, email, passwordHash string) (*domain.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, name, email, passwordHash)
	}
	return &domain.User{ID: 1, Name: name, Email: email, PasswordHash: passwordHash}, nil
}

func (m *mockUserRepo) Count(ctx context.Context) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

type mockSessionRepo struct {
	createFn        func(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	getByTokenFn    func(ctx context.Context, token string) (*domain.Session, error)
	deleteFn        func(ctx context.Context, token string) error
	deleteExpiredFn func(ctx context.Context) error
}

func (m *mockSessionRepo) Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	if m.createFn != nil {
		return m.createFn(ctx, userID, token, expiresAt)
	}
	return nil
}

func (m *mockSessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	if m.getByTokenFn != nil {
		return m.getByTokenFn(ctx, token)
	}
	return nil, nil
}

func (m *mockSessionRepo) Delete(ctx context.Context, token string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, token)
	}
	return nil
}

func (m *mockSessionRepo) DeleteExpired(ctx context.Context) error {
	if m.deleteExpiredFn != nil {
		return m.deleteExpiredFn(ctx)
	}
	return nil
}

type stubVerifier struct {
	email string
	name  string
	err   error
}

func (v *stubVerifier) Verify(ctx context.Context, rawToken string) (string, string, error) {
	return v.email, v.name, v.err
}

func TestAuthService_Login_Success(t *testing.T) {
	ctx := context.Background()
	password := "testpass123"
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	users := &mockUserRepo{
		getByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			if email != "leaf@example.com" {
				t.Errorf("expected lowercased trimmed email, got %q", email)
			}
			return &domain.User{ID: 1, Name: "Leaf", Email: email, PasswordHash: string(hash)}, nil
		},
	}
	sessions := &mockSessionRepo{
		createFn: func(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
			if userID != 1 {
				t.Errorf("expected userID 1, got %d", userID)
			}
			if token == "" {
				t.Error("token should not be empty")
			}
			return nil
		},
	}

	svc := NewAuthService(users, sessions, nil)
	token, err := svc.Login(ctx, "  Leaf@Example.com ", password)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if token == "" {
		t.Error("expected token, got empty string")
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("correctpass"), bcrypt.DefaultCost)

	users := &mockUserRepo{
		getByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: 1, Email: email, PasswordHash: string(hash)}, nil
		},
	}

	svc := NewAuthService(users, &mockSessionRepo{}, nil)
	if _, err := svc.Login(ctx, "leaf@example.com", "wrongpass"); err != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, &mockSessionRepo{}, nil)
	if _, err := svc.Login(context.Background(), "nobody@example.com", "pw"); err != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Register_DoesNotAuthenticate(t *testing.T) {
	ctx := context.Background()
	sessionCreated := false
	created := false

	users := &mockUserRepo{
		createFn: func(ctx context.Context, name, email, passwordHash string) (*domain.User, error) {
			created = true
			if passwordHash == "" {
				t.Error("expected a bcrypt hash")
			}
			return &domain.User{ID: 2, Name: name, Email: email}, nil
		},
	}
	sessions := &mockSessionRepo{
		createFn: func(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
			sessionCreated = true
			return nil
		},
	}

	svc := NewAuthService(users, sessions, nil)
	if err := svc.Register(ctx, "Leaf", "leaf@example.com", "secret123"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if !created {
		t.Error("expected user to be created")
	}
	if sessionCreated {
		t.Error("registration must not create a session")
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	users := &mockUserRepo{
		getByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: 1, Email: email}, nil
		},
	}
	svc := NewAuthService(users, &mockSessionRepo{}, nil)
	if err := svc.Register(context.Background(), "Leaf", "leaf@example.com", "pw123456"); err != ErrEmailTaken {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, &mockSessionRepo{}, nil)
	if err := svc.Register(context.Background(), "", "leaf@example.com", "pw"); err != ErrInvalidProfile {
		t.Errorf("expected ErrInvalidProfile, got %v", err)
	}
}

func TestAuthService_ValidateToken_Valid(t *testing.T) {
	ctx := context.Background()
	token := "validtoken"

	sessions := &mockSessionRepo{
		getByTokenFn: func(ctx context.Context, tok string) (*domain.Session, error) {
			return &domain.Session{Token: token, UserID: 1, ExpiresAt: time.Now().Add(time.Hour)}, nil
		},
	}
	users := &mockUserRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.User, error) {
			return &domain.User{ID: 1, Name: "Leaf", Email: "leaf@example.com"}, nil
		},
	}

	svc := NewAuthService(users, sessions, nil)
	user, err := svc.ValidateToken(ctx, token)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.Email != "leaf@example.com" {
		t.Errorf("unexpected user %+v", user)
	}
}

func TestAuthService_ValidateToken_Expired(t *testing.T) {
	ctx := context.Background()
	deleted := false

	sessions := &mockSessionRepo{
		getByTokenFn: func(ctx context.Context, tok string) (*domain.Session, error) {
			return &domain.Session{Token: tok, UserID: 1, ExpiresAt: time.Now().Add(-time.Hour)}, nil
		},
		deleteFn: func(ctx context.Context, tok string) error {
			deleted = true
			return nil
		},
	}

	svc := NewAuthService(&mockUserRepo{}, sessions, nil)
	if _, err := svc.ValidateToken(ctx, "expiredtoken"); err != ErrSessionExpired {
		t.Errorf("expected ErrSessionExpired, got %v", err)
	}
	if !deleted {
		t.Error("expected expired session to be deleted")
	}
}

func TestAuthService_ValidateToken_NotFound(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, &mockSessionRepo{}, nil)
	if _, err := svc.ValidateToken(context.Background(), "missing"); err != ErrSessionNotFound {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestAuthService_GoogleLogin_ProvisionsUser(t *testing.T) {
	ctx := context.Background()
	var createdEmail string

	users := &mockUserRepo{
		createFn: func(ctx context.Context, name, email, passwordHash string) (*domain.User, error) {
			createdEmail = email
			if passwordHash != "" {
				t.Error("provisioned users must have no usable password hash")
			}
			return &domain.User{ID: 3, Name: name, Email: email}, nil
		},
	}

	svc := NewAuthService(users, &mockSessionRepo{}, &stubVerifier{email: "G@Example.com", name: "G"})
	token, err := svc.GoogleLogin(ctx, "id-token")
	if err != nil {
		t.Fatalf("GoogleLogin: %v", err)
	}
	if token == "" {
		t.Error("expected a session token")
	}
	if createdEmail != "g@example.com" {
		t.Errorf("expected lowercased email, got %q", createdEmail)
	}
}

func TestAuthService_GoogleLogin_InvalidToken(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, &mockSessionRepo{}, &stubVerifier{err: errors.New("bad token")})
	if _, err := svc.GoogleLogin(context.Background(), "junk"); err != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_GoogleLogin_Disabled(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, &mockSessionRepo{}, nil)
	if _, err := svc.GoogleLogin(context.Background(), "tok"); err != ErrGoogleDisabled {
		t.Errorf("expected ErrGoogleDisabled, got %v", err)
	}
}
