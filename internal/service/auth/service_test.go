package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/daybookhq/daybook-backend/internal/config"
	"github.com/daybookhq/daybook-backend/internal/domain"
)

// Manual mocks (moq-style with func fields)

var _ userRepo = &mockUserRepo{}

type mockUserRepo struct {
	GetByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
	CreateFunc     func(ctx context.Context, u *domain.User) (*domain.User, error)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, domain.ErrNotFound
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	created := *u
	created.ID = uuid.New()
	return &created, nil
}

var _ jwtManager = &mockJWTManager{}

type mockJWTManager struct {
	GenerateAccessTokenFunc func(userID uuid.UUID) (string, error)
}

func (m *mockJWTManager) GenerateAccessToken(userID uuid.UUID) (string, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(userID)
	}
	return "token-" + userID.String(), nil
}

func newTestService(users *mockUserRepo) *Service {
	if users == nil {
		users = &mockUserRepo{}
	}
	cfg := config.AuthConfig{PasswordHashCost: bcrypt.MinCost}
	return NewService(slog.New(slog.NewTextHandler(io.Discard, nil)), users, &mockJWTManager{}, cfg)
}

func TestRegister_Success(t *testing.T) {
	t.Parallel()

	var created *domain.User
	users := &mockUserRepo{
		CreateFunc: func(ctx context.Context, u *domain.User) (*domain.User, error) {
			created = u
			out := *u
			out.ID = uuid.New()
			return &out, nil
		},
	}

	svc := newTestService(users)

	result, err := svc.Register(context.Background(), RegisterInput{
		Email:       "  Sam@Example.COM ",
		Password:    "hunter2hunter2",
		DisplayName: " Sam ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Email != "sam@example.com" {
		t.Errorf("email: got %q, want normalized sam@example.com", created.Email)
	}
	if created.DisplayName != "Sam" {
		t.Errorf("display name: got %q, want trimmed Sam", created.DisplayName)
	}
	if created.Timezone != "UTC" {
		t.Errorf("timezone: got %q, want UTC default", created.Timezone)
	}
	if created.PasswordHash == "hunter2hunter2" || created.PasswordHash == "" {
		t.Error("password stored unhashed or empty")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("hunter2hunter2")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
	if result.AccessToken == "" {
		t.Error("result missing access token")
	}
	if result.User == nil || result.User.ID == uuid.Nil {
		t.Error("result missing user")
	}
}

func TestRegister_ExplicitTimezone(t *testing.T) {
	t.Parallel()

	var created *domain.User
	users := &mockUserRepo{
		CreateFunc: func(ctx context.Context, u *domain.User) (*domain.User, error) {
			created = u
			return u, nil
		},
	}

	svc := newTestService(users)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "sam@example.com",
		Password: "hunter2hunter2",
		Timezone: "Europe/Berlin",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Timezone != "Europe/Berlin" {
		t.Errorf("timezone: got %q", created.Timezone)
	}
}

func TestRegister_EmailTaken(t *testing.T) {
	t.Parallel()

	users := &mockUserRepo{
		CreateFunc: func(ctx context.Context, u *domain.User) (*domain.User, error) {
			return nil, domain.ErrAlreadyExists
		},
	}

	svc := newTestService(users)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "sam@example.com",
		Password: "hunter2hunter2",
	})
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Errorf("error: got %v, want ErrAlreadyExists", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     RegisterInput
		wantField string
	}{
		{"missing email", RegisterInput{Password: "hunter2hunter2"}, "email"},
		{"bad email", RegisterInput{Email: "not-an-address", Password: "hunter2hunter2"}, "email"},
		{"missing password", RegisterInput{Email: "a@b.com"}, "password"},
		{"short password", RegisterInput{Email: "a@b.com", Password: "short"}, "password"},
		{"long password", RegisterInput{Email: "a@b.com", Password: strings.Repeat("x", 73)}, "password"},
		{"bad timezone", RegisterInput{Email: "a@b.com", Password: "hunter2hunter2", Timezone: "Sideways/Nowhere"}, "timezone"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := newTestService(nil)

			_, err := svc.Register(context.Background(), tc.input)
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %T: %v", err, err)
			}
			if ve.Errors[0].Field != tc.wantField {
				t.Errorf("field: got %q, want %q", ve.Errors[0].Field, tc.wantField)
			}
		})
	}
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	userID := uuid.New()
	users := &mockUserRepo{
		GetByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			if email != "sam@example.com" {
				t.Errorf("email: got %q", email)
			}
			return &domain.User{ID: userID, Email: email, PasswordHash: string(hash)}, nil
		},
	}

	svc := newTestService(users)

	result, err := svc.Login(context.Background(), LoginInput{
		Email:    " sam@example.com ",
		Password: "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.User.ID != userID {
		t.Errorf("user: got %v, want %v", result.User.ID, userID)
	}
	if result.AccessToken == "" {
		t.Error("result missing access token")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	users := &mockUserRepo{
		GetByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: uuid.New(), Email: email, PasswordHash: string(hash)}, nil
		},
	}

	svc := newTestService(users)

	_, err = svc.Login(context.Background(), LoginInput{
		Email:    "sam@example.com",
		Password: "wrong-password",
	})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("error: got %v, want ErrUnauthorized", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	t.Parallel()

	svc := newTestService(nil)

	_, err := svc.Login(context.Background(), LoginInput{
		Email:    "ghost@example.com",
		Password: "whatever123",
	})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("error: got %v, want ErrUnauthorized (not a not-found leak)", err)
	}
	if errors.Is(err, domain.ErrNotFound) {
		t.Error("login leaked ErrNotFound for unknown email")
	}
}

func TestLogin_MissingFields(t *testing.T) {
	t.Parallel()

	svc := newTestService(nil)

	_, err := svc.Login(context.Background(), LoginInput{})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("error: got %v, want validation error", err)
	}
}

func TestLogin_TokenFailureSurfaced(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	users := &mockUserRepo{
		GetByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: uuid.New(), Email: email, PasswordHash: string(hash)}, nil
		},
	}

	cfg := config.AuthConfig{PasswordHashCost: bcrypt.MinCost}
	jwt := &mockJWTManager{
		GenerateAccessTokenFunc: func(userID uuid.UUID) (string, error) {
			return "", errors.New("signing key unavailable")
		},
	}
	svc := NewService(slog.New(slog.NewTextHandler(io.Discard, nil)), users, jwt, cfg)

	_, err = svc.Login(context.Background(), LoginInput{
		Email:    "sam@example.com",
		Password: "hunter2hunter2",
	})
	if err == nil || !strings.Contains(err.Error(), "generate access token") {
		t.Errorf("error: got %v, want generate access token context", err)
	}
}
