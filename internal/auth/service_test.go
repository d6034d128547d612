package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"ticketforge/internal/principals"
	"ticketforge/internal/shared/config"

	"github.com/google/uuid"
)

type fakeRepo struct {
	mu    sync.Mutex
	store map[string]principals.Principal // keyed by id
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{store: make(map[string]principals.Principal)}
}

func (f *fakeRepo) CreatePrincipal(ctx context.Context, principal *principals.Principal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if principal.ID == uuid.Nil {
		principal.ID = uuid.New()
	}
	principal.CreatedAt = time.Now()
	f.store[principal.ID.String()] = *principal
	return nil
}

func (f *fakeRepo) GetPrincipalByEmail(ctx context.Context, email string) (*principals.Principal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.store {
		if p.Email == email {
			return &p, nil
		}
	}
	return nil, ErrPrincipalNotFound
}

func (f *fakeRepo) GetPrincipalByID(ctx context.Context, id string) (*principals.Principal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.store[id]
	if !ok {
		return nil, ErrPrincipalNotFound
	}
	return &p, nil
}

func (f *fakeRepo) UpdatePassword(ctx context.Context, principalID string, hashedPassword string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.store[principalID]
	if !ok {
		return ErrPrincipalNotFound
	}
	p.Password = hashedPassword
	f.store[principalID] = p
	return nil
}

func (f *fakeRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.store {
		if p.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			JWTExpiresIn:     15 * time.Minute,
			RefreshExpiresIn: 24 * time.Hour,
		},
	}
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo(), testConfig())

	resp, err := svc.Register(ctx, &RegisterRequest{
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("register must issue a token pair")
	}

	claims, err := svc.ValidateToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Type != "access" {
		t.Fatalf("claims.Type = %q, want access", claims.Type)
	}
	if claims.PrincipalID != resp.Principal.ID {
		t.Fatal("access token must carry the principal id")
	}

	t.Run("duplicate email is rejected", func(t *testing.T) {
		_, err := svc.Register(ctx, &RegisterRequest{
			Name:     "Ada Again",
			Email:    "ada@example.com",
			Password: "secret123",
		})
		if !errors.Is(err, ErrPrincipalAlreadyExists) {
			t.Fatalf("err = %v, want ErrPrincipalAlreadyExists", err)
		}
	})

	t.Run("login with the right password", func(t *testing.T) {
		login, err := svc.Login(ctx, &LoginRequest{Email: "ada@example.com", Password: "secret123"})
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		if login.Principal.ID != resp.Principal.ID {
			t.Fatal("login must return the registered principal")
		}
	})

	t.Run("login with a wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, &LoginRequest{Email: "ada@example.com", Password: "wrong"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("err = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("login with an unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, &LoginRequest{Email: "nobody@example.com", Password: "secret123"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("err = %v, want ErrInvalidCredentials", err)
		}
	})
}

func TestRefreshToken(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo(), testConfig())

	resp, err := svc.Register(ctx, &RegisterRequest{
		Name:     "Grace Hopper",
		Email:    "grace@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	pair, err := svc.RefreshToken(ctx, resp.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken: %v", err)
	}
	if pair.AccessToken == "" {
		t.Fatal("refresh must issue a new access token")
	}

	t.Run("access token cannot refresh", func(t *testing.T) {
		_, err := svc.RefreshToken(ctx, resp.AccessToken)
		if !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("err = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.RefreshToken(ctx, "not-a-token")
		if !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("err = %v, want ErrInvalidToken", err)
		}
	})
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo(), testConfig())

	resp, err := svc.Register(ctx, &RegisterRequest{
		Name:     "Alan Turing",
		Email:    "alan@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	err = svc.ChangePassword(ctx, resp.Principal.ID, &ChangePasswordRequest{
		CurrentPassword: "secret123",
		NewPassword:     "evenmoresecret",
	})
	if err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}

	if _, err := svc.Login(ctx, &LoginRequest{Email: "alan@example.com", Password: "secret123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatal("old password must stop working")
	}
	if _, err := svc.Login(ctx, &LoginRequest{Email: "alan@example.com", Password: "evenmoresecret"}); err != nil {
		t.Fatalf("login with new password: %v", err)
	}

	t.Run("wrong current password", func(t *testing.T) {
		err := svc.ChangePassword(ctx, resp.Principal.ID, &ChangePasswordRequest{
			CurrentPassword: "wrong",
			NewPassword:     "whatever123",
		})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("err = %v, want ErrInvalidCredentials", err)
		}
	})
}
