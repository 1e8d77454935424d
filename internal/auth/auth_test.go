package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bolophil/SplitIt/internal/models"
)

// memoryUserStorage is an in-memory UserStorage for tests.
type memoryUserStorage struct {
	byEmail map[string]*models.User
}

func newMemoryUserStorage() *memoryUserStorage {
	return &memoryUserStorage{byEmail: make(map[string]*models.User)}
}

func (m *memoryUserStorage) CreateUser(ctx context.Context, user *models.User) error {
	m.byEmail[user.Email] = user
	return nil
}

func (m *memoryUserStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.byEmail[email], nil
}

func (m *memoryUserStorage) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func TestPasswordAuthenticator(t *testing.T) {
	ctx := context.Background()
	authenticator := NewPasswordAuthenticator(newMemoryUserStorage())

	user, err := authenticator.Register(ctx, "alice@example.com", "Alice", "+15551234567", "correct-horse-battery")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.PasswordHash == "correct-horse-battery" {
		t.Error("password stored in plaintext")
	}
	if user.PhoneNumber != "+15551234567" {
		t.Errorf("PhoneNumber = %q, want +15551234567", user.PhoneNumber)
	}

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, err := authenticator.Register(ctx, "alice@example.com", "Alice Again", "", "another-password")
		if !errors.Is(err, ErrEmailExists) {
			t.Errorf("Register error = %v, want ErrEmailExists", err)
		}
	})

	t.Run("weak password rejected", func(t *testing.T) {
		_, err := authenticator.Register(ctx, "bob@example.com", "Bob", "", "short")
		if !errors.Is(err, ErrWeakPassword) {
			t.Errorf("Register error = %v, want ErrWeakPassword", err)
		}
	})

	t.Run("authenticate with correct password", func(t *testing.T) {
		got, err := authenticator.Authenticate(ctx, "alice@example.com", "correct-horse-battery")
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if got.ID != user.ID {
			t.Errorf("Authenticate returned user %s, want %s", got.ID, user.ID)
		}
	})

	t.Run("authenticate with wrong password", func(t *testing.T) {
		if _, err := authenticator.Authenticate(ctx, "alice@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Authenticate error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("authenticate unknown email", func(t *testing.T) {
		if _, err := authenticator.Authenticate(ctx, "nobody@example.com", "whatever-pass"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Authenticate error = %v, want ErrInvalidCredentials", err)
		}
	})
}

func TestJWTManager(t *testing.T) {
	user := models.NewUser("alice@example.com", "Alice", "hash")
	manager := NewJWTManager("test-secret", time.Hour)

	token, err := manager.Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := manager.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email {
		t.Errorf("claims = %s/%s, want %s/%s", claims.UserID, claims.Email, user.ID, user.Email)
	}

	t.Run("garbage token rejected", func(t *testing.T) {
		if _, err := manager.Validate("not.a.token"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Validate error = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("token signed with another secret rejected", func(t *testing.T) {
		other := NewJWTManager("different-secret", time.Hour)
		forged, err := other.Generate(user)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if _, err := manager.Validate(forged); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Validate error = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("expired token rejected", func(t *testing.T) {
		shortLived := NewJWTManager("test-secret", -time.Minute)
		expired, err := shortLived.Generate(user)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if _, err := manager.Validate(expired); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Validate error = %v, want ErrInvalidToken", err)
		}
	})
}
