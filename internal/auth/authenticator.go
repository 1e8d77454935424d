package auth

import (
	"context"

	"github.com/bolophil/SplitIt/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods (password,
// OAuth, phone-based, etc.) without changing the service layer code.
type Authenticator interface {
	// Register creates a new account with the given email and credential.
	// phoneNumber is optional; when set it lets SMS-invited guests claim
	// their participant entries later.
	Register(ctx context.Context, email, displayName, phoneNumber, credential string) (*models.User, error)

	// Authenticate verifies the user's credentials and returns the user if successful.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}
