// Package auth verifies admin credentials and issues session tokens.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/01moynul/storefront-golang/internal/store"
)

// ErrInvalidCredentials is returned for an unknown email and for a wrong
// password alike.
var ErrInvalidCredentials = errors.New("invalid email or password")

// dummyHash is compared against when the email is unknown so both failure
// paths cost one bcrypt comparison.
const dummyHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z3Hf0bLqLZ6xG0m2n3vYb8Gy"

// AdminFinder is the slice of the store the authenticator needs.
type AdminFinder interface {
	GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error)
}

type Authenticator struct {
	admins AdminFinder
}

func NewAuthenticator(admins AdminFinder) *Authenticator {
	return &Authenticator{admins: admins}
}

// Authenticate returns the admin whose email and password match.
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (*models.Admin, error) {
	admin, err := a.admins.GetAdminByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			pw := models.Password{Hash: dummyHash}
			_, _ = pw.Matches(password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}

	pw := models.Password{Hash: admin.PasswordHash}
	ok, err := pw.Matches(password)
	if err != nil || !ok {
		return nil, ErrInvalidCredentials
	}
	return admin, nil
}

// HashPassword bcrypt-hashes a plaintext password for storage.
func HashPassword(plaintext string) (string, error) {
	var pw models.Password
	if err := pw.Set(plaintext); err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return pw.Hash, nil
}
