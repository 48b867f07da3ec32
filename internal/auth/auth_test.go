package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/01moynul/storefront-golang/internal/store"
)

const testSecret = "test-secret-0123456789"

type fakeAdmins map[string]*models.Admin

func (f fakeAdmins) GetAdminByEmail(_ context.Context, email string) (*models.Admin, error) {
	if email == "broken@example.com" {
		return nil, errors.New("connection reset")
	}
	a, ok := f[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	return a, nil
}

func TestAuthenticate(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)
	admins := fakeAdmins{"root@example.com": {ID: 1, Email: "root@example.com", PasswordHash: hash, Role: models.RoleAdmin}}
	a := NewAuthenticator(admins)
	ctx := context.Background()

	got, err := a.Authenticate(ctx, "root@example.com", "s3cret!")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)

	_, errWrong := a.Authenticate(ctx, "root@example.com", "nope")
	_, errUnknown := a.Authenticate(ctx, "ghost@example.com", "s3cret!")
	assert.ErrorIs(t, errWrong, ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.Equal(t, errWrong.Error(), errUnknown.Error())

	_, err = a.Authenticate(ctx, "broken@example.com", "x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestNewManagerRejectsShortSecret(t *testing.T) {
	_, err := NewManager("short", "storefront", time.Hour)
	assert.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	m, err := NewManager(testSecret, "storefront", time.Hour)
	require.NoError(t, err)

	token, expires, err := m.GenerateToken(42, models.RoleAdmin)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.AdminID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, "42", claims.Subject)
}

func TestValidateTokenRejects(t *testing.T) {
	m, err := NewManager(testSecret, "storefront", time.Hour)
	require.NoError(t, err)

	other, err := NewManager("another-secret-0123456789", "storefront", time.Hour)
	require.NoError(t, err)
	foreign, _, err := other.GenerateToken(1, models.RoleAdmin)
	require.NoError(t, err)

	wrongIssuer, err := NewManager(testSecret, "someone-else", time.Hour)
	require.NoError(t, err)
	misissued, _, err := wrongIssuer.GenerateToken(1, models.RoleAdmin)
	require.NoError(t, err)

	expired, err := NewManager(testSecret, "storefront", time.Hour)
	require.NoError(t, err)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	stale, _, err := expired.GenerateToken(1, models.RoleAdmin)
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{AdminID: 1, Role: models.RoleAdmin})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":      "not-a-token",
		"empty":        "",
		"wrong secret": foreign,
		"wrong issuer": misissued,
		"expired":      stale,
		"alg none":     unsigned,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := m.ValidateToken(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
