// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/contacts-api/internal/core"
)

type fakeContacts struct {
	byID     map[int64]*ContactInfo
	rehashed map[int64]string
}

func newFakeContacts(t *testing.T) *fakeContacts {
	t.Helper()

	hash, err := core.HashPassword("secret1")
	require.NoError(t, err)

	return &fakeContacts{
		byID: map[int64]*ContactInfo{
			1: {ID: 1, FirstName: "Ann", LastName: "Lee", Email: "ann@example.com", PasswordHash: hash, Role: "user"},
			2: {ID: 2, FirstName: "Bob", LastName: "Ray", Email: "bob@example.com", PasswordHash: hash},
		},
		rehashed: map[int64]string{},
	}
}

func (f *fakeContacts) GetByEmail(_ context.Context, email string) (*ContactInfo, error) {
	for _, c := range f.byID {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, fmt.Errorf("get contact by email: %w", core.ErrNotFound)
}

func (f *fakeContacts) GetByID(_ context.Context, id int64) (*ContactInfo, error) {
	if c, ok := f.byID[id]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("get contact: %w", core.ErrNotFound)
}

func (f *fakeContacts) UpdatePassword(_ context.Context, id int64, hash string) error {
	f.rehashed[id] = hash
	return nil
}

func newTestService(t *testing.T) (*Service, *fakeContacts) {
	t.Helper()
	contacts := newFakeContacts(t)
	return NewService(newTestJWTManager(t, time.Minute), contacts), contacts
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tokens, err := svc.Login(ctx, LoginRequest{Email: "ann@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", tokens.TokenType)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	_, err = svc.Login(ctx, LoginRequest{Email: "ann@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyAccessTokenUsesStoredRole(t *testing.T) {
	svc, contacts := newTestService(t)
	ctx := context.Background()

	tokens, err := svc.Login(ctx, LoginRequest{Email: "ann@example.com", Password: "secret1"})
	require.NoError(t, err)

	claims, err := svc.VerifyAccessToken(ctx, tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.ContactID)
	assert.Equal(t, "user", claims.Role)

	contacts.byID[1].Role = "admin"

	claims, err = svc.VerifyAccessToken(ctx, tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)

	delete(contacts.byID, 1)

	_, err = svc.VerifyAccessToken(ctx, tokens.AccessToken)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestVerifyAccessTokenRejectsRefreshToken(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tokens, err := svc.Login(ctx, LoginRequest{Email: "ann@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(ctx, tokens.RefreshToken)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestRefresh(t *testing.T) {
	svc, contacts := newTestService(t)
	ctx := context.Background()

	tokens, err := svc.Login(ctx, LoginRequest{Email: "bob@example.com", Password: "secret1"})
	require.NoError(t, err)

	renewed, err := svc.Refresh(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, tokens.AccessToken, renewed.AccessToken)

	_, err = svc.Refresh(ctx, tokens.AccessToken)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)

	delete(contacts.byID, 2)
	_, err = svc.Refresh(ctx, tokens.RefreshToken)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestGetCurrentContact(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	me, err := svc.GetCurrentContact(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, me.Role)
	assert.Equal(t, "user", *me.Role)

	me, err = svc.GetCurrentContact(ctx, 2)
	require.NoError(t, err)
	assert.Nil(t, me.Role)

	_, err = svc.GetCurrentContact(ctx, 0)
	assert.ErrorIs(t, err, core.ErrUnauthorized)
}
