// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/contacts-api/internal/core"
)

type stubVerifier struct {
	claims *AccessTokenClaims
	err    error
}

func (s stubVerifier) VerifyAccessToken(
	_ context.Context,
	_ string,
) (*AccessTokenClaims, error) {
	return s.claims, s.err
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func serve(h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) core.ErrorResponse {
	t.Helper()
	var body core.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestRoleCheckerAllowLists(t *testing.T) {
	families := map[string][]string{
		"list":        {"admin", "moderator", "user"},
		"create":      {"admin", "moderator", "user"},
		"get":         {"admin", "moderator", "user"},
		"update":      {"admin", "moderator"},
		"change_role": {"admin", "moderator"},
		"delete":      {"admin"},
	}

	for name, allowed := range families {
		checker := NewRoleChecker(allowed...)
		for _, role := range []string{"admin", "moderator", "user"} {
			want := false
			for _, a := range allowed {
				if a == role {
					want = true
				}
			}
			assert.Equal(t, want, checker.Allows(role), "%s/%s", name, role)
		}
		assert.False(t, checker.Allows(""), "%s with no role", name)
	}
}

func TestRoleCheckerHandler(t *testing.T) {
	h := RequireRole("admin", "moderator")(okHandler)

	tests := []struct {
		name   string
		claims *AccessTokenClaims
		want   int
	}{
		{"unauthenticated", nil, http.StatusUnauthorized},
		{"null role", &AccessTokenClaims{ContactID: 1}, http.StatusForbidden},
		{"user role", &AccessTokenClaims{ContactID: 1, Role: "user"}, http.StatusForbidden},
		{"moderator", &AccessTokenClaims{ContactID: 1, Role: "moderator"}, http.StatusOK},
		{"admin", &AccessTokenClaims{ContactID: 1, Role: "admin"}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.claims != nil {
				req = req.WithContext(WithClaims(req.Context(), tt.claims))
			}

			rec := serve(h, req)
			assert.Equal(t, tt.want, rec.Code)

			if tt.want == http.StatusForbidden {
				assert.Equal(t, "Operation forbidden", decodeError(t, rec).Detail)
			}
		})
	}
}

func TestAuthenticator(t *testing.T) {
	var seen *AccessTokenClaims
	capture := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetClaims(r.Context())
		assert.Equal(t, int64(7), GetContactID(r.Context()))
		assert.Equal(t, "a@b.io", GetEmail(r.Context()))
		assert.Equal(t, "user", GetRole(r.Context()))
		w.WriteHeader(http.StatusOK)
	})

	claims := &AccessTokenClaims{ContactID: 7, Email: "a@b.io", Role: "user"}

	t.Run("missing header", func(t *testing.T) {
		h := Authenticator(stubVerifier{claims: claims})(capture)
		rec := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Not authenticated", decodeError(t, rec).Detail)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		h := Authenticator(stubVerifier{claims: claims})(capture)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic abc")
		assert.Equal(t, http.StatusUnauthorized, serve(h, req).Code)
	})

	t.Run("expired token", func(t *testing.T) {
		h := Authenticator(stubVerifier{
			err: fmt.Errorf("verify: %w", core.ErrTokenExpired),
		})(capture)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer tok")
		rec := serve(h, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "TOKEN_EXPIRED", decodeError(t, rec).Code)
	})

	t.Run("deleted contact", func(t *testing.T) {
		h := Authenticator(stubVerifier{
			err: fmt.Errorf("load contact: %w", core.ErrNotFound),
		})(capture)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer tok")
		rec := serve(h, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "TOKEN_INVALID", decodeError(t, rec).Code)
	})

	t.Run("valid token", func(t *testing.T) {
		h := Authenticator(stubVerifier{claims: claims})(capture)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "bearer tok")
		rec := serve(h, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Same(t, claims, seen)
	})
}

func TestExtractToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, ExtractToken(req))

	req.Header.Set("Authorization", "Bearer   abc.def ")
	assert.Equal(t, "abc.def", ExtractToken(req))

	req.Header.Set("Authorization", "Bearer")
	assert.Empty(t, ExtractToken(req))
}
