package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"offer-marketplace/internal/auth"
	"offer-marketplace/internal/authz"
	"offer-marketplace/internal/domain/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type verifierFunc func(ctx context.Context, raw string) (*auth.Claims, error)

func (f verifierFunc) Parse(ctx context.Context, raw string) (*auth.Claims, error) { return f(ctx, raw) }

var fakeVerifier = verifierFunc(func(_ context.Context, raw string) (*auth.Claims, error) {
	switch raw {
	case "admin-token":
		return &auth.Claims{Email: "admin@example.com", Role: user.RoleAdmin, RegisteredClaims: jwt.RegisteredClaims{Subject: "admin-1", ID: "jti-a"}}, nil
	case "signer-token":
		return &auth.Claims{Email: "jan@example.com", Role: user.RoleSigner, RegisteredClaims: jwt.RegisteredClaims{Subject: "signer-1", ID: "jti-s"}}, nil
	}
	return nil, errors.New("bad token")
})

func serveWithAuth(mw []echo.MiddlewareFunc, token string) (*httptest.ResponseRecorder, *authz.Principal) {
	var seen *authz.Principal
	e := echo.New()
	e.GET("/x", func(c echo.Context) error {
		seen = PrincipalFrom(c)
		return c.NoContent(http.StatusNoContent)
	}, mw...)
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec, seen
}

func TestAuthenticate(t *testing.T) {
	rec, p := serveWithAuth([]echo.MiddlewareFunc{Authenticate(fakeVerifier)}, "signer-token")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, p)
	assert.Equal(t, "signer-1", p.ID)
	assert.Equal(t, user.RoleSigner, p.Role)

	rec, _ = serveWithAuth([]echo.MiddlewareFunc{Authenticate(fakeVerifier)}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Brak autoryzacji")

	rec, _ = serveWithAuth([]echo.MiddlewareFunc{Authenticate(fakeVerifier)}, "forged")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalAuth(t *testing.T) {
	rec, p := serveWithAuth([]echo.MiddlewareFunc{OptionalAuth(fakeVerifier)}, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Nil(t, p)

	rec, p = serveWithAuth([]echo.MiddlewareFunc{OptionalAuth(fakeVerifier)}, "forged")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Nil(t, p)

	_, p = serveWithAuth([]echo.MiddlewareFunc{OptionalAuth(fakeVerifier)}, "admin-token")
	require.NotNil(t, p)
	assert.Equal(t, user.RoleAdmin, p.Role)
}

func TestRequire(t *testing.T) {
	adminOnly := []echo.MiddlewareFunc{Authenticate(fakeVerifier), Require(authz.IsAdmin)}

	rec, _ := serveWithAuth(adminOnly, "admin-token")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, _ = serveWithAuth(adminOnly, "signer-token")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Nie masz uprawnień")

	rec, _ = serveWithAuth([]echo.MiddlewareFunc{Require(authz.IsAdmin)}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBearerToken(t *testing.T) {
	cases := map[string]string{
		"Bearer abc":   "abc",
		"bearer  abc ": "abc",
		"Basic abc":    "",
		"Bearer":       "",
		"":             "",
	}
	for header, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderAuthorization, header)
		assert.Equal(t, want, bearerToken(req), "header %q", header)
	}
}

func TestClaimsFrom(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Nil(t, ClaimsFrom(c))

	req := c.Request()
	req.Header.Set(echo.HeaderAuthorization, "Bearer admin-token")
	require.True(t, authenticate(c, fakeVerifier))
	cl := ClaimsFrom(c)
	require.NotNil(t, cl)
	assert.Equal(t, "jti-a", cl.ID)
}
