package middleware

import (
	"context"
	"net/http"
	"strings"

	"offer-marketplace/internal/auth"
	"offer-marketplace/internal/authz"

	"github.com/labstack/echo/v4"
)

const (
	principalKey = "auth.principal"
	claimsKey    = "auth.claims"
)

// TokenVerifier is satisfied by *auth.TokenManager.
type TokenVerifier interface {
	Parse(ctx context.Context, raw string) (*auth.Claims, error)
}

func bearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get(echo.HeaderAuthorization))
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}

func authenticate(c echo.Context, v TokenVerifier) bool {
	raw := bearerToken(c.Request())
	if raw == "" {
		return false
	}
	claims, err := v.Parse(c.Request().Context(), raw)
	if err != nil {
		return false
	}
	c.Set(claimsKey, claims)
	c.Set(principalKey, &authz.Principal{ID: claims.Subject, Email: claims.Email, Role: claims.Role})
	return true
}

// Authenticate rejects requests without a valid bearer token.
func Authenticate(v TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !authenticate(c, v) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Brak autoryzacji"})
			}
			return next(c)
		}
	}
}

// OptionalAuth attaches the principal when a valid token is present and
// never blocks.
func OptionalAuth(v TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authenticate(c, v)
			return next(c)
		}
	}
}

// Require answers 403 unless allow accepts the authenticated principal.
func Require(allow func(*authz.Principal) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := PrincipalFrom(c)
			if p == nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Brak autoryzacji"})
			}
			if !allow(p) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "Nie masz uprawnień do wykonania tej operacji"})
			}
			return next(c)
		}
	}
}

// PrincipalFrom returns the authenticated caller or nil for anonymous requests.
func PrincipalFrom(c echo.Context) *authz.Principal {
	p, _ := c.Get(principalKey).(*authz.Principal)
	return p
}

func ClaimsFrom(c echo.Context) *auth.Claims {
	cl, _ := c.Get(claimsKey).(*auth.Claims)
	return cl
}

// SetPrincipal is used by tests and internal callers that authenticate out of band.
func SetPrincipal(c echo.Context, p *authz.Principal) { c.Set(principalKey, p) }
