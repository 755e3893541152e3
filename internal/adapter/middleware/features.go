package middleware

import (
	"net/http"

	"offer-marketplace/internal/features"

	"github.com/labstack/echo/v4"
)

// RequireFeature hides a route group behind a feature flag.
func RequireFeature(flags features.Flags, name string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !flags.Enabled(name) {
				return c.JSON(http.StatusNotFound, map[string]string{"error": "Funkcja jest wyłączona"})
			}
			return next(c)
		}
	}
}
