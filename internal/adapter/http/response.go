package http

import (
	"errors"
	"net/http"

	"offer-marketplace/internal/apperr"
	"offer-marketplace/pkg/pagination"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const msgInternal = "Wystąpił nieoczekiwany błąd"

// Envelope is the body of every API response.
type Envelope struct {
	Data       any                 `json:"data,omitempty"`
	Pagination *pagination.Meta    `json:"pagination,omitempty"`
	Error      string              `json:"error,omitempty"`
	Message    string              `json:"message,omitempty"`
	Details    []apperr.FieldError `json:"details,omitempty"`
}

func respond(c echo.Context, code int, data any) error {
	return c.JSON(code, Envelope{Data: data})
}

func respondPage(c echo.Context, data any, meta pagination.Meta) error {
	return c.JSON(http.StatusOK, Envelope{Data: data, Pagination: &meta})
}

func respondMessage(c echo.Context, msg string) error {
	return c.JSON(http.StatusOK, Envelope{Message: msg})
}

func statusOf(k apperr.Kind) int {
	switch k {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps a service error to its status. Internal causes are logged
// and replaced with a generic message.
func writeError(c echo.Context, log logrus.FieldLogger, err error) error {
	var ae *apperr.Error
	if !errors.As(err, &ae) || ae.Kind == apperr.KindInternal {
		log.WithError(err).WithFields(logrus.Fields{
			"method": c.Request().Method,
			"route":  c.Path(),
		}).Error("request failed")
		return c.JSON(http.StatusInternalServerError, Envelope{Error: msgInternal})
	}
	return c.JSON(statusOf(ae.Kind), Envelope{Error: ae.Message, Details: ae.Details})
}

func invalidBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, Envelope{Error: "Nieprawidłowy format danych"})
}

func validationFailed(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, Envelope{Error: "Nieprawidłowe dane", Details: ToFieldErrors(err)})
}

// ErrorHandler renders errors escaping handlers and middleware (unknown
// routes, wrong methods, panics recovered upstream) in the envelope shape.
func ErrorHandler(log logrus.FieldLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg := http.StatusText(he.Code)
			switch he.Code {
			case http.StatusNotFound:
				msg = "Nie znaleziono zasobu"
			case http.StatusMethodNotAllowed:
				msg = "Metoda niedozwolona"
			case http.StatusInternalServerError:
				msg = msgInternal
			}
			if c.Request().Method == http.MethodHead {
				_ = c.NoContent(he.Code)
				return
			}
			_ = c.JSON(he.Code, Envelope{Error: msg})
			return
		}
		_ = writeError(c, log, err)
	}
}
