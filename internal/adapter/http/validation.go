package http

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"time"

	"offer-marketplace/internal/apperr"

	"github.com/go-playground/validator/v10"
)

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// report json (or query) names so details line up with the request payload
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
	// max 2 decimal places
	_ = v.RegisterValidation("dec2", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return math.Abs(f-(math.Round(f*100)/100)) < 1e-9
	})
	// time strictly after now
	_ = v.RegisterValidation("future", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		return ok && t.After(time.Now())
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// ToFieldErrors maps validator.ValidationErrors to field errors with Polish messages.
func ToFieldErrors(err error) []apperr.FieldError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []apperr.FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]apperr.FieldError, 0, len(ve))
	for _, e := range ve {
		out = append(out, apperr.FieldError{Field: e.Field(), Message: messageFor(e)})
	}
	return out
}

func messageFor(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "Pole jest wymagane"
	case "email":
		return "Nieprawidłowy adres e-mail"
	case "url":
		return "Nieprawidłowy adres URL"
	case "uuid", "uuid4":
		return "Nieprawidłowy identyfikator"
	case "dec2":
		return "Kwota może mieć maksymalnie 2 miejsca po przecinku"
	case "future":
		return "Data musi być w przyszłości"
	case "gt":
		return "Wartość musi być większa niż " + e.Param()
	case "gte":
		return "Wartość musi być większa lub równa " + e.Param()
	case "lte":
		return "Wartość musi być mniejsza lub równa " + e.Param()
	case "ltefield":
		return "Wartość nie może przekraczać pola " + jsonName(e.Param())
	case "nefield":
		return "Wartość musi różnić się od pola " + jsonName(e.Param())
	case "min":
		if e.Kind() == reflect.String {
			return "Minimalna długość to " + e.Param() + " znaków"
		}
		return "Minimalna liczba elementów to " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "Maksymalna długość to " + e.Param() + " znaków"
		}
		return "Maksymalna liczba elementów to " + e.Param()
	case "oneof":
		return "Dozwolone wartości: " + strings.ReplaceAll(e.Param(), " ", ", ")
	default:
		return "Nieprawidłowa wartość"
	}
}

// jsonName turns a Go field name used in cross-field tags into snake_case.
func jsonName(goName string) string {
	var b strings.Builder
	for i, r := range goName {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
