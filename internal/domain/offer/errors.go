package offer

import "offer-marketplace/internal/apperr"

var (
	ErrNotFound = apperr.NotFound("Oferta nie istnieje")

	ErrMinimumAboveTarget = apperr.Validation("Nieprawidłowe dane oferty", apperr.FieldError{
		Field:   "minimum_investment",
		Message: "Minimalna inwestycja nie może być większa niż kwota docelowa",
	})
)

// AmountOutOfRange reports an amount too large to store.
func AmountOutOfRange(field string) *apperr.Error {
	return apperr.Validation("Nieprawidłowe dane oferty", apperr.FieldError{
		Field:   field,
		Message: "Kwota jest poza dozwolonym zakresem",
	})
}
