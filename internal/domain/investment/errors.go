package investment

import (
	"fmt"

	"offer-marketplace/internal/apperr"
	"offer-marketplace/pkg/money"
)

var (
	ErrNotFound          = apperr.NotFound("Inwestycja nie istnieje")
	ErrForbidden         = apperr.Forbidden("Nie masz uprawnień do tej inwestycji")
	ErrOfferNotActive    = apperr.Conflict("Oferta nie jest aktywna")
	ErrOfferExpired      = apperr.Conflict("Oferta wygasła")
	ErrNotPending        = apperr.Conflict("Można anulować tylko oczekującą inwestycję")
	ErrInvalidTransition = apperr.Conflict("Niedozwolona zmiana statusu inwestycji")

	ErrReasonRequired = apperr.Validation("Nieprawidłowe dane", apperr.FieldError{
		Field:   "reason",
		Message: "Powód jest wymagany przy odrzuceniu inwestycji",
	})
	ErrInvalidStatus = apperr.Validation("Nieprawidłowe dane", apperr.FieldError{
		Field:   "status",
		Message: "Nieprawidłowy status inwestycji",
	})
	ErrAmountOutOfRange = apperr.Validation("Nieprawidłowe dane", apperr.FieldError{
		Field:   "amount",
		Message: "Kwota jest poza dozwolonym zakresem",
	})
	ErrCancelReasonLength = apperr.Validation("Nieprawidłowe dane", apperr.FieldError{
		Field:   "reason",
		Message: "Powód anulowania musi mieć od 10 do 500 znaków",
	})
)

// BelowMinimum reports an amount under the offer's minimum investment.
func BelowMinimum(minimum int64) *apperr.Error {
	msg := fmt.Sprintf("Minimalna kwota inwestycji to %s PLN", money.Format(minimum))
	return apperr.Validation(msg, apperr.FieldError{Field: "amount", Message: msg})
}
