package user

import "offer-marketplace/internal/apperr"

var (
	ErrNotFound           = apperr.NotFound("Użytkownik nie istnieje")
	ErrEmailTaken         = apperr.Conflict("Użytkownik o tym adresie e-mail już istnieje")
	ErrInvalidCredentials = apperr.Unauthorized("Nieprawidłowy e-mail lub hasło")
)
