package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"offer-marketplace/internal/apperr"
	"offer-marketplace/internal/auth"
	domain "offer-marketplace/internal/domain/user"
	userUC "offer-marketplace/internal/usecase/user"
	"offer-marketplace/pkg/id"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Tokens interface {
	Issue(u *domain.User) (string, time.Time, error)
	Revoke(ctx context.Context, claims *auth.Claims) error
}

type Usecase struct {
	users  domain.Repository
	tokens Tokens
	log    logrus.FieldLogger
}

func NewUsecase(users domain.Repository, tokens Tokens, log logrus.FieldLogger) *Usecase {
	return &Usecase{users: users, tokens: tokens, log: log}
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type LoginInput struct {
	Email    string
	Password string
}

type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
}

type AuthResult struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
	User      userUC.UserDTO `json:"user"`
}

func normalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Register creates a signer account and signs it in.
func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	email := normalizeEmail(in.Email)
	_, err := u.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, domain.ErrEmailTaken
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, apperr.Internal("lookup user", err)
	}

	hash, err := auth.HashPassword(in.Password)
	if errors.Is(err, auth.ErrPasswordTooShort) {
		return nil, apperr.Validation("Nieprawidłowe dane", apperr.FieldError{Field: "password", Message: "Hasło musi mieć co najmniej 8 znaków"})
	}
	if err != nil {
		return nil, apperr.Internal("hash password", err)
	}

	usr := &domain.User{
		ID:           id.New(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Role:         domain.RoleSigner,
	}
	if err := u.users.Create(ctx, usr); err != nil {
		return nil, apperr.Internal("create user", err)
	}
	u.log.WithField("user_id", usr.ID).Info("user registered")
	return u.issue(usr)
}

// Login answers the same error for an unknown email and a wrong password.
func (u *Usecase) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	usr, err := u.users.GetByEmail(ctx, normalizeEmail(in.Email))
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, domain.ErrInvalidCredentials
	case err != nil:
		return nil, apperr.Internal("lookup user", err)
	}
	if !auth.VerifyPassword(usr.PasswordHash, in.Password) {
		u.log.WithField("user_id", usr.ID).Warn("login failed")
		return nil, domain.ErrInvalidCredentials
	}
	return u.issue(usr)
}

func (u *Usecase) Logout(ctx context.Context, claims *auth.Claims) error {
	if err := u.tokens.Revoke(ctx, claims); err != nil {
		return apperr.Internal("revoke token", err)
	}
	return nil
}

func (u *Usecase) ChangePassword(ctx context.Context, userID string, in ChangePasswordInput) error {
	usr, err := u.users.GetByID(ctx, userID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case err != nil:
		return apperr.Internal("load user", err)
	}
	if !auth.VerifyPassword(usr.PasswordHash, in.CurrentPassword) {
		return apperr.Validation("Nieprawidłowe dane", apperr.FieldError{Field: "current_password", Message: "Obecne hasło jest nieprawidłowe"})
	}
	if in.NewPassword == in.CurrentPassword {
		return apperr.Validation("Nieprawidłowe dane", apperr.FieldError{Field: "new_password", Message: "Nowe hasło musi różnić się od obecnego"})
	}
	hash, err := auth.HashPassword(in.NewPassword)
	if errors.Is(err, auth.ErrPasswordTooShort) {
		return apperr.Validation("Nieprawidłowe dane", apperr.FieldError{Field: "new_password", Message: "Hasło musi mieć co najmniej 8 znaków"})
	}
	if err != nil {
		return apperr.Internal("hash password", err)
	}
	if err := u.users.UpdatePassword(ctx, userID, hash); err != nil {
		return apperr.Internal("update password", err)
	}
	u.log.WithField("user_id", userID).Info("password changed")
	return nil
}

func (u *Usecase) issue(usr *domain.User) (*AuthResult, error) {
	tok, exp, err := u.tokens.Issue(usr)
	if err != nil {
		return nil, apperr.Internal("issue token", err)
	}
	return &AuthResult{Token: tok, ExpiresAt: exp, User: userUC.ToDTO(usr)}, nil
}
