package http

import (
	"net/http"

	"offer-marketplace/internal/adapter/middleware"
	"offer-marketplace/internal/apperr"
	"offer-marketplace/internal/authz"
	authUC "offer-marketplace/internal/usecase/auth"
	userUC "offer-marketplace/internal/usecase/user"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	auth  *authUC.Usecase
	users *userUC.Usecase
	log   logrus.FieldLogger
}

func NewAuthHandler(auth *authUC.Usecase, users *userUC.Usecase, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{auth: auth, users: users, log: log}
}

type registerReq struct {
	Email     string `json:"email"      validate:"required,email,max=255"`
	Password  string `json:"password"   validate:"required,min=8,max=72"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name"  validate:"required,max=100"`
}

type loginReq struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type changePasswordReq struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,max=72,nefield=CurrentPassword"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	res, err := h.auth.Register(c.Request().Context(), authUC.RegisterInput(req))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return respond(c, http.StatusCreated, res)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	res, err := h.auth.Login(c.Request().Context(), authUC.LoginInput(req))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return respond(c, http.StatusOK, res)
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.auth.Logout(c.Request().Context(), middleware.ClaimsFrom(c)); err != nil {
		return writeError(c, h.log, err)
	}
	return respondMessage(c, "Wylogowano")
}

func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req changePasswordReq
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	err := h.auth.ChangePassword(c.Request().Context(), middleware.PrincipalFrom(c).ID, authUC.ChangePasswordInput(req))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return respondMessage(c, "Hasło zostało zmienione")
}

func (h *AuthHandler) Me(c echo.Context) error {
	dto, err := h.users.Get(c.Request().Context(), middleware.PrincipalFrom(c).ID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return respond(c, http.StatusOK, dto)
}

type accessResp struct {
	Path    string `json:"path"`
	Allowed bool   `json:"allowed"`
}

// Access tells a client whether the caller may open a page route.
func (h *AuthHandler) Access(c echo.Context) error {
	path := c.QueryParam("path")
	if path == "" {
		return c.JSON(http.StatusBadRequest, Envelope{
			Error:   "Nieprawidłowe dane",
			Details: []apperr.FieldError{{Field: "path", Message: "Pole jest wymagane"}},
		})
	}
	return respond(c, http.StatusOK, accessResp{Path: path, Allowed: authz.CanAccessPath(middleware.PrincipalFrom(c), path)})
}
