package http

import (
	userUC "offer-marketplace/internal/usecase/user"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type UserHandler struct {
	uc  *userUC.Usecase
	log logrus.FieldLogger
}

func NewUserHandler(uc *userUC.Usecase, log logrus.FieldLogger) *UserHandler {
	return &UserHandler{uc: uc, log: log}
}

func (h *UserHandler) List(c echo.Context) error {
	res, err := h.uc.List(c.Request().Context(), userUC.ListQuery{
		Page:  atoiOr(c.QueryParam("page"), 1),
		Limit: atoiOr(c.QueryParam("limit"), 0),
		Role:  c.QueryParam("role"),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return respondPage(c, res.Items, res.Pagination)
}
