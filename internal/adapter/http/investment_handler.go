package http

import (
	"net/http"

	"offer-marketplace/internal/adapter/middleware"
	"offer-marketplace/internal/authz"
	investmentUC "offer-marketplace/internal/usecase/investment"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type InvestmentHandler struct {
	uc  *investmentUC.Usecase
	log logrus.FieldLogger
}

func NewInvestmentHandler(uc *investmentUC.Usecase, log logrus.FieldLogger) *InvestmentHandler {
	return &InvestmentHandler{uc: uc, log: log}
}

type createInvestmentReq struct {
	OfferID string  `json:"offer_id" validate:"required,uuid"`
	Amount  float64 `json:"amount"   validate:"gt=0,dec2,lte=1000000000"`
}

type investmentStatusReq struct {
	Status string  `json:"status" validate:"required,oneof=accepted rejected cancelled completed"`
	Reason *string `json:"reason" validate:"omitempty,max=500"`
}

type cancelInvestmentReq struct {
	Reason string `json:"reason" validate:"required,min=10,max=500"`
}

func (h *InvestmentHandler) Create(c echo.Context) error {
	var req createInvestmentReq
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	p := middleware.PrincipalFrom(c)
	dto, err := h.uc.Create(c.Request().Context(), p.ID, investmentUC.CreateInvestmentInput(req))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return respond(c, http.StatusCreated, dto)
}

func (h *InvestmentHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), middleware.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return respond(c, http.StatusOK, dto)
}

// List shows everything to admins and only their own investments to signers.
func (h *InvestmentHandler) List(c echo.Context) error {
	p := middleware.PrincipalFrom(c)
	var (
		res *investmentUC.ListResult
		err error
	)
	if authz.IsAdmin(p) {
		res, err = h.uc.ListAll(c.Request().Context(), investmentQuery(c))
	} else {
		res, err = h.uc.ListForUser(c.Request().Context(), p.ID, investmentQuery(c))
	}
	if err != nil {
		return writeError(c, h.log, err)
	}
	return respondPage(c, res.Items, res.Pagination)
}

func (h *InvestmentHandler) ListMine(c echo.Context) error {
	res, err := h.uc.ListForUser(c.Request().Context(), middleware.PrincipalFrom(c).ID, investmentQuery(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return respondPage(c, res.Items, res.Pagination)
}

func (h *InvestmentHandler) ListAdmin(c echo.Context) error {
	res, err := h.uc.ListAdmin(c.Request().Context(), investmentQuery(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return respondPage(c, res.Items, res.Pagination)
}

func (h *InvestmentHandler) UpdateStatus(c echo.Context) error {
	var req investmentStatusReq
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	dto, err := h.uc.UpdateStatus(c.Request().Context(), middleware.PrincipalFrom(c), c.Param("id"), investmentUC.UpdateStatusInput(req))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return respond(c, http.StatusOK, dto)
}

func (h *InvestmentHandler) Cancel(c echo.Context) error {
	var req cancelInvestmentReq
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	p := middleware.PrincipalFrom(c)
	dto, err := h.uc.Cancel(c.Request().Context(), c.Param("id"), p.ID, investmentUC.CancelInput(req))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return respond(c, http.StatusOK, dto)
}

func investmentQuery(c echo.Context) investmentUC.ListQuery {
	return investmentUC.ListQuery{
		Page:    atoiOr(c.QueryParam("page"), 1),
		Limit:   atoiOr(c.QueryParam("limit"), 0),
		Status:  c.QueryParam("status"),
		OfferID: c.QueryParam("offer_id"),
		Filter:  c.QueryParam("filter"),
	}
}
