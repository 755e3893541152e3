package http

import (
	"net/http"
	"time"

	offerUC "offer-marketplace/internal/usecase/offer"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type OfferHandler struct {
	uc  *offerUC.Usecase
	log logrus.FieldLogger
}

func NewOfferHandler(uc *offerUC.Usecase, log logrus.FieldLogger) *OfferHandler {
	return &OfferHandler{uc: uc, log: log}
}

// Amounts are major units (PLN) with at most 2 decimals.
type createOfferReq struct {
	Name              string    `json:"name"               validate:"required,min=3,max=255"`
	Description       *string   `json:"description"        validate:"omitempty,max=5000"`
	TargetAmount      float64   `json:"target_amount"      validate:"gt=0,dec2,lte=1000000000"`
	MinimumInvestment float64   `json:"minimum_investment" validate:"gt=0,dec2,ltefield=TargetAmount"`
	EndAt             time.Time `json:"end_at"             validate:"required,future"`
	Images            []string  `json:"images"             validate:"omitempty,max=10,dive,required,url"`
}

// images: omitted keeps the current set, [] removes every image.
type updateOfferReq struct {
	Name              string    `json:"name"               validate:"required,min=3,max=255"`
	Description       *string   `json:"description"        validate:"omitempty,max=5000"`
	TargetAmount      float64   `json:"target_amount"      validate:"gt=0,dec2,lte=1000000000"`
	MinimumInvestment float64   `json:"minimum_investment" validate:"gt=0,dec2,ltefield=TargetAmount"`
	EndAt             time.Time `json:"end_at"             validate:"required"`
	Images            *[]string `json:"images"             validate:"omitempty,max=10,dive,required,url"`
}

type offerStatusReq struct {
	Status string `json:"status" validate:"required,oneof=draft active closed"`
}

func (h *OfferHandler) Create(c echo.Context) error {
	var req createOfferReq
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	dto, err := h.uc.Create(c.Request().Context(), offerUC.CreateOfferInput(req))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return respond(c, http.StatusCreated, dto)
}

func (h *OfferHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return respond(c, http.StatusOK, dto)
}

func (h *OfferHandler) Update(c echo.Context) error {
	var req updateOfferReq
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	dto, err := h.uc.Update(c.Request().Context(), c.Param("id"), offerUC.UpdateOfferInput(req))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return respond(c, http.StatusOK, dto)
}

func (h *OfferHandler) UpdateStatus(c echo.Context) error {
	var req offerStatusReq
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	dto, err := h.uc.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return respond(c, http.StatusOK, dto)
}

// ListAvailable serves the public catalogue: active offers that have not ended.
func (h *OfferHandler) ListAvailable(c echo.Context) error {
	res, err := h.uc.ListAvailable(c.Request().Context(), offerQuery(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return respondPage(c, res.Items, res.Pagination)
}

func (h *OfferHandler) List(c echo.Context) error {
	res, err := h.uc.List(c.Request().Context(), offerQuery(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return respondPage(c, res.Items, res.Pagination)
}

func offerQuery(c echo.Context) offerUC.ListQuery {
	return offerUC.ListQuery{
		Page:   atoiOr(c.QueryParam("page"), 1),
		Limit:  atoiOr(c.QueryParam("limit"), 0),
		Sort:   c.QueryParam("sort"),
		Status: c.QueryParam("status"),
	}
}
