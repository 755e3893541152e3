package investment

import (
	"time"

	domain "offer-marketplace/internal/domain/investment"
	"offer-marketplace/pkg/money"
	"offer-marketplace/pkg/pagination"
)

// Amounts in inputs and DTOs are in major units (PLN).
type CreateInvestmentInput struct {
	OfferID string
	Amount  float64
}

type UpdateStatusInput struct {
	Status string
	Reason *string
}

type CancelInput struct {
	Reason string
}

type ListQuery struct {
	Page    int
	Limit   int
	Status  string
	OfferID string
	// Filter is matched against investor email or offer name (admin listing only).
	Filter string
}

type InvestmentDTO struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	OfferID     string     `json:"offer_id"`
	Amount      float64    `json:"amount"`
	Status      string     `json:"status"`
	Reason      *string    `json:"reason"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type AdminInvestmentDTO struct {
	InvestmentDTO
	UserEmail     string `json:"user_email"`
	UserFirstName string `json:"user_first_name"`
	UserLastName  string `json:"user_last_name"`
	OfferName     string `json:"offer_name"`
}

type ListResult struct {
	Items      []InvestmentDTO
	Pagination pagination.Meta
}

type AdminListResult struct {
	Items      []AdminInvestmentDTO
	Pagination pagination.Meta
}

func toDTO(inv *domain.Investment) InvestmentDTO {
	return InvestmentDTO{
		ID:          inv.ID,
		UserID:      inv.UserID,
		OfferID:     inv.OfferID,
		Amount:      money.ToMajorUnits(inv.Amount),
		Status:      string(inv.Status),
		Reason:      inv.Reason,
		CompletedAt: inv.CompletedAt,
		CreatedAt:   inv.CreatedAt,
		UpdatedAt:   inv.UpdatedAt,
	}
}

func toAdminDTO(r *domain.WithRelations) AdminInvestmentDTO {
	return AdminInvestmentDTO{
		InvestmentDTO: toDTO(&r.Investment),
		UserEmail:     r.UserEmail,
		UserFirstName: r.UserFirstName,
		UserLastName:  r.UserLastName,
		OfferName:     r.OfferName,
	}
}
