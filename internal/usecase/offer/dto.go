package offer

import (
	"time"

	domain "offer-marketplace/internal/domain/offer"
	"offer-marketplace/pkg/money"
	"offer-marketplace/pkg/pagination"
)

// Amounts in inputs and DTOs are in major units (PLN).
type CreateOfferInput struct {
	Name              string
	Description       *string
	TargetAmount      float64
	MinimumInvestment float64
	EndAt             time.Time
	Images            []string
}

// UpdateOfferInput replaces every scalar field. A nil Images leaves the
// offer's images untouched; a non-nil (even empty) slice replaces them.
type UpdateOfferInput struct {
	Name              string
	Description       *string
	TargetAmount      float64
	MinimumInvestment float64
	EndAt             time.Time
	Images            *[]string
}

type ListQuery struct {
	Page   int
	Limit  int
	Sort   string
	Status string
}

type OfferDTO struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Description       *string   `json:"description"`
	TargetAmount      float64   `json:"target_amount"`
	MinimumInvestment float64   `json:"minimum_investment"`
	EndAt             time.Time `json:"end_at"`
	Status            string    `json:"status"`
	Images            []string  `json:"images"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type ListResult struct {
	Items      []OfferDTO
	Pagination pagination.Meta
}

func toDTO(o *domain.Offer, images []string) OfferDTO {
	if images == nil {
		images = []string{}
	}
	return OfferDTO{
		ID:                o.ID,
		Name:              o.Name,
		Description:       o.Description,
		TargetAmount:      money.ToMajorUnits(o.TargetAmount),
		MinimumInvestment: money.ToMajorUnits(o.MinimumInvestment),
		EndAt:             o.EndAt,
		Status:            string(o.Status),
		Images:            images,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}

func imageURLs(imgs []domain.Image) []string {
	out := make([]string, 0, len(imgs))
	for _, img := range imgs {
		out = append(out, img.URL)
	}
	return out
}
