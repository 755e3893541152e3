package offer

import (
	"time"
)

type Status string

const (
	StatusDraft  Status = "draft"
	StatusActive Status = "active"
	StatusClosed Status = "closed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusClosed:
		return true
	}
	return false
}

// Offer amounts are stored in minor units (grosze).
type Offer struct {
	ID                string    `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	Name              string    `gorm:"column:name;size:255;not null" json:"name"`
	Description       *string   `gorm:"column:description;type:text" json:"description"`
	TargetAmount      int64     `gorm:"column:target_amount;not null" json:"target_amount"`
	MinimumInvestment int64     `gorm:"column:minimum_investment;not null" json:"minimum_investment"`
	EndAt             time.Time `gorm:"column:end_at;not null;index:idx_offers_status_end_at,priority:2" json:"end_at"`
	Status            Status    `gorm:"column:status;type:enum('draft','active','closed');default:'draft';index:idx_offers_status_end_at,priority:1" json:"status"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Offer) TableName() string { return "offers" }

// Image is an offer picture URL; Position orders images within an offer.
type Image struct {
	ID        uint64    `gorm:"primaryKey;column:id" json:"-"`
	OfferID   string    `gorm:"column:offer_id;type:char(36);not null;index:idx_offer_images_offer_position,priority:1" json:"offer_id"`
	URL       string    `gorm:"column:url;type:text;not null" json:"url"`
	Position  int       `gorm:"column:position;not null;index:idx_offer_images_offer_position,priority:2" json:"position"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Image) TableName() string { return "offer_images" }

// sortColumns whitelists the columns available listings can be ordered by.
var sortColumns = map[string]string{
	"created_at":         "created_at",
	"end_at":             "end_at",
	"target_amount":      "target_amount",
	"minimum_investment": "minimum_investment",
	"name":               "name",
}

const DefaultSort = "created_at"

// SortColumn maps a requested sort key to a column, falling back to created_at.
func SortColumn(key string) string {
	if c, ok := sortColumns[key]; ok {
		return c
	}
	return sortColumns[DefaultSort]
}

func ValidSort(key string) bool {
	_, ok := sortColumns[key]
	return ok
}
