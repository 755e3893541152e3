package offer

import (
	"context"
	"time"
)

type ListFilter struct {
	Status    *Status
	EndsAfter *time.Time
	SortBy    string
	Page      int
	Limit     int
}

type Repository interface {
	Create(ctx context.Context, o *Offer) error
	GetByID(ctx context.Context, id string) (*Offer, error)
	Save(ctx context.Context, o *Offer) error
	List(ctx context.Context, f ListFilter) ([]Offer, int64, error)

	// Images
	CreateImages(ctx context.Context, offerID string, urls []string) error
	ReplaceImages(ctx context.Context, offerID string, urls []string) error
	ListImages(ctx context.Context, offerID string) ([]Image, error)
	ListImagesByOfferIDs(ctx context.Context, offerIDs []string) ([]Image, error)
}
