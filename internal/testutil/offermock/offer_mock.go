package offermock

import (
	"context"

	domain "offer-marketplace/internal/domain/offer"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Writes default to no-ops; reads default to context.Canceled.
type Repo struct {
	CreateFn               func(ctx context.Context, o *domain.Offer) error
	GetByIDFn              func(ctx context.Context, id string) (*domain.Offer, error)
	SaveFn                 func(ctx context.Context, o *domain.Offer) error
	ListFn                 func(ctx context.Context, f domain.ListFilter) ([]domain.Offer, int64, error)
	CreateImagesFn         func(ctx context.Context, offerID string, urls []string) error
	ReplaceImagesFn        func(ctx context.Context, offerID string, urls []string) error
	ListImagesFn           func(ctx context.Context, offerID string) ([]domain.Image, error)
	ListImagesByOfferIDsFn func(ctx context.Context, offerIDs []string) ([]domain.Image, error)
}

func (m *Repo) Create(ctx context.Context, o *domain.Offer) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, o)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.Offer, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, o *domain.Offer) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, o)
	}
	return nil
}

func (m *Repo) List(ctx context.Context, f domain.ListFilter) ([]domain.Offer, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, 0, context.Canceled
}

func (m *Repo) CreateImages(ctx context.Context, offerID string, urls []string) error {
	if m.CreateImagesFn != nil {
		return m.CreateImagesFn(ctx, offerID, urls)
	}
	return nil
}

func (m *Repo) ReplaceImages(ctx context.Context, offerID string, urls []string) error {
	if m.ReplaceImagesFn != nil {
		return m.ReplaceImagesFn(ctx, offerID, urls)
	}
	return nil
}

func (m *Repo) ListImages(ctx context.Context, offerID string) ([]domain.Image, error) {
	if m.ListImagesFn != nil {
		return m.ListImagesFn(ctx, offerID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListImagesByOfferIDs(ctx context.Context, offerIDs []string) ([]domain.Image, error) {
	if m.ListImagesByOfferIDsFn != nil {
		return m.ListImagesByOfferIDsFn(ctx, offerIDs)
	}
	return nil, context.Canceled
}
