package investmentmock

import (
	"context"

	domain "offer-marketplace/internal/domain/investment"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn            func(ctx context.Context, inv *domain.Investment) error
	GetByIDFn           func(ctx context.Context, id string) (*domain.Investment, error)
	GetByIDForUpdateFn  func(ctx context.Context, id string) (*domain.Investment, error)
	SaveFn              func(ctx context.Context, inv *domain.Investment) error
	ListFn              func(ctx context.Context, f domain.ListFilter) ([]domain.Investment, int64, error)
	ListWithRelationsFn func(ctx context.Context, f domain.ListFilter) ([]domain.WithRelations, int64, error)
}

func (m *Repo) Create(ctx context.Context, inv *domain.Investment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, inv)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.Investment, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id string) (*domain.Investment, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, inv *domain.Investment) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, inv)
	}
	return nil
}

func (m *Repo) List(ctx context.Context, f domain.ListFilter) ([]domain.Investment, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, 0, context.Canceled
}

func (m *Repo) ListWithRelations(ctx context.Context, f domain.ListFilter) ([]domain.WithRelations, int64, error) {
	if m.ListWithRelationsFn != nil {
		return m.ListWithRelationsFn(ctx, f)
	}
	return nil, 0, context.Canceled
}
