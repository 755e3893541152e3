package investment

import "context"

type ListFilter struct {
	UserID  string
	OfferID string
	Status  *Status
	// Search is a case-insensitive substring matched against investor email
	// or offer name. Only ListWithRelations honours it.
	Search string
	Page   int
	Limit  int
}

type Repository interface {
	Create(ctx context.Context, inv *Investment) error
	GetByID(ctx context.Context, id string) (*Investment, error)
	// locking read inside a tx
	GetByIDForUpdate(ctx context.Context, id string) (*Investment, error)
	Save(ctx context.Context, inv *Investment) error
	List(ctx context.Context, f ListFilter) ([]Investment, int64, error)
	ListWithRelations(ctx context.Context, f ListFilter) ([]WithRelations, int64, error)
}
