package user

import "context"

type ListFilter struct {
	Role  *Role
	Page  int
	Limit int
}

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdatePassword(ctx context.Context, id, hash string) error
	List(ctx context.Context, f ListFilter) ([]User, int64, error)
}
