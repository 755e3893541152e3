package user

import (
	"context"
	"errors"
	"time"

	"offer-marketplace/internal/apperr"
	domain "offer-marketplace/internal/domain/user"
	"offer-marketplace/pkg/pagination"

	"gorm.io/gorm"
)

type Usecase struct{ repo domain.Repository }

func NewUsecase(r domain.Repository) *Usecase { return &Usecase{repo: r} }

type UserDTO struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func ToDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

type ListQuery struct {
	Page  int
	Limit int
	Role  string
}

type ListResult struct {
	Items      []UserDTO
	Pagination pagination.Meta
}

func (u *Usecase) Get(ctx context.Context, userID string) (*UserDTO, error) {
	usr, err := u.repo.GetByID(ctx, userID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, domain.ErrNotFound
	case err != nil:
		return nil, apperr.Internal("load user", err)
	}
	dto := ToDTO(usr)
	return &dto, nil
}

func (u *Usecase) List(ctx context.Context, q ListQuery) (*ListResult, error) {
	f := domain.ListFilter{}
	f.Page, f.Limit = pagination.Normalize(q.Page, q.Limit)
	if q.Role != "" {
		r := domain.Role(q.Role)
		if !r.Valid() {
			return nil, apperr.Validation("Nieprawidłowe dane", apperr.FieldError{Field: "role", Message: "Nieprawidłowa rola"})
		}
		f.Role = &r
	}
	rows, total, err := u.repo.List(ctx, f)
	if err != nil {
		return nil, apperr.Internal("list users", err)
	}
	items := make([]UserDTO, 0, len(rows))
	for i := range rows {
		items = append(items, ToDTO(&rows[i]))
	}
	return &ListResult{Items: items, Pagination: pagination.NewMeta(f.Page, f.Limit, total)}, nil
}
