package mysql

import (
	"context"

	userDomain "offer-marketplace/internal/domain/user"
	"offer-marketplace/pkg/pagination"

	"gorm.io/gorm"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) Create(ctx context.Context, u *userDomain.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*userDomain.User, error) {
	var out userDomain.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	var out userDomain.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, hash string) error {
	res := r.db.WithContext(ctx).Model(&userDomain.User{}).
		Where("id = ?", id).
		Update("password_hash", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context, f userDomain.ListFilter) ([]userDomain.User, int64, error) {
	q := r.db.WithContext(ctx).Model(&userDomain.User{})
	if f.Role != nil {
		q = q.Where("role = ?", *f.Role)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit := pagination.Normalize(f.Page, f.Limit)
	var out []userDomain.User
	err := q.Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(pagination.Offset(page, limit)).
		Find(&out).Error
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
