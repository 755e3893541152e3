package mysql

import (
	"context"
	"strings"

	invDomain "offer-marketplace/internal/domain/investment"
	"offer-marketplace/pkg/pagination"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// likeEscaper quotes LIKE wildcards so search input matches literally.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

type InvestmentRepository struct{ db *gorm.DB }

func NewInvestmentRepository(db *gorm.DB) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

func (r *InvestmentRepository) Create(ctx context.Context, inv *invDomain.Investment) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *InvestmentRepository) Save(ctx context.Context, inv *invDomain.Investment) error {
	return r.db.WithContext(ctx).Save(inv).Error
}

func (r *InvestmentRepository) GetByID(ctx context.Context, id string) (*invDomain.Investment, error) {
	var out invDomain.Investment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *InvestmentRepository) GetByIDForUpdate(ctx context.Context, id string) (*invDomain.Investment, error) {
	var out invDomain.Investment
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&out).Error
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *InvestmentRepository) List(ctx context.Context, f invDomain.ListFilter) ([]invDomain.Investment, int64, error) {
	q := r.db.WithContext(ctx).Model(&invDomain.Investment{})
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.OfferID != "" {
		q = q.Where("offer_id = ?", f.OfferID)
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit := pagination.Normalize(f.Page, f.Limit)
	var out []invDomain.Investment
	err := q.Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(pagination.Offset(page, limit)).
		Find(&out).Error
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

const relationColumns = "investments.*, " +
	"users.email AS user_email, users.first_name AS user_first_name, users.last_name AS user_last_name, " +
	"offers.name AS offer_name"

// ListWithRelations joins investor and offer columns for the admin view.
// Search matches email or offer name, case-insensitively.
func (r *InvestmentRepository) ListWithRelations(ctx context.Context, f invDomain.ListFilter) ([]invDomain.WithRelations, int64, error) {
	q := r.db.WithContext(ctx).Model(&invDomain.Investment{}).
		Joins("JOIN users ON users.id = investments.user_id").
		Joins("JOIN offers ON offers.id = investments.offer_id")
	if f.UserID != "" {
		q = q.Where("investments.user_id = ?", f.UserID)
	}
	if f.OfferID != "" {
		q = q.Where("investments.offer_id = ?", f.OfferID)
	}
	if f.Status != nil {
		q = q.Where("investments.status = ?", *f.Status)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
		q = q.Where("LOWER(users.email) LIKE ? ESCAPE '!' OR LOWER(offers.name) LIKE ? ESCAPE '!'", like, like)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit := pagination.Normalize(f.Page, f.Limit)
	var out []invDomain.WithRelations
	err := q.Select(relationColumns).
		Order("investments.created_at DESC, investments.id DESC").
		Limit(limit).
		Offset(pagination.Offset(page, limit)).
		Scan(&out).Error
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
