package mysql

import (
	"context"

	offerDomain "offer-marketplace/internal/domain/offer"
	"offer-marketplace/pkg/pagination"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OfferRepository struct{ db *gorm.DB }

func NewOfferRepository(db *gorm.DB) *OfferRepository { return &OfferRepository{db: db} }

func (r *OfferRepository) Create(ctx context.Context, o *offerDomain.Offer) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *OfferRepository) Save(ctx context.Context, o *offerDomain.Offer) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *OfferRepository) GetByID(ctx context.Context, id string) (*offerDomain.Offer, error) {
	var out offerDomain.Offer
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns one page of offers ordered descending by the filter's sort
// column, plus the count of every row matching the filter.
func (r *OfferRepository) List(ctx context.Context, f offerDomain.ListFilter) ([]offerDomain.Offer, int64, error) {
	q := r.db.WithContext(ctx).Model(&offerDomain.Offer{})
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.EndsAfter != nil {
		q = q.Where("end_at > ?", *f.EndsAfter)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit := pagination.Normalize(f.Page, f.Limit)
	var out []offerDomain.Offer
	err := q.
		Order(clause.OrderByColumn{Column: clause.Column{Name: offerDomain.SortColumn(f.SortBy)}, Desc: true}).
		Order("id DESC").
		Limit(limit).
		Offset(pagination.Offset(page, limit)).
		Find(&out).Error
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *OfferRepository) CreateImages(ctx context.Context, offerID string, urls []string) error {
	if len(urls) == 0 {
		return nil
	}
	imgs := make([]offerDomain.Image, 0, len(urls))
	for i, u := range urls {
		imgs = append(imgs, offerDomain.Image{OfferID: offerID, URL: u, Position: i})
	}
	return r.db.WithContext(ctx).Create(&imgs).Error
}

// ReplaceImages deletes every image of the offer and inserts urls with fresh
// positions. Callers run it inside a transaction.
func (r *OfferRepository) ReplaceImages(ctx context.Context, offerID string, urls []string) error {
	if err := r.db.WithContext(ctx).Where("offer_id = ?", offerID).Delete(&offerDomain.Image{}).Error; err != nil {
		return err
	}
	return r.CreateImages(ctx, offerID, urls)
}

func (r *OfferRepository) ListImages(ctx context.Context, offerID string) ([]offerDomain.Image, error) {
	var out []offerDomain.Image
	err := r.db.WithContext(ctx).
		Where("offer_id = ?", offerID).
		Order("position ASC, id ASC").
		Find(&out).Error
	return out, err
}

// ListImagesByOfferIDs loads the images of many offers in one query, ordered
// by offer then position.
func (r *OfferRepository) ListImagesByOfferIDs(ctx context.Context, offerIDs []string) ([]offerDomain.Image, error) {
	if len(offerIDs) == 0 {
		return nil, nil
	}
	var out []offerDomain.Image
	err := r.db.WithContext(ctx).
		Where("offer_id IN ?", offerIDs).
		Order("offer_id ASC, position ASC, id ASC").
		Find(&out).Error
	return out, err
}
