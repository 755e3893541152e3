package offer

import (
	"context"
	"errors"
	"time"

	"offer-marketplace/internal/apperr"
	domain "offer-marketplace/internal/domain/offer"
	"offer-marketplace/internal/domain/uow"
	"offer-marketplace/pkg/id"
	"offer-marketplace/pkg/money"
	"offer-marketplace/pkg/pagination"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Usecase struct {
	repo domain.Repository
	uow  uow.UnitOfWork
	log  logrus.FieldLogger
	now  func() time.Time
}

func NewUsecase(r domain.Repository, tx uow.UnitOfWork, log logrus.FieldLogger) *Usecase {
	return &Usecase{repo: r, uow: tx, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// minorAmounts converts target and minimum to minor units and checks minimum <= target.
func minorAmounts(targetMajor, minimumMajor float64) (int64, int64, error) {
	target, err := money.ToMinorUnits(targetMajor)
	if err != nil {
		return 0, 0, domain.AmountOutOfRange("target_amount")
	}
	minimum, err := money.ToMinorUnits(minimumMajor)
	if err != nil {
		return 0, 0, domain.AmountOutOfRange("minimum_investment")
	}
	if minimum > target {
		return 0, 0, domain.ErrMinimumAboveTarget
	}
	return target, minimum, nil
}

// Create stores a draft offer and its images in one transaction.
func (u *Usecase) Create(ctx context.Context, in CreateOfferInput) (*OfferDTO, error) {
	target, minimum, err := minorAmounts(in.TargetAmount, in.MinimumInvestment)
	if err != nil {
		return nil, err
	}

	o := &domain.Offer{
		ID:                id.New(),
		Name:              in.Name,
		Description:       in.Description,
		TargetAmount:      target,
		MinimumInvestment: minimum,
		EndAt:             in.EndAt.UTC(),
		Status:            domain.StatusDraft,
	}
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Offers.Create(ctx, o); err != nil {
			return err
		}
		return r.Offers.CreateImages(ctx, o.ID, in.Images)
	})
	if err != nil {
		return nil, apperr.Internal("create offer", err)
	}

	u.log.WithField("offer_id", o.ID).WithField("images", len(in.Images)).Info("offer created")
	dto := toDTO(o, append([]string(nil), in.Images...))
	return &dto, nil
}

func (u *Usecase) Get(ctx context.Context, offerID string) (*OfferDTO, error) {
	o, err := u.load(ctx, u.repo, offerID)
	if err != nil {
		return nil, err
	}
	dto := toDTO(o, u.images(ctx, offerID))
	return &dto, nil
}

func (u *Usecase) Update(ctx context.Context, offerID string, in UpdateOfferInput) (*OfferDTO, error) {
	target, minimum, err := minorAmounts(in.TargetAmount, in.MinimumInvestment)
	if err != nil {
		return nil, err
	}

	var o *domain.Offer
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		if o, err = u.load(ctx, r.Offers, offerID); err != nil {
			return err
		}
		o.Name = in.Name
		o.Description = in.Description
		o.TargetAmount = target
		o.MinimumInvestment = minimum
		o.EndAt = in.EndAt.UTC()
		if err := r.Offers.Save(ctx, o); err != nil {
			return apperr.Internal("save offer", err)
		}
		if in.Images == nil {
			return nil
		}
		if err := r.Offers.ReplaceImages(ctx, offerID, *in.Images); err != nil {
			return apperr.Internal("replace offer images", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var images []string
	if in.Images != nil {
		images = append([]string{}, *in.Images...)
	} else {
		images = u.images(ctx, offerID)
	}
	u.log.WithField("offer_id", offerID).WithField("images_replaced", in.Images != nil).Info("offer updated")
	dto := toDTO(o, images)
	return &dto, nil
}

// UpdateStatus overwrites the status unconditionally.
func (u *Usecase) UpdateStatus(ctx context.Context, offerID string, status string) (*OfferDTO, error) {
	next := domain.Status(status)
	if !next.Valid() {
		return nil, apperr.Validation("Nieprawidłowe dane", apperr.FieldError{Field: "status", Message: "Nieprawidłowy status oferty"})
	}

	var o *domain.Offer
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		if o, err = u.load(ctx, r.Offers, offerID); err != nil {
			return err
		}
		o.Status = next
		if err := r.Offers.Save(ctx, o); err != nil {
			return apperr.Internal("save offer status", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.WithField("offer_id", offerID).WithField("status", next).Info("offer status updated")
	dto := toDTO(o, u.images(ctx, offerID))
	return &dto, nil
}

// ListAvailable pages through active offers whose end date is in the future.
func (u *Usecase) ListAvailable(ctx context.Context, q ListQuery) (*ListResult, error) {
	now := u.now()
	active := domain.StatusActive
	return u.list(ctx, domain.ListFilter{Status: &active, EndsAfter: &now, SortBy: q.Sort, Page: q.Page, Limit: q.Limit})
}

// List pages through every offer, optionally filtered by status.
func (u *Usecase) List(ctx context.Context, q ListQuery) (*ListResult, error) {
	f := domain.ListFilter{SortBy: q.Sort, Page: q.Page, Limit: q.Limit}
	if q.Status != "" {
		s := domain.Status(q.Status)
		if !s.Valid() {
			return nil, apperr.Validation("Nieprawidłowe dane", apperr.FieldError{Field: "status", Message: "Nieprawidłowy status oferty"})
		}
		f.Status = &s
	}
	return u.list(ctx, f)
}

func (u *Usecase) list(ctx context.Context, f domain.ListFilter) (*ListResult, error) {
	f.Page, f.Limit = pagination.Normalize(f.Page, f.Limit)
	rows, total, err := u.repo.List(ctx, f)
	if err != nil {
		return nil, apperr.Internal("list offers", err)
	}

	ids := make([]string, 0, len(rows))
	for _, o := range rows {
		ids = append(ids, o.ID)
	}
	byOffer := map[string][]string{}
	if len(ids) > 0 {
		imgs, err := u.repo.ListImagesByOfferIDs(ctx, ids)
		if err != nil {
			u.log.WithError(err).WithField("offers", len(ids)).Warn("load offer images failed")
		}
		for _, img := range imgs {
			byOffer[img.OfferID] = append(byOffer[img.OfferID], img.URL)
		}
	}

	items := make([]OfferDTO, 0, len(rows))
	for i := range rows {
		items = append(items, toDTO(&rows[i], byOffer[rows[i].ID]))
	}
	return &ListResult{Items: items, Pagination: pagination.NewMeta(f.Page, f.Limit, total)}, nil
}

func (u *Usecase) load(ctx context.Context, r domain.Repository, offerID string) (*domain.Offer, error) {
	o, err := r.GetByID(ctx, offerID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, domain.ErrNotFound
	case err != nil:
		return nil, apperr.Internal("load offer", err)
	}
	return o, nil
}

// images never fails: a read error is logged and yields no images.
func (u *Usecase) images(ctx context.Context, offerID string) []string {
	imgs, err := u.repo.ListImages(ctx, offerID)
	if err != nil {
		u.log.WithError(err).WithField("offer_id", offerID).Warn("load offer images failed")
		return []string{}
	}
	return imageURLs(imgs)
}
