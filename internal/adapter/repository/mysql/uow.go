package mysql

import (
	"context"

	"offer-marketplace/internal/domain/investment"
	"offer-marketplace/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Offers:      &OfferRepository{db: tx},
		Investments: &InvestmentRepository{db: tx},
		Users:       &UserRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinInvestmentTx(ctx context.Context, investmentID string, fn func(r uow.Repos, inv *investment.Investment) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock the investment row up-front so concurrent transitions serialize
		inv, err := r.Investments.GetByIDForUpdate(ctx, investmentID)
		if err != nil {
			return err
		}
		return fn(r, inv)
	})
}
