package uow

import (
	"context"

	"offer-marketplace/internal/domain/investment"
	"offer-marketplace/internal/domain/offer"
	"offer-marketplace/internal/domain/user"
)

type Repos struct {
	Offers      offer.Repository
	Investments investment.Repository
	Users       user.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the investment row first, then pass it in
	WithinInvestmentTx(ctx context.Context, investmentID string, fn func(r Repos, inv *investment.Investment) error) error
}
