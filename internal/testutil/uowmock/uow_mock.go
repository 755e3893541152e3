package uowmock

import (
	"context"
	"errors"

	"offer-marketplace/internal/domain/investment"
	"offer-marketplace/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn           func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinInvestmentTxFn func(ctx context.Context, investmentID string, fn func(r uow.Repos, inv *investment.Investment) error) error
}

// Passthrough returns a UoW that runs callbacks directly against repos.
// WithinInvestmentTx loads the row through repos.Investments.GetByIDForUpdate.
func Passthrough(repos uow.Repos) *UoW {
	return &UoW{
		WithinTxFn: func(_ context.Context, fn func(uow.Repos) error) error {
			return fn(repos)
		},
		WithinInvestmentTxFn: func(ctx context.Context, id string, fn func(uow.Repos, *investment.Investment) error) error {
			inv, err := repos.Investments.GetByIDForUpdate(ctx, id)
			if err != nil {
				return err
			}
			return fn(repos, inv)
		},
	}
}

// Convenience fluent setters
func New() *UoW { return &UoW{} }
func (m *UoW) WithWithinTx(fn func(context.Context, func(uow.Repos) error) error) *UoW {
	m.WithinTxFn = fn
	return m
}
func (m *UoW) WithWithinInvestmentTx(fn func(context.Context, string, func(uow.Repos, *investment.Investment) error) error) *UoW {
	m.WithinInvestmentTxFn = fn
	return m
}
func (m *UoW) Reset() { *m = UoW{} }

// Methods implementing UnitOfWork
func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}
func (m *UoW) WithinInvestmentTx(ctx context.Context, investmentID string, fn func(r uow.Repos, inv *investment.Investment) error) error {
	if m.WithinInvestmentTxFn != nil {
		return m.WithinInvestmentTxFn(ctx, investmentID, fn)
	}
	return errUnimplemented
}
