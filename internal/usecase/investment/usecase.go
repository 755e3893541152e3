package investment

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"offer-marketplace/internal/apperr"
	"offer-marketplace/internal/authz"
	domain "offer-marketplace/internal/domain/investment"
	"offer-marketplace/internal/domain/offer"
	"offer-marketplace/internal/domain/uow"
	"offer-marketplace/pkg/id"
	"offer-marketplace/pkg/money"
	"offer-marketplace/pkg/pagination"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	minCancelReason = 10
	maxCancelReason = 500
)

type Usecase struct {
	repo   domain.Repository
	offers offer.Repository
	uow    uow.UnitOfWork
	log    logrus.FieldLogger
	now    func() time.Time
}

func NewUsecase(r domain.Repository, offers offer.Repository, tx uow.UnitOfWork, log logrus.FieldLogger) *Usecase {
	return &Usecase{repo: r, offers: offers, uow: tx, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// Create declares a pending investment. Checks run in order and stop at the
// first failure: offer exists, amount ≥ minimum, offer active, offer not expired.
func (u *Usecase) Create(ctx context.Context, userID string, in CreateInvestmentInput) (*InvestmentDTO, error) {
	o, err := u.offers.GetByID(ctx, in.OfferID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, offer.ErrNotFound
	case err != nil:
		return nil, apperr.Internal("load offer", err)
	}

	if in.Amount < money.ToMajorUnits(o.MinimumInvestment) {
		return nil, domain.BelowMinimum(o.MinimumInvestment)
	}
	if o.Status != offer.StatusActive {
		return nil, domain.ErrOfferNotActive
	}
	if !o.EndAt.After(u.now()) {
		return nil, domain.ErrOfferExpired
	}

	amount, err := money.ToMinorUnits(in.Amount)
	if err != nil {
		return nil, domain.ErrAmountOutOfRange
	}

	inv := &domain.Investment{
		ID:      id.New(),
		UserID:  userID,
		OfferID: o.ID,
		Amount:  amount,
		Status:  domain.StatusPending,
	}
	if err := u.repo.Create(ctx, inv); err != nil {
		return nil, apperr.Internal("create investment", err)
	}

	u.log.WithFields(logrus.Fields{
		"investment_id": inv.ID,
		"offer_id":      o.ID,
		"user_id":       userID,
		"amount":        money.Format(inv.Amount),
	}).Info("investment created")
	dto := toDTO(inv)
	return &dto, nil
}

func (u *Usecase) Get(ctx context.Context, caller *authz.Principal, investmentID string) (*InvestmentDTO, error) {
	inv, err := u.repo.GetByID(ctx, investmentID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, domain.ErrNotFound
	case err != nil:
		return nil, apperr.Internal("load investment", err)
	}
	if !authz.CanViewInvestment(caller, inv.UserID) {
		return nil, domain.ErrForbidden
	}
	dto := toDTO(inv)
	return &dto, nil
}

func (u *Usecase) ListForUser(ctx context.Context, userID string, q ListQuery) (*ListResult, error) {
	f, err := filterFrom(q)
	if err != nil {
		return nil, err
	}
	f.UserID = userID
	return u.list(ctx, f)
}

func (u *Usecase) ListAll(ctx context.Context, q ListQuery) (*ListResult, error) {
	f, err := filterFrom(q)
	if err != nil {
		return nil, err
	}
	return u.list(ctx, f)
}

// ListAdmin joins investor and offer details; Filter matches email or offer name.
func (u *Usecase) ListAdmin(ctx context.Context, q ListQuery) (*AdminListResult, error) {
	f, err := filterFrom(q)
	if err != nil {
		return nil, err
	}
	f.OfferID = q.OfferID
	f.Search = strings.TrimSpace(q.Filter)

	rows, total, err := u.repo.ListWithRelations(ctx, f)
	if err != nil {
		return nil, apperr.Internal("list investments with relations", err)
	}
	items := make([]AdminInvestmentDTO, 0, len(rows))
	for i := range rows {
		items = append(items, toAdminDTO(&rows[i]))
	}
	return &AdminListResult{Items: items, Pagination: pagination.NewMeta(f.Page, f.Limit, total)}, nil
}

func (u *Usecase) list(ctx context.Context, f domain.ListFilter) (*ListResult, error) {
	rows, total, err := u.repo.List(ctx, f)
	if err != nil {
		return nil, apperr.Internal("list investments", err)
	}
	items := make([]InvestmentDTO, 0, len(rows))
	for i := range rows {
		items = append(items, toDTO(&rows[i]))
	}
	return &ListResult{Items: items, Pagination: pagination.NewMeta(f.Page, f.Limit, total)}, nil
}

func filterFrom(q ListQuery) (domain.ListFilter, error) {
	f := domain.ListFilter{}
	f.Page, f.Limit = pagination.Normalize(q.Page, q.Limit)
	if q.Status != "" {
		s := domain.Status(q.Status)
		if !s.Valid() {
			return f, domain.ErrInvalidStatus
		}
		f.Status = &s
	}
	return f, nil
}

// UpdateStatus moves an investment along the review graph. Admin only.
func (u *Usecase) UpdateStatus(ctx context.Context, caller *authz.Principal, investmentID string, in UpdateStatusInput) (*InvestmentDTO, error) {
	if !authz.CanManageInvestments(caller) {
		return nil, domain.ErrForbidden
	}
	next := domain.Status(in.Status)
	if !next.Valid() || next == domain.StatusPending {
		return nil, domain.ErrInvalidStatus
	}
	var reason *string
	if in.Reason != nil {
		if r := strings.TrimSpace(*in.Reason); r != "" {
			reason = &r
		}
	}
	if next == domain.StatusRejected && reason == nil {
		return nil, domain.ErrReasonRequired
	}

	var out *domain.Investment
	err := u.uow.WithinInvestmentTx(ctx, investmentID, func(r uow.Repos, inv *domain.Investment) error {
		if !inv.Status.CanTransitionTo(next) {
			return domain.ErrInvalidTransition
		}
		inv.Status = next
		if reason != nil {
			inv.Reason = reason
		}
		if next == domain.StatusCompleted {
			now := u.now()
			inv.CompletedAt = &now
		}
		out = inv
		return r.Investments.Save(ctx, inv)
	})
	if err != nil {
		return nil, txError(err)
	}

	u.log.WithFields(logrus.Fields{
		"investment_id": investmentID,
		"status":        next,
		"admin_id":      caller.ID,
	}).Info("investment status updated")
	dto := toDTO(out)
	return &dto, nil
}

// Cancel lets the owner withdraw a pending investment.
func (u *Usecase) Cancel(ctx context.Context, investmentID, userID string, in CancelInput) (*InvestmentDTO, error) {
	reason := strings.TrimSpace(in.Reason)
	if n := utf8.RuneCountInString(reason); n < minCancelReason || n > maxCancelReason {
		return nil, domain.ErrCancelReasonLength
	}

	var out *domain.Investment
	err := u.uow.WithinInvestmentTx(ctx, investmentID, func(r uow.Repos, inv *domain.Investment) error {
		if inv.UserID != userID {
			return domain.ErrForbidden
		}
		if !authz.CanCancelInvestment(&authz.Principal{ID: userID}, inv.UserID, inv.Status) {
			return domain.ErrNotPending
		}
		inv.Status = domain.StatusCancelled
		inv.Reason = &reason
		out = inv
		return r.Investments.Save(ctx, inv)
	})
	if err != nil {
		return nil, txError(err)
	}

	u.log.WithField("investment_id", investmentID).WithField("user_id", userID).Info("investment cancelled")
	dto := toDTO(out)
	return &dto, nil
}

func txError(err error) error {
	var ae *apperr.Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.As(err, &ae):
		return err
	default:
		return apperr.Internal("investment transaction", err)
	}
}
