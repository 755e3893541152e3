package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	invDomain "offer-marketplace/internal/domain/investment"
	offerDomain "offer-marketplace/internal/domain/offer"
	"offer-marketplace/internal/domain/uow"

	"gorm.io/gorm"
)

// ----------------------------- Tests -----------------------------

func TestGormUoW_WithinTx_Commit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	offerRepo := NewOfferRepository(db)

	o := makeOffer("Commit", offerDomain.StatusDraft, time.Now().Add(time.Hour))
	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Offers.Create(ctx, o); err != nil {
			return err
		}
		return r.Offers.CreateImages(ctx, o.ID, []string{"https://x/1.jpg"})
	})
	if err != nil {
		t.Fatalf("WithinTx commit err: %v", err)
	}

	// Verify post-commit visibility
	if _, err := offerRepo.GetByID(ctx, o.ID); err != nil {
		t.Fatalf("offer not visible after commit: %v", err)
	}
	imgs, err := offerRepo.ListImages(ctx, o.ID)
	if err != nil || len(imgs) != 1 {
		t.Fatalf("images not visible after commit: %v %v", imgs, err)
	}
}

func TestGormUoW_WithinTx_Rollback(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	offerRepo := NewOfferRepository(db)
	sentinel := errors.New("image insert failed")

	o := makeOffer("Rollback", offerDomain.StatusDraft, time.Now().Add(time.Hour))
	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Offers.Create(ctx, o); err != nil {
			return err
		}
		return sentinel // force rollback
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("want sentinel, got %v", err)
	}

	// offer row must not survive a failed image write
	if _, err := offerRepo.GetByID(ctx, o.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected offer not found after rollback, got %v", err)
	}
}

func TestGormUoW_WithinInvestmentTx_Commit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	invRepo := NewInvestmentRepository(db)

	seed := mustCreateInvestment(t, db, makeInvestment("u-1", "o-1", 100_000, invDomain.StatusPending))

	err := guow.WithinInvestmentTx(ctx, seed.ID, func(r uow.Repos, inv *invDomain.Investment) error {
		if inv == nil || inv.ID != seed.ID || inv.Status != invDomain.StatusPending {
			t.Fatalf("unexpected investment passed to fn: %+v", inv)
		}
		inv.Status = invDomain.StatusAccepted
		return r.Investments.Save(ctx, inv)
	})
	if err != nil {
		t.Fatalf("WithinInvestmentTx commit err: %v", err)
	}

	got, err := invRepo.GetByID(ctx, seed.ID)
	if err != nil {
		t.Fatalf("GetByID post-commit: %v", err)
	}
	if got.Status != invDomain.StatusAccepted {
		t.Fatalf("status not updated, got=%s", got.Status)
	}
}

func TestGormUoW_WithinInvestmentTx_Rollback(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	invRepo := NewInvestmentRepository(db)
	seed := mustCreateInvestment(t, db, makeInvestment("u-1", "o-1", 100_000, invDomain.StatusPending))
	sentinel := errors.New("stop")

	_ = guow.WithinInvestmentTx(ctx, seed.ID, func(r uow.Repos, inv *invDomain.Investment) error {
		inv.Status = invDomain.StatusRejected
		if err := r.Investments.Save(ctx, inv); err != nil {
			return err
		}
		return sentinel // force rollback
	})

	got, err := invRepo.GetByID(ctx, seed.ID)
	if err != nil {
		t.Fatalf("post-rollback GetByID: %v", err)
	}
	if got.Status != invDomain.StatusPending {
		t.Fatalf("expected pending after rollback, got %s", got.Status)
	}
}

func TestGormUoW_WithinInvestmentTx_NotFound(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	err := guow.WithinInvestmentTx(ctx, "missing", func(uow.Repos, *invDomain.Investment) error {
		t.Fatalf("callback should not be called when investment missing")
		return nil
	})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("want ErrRecordNotFound, got %v", err)
	}
}
