package wallet_test

import (
	"context"
	"errors"
	"testing"

	"video-poker-service/internal/model"
	"video-poker-service/internal/service/wallet"
	appErr "video-poker-service/pkg/errors"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newService(t *testing.T) (*gorm.DB, *wallet.Service) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.Wallet{}); err != nil {
		t.Fatalf("failed to migrate wallets: %v", err)
	}
	return db, wallet.NewService(db)
}

func TestDebitAndCredit(t *testing.T) {
	ctx := context.Background()
	db, svc := newService(t)

	if _, err := svc.Open(ctx, db, 1, 10); err != nil {
		t.Fatalf("open wallet failed: %v", err)
	}
	if err := svc.Debit(ctx, db, 1, 4); err != nil {
		t.Fatalf("debit failed: %v", err)
	}
	if err := svc.Credit(ctx, db, 1, 9); err != nil {
		t.Fatalf("credit failed: %v", err)
	}

	w, err := svc.GetWallet(ctx, 1)
	if err != nil {
		t.Fatalf("get wallet failed: %v", err)
	}
	if w.Balance != 15 || w.TotalWagered != 4 || w.TotalWon != 9 {
		t.Fatalf("unexpected wallet: %+v", w)
	}
}

func TestDebitInsufficientCredits(t *testing.T) {
	ctx := context.Background()
	db, svc := newService(t)

	if _, err := svc.Open(ctx, db, 1, 3); err != nil {
		t.Fatalf("open wallet failed: %v", err)
	}
	err := svc.Debit(ctx, db, 1, 5)
	if !errors.Is(err, appErr.ErrInsufficientCredits) {
		t.Fatalf("expected ErrInsufficientCredits, got %v", err)
	}
	w, _ := svc.GetWallet(ctx, 1)
	if w.Balance != 3 || w.TotalWagered != 0 {
		t.Fatalf("failed debit changed the wallet: %+v", w)
	}
}

func TestMissingWallet(t *testing.T) {
	ctx := context.Background()
	db, svc := newService(t)

	if _, err := svc.GetWallet(ctx, 42); !errors.Is(err, appErr.ErrPlayerNotFound) {
		t.Fatalf("expected ErrPlayerNotFound, got %v", err)
	}
	if err := svc.Debit(ctx, db, 42, 1); !errors.Is(err, appErr.ErrPlayerNotFound) {
		t.Fatalf("expected ErrPlayerNotFound on debit, got %v", err)
	}
	if err := svc.Credit(ctx, db, 42, 1); !errors.Is(err, appErr.ErrPlayerNotFound) {
		t.Fatalf("expected ErrPlayerNotFound on credit, got %v", err)
	}
}

func TestGrant(t *testing.T) {
	ctx := context.Background()
	db, svc := newService(t)

	if _, err := svc.Open(ctx, db, 1, 10); err != nil {
		t.Fatalf("open wallet failed: %v", err)
	}
	w, err := svc.Grant(ctx, 1, 250)
	if err != nil {
		t.Fatalf("grant failed: %v", err)
	}
	if w.Balance != 260 || w.TotalWon != 0 {
		t.Fatalf("unexpected wallet after grant: %+v", w)
	}

	if _, err := svc.Grant(ctx, 1, 0); !errors.Is(err, appErr.ErrInvalidAmount) {
		t.Fatalf("expected invalid amount, got %v", err)
	}
	if _, err := svc.Grant(ctx, 2, 10); !errors.Is(err, appErr.ErrPlayerNotFound) {
		t.Fatalf("expected player not found, got %v", err)
	}
}
