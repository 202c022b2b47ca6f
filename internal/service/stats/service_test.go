package stats_test

import (
	"context"
	"testing"

	"video-poker-service/internal/model"
	"video-poker-service/internal/service/stats"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newService(t *testing.T) (*gorm.DB, *stats.Service) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.PlayRecord{}); err != nil {
		t.Fatalf("failed to migrate play records: %v", err)
	}
	return db, stats.NewService(db)
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	db, svc := newService(t)

	records := []model.PlayRecord{
		{RoundID: "r1", PlayerID: 1, VariantID: "jacks_or_better", Wager: 5, Category: "none", Payout: 0},
		{RoundID: "r2", PlayerID: 1, VariantID: "jacks_or_better", Wager: 5, Category: "jacks_or_better", Payout: 5},
		{RoundID: "r3", PlayerID: 1, VariantID: "deuces_wild", Wager: 1, Category: "none", Payout: 0},
		{RoundID: "r4", PlayerID: 1, VariantID: "deuces_wild", Wager: 1, Category: "four_of_a_kind", Payout: 5},
		{RoundID: "r5", PlayerID: 2, VariantID: "deuces_wild", Wager: 1, Category: "none", Payout: 0},
	}
	if err := db.Create(&records).Error; err != nil {
		t.Fatalf("seed records failed: %v", err)
	}

	sum, err := svc.Summary(ctx, 1)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if sum.Hands != 4 || sum.Wagered != 12 || sum.Paid != 10 {
		t.Fatalf("unexpected totals: %+v", sum)
	}
	if sum.Return != 10.0/12.0 {
		t.Fatalf("unexpected return %v", sum.Return)
	}

	if len(sum.Variants) != 2 || sum.Variants[0].VariantID != "deuces_wild" {
		t.Fatalf("unexpected variants: %+v", sum.Variants)
	}
	dw := sum.Variants[0]
	if dw.Hands != 2 || dw.Wagered != 2 || dw.Paid != 5 || dw.Return != 2.5 {
		t.Fatalf("unexpected deuces_wild summary: %+v", dw)
	}

	if len(sum.Categories) != 3 || sum.Categories[0].Category != "none" || sum.Categories[0].Hands != 2 {
		t.Fatalf("unexpected categories: %+v", sum.Categories)
	}
}

func TestSummaryEmpty(t *testing.T) {
	_, svc := newService(t)

	sum, err := svc.Summary(context.Background(), 7)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if sum.Hands != 0 || sum.Return != 0 || len(sum.Variants) != 0 {
		t.Fatalf("expected empty summary, got %+v", sum)
	}
}
