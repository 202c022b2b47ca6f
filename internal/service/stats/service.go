package stats

import (
	"context"

	"video-poker-service/internal/model"

	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type CategoryCount struct {
	Category string `json:"category"`
	Hands    int64  `json:"hands"`
	Paid     int64  `json:"paid"`
}

type VariantSummary struct {
	VariantID string  `json:"variantId"`
	Hands     int64   `json:"hands"`
	Wagered   int64   `json:"wagered"`
	Paid      int64   `json:"paid"`
	Return    float64 `json:"return"`
}

type Summary struct {
	PlayerID   int64            `json:"playerId"`
	Hands      int64            `json:"hands"`
	Wagered    int64            `json:"wagered"`
	Paid       int64            `json:"paid"`
	Return     float64          `json:"return"`
	Categories []CategoryCount  `json:"categories"`
	Variants   []VariantSummary `json:"variants"`
}

// Summary aggregates the player's settled rounds. Return is paid over
// wagered, 0 before the first hand.
func (s *Service) Summary(ctx context.Context, playerID int64) (*Summary, error) {
	db := s.db.WithContext(ctx).Model(&model.PlayRecord{}).Where("player_id = ?", playerID)

	out := &Summary{PlayerID: playerID}
	var variants []VariantSummary
	err := db.Session(&gorm.Session{}).
		Select("variant_id, COUNT(*) AS hands, COALESCE(SUM(wager), 0) AS wagered, COALESCE(SUM(payout), 0) AS paid").
		Group("variant_id").
		Order("variant_id").
		Scan(&variants).Error
	if err != nil {
		return nil, err
	}
	for i := range variants {
		variants[i].Return = ratio(variants[i].Paid, variants[i].Wagered)
		out.Hands += variants[i].Hands
		out.Wagered += variants[i].Wagered
		out.Paid += variants[i].Paid
	}
	out.Variants = variants
	out.Return = ratio(out.Paid, out.Wagered)

	var categories []CategoryCount
	err = db.Session(&gorm.Session{}).
		Select("category, COUNT(*) AS hands, COALESCE(SUM(payout), 0) AS paid").
		Group("category").
		Order("hands DESC, category").
		Scan(&categories).Error
	if err != nil {
		return nil, err
	}
	out.Categories = categories
	return out, nil
}

func ratio(paid, wagered int64) float64 {
	if wagered == 0 {
		return 0
	}
	return float64(paid) / float64(wagered)
}
