package wallet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"video-poker-service/internal/model"
	appErr "video-poker-service/pkg/errors"

	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) GetWallet(ctx context.Context, playerID int64) (*model.Wallet, error) {
	return load(ctx, s.db, playerID)
}

func load(ctx context.Context, db *gorm.DB, playerID int64) (*model.Wallet, error) {
	var wallet model.Wallet
	err := db.WithContext(ctx).Where("player_id = ?", playerID).First(&wallet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %d", appErr.ErrPlayerNotFound, playerID)
		}
		return nil, err
	}
	return &wallet, nil
}

// Open creates the wallet of a new player inside tx.
func (s *Service) Open(ctx context.Context, tx *gorm.DB, playerID, credits int64) (*model.Wallet, error) {
	wallet := model.Wallet{PlayerID: playerID, Balance: credits, UpdatedAt: time.Now()}
	if err := tx.WithContext(ctx).Create(&wallet).Error; err != nil {
		return nil, err
	}
	return &wallet, nil
}

// Debit takes a wager inside tx. The balance check and the update are one
// statement so concurrent deals cannot overdraw.
func (s *Service) Debit(ctx context.Context, tx *gorm.DB, playerID, amount int64) error {
	res := tx.WithContext(ctx).Model(&model.Wallet{}).
		Where("player_id = ? AND balance >= ?", playerID, amount).
		Updates(map[string]interface{}{
			"balance":       gorm.Expr("balance - ?", amount),
			"total_wagered": gorm.Expr("total_wagered + ?", amount),
			"updated_at":    time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := load(ctx, tx, playerID); err != nil {
			return err
		}
		return fmt.Errorf("%w: need %d", appErr.ErrInsufficientCredits, amount)
	}
	return nil
}

// Credit pays winnings inside tx.
func (s *Service) Credit(ctx context.Context, tx *gorm.DB, playerID, amount int64) error {
	res := tx.WithContext(ctx).Model(&model.Wallet{}).
		Where("player_id = ?", playerID).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance + ?", amount),
			"total_won":  gorm.Expr("total_won + ?", amount),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %d", appErr.ErrPlayerNotFound, playerID)
	}
	return nil
}

// Grant adds operator credits outside of play. It does not count as winnings.
func (s *Service) Grant(ctx context.Context, playerID, amount int64) (*model.Wallet, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: %d", appErr.ErrInvalidAmount, amount)
	}
	res := s.db.WithContext(ctx).Model(&model.Wallet{}).
		Where("player_id = ?", playerID).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance + ?", amount),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: %d", appErr.ErrPlayerNotFound, playerID)
	}
	return load(ctx, s.db, playerID)
}
