package player

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"video-poker-service/internal/model"
	"video-poker-service/internal/service/wallet"
	appErr "video-poker-service/pkg/errors"
	"video-poker-service/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultPageSize   = 20
	maxPageSize       = 100
	maxNicknameLength = 32
)

type Service struct {
	db      *gorm.DB
	wallets *wallet.Service
}

type Profile struct {
	Player model.Player `json:"player"`
	Wallet model.Wallet `json:"wallet"`
}

type ListFilter struct {
	Page    int
	Size    int
	Status  string
	Keyword string
}

type ListResult struct {
	Items []model.Player `json:"items"`
	Total int64          `json:"total"`
}

func NewService(db *gorm.DB, wallets *wallet.Service) *Service {
	return &Service{db: db, wallets: wallets}
}

func (f *ListFilter) sanitize() {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Size <= 0 {
		f.Size = defaultPageSize
	}
	if f.Size > maxPageSize {
		f.Size = maxPageSize
	}
	f.Status = strings.ToLower(strings.TrimSpace(f.Status))
	f.Keyword = strings.TrimSpace(f.Keyword)
}

func applyFilters(db *gorm.DB, filter ListFilter) *gorm.DB {
	if filter.Status != "" {
		db = db.Where("LOWER(status) = ?", filter.Status)
	}
	if filter.Keyword != "" {
		db = db.Where("nickname LIKE ?", "%"+filter.Keyword+"%")
	}
	return db
}

func (s *Service) get(ctx context.Context, playerID int64) (*model.Player, error) {
	var p model.Player
	if err := s.db.WithContext(ctx).First(&p, playerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %d", appErr.ErrPlayerNotFound, playerID)
		}
		return nil, err
	}
	return &p, nil
}

func (s *Service) GetProfile(ctx context.Context, playerID int64) (*Profile, error) {
	p, err := s.get(ctx, playerID)
	if err != nil {
		return nil, err
	}
	w, err := s.wallets.GetWallet(ctx, playerID)
	if err != nil {
		return nil, err
	}
	return &Profile{Player: *p, Wallet: *w}, nil
}

func (s *Service) UpdateNickname(ctx context.Context, playerID int64, nickname string) (*Profile, error) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" || utf8.RuneCountInString(nickname) > maxNicknameLength {
		return nil, fmt.Errorf("%w: %q", appErr.ErrInvalidNickname, nickname)
	}

	res := s.db.WithContext(ctx).Model(&model.Player{}).
		Where("id = ?", playerID).
		Updates(map[string]interface{}{
			"nickname":   nickname,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: %d", appErr.ErrPlayerNotFound, playerID)
	}
	return s.GetProfile(ctx, playerID)
}

func (s *Service) AdminListPlayers(ctx context.Context, filter ListFilter) (*ListResult, error) {
	filter.sanitize()

	var total int64
	if err := applyFilters(s.db.WithContext(ctx).Model(&model.Player{}), filter).
		Count(&total).Error; err != nil {
		return nil, err
	}

	result := &ListResult{Items: make([]model.Player, 0), Total: total}
	if total == 0 {
		return result, nil
	}

	if err := applyFilters(s.db.WithContext(ctx).Model(&model.Player{}), filter).
		Order("id DESC").
		Limit(filter.Size).
		Offset((filter.Page - 1) * filter.Size).
		Find(&result.Items).Error; err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) AdminUpdatePlayerStatus(ctx context.Context, playerID int64, status, reason string) (*model.Player, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if status != "active" && status != "banned" {
		return nil, fmt.Errorf("%w: %q", appErr.ErrInvalidPlayerStatus, status)
	}

	res := s.db.WithContext(ctx).Model(&model.Player{}).
		Where("id = ?", playerID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: %d", appErr.ErrPlayerNotFound, playerID)
	}

	logger.Log.Info("admin updated player status",
		zap.Int64("playerID", playerID),
		zap.String("status", status),
		zap.String("reason", strings.TrimSpace(reason)))

	return s.get(ctx, playerID)
}

func (s *Service) AdminGrantCredits(ctx context.Context, adminID, playerID, amount int64) (*model.Wallet, error) {
	w, err := s.wallets.Grant(ctx, playerID, amount)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("admin granted credits",
		zap.Int64("adminID", adminID),
		zap.Int64("playerID", playerID),
		zap.Int64("amount", amount),
		zap.Int64("balance", w.Balance))
	return w, nil
}
