package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"video-poker-service/internal/model"
	"video-poker-service/internal/service/wallet"
	pkgAuth "video-poker-service/pkg/auth"
	appErr "video-poker-service/pkg/errors"
	"video-poker-service/pkg/logger"
	"video-poker-service/pkg/utils/random"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxNicknameLen = 32

type Service struct {
	db              *gorm.DB
	issuer          *pkgAuth.Issuer
	wallets         *wallet.Service
	startingCredits int64
}

type LoginResult struct {
	Token    string       `json:"token"`
	ExpireAt time.Time    `json:"expireAt"`
	Player   model.Player `json:"player"`
	Wallet   model.Wallet `json:"wallet"`
}

func NewService(db *gorm.DB, issuer *pkgAuth.Issuer, wallets *wallet.Service, startingCredits int64) *Service {
	return &Service{
		db:              db,
		issuer:          issuer,
		wallets:         wallets,
		startingCredits: startingCredits,
	}
}

// Guest creates a player with a fresh wallet and signs a token for it. An
// empty nickname gets a generated one.
func (s *Service) Guest(ctx context.Context, nickname string) (*LoginResult, error) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		nickname = "Guest-" + random.Code(5)
	}
	if utf8.RuneCountInString(nickname) > maxNicknameLen {
		return nil, fmt.Errorf("nickname longer than %d characters", maxNicknameLen)
	}

	var (
		player model.Player
		purse  *model.Wallet
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		player = model.Player{Nickname: nickname, Status: "active"}
		if err := tx.Create(&player).Error; err != nil {
			return err
		}
		var err error
		purse, err = s.wallets.Open(ctx, tx, player.ID, s.startingCredits)
		return err
	})
	if err != nil {
		return nil, err
	}

	token, expireAt, err := s.issuer.GenerateToken(player.ID)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("guest created",
		zap.Int64("playerID", player.ID),
		zap.String("nickname", nickname),
		zap.Int64("credits", purse.Balance),
	)
	return &LoginResult{
		Token:    token,
		ExpireAt: expireAt,
		Player:   player,
		Wallet:   *purse,
	}, nil
}

// Authenticate resolves a bearer token to an active player id.
func (s *Service) Authenticate(ctx context.Context, token string) (int64, error) {
	claims, err := s.issuer.ParseToken(token)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", appErr.ErrUnauthorized, err)
	}
	var player model.Player
	err = s.db.WithContext(ctx).Where("id = ?", claims.SubjectID).First(&player).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("%w: unknown player", appErr.ErrUnauthorized)
		}
		return 0, err
	}
	if strings.EqualFold(player.Status, "banned") {
		return 0, fmt.Errorf("%w: player banned", appErr.ErrUnauthorized)
	}
	return player.ID, nil
}
