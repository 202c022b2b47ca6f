package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"video-poker-service/internal/config"
	"video-poker-service/internal/model"
	pkgAuth "video-poker-service/pkg/auth"
	appErr "video-poker-service/pkg/errors"
	"video-poker-service/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct {
	db     *gorm.DB
	issuer *pkgAuth.Issuer
}

type LoginResult struct {
	Token    string    `json:"token"`
	ExpireAt time.Time `json:"expireAt"`
	Admin    AdminInfo `json:"admin"`
}

type AdminInfo struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	DisplayName string     `json:"displayName"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func NewService(db *gorm.DB, issuer *pkgAuth.Issuer) *Service {
	return &Service{db: db, issuer: issuer}
}

func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return nil, appErr.ErrInvalidAdminPassword
	}

	var admin model.Admin
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErr.ErrAdminNotFound
		}
		return nil, err
	}
	if !strings.EqualFold(admin.Status, "active") {
		return nil, appErr.ErrAdminDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, appErr.ErrInvalidAdminPassword
	}

	token, expireAt, err := s.issuer.GenerateAdminToken(admin.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.db.WithContext(ctx).
		Model(&admin).
		Updates(map[string]interface{}{
			"last_login_at": now,
			"updated_at":    now,
		}).Error; err != nil {
		return nil, err
	}
	admin.LastLoginAt = &now

	logger.Log.Info("admin logged in", zap.Int64("adminID", admin.ID))
	return &LoginResult{
		Token:    token,
		ExpireAt: expireAt,
		Admin:    sanitizeAdmin(admin),
	}, nil
}

// Authenticate resolves an admin token to an active admin id.
func (s *Service) Authenticate(ctx context.Context, token string) (int64, error) {
	claims, err := s.issuer.ParseAdminToken(token)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", appErr.ErrUnauthorized, err)
	}
	var admin model.Admin
	if err := s.db.WithContext(ctx).First(&admin, claims.SubjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("%w: unknown admin", appErr.ErrUnauthorized)
		}
		return 0, err
	}
	if !strings.EqualFold(admin.Status, "active") {
		return 0, appErr.ErrAdminDisabled
	}
	return admin.ID, nil
}

// EnsureDefaultAdmin creates the seed account once. It is a no-op when the
// seed is not configured.
func (s *Service) EnsureDefaultAdmin(ctx context.Context, seed config.AdminSeedConfig) error {
	if seed.DefaultUsername == "" || seed.DefaultPassword == "" {
		logger.Log.Warn("default admin credentials not configured; skipping bootstrap")
		return nil
	}

	var exists int64
	if err := s.db.WithContext(ctx).
		Model(&model.Admin{}).
		Where("username = ?", seed.DefaultUsername).
		Count(&exists).Error; err != nil {
		return err
	}
	if exists > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seed.DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := model.Admin{
		Username:     seed.DefaultUsername,
		PasswordHash: string(hash),
		DisplayName:  seed.DefaultUsername,
		Status:       "active",
	}
	if err := s.db.WithContext(ctx).Create(&admin).Error; err != nil {
		return err
	}
	logger.Log.Info("default admin account created",
		zap.String("username", seed.DefaultUsername))
	return nil
}

func sanitizeAdmin(admin model.Admin) AdminInfo {
	return AdminInfo{
		ID:          admin.ID,
		Username:    admin.Username,
		DisplayName: admin.DisplayName,
		Status:      admin.Status,
		LastLoginAt: admin.LastLoginAt,
		CreatedAt:   admin.CreatedAt,
	}
}
