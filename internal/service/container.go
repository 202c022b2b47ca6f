package service

import (
	"context"

	"video-poker-service/internal/config"
	"video-poker-service/internal/service/admin"
	"video-poker-service/internal/service/auth"
	"video-poker-service/internal/service/player"
	"video-poker-service/internal/service/showdown"
	"video-poker-service/internal/service/stats"
	"video-poker-service/internal/service/videopoker"
	"video-poker-service/internal/service/wallet"
	pkgAuth "video-poker-service/pkg/auth"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	Issuer     *pkgAuth.Issuer
	Auth       *auth.Service
	Wallet     *wallet.Service
	VideoPoker *videopoker.Service
	Showdown   *showdown.Service
	Stats      *stats.Service
	Player     *player.Service
	Admin      *admin.Service

	adminSeed config.AdminSeedConfig
}

// NewContainer builds every service. rdb may be nil, in which case strategy
// results are not cached.
func NewContainer(db *gorm.DB, rdb *redis.Client, conf *config.Config) *Container {
	issuer := pkgAuth.NewIssuer(conf.JWT.Secret, conf.JWT.TTL())
	wallets := wallet.NewService(db)

	var cache videopoker.StrategyCache
	if rdb != nil {
		cache = videopoker.NewRedisCache(rdb, conf.Game.CacheTTL())
	}

	videoPoker := videopoker.NewService(db, wallets, cache, videopoker.Options{
		ShufflePasses:  conf.Game.ShufflePasses,
		DefaultVariant: conf.Game.DefaultVariant,
	})

	return &Container{
		Issuer:     issuer,
		Auth:       auth.NewService(db, issuer, wallets, conf.Game.StartingCredits),
		Wallet:     wallets,
		VideoPoker: videoPoker,
		Showdown:   showdown.NewService(db, conf.Game.MaxPlayers),
		Stats:      stats.NewService(db),
		Player:     player.NewService(db, wallets),
		Admin:      admin.NewService(db, issuer),
		adminSeed:  conf.Admin,
	}
}

// Bootstrap seeds the configured operator account.
func (c *Container) Bootstrap(ctx context.Context) error {
	return c.Admin.EnsureDefaultAdmin(ctx, c.adminSeed)
}
