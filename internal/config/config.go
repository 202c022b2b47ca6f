package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig    `mapstructure:"server"`
	Database DatabaseConfig  `mapstructure:"database"`
	Redis    RedisConfig     `mapstructure:"redis"`
	JWT      JWTConfig       `mapstructure:"jwt"`
	Game     GameConfig      `mapstructure:"game"`
	Admin    AdminSeedConfig `mapstructure:"admin"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // postgres, mysql, sqlite
	DSN    string `mapstructure:"dsn"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Expire int    `mapstructure:"expire"` // hours
}

type GameConfig struct {
	DefaultVariant   string `mapstructure:"defaultVariant"`
	ShufflePasses    int    `mapstructure:"shufflePasses"`
	StrategyCacheTTL int    `mapstructure:"strategyCacheTTL"` // seconds
	MaxPlayers       int    `mapstructure:"maxPlayers"`
	StartingCredits  int64  `mapstructure:"startingCredits"`
}

// AdminSeedConfig creates the first operator account on startup when both
// fields are set.
type AdminSeedConfig struct {
	DefaultUsername string `mapstructure:"defaultUsername"`
	DefaultPassword string `mapstructure:"defaultPassword"`
}

func (g GameConfig) CacheTTL() time.Duration {
	return time.Duration(g.StrategyCacheTTL) * time.Second
}

func (j JWTConfig) TTL() time.Duration {
	return time.Duration(j.Expire) * time.Hour
}

var GlobalConfig *Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "video_poker.db")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expire", 72)
	v.SetDefault("game.defaultVariant", "jacks_or_better")
	v.SetDefault("game.shufflePasses", 1)
	v.SetDefault("game.strategyCacheTTL", 600)
	v.SetDefault("game.maxPlayers", 8)
	v.SetDefault("game.startingCredits", 1000)
	v.SetDefault("admin.defaultUsername", "")
	v.SetDefault("admin.defaultPassword", "")
}

// Load reads the YAML file at path on top of the defaults. Environment
// variables such as VP_JWT_SECRET override file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("VP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret is required")
	}
	if c.Game.ShufflePasses < 1 {
		return fmt.Errorf("game.shufflePasses must be >= 1, got %d", c.Game.ShufflePasses)
	}
	if c.Game.MaxPlayers < 2 {
		return fmt.Errorf("game.maxPlayers must be >= 2, got %d", c.Game.MaxPlayers)
	}
	return nil
}

func LoadConfig(path string) {
	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	GlobalConfig = cfg
}
