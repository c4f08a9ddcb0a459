package bootstrap

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort      string `mapstructure:"SERVER_PORT"`
	RedisUrl        string `mapstructure:"REDIS_URL"`
	MongoUri        string `mapstructure:"MONGO_URI"`
	MongoDatabase   string `mapstructure:"MONGO_DATABASE"`
	IsLocalCors     bool   `mapstructure:"LOCAL_CORS"`
	CacheTTLSeconds int    `mapstructure:"CACHE_TTL_SECONDS"`
	ShareBaseUrl    string `mapstructure:"SHARE_BASE_URL"`
	LogDevelopment  bool   `mapstructure:"LOG_DEVELOPMENT"`
}

func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

func (c Config) Addr() string {
	return ":" + c.ServerPort
}

var defaults = map[string]any{
	"SERVER_PORT":       "8080",
	"REDIS_URL":         "",
	"MONGO_URI":         "",
	"MONGO_DATABASE":    "linebook",
	"LOCAL_CORS":        false,
	"CACHE_TTL_SECONDS": 3600,
	"SHARE_BASE_URL":    "",
	"LOG_DEVELOPMENT":   false,
}

// Setup reads cfgPath if it exists; environment variables override it.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		v.SetConfigType("env")
		err := v.ReadInConfig()
		var pathErr *fs.PathError
		if err != nil && !errors.As(err, &pathErr) {
			return nil, err
		}
	}

	var cfg Config

	err := v.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}
