package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env      string        `env:"APP_ENV" env-default:"dev"`
	HTTPAddr string        `env:"HTTP_ADDR" env-default:":8080"`
	MySQLDSN string        `env:"MYSQL_DSN" env-default:"root:root@tcp(localhost:3306)/grocery?parseTime=true"`
	Redis    RedisConfig   `env-prefix:"REDIS_"`
	JWT      JWTConfig     `env-prefix:"JWT_"`
	Shutdown time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"5s"`
}

type RedisConfig struct {
	Addr     string `env:"ADDR" env-default:"localhost:6379"`
	PoolSize int    `env:"POOL_SIZE" env-default:"100"`
}

type JWTConfig struct {
	Secret   string        `env:"SECRET" env-default:"dev-secret"`
	TokenTTL time.Duration `env:"TOKEN_TTL" env-default:"24h"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
