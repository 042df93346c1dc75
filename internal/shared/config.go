package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// Config is the explicit storage/runtime configuration handed to the
// managers at construction. DataDir holds the three collection files
// (hotels.json, customers.json, reservations.json).
type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	DataDir     string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	CacheTTL    time.Duration
	RateRPS     int
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ""),
		DataDir:     env("DATA_DIR", "data"),
		RedisAddr:   env("REDIS_ADDR", ""),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,
		RateRPS:     atoi("RATE_LIMIT_RPS", 50),
	}
	if c.DataDir == "" {
		log.Warn().Msg("DATA_DIR is empty, collections land in the working directory")
		c.DataDir = "."
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
