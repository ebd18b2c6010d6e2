package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort            string
	AppEnv             string
	DBDriver           string
	DBDSN              string
	JWTSecret          string
	CacheBackend       string
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	IndexCacheTTL      time.Duration
	CacheSweepInterval time.Duration
	PostsPerPage       int
	MediaRoot          string
	StaticRoot         string
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	// A missing .env is fine; system environment variables are used instead.
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		AppPort:       withDefault(getenv("APP_PORT"), "8000"),
		AppEnv:        withDefault(getenv("APP_ENV"), "development"),
		DBDriver:      withDefault(getenv("DB_DRIVER"), "sqlite"),
		DBDSN:         getenv("DB_DSN"),
		JWTSecret:     getenv("JWT_SECRET"),
		CacheBackend:  withDefault(getenv("CACHE_BACKEND"), "memory"),
		RedisAddr:     getenv("REDIS_ADDR"),
		RedisPassword: getenv("REDIS_PASSWORD"),
		MediaRoot:     withDefault(getenv("MEDIA_ROOT"), "./media"),
		StaticRoot:    withDefault(getenv("STATIC_ROOT"), "./static"),
	}

	var err error
	if cfg.RedisDB, err = intValue(getenv, "REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.PostsPerPage, err = intValue(getenv, "POSTS_PER_PAGE", 10); err != nil {
		return nil, err
	}
	ttl, err := intValue(getenv, "INDEX_CACHE_TTL", 20)
	if err != nil {
		return nil, err
	}
	cfg.IndexCacheTTL = time.Duration(ttl) * time.Second
	sweep, err := intValue(getenv, "CACHE_SWEEP_INTERVAL", 60)
	if err != nil {
		return nil, err
	}
	cfg.CacheSweepInterval = time.Duration(sweep) * time.Second

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.DBDSN == "" {
		errs = append(errs, errors.New("DB_DSN is not set"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is not set"))
	}
	switch c.DBDriver {
	case "mysql", "postgres", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver))
	}
	switch c.CacheBackend {
	case "memory":
	case "redis":
		if c.RedisAddr == "" {
			errs = append(errs, errors.New("REDIS_ADDR is not set"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported CACHE_BACKEND %q", c.CacheBackend))
	}
	if c.PostsPerPage < 1 {
		errs = append(errs, errors.New("POSTS_PER_PAGE must be positive"))
	}
	return errors.Join(errs...)
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func intValue(getenv func(string) string, key string, def int) (int, error) {
	raw := getenv(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
