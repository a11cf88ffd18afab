package config

import (
	"os"
	"strconv"
	"time"
)

type HTTPConfig struct {
	Addr         string
	BasePath     string
	MaxBodyBytes int64
}

type StorageConfig struct {
	Type        string
	PostgresURL string
	SQLitePath  string
}

type Config struct {
	HTTP          HTTPConfig
	Storage       StorageConfig
	EventCacheTTL time.Duration
	LogLevel      string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func Load() (*Config, error) {
	maxBody := func() int64 {
		v := getenv("HTTP_MAX_BODY_BYTES", "65536")
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 64 << 10
		}
		return n
	}()

	cacheTTL := func() time.Duration {
		v := getenv("EVENT_CACHE_TTL", "30s")
		d, err := time.ParseDuration(v)
		if err != nil {
			return 30 * time.Second
		}
		return d
	}()

	return &Config{
		HTTP: HTTPConfig{
			Addr:         getenv("HTTP_ADDR", ":8080"),
			BasePath:     getenv("HTTP_BASE_PATH", "/api"),
			MaxBodyBytes: maxBody,
		},
		Storage: StorageConfig{
			Type:        getenv("STORAGE_TYPE", "postgres"),
			PostgresURL: getenv("POSTGRES_URL", "postgres://localhost:5432/termino?sslmode=disable"),
			SQLitePath:  getenv("SQLITE_PATH", "./data/termino.db"),
		},
		EventCacheTTL: cacheTTL,
		LogLevel:      getenv("LOG_LEVEL", "info"),
	}, nil
}
