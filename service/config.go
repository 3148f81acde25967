package service

import (
	"os"
	"strconv"
	"time"

	"github.com/corebit/img2dataurl/logger"
)

const (
	defaultPort            = "8080"
	defaultCacheTTLSeconds = 300
	defaultJobDBPath       = "/tmp/resize_jobs.db"
	defaultLogLevel        = "INFO"
	defaultMaxBlobBytes    = 10 << 20
)

// Config holds all configuration loaded from environment variables
type Config struct {
	// Server configuration
	Port     string
	LogLevel string

	// Job history database
	JobDBPath string

	// Result cache configuration
	CacheTTLSeconds int
	CacheTTL        time.Duration

	// Client authentication. Empty secret leaves the client endpoints open.
	JWTSecret string

	// Admin token guarding the internal job history endpoints
	AdminToken string

	// Upper bound on the decoded blob size accepted over HTTP
	MaxBlobBytes int64
}

// NewConfig loads all configuration from environment variables with validation
func NewConfig() (*Config, error) {
	cfg := &Config{}

	logger.Debug().Msg("starting configuration loading from environment variables")

	cfg.LogLevel = os.Getenv("LOGLEVEL")
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
		logger.Debug().Str("LOGLEVEL", cfg.LogLevel).Msg("using default log level")
	} else {
		logger.Debug().Str("LOGLEVEL", cfg.LogLevel).Msg("log level loaded from environment")
	}

	cfg.Port = os.Getenv("RESIZE_PORT")
	if cfg.Port == "" {
		cfg.Port = defaultPort
		logger.Debug().Str("RESIZE_PORT", cfg.Port).Msg("using default port")
	} else {
		logger.Debug().Str("RESIZE_PORT", cfg.Port).Msg("port loaded from environment")
	}

	cfg.JobDBPath = os.Getenv("JOB_DB_PATH")
	if cfg.JobDBPath == "" {
		cfg.JobDBPath = defaultJobDBPath
		logger.Debug().Str("JOB_DB_PATH", cfg.JobDBPath).Msg("using default job database path")
	} else {
		logger.Debug().Str("JOB_DB_PATH", cfg.JobDBPath).Msg("job database path loaded from environment")
	}

	cacheTTLStr := os.Getenv("CACHE_TTL_SECONDS")
	cfg.CacheTTLSeconds = defaultCacheTTLSeconds
	if cacheTTLStr != "" {
		if parsed, err := strconv.Atoi(cacheTTLStr); err == nil && parsed >= 0 {
			cfg.CacheTTLSeconds = parsed
			logger.Debug().Int("CACHE_TTL_SECONDS", cfg.CacheTTLSeconds).Msg("cache TTL loaded from environment")
		} else {
			logger.Warn().Str("CACHE_TTL_SECONDS", cacheTTLStr).Err(err).Int("default", defaultCacheTTLSeconds).Msg("invalid cache TTL value, using default")
		}
	} else {
		logger.Debug().Int("CACHE_TTL_SECONDS", cfg.CacheTTLSeconds).Msg("using default cache TTL")
	}
	cfg.CacheTTL = time.Duration(cfg.CacheTTLSeconds) * time.Second

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		logger.Warn().Msg("JWT_SECRET not set - client endpoints will not require authentication")
	} else {
		logger.Debug().Msg("JWT_SECRET loaded from environment")
	}

	cfg.AdminToken = os.Getenv("SUPER_ADMIN_TOKEN")
	if cfg.AdminToken == "" {
		logger.Warn().Msg("SUPER_ADMIN_TOKEN not set - internal job endpoints will be unavailable")
	} else {
		logger.Debug().Msg("SUPER_ADMIN_TOKEN loaded from environment")
	}

	cfg.MaxBlobBytes = defaultMaxBlobBytes
	if v := os.Getenv("MAX_BLOB_BYTES"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil && parsed > 0 {
			cfg.MaxBlobBytes = parsed
			logger.Debug().Int64("MAX_BLOB_BYTES", cfg.MaxBlobBytes).Msg("max blob size loaded from environment")
		} else {
			logger.Warn().Str("MAX_BLOB_BYTES", v).Err(err).Int64("default", int64(defaultMaxBlobBytes)).Msg("invalid max blob size, using default")
		}
	} else {
		logger.Debug().Int64("MAX_BLOB_BYTES", cfg.MaxBlobBytes).Msg("using default max blob size")
	}

	logger.Debug().Msg("configuration loading completed successfully")

	return cfg, nil
}

// NewTestConfig creates a minimal Config for testing purposes
func NewTestConfig() *Config {
	return &Config{
		Port:            defaultPort,
		LogLevel:        defaultLogLevel,
		JobDBPath:       ":memory:",
		CacheTTLSeconds: defaultCacheTTLSeconds,
		CacheTTL:        time.Duration(defaultCacheTTLSeconds) * time.Second,
		AdminToken:      "test_token",
		MaxBlobBytes:    defaultMaxBlobBytes,
	}
}
