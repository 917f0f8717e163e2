package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress       string
	DatabaseURI      string
	DBMaxPoolSize    int
	DBMinPoolSize    int
	ProcessInterval  time.Duration
	ProcessBatchSize int
	StopGrace        time.Duration
	ShutdownTimeout  time.Duration
}

const (
	defaultRunAddress       = ":8080"
	defaultDBMaxPoolSize    = 20
	defaultDBMinPoolSize    = 0
	defaultProcessInterval  = 5 * time.Second
	defaultProcessBatchSize = 100
	defaultStopGrace        = 10 * time.Second
	defaultShutdownTimeout  = 10 * time.Second
)

// Load parses configuration from an optional .env file, environment
// variables, and flags.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:       getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:      getString(lookup, "DATABASE_URI", ""),
		DBMaxPoolSize:    getInt(lookup, "DB_MAX_POOL_SIZE", defaultDBMaxPoolSize),
		DBMinPoolSize:    getInt(lookup, "DB_MIN_POOL_SIZE", defaultDBMinPoolSize),
		ProcessInterval:  getDuration(lookup, "PROCESS_INTERVAL", defaultProcessInterval),
		ProcessBatchSize: getInt(lookup, "PROCESS_BATCH_SIZE", defaultProcessBatchSize),
		StopGrace:        getDuration(lookup, "STOP_GRACE", defaultStopGrace),
		ShutdownTimeout:  getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("ordersvc", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		processIntervalStr = cfg.ProcessInterval.String()
		stopGraceStr       = cfg.StopGrace.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.IntVar(&cfg.DBMaxPoolSize, "db-max-pool", cfg.DBMaxPoolSize, "Maximum database connections")
	fs.IntVar(&cfg.DBMinPoolSize, "db-min-pool", cfg.DBMinPoolSize, "Minimum database connections")
	fs.StringVar(&processIntervalStr, "process-interval", processIntervalStr, "Interval between completion ticks")
	fs.IntVar(&cfg.ProcessBatchSize, "process-batch", cfg.ProcessBatchSize, "Maximum orders completed per batch")
	fs.StringVar(&stopGraceStr, "stop-grace", stopGraceStr, "Maximum wait for an in-flight tick on stop")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.ProcessInterval, err = time.ParseDuration(processIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid process interval: %w", err)
	}

	if cfg.StopGrace, err = time.ParseDuration(stopGraceStr); err != nil {
		return nil, fmt.Errorf("invalid stop grace: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.DBMaxPoolSize <= 0 {
		cfg.DBMaxPoolSize = defaultDBMaxPoolSize
	}

	if cfg.DBMinPoolSize < 0 {
		cfg.DBMinPoolSize = defaultDBMinPoolSize
	}

	if cfg.ProcessBatchSize <= 0 {
		cfg.ProcessBatchSize = defaultProcessBatchSize
	}

	if cfg.ProcessInterval <= 0 {
		cfg.ProcessInterval = defaultProcessInterval
	}

	if cfg.StopGrace <= 0 {
		cfg.StopGrace = defaultStopGrace
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
