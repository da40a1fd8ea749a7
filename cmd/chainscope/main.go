package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/chainscope/chainscope/internal/explorer"
	"github.com/chainscope/chainscope/internal/handlers/cli"
	"github.com/chainscope/chainscope/internal/infra/ledger/ethereum"
	"github.com/chainscope/chainscope/internal/infra/storage/redis"
	"github.com/chainscope/chainscope/internal/pkg/logger"
	"github.com/chainscope/chainscope/internal/pkg/telemetry"
	"github.com/chainscope/chainscope/internal/pkg/transport/jsonrpc"

	"github.com/kelseyhightower/envconfig"
)

// serviceName identifies this binary in telemetry resources.
const serviceName = "chainscope"

// Config holds every environment-driven setting of the explorer binary.
// Variables are prefixed with CHAINSCOPE_, e.g. CHAINSCOPE_NODE_ENDPOINT.
type Config struct {
	NodeEndpoint string        `envconfig:"NODE_ENDPOINT" required:"true"`
	NodeTimeout  time.Duration `envconfig:"NODE_TIMEOUT" default:"5s"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	TelemetryEnabled bool `envconfig:"TELEMETRY_ENABLED" default:"false"`

	// Leaving RedisAddr empty keeps the scan cache in-process.
	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisUsername string `envconfig:"REDIS_USERNAME"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	ScanConcurrency int64         `envconfig:"SCAN_CONCURRENCY" default:"16"`
	ScanWindowSize  int           `envconfig:"SCAN_WINDOW_SIZE" default:"10"`
	ScanMaxWindow   int           `envconfig:"SCAN_MAX_WINDOW" default:"100"`
	ScanCacheTTL    time.Duration `envconfig:"SCAN_CACHE_TTL" default:"12s"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var cfg Config
	if err := envconfig.Process(serviceName, &cfg); err != nil {
		panic(err)
	}

	if cfg.TelemetryEnabled {
		shutdown, err := telemetry.Init(ctx, serviceName)
		if err != nil {
			panic(err)
		}
		defer shutdown(context.Background())
	}

	if err := logger.Init(logger.WithLevel(cfg.LogLevel)); err != nil {
		panic(err)
	}
	defer logger.Sync()

	conn := jsonrpc.NewClient(cfg.NodeEndpoint, jsonrpc.WithTimeout(cfg.NodeTimeout))
	ledger := ethereum.NewClient(conn)

	opts := []explorer.Option{
		explorer.WithConcurrency(cfg.ScanConcurrency),
		explorer.WithWindowSize(cfg.ScanWindowSize),
		explorer.WithMaxWindow(cfg.ScanMaxWindow),
		explorer.WithCacheTTL(cfg.ScanCacheTTL),
		explorer.WithCallTimeout(cfg.NodeTimeout),
	}

	if cfg.RedisAddr != "" {
		cache, err := redis.NewClient(ctx, cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Fatal(ctx, "connecting to redis", "addr", cfg.RedisAddr, "error", err)
		}
		defer cache.Close()

		opts = append(opts, explorer.WithScanCache(cache))
	}

	svc := explorer.New(ledger, opts...)

	if err := cli.Run(ctx, svc); err != nil {
		logger.Fatal(ctx, "command failed", "error", err)
	}
}
