package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"

	"github.com/shopeasy/storefront/internal/api"
	"github.com/shopeasy/storefront/internal/core"
	"github.com/shopeasy/storefront/internal/storefront"
	"github.com/shopeasy/storefront/internal/storefront/catalog"
	"github.com/shopeasy/storefront/internal/storefront/model"
	logx "github.com/shopeasy/storefront/pkg/logger"
	pkgredis "github.com/shopeasy/storefront/pkg/redis"
)

// AppConfig defines all configurable parameters of the storefront service,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	// Infrastructure
	Redis pkgredis.Config
	HTTP  model.HTTPConfig

	// Store configs
	Store   model.StoreConfig
	Search  model.SearchConfig
	Account model.AccountConfig
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// Load structured config from env
	var envCfg AppConfig
	if err := envconfig.Process("", &envCfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(envCfg.Environment)})

	cfg, err := storeConfig(envCfg)
	if err != nil {
		logx.Fatal().Err(err).Msg("invalid store config")
	}

	rdb := envCfg.Redis.MustNew(ctx)
	defer rdb.Close()
	logx.Info().Msg("connected to Redis")

	factory := storefront.NewFactory(rdb, catalog.Default(), cfg)
	server, err := api.NewServer(factory, envCfg.HTTP)
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to build catalog tools")
	}
	app := server.App()

	go func() {
		<-ctx.Done()
		logx.Info().Msg("shutting down")
		if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
			logx.Error().Err(err).Msg("shutdown failed")
		}
	}()

	logx.Info().Str("addr", envCfg.HTTP.Addr).Str("env", envCfg.Environment).Msg("storefront listening")
	if err := app.Listen(envCfg.HTTP.Addr); err != nil {
		logx.Fatal().Err(err).Msg("server stopped")
	}
}

func storeConfig(envCfg AppConfig) (storefront.Config, error) {
	ttl, err := time.ParseDuration(envCfg.Store.TTL)
	if err != nil {
		return storefront.Config{}, err
	}
	latency, err := time.ParseDuration(envCfg.Account.SimulatedLatency)
	if err != nil {
		return storefront.Config{}, err
	}
	rate, err := decimal.NewFromString(envCfg.Store.TaxRate)
	if err != nil {
		return storefront.Config{}, err
	}
	if rate.IsNegative() {
		return storefront.Config{}, fmt.Errorf("STORE_TAX_RATE must not be negative, got %s", rate)
	}
	return storefront.Config{
		KeyPrefix:      envCfg.Store.KeyPrefix,
		TTL:            ttl,
		TaxRate:        rate,
		AccountLatency: latency,
		MaxSuggestions: envCfg.Search.MaxSuggestions,
		ResultsPath:    envCfg.Search.ResultsPath,
	}, nil
}
