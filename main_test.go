package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopeasy/storefront/internal/storefront/model"
)

func appConfig(rate string) AppConfig {
	return AppConfig{
		Store:   model.StoreConfig{KeyPrefix: "shopeasy", TTL: "1h", TaxRate: rate},
		Search:  model.SearchConfig{MaxSuggestions: 8, ResultsPath: "/search.html"},
		Account: model.AccountConfig{SimulatedLatency: "1.5s"},
	}
}

func TestStoreConfig(t *testing.T) {
	cfg, err := storeConfig(appConfig("0.08"))
	require.NoError(t, err)
	assert.Equal(t, "0.08", cfg.TaxRate.String())
	assert.Equal(t, time.Hour, cfg.TTL)
	assert.Equal(t, 1500*time.Millisecond, cfg.AccountLatency)
}

func TestStoreConfig_TaxRate(t *testing.T) {
	cfg, err := storeConfig(appConfig("0"))
	require.NoError(t, err)
	assert.True(t, cfg.TaxRate.IsZero())

	_, err = storeConfig(appConfig("-0.1"))
	assert.ErrorContains(t, err, "must not be negative")

	_, err = storeConfig(appConfig("eight percent"))
	assert.Error(t, err)
}
