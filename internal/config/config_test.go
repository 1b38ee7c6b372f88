package config_test

import (
	"testing"
	"time"

	"github.com/nikolayk812/cartrecon/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"LOG_LEVEL", "METRICS_ADDR", "CART_CURRENCY", "CART_HISTORY_DEPTH",
		"CART_CHECKOUT_WINDOW", "CART_DOUBLE_RESERVE_ON_MOVE",
	} {
		t.Setenv(key, "")
	}

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.MetricsAddr)
	assert.Equal(t, "USD", cfg.Currency.String())
	assert.Equal(t, 1, cfg.HistoryDepth)
	assert.Equal(t, 30*time.Minute, cfg.CheckoutWindow)
	assert.False(t, cfg.DoubleReserveOnMove)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("METRICS_ADDR", ":9090")
	t.Setenv("CART_CURRENCY", "eur")
	t.Setenv("CART_HISTORY_DEPTH", "0")
	t.Setenv("CART_CHECKOUT_WINDOW", "90s")
	t.Setenv("CART_DOUBLE_RESERVE_ON_MOVE", "true")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
	assert.Equal(t, "EUR", cfg.Currency.String())
	assert.Equal(t, 0, cfg.HistoryDepth)
	assert.Equal(t, 90*time.Second, cfg.CheckoutWindow)
	assert.True(t, cfg.DoubleReserveOnMove)
}

func TestLoad_Malformed(t *testing.T) {
	t.Setenv("CART_HISTORY_DEPTH", "-3")
	t.Setenv("CART_CHECKOUT_WINDOW", "soon")
	t.Setenv("CART_DOUBLE_RESERVE_ON_MOVE", "maybe")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.HistoryDepth)
	assert.Equal(t, 30*time.Minute, cfg.CheckoutWindow)
	assert.False(t, cfg.DoubleReserveOnMove)

	t.Setenv("CART_CURRENCY", "XXXX")
	_, err = config.Load()
	require.Error(t, err)
}
