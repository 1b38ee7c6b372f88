package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"golang.org/x/text/currency"
)

type Config struct {
	LogLevel    string
	MetricsAddr string

	Currency            currency.Unit
	HistoryDepth        int
	CheckoutWindow      time.Duration
	DoubleReserveOnMove bool
}

// Load reads the configuration from the environment. Unset or malformed
// numeric values fall back to their defaults; an unknown currency is an error.
func Load() (Config, error) {
	cur, err := currency.ParseISO(getEnv("CART_CURRENCY", "USD"))
	if err != nil {
		return Config{}, fmt.Errorf("CART_CURRENCY: %w", err)
	}

	return Config{
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		MetricsAddr:         getEnv("METRICS_ADDR", ""),
		Currency:            cur,
		HistoryDepth:        getEnvInt("CART_HISTORY_DEPTH", 1),
		CheckoutWindow:      getEnvDuration("CART_CHECKOUT_WINDOW", 30*time.Minute),
		DoubleReserveOnMove: getEnvBool("CART_DOUBLE_RESERVE_ON_MOVE", false),
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}

	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}

	return d
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}

	return b
}
