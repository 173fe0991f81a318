package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds the exchange-wide limits and server settings.
type Config struct {
	Addr string

	// MaxWalletCapacity is the ceiling on free+locked money per wallet.
	MaxWalletCapacity uint64
	// MaxInventoryCapacity is the ceiling on free+locked ESOPs per inventory.
	MaxInventoryCapacity uint64

	// FeeRate is the platform commission withheld from non-performance
	// sell proceeds.
	FeeRate decimal.Decimal
}

func Default() Config {
	return Config{
		Addr:                 ":8080",
		MaxWalletCapacity:    100_000_000,
		MaxInventoryCapacity: 100_000_000,
		FeeRate:              decimal.RequireFromString("0.02"),
	}
}

// Load reads configuration from a .env file (if present) and environment
// variables. Priority: ENV > .env file > defaults.
func Load(envPath string) Config {
	cfg := Default()

	if envPath != "" {
		_ = godotenv.Load(envPath)
	} else {
		_ = godotenv.Load()
	}

	if addr := os.Getenv("EXCHANGE_ADDR"); addr != "" {
		cfg.Addr = addr
	}
	if v := os.Getenv("EXCHANGE_MAX_WALLET_CAPACITY"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.MaxWalletCapacity = n
		}
	}
	if v := os.Getenv("EXCHANGE_MAX_INVENTORY_CAPACITY"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.MaxInventoryCapacity = n
		}
	}

	return cfg
}
