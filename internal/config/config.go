package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const bpsMax = 10_000

type Config struct {
	Addr           string
	RPCEndpoint    string
	RPCDialTimeout time.Duration
	LogLevel       string
	LogFormat      string

	// PoolFeeBps is the fee the quoted pools charge on input; 30 for
	// Uniswap V2 pairs.
	PoolFeeBps         uint32
	DefaultSlippageBps uint32
	TokenCacheSize     int

	// FallbackRates is the raw FALLBACK_RATES value,
	// "src:dst=rate[,src:dst=rate...]". Empty disables estimates.
	FallbackRates string
}

func FromEnv() (*Config, error) {
	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":1337"
	}

	rpcURL := os.Getenv("ETH_RPC_URL")
	if rpcURL == "" {
		return nil, ErrMissingRPCEndpoint
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "text"
	}

	dialTimeout, err := durationEnv("RPC_DIAL_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}

	feeBps, err := bpsEnv("POOL_FEE_BPS", 30, bpsMax-1)
	if err != nil {
		return nil, err
	}

	slippageBps, err := bpsEnv("DEFAULT_SLIPPAGE_BPS", 50, bpsMax)
	if err != nil {
		return nil, err
	}

	cacheSize, err := intEnv("TOKEN_CACHE_SIZE", 1024)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Addr:               addr,
		RPCEndpoint:        rpcURL,
		RPCDialTimeout:     dialTimeout,
		LogLevel:           logLevel,
		LogFormat:          logFormat,
		PoolFeeBps:         feeBps,
		DefaultSlippageBps: slippageBps,
		TokenCacheSize:     cacheSize,
		FallbackRates:      os.Getenv("FALLBACK_RATES"),
	}

	return cfg, nil
}

func bpsEnv(key string, def, limit uint32) (uint32, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || uint32(v) > limit {
		return 0, fmt.Errorf("%w: %s=%q must be an integer in [0, %d]", ErrInvalidValue, key, raw, limit)
	}
	return uint32(v), nil
}

func intEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: %s=%q must be a positive integer", ErrInvalidValue, key, raw)
	}
	return v, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: %s=%q must be a positive duration", ErrInvalidValue, key, raw)
	}
	return v, nil
}
