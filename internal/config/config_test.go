package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("ETH_RPC_URL", "http://localhost:8545")
	t.Setenv("ADDR", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("POOL_FEE_BPS", "")
	t.Setenv("DEFAULT_SLIPPAGE_BPS", "")
	t.Setenv("TOKEN_CACHE_SIZE", "")
	t.Setenv("RPC_DIAL_TIMEOUT", "")
	t.Setenv("FALLBACK_RATES", "")

	cfg, err := FromEnv()
	require.NoError(t, err)
	require.Equal(t, ":1337", cfg.Addr)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "text", cfg.LogFormat)
	require.Equal(t, uint32(30), cfg.PoolFeeBps)
	require.Equal(t, uint32(50), cfg.DefaultSlippageBps)
	require.Equal(t, 1024, cfg.TokenCacheSize)
	require.Equal(t, 15*time.Second, cfg.RPCDialTimeout)
	require.Empty(t, cfg.FallbackRates)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("ETH_RPC_URL", "http://localhost:8545")
	t.Setenv("ADDR", ":8080")
	t.Setenv("POOL_FEE_BPS", "25")
	t.Setenv("DEFAULT_SLIPPAGE_BPS", "10000")
	t.Setenv("TOKEN_CACHE_SIZE", "8")
	t.Setenv("RPC_DIAL_TIMEOUT", "2s")

	cfg, err := FromEnv()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.Addr)
	require.Equal(t, uint32(25), cfg.PoolFeeBps)
	require.Equal(t, uint32(10_000), cfg.DefaultSlippageBps)
	require.Equal(t, 8, cfg.TokenCacheSize)
	require.Equal(t, 2*time.Second, cfg.RPCDialTimeout)
}

func TestFromEnv_MissingRPC(t *testing.T) {
	t.Setenv("ETH_RPC_URL", "")

	_, err := FromEnv()
	require.ErrorIs(t, err, ErrMissingRPCEndpoint)
}

func TestFromEnv_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"POOL_FEE_BPS":         "10000",
		"DEFAULT_SLIPPAGE_BPS": "10001",
		"TOKEN_CACHE_SIZE":     "0",
		"RPC_DIAL_TIMEOUT":     "soon",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv("ETH_RPC_URL", "http://localhost:8545")
			t.Setenv(key, value)

			_, err := FromEnv()
			require.ErrorIs(t, err, ErrInvalidValue)
		})
	}
}
