package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SMOLagents/raydium-cp-swap/internal/units"
	"github.com/SMOLagents/raydium-cp-swap/pkg/cpamm"
)

func TestQuoteCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{
		"--reserve-in", "1000000",
		"--reserve-out", "2000000",
		"--amount", "10000",
		"--out-decimals", "3",
	})

	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "amount out:       19752 (19.752)")
	require.Contains(t, out.String(), "fee:              25")
	require.Contains(t, out.String(), "price impact:     1.2400%")
	require.Contains(t, out.String(), "minimum out:      19653 (19.653)")
}

func TestQuoteCommand_Errors(t *testing.T) {
	cases := []struct {
		name string
		args []string
		err  error
	}{
		{"zero amount", []string{"--reserve-in", "1", "--reserve-out", "1", "--amount", "0"}, cpamm.ErrInvalidAmount},
		{"empty pool", []string{"--reserve-in", "0", "--reserve-out", "1", "--amount", "1"}, cpamm.ErrPoolUnavailable},
		{"slippage", []string{"--reserve-in", "10", "--reserve-out", "10", "--amount", "1", "--slippage-bps", "10001"}, cpamm.ErrInvalidSlippage},
		{"too precise", []string{"--reserve-in", "10", "--reserve-out", "10", "--amount", "1.0000001", "--in-decimals", "6"}, units.ErrTooPrecise},
		{"bad token amount", []string{"--reserve-in", "10", "--reserve-out", "10", "--amount", "abc", "--in-decimals", "6"}, units.ErrInvalidAmount},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			cmd := newRootCmd()
			cmd.SetOut(&out)
			cmd.SetErr(&out)
			cmd.SetArgs(tc.args)

			require.ErrorIs(t, cmd.Execute(), tc.err)
		})
	}
}

func TestQuoteCommand_RequiresFlags(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--amount", "1"})

	require.Error(t, cmd.Execute())
}

func TestQuoteCommand_TokenUnitAmount(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{
		"--reserve-in", "1000000000000",
		"--reserve-out", "2000000000000",
		"--amount", "1.5",
		"--in-decimals", "6",
	})

	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "amount in:        1500000\n")
}

func TestQuoteCommand_EnvDefaults(t *testing.T) {
	t.Setenv("POOL_FEE_BPS", "0")
	t.Setenv("DEFAULT_SLIPPAGE_BPS", "100")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--reserve-in", "1000000", "--reserve-out", "2000000", "--amount", "10000"})

	require.NoError(t, cmd.Execute())
	// 2000000*10000/1010000 with no fee
	require.Contains(t, out.String(), "fee:              0\n")
	require.Contains(t, out.String(), "amount out:       19801\n")
	require.Contains(t, out.String(), "slippage:         100 bps")

	out.Reset()
	cmd = newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--reserve-in", "1000000", "--reserve-out", "2000000", "--amount", "10000", "--fee-bps", "25"})

	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "amount out:       19752\n")
	require.Contains(t, out.String(), "slippage:         100 bps")
}

func TestQuoteCommand_InvalidEnvDefault(t *testing.T) {
	t.Setenv("POOL_FEE_BPS", "lots")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--reserve-in", "1", "--reserve-out", "1", "--amount", "1"})

	require.ErrorContains(t, cmd.Execute(), "POOL_FEE_BPS")
}
