// Command quote prices a constant-product swap from reserves given on the
// command line, without touching the network.
package main

import (
	"fmt"
	"io"
	"math/big"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/SMOLagents/raydium-cp-swap/internal/units"
	"github.com/SMOLagents/raydium-cp-swap/pkg/cpamm"
)

type options struct {
	reserveIn   string
	reserveOut  string
	amount      string
	feeBps      uint32
	slippageBps uint32
	inDecimals  int32
	outDecimals int32
}

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Quote a constant-product swap and derive its execution bounds",
		Long: `Computes the output amount and price impact of an exact-input swap
against the given pool reserves, then the minimum output accepted at the
chosen slippage tolerance. Reserves are integers in base units; the input
amount is too unless --in-decimals is given.

POOL_FEE_BPS and DEFAULT_SLIPPAGE_BPS, from the environment or a .env file,
replace the defaults of --fee-bps and --slippage-bps.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := bpsFromEnv(cmd, "fee-bps", "POOL_FEE_BPS", &opts.feeBps); err != nil {
				return err
			}
			return bpsFromEnv(cmd, "slippage-bps", "DEFAULT_SLIPPAGE_BPS", &opts.slippageBps)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuote(cmd.OutOrStdout(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.reserveIn, "reserve-in", "", "pool reserve of the input token (base units)")
	f.StringVar(&opts.reserveOut, "reserve-out", "", "pool reserve of the output token (base units)")
	f.StringVar(&opts.amount, "amount", "", "input amount (base units, or token units with --in-decimals)")
	f.Uint32Var(&opts.feeBps, "fee-bps", 25, "pool fee in basis points")
	f.Uint32Var(&opts.slippageBps, "slippage-bps", 50, "slippage tolerance in basis points")
	f.Int32Var(&opts.inDecimals, "in-decimals", -1, "input token decimals; when set --amount is read in token units")
	f.Int32Var(&opts.outDecimals, "out-decimals", -1, "output token decimals for display; negative disables")
	_ = cmd.MarkFlagRequired("reserve-in")
	_ = cmd.MarkFlagRequired("reserve-out")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func runQuote(w io.Writer, opts options) error {
	reserveIn, err := parseInt("reserve-in", opts.reserveIn)
	if err != nil {
		return err
	}
	reserveOut, err := parseInt("reserve-out", opts.reserveOut)
	if err != nil {
		return err
	}
	amount, err := parseAmount(opts.amount, opts.inDecimals)
	if err != nil {
		return err
	}

	q, err := cpamm.QuoteExactIn(amount, cpamm.ReservePair{
		ReserveIn:  reserveIn,
		ReserveOut: reserveOut,
		FeeRateBps: opts.feeBps,
	})
	if err != nil {
		return err
	}
	params, err := cpamm.BuildExecutionParams(q, opts.slippageBps)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "amount in:        %s\n", q.AmountIn)
	fmt.Fprintf(w, "fee:              %s\n", q.FeeAmount)
	fmt.Fprintf(w, "amount out:       %s%s\n", q.AmountOut, display(q.AmountOut, opts.outDecimals))
	fmt.Fprintf(w, "price impact:     %s%%\n", q.PriceImpactPercent.StringFixed(4))
	fmt.Fprintf(w, "slippage:         %d bps\n", params.SlippageBps)
	fmt.Fprintf(w, "minimum out:      %s%s\n", params.MinimumAmountOut, display(params.MinimumAmountOut, opts.outDecimals))
	return nil
}

func parseInt(flag, s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("--%s: %q is not a base-10 integer", flag, s)
	}
	return v, nil
}

func parseAmount(s string, decimals int32) (*big.Int, error) {
	if decimals < 0 {
		return parseInt("amount", s)
	}
	v, err := units.Parse(s, decimals)
	if err != nil {
		return nil, fmt.Errorf("--amount: %w", err)
	}
	return v, nil
}

// bpsFromEnv sets *dst from the environment variable key unless the flag was
// given explicitly.
func bpsFromEnv(cmd *cobra.Command, flag, key string, dst *uint32) error {
	if cmd.Flags().Changed(flag) {
		return nil
	}
	s, ok := os.LookupEnv(key)
	if !ok || s == "" {
		return nil
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil || v > cpamm.BasisPoints {
		return fmt.Errorf("%s: %q is not a basis point value", key, s)
	}
	*dst = uint32(v)
	return nil
}

func display(amount *big.Int, decimals int32) string {
	if decimals < 0 {
		return ""
	}
	s, err := units.Format(amount, decimals)
	if err != nil {
		return ""
	}
	return " (" + s + ")"
}
