package cpamm

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildExecutionParams_Scenario(t *testing.T) {
	t.Parallel()

	q, err := QuoteExactIn(big.NewInt(10_000), scenarioPair())
	require.NoError(t, err)

	p, err := BuildExecutionParams(q, 50)
	require.NoError(t, err)
	require.Equal(t, "10000", p.AmountIn.String())
	require.Equal(t, "19752", p.ExpectedAmountOut.String())
	require.Equal(t, "19653", p.MinimumAmountOut.String())
	require.Equal(t, uint32(50), p.SlippageBps)
}

func TestBuildExecutionParams_InvalidSlippage(t *testing.T) {
	t.Parallel()

	q, err := QuoteExactIn(big.NewInt(10_000), scenarioPair())
	require.NoError(t, err)

	_, err = BuildExecutionParams(q, 10_001)
	require.ErrorIs(t, err, ErrInvalidSlippage)

	p, err := BuildExecutionParams(q, 10_000)
	require.NoError(t, err)
	require.Zero(t, p.MinimumAmountOut.Sign())
}

func TestBuildExecutionParams_RejectsEmptyQuote(t *testing.T) {
	t.Parallel()

	_, err := BuildExecutionParams(Quote{}, 50)
	require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestBuildExecutionParams_Bound(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewSource(5))
	for i := 0; i < 1_000; i++ {
		q, err := QuoteExactIn(big.NewInt(r.Int63n(1_000_000_000)+1), randomPair(r))
		require.NoError(t, err)
		if q.AmountOut.Sign() == 0 {
			continue
		}
		slippage := uint32(r.Intn(BasisPoints + 1))

		p, err := BuildExecutionParams(q, slippage)
		require.NoError(t, err)

		cmp := p.MinimumAmountOut.Cmp(q.AmountOut)
		if slippage == 0 {
			require.Zero(t, cmp)
		} else {
			require.Equal(t, -1, cmp, "out=%s slippage=%d", q.AmountOut, slippage)
		}
	}
}

func TestBuildExecutionParams_DoesNotAliasQuote(t *testing.T) {
	t.Parallel()

	q, err := QuoteExactIn(big.NewInt(10_000), scenarioPair())
	require.NoError(t, err)

	p, err := BuildExecutionParams(q, 0)
	require.NoError(t, err)

	p.ExpectedAmountOut.SetInt64(0)
	p.AmountIn.SetInt64(0)
	require.Equal(t, "19752", q.AmountOut.String())
	require.Equal(t, "10000", q.AmountIn.String())
}
