package cpamm

import (
	"fmt"
	"math/big"
)

// ExecutionParams bound a trade for submission: the trade must be rejected
// if it would release less than MinimumAmountOut.
type ExecutionParams struct {
	AmountIn          *big.Int
	ExpectedAmountOut *big.Int
	MinimumAmountOut  *big.Int
	SlippageBps       uint32
}

// BuildExecutionParams derives the minimum acceptable output from q and a
// slippage tolerance in basis points:
//
//	MinimumAmountOut = floor(AmountOut * (10000 - slippageBps) / 10000)
//
// The quote is not re-evaluated, so the tolerance can change without
// touching pool state.
func BuildExecutionParams(q Quote, slippageBps uint32) (ExecutionParams, error) {
	if slippageBps > BasisPoints {
		return ExecutionParams{}, fmt.Errorf("%w: %d bps exceeds %d", ErrInvalidSlippage, slippageBps, BasisPoints)
	}
	if !positive(q.AmountIn) || q.AmountOut == nil || q.AmountOut.Sign() < 0 {
		return ExecutionParams{}, fmt.Errorf("%w: quote %s -> %s", ErrInvalidAmount, q.AmountIn, q.AmountOut)
	}

	minOut := new(big.Int).SetUint64(uint64(BasisPoints - slippageBps))
	minOut.Mul(minOut, q.AmountOut)
	minOut.Quo(minOut, bpsDen)

	return ExecutionParams{
		AmountIn:          new(big.Int).Set(q.AmountIn),
		ExpectedAmountOut: new(big.Int).Set(q.AmountOut),
		MinimumAmountOut:  minOut,
		SlippageBps:       slippageBps,
	}, nil
}
