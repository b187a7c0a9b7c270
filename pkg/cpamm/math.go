package cpamm

import "math/big"

// BasisPoints is the denominator of fee and slippage rates: 10000 bps = 100%.
const BasisPoints = 10_000

var bpsDen = big.NewInt(BasisPoints)

// GetAmountOut writes the constant-product output for amountIn into dst and
// returns it. The fee of feeBps basis points is charged on the input before it
// reaches the pool. t1 and t2 are scratch values re-used across calls; on
// return t1 holds the fee amount. dst, t1 and t2 must not alias the inputs.
func GetAmountOut(dst, t1, t2 *big.Int, amountIn, reserveIn, reserveOut *big.Int, feeBps uint32) *big.Int {
	// t1 = amountIn * feeBps / 10000 (fee)
	t1.SetUint64(uint64(feeBps))
	t1.Mul(t1, amountIn)
	t1.Quo(t1, bpsDen)
	// t2 = amountIn - fee (net input)
	t2.Sub(amountIn, t1)
	// dst = reserveOut * net (numerator)
	dst.Mul(reserveOut, t2)
	// t2 = reserveIn + net (denominator)
	t2.Add(reserveIn, t2)
	return dst.Quo(dst, t2)
}
