package cpamm

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// PriceImpactPrecision is the number of decimal places price impact is
// rounded to.
const PriceImpactPrecision = 18

var hundred = big.NewInt(100)

// Quote is the result of pricing a single exact-input trade.
type Quote struct {
	AmountIn  *big.Int
	FeeAmount *big.Int
	AmountOut *big.Int
	// PriceImpactPercent is the deviation of the execution price
	// (AmountOut/AmountIn) from the marginal price (ReserveOut/ReserveIn).
	PriceImpactPercent decimal.Decimal
}

// QuoteExactIn prices a trade of amountIn against pair using the
// constant-product invariant (x + dx)(y - dy) = xy, fee charged on input.
func QuoteExactIn(amountIn *big.Int, pair ReservePair) (Quote, error) {
	if !positive(amountIn) {
		return Quote{}, fmt.Errorf("%w: %s", ErrInvalidAmount, amountIn)
	}
	if !pair.Valid() {
		return Quote{}, fmt.Errorf("%w: reserves %s/%s, fee %d bps",
			ErrPoolUnavailable, pair.ReserveIn, pair.ReserveOut, pair.FeeRateBps)
	}

	in := new(big.Int).Set(amountIn)
	out, fee, tmp := new(big.Int), new(big.Int), new(big.Int)
	GetAmountOut(out, fee, tmp, in, pair.ReserveIn, pair.ReserveOut, pair.FeeRateBps)

	return Quote{
		AmountIn:           in,
		FeeAmount:          fee,
		AmountOut:          out,
		PriceImpactPercent: priceImpactPercent(in, out, pair.ReserveIn, pair.ReserveOut),
	}, nil
}

// priceImpactPercent evaluates |m - e| / m * 100 with m = reserveOut/reserveIn
// and e = amountOut/amountIn. Cross-multiplied, this is
//
//	|reserveOut*amountIn - amountOut*reserveIn| * 100 / (reserveOut*amountIn)
//
// which is exact in integers; the only rounding is the final division.
func priceImpactPercent(amountIn, amountOut, reserveIn, reserveOut *big.Int) decimal.Decimal {
	den := new(big.Int).Mul(reserveOut, amountIn)
	num := new(big.Int).Mul(amountOut, reserveIn)
	num.Sub(den, num).Abs(num)
	num.Mul(num, hundred)
	return decimal.NewFromBigInt(num, 0).DivRound(decimal.NewFromBigInt(den, 0), PriceImpactPrecision)
}
