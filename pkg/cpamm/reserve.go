// Package cpamm quotes trades against a two-asset constant-product pool and
// derives slippage-bounded execution parameters from those quotes.
//
// All amounts are integers in base units. Every function is pure: inputs are
// never mutated and results are freshly allocated on each call.
package cpamm

import "math/big"

// ReservePair is the state of a pool seen from the input side of a trade.
type ReservePair struct {
	ReserveIn  *big.Int
	ReserveOut *big.Int
	// FeeRateBps is the trading fee charged on the input, in [0, 10000).
	FeeRateBps uint32
}

// Valid reports whether both reserves are strictly positive and the fee rate
// is below 100%. A pair that is not valid cannot be quoted.
func (p ReservePair) Valid() bool {
	return positive(p.ReserveIn) && positive(p.ReserveOut) && p.FeeRateBps < BasisPoints
}

func positive(v *big.Int) bool {
	return v != nil && v.Sign() > 0
}
