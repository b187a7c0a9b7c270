package service

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// FallbackRate is a fixed src -> dst exchange rate in base units used when no
// pool can be quoted.
type FallbackRate struct {
	Src  common.Address
	Dst  common.Address
	Rate decimal.Decimal
}

// Estimate is an output amount derived from a FallbackRate. It is not a
// quote: it ignores reserves, fees and price impact.
type Estimate struct {
	AmountIn  *big.Int
	AmountOut *big.Int
	Rate      decimal.Decimal
}

type pairKey struct {
	src common.Address
	dst common.Address
}

// Estimator converts amounts with static per-pair rates.
type Estimator struct {
	rates map[pairKey]decimal.Decimal
}

func NewEstimator(rates []FallbackRate) *Estimator {
	m := make(map[pairKey]decimal.Decimal, len(rates))
	for _, r := range rates {
		m[pairKey{src: r.Src, dst: r.Dst}] = r.Rate
	}
	return &Estimator{rates: m}
}

// Estimate returns floor(amountIn * rate) for the src -> dst rate.
func (e *Estimator) Estimate(src, dst common.Address, amountIn *big.Int) (Estimate, error) {
	rate, ok := e.rates[pairKey{src: src, dst: dst}]
	if !ok {
		return Estimate{}, fmt.Errorf("%w: %s -> %s", ErrNoEstimate, src.Hex(), dst.Hex())
	}
	if amountIn == nil || amountIn.Sign() <= 0 {
		return Estimate{}, fmt.Errorf("%w: amount %s", ErrNoEstimate, amountIn)
	}

	out := decimal.NewFromBigInt(amountIn, 0).Mul(rate).Floor().BigInt()
	return Estimate{AmountIn: new(big.Int).Set(amountIn), AmountOut: out, Rate: rate}, nil
}

// ParseFallbackRates parses "src:dst=rate[,src:dst=rate...]" where src and
// dst are hex addresses and rate is a positive decimal.
func ParseFallbackRates(s string) ([]FallbackRate, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var rates []FallbackRate
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		pair, rawRate, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("%w: %q missing '='", ErrInvalidFallbackRate, entry)
		}
		src, dst, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, fmt.Errorf("%w: %q missing ':'", ErrInvalidFallbackRate, entry)
		}
		src, dst = strings.TrimSpace(src), strings.TrimSpace(dst)
		if !common.IsHexAddress(src) || !common.IsHexAddress(dst) {
			return nil, fmt.Errorf("%w: %q has an invalid address", ErrInvalidFallbackRate, entry)
		}
		rate, err := decimal.NewFromString(strings.TrimSpace(rawRate))
		if err != nil || !rate.IsPositive() {
			return nil, fmt.Errorf("%w: %q rate must be a positive decimal", ErrInvalidFallbackRate, entry)
		}
		rates = append(rates, FallbackRate{
			Src:  common.HexToAddress(src),
			Dst:  common.HexToAddress(dst),
			Rate: rate,
		})
	}
	return rates, nil
}
