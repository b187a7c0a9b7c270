// Package units converts base-unit integers to and from human-readable
// decimal strings using a token's decimal places.
package units

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// MaxDecimals bounds the decimal places accepted for a token.
const MaxDecimals = 36

var (
	ErrInvalidDecimals = errors.New("invalid token decimals")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrTooPrecise      = errors.New("amount has more decimal places than the token")
)

// Format renders amount base units as a decimal string, e.g. 1500000 with 6
// decimals is "1.5".
func Format(amount *big.Int, decimals int32) (string, error) {
	if decimals < 0 || decimals > MaxDecimals {
		return "", fmt.Errorf("%w: %d", ErrInvalidDecimals, decimals)
	}
	if amount == nil {
		return "", ErrInvalidAmount
	}
	return decimal.NewFromBigInt(amount, -decimals).String(), nil
}

// Parse converts a non-negative decimal string into base units. Inputs with
// more fractional digits than decimals are rejected rather than rounded.
func Parse(s string, decimals int32) (*big.Int, error) {
	if decimals < 0 || decimals > MaxDecimals {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDecimals, decimals)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("%w: %q is negative", ErrInvalidAmount, s)
	}
	shifted := d.Shift(decimals)
	if !shifted.Equal(shifted.Truncate(0)) {
		return nil, fmt.Errorf("%w: %q with %d decimals", ErrTooPrecise, s, decimals)
	}
	return shifted.BigInt(), nil
}
