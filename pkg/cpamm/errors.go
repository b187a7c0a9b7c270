package cpamm

import "errors"

var (
	// ErrInvalidAmount is returned for a missing, zero or negative amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrPoolUnavailable is returned when reserves are missing, zero or the
	// fee rate is out of range.
	ErrPoolUnavailable = errors.New("pool unavailable")
	// ErrInvalidSlippage is returned for a slippage tolerance above 10000 bps.
	ErrInvalidSlippage = errors.New("invalid slippage tolerance")
)
