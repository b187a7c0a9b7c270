package service

import "errors"

var (
	ErrInvalidFallbackRate = errors.New("invalid fallback rate")
	ErrNoEstimate          = errors.New("no fallback rate for pair")
)
