package reserves

import "errors"

var (
	ErrSameToken    = errors.New("src and dst are equal")
	ErrPairMismatch = errors.New("pair does not match src/dst")
	ErrPairNotFound = errors.New("no pair at address")
)
