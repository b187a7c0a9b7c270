package handler

import "github.com/gofiber/fiber/v3"

// ErrInvalidQueryParameters indicates that the request query string could not
// be parsed into the expected structure.
var ErrInvalidQueryParameters = fiber.NewError(fiber.StatusBadRequest, "invalid query parameters")

// ErrSameAddresses is returned when src and dst addresses are identical.
var ErrSameAddresses = fiber.NewError(fiber.StatusBadRequest, "src and dst addresses cannot be the same")

// ErrAmountRequired is returned when the amount parameter is missing.
var ErrAmountRequired = fiber.NewError(fiber.StatusBadRequest, "amount is required")

// ErrInvalidAmountFormat is returned when the amount cannot be parsed as a
// base-10 integer, or as a decimal when src_decimals is set.
var ErrInvalidAmountFormat = fiber.NewError(fiber.StatusBadRequest, "invalid amount format")

// ErrAmountNonPositive is returned when the amount is zero or negative.
var ErrAmountNonPositive = fiber.NewError(fiber.StatusBadRequest, "amount must be greater than zero")

// ErrAmountTooPrecise is returned when src_amount has more fractional digits
// than src_decimals allows.
var ErrAmountTooPrecise = fiber.NewError(fiber.StatusBadRequest, "src_amount has more decimal places than src_decimals")

// ErrInvalidSrcDecimals is returned when src_decimals is not a valid token
// decimal count.
var ErrInvalidSrcDecimals = fiber.NewError(fiber.StatusBadRequest, "src_decimals must be an integer between 0 and 36")

// ErrInvalidSlippageFormat is returned when slippage_bps is not an unsigned
// integer.
var ErrInvalidSlippageFormat = fiber.NewError(fiber.StatusBadRequest, "slippage_bps must be a non-negative integer")

// ErrSlippageOutOfRange maps an out-of-range slippage tolerance to a 400 error.
var ErrSlippageOutOfRange = fiber.NewError(fiber.StatusBadRequest, "slippage_bps must be between 0 and 10000")

// ErrInvalidDecimals is returned when dst_decimals is not a valid token
// decimal count.
var ErrInvalidDecimals = fiber.NewError(fiber.StatusBadRequest, "dst_decimals must be an integer between 0 and 36")

// ErrInvalidAllowEstimate is returned when allow_estimate is not a boolean.
var ErrInvalidAllowEstimate = fiber.NewError(fiber.StatusBadRequest, "allow_estimate must be a boolean")

// ErrSameTokenBadRequest maps a same-token validation failure to a 400 error.
var ErrSameTokenBadRequest = fiber.NewError(fiber.StatusBadRequest, "src and dst tokens cannot be the same")

// ErrPairMismatchBadRequest is returned when src/dst are not the pool's tokens.
var ErrPairMismatchBadRequest = fiber.NewError(fiber.StatusBadRequest, "pool does not trade src/dst")

// ErrPoolUnavailableNotFound maps a missing or empty pool to a 404 error.
var ErrPoolUnavailableNotFound = fiber.NewError(fiber.StatusNotFound, "pool unavailable")

// ErrQuoteFailedInternal signals a generic server-side quoting error.
var ErrQuoteFailedInternal = fiber.NewError(fiber.StatusInternalServerError, "quote failed")

// NewInvalidAmountIn wraps an amount parsing error into a 400 Bad Request with
// a descriptive message.
func NewInvalidAmountIn(err error) error {
	return fiber.NewError(fiber.StatusBadRequest, "invalid src_amount: "+err.Error())
}

// NewAddressRequired returns a 400 Bad Request for a missing address field.
func NewAddressRequired(field string) error {
	return fiber.NewError(fiber.StatusBadRequest, field+" address is required")
}

// NewInvalidAddress returns a 400 Bad Request for an invalid address format.
func NewInvalidAddress(field string) error {
	return fiber.NewError(fiber.StatusBadRequest, "invalid "+field+" address")
}
