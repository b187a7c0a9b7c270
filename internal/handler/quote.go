package handler

import (
	"errors"
	"log/slog"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gofiber/fiber/v3"

	"github.com/SMOLagents/raydium-cp-swap/internal/reserves"
	"github.com/SMOLagents/raydium-cp-swap/internal/service"
	"github.com/SMOLagents/raydium-cp-swap/internal/units"
	"github.com/SMOLagents/raydium-cp-swap/pkg/cpamm"
)

type QuoteHandler struct {
	BaseHandler
	service            *service.QuoteService
	defaultSlippageBps uint32
}

func NewQuoteHandler(logger *slog.Logger, svc *service.QuoteService, defaultSlippageBps uint32) *QuoteHandler {
	return &QuoteHandler{
		BaseHandler: BaseHandler{
			logger: logger,
		},
		service:            svc,
		defaultSlippageBps: defaultSlippageBps,
	}
}

type QuoteRequest struct {
	Pool          string `query:"pool" json:"pool"`
	Src           string `query:"src" json:"src"`
	Dst           string `query:"dst" json:"dst"`
	AmountIn      string `query:"src_amount" json:"amount_in"`
	SrcDecimals   string `query:"src_decimals" json:"src_decimals"`
	DstDecimals   string `query:"dst_decimals" json:"dst_decimals"`
	AllowEstimate string `query:"allow_estimate" json:"allow_estimate"`
	SlippageBps   string `query:"slippage_bps" json:"slippage_bps"`
}

type QuoteResponse struct {
	Kind               service.Kind `json:"kind"`
	AmountIn           string       `json:"amount_in"`
	FeeAmount          string       `json:"fee_amount,omitempty"`
	AmountOut          string       `json:"amount_out"`
	AmountOutDisplay   string       `json:"amount_out_display,omitempty"`
	PriceImpactPercent string       `json:"price_impact_percent,omitempty"`
	Rate               string       `json:"rate,omitempty"`
	BlockNumber        uint64       `json:"block_number,omitempty"`
}

type ExecutionParamsResponse struct {
	AmountIn           string `json:"amount_in"`
	ExpectedAmountOut  string `json:"expected_amount_out"`
	MinimumAmountOut   string `json:"minimum_amount_out"`
	MinimumOutDisplay  string `json:"minimum_amount_out_display,omitempty"`
	SlippageBps        uint32 `json:"slippage_bps"`
	PriceImpactPercent string `json:"price_impact_percent"`
	BlockNumber        uint64 `json:"block_number"`
}

// Quote serves GET /quote.
func (h *QuoteHandler) Quote() fiber.Handler {
	return func(c fiber.Ctx) error {
		req, qreq, err := h.parseAndValidateRequest(c)
		if err != nil {
			return err
		}

		allowEstimate, err := parseBool(req.AllowEstimate)
		if err != nil {
			return ErrInvalidAllowEstimate
		}

		var res service.Result
		if allowEstimate {
			res, err = h.service.QuoteOrEstimate(c.Context(), qreq)
		} else {
			var q service.PoolQuote
			q, err = h.service.Quote(c.Context(), qreq)
			res = service.Result{Kind: service.KindQuote, Quote: &q}
		}
		if err != nil {
			return h.handleServiceError(err)
		}

		resp := QuoteResponse{Kind: res.Kind}
		var out *big.Int
		switch res.Kind {
		case service.KindEstimate:
			resp.AmountIn = res.Estimate.AmountIn.String()
			resp.AmountOut = res.Estimate.AmountOut.String()
			resp.Rate = res.Estimate.Rate.String()
			out = res.Estimate.AmountOut
		default:
			q := res.Quote
			resp.AmountIn = q.AmountIn.String()
			resp.FeeAmount = q.FeeAmount.String()
			resp.AmountOut = q.AmountOut.String()
			resp.PriceImpactPercent = q.PriceImpactPercent.String()
			resp.BlockNumber = q.BlockNumber
			out = q.AmountOut
		}

		if resp.AmountOutDisplay, err = formatAmount(out, req.DstDecimals); err != nil {
			return err
		}

		h.logger.Debug("quote served", "kind", resp.Kind, "pool", req.Pool, "in", resp.AmountIn, "out", resp.AmountOut)
		return c.JSON(resp)
	}
}

// ExecutionParams serves GET /execution-params.
func (h *QuoteHandler) ExecutionParams() fiber.Handler {
	return func(c fiber.Ctx) error {
		req, qreq, err := h.parseAndValidateRequest(c)
		if err != nil {
			return err
		}

		slippage, err := h.parseSlippage(req.SlippageBps)
		if err != nil {
			return err
		}

		q, params, err := h.service.ExecutionParams(c.Context(), qreq, slippage)
		if err != nil {
			return h.handleServiceError(err)
		}

		resp := ExecutionParamsResponse{
			AmountIn:           params.AmountIn.String(),
			ExpectedAmountOut:  params.ExpectedAmountOut.String(),
			MinimumAmountOut:   params.MinimumAmountOut.String(),
			SlippageBps:        params.SlippageBps,
			PriceImpactPercent: q.PriceImpactPercent.String(),
			BlockNumber:        q.BlockNumber,
		}
		if resp.MinimumOutDisplay, err = formatAmount(params.MinimumAmountOut, req.DstDecimals); err != nil {
			return err
		}

		h.logger.Debug("execution params served", "pool", req.Pool, "in", resp.AmountIn, "min_out", resp.MinimumAmountOut, "slippage_bps", slippage)
		return c.JSON(resp)
	}
}

func (h *QuoteHandler) parseAndValidateRequest(c fiber.Ctx) (*QuoteRequest, service.QuoteRequest, error) {
	var req QuoteRequest

	if err := c.Bind().Query(&req); err != nil {
		h.logger.Debug("failed to bind query parameters", "err", err)
		return nil, service.QuoteRequest{}, ErrInvalidQueryParameters
	}

	if err := h.validateAddresses(&req); err != nil {
		return nil, service.QuoteRequest{}, err
	}

	amountIn, err := h.parseAmount(req.AmountIn, req.SrcDecimals)
	if err != nil {
		return nil, service.QuoteRequest{}, err
	}

	return &req, service.QuoteRequest{
		Pool:     common.HexToAddress(req.Pool),
		Src:      common.HexToAddress(req.Src),
		Dst:      common.HexToAddress(req.Dst),
		AmountIn: amountIn,
	}, nil
}

func (h *QuoteHandler) validateAddresses(req *QuoteRequest) error {
	// fixed order so the first failing field is reported deterministically
	fields := []struct {
		name string
		addr string
	}{
		{"pool", req.Pool},
		{"src", req.Src},
		{"dst", req.Dst},
	}

	for _, f := range fields {
		if f.addr == "" {
			return NewAddressRequired(f.name)
		}
		if !common.IsHexAddress(f.addr) {
			return NewInvalidAddress(f.name)
		}
	}

	if common.HexToAddress(req.Src) == common.HexToAddress(req.Dst) {
		return ErrSameAddresses
	}

	return nil
}

// parseAmount reads src_amount as base units, or as a token-unit decimal when
// src_decimals is given.
func (h *QuoteHandler) parseAmount(amountStr, decimalsStr string) (*big.Int, error) {
	if amountStr == "" {
		return nil, ErrAmountRequired
	}

	var amount *big.Int
	if decimalsStr == "" {
		v, ok := new(big.Int).SetString(amountStr, 10)
		if !ok {
			return nil, ErrInvalidAmountFormat
		}
		amount = v
	} else {
		d, err := strconv.ParseInt(decimalsStr, 10, 32)
		if err != nil {
			return nil, ErrInvalidSrcDecimals
		}
		amount, err = units.Parse(amountStr, int32(d))
		switch {
		case errors.Is(err, units.ErrInvalidDecimals):
			return nil, ErrInvalidSrcDecimals
		case errors.Is(err, units.ErrTooPrecise):
			return nil, ErrAmountTooPrecise
		case err != nil:
			return nil, ErrInvalidAmountFormat
		}
	}

	if amount.Sign() <= 0 {
		return nil, ErrAmountNonPositive
	}

	return amount, nil
}

func (h *QuoteHandler) parseSlippage(s string) (uint32, error) {
	if s == "" {
		return h.defaultSlippageBps, nil
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, ErrInvalidSlippageFormat
	}
	return uint32(v), nil
}

func parseBool(s string) (bool, error) {
	if s == "" {
		return false, nil
	}
	return strconv.ParseBool(s)
}

func formatAmount(amount *big.Int, decimals string) (string, error) {
	if decimals == "" {
		return "", nil
	}
	d, err := strconv.ParseInt(decimals, 10, 32)
	if err != nil {
		return "", ErrInvalidDecimals
	}
	s, err := units.Format(amount, int32(d))
	if err != nil {
		return "", ErrInvalidDecimals
	}
	return s, nil
}

func (h *QuoteHandler) handleServiceError(err error) error {
	switch {
	case errors.Is(err, reserves.ErrSameToken):
		return ErrSameTokenBadRequest
	case errors.Is(err, reserves.ErrPairMismatch):
		return ErrPairMismatchBadRequest
	case errors.Is(err, cpamm.ErrInvalidAmount):
		return NewInvalidAmountIn(err)
	case errors.Is(err, cpamm.ErrInvalidSlippage):
		return ErrSlippageOutOfRange
	case errors.Is(err, cpamm.ErrPoolUnavailable):
		h.logger.Debug("pool unavailable", "err", err)
		return ErrPoolUnavailableNotFound
	default:
		h.logger.Error("service quote failed", "err", err)
		return ErrQuoteFailedInternal
	}
}
