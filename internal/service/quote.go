package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/SMOLagents/raydium-cp-swap/internal/reserves"
	"github.com/SMOLagents/raydium-cp-swap/internal/telemetry"
	"github.com/SMOLagents/raydium-cp-swap/pkg/cpamm"
)

// ReserveSource supplies current pool reserves oriented for src -> dst.
type ReserveSource interface {
	Reserves(ctx context.Context, pool, src, dst common.Address) (reserves.Snapshot, error)
}

type QuoteRequest struct {
	Pool     common.Address
	Src      common.Address
	Dst      common.Address
	AmountIn *big.Int
}

// PoolQuote is a quote together with the block its reserves were read at.
// It is only valid until the pool's reserves change.
type PoolQuote struct {
	cpamm.Quote
	BlockNumber uint64
}

// Kind tells a genuine quote apart from a fallback estimate.
type Kind string

const (
	KindQuote    Kind = "quote"
	KindEstimate Kind = "estimate"
)

// Result holds exactly one of Quote or Estimate, as named by Kind.
type Result struct {
	Kind     Kind
	Quote    *PoolQuote
	Estimate *Estimate
}

// QuoteService quotes trades against live pool reserves.
type QuoteService struct {
	BaseService
	source    ReserveSource
	feeBps    uint32
	estimator *Estimator
}

// NewQuoteService constructs a QuoteService. feeBps is the fee charged by the
// pools source reads from. estimator may be nil to disable estimates.
func NewQuoteService(logger *slog.Logger, source ReserveSource, feeBps uint32, estimator *Estimator) *QuoteService {
	return &QuoteService{
		BaseService: BaseService{logger: logger},
		source:      source,
		feeBps:      feeBps,
		estimator:   estimator,
	}
}

// Quote reads fresh reserves and prices req against them. Results are never
// cached.
func (s *QuoteService) Quote(ctx context.Context, req QuoteRequest) (PoolQuote, error) {
	q, err := s.quote(ctx, req)
	telemetry.QuotesTotal.WithLabelValues(outcome(err)).Inc()
	return q, err
}

func (s *QuoteService) quote(ctx context.Context, req QuoteRequest) (PoolQuote, error) {
	if req.AmountIn == nil || req.AmountIn.Sign() <= 0 {
		return PoolQuote{}, fmt.Errorf("%w: %s", cpamm.ErrInvalidAmount, req.AmountIn)
	}
	s.logger.Debug("quoting swap", "pool", req.Pool.Hex(), "src", req.Src.Hex(), "dst", req.Dst.Hex(), "in", req.AmountIn.String())

	snap, err := s.source.Reserves(ctx, req.Pool, req.Src, req.Dst)
	switch {
	case errors.Is(err, reserves.ErrPairNotFound):
		return PoolQuote{}, fmt.Errorf("%w: %w", cpamm.ErrPoolUnavailable, err)
	case err != nil:
		return PoolQuote{}, fmt.Errorf("read reserves: %w", err)
	}

	q, err := cpamm.QuoteExactIn(req.AmountIn, cpamm.ReservePair{
		ReserveIn:  snap.ReserveIn,
		ReserveOut: snap.ReserveOut,
		FeeRateBps: s.feeBps,
	})
	if err != nil {
		return PoolQuote{}, err
	}

	s.logger.Debug("quote computed", "block", snap.BlockNumber, "out", q.AmountOut.String(), "impact", q.PriceImpactPercent.String())
	return PoolQuote{Quote: q, BlockNumber: snap.BlockNumber}, nil
}

// ExecutionParams quotes req afresh and bounds it by slippageBps, so the
// parameters always derive from the latest reserves.
func (s *QuoteService) ExecutionParams(ctx context.Context, req QuoteRequest, slippageBps uint32) (PoolQuote, cpamm.ExecutionParams, error) {
	if slippageBps > cpamm.BasisPoints {
		telemetry.QuotesTotal.WithLabelValues(outcome(cpamm.ErrInvalidSlippage)).Inc()
		return PoolQuote{}, cpamm.ExecutionParams{}, fmt.Errorf("%w: %d bps", cpamm.ErrInvalidSlippage, slippageBps)
	}

	q, err := s.Quote(ctx, req)
	if err != nil {
		return PoolQuote{}, cpamm.ExecutionParams{}, err
	}

	params, err := cpamm.BuildExecutionParams(q.Quote, slippageBps)
	if err != nil {
		return PoolQuote{}, cpamm.ExecutionParams{}, err
	}
	return q, params, nil
}

// QuoteOrEstimate returns a quote, or an estimate labelled as such when the
// pool cannot be quoted and a fallback rate exists for the pair.
func (s *QuoteService) QuoteOrEstimate(ctx context.Context, req QuoteRequest) (Result, error) {
	q, err := s.Quote(ctx, req)
	if err == nil {
		return Result{Kind: KindQuote, Quote: &q}, nil
	}
	if s.estimator == nil || !errors.Is(err, cpamm.ErrPoolUnavailable) {
		return Result{}, err
	}

	est, estErr := s.estimator.Estimate(req.Src, req.Dst, req.AmountIn)
	if estErr != nil {
		return Result{}, err
	}
	telemetry.EstimatesTotal.Inc()
	s.logger.Warn("pool unavailable, serving estimate", "pool", req.Pool.Hex(), "src", req.Src.Hex(), "dst", req.Dst.Hex(), "err", err)
	return Result{Kind: KindEstimate, Estimate: &est}, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, cpamm.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, cpamm.ErrPoolUnavailable):
		return "pool_unavailable"
	case errors.Is(err, cpamm.ErrInvalidSlippage):
		return "invalid_slippage"
	default:
		return "error"
	}
}
