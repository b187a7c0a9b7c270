// Package reserves reads live pool reserves from Uniswap-V2-layout pair
// contracts.
package reserves

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/SMOLagents/raydium-cp-swap/internal/telemetry"
)

// contract UniswapV2Pair is IUniswapV2Pair, UniswapV2ERC20 {
//     ...
//     address public factory;
//     address public token0;              // slot 6
//     address public token1;              // slot 7
//
//     uint112 private reserve0;           // slot 8, packed
//     uint112 private reserve1;           // slot 8, packed
//     uint32  private blockTimestampLast; // slot 8, packed
const (
	token0Slot   = 6
	token1Slot   = 7
	reservesSlot = 8
)

// StorageReader is the subset of *ethclient.Client the reader needs.
type StorageReader interface {
	BlockNumber(ctx context.Context) (uint64, error)
	StorageAt(ctx context.Context, account common.Address, key common.Hash, blockNumber *big.Int) ([]byte, error)
}

// Snapshot holds reserves oriented for a src -> dst trade as of BlockNumber.
type Snapshot struct {
	ReserveIn   *big.Int
	ReserveOut  *big.Int
	BlockNumber uint64
}

type pairTokens struct {
	token0 common.Address
	token1 common.Address
}

// PairReader reads pair reserves from contract storage. Token addresses are
// immutable per pair and cached; reserves are read fresh on every call.
type PairReader struct {
	logger *slog.Logger
	client StorageReader
	tokens *lru.Cache[common.Address, pairTokens]
}

// NewPairReader returns a PairReader caching the tokens of up to cacheSize
// pairs.
func NewPairReader(logger *slog.Logger, client StorageReader, cacheSize int) (*PairReader, error) {
	tokens, err := lru.New[common.Address, pairTokens](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("token cache: %w", err)
	}
	return &PairReader{logger: logger, client: client, tokens: tokens}, nil
}

// Reserves reads the reserves of pool at the latest block, ordered so that
// ReserveIn belongs to src and ReserveOut to dst. Empty reserves are returned
// as read.
func (r *PairReader) Reserves(ctx context.Context, pool, src, dst common.Address) (Snapshot, error) {
	if src == dst {
		return Snapshot{}, ErrSameToken
	}

	start := time.Now()
	defer func() {
		telemetry.ReserveReadDuration.Observe(time.Since(start).Seconds())
	}()

	bn, err := r.client.BlockNumber(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("block number: %w", err)
	}
	blockNum := new(big.Int).SetUint64(bn)

	tokens, err := r.pairTokens(ctx, pool, blockNum)
	if err != nil {
		return Snapshot{}, err
	}

	var inverse bool
	switch {
	case src == tokens.token0 && dst == tokens.token1:
	case src == tokens.token1 && dst == tokens.token0:
		inverse = true
	default:
		return Snapshot{}, ErrPairMismatch
	}

	word, err := r.readSlot(ctx, pool, blockNum, reservesSlot)
	if err != nil {
		return Snapshot{}, err
	}
	reserve0, reserve1 := parseReserves(word)

	snap := Snapshot{ReserveIn: reserve0, ReserveOut: reserve1, BlockNumber: bn}
	if inverse {
		snap.ReserveIn, snap.ReserveOut = reserve1, reserve0
	}
	r.logger.Debug("reserves read", "pool", pool.Hex(), "block", bn, "in", snap.ReserveIn.String(), "out", snap.ReserveOut.String())
	return snap, nil
}

func (r *PairReader) pairTokens(ctx context.Context, pool common.Address, blockNum *big.Int) (pairTokens, error) {
	if tokens, ok := r.tokens.Get(pool); ok {
		telemetry.PairTokenCache.WithLabelValues("hit").Inc()
		return tokens, nil
	}
	telemetry.PairTokenCache.WithLabelValues("miss").Inc()

	b0, err := r.readSlot(ctx, pool, blockNum, token0Slot)
	if err != nil {
		return pairTokens{}, err
	}
	b1, err := r.readSlot(ctx, pool, blockNum, token1Slot)
	if err != nil {
		return pairTokens{}, err
	}

	tokens := pairTokens{token0: common.BytesToAddress(b0), token1: common.BytesToAddress(b1)}
	if tokens.token0 == (common.Address{}) || tokens.token1 == (common.Address{}) {
		return pairTokens{}, fmt.Errorf("%w: %s", ErrPairNotFound, pool.Hex())
	}
	r.tokens.Add(pool, tokens)
	return tokens, nil
}

func (r *PairReader) readSlot(ctx context.Context, pool common.Address, blockNum *big.Int, slot uint64) ([]byte, error) {
	key := common.BigToHash(new(big.Int).SetUint64(slot))
	b, err := r.client.StorageAt(ctx, pool, key, blockNum)
	if err != nil {
		return nil, fmt.Errorf("storageAt slot %d (pool %s, block %s): %w",
			slot, pool.Hex(), blockNum.String(), err)
	}
	return b, nil
}

// parseReserves unpacks two uint112 reserves from the 32-byte storage word:
//
//	[ 32 bits timestamp | 112 bits reserve1 | 112 bits reserve0 ]
//
// read big-endian, so reserve0 occupies the low bits.
func parseReserves(b []byte) (reserve0, reserve1 *big.Int) {
	v := new(big.Int).SetBytes(b)
	one := big.NewInt(1)
	mask112 := new(big.Int).Sub(new(big.Int).Lsh(one, 112), one)

	reserve0 = new(big.Int).And(v, mask112)
	reserve1 = new(big.Int).And(new(big.Int).Rsh(v, 112), mask112)
	return
}
