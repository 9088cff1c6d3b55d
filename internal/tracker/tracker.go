package tracker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/warplabs/warps-engine/internal/adapter"
	"github.com/warplabs/warps-engine/internal/domain"
	"github.com/warplabs/warps-engine/internal/logger"
)

// Config holds tracker configuration. SettlementTimeout is the single
// failsafe bound for every tracked transaction.
type Config struct {
	PollInterval      time.Duration
	SettlementTimeout time.Duration
	MaxRPCRetries     uint64
}

// Tracker resolves submitted transactions to exactly one terminal outcome
//
//go:generate mockgen -source=tracker.go -destination=../mocks/tracker.go -package=mocks -mock_names=Tracker=MockTracker
type Tracker interface {
	// AwaitSettlement blocks until the transaction confirms, fails, drops
	// from the mempool, or hits the failsafe timeout. Every handle settles
	// at most once; a second await returns ErrAlreadySettled.
	AwaitSettlement(ctx context.Context, handle *domain.TxHandle) (*domain.Settled, error)
}

type tracker struct {
	client adapter.EthClient
	clock  adapter.Clock
	config Config

	mu sync.Mutex
	// settled maps a latched hash to when its await started; entries past
	// twice the failsafe timeout are evicted so the map stays bounded
	settled map[common.Hash]time.Time
}

// NewTracker creates a transaction lifecycle tracker
func NewTracker(client adapter.EthClient, clock adapter.Clock, config Config) Tracker {
	return &tracker{
		client:  client,
		clock:   clock,
		config:  config,
		settled: make(map[common.Hash]time.Time),
	}
}

func (t *tracker) AwaitSettlement(ctx context.Context, handle *domain.TxHandle) (*domain.Settled, error) {
	start := t.clock.Now()

	// The latch makes duplicate settlement impossible, even under
	// concurrent awaits for the same handle
	t.mu.Lock()
	for hash, latchedAt := range t.settled {
		if start.Sub(latchedAt) >= 2*t.config.SettlementTimeout {
			delete(t.settled, hash)
		}
	}
	if _, ok := t.settled[handle.Hash]; ok {
		t.mu.Unlock()
		return nil, domain.ErrAlreadySettled
	}
	t.settled[handle.Hash] = start
	t.mu.Unlock()

	for {
		receipt, mined, dropped, err := t.pollOnce(ctx, handle.Hash)
		if err != nil {
			// Poll errors are bounded by the failsafe timeout below
			logger.WarnCtx(ctx, "receipt poll failed",
				zap.String("txHash", handle.Hash.Hex()),
				zap.Error(err))
		}

		if dropped {
			logger.WarnCtx(ctx, "transaction dropped from mempool",
				zap.String("txHash", handle.Hash.Hex()))
			return &domain.Settled{Success: false, Reason: domain.FailureDropped}, nil
		}

		if receipt != nil {
			if receipt.Status == types.ReceiptStatusSuccessful {
				logger.InfoCtx(ctx, "transaction confirmed",
					zap.String("txHash", handle.Hash.Hex()),
					zap.Uint64("blockNumber", receipt.BlockNumber.Uint64()))
				return &domain.Settled{Success: true, Receipt: receipt}, nil
			}
			logger.WarnCtx(ctx, "transaction reverted",
				zap.String("txHash", handle.Hash.Hex()))
			return &domain.Settled{Success: false, Receipt: receipt, Reason: domain.FailureReverted}, nil
		}

		if mined {
			// Mined but the receipt index lags; keep polling instead of
			// treating it like a still-pending transaction
			logger.DebugCtx(ctx, "transaction mined, receipt not yet available",
				zap.String("txHash", handle.Hash.Hex()))
		}

		if t.clock.Since(start) >= t.config.SettlementTimeout {
			logger.WarnCtx(ctx, "transaction settlement timed out",
				zap.String("txHash", handle.Hash.Hex()),
				zap.Duration("timeout", t.config.SettlementTimeout))
			return &domain.Settled{Success: false, Reason: domain.FailureTimedOut}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.clock.After(t.config.PollInterval):
		}
	}
}

// pollOnce checks the receipt once, retrying transient RPC errors with
// bounded exponential backoff. It reports mined=true when the transaction
// left the mempool without a receipt yet, dropped=true when it is neither
// mined nor pending.
func (t *tracker) pollOnce(ctx context.Context, txHash common.Hash) (receipt *types.Receipt, mined, dropped bool, err error) {
	operation := func() error {
		r, err := t.client.TransactionReceipt(ctx, txHash)
		if err == nil {
			receipt = r
			return nil
		}

		if errors.Is(err, ethereum.NotFound) {
			// No receipt; distinguish pending from mined-but-unindexed from
			// dropped
			_, isPending, txErr := t.client.TransactionByHash(ctx, txHash)
			if txErr == nil {
				mined = !isPending
				return nil
			}
			if errors.Is(txErr, ethereum.NotFound) {
				dropped = true
				return nil
			}
			return txErr
		}

		return err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	b.Multiplier = 2.0
	b.RandomizationFactor = 0.5

	err = backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(b, t.config.MaxRPCRetries), ctx))
	return receipt, mined, dropped, err
}
