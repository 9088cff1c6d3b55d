package chainstate

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/warplabs/warps-engine/internal/adapter"
	"github.com/warplabs/warps-engine/internal/chain"
	"github.com/warplabs/warps-engine/internal/logger"
)

// Snapshot is the set of global contract values refreshed together
type Snapshot struct {
	WinningColor    string
	PrizePoolWei    *big.Int
	ClaimPercentage uint64
	MintPriceWei    *big.Int
	FetchedAt       time.Time
}

// Provider serves cached chain-global state so that every consumer shares a
// single refresh policy instead of polling the contract independently.
//
//go:generate mockgen -source=provider.go -destination=../mocks/chainstate_provider.go -package=mocks -mock_names=Provider=MockChainStateProvider
type Provider interface {
	// State returns the cached global snapshot, refreshing it when expired
	State(ctx context.Context) (*Snapshot, error)

	// HasUsedFreeMint reports whether the account already consumed its free
	// mint, cached per address
	HasUsedFreeMint(ctx context.Context, account common.Address) (bool, error)
}

// Config holds cache timing for the provider
type Config struct {
	// TTL is how long a cached value is served without refreshing
	TTL time.Duration

	// StaleWindow is how long stale data is served when a refresh fails.
	// Beyond it a failed refresh surfaces the error.
	StaleWindow time.Duration
}

type entitlement struct {
	used      bool
	fetchedAt time.Time
}

type provider struct {
	gateway chain.Gateway
	config  Config
	clock   adapter.Clock

	mu           sync.RWMutex
	snapshot     *Snapshot
	entitlements map[common.Address]*entitlement
}

// NewProvider creates a cached chain state provider
func NewProvider(gateway chain.Gateway, config Config, clock adapter.Clock) Provider {
	return &provider{
		gateway:      gateway,
		config:       config,
		clock:        clock,
		entitlements: make(map[common.Address]*entitlement),
	}
}

func (p *provider) State(ctx context.Context) (*Snapshot, error) {
	p.mu.RLock()
	cached := p.snapshot
	p.mu.RUnlock()

	now := p.clock.Now()

	if cached != nil && now.Sub(cached.FetchedAt) < p.config.TTL {
		logger.DebugCtx(ctx, "Using cached chain state", zap.String("winning_color", cached.WinningColor))
		return cached, nil
	}

	fresh, err := p.fetchSnapshot(ctx, now)
	if err != nil {
		if cached != nil && now.Sub(cached.FetchedAt) < p.config.StaleWindow {
			logger.DebugCtx(ctx, "Using stale chain state", zap.String("winning_color", cached.WinningColor))
			return cached, nil
		}
		return nil, fmt.Errorf("failed to refresh chain state and no valid cache available: %w", err)
	}

	p.mu.Lock()
	p.snapshot = fresh
	p.mu.Unlock()

	return fresh, nil
}

func (p *provider) HasUsedFreeMint(ctx context.Context, account common.Address) (bool, error) {
	p.mu.RLock()
	cached := p.entitlements[account]
	p.mu.RUnlock()

	now := p.clock.Now()

	if cached != nil && now.Sub(cached.fetchedAt) < p.config.TTL {
		return cached.used, nil
	}

	used, err := p.gateway.HasUsedFreeMint(ctx, account)
	if err != nil {
		if cached != nil && now.Sub(cached.fetchedAt) < p.config.StaleWindow {
			return cached.used, nil
		}
		return false, fmt.Errorf("failed to refresh free mint entitlement and no valid cache available: %w", err)
	}

	p.mu.Lock()
	p.entitlements[account] = &entitlement{used: used, fetchedAt: now}
	p.mu.Unlock()

	return used, nil
}

func (p *provider) fetchSnapshot(ctx context.Context, now time.Time) (*Snapshot, error) {
	color, err := p.gateway.CurrentWinningColor(ctx)
	if err != nil {
		return nil, err
	}

	pool, err := p.gateway.AvailablePrizePool(ctx)
	if err != nil {
		return nil, err
	}

	percentage, err := p.gateway.WinnerClaimPercentage(ctx)
	if err != nil {
		return nil, err
	}

	price, err := p.gateway.MintPrice(ctx)
	if err != nil {
		return nil, err
	}

	logger.DebugCtx(ctx, "Refreshed chain state",
		zap.String("winning_color", color),
		zap.String("prize_pool_wei", pool.String()))

	return &Snapshot{
		WinningColor:    color,
		PrizePoolWei:    pool,
		ClaimPercentage: percentage,
		MintPriceWei:    price,
		FetchedAt:       now,
	}, nil
}
