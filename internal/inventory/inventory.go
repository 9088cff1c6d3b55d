package inventory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/warplabs/warps-engine/internal/chain"
	"github.com/warplabs/warps-engine/internal/domain"
	"github.com/warplabs/warps-engine/internal/logger"
	"github.com/warplabs/warps-engine/internal/metadata"
)

// Page is one view of an owner's loaded inventory
type Page struct {
	Tokens  []*domain.Token
	HasMore bool
}

// Inventory caches each owner's token list with decoded metadata. The cache
// is invalidated, never patched in place, so readers always see a consistent
// snapshot.
//
//go:generate mockgen -source=inventory.go -destination=../mocks/inventory.go -package=mocks -mock_names=Inventory=MockInventory
type Inventory interface {
	// List returns the owner's loaded tokens, newest mints first, fetching
	// the first page from chain when no snapshot is cached
	List(ctx context.Context, owner common.Address) (*Page, error)

	// LoadMore extends the owner's snapshot by one page. Without a cached
	// snapshot it behaves like List.
	LoadMore(ctx context.Context, owner common.Address) (*Page, error)

	// Invalidate drops the owner's snapshot so the next List refetches from
	// chain. The reconciler calls this after every confirmed mutation.
	Invalidate(owner common.Address)
}

// Config holds inventory pagination settings
type Config struct {
	PageSize uint64
}

// snapshot is the loaded-so-far state for one owner. nextIndex walks the
// contract's enumeration backwards so newer mints surface first; -1 means
// exhausted.
type snapshot struct {
	tokens    []*domain.Token
	nextIndex int64
}

type inventory struct {
	gateway chain.Gateway
	codec   metadata.Codec
	config  Config

	mu        sync.Mutex
	snapshots map[common.Address]*snapshot
	// hashes survives Invalidate so a refetch can report metadata drift
	hashes map[uint64]string
}

// NewInventory creates a token inventory cache
func NewInventory(gateway chain.Gateway, codec metadata.Codec, config Config) Inventory {
	return &inventory{
		gateway:   gateway,
		codec:     codec,
		config:    config,
		snapshots: make(map[common.Address]*snapshot),
		hashes:    make(map[uint64]string),
	}
}

func (inv *inventory) List(ctx context.Context, owner common.Address) (*Page, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	if snap, ok := inv.snapshots[owner]; ok {
		return pageOf(snap), nil
	}

	return inv.loadLocked(ctx, owner)
}

func (inv *inventory) LoadMore(ctx context.Context, owner common.Address) (*Page, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	return inv.loadLocked(ctx, owner)
}

func (inv *inventory) Invalidate(owner common.Address) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	delete(inv.snapshots, owner)
}

// loadLocked fetches the next page for the owner, initializing the snapshot
// from the current chain balance when absent. Callers hold the mutex.
func (inv *inventory) loadLocked(ctx context.Context, owner common.Address) (*Page, error) {
	snap, ok := inv.snapshots[owner]
	if !ok {
		balance, err := inv.gateway.BalanceOf(ctx, owner)
		if err != nil {
			return nil, fmt.Errorf("failed to read balance for %s: %w", owner.Hex(), err)
		}
		snap = &snapshot{nextIndex: int64(balance) - 1}
		inv.snapshots[owner] = snap
	}

	if snap.nextIndex < 0 {
		return pageOf(snap), nil
	}

	var fetched []*domain.Token
	for snap.nextIndex >= 0 && uint64(len(fetched)) < inv.config.PageSize {
		index := uint64(snap.nextIndex)
		snap.nextIndex--

		token, err := inv.fetchToken(ctx, owner, index)
		if err != nil {
			return nil, err
		}
		if token == nil {
			continue
		}
		fetched = append(fetched, token)
	}

	// Enumeration order within a page is contract-defined; present newest
	// ids first
	sort.Slice(fetched, func(i, j int) bool { return fetched[i].ID > fetched[j].ID })
	snap.tokens = append(snap.tokens, fetched...)

	logger.DebugCtx(ctx, "Loaded inventory page",
		zap.String("owner", owner.Hex()),
		zap.Int("page_tokens", len(fetched)),
		zap.Int("total_tokens", len(snap.tokens)))

	return pageOf(snap), nil
}

// fetchToken resolves one enumeration slot to a decoded token. A token that
// disappeared between the balance read and this call resolves to nil.
func (inv *inventory) fetchToken(ctx context.Context, owner common.Address, index uint64) (*domain.Token, error) {
	tokenID, err := inv.gateway.TokenOfOwnerByIndex(ctx, owner, index)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate token at index %d for %s: %w", index, owner.Hex(), err)
	}

	tokenURI, err := inv.gateway.TokenURI(ctx, tokenID)
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			logger.WarnCtx(ctx, "Token vanished during enumeration", zap.Uint64("token_id", tokenID))
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read token URI for token %d: %w", tokenID, err)
	}

	md, err := inv.codec.Decode(tokenURI)
	if err != nil {
		return nil, fmt.Errorf("failed to decode metadata for token %d: %w", tokenID, err)
	}

	if err := inv.codec.CheckInlineImage(md.Image); err != nil {
		logger.WarnCtx(ctx, "Skipping token with mismatched inline image",
			zap.Uint64("token_id", tokenID),
			zap.Error(err))
		return nil, nil
	}
	md.Image = inv.codec.ResolveImage(md.Image)

	hash, err := inv.codec.Hash(md)
	if err != nil {
		return nil, fmt.Errorf("failed to hash metadata for token %d: %w", tokenID, err)
	}
	if previous, ok := inv.hashes[tokenID]; ok && previous != hash {
		logger.DebugCtx(ctx, "Token metadata changed since last fetch",
			zap.Uint64("token_id", tokenID))
	}
	inv.hashes[tokenID] = hash

	isWinning, err := inv.gateway.IsWinningToken(ctx, tokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to read winning status for token %d: %w", tokenID, err)
	}

	return &domain.Token{
		ID:           tokenID,
		WarpCount:    md.Attribute(domain.TRAIT_WARPS),
		Color:        md.Attribute(domain.TRAIT_COLOR),
		IsWinning:    isWinning,
		Metadata:     *md,
		MetadataHash: hash,
	}, nil
}

func pageOf(snap *snapshot) *Page {
	tokens := make([]*domain.Token, len(snap.tokens))
	copy(tokens, snap.tokens)
	return &Page{
		Tokens:  tokens,
		HasMore: snap.nextIndex >= 0,
	}
}
