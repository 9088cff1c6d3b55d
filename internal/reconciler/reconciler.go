package reconciler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"github.com/warplabs/warps-engine/internal/adapter"
	"github.com/warplabs/warps-engine/internal/chain"
	"github.com/warplabs/warps-engine/internal/chainstate"
	"github.com/warplabs/warps-engine/internal/domain"
	"github.com/warplabs/warps-engine/internal/inventory"
	"github.com/warplabs/warps-engine/internal/logger"
	"github.com/warplabs/warps-engine/internal/messaging"
	"github.com/warplabs/warps-engine/internal/tracker"
)

// ErrNoPairSelected is returned when Submit is called without a paired
// selection
var ErrNoPairSelected = errors.New("no token pair selected")

// transferTopic identifies ERC-721 Transfer logs in mint receipts
var transferTopic = crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))

// State is one step of a player's composite session
type State string

const (
	StateIdle       State = "idle"
	StateSelecting  State = "selecting"
	StatePaired     State = "paired"
	StateSubmitting State = "submitting"
	StateConfirming State = "confirming"
	StateSuccess    State = "success"
	StateError      State = "error"
)

// Config holds reconciler configuration
type Config struct {
	// HighlightDuration bounds how long a surviving token stays marked as
	// freshly evolved
	HighlightDuration time.Duration
}

// Snapshot is a read-only view of a player's session for rendering
type Snapshot struct {
	State    State    `json:"state"`
	Selected []uint64 `json:"selected"`
	// LastError carries the retryable failure message in the error state
	LastError string `json:"last_error,omitempty"`
}

// Outcome is the terminal result of one submitted transaction
type Outcome struct {
	Settled *domain.Settled
	// Event is the published game event, nil on failure
	Event *domain.GameEvent
	Err   error
}

// Submission pairs a transaction handle with its eventual outcome. The
// Outcome channel is buffered; a caller that stops listening does not stop
// settlement tracking or the success side effects.
type Submission struct {
	Handle  *domain.TxHandle
	Outcome <-chan *Outcome
}

// Reconciler drives the composite, mint, and claim flows: selection rules,
// in-flight deduplication, settlement, and exactly-once success side effects
//
//go:generate mockgen -source=reconciler.go -destination=../mocks/reconciler.go -package=mocks -mock_names=Reconciler=MockReconciler
type Reconciler interface {
	// Select toggles a token into the player's composite selection
	Select(owner common.Address, token *domain.Token) (*Snapshot, error)

	// ClearSelection resets the player's selection to idle
	ClearSelection(owner common.Address)

	// Session returns the player's current session snapshot
	Session(owner common.Address) *Snapshot

	// Detach drops the player's session view without cancelling any
	// submitted transaction; tracking and side effects continue
	Detach(owner common.Address)

	// SubmitComposite submits the selected pair on chain
	SubmitComposite(ctx context.Context, owner common.Address, signer adapter.Signer) (*Submission, error)

	// Mint routes to the free mint when the address still holds its
	// entitlement, the paid mint otherwise
	Mint(ctx context.Context, owner common.Address, signer adapter.Signer) (*Submission, error)

	// ClaimPrize submits a prize claim for a winning token
	ClaimPrize(ctx context.Context, owner common.Address, tokenID uint64, signer adapter.Signer) (*Submission, error)

	// IsHighlighted reports whether the token is inside its post-evolution
	// highlight window
	IsHighlighted(tokenID uint64) bool
}

// session holds one player's mutable composite state
type session struct {
	state    State
	selected []*domain.Token
	// activeKey ties the session to its in-flight submission so a detached
	// session is not touched by a late settlement
	activeKey domain.PairKey
	lastError string
}

type reconciler struct {
	config     Config
	gateway    chain.Gateway
	tracker    tracker.Tracker
	inventory  inventory.Inventory
	chainstate chainstate.Provider
	publisher  messaging.Publisher
	clock      adapter.Clock

	mu       sync.Mutex
	sessions map[common.Address]*session
	// inFlight guards every write flow: composite pair keys, one mint per
	// address, one claim per token
	inFlight map[string]bool
	// highlights maps a surviving token id to its highlight expiry
	highlights map[uint64]time.Time
	// announced latches claim announcements per token id, keyed to the
	// announcement time so stale latches can be evicted
	announced map[uint64]time.Time
}

// announcedRetention bounds how long a claim announcement latch is kept. It
// comfortably covers the window in which a duplicate settlement of the same
// claim could still be observed.
const announcedRetention = 24 * time.Hour

// NewReconciler creates the game state reconciler
func NewReconciler(
	config Config,
	gw chain.Gateway,
	tr tracker.Tracker,
	inv inventory.Inventory,
	cs chainstate.Provider,
	publisher messaging.Publisher,
	clock adapter.Clock,
) Reconciler {
	return &reconciler{
		config:     config,
		gateway:    gw,
		tracker:    tr,
		inventory:  inv,
		chainstate: cs,
		publisher:  publisher,
		clock:      clock,
		sessions:   make(map[common.Address]*session),
		inFlight:   make(map[string]bool),
		highlights: make(map[uint64]time.Time),
		announced:  make(map[uint64]time.Time),
	}
}

// sessionLocked returns the player's session, creating an idle one on first
// touch. Caller holds r.mu.
func (r *reconciler) sessionLocked(owner common.Address) *session {
	s, ok := r.sessions[owner]
	if !ok {
		s = &session{state: StateIdle}
		r.sessions[owner] = s
	}
	return s
}

func (r *reconciler) snapshotLocked(s *session) *Snapshot {
	selected := make([]uint64, 0, len(s.selected))
	for _, token := range s.selected {
		selected = append(selected, token.ID)
	}
	return &Snapshot{
		State:     s.state,
		Selected:  selected,
		LastError: s.lastError,
	}
}

func (r *reconciler) Select(owner common.Address, token *domain.Token) (*Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.sessionLocked(owner)

	// A terminal token can never be combined; the selection stands as it was
	if token.IsTerminal() {
		return r.snapshotLocked(s), domain.ErrSingleWarpSelection
	}

	// Selecting the chosen token again clears the selection
	for _, chosen := range s.selected {
		if chosen.ID == token.ID {
			s.selected = nil
			s.state = StateIdle
			s.lastError = ""
			return r.snapshotLocked(s), nil
		}
	}

	switch len(s.selected) {
	case 0:
		s.selected = []*domain.Token{token}
		s.state = StateSelecting
		s.lastError = ""
		return r.snapshotLocked(s), nil

	case 1:
		if s.selected[0].WarpCount != token.WarpCount {
			// The rejected second pick replaces the first as the sole
			// selection
			s.selected = []*domain.Token{token}
			s.state = StateSelecting
			return r.snapshotLocked(s), domain.ErrMismatchedWarpCount
		}
		s.selected = append(s.selected, token)
		s.state = StatePaired
		s.lastError = ""
		return r.snapshotLocked(s), nil

	default:
		// A full pair replaces itself with the new pick
		s.selected = []*domain.Token{token}
		s.state = StateSelecting
		s.lastError = ""
		return r.snapshotLocked(s), nil
	}
}

func (r *reconciler) ClearSelection(owner common.Address) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.sessionLocked(owner)
	s.selected = nil
	s.state = StateIdle
	s.lastError = ""
}

func (r *reconciler) Session(owner common.Address) *Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.snapshotLocked(r.sessionLocked(owner))
}

func (r *reconciler) Detach(owner common.Address) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// The transaction, if any, is already on chain. Only the session view
	// resets; the in-flight guard stays until settlement clears it.
	s := r.sessionLocked(owner)
	s.selected = nil
	s.state = StateIdle
	s.activeKey = ""
	s.lastError = ""
}

func (r *reconciler) SubmitComposite(ctx context.Context, owner common.Address, signer adapter.Signer) (*Submission, error) {
	r.mu.Lock()
	s := r.sessionLocked(owner)

	if s.state != StatePaired || len(s.selected) != 2 {
		r.mu.Unlock()
		return nil, ErrNoPairSelected
	}

	request := domain.CompositeRequest{SourceID: s.selected[0].ID, TargetID: s.selected[1].ID}
	key := request.Key()
	guard := "composite:" + string(key)

	if r.inFlight[guard] {
		r.mu.Unlock()
		return nil, domain.ErrPairInFlight
	}
	r.inFlight[guard] = true
	s.state = StateSubmitting
	s.activeKey = key
	r.mu.Unlock()

	handle, err := r.gateway.SimulateAndSend(ctx,
		chain.CompositeWriteRequest(owner, request.SourceID, request.TargetID), signer)
	if err != nil {
		r.failSubmission(owner, key, guard, err)
		return nil, err
	}

	r.mu.Lock()
	if s.activeKey == key {
		s.state = StateConfirming
	}
	r.mu.Unlock()

	outcome := make(chan *Outcome, 1)
	// Settlement outlives the request: closing the UI must not cancel a
	// transaction that is already on chain
	go r.confirmComposite(context.WithoutCancel(ctx), owner, key, guard, request.SourceID, request.TargetID, handle, outcome)

	return &Submission{Handle: handle, Outcome: outcome}, nil
}

// confirmComposite waits for settlement and runs the success side effects
// exactly once, in order
func (r *reconciler) confirmComposite(ctx context.Context, owner common.Address, key domain.PairKey, guard string, survivingID, burnedID uint64, handle *domain.TxHandle, outcome chan<- *Outcome) {
	settled, err := r.tracker.AwaitSettlement(ctx, handle)
	if err != nil {
		r.failSubmission(owner, key, guard, err)
		outcome <- &Outcome{Err: err}
		return
	}

	if !settled.Success {
		r.failSubmission(owner, key, guard, fmt.Errorf("composite failed: %s", settled.Reason))
		outcome <- &Outcome{Settled: settled}
		return
	}

	// Chain state moved: drop the stale snapshot before anything can render
	r.inventory.Invalidate(owner)

	r.mu.Lock()
	r.highlights[survivingID] = r.clock.Now().Add(r.config.HighlightDuration)
	r.mu.Unlock()

	event := r.publish(ctx, &domain.GameEvent{
		EventType:     domain.GameEventCompositeSuccess,
		Chain:         r.gateway.Chain(),
		TokenID:       survivingID,
		BurnedTokenID: burnedID,
		Actor:         owner.Hex(),
		TxHash:        handle.Hash.Hex(),
	})

	r.mu.Lock()
	delete(r.inFlight, guard)
	if s, ok := r.sessions[owner]; ok && s.activeKey == key {
		s.selected = nil
		s.state = StateSuccess
		s.activeKey = ""
		s.lastError = ""
	}
	r.mu.Unlock()

	outcome <- &Outcome{Settled: settled, Event: event}
}

func (r *reconciler) Mint(ctx context.Context, owner common.Address, signer adapter.Signer) (*Submission, error) {
	guard := "mint:" + owner.Hex()

	r.mu.Lock()
	if r.inFlight[guard] {
		r.mu.Unlock()
		return nil, domain.ErrPairInFlight
	}
	r.inFlight[guard] = true
	r.mu.Unlock()

	request, err := r.buildMintRequest(ctx, owner)
	if err != nil {
		r.clearGuard(guard)
		return nil, err
	}

	handle, err := r.gateway.SimulateAndSend(ctx, request, signer)
	if err != nil {
		// A lost free-mint race surfaces here as a contract revert; it is an
		// ordinary failure, not an inconsistency
		r.clearGuard(guard)
		return nil, err
	}

	outcome := make(chan *Outcome, 1)
	go r.confirmMint(context.WithoutCancel(ctx), owner, guard, handle, outcome)

	return &Submission{Handle: handle, Outcome: outcome}, nil
}

// buildMintRequest routes between the free and paid mint paths
func (r *reconciler) buildMintRequest(ctx context.Context, owner common.Address) (chain.WriteRequest, error) {
	used, err := r.chainstate.HasUsedFreeMint(ctx, owner)
	if err != nil {
		return chain.WriteRequest{}, fmt.Errorf("failed to check free mint entitlement: %w", err)
	}

	if !used {
		return chain.FreeMintRequest(owner), nil
	}

	state, err := r.chainstate.State(ctx)
	if err != nil {
		return chain.WriteRequest{}, fmt.Errorf("failed to read mint price: %w", err)
	}

	return chain.MintRequest(owner, 1, state.MintPriceWei), nil
}

func (r *reconciler) confirmMint(ctx context.Context, owner common.Address, guard string, handle *domain.TxHandle, outcome chan<- *Outcome) {
	settled, err := r.tracker.AwaitSettlement(ctx, handle)
	r.clearGuard(guard)

	if err != nil {
		outcome <- &Outcome{Err: err}
		return
	}
	if !settled.Success {
		outcome <- &Outcome{Settled: settled}
		return
	}

	r.inventory.Invalidate(owner)

	var event *domain.GameEvent
	if tokenID, ok := mintedTokenID(settled.Receipt); ok {
		event = r.publish(ctx, &domain.GameEvent{
			EventType: domain.GameEventMintSuccess,
			Chain:     r.gateway.Chain(),
			TokenID:   tokenID,
			Actor:     owner.Hex(),
			TxHash:    handle.Hash.Hex(),
		})
	} else {
		logger.WarnCtx(ctx, "Mint receipt carries no transfer log",
			zap.String("txHash", handle.Hash.Hex()))
	}

	outcome <- &Outcome{Settled: settled, Event: event}
}

func (r *reconciler) ClaimPrize(ctx context.Context, owner common.Address, tokenID uint64, signer adapter.Signer) (*Submission, error) {
	guard := fmt.Sprintf("claim:%d", tokenID)

	r.mu.Lock()
	if r.inFlight[guard] {
		r.mu.Unlock()
		return nil, domain.ErrPairInFlight
	}
	r.inFlight[guard] = true
	r.mu.Unlock()

	handle, err := r.gateway.SimulateAndSend(ctx, chain.ClaimPrizeRequest(owner, tokenID), signer)
	if err != nil {
		r.clearGuard(guard)
		return nil, err
	}

	outcome := make(chan *Outcome, 1)
	go r.confirmClaim(context.WithoutCancel(ctx), owner, guard, tokenID, handle, outcome)

	return &Submission{Handle: handle, Outcome: outcome}, nil
}

func (r *reconciler) confirmClaim(ctx context.Context, owner common.Address, guard string, tokenID uint64, handle *domain.TxHandle, outcome chan<- *Outcome) {
	settled, err := r.tracker.AwaitSettlement(ctx, handle)
	r.clearGuard(guard)

	if err != nil {
		outcome <- &Outcome{Err: err}
		return
	}
	if !settled.Success {
		outcome <- &Outcome{Settled: settled}
		return
	}

	r.inventory.Invalidate(owner)

	// Announce the winner at most once per token, even if settlement is
	// observed again for the same claim. Latches beyond the retention window
	// are evicted so the map stays bounded in a long-running process.
	now := r.clock.Now()
	r.mu.Lock()
	for id, announcedAt := range r.announced {
		if now.Sub(announcedAt) >= announcedRetention {
			delete(r.announced, id)
		}
	}
	_, alreadyAnnounced := r.announced[tokenID]
	r.announced[tokenID] = now
	r.mu.Unlock()

	var event *domain.GameEvent
	if !alreadyAnnounced {
		event = r.publish(ctx, &domain.GameEvent{
			EventType: domain.GameEventClaimSuccess,
			Chain:     r.gateway.Chain(),
			TokenID:   tokenID,
			Actor:     owner.Hex(),
			Winner:    owner.Hex(),
			TxHash:    handle.Hash.Hex(),
		})
	}

	outcome <- &Outcome{Settled: settled, Event: event}
}

func (r *reconciler) IsHighlighted(tokenID uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	expiry, ok := r.highlights[tokenID]
	if !ok {
		return false
	}
	if !r.clock.Now().Before(expiry) {
		delete(r.highlights, tokenID)
		return false
	}
	return true
}

// publish dispatches a game event best effort; a broker failure never rolls
// back a confirmed on-chain success
func (r *reconciler) publish(ctx context.Context, event *domain.GameEvent) *domain.GameEvent {
	if err := r.publisher.PublishEvent(ctx, event); err != nil {
		logger.WarnCtx(ctx, "Failed to publish game event",
			zap.String("event_type", string(event.EventType)),
			zap.Uint64("token_id", event.TokenID),
			zap.Error(err))
		return nil
	}
	return event
}

// failSubmission clears the guard and moves the session into the retryable
// error state without touching the inventory
func (r *reconciler) failSubmission(owner common.Address, key domain.PairKey, guard string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.inFlight, guard)
	if s, ok := r.sessions[owner]; ok && s.activeKey == key {
		s.state = StateError
		s.activeKey = ""
		s.lastError = err.Error()
	}
}

func (r *reconciler) clearGuard(guard string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.inFlight, guard)
}

// mintedTokenID extracts the minted token id from the receipt's zero-address
// Transfer log
func mintedTokenID(receipt *types.Receipt) (uint64, bool) {
	if receipt == nil {
		return 0, false
	}
	for _, log := range receipt.Logs {
		if len(log.Topics) != 4 || log.Topics[0] != transferTopic {
			continue
		}
		from := common.BytesToAddress(log.Topics[1].Bytes())
		if from != common.HexToAddress(domain.ETHEREUM_ZERO_ADDRESS) {
			continue
		}
		return log.Topics[3].Big().Uint64(), true
	}
	return 0, false
}
