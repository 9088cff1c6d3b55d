package reconciler_test

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warplabs/warps-engine/internal/chain"
	"github.com/warplabs/warps-engine/internal/chainstate"
	"github.com/warplabs/warps-engine/internal/domain"
	"github.com/warplabs/warps-engine/internal/logger"
	"github.com/warplabs/warps-engine/internal/mocks"

	. "github.com/warplabs/warps-engine/internal/reconciler"
)

var (
	testOwner      = common.HexToAddress("0x3963a90146Db1e0Cd8F5b52dE758dD5b3aB9Aa49")
	testOtherOwner = common.HexToAddress("0x8ba1f109551bD432803012645Ac136ddd64DBA72")
	testHash       = common.HexToHash("0x88df016429689c079f3b2f6ad39fa052532c56795b733da78a91ebe6a713944b")
)

func TestMain(m *testing.M) {
	logger.Initialize(logger.Config{Debug: false})
	m.Run()
}

type testReconcilerMocks struct {
	ctrl       *gomock.Controller
	gateway    *mocks.MockGateway
	tracker    *mocks.MockTracker
	inventory  *mocks.MockInventory
	chainstate *mocks.MockChainStateProvider
	publisher  *mocks.MockPublisher
	clock      *mocks.MockClock
	signer     *mocks.MockSigner
	reconciler Reconciler
}

func setupReconcilerTest(t *testing.T) *testReconcilerMocks {
	ctrl := gomock.NewController(t)
	gateway := mocks.NewMockGateway(ctrl)
	tr := mocks.NewMockTracker(ctrl)
	inv := mocks.NewMockInventory(ctrl)
	cs := mocks.NewMockChainStateProvider(ctrl)
	publisher := mocks.NewMockPublisher(ctrl)
	clock := mocks.NewMockClock(ctrl)
	signer := mocks.NewMockSigner(ctrl)

	r := NewReconciler(Config{
		HighlightDuration: 12 * time.Second,
	}, gateway, tr, inv, cs, publisher, clock)

	return &testReconcilerMocks{
		ctrl:       ctrl,
		gateway:    gateway,
		tracker:    tr,
		inventory:  inv,
		chainstate: cs,
		publisher:  publisher,
		clock:      clock,
		signer:     signer,
		reconciler: r,
	}
}

func (tm *testReconcilerMocks) tearDownTest() {
	tm.ctrl.Finish()
}

func warpToken(id uint64, warpCount string) *domain.Token {
	return &domain.Token{
		ID:        id,
		WarpCount: warpCount,
		Color:     "blue",
	}
}

func confirmedSettlement() *domain.Settled {
	return &domain.Settled{
		Success: true,
		Receipt: &types.Receipt{Status: types.ReceiptStatusSuccessful},
	}
}

func testHandle() *domain.TxHandle {
	return &domain.TxHandle{Hash: testHash}
}

// pairUp drives a session to the paired state
func pairUp(t *testing.T, tm *testReconcilerMocks, owner common.Address, a, b *domain.Token) {
	_, err := tm.reconciler.Select(owner, a)
	require.NoError(t, err)
	snapshot, err := tm.reconciler.Select(owner, b)
	require.NoError(t, err)
	require.Equal(t, StatePaired, snapshot.State)
}

func TestSelect_SingleWarpTokenRejected(t *testing.T) {
	tm := setupReconcilerTest(t)
	defer tm.tearDownTest()

	snapshot, err := tm.reconciler.Select(testOwner, warpToken(5, "1"))
	assert.ErrorIs(t, err, domain.ErrSingleWarpSelection)
	assert.Equal(t, StateIdle, snapshot.State)
	assert.Empty(t, snapshot.Selected)
}

func TestSelect_FirstToken(t *testing.T) {
	tm := setupReconcilerTest(t)
	defer tm.tearDownTest()

	snapshot, err := tm.reconciler.Select(testOwner, warpToken(5, "4"))
	require.NoError(t, err)
	assert.Equal(t, StateSelecting, snapshot.State)
	assert.Equal(t, []uint64{5}, snapshot.Selected)
}

func TestSelect_SameTokenTwiceClears(t *testing.T) {
	tm := setupReconcilerTest(t)
	defer tm.tearDownTest()

	token := warpToken(5, "4")
	_, err := tm.reconciler.Select(testOwner, token)
	require.NoError(t, err)

	snapshot, err := tm.reconciler.Select(testOwner, token)
	require.NoError(t, err)
	assert.Equal(t, StateIdle, snapshot.State)
	assert.Empty(t, snapshot.Selected)
}

func TestSelect_MismatchedWarpCountReplacesSelection(t *testing.T) {
	tm := setupReconcilerTest(t)
	defer tm.tearDownTest()

	_, err := tm.reconciler.Select(testOwner, warpToken(5, "4"))
	require.NoError(t, err)

	snapshot, err := tm.reconciler.Select(testOwner, warpToken(9, "2"))
	assert.ErrorIs(t, err, domain.ErrMismatchedWarpCount)
	assert.Equal(t, StateSelecting, snapshot.State)
	// The rejected second pick becomes the sole selection
	assert.Equal(t, []uint64{9}, snapshot.Selected)
}

func TestSelect_MatchingPair(t *testing.T) {
	tm := setupReconcilerTest(t)
	defer tm.tearDownTest()

	_, err := tm.reconciler.Select(testOwner, warpToken(5, "4"))
	require.NoError(t, err)

	snapshot, err := tm.reconciler.Select(testOwner, warpToken(9, "4"))
	require.NoError(t, err)
	assert.Equal(t, StatePaired, snapshot.State)
	assert.Equal(t, []uint64{5, 9}, snapshot.Selected)
}

func TestSubmitComposite_NoPairSelected(t *testing.T) {
	tm := setupReconcilerTest(t)
	defer tm.tearDownTest()

	_, err := tm.reconciler.SubmitComposite(context.Background(), testOwner, tm.signer)
	assert.ErrorIs(t, err, ErrNoPairSelected)
}

func TestSubmitComposite_Success(t *testing.T) {
	tm := setupReconcilerTest(t)
	defer tm.tearDownTest()

	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	pairUp(t, tm, testOwner, warpToken(5, "4"), warpToken(9, "4"))

	tm.gateway.EXPECT().
		SimulateAndSend(gomock.Any(), chain.CompositeWriteRequest(testOwner, 5, 9), tm.signer).
		Return(testHandle(), nil)
	tm.gateway.EXPECT().Chain().Return(domain.ChainBaseSepolia)
	tm.tracker.EXPECT().
		AwaitSettlement(gomock.Any(), testHandle()).
		Return(confirmedSettlement(), nil)

	// Success side effects run in strict order: invalidate, highlight,
	// publish
	gomock.InOrder(
		tm.inventory.EXPECT().Invalidate(testOwner),
		tm.clock.EXPECT().Now().Return(now),
		tm.publisher.EXPECT().
			PublishEvent(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, event *domain.GameEvent) error {
				assert.Equal(t, domain.GameEventCompositeSuccess, event.EventType)
				assert.Equal(t, uint64(5), event.TokenID)
				assert.Equal(t, uint64(9), event.BurnedTokenID)
				assert.Equal(t, testOwner.Hex(), event.Actor)
				assert.Equal(t, testHash.Hex(), event.TxHash)
				return nil
			}),
	)

	submission, err := tm.reconciler.SubmitComposite(ctx, testOwner, tm.signer)
	require.NoError(t, err)
	require.NotNil(t, submission.Handle)

	outcome := <-submission.Outcome
	require.NoError(t, outcome.Err)
	assert.True(t, outcome.Settled.Success)
	require.NotNil(t, outcome.Event)

	snapshot := tm.reconciler.Session(testOwner)
	assert.Equal(t, StateSuccess, snapshot.State)
	assert.Empty(t, snapshot.Selected)

	// The surviving token is highlighted inside the 12s window
	tm.clock.EXPECT().Now().Return(now.Add(5 * time.Second))
	assert.True(t, tm.reconciler.IsHighlighted(5))

	tm.clock.EXPECT().Now().Return(now.Add(13 * time.Second))
	assert.False(t, tm.reconciler.IsHighlighted(5))
}

func TestSubmitComposite_RevertedLeavesInventoryUntouched(t *testing.T) {
	tm := setupReconcilerTest(t)
	defer tm.tearDownTest()

	ctx := context.Background()
	pairUp(t, tm, testOwner, warpToken(5, "4"), warpToken(9, "4"))

	tm.gateway.EXPECT().
		SimulateAndSend(gomock.Any(), gomock.Any(), tm.signer).
		Return(testHandle(), nil)
	tm.tracker.EXPECT().
		AwaitSettlement(gomock.Any(), testHandle()).
		Return(&domain.Settled{Success: false, Reason: domain.FailureReverted}, nil)

	// No Invalidate, no highlight, no publish: chain state did not change

	submission, err := tm.reconciler.SubmitComposite(ctx, testOwner, tm.signer)
	require.NoError(t, err)

	outcome := <-submission.Outcome
	require.NoError(t, outcome.Err)
	assert.False(t, outcome.Settled.Success)
	assert.Equal(t, domain.FailureReverted, outcome.Settled.Reason)
	assert.Nil(t, outcome.Event)

	snapshot := tm.reconciler.Session(testOwner)
	assert.Equal(t, StateError, snapshot.State)
	assert.Contains(t, snapshot.LastError, "reverted")
}

func TestSubmitComposite_SimulationRevert(t *testing.T) {
	tm := setupReconcilerTest(t)
	defer tm.tearDownTest()

	ctx := context.Background()
	pairUp(t, tm, testOwner, warpToken(5, "4"), warpToken(9, "4"))

	revertErr := domain.NewSimulationRevertError("composite", "ERC721__TokenNotOwned")
	tm.gateway.EXPECT().
		SimulateAndSend(gomock.Any(), gomock.Any(), tm.signer).
		Return(nil, revertErr)

	_, err := tm.reconciler.SubmitComposite(ctx, testOwner, tm.signer)
	assert.ErrorContains(t, err, "ERC721__TokenNotOwned")

	snapshot := tm.reconciler.Session(testOwner)
	assert.Equal(t, StateError, snapshot.State)

	// The guard is cleared: re-pairing and resubmitting works
	pairUp(t, tm, testOwner, warpToken(5, "4"), warpToken(9, "4"))
	tm.gateway.EXPECT().
		SimulateAndSend(gomock.Any(), gomock.Any(), tm.signer).
		Return(testHandle(), nil)
	tm.gateway.EXPECT().Chain().Return(domain.ChainBaseSepolia)
	tm.tracker.EXPECT().
		AwaitSettlement(gomock.Any(), testHandle()).
		Return(confirmedSettlement(), nil)
	tm.inventory.EXPECT().Invalidate(testOwner)
	tm.clock.EXPECT().Now().Return(time.Now())
	tm.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).Return(nil)

	submission, err := tm.reconciler.SubmitComposite(ctx, testOwner, tm.signer)
	require.NoError(t, err)
	<-submission.Outcome
}

func TestSubmitComposite_PairInFlight(t *testing.T) {
	tm := setupReconcilerTest(t)
	defer tm.tearDownTest()

	ctx := context.Background()
	pairUp(t, tm, testOwner, warpToken(5, "4"), warpToken(9, "4"))
	// Another player pairs the same tokens in reverse order
	pairUp(t, tm, testOtherOwner, warpToken(9, "4"), warpToken(5, "4"))

	settle := make(chan struct{})
	tm.gateway.EXPECT().
		SimulateAndSend(gomock.Any(), gomock.Any(), tm.signer).
		Return(testHandle(), nil)
	tm.gateway.EXPECT().Chain().Return(domain.ChainBaseSepolia)
	tm.tracker.EXPECT().
		AwaitSettlement(gomock.Any(), testHandle()).
		DoAndReturn(func(context.Context, *domain.TxHandle) (*domain.Settled, error) {
			<-settle
			return confirmedSettlement(), nil
		})
	tm.inventory.EXPECT().Invalidate(testOwner)
	tm.clock.EXPECT().Now().Return(time.Now())
	tm.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).Return(nil)

	submission, err := tm.reconciler.SubmitComposite(ctx, testOwner, tm.signer)
	require.NoError(t, err)

	// The unordered pair key blocks the duplicate while the first is live
	_, err = tm.reconciler.SubmitComposite(ctx, testOtherOwner, tm.signer)
	assert.ErrorIs(t, err, domain.ErrPairInFlight)

	close(settle)
	<-submission.Outcome
}

func TestSubmitComposite_DetachKeepsTracking(t *testing.T) {
	tm := setupReconcilerTest(t)
	defer tm.tearDownTest()

	ctx := context.Background()
	pairUp(t, tm, testOwner, warpToken(5, "4"), warpToken(9, "4"))

	settle := make(chan struct{})
	tm.gateway.EXPECT().
		SimulateAndSend(gomock.Any(), gomock.Any(), tm.signer).
		Return(testHandle(), nil)
	tm.gateway.EXPECT().Chain().Return(domain.ChainBaseSepolia)
	tm.tracker.EXPECT().
		AwaitSettlement(gomock.Any(), testHandle()).
		DoAndReturn(func(context.Context, *domain.TxHandle) (*domain.Settled, error) {
			<-settle
			return confirmedSettlement(), nil
		})
	tm.inventory.EXPECT().Invalidate(testOwner)
	tm.clock.EXPECT().Now().Return(time.Now())
	tm.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).Return(nil)

	submission, err := tm.reconciler.SubmitComposite(ctx, testOwner, tm.signer)
	require.NoError(t, err)

	// The player closes the confirmation UI before settlement
	tm.reconciler.Detach(testOwner)
	assert.Equal(t, StateIdle, tm.reconciler.Session(testOwner).State)

	close(settle)
	outcome := <-submission.Outcome
	require.NoError(t, outcome.Err)
	assert.True(t, outcome.Settled.Success)

	// Side effects still ran, but the detached session is left alone
	assert.Equal(t, StateIdle, tm.reconciler.Session(testOwner).State)
}

func TestSubmitComposite_PublishFailureDoesNotRollBack(t *testing.T) {
	tm := setupReconcilerTest(t)
	defer tm.tearDownTest()

	ctx := context.Background()
	pairUp(t, tm, testOwner, warpToken(5, "4"), warpToken(9, "4"))

	tm.gateway.EXPECT().
		SimulateAndSend(gomock.Any(), gomock.Any(), tm.signer).
		Return(testHandle(), nil)
	tm.gateway.EXPECT().Chain().Return(domain.ChainBaseSepolia)
	tm.tracker.EXPECT().
		AwaitSettlement(gomock.Any(), testHandle()).
		Return(confirmedSettlement(), nil)
	tm.inventory.EXPECT().Invalidate(testOwner)
	tm.clock.EXPECT().Now().Return(time.Now())
	tm.publisher.EXPECT().
		PublishEvent(gomock.Any(), gomock.Any()).
		Return(assert.AnError)

	submission, err := tm.reconciler.SubmitComposite(ctx, testOwner, tm.signer)
	require.NoError(t, err)

	outcome := <-submission.Outcome
	require.NoError(t, outcome.Err)
	assert.True(t, outcome.Settled.Success)
	assert.Nil(t, outcome.Event)

	// The confirmed composite stays a success
	assert.Equal(t, StateSuccess, tm.reconciler.Session(testOwner).State)
}

func TestMint_FreeMintPath(t *testing.T) {
	tm := setupReconcilerTest(t)
	defer tm.tearDownTest()

	ctx := context.Background()

	tm.chainstate.EXPECT().
		HasUsedFreeMint(gomock.Any(), testOwner).
		Return(false, nil)
	tm.gateway.EXPECT().
		SimulateAndSend(gomock.Any(), chain.FreeMintRequest(testOwner), tm.signer).
		Return(testHandle(), nil)
	tm.gateway.EXPECT().Chain().Return(domain.ChainBaseSepolia)
	tm.tracker.EXPECT().
		AwaitSettlement(gomock.Any(), testHandle()).
		Return(&domain.Settled{Success: true, Receipt: mintReceipt(77)}, nil)
	tm.inventory.EXPECT().Invalidate(testOwner)
	tm.publisher.EXPECT().
		PublishEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event *domain.GameEvent) error {
			assert.Equal(t, domain.GameEventMintSuccess, event.EventType)
			assert.Equal(t, uint64(77), event.TokenID)
			assert.Equal(t, testOwner.Hex(), event.Actor)
			return nil
		})

	submission, err := tm.reconciler.Mint(ctx, testOwner, tm.signer)
	require.NoError(t, err)

	outcome := <-submission.Outcome
	require.NoError(t, outcome.Err)
	assert.True(t, outcome.Settled.Success)
	require.NotNil(t, outcome.Event)
}

func TestMint_PaidMintPath(t *testing.T) {
	tm := setupReconcilerTest(t)
	defer tm.tearDownTest()

	ctx := context.Background()
	price := big.NewInt(1_000_000_000_000_000)

	tm.chainstate.EXPECT().
		HasUsedFreeMint(gomock.Any(), testOwner).
		Return(true, nil)
	tm.chainstate.EXPECT().
		State(gomock.Any()).
		Return(&chainstate.Snapshot{MintPriceWei: price}, nil)
	tm.gateway.EXPECT().
		SimulateAndSend(gomock.Any(), chain.MintRequest(testOwner, 1, price), tm.signer).
		Return(testHandle(), nil)
	tm.gateway.EXPECT().Chain().Return(domain.ChainBaseSepolia)
	tm.tracker.EXPECT().
		AwaitSettlement(gomock.Any(), testHandle()).
		Return(&domain.Settled{Success: true, Receipt: mintReceipt(78)}, nil)
	tm.inventory.EXPECT().Invalidate(testOwner)
	tm.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).Return(nil)

	submission, err := tm.reconciler.Mint(ctx, testOwner, tm.signer)
	require.NoError(t, err)
	<-submission.Outcome
}

func TestMint_LostFreeMintRace(t *testing.T) {
	tm := setupReconcilerTest(t)
	defer tm.tearDownTest()

	ctx := context.Background()

	// The cached entitlement says free, but someone spent it: the contract
	// revert surfaces as an ordinary error
	tm.chainstate.EXPECT().
		HasUsedFreeMint(gomock.Any(), testOwner).
		Return(false, nil)
	tm.gateway.EXPECT().
		SimulateAndSend(gomock.Any(), chain.FreeMintRequest(testOwner), tm.signer).
		Return(nil, domain.NewSimulationRevertError("freeMint", "Warps__FreeMintUsed"))

	_, err := tm.reconciler.Mint(ctx, testOwner, tm.signer)
	assert.ErrorContains(t, err, "Warps__FreeMintUsed")

	// The guard is released for a retry
	tm.chainstate.EXPECT().
		HasUsedFreeMint(gomock.Any(), testOwner).
		Return(true, assert.AnError)
	_, err = tm.reconciler.Mint(ctx, testOwner, tm.signer)
	assert.ErrorContains(t, err, "failed to check free mint entitlement")
}

func TestClaimPrize_AnnouncesWinnerOnce(t *testing.T) {
	tm := setupReconcilerTest(t)
	defer tm.tearDownTest()

	ctx := context.Background()

	tm.gateway.EXPECT().
		SimulateAndSend(gomock.Any(), chain.ClaimPrizeRequest(testOwner, 42), tm.signer).
		Return(testHandle(), nil).
		Times(2)
	tm.gateway.EXPECT().Chain().Return(domain.ChainBaseSepolia)
	tm.tracker.EXPECT().
		AwaitSettlement(gomock.Any(), testHandle()).
		Return(confirmedSettlement(), nil).
		Times(2)
	tm.inventory.EXPECT().Invalidate(testOwner).Times(2)
	tm.clock.EXPECT().Now().Return(time.Now()).Times(2)

	// Exactly one announcement for token 42, even across repeated successes
	tm.publisher.EXPECT().
		PublishEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event *domain.GameEvent) error {
			assert.Equal(t, domain.GameEventClaimSuccess, event.EventType)
			assert.Equal(t, uint64(42), event.TokenID)
			assert.Equal(t, testOwner.Hex(), event.Winner)
			assert.Equal(t, testOwner.Hex(), event.Actor)
			return nil
		})

	submission, err := tm.reconciler.ClaimPrize(ctx, testOwner, 42, tm.signer)
	require.NoError(t, err)
	outcome := <-submission.Outcome
	require.NotNil(t, outcome.Event)

	submission, err = tm.reconciler.ClaimPrize(ctx, testOwner, 42, tm.signer)
	require.NoError(t, err)
	outcome = <-submission.Outcome
	assert.True(t, outcome.Settled.Success)
	assert.Nil(t, outcome.Event)
}

func TestClaimPrize_GuardWhileInFlight(t *testing.T) {
	tm := setupReconcilerTest(t)
	defer tm.tearDownTest()

	ctx := context.Background()
	settle := make(chan struct{})

	tm.gateway.EXPECT().
		SimulateAndSend(gomock.Any(), gomock.Any(), tm.signer).
		Return(testHandle(), nil)
	tm.gateway.EXPECT().Chain().Return(domain.ChainBaseSepolia)
	tm.tracker.EXPECT().
		AwaitSettlement(gomock.Any(), testHandle()).
		DoAndReturn(func(context.Context, *domain.TxHandle) (*domain.Settled, error) {
			<-settle
			return confirmedSettlement(), nil
		})
	tm.inventory.EXPECT().Invalidate(testOwner)
	tm.clock.EXPECT().Now().Return(time.Now())
	tm.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).Return(nil)

	submission, err := tm.reconciler.ClaimPrize(ctx, testOwner, 42, tm.signer)
	require.NoError(t, err)

	_, err = tm.reconciler.ClaimPrize(ctx, testOwner, 42, tm.signer)
	assert.ErrorIs(t, err, domain.ErrPairInFlight)

	close(settle)
	<-submission.Outcome
}

func TestClaimPrize_AnnouncementLatchExpires(t *testing.T) {
	tm := setupReconcilerTest(t)
	defer tm.tearDownTest()

	ctx := context.Background()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tm.gateway.EXPECT().
		SimulateAndSend(gomock.Any(), chain.ClaimPrizeRequest(testOwner, 42), tm.signer).
		Return(testHandle(), nil).
		Times(2)
	tm.gateway.EXPECT().Chain().Return(domain.ChainBaseSepolia).Times(2)
	tm.tracker.EXPECT().
		AwaitSettlement(gomock.Any(), testHandle()).
		Return(confirmedSettlement(), nil).
		Times(2)
	tm.inventory.EXPECT().Invalidate(testOwner).Times(2)

	// The second settlement lands past the latch retention window, so the
	// claim is announced again
	gomock.InOrder(
		tm.clock.EXPECT().Now().Return(base),
		tm.clock.EXPECT().Now().Return(base.Add(25*time.Hour)),
	)
	tm.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	submission, err := tm.reconciler.ClaimPrize(ctx, testOwner, 42, tm.signer)
	require.NoError(t, err)
	outcome := <-submission.Outcome
	require.NotNil(t, outcome.Event)

	submission, err = tm.reconciler.ClaimPrize(ctx, testOwner, 42, tm.signer)
	require.NoError(t, err)
	outcome = <-submission.Outcome
	require.NotNil(t, outcome.Event)
}

// mintReceipt builds a receipt carrying a zero-address Transfer log for the
// minted token
func mintReceipt(tokenID uint64) *types.Receipt {
	return &types.Receipt{
		Status: types.ReceiptStatusSuccessful,
		Logs: []*types.Log{{
			Topics: []common.Hash{
				TransferTopic,
				common.BytesToHash(common.Address{}.Bytes()),
				common.BytesToHash(testOwner.Bytes()),
				common.BigToHash(new(big.Int).SetUint64(tokenID)),
			},
		}},
	}
}
