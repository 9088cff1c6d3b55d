package tracker_test

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warplabs/warps-engine/internal/domain"
	"github.com/warplabs/warps-engine/internal/logger"
	"github.com/warplabs/warps-engine/internal/mocks"
	"github.com/warplabs/warps-engine/internal/tracker"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	m.Run()
}

type testTrackerMocks struct {
	ctrl    *gomock.Controller
	client  *mocks.MockEthClient
	clock   *mocks.MockClock
	tracker tracker.Tracker
}

func setupTrackerTest(t *testing.T) *testTrackerMocks {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockEthClient(ctrl)
	clock := mocks.NewMockClock(ctrl)

	tr := tracker.NewTracker(client, clock, tracker.Config{
		PollInterval:      2 * time.Second,
		SettlementTimeout: 2 * time.Minute,
		MaxRPCRetries:     0,
	})

	return &testTrackerMocks{
		ctrl:    ctrl,
		client:  client,
		clock:   clock,
		tracker: tr,
	}
}

func (tm *testTrackerMocks) tearDownTest() {
	tm.ctrl.Finish()
}

// readyTick returns a receive-only channel that fires immediately so the
// poll loop does not block on the mocked clock.
func readyTick() <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- time.Time{}
	return ch
}

func testHandle() *domain.TxHandle {
	return &domain.TxHandle{
		Hash:      common.HexToHash("0xa3b1c2d3e4f5a6b7c8d9e0f1a2b3c4d5e6f7a8b9c0d1e2f3a4b5c6d7e8f9a0b1"),
		Submitted: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestAwaitSettlement_Confirmed(t *testing.T) {
	tm := setupTrackerTest(t)
	defer tm.tearDownTest()

	handle := testHandle()
	receipt := &types.Receipt{
		Status:      types.ReceiptStatusSuccessful,
		TxHash:      handle.Hash,
		BlockNumber: big.NewInt(12345),
	}

	tm.clock.EXPECT().Now().Return(time.Now())
	gomock.InOrder(
		tm.client.EXPECT().TransactionReceipt(gomock.Any(), handle.Hash).Return(nil, ethereum.NotFound),
		tm.client.EXPECT().TransactionReceipt(gomock.Any(), handle.Hash).Return(receipt, nil),
	)
	tm.client.EXPECT().TransactionByHash(gomock.Any(), handle.Hash).Return(nil, true, nil)
	tm.clock.EXPECT().Since(gomock.Any()).Return(10 * time.Second)
	tm.clock.EXPECT().After(2 * time.Second).Return(readyTick())

	settled, err := tm.tracker.AwaitSettlement(context.Background(), handle)
	require.NoError(t, err)
	assert.True(t, settled.Success)
	assert.Equal(t, receipt, settled.Receipt)
	assert.Empty(t, settled.Reason)
}

func TestAwaitSettlement_Reverted(t *testing.T) {
	tm := setupTrackerTest(t)
	defer tm.tearDownTest()

	handle := testHandle()
	receipt := &types.Receipt{
		Status:      types.ReceiptStatusFailed,
		TxHash:      handle.Hash,
		BlockNumber: big.NewInt(12345),
	}

	tm.clock.EXPECT().Now().Return(time.Now())
	tm.client.EXPECT().TransactionReceipt(gomock.Any(), handle.Hash).Return(receipt, nil)

	settled, err := tm.tracker.AwaitSettlement(context.Background(), handle)
	require.NoError(t, err)
	assert.False(t, settled.Success)
	assert.Equal(t, domain.FailureReverted, settled.Reason)
	assert.Equal(t, receipt, settled.Receipt)
}

func TestAwaitSettlement_Dropped(t *testing.T) {
	tm := setupTrackerTest(t)
	defer tm.tearDownTest()

	handle := testHandle()

	tm.clock.EXPECT().Now().Return(time.Now())
	tm.client.EXPECT().TransactionReceipt(gomock.Any(), handle.Hash).Return(nil, ethereum.NotFound)
	tm.client.EXPECT().TransactionByHash(gomock.Any(), handle.Hash).Return(nil, false, ethereum.NotFound)

	settled, err := tm.tracker.AwaitSettlement(context.Background(), handle)
	require.NoError(t, err)
	assert.False(t, settled.Success)
	assert.Equal(t, domain.FailureDropped, settled.Reason)
	assert.Nil(t, settled.Receipt)
}

func TestAwaitSettlement_Timeout(t *testing.T) {
	tm := setupTrackerTest(t)
	defer tm.tearDownTest()

	handle := testHandle()

	tm.clock.EXPECT().Now().Return(time.Now())
	tm.client.EXPECT().TransactionReceipt(gomock.Any(), handle.Hash).Return(nil, ethereum.NotFound)
	tm.client.EXPECT().TransactionByHash(gomock.Any(), handle.Hash).Return(nil, true, nil)
	tm.clock.EXPECT().Since(gomock.Any()).Return(3 * time.Minute)

	settled, err := tm.tracker.AwaitSettlement(context.Background(), handle)
	require.NoError(t, err)
	assert.False(t, settled.Success)
	assert.Equal(t, domain.FailureTimedOut, settled.Reason)
}

func TestAwaitSettlement_RPCErrorKeepsPolling(t *testing.T) {
	tm := setupTrackerTest(t)
	defer tm.tearDownTest()

	handle := testHandle()
	receipt := &types.Receipt{
		Status:      types.ReceiptStatusSuccessful,
		TxHash:      handle.Hash,
		BlockNumber: big.NewInt(777),
	}

	tm.clock.EXPECT().Now().Return(time.Now())
	gomock.InOrder(
		tm.client.EXPECT().TransactionReceipt(gomock.Any(), handle.Hash).Return(nil, errors.New("connection reset")),
		tm.client.EXPECT().TransactionReceipt(gomock.Any(), handle.Hash).Return(receipt, nil),
	)
	tm.clock.EXPECT().Since(gomock.Any()).Return(4 * time.Second)
	tm.clock.EXPECT().After(2 * time.Second).Return(readyTick())

	settled, err := tm.tracker.AwaitSettlement(context.Background(), handle)
	require.NoError(t, err)
	assert.True(t, settled.Success)
}

func TestAwaitSettlement_SecondAwaitFails(t *testing.T) {
	tm := setupTrackerTest(t)
	defer tm.tearDownTest()

	handle := testHandle()
	receipt := &types.Receipt{
		Status:      types.ReceiptStatusSuccessful,
		TxHash:      handle.Hash,
		BlockNumber: big.NewInt(100),
	}

	tm.clock.EXPECT().Now().Return(time.Now()).Times(2)
	tm.client.EXPECT().TransactionReceipt(gomock.Any(), handle.Hash).Return(receipt, nil)

	settled, err := tm.tracker.AwaitSettlement(context.Background(), handle)
	require.NoError(t, err)
	assert.True(t, settled.Success)

	settled, err = tm.tracker.AwaitSettlement(context.Background(), handle)
	assert.ErrorIs(t, err, domain.ErrAlreadySettled)
	assert.Nil(t, settled)
}

func TestAwaitSettlement_LatchEvictedAfterRetention(t *testing.T) {
	tm := setupTrackerTest(t)
	defer tm.tearDownTest()

	handle := testHandle()
	receipt := &types.Receipt{
		Status:      types.ReceiptStatusSuccessful,
		TxHash:      handle.Hash,
		BlockNumber: big.NewInt(100),
	}

	// The second await starts beyond twice the settlement timeout, so the
	// latch from the first has been evicted
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	gomock.InOrder(
		tm.clock.EXPECT().Now().Return(base),
		tm.clock.EXPECT().Now().Return(base.Add(5*time.Minute)),
	)
	tm.client.EXPECT().TransactionReceipt(gomock.Any(), handle.Hash).Return(receipt, nil).Times(2)

	settled, err := tm.tracker.AwaitSettlement(context.Background(), handle)
	require.NoError(t, err)
	assert.True(t, settled.Success)

	settled, err = tm.tracker.AwaitSettlement(context.Background(), handle)
	require.NoError(t, err)
	assert.True(t, settled.Success)
}

func TestAwaitSettlement_MinedBeforeReceiptIndexed(t *testing.T) {
	tm := setupTrackerTest(t)
	defer tm.tearDownTest()

	handle := testHandle()
	receipt := &types.Receipt{
		Status:      types.ReceiptStatusSuccessful,
		TxHash:      handle.Hash,
		BlockNumber: big.NewInt(54321),
	}

	tm.clock.EXPECT().Now().Return(time.Now())
	gomock.InOrder(
		tm.client.EXPECT().TransactionReceipt(gomock.Any(), handle.Hash).Return(nil, ethereum.NotFound),
		tm.client.EXPECT().TransactionReceipt(gomock.Any(), handle.Hash).Return(receipt, nil),
	)
	// Already mined, receipt index lagging: not pending, not an error
	tm.client.EXPECT().TransactionByHash(gomock.Any(), handle.Hash).Return(nil, false, nil)
	tm.clock.EXPECT().Since(gomock.Any()).Return(10 * time.Second)
	tm.clock.EXPECT().After(2 * time.Second).Return(readyTick())

	settled, err := tm.tracker.AwaitSettlement(context.Background(), handle)
	require.NoError(t, err)
	assert.True(t, settled.Success)
	assert.Equal(t, receipt, settled.Receipt)
}

func TestAwaitSettlement_ContextCanceled(t *testing.T) {
	tm := setupTrackerTest(t)
	defer tm.tearDownTest()

	handle := testHandle()
	ctx, cancel := context.WithCancel(context.Background())

	tm.clock.EXPECT().Now().Return(time.Now())
	tm.client.EXPECT().TransactionReceipt(gomock.Any(), handle.Hash).Return(nil, ethereum.NotFound)
	tm.client.EXPECT().TransactionByHash(gomock.Any(), handle.Hash).Return(nil, true, nil)
	tm.clock.EXPECT().Since(gomock.Any()).Return(time.Second)
	tm.clock.EXPECT().After(2 * time.Second).DoAndReturn(func(time.Duration) <-chan time.Time {
		cancel()
		return make(chan time.Time)
	})

	settled, err := tm.tracker.AwaitSettlement(ctx, handle)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, settled)
}
