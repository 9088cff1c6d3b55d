package chainstate_test

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warplabs/warps-engine/internal/chainstate"
	"github.com/warplabs/warps-engine/internal/logger"
	"github.com/warplabs/warps-engine/internal/mocks"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	m.Run()
}

type testProviderMocks struct {
	ctrl     *gomock.Controller
	gateway  *mocks.MockGateway
	clock    *mocks.MockClock
	provider chainstate.Provider
}

func setupProviderTest(t *testing.T) *testProviderMocks {
	ctrl := gomock.NewController(t)
	gateway := mocks.NewMockGateway(ctrl)
	clock := mocks.NewMockClock(ctrl)

	provider := chainstate.NewProvider(gateway, chainstate.Config{
		TTL:         30 * time.Second,
		StaleWindow: 5 * time.Minute,
	}, clock)

	return &testProviderMocks{
		ctrl:     ctrl,
		gateway:  gateway,
		clock:    clock,
		provider: provider,
	}
}

func (tm *testProviderMocks) tearDownTest() {
	tm.ctrl.Finish()
}

func (tm *testProviderMocks) expectSnapshotFetch(color string, poolWei int64) {
	tm.gateway.EXPECT().CurrentWinningColor(gomock.Any()).Return(color, nil)
	tm.gateway.EXPECT().AvailablePrizePool(gomock.Any()).Return(big.NewInt(poolWei), nil)
	tm.gateway.EXPECT().WinnerClaimPercentage(gomock.Any()).Return(uint64(60), nil)
	tm.gateway.EXPECT().MintPrice(gomock.Any()).Return(big.NewInt(1_000_000_000_000_000), nil)
}

func TestState_FetchesOnFirstCall(t *testing.T) {
	tm := setupProviderTest(t)
	defer tm.tearDownTest()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tm.clock.EXPECT().Now().Return(now)
	tm.expectSnapshotFetch("#018A08", 5_000_000_000_000_000)

	snapshot, err := tm.provider.State(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "#018A08", snapshot.WinningColor)
	assert.Equal(t, int64(5_000_000_000_000_000), snapshot.PrizePoolWei.Int64())
	assert.Equal(t, uint64(60), snapshot.ClaimPercentage)
	assert.Equal(t, now, snapshot.FetchedAt)
}

func TestState_ServesCacheWithinTTL(t *testing.T) {
	tm := setupProviderTest(t)
	defer tm.tearDownTest()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tm.clock.EXPECT().Now().Return(now)
	tm.expectSnapshotFetch("#018A08", 100)

	first, err := tm.provider.State(context.Background())
	require.NoError(t, err)

	// Second call within the TTL must not touch the gateway
	tm.clock.EXPECT().Now().Return(now.Add(10 * time.Second))
	second, err := tm.provider.State(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestState_RefreshesAfterTTL(t *testing.T) {
	tm := setupProviderTest(t)
	defer tm.tearDownTest()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tm.clock.EXPECT().Now().Return(now)
	tm.expectSnapshotFetch("#018A08", 100)

	_, err := tm.provider.State(context.Background())
	require.NoError(t, err)

	later := now.Add(45 * time.Second)
	tm.clock.EXPECT().Now().Return(later)
	tm.expectSnapshotFetch("#DB2F2F", 200)

	snapshot, err := tm.provider.State(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "#DB2F2F", snapshot.WinningColor)
	assert.Equal(t, later, snapshot.FetchedAt)
}

func TestState_StaleFallbackOnRefreshFailure(t *testing.T) {
	tm := setupProviderTest(t)
	defer tm.tearDownTest()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tm.clock.EXPECT().Now().Return(now)
	tm.expectSnapshotFetch("#018A08", 100)

	first, err := tm.provider.State(context.Background())
	require.NoError(t, err)

	// Past the TTL but inside the stale window; a failed refresh falls back
	tm.clock.EXPECT().Now().Return(now.Add(2 * time.Minute))
	tm.gateway.EXPECT().CurrentWinningColor(gomock.Any()).Return("", errors.New("rpc unavailable"))

	second, err := tm.provider.State(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestState_ErrorBeyondStaleWindow(t *testing.T) {
	tm := setupProviderTest(t)
	defer tm.tearDownTest()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tm.clock.EXPECT().Now().Return(now)
	tm.expectSnapshotFetch("#018A08", 100)

	_, err := tm.provider.State(context.Background())
	require.NoError(t, err)

	tm.clock.EXPECT().Now().Return(now.Add(10 * time.Minute))
	tm.gateway.EXPECT().CurrentWinningColor(gomock.Any()).Return("", errors.New("rpc unavailable"))

	snapshot, err := tm.provider.State(context.Background())
	assert.Error(t, err)
	assert.Nil(t, snapshot)
}

func TestState_ErrorWithoutCache(t *testing.T) {
	tm := setupProviderTest(t)
	defer tm.tearDownTest()

	tm.clock.EXPECT().Now().Return(time.Now())
	tm.gateway.EXPECT().CurrentWinningColor(gomock.Any()).Return("", errors.New("rpc unavailable"))

	snapshot, err := tm.provider.State(context.Background())
	assert.Error(t, err)
	assert.Nil(t, snapshot)
}

func TestHasUsedFreeMint_CachesPerAddress(t *testing.T) {
	tm := setupProviderTest(t)
	defer tm.tearDownTest()

	alice := common.HexToAddress("0x396343362be2A4dA1cE0C1C210945346fb82Aa49")
	bob := common.HexToAddress("0x8888f1f195afa192cfee860698584c030f4c9db1")
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tm.clock.EXPECT().Now().Return(now)
	tm.gateway.EXPECT().HasUsedFreeMint(gomock.Any(), alice).Return(true, nil)

	used, err := tm.provider.HasUsedFreeMint(context.Background(), alice)
	require.NoError(t, err)
	assert.True(t, used)

	// Cached for alice, fresh fetch for bob
	tm.clock.EXPECT().Now().Return(now.Add(5 * time.Second))
	used, err = tm.provider.HasUsedFreeMint(context.Background(), alice)
	require.NoError(t, err)
	assert.True(t, used)

	tm.clock.EXPECT().Now().Return(now.Add(5 * time.Second))
	tm.gateway.EXPECT().HasUsedFreeMint(gomock.Any(), bob).Return(false, nil)

	used, err = tm.provider.HasUsedFreeMint(context.Background(), bob)
	require.NoError(t, err)
	assert.False(t, used)
}

func TestHasUsedFreeMint_StaleFallback(t *testing.T) {
	tm := setupProviderTest(t)
	defer tm.tearDownTest()

	alice := common.HexToAddress("0x396343362be2A4dA1cE0C1C210945346fb82Aa49")
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tm.clock.EXPECT().Now().Return(now)
	tm.gateway.EXPECT().HasUsedFreeMint(gomock.Any(), alice).Return(true, nil)

	_, err := tm.provider.HasUsedFreeMint(context.Background(), alice)
	require.NoError(t, err)

	tm.clock.EXPECT().Now().Return(now.Add(2 * time.Minute))
	tm.gateway.EXPECT().HasUsedFreeMint(gomock.Any(), alice).Return(false, errors.New("rpc unavailable"))

	used, err := tm.provider.HasUsedFreeMint(context.Background(), alice)
	require.NoError(t, err)
	assert.True(t, used)
}

func TestState_ConcurrentAccess(t *testing.T) {
	tm := setupProviderTest(t)
	defer tm.tearDownTest()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tm.clock.EXPECT().Now().Return(now)
	tm.expectSnapshotFetch("#018A08", 100)

	_, err := tm.provider.State(context.Background())
	require.NoError(t, err)

	tm.clock.EXPECT().Now().Return(now.Add(time.Second)).Times(10)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snapshot, err := tm.provider.State(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, "#018A08", snapshot.WinningColor)
		}()
	}
	wg.Wait()
}
