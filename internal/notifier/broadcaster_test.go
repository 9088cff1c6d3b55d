package notifier_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warplabs/warps-engine/internal/adapter"
	"github.com/warplabs/warps-engine/internal/logger"
	"github.com/warplabs/warps-engine/internal/mocks"

	. "github.com/warplabs/warps-engine/internal/notifier"
)

func TestMain(m *testing.M) {
	logger.Initialize(logger.Config{Debug: false})
	m.Run()
}

type testBroadcasterMocks struct {
	ctrl        *gomock.Controller
	http        *mocks.MockHTTPClient
	clock       *mocks.MockClock
	broadcaster Broadcaster
}

func setupBroadcasterTest(t *testing.T) *testBroadcasterMocks {
	ctrl := gomock.NewController(t)
	httpClient := mocks.NewMockHTTPClient(ctrl)
	clock := mocks.NewMockClock(ctrl)

	b := NewBroadcaster(Config{
		BatchSize:       100,
		InterBatchDelay: time.Second,
		WorkerPoolSize:  4,
		WorkerQueueSize: 64,
	}, httpClient, adapter.NewJSON(), clock)

	return &testBroadcasterMocks{
		ctrl:        ctrl,
		http:        httpClient,
		clock:       clock,
		broadcaster: b,
	}
}

func (tm *testBroadcasterMocks) tearDownTest() {
	tm.ctrl.Finish()
}

func makeTokens(prefix string, n int) []string {
	tokens := make([]string, n)
	for i := range n {
		tokens[i] = fmt.Sprintf("%s-%03d", prefix, i)
	}
	return tokens
}

// jsonResponse builds a channel delivery response echoing the verdicts
func jsonResponse(t *testing.T, statusCode int, successful, invalid, rateLimited []string) *http.Response {
	body := map[string]interface{}{
		"result": map[string]interface{}{
			"successfulTokens":  successful,
			"invalidTokens":     invalid,
			"rateLimitedTokens": rateLimited,
		},
	}
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	return &http.Response{
		StatusCode: statusCode,
		Body:       io.NopCloser(bytes.NewReader(payload)),
	}
}

// decodeDeliveredTokens parses the tokens out of a delivery request body
func decodeDeliveredTokens(t *testing.T, body io.Reader) []string {
	raw, err := io.ReadAll(body)
	require.NoError(t, err)

	var request struct {
		NotificationID string   `json:"notificationId"`
		Title          string   `json:"title"`
		Tokens         []string `json:"tokens"`
	}
	require.NoError(t, json.Unmarshal(raw, &request))
	assert.NotEmpty(t, request.NotificationID)
	return request.Tokens
}

func TestBroadcast_ChunksIntoBatches(t *testing.T) {
	tm := setupBroadcasterTest(t)
	defer tm.tearDownTest()

	ctx := context.Background()
	const channelURL = "https://channel.example.com/notify"
	tokens := makeTokens("tok", 250)

	var batchSizes []int
	tm.http.EXPECT().
		PostNoRetry(ctx, channelURL, "application/json", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ string, body io.Reader) (*http.Response, error) {
			delivered := decodeDeliveredTokens(t, body)
			batchSizes = append(batchSizes, len(delivered))
			return jsonResponse(t, http.StatusOK, delivered, nil, nil), nil
		}).
		Times(3)
	tm.clock.EXPECT().Sleep(time.Second).Times(2)

	result := tm.broadcaster.Broadcast(ctx, Notification{
		NotificationID: "2f0c7a1e-3d9b-4b51-9c64-1b7c1a2d3e4f",
		Title:          "You have a winning warp!",
		Body:           "Claim your share of the prize pool.",
		TargetURL:      "https://warps.example.com",
	}, map[string][]string{channelURL: tokens})

	assert.Equal(t, []int{100, 100, 50}, batchSizes)
	assert.Len(t, result.SuccessfulTokens, 250)
	assert.Empty(t, result.InvalidTokens)
	assert.Empty(t, result.RateLimitedTokens)
}

func TestBroadcast_RateLimitedBatch(t *testing.T) {
	tm := setupBroadcasterTest(t)
	defer tm.tearDownTest()

	ctx := context.Background()
	const channelURL = "https://channel.example.com/notify"
	tokens := makeTokens("tok", 150)

	batch := 0
	tm.http.EXPECT().
		PostNoRetry(ctx, channelURL, "application/json", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ string, body io.Reader) (*http.Response, error) {
			delivered := decodeDeliveredTokens(t, body)
			batch++
			if batch == 2 {
				return jsonResponse(t, http.StatusTooManyRequests, nil, nil, nil), nil
			}
			return jsonResponse(t, http.StatusOK, delivered, nil, nil), nil
		}).
		Times(2)
	tm.clock.EXPECT().Sleep(time.Second)

	result := tm.broadcaster.Broadcast(ctx, Notification{
		NotificationID: "2f0c7a1e-3d9b-4b51-9c64-1b7c1a2d3e4f",
		Title:          "Game over",
	}, map[string][]string{channelURL: tokens})

	// The whole rate-limited batch stays deliverable for a later retry
	assert.Len(t, result.SuccessfulTokens, 100)
	assert.Len(t, result.RateLimitedTokens, 50)
	assert.Empty(t, result.InvalidTokens)
}

func TestBroadcast_ChannelErrorMarksChunkInvalid(t *testing.T) {
	tm := setupBroadcasterTest(t)
	defer tm.tearDownTest()

	ctx := context.Background()
	const channelURL = "https://channel.example.com/notify"
	tokens := makeTokens("tok", 3)

	tm.http.EXPECT().
		PostNoRetry(ctx, channelURL, "application/json", gomock.Any()).
		Return(&http.Response{
			StatusCode: http.StatusInternalServerError,
			Body:       io.NopCloser(bytes.NewReader([]byte("upstream broke"))),
		}, nil)

	result := tm.broadcaster.Broadcast(ctx, Notification{
		NotificationID: "2f0c7a1e-3d9b-4b51-9c64-1b7c1a2d3e4f",
	}, map[string][]string{channelURL: tokens})

	assert.Empty(t, result.SuccessfulTokens)
	assert.ElementsMatch(t, tokens, result.InvalidTokens)
}

func TestBroadcast_NetworkErrorMarksChunkInvalid(t *testing.T) {
	tm := setupBroadcasterTest(t)
	defer tm.tearDownTest()

	ctx := context.Background()
	const channelURL = "https://channel.example.com/notify"
	tokens := makeTokens("tok", 2)

	tm.http.EXPECT().
		PostNoRetry(ctx, channelURL, "application/json", gomock.Any()).
		Return(nil, assert.AnError)

	result := tm.broadcaster.Broadcast(ctx, Notification{
		NotificationID: "2f0c7a1e-3d9b-4b51-9c64-1b7c1a2d3e4f",
	}, map[string][]string{channelURL: tokens})

	assert.ElementsMatch(t, tokens, result.InvalidTokens)
}

func TestBroadcast_MergesPerTokenVerdicts(t *testing.T) {
	tm := setupBroadcasterTest(t)
	defer tm.tearDownTest()

	ctx := context.Background()
	const channelURL = "https://channel.example.com/notify"

	tm.http.EXPECT().
		PostNoRetry(ctx, channelURL, "application/json", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ string, body io.Reader) (*http.Response, error) {
			delivered := decodeDeliveredTokens(t, body)
			require.Len(t, delivered, 3)
			return jsonResponse(t, http.StatusOK,
				delivered[:1], delivered[1:2], delivered[2:]), nil
		})

	result := tm.broadcaster.Broadcast(ctx, Notification{
		NotificationID: "2f0c7a1e-3d9b-4b51-9c64-1b7c1a2d3e4f",
	}, map[string][]string{channelURL: {"tok-a", "tok-b", "tok-c"}})

	assert.Equal(t, []string{"tok-a"}, result.SuccessfulTokens)
	assert.Equal(t, []string{"tok-b"}, result.InvalidTokens)
	assert.Equal(t, []string{"tok-c"}, result.RateLimitedTokens)
}

func TestBroadcast_MultipleChannels(t *testing.T) {
	tm := setupBroadcasterTest(t)
	defer tm.tearDownTest()

	ctx := context.Background()
	tokensByURL := map[string][]string{
		"https://alpha.example.com/notify": makeTokens("alpha", 5),
		"https://beta.example.com/notify":  makeTokens("beta", 7),
	}

	tm.http.EXPECT().
		PostNoRetry(ctx, gomock.Any(), "application/json", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ string, body io.Reader) (*http.Response, error) {
			delivered := decodeDeliveredTokens(t, body)
			return jsonResponse(t, http.StatusOK, delivered, nil, nil), nil
		}).
		Times(2)

	result := tm.broadcaster.Broadcast(ctx, Notification{
		NotificationID: "2f0c7a1e-3d9b-4b51-9c64-1b7c1a2d3e4f",
	}, tokensByURL)

	expected := append(makeTokens("alpha", 5), makeTokens("beta", 7)...)
	assert.ElementsMatch(t, expected, result.SuccessfulTokens)
}

func TestBroadcast_NoSubscriptions(t *testing.T) {
	tm := setupBroadcasterTest(t)
	defer tm.tearDownTest()

	result := tm.broadcaster.Broadcast(context.Background(), Notification{
		NotificationID: "2f0c7a1e-3d9b-4b51-9c64-1b7c1a2d3e4f",
	}, map[string][]string{})

	assert.Empty(t, result.SuccessfulTokens)
	assert.Empty(t, result.InvalidTokens)
	assert.Empty(t, result.RateLimitedTokens)
}
