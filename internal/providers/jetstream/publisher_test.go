package jetstream_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	natsjs "github.com/nats-io/nats.go/jetstream"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warplabs/warps-engine/internal/adapter"
	"github.com/warplabs/warps-engine/internal/domain"
	"github.com/warplabs/warps-engine/internal/logger"
	"github.com/warplabs/warps-engine/internal/messaging"
	"github.com/warplabs/warps-engine/internal/mocks"
	"github.com/warplabs/warps-engine/internal/providers/jetstream"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	m.Run()
}

func testConfig() jetstream.Config {
	return jetstream.Config{
		URL:            "nats://localhost:4222",
		StreamName:     "GAME_EVENTS",
		ConsumerName:   "notifierd",
		MaxReconnects:  5,
		ReconnectWait:  time.Second,
		ConnectionName: "warps-engine-test",
		AckWaitTimeout: 30 * time.Second,
		MaxDeliver:     3,
	}
}

type testPublisherMocks struct {
	ctrl      *gomock.Controller
	natsJS    *mocks.MockNatsJetStream
	nc        *mocks.MockNatsConn
	js        *mocks.MockJetStream
	clock     *mocks.MockClock
	publisher messaging.Publisher
}

func setupPublisherTest(t *testing.T) *testPublisherMocks {
	ctrl := gomock.NewController(t)
	natsJS := mocks.NewMockNatsJetStream(ctrl)
	nc := mocks.NewMockNatsConn(ctrl)
	js := mocks.NewMockJetStream(ctrl)
	clock := mocks.NewMockClock(ctrl)

	natsJS.EXPECT().Connect(gomock.Eq("nats://localhost:4222"), gomock.Any()).Return(nc, js, nil)
	js.EXPECT().
		CreateOrUpdateStream(gomock.Any(), natsjs.StreamConfig{
			Name:     "GAME_EVENTS",
			Subjects: []string{"games.warps.>"},
		}).
		Return(nil)

	publisher, err := jetstream.NewPublisher(testConfig(), natsJS, adapter.NewJSON(), clock)
	require.NoError(t, err)

	return &testPublisherMocks{
		ctrl:      ctrl,
		natsJS:    natsJS,
		nc:        nc,
		js:        js,
		clock:     clock,
		publisher: publisher,
	}
}

func (tm *testPublisherMocks) tearDownTest() {
	tm.ctrl.Finish()
}

func compositeEvent() *domain.GameEvent {
	return &domain.GameEvent{
		EventID:       "01JABCDEF0123456789ABCDEFG",
		EventType:     domain.GameEventCompositeSuccess,
		Chain:         domain.ChainBaseSepolia,
		TokenID:       11,
		BurnedTokenID: 10,
		TxHash:        "0xa3b1c2d3e4f5a6b7c8d9e0f1a2b3c4d5e6f7a8b9c0d1e2f3a4b5c6d7e8f9a0b1",
		Timestamp:     time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestPublishEvent(t *testing.T) {
	tm := setupPublisherTest(t)
	defer tm.tearDownTest()

	event := compositeEvent()

	tm.js.EXPECT().
		Publish(gomock.Any(), "games.warps.composite_success", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, data []byte, opts ...natsjs.PublishOpt) (*natsjs.PubAck, error) {
			// The event id rides along as the broker dedupe key
			assert.Len(t, opts, 1)
			var published domain.GameEvent
			require.NoError(t, json.Unmarshal(data, &published))
			assert.Equal(t, event.EventID, published.EventID)
			assert.Equal(t, uint64(11), published.TokenID)
			assert.Equal(t, uint64(10), published.BurnedTokenID)
			return &natsjs.PubAck{Stream: "GAME_EVENTS"}, nil
		})

	require.NoError(t, tm.publisher.PublishEvent(context.Background(), event))
}

func TestPublishEvent_AssignsEventID(t *testing.T) {
	tm := setupPublisherTest(t)
	defer tm.tearDownTest()

	event := compositeEvent()
	event.EventID = ""

	tm.clock.EXPECT().Now().Return(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	tm.js.EXPECT().
		Publish(gomock.Any(), "games.warps.composite_success", gomock.Any(), gomock.Any()).
		Return(&natsjs.PubAck{Stream: "GAME_EVENTS"}, nil)

	require.NoError(t, tm.publisher.PublishEvent(context.Background(), event))
	assert.Len(t, event.EventID, 26)
}

func TestPublishEvent_RejectsInvalidEvent(t *testing.T) {
	tm := setupPublisherTest(t)
	defer tm.tearDownTest()

	// Composite burning itself is never valid
	event := compositeEvent()
	event.BurnedTokenID = event.TokenID

	err := tm.publisher.PublishEvent(context.Background(), event)
	assert.ErrorContains(t, err, "refusing to publish invalid")
}

func TestPublishEvent_PublishError(t *testing.T) {
	tm := setupPublisherTest(t)
	defer tm.tearDownTest()

	tm.js.EXPECT().
		Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("stream unavailable"))

	err := tm.publisher.PublishEvent(context.Background(), compositeEvent())
	assert.ErrorContains(t, err, "failed to publish event")
}

func TestNewPublisher_StreamEnsureError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	natsJS := mocks.NewMockNatsJetStream(ctrl)
	nc := mocks.NewMockNatsConn(ctrl)
	js := mocks.NewMockJetStream(ctrl)

	natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(nc, js, nil)
	js.EXPECT().CreateOrUpdateStream(gomock.Any(), gomock.Any()).Return(errors.New("no jetstream"))
	nc.EXPECT().Close()

	publisher, err := jetstream.NewPublisher(testConfig(), natsJS, adapter.NewJSON(), mocks.NewMockClock(ctrl))
	assert.ErrorContains(t, err, "failed to ensure stream GAME_EVENTS")
	assert.Nil(t, publisher)
}

func TestPublisher_Close(t *testing.T) {
	tm := setupPublisherTest(t)
	defer tm.tearDownTest()

	tm.nc.EXPECT().Close()
	tm.publisher.Close()
}
