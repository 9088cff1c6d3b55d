package jetstream_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	natsjs "github.com/nats-io/nats.go/jetstream"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warplabs/warps-engine/internal/adapter"
	"github.com/warplabs/warps-engine/internal/domain"
	"github.com/warplabs/warps-engine/internal/messaging"
	"github.com/warplabs/warps-engine/internal/mocks"
	"github.com/warplabs/warps-engine/internal/providers/jetstream"
)

type testSubscriberMocks struct {
	ctrl       *gomock.Controller
	nc         *mocks.MockNatsConn
	js         *mocks.MockJetStream
	consumer   *mocks.MockNatsConsumer
	consumeCtx *mocks.MockConsumeContext
	subscriber messaging.Subscriber
}

func setupSubscriberTest(t *testing.T) *testSubscriberMocks {
	ctrl := gomock.NewController(t)
	natsJS := mocks.NewMockNatsJetStream(ctrl)
	nc := mocks.NewMockNatsConn(ctrl)
	js := mocks.NewMockJetStream(ctrl)

	natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(nc, js, nil)

	subscriber, err := jetstream.NewSubscriber(testConfig(), natsJS, adapter.NewJSON())
	require.NoError(t, err)

	return &testSubscriberMocks{
		ctrl:       ctrl,
		nc:         nc,
		js:         js,
		consumer:   mocks.NewMockNatsConsumer(ctrl),
		consumeCtx: mocks.NewMockConsumeContext(ctrl),
		subscriber: subscriber,
	}
}

func (tm *testSubscriberMocks) tearDownTest() {
	tm.ctrl.Finish()
}

// expectConsume wires consumer creation and delivers the given message once
func (tm *testSubscriberMocks) expectConsume(t *testing.T, msg adapter.Message) {
	tm.js.EXPECT().
		CreateOrUpdateConsumer(gomock.Any(), "GAME_EVENTS", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, cfg natsjs.ConsumerConfig) (adapter.Consumer, error) {
			assert.Equal(t, "notifierd", cfg.Durable)
			assert.Equal(t, "games.warps.>", cfg.FilterSubject)
			return tm.consumer, nil
		})
	tm.consumer.EXPECT().Info(gomock.Any()).Return(&natsjs.ConsumerInfo{Name: "notifierd"}, nil)
	tm.consumer.EXPECT().
		Consume(gomock.Any()).
		DoAndReturn(func(handler adapter.MessageHandler, _ ...natsjs.PullConsumeOpt) (adapter.ConsumeContext, error) {
			go handler(msg)
			return tm.consumeCtx, nil
		})
	tm.consumeCtx.EXPECT().Stop()
}

func eventPayload(t *testing.T) []byte {
	data, err := json.Marshal(compositeEvent())
	require.NoError(t, err)
	return data
}

func TestSubscriberRun_HandlesEvent(t *testing.T) {
	tm := setupSubscriberTest(t)
	defer tm.tearDownTest()

	ctx, cancel := context.WithCancel(context.Background())

	msg := mocks.NewMockJetStreamMessage(tm.ctrl)
	msg.EXPECT().Data().Return(eventPayload(t))
	msg.EXPECT().Metadata().Return(&natsjs.MsgMetadata{NumDelivered: 1}, nil)
	msg.EXPECT().Ack().Return(nil)

	tm.expectConsume(t, msg)

	var handled *domain.GameEvent
	err := tm.subscriber.Run(ctx, func(_ context.Context, event *domain.GameEvent) error {
		handled = event
		cancel()
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)

	require.NotNil(t, handled)
	assert.Equal(t, domain.GameEventCompositeSuccess, handled.EventType)
	assert.Equal(t, uint64(11), handled.TokenID)
}

func TestSubscriberRun_NaksHandlerFailure(t *testing.T) {
	tm := setupSubscriberTest(t)
	defer tm.tearDownTest()

	ctx, cancel := context.WithCancel(context.Background())

	msg := mocks.NewMockJetStreamMessage(tm.ctrl)
	msg.EXPECT().Data().Return(eventPayload(t))
	msg.EXPECT().Metadata().Return(&natsjs.MsgMetadata{NumDelivered: 2}, nil)
	msg.EXPECT().Nak().DoAndReturn(func() error {
		cancel()
		return nil
	})

	tm.expectConsume(t, msg)

	err := tm.subscriber.Run(ctx, func(_ context.Context, _ *domain.GameEvent) error {
		return errors.New("store unavailable")
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSubscriberRun_TerminatesMalformedPayload(t *testing.T) {
	tm := setupSubscriberTest(t)
	defer tm.tearDownTest()

	ctx, cancel := context.WithCancel(context.Background())

	msg := mocks.NewMockJetStreamMessage(tm.ctrl)
	msg.EXPECT().Data().Return([]byte("{not json"))
	msg.EXPECT().Metadata().Return(nil, errors.New("no metadata"))
	msg.EXPECT().Term().DoAndReturn(func() error {
		cancel()
		return nil
	})

	tm.expectConsume(t, msg)

	err := tm.subscriber.Run(ctx, func(_ context.Context, _ *domain.GameEvent) error {
		t.Fatal("handler must not run for malformed payloads")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSubscriberRun_TerminatesInvalidEvent(t *testing.T) {
	tm := setupSubscriberTest(t)
	defer tm.tearDownTest()

	ctx, cancel := context.WithCancel(context.Background())

	invalid := compositeEvent()
	invalid.BurnedTokenID = invalid.TokenID
	data, err := json.Marshal(invalid)
	require.NoError(t, err)

	msg := mocks.NewMockJetStreamMessage(tm.ctrl)
	msg.EXPECT().Data().Return(data)
	msg.EXPECT().Metadata().Return(&natsjs.MsgMetadata{NumDelivered: 1}, nil)
	msg.EXPECT().Term().DoAndReturn(func() error {
		cancel()
		return nil
	})

	tm.expectConsume(t, msg)

	err = tm.subscriber.Run(ctx, func(_ context.Context, _ *domain.GameEvent) error {
		t.Fatal("handler must not run for invalid events")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSubscriberRun_ConsumerCreationError(t *testing.T) {
	tm := setupSubscriberTest(t)
	defer tm.tearDownTest()

	tm.js.EXPECT().
		CreateOrUpdateConsumer(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("stream not found"))

	err := tm.subscriber.Run(context.Background(), func(_ context.Context, _ *domain.GameEvent) error {
		return nil
	})
	assert.ErrorContains(t, err, "failed to create/update consumer")
}
