package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAwardPointsAndTotals(t *testing.T) {
	if testDB == nil {
		t.Fatal("Test database not initialized")
	}
	s := initPGTestDB(t)
	ctx := context.Background()
	awardedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.AwardPoints(ctx, "alice", 100, "mint", awardedAt))
	require.NoError(t, s.AwardPoints(ctx, "alice", 250, "composite", awardedAt.Add(time.Minute)))
	require.NoError(t, s.AwardPoints(ctx, "bob", 50, "referral", awardedAt))

	total, err := s.GetPointsTotal(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(350), total.Points)

	total, err = s.GetPointsTotal(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(50), total.Points)

	// Unknown players sum to zero, not an error
	total, err = s.GetPointsTotal(ctx, "nobody")
	require.NoError(t, err)
	assert.Equal(t, int64(0), total.Points)
}

func TestGetLeaderboard(t *testing.T) {
	if testDB == nil {
		t.Fatal("Test database not initialized")
	}
	s := initPGTestDB(t)
	ctx := context.Background()
	awardedAt := time.Now().UTC()

	require.NoError(t, s.AwardPoints(ctx, "alice", 100, "mint", awardedAt))
	require.NoError(t, s.AwardPoints(ctx, "bob", 300, "claim", awardedAt))
	require.NoError(t, s.AwardPoints(ctx, "carol", 200, "composite", awardedAt))
	require.NoError(t, s.AwardPoints(ctx, "alice", 250, "composite", awardedAt))

	leaderboard, err := s.GetLeaderboard(ctx, 2)
	require.NoError(t, err)
	require.Len(t, leaderboard, 2)
	assert.Equal(t, "alice", leaderboard[0].Username)
	assert.Equal(t, int64(350), leaderboard[0].Points)
	assert.Equal(t, "bob", leaderboard[1].Username)
	assert.Equal(t, int64(300), leaderboard[1].Points)
}

func TestSaveReferral_DuplicateIsBenign(t *testing.T) {
	if testDB == nil {
		t.Fatal("Test database not initialized")
	}
	s := initPGTestDB(t)
	ctx := context.Background()

	created, err := s.SaveReferral(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.True(t, created)

	// The same pair again loses the insert without an error
	created, err = s.SaveReferral(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.False(t, created)

	// A different referred user is a new row
	created, err = s.SaveReferral(ctx, "alice", "carol")
	require.NoError(t, err)
	assert.True(t, created)
}

func TestNotificationSubscriptions(t *testing.T) {
	if testDB == nil {
		t.Fatal("Test database not initialized")
	}
	s := initPGTestDB(t)
	ctx := context.Background()

	require.NoError(t, s.SaveNotificationSubscription(ctx, 1001, "https://channel-a.example.com/notify", "token-a1"))
	require.NoError(t, s.SaveNotificationSubscription(ctx, 1002, "https://channel-a.example.com/notify", "token-a2"))
	require.NoError(t, s.SaveNotificationSubscription(ctx, 1003, "https://channel-b.example.com/notify", "token-b1"))

	// Duplicate (url, token) is benign
	require.NoError(t, s.SaveNotificationSubscription(ctx, 1001, "https://channel-a.example.com/notify", "token-a1"))

	grouped, err := s.GetNotificationSubscriptions(ctx)
	require.NoError(t, err)
	require.Len(t, grouped, 2)
	assert.Len(t, grouped["https://channel-a.example.com/notify"], 2)
	assert.Len(t, grouped["https://channel-b.example.com/notify"], 1)

	require.NoError(t, s.RemoveNotificationSubscriptions(ctx, 1001))

	grouped, err = s.GetNotificationSubscriptions(ctx)
	require.NoError(t, err)
	assert.Len(t, grouped["https://channel-a.example.com/notify"], 1)
	assert.Equal(t, "token-a2", grouped["https://channel-a.example.com/notify"][0].Token)
}

func TestMarkEventProcessed_ExactlyOnce(t *testing.T) {
	if testDB == nil {
		t.Fatal("Test database not initialized")
	}
	s := initPGTestDB(t)
	ctx := context.Background()
	payload := []byte(`{"event_id":"01JABCDEF0123456789ABCDEFG","event_type":"composite_success"}`)

	won, err := s.MarkEventProcessed(ctx, "01JABCDEF0123456789ABCDEFG", "composite_success", payload)
	require.NoError(t, err)
	assert.True(t, won)

	// A redelivery of the same event loses the insert
	won, err = s.MarkEventProcessed(ctx, "01JABCDEF0123456789ABCDEFG", "composite_success", payload)
	require.NoError(t, err)
	assert.False(t, won)

	// A different event id wins independently
	won, err = s.MarkEventProcessed(ctx, "01JABCDEF0123456789ABCDEFH", "mint_success", nil)
	require.NoError(t, err)
	assert.True(t, won)
}
