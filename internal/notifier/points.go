package notifier

import (
	"context"
	"fmt"

	"github.com/warplabs/warps-engine/internal/adapter"
	"github.com/warplabs/warps-engine/internal/store"
)

// Award reasons recorded alongside each points entry
const (
	ReasonMint      = "mint"
	ReasonComposite = "composite"
	ReasonClaim     = "claim"
	ReasonReferral  = "referral"
)

// Points granted per confirmed action
const (
	PointsMint      int64 = 10
	PointsComposite int64 = 25
	PointsClaim     int64 = 50
	PointsReferral  int64 = 100
)

// pointsForReason maps an award reason to its fixed point value
var pointsForReason = map[string]int64{
	ReasonMint:      PointsMint,
	ReasonComposite: PointsComposite,
	ReasonClaim:     PointsClaim,
	ReasonReferral:  PointsReferral,
}

// PointsLedger awards fixed point values for confirmed game actions
//
//go:generate mockgen -source=points.go -destination=../mocks/points_ledger.go -package=mocks -mock_names=PointsLedger=MockPointsLedger
type PointsLedger interface {
	// Award records the fixed point value for reason against username
	Award(ctx context.Context, username string, reason string) error
}

type pointsLedger struct {
	store store.Store
	clock adapter.Clock
}

// NewPointsLedger creates a points ledger backed by the store
func NewPointsLedger(st store.Store, clock adapter.Clock) PointsLedger {
	return &pointsLedger{
		store: st,
		clock: clock,
	}
}

// Award records a points entry for one confirmed action
func (p *pointsLedger) Award(ctx context.Context, username string, reason string) error {
	points, ok := pointsForReason[reason]
	if !ok {
		return fmt.Errorf("unknown award reason %q", reason)
	}

	if err := p.store.AwardPoints(ctx, username, points, reason, p.clock.Now()); err != nil {
		return fmt.Errorf("failed to award %s points to %s: %w", reason, username, err)
	}

	return nil
}
