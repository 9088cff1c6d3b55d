package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrTokenNotFound is returned when a token does not exist on chain
	ErrTokenNotFound = errors.New("token not found")

	// ErrSingleWarpSelection is returned when a terminal single-warp token is
	// selected for compositing
	ErrSingleWarpSelection = errors.New("single warp tokens cannot be combined")

	// ErrMismatchedWarpCount is returned when the two selected tokens have
	// different warp counts
	ErrMismatchedWarpCount = errors.New("warp counts do not match")

	// ErrPairInFlight is returned when a composite for the same unordered
	// pair is already submitted and not yet settled
	ErrPairInFlight = errors.New("composite already in flight for pair")

	// ErrUserRejected is returned when the wallet declines to sign
	ErrUserRejected = errors.New("user rejected transaction")

	// ErrAlreadySettled is returned on an attempt to settle a transaction
	// handle a second time
	ErrAlreadySettled = errors.New("transaction already settled")
)

// ChainReadError wraps an infrastructure failure on a chain read or simulate
// path (RPC error, missing contract, decode failure)
type ChainReadError struct {
	Op  string
	Err error
}

func (e *ChainReadError) Error() string {
	return fmt.Sprintf("chain read %s: %v", e.Op, e.Err)
}

func (e *ChainReadError) Unwrap() error {
	return e.Err
}

// NewChainReadError creates a ChainReadError for the given operation
func NewChainReadError(op string, err error) *ChainReadError {
	return &ChainReadError{Op: op, Err: err}
}

// SimulationRevertError is returned when the pre-send simulation of a write
// reverts. Reason carries the contract's custom error name when it can be
// decoded (e.g., "ERC721__InvalidToken").
type SimulationRevertError struct {
	Op     string
	Reason string
}

func (e *SimulationRevertError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("simulation reverted for %s", e.Op)
	}
	return fmt.Sprintf("simulation reverted for %s: %s", e.Op, e.Reason)
}

// NewSimulationRevertError creates a SimulationRevertError
func NewSimulationRevertError(op string, reason string) *SimulationRevertError {
	return &SimulationRevertError{Op: op, Reason: reason}
}
