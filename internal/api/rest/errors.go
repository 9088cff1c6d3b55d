package rest

import (
	"errors"

	"github.com/warplabs/warps-engine/internal/domain"
)

// isDomainConflict reports whether the error is an in-flight or
// already-settled guard rejection
func isDomainConflict(err error) bool {
	return errors.Is(err, domain.ErrPairInFlight) ||
		errors.Is(err, domain.ErrAlreadySettled)
}

// isSimulationRevert reports whether the error is a pre-send contract revert
func isSimulationRevert(err error) bool {
	var revert *domain.SimulationRevertError
	return errors.As(err, &revert)
}
