package finance

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNoDueDates is returned when a contract's dates or frequency are
	// misconfigured and no billing schedule can be derived. Query methods
	// degrade to empty results instead of surfacing this; only operations
	// that cannot produce a meaningful default (settlement) return it.
	ErrNoDueDates = errors.New("no due dates for contract")

	// ErrNilContract is returned when an operation is invoked without a
	// contract.
	ErrNilContract = errors.New("nil contract")

	// ErrInvalidTerminationDate is returned when a settlement is requested
	// for a zero termination date.
	ErrInvalidTerminationDate = errors.New("invalid termination date")
)

// ComputationError wraps a failure inside the engine with the contract it
// happened for, so batch reports can log and skip a single bad contract.
type ComputationError struct {
	ContractID string
	Op         string
	Err        error
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("%s failed for contract %s: %v", e.Op, e.ContractID, e.Err)
}

func (e *ComputationError) Unwrap() error { return e.Err }
