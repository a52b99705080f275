package inventory

import (
	"fmt"
	"time"

	"github.com/erp/lpcore/internal/domain/shared"
)

// Error codes raised by the status state machine
const (
	CodeAlreadyInState    = "ALREADY_IN_STATE"
	CodeTerminalState     = "TERMINAL_STATE"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeInvalidStatus     = "INVALID_STATUS"
)

// allowedTransitions is the directed graph of legal status changes.
// consumed has no outgoing edges.
var allowedTransitions = map[LPStatus][]LPStatus{
	LPStatusAvailable: {LPStatusReserved, LPStatusConsumed, LPStatusBlocked},
	LPStatusReserved:  {LPStatusAvailable, LPStatusConsumed},
	LPStatusBlocked:   {LPStatusAvailable},
}

// FieldChange describes a single field mutation destined for the audit trail
type FieldChange struct {
	Field    string
	OldValue string
	NewValue string
	Reason   string
}

// Audited field names
const (
	FieldStatus         = "status"
	FieldQAStatus       = "qa_status"
	FieldQuantityOnHand = "quantity_on_hand"
	FieldReceivedQty    = "received_qty"
)

// TransitionResult is the outcome of validating a status transition
type TransitionResult struct {
	Valid bool
	Err   *shared.DomainError
}

// Error returns the rejection as an error, or nil when valid
func (r TransitionResult) Error() error {
	if r.Valid || r.Err == nil {
		return nil
	}
	return r.Err
}

// ValidateTransition checks current -> target against the transition graph
func ValidateTransition(current, target LPStatus) TransitionResult {
	if !target.IsValid() {
		return TransitionResult{Err: shared.NewValidationError(CodeInvalidStatus,
			fmt.Sprintf("invalid status: %q", target))}
	}
	if current == target {
		return TransitionResult{Err: shared.NewInvalidTransitionError(CodeAlreadyInState,
			fmt.Sprintf("already %s", current), current.String(), target.String())}
	}
	if current == LPStatusConsumed {
		return TransitionResult{Err: shared.NewInvalidTransitionError(CodeTerminalState,
			"license plate is consumed; consumed is a terminal state", current.String(), target.String())}
	}
	if !CanTransition(current, target) {
		return TransitionResult{Err: shared.NewInvalidTransitionError(CodeInvalidTransition,
			fmt.Sprintf("invalid transition from %s to %s", current, target), current.String(), target.String())}
	}
	return TransitionResult{Valid: true}
}

// CanTransition reports whether current -> target is an edge of the graph
func CanTransition(current, target LPStatus) bool {
	for _, s := range allowedTransitions[current] {
		if s == target {
			return true
		}
	}
	return false
}

// IsAlreadyInState reports whether err is the self-transition rejection.
// Callers treat it as "nothing to do" rather than a failure.
func IsAlreadyInState(err error) bool {
	return shared.CodeOf(err) == CodeAlreadyInState
}

// TransitionTo moves the plate to target after validation and returns the
// status change to audit.
func (lp *LicensePlate) TransitionTo(target LPStatus, reason string, now time.Time) (FieldChange, error) {
	if res := ValidateTransition(lp.Status, target); !res.Valid {
		return FieldChange{}, res.Err.WithDetail("lp_id", lp.ID.String())
	}

	from := lp.Status
	lp.Status = target
	lp.Touch(now)
	lp.AddDomainEvent(NewLicensePlateStatusChangedEvent(lp, from, target, reason, now))

	return FieldChange{
		Field:    FieldStatus,
		OldValue: from.String(),
		NewValue: target.String(),
		Reason:   reason,
	}, nil
}
