package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/erp/lpcore/internal/domain/shared"
)

// Error codes raised by the QA controller
const (
	CodeInvalidQAStatus = "INVALID_QA_STATUS"
	CodeReasonRequired  = "REASON_REQUIRED"
)

// Reasons written on forced status changes
const (
	ReasonAutoUnblock = "auto-unblock on QA release"
	reasonAutoBlock   = "auto-block on QA failure"
)

// DefaultMinQAReasonLength is the minimum reason length for failed and quarantine dispositions
const DefaultMinQAReasonLength = 10

// QAPolicy configures the QA controller
type QAPolicy struct {
	MinReasonLength int
}

// DefaultQAPolicy returns the default QA policy
func DefaultQAPolicy() QAPolicy {
	return QAPolicy{MinReasonLength: DefaultMinQAReasonLength}
}

// RequiresReason reports whether moving to target needs a justification
func (p QAPolicy) RequiresReason(target QAStatus) bool {
	return target == QAStatusFailed || target == QAStatusQuarantine
}

// qaStatusEffect is one row of the QA side-effect table: when the QA status
// moves to target while the plate is in one of fromStatuses (and, if set,
// previousQA matches), the plate status is forced to forced.
type qaStatusEffect struct {
	target       QAStatus
	fromStatuses []LPStatus
	previousQA   QAStatus
	forced       LPStatus
	reason       func(qaReason string) string
}

var qaStatusEffects = []qaStatusEffect{
	{
		target:       QAStatusFailed,
		fromStatuses: []LPStatus{LPStatusAvailable, LPStatusReserved},
		forced:       LPStatusBlocked,
		reason: func(qaReason string) string {
			return reasonAutoBlock + ": " + qaReason
		},
	},
	{
		target:       QAStatusPassed,
		fromStatuses: []LPStatus{LPStatusBlocked},
		previousQA:   QAStatusQuarantine,
		forced:       LPStatusAvailable,
		reason: func(string) string {
			return ReasonAutoUnblock
		},
	},
}

func (e qaStatusEffect) matches(lp *LicensePlate, target QAStatus) bool {
	if e.target != target {
		return false
	}
	if e.previousQA != "" && e.previousQA != lp.QAStatus {
		return false
	}
	for _, s := range e.fromStatuses {
		if s == lp.Status {
			return true
		}
	}
	return false
}

// ChangeQAStatus moves the plate's QA status to target and applies the coupled
// status side effect, if any. It returns the audit changes in write order: the
// qa_status change first, then the forced status change.
//
// All QA mutations must go through here; QAStatus is never assigned directly.
func (lp *LicensePlate) ChangeQAStatus(target QAStatus, reason string, policy QAPolicy, now time.Time) ([]FieldChange, error) {
	if !target.IsValid() {
		return nil, shared.NewValidationError(CodeInvalidQAStatus, fmt.Sprintf("invalid QA status: %q", target))
	}
	if lp.QAStatus == target {
		return nil, shared.NewInvalidTransitionError(CodeAlreadyInState,
			fmt.Sprintf("already %s", target), lp.QAStatus.String(), target.String()).
			WithDetail("lp_id", lp.ID.String())
	}

	reason = strings.TrimSpace(reason)
	if policy.RequiresReason(target) && len([]rune(reason)) < policy.MinReasonLength {
		return nil, shared.NewValidationError(CodeReasonRequired,
			fmt.Sprintf("Reason must be at least %d characters for %s", policy.MinReasonLength, target)).
			WithDetail("min_length", policy.MinReasonLength).
			WithDetail("target", target.String())
	}

	var effect *qaStatusEffect
	for i := range qaStatusEffects {
		if qaStatusEffects[i].matches(lp, target) {
			effect = &qaStatusEffects[i]
			break
		}
	}

	previousQA := lp.QAStatus
	lp.QAStatus = target
	lp.Touch(now)
	lp.AddDomainEvent(NewQAStatusChangedEvent(lp, previousQA, target, reason, now))

	changes := []FieldChange{{
		Field:    FieldQAStatus,
		OldValue: previousQA.String(),
		NewValue: target.String(),
		Reason:   reason,
	}}

	if effect != nil {
		from := lp.Status
		forcedReason := effect.reason(reason)
		lp.Status = effect.forced
		lp.AddDomainEvent(NewLicensePlateStatusChangedEvent(lp, from, effect.forced, forcedReason, now))
		changes = append(changes, FieldChange{
			Field:    FieldStatus,
			OldValue: from.String(),
			NewValue: effect.forced.String(),
			Reason:   forcedReason,
		})
	}

	return changes, nil
}
