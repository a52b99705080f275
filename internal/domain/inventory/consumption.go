package inventory

import (
	"fmt"

	"github.com/erp/lpcore/internal/domain/shared"
)

// Error codes raised by the consumption guard
const (
	CodeLPNotFound      = "LP_NOT_FOUND"
	CodeNotAvailable    = "LP_NOT_AVAILABLE"
	CodeNotQAApproved   = "LP_NOT_QA_APPROVED"
	CodeInsufficientQty = "INSUFFICIENT_QUANTITY"
)

// ConsumptionCheck is the explained outcome of the consumption guard
type ConsumptionCheck struct {
	Valid           bool
	Err             *shared.DomainError
	CurrentStatus   LPStatus
	CurrentQAStatus QAStatus
}

// Error returns the rejection as an error, or nil when consumption is allowed
func (c ConsumptionCheck) Error() error {
	if c.Valid || c.Err == nil {
		return nil
	}
	return c.Err
}

// IsConsumptionAllowed is true iff qa is passed and status is available or reserved
func IsConsumptionAllowed(status LPStatus, qa QAStatus) bool {
	return qa == QAStatusPassed && (status == LPStatusAvailable || status == LPStatusReserved)
}

// ValidateForConsumption explains why a plate may or may not be consumed.
// The status axis is reported before the QA axis. A nil plate is NotFound.
func ValidateForConsumption(lp *LicensePlate) ConsumptionCheck {
	if lp == nil {
		return ConsumptionCheck{Err: shared.NewDomainError(shared.KindNotFound, CodeLPNotFound, "License plate not found")}
	}

	check := ConsumptionCheck{
		CurrentStatus:   lp.Status,
		CurrentQAStatus: lp.QAStatus,
	}

	if lp.Status != LPStatusAvailable && lp.Status != LPStatusReserved {
		check.Err = shared.NewPolicyViolationError(CodeNotAvailable, fmt.Sprintf("not available: %s", lp.Status)).
			WithDetail("lp_id", lp.ID.String()).
			WithDetail("status", lp.Status.String())
		return check
	}
	if lp.QAStatus != QAStatusPassed {
		check.Err = shared.NewPolicyViolationError(CodeNotQAApproved, fmt.Sprintf("not QA approved: %s", lp.QAStatus)).
			WithDetail("lp_id", lp.ID.String()).
			WithDetail("qa_status", lp.QAStatus.String())
		return check
	}

	check.Valid = true
	return check
}
