package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/erp/lpcore/internal/domain/inventory"
	"github.com/erp/lpcore/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const reasonReceived = "received"

// LPNumberGenerator produces license plate numbers for receipts that do not supply one
type LPNumberGenerator func(now time.Time) string

// DefaultLPNumber generates numbers like LP-20260504-1A2B3C4D
func DefaultLPNumber(now time.Time) string {
	return "LP-" + now.Format("20060102") + "-" + strings.ToUpper(uuid.NewString()[:8])
}

// ReceivingService records receipts against ASN lines and creates license plates
type ReceivingService struct {
	serviceBase
	tolerance inventory.TolerancePolicy
	qaExempt  map[uuid.UUID]bool
	lpNumber  LPNumberGenerator
}

// NewReceivingService creates a new ReceivingService
func NewReceivingService(scope TransactionScope, tolerance inventory.TolerancePolicy, logger *zap.Logger) *ReceivingService {
	return &ReceivingService{
		serviceBase: newServiceBase(scope, logger),
		tolerance:   tolerance,
		qaExempt:    make(map[uuid.UUID]bool),
		lpNumber:    DefaultLPNumber,
	}
}

// SetQAExemptProducts sets the products whose plates start QA passed
func (s *ReceivingService) SetQAExemptProducts(productIDs []uuid.UUID) {
	exempt := make(map[uuid.UUID]bool, len(productIDs))
	for _, id := range productIDs {
		exempt[id] = true
	}
	s.qaExempt = exempt
}

// SetLPNumberGenerator replaces the license plate number generator
func (s *ReceivingService) SetLPNumberGenerator(gen LPNumberGenerator) {
	s.lpNumber = gen
}

// CreateLine registers an expected ASN line
func (s *ReceivingService) CreateLine(ctx context.Context, cmd CreateReceivingLineCommand) (*ReceivingLineResponse, error) {
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}

	var resp ReceivingLineResponse
	err := s.execute(ctx, uuid.Nil, func(u *unitOfWork) error {
		line, err := inventory.NewReceivingLine(cmd.ASNID, cmd.ProductID, cmd.WarehouseID, cmd.ExpectedQty, cmd.UnitOfMeasure, u.now)
		if err != nil {
			return err
		}
		line.ExpectedBatch = cmd.ExpectedBatch
		line.ExpectedExpiry = cmd.ExpectedExpiry
		if err := u.ReceivingLineRepo().Create(ctx, line); err != nil {
			return err
		}
		resp = ToReceivingLineResponse(line)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetASN returns the lines of a shipment and its derived status
func (s *ReceivingService) GetASN(ctx context.Context, asnID uuid.UUID) (*ASNResponse, error) {
	var resp ASNResponse
	err := s.read(ctx, func(u *unitOfWork) error {
		lines, err := u.ReceivingLineRepo().FindByASN(ctx, asnID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return shared.NewNotFoundError("ASN_NOT_FOUND", "ASN", asnID)
		}
		resp = toASNResponse(asnID, lines)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// PreviewReceipt evaluates a receiving session without recording it. A session
// that would break the over-receipt tolerance is reported with Allowed=false,
// not as an error.
func (s *ReceivingService) PreviewReceipt(ctx context.Context, q PreviewReceiptQuery) (*ReceiptPreviewResponse, error) {
	if err := validateCommand(q); err != nil {
		return nil, err
	}

	var resp ReceiptPreviewResponse
	err := s.read(ctx, func(u *unitOfWork) error {
		line, err := u.ReceivingLineRepo().FindByID(ctx, q.ReceivingLineID)
		if err != nil {
			return notFound(err, "RECEIVING_LINE_NOT_FOUND", "Receiving line", q.ReceivingLineID)
		}
		check, err := line.CheckReceipt(q.Quantity, s.tolerance)
		if err != nil && !shared.IsPolicyViolation(err) {
			return err
		}
		resp = toReceiptPreview(line, check)
		if err != nil {
			resp.Message = err.Error()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Receive records a receiving session: the cumulative received quantity is
// validated against the tolerance under a row lock, added to the line, and a
// license plate is created for the received stock.
func (s *ReceivingService) Receive(ctx context.Context, cmd ReceiveCommand) (*ReceiptResponse, error) {
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}

	var resp ReceiptResponse
	err := s.execute(ctx, cmd.ActorID, func(u *unitOfWork) error {
		line, err := u.lockReceivingLine(cmd.ReceivingLineID)
		if err != nil {
			return err
		}
		check, lineChange, err := line.Receive(cmd.Quantity, s.tolerance, u.now)
		if err != nil {
			return err
		}

		lpNumber := strings.TrimSpace(cmd.LPNumber)
		if lpNumber == "" {
			lpNumber = s.lpNumber(u.now)
		}
		batch := cmd.BatchNumber
		if batch == "" {
			batch = line.ExpectedBatch
		}
		expiry := cmd.ExpiryDate
		if expiry == nil {
			expiry = line.ExpectedExpiry
		}
		lineID := line.ID

		lp, err := inventory.NewLicensePlate(inventory.NewLicensePlateParams{
			LPNumber:        lpNumber,
			ProductID:       line.ProductID,
			WarehouseID:     line.WarehouseID,
			BatchNumber:     batch,
			UnitOfMeasure:   line.UnitOfMeasure,
			Quantity:        cmd.Quantity,
			ExpiryDate:      expiry,
			ReceivingLineID: &lineID,
			QAExempt:        s.qaExempt[line.ProductID],
		}, u.now)
		if err != nil {
			return err
		}

		if err := u.ReceivingLineRepo().SaveWithLock(ctx, line); err != nil {
			return err
		}
		lineChange.Reason = lpNumber
		if err := u.audit(inventory.AggregateTypeReceivingLine, line.ID, lineChange); err != nil {
			return err
		}
		if err := u.LicensePlateRepo().Create(ctx, lp); err != nil {
			return err
		}
		if err := u.audit(inventory.AggregateTypeLicensePlate, lp.ID, inventory.FieldChange{
			Field:    inventory.FieldStatus,
			NewValue: lp.Status.String(),
			Reason:   reasonReceived,
		}); err != nil {
			return err
		}

		lines, err := u.ReceivingLineRepo().FindByASN(ctx, line.ASNID)
		if err != nil {
			return err
		}
		status := inventory.DeriveASNStatus(lines)
		u.collect(lp)

		resp = ReceiptResponse{
			Line:         ToReceivingLineResponse(line),
			LicensePlate: ToLicensePlateResponse(lp),
			Variance:     check.Variance.Variance,
			Indicator:    string(check.Variance.Indicator),
			ASNStatus:    string(status),
		}
		if status == inventory.ASNStatusReceived {
			receivedAt := u.now
			resp.ASNReceivedAt = &receivedAt
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Receipt recorded",
		zap.String("receiving_line_id", cmd.ReceivingLineID.String()),
		zap.String("lp_id", resp.LicensePlate.ID.String()),
		zap.String("quantity", cmd.Quantity.String()),
		zap.String("cumulative", resp.Line.ReceivedQty.String()),
		zap.String("asn_status", resp.ASNStatus))
	return &resp, nil
}

func toASNResponse(asnID uuid.UUID, lines []*inventory.ReceivingLine) ASNResponse {
	out := make([]ReceivingLineResponse, len(lines))
	for i, l := range lines {
		out[i] = ToReceivingLineResponse(l)
	}
	return ASNResponse{
		ASNID:  asnID,
		Status: string(inventory.DeriveASNStatus(lines)),
		Lines:  out,
	}
}
