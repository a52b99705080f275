package models

import (
	"time"

	"github.com/erp/lpcore/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LicensePlateModel is the persistence model for the LicensePlate aggregate root.
type LicensePlateModel struct {
	AggregateModel
	LPNumber          string          `gorm:"column:lp_number;type:varchar(64);not null;uniqueIndex"`
	ProductID         uuid.UUID       `gorm:"type:uuid;not null;index:idx_license_plate_product_warehouse,priority:1"`
	WarehouseID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_license_plate_product_warehouse,priority:2"`
	BatchNumber       string          `gorm:"type:varchar(64)"`
	UnitOfMeasure     string          `gorm:"type:varchar(16)"`
	QuantityOnHand    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	AllocatedQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status            string          `gorm:"type:varchar(20);not null;default:'available';index"`
	QAStatus          string          `gorm:"column:qa_status;type:varchar(20);not null;default:'pending'"`
	ExpiryDate        *time.Time      `gorm:"index"`
	ReceivedAt        time.Time       `gorm:"not null;index"`
	ReceivingLineID   *uuid.UUID      `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (LicensePlateModel) TableName() string {
	return "license_plates"
}

// ToDomain converts the persistence model to a domain LicensePlate.
func (m *LicensePlateModel) ToDomain() *inventory.LicensePlate {
	return &inventory.LicensePlate{
		BaseAggregateRoot: m.ToAggregateRoot(),
		LPNumber:          m.LPNumber,
		ProductID:         m.ProductID,
		WarehouseID:       m.WarehouseID,
		BatchNumber:       m.BatchNumber,
		UnitOfMeasure:     m.UnitOfMeasure,
		QuantityOnHand:    m.QuantityOnHand,
		AllocatedQuantity: m.AllocatedQuantity,
		Status:            inventory.LPStatus(m.Status),
		QAStatus:          inventory.QAStatus(m.QAStatus),
		ExpiryDate:        m.ExpiryDate,
		ReceivedAt:        m.ReceivedAt,
		ReceivingLineID:   m.ReceivingLineID,
	}
}

// FromDomain populates the persistence model from a domain LicensePlate.
func (m *LicensePlateModel) FromDomain(lp *inventory.LicensePlate) {
	m.FromDomainAggregateRoot(lp.BaseAggregateRoot)
	m.LPNumber = lp.LPNumber
	m.ProductID = lp.ProductID
	m.WarehouseID = lp.WarehouseID
	m.BatchNumber = lp.BatchNumber
	m.UnitOfMeasure = lp.UnitOfMeasure
	m.QuantityOnHand = lp.QuantityOnHand
	m.AllocatedQuantity = lp.AllocatedQuantity
	m.Status = lp.Status.String()
	m.QAStatus = lp.QAStatus.String()
	m.ExpiryDate = lp.ExpiryDate
	m.ReceivedAt = lp.ReceivedAt
	m.ReceivingLineID = lp.ReceivingLineID
}

// LicensePlateModelFromDomain creates a new persistence model from a domain LicensePlate.
func LicensePlateModelFromDomain(lp *inventory.LicensePlate) *LicensePlateModel {
	m := &LicensePlateModel{}
	m.FromDomain(lp)
	return m
}

// ReservationModel is the persistence model for the Reservation aggregate root.
type ReservationModel struct {
	AggregateModel
	LicensePlateID uuid.UUID       `gorm:"type:uuid;not null;index"`
	DemandID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Status         string          `gorm:"type:varchar(20);not null;default:'active';index"`
	ReservedBy     uuid.UUID       `gorm:"type:uuid;not null"`
	ReleasedAt     *time.Time
	ConsumedAt     *time.Time
	ReleaseReason  string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (ReservationModel) TableName() string {
	return "reservations"
}

// ToDomain converts the persistence model to a domain Reservation.
func (m *ReservationModel) ToDomain() *inventory.Reservation {
	return &inventory.Reservation{
		BaseAggregateRoot: m.ToAggregateRoot(),
		LicensePlateID:    m.LicensePlateID,
		DemandID:          m.DemandID,
		Quantity:          m.Quantity,
		Status:            inventory.ReservationStatus(m.Status),
		ReservedBy:        m.ReservedBy,
		ReleasedAt:        m.ReleasedAt,
		ConsumedAt:        m.ConsumedAt,
		ReleaseReason:     m.ReleaseReason,
	}
}

// FromDomain populates the persistence model from a domain Reservation.
func (m *ReservationModel) FromDomain(r *inventory.Reservation) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.LicensePlateID = r.LicensePlateID
	m.DemandID = r.DemandID
	m.Quantity = r.Quantity
	m.Status = r.Status.String()
	m.ReservedBy = r.ReservedBy
	m.ReleasedAt = r.ReleasedAt
	m.ConsumedAt = r.ConsumedAt
	m.ReleaseReason = r.ReleaseReason
}

// ReservationModelFromDomain creates a new persistence model from a domain Reservation.
func ReservationModelFromDomain(r *inventory.Reservation) *ReservationModel {
	m := &ReservationModel{}
	m.FromDomain(r)
	return m
}

// StatusAuditModel is the persistence model for an append-only status audit entry.
type StatusAuditModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	EntityType string    `gorm:"type:varchar(50);not null"`
	EntityID   uuid.UUID `gorm:"type:uuid;not null;index:idx_status_audit_entity,priority:1"`
	Field      string    `gorm:"type:varchar(50);not null"`
	OldValue   string    `gorm:"type:varchar(100)"`
	NewValue   string    `gorm:"type:varchar(100)"`
	Reason     *string   `gorm:"type:text"`
	ActorID    uuid.UUID `gorm:"type:uuid;not null"`
	ChangedAt  time.Time `gorm:"not null;index:idx_status_audit_entity,priority:2"`
}

// TableName returns the table name for GORM
func (StatusAuditModel) TableName() string {
	return "status_audit"
}

// ToDomain converts the persistence model to a domain StatusAuditEntry.
func (m *StatusAuditModel) ToDomain() *inventory.StatusAuditEntry {
	return &inventory.StatusAuditEntry{
		ID:         m.ID,
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		Field:      m.Field,
		OldValue:   m.OldValue,
		NewValue:   m.NewValue,
		Reason:     m.Reason,
		ActorID:    m.ActorID,
		ChangedAt:  m.ChangedAt,
	}
}

// StatusAuditModelFromDomain creates a new persistence model from a domain StatusAuditEntry.
func StatusAuditModelFromDomain(e *inventory.StatusAuditEntry) *StatusAuditModel {
	return &StatusAuditModel{
		ID:         e.ID,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		Field:      e.Field,
		OldValue:   e.OldValue,
		NewValue:   e.NewValue,
		Reason:     e.Reason,
		ActorID:    e.ActorID,
		ChangedAt:  e.ChangedAt,
	}
}
