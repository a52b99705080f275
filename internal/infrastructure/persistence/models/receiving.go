package models

import (
	"time"

	"github.com/erp/lpcore/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceivingLineModel is the persistence model for an ASN line.
type ReceivingLineModel struct {
	AggregateModel
	ASNID          uuid.UUID       `gorm:"column:asn_id;type:uuid;not null;index"`
	ProductID      uuid.UUID       `gorm:"type:uuid;not null"`
	WarehouseID    uuid.UUID       `gorm:"type:uuid"`
	ExpectedQty    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ReceivedQty    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	UnitOfMeasure  string          `gorm:"type:varchar(16)"`
	ExpectedBatch  string          `gorm:"type:varchar(64)"`
	ExpectedExpiry *time.Time
}

// TableName returns the table name for GORM
func (ReceivingLineModel) TableName() string {
	return "receiving_lines"
}

// ToDomain converts the persistence model to a domain ReceivingLine.
func (m *ReceivingLineModel) ToDomain() *inventory.ReceivingLine {
	return &inventory.ReceivingLine{
		BaseAggregateRoot: m.ToAggregateRoot(),
		ASNID:             m.ASNID,
		ProductID:         m.ProductID,
		WarehouseID:       m.WarehouseID,
		ExpectedQty:       m.ExpectedQty,
		ReceivedQty:       m.ReceivedQty,
		UnitOfMeasure:     m.UnitOfMeasure,
		ExpectedBatch:     m.ExpectedBatch,
		ExpectedExpiry:    m.ExpectedExpiry,
	}
}

// FromDomain populates the persistence model from a domain ReceivingLine.
func (m *ReceivingLineModel) FromDomain(l *inventory.ReceivingLine) {
	m.FromDomainAggregateRoot(l.BaseAggregateRoot)
	m.ASNID = l.ASNID
	m.ProductID = l.ProductID
	m.WarehouseID = l.WarehouseID
	m.ExpectedQty = l.ExpectedQty
	m.ReceivedQty = l.ReceivedQty
	m.UnitOfMeasure = l.UnitOfMeasure
	m.ExpectedBatch = l.ExpectedBatch
	m.ExpectedExpiry = l.ExpectedExpiry
}

// ReceivingLineModelFromDomain creates a new persistence model from a domain ReceivingLine.
func ReceivingLineModelFromDomain(l *inventory.ReceivingLine) *ReceivingLineModel {
	m := &ReceivingLineModel{}
	m.FromDomain(l)
	return m
}
