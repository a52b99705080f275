package models

import (
	"github.com/erp/lpcore/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DemandModel is the persistence model for a work order or sales order line.
type DemandModel struct {
	AggregateModel
	Reference     string          `gorm:"type:varchar(100);not null;index"`
	Type          string          `gorm:"type:varchar(20);not null"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null"`
	WarehouseID   uuid.UUID       `gorm:"type:uuid;not null"`
	UnitOfMeasure string          `gorm:"type:varchar(16)"`
	RequiredQty   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PickedQty     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status        string          `gorm:"type:varchar(20);not null;default:'planned'"`
}

// TableName returns the table name for GORM
func (DemandModel) TableName() string {
	return "demands"
}

// ToDomain converts the persistence model to a domain Demand.
func (m *DemandModel) ToDomain() *inventory.Demand {
	return &inventory.Demand{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Reference:         m.Reference,
		Type:              inventory.DemandType(m.Type),
		ProductID:         m.ProductID,
		WarehouseID:       m.WarehouseID,
		UnitOfMeasure:     m.UnitOfMeasure,
		RequiredQty:       m.RequiredQty,
		PickedQty:         m.PickedQty,
		Status:            inventory.DemandStatus(m.Status),
	}
}

// FromDomain populates the persistence model from a domain Demand.
func (m *DemandModel) FromDomain(d *inventory.Demand) {
	m.FromDomainAggregateRoot(d.BaseAggregateRoot)
	m.Reference = d.Reference
	m.Type = string(d.Type)
	m.ProductID = d.ProductID
	m.WarehouseID = d.WarehouseID
	m.UnitOfMeasure = d.UnitOfMeasure
	m.RequiredQty = d.RequiredQty
	m.PickedQty = d.PickedQty
	m.Status = d.Status.String()
}

// DemandModelFromDomain creates a new persistence model from a domain Demand.
func DemandModelFromDomain(d *inventory.Demand) *DemandModel {
	m := &DemandModel{}
	m.FromDomain(d)
	return m
}
