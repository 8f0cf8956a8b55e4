package models

import (
	"time"

	"gorm.io/gorm"
)

// Purchase is one hydrated line item ("compra"). UUID is the client's
// per-item idempotency key and is unique when present; rows hydrated
// from legacy events without a uuid carry NULL. TripID is a logical
// foreign key only — referential integrity is repaired at hydration
// time, not enforced by the engine.
type Purchase struct {
	ID                  uint      `json:"id" gorm:"primaryKey"`
	UUID                *string   `json:"uuid,omitempty" gorm:"column:uuid;type:varchar(64);uniqueIndex"`
	Product             string    `json:"product" gorm:"column:producto;type:varchar(255)"`
	SalePrice           float64   `json:"salePrice" gorm:"column:precio_venta;type:numeric(12,2)"`
	TripID              *int      `json:"tripID,omitempty" gorm:"column:viaje_id"`
	Quantity            float64   `json:"quantity" gorm:"column:cantidad;type:numeric(12,4)"`
	UnitCostMXN         float64   `json:"unitCostMXN" gorm:"column:costo_unit_mxn;type:numeric(12,2)"`
	RateMXNUSD          float64   `json:"rateMXNUSD" gorm:"column:tasa_mxn_usd;type:numeric(10,4)"`
	RateCUCUSD          float64   `json:"rateCUCUSD" gorm:"column:tasa_cuc_usd;type:numeric(10,4)"`
	Settled             bool      `json:"settled" gorm:"column:liquidado"`
	AmountPaid          float64   `json:"amountPaid" gorm:"column:monto_pagado;type:numeric(12,2)"`
	Category            string    `json:"category" gorm:"column:categoria;type:varchar(100)"`
	UnitOfMeasure       string    `json:"unitOfMeasure" gorm:"column:unidad_medida;type:varchar(30)"`
	UnitCostCUCSnapshot float64   `json:"unitCostCUCSnapshot" gorm:"column:costo_unit_cuc_snapshot;type:numeric(12,2)"`
	IsInvestment        bool      `json:"isInvestment" gorm:"column:es_inversion"`
	Folio               string    `json:"folio" gorm:"column:folio;type:varchar(100)"`
	CreatedAt           time.Time `json:"createdAt" gorm:"column:fecha_creacion"`
}

func (p *Purchase) BeforeCreate(_ *gorm.DB) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	return nil
}

func (Purchase) TableName() string {
	return "compras"
}
