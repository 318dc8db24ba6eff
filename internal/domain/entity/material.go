package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Condiciones posibles de un material en bodega.
const (
	MaterialConditionGood             = "GOOD"
	MaterialConditionFair             = "FAIR"
	MaterialConditionDamaged          = "DAMAGED"
	MaterialConditionUnderMaintenance = "UNDER_MAINTENANCE"
)

// Material representa un artículo alquilable (andamio, encofrado, accesorio).
// Los contadores cumplen siempre AvailableQuantity + HiredQuantity == TotalQuantity.
type Material struct {
	ID                string
	Code              string // único
	Name              string
	CategoryID        string
	Description       string
	UnitOfMeasure     string
	DailyHireRate     decimal.Decimal
	ReplacementCost   decimal.Decimal
	TotalQuantity     int
	AvailableQuantity int
	HiredQuantity     int
	MinimumStockLevel int
	Condition         string
	Location          string
	LastInspection    *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Dirección de un ajuste manual o de una baja por pérdida.
const (
	AdjustmentAdd      = "ADD"
	AdjustmentRemove   = "REMOVE"
	AdjustmentWriteOff = "WRITE_OFF"
)

// StockAdjustment registro de auditoría de cada cambio de stock fuera del ciclo de reserva.
type StockAdjustment struct {
	ID         string
	MaterialID string
	Quantity   int
	Direction  string // ADD, REMOVE, WRITE_OFF
	Reason     string
	Reference  string // número de orden en las bajas
	CreatedBy  string
	CreatedAt  time.Time
}

// MaterialInspection resultado de una inspección de seguridad de un material.
type MaterialInspection struct {
	ID                 string
	MaterialID         string
	InspectedBy        string
	InspectionDate     time.Time
	Condition          string
	SafeForUse         bool
	Notes              string
	NextInspectionDate *time.Time
	CreatedAt          time.Time
}
