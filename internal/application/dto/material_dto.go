package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/domain/inventory"
)

// CreateMaterialRequest body para POST /api/materials.
// TotalQuantity arranca todo disponible.
type CreateMaterialRequest struct {
	Code              string          `json:"code"`
	Name              string          `json:"name"`
	CategoryID        string          `json:"category_id,omitempty"`
	Description       string          `json:"description,omitempty"`
	UnitOfMeasure     string          `json:"unit_of_measure"`
	DailyHireRate     decimal.Decimal `json:"daily_hire_rate"`
	ReplacementCost   decimal.Decimal `json:"replacement_cost"`
	TotalQuantity     int             `json:"total_quantity"`
	MinimumStockLevel int             `json:"minimum_stock_level"`
	Location          string          `json:"location,omitempty"`
}

// UpdateMaterialRequest body para PUT /api/materials/:id. Las cantidades no se editan aquí.
type UpdateMaterialRequest struct {
	Name              *string          `json:"name,omitempty"`
	CategoryID        *string          `json:"category_id,omitempty"`
	Description       *string          `json:"description,omitempty"`
	DailyHireRate     *decimal.Decimal `json:"daily_hire_rate,omitempty"`
	ReplacementCost   *decimal.Decimal `json:"replacement_cost,omitempty"`
	MinimumStockLevel *int             `json:"minimum_stock_level,omitempty"`
	Location          *string          `json:"location,omitempty"`
}

// AdjustStockRequest body para POST /api/materials/:id/adjustments.
type AdjustStockRequest struct {
	Quantity  int    `json:"quantity"`
	Direction string `json:"direction"` // ADD | REMOVE
	Reason    string `json:"reason"`
	Reference string `json:"reference,omitempty"`
}

// InspectionRequest body para POST /api/materials/:id/inspections.
type InspectionRequest struct {
	Condition          string     `json:"condition"`
	SafeForUse         bool       `json:"safe_for_use"`
	Notes              string     `json:"notes,omitempty"`
	NextInspectionDate *time.Time `json:"next_inspection_date,omitempty"`
}

// AvailabilityResponse respuesta de GET /api/materials/:id/availability.
type AvailabilityResponse struct {
	Available         bool `json:"available"`
	AvailableQuantity int  `json:"available_quantity"`
}

// MaterialResponse material en respuestas.
type MaterialResponse struct {
	ID                string          `json:"id"`
	Code              string          `json:"code"`
	Name              string          `json:"name"`
	CategoryID        string          `json:"category_id,omitempty"`
	Description       string          `json:"description,omitempty"`
	UnitOfMeasure     string          `json:"unit_of_measure"`
	DailyHireRate     decimal.Decimal `json:"daily_hire_rate"`
	ReplacementCost   decimal.Decimal `json:"replacement_cost"`
	TotalQuantity     int             `json:"total_quantity"`
	AvailableQuantity int             `json:"available_quantity"`
	HiredQuantity     int             `json:"hired_quantity"`
	MinimumStockLevel int             `json:"minimum_stock_level"`
	LowStock          bool            `json:"low_stock"`
	UtilizationRate   decimal.Decimal `json:"utilization_rate"`
	Condition         string          `json:"condition"`
	Location          string          `json:"location,omitempty"`
	LastInspection    *time.Time      `json:"last_inspection,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// StockAdjustmentResponse ajuste registrado.
type StockAdjustmentResponse struct {
	ID         string    `json:"id"`
	MaterialID string    `json:"material_id"`
	Quantity   int       `json:"quantity"`
	Direction  string    `json:"direction"`
	Reason     string    `json:"reason"`
	Reference  string    `json:"reference,omitempty"`
	CreatedBy  string    `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
}

// CategoryRequest body para POST /api/categories.
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CategoryResponse categoría en respuestas.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToCategoryResponse convierte la entidad.
func ToCategoryResponse(c *entity.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description, CreatedAt: c.CreatedAt}
}

// ToStockAdjustmentResponse convierte la entidad.
func ToStockAdjustmentResponse(a *entity.StockAdjustment) StockAdjustmentResponse {
	return StockAdjustmentResponse{
		ID:         a.ID,
		MaterialID: a.MaterialID,
		Quantity:   a.Quantity,
		Direction:  a.Direction,
		Reason:     a.Reason,
		Reference:  a.Reference,
		CreatedBy:  a.CreatedBy,
		CreatedAt:  a.CreatedAt,
	}
}

// ToMaterialResponse convierte la entidad, con indicadores derivados.
func ToMaterialResponse(m *entity.Material) MaterialResponse {
	return MaterialResponse{
		ID:                m.ID,
		Code:              m.Code,
		Name:              m.Name,
		CategoryID:        m.CategoryID,
		Description:       m.Description,
		UnitOfMeasure:     m.UnitOfMeasure,
		DailyHireRate:     m.DailyHireRate,
		ReplacementCost:   m.ReplacementCost,
		TotalQuantity:     m.TotalQuantity,
		AvailableQuantity: m.AvailableQuantity,
		HiredQuantity:     m.HiredQuantity,
		MinimumStockLevel: m.MinimumStockLevel,
		LowStock:          inventory.IsLowStock(m),
		UtilizationRate:   inventory.UtilizationRate(m),
		Condition:         m.Condition,
		Location:          m.Location,
		LastInspection:    m.LastInspection,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}
