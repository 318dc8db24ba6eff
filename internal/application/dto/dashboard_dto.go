package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard.
type DashboardSummaryDTO struct {
	ActiveOrders           int              `json:"active_orders"`
	OverdueOrders          int              `json:"overdue_orders"`
	LowStockMaterials      int              `json:"low_stock_materials"`
	OutstandingReceivables decimal.Decimal  `json:"outstanding_receivables"`
	RevenueMonthToDate     decimal.Decimal  `json:"revenue_month_to_date"`
	TopMaterials           []TopMaterialDTO `json:"top_materials"`
	DateLabel              string           `json:"date_label"` // ej: "Octubre 2026"
}

// TopMaterialDTO material con más unidades alquiladas en este momento.
type TopMaterialDTO struct {
	MaterialID      string          `json:"material_id"`
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	HiredQuantity   int             `json:"hired_quantity"`
	TotalQuantity   int             `json:"total_quantity"`
	UtilizationRate decimal.Decimal `json:"utilization_rate"`
}

// LookupItem resultado de autocompletado.
type LookupItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Extra string `json:"extra,omitempty"`
}
