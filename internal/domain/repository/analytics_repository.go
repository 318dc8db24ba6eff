package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// MaterialUsage fila del widget de materiales más alquilados.
type MaterialUsage struct {
	MaterialID    string
	Code          string
	Name          string
	HiredQuantity int
	TotalQuantity int
}

// AnalyticsRepository consultas de lectura para el dashboard. No modifica datos.
type AnalyticsRepository interface {
	CountOrdersByStatus(ctx context.Context, status string) (int, error)
	CountOverdueOrders(ctx context.Context, today time.Time) (int, error)
	CountLowStock(ctx context.Context) (int, error)
	// OutstandingReceivables suma de BalanceDue de facturas emitidas no anuladas.
	OutstandingReceivables(ctx context.Context) (decimal.Decimal, error)
	// RevenueBetween suma de TotalRevenue con PeriodStart en [from, to).
	RevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	TopHiredMaterials(ctx context.Context, limit int) ([]MaterialUsage, error)
}
