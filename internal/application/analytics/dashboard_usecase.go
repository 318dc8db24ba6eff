// Package analytics contiene el caso de uso del dashboard operativo y financiero.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Chrisx-39/FormMaster/internal/application/dto"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/domain/repository"
)

const dashboardTopMaterials = 5 // materiales en el widget del dashboard

// DashboardUseCase genera el resumen de órdenes, stock, cartera e ingresos del mes.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetSummary construye el DashboardSummaryDTO a la fecha now.
//
// Seis consultas en paralelo; la primera que falle determina el error.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, now time.Time) (*dto.DashboardSummaryDTO, error) {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	type countResult struct {
		n   int
		err error
	}
	type amountResult struct {
		amount decimal.Decimal
		err    error
	}
	type topResult struct {
		rows []repository.MaterialUsage
		err  error
	}

	activeCh := make(chan countResult, 1)
	overdueCh := make(chan countResult, 1)
	lowCh := make(chan countResult, 1)
	receivablesCh := make(chan amountResult, 1)
	revenueCh := make(chan amountResult, 1)
	topCh := make(chan topResult, 1)

	go func() {
		n, err := uc.analyticsRepo.CountOrdersByStatus(ctx, entity.OrderStatusActive)
		activeCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.CountOverdueOrders(ctx, now)
		overdueCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.CountLowStock(ctx)
		lowCh <- countResult{n, err}
	}()
	go func() {
		amount, err := uc.analyticsRepo.OutstandingReceivables(ctx)
		receivablesCh <- amountResult{amount, err}
	}()
	go func() {
		amount, err := uc.analyticsRepo.RevenueBetween(ctx, monthStart, now)
		revenueCh <- amountResult{amount, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.TopHiredMaterials(ctx, dashboardTopMaterials)
		topCh <- topResult{rows, err}
	}()

	active := <-activeCh
	overdue := <-overdueCh
	low := <-lowCh
	receivables := <-receivablesCh
	revenue := <-revenueCh
	top := <-topCh

	switch {
	case active.err != nil:
		return nil, fmt.Errorf("dashboard: órdenes activas: %w", active.err)
	case overdue.err != nil:
		return nil, fmt.Errorf("dashboard: órdenes vencidas: %w", overdue.err)
	case low.err != nil:
		return nil, fmt.Errorf("dashboard: stock bajo: %w", low.err)
	case receivables.err != nil:
		return nil, fmt.Errorf("dashboard: cartera: %w", receivables.err)
	case revenue.err != nil:
		return nil, fmt.Errorf("dashboard: ingresos del mes: %w", revenue.err)
	case top.err != nil:
		return nil, fmt.Errorf("dashboard: materiales más alquilados: %w", top.err)
	}

	materials := make([]dto.TopMaterialDTO, 0, len(top.rows))
	for _, r := range top.rows {
		rate := decimal.Zero
		if r.TotalQuantity > 0 {
			rate = decimal.NewFromInt(int64(r.HiredQuantity)).
				Mul(decimal.NewFromInt(100)).
				Div(decimal.NewFromInt(int64(r.TotalQuantity))).
				Round(2)
		}
		materials = append(materials, dto.TopMaterialDTO{
			MaterialID:      r.MaterialID,
			Code:            r.Code,
			Name:            r.Name,
			HiredQuantity:   r.HiredQuantity,
			TotalQuantity:   r.TotalQuantity,
			UtilizationRate: rate,
		})
	}

	return &dto.DashboardSummaryDTO{
		ActiveOrders:           active.n,
		OverdueOrders:          overdue.n,
		LowStockMaterials:      low.n,
		OutstandingReceivables: receivables.amount.Round(2),
		RevenueMonthToDate:     revenue.amount.Round(2),
		TopMaterials:           materials,
		DateLabel:              monthLabel(now),
	}, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Octubre 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
