package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chrisx-39/FormMaster/internal/application/analytics"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/testutil/memstore"
)

func TestGetSummary(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	store := memstore.New()

	panels := store.SeedMaterial(t, "PAN-120", 100, "8")
	panels.AvailableQuantity, panels.HiredQuantity = 60, 40
	panels.MinimumStockLevel = 60
	require.NoError(t, store.Materials().Update(ctx, panels))

	for i, expected := range []time.Time{now.AddDate(0, 0, 5), now.AddDate(0, 0, -2)} {
		require.NoError(t, store.Orders().Create(ctx, &entity.HireOrder{
			ID:                 []string{"o-1", "o-2"}[i],
			QuotationID:        []string{"q-1", "q-2"}[i],
			Status:             entity.OrderStatusActive,
			ExpectedReturnDate: expected,
		}))
	}
	require.NoError(t, store.Invoices().Create(ctx, &entity.Invoice{
		ID: "inv-1", PaymentStatus: entity.InvoiceStatusPartial, BalanceDue: decimal.NewFromInt(750),
	}))
	require.NoError(t, store.Invoices().Create(ctx, &entity.Invoice{
		ID: "inv-2", PaymentStatus: entity.InvoiceStatusDraft, BalanceDue: decimal.NewFromInt(999),
	}))
	require.NoError(t, store.Revenue().Create(ctx, &entity.RevenueRecord{
		ID: "r-1", HireOrderID: "o-0", PeriodStart: now.AddDate(0, 0, -3), PeriodEnd: now.AddDate(0, 0, -2),
		TotalRevenue: decimal.NewFromInt(1200),
	}))

	out, err := analytics.NewDashboardUseCase(store).GetSummary(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 2, out.ActiveOrders)
	assert.Equal(t, 1, out.OverdueOrders)
	assert.Equal(t, 1, out.LowStockMaterials)
	assert.Equal(t, "750.00", out.OutstandingReceivables.StringFixed(2))
	assert.Equal(t, "1200.00", out.RevenueMonthToDate.StringFixed(2))
	require.Len(t, out.TopMaterials, 1)
	assert.Equal(t, "40.00", out.TopMaterials[0].UtilizationRate.StringFixed(2))
	assert.Equal(t, "Octubre 2026", out.DateLabel)
}
