package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas agregadas del dashboard. Solo lectura sobre el pool.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

func (r *AnalyticsRepo) count(ctx context.Context, op, query string, args ...any) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

func (r *AnalyticsRepo) CountOrdersByStatus(ctx context.Context, status string) (int, error) {
	return r.count(ctx, "count orders by status", `SELECT COUNT(*) FROM hire_orders WHERE status = $1`, status)
}

func (r *AnalyticsRepo) CountOverdueOrders(ctx context.Context, today time.Time) (int, error) {
	return r.count(ctx, "count overdue orders",
		`SELECT COUNT(*) FROM hire_orders WHERE status = $1 AND expected_return_date < $2`,
		entity.OrderStatusActive, today)
}

func (r *AnalyticsRepo) CountLowStock(ctx context.Context) (int, error) {
	return r.count(ctx, "count low stock",
		`SELECT COUNT(*) FROM materials WHERE available_quantity <= minimum_stock_level`)
}

func (r *AnalyticsRepo) OutstandingReceivables(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(balance_due), 0) FROM invoices
		WHERE payment_status NOT IN ($1, $2)`, entity.InvoiceStatusDraft, entity.InvoiceStatusCancelled).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("outstanding receivables: %w", err)
	}
	return total, nil
}

func (r *AnalyticsRepo) RevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(total_revenue), 0) FROM revenue_records
		WHERE period_start >= $1 AND period_start < $2`, from, to).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("revenue between: %w", err)
	}
	return total, nil
}

func (r *AnalyticsRepo) TopHiredMaterials(ctx context.Context, limit int) ([]repository.MaterialUsage, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, code, name, hired_quantity, total_quantity FROM materials
		WHERE hired_quantity > 0 ORDER BY hired_quantity DESC, code LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("top hired materials: %w", err)
	}
	defer rows.Close()
	var out []repository.MaterialUsage
	for rows.Next() {
		var u repository.MaterialUsage
		if err := rows.Scan(&u.MaterialID, &u.Code, &u.Name, &u.HiredQuantity, &u.TotalQuantity); err != nil {
			return nil, fmt.Errorf("scan top hired materials: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
