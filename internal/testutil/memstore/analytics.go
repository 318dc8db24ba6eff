package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/domain/inventory"
	"github.com/Chrisx-39/FormMaster/internal/domain/repository"
)

func (s *Store) CountOrdersByStatus(_ context.Context, status string) (int, error) {
	n := 0
	s.read(func(d *data) {
		for _, o := range d.orders {
			if o.Status == status {
				n++
			}
		}
	})
	return n, nil
}

func (s *Store) CountOverdueOrders(_ context.Context, today time.Time) (int, error) {
	n := 0
	s.read(func(d *data) {
		for _, o := range d.orders {
			if o.Status == entity.OrderStatusActive && o.ExpectedReturnDate.Before(today) {
				n++
			}
		}
	})
	return n, nil
}

func (s *Store) CountLowStock(_ context.Context) (int, error) {
	n := 0
	s.read(func(d *data) {
		for _, m := range d.materials {
			m := m
			if inventory.IsLowStock(&m) {
				n++
			}
		}
	})
	return n, nil
}

func (s *Store) OutstandingReceivables(_ context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	s.read(func(d *data) {
		for _, inv := range d.invoices {
			switch inv.PaymentStatus {
			case entity.InvoiceStatusDraft, entity.InvoiceStatusCancelled:
				continue
			}
			total = total.Add(inv.BalanceDue)
		}
	})
	return total, nil
}

func (s *Store) RevenueBetween(_ context.Context, from, to time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	s.read(func(d *data) {
		for _, r := range d.revenue {
			if !r.PeriodStart.Before(from) && r.PeriodStart.Before(to) {
				total = total.Add(r.TotalRevenue)
			}
		}
	})
	return total, nil
}

func (s *Store) TopHiredMaterials(_ context.Context, limit int) ([]repository.MaterialUsage, error) {
	var out []repository.MaterialUsage
	s.read(func(d *data) {
		for _, m := range d.materials {
			if m.HiredQuantity == 0 {
				continue
			}
			out = append(out, repository.MaterialUsage{
				MaterialID:    m.ID,
				Code:          m.Code,
				Name:          m.Name,
				HiredQuantity: m.HiredQuantity,
				TotalQuantity: m.TotalQuantity,
			})
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].HiredQuantity != out[j].HiredQuantity {
			return out[i].HiredQuantity > out[j].HiredQuantity
		}
		return out[i].Code < out[j].Code
	})
	return page(out, limit, 0), nil
}
