package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Chrisx-39/FormMaster/internal/domain"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/domain/repository"
)

type invoiceRepo struct{ s *Store }

func (r invoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	r.s.write(func(d *data) { d.invoices[inv.ID] = *inv })
	return nil
}

func (r invoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	var out *entity.Invoice
	r.s.read(func(d *data) {
		if v, ok := d.invoices[id]; ok {
			out = &v
		}
	})
	if out == nil {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

func (r invoiceRepo) GetForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.GetByID(ctx, id)
}

func (r invoiceRepo) Update(_ context.Context, inv *entity.Invoice) error {
	var err error
	r.s.write(func(d *data) {
		if _, ok := d.invoices[inv.ID]; !ok {
			err = domain.ErrNotFound
			return
		}
		d.invoices[inv.ID] = *inv
	})
	return err
}

func (r invoiceRepo) ListByOrder(_ context.Context, orderID string) ([]*entity.Invoice, error) {
	return r.filter(func(v entity.Invoice) bool { return v.HireOrderID == orderID }), nil
}

func (r invoiceRepo) List(_ context.Context, f repository.ListFilter) ([]*entity.Invoice, error) {
	out := r.filter(func(v entity.Invoice) bool { return matches(f, v.PaymentStatus, v.ClientID) })
	return page(out, f.Limit, f.Offset), nil
}

func (r invoiceRepo) ListPastDue(_ context.Context, today time.Time) ([]*entity.Invoice, error) {
	return r.filter(func(v entity.Invoice) bool {
		return v.PaymentStatus == entity.InvoiceStatusSent && v.DueDate.Before(today)
	}), nil
}

func (r invoiceRepo) filter(keep func(entity.Invoice) bool) []*entity.Invoice {
	var out []*entity.Invoice
	r.s.read(func(d *data) {
		for _, v := range d.invoices {
			if keep(v) {
				v := v
				out = append(out, &v)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].InvoiceNumber < out[j].InvoiceNumber })
	return out
}

type paymentRepo struct{ s *Store }

func (r paymentRepo) Create(_ context.Context, p *entity.Payment) error {
	r.s.write(func(d *data) { d.payments[p.ID] = *p })
	return nil
}

func (r paymentRepo) GetByID(_ context.Context, id string) (*entity.Payment, error) {
	var out *entity.Payment
	r.s.read(func(d *data) {
		if v, ok := d.payments[id]; ok {
			out = &v
		}
	})
	if out == nil {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

func (r paymentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Payment, error) {
	return r.GetByID(ctx, id)
}

func (r paymentRepo) Update(_ context.Context, p *entity.Payment) error {
	var err error
	r.s.write(func(d *data) {
		if _, ok := d.payments[p.ID]; !ok {
			err = domain.ErrNotFound
			return
		}
		d.payments[p.ID] = *p
	})
	return err
}

func (r paymentRepo) ListByInvoice(_ context.Context, invoiceID string) ([]*entity.Payment, error) {
	var out []*entity.Payment
	r.s.read(func(d *data) {
		for _, v := range d.payments {
			if v.InvoiceID == invoiceID {
				v := v
				out = append(out, &v)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].PaymentNumber < out[j].PaymentNumber })
	return out, nil
}

func (r paymentRepo) SumConfirmed(_ context.Context, invoiceID string) (decimal.Decimal, error) {
	total := decimal.Zero
	r.s.read(func(d *data) {
		for _, v := range d.payments {
			if v.InvoiceID == invoiceID && v.Confirmed {
				total = total.Add(v.Amount)
			}
		}
	})
	return total, nil
}

type creditNoteRepo struct{ s *Store }

func (r creditNoteRepo) Create(_ context.Context, cn *entity.CreditNote) error {
	r.s.write(func(d *data) { d.creditNotes[cn.ID] = *cn })
	return nil
}

func (r creditNoteRepo) GetByID(_ context.Context, id string) (*entity.CreditNote, error) {
	var out *entity.CreditNote
	r.s.read(func(d *data) {
		if v, ok := d.creditNotes[id]; ok {
			out = &v
		}
	})
	if out == nil {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

func (r creditNoteRepo) GetForUpdate(ctx context.Context, id string) (*entity.CreditNote, error) {
	return r.GetByID(ctx, id)
}

func (r creditNoteRepo) Update(_ context.Context, cn *entity.CreditNote) error {
	var err error
	r.s.write(func(d *data) {
		if _, ok := d.creditNotes[cn.ID]; !ok {
			err = domain.ErrNotFound
			return
		}
		d.creditNotes[cn.ID] = *cn
	})
	return err
}

func (r creditNoteRepo) ListByClient(_ context.Context, clientID string) ([]*entity.CreditNote, error) {
	var out []*entity.CreditNote
	r.s.read(func(d *data) {
		for _, v := range d.creditNotes {
			if v.ClientID == clientID {
				v := v
				out = append(out, &v)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreditNoteNumber < out[j].CreditNoteNumber })
	return out, nil
}

type revenueRepo struct{ s *Store }

func (r revenueRepo) Create(_ context.Context, rec *entity.RevenueRecord) error {
	var err error
	r.s.write(func(d *data) {
		for _, v := range d.revenue {
			if v.HireOrderID == rec.HireOrderID && v.PeriodStart.Equal(rec.PeriodStart) && v.PeriodEnd.Equal(rec.PeriodEnd) {
				err = domain.ErrDuplicate
				return
			}
		}
		d.revenue = append(d.revenue, *rec)
	})
	return err
}

func (r revenueRepo) Exists(_ context.Context, orderID string, start, end time.Time) (bool, error) {
	found := false
	r.s.read(func(d *data) {
		for _, v := range d.revenue {
			if v.HireOrderID == orderID && v.PeriodStart.Equal(start) && v.PeriodEnd.Equal(end) {
				found = true
				return
			}
		}
	})
	return found, nil
}

type expenseRepo struct{ s *Store }

func (r expenseRepo) Create(_ context.Context, e *entity.Expense) error {
	var err error
	r.s.write(func(d *data) {
		for _, existing := range d.expenses {
			if existing.ExpenseNumber == e.ExpenseNumber {
				err = domain.ErrDuplicate
				return
			}
		}
		d.expenses[e.ID] = *e
	})
	return err
}

func (r expenseRepo) GetByID(_ context.Context, id string) (*entity.Expense, error) {
	var out *entity.Expense
	r.s.read(func(d *data) {
		if v, ok := d.expenses[id]; ok {
			out = &v
		}
	})
	if out == nil {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

func (r expenseRepo) GetForUpdate(ctx context.Context, id string) (*entity.Expense, error) {
	return r.GetByID(ctx, id)
}

func (r expenseRepo) Update(_ context.Context, e *entity.Expense) error {
	var err error
	r.s.write(func(d *data) {
		if _, ok := d.expenses[e.ID]; !ok {
			err = domain.ErrNotFound
			return
		}
		d.expenses[e.ID] = *e
	})
	return err
}

func (r expenseRepo) List(_ context.Context, f repository.ExpenseFilter) ([]*entity.Expense, error) {
	var out []*entity.Expense
	r.s.read(func(d *data) {
		for _, v := range d.expenses {
			if f.Category != "" && v.Category != f.Category {
				continue
			}
			if f.Approved != nil && v.Approved() != *f.Approved {
				continue
			}
			if f.From != nil && v.Date.Before(*f.From) {
				continue
			}
			if f.To != nil && v.Date.After(*f.To) {
				continue
			}
			v := v
			out = append(out, &v)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ExpenseNumber > out[j].ExpenseNumber })
	return page(out, f.Limit, f.Offset), nil
}
