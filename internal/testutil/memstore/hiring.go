package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/Chrisx-39/FormMaster/internal/domain"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/domain/repository"
)

func copyRFQ(r entity.RequestForQuotation) *entity.RequestForQuotation {
	r.Items = append([]entity.RFQItem(nil), r.Items...)
	return &r
}

func copyQuotation(q entity.Quotation) *entity.Quotation {
	q.Items = append([]entity.QuotationItem(nil), q.Items...)
	return &q
}

func copyOrder(o entity.HireOrder) *entity.HireOrder {
	o.Items = append([]entity.HireOrderItem(nil), o.Items...)
	return &o
}

type rfqRepo struct{ s *Store }

func (r rfqRepo) Create(_ context.Context, rfq *entity.RequestForQuotation) error {
	r.s.write(func(d *data) { d.rfqs[rfq.ID] = *copyRFQ(*rfq) })
	return nil
}

func (r rfqRepo) GetByID(_ context.Context, id string) (*entity.RequestForQuotation, error) {
	var out *entity.RequestForQuotation
	r.s.read(func(d *data) {
		if v, ok := d.rfqs[id]; ok {
			out = copyRFQ(v)
		}
	})
	if out == nil {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

func (r rfqRepo) Update(_ context.Context, rfq *entity.RequestForQuotation) error {
	var err error
	r.s.write(func(d *data) {
		if _, ok := d.rfqs[rfq.ID]; !ok {
			err = domain.ErrNotFound
			return
		}
		d.rfqs[rfq.ID] = *copyRFQ(*rfq)
	})
	return err
}

func (r rfqRepo) List(_ context.Context, f repository.ListFilter) ([]*entity.RequestForQuotation, error) {
	var out []*entity.RequestForQuotation
	r.s.read(func(d *data) {
		for _, v := range d.rfqs {
			if matches(f, v.Status, v.ClientID) {
				out = append(out, copyRFQ(v))
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].RFQNumber > out[j].RFQNumber })
	return page(out, f.Limit, f.Offset), nil
}

type quotationRepo struct{ s *Store }

func (r quotationRepo) Create(_ context.Context, q *entity.Quotation) error {
	r.s.write(func(d *data) { d.quotations[q.ID] = *copyQuotation(*q) })
	return nil
}

func (r quotationRepo) GetByID(_ context.Context, id string) (*entity.Quotation, error) {
	var out *entity.Quotation
	r.s.read(func(d *data) {
		if v, ok := d.quotations[id]; ok {
			out = copyQuotation(v)
		}
	})
	if out == nil {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

func (r quotationRepo) GetForUpdate(ctx context.Context, id string) (*entity.Quotation, error) {
	return r.GetByID(ctx, id)
}

func (r quotationRepo) Update(_ context.Context, q *entity.Quotation) error {
	var err error
	r.s.write(func(d *data) {
		if _, ok := d.quotations[q.ID]; !ok {
			err = domain.ErrNotFound
			return
		}
		d.quotations[q.ID] = *copyQuotation(*q)
	})
	return err
}

func (r quotationRepo) List(_ context.Context, f repository.ListFilter) ([]*entity.Quotation, error) {
	var out []*entity.Quotation
	r.s.read(func(d *data) {
		for _, v := range d.quotations {
			if matches(f, v.Status, v.ClientID) {
				out = append(out, copyQuotation(v))
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].QuotationNumber > out[j].QuotationNumber })
	return page(out, f.Limit, f.Offset), nil
}

func (r quotationRepo) ListExpirable(_ context.Context, before time.Time) ([]*entity.Quotation, error) {
	var out []*entity.Quotation
	r.s.read(func(d *data) {
		for _, v := range d.quotations {
			if (v.Status == entity.QuotationStatusDraft || v.Status == entity.QuotationStatusSent) && v.ValidUntil.Before(before) {
				out = append(out, copyQuotation(v))
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].QuotationNumber < out[j].QuotationNumber })
	return out, nil
}

type orderRepo struct{ s *Store }

func (r orderRepo) Create(_ context.Context, o *entity.HireOrder) error {
	var err error
	r.s.write(func(d *data) {
		for _, existing := range d.orders {
			if existing.QuotationID == o.QuotationID {
				// UNIQUE(quotation_id)
				err = domain.ErrAlreadyConverted
				return
			}
		}
		d.orders[o.ID] = *copyOrder(*o)
	})
	return err
}

func (r orderRepo) GetByID(_ context.Context, id string) (*entity.HireOrder, error) {
	var out *entity.HireOrder
	r.s.read(func(d *data) {
		if v, ok := d.orders[id]; ok {
			out = copyOrder(v)
		}
	})
	if out == nil {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

func (r orderRepo) GetForUpdate(ctx context.Context, id string) (*entity.HireOrder, error) {
	return r.GetByID(ctx, id)
}

func (r orderRepo) GetByQuotationID(_ context.Context, quotationID string) (*entity.HireOrder, error) {
	var out *entity.HireOrder
	r.s.read(func(d *data) {
		for _, v := range d.orders {
			if v.QuotationID == quotationID {
				out = copyOrder(v)
				return
			}
		}
	})
	if out == nil {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

func (r orderRepo) Update(_ context.Context, o *entity.HireOrder) error {
	var err error
	r.s.write(func(d *data) {
		if _, ok := d.orders[o.ID]; !ok {
			err = domain.ErrNotFound
			return
		}
		d.orders[o.ID] = *copyOrder(*o)
	})
	return err
}

func (r orderRepo) List(_ context.Context, f repository.ListFilter) ([]*entity.HireOrder, error) {
	var out []*entity.HireOrder
	r.s.read(func(d *data) {
		for _, v := range d.orders {
			if matches(f, v.Status, v.ClientID) {
				out = append(out, copyOrder(v))
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].OrderNumber > out[j].OrderNumber })
	return page(out, f.Limit, f.Offset), nil
}

func (r orderRepo) ListOverdue(_ context.Context, today time.Time) ([]*entity.HireOrder, error) {
	var out []*entity.HireOrder
	r.s.read(func(d *data) {
		for _, v := range d.orders {
			if v.Status == entity.OrderStatusActive && v.ExpectedReturnDate.Before(today) {
				out = append(out, copyOrder(v))
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].OrderNumber < out[j].OrderNumber })
	return out, nil
}

func (r orderRepo) ListCompletedBetween(_ context.Context, from, to time.Time) ([]*entity.HireOrder, error) {
	var out []*entity.HireOrder
	r.s.read(func(d *data) {
		for _, v := range d.orders {
			if v.Status == entity.OrderStatusCompleted && !v.UpdatedAt.Before(from) && v.UpdatedAt.Before(to) {
				out = append(out, copyOrder(v))
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].OrderNumber < out[j].OrderNumber })
	return out, nil
}

func (r orderRepo) Search(_ context.Context, prefix string, limit int) ([]*entity.HireOrder, error) {
	var out []*entity.HireOrder
	r.s.read(func(d *data) {
		for _, v := range d.orders {
			if hasPrefixFold(v.OrderNumber, prefix) {
				out = append(out, copyOrder(v))
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].OrderNumber < out[j].OrderNumber })
	return page(out, limit, 0), nil
}

func (r orderRepo) CreateLease(_ context.Context, la *entity.LeaseAgreement) error {
	var err error
	r.s.write(func(d *data) {
		for _, existing := range d.leases {
			if existing.HireOrderID == la.HireOrderID {
				err = domain.ErrDuplicate
				return
			}
		}
		d.leases[la.ID] = *la
	})
	return err
}

func (r orderRepo) GetLeaseByOrder(_ context.Context, orderID string) (*entity.LeaseAgreement, error) {
	var out *entity.LeaseAgreement
	r.s.read(func(d *data) {
		for _, v := range d.leases {
			if v.HireOrderID == orderID {
				v := v
				out = &v
				return
			}
		}
	})
	if out == nil {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

func (r orderRepo) UpdateLease(_ context.Context, la *entity.LeaseAgreement) error {
	var err error
	r.s.write(func(d *data) {
		if _, ok := d.leases[la.ID]; !ok {
			err = domain.ErrNotFound
			return
		}
		d.leases[la.ID] = *la
	})
	return err
}

func matches(f repository.ListFilter, status, clientID string) bool {
	if f.Status != "" && status != f.Status {
		return false
	}
	if f.ClientID != "" && clientID != f.ClientID {
		return false
	}
	return true
}
