package memstore

import (
	"context"
	"sort"

	"github.com/Chrisx-39/FormMaster/internal/domain"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/domain/repository"
)

type transportRepo struct{ s *Store }

func (r transportRepo) Create(_ context.Context, tr *entity.TransportRequest) error {
	r.s.write(func(d *data) { d.transports[tr.ID] = *tr })
	return nil
}

func (r transportRepo) GetByID(_ context.Context, id string) (*entity.TransportRequest, error) {
	var out *entity.TransportRequest
	r.s.read(func(d *data) {
		if v, ok := d.transports[id]; ok {
			out = &v
		}
	})
	if out == nil {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

func (r transportRepo) Update(_ context.Context, tr *entity.TransportRequest) error {
	var err error
	r.s.write(func(d *data) {
		if _, ok := d.transports[tr.ID]; !ok {
			err = domain.ErrNotFound
			return
		}
		d.transports[tr.ID] = *tr
	})
	return err
}

func (r transportRepo) List(_ context.Context, f repository.ListFilter) ([]*entity.TransportRequest, error) {
	var out []*entity.TransportRequest
	r.s.read(func(d *data) {
		for _, v := range d.transports {
			if f.Status != "" && v.Status != f.Status {
				continue
			}
			v := v
			out = append(out, &v)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].RequestNumber > out[j].RequestNumber })
	return page(out, f.Limit, f.Offset), nil
}

type deliveryRepo struct{ s *Store }

func (r deliveryRepo) Create(_ context.Context, dl *entity.Delivery) error {
	r.s.write(func(d *data) { d.deliveries[dl.ID] = *dl })
	return nil
}

func (r deliveryRepo) GetByID(_ context.Context, id string) (*entity.Delivery, error) {
	var out *entity.Delivery
	r.s.read(func(d *data) {
		if v, ok := d.deliveries[id]; ok {
			out = &v
		}
	})
	if out == nil {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

func (r deliveryRepo) Update(_ context.Context, dl *entity.Delivery) error {
	var err error
	r.s.write(func(d *data) {
		if _, ok := d.deliveries[dl.ID]; !ok {
			err = domain.ErrNotFound
			return
		}
		d.deliveries[dl.ID] = *dl
	})
	return err
}

func (r deliveryRepo) ListByOrder(_ context.Context, orderID string) ([]*entity.Delivery, error) {
	var out []*entity.Delivery
	r.s.read(func(d *data) {
		for _, v := range d.deliveries {
			if v.HireOrderID == orderID {
				v := v
				out = append(out, &v)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].DeliveryNumber < out[j].DeliveryNumber })
	return out, nil
}

func (r deliveryRepo) CreateNote(_ context.Context, n *entity.DeliveryNote) error {
	var err error
	r.s.write(func(d *data) {
		for _, existing := range d.notes {
			if existing.DeliveryID == n.DeliveryID {
				err = domain.ErrDuplicate
				return
			}
		}
		c := *n
		c.Items = append([]entity.DeliveryNoteItem(nil), n.Items...)
		d.notes[n.ID] = c
	})
	return err
}

func (r deliveryRepo) GetNoteByDelivery(_ context.Context, deliveryID string) (*entity.DeliveryNote, error) {
	var out *entity.DeliveryNote
	r.s.read(func(d *data) {
		for _, v := range d.notes {
			if v.DeliveryID == deliveryID {
				v.Items = append([]entity.DeliveryNoteItem(nil), v.Items...)
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

func (r deliveryRepo) UpdateNote(_ context.Context, n *entity.DeliveryNote) error {
	var err error
	r.s.write(func(d *data) {
		if _, ok := d.notes[n.ID]; !ok {
			err = domain.ErrNotFound
			return
		}
		c := *n
		c.Items = append([]entity.DeliveryNoteItem(nil), n.Items...)
		d.notes[n.ID] = c
	})
	return err
}

func (r deliveryRepo) CreateGRV(_ context.Context, g *entity.GoodsReceivedVoucher) error {
	r.s.write(func(d *data) {
		c := *g
		c.Items = append([]entity.GRVItem(nil), g.Items...)
		d.grvs[g.ID] = c
	})
	return nil
}

func (r deliveryRepo) GetGRV(_ context.Context, id string) (*entity.GoodsReceivedVoucher, error) {
	var out *entity.GoodsReceivedVoucher
	r.s.read(func(d *data) {
		if v, ok := d.grvs[id]; ok {
			v.Items = append([]entity.GRVItem(nil), v.Items...)
			out = &v
		}
	})
	if out == nil {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

func (r deliveryRepo) ListGRVByOrder(_ context.Context, orderID string) ([]*entity.GoodsReceivedVoucher, error) {
	var out []*entity.GoodsReceivedVoucher
	r.s.read(func(d *data) {
		for _, v := range d.grvs {
			if v.HireOrderID == orderID {
				v.Items = append([]entity.GRVItem(nil), v.Items...)
				out = append(out, &v)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].GRVNumber < out[j].GRVNumber })
	return out, nil
}
