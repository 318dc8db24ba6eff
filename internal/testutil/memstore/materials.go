package memstore

import (
	"context"
	"sort"
	"strings"

	"github.com/Chrisx-39/FormMaster/internal/domain"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/domain/repository"
)

type materialRepo struct{ s *Store }

func (r materialRepo) Create(_ context.Context, m *entity.Material) error {
	var err error
	r.s.write(func(d *data) {
		for _, existing := range d.materials {
			if existing.Code == m.Code {
				err = domain.ErrDuplicate
				return
			}
		}
		d.materials[m.ID] = *m
	})
	return err
}

func (r materialRepo) GetByID(_ context.Context, id string) (*entity.Material, error) {
	var out *entity.Material
	r.s.read(func(d *data) {
		if m, ok := d.materials[id]; ok {
			out = &m
		}
	})
	if out == nil {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

func (r materialRepo) GetByCode(_ context.Context, code string) (*entity.Material, error) {
	var out *entity.Material
	r.s.read(func(d *data) {
		for _, m := range d.materials {
			if m.Code == code {
				m := m
				out = &m
				return
			}
		}
	})
	if out == nil {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

func (r materialRepo) Update(_ context.Context, m *entity.Material) error {
	var err error
	r.s.write(func(d *data) {
		if _, ok := d.materials[m.ID]; !ok {
			err = domain.ErrNotFound
			return
		}
		if m.AvailableQuantity < 0 || m.HiredQuantity < 0 || m.AvailableQuantity+m.HiredQuantity != m.TotalQuantity {
			// misma verificación que el CHECK de la tabla materials
			err = domain.ErrConflict
			return
		}
		d.materials[m.ID] = *m
	})
	return err
}

func (r materialRepo) List(_ context.Context, f repository.MaterialFilter) ([]*entity.Material, error) {
	var out []*entity.Material
	r.s.read(func(d *data) {
		for _, m := range d.materials {
			if f.CategoryID != "" && m.CategoryID != f.CategoryID {
				continue
			}
			if f.Search != "" && !hasPrefixFold(m.Code, f.Search) && !hasPrefixFold(m.Name, f.Search) {
				continue
			}
			if f.LowStock && m.AvailableQuantity > m.MinimumStockLevel {
				continue
			}
			m := m
			out = append(out, &m)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return page(out, f.Limit, f.Offset), nil
}

func (r materialRepo) ListLowStock(ctx context.Context) ([]*entity.Material, error) {
	return r.List(ctx, repository.MaterialFilter{LowStock: true})
}

func (r materialRepo) GetForUpdate(_ context.Context, ids []string) (map[string]*entity.Material, error) {
	out := make(map[string]*entity.Material, len(ids))
	var err error
	r.s.read(func(d *data) {
		for _, id := range ids {
			m, ok := d.materials[id]
			if !ok {
				err = domain.ErrNotFound
				return
			}
			out[id] = &m
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r materialRepo) CreateAdjustment(_ context.Context, a *entity.StockAdjustment) error {
	r.s.write(func(d *data) { d.adjustments = append(d.adjustments, *a) })
	return nil
}

func (r materialRepo) ListAdjustments(_ context.Context, materialID string, limit int) ([]*entity.StockAdjustment, error) {
	var out []*entity.StockAdjustment
	r.s.read(func(d *data) {
		for i := len(d.adjustments) - 1; i >= 0; i-- {
			if d.adjustments[i].MaterialID == materialID {
				a := d.adjustments[i]
				out = append(out, &a)
			}
		}
	})
	return page(out, limit, 0), nil
}

func (r materialRepo) CreateInspection(_ context.Context, in *entity.MaterialInspection) error {
	r.s.write(func(d *data) { d.inspections = append(d.inspections, *in) })
	return nil
}

type categoryRepo struct{ s *Store }

func (r categoryRepo) Create(_ context.Context, c *entity.Category) error {
	var err error
	r.s.write(func(d *data) {
		for _, existing := range d.categories {
			if strings.EqualFold(existing.Name, c.Name) {
				err = domain.ErrDuplicate
				return
			}
		}
		d.categories[c.ID] = *c
	})
	return err
}

func (r categoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	var out *entity.Category
	r.s.read(func(d *data) {
		if c, ok := d.categories[id]; ok {
			out = &c
		}
	})
	if out == nil {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

func (r categoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	var out []*entity.Category
	r.s.read(func(d *data) {
		for _, c := range d.categories {
			c := c
			out = append(out, &c)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
