package memstore

import (
	"context"
	"sort"
	"strings"

	"github.com/Chrisx-39/FormMaster/internal/domain"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
)

type profileRepo struct{ s *Store }

func (r profileRepo) CreateContact(_ context.Context, c *entity.ClientContact) error {
	var err error
	r.s.write(func(d *data) {
		for _, existing := range d.contacts {
			if existing.ClientID == c.ClientID && c.Email != "" && strings.EqualFold(existing.Email, c.Email) {
				err = domain.ErrDuplicate
				return
			}
		}
		d.contacts[c.ID] = *c
	})
	return err
}

func (r profileRepo) GetContact(_ context.Context, id string) (*entity.ClientContact, error) {
	var out *entity.ClientContact
	r.s.read(func(d *data) {
		if c, ok := d.contacts[id]; ok {
			out = &c
		}
	})
	if out == nil {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

func (r profileRepo) UpdateContact(_ context.Context, c *entity.ClientContact) error {
	var err error
	r.s.write(func(d *data) {
		if _, ok := d.contacts[c.ID]; !ok {
			err = domain.ErrNotFound
			return
		}
		d.contacts[c.ID] = *c
	})
	return err
}

func (r profileRepo) ListContacts(_ context.Context, clientID string) ([]*entity.ClientContact, error) {
	var out []*entity.ClientContact
	r.s.read(func(d *data) {
		for _, c := range d.contacts {
			if c.ClientID == clientID {
				c := c
				out = append(out, &c)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r profileRepo) CreateSite(_ context.Context, s *entity.ClientSite) error {
	var err error
	r.s.write(func(d *data) {
		for _, existing := range d.sites {
			if existing.ClientID == s.ClientID && strings.EqualFold(existing.SiteName, s.SiteName) {
				err = domain.ErrDuplicate
				return
			}
		}
		d.sites[s.ID] = *s
	})
	return err
}

func (r profileRepo) GetSite(_ context.Context, id string) (*entity.ClientSite, error) {
	var out *entity.ClientSite
	r.s.read(func(d *data) {
		if s, ok := d.sites[id]; ok {
			out = &s
		}
	})
	if out == nil {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

func (r profileRepo) UpdateSite(_ context.Context, s *entity.ClientSite) error {
	var err error
	r.s.write(func(d *data) {
		if _, ok := d.sites[s.ID]; !ok {
			err = domain.ErrNotFound
			return
		}
		d.sites[s.ID] = *s
	})
	return err
}

func (r profileRepo) ListSites(_ context.Context, clientID string) ([]*entity.ClientSite, error) {
	var out []*entity.ClientSite
	r.s.read(func(d *data) {
		for _, s := range d.sites {
			if s.ClientID == clientID {
				s := s
				out = append(out, &s)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsMainSite != out[j].IsMainSite {
			return out[i].IsMainSite
		}
		return out[i].SiteName < out[j].SiteName
	})
	return out, nil
}

func (r profileRepo) ClearMainSite(_ context.Context, clientID string) error {
	r.s.write(func(d *data) {
		for id, s := range d.sites {
			if s.ClientID == clientID && s.IsMainSite {
				s.IsMainSite = false
				d.sites[id] = s
			}
		}
	})
	return nil
}

func (r profileRepo) CreateNote(_ context.Context, n *entity.ClientNote) error {
	r.s.write(func(d *data) { d.clientNotes[n.ID] = *n })
	return nil
}

func (r profileRepo) GetNote(_ context.Context, id string) (*entity.ClientNote, error) {
	var out *entity.ClientNote
	r.s.read(func(d *data) {
		if n, ok := d.clientNotes[id]; ok {
			out = &n
		}
	})
	if out == nil {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

func (r profileRepo) UpdateNote(_ context.Context, n *entity.ClientNote) error {
	var err error
	r.s.write(func(d *data) {
		if _, ok := d.clientNotes[n.ID]; !ok {
			err = domain.ErrNotFound
			return
		}
		d.clientNotes[n.ID] = *n
	})
	return err
}

func (r profileRepo) ListNotes(_ context.Context, clientID string, openOnly bool) ([]*entity.ClientNote, error) {
	var out []*entity.ClientNote
	r.s.read(func(d *data) {
		for _, n := range d.clientNotes {
			if n.ClientID != clientID || (openOnly && n.IsResolved) {
				continue
			}
			n := n
			out = append(out, &n)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r profileRepo) CreateRating(_ context.Context, rt *entity.ClientRating) error {
	var err error
	r.s.write(func(d *data) {
		for _, existing := range d.ratings {
			if existing.ClientID == rt.ClientID && sameDay(existing, *rt) {
				err = domain.ErrDuplicate
				return
			}
		}
		d.ratings = append(d.ratings, *rt)
	})
	return err
}

func (r profileRepo) ListRatings(_ context.Context, clientID string) ([]*entity.ClientRating, error) {
	var out []*entity.ClientRating
	r.s.read(func(d *data) {
		for _, rt := range d.ratings {
			if rt.ClientID == clientID {
				rt := rt
				out = append(out, &rt)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].RatingDate.After(out[j].RatingDate) })
	return out, nil
}

func sameDay(a, b entity.ClientRating) bool {
	ay, am, ad := a.RatingDate.Date()
	by, bm, bd := b.RatingDate.Date()
	return ay == by && am == bm && ad == bd
}
