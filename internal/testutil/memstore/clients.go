package memstore

import (
	"context"
	"sort"
	"strconv"

	"github.com/Chrisx-39/FormMaster/internal/domain"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/domain/repository"
)

type clientRepo struct{ s *Store }

func (r clientRepo) Create(_ context.Context, c *entity.Client) error {
	var err error
	r.s.write(func(d *data) {
		for _, existing := range d.clients {
			if existing.ClientNumber == c.ClientNumber {
				err = domain.ErrDuplicate
				return
			}
		}
		d.clients[c.ID] = *c
	})
	return err
}

func (r clientRepo) GetByID(_ context.Context, id string) (*entity.Client, error) {
	var out *entity.Client
	r.s.read(func(d *data) {
		if c, ok := d.clients[id]; ok {
			out = &c
		}
	})
	if out == nil {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

func (r clientRepo) GetForUpdate(ctx context.Context, id string) (*entity.Client, error) {
	return r.GetByID(ctx, id)
}

func (r clientRepo) Update(_ context.Context, c *entity.Client) error {
	var err error
	r.s.write(func(d *data) {
		if _, ok := d.clients[c.ID]; !ok {
			err = domain.ErrNotFound
			return
		}
		d.clients[c.ID] = *c
	})
	return err
}

func (r clientRepo) List(_ context.Context, f repository.ClientFilter) ([]*entity.Client, error) {
	var out []*entity.Client
	r.s.read(func(d *data) {
		for _, c := range d.clients {
			if f.Status != "" && c.Status != f.Status {
				continue
			}
			if f.Search != "" && !hasPrefixFold(c.Name, f.Search) && !hasPrefixFold(c.ClientNumber, f.Search) {
				continue
			}
			c := c
			out = append(out, &c)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ClientNumber < out[j].ClientNumber })
	return page(out, f.Limit, f.Offset), nil
}

func (r clientRepo) Search(ctx context.Context, prefix string, limit int) ([]*entity.Client, error) {
	return r.List(ctx, repository.ClientFilter{Search: prefix, Limit: limit})
}

func (r clientRepo) CreateHistory(_ context.Context, h *entity.ClientHistory) error {
	r.s.write(func(d *data) { d.history = append(d.history, *h) })
	return nil
}

func (r clientRepo) ListHistory(_ context.Context, clientID string, limit int) ([]*entity.ClientHistory, error) {
	var out []*entity.ClientHistory
	r.s.read(func(d *data) {
		for i := len(d.history) - 1; i >= 0; i-- {
			if d.history[i].ClientID == clientID {
				h := d.history[i]
				out = append(out, &h)
			}
		}
	})
	return page(out, limit, 0), nil
}

func (r clientRepo) CreateBlacklist(_ context.Context, b *entity.ClientBlacklist) error {
	r.s.write(func(d *data) { d.blacklist = append(d.blacklist, *b) })
	return nil
}

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, u *entity.User) error {
	var err error
	r.s.write(func(d *data) {
		for _, existing := range d.users {
			if existing.Email == u.Email {
				err = domain.ErrEmailAlreadyExists
				return
			}
		}
		d.users[u.ID] = *u
	})
	return err
}

func (r userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	r.s.read(func(d *data) {
		if u, ok := d.users[id]; ok {
			out = &u
		}
	})
	if out == nil {
		return nil, domain.ErrUserNotFound
	}
	return out, nil
}

func (r userRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	r.s.read(func(d *data) {
		for _, u := range d.users {
			if u.Email == email {
				u := u
				out = &u
				return
			}
		}
	})
	if out == nil {
		return nil, domain.ErrUserNotFound
	}
	return out, nil
}

func (r userRepo) ListByRole(_ context.Context, role string) ([]*entity.User, error) {
	var out []*entity.User
	r.s.read(func(d *data) {
		for _, u := range d.users {
			if u.Role == role && u.Status == entity.UserStatusActive {
				u := u
				out = append(out, &u)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

type sequenceRepo struct{ s *Store }

func (r sequenceRepo) NextValue(_ context.Context, prefix string, year int) (int64, error) {
	var n int64
	r.s.write(func(d *data) {
		key := prefix + "/" + strconv.Itoa(year)
		d.sequences[key]++
		n = d.sequences[key]
	})
	return n, nil
}

type documentRepo struct{ s *Store }

func (r documentRepo) Create(_ context.Context, doc *entity.GeneratedDocument) error {
	r.s.write(func(d *data) { d.documents = append(d.documents, *doc) })
	return nil
}

func (r documentRepo) GetLatest(_ context.Context, docType, referenceID string) (*entity.GeneratedDocument, error) {
	var out *entity.GeneratedDocument
	r.s.read(func(d *data) {
		for i := len(d.documents) - 1; i >= 0; i-- {
			if d.documents[i].Type == docType && d.documents[i].ReferenceID == referenceID {
				doc := d.documents[i]
				out = &doc
				return
			}
		}
	})
	if out == nil {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

func (r documentRepo) CreateLog(_ context.Context, l *entity.DocumentLog) error {
	r.s.write(func(d *data) { d.docLogs = append(d.docLogs, *l) })
	return nil
}

func (r documentRepo) ListLogs(_ context.Context, docType, referenceID string) ([]*entity.DocumentLog, error) {
	var out []*entity.DocumentLog
	r.s.read(func(d *data) {
		ids := map[string]bool{}
		for _, doc := range d.documents {
			if doc.Type == docType && doc.ReferenceID == referenceID {
				ids[doc.ID] = true
			}
		}
		for i := len(d.docLogs) - 1; i >= 0; i-- {
			if ids[d.docLogs[i].DocumentID] {
				l := d.docLogs[i]
				out = append(out, &l)
			}
		}
	})
	return out, nil
}
