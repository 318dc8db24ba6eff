package repository

import (
	"context"

	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
)

// ClientFilter filtros del listado de clientes.
type ClientFilter struct {
	Status string
	Search string
	Limit  int
	Offset int
}

// ClientRepository define el puerto de persistencia para Client y su auditoría.
type ClientRepository interface {
	Create(ctx context.Context, c *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	// GetForUpdate bloquea la fila del cliente para ajustar su saldo.
	GetForUpdate(ctx context.Context, id string) (*entity.Client, error)
	Update(ctx context.Context, c *entity.Client) error
	List(ctx context.Context, f ClientFilter) ([]*entity.Client, error)
	// Search autocompletado por prefijo de número o nombre.
	Search(ctx context.Context, prefix string, limit int) ([]*entity.Client, error)

	CreateHistory(ctx context.Context, h *entity.ClientHistory) error
	ListHistory(ctx context.Context, clientID string, limit int) ([]*entity.ClientHistory, error)
	CreateBlacklist(ctx context.Context, b *entity.ClientBlacklist) error
}

// ClientProfileRepository contactos, sedes, notas y calificaciones de un cliente.
type ClientProfileRepository interface {
	// CreateContact devuelve ErrDuplicate si el email ya existe para el cliente.
	CreateContact(ctx context.Context, c *entity.ClientContact) error
	GetContact(ctx context.Context, id string) (*entity.ClientContact, error)
	UpdateContact(ctx context.Context, c *entity.ClientContact) error
	ListContacts(ctx context.Context, clientID string) ([]*entity.ClientContact, error)

	// CreateSite devuelve ErrDuplicate si el nombre de sede ya existe para el cliente.
	CreateSite(ctx context.Context, s *entity.ClientSite) error
	GetSite(ctx context.Context, id string) (*entity.ClientSite, error)
	UpdateSite(ctx context.Context, s *entity.ClientSite) error
	ListSites(ctx context.Context, clientID string) ([]*entity.ClientSite, error)
	// ClearMainSite quita la marca de sede principal a todas las sedes del cliente.
	ClearMainSite(ctx context.Context, clientID string) error

	CreateNote(ctx context.Context, n *entity.ClientNote) error
	GetNote(ctx context.Context, id string) (*entity.ClientNote, error)
	UpdateNote(ctx context.Context, n *entity.ClientNote) error
	ListNotes(ctx context.Context, clientID string, openOnly bool) ([]*entity.ClientNote, error)

	// CreateRating devuelve ErrDuplicate si ya hay calificación para el cliente en esa fecha.
	CreateRating(ctx context.Context, r *entity.ClientRating) error
	ListRatings(ctx context.Context, clientID string) ([]*entity.ClientRating, error)
}
