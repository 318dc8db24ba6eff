// Package lookup autocompletado de clientes y órdenes para los formularios.
package lookup

import (
	"context"
	"strings"

	"github.com/Chrisx-39/FormMaster/internal/application/dto"
	"github.com/Chrisx-39/FormMaster/internal/domain/repository"
)

// MaxResults tope de sugerencias por consulta.
const MaxResults = 10

// UseCase búsquedas por prefijo de solo lectura.
type UseCase struct {
	repos repository.Repos
}

// NewUseCase construye el caso de uso.
func NewUseCase(repos repository.Repos) *UseCase {
	return &UseCase{repos: repos}
}

// Clients por prefijo de número o nombre. Prefijo vacío devuelve lista vacía.
func (uc *UseCase) Clients(ctx context.Context, q string) ([]dto.LookupItem, error) {
	q = strings.TrimSpace(q)
	out := []dto.LookupItem{}
	if q == "" {
		return out, nil
	}
	list, err := uc.repos.Clients().Search(ctx, q, MaxResults)
	if err != nil {
		return nil, err
	}
	for _, c := range list {
		out = append(out, dto.LookupItem{ID: c.ID, Label: c.ClientNumber + " " + c.Name, Extra: c.Status})
	}
	return out, nil
}

// Orders por prefijo de número de orden.
func (uc *UseCase) Orders(ctx context.Context, q string) ([]dto.LookupItem, error) {
	q = strings.TrimSpace(q)
	out := []dto.LookupItem{}
	if q == "" {
		return out, nil
	}
	list, err := uc.repos.Orders().Search(ctx, q, MaxResults)
	if err != nil {
		return nil, err
	}
	for _, o := range list {
		out = append(out, dto.LookupItem{ID: o.ID, Label: o.OrderNumber, Extra: o.Status})
	}
	return out, nil
}
