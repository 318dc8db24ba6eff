package repository

import (
	"context"
	"time"

	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
)

// ListFilter filtro genérico por estado y cliente con paginación.
type ListFilter struct {
	Status   string
	ClientID string
	Limit    int
	Offset   int
}

// RFQRepository persiste solicitudes de cotización con sus ítems.
type RFQRepository interface {
	Create(ctx context.Context, r *entity.RequestForQuotation) error
	GetByID(ctx context.Context, id string) (*entity.RequestForQuotation, error)
	// Update guarda cabecera y reemplaza los ítems.
	Update(ctx context.Context, r *entity.RequestForQuotation) error
	List(ctx context.Context, f ListFilter) ([]*entity.RequestForQuotation, error)
}

// QuotationRepository persiste cotizaciones con sus ítems.
type QuotationRepository interface {
	Create(ctx context.Context, q *entity.Quotation) error
	GetByID(ctx context.Context, id string) (*entity.Quotation, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Quotation, error)
	Update(ctx context.Context, q *entity.Quotation) error
	List(ctx context.Context, f ListFilter) ([]*entity.Quotation, error)
	// ListExpirable cotizaciones DRAFT o SENT con ValidUntil anterior a before.
	ListExpirable(ctx context.Context, before time.Time) ([]*entity.Quotation, error)
}

// HireOrderRepository persiste órdenes de alquiler y contratos.
type HireOrderRepository interface {
	// Create falla con domain.ErrAlreadyConverted si ya existe una orden para la cotización.
	Create(ctx context.Context, o *entity.HireOrder) error
	GetByID(ctx context.Context, id string) (*entity.HireOrder, error)
	GetForUpdate(ctx context.Context, id string) (*entity.HireOrder, error)
	GetByQuotationID(ctx context.Context, quotationID string) (*entity.HireOrder, error)
	Update(ctx context.Context, o *entity.HireOrder) error
	List(ctx context.Context, f ListFilter) ([]*entity.HireOrder, error)
	// ListOverdue órdenes ACTIVE con fecha esperada anterior a today.
	ListOverdue(ctx context.Context, today time.Time) ([]*entity.HireOrder, error)
	// ListCompletedBetween órdenes COMPLETED con actualización en [from, to).
	ListCompletedBetween(ctx context.Context, from, to time.Time) ([]*entity.HireOrder, error)
	Search(ctx context.Context, prefix string, limit int) ([]*entity.HireOrder, error)

	CreateLease(ctx context.Context, la *entity.LeaseAgreement) error
	GetLeaseByOrder(ctx context.Context, orderID string) (*entity.LeaseAgreement, error)
	UpdateLease(ctx context.Context, la *entity.LeaseAgreement) error
}
