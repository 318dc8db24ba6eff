package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para facturas.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *entity.Invoice) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Invoice, error)
	Update(ctx context.Context, inv *entity.Invoice) error
	ListByOrder(ctx context.Context, orderID string) ([]*entity.Invoice, error)
	List(ctx context.Context, f ListFilter) ([]*entity.Invoice, error)
	// ListPastDue facturas SENT con vencimiento anterior a today.
	ListPastDue(ctx context.Context, today time.Time) ([]*entity.Invoice, error)
}

// PaymentRepository define el puerto de persistencia para pagos.
type PaymentRepository interface {
	Create(ctx context.Context, p *entity.Payment) error
	GetByID(ctx context.Context, id string) (*entity.Payment, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Payment, error)
	Update(ctx context.Context, p *entity.Payment) error
	ListByInvoice(ctx context.Context, invoiceID string) ([]*entity.Payment, error)
	// SumConfirmed suma de pagos confirmados de la factura.
	SumConfirmed(ctx context.Context, invoiceID string) (decimal.Decimal, error)
}

// CreditNoteRepository define el puerto de persistencia para notas crédito.
type CreditNoteRepository interface {
	Create(ctx context.Context, cn *entity.CreditNote) error
	GetByID(ctx context.Context, id string) (*entity.CreditNote, error)
	GetForUpdate(ctx context.Context, id string) (*entity.CreditNote, error)
	Update(ctx context.Context, cn *entity.CreditNote) error
	ListByClient(ctx context.Context, clientID string) ([]*entity.CreditNote, error)
}

// RevenueRepository persiste el ingreso reconocido por orden y período.
type RevenueRepository interface {
	// Create falla con domain.ErrDuplicate si ya existe el registro (orden, período).
	Create(ctx context.Context, r *entity.RevenueRecord) error
	Exists(ctx context.Context, orderID string, start, end time.Time) (bool, error)
}

// ExpenseFilter filtros del listado de gastos.
type ExpenseFilter struct {
	Category string
	// Approved nil no filtra.
	Approved *bool
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
}

// ExpenseRepository define el puerto de persistencia para gastos.
type ExpenseRepository interface {
	Create(ctx context.Context, e *entity.Expense) error
	GetByID(ctx context.Context, id string) (*entity.Expense, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Expense, error)
	Update(ctx context.Context, e *entity.Expense) error
	List(ctx context.Context, f ExpenseFilter) ([]*entity.Expense, error)
}
