package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Chrisx-39/FormMaster/internal/domain/repository"
)

var (
	_ repository.Repos    = (*Repos)(nil)
	_ repository.TxRunner = (*TxRunner)(nil)
)

// Repos agrupa los repositorios sobre un mismo Querier (pool o transacción).
type Repos struct {
	q Querier
}

// NewRepos repositorios sobre el pool, fuera de transacción.
func NewRepos(q Querier) *Repos { return &Repos{q: q} }

func (r *Repos) Materials() repository.MaterialRepository           { return NewMaterialRepository(r.q) }
func (r *Repos) Categories() repository.CategoryRepository          { return NewCategoryRepository(r.q) }
func (r *Repos) Clients() repository.ClientRepository               { return NewClientRepository(r.q) }
func (r *Repos) ClientProfiles() repository.ClientProfileRepository { return NewClientProfileRepository(r.q) }
func (r *Repos) RFQs() repository.RFQRepository                     { return NewRFQRepository(r.q) }
func (r *Repos) Quotations() repository.QuotationRepository         { return NewQuotationRepository(r.q) }
func (r *Repos) Orders() repository.HireOrderRepository             { return NewHireOrderRepository(r.q) }
func (r *Repos) Transports() repository.TransportRepository         { return NewTransportRepository(r.q) }
func (r *Repos) Deliveries() repository.DeliveryRepository          { return NewDeliveryRepository(r.q) }
func (r *Repos) Invoices() repository.InvoiceRepository             { return NewInvoiceRepository(r.q) }
func (r *Repos) Payments() repository.PaymentRepository             { return NewPaymentRepository(r.q) }
func (r *Repos) CreditNotes() repository.CreditNoteRepository       { return NewCreditNoteRepository(r.q) }
func (r *Repos) Revenue() repository.RevenueRepository              { return NewRevenueRepository(r.q) }
func (r *Repos) Expenses() repository.ExpenseRepository             { return NewExpenseRepository(r.q) }
func (r *Repos) Users() repository.UserRepository                   { return NewUserRepository(r.q) }
func (r *Repos) Sequences() repository.SequenceRepository           { return NewSequenceRepository(r.q) }
func (r *Repos) Documents() repository.DocumentRepository           { return NewDocumentRepository(r.q) }

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(tx repository.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
