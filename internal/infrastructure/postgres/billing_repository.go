package postgres

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/domain/repository"
)

var (
	_ repository.InvoiceRepository    = (*InvoiceRepo)(nil)
	_ repository.PaymentRepository    = (*PaymentRepo)(nil)
	_ repository.CreditNoteRepository = (*CreditNoteRepo)(nil)
	_ repository.RevenueRepository    = (*RevenueRepo)(nil)
)

const invoiceColumns = `id, invoice_number, hire_order_id, client_id, invoice_date, due_date, type, subtotal,
	tax_rate, tax_amount, total_amount, amount_paid, balance_due, payment_status, notes, issued_by,
	created_at, updated_at`

// InvoiceRepo facturas.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador de persistencia para facturas.
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

func scanInvoice(row rowScanner) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(&inv.ID, &inv.InvoiceNumber, &inv.HireOrderID, &inv.ClientID, &inv.InvoiceDate, &inv.DueDate,
		&inv.Type, &inv.Subtotal, &inv.TaxRate, &inv.TaxAmount, &inv.TotalAmount, &inv.AmountPaid, &inv.BalanceDue,
		&inv.PaymentStatus, &inv.Notes, &inv.IssuedBy, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	_, err := r.q.Exec(ctx, `INSERT INTO invoices (`+invoiceColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)`,
		inv.ID, inv.InvoiceNumber, inv.HireOrderID, inv.ClientID, inv.InvoiceDate, inv.DueDate, inv.Type, inv.Subtotal,
		inv.TaxRate, inv.TaxAmount, inv.TotalAmount, inv.AmountPaid, inv.BalanceDue, inv.PaymentStatus, inv.Notes,
		inv.IssuedBy, inv.CreatedAt, inv.UpdatedAt)
	if err != nil {
		return wrapErr("insert invoice", err)
	}
	return nil
}

func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id))
	if err != nil {
		return nil, wrapErr("get invoice", err)
	}
	return inv, nil
}

func (r *InvoiceRepo) GetForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, wrapErr("lock invoice", err)
	}
	return inv, nil
}

func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE invoices SET invoice_date = $2, due_date = $3, subtotal = $4, tax_rate = $5, tax_amount = $6,
			total_amount = $7, amount_paid = $8, balance_due = $9, payment_status = $10, notes = $11, updated_at = $12
		WHERE id = $1`,
		inv.ID, inv.InvoiceDate, inv.DueDate, inv.Subtotal, inv.TaxRate, inv.TaxAmount,
		inv.TotalAmount, inv.AmountPaid, inv.BalanceDue, inv.PaymentStatus, inv.Notes, inv.UpdatedAt)
	return expectOne("update invoice", tag, err)
}

func (r *InvoiceRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	out, err := collect(rows, scanInvoice)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return out, nil
}

func (r *InvoiceRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.Invoice, error) {
	return r.list(ctx, "list invoices by order", `SELECT `+invoiceColumns+` FROM invoices
		WHERE hire_order_id = $1 ORDER BY invoice_number`, orderID)
}

func (r *InvoiceRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Invoice, error) {
	where, args := listWhere(f, "payment_status")
	tail, args := paged(f, args, "invoice_number DESC")
	return r.list(ctx, "list invoices", `SELECT `+invoiceColumns+` FROM invoices`+where+tail, args...)
}

func (r *InvoiceRepo) ListPastDue(ctx context.Context, today time.Time) ([]*entity.Invoice, error) {
	return r.list(ctx, "list past due invoices", `SELECT `+invoiceColumns+` FROM invoices
		WHERE payment_status = $1 AND due_date < $2 ORDER BY invoice_number`,
		entity.InvoiceStatusSent, today)
}

const paymentColumns = `id, payment_number, invoice_id, payment_date, amount, method, reference, received_by,
	confirmed, confirmed_by, confirmation_date, notes, created_at`

// PaymentRepo pagos.
type PaymentRepo struct {
	q Querier
}

func NewPaymentRepository(q Querier) *PaymentRepo { return &PaymentRepo{q: q} }

func scanPayment(row rowScanner) (*entity.Payment, error) {
	var p entity.Payment
	err := row.Scan(&p.ID, &p.PaymentNumber, &p.InvoiceID, &p.PaymentDate, &p.Amount, &p.Method, &p.Reference,
		&p.ReceivedBy, &p.Confirmed, &p.ConfirmedBy, &p.ConfirmationDate, &p.Notes, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	_, err := r.q.Exec(ctx, `INSERT INTO payments (`+paymentColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		p.ID, p.PaymentNumber, p.InvoiceID, p.PaymentDate, p.Amount, p.Method, p.Reference, p.ReceivedBy,
		p.Confirmed, p.ConfirmedBy, p.ConfirmationDate, p.Notes, p.CreatedAt)
	if err != nil {
		return wrapErr("insert payment", err)
	}
	return nil
}

func (r *PaymentRepo) GetByID(ctx context.Context, id string) (*entity.Payment, error) {
	p, err := scanPayment(r.q.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id))
	if err != nil {
		return nil, wrapErr("get payment", err)
	}
	return p, nil
}

func (r *PaymentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Payment, error) {
	p, err := scanPayment(r.q.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, wrapErr("lock payment", err)
	}
	return p, nil
}

func (r *PaymentRepo) Update(ctx context.Context, p *entity.Payment) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE payments SET confirmed = $2, confirmed_by = $3, confirmation_date = $4, notes = $5
		WHERE id = $1`, p.ID, p.Confirmed, p.ConfirmedBy, p.ConfirmationDate, p.Notes)
	return expectOne("update payment", tag, err)
}

func (r *PaymentRepo) ListByInvoice(ctx context.Context, invoiceID string) ([]*entity.Payment, error) {
	rows, err := r.q.Query(ctx, `SELECT `+paymentColumns+` FROM payments WHERE invoice_id = $1
		ORDER BY payment_number`, invoiceID)
	if err != nil {
		return nil, wrapErr("list payments", err)
	}
	out, err := collect(rows, scanPayment)
	if err != nil {
		return nil, wrapErr("scan payments", err)
	}
	return out, nil
}

func (r *PaymentRepo) SumConfirmed(ctx context.Context, invoiceID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM payments
		WHERE invoice_id = $1 AND confirmed`, invoiceID).Scan(&total)
	if err != nil {
		return decimal.Zero, wrapErr("sum confirmed payments", err)
	}
	return total, nil
}

const creditNoteColumns = `id, credit_note_number, client_id, COALESCE(invoice_id, ''), amount, reason, issued_by,
	valid_until, status, COALESCE(applied_to_invoice, ''), applied_date, applied_by, created_at, updated_at`

// CreditNoteRepo notas crédito.
type CreditNoteRepo struct {
	q Querier
}

func NewCreditNoteRepository(q Querier) *CreditNoteRepo { return &CreditNoteRepo{q: q} }

func scanCreditNote(row rowScanner) (*entity.CreditNote, error) {
	var cn entity.CreditNote
	err := row.Scan(&cn.ID, &cn.CreditNoteNumber, &cn.ClientID, &cn.InvoiceID, &cn.Amount, &cn.Reason, &cn.IssuedBy,
		&cn.ValidUntil, &cn.Status, &cn.AppliedToInvoice, &cn.AppliedDate, &cn.AppliedBy, &cn.CreatedAt, &cn.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &cn, nil
}

func (r *CreditNoteRepo) Create(ctx context.Context, cn *entity.CreditNote) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO credit_notes (id, credit_note_number, client_id, invoice_id, amount, reason, issued_by,
			valid_until, status, applied_to_invoice, applied_date, applied_by, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		cn.ID, cn.CreditNoteNumber, cn.ClientID, nullable(cn.InvoiceID), cn.Amount, cn.Reason, cn.IssuedBy,
		cn.ValidUntil, cn.Status, nullable(cn.AppliedToInvoice), cn.AppliedDate, cn.AppliedBy, cn.CreatedAt, cn.UpdatedAt)
	if err != nil {
		return wrapErr("insert credit note", err)
	}
	return nil
}

func (r *CreditNoteRepo) GetByID(ctx context.Context, id string) (*entity.CreditNote, error) {
	cn, err := scanCreditNote(r.q.QueryRow(ctx, `SELECT `+creditNoteColumns+` FROM credit_notes WHERE id = $1`, id))
	if err != nil {
		return nil, wrapErr("get credit note", err)
	}
	return cn, nil
}

func (r *CreditNoteRepo) GetForUpdate(ctx context.Context, id string) (*entity.CreditNote, error) {
	cn, err := scanCreditNote(r.q.QueryRow(ctx, `SELECT `+creditNoteColumns+` FROM credit_notes WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, wrapErr("lock credit note", err)
	}
	return cn, nil
}

func (r *CreditNoteRepo) Update(ctx context.Context, cn *entity.CreditNote) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE credit_notes SET status = $2, applied_to_invoice = $3, applied_date = $4, applied_by = $5,
			valid_until = $6, updated_at = $7
		WHERE id = $1`,
		cn.ID, cn.Status, nullable(cn.AppliedToInvoice), cn.AppliedDate, cn.AppliedBy, cn.ValidUntil, cn.UpdatedAt)
	return expectOne("update credit note", tag, err)
}

func (r *CreditNoteRepo) ListByClient(ctx context.Context, clientID string) ([]*entity.CreditNote, error) {
	rows, err := r.q.Query(ctx, `SELECT `+creditNoteColumns+` FROM credit_notes WHERE client_id = $1
		ORDER BY credit_note_number`, clientID)
	if err != nil {
		return nil, wrapErr("list credit notes", err)
	}
	out, err := collect(rows, scanCreditNote)
	if err != nil {
		return nil, wrapErr("scan credit notes", err)
	}
	return out, nil
}

// RevenueRepo ingresos reconocidos.
type RevenueRepo struct {
	q Querier
}

func NewRevenueRepository(q Querier) *RevenueRepo { return &RevenueRepo{q: q} }

// Create la clave única (orden, período) devuelve ErrDuplicate si el job corre dos veces.
func (r *RevenueRepo) Create(ctx context.Context, rec *entity.RevenueRecord) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO revenue_records (id, hire_order_id, client_id, period_start, period_end, base_hire_revenue,
			transport_revenue, penalty_revenue, damage_revenue, total_revenue, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		rec.ID, rec.HireOrderID, rec.ClientID, rec.PeriodStart, rec.PeriodEnd, rec.BaseHireRevenue,
		rec.TransportRevenue, rec.PenaltyRevenue, rec.DamageRevenue, rec.TotalRevenue, rec.CreatedAt)
	if err != nil {
		return wrapErr("insert revenue record", err)
	}
	return nil
}

func (r *RevenueRepo) Exists(ctx context.Context, orderID string, start, end time.Time) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM revenue_records
		WHERE hire_order_id = $1 AND period_start = $2 AND period_end = $3)`, orderID, start, end).Scan(&exists)
	if err != nil {
		return false, wrapErr("revenue exists", err)
	}
	return exists, nil
}
