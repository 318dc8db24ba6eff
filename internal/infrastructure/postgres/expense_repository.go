package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

const expenseColumns = `id, expense_number, expense_date, category, description, amount, vendor, invoice_reference,
	paid_by, payment_method, approved_by, approved_date, created_at, updated_at`

// ExpenseRepo gastos operativos.
type ExpenseRepo struct {
	q Querier
}

func NewExpenseRepository(q Querier) *ExpenseRepo { return &ExpenseRepo{q: q} }

func scanExpense(row rowScanner) (*entity.Expense, error) {
	var e entity.Expense
	err := row.Scan(&e.ID, &e.ExpenseNumber, &e.Date, &e.Category, &e.Description, &e.Amount, &e.Vendor,
		&e.InvoiceReference, &e.PaidBy, &e.PaymentMethod, &e.ApprovedBy, &e.ApprovedDate, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *ExpenseRepo) Create(ctx context.Context, e *entity.Expense) error {
	_, err := r.q.Exec(ctx, `INSERT INTO expenses (`+expenseColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		e.ID, e.ExpenseNumber, e.Date, e.Category, e.Description, e.Amount, e.Vendor, e.InvoiceReference,
		e.PaidBy, e.PaymentMethod, e.ApprovedBy, e.ApprovedDate, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return wrapErr("insert expense", err)
	}
	return nil
}

func (r *ExpenseRepo) GetByID(ctx context.Context, id string) (*entity.Expense, error) {
	e, err := scanExpense(r.q.QueryRow(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = $1`, id))
	if err != nil {
		return nil, wrapErr("get expense", err)
	}
	return e, nil
}

func (r *ExpenseRepo) GetForUpdate(ctx context.Context, id string) (*entity.Expense, error) {
	e, err := scanExpense(r.q.QueryRow(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, wrapErr("lock expense", err)
	}
	return e, nil
}

func (r *ExpenseRepo) Update(ctx context.Context, e *entity.Expense) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE expenses SET category = $2, description = $3, amount = $4, vendor = $5, invoice_reference = $6,
			payment_method = $7, approved_by = $8, approved_date = $9, updated_at = $10
		WHERE id = $1`,
		e.ID, e.Category, e.Description, e.Amount, e.Vendor, e.InvoiceReference,
		e.PaymentMethod, e.ApprovedBy, e.ApprovedDate, e.UpdatedAt)
	return expectOne("update expense", tag, err)
}

func (r *ExpenseRepo) List(ctx context.Context, f repository.ExpenseFilter) ([]*entity.Expense, error) {
	var (
		where []string
		args  []any
	)
	if f.Category != "" {
		args = append(args, f.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.Approved != nil {
		if *f.Approved {
			where = append(where, "approved_date IS NOT NULL")
		} else {
			where = append(where, "approved_date IS NULL")
		}
	}
	if f.From != nil {
		args = append(args, *f.From)
		where = append(where, fmt.Sprintf("expense_date >= $%d", len(args)))
	}
	if f.To != nil {
		args = append(args, *f.To)
		where = append(where, fmt.Sprintf("expense_date <= $%d", len(args)))
	}
	query := `SELECT ` + expenseColumns + ` FROM expenses`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	limit, offset := page(f.Limit, f.Offset)
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY expense_number DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("list expenses", err)
	}
	out, err := collect(rows, scanExpense)
	if err != nil {
		return nil, wrapErr("scan expenses", err)
	}
	return out, nil
}
