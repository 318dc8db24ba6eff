package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

const clientColumns = `id, client_number, name, type, status, contact_person, email, phone, address, city,
	tax_number, credit_limit, current_balance, payment_terms, discount_rate, COALESCE(account_manager_id, ''),
	notes, created_at, updated_at`

// ClientRepo clientes, historial y lista negra.
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador de persistencia para clientes.
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

func scanClient(row rowScanner) (*entity.Client, error) {
	var c entity.Client
	err := row.Scan(&c.ID, &c.ClientNumber, &c.Name, &c.Type, &c.Status, &c.ContactPerson, &c.Email,
		&c.Phone, &c.Address, &c.City, &c.TaxNumber, &c.CreditLimit, &c.CurrentBalance, &c.PaymentTerms,
		&c.DiscountRate, &c.AccountManagerID, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	query := `
		INSERT INTO clients (id, client_number, name, type, status, contact_person, email, phone, address, city,
			tax_number, credit_limit, current_balance, payment_terms, discount_rate, account_manager_id,
			notes, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.ClientNumber, c.Name, c.Type, c.Status, c.ContactPerson, c.Email, c.Phone, c.Address, c.City,
		c.TaxNumber, c.CreditLimit, c.CurrentBalance, c.PaymentTerms, c.DiscountRate, nullable(c.AccountManagerID),
		c.Notes, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return wrapErr("insert client", err)
	}
	return nil
}

func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	c, err := scanClient(r.q.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id))
	if err != nil {
		return nil, wrapErr("get client", err)
	}
	return c, nil
}

func (r *ClientRepo) GetForUpdate(ctx context.Context, id string) (*entity.Client, error) {
	c, err := scanClient(r.q.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, wrapErr("lock client", err)
	}
	return c, nil
}

func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	query := `
		UPDATE clients SET name = $2, type = $3, status = $4, contact_person = $5, email = $6, phone = $7,
			address = $8, city = $9, tax_number = $10, credit_limit = $11, current_balance = $12,
			payment_terms = $13, discount_rate = $14, account_manager_id = $15, notes = $16, updated_at = $17
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.Type, c.Status, c.ContactPerson, c.Email, c.Phone,
		c.Address, c.City, c.TaxNumber, c.CreditLimit, c.CurrentBalance,
		c.PaymentTerms, c.DiscountRate, nullable(c.AccountManagerID), c.Notes, c.UpdatedAt,
	)
	return expectOne("update client", tag, err)
}

func (r *ClientRepo) List(ctx context.Context, f repository.ClientFilter) ([]*entity.Client, error) {
	var (
		where []string
		args  []any
	)
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, strings.ToLower(f.Search)+"%")
		where = append(where, fmt.Sprintf("(lower(name) LIKE $%[1]d OR lower(client_number) LIKE $%[1]d)", len(args)))
	}
	query := `SELECT ` + clientColumns + ` FROM clients`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	limit, offset := page(f.Limit, f.Offset)
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY client_number LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("list clients", err)
	}
	out, err := collect(rows, scanClient)
	if err != nil {
		return nil, wrapErr("scan clients", err)
	}
	return out, nil
}

func (r *ClientRepo) Search(ctx context.Context, prefix string, limit int) ([]*entity.Client, error) {
	rows, err := r.q.Query(ctx, `SELECT `+clientColumns+` FROM clients
		WHERE lower(name) LIKE $1 OR lower(client_number) LIKE $1
		ORDER BY name LIMIT $2`, strings.ToLower(prefix)+"%", limit)
	if err != nil {
		return nil, wrapErr("search clients", err)
	}
	out, err := collect(rows, scanClient)
	if err != nil {
		return nil, wrapErr("scan clients", err)
	}
	return out, nil
}

func (r *ClientRepo) CreateHistory(ctx context.Context, h *entity.ClientHistory) error {
	query := `
		INSERT INTO client_history (id, client_id, action, old_value, new_value, notes, created_by, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	_, err := r.q.Exec(ctx, query, h.ID, h.ClientID, h.Action, h.OldValue, h.NewValue, h.Notes, h.CreatedBy, h.CreatedAt)
	if err != nil {
		return wrapErr("insert client history", err)
	}
	return nil
}

func (r *ClientRepo) ListHistory(ctx context.Context, clientID string, limit int) ([]*entity.ClientHistory, error) {
	limit, _ = page(limit, 0)
	rows, err := r.q.Query(ctx, `
		SELECT id, client_id, action, old_value, new_value, notes, created_by, created_at
		FROM client_history WHERE client_id = $1 ORDER BY created_at DESC LIMIT $2`, clientID, limit)
	if err != nil {
		return nil, wrapErr("list client history", err)
	}
	out, err := collect(rows, func(row rowScanner) (*entity.ClientHistory, error) {
		var h entity.ClientHistory
		err := row.Scan(&h.ID, &h.ClientID, &h.Action, &h.OldValue, &h.NewValue, &h.Notes, &h.CreatedBy, &h.CreatedAt)
		return &h, err
	})
	if err != nil {
		return nil, wrapErr("scan client history", err)
	}
	return out, nil
}

func (r *ClientRepo) CreateBlacklist(ctx context.Context, b *entity.ClientBlacklist) error {
	query := `
		INSERT INTO client_blacklist (id, client_id, reason, blacklisted_by, notes, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)`
	_, err := r.q.Exec(ctx, query, b.ID, b.ClientID, b.Reason, b.BlacklistedBy, b.Notes, b.CreatedAt)
	if err != nil {
		return wrapErr("insert client blacklist", err)
	}
	return nil
}
