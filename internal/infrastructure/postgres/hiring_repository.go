package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Chrisx-39/FormMaster/internal/domain"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/domain/repository"
)

var (
	_ repository.RFQRepository       = (*RFQRepo)(nil)
	_ repository.QuotationRepository = (*QuotationRepo)(nil)
	_ repository.HireOrderRepository = (*HireOrderRepo)(nil)
)

// listWhere arma el WHERE común de estado y cliente.
func listWhere(f repository.ListFilter, statusCol string) (string, []any) {
	var (
		where []string
		args  []any
	)
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("%s = $%d", statusCol, len(args)))
	}
	if f.ClientID != "" {
		args = append(args, f.ClientID)
		where = append(where, fmt.Sprintf("client_id = $%d", len(args)))
	}
	if len(where) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(where, " AND "), args
}

func paged(f repository.ListFilter, args []any, orderBy string) (string, []any) {
	limit, offset := page(f.Limit, f.Offset)
	args = append(args, limit, offset)
	return fmt.Sprintf(" ORDER BY %s LIMIT $%d OFFSET $%d", orderBy, len(args)-1, len(args)), args
}

// ---- RFQ ----

const rfqColumns = `id, rfq_number, client_id, received_by, required_date, hire_duration_days,
	site_address, notes, status, created_at, updated_at`

// RFQRepo solicitudes de cotización.
type RFQRepo struct {
	q Querier
}

func NewRFQRepository(q Querier) *RFQRepo { return &RFQRepo{q: q} }

func scanRFQ(row rowScanner) (*entity.RequestForQuotation, error) {
	var r entity.RequestForQuotation
	err := row.Scan(&r.ID, &r.RFQNumber, &r.ClientID, &r.ReceivedBy, &r.RequiredDate, &r.HireDurationDays,
		&r.SiteAddress, &r.Notes, &r.Status, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *RFQRepo) Create(ctx context.Context, rfq *entity.RequestForQuotation) error {
	query := `
		INSERT INTO rfqs (id, rfq_number, client_id, received_by, required_date, hire_duration_days,
			site_address, notes, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`
	_, err := r.q.Exec(ctx, query, rfq.ID, rfq.RFQNumber, rfq.ClientID, rfq.ReceivedBy, rfq.RequiredDate,
		rfq.HireDurationDays, rfq.SiteAddress, rfq.Notes, rfq.Status, rfq.CreatedAt, rfq.UpdatedAt)
	if err != nil {
		return wrapErr("insert rfq", err)
	}
	return r.insertItems(ctx, rfq)
}

func (r *RFQRepo) insertItems(ctx context.Context, rfq *entity.RequestForQuotation) error {
	for i := range rfq.Items {
		it := &rfq.Items[i]
		it.RFQID = rfq.ID
		_, err := r.q.Exec(ctx, `
			INSERT INTO rfq_items (id, rfq_id, material_id, quantity_requested, notes) VALUES ($1,$2,$3,$4,$5)`,
			it.ID, it.RFQID, it.MaterialID, it.QuantityRequested, it.Notes)
		if err != nil {
			return wrapErr("insert rfq item", err)
		}
	}
	return nil
}

func (r *RFQRepo) loadItems(ctx context.Context, list []*entity.RequestForQuotation) error {
	if len(list) == 0 {
		return nil
	}
	byID := make(map[string]*entity.RequestForQuotation, len(list))
	ids := make([]string, 0, len(list))
	for _, v := range list {
		byID[v.ID] = v
		ids = append(ids, v.ID)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, rfq_id, material_id, quantity_requested, notes FROM rfq_items
		WHERE rfq_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return wrapErr("list rfq items", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.RFQItem
		if err := rows.Scan(&it.ID, &it.RFQID, &it.MaterialID, &it.QuantityRequested, &it.Notes); err != nil {
			return wrapErr("scan rfq item", err)
		}
		byID[it.RFQID].Items = append(byID[it.RFQID].Items, it)
	}
	return rows.Err()
}

func (r *RFQRepo) GetByID(ctx context.Context, id string) (*entity.RequestForQuotation, error) {
	rfq, err := scanRFQ(r.q.QueryRow(ctx, `SELECT `+rfqColumns+` FROM rfqs WHERE id = $1`, id))
	if err != nil {
		return nil, wrapErr("get rfq", err)
	}
	if err := r.loadItems(ctx, []*entity.RequestForQuotation{rfq}); err != nil {
		return nil, err
	}
	return rfq, nil
}

// Update guarda la cabecera y reemplaza los ítems.
func (r *RFQRepo) Update(ctx context.Context, rfq *entity.RequestForQuotation) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE rfqs SET required_date = $2, hire_duration_days = $3, site_address = $4, notes = $5,
			status = $6, updated_at = $7
		WHERE id = $1`,
		rfq.ID, rfq.RequiredDate, rfq.HireDurationDays, rfq.SiteAddress, rfq.Notes, rfq.Status, rfq.UpdatedAt)
	if err := expectOne("update rfq", tag, err); err != nil {
		return err
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM rfq_items WHERE rfq_id = $1`, rfq.ID); err != nil {
		return wrapErr("delete rfq items", err)
	}
	return r.insertItems(ctx, rfq)
}

func (r *RFQRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.RequestForQuotation, error) {
	where, args := listWhere(f, "status")
	tail, args := paged(f, args, "rfq_number DESC")
	rows, err := r.q.Query(ctx, `SELECT `+rfqColumns+` FROM rfqs`+where+tail, args...)
	if err != nil {
		return nil, wrapErr("list rfqs", err)
	}
	out, err := collect(rows, scanRFQ)
	if err != nil {
		return nil, wrapErr("scan rfqs", err)
	}
	return out, r.loadItems(ctx, out)
}

// ---- Quotation ----

const quotationColumns = `id, quotation_number, COALESCE(rfq_id, ''), client_id, prepared_by, approved_by,
	valid_until, hire_duration_days, transport_cost, subtotal, tax_rate, tax_amount, total_amount,
	status, notes, created_at, updated_at`

// QuotationRepo cotizaciones.
type QuotationRepo struct {
	q Querier
}

func NewQuotationRepository(q Querier) *QuotationRepo { return &QuotationRepo{q: q} }

func scanQuotation(row rowScanner) (*entity.Quotation, error) {
	var q entity.Quotation
	err := row.Scan(&q.ID, &q.QuotationNumber, &q.RFQID, &q.ClientID, &q.PreparedBy, &q.ApprovedBy,
		&q.ValidUntil, &q.HireDurationDays, &q.TransportCost, &q.Subtotal, &q.TaxRate, &q.TaxAmount, &q.TotalAmount,
		&q.Status, &q.Notes, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuotationRepo) Create(ctx context.Context, q *entity.Quotation) error {
	query := `
		INSERT INTO quotations (id, quotation_number, rfq_id, client_id, prepared_by, approved_by, valid_until,
			hire_duration_days, transport_cost, subtotal, tax_rate, tax_amount, total_amount, status, notes,
			created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)`
	_, err := r.q.Exec(ctx, query, q.ID, q.QuotationNumber, nullable(q.RFQID), q.ClientID, q.PreparedBy, q.ApprovedBy,
		q.ValidUntil, q.HireDurationDays, q.TransportCost, q.Subtotal, q.TaxRate, q.TaxAmount, q.TotalAmount,
		q.Status, q.Notes, q.CreatedAt, q.UpdatedAt)
	if err != nil {
		return wrapErr("insert quotation", err)
	}
	return r.insertItems(ctx, q)
}

func (r *QuotationRepo) insertItems(ctx context.Context, q *entity.Quotation) error {
	for i := range q.Items {
		it := &q.Items[i]
		it.QuotationID = q.ID
		_, err := r.q.Exec(ctx, `
			INSERT INTO quotation_items (id, quotation_id, material_id, quantity, daily_rate, duration_days, line_total)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			it.ID, it.QuotationID, it.MaterialID, it.Quantity, it.DailyRate, it.DurationDays, it.LineTotal)
		if err != nil {
			return wrapErr("insert quotation item", err)
		}
	}
	return nil
}

func (r *QuotationRepo) loadItems(ctx context.Context, list []*entity.Quotation) error {
	if len(list) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Quotation, len(list))
	ids := make([]string, 0, len(list))
	for _, v := range list {
		byID[v.ID] = v
		ids = append(ids, v.ID)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, quotation_id, material_id, quantity, daily_rate, duration_days, line_total
		FROM quotation_items WHERE quotation_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return wrapErr("list quotation items", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.QuotationItem
		if err := rows.Scan(&it.ID, &it.QuotationID, &it.MaterialID, &it.Quantity, &it.DailyRate, &it.DurationDays, &it.LineTotal); err != nil {
			return wrapErr("scan quotation item", err)
		}
		byID[it.QuotationID].Items = append(byID[it.QuotationID].Items, it)
	}
	return rows.Err()
}

func (r *QuotationRepo) get(ctx context.Context, op, query, id string) (*entity.Quotation, error) {
	q, err := scanQuotation(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	if err := r.loadItems(ctx, []*entity.Quotation{q}); err != nil {
		return nil, err
	}
	return q, nil
}

func (r *QuotationRepo) GetByID(ctx context.Context, id string) (*entity.Quotation, error) {
	return r.get(ctx, "get quotation", `SELECT `+quotationColumns+` FROM quotations WHERE id = $1`, id)
}

func (r *QuotationRepo) GetForUpdate(ctx context.Context, id string) (*entity.Quotation, error) {
	return r.get(ctx, "lock quotation", `SELECT `+quotationColumns+` FROM quotations WHERE id = $1 FOR UPDATE`, id)
}

// Update cabecera y reemplazo de ítems.
func (r *QuotationRepo) Update(ctx context.Context, q *entity.Quotation) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE quotations SET approved_by = $2, valid_until = $3, hire_duration_days = $4, transport_cost = $5,
			subtotal = $6, tax_rate = $7, tax_amount = $8, total_amount = $9, status = $10, notes = $11,
			updated_at = $12
		WHERE id = $1`,
		q.ID, q.ApprovedBy, q.ValidUntil, q.HireDurationDays, q.TransportCost,
		q.Subtotal, q.TaxRate, q.TaxAmount, q.TotalAmount, q.Status, q.Notes, q.UpdatedAt)
	if err := expectOne("update quotation", tag, err); err != nil {
		return err
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM quotation_items WHERE quotation_id = $1`, q.ID); err != nil {
		return wrapErr("delete quotation items", err)
	}
	return r.insertItems(ctx, q)
}

func (r *QuotationRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Quotation, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	out, err := collect(rows, scanQuotation)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return out, r.loadItems(ctx, out)
}

func (r *QuotationRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Quotation, error) {
	where, args := listWhere(f, "status")
	tail, args := paged(f, args, "quotation_number DESC")
	return r.list(ctx, "list quotations", `SELECT `+quotationColumns+` FROM quotations`+where+tail, args...)
}

func (r *QuotationRepo) ListExpirable(ctx context.Context, before time.Time) ([]*entity.Quotation, error) {
	return r.list(ctx, "list expirable quotations", `SELECT `+quotationColumns+` FROM quotations
		WHERE status IN ($1, $2) AND valid_until < $3 ORDER BY quotation_number`,
		entity.QuotationStatusDraft, entity.QuotationStatusSent, before)
}

// ---- HireOrder ----

const orderColumns = `id, order_number, quotation_id, client_id, order_date, start_date, expected_return_date,
	actual_return_date, status, payment_status, delivery_address, notes, created_by, approved_by,
	created_at, updated_at`

// HireOrderRepo órdenes y contratos de arrendamiento.
type HireOrderRepo struct {
	q Querier
}

func NewHireOrderRepository(q Querier) *HireOrderRepo { return &HireOrderRepo{q: q} }

func scanOrder(row rowScanner) (*entity.HireOrder, error) {
	var o entity.HireOrder
	err := row.Scan(&o.ID, &o.OrderNumber, &o.QuotationID, &o.ClientID, &o.OrderDate, &o.StartDate,
		&o.ExpectedReturnDate, &o.ActualReturnDate, &o.Status, &o.PaymentStatus, &o.DeliveryAddress,
		&o.Notes, &o.CreatedBy, &o.ApprovedBy, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create una sola orden por cotización: hire_orders_quotation_id_key.
func (r *HireOrderRepo) Create(ctx context.Context, o *entity.HireOrder) error {
	query := `
		INSERT INTO hire_orders (id, order_number, quotation_id, client_id, order_date, start_date,
			expected_return_date, actual_return_date, status, payment_status, delivery_address, notes,
			created_by, approved_by, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`
	_, err := r.q.Exec(ctx, query, o.ID, o.OrderNumber, o.QuotationID, o.ClientID, o.OrderDate, o.StartDate,
		o.ExpectedReturnDate, o.ActualReturnDate, o.Status, o.PaymentStatus, o.DeliveryAddress, o.Notes,
		o.CreatedBy, o.ApprovedBy, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "hire_orders_quotation_id_key" {
			return fmt.Errorf("insert hire order: %w", domain.ErrAlreadyConverted)
		}
		return wrapErr("insert hire order", err)
	}
	for i := range o.Items {
		it := &o.Items[i]
		it.HireOrderID = o.ID
		_, err := r.q.Exec(ctx, `
			INSERT INTO hire_order_items (id, hire_order_id, material_id, quantity_ordered, quantity_dispatched,
				quantity_returned, quantity_settled, condition_on_return, notes)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
			it.ID, it.HireOrderID, it.MaterialID, it.QuantityOrdered, it.QuantityDispatched,
			it.QuantityReturned, it.QuantitySettled, it.ConditionOnReturn, it.Notes)
		if err != nil {
			return wrapErr("insert hire order item", err)
		}
	}
	return nil
}

func (r *HireOrderRepo) loadItems(ctx context.Context, list []*entity.HireOrder) error {
	if len(list) == 0 {
		return nil
	}
	byID := make(map[string]*entity.HireOrder, len(list))
	ids := make([]string, 0, len(list))
	for _, v := range list {
		byID[v.ID] = v
		ids = append(ids, v.ID)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, hire_order_id, material_id, quantity_ordered, quantity_dispatched, quantity_returned,
			quantity_settled, condition_on_return, notes
		FROM hire_order_items WHERE hire_order_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return wrapErr("list hire order items", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.HireOrderItem
		if err := rows.Scan(&it.ID, &it.HireOrderID, &it.MaterialID, &it.QuantityOrdered, &it.QuantityDispatched,
			&it.QuantityReturned, &it.QuantitySettled, &it.ConditionOnReturn, &it.Notes); err != nil {
			return wrapErr("scan hire order item", err)
		}
		byID[it.HireOrderID].Items = append(byID[it.HireOrderID].Items, it)
	}
	return rows.Err()
}

func (r *HireOrderRepo) get(ctx context.Context, op, query string, arg string) (*entity.HireOrder, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	if err := r.loadItems(ctx, []*entity.HireOrder{o}); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *HireOrderRepo) GetByID(ctx context.Context, id string) (*entity.HireOrder, error) {
	return r.get(ctx, "get hire order", `SELECT `+orderColumns+` FROM hire_orders WHERE id = $1`, id)
}

func (r *HireOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.HireOrder, error) {
	return r.get(ctx, "lock hire order", `SELECT `+orderColumns+` FROM hire_orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *HireOrderRepo) GetByQuotationID(ctx context.Context, quotationID string) (*entity.HireOrder, error) {
	return r.get(ctx, "get hire order by quotation", `SELECT `+orderColumns+` FROM hire_orders WHERE quotation_id = $1`, quotationID)
}

// Update cabecera y contadores por ítem; los ítems no se agregan ni se borran tras crear la orden.
func (r *HireOrderRepo) Update(ctx context.Context, o *entity.HireOrder) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE hire_orders SET start_date = $2, expected_return_date = $3, actual_return_date = $4, status = $5,
			payment_status = $6, delivery_address = $7, notes = $8, approved_by = $9, updated_at = $10
		WHERE id = $1`,
		o.ID, o.StartDate, o.ExpectedReturnDate, o.ActualReturnDate, o.Status,
		o.PaymentStatus, o.DeliveryAddress, o.Notes, o.ApprovedBy, o.UpdatedAt)
	if err := expectOne("update hire order", tag, err); err != nil {
		return err
	}
	for _, it := range o.Items {
		tag, err := r.q.Exec(ctx, `
			UPDATE hire_order_items SET quantity_dispatched = $2, quantity_returned = $3, quantity_settled = $4,
				condition_on_return = $5, notes = $6
			WHERE id = $1`,
			it.ID, it.QuantityDispatched, it.QuantityReturned, it.QuantitySettled, it.ConditionOnReturn, it.Notes)
		if err := expectOne("update hire order item", tag, err); err != nil {
			return err
		}
	}
	return nil
}

func (r *HireOrderRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.HireOrder, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	out, err := collect(rows, scanOrder)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return out, r.loadItems(ctx, out)
}

func (r *HireOrderRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.HireOrder, error) {
	where, args := listWhere(f, "status")
	tail, args := paged(f, args, "order_number DESC")
	return r.list(ctx, "list hire orders", `SELECT `+orderColumns+` FROM hire_orders`+where+tail, args...)
}

func (r *HireOrderRepo) ListOverdue(ctx context.Context, today time.Time) ([]*entity.HireOrder, error) {
	return r.list(ctx, "list overdue orders", `SELECT `+orderColumns+` FROM hire_orders
		WHERE status = $1 AND expected_return_date < $2 ORDER BY order_number`,
		entity.OrderStatusActive, today)
}

func (r *HireOrderRepo) ListCompletedBetween(ctx context.Context, from, to time.Time) ([]*entity.HireOrder, error) {
	return r.list(ctx, "list completed orders", `SELECT `+orderColumns+` FROM hire_orders
		WHERE status = $1 AND updated_at >= $2 AND updated_at < $3 ORDER BY order_number`,
		entity.OrderStatusCompleted, from, to)
}

func (r *HireOrderRepo) Search(ctx context.Context, prefix string, limit int) ([]*entity.HireOrder, error) {
	return r.list(ctx, "search hire orders", `SELECT `+orderColumns+` FROM hire_orders
		WHERE lower(order_number) LIKE $1 ORDER BY order_number LIMIT $2`,
		strings.ToLower(prefix)+"%", limit)
}

const leaseColumns = `id, agreement_number, hire_order_id, start_date, end_date, duration_days,
	late_return_penalty_per_day, damage_policy, terms, signed_by_client, client_signature_date,
	signed_by_fsm, fsm_signed_by, fsm_signature_date, status, created_at, updated_at`

func (r *HireOrderRepo) CreateLease(ctx context.Context, la *entity.LeaseAgreement) error {
	_, err := r.q.Exec(ctx, `INSERT INTO lease_agreements (`+leaseColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)`,
		la.ID, la.AgreementNumber, la.HireOrderID, la.StartDate, la.EndDate, la.DurationDays,
		la.LateReturnPenaltyPerDay, la.DamagePolicy, la.Terms, la.SignedByClient, la.ClientSignatureDate,
		la.SignedByFSM, la.FSMSignedBy, la.FSMSignatureDate, la.Status, la.CreatedAt, la.UpdatedAt)
	if err != nil {
		return wrapErr("insert lease", err)
	}
	return nil
}

func (r *HireOrderRepo) GetLeaseByOrder(ctx context.Context, orderID string) (*entity.LeaseAgreement, error) {
	var la entity.LeaseAgreement
	err := r.q.QueryRow(ctx, `SELECT `+leaseColumns+` FROM lease_agreements WHERE hire_order_id = $1`, orderID).Scan(
		&la.ID, &la.AgreementNumber, &la.HireOrderID, &la.StartDate, &la.EndDate, &la.DurationDays,
		&la.LateReturnPenaltyPerDay, &la.DamagePolicy, &la.Terms, &la.SignedByClient, &la.ClientSignatureDate,
		&la.SignedByFSM, &la.FSMSignedBy, &la.FSMSignatureDate, &la.Status, &la.CreatedAt, &la.UpdatedAt)
	if err != nil {
		return nil, wrapErr("get lease", err)
	}
	return &la, nil
}

func (r *HireOrderRepo) UpdateLease(ctx context.Context, la *entity.LeaseAgreement) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE lease_agreements SET end_date = $2, duration_days = $3, late_return_penalty_per_day = $4,
			damage_policy = $5, terms = $6, signed_by_client = $7, client_signature_date = $8,
			signed_by_fsm = $9, fsm_signed_by = $10, fsm_signature_date = $11, status = $12, updated_at = $13
		WHERE id = $1`,
		la.ID, la.EndDate, la.DurationDays, la.LateReturnPenaltyPerDay,
		la.DamagePolicy, la.Terms, la.SignedByClient, la.ClientSignatureDate,
		la.SignedByFSM, la.FSMSignedBy, la.FSMSignatureDate, la.Status, la.UpdatedAt)
	return expectOne("update lease", tag, err)
}
