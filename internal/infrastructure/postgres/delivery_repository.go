package postgres

import (
	"context"
	"strconv"

	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/domain/repository"
)

var (
	_ repository.TransportRepository = (*TransportRepo)(nil)
	_ repository.DeliveryRepository  = (*DeliveryRepo)(nil)
)

const transportColumns = `id, request_number, hire_order_id, requested_by, approved_by, required_date, truck_type,
	delivery_address, instructions, COALESCE(assigned_driver_id, ''), status, created_at, updated_at`

// TransportRepo solicitudes de transporte.
type TransportRepo struct {
	q Querier
}

func NewTransportRepository(q Querier) *TransportRepo { return &TransportRepo{q: q} }

func scanTransport(row rowScanner) (*entity.TransportRequest, error) {
	var t entity.TransportRequest
	err := row.Scan(&t.ID, &t.RequestNumber, &t.HireOrderID, &t.RequestedBy, &t.ApprovedBy, &t.RequiredDate,
		&t.TruckType, &t.DeliveryAddress, &t.Instructions, &t.AssignedDriverID, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TransportRepo) Create(ctx context.Context, t *entity.TransportRequest) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO transport_requests (id, request_number, hire_order_id, requested_by, approved_by, required_date,
			truck_type, delivery_address, instructions, assigned_driver_id, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		t.ID, t.RequestNumber, t.HireOrderID, t.RequestedBy, t.ApprovedBy, t.RequiredDate,
		t.TruckType, t.DeliveryAddress, t.Instructions, nullable(t.AssignedDriverID), t.Status, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return wrapErr("insert transport request", err)
	}
	return nil
}

func (r *TransportRepo) GetByID(ctx context.Context, id string) (*entity.TransportRequest, error) {
	t, err := scanTransport(r.q.QueryRow(ctx, `SELECT `+transportColumns+` FROM transport_requests WHERE id = $1`, id))
	if err != nil {
		return nil, wrapErr("get transport request", err)
	}
	return t, nil
}

func (r *TransportRepo) Update(ctx context.Context, t *entity.TransportRequest) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE transport_requests SET approved_by = $2, required_date = $3, truck_type = $4, delivery_address = $5,
			instructions = $6, assigned_driver_id = $7, status = $8, updated_at = $9
		WHERE id = $1`,
		t.ID, t.ApprovedBy, t.RequiredDate, t.TruckType, t.DeliveryAddress,
		t.Instructions, nullable(t.AssignedDriverID), t.Status, t.UpdatedAt)
	return expectOne("update transport request", tag, err)
}

func (r *TransportRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.TransportRequest, error) {
	// las solicitudes no tienen client_id propio; el filtro de cliente va por la orden
	where, args := "", []any{}
	if f.Status != "" {
		args = append(args, f.Status)
		where = " WHERE status = $1"
	}
	if f.ClientID != "" {
		args = append(args, f.ClientID)
		cond := "hire_order_id IN (SELECT id FROM hire_orders WHERE client_id = $" + strconv.Itoa(len(args)) + ")"
		if where == "" {
			where = " WHERE " + cond
		} else {
			where += " AND " + cond
		}
	}
	tail, args := paged(f, args, "request_number DESC")
	rows, err := r.q.Query(ctx, `SELECT `+transportColumns+` FROM transport_requests`+where+tail, args...)
	if err != nil {
		return nil, wrapErr("list transport requests", err)
	}
	out, err := collect(rows, scanTransport)
	if err != nil {
		return nil, wrapErr("scan transport requests", err)
	}
	return out, nil
}

const deliveryColumns = `id, delivery_number, hire_order_id, COALESCE(transport_request_id, ''), driver_name,
	driver_phone, truck_registration, departure_time, arrival_time, delivery_address, type, inspection_notes,
	status, created_by, created_at, updated_at`

// DeliveryRepo entregas, notas de entrega y GRV.
type DeliveryRepo struct {
	q Querier
}

func NewDeliveryRepository(q Querier) *DeliveryRepo { return &DeliveryRepo{q: q} }

func scanDelivery(row rowScanner) (*entity.Delivery, error) {
	var d entity.Delivery
	err := row.Scan(&d.ID, &d.DeliveryNumber, &d.HireOrderID, &d.TransportRequestID, &d.DriverName,
		&d.DriverPhone, &d.TruckRegistration, &d.DepartureTime, &d.ArrivalTime, &d.DeliveryAddress, &d.Type,
		&d.InspectionNotes, &d.Status, &d.CreatedBy, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DeliveryRepo) Create(ctx context.Context, d *entity.Delivery) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO deliveries (id, delivery_number, hire_order_id, transport_request_id, driver_name, driver_phone,
			truck_registration, departure_time, arrival_time, delivery_address, type, inspection_notes, status,
			created_by, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
		d.ID, d.DeliveryNumber, d.HireOrderID, nullable(d.TransportRequestID), d.DriverName, d.DriverPhone,
		d.TruckRegistration, d.DepartureTime, d.ArrivalTime, d.DeliveryAddress, d.Type, d.InspectionNotes, d.Status,
		d.CreatedBy, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return wrapErr("insert delivery", err)
	}
	return nil
}

func (r *DeliveryRepo) GetByID(ctx context.Context, id string) (*entity.Delivery, error) {
	d, err := scanDelivery(r.q.QueryRow(ctx, `SELECT `+deliveryColumns+` FROM deliveries WHERE id = $1`, id))
	if err != nil {
		return nil, wrapErr("get delivery", err)
	}
	return d, nil
}

func (r *DeliveryRepo) Update(ctx context.Context, d *entity.Delivery) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE deliveries SET driver_name = $2, driver_phone = $3, truck_registration = $4, departure_time = $5,
			arrival_time = $6, delivery_address = $7, inspection_notes = $8, status = $9, updated_at = $10
		WHERE id = $1`,
		d.ID, d.DriverName, d.DriverPhone, d.TruckRegistration, d.DepartureTime,
		d.ArrivalTime, d.DeliveryAddress, d.InspectionNotes, d.Status, d.UpdatedAt)
	return expectOne("update delivery", tag, err)
}

func (r *DeliveryRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.Delivery, error) {
	rows, err := r.q.Query(ctx, `SELECT `+deliveryColumns+` FROM deliveries WHERE hire_order_id = $1
		ORDER BY delivery_number`, orderID)
	if err != nil {
		return nil, wrapErr("list deliveries", err)
	}
	out, err := collect(rows, scanDelivery)
	if err != nil {
		return nil, wrapErr("scan deliveries", err)
	}
	return out, nil
}

const noteColumns = `id, note_number, delivery_id, signed_by_driver, driver_signature_date, signed_by_scaffolder,
	scaffolder_signature_date, signed_by_security, security_signature_date, signed_by_client,
	client_signature_date, notes, created_at, updated_at`

func (r *DeliveryRepo) CreateNote(ctx context.Context, n *entity.DeliveryNote) error {
	_, err := r.q.Exec(ctx, `INSERT INTO delivery_notes (`+noteColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		n.ID, n.NoteNumber, n.DeliveryID, n.SignedByDriver, n.DriverSignatureDate, n.SignedByScaffolder,
		n.ScaffolderSignatureDate, n.SignedBySecurity, n.SecuritySignatureDate, n.SignedByClient,
		n.ClientSignatureDate, n.Notes, n.CreatedAt, n.UpdatedAt)
	if err != nil {
		return wrapErr("insert delivery note", err)
	}
	for i := range n.Items {
		it := &n.Items[i]
		it.DeliveryNoteID = n.ID
		_, err := r.q.Exec(ctx, `
			INSERT INTO delivery_note_items (id, delivery_note_id, material_id, quantity, condition, notes)
			VALUES ($1,$2,$3,$4,$5,$6)`,
			it.ID, it.DeliveryNoteID, it.MaterialID, it.Quantity, it.Condition, it.Notes)
		if err != nil {
			return wrapErr("insert delivery note item", err)
		}
	}
	return nil
}

func (r *DeliveryRepo) GetNoteByDelivery(ctx context.Context, deliveryID string) (*entity.DeliveryNote, error) {
	var n entity.DeliveryNote
	err := r.q.QueryRow(ctx, `SELECT `+noteColumns+` FROM delivery_notes WHERE delivery_id = $1`, deliveryID).Scan(
		&n.ID, &n.NoteNumber, &n.DeliveryID, &n.SignedByDriver, &n.DriverSignatureDate, &n.SignedByScaffolder,
		&n.ScaffolderSignatureDate, &n.SignedBySecurity, &n.SecuritySignatureDate, &n.SignedByClient,
		&n.ClientSignatureDate, &n.Notes, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, wrapErr("get delivery note", err)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, delivery_note_id, material_id, quantity, condition, notes
		FROM delivery_note_items WHERE delivery_note_id = $1 ORDER BY id`, n.ID)
	if err != nil {
		return nil, wrapErr("list delivery note items", err)
	}
	items, err := collect(rows, func(row rowScanner) (*entity.DeliveryNoteItem, error) {
		var it entity.DeliveryNoteItem
		err := row.Scan(&it.ID, &it.DeliveryNoteID, &it.MaterialID, &it.Quantity, &it.Condition, &it.Notes)
		return &it, err
	})
	if err != nil {
		return nil, wrapErr("scan delivery note items", err)
	}
	for _, it := range items {
		n.Items = append(n.Items, *it)
	}
	return &n, nil
}

// UpdateNote solo firmas y notas; los ítems quedan fijos al crear la nota.
func (r *DeliveryRepo) UpdateNote(ctx context.Context, n *entity.DeliveryNote) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE delivery_notes SET signed_by_driver = $2, driver_signature_date = $3, signed_by_scaffolder = $4,
			scaffolder_signature_date = $5, signed_by_security = $6, security_signature_date = $7,
			signed_by_client = $8, client_signature_date = $9, notes = $10, updated_at = $11
		WHERE id = $1`,
		n.ID, n.SignedByDriver, n.DriverSignatureDate, n.SignedByScaffolder,
		n.ScaffolderSignatureDate, n.SignedBySecurity, n.SecuritySignatureDate,
		n.SignedByClient, n.ClientSignatureDate, n.Notes, n.UpdatedAt)
	return expectOne("update delivery note", tag, err)
}

const grvColumns = `id, grv_number, delivery_id, hire_order_id, received_by, issued_by_client, received_date,
	all_items_received, discrepancy_notes, created_at`

func scanGRV(row rowScanner) (*entity.GoodsReceivedVoucher, error) {
	var g entity.GoodsReceivedVoucher
	err := row.Scan(&g.ID, &g.GRVNumber, &g.DeliveryID, &g.HireOrderID, &g.ReceivedBy, &g.IssuedByClient,
		&g.ReceivedDate, &g.AllItemsReceived, &g.DiscrepancyNotes, &g.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *DeliveryRepo) CreateGRV(ctx context.Context, g *entity.GoodsReceivedVoucher) error {
	_, err := r.q.Exec(ctx, `INSERT INTO goods_received_vouchers (`+grvColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		g.ID, g.GRVNumber, g.DeliveryID, g.HireOrderID, g.ReceivedBy, g.IssuedByClient,
		g.ReceivedDate, g.AllItemsReceived, g.DiscrepancyNotes, g.CreatedAt)
	if err != nil {
		return wrapErr("insert grv", err)
	}
	for i := range g.Items {
		it := &g.Items[i]
		it.GRVID = g.ID
		_, err := r.q.Exec(ctx, `
			INSERT INTO grv_items (id, grv_id, material_id, quantity_expected, quantity_received, condition, notes)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			it.ID, it.GRVID, it.MaterialID, it.QuantityExpected, it.QuantityReceived, it.Condition, it.Notes)
		if err != nil {
			return wrapErr("insert grv item", err)
		}
	}
	return nil
}

func (r *DeliveryRepo) loadGRVItems(ctx context.Context, list []*entity.GoodsReceivedVoucher) error {
	if len(list) == 0 {
		return nil
	}
	byID := make(map[string]*entity.GoodsReceivedVoucher, len(list))
	ids := make([]string, 0, len(list))
	for _, g := range list {
		byID[g.ID] = g
		ids = append(ids, g.ID)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, grv_id, material_id, quantity_expected, quantity_received, condition, notes
		FROM grv_items WHERE grv_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return wrapErr("list grv items", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.GRVItem
		if err := rows.Scan(&it.ID, &it.GRVID, &it.MaterialID, &it.QuantityExpected, &it.QuantityReceived, &it.Condition, &it.Notes); err != nil {
			return wrapErr("scan grv item", err)
		}
		byID[it.GRVID].Items = append(byID[it.GRVID].Items, it)
	}
	return rows.Err()
}

func (r *DeliveryRepo) GetGRV(ctx context.Context, id string) (*entity.GoodsReceivedVoucher, error) {
	g, err := scanGRV(r.q.QueryRow(ctx, `SELECT `+grvColumns+` FROM goods_received_vouchers WHERE id = $1`, id))
	if err != nil {
		return nil, wrapErr("get grv", err)
	}
	if err := r.loadGRVItems(ctx, []*entity.GoodsReceivedVoucher{g}); err != nil {
		return nil, err
	}
	return g, nil
}

func (r *DeliveryRepo) ListGRVByOrder(ctx context.Context, orderID string) ([]*entity.GoodsReceivedVoucher, error) {
	rows, err := r.q.Query(ctx, `SELECT `+grvColumns+` FROM goods_received_vouchers WHERE hire_order_id = $1
		ORDER BY grv_number`, orderID)
	if err != nil {
		return nil, wrapErr("list grvs", err)
	}
	out, err := collect(rows, scanGRV)
	if err != nil {
		return nil, wrapErr("scan grvs", err)
	}
	return out, r.loadGRVItems(ctx, out)
}
