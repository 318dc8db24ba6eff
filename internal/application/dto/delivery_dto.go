package dto

import (
	"time"

	"github.com/Chrisx-39/FormMaster/internal/domain/delivery"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
)

// TransportRequestRequest body para POST /api/transport-requests.
type TransportRequestRequest struct {
	HireOrderID     string    `json:"hire_order_id"`
	RequiredDate    time.Time `json:"required_date"`
	TruckType       string    `json:"truck_type"`
	DeliveryAddress string    `json:"delivery_address,omitempty"`
	Instructions    string    `json:"instructions,omitempty"`
}

// AssignDriverRequest body para POST /api/transport-requests/:id/assign.
type AssignDriverRequest struct {
	DriverID string `json:"driver_id"`
}

// TransportResponse solicitud de transporte en respuestas.
type TransportResponse struct {
	ID               string    `json:"id"`
	RequestNumber    string    `json:"request_number"`
	HireOrderID      string    `json:"hire_order_id"`
	RequestedBy      string    `json:"requested_by"`
	ApprovedBy       string    `json:"approved_by,omitempty"`
	RequiredDate     time.Time `json:"required_date"`
	TruckType        string    `json:"truck_type"`
	DeliveryAddress  string    `json:"delivery_address,omitempty"`
	Instructions     string    `json:"instructions,omitempty"`
	AssignedDriverID string    `json:"assigned_driver_id,omitempty"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

// CreateDeliveryRequest body para POST /api/deliveries.
// Con SiteID la dirección sale de la sede del cliente, salvo que venga DeliveryAddress.
type CreateDeliveryRequest struct {
	HireOrderID        string `json:"hire_order_id"`
	TransportRequestID string `json:"transport_request_id,omitempty"`
	Type               string `json:"type"` // OUTGOING | RETURN
	DriverName         string `json:"driver_name,omitempty"`
	DriverPhone        string `json:"driver_phone,omitempty"`
	TruckRegistration  string `json:"truck_registration,omitempty"`
	DeliveryAddress    string `json:"delivery_address,omitempty"`
	SiteID             string `json:"site_id,omitempty"`
}

// DeliveryStatusRequest body para POST /api/deliveries/:id/status.
type DeliveryStatusRequest struct {
	Status          string `json:"status"`
	InspectionNotes string `json:"inspection_notes,omitempty"`
}

// SignNoteRequest body para POST /api/deliveries/:id/note/sign.
type SignNoteRequest struct {
	Signer string `json:"signer"` // DRIVER | SCAFFOLDER | SECURITY | CLIENT
}

// DeliveryNoteItemResponse línea de la nota.
type DeliveryNoteItemResponse struct {
	MaterialID string `json:"material_id"`
	Quantity   int    `json:"quantity"`
	Condition  string `json:"condition"`
}

// DeliveryNoteResponse nota de entrega con su estado de firmas.
type DeliveryNoteResponse struct {
	ID                      string                     `json:"id"`
	NoteNumber              string                     `json:"note_number"`
	DeliveryID              string                     `json:"delivery_id"`
	SignedByDriver          bool                       `json:"signed_by_driver"`
	DriverSignatureDate     *time.Time                 `json:"driver_signature_date,omitempty"`
	SignedByScaffolder      bool                       `json:"signed_by_scaffolder"`
	ScaffolderSignatureDate *time.Time                 `json:"scaffolder_signature_date,omitempty"`
	SignedBySecurity        bool                       `json:"signed_by_security"`
	SecuritySignatureDate   *time.Time                 `json:"security_signature_date,omitempty"`
	SignedByClient          bool                       `json:"signed_by_client"`
	ClientSignatureDate     *time.Time                 `json:"client_signature_date,omitempty"`
	FullySigned             bool                       `json:"fully_signed"`
	Items                   []DeliveryNoteItemResponse `json:"items"`
}

// DeliveryResponse entrega en respuestas; Note viene solo al crearla o consultarla.
type DeliveryResponse struct {
	ID                 string                `json:"id"`
	DeliveryNumber     string                `json:"delivery_number"`
	HireOrderID        string                `json:"hire_order_id"`
	TransportRequestID string                `json:"transport_request_id,omitempty"`
	DriverName         string                `json:"driver_name,omitempty"`
	DriverPhone        string                `json:"driver_phone,omitempty"`
	TruckRegistration  string                `json:"truck_registration,omitempty"`
	DepartureTime      *time.Time            `json:"departure_time,omitempty"`
	ArrivalTime        *time.Time            `json:"arrival_time,omitempty"`
	DeliveryAddress    string                `json:"delivery_address,omitempty"`
	Type               string                `json:"type"`
	InspectionNotes    string                `json:"inspection_notes,omitempty"`
	Status             string                `json:"status"`
	Note               *DeliveryNoteResponse `json:"note,omitempty"`
	CreatedAt          time.Time             `json:"created_at"`
}

// GRVItemRequest cantidades de un material en la recepción.
type GRVItemRequest struct {
	MaterialID       string `json:"material_id"`
	QuantityExpected int    `json:"quantity_expected"`
	QuantityReceived int    `json:"quantity_received"`
	Condition        string `json:"condition,omitempty"`
	Notes            string `json:"notes,omitempty"`
}

// GRVRequest body para POST /api/deliveries/:id/grv.
type GRVRequest struct {
	IssuedByClient   string           `json:"issued_by_client,omitempty"`
	DiscrepancyNotes string           `json:"discrepancy_notes,omitempty"`
	Items            []GRVItemRequest `json:"items"`
}

// GRVItemResponse línea con su diferencia.
type GRVItemResponse struct {
	MaterialID       string `json:"material_id"`
	QuantityExpected int    `json:"quantity_expected"`
	QuantityReceived int    `json:"quantity_received"`
	Discrepancy      int    `json:"discrepancy"`
	Condition        string `json:"condition,omitempty"`
}

// GRVResponse comprobante de recepción.
type GRVResponse struct {
	ID               string            `json:"id"`
	GRVNumber        string            `json:"grv_number"`
	DeliveryID       string            `json:"delivery_id"`
	HireOrderID      string            `json:"hire_order_id"`
	ReceivedBy       string            `json:"received_by"`
	ReceivedDate     time.Time         `json:"received_date"`
	AllItemsReceived bool              `json:"all_items_received"`
	DiscrepancyNotes string            `json:"discrepancy_notes,omitempty"`
	Items            []GRVItemResponse `json:"items"`
}

// ToTransportResponse convierte la entidad.
func ToTransportResponse(tr *entity.TransportRequest) TransportResponse {
	return TransportResponse{
		ID:               tr.ID,
		RequestNumber:    tr.RequestNumber,
		HireOrderID:      tr.HireOrderID,
		RequestedBy:      tr.RequestedBy,
		ApprovedBy:       tr.ApprovedBy,
		RequiredDate:     tr.RequiredDate,
		TruckType:        tr.TruckType,
		DeliveryAddress:  tr.DeliveryAddress,
		Instructions:     tr.Instructions,
		AssignedDriverID: tr.AssignedDriverID,
		Status:           tr.Status,
		CreatedAt:        tr.CreatedAt,
	}
}

// ToDeliveryResponse convierte la entidad; note puede ser nil.
func ToDeliveryResponse(d *entity.Delivery, note *entity.DeliveryNote) DeliveryResponse {
	out := DeliveryResponse{
		ID:                 d.ID,
		DeliveryNumber:     d.DeliveryNumber,
		HireOrderID:        d.HireOrderID,
		TransportRequestID: d.TransportRequestID,
		DriverName:         d.DriverName,
		DriverPhone:        d.DriverPhone,
		TruckRegistration:  d.TruckRegistration,
		DepartureTime:      d.DepartureTime,
		ArrivalTime:        d.ArrivalTime,
		DeliveryAddress:    d.DeliveryAddress,
		Type:               d.Type,
		InspectionNotes:    d.InspectionNotes,
		Status:             d.Status,
		CreatedAt:          d.CreatedAt,
	}
	if note != nil {
		n := ToDeliveryNoteResponse(note)
		out.Note = &n
	}
	return out
}

// ToDeliveryNoteResponse convierte la entidad.
func ToDeliveryNoteResponse(n *entity.DeliveryNote) DeliveryNoteResponse {
	items := make([]DeliveryNoteItemResponse, 0, len(n.Items))
	for _, it := range n.Items {
		items = append(items, DeliveryNoteItemResponse{MaterialID: it.MaterialID, Quantity: it.Quantity, Condition: it.Condition})
	}
	return DeliveryNoteResponse{
		ID:                      n.ID,
		NoteNumber:              n.NoteNumber,
		DeliveryID:              n.DeliveryID,
		SignedByDriver:          n.SignedByDriver,
		DriverSignatureDate:     n.DriverSignatureDate,
		SignedByScaffolder:      n.SignedByScaffolder,
		ScaffolderSignatureDate: n.ScaffolderSignatureDate,
		SignedBySecurity:        n.SignedBySecurity,
		SecuritySignatureDate:   n.SecuritySignatureDate,
		SignedByClient:          n.SignedByClient,
		ClientSignatureDate:     n.ClientSignatureDate,
		FullySigned:             delivery.IsNoteFullySigned(n),
		Items:                   items,
	}
}

// ToGRVResponse convierte la entidad.
func ToGRVResponse(g *entity.GoodsReceivedVoucher) GRVResponse {
	items := make([]GRVItemResponse, 0, len(g.Items))
	for _, it := range g.Items {
		items = append(items, GRVItemResponse{
			MaterialID:       it.MaterialID,
			QuantityExpected: it.QuantityExpected,
			QuantityReceived: it.QuantityReceived,
			Discrepancy:      delivery.Discrepancy(it),
			Condition:        it.Condition,
		})
	}
	return GRVResponse{
		ID:               g.ID,
		GRVNumber:        g.GRVNumber,
		DeliveryID:       g.DeliveryID,
		HireOrderID:      g.HireOrderID,
		ReceivedBy:       g.ReceivedBy,
		ReceivedDate:     g.ReceivedDate,
		AllItemsReceived: g.AllItemsReceived,
		DiscrepancyNotes: g.DiscrepancyNotes,
		Items:            items,
	}
}
