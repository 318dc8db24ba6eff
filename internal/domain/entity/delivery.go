package entity

import "time"

// Estados de una solicitud de transporte.
const (
	TransportStatusPending   = "PENDING"
	TransportStatusApproved  = "APPROVED"
	TransportStatusRejected  = "REJECTED"
	TransportStatusAssigned  = "ASSIGNED"
	TransportStatusCompleted = "COMPLETED"
	TransportStatusCancelled = "CANCELLED"
)

// Tipos de camión.
const (
	TruckSmall   = "SMALL"
	TruckMedium  = "MEDIUM"
	TruckLarge   = "LARGE"
	TruckFlatbed = "FLATBED"
	TruckCrane   = "CRANE"
)

// TransportRequest solicitud de camión para despachar o recoger una orden.
type TransportRequest struct {
	ID               string
	RequestNumber    string // TR-YYYY-NNNN
	HireOrderID      string
	RequestedBy      string
	ApprovedBy       string
	RequiredDate     time.Time
	TruckType        string
	DeliveryAddress  string
	Instructions     string
	AssignedDriverID string
	Status           string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Tipos y estados de entrega.
const (
	DeliveryTypeOutgoing = "OUTGOING"
	DeliveryTypeReturn   = "RETURN"

	DeliveryStatusScheduled = "SCHEDULED"
	DeliveryStatusInTransit = "IN_TRANSIT"
	DeliveryStatusDelivered = "DELIVERED"
	DeliveryStatusReturned  = "RETURNED"
	DeliveryStatusCancelled = "CANCELLED"
)

// Delivery movimiento físico de equipos hacia o desde el cliente.
type Delivery struct {
	ID                 string
	DeliveryNumber     string // DEL-YYYY-NNNN
	HireOrderID        string
	TransportRequestID string
	DriverName         string
	DriverPhone        string
	TruckRegistration  string
	DepartureTime      *time.Time
	ArrivalTime        *time.Time
	DeliveryAddress    string
	Type               string
	InspectionNotes    string
	Status             string
	CreatedBy          string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Partes que firman una nota de entrega.
const (
	SignerDriver     = "DRIVER"
	SignerScaffolder = "SCAFFOLDER"
	SignerSecurity   = "SECURITY"
	SignerClient     = "CLIENT"
)

// Condición de un ítem registrada en la nota de entrega.
const (
	NoteConditionGood    = "GOOD"
	NoteConditionFair    = "FAIR"
	NoteConditionPoor    = "POOR"
	NoteConditionDamaged = "DAMAGED"
)

// DeliveryNote comprobante firmado que acompaña a una entrega.
type DeliveryNote struct {
	ID                      string
	NoteNumber              string // DN-YYYY-NNNN
	DeliveryID              string
	SignedByDriver          bool
	DriverSignatureDate     *time.Time
	SignedByScaffolder      bool
	ScaffolderSignatureDate *time.Time
	SignedBySecurity        bool
	SecuritySignatureDate   *time.Time
	SignedByClient          bool
	ClientSignatureDate     *time.Time
	Notes                   string
	Items                   []DeliveryNoteItem
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// DeliveryNoteItem material y cantidad incluidos en la nota.
type DeliveryNoteItem struct {
	ID             string
	DeliveryNoteID string
	MaterialID     string
	Quantity       int
	Condition      string
	Notes          string
}

// GoodsReceivedVoucher comprobante de recepción en bodega de una devolución.
// AllItemsReceived se deriva de los ítems (ninguno con diferencia).
type GoodsReceivedVoucher struct {
	ID               string
	GRVNumber        string // GRV-YYYY-NNNN
	DeliveryID       string
	HireOrderID      string
	ReceivedBy       string
	IssuedByClient   string
	ReceivedDate     time.Time
	AllItemsReceived bool
	DiscrepancyNotes string
	Items            []GRVItem
	CreatedAt        time.Time
}

// GRVItem cantidades esperadas y recibidas de un material.
type GRVItem struct {
	ID               string
	GRVID            string
	MaterialID       string
	QuantityExpected int
	QuantityReceived int
	Condition        string
	Notes            string
}
