package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de alquiler.
const (
	OrderStatusOrdered    = "ORDERED"
	OrderStatusApproved   = "APPROVED"
	OrderStatusDispatched = "DISPATCHED"
	OrderStatusActive     = "ACTIVE"
	OrderStatusReturned   = "RETURNED"
	OrderStatusCompleted  = "COMPLETED"
	OrderStatusCancelled  = "CANCELLED"
)

// Estado de pago agregado de la orden (derivado de sus facturas).
const (
	OrderPaymentPending = "PENDING"
	OrderPaymentPartial = "PARTIAL"
	OrderPaymentFull    = "FULL"
	OrderPaymentOverdue = "OVERDUE"
)

// Condición de un ítem al volver del cliente.
const (
	ReturnConditionGood    = "GOOD"
	ReturnConditionFair    = "FAIR"
	ReturnConditionDamaged = "DAMAGED"
	ReturnConditionLost    = "LOST"
)

// HireOrder compromiso de alquiler creado a partir de una cotización aceptada.
type HireOrder struct {
	ID                 string
	OrderNumber        string // OR-YYYY-NNNN
	QuotationID        string // único
	ClientID           string
	OrderDate          time.Time
	StartDate          time.Time
	ExpectedReturnDate time.Time
	ActualReturnDate   *time.Time
	Status             string
	PaymentStatus      string
	DeliveryAddress    string
	Notes              string
	CreatedBy          string
	ApprovedBy         string
	Items              []HireOrderItem
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// HireOrderItem cantidades por material a lo largo del ciclo de la orden.
// QuantitySettled cuenta las unidades despachadas cuya reserva ya se liberó.
type HireOrderItem struct {
	ID                 string
	HireOrderID        string
	MaterialID         string
	QuantityOrdered    int
	QuantityDispatched int
	QuantityReturned   int
	QuantitySettled    int
	ConditionOnReturn  string
	Notes              string
}

// PendingDispatch unidades ordenadas aún no despachadas.
func (i HireOrderItem) PendingDispatch() int { return i.QuantityOrdered - i.QuantityDispatched }

// PendingReturn unidades despachadas aún no devueltas.
func (i HireOrderItem) PendingReturn() int { return i.QuantityDispatched - i.QuantityReturned }

// Estados del contrato de arrendamiento.
const (
	LeaseStatusDraft      = "DRAFT"
	LeaseStatusActive     = "ACTIVE"
	LeaseStatusCompleted  = "COMPLETED"
	LeaseStatusTerminated = "TERMINATED"
)

// LeaseAgreement contrato firmado por cliente y gerencia para una orden.
type LeaseAgreement struct {
	ID                      string
	AgreementNumber         string // LA-YYYY-NNNN
	HireOrderID             string
	StartDate               time.Time
	EndDate                 time.Time
	DurationDays            int
	LateReturnPenaltyPerDay decimal.Decimal
	DamagePolicy            string
	Terms                   string
	SignedByClient          bool
	ClientSignatureDate     *time.Time
	SignedByFSM             bool
	FSMSignedBy             string
	FSMSignatureDate        *time.Time
	Status                  string
	CreatedAt               time.Time
	UpdatedAt               time.Time
}
