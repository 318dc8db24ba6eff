package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
)

// RFQItemRequest línea de una solicitud de cotización.
type RFQItemRequest struct {
	MaterialID        string `json:"material_id"`
	QuantityRequested int    `json:"quantity_requested"`
	Notes             string `json:"notes,omitempty"`
}

// RFQRequest body para POST /api/rfqs y PUT /api/rfqs/:id.
type RFQRequest struct {
	ClientID         string           `json:"client_id"`
	RequiredDate     time.Time        `json:"required_date"`
	HireDurationDays int              `json:"hire_duration_days"`
	SiteAddress      string           `json:"site_address,omitempty"`
	Notes            string           `json:"notes,omitempty"`
	Items            []RFQItemRequest `json:"items"`
}

// RFQResponse solicitud con ítems y costo estimado a tarifa vigente.
type RFQResponse struct {
	ID               string           `json:"id"`
	RFQNumber        string           `json:"rfq_number"`
	ClientID         string           `json:"client_id"`
	ReceivedBy       string           `json:"received_by"`
	RequiredDate     time.Time        `json:"required_date"`
	HireDurationDays int              `json:"hire_duration_days"`
	SiteAddress      string           `json:"site_address,omitempty"`
	Notes            string           `json:"notes,omitempty"`
	Status           string           `json:"status"`
	EstimatedCost    decimal.Decimal  `json:"estimated_cost"`
	Items            []RFQItemRequest `json:"items"`
	CreatedAt        time.Time        `json:"created_at"`
}

// QuotationItemRequest línea de cotización. DailyRate cero toma la tarifa del material.
type QuotationItemRequest struct {
	MaterialID   string          `json:"material_id"`
	Quantity     int             `json:"quantity"`
	DailyRate    decimal.Decimal `json:"daily_rate"`
	DurationDays int             `json:"duration_days"`
}

// CreateQuotationRequest body para POST /api/quotations (sin RFQ).
type CreateQuotationRequest struct {
	ClientID         string                 `json:"client_id"`
	HireDurationDays int                    `json:"hire_duration_days"`
	TransportCost    decimal.Decimal        `json:"transport_cost"`
	ValidUntil       *time.Time             `json:"valid_until,omitempty"`
	Notes            string                 `json:"notes,omitempty"`
	Items            []QuotationItemRequest `json:"items"`
}

// QuotationFromRFQRequest body para POST /api/rfqs/:id/quotation.
type QuotationFromRFQRequest struct {
	TransportCost decimal.Decimal `json:"transport_cost"`
	ValidUntil    *time.Time      `json:"valid_until,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

// UpdateQuotationRequest body para PUT /api/quotations/:id. Solo en DRAFT.
type UpdateQuotationRequest struct {
	TransportCost *decimal.Decimal       `json:"transport_cost,omitempty"`
	ValidUntil    *time.Time             `json:"valid_until,omitempty"`
	Notes         *string                `json:"notes,omitempty"`
	Items         []QuotationItemRequest `json:"items,omitempty"`
}

// QuotationItemResponse línea con total calculado.
type QuotationItemResponse struct {
	ID           string          `json:"id"`
	MaterialID   string          `json:"material_id"`
	Quantity     int             `json:"quantity"`
	DailyRate    decimal.Decimal `json:"daily_rate"`
	DurationDays int             `json:"duration_days"`
	LineTotal    decimal.Decimal `json:"line_total"`
}

// QuotationResponse cotización en respuestas.
type QuotationResponse struct {
	ID               string                  `json:"id"`
	QuotationNumber  string                  `json:"quotation_number"`
	RFQID            string                  `json:"rfq_id,omitempty"`
	ClientID         string                  `json:"client_id"`
	PreparedBy       string                  `json:"prepared_by"`
	ApprovedBy       string                  `json:"approved_by,omitempty"`
	ValidUntil       time.Time               `json:"valid_until"`
	HireDurationDays int                     `json:"hire_duration_days"`
	TransportCost    decimal.Decimal         `json:"transport_cost"`
	Subtotal         decimal.Decimal         `json:"subtotal"`
	TaxRate          decimal.Decimal         `json:"tax_rate"`
	TaxAmount        decimal.Decimal         `json:"tax_amount"`
	TotalAmount      decimal.Decimal         `json:"total_amount"`
	Status           string                  `json:"status"`
	Notes            string                  `json:"notes,omitempty"`
	Items            []QuotationItemResponse `json:"items"`
	CreatedAt        time.Time               `json:"created_at"`
	UpdatedAt        time.Time               `json:"updated_at"`
}

// CreateOrderRequest body para POST /api/quotations/:id/order.
type CreateOrderRequest struct {
	StartDate       time.Time `json:"start_date"`
	DeliveryAddress string    `json:"delivery_address,omitempty"`
	Notes           string    `json:"notes,omitempty"`
}

// DispatchLine cantidad despachada de un ítem de orden.
type DispatchLine struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// DispatchRequest body para POST /api/orders/:id/dispatch. Sin líneas se despacha lo ordenado.
type DispatchRequest struct {
	Items []DispatchLine `json:"items,omitempty"`
}

// ReturnItemRequest devolución de un ítem de orden.
type ReturnItemRequest struct {
	ItemID    string `json:"item_id"`
	Quantity  int    `json:"quantity"`
	Condition string `json:"condition,omitempty"`
}

// ReturnRequest body para POST /api/orders/:id/return. Sin líneas se asume todo devuelto.
type ReturnRequest struct {
	Items []ReturnItemRequest `json:"items,omitempty"`
}

// OrderItemResponse ítem de orden con cantidades del ciclo.
type OrderItemResponse struct {
	ID                 string `json:"id"`
	MaterialID         string `json:"material_id"`
	QuantityOrdered    int    `json:"quantity_ordered"`
	QuantityDispatched int    `json:"quantity_dispatched"`
	QuantityReturned   int    `json:"quantity_returned"`
	ConditionOnReturn  string `json:"condition_on_return,omitempty"`
}

// OrderResponse orden de alquiler en respuestas.
type OrderResponse struct {
	ID                 string              `json:"id"`
	OrderNumber        string              `json:"order_number"`
	QuotationID        string              `json:"quotation_id"`
	ClientID           string              `json:"client_id"`
	OrderDate          time.Time           `json:"order_date"`
	StartDate          time.Time           `json:"start_date"`
	ExpectedReturnDate time.Time           `json:"expected_return_date"`
	ActualReturnDate   *time.Time          `json:"actual_return_date,omitempty"`
	Status             string              `json:"status"`
	PaymentStatus      string              `json:"payment_status"`
	DeliveryAddress    string              `json:"delivery_address,omitempty"`
	Notes              string              `json:"notes,omitempty"`
	CreatedBy          string              `json:"created_by"`
	ApprovedBy         string              `json:"approved_by,omitempty"`
	DaysOverdue        int                 `json:"days_overdue"`
	LatePenalty        decimal.Decimal     `json:"late_penalty"`
	Items              []OrderItemResponse `json:"items"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

// LeaseRequest body para POST /api/orders/:id/lease.
type LeaseRequest struct {
	LateReturnPenaltyPerDay *decimal.Decimal `json:"late_return_penalty_per_day,omitempty"`
	DamagePolicy            string           `json:"damage_policy,omitempty"`
	Terms                   string           `json:"terms,omitempty"`
}

// LeaseResponse contrato de alquiler.
type LeaseResponse struct {
	ID                      string          `json:"id"`
	AgreementNumber         string          `json:"agreement_number"`
	HireOrderID             string          `json:"hire_order_id"`
	StartDate               time.Time       `json:"start_date"`
	EndDate                 time.Time       `json:"end_date"`
	DurationDays            int             `json:"duration_days"`
	LateReturnPenaltyPerDay decimal.Decimal `json:"late_return_penalty_per_day"`
	DamagePolicy            string          `json:"damage_policy,omitempty"`
	Terms                   string          `json:"terms,omitempty"`
	SignedByClient          bool            `json:"signed_by_client"`
	ClientSignatureDate     *time.Time      `json:"client_signature_date,omitempty"`
	SignedByFSM             bool            `json:"signed_by_fsm"`
	FSMSignedBy             string          `json:"fsm_signed_by,omitempty"`
	FSMSignatureDate        *time.Time      `json:"fsm_signature_date,omitempty"`
	Status                  string          `json:"status"`
}

// ToRFQResponse convierte la entidad; estimated es el costo calculado por el caso de uso.
func ToRFQResponse(r *entity.RequestForQuotation, estimated decimal.Decimal) RFQResponse {
	items := make([]RFQItemRequest, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, RFQItemRequest{MaterialID: it.MaterialID, QuantityRequested: it.QuantityRequested, Notes: it.Notes})
	}
	return RFQResponse{
		ID:               r.ID,
		RFQNumber:        r.RFQNumber,
		ClientID:         r.ClientID,
		ReceivedBy:       r.ReceivedBy,
		RequiredDate:     r.RequiredDate,
		HireDurationDays: r.HireDurationDays,
		SiteAddress:      r.SiteAddress,
		Notes:            r.Notes,
		Status:           r.Status,
		EstimatedCost:    estimated,
		Items:            items,
		CreatedAt:        r.CreatedAt,
	}
}

// ToQuotationResponse convierte la entidad.
func ToQuotationResponse(q *entity.Quotation) QuotationResponse {
	items := make([]QuotationItemResponse, 0, len(q.Items))
	for _, it := range q.Items {
		items = append(items, QuotationItemResponse{
			ID:           it.ID,
			MaterialID:   it.MaterialID,
			Quantity:     it.Quantity,
			DailyRate:    it.DailyRate,
			DurationDays: it.DurationDays,
			LineTotal:    it.LineTotal,
		})
	}
	return QuotationResponse{
		ID:               q.ID,
		QuotationNumber:  q.QuotationNumber,
		RFQID:            q.RFQID,
		ClientID:         q.ClientID,
		PreparedBy:       q.PreparedBy,
		ApprovedBy:       q.ApprovedBy,
		ValidUntil:       q.ValidUntil,
		HireDurationDays: q.HireDurationDays,
		TransportCost:    q.TransportCost,
		Subtotal:         q.Subtotal,
		TaxRate:          q.TaxRate,
		TaxAmount:        q.TaxAmount,
		TotalAmount:      q.TotalAmount,
		Status:           q.Status,
		Notes:            q.Notes,
		Items:            items,
		CreatedAt:        q.CreatedAt,
		UpdatedAt:        q.UpdatedAt,
	}
}

// ToOrderResponse convierte la entidad; días de retraso y penalidad los calcula el caso de uso.
func ToOrderResponse(o *entity.HireOrder, daysOverdue int, penalty decimal.Decimal) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			ID:                 it.ID,
			MaterialID:         it.MaterialID,
			QuantityOrdered:    it.QuantityOrdered,
			QuantityDispatched: it.QuantityDispatched,
			QuantityReturned:   it.QuantityReturned,
			ConditionOnReturn:  it.ConditionOnReturn,
		})
	}
	return OrderResponse{
		ID:                 o.ID,
		OrderNumber:        o.OrderNumber,
		QuotationID:        o.QuotationID,
		ClientID:           o.ClientID,
		OrderDate:          o.OrderDate,
		StartDate:          o.StartDate,
		ExpectedReturnDate: o.ExpectedReturnDate,
		ActualReturnDate:   o.ActualReturnDate,
		Status:             o.Status,
		PaymentStatus:      o.PaymentStatus,
		DeliveryAddress:    o.DeliveryAddress,
		Notes:              o.Notes,
		CreatedBy:          o.CreatedBy,
		ApprovedBy:         o.ApprovedBy,
		DaysOverdue:        daysOverdue,
		LatePenalty:        penalty,
		Items:              items,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
}

// ToLeaseResponse convierte la entidad.
func ToLeaseResponse(la *entity.LeaseAgreement) LeaseResponse {
	return LeaseResponse{
		ID:                      la.ID,
		AgreementNumber:         la.AgreementNumber,
		HireOrderID:             la.HireOrderID,
		StartDate:               la.StartDate,
		EndDate:                 la.EndDate,
		DurationDays:            la.DurationDays,
		LateReturnPenaltyPerDay: la.LateReturnPenaltyPerDay,
		DamagePolicy:            la.DamagePolicy,
		Terms:                   la.Terms,
		SignedByClient:          la.SignedByClient,
		ClientSignatureDate:     la.ClientSignatureDate,
		SignedByFSM:             la.SignedByFSM,
		FSMSignedBy:             la.FSMSignedBy,
		FSMSignatureDate:        la.FSMSignatureDate,
		Status:                  la.Status,
	}
}
