package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una cotización.
const (
	QuotationStatusDraft     = "DRAFT"
	QuotationStatusSent      = "SENT"
	QuotationStatusAccepted  = "ACCEPTED"
	QuotationStatusRejected  = "REJECTED"
	QuotationStatusExpired   = "EXPIRED"
	QuotationStatusConverted = "CONVERTED"
)

// Quotation oferta con precios para un cliente.
// Subtotal, TaxAmount y TotalAmount se recalculan antes de cada persistencia.
type Quotation struct {
	ID               string
	QuotationNumber  string // QT-YYYY-NNNN
	RFQID            string // vacío si se creó sin RFQ
	ClientID         string
	PreparedBy       string
	ApprovedBy       string
	ValidUntil       time.Time
	HireDurationDays int
	TransportCost    decimal.Decimal
	Subtotal         decimal.Decimal
	TaxRate          decimal.Decimal
	TaxAmount        decimal.Decimal
	TotalAmount      decimal.Decimal
	Status           string
	Notes            string
	Items            []QuotationItem
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// QuotationItem línea de la cotización.
type QuotationItem struct {
	ID           string
	QuotationID  string
	MaterialID   string
	Quantity     int
	DailyRate    decimal.Decimal
	DurationDays int
	LineTotal    decimal.Decimal
}
