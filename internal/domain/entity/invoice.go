package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de factura.
const (
	InvoiceTypeAdvance = "ADVANCE"
	InvoiceTypeFinal   = "FINAL"
	InvoiceTypePenalty = "PENALTY"
	InvoiceTypePartial = "PARTIAL"
)

// Estados de pago de una factura.
const (
	InvoiceStatusDraft     = "DRAFT"
	InvoiceStatusIssued    = "ISSUED"
	InvoiceStatusSent      = "SENT"
	InvoiceStatusPartial   = "PARTIAL"
	InvoiceStatusPaid      = "PAID"
	InvoiceStatusOverdue   = "OVERDUE"
	InvoiceStatusCancelled = "CANCELLED"
)

// Invoice factura emitida contra una orden de alquiler.
// BalanceDue == TotalAmount - AmountPaid después de cada recálculo.
type Invoice struct {
	ID            string
	InvoiceNumber string // INV-YYYY-NNNN
	HireOrderID   string
	ClientID      string
	InvoiceDate   time.Time
	DueDate       time.Time
	Type          string
	Subtotal      decimal.Decimal
	TaxRate       decimal.Decimal
	TaxAmount     decimal.Decimal
	TotalAmount   decimal.Decimal
	AmountPaid    decimal.Decimal
	BalanceDue    decimal.Decimal
	PaymentStatus string
	Notes         string
	IssuedBy      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Medios de pago.
const (
	PaymentCash         = "CASH"
	PaymentBankTransfer = "BANK_TRANSFER"
	PaymentCheque       = "CHEQUE"
	PaymentCreditCard   = "CREDIT_CARD"
	PaymentMobileMoney  = "MOBILE_MONEY"
)

// Payment pago recibido contra una factura. Solo cuenta en AmountPaid una vez confirmado.
type Payment struct {
	ID               string
	PaymentNumber    string // PAY-YYYY-NNNN
	InvoiceID        string
	PaymentDate      time.Time
	Amount           decimal.Decimal
	Method           string
	Reference        string
	ReceivedBy       string
	Confirmed        bool
	ConfirmedBy      string
	ConfirmationDate *time.Time
	Notes            string
	CreatedAt        time.Time
}

// Estados de una nota crédito.
const (
	CreditNoteDraft     = "DRAFT"
	CreditNoteIssued    = "ISSUED"
	CreditNoteApplied   = "APPLIED"
	CreditNoteCancelled = "CANCELLED"
)

// CreditNote crédito a favor del cliente.
type CreditNote struct {
	ID               string
	CreditNoteNumber string // CN-YYYY-NNNN
	ClientID         string
	InvoiceID        string
	Amount           decimal.Decimal
	Reason           string
	IssuedBy         string
	ValidUntil       *time.Time
	Status           string
	AppliedToInvoice string
	AppliedDate      *time.Time
	AppliedBy        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
