package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
)

// CreateInvoiceRequest body para POST /api/orders/:id/invoices.
// Subtotal solo se usa en ADVANCE y PARTIAL; FINAL toma la cotización y PENALTY la penalidad.
type CreateInvoiceRequest struct {
	Type     string          `json:"type"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Notes    string          `json:"notes,omitempty"`
}

// InvoiceResponse factura en respuestas.
type InvoiceResponse struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	HireOrderID   string          `json:"hire_order_id"`
	ClientID      string          `json:"client_id"`
	InvoiceDate   time.Time       `json:"invoice_date"`
	DueDate       time.Time       `json:"due_date"`
	Type          string          `json:"type"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	BalanceDue    decimal.Decimal `json:"balance_due"`
	PaymentStatus string          `json:"payment_status"`
	Notes         string          `json:"notes,omitempty"`
	IssuedBy      string          `json:"issued_by"`
	CreatedAt     time.Time       `json:"created_at"`
}

// RecordPaymentRequest body para POST /api/invoices/:id/payments.
type RecordPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"`
	Reference   string          `json:"reference,omitempty"`
	PaymentDate *time.Time      `json:"payment_date,omitempty"`
	Notes       string          `json:"notes,omitempty"`
}

// PaymentResponse pago en respuestas.
type PaymentResponse struct {
	ID               string          `json:"id"`
	PaymentNumber    string          `json:"payment_number"`
	InvoiceID        string          `json:"invoice_id"`
	PaymentDate      time.Time       `json:"payment_date"`
	Amount           decimal.Decimal `json:"amount"`
	Method           string          `json:"method"`
	Reference        string          `json:"reference,omitempty"`
	ReceivedBy       string          `json:"received_by"`
	Confirmed        bool            `json:"confirmed"`
	ConfirmedBy      string          `json:"confirmed_by,omitempty"`
	ConfirmationDate *time.Time      `json:"confirmation_date,omitempty"`
}

// CreateCreditNoteRequest body para POST /api/credit-notes.
type CreateCreditNoteRequest struct {
	ClientID   string          `json:"client_id"`
	InvoiceID  string          `json:"invoice_id,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Reason     string          `json:"reason"`
	ValidUntil *time.Time      `json:"valid_until,omitempty"`
}

// ApplyCreditNoteRequest body para POST /api/credit-notes/:id/apply.
type ApplyCreditNoteRequest struct {
	InvoiceID string `json:"invoice_id"`
}

// CreditNoteResponse nota crédito en respuestas.
type CreditNoteResponse struct {
	ID               string          `json:"id"`
	CreditNoteNumber string          `json:"credit_note_number"`
	ClientID         string          `json:"client_id"`
	InvoiceID        string          `json:"invoice_id,omitempty"`
	Amount           decimal.Decimal `json:"amount"`
	Reason           string          `json:"reason"`
	IssuedBy         string          `json:"issued_by"`
	ValidUntil       *time.Time      `json:"valid_until,omitempty"`
	Status           string          `json:"status"`
	AppliedToInvoice string          `json:"applied_to_invoice,omitempty"`
	AppliedDate      *time.Time      `json:"applied_date,omitempty"`
	AppliedBy        string          `json:"applied_by,omitempty"`
}

// ToInvoiceResponse convierte la entidad.
func ToInvoiceResponse(inv *entity.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		HireOrderID:   inv.HireOrderID,
		ClientID:      inv.ClientID,
		InvoiceDate:   inv.InvoiceDate,
		DueDate:       inv.DueDate,
		Type:          inv.Type,
		Subtotal:      inv.Subtotal,
		TaxRate:       inv.TaxRate,
		TaxAmount:     inv.TaxAmount,
		TotalAmount:   inv.TotalAmount,
		AmountPaid:    inv.AmountPaid,
		BalanceDue:    inv.BalanceDue,
		PaymentStatus: inv.PaymentStatus,
		Notes:         inv.Notes,
		IssuedBy:      inv.IssuedBy,
		CreatedAt:     inv.CreatedAt,
	}
}

// ToPaymentResponse convierte la entidad.
func ToPaymentResponse(p *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:               p.ID,
		PaymentNumber:    p.PaymentNumber,
		InvoiceID:        p.InvoiceID,
		PaymentDate:      p.PaymentDate,
		Amount:           p.Amount,
		Method:           p.Method,
		Reference:        p.Reference,
		ReceivedBy:       p.ReceivedBy,
		Confirmed:        p.Confirmed,
		ConfirmedBy:      p.ConfirmedBy,
		ConfirmationDate: p.ConfirmationDate,
	}
}

// ToCreditNoteResponse convierte la entidad.
func ToCreditNoteResponse(cn *entity.CreditNote) CreditNoteResponse {
	return CreditNoteResponse{
		ID:               cn.ID,
		CreditNoteNumber: cn.CreditNoteNumber,
		ClientID:         cn.ClientID,
		InvoiceID:        cn.InvoiceID,
		Amount:           cn.Amount,
		Reason:           cn.Reason,
		IssuedBy:         cn.IssuedBy,
		ValidUntil:       cn.ValidUntil,
		Status:           cn.Status,
		AppliedToInvoice: cn.AppliedToInvoice,
		AppliedDate:      cn.AppliedDate,
		AppliedBy:        cn.AppliedBy,
	}
}

// CreateExpenseRequest body para POST /api/expenses. Sin fecha se usa hoy; sin medio, CASH.
type CreateExpenseRequest struct {
	Date             *time.Time      `json:"date,omitempty"`
	Category         string          `json:"category"`
	Description      string          `json:"description"`
	Amount           decimal.Decimal `json:"amount"`
	Vendor           string          `json:"vendor,omitempty"`
	InvoiceReference string          `json:"invoice_reference,omitempty"`
	PaymentMethod    string          `json:"payment_method,omitempty"`
}

// ExpenseResponse gasto en respuestas.
type ExpenseResponse struct {
	ID               string          `json:"id"`
	ExpenseNumber    string          `json:"expense_number"`
	Date             time.Time       `json:"date"`
	Category         string          `json:"category"`
	Description      string          `json:"description"`
	Amount           decimal.Decimal `json:"amount"`
	Vendor           string          `json:"vendor,omitempty"`
	InvoiceReference string          `json:"invoice_reference,omitempty"`
	PaidBy           string          `json:"paid_by"`
	PaymentMethod    string          `json:"payment_method"`
	Approved         bool            `json:"approved"`
	ApprovedBy       string          `json:"approved_by,omitempty"`
	ApprovedDate     *time.Time      `json:"approved_date,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

// ToExpenseResponse convierte la entidad.
func ToExpenseResponse(e *entity.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:               e.ID,
		ExpenseNumber:    e.ExpenseNumber,
		Date:             e.Date,
		Category:         e.Category,
		Description:      e.Description,
		Amount:           e.Amount,
		Vendor:           e.Vendor,
		InvoiceReference: e.InvoiceReference,
		PaidBy:           e.PaidBy,
		PaymentMethod:    e.PaymentMethod,
		Approved:         e.Approved(),
		ApprovedBy:       e.ApprovedBy,
		ApprovedDate:     e.ApprovedDate,
		CreatedAt:        e.CreatedAt,
	}
}
