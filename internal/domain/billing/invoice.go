// Package billing reglas de facturas, pagos y notas crédito.
package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Chrisx-39/FormMaster/internal/domain"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
)

// CalculateInvoiceTotals impuesto y total a partir del subtotal.
func CalculateInvoiceTotals(inv *entity.Invoice, taxRate decimal.Decimal) {
	inv.Subtotal = inv.Subtotal.Round(2)
	inv.TaxRate = taxRate
	inv.TaxAmount = inv.Subtotal.Mul(taxRate).Round(2)
	inv.TotalAmount = inv.Subtotal.Add(inv.TaxAmount).Round(2)
}

// Recalculate fija BalanceDue = Total - Pagado y el estado:
// PAID si el pago cubre el total, si no PARTIAL si hay algún pago, si no OVERDUE
// cuando una factura enviada pasó su vencimiento; en otro caso el estado no cambia.
// Las facturas anuladas no se tocan.
func Recalculate(inv *entity.Invoice, today time.Time) {
	inv.BalanceDue = inv.TotalAmount.Sub(inv.AmountPaid).Round(2)
	if inv.PaymentStatus == entity.InvoiceStatusCancelled {
		return
	}
	switch {
	case inv.AmountPaid.GreaterThanOrEqual(inv.TotalAmount) && inv.TotalAmount.IsPositive():
		inv.PaymentStatus = entity.InvoiceStatusPaid
	case inv.AmountPaid.IsPositive():
		inv.PaymentStatus = entity.InvoiceStatusPartial
	case inv.PaymentStatus == entity.InvoiceStatusSent && dayOf(inv.DueDate).Before(dayOf(today)):
		inv.PaymentStatus = entity.InvoiceStatusOverdue
	}
}

// IssueInvoice DRAFT -> ISSUED.
func IssueInvoice(inv *entity.Invoice) error {
	return invoiceTransition(inv, entity.InvoiceStatusIssued, entity.InvoiceStatusDraft)
}

// SendInvoice ISSUED -> SENT.
func SendInvoice(inv *entity.Invoice) error {
	return invoiceTransition(inv, entity.InvoiceStatusSent, entity.InvoiceStatusIssued)
}

// CancelInvoice solo facturas sin pagos registrados.
func CancelInvoice(inv *entity.Invoice) error {
	if inv.AmountPaid.IsPositive() {
		return &domain.TransitionError{Entity: "invoice", From: inv.PaymentStatus, To: entity.InvoiceStatusCancelled}
	}
	return invoiceTransition(inv, entity.InvoiceStatusCancelled,
		entity.InvoiceStatusDraft, entity.InvoiceStatusIssued, entity.InvoiceStatusSent, entity.InvoiceStatusOverdue)
}

// AcceptsPayments facturas emitidas y no liquidadas.
func AcceptsPayments(inv *entity.Invoice) bool {
	switch inv.PaymentStatus {
	case entity.InvoiceStatusIssued, entity.InvoiceStatusSent,
		entity.InvoiceStatusPartial, entity.InvoiceStatusOverdue:
		return true
	}
	return false
}

// IsReceivable la factura ya cuenta en el saldo del cliente.
func IsReceivable(inv *entity.Invoice) bool {
	return inv.PaymentStatus != entity.InvoiceStatusDraft && inv.PaymentStatus != entity.InvoiceStatusCancelled
}

func invoiceTransition(inv *entity.Invoice, to string, allowedFrom ...string) error {
	for _, from := range allowedFrom {
		if inv.PaymentStatus == from {
			inv.PaymentStatus = to
			return nil
		}
	}
	return &domain.TransitionError{Entity: "invoice", From: inv.PaymentStatus, To: to}
}

// ValidatePayment monto positivo que, sumado a los pagos aún sin confirmar (pending),
// no supere el saldo pendiente.
func ValidatePayment(inv *entity.Invoice, amount, pending decimal.Decimal, method string) error {
	if !amount.IsPositive() {
		return domain.Invalid("amount", "debe ser mayor que cero")
	}
	if !ValidPaymentMethod(method) {
		return domain.Invalid("method", "medio de pago desconocido")
	}
	if !AcceptsPayments(inv) {
		return &domain.TransitionError{Entity: "invoice", From: inv.PaymentStatus, To: entity.InvoiceStatusPartial}
	}
	if amount.Add(pending).GreaterThan(inv.BalanceDue) {
		return domain.ErrPaymentExceedsBalance
	}
	return nil
}

// ValidateConfirmation la factura sigue admitiendo pagos y lo ya confirmado más amount
// no supera el total.
func ValidateConfirmation(inv *entity.Invoice, confirmedTotal, amount decimal.Decimal) error {
	if confirmedTotal.Add(amount).GreaterThan(inv.TotalAmount) {
		return domain.ErrPaymentExceedsBalance
	}
	if !AcceptsPayments(inv) {
		return &domain.TransitionError{Entity: "invoice", From: inv.PaymentStatus, To: entity.InvoiceStatusPaid}
	}
	return nil
}

// PendingTotal suma de los pagos sin confirmar.
func PendingTotal(payments []*entity.Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		if !p.Confirmed {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// ValidPaymentMethod indica si m es un medio de pago conocido.
func ValidPaymentMethod(m string) bool {
	switch m {
	case entity.PaymentCash, entity.PaymentBankTransfer, entity.PaymentCheque,
		entity.PaymentCreditCard, entity.PaymentMobileMoney:
		return true
	}
	return false
}

// ConfirmPayment marca el pago como confirmado. Devuelve false si ya lo estaba.
func ConfirmPayment(p *entity.Payment, userID string, at time.Time) bool {
	if p.Confirmed {
		return false
	}
	p.Confirmed = true
	p.ConfirmedBy = userID
	p.ConfirmationDate = &at
	return true
}

// ApplyConfirmedTotal fija AmountPaid a la suma de pagos confirmados y recalcula.
// Devuelve cuánto cambió lo pagado, que es lo que debe restarse del saldo del cliente.
func ApplyConfirmedTotal(inv *entity.Invoice, confirmedTotal decimal.Decimal, today time.Time) decimal.Decimal {
	delta := confirmedTotal.Sub(inv.AmountPaid)
	inv.AmountPaid = confirmedTotal.Round(2)
	Recalculate(inv, today)
	return delta.Round(2)
}

// OrderPaymentStatus estado de pago de la orden a partir de sus facturas vigentes.
func OrderPaymentStatus(invoices []*entity.Invoice) string {
	var active, paid int
	anyPaid, anyOverdue := false, false
	for _, inv := range invoices {
		if !IsReceivable(inv) {
			continue
		}
		active++
		switch inv.PaymentStatus {
		case entity.InvoiceStatusPaid:
			paid++
			anyPaid = true
		case entity.InvoiceStatusPartial:
			anyPaid = true
		case entity.InvoiceStatusOverdue:
			anyOverdue = true
		}
	}
	switch {
	case active > 0 && paid == active:
		return entity.OrderPaymentFull
	case anyOverdue:
		return entity.OrderPaymentOverdue
	case anyPaid:
		return entity.OrderPaymentPartial
	default:
		return entity.OrderPaymentPending
	}
}

// ValidInvoiceType indica si t es un tipo de factura conocido.
func ValidInvoiceType(t string) bool {
	switch t {
	case entity.InvoiceTypeAdvance, entity.InvoiceTypeFinal, entity.InvoiceTypePenalty, entity.InvoiceTypePartial:
		return true
	}
	return false
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
