// Package hiring reglas del ciclo comercial: solicitudes de cotización, cotizaciones,
// órdenes de alquiler y contratos.
package hiring

import (
	"github.com/shopspring/decimal"

	"github.com/Chrisx-39/FormMaster/internal/domain"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
)

// LineTotal tarifa diaria * cantidad * días.
func LineTotal(item entity.QuotationItem) decimal.Decimal {
	return item.DailyRate.
		Mul(decimal.NewFromInt(int64(item.Quantity))).
		Mul(decimal.NewFromInt(int64(item.DurationDays))).
		Round(2)
}

// CalculateTotals recalcula líneas, subtotal (incluye transporte), impuesto y total.
// Se invoca antes de cada persistencia de la cotización.
func CalculateTotals(q *entity.Quotation, taxRate decimal.Decimal) {
	sum := decimal.Zero
	for i := range q.Items {
		q.Items[i].LineTotal = LineTotal(q.Items[i])
		sum = sum.Add(q.Items[i].LineTotal)
	}
	q.TaxRate = taxRate
	q.Subtotal = sum.Add(q.TransportCost).Round(2)
	q.TaxAmount = q.Subtotal.Mul(taxRate).Round(2)
	q.TotalAmount = q.Subtotal.Add(q.TaxAmount).Round(2)
}

// ValidateQuotationItems verifica cantidades y duraciones.
func ValidateQuotationItems(items []entity.QuotationItem) error {
	if len(items) == 0 {
		return domain.Invalid("items", "la cotización necesita al menos un ítem")
	}
	for _, it := range items {
		if it.MaterialID == "" {
			return domain.Invalid("material_id", "es obligatorio")
		}
		if it.Quantity < 1 {
			return domain.Invalid("quantity", "debe ser al menos 1")
		}
		if it.DurationDays < 1 {
			return domain.Invalid("duration_days", "debe ser al menos 1")
		}
		if it.DailyRate.IsNegative() {
			return domain.Invalid("daily_rate", "no puede ser negativa")
		}
	}
	return nil
}

func quotationTransition(q *entity.Quotation, to string, allowedFrom ...string) error {
	for _, from := range allowedFrom {
		if q.Status == from {
			q.Status = to
			return nil
		}
	}
	return &domain.TransitionError{Entity: "quotation", From: q.Status, To: to}
}

// EnsureEditable solo las cotizaciones en borrador admiten cambios de ítems o transporte.
func EnsureEditable(q *entity.Quotation) error {
	if q.Status != entity.QuotationStatusDraft {
		return &domain.TransitionError{Entity: "quotation", From: q.Status, To: entity.QuotationStatusDraft}
	}
	return nil
}

// ApproveQuotation DRAFT -> SENT registrando quién aprueba.
func ApproveQuotation(q *entity.Quotation, approverID string) error {
	if err := quotationTransition(q, entity.QuotationStatusSent, entity.QuotationStatusDraft); err != nil {
		return err
	}
	q.ApprovedBy = approverID
	return nil
}

// AcceptQuotation SENT -> ACCEPTED.
func AcceptQuotation(q *entity.Quotation) error {
	return quotationTransition(q, entity.QuotationStatusAccepted, entity.QuotationStatusSent)
}

// RejectQuotation SENT -> REJECTED.
func RejectQuotation(q *entity.Quotation) error {
	return quotationTransition(q, entity.QuotationStatusRejected, entity.QuotationStatusSent)
}

// ExpireQuotation DRAFT|SENT -> EXPIRED.
func ExpireQuotation(q *entity.Quotation) error {
	return quotationTransition(q, entity.QuotationStatusExpired,
		entity.QuotationStatusDraft, entity.QuotationStatusSent)
}

// MarkConverted ACCEPTED -> CONVERTED, una sola vez.
func MarkConverted(q *entity.Quotation) error {
	if q.Status == entity.QuotationStatusConverted {
		return domain.ErrAlreadyConverted
	}
	return quotationTransition(q, entity.QuotationStatusConverted, entity.QuotationStatusAccepted)
}
