package hiring

import (
	"github.com/shopspring/decimal"

	"github.com/Chrisx-39/FormMaster/internal/domain"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
)

// ValidateRFQ verifica duración e ítems de una solicitud.
func ValidateRFQ(r *entity.RequestForQuotation) error {
	if r.ClientID == "" {
		return domain.Invalid("client_id", "es obligatorio")
	}
	if r.HireDurationDays < 1 {
		return domain.Invalid("hire_duration_days", "debe ser al menos 1")
	}
	if len(r.Items) == 0 {
		return domain.Invalid("items", "la solicitud necesita al menos un ítem")
	}
	for _, it := range r.Items {
		if it.MaterialID == "" {
			return domain.Invalid("material_id", "es obligatorio")
		}
		if it.QuantityRequested < 1 {
			return domain.Invalid("quantity_requested", "debe ser al menos 1")
		}
	}
	return nil
}

// EnsureRFQEditable una solicitud cotizada solo se modifica con permiso de override.
func EnsureRFQEditable(r *entity.RequestForQuotation, canOverride bool) error {
	if r.Status == entity.RFQStatusReceived || canOverride {
		return nil
	}
	return &domain.TransitionError{Entity: "rfq", From: r.Status, To: entity.RFQStatusReceived}
}

// EstimatedCost suma tarifa diaria * cantidad * duración de cada ítem, con tarifas por material.
func EstimatedCost(r *entity.RequestForQuotation, rates map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	days := decimal.NewFromInt(int64(r.HireDurationDays))
	for _, it := range r.Items {
		total = total.Add(rates[it.MaterialID].Mul(decimal.NewFromInt(int64(it.QuantityRequested))).Mul(days))
	}
	return total.Round(2)
}

var rfqTransitions = map[string][]string{
	entity.RFQStatusReceived: {entity.RFQStatusQuoted},
	entity.RFQStatusQuoted:   {entity.RFQStatusAccepted, entity.RFQStatusRejected, entity.RFQStatusExpired},
}

// TransitionRFQ aplica el cambio de estado si está permitido.
func TransitionRFQ(r *entity.RequestForQuotation, to string) error {
	for _, allowed := range rfqTransitions[r.Status] {
		if allowed == to {
			r.Status = to
			return nil
		}
	}
	return &domain.TransitionError{Entity: "rfq", From: r.Status, To: to}
}

// RFQStatusForQuotation estado que debe tomar la solicitud cuando su cotización llega a qStatus.
// Devuelve "" si la solicitud no cambia.
func RFQStatusForQuotation(qStatus string) string {
	switch qStatus {
	case entity.QuotationStatusAccepted:
		return entity.RFQStatusAccepted
	case entity.QuotationStatusRejected:
		return entity.RFQStatusRejected
	case entity.QuotationStatusExpired:
		return entity.RFQStatusExpired
	}
	return ""
}
