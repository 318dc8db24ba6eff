// Package clients reglas de crédito y elegibilidad de clientes.
package clients

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Chrisx-39/FormMaster/internal/domain"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
)

// Niveles de riesgo según utilización de crédito.
const (
	CreditLow      = "LOW"
	CreditModerate = "MODERATE"
	CreditHigh     = "HIGH"
	CreditCritical = "CRITICAL"
)

var hundred = decimal.NewFromInt(100)

// AvailableCredit max(límite - saldo, 0).
func AvailableCredit(c *entity.Client) decimal.Decimal {
	avail := c.CreditLimit.Sub(c.CurrentBalance)
	if avail.IsNegative() {
		return decimal.Zero
	}
	return avail
}

// CreditUtilization saldo / límite * 100 (0 si el límite es 0).
func CreditUtilization(c *entity.Client) decimal.Decimal {
	if !c.CreditLimit.IsPositive() {
		return decimal.Zero
	}
	return c.CurrentBalance.Mul(hundred).Div(c.CreditLimit).Round(2)
}

// CreditStatus clasifica la utilización: >=90 CRITICAL, >=75 HIGH, >=50 MODERATE.
func CreditStatus(c *entity.Client) string {
	u := CreditUtilization(c)
	switch {
	case u.GreaterThanOrEqual(decimal.NewFromInt(90)):
		return CreditCritical
	case u.GreaterThanOrEqual(decimal.NewFromInt(75)):
		return CreditHigh
	case u.GreaterThanOrEqual(decimal.NewFromInt(50)):
		return CreditModerate
	default:
		return CreditLow
	}
}

// UpdateBalance suma delta (positivo al facturar, negativo al pagar o acreditar).
func UpdateBalance(c *entity.Client, delta decimal.Decimal) {
	c.CurrentBalance = c.CurrentBalance.Add(delta).Round(2)
}

// CanReceiveQuotes falla con ErrClientNotEligible si el cliente está bloqueado o suspendido.
func CanReceiveQuotes(c *entity.Client) error {
	switch c.Status {
	case entity.ClientStatusBlacklisted, entity.ClientStatusSuspended:
		return domain.ErrClientNotEligible
	}
	return nil
}

// PaymentTermsDays días de crédito de cada condición de pago (30 por defecto).
func PaymentTermsDays(terms string) int {
	switch terms {
	case entity.PaymentTermsImmediate:
		return 0
	case entity.PaymentTerms7Days:
		return 7
	case entity.PaymentTerms14Days:
		return 14
	case entity.PaymentTerms60Days:
		return 60
	case entity.PaymentTerms90Days:
		return 90
	default:
		return 30
	}
}

// ValidPaymentTerms indica si terms es una condición conocida.
func ValidPaymentTerms(terms string) bool {
	switch terms {
	case entity.PaymentTermsImmediate, entity.PaymentTerms7Days, entity.PaymentTerms14Days,
		entity.PaymentTerms30Days, entity.PaymentTerms60Days, entity.PaymentTerms90Days:
		return true
	}
	return false
}

// DueDate fecha de vencimiento de una factura emitida en invoiceDate.
func DueDate(c *entity.Client, invoiceDate time.Time) time.Time {
	return invoiceDate.AddDate(0, 0, PaymentTermsDays(c.PaymentTerms))
}

// ValidStatusChange transiciones manuales permitidas. BLACKLISTED solo se alcanza con Blacklist
// y solo se sale de él reinstalando al cliente.
func ValidStatusChange(from, to string) error {
	if from == to {
		return &domain.TransitionError{Entity: "client", From: from, To: to}
	}
	switch to {
	case entity.ClientStatusActive, entity.ClientStatusInactive, entity.ClientStatusSuspended:
		if from == entity.ClientStatusBlacklisted {
			return &domain.TransitionError{Entity: "client", From: from, To: to}
		}
		return nil
	}
	return &domain.TransitionError{Entity: "client", From: from, To: to}
}
