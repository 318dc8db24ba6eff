package billing

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Chrisx-39/FormMaster/internal/domain"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
)

var minExpense = decimal.New(1, -2)

// ValidateExpense monto mínimo 0.01, categoría y medio de pago conocidos, descripción obligatoria.
func ValidateExpense(e *entity.Expense) error {
	if !ValidExpenseCategory(e.Category) {
		return domain.Invalid("category", "categoría de gasto desconocida")
	}
	if strings.TrimSpace(e.Description) == "" {
		return domain.Invalid("description", "es obligatoria")
	}
	if e.Amount.LessThan(minExpense) {
		return domain.Invalid("amount", "debe ser al menos 0.01")
	}
	if !ValidPaymentMethod(e.PaymentMethod) {
		return domain.Invalid("payment_method", "medio de pago desconocido")
	}
	return nil
}

// ValidExpenseCategory indica si c es una categoría de gasto conocida.
func ValidExpenseCategory(c string) bool {
	switch c {
	case entity.ExpenseFuel, entity.ExpenseMaintenance, entity.ExpenseRepairs, entity.ExpenseSalaries,
		entity.ExpenseUtilities, entity.ExpenseOfficeSupplies, entity.ExpenseInsurance, entity.ExpenseOther:
		return true
	}
	return false
}

// ApproveExpense registra la aprobación. Un gasto aprobado no se vuelve a aprobar.
func ApproveExpense(e *entity.Expense, userID string, at time.Time) error {
	if e.Approved() {
		return &domain.TransitionError{Entity: "expense", From: "APPROVED", To: "APPROVED"}
	}
	e.ApprovedBy = userID
	e.ApprovedDate = &at
	e.UpdatedAt = at
	return nil
}
