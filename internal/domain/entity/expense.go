package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de gasto.
const (
	ExpenseFuel           = "FUEL"
	ExpenseMaintenance    = "MAINTENANCE"
	ExpenseRepairs        = "REPAIRS"
	ExpenseSalaries       = "SALARIES"
	ExpenseUtilities      = "UTILITIES"
	ExpenseOfficeSupplies = "OFFICE_SUPPLIES"
	ExpenseInsurance      = "INSURANCE"
	ExpenseOther          = "OTHER"
)

// Expense gasto operativo. Se aprueba una sola vez.
type Expense struct {
	ID               string
	ExpenseNumber    string // EXP-YYYY-NNNN
	Date             time.Time
	Category         string
	Description      string
	Amount           decimal.Decimal
	Vendor           string
	InvoiceReference string
	PaidBy           string
	PaymentMethod    string
	ApprovedBy       string
	ApprovedDate     *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Approved indica si el gasto ya fue aprobado.
func (e *Expense) Approved() bool { return e.ApprovedDate != nil }
