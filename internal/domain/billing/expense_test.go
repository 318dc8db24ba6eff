package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chrisx-39/FormMaster/internal/domain"
	"github.com/Chrisx-39/FormMaster/internal/domain/billing"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
)

func expense(amount string) *entity.Expense {
	return &entity.Expense{
		Category:      entity.ExpenseFuel,
		Description:   "Diésel camión 2",
		Amount:        decimal.RequireFromString(amount),
		PaymentMethod: entity.PaymentCash,
	}
}

func TestValidateExpense(t *testing.T) {
	assert.NoError(t, billing.ValidateExpense(expense("0.01")))
	assert.ErrorIs(t, billing.ValidateExpense(expense("0.001")), domain.ErrInvalidInput)
	assert.ErrorIs(t, billing.ValidateExpense(expense("0")), domain.ErrInvalidInput)

	e := expense("10")
	e.Category = "PARTY"
	assert.ErrorIs(t, billing.ValidateExpense(e), domain.ErrInvalidInput)

	e = expense("10")
	e.Description = "  "
	assert.ErrorIs(t, billing.ValidateExpense(e), domain.ErrInvalidInput)

	e = expense("10")
	e.PaymentMethod = "BARTER"
	assert.ErrorIs(t, billing.ValidateExpense(e), domain.ErrInvalidInput)
}

func TestApproveExpense_UnaSolaVez(t *testing.T) {
	e := expense("50")
	require.NoError(t, billing.ApproveExpense(e, "fsm-1", today))
	assert.True(t, e.Approved())
	assert.Equal(t, "fsm-1", e.ApprovedBy)
	assert.Equal(t, today, *e.ApprovedDate)

	err := billing.ApproveExpense(e, "admin-1", today.AddDate(0, 0, 1))
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, "fsm-1", e.ApprovedBy)
}
