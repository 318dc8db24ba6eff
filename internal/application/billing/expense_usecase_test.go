package billing_test

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chrisx-39/FormMaster/internal/application/billing"
	"github.com/Chrisx-39/FormMaster/internal/application/dto"
	"github.com/Chrisx-39/FormMaster/internal/domain"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/domain/policy"
	"github.com/Chrisx-39/FormMaster/internal/domain/repository"
	"github.com/Chrisx-39/FormMaster/internal/testutil/memstore"
)

var driver = policy.Actor{ID: "drv-1", Role: entity.RoleDriver}

func newExpenseUseCase() *billing.ExpenseUseCase {
	store := memstore.New()
	return billing.NewExpenseUseCase(store, store, zerolog.Nop())
}

func TestExpense_CreateYAprobar(t *testing.T) {
	uc := newExpenseUseCase()
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	e, err := uc.Create(ctx, hce, dto.CreateExpenseRequest{
		Date: &date, Category: entity.ExpenseFuel, Description: " Diésel camión 2 ", Amount: decimal.RequireFromString("180.456"),
	})
	require.NoError(t, err)
	assert.Equal(t, "EXP-2026-0001", e.ExpenseNumber)
	assert.Equal(t, "Diésel camión 2", e.Description)
	assert.Equal(t, "180.46", e.Amount.StringFixed(2))
	assert.Equal(t, entity.PaymentCash, e.PaymentMethod)
	assert.Equal(t, hce.ID, e.PaidBy)
	assert.False(t, e.Approved)

	_, err = uc.Approve(ctx, hce, e.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	approved, err := uc.Approve(ctx, fsm, e.ID)
	require.NoError(t, err)
	assert.True(t, approved.Approved)
	assert.Equal(t, fsm.ID, approved.ApprovedBy)
	require.NotNil(t, approved.ApprovedDate)

	_, err = uc.Approve(ctx, fsm, e.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	got, err := uc.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, fsm.ID, got.ApprovedBy)
}

func TestExpense_Validaciones(t *testing.T) {
	uc := newExpenseUseCase()

	_, err := uc.Create(ctx, hce, dto.CreateExpenseRequest{Category: "PARTY", Description: "x", Amount: decimal.NewFromInt(5)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, hce, dto.CreateExpenseRequest{Category: entity.ExpenseOther, Description: "x", Amount: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, driver, dto.CreateExpenseRequest{Category: entity.ExpenseOther, Description: "x", Amount: decimal.NewFromInt(5)})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Get(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExpense_ListFiltros(t *testing.T) {
	uc := newExpenseUseCase()
	for _, cat := range []string{entity.ExpenseFuel, entity.ExpenseRepairs, entity.ExpenseFuel} {
		_, err := uc.Create(ctx, hce, dto.CreateExpenseRequest{Category: cat, Description: "gasto", Amount: decimal.NewFromInt(10)})
		require.NoError(t, err)
	}
	all, err := uc.List(ctx, repository.ExpenseFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].ExpenseNumber > all[2].ExpenseNumber)

	_, err = uc.Approve(ctx, fsm, all[0].ID)
	require.NoError(t, err)

	fuel, err := uc.List(ctx, repository.ExpenseFilter{Category: entity.ExpenseFuel})
	require.NoError(t, err)
	assert.Len(t, fuel, 2)

	pending := false
	open, err := uc.List(ctx, repository.ExpenseFilter{Approved: &pending})
	require.NoError(t, err)
	assert.Len(t, open, 2)
}
