package hiring_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chrisx-39/FormMaster/internal/domain"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/domain/hiring"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTransitionOrder_OrderedADispatchedSeRechaza(t *testing.T) {
	o := &entity.HireOrder{Status: entity.OrderStatusOrdered}

	err := hiring.TransitionOrder(o, entity.OrderStatusDispatched)

	require.Error(t, err)
	var te *domain.TransitionError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, entity.OrderStatusOrdered, te.From)
	assert.Equal(t, entity.OrderStatusDispatched, te.To)
	assert.Equal(t, entity.OrderStatusOrdered, o.Status, "el estado no cambia")
}

func TestTransitionOrder_CaminoFeliz(t *testing.T) {
	o := &entity.HireOrder{Status: entity.OrderStatusOrdered}
	for _, to := range []string{
		entity.OrderStatusApproved,
		entity.OrderStatusDispatched,
		entity.OrderStatusActive,
		entity.OrderStatusReturned,
		entity.OrderStatusCompleted,
	} {
		require.NoError(t, hiring.TransitionOrder(o, to), "-> %s", to)
	}
	assert.ErrorIs(t, hiring.TransitionOrder(o, entity.OrderStatusCancelled), domain.ErrInvalidTransition)
}

func TestCanTransition_Cancelacion(t *testing.T) {
	assert.True(t, hiring.CanTransition(entity.OrderStatusOrdered, entity.OrderStatusCancelled))
	assert.True(t, hiring.CanTransition(entity.OrderStatusApproved, entity.OrderStatusCancelled))
	assert.False(t, hiring.CanTransition(entity.OrderStatusDispatched, entity.OrderStatusCancelled))
	assert.False(t, hiring.CanTransition(entity.OrderStatusCancelled, entity.OrderStatusOrdered))
}

func TestDaysOverdue(t *testing.T) {
	expected := day(2026, 5, 10)

	active := &entity.HireOrder{Status: entity.OrderStatusActive, ExpectedReturnDate: expected}
	assert.Equal(t, 0, hiring.DaysOverdue(active, day(2026, 5, 10)))
	assert.Equal(t, 4, hiring.DaysOverdue(active, day(2026, 5, 14)))
	assert.True(t, hiring.IsOverdue(active, day(2026, 5, 11)))

	returned := day(2026, 5, 13)
	done := &entity.HireOrder{Status: entity.OrderStatusCompleted, ExpectedReturnDate: expected, ActualReturnDate: &returned}
	assert.Equal(t, 3, hiring.DaysOverdue(done, day(2026, 6, 30)))

	early := day(2026, 5, 1)
	done.ActualReturnDate = &early
	assert.Equal(t, 0, hiring.DaysOverdue(done, day(2026, 6, 30)))

	approved := &entity.HireOrder{Status: entity.OrderStatusApproved, ExpectedReturnDate: expected}
	assert.Equal(t, 0, hiring.DaysOverdue(approved, day(2026, 6, 30)))
}

func TestLatePenalty(t *testing.T) {
	o := &entity.HireOrder{Status: entity.OrderStatusActive, ExpectedReturnDate: day(2026, 5, 10)}
	assert.Equal(t, "150", hiring.LatePenalty(o, day(2026, 5, 13), decimal.NewFromInt(50)).String())
}

func TestDispatchQuantities(t *testing.T) {
	o := &entity.HireOrder{Items: []entity.HireOrderItem{
		{ID: "i1", MaterialID: "m1", QuantityOrdered: 10},
		{ID: "i2", MaterialID: "m2", QuantityOrdered: 5},
	}}

	_, err := hiring.DispatchQuantities(o, map[string]int{"i1": 11})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	rest, err := hiring.DispatchQuantities(o, map[string]int{"i1": 7})
	require.NoError(t, err)
	assert.Equal(t, 7, o.Items[0].QuantityDispatched)
	assert.Equal(t, 5, o.Items[1].QuantityDispatched)
	assert.Equal(t, map[string]int{"m1": 3}, rest)
}

func TestRecordReturns(t *testing.T) {
	o := &entity.HireOrder{Items: []entity.HireOrderItem{
		{ID: "i1", MaterialID: "m1", QuantityOrdered: 40, QuantityDispatched: 40},
		{ID: "i2", MaterialID: "m2", QuantityOrdered: 5, QuantityDispatched: 5},
	}}

	assert.ErrorIs(t, hiring.RecordReturns(o, map[string]hiring.ReturnLine{"i1": {Quantity: 41}}), domain.ErrInvalidInput)

	require.NoError(t, hiring.RecordReturns(o, map[string]hiring.ReturnLine{
		"i1": {Quantity: 35, Condition: entity.ReturnConditionDamaged},
	}))
	assert.Equal(t, 35, o.Items[0].QuantityReturned)
	assert.Equal(t, entity.ReturnConditionDamaged, o.Items[0].ConditionOnReturn)
	assert.Equal(t, 5, o.Items[1].QuantityReturned)
	assert.Equal(t, entity.ReturnConditionGood, o.Items[1].ConditionOnReturn)
}

func TestLease_SeActivaConAmbasFirmas(t *testing.T) {
	la := &entity.LeaseAgreement{Status: entity.LeaseStatusDraft}
	now := time.Now()

	require.NoError(t, hiring.SignLeaseByClient(la, now))
	assert.False(t, hiring.IsFullySigned(la))
	assert.Equal(t, entity.LeaseStatusDraft, la.Status)

	require.NoError(t, hiring.SignLeaseByManager(la, "fsm-1", now))
	assert.True(t, hiring.IsFullySigned(la))
	assert.Equal(t, entity.LeaseStatusActive, la.Status)

	assert.ErrorIs(t, hiring.SignLeaseByClient(la, now), domain.ErrInvalidTransition)
	require.NoError(t, hiring.CloseLease(la, entity.LeaseStatusCompleted))
}
