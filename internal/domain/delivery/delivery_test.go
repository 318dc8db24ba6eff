package delivery_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chrisx-39/FormMaster/internal/domain"
	"github.com/Chrisx-39/FormMaster/internal/domain/delivery"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
)

func TestIsNoteFullySigned_NoExigeCliente(t *testing.T) {
	n := &entity.DeliveryNote{}
	now := time.Now()

	require.NoError(t, delivery.SignNote(n, entity.SignerDriver, now))
	require.NoError(t, delivery.SignNote(n, entity.SignerScaffolder, now))
	assert.False(t, delivery.IsNoteFullySigned(n))

	require.NoError(t, delivery.SignNote(n, entity.SignerSecurity, now))
	assert.True(t, delivery.IsNoteFullySigned(n))
	assert.False(t, n.SignedByClient)

	assert.ErrorIs(t, delivery.SignNote(n, "MANAGER", now), domain.ErrInvalidInput)
}

func TestGRV_DiscrepanciaSinTolerancia(t *testing.T) {
	g := &entity.GoodsReceivedVoucher{Items: []entity.GRVItem{
		{MaterialID: "m1", QuantityExpected: 40, QuantityReceived: 40},
		{MaterialID: "m2", QuantityExpected: 10, QuantityReceived: 9},
	}}

	require.NoError(t, delivery.ValidateGRV(g))
	assert.False(t, g.AllItemsReceived)
	assert.Equal(t, 1, delivery.Discrepancy(g.Items[1]))
	assert.False(t, delivery.HasDiscrepancy(g.Items[0]))

	g.Items[1].QuantityReceived = 10
	require.NoError(t, delivery.ValidateGRV(g))
	assert.True(t, g.AllItemsReceived)
}

func TestTransitionTransport(t *testing.T) {
	tr := &entity.TransportRequest{Status: entity.TransportStatusPending}
	assert.ErrorIs(t, delivery.TransitionTransport(tr, entity.TransportStatusAssigned), domain.ErrInvalidTransition)
	require.NoError(t, delivery.TransitionTransport(tr, entity.TransportStatusApproved))
	require.NoError(t, delivery.TransitionTransport(tr, entity.TransportStatusAssigned))
	require.NoError(t, delivery.TransitionTransport(tr, entity.TransportStatusCompleted))
	assert.ErrorIs(t, delivery.TransitionTransport(tr, entity.TransportStatusCancelled), domain.ErrInvalidTransition)
}

func TestTransitionDelivery_SellaHoras(t *testing.T) {
	d := &entity.Delivery{Status: entity.DeliveryStatusScheduled}
	now := time.Now()

	require.NoError(t, delivery.TransitionDelivery(d, entity.DeliveryStatusInTransit, now))
	require.NotNil(t, d.DepartureTime)
	require.NoError(t, delivery.TransitionDelivery(d, entity.DeliveryStatusDelivered, now))
	require.NotNil(t, d.ArrivalTime)
	assert.ErrorIs(t, delivery.TransitionDelivery(d, entity.DeliveryStatusInTransit, now), domain.ErrInvalidTransition)
}

func TestNoteItemsFromOrder(t *testing.T) {
	o := &entity.HireOrder{Items: []entity.HireOrderItem{
		{MaterialID: "m1", QuantityOrdered: 12, QuantityDispatched: 10},
	}}
	items := delivery.NoteItemsFromOrder(o)
	require.Len(t, items, 1)
	assert.Equal(t, 12, items[0].Quantity)
}
