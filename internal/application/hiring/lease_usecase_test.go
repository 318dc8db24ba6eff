package hiring_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chrisx-39/FormMaster/internal/application/dto"
	"github.com/Chrisx-39/FormMaster/internal/application/hiring"
	"github.com/Chrisx-39/FormMaster/internal/domain"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/testutil/memstore"
)

func orderFor(t *testing.T, store *memstore.Store) *dto.OrderResponse {
	t.Helper()
	tubes := store.SeedMaterial(t, "TUB-6M", 100, "5")
	client := store.SeedClient(t, "0")
	q := store.SeedAcceptedQuotation(t, client.ID, 30, memstore.QuotationLine{Material: tubes, Quantity: 10})
	o, err := newOrderUseCase(store).CreateFromQuotation(ctx, hce, q.ID, dto.CreateOrderRequest{})
	require.NoError(t, err)
	return o
}

func TestLease_OrdenSinAprobar(t *testing.T) {
	store := memstore.New()
	o := orderFor(t, store)
	uc := hiring.NewLeaseUseCase(store, store, settings)

	_, err := uc.Create(ctx, hce, o.ID, dto.LeaseRequest{})
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestLease_DobleFirmaActiva(t *testing.T) {
	store := memstore.New()
	o := orderFor(t, store)
	_, err := newOrderUseCase(store).Approve(ctx, fsm, o.ID)
	require.NoError(t, err)
	uc := hiring.NewLeaseUseCase(store, store, settings)

	la, err := uc.Create(ctx, hce, o.ID, dto.LeaseRequest{Terms: "30 días"})
	require.NoError(t, err)
	assert.Equal(t, entity.LeaseStatusDraft, la.Status)
	assert.True(t, la.LateReturnPenaltyPerDay.Equal(decimal.NewFromInt(50)), "usa el recargo configurado")
	assert.Contains(t, la.AgreementNumber, "LA-")

	_, err = uc.Create(ctx, hce, o.ID, dto.LeaseRequest{})
	require.ErrorIs(t, err, domain.ErrDuplicate, "un contrato por orden")

	_, err = uc.SignByManager(ctx, hce, o.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)

	la, err = uc.SignByClient(ctx, hce, o.ID)
	require.NoError(t, err)
	assert.True(t, la.SignedByClient)
	assert.Equal(t, entity.LeaseStatusDraft, la.Status)

	la, err = uc.SignByManager(ctx, fsm, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.LeaseStatusActive, la.Status)
	assert.Equal(t, fsm.ID, la.FSMSignedBy)

	got, err := uc.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.LeaseStatusActive, got.Status)

	_, err = uc.SignByClient(ctx, hce, o.ID)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestLease_RecargoNegativo(t *testing.T) {
	store := memstore.New()
	o := orderFor(t, store)
	_, err := newOrderUseCase(store).Approve(ctx, fsm, o.ID)
	require.NoError(t, err)

	neg := decimal.NewFromInt(-1)
	_, err = hiring.NewLeaseUseCase(store, store, settings).Create(ctx, hce, o.ID, dto.LeaseRequest{LateReturnPenaltyPerDay: &neg})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
