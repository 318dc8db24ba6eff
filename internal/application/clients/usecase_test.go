package clients_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chrisx-39/FormMaster/internal/application/clients"
	"github.com/Chrisx-39/FormMaster/internal/application/dto"
	"github.com/Chrisx-39/FormMaster/internal/domain"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/domain/policy"
	"github.com/Chrisx-39/FormMaster/internal/domain/repository"
	"github.com/Chrisx-39/FormMaster/internal/testutil/memstore"
)

var (
	ctx = context.Background()
	fsm = policy.Actor{ID: "fsm-1", Role: entity.RoleFSM}
	hce = policy.Actor{ID: "hce-1", Role: entity.RoleHCE}
)

func newUseCase() (*clients.ClientUseCase, *memstore.Store) {
	store := memstore.New()
	return clients.NewClientUseCase(store, store, zerolog.Nop()), store
}

func createClient(t *testing.T, uc *clients.ClientUseCase, manager string) *dto.ClientResponse {
	t.Helper()
	c, err := uc.Create(ctx, hce, dto.CreateClientRequest{
		Name:             "  Constructora Andina ",
		Type:             entity.ClientTypePrivate,
		CreditLimit:      decimal.NewFromInt(10000),
		AccountManagerID: manager,
	})
	require.NoError(t, err)
	return c
}

func TestCreate_Defaults(t *testing.T) {
	uc, store := newUseCase()

	c := createClient(t, uc, "")

	assert.Equal(t, "Constructora Andina", c.Name)
	assert.Equal(t, entity.ClientStatusActive, c.Status)
	assert.Equal(t, entity.PaymentTerms30Days, c.PaymentTerms)
	assert.True(t, c.CurrentBalance.IsZero())
	assert.Regexp(t, `^CL-\d{4}-0001$`, c.ClientNumber)
	history := store.History()
	require.Len(t, history, 1)
	assert.Equal(t, entity.HistoryCreated, history[0].Action)
}

func TestCreate_Validaciones(t *testing.T) {
	uc, _ := newUseCase()

	_, err := uc.Create(ctx, hce, dto.CreateClientRequest{Name: "X", Type: "ALIEN"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, hce, dto.CreateClientRequest{Name: "X", Type: entity.ClientTypePrivate, PaymentTerms: "45_DAYS"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, policy.Actor{ID: "d", Role: entity.RoleDriver}, dto.CreateClientRequest{Name: "X", Type: entity.ClientTypePrivate})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdate_ResponsableDeCuenta(t *testing.T) {
	uc, _ := newUseCase()
	c := createClient(t, uc, hce.ID)
	phone := "3001234567"

	updated, err := uc.Update(ctx, hce, c.ID, dto.UpdateClientRequest{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, phone, updated.Phone)

	other := policy.Actor{ID: "hce-2", Role: entity.RoleHCE}
	_, err = uc.Update(ctx, other, c.ID, dto.UpdateClientRequest{Phone: &phone})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestBlacklist_YReinstalar(t *testing.T) {
	uc, _ := newUseCase()
	c := createClient(t, uc, "")

	_, err := uc.Blacklist(ctx, fsm, c.ID, dto.BlacklistRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el motivo es obligatorio")
	_, err = uc.Blacklist(ctx, hce, c.ID, dto.BlacklistRequest{Reason: "mora"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	blocked, err := uc.Blacklist(ctx, fsm, c.ID, dto.BlacklistRequest{Reason: "mora reiterada"})
	require.NoError(t, err)
	assert.Equal(t, entity.ClientStatusBlacklisted, blocked.Status)

	_, err = uc.Blacklist(ctx, fsm, c.ID, dto.BlacklistRequest{Reason: "otra vez"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = uc.ChangeStatus(ctx, fsm, c.ID, dto.ChangeClientStatusRequest{Status: entity.ClientStatusActive})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "de la lista negra solo se sale reinstalando")

	back, err := uc.Reinstate(ctx, fsm, c.ID, "acuerdo de pago")
	require.NoError(t, err)
	assert.Equal(t, entity.ClientStatusActive, back.Status)

	history, err := uc.History(ctx, c.ID)
	require.NoError(t, err)
	assert.Len(t, history, 3)
}

func TestUpdateBalanceInTx_YResumenDeCredito(t *testing.T) {
	uc, store := newUseCase()
	c := createClient(t, uc, "")

	err := store.Run(ctx, func(tx repository.Repos) error {
		return uc.UpdateBalanceInTx(ctx, tx, c.ID, decimal.NewFromInt(8000), "INV-2026-0001", hce.ID)
	})
	require.NoError(t, err)

	summary, err := uc.CreditSummary(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "8000.00", summary.CurrentBalance.StringFixed(2))
	assert.Equal(t, "2000.00", summary.AvailableCredit.StringFixed(2))
	assert.Equal(t, "80.00", summary.CreditUtilization.StringFixed(2))
	assert.Equal(t, "HIGH", summary.CreditStatus)
	assert.Equal(t, 30, summary.PaymentTermsDays)

	err = store.Run(ctx, func(tx repository.Repos) error {
		return uc.UpdateBalanceInTx(ctx, tx, c.ID, decimal.NewFromInt(-9000), "CN-2026-0001", fsm.ID)
	})
	require.NoError(t, err)
	summary, err = uc.CreditSummary(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "-1000.00", summary.CurrentBalance.StringFixed(2), "el saldo puede quedar a favor")
	assert.Equal(t, "10000.00", summary.AvailableCredit.StringFixed(2))
}
