package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Chrisx-39/FormMaster/internal/domain"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/domain/policy"
)

func actor(role string) policy.Actor {
	return policy.Actor{ID: "u-" + role, Role: role}
}

func TestAuthorize_AprobacionesSoloGerencia(t *testing.T) {
	for _, action := range []policy.Action{policy.ApproveQuotation, policy.SignLease, policy.ApproveOrder, policy.BlacklistClient} {
		assert.NoError(t, policy.Authorize(actor(entity.RoleFSM), action, nil), action)
		assert.NoError(t, policy.Authorize(actor(entity.RoleAdmin), action, nil), action)
		assert.ErrorIs(t, policy.Authorize(actor(entity.RoleHCE), action, nil), domain.ErrForbidden, action)
		assert.ErrorIs(t, policy.Authorize(actor(entity.RoleDriver), action, nil), domain.ErrForbidden, action)
	}
}

func TestAuthorize_FacturacionIncluyeHCE(t *testing.T) {
	assert.True(t, policy.Can(actor(entity.RoleHCE), policy.CreateInvoice, nil))
	assert.True(t, policy.Can(actor(entity.RoleFSM), policy.CreateInvoice, nil))
	assert.True(t, policy.Can(actor(entity.RoleAdmin), policy.CreateInvoice, nil))
	assert.False(t, policy.Can(actor(entity.RoleEngineer), policy.CreateInvoice, nil))
}

func TestAuthorize_ResponsableDeCuenta(t *testing.T) {
	hce := actor(entity.RoleHCE)
	own := &entity.Client{AccountManagerID: hce.ID}
	other := &entity.Client{AccountManagerID: "u-otro"}

	assert.NoError(t, policy.Authorize(hce, policy.UpdateClient, own))
	assert.ErrorIs(t, policy.Authorize(hce, policy.UpdateClient, other), domain.ErrForbidden)
	assert.ErrorIs(t, policy.Authorize(hce, policy.BlacklistClient, own), domain.ErrForbidden,
		"ser responsable no habilita acciones de gerencia")
}

func TestAuthorize_FirmaDeNotaPorRol(t *testing.T) {
	assert.True(t, policy.Can(actor(entity.RoleDriver), policy.SignDeliveryNote, policy.Signer(entity.SignerDriver)))
	assert.False(t, policy.Can(actor(entity.RoleDriver), policy.SignDeliveryNote, policy.Signer(entity.SignerSecurity)))
	assert.True(t, policy.Can(actor(entity.RoleSecurity), policy.SignDeliveryNote, policy.Signer(entity.SignerSecurity)))
	assert.True(t, policy.Can(actor(entity.RoleHCE), policy.SignDeliveryNote, policy.Signer(entity.SignerClient)))
	assert.True(t, policy.Can(actor(entity.RoleAdmin), policy.SignDeliveryNote, policy.Signer(entity.SignerScaffolder)))
}

func TestAuthorize_SinActor(t *testing.T) {
	assert.ErrorIs(t, policy.Authorize(policy.Actor{}, policy.CreateRFQ, nil), domain.ErrUnauthorized)
}
