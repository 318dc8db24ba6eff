package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chrisx-39/FormMaster/internal/domain"
	"github.com/Chrisx-39/FormMaster/internal/domain/billing"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
)

func TestApplyCreditNote_UnaSolaVez(t *testing.T) {
	cn := &entity.CreditNote{Status: entity.CreditNoteIssued}

	require.NoError(t, billing.ApplyCreditNote(cn, "inv-1", "fsm-1", today))
	assert.Equal(t, entity.CreditNoteApplied, cn.Status)
	assert.Equal(t, "inv-1", cn.AppliedToInvoice)
	require.NotNil(t, cn.AppliedDate)

	err := billing.ApplyCreditNote(cn, "inv-2", "fsm-1", today)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, "inv-1", cn.AppliedToInvoice)
}

func TestApplyCreditNote_AnuladaOVencida(t *testing.T) {
	cn := &entity.CreditNote{Status: entity.CreditNoteDraft}
	require.NoError(t, billing.CancelCreditNote(cn))
	assert.ErrorIs(t, billing.ApplyCreditNote(cn, "inv-1", "u", today), domain.ErrInvalidTransition)

	expired := today.AddDate(0, 0, -1)
	cn = &entity.CreditNote{Status: entity.CreditNoteIssued, ValidUntil: &expired}
	assert.ErrorIs(t, billing.ApplyCreditNote(cn, "inv-1", "u", today), domain.ErrInvalidInput)
}

func TestIssueCreditNote(t *testing.T) {
	cn := &entity.CreditNote{Status: entity.CreditNoteDraft}
	require.NoError(t, billing.IssueCreditNote(cn))
	assert.ErrorIs(t, billing.IssueCreditNote(cn), domain.ErrInvalidTransition)
}
