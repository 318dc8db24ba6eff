package hiring_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chrisx-39/FormMaster/internal/domain"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/domain/hiring"
)

func sampleQuotation() *entity.Quotation {
	return &entity.Quotation{
		Status:           entity.QuotationStatusDraft,
		HireDurationDays: 30,
		TransportCost:    decimal.NewFromInt(500),
		Items: []entity.QuotationItem{
			{MaterialID: "m1", Quantity: 100, DailyRate: decimal.NewFromInt(5), DurationDays: 30},
		},
	}
}

// 100 unidades * 5 * 30 días + 500 transporte, impuesto 15%.
func TestCalculateTotals_EjemploDeReferencia(t *testing.T) {
	q := sampleQuotation()

	hiring.CalculateTotals(q, decimal.RequireFromString("0.15"))

	assert.Equal(t, "15000", q.Items[0].LineTotal.String())
	assert.Equal(t, "15500", q.Subtotal.String())
	assert.Equal(t, "2325", q.TaxAmount.String())
	assert.Equal(t, "17825", q.TotalAmount.String())
}

func TestCalculateTotals_SinItemsSoloTransporte(t *testing.T) {
	q := &entity.Quotation{TransportCost: decimal.RequireFromString("80.50")}
	hiring.CalculateTotals(q, decimal.RequireFromString("0.15"))
	assert.Equal(t, "80.5", q.Subtotal.String())
	assert.Equal(t, "12.08", q.TaxAmount.String())
	assert.Equal(t, "92.58", q.TotalAmount.String())
}

func TestValidateQuotationItems(t *testing.T) {
	assert.ErrorIs(t, hiring.ValidateQuotationItems(nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, hiring.ValidateQuotationItems([]entity.QuotationItem{
		{MaterialID: "m1", Quantity: 0, DurationDays: 3},
	}), domain.ErrInvalidInput)
	assert.ErrorIs(t, hiring.ValidateQuotationItems([]entity.QuotationItem{
		{MaterialID: "m1", Quantity: 2, DurationDays: 0},
	}), domain.ErrInvalidInput)
	assert.NoError(t, hiring.ValidateQuotationItems(sampleQuotation().Items))
}

func TestQuotation_CicloCompletoYDobleConversion(t *testing.T) {
	q := sampleQuotation()

	require.NoError(t, hiring.ApproveQuotation(q, "fsm-1"))
	assert.Equal(t, entity.QuotationStatusSent, q.Status)
	assert.Equal(t, "fsm-1", q.ApprovedBy)

	require.NoError(t, hiring.AcceptQuotation(q))
	require.NoError(t, hiring.MarkConverted(q))
	assert.Equal(t, entity.QuotationStatusConverted, q.Status)

	assert.ErrorIs(t, hiring.MarkConverted(q), domain.ErrAlreadyConverted)
	assert.Equal(t, entity.QuotationStatusConverted, q.Status)
}

func TestQuotation_TransicionesInvalidas(t *testing.T) {
	q := sampleQuotation()

	assert.ErrorIs(t, hiring.AcceptQuotation(q), domain.ErrInvalidTransition, "DRAFT no se acepta sin enviar")
	assert.ErrorIs(t, hiring.MarkConverted(q), domain.ErrInvalidTransition)
	assert.Equal(t, entity.QuotationStatusDraft, q.Status)

	require.NoError(t, hiring.ExpireQuotation(q))
	assert.ErrorIs(t, hiring.ApproveQuotation(q, "x"), domain.ErrInvalidTransition)
	assert.ErrorIs(t, hiring.EnsureEditable(q), domain.ErrInvalidTransition)
}

func TestRFQ_TransicionesYCosto(t *testing.T) {
	r := &entity.RequestForQuotation{
		ClientID:         "c1",
		Status:           entity.RFQStatusReceived,
		HireDurationDays: 10,
		Items:            []entity.RFQItem{{MaterialID: "m1", QuantityRequested: 4}},
	}
	require.NoError(t, hiring.ValidateRFQ(r))
	assert.Equal(t, "200", hiring.EstimatedCost(r, map[string]decimal.Decimal{"m1": decimal.NewFromInt(5)}).String())

	assert.ErrorIs(t, hiring.TransitionRFQ(r, entity.RFQStatusAccepted), domain.ErrInvalidTransition)
	require.NoError(t, hiring.TransitionRFQ(r, entity.RFQStatusQuoted))
	assert.ErrorIs(t, hiring.EnsureRFQEditable(r, false), domain.ErrInvalidTransition)
	assert.NoError(t, hiring.EnsureRFQEditable(r, true))
	require.NoError(t, hiring.TransitionRFQ(r, hiring.RFQStatusForQuotation(entity.QuotationStatusAccepted)))
	assert.Equal(t, entity.RFQStatusAccepted, r.Status)
}
