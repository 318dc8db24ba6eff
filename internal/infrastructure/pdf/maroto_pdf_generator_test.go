package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chrisx-39/FormMaster/internal/application/ports"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/infrastructure/pdf"
)

func client() *entity.Client {
	return &entity.Client{ClientNumber: "CL-2026-0001", Name: "Constructora Andina", Email: "obra@andina.co"}
}

func TestQuotationPDF_GeneraPDF(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator("FormMaster")
	out, err := g.QuotationPDF(context.Background(), ports.QuotationDocument{
		Quotation: &entity.Quotation{
			QuotationNumber:  "QT-2026-0001",
			ValidUntil:       time.Date(2026, 11, 13, 0, 0, 0, 0, time.UTC),
			HireDurationDays: 30,
			Subtotal:         decimal.NewFromInt(15000),
			TaxRate:          decimal.RequireFromString("0.15"),
			TaxAmount:        decimal.NewFromInt(2250),
			TotalAmount:      decimal.NewFromInt(17250),
		},
		Client:   client(),
		Lines:    []ports.MaterialLine{{Code: "TUB-6M", Name: "Tubo 6m", Quantity: 100, DailyRate: "5.00", DurationDays: 30, LineTotal: "15000.00"}},
		Currency: "USD",
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestDeliveryNotePDF_GeneraPDF(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator("FormMaster")
	out, err := g.DeliveryNotePDF(context.Background(), ports.DeliveryNoteDocument{
		Note:     &entity.DeliveryNote{NoteNumber: "DN-2026-0001", SignedByDriver: true},
		Delivery: &entity.Delivery{DeliveryNumber: "DEL-2026-0001", Type: entity.DeliveryTypeReturn},
		Order:    &entity.HireOrder{OrderNumber: "OR-2026-0001"},
		Client:   client(),
		Lines:    []ports.MaterialLine{{Code: "CLA-01", Name: "Clamp", Quantity: 40, Condition: entity.NoteConditionGood}},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
