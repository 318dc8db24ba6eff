package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chrisx-39/FormMaster/internal/application/billing"
	"github.com/Chrisx-39/FormMaster/internal/application/clients"
	"github.com/Chrisx-39/FormMaster/internal/application/dto"
	"github.com/Chrisx-39/FormMaster/internal/domain"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/domain/policy"
	"github.com/Chrisx-39/FormMaster/internal/testutil/memstore"
)

var (
	ctx      = context.Background()
	fsm      = policy.Actor{ID: "fsm-1", Role: entity.RoleFSM}
	hce      = policy.Actor{ID: "hce-1", Role: entity.RoleHCE}
	settings = billing.Settings{TaxRate: decimal.RequireFromString("0.15"), LatePenaltyRate: decimal.NewFromInt(50)}
)

type fixture struct {
	store    *memstore.Store
	client   *entity.Client
	order    *entity.HireOrder
	invoices *billing.InvoiceUseCase
	payments *billing.PaymentUseCase
	credits  *billing.CreditNoteUseCase
}

// newFixture orden ACTIVE sobre una cotización de subtotal 1000 (20 unidades * 5 * 10 días).
func newFixture(t *testing.T, balance string) *fixture {
	t.Helper()
	store := memstore.New()
	log := zerolog.Nop()
	tubes := store.SeedMaterial(t, "TUB-6M", 100, "5")
	client := store.SeedClient(t, balance)
	q := store.SeedAcceptedQuotation(t, client.ID, 10, memstore.QuotationLine{Material: tubes, Quantity: 20})
	now := time.Now()
	order := &entity.HireOrder{
		ID:                 uuid.New().String(),
		OrderNumber:        "OR-2026-0001",
		QuotationID:        q.ID,
		ClientID:           client.ID,
		OrderDate:          now,
		StartDate:          now,
		ExpectedReturnDate: now.AddDate(0, 0, 10),
		Status:             entity.OrderStatusActive,
		PaymentStatus:      entity.OrderPaymentPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	require.NoError(t, store.Orders().Create(ctx, order))
	ledger := clients.NewClientUseCase(store, store, log)
	return &fixture{
		store:    store,
		client:   client,
		order:    order,
		invoices: billing.NewInvoiceUseCase(store, store, ledger, settings, log),
		payments: billing.NewPaymentUseCase(store, store, ledger, log),
		credits:  billing.NewCreditNoteUseCase(store, store, ledger, log),
	}
}

func (f *fixture) balance(t *testing.T) string {
	t.Helper()
	c, err := f.store.Clients().GetByID(ctx, f.client.ID)
	require.NoError(t, err)
	return c.CurrentBalance.StringFixed(2)
}

func (f *fixture) orderPaymentStatus(t *testing.T) string {
	t.Helper()
	o, err := f.store.Orders().GetByID(ctx, f.order.ID)
	require.NoError(t, err)
	return o.PaymentStatus
}

func (f *fixture) issuedFinalInvoice(t *testing.T) *dto.InvoiceResponse {
	t.Helper()
	inv, err := f.invoices.Create(ctx, hce, f.order.ID, dto.CreateInvoiceRequest{Type: entity.InvoiceTypeFinal})
	require.NoError(t, err)
	inv, err = f.invoices.Issue(ctx, hce, inv.ID)
	require.NoError(t, err)
	return inv
}

func TestInvoiceFinal_UsaSubtotalDeLaCotizacion(t *testing.T) {
	f := newFixture(t, "0")

	inv, err := f.invoices.Create(ctx, hce, f.order.ID, dto.CreateInvoiceRequest{Type: entity.InvoiceTypeFinal})

	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusDraft, inv.PaymentStatus)
	assert.Equal(t, "1000.00", inv.Subtotal.StringFixed(2))
	assert.Equal(t, "150.00", inv.TaxAmount.StringFixed(2))
	assert.Equal(t, "1150.00", inv.TotalAmount.StringFixed(2))
	assert.True(t, inv.BalanceDue.Equal(inv.TotalAmount))
	assert.Regexp(t, `^INV-\d{4}-0001$`, inv.InvoiceNumber)
	assert.Equal(t, "0.00", f.balance(t), "un borrador no cuenta en el saldo")
	assert.WithinDuration(t, inv.InvoiceDate.AddDate(0, 0, 30), inv.DueDate, time.Second)
}

func TestInvoiceIssueYCancel_MuevenSaldo(t *testing.T) {
	f := newFixture(t, "0")

	inv := f.issuedFinalInvoice(t)
	assert.Equal(t, entity.InvoiceStatusIssued, inv.PaymentStatus)
	assert.Equal(t, "1150.00", f.balance(t))

	_, err := f.invoices.Cancel(ctx, hce, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "0.00", f.balance(t))
}

func TestInvoicePenalty(t *testing.T) {
	f := newFixture(t, "0")

	_, err := f.invoices.Create(ctx, hce, f.order.ID, dto.CreateInvoiceRequest{Type: entity.InvoiceTypePenalty})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin mora no hay penalidad")

	late := *f.order
	late.ExpectedReturnDate = time.Now().AddDate(0, 0, -3)
	require.NoError(t, f.store.Orders().Update(ctx, &late))

	inv, err := f.invoices.Create(ctx, hce, f.order.ID, dto.CreateInvoiceRequest{Type: entity.InvoiceTypePenalty})
	require.NoError(t, err)
	assert.Equal(t, "150.00", inv.Subtotal.StringFixed(2), "3 días * 50")
}

func TestInvoiceAdvance_RequiereSubtotal(t *testing.T) {
	f := newFixture(t, "0")

	_, err := f.invoices.Create(ctx, hce, f.order.ID, dto.CreateInvoiceRequest{Type: entity.InvoiceTypeAdvance})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	inv, err := f.invoices.Create(ctx, hce, f.order.ID, dto.CreateInvoiceRequest{
		Type:     entity.InvoiceTypeAdvance,
		Subtotal: decimal.NewFromInt(200),
	})
	require.NoError(t, err)
	assert.Equal(t, "230.00", inv.TotalAmount.StringFixed(2))
}

func TestPayment_ExcedeSaldo(t *testing.T) {
	f := newFixture(t, "0")
	inv := f.issuedFinalInvoice(t)

	_, err := f.payments.Record(ctx, hce, inv.ID, dto.RecordPaymentRequest{
		Amount: decimal.RequireFromString("1150.01"),
		Method: entity.PaymentBankTransfer,
	})

	assert.ErrorIs(t, err, domain.ErrPaymentExceedsBalance)
	list, err := f.payments.ListByInvoice(ctx, inv.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPaymentConfirm_Idempotente(t *testing.T) {
	f := newFixture(t, "0")
	inv := f.issuedFinalInvoice(t)
	p, err := f.payments.Record(ctx, hce, inv.ID, dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(400),
		Method: entity.PaymentCash,
	})
	require.NoError(t, err)
	assert.False(t, p.Confirmed)

	_, err = f.payments.Confirm(ctx, hce, p.ID)
	require.NoError(t, err)
	_, err = f.payments.Confirm(ctx, fsm, p.ID)
	require.NoError(t, err)

	stored, err := f.invoices.Get(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "400.00", stored.AmountPaid.StringFixed(2))
	assert.Equal(t, "750.00", stored.BalanceDue.StringFixed(2))
	assert.True(t, stored.BalanceDue.Equal(stored.TotalAmount.Sub(stored.AmountPaid)))
	assert.Equal(t, entity.InvoiceStatusPartial, stored.PaymentStatus)
	assert.Equal(t, "750.00", f.balance(t), "el pago se descuenta una sola vez")
	assert.Equal(t, entity.OrderPaymentPartial, f.orderPaymentStatus(t))
}

func TestPaymentConfirm_PagoTotal(t *testing.T) {
	f := newFixture(t, "0")
	inv := f.issuedFinalInvoice(t)
	p, err := f.payments.Record(ctx, hce, inv.ID, dto.RecordPaymentRequest{
		Amount: inv.BalanceDue,
		Method: entity.PaymentBankTransfer,
	})
	require.NoError(t, err)

	confirmed, err := f.payments.Confirm(ctx, hce, p.ID)
	require.NoError(t, err)

	assert.True(t, confirmed.Confirmed)
	assert.Equal(t, hce.ID, confirmed.ConfirmedBy)
	stored, err := f.invoices.Get(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, stored.PaymentStatus)
	assert.True(t, stored.BalanceDue.IsZero())
	assert.Equal(t, entity.OrderPaymentFull, f.orderPaymentStatus(t))

	_, err = f.invoices.Cancel(ctx, hce, inv.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "una factura pagada no se anula")
}

func TestPayment_PendientesConsumenSaldo(t *testing.T) {
	f := newFixture(t, "0")
	inv := f.issuedFinalInvoice(t)
	full := dto.RecordPaymentRequest{Amount: inv.BalanceDue, Method: entity.PaymentBankTransfer}

	_, err := f.payments.Record(ctx, hce, inv.ID, full)
	require.NoError(t, err)
	_, err = f.payments.Record(ctx, hce, inv.ID, full)
	assert.ErrorIs(t, err, domain.ErrPaymentExceedsBalance, "el primer pago aún sin confirmar ya cubre el saldo")

	list, err := f.payments.ListByInvoice(ctx, inv.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

// pendingPayment registra un pago sin pasar por Record, como quedaría uno cargado
// antes de que otro cubriera el saldo.
func (f *fixture) pendingPayment(t *testing.T, invoiceID string, amount decimal.Decimal) *entity.Payment {
	t.Helper()
	now := time.Now()
	p := &entity.Payment{
		ID:            uuid.New().String(),
		PaymentNumber: "PAY-" + uuid.New().String()[:8],
		InvoiceID:     invoiceID,
		PaymentDate:   now,
		Amount:        amount,
		Method:        entity.PaymentCash,
		CreatedAt:     now,
	}
	require.NoError(t, f.store.Payments().Create(ctx, p))
	return p
}

func TestPaymentConfirm_NoSobrepagaLaFactura(t *testing.T) {
	f := newFixture(t, "0")
	inv := f.issuedFinalInvoice(t)
	first := f.pendingPayment(t, inv.ID, inv.BalanceDue)
	second := f.pendingPayment(t, inv.ID, inv.BalanceDue)

	_, err := f.payments.Confirm(ctx, hce, first.ID)
	require.NoError(t, err)
	_, err = f.payments.Confirm(ctx, hce, second.ID)
	require.ErrorIs(t, err, domain.ErrPaymentExceedsBalance)

	stored, err := f.invoices.Get(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, stored.PaymentStatus)
	assert.Equal(t, stored.TotalAmount.StringFixed(2), stored.AmountPaid.StringFixed(2))
	assert.True(t, stored.BalanceDue.IsZero())
	assert.Equal(t, "0.00", f.balance(t), "el saldo del cliente no queda negativo")

	p, err := f.store.Payments().GetByID(ctx, second.ID)
	require.NoError(t, err)
	assert.False(t, p.Confirmed)
}

func TestPaymentConfirm_ExcedeTotal(t *testing.T) {
	f := newFixture(t, "0")
	inv := f.issuedFinalInvoice(t)
	first := f.pendingPayment(t, inv.ID, decimal.NewFromInt(1000))
	second := f.pendingPayment(t, inv.ID, decimal.NewFromInt(200))

	_, err := f.payments.Confirm(ctx, hce, first.ID)
	require.NoError(t, err)
	_, err = f.payments.Confirm(ctx, hce, second.ID)
	assert.ErrorIs(t, err, domain.ErrPaymentExceedsBalance)

	stored, err := f.invoices.Get(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "1000.00", stored.AmountPaid.StringFixed(2))
	assert.Equal(t, "150.00", stored.BalanceDue.StringFixed(2))
	assert.Equal(t, "150.00", f.balance(t))
}

func TestPaymentConfirm_FacturaAnulada(t *testing.T) {
	f := newFixture(t, "0")
	inv := f.issuedFinalInvoice(t)
	p, err := f.payments.Record(ctx, hce, inv.ID, dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(400),
		Method: entity.PaymentCash,
	})
	require.NoError(t, err)
	_, err = f.invoices.Cancel(ctx, hce, inv.ID)
	require.NoError(t, err)

	_, err = f.payments.Confirm(ctx, hce, p.ID)

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	stored, err := f.invoices.Get(ctx, inv.ID)
	require.NoError(t, err)
	assert.True(t, stored.AmountPaid.IsZero())
	assert.Equal(t, "0.00", f.balance(t))
}

func TestCreditNote_AplicarUnaSolaVez(t *testing.T) {
	f := newFixture(t, "1000")
	inv, err := f.invoices.Create(ctx, hce, f.order.ID, dto.CreateInvoiceRequest{Type: entity.InvoiceTypeFinal})
	require.NoError(t, err)

	cn, err := f.credits.Create(ctx, fsm, dto.CreateCreditNoteRequest{
		ClientID: f.client.ID,
		Amount:   decimal.NewFromInt(200),
		Reason:   "material defectuoso",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.CreditNoteDraft, cn.Status)
	_, err = f.credits.Issue(ctx, fsm, cn.ID)
	require.NoError(t, err)

	applied, err := f.credits.Apply(ctx, fsm, cn.ID, dto.ApplyCreditNoteRequest{InvoiceID: inv.ID})
	require.NoError(t, err)
	assert.Equal(t, entity.CreditNoteApplied, applied.Status)
	assert.Equal(t, inv.ID, applied.AppliedToInvoice)
	assert.Equal(t, fsm.ID, applied.AppliedBy)
	require.NotNil(t, applied.AppliedDate)
	assert.Equal(t, "800.00", f.balance(t))

	_, err = f.credits.Apply(ctx, fsm, cn.ID, dto.ApplyCreditNoteRequest{InvoiceID: inv.ID})
	var te *domain.TransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, entity.CreditNoteApplied, te.From)
	assert.Equal(t, "800.00", f.balance(t))
}

func TestCreditNote_RolSinPermiso(t *testing.T) {
	f := newFixture(t, "0")

	_, err := f.credits.Create(ctx, hce, dto.CreateCreditNoteRequest{
		ClientID: f.client.ID,
		Amount:   decimal.NewFromInt(50),
		Reason:   "ajuste",
	})

	assert.ErrorIs(t, err, domain.ErrForbidden)
}
