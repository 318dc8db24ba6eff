package hiring_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chrisx-39/FormMaster/internal/application/dto"
	"github.com/Chrisx-39/FormMaster/internal/application/hiring"
	"github.com/Chrisx-39/FormMaster/internal/application/ports"
	"github.com/Chrisx-39/FormMaster/internal/domain"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/testutil/memstore"
)

type fakePublisher struct {
	err   error
	calls int
}

func (p *fakePublisher) PublishQuotation(_ context.Context, quotationID, userID string) (*entity.GeneratedDocument, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return &entity.GeneratedDocument{ReferenceID: quotationID, ObjectKey: "quotations/" + quotationID + ".pdf", CreatedBy: userID}, nil
}

type fakeNotifier struct {
	sent []ports.Notification
}

func (n *fakeNotifier) Notify(_ context.Context, msg ports.Notification) error {
	n.sent = append(n.sent, msg)
	return nil
}

func newQuotationUseCase(store *memstore.Store, pub hiring.QuotationPublisher, notifier ports.Notifier) *hiring.QuotationUseCase {
	return hiring.NewQuotationUseCase(store, store, pub, notifier, settings, zerolog.Nop())
}

func TestQuotationCreate_Totales(t *testing.T) {
	store := memstore.New()
	tubes := store.SeedMaterial(t, "TUB-6M", 200, "5")
	client := store.SeedClient(t, "0")
	uc := newQuotationUseCase(store, nil, nil)

	q, err := uc.Create(ctx, hce, dto.CreateQuotationRequest{
		ClientID:         client.ID,
		HireDurationDays: 30,
		TransportCost:    decimal.NewFromInt(500),
		Items:            []dto.QuotationItemRequest{{MaterialID: tubes.ID, Quantity: 100}},
	})

	require.NoError(t, err)
	assert.Equal(t, entity.QuotationStatusDraft, q.Status)
	require.Len(t, q.Items, 1)
	assert.Equal(t, "15000", q.Items[0].LineTotal.String())
	assert.Equal(t, "15500", q.Subtotal.String())
	assert.Equal(t, "2325", q.TaxAmount.String())
	assert.Equal(t, "17825", q.TotalAmount.String())
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 30), q.ValidUntil, time.Minute)
}

func TestQuotationCreate_ClienteBloqueado(t *testing.T) {
	store := memstore.New()
	tubes := store.SeedMaterial(t, "TUB-6M", 200, "5")
	client := store.SeedClient(t, "0")
	client.Status = entity.ClientStatusBlacklisted
	require.NoError(t, store.Clients().Update(ctx, client))

	_, err := newQuotationUseCase(store, nil, nil).Create(ctx, hce, dto.CreateQuotationRequest{
		ClientID:         client.ID,
		HireDurationDays: 10,
		Items:            []dto.QuotationItemRequest{{MaterialID: tubes.ID, Quantity: 1}},
	})

	assert.ErrorIs(t, err, domain.ErrClientNotEligible)
}

func TestQuotationUpdate_SoloEnBorrador(t *testing.T) {
	store := memstore.New()
	tubes := store.SeedMaterial(t, "TUB-6M", 200, "5")
	client := store.SeedClient(t, "0")
	uc := newQuotationUseCase(store, nil, nil)
	q, err := uc.Create(ctx, hce, dto.CreateQuotationRequest{
		ClientID:         client.ID,
		HireDurationDays: 10,
		Items:            []dto.QuotationItemRequest{{MaterialID: tubes.ID, Quantity: 10}},
	})
	require.NoError(t, err)
	transport := decimal.NewFromInt(100)

	updated, err := uc.Update(ctx, hce, q.ID, dto.UpdateQuotationRequest{TransportCost: &transport})
	require.NoError(t, err)
	assert.Equal(t, "600", updated.Subtotal.String(), "10 * 5 * 10 + 100")

	_, err = uc.Approve(ctx, fsm, q.ID)
	require.NoError(t, err)
	_, err = uc.Update(ctx, hce, q.ID, dto.UpdateQuotationRequest{TransportCost: &transport})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestQuotationApprove_PDFFallidoNoRevierte(t *testing.T) {
	store := memstore.New()
	tubes := store.SeedMaterial(t, "TUB-6M", 200, "5")
	client := store.SeedClient(t, "0")
	pub := &fakePublisher{err: errors.New("minio caído")}
	notifier := &fakeNotifier{}
	uc := newQuotationUseCase(store, pub, notifier)
	q, err := uc.Create(ctx, hce, dto.CreateQuotationRequest{
		ClientID:         client.ID,
		HireDurationDays: 10,
		Items:            []dto.QuotationItemRequest{{MaterialID: tubes.ID, Quantity: 10}},
	})
	require.NoError(t, err)

	_, err = uc.Approve(ctx, hce, q.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden, "solo gerencia aprueba")

	approved, err := uc.Approve(ctx, fsm, q.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.QuotationStatusSent, approved.Status)
	assert.Equal(t, fsm.ID, approved.ApprovedBy)
	assert.Equal(t, 1, pub.calls)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, ports.NotifyQuotationSent, notifier.sent[0].Kind)
	assert.Equal(t, client.Email, notifier.sent[0].Recipient)
	assert.Empty(t, notifier.sent[0].Attachments)
}

func TestQuotationFromRFQ_PropagaEstado(t *testing.T) {
	store := memstore.New()
	tubes := store.SeedMaterial(t, "TUB-6M", 200, "5")
	client := store.SeedClient(t, "0")
	rfqs := hiring.NewRFQUseCase(store, store)
	uc := newQuotationUseCase(store, &fakePublisher{}, &fakeNotifier{})

	rfq, err := rfqs.Create(ctx, hce, dto.RFQRequest{
		ClientID:         client.ID,
		RequiredDate:     time.Now().AddDate(0, 0, 7),
		HireDurationDays: 20,
		Items:            []dto.RFQItemRequest{{MaterialID: tubes.ID, QuantityRequested: 50}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RFQStatusReceived, rfq.Status)
	assert.Equal(t, "5000", rfq.EstimatedCost.String())

	q, err := uc.CreateFromRFQ(ctx, hce, rfq.ID, dto.QuotationFromRFQRequest{})
	require.NoError(t, err)
	assert.Equal(t, rfq.ID, q.RFQID)
	assert.Equal(t, "5000", q.Subtotal.String())

	_, err = uc.CreateFromRFQ(ctx, hce, rfq.ID, dto.QuotationFromRFQRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "una solicitud se cotiza una vez")

	_, err = rfqs.Update(ctx, hce, rfq.ID, dto.RFQRequest{
		ClientID:         client.ID,
		HireDurationDays: 25,
		Items:            []dto.RFQItemRequest{{MaterialID: tubes.ID, QuantityRequested: 60}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "cotizada solo se edita con override")

	_, err = uc.Approve(ctx, fsm, q.ID)
	require.NoError(t, err)
	_, err = uc.Accept(ctx, hce, q.ID)
	require.NoError(t, err)

	stored, err := rfqs.Get(ctx, rfq.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RFQStatusAccepted, stored.Status)
}
