package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chrisx-39/FormMaster/internal/application/jobs"
	"github.com/Chrisx-39/FormMaster/internal/application/ports"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/testutil/memstore"
)

var (
	ctx     = context.Background()
	now     = time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	penalty = decimal.NewFromInt(50)
)

type fakeNotifier struct{ sent []ports.Notification }

func (n *fakeNotifier) Notify(_ context.Context, msg ports.Notification) error {
	n.sent = append(n.sent, msg)
	return nil
}

// memDeduper primera vez por clave, sin expiración.
type memDeduper map[string]bool

func (d memDeduper) FirstSeen(_ context.Context, key string, _ time.Duration) (bool, error) {
	if d[key] {
		return false, nil
	}
	d[key] = true
	return true, nil
}

func seedOrder(t *testing.T, store *memstore.Store, clientID, status string, expected time.Time) *entity.HireOrder {
	t.Helper()
	o := &entity.HireOrder{
		ID:                 uuid.New().String(),
		OrderNumber:        "OR-2026-" + uuid.New().String()[:4],
		QuotationID:        uuid.New().String(),
		ClientID:           clientID,
		StartDate:          expected.AddDate(0, 0, -10),
		ExpectedReturnDate: expected,
		Status:             status,
		PaymentStatus:      entity.OrderPaymentPending,
		UpdatedAt:          now,
	}
	require.NoError(t, store.Orders().Create(ctx, o))
	return o
}

func TestReminderFor(t *testing.T) {
	assert.Equal(t, ports.NotifyFirstReminder, jobs.ReminderFor(1))
	assert.Equal(t, ports.NotifySecondReminder, jobs.ReminderFor(3))
	assert.Equal(t, ports.NotifyFinalWarning, jobs.ReminderFor(7))
	assert.Empty(t, jobs.ReminderFor(2))
	assert.Empty(t, jobs.ReminderFor(8))
}

func TestOverdueReturns_UnFalloNoDetieneElJob(t *testing.T) {
	store := memstore.New()
	notifier := &fakeNotifier{}
	client := store.SeedClient(t, "0")

	seedOrder(t, store, "cliente-borrado", entity.OrderStatusActive, now.AddDate(0, 0, -1))
	second := seedOrder(t, store, client.ID, entity.OrderStatusActive, now.AddDate(0, 0, -3))
	seedOrder(t, store, client.ID, entity.OrderStatusActive, now.AddDate(0, 0, -5))
	seedOrder(t, store, client.ID, entity.OrderStatusReturned, now.AddDate(0, 0, -3))

	res, err := jobs.NewOverdueReturnsJob(store, notifier, penalty, zerolog.Nop()).Run(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Processed)
	assert.Equal(t, 1, res.Failed)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, ports.NotifySecondReminder, notifier.sent[0].Kind)
	assert.Equal(t, second.OrderNumber, notifier.sent[0].Reference)
	assert.Equal(t, client.Email, notifier.sent[0].Recipient)
}

func TestLowStock_DeduplicaPorMaterial(t *testing.T) {
	store := memstore.New()
	notifier := &fakeNotifier{}
	fsm := store.SeedUser(t, entity.RoleFSM)
	store.SeedUser(t, entity.RoleHCE)

	low := store.SeedMaterial(t, "CLA-01", 10, "5")
	low.MinimumStockLevel = 20
	require.NoError(t, store.Materials().Update(ctx, low))
	store.SeedMaterial(t, "TUB-6M", 100, "5")

	job := jobs.NewLowStockJob(store, notifier, memDeduper{}, 24*time.Hour, zerolog.Nop())

	res, err := job.Run(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Processed)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, fsm.Email, notifier.sent[0].Recipient)
	assert.Contains(t, notifier.sent[0].Body, "CLA-01")
	assert.NotContains(t, notifier.sent[0].Body, "TUB-6M")

	res, err = job.Run(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Processed)
	assert.Len(t, notifier.sent, 1)
}

func TestDailyRevenue_RegistraUnaVez(t *testing.T) {
	store := memstore.New()
	client := store.SeedClient(t, "0")
	m := store.SeedMaterial(t, "CLA-01", 100, "5")
	q := store.SeedAcceptedQuotation(t, client.ID, 10, memstore.QuotationLine{Material: m, Quantity: 10})

	expected := now.AddDate(0, 0, -3)
	returned := expected.AddDate(0, 0, 2)
	o := &entity.HireOrder{
		ID:                 uuid.New().String(),
		OrderNumber:        "OR-2026-0001",
		QuotationID:        q.ID,
		ClientID:           client.ID,
		ExpectedReturnDate: expected,
		ActualReturnDate:   &returned,
		Status:             entity.OrderStatusCompleted,
		UpdatedAt:          now.AddDate(0, 0, -1),
	}
	require.NoError(t, store.Orders().Create(ctx, o))

	job := jobs.NewDailyRevenueJob(store, penalty, zerolog.Nop())
	res, err := job.Run(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Processed)

	res, err = job.Run(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Processed)

	records := store.RevenueRecords()
	require.Len(t, records, 1)
	assert.Equal(t, "500.00", records[0].BaseHireRevenue.StringFixed(2))
	assert.Equal(t, "100.00", records[0].PenaltyRevenue.StringFixed(2))
	assert.Equal(t, "600.00", records[0].TotalRevenue.StringFixed(2))
}

// fakeMarker falla para las facturas listadas en fail.
type fakeMarker struct {
	fail   map[string]bool
	marked []string
}

func (m *fakeMarker) MarkOverdue(_ context.Context, id string, _ time.Time) (bool, error) {
	if m.fail[id] {
		return false, errors.New("bloqueo")
	}
	m.marked = append(m.marked, id)
	return true, nil
}

func TestOverdueInvoices_SigueTrasUnFallo(t *testing.T) {
	store := memstore.New()
	for i, id := range []string{"inv-a", "inv-b", "inv-c"} {
		require.NoError(t, store.Invoices().Create(ctx, &entity.Invoice{
			ID:            id,
			InvoiceNumber: "INV-2026-000" + string(rune('1'+i)),
			PaymentStatus: entity.InvoiceStatusSent,
			DueDate:       now.AddDate(0, 0, -2),
		}))
	}
	marker := &fakeMarker{fail: map[string]bool{"inv-a": true}}

	res, err := jobs.NewOverdueInvoicesJob(store, marker, zerolog.Nop()).Run(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Processed)
	assert.Equal(t, 1, res.Failed)
	assert.ElementsMatch(t, []string{"inv-b", "inv-c"}, marker.marked)
}

type stubJob struct {
	name string
	err  error
	runs int
}

func (j *stubJob) Name() string { return j.name }

func (j *stubJob) Run(context.Context, time.Time) (jobs.Result, error) {
	j.runs++
	return jobs.Result{Processed: 1}, j.err
}

type stubLocker struct{ busy map[string]bool }

func (l stubLocker) TryLock(_ context.Context, key string, _ time.Duration) (bool, error) {
	return !l.busy[key], nil
}

func (l stubLocker) Unlock(context.Context, string) error { return nil }

func TestScheduler_UnJobConErrorNoDetieneALosDemas(t *testing.T) {
	broken := &stubJob{name: "broken", err: errors.New("db caída")}
	healthy := &stubJob{name: "healthy"}
	locked := &stubJob{name: "locked"}
	locker := stubLocker{busy: map[string]bool{"jobs:lock:locked": true}}

	results := jobs.NewScheduler(locker, time.Minute, zerolog.Nop(), broken, healthy, locked).RunOnce(ctx, now)

	require.Len(t, results, 3)
	assert.Equal(t, 1, broken.runs)
	assert.Equal(t, 1, healthy.runs)
	assert.Equal(t, 0, locked.runs)
	assert.Equal(t, "healthy", results[1].Job)
	assert.True(t, results[2].Skipped)
}
