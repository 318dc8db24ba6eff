// Package bootstrap arma los casos de uso sobre la infraestructura configurada.
// Lo comparten los binarios api, worker y seed.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	appanalytics "github.com/Chrisx-39/FormMaster/internal/application/analytics"
	"github.com/Chrisx-39/FormMaster/internal/application/auth"
	"github.com/Chrisx-39/FormMaster/internal/application/billing"
	"github.com/Chrisx-39/FormMaster/internal/application/clients"
	"github.com/Chrisx-39/FormMaster/internal/application/delivery"
	"github.com/Chrisx-39/FormMaster/internal/application/documents"
	"github.com/Chrisx-39/FormMaster/internal/application/hiring"
	appinventory "github.com/Chrisx-39/FormMaster/internal/application/inventory"
	"github.com/Chrisx-39/FormMaster/internal/application/jobs"
	"github.com/Chrisx-39/FormMaster/internal/application/lookup"
	"github.com/Chrisx-39/FormMaster/internal/application/ports"
	"github.com/Chrisx-39/FormMaster/internal/infrastructure/notify"
	infrapdf "github.com/Chrisx-39/FormMaster/internal/infrastructure/pdf"
	"github.com/Chrisx-39/FormMaster/internal/infrastructure/postgres"
	infraredis "github.com/Chrisx-39/FormMaster/internal/infrastructure/redis"
	"github.com/Chrisx-39/FormMaster/internal/infrastructure/storage"
	httpRouter "github.com/Chrisx-39/FormMaster/internal/interfaces/http"
	"github.com/Chrisx-39/FormMaster/pkg/config"
)

// lowStockWindow una alerta por material cada 24h.
const lowStockWindow = 24 * time.Hour

// Container casos de uso listos para usar.
type Container struct {
	Auth        *auth.AuthUseCase
	Materials   *appinventory.MaterialUseCase
	Clients     *clients.ClientUseCase
	RFQs        *hiring.RFQUseCase
	Quotations  *hiring.QuotationUseCase
	Orders      *hiring.OrderUseCase
	Leases      *hiring.LeaseUseCase
	Transport   *delivery.TransportUseCase
	Deliveries  *delivery.DeliveryUseCase
	Invoices    *billing.InvoiceUseCase
	Payments    *billing.PaymentUseCase
	CreditNotes *billing.CreditNoteUseCase
	Expenses    *billing.ExpenseUseCase
	Documents   *documents.UseCase
	Dashboard   *appanalytics.DashboardUseCase
	Lookup      *lookup.UseCase

	cfg      *config.Config
	log      zerolog.Logger
	pool     *pgxpool.Pool
	repos    *postgres.Repos
	notifier ports.Notifier
	rdb      *goredis.Client
}

// New conecta PostgreSQL (migrando si DB.AutoMigrate), el almacenamiento de documentos
// y Redis si está configurado. Close libera las conexiones.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Container, error) {
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
			return nil, fmt.Errorf("migraciones: %w", err)
		}
		log.Info().Msg("migraciones aplicadas")
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}

	store, err := documentStore(ctx, cfg.MinIO, log)
	if err != nil {
		pool.Close()
		return nil, err
	}

	var rdb *goredis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = infraredis.NewClient(ctx, infraredis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("conexión a Redis: %w", err)
		}
	}

	repos := postgres.NewRepos(pool)
	txRunner := postgres.NewTxRunner(pool)
	notifier := notify.NewLogNotifier(log)

	hiringSettings := hiring.Settings{
		TaxRate:            cfg.Hiring.TaxRate,
		LatePenaltyRate:    cfg.Hiring.LatePenaltyRate,
		QuotationValidDays: cfg.Hiring.QuotationDays,
	}
	billingSettings := billing.Settings{
		TaxRate:         cfg.Hiring.TaxRate,
		LatePenaltyRate: cfg.Hiring.LatePenaltyRate,
	}

	ledger := appinventory.NewLedgerService(log)
	clientUC := clients.NewClientUseCase(txRunner, repos, log)
	documentUC := documents.NewUseCase(repos, infrapdf.NewMarotoPDFGenerator(cfg.App.Name), store, cfg.Hiring.Currency, log)

	return &Container{
		Auth: auth.NewAuthUseCase(repos.Users(), auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		}),
		Materials:   appinventory.NewMaterialUseCase(txRunner, repos, log),
		Clients:     clientUC,
		RFQs:        hiring.NewRFQUseCase(txRunner, repos),
		Quotations:  hiring.NewQuotationUseCase(txRunner, repos, documentUC, notifier, hiringSettings, log),
		Orders:      hiring.NewOrderUseCase(txRunner, repos, ledger, hiringSettings, log),
		Leases:      hiring.NewLeaseUseCase(txRunner, repos, hiringSettings),
		Transport:   delivery.NewTransportUseCase(txRunner, repos),
		Deliveries:  delivery.NewDeliveryUseCase(txRunner, repos, log),
		Invoices:    billing.NewInvoiceUseCase(txRunner, repos, clientUC, billingSettings, log),
		Payments:    billing.NewPaymentUseCase(txRunner, repos, clientUC, log),
		CreditNotes: billing.NewCreditNoteUseCase(txRunner, repos, clientUC, log),
		Expenses:    billing.NewExpenseUseCase(txRunner, repos, log),
		Documents:   documentUC,
		Dashboard:   appanalytics.NewDashboardUseCase(postgres.NewAnalyticsRepository(pool)),
		Lookup:      lookup.NewUseCase(repos),

		cfg:      cfg,
		log:      log,
		pool:     pool,
		repos:    repos,
		notifier: notifier,
		rdb:      rdb,
	}, nil
}

// documentStore MinIO si hay endpoint; si no, memoria (los PDFs se pierden al reiniciar).
func documentStore(ctx context.Context, cfg config.MinIOConfig, log zerolog.Logger) (ports.DocumentStore, error) {
	if cfg.Endpoint == "" {
		log.Warn().Msg("MINIO_ENDPOINT vacío: documentos en memoria")
		return storage.NewMemoryStore(), nil
	}
	s, err := storage.NewMinIOStore(ctx, storage.MinIOConfig{
		Endpoint:  cfg.Endpoint,
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
		Bucket:    cfg.Bucket,
		UseSSL:    cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("conexión a MinIO: %w", err)
	}
	return s, nil
}

// RouterDeps dependencias del router HTTP.
func (c *Container) RouterDeps() httpRouter.RouterDeps {
	return httpRouter.RouterDeps{
		AuthUC:       c.Auth,
		MaterialUC:   c.Materials,
		ClientUC:     c.Clients,
		RFQUC:        c.RFQs,
		QuotationUC:  c.Quotations,
		OrderUC:      c.Orders,
		LeaseUC:      c.Leases,
		TransportUC:  c.Transport,
		DeliveryUC:   c.Deliveries,
		InvoiceUC:    c.Invoices,
		PaymentUC:    c.Payments,
		CreditNoteUC: c.CreditNotes,
		ExpenseUC:    c.Expenses,
		DocumentUC:   c.Documents,
		DashboardUC:  c.Dashboard,
		LookupUC:     c.Lookup,
		JWTSecret:    c.cfg.JWT.Secret,
	}
}

// Scheduler jobs periódicos con lock y deduplicación en Redis, o en memoria si Redis
// no está configurado (un solo worker).
func (c *Container) Scheduler() *jobs.Scheduler {
	var (
		locker  ports.Locker
		deduper ports.Deduper
	)
	if c.rdb != nil {
		locker, deduper = infraredis.NewLocker(c.rdb), infraredis.NewDeduper(c.rdb)
	} else {
		c.log.Warn().Msg("REDIS_ADDR vacío: locks y deduplicación en memoria")
		locker, deduper = infraredis.NewLocalLocker(), infraredis.NewLocalDeduper()
	}
	penalty := c.cfg.Hiring.LatePenaltyRate
	lockTTL := time.Duration(c.cfg.Jobs.LockTTLMinutes) * time.Minute
	return jobs.NewScheduler(locker, lockTTL, c.log,
		jobs.NewQuotationExpiryJob(c.repos, c.Quotations, c.log),
		jobs.NewOverdueReturnsJob(c.repos, c.notifier, penalty, c.log),
		jobs.NewOverdueInvoicesJob(c.repos, c.Invoices, c.log),
		jobs.NewLowStockJob(c.repos, c.notifier, deduper, lowStockWindow, c.log),
		jobs.NewDailyRevenueJob(c.repos, penalty, c.log),
	)
}

// Close libera PostgreSQL y Redis.
func (c *Container) Close() {
	if c.rdb != nil {
		if err := c.rdb.Close(); err != nil {
			c.log.Warn().Err(err).Msg("cerrar Redis")
		}
	}
	c.pool.Close()
}
