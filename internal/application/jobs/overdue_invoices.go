package jobs

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Chrisx-39/FormMaster/internal/domain/repository"
)

// InvoiceOverdueMarker lo implementa billing.InvoiceUseCase.
type InvoiceOverdueMarker interface {
	MarkOverdue(ctx context.Context, id string, today time.Time) (bool, error)
}

// OverdueInvoicesJob marca OVERDUE las facturas enviadas con vencimiento pasado.
type OverdueInvoicesJob struct {
	repos    repository.Repos
	invoices InvoiceOverdueMarker
	log      zerolog.Logger
}

// NewOverdueInvoicesJob construye el job.
func NewOverdueInvoicesJob(repos repository.Repos, invoices InvoiceOverdueMarker, log zerolog.Logger) *OverdueInvoicesJob {
	return &OverdueInvoicesJob{repos: repos, invoices: invoices, log: log}
}

func (j *OverdueInvoicesJob) Name() string { return "overdue_invoices" }

func (j *OverdueInvoicesJob) Run(ctx context.Context, now time.Time) (Result, error) {
	var res Result
	list, err := j.repos.Invoices().ListPastDue(ctx, now)
	if err != nil {
		return res, err
	}
	for _, inv := range list {
		changed, err := j.invoices.MarkOverdue(ctx, inv.ID, now)
		if err != nil {
			res.Failed++
			j.log.Error().Err(err).Str("invoice", inv.InvoiceNumber).Msg("no se pudo marcar la factura vencida")
			continue
		}
		if changed {
			j.log.Info().Str("invoice", inv.InvoiceNumber).Msg("factura vencida")
		}
		res.Processed++
	}
	return res, nil
}
