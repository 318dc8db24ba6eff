package jobs

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Chrisx-39/FormMaster/internal/application/dto"
	"github.com/Chrisx-39/FormMaster/internal/domain/policy"
	"github.com/Chrisx-39/FormMaster/internal/domain/repository"
)

// QuotationExpirer lo implementa hiring.QuotationUseCase.
type QuotationExpirer interface {
	Expire(ctx context.Context, actor policy.Actor, id string) (*dto.QuotationResponse, error)
}

// QuotationExpiryJob pasa a EXPIRED las cotizaciones DRAFT o SENT fuera de vigencia.
type QuotationExpiryJob struct {
	repos      repository.Repos
	quotations QuotationExpirer
	log        zerolog.Logger
}

// NewQuotationExpiryJob construye el job.
func NewQuotationExpiryJob(repos repository.Repos, quotations QuotationExpirer, log zerolog.Logger) *QuotationExpiryJob {
	return &QuotationExpiryJob{repos: repos, quotations: quotations, log: log}
}

func (j *QuotationExpiryJob) Name() string { return "quotation_expiry" }

func (j *QuotationExpiryJob) Run(ctx context.Context, now time.Time) (Result, error) {
	var res Result
	list, err := j.repos.Quotations().ListExpirable(ctx, now)
	if err != nil {
		return res, err
	}
	for _, q := range list {
		if _, err := j.quotations.Expire(ctx, policy.System, q.ID); err != nil {
			res.Failed++
			j.log.Error().Err(err).Str("quotation", q.QuotationNumber).Msg("no se pudo vencer la cotización")
			continue
		}
		res.Processed++
	}
	return res, nil
}
