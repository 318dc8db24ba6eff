package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Chrisx-39/FormMaster/internal/domain"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/domain/hiring"
	"github.com/Chrisx-39/FormMaster/internal/domain/repository"
)

// DailyRevenueJob reconoce el ingreso de las órdenes completadas el día anterior.
type DailyRevenueJob struct {
	repos       repository.Repos
	penaltyRate decimal.Decimal
	log         zerolog.Logger
}

// NewDailyRevenueJob construye el job.
func NewDailyRevenueJob(repos repository.Repos, penaltyRate decimal.Decimal, log zerolog.Logger) *DailyRevenueJob {
	return &DailyRevenueJob{repos: repos, penaltyRate: penaltyRate, log: log}
}

func (j *DailyRevenueJob) Name() string { return "daily_revenue" }

func (j *DailyRevenueJob) Run(ctx context.Context, now time.Time) (Result, error) {
	var res Result
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start := end.AddDate(0, 0, -1)
	orders, err := j.repos.Orders().ListCompletedBetween(ctx, start, end)
	if err != nil {
		return res, err
	}
	total := decimal.Zero
	for _, o := range orders {
		rec, err := j.record(ctx, o, start, end)
		if err != nil {
			res.Failed++
			j.log.Error().Err(err).Str("order", o.OrderNumber).Msg("no se pudo registrar el ingreso")
			continue
		}
		if rec != nil {
			total = total.Add(rec.TotalRevenue)
		}
		res.Processed++
	}
	j.log.Info().Str("day", start.Format("2006-01-02")).Str("revenue", total.StringFixed(2)).Msg("ingreso diario")
	return res, nil
}

// record nil, nil si el período ya estaba registrado.
func (j *DailyRevenueJob) record(ctx context.Context, o *entity.HireOrder, start, end time.Time) (*entity.RevenueRecord, error) {
	exists, err := j.repos.Revenue().Exists(ctx, o.ID, start, end)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, nil
	}
	q, err := j.repos.Quotations().GetByID(ctx, o.QuotationID)
	if err != nil {
		return nil, fmt.Errorf("obtener cotización: %w", err)
	}
	rec := &entity.RevenueRecord{
		ID:               uuid.New().String(),
		HireOrderID:      o.ID,
		ClientID:         o.ClientID,
		PeriodStart:      start,
		PeriodEnd:        end,
		BaseHireRevenue:  q.Subtotal.Sub(q.TransportCost),
		TransportRevenue: q.TransportCost,
		PenaltyRevenue:   hiring.LatePenalty(o, end, j.penaltyRate),
		DamageRevenue:    decimal.Zero,
		CreatedAt:        time.Now(),
	}
	rec.TotalRevenue = rec.BaseHireRevenue.Add(rec.TransportRevenue).Add(rec.PenaltyRevenue).Add(rec.DamageRevenue)
	if err := j.repos.Revenue().Create(ctx, rec); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}
