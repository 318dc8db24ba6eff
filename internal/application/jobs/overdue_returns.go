package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Chrisx-39/FormMaster/internal/application/ports"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/domain/hiring"
	"github.com/Chrisx-39/FormMaster/internal/domain/repository"
)

// OverdueReturnsJob avisa a los clientes con devoluciones vencidas.
// Recordatorios al día 1, 3 y 7 de retraso; los demás días solo se registra.
type OverdueReturnsJob struct {
	repos       repository.Repos
	notifier    ports.Notifier
	penaltyRate decimal.Decimal
	log         zerolog.Logger
}

// NewOverdueReturnsJob construye el job.
func NewOverdueReturnsJob(repos repository.Repos, notifier ports.Notifier, penaltyRate decimal.Decimal, log zerolog.Logger) *OverdueReturnsJob {
	return &OverdueReturnsJob{repos: repos, notifier: notifier, penaltyRate: penaltyRate, log: log}
}

func (j *OverdueReturnsJob) Name() string { return "overdue_returns" }

// ReminderFor tipo de aviso según días de retraso; "" si ese día no toca.
func ReminderFor(daysOverdue int) string {
	switch daysOverdue {
	case 1:
		return ports.NotifyFirstReminder
	case 3:
		return ports.NotifySecondReminder
	case 7:
		return ports.NotifyFinalWarning
	}
	return ""
}

func (j *OverdueReturnsJob) Run(ctx context.Context, now time.Time) (Result, error) {
	var res Result
	orders, err := j.repos.Orders().ListOverdue(ctx, now)
	if err != nil {
		return res, err
	}
	for _, o := range orders {
		days := hiring.DaysOverdue(o, now)
		j.log.Warn().Str("order", o.OrderNumber).Int("days_overdue", days).Msg("devolución vencida")
		kind := ReminderFor(days)
		if kind == "" {
			res.Processed++
			continue
		}
		if err := j.remind(ctx, o, kind, days, now); err != nil {
			res.Failed++
			j.log.Error().Err(err).Str("order", o.OrderNumber).Str("kind", kind).Msg("recordatorio fallido")
			continue
		}
		res.Processed++
	}
	return res, nil
}

func (j *OverdueReturnsJob) remind(ctx context.Context, o *entity.HireOrder, kind string, days int, now time.Time) error {
	client, err := j.repos.Clients().GetByID(ctx, o.ClientID)
	if err != nil {
		return fmt.Errorf("obtener cliente: %w", err)
	}
	n := ports.Notification{
		Kind:      kind,
		Recipient: client.Email,
		Reference: o.OrderNumber,
	}
	switch kind {
	case ports.NotifyFirstReminder:
		n.Subject = "Recordatorio: devolución vencida, orden " + o.OrderNumber
		n.Body = "El material debía devolverse el " + o.ExpectedReturnDate.Format("2006-01-02") + "."
	case ports.NotifySecondReminder:
		n.Subject = "Segundo recordatorio: devolución vencida, orden " + o.OrderNumber
		n.Body = fmt.Sprintf("El material lleva %d días de retraso. Devuélvalo de inmediato.", days)
	default:
		n.Subject = "Aviso final: devolución vencida, orden " + o.OrderNumber
		n.Body = fmt.Sprintf("El material lleva %d días de retraso. Penalidad acumulada: %s.",
			days, hiring.LatePenalty(o, now, j.penaltyRate).StringFixed(2))
	}
	return j.notifier.Notify(ctx, n)
}
