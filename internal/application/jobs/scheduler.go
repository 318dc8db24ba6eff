// Package jobs procesos periódicos del worker: vencimiento de cotizaciones, órdenes y
// facturas vencidas, alertas de stock bajo y reconocimiento de ingresos.
// Un ítem que falla se registra y el job sigue con el resto.
package jobs

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Chrisx-39/FormMaster/internal/application/ports"
)

// Result resumen de una ejecución.
type Result struct {
	Job       string `json:"job"`
	Processed int    `json:"processed"`
	Failed    int    `json:"failed"`
	Skipped   bool   `json:"skipped,omitempty"` // otro worker tenía el lock
}

// Job proceso batch ejecutable en un instante dado.
type Job interface {
	Name() string
	Run(ctx context.Context, now time.Time) (Result, error)
}

// Scheduler ejecuta los jobs en secuencia con un lock por job.
type Scheduler struct {
	jobs    []Job
	locker  ports.Locker
	lockTTL time.Duration
	log     zerolog.Logger
}

// NewScheduler locker nil ejecuta sin exclusión entre procesos.
func NewScheduler(locker ports.Locker, lockTTL time.Duration, log zerolog.Logger, jobs ...Job) *Scheduler {
	return &Scheduler{jobs: jobs, locker: locker, lockTTL: lockTTL, log: log}
}

// RunOnce corre todos los jobs una vez. Un job con error no detiene a los demás.
func (s *Scheduler) RunOnce(ctx context.Context, now time.Time) []Result {
	results := make([]Result, 0, len(s.jobs))
	for _, job := range s.jobs {
		results = append(results, s.runJob(ctx, job, now))
	}
	return results
}

func (s *Scheduler) runJob(ctx context.Context, job Job, now time.Time) Result {
	key := "jobs:lock:" + job.Name()
	if s.locker != nil {
		ok, err := s.locker.TryLock(ctx, key, s.lockTTL)
		if err != nil {
			s.log.Error().Err(err).Str("job", job.Name()).Msg("no se pudo tomar el lock")
			return Result{Job: job.Name(), Skipped: true}
		}
		if !ok {
			s.log.Debug().Str("job", job.Name()).Msg("lock tomado por otro worker")
			return Result{Job: job.Name(), Skipped: true}
		}
		defer func() {
			if err := s.locker.Unlock(context.WithoutCancel(ctx), key); err != nil {
				s.log.Warn().Err(err).Str("job", job.Name()).Msg("no se pudo liberar el lock")
			}
		}()
	}
	started := time.Now()
	res, err := job.Run(ctx, now)
	res.Job = job.Name()
	ev := s.log.Info()
	if err != nil {
		ev = s.log.Error().Err(err)
	}
	ev.Str("job", res.Job).
		Int("processed", res.Processed).
		Int("failed", res.Failed).
		Dur("elapsed", time.Since(started)).
		Msg("job ejecutado")
	return res
}

// Start ejecuta RunOnce al arrancar y luego cada interval hasta que ctx termine.
func (s *Scheduler) Start(ctx context.Context, interval time.Duration) {
	s.RunOnce(ctx, time.Now())
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			s.RunOnce(ctx, t)
		}
	}
}
