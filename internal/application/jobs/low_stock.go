package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Chrisx-39/FormMaster/internal/application/ports"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/domain/repository"
)

// LowStockJob envía a los gerentes FSM una alerta con los materiales en o bajo su mínimo.
// Cada material se alerta como máximo una vez por ventana de deduplicación.
type LowStockJob struct {
	repos    repository.Repos
	notifier ports.Notifier
	deduper  ports.Deduper
	window   time.Duration
	log      zerolog.Logger
}

// NewLowStockJob deduper nil alerta en cada ejecución.
func NewLowStockJob(repos repository.Repos, notifier ports.Notifier, deduper ports.Deduper, window time.Duration, log zerolog.Logger) *LowStockJob {
	return &LowStockJob{repos: repos, notifier: notifier, deduper: deduper, window: window, log: log}
}

func (j *LowStockJob) Name() string { return "low_stock" }

func (j *LowStockJob) Run(ctx context.Context, _ time.Time) (Result, error) {
	var res Result
	materials, err := j.repos.Materials().ListLowStock(ctx)
	if err != nil {
		return res, err
	}
	fresh := make([]*entity.Material, 0, len(materials))
	for _, m := range materials {
		if j.firstSeen(ctx, m) {
			fresh = append(fresh, m)
		}
	}
	if len(fresh) == 0 {
		return res, nil
	}
	managers, err := j.repos.Users().ListByRole(ctx, entity.RoleFSM)
	if err != nil {
		return res, fmt.Errorf("listar gerentes: %w", err)
	}
	body := lowStockBody(fresh)
	for _, u := range managers {
		if u.Email == "" {
			continue
		}
		if err := j.notifier.Notify(ctx, ports.Notification{
			Kind:      ports.NotifyLowStock,
			Recipient: u.Email,
			Subject:   "Alerta de stock bajo",
			Body:      body,
		}); err != nil {
			res.Failed++
			j.log.Error().Err(err).Str("recipient", u.Email).Msg("alerta de stock bajo fallida")
		}
	}
	res.Processed = len(fresh)
	j.log.Info().Int("materials", len(fresh)).Int("recipients", len(managers)).Msg("alerta de stock bajo enviada")
	return res, nil
}

// firstSeen si Redis falla se alerta igual.
func (j *LowStockJob) firstSeen(ctx context.Context, m *entity.Material) bool {
	if j.deduper == nil {
		return true
	}
	ok, err := j.deduper.FirstSeen(ctx, "alerts:low_stock:"+m.ID, j.window)
	if err != nil {
		j.log.Warn().Err(err).Str("material", m.Code).Msg("deduplicación no disponible")
		return true
	}
	return ok
}

func lowStockBody(materials []*entity.Material) string {
	var b strings.Builder
	b.WriteString("Los siguientes materiales están en o bajo su stock mínimo:\n\n")
	for _, m := range materials {
		fmt.Fprintf(&b, "%s %s: %d disponibles (mínimo %d)\n", m.Code, m.Name, m.AvailableQuantity, m.MinimumStockLevel)
	}
	return b.String()
}
