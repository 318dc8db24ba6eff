package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/domain/inventory"
	"github.com/Chrisx-39/FormMaster/internal/domain/repository"
)

// Settlement liquidación de un ítem de orden: unidades despachadas aún sin liquidar y
// cuántas de ellas volvieron.
type Settlement struct {
	MaterialID string
	Dispatched int
	Returned   int
}

// LedgerService aplica los movimientos del libro de materiales con los repositorios de la
// transacción del caller. Bloquea las filas (SELECT FOR UPDATE) en orden de id antes de tocar
// contadores, así dos órdenes sobre los mismos materiales no se cruzan.
type LedgerService struct {
	log zerolog.Logger
}

// NewLedgerService construye el servicio.
func NewLedgerService(log zerolog.Logger) *LedgerService {
	return &LedgerService{log: log}
}

// ReserveInTx reserva todas las líneas o ninguna.
func (s *LedgerService) ReserveInTx(ctx context.Context, tx repository.Repos, lines []inventory.Line) error {
	materials, err := tx.Materials().GetForUpdate(ctx, inventory.SortedIDs(lines))
	if err != nil {
		return fmt.Errorf("bloquear materiales: %w", err)
	}
	if err := inventory.ReserveAll(materials, lines); err != nil {
		return err
	}
	return s.save(ctx, tx, materials, lines)
}

// UnreserveInTx devuelve a disponibles unidades reservadas que no salieron.
func (s *LedgerService) UnreserveInTx(ctx context.Context, tx repository.Repos, lines []inventory.Line) error {
	if len(lines) == 0 {
		return nil
	}
	materials, err := tx.Materials().GetForUpdate(ctx, inventory.SortedIDs(lines))
	if err != nil {
		return fmt.Errorf("bloquear materiales: %w", err)
	}
	for _, l := range lines {
		inventory.Unreserve(materials[l.MaterialID], l.Quantity)
	}
	return s.save(ctx, tx, materials, lines)
}

// SettleInTx libera unidades despachadas. Las no devueltas se dan de baja y quedan en
// un StockAdjustment WRITE_OFF con la referencia indicada (número de orden).
func (s *LedgerService) SettleInTx(ctx context.Context, tx repository.Repos, settlements []Settlement, reference, userID string) error {
	lines := make([]inventory.Line, 0, len(settlements))
	for _, st := range settlements {
		if st.Dispatched > 0 {
			lines = append(lines, inventory.Line{MaterialID: st.MaterialID, Quantity: st.Dispatched})
		}
	}
	if len(lines) == 0 {
		return nil
	}
	materials, err := tx.Materials().GetForUpdate(ctx, inventory.SortedIDs(lines))
	if err != nil {
		return fmt.Errorf("bloquear materiales: %w", err)
	}
	now := time.Now()
	for _, st := range settlements {
		if st.Dispatched <= 0 {
			continue
		}
		m := materials[st.MaterialID]
		writtenOff := inventory.Release(m, st.Dispatched, st.Returned)
		if writtenOff == 0 {
			continue
		}
		adj := &entity.StockAdjustment{
			ID:         uuid.New().String(),
			MaterialID: m.ID,
			Quantity:   writtenOff,
			Direction:  entity.AdjustmentWriteOff,
			Reason:     "unidades no devueltas",
			Reference:  reference,
			CreatedBy:  userID,
			CreatedAt:  now,
		}
		if err := tx.Materials().CreateAdjustment(ctx, adj); err != nil {
			return fmt.Errorf("registrar baja: %w", err)
		}
		s.log.Warn().
			Str("material", m.Code).
			Str("reference", reference).
			Int("quantity", writtenOff).
			Str("value", inventory.WriteOffValue(m, writtenOff).StringFixed(2)).
			Msg("baja de material no devuelto")
	}
	return s.save(ctx, tx, materials, lines)
}

func (s *LedgerService) save(ctx context.Context, tx repository.Repos, materials map[string]*entity.Material, lines []inventory.Line) error {
	now := time.Now()
	for _, id := range inventory.SortedIDs(lines) {
		m := materials[id]
		m.UpdatedAt = now
		if err := tx.Materials().Update(ctx, m); err != nil {
			return fmt.Errorf("actualizar material %s: %w", m.Code, err)
		}
	}
	return nil
}
