package hiring

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Chrisx-39/FormMaster/internal/application/dto"
	appinventory "github.com/Chrisx-39/FormMaster/internal/application/inventory"
	"github.com/Chrisx-39/FormMaster/internal/domain"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/domain/hiring"
	"github.com/Chrisx-39/FormMaster/internal/domain/inventory"
	"github.com/Chrisx-39/FormMaster/internal/domain/numbering"
	"github.com/Chrisx-39/FormMaster/internal/domain/policy"
	"github.com/Chrisx-39/FormMaster/internal/domain/repository"
)

// OrderUseCase máquina de estados de la orden de alquiler con sus efectos sobre el stock.
// Cada transición corre en una transacción que bloquea los materiales afectados.
type OrderUseCase struct {
	txRunner repository.TxRunner
	repos    repository.Repos
	ledger   *appinventory.LedgerService
	settings Settings
	log      zerolog.Logger
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	txRunner repository.TxRunner,
	repos repository.Repos,
	ledger *appinventory.LedgerService,
	settings Settings,
	log zerolog.Logger,
) *OrderUseCase {
	return &OrderUseCase{txRunner: txRunner, repos: repos, ledger: ledger, settings: settings, log: log}
}

// CreateFromQuotation convierte una cotización ACCEPTED en orden y reserva todo el material.
// Si una línea no tiene stock no queda nada: ni orden, ni reservas, ni conversión.
func (uc *OrderUseCase) CreateFromQuotation(ctx context.Context, actor policy.Actor, quotationID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if err := policy.Authorize(actor, policy.ManageOrders, nil); err != nil {
		return nil, err
	}
	var o *entity.HireOrder
	err := uc.txRunner.Run(ctx, func(tx repository.Repos) error {
		q, err := tx.Quotations().GetForUpdate(ctx, quotationID)
		if err != nil {
			return err
		}
		if err := hiring.MarkConverted(q); err != nil {
			return err
		}
		now := time.Now()
		start := in.StartDate
		if start.IsZero() {
			start = now
		}
		o = &entity.HireOrder{
			ID:                 uuid.New().String(),
			QuotationID:        q.ID,
			ClientID:           q.ClientID,
			OrderDate:          now,
			StartDate:          start,
			ExpectedReturnDate: hiring.ExpectedReturnDate(start, q.HireDurationDays),
			Status:             entity.OrderStatusOrdered,
			PaymentStatus:      entity.OrderPaymentPending,
			DeliveryAddress:    in.DeliveryAddress,
			Notes:              in.Notes,
			CreatedBy:          actor.ID,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		lines := make([]inventory.Line, 0, len(q.Items))
		for _, it := range q.Items {
			o.Items = append(o.Items, entity.HireOrderItem{
				ID:              uuid.New().String(),
				HireOrderID:     o.ID,
				MaterialID:      it.MaterialID,
				QuantityOrdered: it.Quantity,
			})
			lines = append(lines, inventory.Line{MaterialID: it.MaterialID, Quantity: it.Quantity})
		}
		if err := uc.ledger.ReserveInTx(ctx, tx, lines); err != nil {
			return err
		}
		if o.OrderNumber, err = numbering.Next(ctx, tx.Sequences(), numbering.HireOrder, now); err != nil {
			return err
		}
		if err := tx.Orders().Create(ctx, o); err != nil {
			return err
		}
		q.UpdatedAt = now
		return tx.Quotations().Update(ctx, q)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order", o.OrderNumber).Str("quotation", quotationID).Int("items", len(o.Items)).Msg("orden creada")
	return uc.response(o), nil
}

// Get devuelve la orden con días de retraso y penalidad al día de hoy.
func (uc *OrderUseCase) Get(ctx context.Context, id string) (*dto.OrderResponse, error) {
	o, err := uc.repos.Orders().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.response(o), nil
}

// List lista órdenes.
func (uc *OrderUseCase) List(ctx context.Context, f repository.ListFilter) ([]dto.OrderResponse, error) {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	list, err := uc.repos.Orders().List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *uc.response(o))
	}
	return out, nil
}

// Approve ORDERED -> APPROVED.
func (uc *OrderUseCase) Approve(ctx context.Context, actor policy.Actor, id string) (*dto.OrderResponse, error) {
	if err := policy.Authorize(actor, policy.ApproveOrder, nil); err != nil {
		return nil, err
	}
	return uc.mutate(ctx, id, func(_ repository.Repos, o *entity.HireOrder) error {
		if err := hiring.TransitionOrder(o, entity.OrderStatusApproved); err != nil {
			return err
		}
		o.ApprovedBy = actor.ID
		return nil
	})
}

// Dispatch APPROVED -> DISPATCHED. Libera la reserva de las unidades que no salen.
func (uc *OrderUseCase) Dispatch(ctx context.Context, actor policy.Actor, id string, in dto.DispatchRequest) (*dto.OrderResponse, error) {
	if err := policy.Authorize(actor, policy.ManageOrders, nil); err != nil {
		return nil, err
	}
	requested := make(map[string]int, len(in.Items))
	for _, l := range in.Items {
		requested[l.ItemID] = l.Quantity
	}
	return uc.mutate(ctx, id, func(tx repository.Repos, o *entity.HireOrder) error {
		if err := hiring.TransitionOrder(o, entity.OrderStatusDispatched); err != nil {
			return err
		}
		if err := knownItems(o, keys(requested)); err != nil {
			return err
		}
		undispatched, err := hiring.DispatchQuantities(o, requested)
		if err != nil {
			return err
		}
		lines := make([]inventory.Line, 0, len(undispatched))
		for materialID, qty := range undispatched {
			lines = append(lines, inventory.Line{MaterialID: materialID, Quantity: qty})
		}
		return uc.ledger.UnreserveInTx(ctx, tx, lines)
	})
}

// Activate DISPATCHED -> ACTIVE (material en obra).
func (uc *OrderUseCase) Activate(ctx context.Context, actor policy.Actor, id string) (*dto.OrderResponse, error) {
	if err := policy.Authorize(actor, policy.ManageOrders, nil); err != nil {
		return nil, err
	}
	return uc.mutate(ctx, id, func(_ repository.Repos, o *entity.HireOrder) error {
		return hiring.TransitionOrder(o, entity.OrderStatusActive)
	})
}

// Return ACTIVE -> RETURNED. Registra lo devuelto, libera el stock y da de baja lo que falta.
func (uc *OrderUseCase) Return(ctx context.Context, actor policy.Actor, id string, in dto.ReturnRequest) (*dto.OrderResponse, error) {
	if err := policy.Authorize(actor, policy.ManageOrders, nil); err != nil {
		return nil, err
	}
	returns := make(map[string]hiring.ReturnLine, len(in.Items))
	for _, l := range in.Items {
		returns[l.ItemID] = hiring.ReturnLine{Quantity: l.Quantity, Condition: l.Condition}
	}
	return uc.mutate(ctx, id, func(tx repository.Repos, o *entity.HireOrder) error {
		if err := hiring.TransitionOrder(o, entity.OrderStatusReturned); err != nil {
			return err
		}
		if err := knownItems(o, keys(returns)); err != nil {
			return err
		}
		if err := hiring.RecordReturns(o, returns); err != nil {
			return err
		}
		today := time.Now()
		o.ActualReturnDate = &today
		return uc.settle(ctx, tx, o, actor.ID)
	})
}

// Complete RETURNED -> COMPLETED. Liquida lo que quedara pendiente y cierra el contrato.
func (uc *OrderUseCase) Complete(ctx context.Context, actor policy.Actor, id string) (*dto.OrderResponse, error) {
	if err := policy.Authorize(actor, policy.ManageOrders, nil); err != nil {
		return nil, err
	}
	return uc.mutate(ctx, id, func(tx repository.Repos, o *entity.HireOrder) error {
		if err := hiring.TransitionOrder(o, entity.OrderStatusCompleted); err != nil {
			return err
		}
		if err := uc.settle(ctx, tx, o, actor.ID); err != nil {
			return err
		}
		return closeLease(ctx, tx, o.ID, entity.LeaseStatusCompleted)
	})
}

// Cancel ORDERED|APPROVED -> CANCELLED. Devuelve toda la reserva.
func (uc *OrderUseCase) Cancel(ctx context.Context, actor policy.Actor, id string) (*dto.OrderResponse, error) {
	if err := policy.Authorize(actor, policy.ManageOrders, nil); err != nil {
		return nil, err
	}
	return uc.mutate(ctx, id, func(tx repository.Repos, o *entity.HireOrder) error {
		if err := hiring.TransitionOrder(o, entity.OrderStatusCancelled); err != nil {
			return err
		}
		lines := make([]inventory.Line, 0, len(o.Items))
		for _, it := range o.Items {
			lines = append(lines, inventory.Line{MaterialID: it.MaterialID, Quantity: it.QuantityOrdered})
		}
		if err := uc.ledger.UnreserveInTx(ctx, tx, lines); err != nil {
			return err
		}
		return closeLease(ctx, tx, o.ID, entity.LeaseStatusTerminated)
	})
}

// settle libera por ítem lo despachado y aún no liquidado. Volver a llamarlo no mueve stock.
func (uc *OrderUseCase) settle(ctx context.Context, tx repository.Repos, o *entity.HireOrder, userID string) error {
	settlements := make([]appinventory.Settlement, 0, len(o.Items))
	for i := range o.Items {
		it := &o.Items[i]
		pending := it.QuantityDispatched - it.QuantitySettled
		if pending <= 0 {
			continue
		}
		returned := it.QuantityReturned - it.QuantitySettled
		if returned < 0 {
			returned = 0
		}
		settlements = append(settlements, appinventory.Settlement{
			MaterialID: it.MaterialID,
			Dispatched: pending,
			Returned:   returned,
		})
		it.QuantitySettled = it.QuantityDispatched
	}
	return uc.ledger.SettleInTx(ctx, tx, settlements, o.OrderNumber, userID)
}

func (uc *OrderUseCase) mutate(ctx context.Context, id string, fn func(tx repository.Repos, o *entity.HireOrder) error) (*dto.OrderResponse, error) {
	var o *entity.HireOrder
	var from string
	err := uc.txRunner.Run(ctx, func(tx repository.Repos) error {
		var err error
		o, err = tx.Orders().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		from = o.Status
		if err := fn(tx, o); err != nil {
			return err
		}
		o.UpdatedAt = time.Now()
		return tx.Orders().Update(ctx, o)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order", o.OrderNumber).Str("from", from).Str("to", o.Status).Msg("cambio de estado de orden")
	return uc.response(o), nil
}

func (uc *OrderUseCase) response(o *entity.HireOrder) *dto.OrderResponse {
	today := time.Now()
	out := dto.ToOrderResponse(o, hiring.DaysOverdue(o, today), hiring.LatePenalty(o, today, uc.settings.LatePenaltyRate))
	return &out
}

// closeLease cierra el contrato activo de la orden, si existe.
func closeLease(ctx context.Context, tx repository.Repos, orderID, to string) error {
	la, err := tx.Orders().GetLeaseByOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	if la.Status != entity.LeaseStatusActive {
		return nil
	}
	if err := hiring.CloseLease(la, to); err != nil {
		return err
	}
	la.UpdatedAt = time.Now()
	return tx.Orders().UpdateLease(ctx, la)
}

// knownItems falla si algún id no pertenece a la orden.
func knownItems(o *entity.HireOrder, ids []string) error {
	own := make(map[string]bool, len(o.Items))
	for _, it := range o.Items {
		own[it.ID] = true
	}
	for _, id := range ids {
		if !own[id] {
			return domain.Invalid("item_id", "el ítem "+id+" no pertenece a la orden")
		}
	}
	return nil
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
