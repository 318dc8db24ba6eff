package delivery

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Chrisx-39/FormMaster/internal/application/dto"
	"github.com/Chrisx-39/FormMaster/internal/domain"
	"github.com/Chrisx-39/FormMaster/internal/domain/clients"
	"github.com/Chrisx-39/FormMaster/internal/domain/delivery"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/domain/numbering"
	"github.com/Chrisx-39/FormMaster/internal/domain/policy"
	"github.com/Chrisx-39/FormMaster/internal/domain/repository"
)

// DeliveryUseCase entregas, su nota de entrega y los comprobantes de recepción.
type DeliveryUseCase struct {
	txRunner repository.TxRunner
	repos    repository.Repos
	log      zerolog.Logger
}

// NewDeliveryUseCase construye el caso de uso.
func NewDeliveryUseCase(txRunner repository.TxRunner, repos repository.Repos, log zerolog.Logger) *DeliveryUseCase {
	return &DeliveryUseCase{txRunner: txRunner, repos: repos, log: log}
}

// Create programa una entrega (SCHEDULED) y crea su nota de entrega en la misma transacción.
func (uc *DeliveryUseCase) Create(ctx context.Context, actor policy.Actor, in dto.CreateDeliveryRequest) (*dto.DeliveryResponse, error) {
	if err := policy.Authorize(actor, policy.ManageDeliveries, nil); err != nil {
		return nil, err
	}
	kind := in.Type
	if kind == "" {
		kind = entity.DeliveryTypeOutgoing
	}
	if kind != entity.DeliveryTypeOutgoing && kind != entity.DeliveryTypeReturn {
		return nil, domain.Invalid("type", "debe ser OUTGOING o RETURN")
	}
	var d *entity.Delivery
	var note *entity.DeliveryNote
	err := uc.txRunner.Run(ctx, func(tx repository.Repos) error {
		o, err := tx.Orders().GetByID(ctx, in.HireOrderID)
		if err != nil {
			return err
		}
		if err := ensureOrderOpen(o); err != nil {
			return err
		}
		if in.TransportRequestID != "" {
			tr, err := tx.Transports().GetByID(ctx, in.TransportRequestID)
			if err != nil {
				return err
			}
			if tr.HireOrderID != o.ID {
				return domain.Invalid("transport_request_id", "la solicitud es de otra orden")
			}
		}
		now := time.Now()
		number, err := numbering.Next(ctx, tx.Sequences(), numbering.Delivery, now)
		if err != nil {
			return err
		}
		address := in.DeliveryAddress
		if in.SiteID != "" {
			site, err := tx.ClientProfiles().GetSite(ctx, in.SiteID)
			if err != nil {
				return err
			}
			if err := clients.CanUseSite(site, o.ClientID); err != nil {
				return err
			}
			if address == "" {
				address = site.Address
			}
		}
		if address == "" {
			address = o.DeliveryAddress
		}
		d = &entity.Delivery{
			ID:                 uuid.New().String(),
			DeliveryNumber:     number,
			HireOrderID:        o.ID,
			TransportRequestID: in.TransportRequestID,
			DriverName:         in.DriverName,
			DriverPhone:        in.DriverPhone,
			TruckRegistration:  in.TruckRegistration,
			DeliveryAddress:    address,
			Type:               kind,
			Status:             entity.DeliveryStatusScheduled,
			CreatedBy:          actor.ID,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		if err := tx.Deliveries().Create(ctx, d); err != nil {
			return err
		}
		note, err = uc.createNoteFor(ctx, tx, d, o)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("delivery", d.DeliveryNumber).Str("note", note.NoteNumber).Msg("entrega programada")
	out := dto.ToDeliveryResponse(d, note)
	return &out, nil
}

// createNoteFor nota de entrega con una línea por ítem de la orden.
func (uc *DeliveryUseCase) createNoteFor(ctx context.Context, tx repository.Repos, d *entity.Delivery, o *entity.HireOrder) (*entity.DeliveryNote, error) {
	now := time.Now()
	number, err := numbering.Next(ctx, tx.Sequences(), numbering.DeliveryNote, now)
	if err != nil {
		return nil, err
	}
	n := &entity.DeliveryNote{
		ID:         uuid.New().String(),
		NoteNumber: number,
		DeliveryID: d.ID,
		Items:      delivery.NoteItemsFromOrder(o),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for i := range n.Items {
		n.Items[i].ID = uuid.New().String()
		n.Items[i].DeliveryNoteID = n.ID
	}
	if err := tx.Deliveries().CreateNote(ctx, n); err != nil {
		return nil, fmt.Errorf("crear nota de entrega: %w", err)
	}
	return n, nil
}

// Get entrega con su nota.
func (uc *DeliveryUseCase) Get(ctx context.Context, id string) (*dto.DeliveryResponse, error) {
	d, err := uc.repos.Deliveries().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	note, err := uc.repos.Deliveries().GetNoteByDelivery(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.ToDeliveryResponse(d, note)
	return &out, nil
}

// ListByOrder entregas de una orden.
func (uc *DeliveryUseCase) ListByOrder(ctx context.Context, orderID string) ([]dto.DeliveryResponse, error) {
	list, err := uc.repos.Deliveries().ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DeliveryResponse, 0, len(list))
	for _, d := range list {
		out = append(out, dto.ToDeliveryResponse(d, nil))
	}
	return out, nil
}

// MarkInTransit SCHEDULED -> IN_TRANSIT (sella la salida).
func (uc *DeliveryUseCase) MarkInTransit(ctx context.Context, actor policy.Actor, id string) (*dto.DeliveryResponse, error) {
	return uc.changeStatus(ctx, actor, id, entity.DeliveryStatusInTransit, "")
}

// MarkDelivered IN_TRANSIT -> DELIVERED (sella la llegada).
func (uc *DeliveryUseCase) MarkDelivered(ctx context.Context, actor policy.Actor, id, inspectionNotes string) (*dto.DeliveryResponse, error) {
	return uc.changeStatus(ctx, actor, id, entity.DeliveryStatusDelivered, inspectionNotes)
}

// MarkReturned IN_TRANSIT -> RETURNED.
func (uc *DeliveryUseCase) MarkReturned(ctx context.Context, actor policy.Actor, id, inspectionNotes string) (*dto.DeliveryResponse, error) {
	return uc.changeStatus(ctx, actor, id, entity.DeliveryStatusReturned, inspectionNotes)
}

// Cancel SCHEDULED|IN_TRANSIT -> CANCELLED.
func (uc *DeliveryUseCase) Cancel(ctx context.Context, actor policy.Actor, id string) (*dto.DeliveryResponse, error) {
	return uc.changeStatus(ctx, actor, id, entity.DeliveryStatusCancelled, "")
}

// ChangeStatus punto de entrada HTTP para cualquiera de los cambios anteriores.
func (uc *DeliveryUseCase) ChangeStatus(ctx context.Context, actor policy.Actor, id string, in dto.DeliveryStatusRequest) (*dto.DeliveryResponse, error) {
	switch in.Status {
	case entity.DeliveryStatusInTransit:
		return uc.MarkInTransit(ctx, actor, id)
	case entity.DeliveryStatusDelivered:
		return uc.MarkDelivered(ctx, actor, id, in.InspectionNotes)
	case entity.DeliveryStatusReturned:
		return uc.MarkReturned(ctx, actor, id, in.InspectionNotes)
	case entity.DeliveryStatusCancelled:
		return uc.Cancel(ctx, actor, id)
	}
	return nil, domain.Invalid("status", "estado de entrega desconocido")
}

func (uc *DeliveryUseCase) changeStatus(ctx context.Context, actor policy.Actor, id, to, notes string) (*dto.DeliveryResponse, error) {
	if err := policy.Authorize(actor, policy.ManageDeliveries, nil); err != nil {
		return nil, err
	}
	var d *entity.Delivery
	err := uc.txRunner.Run(ctx, func(tx repository.Repos) error {
		var err error
		d, err = tx.Deliveries().GetByID(ctx, id)
		if err != nil {
			return err
		}
		now := time.Now()
		if err := delivery.TransitionDelivery(d, to, now); err != nil {
			return err
		}
		if notes != "" {
			d.InspectionNotes = notes
		}
		d.UpdatedAt = now
		return tx.Deliveries().Update(ctx, d)
	})
	if err != nil {
		return nil, err
	}
	out := dto.ToDeliveryResponse(d, nil)
	return &out, nil
}

// SignNote firma de una parte sobre la nota de la entrega. Cada rol firma su propia parte.
func (uc *DeliveryUseCase) SignNote(ctx context.Context, actor policy.Actor, deliveryID string, in dto.SignNoteRequest) (*dto.DeliveryNoteResponse, error) {
	if err := policy.Authorize(actor, policy.SignDeliveryNote, policy.Signer(in.Signer)); err != nil {
		return nil, err
	}
	var n *entity.DeliveryNote
	err := uc.txRunner.Run(ctx, func(tx repository.Repos) error {
		var err error
		n, err = tx.Deliveries().GetNoteByDelivery(ctx, deliveryID)
		if err != nil {
			return err
		}
		now := time.Now()
		if err := delivery.SignNote(n, in.Signer, now); err != nil {
			return err
		}
		n.UpdatedAt = now
		return tx.Deliveries().UpdateNote(ctx, n)
	})
	if err != nil {
		return nil, err
	}
	out := dto.ToDeliveryNoteResponse(n)
	return &out, nil
}

// CreateGRV registra la recepción en bodega de una entrega de devolución.
func (uc *DeliveryUseCase) CreateGRV(ctx context.Context, actor policy.Actor, deliveryID string, in dto.GRVRequest) (*dto.GRVResponse, error) {
	if err := policy.Authorize(actor, policy.ReceiveGoods, nil); err != nil {
		return nil, err
	}
	var g *entity.GoodsReceivedVoucher
	err := uc.txRunner.Run(ctx, func(tx repository.Repos) error {
		d, err := tx.Deliveries().GetByID(ctx, deliveryID)
		if err != nil {
			return err
		}
		if d.Type != entity.DeliveryTypeReturn {
			return domain.Invalid("delivery_id", "solo las entregas de devolución generan GRV")
		}
		now := time.Now()
		g = &entity.GoodsReceivedVoucher{
			ID:               uuid.New().String(),
			DeliveryID:       d.ID,
			HireOrderID:      d.HireOrderID,
			ReceivedBy:       actor.ID,
			IssuedByClient:   in.IssuedByClient,
			ReceivedDate:     now,
			DiscrepancyNotes: in.DiscrepancyNotes,
			CreatedAt:        now,
		}
		for _, it := range in.Items {
			g.Items = append(g.Items, entity.GRVItem{
				ID:               uuid.New().String(),
				GRVID:            g.ID,
				MaterialID:       it.MaterialID,
				QuantityExpected: it.QuantityExpected,
				QuantityReceived: it.QuantityReceived,
				Condition:        it.Condition,
				Notes:            it.Notes,
			})
		}
		if err := delivery.ValidateGRV(g); err != nil {
			return err
		}
		if g.GRVNumber, err = numbering.Next(ctx, tx.Sequences(), numbering.GRV, now); err != nil {
			return err
		}
		return tx.Deliveries().CreateGRV(ctx, g)
	})
	if err != nil {
		return nil, err
	}
	if !g.AllItemsReceived {
		uc.log.Warn().Str("grv", g.GRVNumber).Str("delivery", deliveryID).Msg("recepción con diferencias")
	}
	out := dto.ToGRVResponse(g)
	return &out, nil
}

// GetGRV devuelve un comprobante.
func (uc *DeliveryUseCase) GetGRV(ctx context.Context, id string) (*dto.GRVResponse, error) {
	g, err := uc.repos.Deliveries().GetGRV(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.ToGRVResponse(g)
	return &out, nil
}

// ListGRVByOrder comprobantes de una orden.
func (uc *DeliveryUseCase) ListGRVByOrder(ctx context.Context, orderID string) ([]dto.GRVResponse, error) {
	list, err := uc.repos.Deliveries().ListGRVByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.GRVResponse, 0, len(list))
	for _, g := range list {
		out = append(out, dto.ToGRVResponse(g))
	}
	return out, nil
}
