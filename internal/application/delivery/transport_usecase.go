// Package delivery casos de uso de transporte, entregas con su nota y recepción de devoluciones.
package delivery

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Chrisx-39/FormMaster/internal/application/dto"
	"github.com/Chrisx-39/FormMaster/internal/domain"
	"github.com/Chrisx-39/FormMaster/internal/domain/delivery"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/domain/numbering"
	"github.com/Chrisx-39/FormMaster/internal/domain/policy"
	"github.com/Chrisx-39/FormMaster/internal/domain/repository"
)

// TransportUseCase solicitudes de camión.
type TransportUseCase struct {
	txRunner repository.TxRunner
	repos    repository.Repos
}

// NewTransportUseCase construye el caso de uso.
func NewTransportUseCase(txRunner repository.TxRunner, repos repository.Repos) *TransportUseCase {
	return &TransportUseCase{txRunner: txRunner, repos: repos}
}

// Create solicita un camión para una orden vigente.
func (uc *TransportUseCase) Create(ctx context.Context, actor policy.Actor, in dto.TransportRequestRequest) (*dto.TransportResponse, error) {
	if err := policy.Authorize(actor, policy.RequestTransport, nil); err != nil {
		return nil, err
	}
	if !delivery.ValidTruckType(in.TruckType) {
		return nil, domain.Invalid("truck_type", "tipo de camión desconocido")
	}
	if in.RequiredDate.IsZero() {
		return nil, domain.Invalid("required_date", "es obligatoria")
	}
	var tr *entity.TransportRequest
	err := uc.txRunner.Run(ctx, func(tx repository.Repos) error {
		o, err := tx.Orders().GetByID(ctx, in.HireOrderID)
		if err != nil {
			return err
		}
		if err := ensureOrderOpen(o); err != nil {
			return err
		}
		now := time.Now()
		number, err := numbering.Next(ctx, tx.Sequences(), numbering.TransportRequest, now)
		if err != nil {
			return err
		}
		address := in.DeliveryAddress
		if address == "" {
			address = o.DeliveryAddress
		}
		tr = &entity.TransportRequest{
			ID:              uuid.New().String(),
			RequestNumber:   number,
			HireOrderID:     o.ID,
			RequestedBy:     actor.ID,
			RequiredDate:    in.RequiredDate,
			TruckType:       in.TruckType,
			DeliveryAddress: address,
			Instructions:    in.Instructions,
			Status:          entity.TransportStatusPending,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		return tx.Transports().Create(ctx, tr)
	})
	if err != nil {
		return nil, err
	}
	out := dto.ToTransportResponse(tr)
	return &out, nil
}

// Get devuelve una solicitud.
func (uc *TransportUseCase) Get(ctx context.Context, id string) (*dto.TransportResponse, error) {
	tr, err := uc.repos.Transports().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.ToTransportResponse(tr)
	return &out, nil
}

// List lista solicitudes por estado.
func (uc *TransportUseCase) List(ctx context.Context, f repository.ListFilter) ([]dto.TransportResponse, error) {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	list, err := uc.repos.Transports().List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransportResponse, 0, len(list))
	for _, tr := range list {
		out = append(out, dto.ToTransportResponse(tr))
	}
	return out, nil
}

// Approve PENDING -> APPROVED.
func (uc *TransportUseCase) Approve(ctx context.Context, actor policy.Actor, id string) (*dto.TransportResponse, error) {
	return uc.transition(ctx, actor, policy.ApproveTransport, id, func(tr *entity.TransportRequest) error {
		if err := delivery.TransitionTransport(tr, entity.TransportStatusApproved); err != nil {
			return err
		}
		tr.ApprovedBy = actor.ID
		return nil
	})
}

// Reject PENDING -> REJECTED.
func (uc *TransportUseCase) Reject(ctx context.Context, actor policy.Actor, id string) (*dto.TransportResponse, error) {
	return uc.transition(ctx, actor, policy.ApproveTransport, id, func(tr *entity.TransportRequest) error {
		return delivery.TransitionTransport(tr, entity.TransportStatusRejected)
	})
}

// AssignDriver APPROVED -> ASSIGNED con un usuario de rol DRIVER.
func (uc *TransportUseCase) AssignDriver(ctx context.Context, actor policy.Actor, id string, in dto.AssignDriverRequest) (*dto.TransportResponse, error) {
	driver, err := uc.repos.Users().GetByID(ctx, in.DriverID)
	if err != nil {
		return nil, err
	}
	if driver.Role != entity.RoleDriver {
		return nil, domain.Invalid("driver_id", "el usuario no es conductor")
	}
	return uc.transition(ctx, actor, policy.ApproveTransport, id, func(tr *entity.TransportRequest) error {
		if err := delivery.TransitionTransport(tr, entity.TransportStatusAssigned); err != nil {
			return err
		}
		tr.AssignedDriverID = driver.ID
		return nil
	})
}

// Complete ASSIGNED -> COMPLETED.
func (uc *TransportUseCase) Complete(ctx context.Context, actor policy.Actor, id string) (*dto.TransportResponse, error) {
	return uc.transition(ctx, actor, policy.ManageDeliveries, id, func(tr *entity.TransportRequest) error {
		return delivery.TransitionTransport(tr, entity.TransportStatusCompleted)
	})
}

// Cancel cualquier estado abierto -> CANCELLED.
func (uc *TransportUseCase) Cancel(ctx context.Context, actor policy.Actor, id string) (*dto.TransportResponse, error) {
	return uc.transition(ctx, actor, policy.RequestTransport, id, func(tr *entity.TransportRequest) error {
		return delivery.TransitionTransport(tr, entity.TransportStatusCancelled)
	})
}

func (uc *TransportUseCase) transition(ctx context.Context, actor policy.Actor, action policy.Action, id string, apply func(*entity.TransportRequest) error) (*dto.TransportResponse, error) {
	if err := policy.Authorize(actor, action, nil); err != nil {
		return nil, err
	}
	var tr *entity.TransportRequest
	err := uc.txRunner.Run(ctx, func(tx repository.Repos) error {
		var err error
		tr, err = tx.Transports().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := apply(tr); err != nil {
			return err
		}
		tr.UpdatedAt = time.Now()
		return tx.Transports().Update(ctx, tr)
	})
	if err != nil {
		return nil, err
	}
	out := dto.ToTransportResponse(tr)
	return &out, nil
}

// ensureOrderOpen no se programan movimientos para órdenes cerradas.
func ensureOrderOpen(o *entity.HireOrder) error {
	switch o.Status {
	case entity.OrderStatusCancelled, entity.OrderStatusCompleted:
		return &domain.TransitionError{Entity: "hire_order", From: o.Status, To: entity.OrderStatusDispatched}
	}
	return nil
}
