package hiring

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Chrisx-39/FormMaster/internal/application/dto"
	"github.com/Chrisx-39/FormMaster/internal/domain"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/domain/hiring"
	"github.com/Chrisx-39/FormMaster/internal/domain/numbering"
	"github.com/Chrisx-39/FormMaster/internal/domain/policy"
	"github.com/Chrisx-39/FormMaster/internal/domain/repository"
)

// LeaseUseCase contratos de arrendamiento de las órdenes.
type LeaseUseCase struct {
	txRunner repository.TxRunner
	repos    repository.Repos
	settings Settings
}

// NewLeaseUseCase construye el caso de uso.
func NewLeaseUseCase(txRunner repository.TxRunner, repos repository.Repos, settings Settings) *LeaseUseCase {
	return &LeaseUseCase{txRunner: txRunner, repos: repos, settings: settings}
}

// Create redacta el contrato (DRAFT) de una orden aprobada. Una orden tiene un solo contrato.
func (uc *LeaseUseCase) Create(ctx context.Context, actor policy.Actor, orderID string, in dto.LeaseRequest) (*dto.LeaseResponse, error) {
	if err := policy.Authorize(actor, policy.ManageOrders, nil); err != nil {
		return nil, err
	}
	var la *entity.LeaseAgreement
	err := uc.txRunner.Run(ctx, func(tx repository.Repos) error {
		o, err := tx.Orders().GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		switch o.Status {
		case entity.OrderStatusOrdered, entity.OrderStatusCancelled, entity.OrderStatusCompleted:
			return &domain.TransitionError{Entity: "lease_agreement", From: o.Status, To: entity.LeaseStatusDraft}
		}
		penalty := uc.settings.LatePenaltyRate
		if in.LateReturnPenaltyPerDay != nil {
			if in.LateReturnPenaltyPerDay.IsNegative() {
				return domain.Invalid("late_return_penalty_per_day", "no puede ser negativa")
			}
			penalty = *in.LateReturnPenaltyPerDay
		}
		now := time.Now()
		number, err := numbering.Next(ctx, tx.Sequences(), numbering.LeaseAgreement, now)
		if err != nil {
			return err
		}
		la = &entity.LeaseAgreement{
			ID:                      uuid.New().String(),
			AgreementNumber:         number,
			HireOrderID:             o.ID,
			StartDate:               o.StartDate,
			EndDate:                 o.ExpectedReturnDate,
			DurationDays:            int(o.ExpectedReturnDate.Sub(o.StartDate).Hours() / 24),
			LateReturnPenaltyPerDay: penalty,
			DamagePolicy:            in.DamagePolicy,
			Terms:                   in.Terms,
			Status:                  entity.LeaseStatusDraft,
			CreatedAt:               now,
			UpdatedAt:               now,
		}
		return tx.Orders().CreateLease(ctx, la)
	})
	if err != nil {
		return nil, err
	}
	out := dto.ToLeaseResponse(la)
	return &out, nil
}

// Get contrato de la orden.
func (uc *LeaseUseCase) Get(ctx context.Context, orderID string) (*dto.LeaseResponse, error) {
	la, err := uc.repos.Orders().GetLeaseByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	out := dto.ToLeaseResponse(la)
	return &out, nil
}

// SignByClient registra la firma del cliente (la carga la oficina).
func (uc *LeaseUseCase) SignByClient(ctx context.Context, actor policy.Actor, orderID string) (*dto.LeaseResponse, error) {
	if err := policy.Authorize(actor, policy.ManageOrders, nil); err != nil {
		return nil, err
	}
	return uc.sign(ctx, orderID, func(la *entity.LeaseAgreement, at time.Time) error {
		return hiring.SignLeaseByClient(la, at)
	})
}

// SignByManager firma de gerencia.
func (uc *LeaseUseCase) SignByManager(ctx context.Context, actor policy.Actor, orderID string) (*dto.LeaseResponse, error) {
	if err := policy.Authorize(actor, policy.SignLease, nil); err != nil {
		return nil, err
	}
	return uc.sign(ctx, orderID, func(la *entity.LeaseAgreement, at time.Time) error {
		return hiring.SignLeaseByManager(la, actor.ID, at)
	})
}

func (uc *LeaseUseCase) sign(ctx context.Context, orderID string, apply func(*entity.LeaseAgreement, time.Time) error) (*dto.LeaseResponse, error) {
	var la *entity.LeaseAgreement
	err := uc.txRunner.Run(ctx, func(tx repository.Repos) error {
		var err error
		la, err = tx.Orders().GetLeaseByOrder(ctx, orderID)
		if err != nil {
			return err
		}
		now := time.Now()
		if err := apply(la, now); err != nil {
			return err
		}
		la.UpdatedAt = now
		return tx.Orders().UpdateLease(ctx, la)
	})
	if err != nil {
		return nil, err
	}
	out := dto.ToLeaseResponse(la)
	return &out, nil
}
