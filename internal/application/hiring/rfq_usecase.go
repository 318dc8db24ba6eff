package hiring

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Chrisx-39/FormMaster/internal/application/dto"
	"github.com/Chrisx-39/FormMaster/internal/domain"
	"github.com/Chrisx-39/FormMaster/internal/domain/clients"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/domain/hiring"
	"github.com/Chrisx-39/FormMaster/internal/domain/numbering"
	"github.com/Chrisx-39/FormMaster/internal/domain/policy"
	"github.com/Chrisx-39/FormMaster/internal/domain/repository"
)

// RFQUseCase casos de uso de solicitudes de cotización.
type RFQUseCase struct {
	txRunner repository.TxRunner
	repos    repository.Repos
}

// NewRFQUseCase construye el caso de uso.
func NewRFQUseCase(txRunner repository.TxRunner, repos repository.Repos) *RFQUseCase {
	return &RFQUseCase{txRunner: txRunner, repos: repos}
}

// Create registra una solicitud RECEIVED para un cliente habilitado.
func (uc *RFQUseCase) Create(ctx context.Context, actor policy.Actor, in dto.RFQRequest) (*dto.RFQResponse, error) {
	if err := policy.Authorize(actor, policy.CreateRFQ, nil); err != nil {
		return nil, err
	}
	now := time.Now()
	r := &entity.RequestForQuotation{
		ID:               uuid.New().String(),
		ClientID:         in.ClientID,
		ReceivedBy:       actor.ID,
		RequiredDate:     in.RequiredDate,
		HireDurationDays: in.HireDurationDays,
		SiteAddress:      in.SiteAddress,
		Notes:            in.Notes,
		Status:           entity.RFQStatusReceived,
		Items:            rfqItems(in.Items),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := hiring.ValidateRFQ(r); err != nil {
		return nil, err
	}
	for i := range r.Items {
		r.Items[i].ID = uuid.New().String()
		r.Items[i].RFQID = r.ID
	}
	err := uc.txRunner.Run(ctx, func(tx repository.Repos) error {
		client, err := tx.Clients().GetByID(ctx, r.ClientID)
		if err != nil {
			return err
		}
		if err := clients.CanReceiveQuotes(client); err != nil {
			return err
		}
		if _, err := materialRates(ctx, tx, r.Items); err != nil {
			return err
		}
		if r.RFQNumber, err = numbering.Next(ctx, tx.Sequences(), numbering.RFQ, now); err != nil {
			return err
		}
		return tx.RFQs().Create(ctx, r)
	})
	if err != nil {
		return nil, err
	}
	return uc.response(ctx, r)
}

// Get devuelve la solicitud con su costo estimado.
func (uc *RFQUseCase) Get(ctx context.Context, id string) (*dto.RFQResponse, error) {
	r, err := uc.repos.RFQs().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.response(ctx, r)
}

// List lista solicitudes.
func (uc *RFQUseCase) List(ctx context.Context, f repository.ListFilter) ([]dto.RFQResponse, error) {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	list, err := uc.repos.RFQs().List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RFQResponse, 0, len(list))
	for _, r := range list {
		resp, err := uc.response(ctx, r)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

// Update reemplaza datos e ítems. Tras cotizarse solo un ADMIN puede modificarla.
func (uc *RFQUseCase) Update(ctx context.Context, actor policy.Actor, id string, in dto.RFQRequest) (*dto.RFQResponse, error) {
	if err := policy.Authorize(actor, policy.CreateRFQ, nil); err != nil {
		return nil, err
	}
	var r *entity.RequestForQuotation
	err := uc.txRunner.Run(ctx, func(tx repository.Repos) error {
		var err error
		r, err = tx.RFQs().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := hiring.EnsureRFQEditable(r, policy.Can(actor, policy.OverrideRFQ, nil)); err != nil {
			return err
		}
		if in.ClientID != "" && in.ClientID != r.ClientID {
			return domain.Invalid("client_id", "no se puede cambiar el cliente")
		}
		r.RequiredDate = in.RequiredDate
		r.HireDurationDays = in.HireDurationDays
		r.SiteAddress = in.SiteAddress
		r.Notes = in.Notes
		r.Items = rfqItems(in.Items)
		if err := hiring.ValidateRFQ(r); err != nil {
			return err
		}
		for i := range r.Items {
			r.Items[i].ID = uuid.New().String()
			r.Items[i].RFQID = r.ID
		}
		if _, err := materialRates(ctx, tx, r.Items); err != nil {
			return err
		}
		r.UpdatedAt = time.Now()
		return tx.RFQs().Update(ctx, r)
	})
	if err != nil {
		return nil, err
	}
	return uc.response(ctx, r)
}

func (uc *RFQUseCase) response(ctx context.Context, r *entity.RequestForQuotation) (*dto.RFQResponse, error) {
	rates, err := materialRates(ctx, uc.repos, r.Items)
	if err != nil {
		return nil, err
	}
	out := dto.ToRFQResponse(r, hiring.EstimatedCost(r, rates))
	return &out, nil
}

// materialRates tarifa diaria vigente de cada material; falla si alguno no existe.
func materialRates(ctx context.Context, repos repository.Repos, items []entity.RFQItem) (map[string]decimal.Decimal, error) {
	rates := make(map[string]decimal.Decimal, len(items))
	for _, it := range items {
		if _, ok := rates[it.MaterialID]; ok {
			continue
		}
		m, err := repos.Materials().GetByID(ctx, it.MaterialID)
		if err != nil {
			return nil, err
		}
		rates[m.ID] = m.DailyHireRate
	}
	return rates, nil
}

func rfqItems(in []dto.RFQItemRequest) []entity.RFQItem {
	items := make([]entity.RFQItem, 0, len(in))
	for _, it := range in {
		items = append(items, entity.RFQItem{
			MaterialID:        it.MaterialID,
			QuantityRequested: it.QuantityRequested,
			Notes:             it.Notes,
		})
	}
	return items
}
