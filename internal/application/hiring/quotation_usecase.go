package hiring

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Chrisx-39/FormMaster/internal/application/dto"
	"github.com/Chrisx-39/FormMaster/internal/application/ports"
	"github.com/Chrisx-39/FormMaster/internal/domain"
	"github.com/Chrisx-39/FormMaster/internal/domain/clients"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/domain/hiring"
	"github.com/Chrisx-39/FormMaster/internal/domain/numbering"
	"github.com/Chrisx-39/FormMaster/internal/domain/policy"
	"github.com/Chrisx-39/FormMaster/internal/domain/repository"
)

// QuotationUseCase casos de uso de cotizaciones.
type QuotationUseCase struct {
	txRunner  repository.TxRunner
	repos     repository.Repos
	publisher QuotationPublisher
	notifier  ports.Notifier
	settings  Settings
	log       zerolog.Logger
}

// NewQuotationUseCase construye el caso de uso.
func NewQuotationUseCase(
	txRunner repository.TxRunner,
	repos repository.Repos,
	publisher QuotationPublisher,
	notifier ports.Notifier,
	settings Settings,
	log zerolog.Logger,
) *QuotationUseCase {
	return &QuotationUseCase{
		txRunner:  txRunner,
		repos:     repos,
		publisher: publisher,
		notifier:  notifier,
		settings:  settings,
		log:       log,
	}
}

// CreateFromRFQ cotiza una solicitud RECEIVED con la tarifa vigente de cada material y la
// duración pedida; la solicitud pasa a QUOTED.
func (uc *QuotationUseCase) CreateFromRFQ(ctx context.Context, actor policy.Actor, rfqID string, in dto.QuotationFromRFQRequest) (*dto.QuotationResponse, error) {
	if err := policy.Authorize(actor, policy.CreateQuotation, nil); err != nil {
		return nil, err
	}
	if in.TransportCost.IsNegative() {
		return nil, domain.Invalid("transport_cost", "no puede ser negativo")
	}
	var q *entity.Quotation
	err := uc.txRunner.Run(ctx, func(tx repository.Repos) error {
		rfq, err := tx.RFQs().GetByID(ctx, rfqID)
		if err != nil {
			return err
		}
		if err := hiring.TransitionRFQ(rfq, entity.RFQStatusQuoted); err != nil {
			return err
		}
		rates, err := materialRates(ctx, tx, rfq.Items)
		if err != nil {
			return err
		}
		items := make([]entity.QuotationItem, 0, len(rfq.Items))
		for _, it := range rfq.Items {
			items = append(items, entity.QuotationItem{
				MaterialID:   it.MaterialID,
				Quantity:     it.QuantityRequested,
				DailyRate:    rates[it.MaterialID],
				DurationDays: rfq.HireDurationDays,
			})
		}
		q, err = uc.newQuotation(ctx, tx, actor, rfq.ClientID, rfq.HireDurationDays, in.TransportCost, in.ValidUntil, in.Notes, items)
		if err != nil {
			return err
		}
		q.RFQID = rfq.ID
		if err := tx.Quotations().Create(ctx, q); err != nil {
			return err
		}
		rfq.UpdatedAt = time.Now()
		return tx.RFQs().Update(ctx, rfq)
	})
	if err != nil {
		return nil, err
	}
	out := dto.ToQuotationResponse(q)
	return &out, nil
}

// Create cotización directa, sin solicitud previa.
func (uc *QuotationUseCase) Create(ctx context.Context, actor policy.Actor, in dto.CreateQuotationRequest) (*dto.QuotationResponse, error) {
	if err := policy.Authorize(actor, policy.CreateQuotation, nil); err != nil {
		return nil, err
	}
	if in.HireDurationDays < 1 {
		return nil, domain.Invalid("hire_duration_days", "debe ser al menos 1")
	}
	if in.TransportCost.IsNegative() {
		return nil, domain.Invalid("transport_cost", "no puede ser negativo")
	}
	var q *entity.Quotation
	err := uc.txRunner.Run(ctx, func(tx repository.Repos) error {
		items, err := uc.quotationItems(ctx, tx, in.Items, in.HireDurationDays)
		if err != nil {
			return err
		}
		q, err = uc.newQuotation(ctx, tx, actor, in.ClientID, in.HireDurationDays, in.TransportCost, in.ValidUntil, in.Notes, items)
		if err != nil {
			return err
		}
		return tx.Quotations().Create(ctx, q)
	})
	if err != nil {
		return nil, err
	}
	out := dto.ToQuotationResponse(q)
	return &out, nil
}

// Get devuelve una cotización.
func (uc *QuotationUseCase) Get(ctx context.Context, id string) (*dto.QuotationResponse, error) {
	q, err := uc.repos.Quotations().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.ToQuotationResponse(q)
	return &out, nil
}

// List lista cotizaciones.
func (uc *QuotationUseCase) List(ctx context.Context, f repository.ListFilter) ([]dto.QuotationResponse, error) {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	list, err := uc.repos.Quotations().List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.QuotationResponse, 0, len(list))
	for _, q := range list {
		out = append(out, dto.ToQuotationResponse(q))
	}
	return out, nil
}

// Update cambia ítems, transporte, vigencia o notas de un borrador y recalcula totales.
func (uc *QuotationUseCase) Update(ctx context.Context, actor policy.Actor, id string, in dto.UpdateQuotationRequest) (*dto.QuotationResponse, error) {
	if err := policy.Authorize(actor, policy.CreateQuotation, nil); err != nil {
		return nil, err
	}
	q, err := uc.mutate(ctx, id, func(tx repository.Repos, q *entity.Quotation) error {
		if err := hiring.EnsureEditable(q); err != nil {
			return err
		}
		if in.TransportCost != nil {
			if in.TransportCost.IsNegative() {
				return domain.Invalid("transport_cost", "no puede ser negativo")
			}
			q.TransportCost = *in.TransportCost
		}
		if in.ValidUntil != nil {
			q.ValidUntil = *in.ValidUntil
		}
		if in.Notes != nil {
			q.Notes = *in.Notes
		}
		if len(in.Items) > 0 {
			items, err := uc.quotationItems(ctx, tx, in.Items, q.HireDurationDays)
			if err != nil {
				return err
			}
			for i := range items {
				items[i].ID = uuid.New().String()
				items[i].QuotationID = q.ID
			}
			q.Items = items
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := dto.ToQuotationResponse(q)
	return &out, nil
}

// Approve DRAFT -> SENT. Luego genera el PDF y avisa al cliente; esos pasos no revierten la aprobación.
func (uc *QuotationUseCase) Approve(ctx context.Context, actor policy.Actor, id string) (*dto.QuotationResponse, error) {
	if err := policy.Authorize(actor, policy.ApproveQuotation, nil); err != nil {
		return nil, err
	}
	q, err := uc.mutate(ctx, id, func(_ repository.Repos, q *entity.Quotation) error {
		return hiring.ApproveQuotation(q, actor.ID)
	})
	if err != nil {
		return nil, err
	}
	uc.publish(ctx, q, actor.ID)
	out := dto.ToQuotationResponse(q)
	return &out, nil
}

// Accept SENT -> ACCEPTED; la solicitud de origen pasa a ACCEPTED.
func (uc *QuotationUseCase) Accept(ctx context.Context, actor policy.Actor, id string) (*dto.QuotationResponse, error) {
	return uc.transition(ctx, actor, id, hiring.AcceptQuotation)
}

// Reject SENT -> REJECTED.
func (uc *QuotationUseCase) Reject(ctx context.Context, actor policy.Actor, id string) (*dto.QuotationResponse, error) {
	return uc.transition(ctx, actor, id, hiring.RejectQuotation)
}

// Expire DRAFT|SENT -> EXPIRED.
func (uc *QuotationUseCase) Expire(ctx context.Context, actor policy.Actor, id string) (*dto.QuotationResponse, error) {
	return uc.transition(ctx, actor, id, hiring.ExpireQuotation)
}

func (uc *QuotationUseCase) transition(ctx context.Context, actor policy.Actor, id string, apply func(*entity.Quotation) error) (*dto.QuotationResponse, error) {
	if err := policy.Authorize(actor, policy.CreateQuotation, nil); err != nil {
		return nil, err
	}
	q, err := uc.mutate(ctx, id, func(tx repository.Repos, q *entity.Quotation) error {
		if err := apply(q); err != nil {
			return err
		}
		return propagateToRFQ(ctx, tx, q)
	})
	if err != nil {
		return nil, err
	}
	out := dto.ToQuotationResponse(q)
	return &out, nil
}

// mutate bloquea la cotización, aplica fn, recalcula totales y guarda.
func (uc *QuotationUseCase) mutate(ctx context.Context, id string, fn func(tx repository.Repos, q *entity.Quotation) error) (*entity.Quotation, error) {
	var q *entity.Quotation
	err := uc.txRunner.Run(ctx, func(tx repository.Repos) error {
		var err error
		q, err = tx.Quotations().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(tx, q); err != nil {
			return err
		}
		if q.Status == entity.QuotationStatusDraft {
			hiring.CalculateTotals(q, uc.settings.TaxRate)
		}
		q.UpdatedAt = time.Now()
		return tx.Quotations().Update(ctx, q)
	})
	return q, err
}

func (uc *QuotationUseCase) newQuotation(
	ctx context.Context,
	tx repository.Repos,
	actor policy.Actor,
	clientID string,
	durationDays int,
	transport decimal.Decimal,
	validUntil *time.Time,
	notes string,
	items []entity.QuotationItem,
) (*entity.Quotation, error) {
	client, err := tx.Clients().GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if err := clients.CanReceiveQuotes(client); err != nil {
		return nil, err
	}
	if err := hiring.ValidateQuotationItems(items); err != nil {
		return nil, err
	}
	now := time.Now()
	number, err := numbering.Next(ctx, tx.Sequences(), numbering.Quotation, now)
	if err != nil {
		return nil, err
	}
	q := &entity.Quotation{
		ID:               uuid.New().String(),
		QuotationNumber:  number,
		ClientID:         client.ID,
		PreparedBy:       actor.ID,
		ValidUntil:       now.AddDate(0, 0, uc.validDays()),
		HireDurationDays: durationDays,
		TransportCost:    transport,
		Status:           entity.QuotationStatusDraft,
		Notes:            notes,
		Items:            items,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if validUntil != nil {
		if !validUntil.After(now) {
			return nil, domain.Invalid("valid_until", "debe ser una fecha futura")
		}
		q.ValidUntil = *validUntil
	}
	for i := range q.Items {
		q.Items[i].ID = uuid.New().String()
		q.Items[i].QuotationID = q.ID
	}
	hiring.CalculateTotals(q, uc.settings.TaxRate)
	return q, nil
}

// quotationItems resuelve tarifas (cero = tarifa del material) y duración por defecto.
func (uc *QuotationUseCase) quotationItems(ctx context.Context, tx repository.Repos, in []dto.QuotationItemRequest, durationDays int) ([]entity.QuotationItem, error) {
	items := make([]entity.QuotationItem, 0, len(in))
	for _, it := range in {
		m, err := tx.Materials().GetByID(ctx, it.MaterialID)
		if err != nil {
			return nil, err
		}
		rate := it.DailyRate
		if rate.IsZero() {
			rate = m.DailyHireRate
		}
		days := it.DurationDays
		if days == 0 {
			days = durationDays
		}
		items = append(items, entity.QuotationItem{
			MaterialID:   m.ID,
			Quantity:     it.Quantity,
			DailyRate:    rate,
			DurationDays: days,
		})
	}
	return items, nil
}

func (uc *QuotationUseCase) validDays() int {
	if uc.settings.QuotationValidDays > 0 {
		return uc.settings.QuotationValidDays
	}
	return 30
}

// publish genera el PDF y notifica al cliente. Los errores solo se registran.
func (uc *QuotationUseCase) publish(ctx context.Context, q *entity.Quotation, userID string) {
	var attachments []string
	if uc.publisher != nil {
		doc, err := uc.publisher.PublishQuotation(ctx, q.ID, userID)
		if err != nil {
			uc.log.Error().Err(err).Str("quotation", q.QuotationNumber).Msg("no se pudo generar el PDF de la cotización")
		} else {
			attachments = append(attachments, doc.ObjectKey)
		}
	}
	if uc.notifier == nil {
		return
	}
	client, err := uc.repos.Clients().GetByID(ctx, q.ClientID)
	if err != nil {
		uc.log.Error().Err(err).Str("quotation", q.QuotationNumber).Msg("cliente de la cotización no encontrado")
		return
	}
	if err := uc.notifier.Notify(ctx, ports.Notification{
		Kind:        ports.NotifyQuotationSent,
		Recipient:   client.Email,
		Subject:     "Cotización " + q.QuotationNumber,
		Body:        "Adjuntamos la cotización " + q.QuotationNumber + " por " + q.TotalAmount.StringFixed(2),
		Reference:   q.QuotationNumber,
		Attachments: attachments,
	}); err != nil {
		uc.log.Warn().Err(err).Str("quotation", q.QuotationNumber).Msg("notificación de cotización fallida")
	}
}

// propagateToRFQ lleva el resultado de la cotización a la solicitud de origen, si la hay.
func propagateToRFQ(ctx context.Context, tx repository.Repos, q *entity.Quotation) error {
	if q.RFQID == "" {
		return nil
	}
	to := hiring.RFQStatusForQuotation(q.Status)
	if to == "" {
		return nil
	}
	rfq, err := tx.RFQs().GetByID(ctx, q.RFQID)
	if err != nil {
		return err
	}
	if rfq.Status != entity.RFQStatusQuoted {
		return nil
	}
	if err := hiring.TransitionRFQ(rfq, to); err != nil {
		return err
	}
	rfq.UpdatedAt = time.Now()
	return tx.RFQs().Update(ctx, rfq)
}
