package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Chrisx-39/FormMaster/internal/application/dto"
	"github.com/Chrisx-39/FormMaster/internal/domain"
	"github.com/Chrisx-39/FormMaster/internal/domain/billing"
	"github.com/Chrisx-39/FormMaster/internal/domain/clients"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/domain/hiring"
	"github.com/Chrisx-39/FormMaster/internal/domain/numbering"
	"github.com/Chrisx-39/FormMaster/internal/domain/policy"
	"github.com/Chrisx-39/FormMaster/internal/domain/repository"
)

// InvoiceUseCase facturas contra órdenes de alquiler.
// Una factura cuenta en el saldo del cliente desde que se emite hasta que se anula.
type InvoiceUseCase struct {
	txRunner repository.TxRunner
	repos    repository.Repos
	ledger   ClientLedger
	settings Settings
	log      zerolog.Logger
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(txRunner repository.TxRunner, repos repository.Repos, ledger ClientLedger, settings Settings, log zerolog.Logger) *InvoiceUseCase {
	return &InvoiceUseCase{txRunner: txRunner, repos: repos, ledger: ledger, settings: settings, log: log}
}

// Create crea la factura en DRAFT. El subtotal depende del tipo:
// FINAL toma el subtotal de la cotización, PENALTY la penalidad por mora a hoy,
// ADVANCE y PARTIAL el monto recibido.
func (uc *InvoiceUseCase) Create(ctx context.Context, actor policy.Actor, orderID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := policy.Authorize(actor, policy.CreateInvoice, nil); err != nil {
		return nil, err
	}
	if !billing.ValidInvoiceType(in.Type) {
		return nil, domain.Invalid("type", "tipo de factura desconocido")
	}
	var inv *entity.Invoice
	err := uc.txRunner.Run(ctx, func(tx repository.Repos) error {
		o, err := tx.Orders().GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if o.Status == entity.OrderStatusCancelled {
			return &domain.TransitionError{Entity: "hire_order", From: o.Status, To: "INVOICED"}
		}
		now := time.Now()
		subtotal, err := uc.subtotal(ctx, tx, o, in, now)
		if err != nil {
			return err
		}
		c, err := tx.Clients().GetByID(ctx, o.ClientID)
		if err != nil {
			return err
		}
		number, err := numbering.Next(ctx, tx.Sequences(), numbering.Invoice, now)
		if err != nil {
			return err
		}
		inv = &entity.Invoice{
			ID:            uuid.New().String(),
			InvoiceNumber: number,
			HireOrderID:   o.ID,
			ClientID:      o.ClientID,
			InvoiceDate:   now,
			DueDate:       clients.DueDate(c, now),
			Type:          in.Type,
			Subtotal:      subtotal,
			AmountPaid:    decimal.Zero,
			PaymentStatus: entity.InvoiceStatusDraft,
			Notes:         in.Notes,
			IssuedBy:      actor.ID,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		billing.CalculateInvoiceTotals(inv, uc.settings.TaxRate)
		billing.Recalculate(inv, now)
		return tx.Invoices().Create(ctx, inv)
	})
	if err != nil {
		return nil, err
	}
	out := dto.ToInvoiceResponse(inv)
	return &out, nil
}

func (uc *InvoiceUseCase) subtotal(ctx context.Context, tx repository.Repos, o *entity.HireOrder, in dto.CreateInvoiceRequest, now time.Time) (decimal.Decimal, error) {
	switch in.Type {
	case entity.InvoiceTypeFinal:
		q, err := tx.Quotations().GetByID(ctx, o.QuotationID)
		if err != nil {
			return decimal.Zero, fmt.Errorf("cotización de la orden: %w", err)
		}
		return q.Subtotal, nil
	case entity.InvoiceTypePenalty:
		penalty := hiring.LatePenalty(o, now, uc.settings.LatePenaltyRate)
		if !penalty.IsPositive() {
			return decimal.Zero, fmt.Errorf("%w: la orden no tiene penalidad por mora", domain.ErrInvalidInput)
		}
		return penalty, nil
	default:
		if !in.Subtotal.IsPositive() {
			return decimal.Zero, domain.Invalid("subtotal", "debe ser mayor que cero")
		}
		return in.Subtotal, nil
	}
}

// Get devuelve una factura.
func (uc *InvoiceUseCase) Get(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.repos.Invoices().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.ToInvoiceResponse(inv)
	return &out, nil
}

// List lista facturas por estado de pago o cliente.
func (uc *InvoiceUseCase) List(ctx context.Context, f repository.ListFilter) ([]dto.InvoiceResponse, error) {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	list, err := uc.repos.Invoices().List(ctx, f)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponses(list), nil
}

// ListByOrder facturas de una orden.
func (uc *InvoiceUseCase) ListByOrder(ctx context.Context, orderID string) ([]dto.InvoiceResponse, error) {
	list, err := uc.repos.Invoices().ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponses(list), nil
}

// Issue DRAFT -> ISSUED y suma el total al saldo del cliente.
func (uc *InvoiceUseCase) Issue(ctx context.Context, actor policy.Actor, id string) (*dto.InvoiceResponse, error) {
	return uc.transition(ctx, actor, id, func(tx repository.Repos, inv *entity.Invoice) error {
		if err := billing.IssueInvoice(inv); err != nil {
			return err
		}
		return uc.ledger.UpdateBalanceInTx(ctx, tx, inv.ClientID, inv.TotalAmount, inv.InvoiceNumber, actor.ID)
	})
}

// Send ISSUED -> SENT.
func (uc *InvoiceUseCase) Send(ctx context.Context, actor policy.Actor, id string) (*dto.InvoiceResponse, error) {
	return uc.transition(ctx, actor, id, func(_ repository.Repos, inv *entity.Invoice) error {
		return billing.SendInvoice(inv)
	})
}

// Cancel anula una factura sin pagos; si ya contaba en el saldo, lo revierte.
func (uc *InvoiceUseCase) Cancel(ctx context.Context, actor policy.Actor, id string) (*dto.InvoiceResponse, error) {
	return uc.transition(ctx, actor, id, func(tx repository.Repos, inv *entity.Invoice) error {
		receivable := billing.IsReceivable(inv)
		if err := billing.CancelInvoice(inv); err != nil {
			return err
		}
		if !receivable {
			return nil
		}
		return uc.ledger.UpdateBalanceInTx(ctx, tx, inv.ClientID, inv.TotalAmount.Neg(), inv.InvoiceNumber, actor.ID)
	})
}

// MarkOverdue recalcula una factura vencida; lo usa el job de facturas vencidas.
// Devuelve true si el estado cambió.
func (uc *InvoiceUseCase) MarkOverdue(ctx context.Context, id string, today time.Time) (bool, error) {
	changed := false
	err := uc.txRunner.Run(ctx, func(tx repository.Repos) error {
		inv, err := tx.Invoices().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		before := inv.PaymentStatus
		billing.Recalculate(inv, today)
		if inv.PaymentStatus == before {
			return nil
		}
		changed = true
		inv.UpdatedAt = time.Now()
		if err := tx.Invoices().Update(ctx, inv); err != nil {
			return err
		}
		return syncOrderPaymentStatus(ctx, tx, inv.HireOrderID)
	})
	return changed, err
}

func (uc *InvoiceUseCase) transition(ctx context.Context, actor policy.Actor, id string, apply func(tx repository.Repos, inv *entity.Invoice) error) (*dto.InvoiceResponse, error) {
	if err := policy.Authorize(actor, policy.CreateInvoice, nil); err != nil {
		return nil, err
	}
	var inv *entity.Invoice
	err := uc.txRunner.Run(ctx, func(tx repository.Repos) error {
		var err error
		inv, err = tx.Invoices().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		from := inv.PaymentStatus
		if err := apply(tx, inv); err != nil {
			return err
		}
		now := time.Now()
		billing.Recalculate(inv, now)
		inv.UpdatedAt = now
		if err := tx.Invoices().Update(ctx, inv); err != nil {
			return err
		}
		uc.log.Info().Str("invoice", inv.InvoiceNumber).Str("from", from).Str("to", inv.PaymentStatus).Msg("factura actualizada")
		return syncOrderPaymentStatus(ctx, tx, inv.HireOrderID)
	})
	if err != nil {
		return nil, err
	}
	out := dto.ToInvoiceResponse(inv)
	return &out, nil
}

// syncOrderPaymentStatus deriva el estado de pago de la orden de todas sus facturas.
func syncOrderPaymentStatus(ctx context.Context, tx repository.Repos, orderID string) error {
	invoices, err := tx.Invoices().ListByOrder(ctx, orderID)
	if err != nil {
		return err
	}
	o, err := tx.Orders().GetForUpdate(ctx, orderID)
	if err != nil {
		return err
	}
	status := billing.OrderPaymentStatus(invoices)
	if o.PaymentStatus == status {
		return nil
	}
	o.PaymentStatus = status
	o.UpdatedAt = time.Now()
	return tx.Orders().Update(ctx, o)
}

func toInvoiceResponses(list []*entity.Invoice) []dto.InvoiceResponse {
	out := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, dto.ToInvoiceResponse(inv))
	}
	return out
}
