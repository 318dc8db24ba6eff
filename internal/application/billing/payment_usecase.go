package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Chrisx-39/FormMaster/internal/application/dto"
	"github.com/Chrisx-39/FormMaster/internal/domain/billing"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/domain/numbering"
	"github.com/Chrisx-39/FormMaster/internal/domain/policy"
	"github.com/Chrisx-39/FormMaster/internal/domain/repository"
)

// PaymentUseCase registro y confirmación de pagos.
type PaymentUseCase struct {
	txRunner repository.TxRunner
	repos    repository.Repos
	ledger   ClientLedger
	log      zerolog.Logger
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(txRunner repository.TxRunner, repos repository.Repos, ledger ClientLedger, log zerolog.Logger) *PaymentUseCase {
	return &PaymentUseCase{txRunner: txRunner, repos: repos, ledger: ledger, log: log}
}

// Record registra un pago sin confirmar. Falla con ErrPaymentExceedsBalance si supera el saldo de la factura.
func (uc *PaymentUseCase) Record(ctx context.Context, actor policy.Actor, invoiceID string, in dto.RecordPaymentRequest) (*dto.PaymentResponse, error) {
	if err := policy.Authorize(actor, policy.RecordPayment, nil); err != nil {
		return nil, err
	}
	var p *entity.Payment
	err := uc.txRunner.Run(ctx, func(tx repository.Repos) error {
		inv, err := tx.Invoices().GetForUpdate(ctx, invoiceID)
		if err != nil {
			return err
		}
		existing, err := tx.Payments().ListByInvoice(ctx, inv.ID)
		if err != nil {
			return err
		}
		if err := billing.ValidatePayment(inv, in.Amount, billing.PendingTotal(existing), in.Method); err != nil {
			return err
		}
		now := time.Now()
		number, err := numbering.Next(ctx, tx.Sequences(), numbering.Payment, now)
		if err != nil {
			return err
		}
		date := now
		if in.PaymentDate != nil {
			date = *in.PaymentDate
		}
		p = &entity.Payment{
			ID:            uuid.New().String(),
			PaymentNumber: number,
			InvoiceID:     inv.ID,
			PaymentDate:   date,
			Amount:        in.Amount.Round(2),
			Method:        in.Method,
			Reference:     in.Reference,
			ReceivedBy:    actor.ID,
			Notes:         in.Notes,
			CreatedAt:     now,
		}
		return tx.Payments().Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	out := dto.ToPaymentResponse(p)
	return &out, nil
}

// Confirm marca el pago confirmado y concilia la factura con la suma de pagos confirmados.
// Confirmar dos veces no cambia lo pagado ni el saldo del cliente. Falla con
// ErrPaymentExceedsBalance si el pago dejaría la factura sobrepagada, y con
// TransitionError si la factura ya no admite pagos (anulada o pagada).
func (uc *PaymentUseCase) Confirm(ctx context.Context, actor policy.Actor, id string) (*dto.PaymentResponse, error) {
	if err := policy.Authorize(actor, policy.ConfirmPayment, nil); err != nil {
		return nil, err
	}
	var p *entity.Payment
	err := uc.txRunner.Run(ctx, func(tx repository.Repos) error {
		var err error
		p, err = tx.Payments().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		inv, err := tx.Invoices().GetForUpdate(ctx, p.InvoiceID)
		if err != nil {
			return err
		}
		total, err := tx.Payments().SumConfirmed(ctx, inv.ID)
		if err != nil {
			return err
		}
		now := time.Now()
		if !p.Confirmed {
			if err := billing.ValidateConfirmation(inv, total, p.Amount); err != nil {
				return err
			}
			billing.ConfirmPayment(p, actor.ID, now)
			if err := tx.Payments().Update(ctx, p); err != nil {
				return err
			}
			total = total.Add(p.Amount)
		}
		delta := billing.ApplyConfirmedTotal(inv, total, now)
		if delta.IsZero() {
			return nil
		}
		inv.UpdatedAt = now
		if err := tx.Invoices().Update(ctx, inv); err != nil {
			return err
		}
		if err := uc.ledger.UpdateBalanceInTx(ctx, tx, inv.ClientID, delta.Neg(), p.PaymentNumber, actor.ID); err != nil {
			return err
		}
		uc.log.Info().
			Str("payment", p.PaymentNumber).
			Str("invoice", inv.InvoiceNumber).
			Str("amount_paid", inv.AmountPaid.StringFixed(2)).
			Str("status", inv.PaymentStatus).
			Msg("pago confirmado")
		return syncOrderPaymentStatus(ctx, tx, inv.HireOrderID)
	})
	if err != nil {
		return nil, err
	}
	out := dto.ToPaymentResponse(p)
	return &out, nil
}

// ListByInvoice pagos de una factura.
func (uc *PaymentUseCase) ListByInvoice(ctx context.Context, invoiceID string) ([]dto.PaymentResponse, error) {
	list, err := uc.repos.Payments().ListByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.ToPaymentResponse(p))
	}
	return out, nil
}
