package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Chrisx-39/FormMaster/internal/application/dto"
	"github.com/Chrisx-39/FormMaster/internal/domain"
	"github.com/Chrisx-39/FormMaster/internal/domain/billing"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/domain/numbering"
	"github.com/Chrisx-39/FormMaster/internal/domain/policy"
	"github.com/Chrisx-39/FormMaster/internal/domain/repository"
)

// CreditNoteUseCase notas crédito a favor del cliente.
type CreditNoteUseCase struct {
	txRunner repository.TxRunner
	repos    repository.Repos
	ledger   ClientLedger
	log      zerolog.Logger
}

// NewCreditNoteUseCase construye el caso de uso.
func NewCreditNoteUseCase(txRunner repository.TxRunner, repos repository.Repos, ledger ClientLedger, log zerolog.Logger) *CreditNoteUseCase {
	return &CreditNoteUseCase{txRunner: txRunner, repos: repos, ledger: ledger, log: log}
}

// Create nota crédito en DRAFT.
func (uc *CreditNoteUseCase) Create(ctx context.Context, actor policy.Actor, in dto.CreateCreditNoteRequest) (*dto.CreditNoteResponse, error) {
	if err := policy.Authorize(actor, policy.IssueCreditNote, nil); err != nil {
		return nil, err
	}
	if !in.Amount.IsPositive() {
		return nil, domain.Invalid("amount", "debe ser mayor que cero")
	}
	if in.Reason == "" {
		return nil, domain.Invalid("reason", "es obligatoria")
	}
	var cn *entity.CreditNote
	err := uc.txRunner.Run(ctx, func(tx repository.Repos) error {
		if _, err := tx.Clients().GetByID(ctx, in.ClientID); err != nil {
			return err
		}
		if in.InvoiceID != "" {
			if err := invoiceOfClient(ctx, tx, in.InvoiceID, in.ClientID); err != nil {
				return err
			}
		}
		now := time.Now()
		number, err := numbering.Next(ctx, tx.Sequences(), numbering.CreditNote, now)
		if err != nil {
			return err
		}
		cn = &entity.CreditNote{
			ID:               uuid.New().String(),
			CreditNoteNumber: number,
			ClientID:         in.ClientID,
			InvoiceID:        in.InvoiceID,
			Amount:           in.Amount.Round(2),
			Reason:           in.Reason,
			IssuedBy:         actor.ID,
			ValidUntil:       in.ValidUntil,
			Status:           entity.CreditNoteDraft,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		return tx.CreditNotes().Create(ctx, cn)
	})
	if err != nil {
		return nil, err
	}
	out := dto.ToCreditNoteResponse(cn)
	return &out, nil
}

// Get devuelve una nota crédito.
func (uc *CreditNoteUseCase) Get(ctx context.Context, id string) (*dto.CreditNoteResponse, error) {
	cn, err := uc.repos.CreditNotes().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.ToCreditNoteResponse(cn)
	return &out, nil
}

// ListByClient notas crédito de un cliente.
func (uc *CreditNoteUseCase) ListByClient(ctx context.Context, clientID string) ([]dto.CreditNoteResponse, error) {
	list, err := uc.repos.CreditNotes().ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CreditNoteResponse, 0, len(list))
	for _, cn := range list {
		out = append(out, dto.ToCreditNoteResponse(cn))
	}
	return out, nil
}

// Issue DRAFT -> ISSUED.
func (uc *CreditNoteUseCase) Issue(ctx context.Context, actor policy.Actor, id string) (*dto.CreditNoteResponse, error) {
	return uc.mutate(ctx, actor, policy.IssueCreditNote, id, func(_ repository.Repos, cn *entity.CreditNote, _ time.Time) error {
		return billing.IssueCreditNote(cn)
	})
}

// Apply aplica la nota a una factura del mismo cliente y resta su monto del saldo del cliente.
// Una nota ya aplicada o anulada falla con TransitionError y no toca el saldo.
func (uc *CreditNoteUseCase) Apply(ctx context.Context, actor policy.Actor, id string, in dto.ApplyCreditNoteRequest) (*dto.CreditNoteResponse, error) {
	return uc.mutate(ctx, actor, policy.ApplyCreditNote, id, func(tx repository.Repos, cn *entity.CreditNote, now time.Time) error {
		invoiceID := in.InvoiceID
		if invoiceID == "" {
			invoiceID = cn.InvoiceID
		}
		if invoiceID == "" {
			return domain.Invalid("invoice_id", "es obligatoria")
		}
		if err := billing.ApplyCreditNote(cn, invoiceID, actor.ID, now); err != nil {
			return err
		}
		if err := invoiceOfClient(ctx, tx, invoiceID, cn.ClientID); err != nil {
			return err
		}
		return uc.ledger.UpdateBalanceInTx(ctx, tx, cn.ClientID, cn.Amount.Neg(), cn.CreditNoteNumber, actor.ID)
	})
}

// Cancel anula una nota no aplicada.
func (uc *CreditNoteUseCase) Cancel(ctx context.Context, actor policy.Actor, id string) (*dto.CreditNoteResponse, error) {
	return uc.mutate(ctx, actor, policy.IssueCreditNote, id, func(_ repository.Repos, cn *entity.CreditNote, _ time.Time) error {
		return billing.CancelCreditNote(cn)
	})
}

func (uc *CreditNoteUseCase) mutate(ctx context.Context, actor policy.Actor, action policy.Action, id string, apply func(tx repository.Repos, cn *entity.CreditNote, now time.Time) error) (*dto.CreditNoteResponse, error) {
	if err := policy.Authorize(actor, action, nil); err != nil {
		return nil, err
	}
	var cn *entity.CreditNote
	err := uc.txRunner.Run(ctx, func(tx repository.Repos) error {
		var err error
		cn, err = tx.CreditNotes().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		from := cn.Status
		now := time.Now()
		if err := apply(tx, cn, now); err != nil {
			return err
		}
		cn.UpdatedAt = now
		if err := tx.CreditNotes().Update(ctx, cn); err != nil {
			return err
		}
		uc.log.Info().Str("credit_note", cn.CreditNoteNumber).Str("from", from).Str("to", cn.Status).Msg("nota crédito actualizada")
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := dto.ToCreditNoteResponse(cn)
	return &out, nil
}

func invoiceOfClient(ctx context.Context, tx repository.Repos, invoiceID, clientID string) error {
	inv, err := tx.Invoices().GetByID(ctx, invoiceID)
	if err != nil {
		return err
	}
	if inv.ClientID != clientID {
		return domain.Invalid("invoice_id", "la factura es de otro cliente")
	}
	return nil
}
