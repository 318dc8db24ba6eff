package billing

import (
	"time"

	"github.com/Chrisx-39/FormMaster/internal/domain"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
)

// IssueCreditNote DRAFT -> ISSUED.
func IssueCreditNote(cn *entity.CreditNote) error {
	if cn.Status != entity.CreditNoteDraft {
		return &domain.TransitionError{Entity: "credit_note", From: cn.Status, To: entity.CreditNoteIssued}
	}
	cn.Status = entity.CreditNoteIssued
	return nil
}

// ApplyCreditNote marca la nota como aplicada a invoiceID. Una nota aplicada o anulada
// no se vuelve a aplicar. El ajuste del saldo del cliente lo hace quien llama.
func ApplyCreditNote(cn *entity.CreditNote, invoiceID, userID string, at time.Time) error {
	if cn.Status == entity.CreditNoteApplied || cn.Status == entity.CreditNoteCancelled {
		return &domain.TransitionError{Entity: "credit_note", From: cn.Status, To: entity.CreditNoteApplied}
	}
	if cn.ValidUntil != nil && dayOf(*cn.ValidUntil).Before(dayOf(at)) {
		return domain.Invalid("valid_until", "la nota crédito está vencida")
	}
	cn.Status = entity.CreditNoteApplied
	cn.AppliedToInvoice = invoiceID
	cn.AppliedDate = &at
	cn.AppliedBy = userID
	return nil
}

// CancelCreditNote solo notas no aplicadas.
func CancelCreditNote(cn *entity.CreditNote) error {
	if cn.Status == entity.CreditNoteApplied || cn.Status == entity.CreditNoteCancelled {
		return &domain.TransitionError{Entity: "credit_note", From: cn.Status, To: entity.CreditNoteCancelled}
	}
	cn.Status = entity.CreditNoteCancelled
	return nil
}
