package hiring

import (
	"time"

	"github.com/Chrisx-39/FormMaster/internal/domain"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
)

// IsFullySigned el contrato necesita la firma del cliente y la de gerencia.
func IsFullySigned(la *entity.LeaseAgreement) bool {
	return la.SignedByClient && la.SignedByFSM
}

// SignLeaseByClient registra la firma del cliente; activa el contrato si ya estaba firmado por gerencia.
func SignLeaseByClient(la *entity.LeaseAgreement, at time.Time) error {
	if la.Status != entity.LeaseStatusDraft {
		return &domain.TransitionError{Entity: "lease_agreement", From: la.Status, To: entity.LeaseStatusActive}
	}
	la.SignedByClient = true
	la.ClientSignatureDate = &at
	activateIfSigned(la)
	return nil
}

// SignLeaseByManager registra la firma de gerencia.
func SignLeaseByManager(la *entity.LeaseAgreement, userID string, at time.Time) error {
	if la.Status != entity.LeaseStatusDraft {
		return &domain.TransitionError{Entity: "lease_agreement", From: la.Status, To: entity.LeaseStatusActive}
	}
	la.SignedByFSM = true
	la.FSMSignedBy = userID
	la.FSMSignatureDate = &at
	activateIfSigned(la)
	return nil
}

// CloseLease ACTIVE -> COMPLETED o TERMINATED.
func CloseLease(la *entity.LeaseAgreement, to string) error {
	if la.Status != entity.LeaseStatusActive ||
		(to != entity.LeaseStatusCompleted && to != entity.LeaseStatusTerminated) {
		return &domain.TransitionError{Entity: "lease_agreement", From: la.Status, To: to}
	}
	la.Status = to
	return nil
}

func activateIfSigned(la *entity.LeaseAgreement) {
	if IsFullySigned(la) {
		la.Status = entity.LeaseStatusActive
	}
}
