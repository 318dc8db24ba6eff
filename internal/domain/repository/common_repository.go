package repository

import (
	"context"

	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	ListByRole(ctx context.Context, role string) ([]*entity.User, error)
}

// SequenceRepository contador atómico de numeración (implementa numbering.Sequencer).
type SequenceRepository interface {
	NextValue(ctx context.Context, prefix string, year int) (int64, error)
}

// DocumentRepository registro de PDFs generados.
type DocumentRepository interface {
	Create(ctx context.Context, d *entity.GeneratedDocument) error
	GetLatest(ctx context.Context, docType, referenceID string) (*entity.GeneratedDocument, error)
	CreateLog(ctx context.Context, l *entity.DocumentLog) error
	// ListLogs actividad de todas las versiones generadas para la referencia, más reciente primero.
	ListLogs(ctx context.Context, docType, referenceID string) ([]*entity.DocumentLog, error)
}
