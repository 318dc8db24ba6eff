package postgres

import (
	"context"

	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo registro de PDFs generados.
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador.
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

func (r *DocumentRepo) Create(ctx context.Context, d *entity.GeneratedDocument) error {
	query := `
		INSERT INTO generated_documents (id, type, reference_id, reference, object_key, content_type, size, created_by, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`
	_, err := r.q.Exec(ctx, query, d.ID, d.Type, d.ReferenceID, d.Reference, d.ObjectKey, d.ContentType, d.Size, d.CreatedBy, d.CreatedAt)
	if err != nil {
		return wrapErr("insert document", err)
	}
	return nil
}

func (r *DocumentRepo) GetLatest(ctx context.Context, docType, referenceID string) (*entity.GeneratedDocument, error) {
	var d entity.GeneratedDocument
	err := r.q.QueryRow(ctx, `
		SELECT id, type, reference_id, reference, object_key, content_type, size, created_by, created_at
		FROM generated_documents WHERE type = $1 AND reference_id = $2
		ORDER BY created_at DESC LIMIT 1`, docType, referenceID).Scan(
		&d.ID, &d.Type, &d.ReferenceID, &d.Reference, &d.ObjectKey, &d.ContentType, &d.Size, &d.CreatedBy, &d.CreatedAt)
	if err != nil {
		return nil, wrapErr("get latest document", err)
	}
	return &d, nil
}

func (r *DocumentRepo) CreateLog(ctx context.Context, l *entity.DocumentLog) error {
	query := `
		INSERT INTO document_logs (id, document_id, action, performed_by, ip_address, user_agent, notes, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	_, err := r.q.Exec(ctx, query, l.ID, l.DocumentID, l.Action, l.PerformedBy, l.IPAddress, l.UserAgent, l.Notes, l.CreatedAt)
	if err != nil {
		return wrapErr("insert document log", err)
	}
	return nil
}

func (r *DocumentRepo) ListLogs(ctx context.Context, docType, referenceID string) ([]*entity.DocumentLog, error) {
	rows, err := r.q.Query(ctx, `
		SELECT l.id, l.document_id, l.action, l.performed_by, l.ip_address, l.user_agent, l.notes, l.created_at
		FROM document_logs l JOIN generated_documents d ON d.id = l.document_id
		WHERE d.type = $1 AND d.reference_id = $2
		ORDER BY l.created_at DESC LIMIT 200`, docType, referenceID)
	if err != nil {
		return nil, wrapErr("list document logs", err)
	}
	out, err := collect(rows, func(row rowScanner) (*entity.DocumentLog, error) {
		var l entity.DocumentLog
		err := row.Scan(&l.ID, &l.DocumentID, &l.Action, &l.PerformedBy, &l.IPAddress, &l.UserAgent, &l.Notes, &l.CreatedAt)
		return &l, err
	})
	if err != nil {
		return nil, wrapErr("scan document logs", err)
	}
	return out, nil
}
