package dto

import (
	"time"

	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
)

// DocumentResponse metadatos de un PDF generado.
type DocumentResponse struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	ReferenceID string    `json:"reference_id"`
	Reference   string    `json:"reference"`
	ObjectKey   string    `json:"object_key"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToDocumentResponse convierte la entidad.
func ToDocumentResponse(d *entity.GeneratedDocument) DocumentResponse {
	return DocumentResponse{
		ID:          d.ID,
		Type:        d.Type,
		ReferenceID: d.ReferenceID,
		Reference:   d.Reference,
		ObjectKey:   d.ObjectKey,
		ContentType: d.ContentType,
		Size:        d.Size,
		CreatedBy:   d.CreatedBy,
		CreatedAt:   d.CreatedAt,
	}
}

// DocumentLogResponse actividad sobre un documento.
type DocumentLogResponse struct {
	DocumentID  string    `json:"document_id"`
	Action      string    `json:"action"`
	PerformedBy string    `json:"performed_by"`
	IPAddress   string    `json:"ip_address,omitempty"`
	UserAgent   string    `json:"user_agent,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToDocumentLogResponse convierte la entidad.
func ToDocumentLogResponse(l *entity.DocumentLog) DocumentLogResponse {
	return DocumentLogResponse{
		DocumentID:  l.DocumentID,
		Action:      l.Action,
		PerformedBy: l.PerformedBy,
		IPAddress:   l.IPAddress,
		UserAgent:   l.UserAgent,
		Notes:       l.Notes,
		CreatedAt:   l.CreatedAt,
	}
}

// DocumentAccess quién descarga un documento, para el registro de actividad.
type DocumentAccess struct {
	UserID    string
	IPAddress string
	UserAgent string
}
