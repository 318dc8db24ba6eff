package entity

import "time"

// Tipos de documento generado.
const (
	DocumentQuotation    = "QUOTATION"
	DocumentInvoice      = "INVOICE"
	DocumentDeliveryNote = "DELIVERY_NOTE"
)

// GeneratedDocument PDF generado y guardado en el almacenamiento de objetos.
type GeneratedDocument struct {
	ID          string
	Type        string
	ReferenceID string
	Reference   string // número del documento de origen (QT-..., INV-...)
	ObjectKey   string
	ContentType string
	Size        int64
	CreatedBy   string
	CreatedAt   time.Time
}

// Acciones registradas sobre un documento.
const (
	DocumentActionGenerated  = "GENERATED"
	DocumentActionDownloaded = "DOWNLOADED"
)

// DocumentLog actividad sobre un documento generado.
type DocumentLog struct {
	ID          string
	DocumentID  string
	Action      string
	PerformedBy string
	IPAddress   string
	UserAgent   string
	Notes       string
	CreatedAt   time.Time
}
