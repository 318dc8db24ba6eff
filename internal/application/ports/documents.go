package ports

import (
	"context"

	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
)

// MaterialLine ítem con los datos del material ya resueltos para imprimir.
type MaterialLine struct {
	Code         string
	Name         string
	Unit         string
	Quantity     int
	DailyRate    string
	DurationDays int
	LineTotal    string
	Condition    string
}

// QuotationDocument datos que necesita el PDF de cotización.
type QuotationDocument struct {
	Quotation *entity.Quotation
	Client    *entity.Client
	Lines     []MaterialLine
	Currency  string
}

// InvoiceDocument datos que necesita el PDF de factura.
type InvoiceDocument struct {
	Invoice  *entity.Invoice
	Client   *entity.Client
	Order    *entity.HireOrder
	Lines    []MaterialLine
	Currency string
}

// DeliveryNoteDocument datos que necesita el PDF de nota de entrega.
type DeliveryNoteDocument struct {
	Note     *entity.DeliveryNote
	Delivery *entity.Delivery
	Order    *entity.HireOrder
	Client   *entity.Client
	Lines    []MaterialLine
}

// DocumentGenerator produce los PDFs de negocio. El diseño de página es asunto del adaptador.
type DocumentGenerator interface {
	QuotationPDF(ctx context.Context, doc QuotationDocument) ([]byte, error)
	InvoicePDF(ctx context.Context, doc InvoiceDocument) ([]byte, error)
	DeliveryNotePDF(ctx context.Context, doc DeliveryNoteDocument) ([]byte, error)
}

// DocumentStore almacenamiento de objetos para los PDFs generados.
type DocumentStore interface {
	Put(ctx context.Context, key string, content []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
}
