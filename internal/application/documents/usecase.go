// Package documents genera los PDFs de negocio, los guarda en el almacenamiento de
// objetos y deja el registro GeneratedDocument junto con su actividad.
package documents

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Chrisx-39/FormMaster/internal/application/dto"
	"github.com/Chrisx-39/FormMaster/internal/application/ports"
	"github.com/Chrisx-39/FormMaster/internal/domain"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/domain/repository"
)

const contentTypePDF = "application/pdf"

// UseCase orquesta generador y almacenamiento.
type UseCase struct {
	repos     repository.Repos
	generator ports.DocumentGenerator
	store     ports.DocumentStore
	currency  string
	log       zerolog.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(repos repository.Repos, generator ports.DocumentGenerator, store ports.DocumentStore, currency string, log zerolog.Logger) *UseCase {
	return &UseCase{repos: repos, generator: generator, store: store, currency: currency, log: log}
}

// PublishQuotation genera el PDF de la cotización y lo guarda.
func (uc *UseCase) PublishQuotation(ctx context.Context, quotationID, userID string) (*entity.GeneratedDocument, error) {
	q, err := uc.repos.Quotations().GetByID(ctx, quotationID)
	if err != nil {
		return nil, fmt.Errorf("pdf cotización: obtener cotización: %w", err)
	}
	client, err := uc.repos.Clients().GetByID(ctx, q.ClientID)
	if err != nil {
		return nil, fmt.Errorf("pdf cotización: obtener cliente: %w", err)
	}
	lines, err := uc.quotationLines(ctx, q.Items)
	if err != nil {
		return nil, err
	}
	content, err := uc.generator.QuotationPDF(ctx, ports.QuotationDocument{
		Quotation: q,
		Client:    client,
		Lines:     lines,
		Currency:  uc.currency,
	})
	if err != nil {
		return nil, fmt.Errorf("pdf cotización: generación fallida: %w", err)
	}
	return uc.save(ctx, entity.DocumentQuotation, q.ID, q.QuotationNumber, content, userID)
}

// GenerateInvoice PDF de una factura ya emitida. Un borrador no se imprime.
func (uc *UseCase) GenerateInvoice(ctx context.Context, invoiceID, userID string) (*dto.DocumentResponse, error) {
	inv, err := uc.repos.Invoices().GetByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("pdf factura: obtener factura: %w", err)
	}
	if inv.PaymentStatus == entity.InvoiceStatusDraft {
		return nil, fmt.Errorf("%w: la factura %s está en borrador, emítala antes de generar el PDF",
			domain.ErrInvalidInput, inv.InvoiceNumber)
	}
	client, err := uc.repos.Clients().GetByID(ctx, inv.ClientID)
	if err != nil {
		return nil, fmt.Errorf("pdf factura: obtener cliente: %w", err)
	}
	order, err := uc.repos.Orders().GetByID(ctx, inv.HireOrderID)
	if err != nil {
		return nil, fmt.Errorf("pdf factura: obtener orden: %w", err)
	}
	var lines []ports.MaterialLine
	if inv.Type == entity.InvoiceTypeFinal {
		q, err := uc.repos.Quotations().GetByID(ctx, order.QuotationID)
		if err != nil {
			return nil, fmt.Errorf("pdf factura: obtener cotización: %w", err)
		}
		if lines, err = uc.quotationLines(ctx, q.Items); err != nil {
			return nil, err
		}
	}
	content, err := uc.generator.InvoicePDF(ctx, ports.InvoiceDocument{
		Invoice:  inv,
		Client:   client,
		Order:    order,
		Lines:    lines,
		Currency: uc.currency,
	})
	if err != nil {
		return nil, fmt.Errorf("pdf factura: generación fallida: %w", err)
	}
	doc, err := uc.save(ctx, entity.DocumentInvoice, inv.ID, inv.InvoiceNumber, content, userID)
	if err != nil {
		return nil, err
	}
	out := dto.ToDocumentResponse(doc)
	return &out, nil
}

// GenerateDeliveryNote PDF de la nota de entrega de una entrega.
func (uc *UseCase) GenerateDeliveryNote(ctx context.Context, deliveryID, userID string) (*dto.DocumentResponse, error) {
	d, err := uc.repos.Deliveries().GetByID(ctx, deliveryID)
	if err != nil {
		return nil, fmt.Errorf("pdf nota de entrega: obtener entrega: %w", err)
	}
	note, err := uc.repos.Deliveries().GetNoteByDelivery(ctx, d.ID)
	if err != nil {
		return nil, fmt.Errorf("pdf nota de entrega: obtener nota: %w", err)
	}
	order, err := uc.repos.Orders().GetByID(ctx, d.HireOrderID)
	if err != nil {
		return nil, fmt.Errorf("pdf nota de entrega: obtener orden: %w", err)
	}
	client, err := uc.repos.Clients().GetByID(ctx, order.ClientID)
	if err != nil {
		return nil, fmt.Errorf("pdf nota de entrega: obtener cliente: %w", err)
	}
	lines := make([]ports.MaterialLine, 0, len(note.Items))
	for _, it := range note.Items {
		line, err := uc.materialLine(ctx, it.MaterialID)
		if err != nil {
			return nil, err
		}
		line.Quantity = it.Quantity
		line.Condition = it.Condition
		lines = append(lines, line)
	}
	content, err := uc.generator.DeliveryNotePDF(ctx, ports.DeliveryNoteDocument{
		Note:     note,
		Delivery: d,
		Order:    order,
		Client:   client,
		Lines:    lines,
	})
	if err != nil {
		return nil, fmt.Errorf("pdf nota de entrega: generación fallida: %w", err)
	}
	doc, err := uc.save(ctx, entity.DocumentDeliveryNote, d.ID, note.NoteNumber, content, userID)
	if err != nil {
		return nil, err
	}
	out := dto.ToDocumentResponse(doc)
	return &out, nil
}

// Download último PDF generado para la referencia. Devuelve bytes y nombre de archivo.
// La descarga queda en el registro de actividad; si ese registro falla la descarga sigue.
func (uc *UseCase) Download(ctx context.Context, docType, referenceID string, access dto.DocumentAccess) ([]byte, string, error) {
	doc, err := uc.repos.Documents().GetLatest(ctx, docType, referenceID)
	if err != nil {
		return nil, "", err
	}
	content, err := uc.store.Get(ctx, doc.ObjectKey)
	if err != nil {
		return nil, "", fmt.Errorf("descargar documento %s: %w", doc.Reference, err)
	}
	if err := uc.logAction(ctx, doc, entity.DocumentActionDownloaded, access); err != nil {
		uc.log.Warn().Err(err).Str("reference", doc.Reference).Msg("no se registró la descarga")
	}
	return content, doc.Reference + ".pdf", nil
}

// Logs actividad de los documentos de la referencia, más reciente primero.
func (uc *UseCase) Logs(ctx context.Context, docType, referenceID string) ([]dto.DocumentLogResponse, error) {
	list, err := uc.repos.Documents().ListLogs(ctx, docType, referenceID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DocumentLogResponse, 0, len(list))
	for _, l := range list {
		out = append(out, dto.ToDocumentLogResponse(l))
	}
	return out, nil
}

func (uc *UseCase) logAction(ctx context.Context, doc *entity.GeneratedDocument, action string, access dto.DocumentAccess) error {
	return uc.repos.Documents().CreateLog(ctx, &entity.DocumentLog{
		ID:          uuid.New().String(),
		DocumentID:  doc.ID,
		Action:      action,
		PerformedBy: access.UserID,
		IPAddress:   access.IPAddress,
		UserAgent:   access.UserAgent,
		CreatedAt:   time.Now(),
	})
}

func (uc *UseCase) save(ctx context.Context, docType, referenceID, reference string, content []byte, userID string) (*entity.GeneratedDocument, error) {
	key := fmt.Sprintf("%s/%s.pdf", strings.ToLower(docType), reference)
	if err := uc.store.Put(ctx, key, content, contentTypePDF); err != nil {
		return nil, fmt.Errorf("guardar documento %s: %w", reference, err)
	}
	doc := &entity.GeneratedDocument{
		ID:          uuid.New().String(),
		Type:        docType,
		ReferenceID: referenceID,
		Reference:   reference,
		ObjectKey:   key,
		ContentType: contentTypePDF,
		Size:        int64(len(content)),
		CreatedBy:   userID,
		CreatedAt:   time.Now(),
	}
	if err := uc.repos.Documents().Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("registrar documento %s: %w", reference, err)
	}
	if err := uc.logAction(ctx, doc, entity.DocumentActionGenerated, dto.DocumentAccess{UserID: userID}); err != nil {
		return nil, fmt.Errorf("registrar actividad %s: %w", reference, err)
	}
	uc.log.Info().Str("type", docType).Str("reference", reference).Int64("size", doc.Size).Msg("documento generado")
	return doc, nil
}

func (uc *UseCase) quotationLines(ctx context.Context, items []entity.QuotationItem) ([]ports.MaterialLine, error) {
	lines := make([]ports.MaterialLine, 0, len(items))
	for _, it := range items {
		line, err := uc.materialLine(ctx, it.MaterialID)
		if err != nil {
			return nil, err
		}
		line.Quantity = it.Quantity
		line.DailyRate = it.DailyRate.StringFixed(2)
		line.DurationDays = it.DurationDays
		line.LineTotal = it.LineTotal.StringFixed(2)
		lines = append(lines, line)
	}
	return lines, nil
}

// materialLine datos del catálogo; si el material ya no existe se imprime el id.
func (uc *UseCase) materialLine(ctx context.Context, materialID string) (ports.MaterialLine, error) {
	m, err := uc.repos.Materials().GetByID(ctx, materialID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ports.MaterialLine{Code: materialID, Name: "Material " + materialID}, nil
		}
		return ports.MaterialLine{}, fmt.Errorf("obtener material: %w", err)
	}
	return ports.MaterialLine{Code: m.Code, Name: m.Name, Unit: m.UnitOfMeasure}, nil
}
