package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Chrisx-39/FormMaster/internal/application/documents"
	"github.com/Chrisx-39/FormMaster/internal/application/dto"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
)

// DocumentHandler genera y descarga PDFs.
type DocumentHandler struct {
	uc *documents.UseCase
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(uc *documents.UseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

// QuotationPDF POST /api/quotations/:id/pdf
func (h *DocumentHandler) QuotationPDF(c *fiber.Ctx) error {
	doc, err := h.uc.PublishQuotation(c.UserContext(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToDocumentResponse(doc))
}

// InvoicePDF POST /api/invoices/:id/pdf
func (h *DocumentHandler) InvoicePDF(c *fiber.Ctx) error {
	out, err := h.uc.GenerateInvoice(c.UserContext(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeliveryNotePDF POST /api/deliveries/:id/note/pdf
func (h *DocumentHandler) DeliveryNotePDF(c *fiber.Ctx) error {
	out, err := h.uc.GenerateDeliveryNote(c.UserContext(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Download godoc
// @Summary      Descargar el último PDF de una referencia
// @Tags         documents
// @Produce      application/pdf
// @Param        type  path  string  true  "quotation | invoice | delivery_note"
// @Param        id    path  string  true  "id de la cotización, factura o entrega"
// @Success      200
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/documents/{type}/{id} [get]
func (h *DocumentHandler) Download(c *fiber.Ctx) error {
	docType, ok := documentType(c.Params("type"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tipo de documento desconocido: " + c.Params("type")})
	}
	content, filename, err := h.uc.Download(c.UserContext(), docType, c.Params("id"), dto.DocumentAccess{
		UserID:    GetUserID(c),
		IPAddress: c.IP(),
		UserAgent: c.Get(fiber.HeaderUserAgent),
	})
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(content)
}

// Logs GET /api/documents/:type/:id/logs
func (h *DocumentHandler) Logs(c *fiber.Ctx) error {
	docType, ok := documentType(c.Params("type"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tipo de documento desconocido: " + c.Params("type")})
	}
	out, err := h.uc.Logs(c.UserContext(), docType, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func documentType(raw string) (string, bool) {
	t := strings.ToUpper(raw)
	switch t {
	case entity.DocumentQuotation, entity.DocumentInvoice, entity.DocumentDeliveryNote:
		return t, true
	}
	return "", false
}
