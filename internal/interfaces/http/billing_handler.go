package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Chrisx-39/FormMaster/internal/application/billing"
	"github.com/Chrisx-39/FormMaster/internal/application/dto"
)

// BillingHandler facturas, pagos y notas crédito (protegido).
type BillingHandler struct {
	invoices    *billing.InvoiceUseCase
	payments    *billing.PaymentUseCase
	creditNotes *billing.CreditNoteUseCase
}

// NewBillingHandler construye el handler.
func NewBillingHandler(invoices *billing.InvoiceUseCase, payments *billing.PaymentUseCase, creditNotes *billing.CreditNoteUseCase) *BillingHandler {
	return &BillingHandler{invoices: invoices, payments: payments, creditNotes: creditNotes}
}

// CreateInvoice godoc
// @Summary      Crear factura en borrador para una orden
// @Tags         billing
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "orden"
// @Param        body  body  dto.CreateInvoiceRequest  true  "tipo y subtotal"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/invoices [post]
func (h *BillingHandler) CreateInvoice(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.invoices.Create(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListInvoices GET /api/invoices?status=&client_id=
func (h *BillingHandler) ListInvoices(c *fiber.Ctx) error {
	out, err := h.invoices.List(c.UserContext(), listFilter(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListOrderInvoices GET /api/orders/:id/invoices
func (h *BillingHandler) ListOrderInvoices(c *fiber.Ctx) error {
	out, err := h.invoices.ListByOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetInvoice GET /api/invoices/:id
func (h *BillingHandler) GetInvoice(c *fiber.Ctx) error {
	out, err := h.invoices.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// InvoiceAction POST /api/invoices/:id/:action (issue, send, cancel).
func (h *BillingHandler) InvoiceAction(c *fiber.Ctx) error {
	ctx, actor, id := c.UserContext(), GetActor(c), c.Params("id")
	var (
		out *dto.InvoiceResponse
		err error
	)
	switch c.Params("action") {
	case "issue":
		out, err = h.invoices.Issue(ctx, actor, id)
	case "send":
		out, err = h.invoices.Send(ctx, actor, id)
	case "cancel":
		out, err = h.invoices.Cancel(ctx, actor, id)
	default:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "acción desconocida: " + c.Params("action")})
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RecordPayment POST /api/invoices/:id/payments
func (h *BillingHandler) RecordPayment(c *fiber.Ctx) error {
	var in dto.RecordPaymentRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.payments.Record(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListPayments GET /api/invoices/:id/payments
func (h *BillingHandler) ListPayments(c *fiber.Ctx) error {
	out, err := h.payments.ListByInvoice(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ConfirmPayment POST /api/payments/:id/confirm
func (h *BillingHandler) ConfirmPayment(c *fiber.Ctx) error {
	out, err := h.payments.Confirm(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateCreditNote POST /api/credit-notes
func (h *BillingHandler) CreateCreditNote(c *fiber.Ctx) error {
	var in dto.CreateCreditNoteRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.creditNotes.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetCreditNote GET /api/credit-notes/:id
func (h *BillingHandler) GetCreditNote(c *fiber.Ctx) error {
	out, err := h.creditNotes.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListClientCreditNotes GET /api/clients/:id/credit-notes
func (h *BillingHandler) ListClientCreditNotes(c *fiber.Ctx) error {
	out, err := h.creditNotes.ListByClient(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// IssueCreditNote POST /api/credit-notes/:id/issue
func (h *BillingHandler) IssueCreditNote(c *fiber.Ctx) error {
	out, err := h.creditNotes.Issue(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ApplyCreditNote POST /api/credit-notes/:id/apply
func (h *BillingHandler) ApplyCreditNote(c *fiber.Ctx) error {
	var in dto.ApplyCreditNoteRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.creditNotes.Apply(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CancelCreditNote POST /api/credit-notes/:id/cancel
func (h *BillingHandler) CancelCreditNote(c *fiber.Ctx) error {
	out, err := h.creditNotes.Cancel(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
