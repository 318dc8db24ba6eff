package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Chrisx-39/FormMaster/internal/application/dto"
	"github.com/Chrisx-39/FormMaster/internal/application/hiring"
	"github.com/Chrisx-39/FormMaster/internal/domain/repository"
)

// HiringHandler ciclo comercial: RFQ, cotización, orden de alquiler y contrato.
type HiringHandler struct {
	rfqs       *hiring.RFQUseCase
	quotations *hiring.QuotationUseCase
	orders     *hiring.OrderUseCase
	leases     *hiring.LeaseUseCase
}

// NewHiringHandler construye el handler.
func NewHiringHandler(rfqs *hiring.RFQUseCase, quotations *hiring.QuotationUseCase, orders *hiring.OrderUseCase, leases *hiring.LeaseUseCase) *HiringHandler {
	return &HiringHandler{rfqs: rfqs, quotations: quotations, orders: orders, leases: leases}
}

// listFilter ?status=&client_id=&limit=&offset=
func listFilter(c *fiber.Ctx) repository.ListFilter {
	return repository.ListFilter{
		Status:   c.Query("status"),
		ClientID: c.Query("client_id"),
		Limit:    c.QueryInt("limit"),
		Offset:   c.QueryInt("offset"),
	}
}

// ── RFQ ─────────────────────────────────────────────────────────────────────

// CreateRFQ godoc
// @Summary      Registrar solicitud de cotización
// @Tags         hiring
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RFQRequest  true  "RFQ"
// @Success      201   {object}  dto.RFQResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/rfqs [post]
func (h *HiringHandler) CreateRFQ(c *fiber.Ctx) error {
	var in dto.RFQRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.rfqs.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListRFQs GET /api/rfqs
func (h *HiringHandler) ListRFQs(c *fiber.Ctx) error {
	out, err := h.rfqs.List(c.UserContext(), listFilter(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetRFQ GET /api/rfqs/:id
func (h *HiringHandler) GetRFQ(c *fiber.Ctx) error {
	out, err := h.rfqs.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateRFQ PUT /api/rfqs/:id
func (h *HiringHandler) UpdateRFQ(c *fiber.Ctx) error {
	var in dto.RFQRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.rfqs.Update(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// QuoteRFQ POST /api/rfqs/:id/quotation
func (h *HiringHandler) QuoteRFQ(c *fiber.Ctx) error {
	var in dto.QuotationFromRFQRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.quotations.CreateFromRFQ(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ── Cotizaciones ────────────────────────────────────────────────────────────

// CreateQuotation POST /api/quotations
func (h *HiringHandler) CreateQuotation(c *fiber.Ctx) error {
	var in dto.CreateQuotationRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.quotations.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListQuotations GET /api/quotations
func (h *HiringHandler) ListQuotations(c *fiber.Ctx) error {
	out, err := h.quotations.List(c.UserContext(), listFilter(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetQuotation GET /api/quotations/:id
func (h *HiringHandler) GetQuotation(c *fiber.Ctx) error {
	out, err := h.quotations.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateQuotation PUT /api/quotations/:id
func (h *HiringHandler) UpdateQuotation(c *fiber.Ctx) error {
	var in dto.UpdateQuotationRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.quotations.Update(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ApproveQuotation POST /api/quotations/:id/approve (DRAFT → SENT, publica el PDF).
func (h *HiringHandler) ApproveQuotation(c *fiber.Ctx) error {
	out, err := h.quotations.Approve(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AcceptQuotation POST /api/quotations/:id/accept
func (h *HiringHandler) AcceptQuotation(c *fiber.Ctx) error {
	out, err := h.quotations.Accept(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RejectQuotation POST /api/quotations/:id/reject
func (h *HiringHandler) RejectQuotation(c *fiber.Ctx) error {
	out, err := h.quotations.Reject(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ── Órdenes ─────────────────────────────────────────────────────────────────

// CreateOrder godoc
// @Summary      Convertir cotización aceptada en orden
// @Tags         hiring
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "cotización"
// @Param        body  body  dto.CreateOrderRequest  true  "fechas de la orden"
// @Success      201   {object}  dto.OrderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/quotations/{id}/order [post]
func (h *HiringHandler) CreateOrder(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.orders.CreateFromQuotation(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListOrders GET /api/orders
func (h *HiringHandler) ListOrders(c *fiber.Ctx) error {
	out, err := h.orders.List(c.UserContext(), listFilter(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetOrder GET /api/orders/:id
func (h *HiringHandler) GetOrder(c *fiber.Ctx) error {
	out, err := h.orders.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ApproveOrder POST /api/orders/:id/approve
func (h *HiringHandler) ApproveOrder(c *fiber.Ctx) error {
	out, err := h.orders.Approve(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ActivateOrder POST /api/orders/:id/activate
func (h *HiringHandler) ActivateOrder(c *fiber.Ctx) error {
	out, err := h.orders.Activate(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CompleteOrder POST /api/orders/:id/complete
func (h *HiringHandler) CompleteOrder(c *fiber.Ctx) error {
	out, err := h.orders.Complete(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CancelOrder POST /api/orders/:id/cancel
func (h *HiringHandler) CancelOrder(c *fiber.Ctx) error {
	out, err := h.orders.Cancel(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DispatchOrder POST /api/orders/:id/dispatch
func (h *HiringHandler) DispatchOrder(c *fiber.Ctx) error {
	var in dto.DispatchRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.orders.Dispatch(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ReturnOrder POST /api/orders/:id/return
func (h *HiringHandler) ReturnOrder(c *fiber.Ctx) error {
	var in dto.ReturnRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.orders.Return(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ── Contrato ────────────────────────────────────────────────────────────────

// CreateLease POST /api/orders/:id/lease
func (h *HiringHandler) CreateLease(c *fiber.Ctx) error {
	var in dto.LeaseRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.leases.Create(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetLease GET /api/orders/:id/lease
func (h *HiringHandler) GetLease(c *fiber.Ctx) error {
	out, err := h.leases.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SignLease POST /api/orders/:id/lease/sign?by=client|manager
func (h *HiringHandler) SignLease(c *fiber.Ctx) error {
	var (
		out *dto.LeaseResponse
		err error
	)
	switch c.Query("by", "client") {
	case "client":
		out, err = h.leases.SignByClient(c.UserContext(), GetActor(c), c.Params("id"))
	case "manager":
		out, err = h.leases.SignByManager(c.UserContext(), GetActor(c), c.Params("id"))
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "by debe ser client o manager"})
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
