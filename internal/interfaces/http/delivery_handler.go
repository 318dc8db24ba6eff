package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Chrisx-39/FormMaster/internal/application/delivery"
	"github.com/Chrisx-39/FormMaster/internal/application/dto"
)

// DeliveryHandler solicitudes de transporte, entregas, notas de entrega y GRV.
type DeliveryHandler struct {
	transport  *delivery.TransportUseCase
	deliveries *delivery.DeliveryUseCase
}

// NewDeliveryHandler construye el handler.
func NewDeliveryHandler(transport *delivery.TransportUseCase, deliveries *delivery.DeliveryUseCase) *DeliveryHandler {
	return &DeliveryHandler{transport: transport, deliveries: deliveries}
}

// CreateTransport godoc
// @Summary      Solicitar transporte para una orden
// @Tags         delivery
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransportRequestRequest  true  "solicitud"
// @Success      201   {object}  dto.TransportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/transport-requests [post]
func (h *DeliveryHandler) CreateTransport(c *fiber.Ctx) error {
	var in dto.TransportRequestRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.transport.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListTransport GET /api/transport-requests
func (h *DeliveryHandler) ListTransport(c *fiber.Ctx) error {
	out, err := h.transport.List(c.UserContext(), listFilter(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetTransport GET /api/transport-requests/:id
func (h *DeliveryHandler) GetTransport(c *fiber.Ctx) error {
	out, err := h.transport.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// TransportAction POST /api/transport-requests/:id/:action (approve, reject, complete, cancel).
func (h *DeliveryHandler) TransportAction(c *fiber.Ctx) error {
	ctx, actor, id := c.UserContext(), GetActor(c), c.Params("id")
	var (
		out *dto.TransportResponse
		err error
	)
	switch c.Params("action") {
	case "approve":
		out, err = h.transport.Approve(ctx, actor, id)
	case "reject":
		out, err = h.transport.Reject(ctx, actor, id)
	case "complete":
		out, err = h.transport.Complete(ctx, actor, id)
	case "cancel":
		out, err = h.transport.Cancel(ctx, actor, id)
	default:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "acción desconocida: " + c.Params("action")})
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AssignDriver POST /api/transport-requests/:id/assign
func (h *DeliveryHandler) AssignDriver(c *fiber.Ctx) error {
	var in dto.AssignDriverRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.transport.AssignDriver(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateDelivery POST /api/deliveries (crea también la nota de entrega).
func (h *DeliveryHandler) CreateDelivery(c *fiber.Ctx) error {
	var in dto.CreateDeliveryRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.deliveries.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetDelivery GET /api/deliveries/:id
func (h *DeliveryHandler) GetDelivery(c *fiber.Ctx) error {
	out, err := h.deliveries.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListByOrder GET /api/orders/:id/deliveries
func (h *DeliveryHandler) ListByOrder(c *fiber.Ctx) error {
	out, err := h.deliveries.ListByOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ChangeStatus POST /api/deliveries/:id/status
func (h *DeliveryHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.DeliveryStatusRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.deliveries.ChangeStatus(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SignNote POST /api/deliveries/:id/note/sign
func (h *DeliveryHandler) SignNote(c *fiber.Ctx) error {
	var in dto.SignNoteRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.deliveries.SignNote(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateGRV godoc
// @Summary      Registrar comprobante de recepción de una devolución
// @Tags         delivery
// @Accept       json
// @Produce      json
// @Param        id    path  string          true  "entrega de devolución"
// @Param        body  body  dto.GRVRequest  true  "cantidades recibidas"
// @Success      201   {object}  dto.GRVResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id}/grv [post]
func (h *DeliveryHandler) CreateGRV(c *fiber.Ctx) error {
	var in dto.GRVRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.deliveries.CreateGRV(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetGRV GET /api/grvs/:id
func (h *DeliveryHandler) GetGRV(c *fiber.Ctx) error {
	out, err := h.deliveries.GetGRV(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListGRVByOrder GET /api/orders/:id/grvs
func (h *DeliveryHandler) ListGRVByOrder(c *fiber.Ctx) error {
	out, err := h.deliveries.ListGRVByOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
