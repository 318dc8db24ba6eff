package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/Chrisx-39/FormMaster/internal/application/analytics"
	"github.com/Chrisx-39/FormMaster/internal/application/lookup"
)

// DashboardHandler maneja el tablero y los buscadores rápidos.
type DashboardHandler struct {
	uc     *appanalytics.DashboardUseCase
	lookup *lookup.UseCase
	now    func() time.Time
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, lookupUC *lookup.UseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc, lookup: lookupUC, now: time.Now}
}

// GetSummary métricas del negocio: órdenes activas, vencidas, cartera, ingresos del mes,
// stock bajo y utilización del inventario.
// GET /api/dashboard
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext(), h.now())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// LookupClients GET /api/lookup/clients?q=
func (h *DashboardHandler) LookupClients(c *fiber.Ctx) error {
	items, err := h.lookup.Clients(c.UserContext(), c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

// LookupOrders GET /api/lookup/orders?q=
func (h *DashboardHandler) LookupOrders(c *fiber.Ctx) error {
	items, err := h.lookup.Orders(c.UserContext(), c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}
