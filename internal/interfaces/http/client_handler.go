package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Chrisx-39/FormMaster/internal/application/clients"
	"github.com/Chrisx-39/FormMaster/internal/application/dto"
	"github.com/Chrisx-39/FormMaster/internal/domain/repository"
)

// ClientHandler maneja clientes, crédito y lista negra.
type ClientHandler struct {
	uc *clients.ClientUseCase
}

// NewClientHandler construye el handler.
func NewClientHandler(uc *clients.ClientUseCase) *ClientHandler {
	return &ClientHandler{uc: uc}
}

type notesRequest struct {
	Notes string `json:"notes"`
}

// Create godoc
// @Summary      Crear cliente
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateClientRequest  true  "cliente"
// @Success      201   {object}  dto.ClientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/clients [post]
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateClientRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/clients?status=&q=&limit=&offset=
func (h *ClientHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), repository.ClientFilter{
		Status: c.Query("status"),
		Search: c.Query("q"),
		Limit:  c.QueryInt("limit"),
		Offset: c.QueryInt("offset"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID GET /api/clients/:id
func (h *ClientHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/clients/:id
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateClientRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ChangeStatus POST /api/clients/:id/status
func (h *ClientHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.ChangeClientStatusRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.ChangeStatus(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateCreditLimit POST /api/clients/:id/credit-limit
func (h *ClientHandler) UpdateCreditLimit(c *fiber.Ctx) error {
	var in dto.CreditLimitRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateCreditLimit(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Blacklist POST /api/clients/:id/blacklist
func (h *ClientHandler) Blacklist(c *fiber.Ctx) error {
	var in dto.BlacklistRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Blacklist(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Reinstate POST /api/clients/:id/reinstate
func (h *ClientHandler) Reinstate(c *fiber.Ctx) error {
	var in notesRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Reinstate(c.UserContext(), GetActor(c), c.Params("id"), in.Notes)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreditSummary GET /api/clients/:id/credit
func (h *ClientHandler) CreditSummary(c *fiber.Ctx) error {
	out, err := h.uc.CreditSummary(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// History GET /api/clients/:id/history
func (h *ClientHandler) History(c *fiber.Ctx) error {
	out, err := h.uc.History(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddContact POST /api/clients/:id/contacts
func (h *ClientHandler) AddContact(c *fiber.Ctx) error {
	var in dto.CreateContactRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.AddContact(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListContacts GET /api/clients/:id/contacts
func (h *ClientHandler) ListContacts(c *fiber.Ctx) error {
	out, err := h.uc.ListContacts(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeactivateContact POST /api/client-contacts/:id/deactivate
func (h *ClientHandler) DeactivateContact(c *fiber.Ctx) error {
	out, err := h.uc.DeactivateContact(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddSite POST /api/clients/:id/sites
func (h *ClientHandler) AddSite(c *fiber.Ctx) error {
	var in dto.CreateSiteRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.AddSite(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListSites GET /api/clients/:id/sites
func (h *ClientHandler) ListSites(c *fiber.Ctx) error {
	out, err := h.uc.ListSites(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetMainSite POST /api/client-sites/:id/main
func (h *ClientHandler) SetMainSite(c *fiber.Ctx) error {
	out, err := h.uc.SetMainSite(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddNote POST /api/clients/:id/notes
func (h *ClientHandler) AddNote(c *fiber.Ctx) error {
	var in dto.CreateNoteRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.AddNote(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListNotes GET /api/clients/:id/notes?open=true
func (h *ClientHandler) ListNotes(c *fiber.Ctx) error {
	out, err := h.uc.ListNotes(c.UserContext(), c.Params("id"), c.QueryBool("open"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ResolveNote POST /api/client-notes/:id/resolve
func (h *ClientHandler) ResolveNote(c *fiber.Ctx) error {
	var in dto.ResolveNoteRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.ResolveNote(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Rate POST /api/clients/:id/ratings
func (h *ClientHandler) Rate(c *fiber.Ctx) error {
	var in dto.CreateRatingRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Rate(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Ratings GET /api/clients/:id/ratings
func (h *ClientHandler) Ratings(c *fiber.Ctx) error {
	out, err := h.uc.Ratings(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
