package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/restaurant-console/internal/api/dto"
	"github.com/spec-kit/restaurant-console/internal/backend"
	"github.com/spec-kit/restaurant-console/internal/domain"
)

// MenuHandler serves menu and addition maintenance.
type MenuHandler struct {
	sessions Sessions
	api      *backend.Client
}

// NewMenuHandler constructs handler.
func NewMenuHandler(sessions Sessions, api *backend.Client) *MenuHandler {
	return &MenuHandler{sessions: sessions, api: api}
}

// List handles GET /menu.
func (h *MenuHandler) List(c *fiber.Ctx) error {
	items, err := h.api.ListMenu(c.UserContext())
	if err != nil {
		return upstreamError(c, h.sessions, err)
	}
	return c.JSON(fiber.Map{"data": items})
}

// Create handles POST /menu.
func (h *MenuHandler) Create(c *fiber.Ctx) error {
	item, err := h.menuItemFromBody(c)
	if err != nil {
		return err
	}
	if err := h.api.CreateMenuItem(c.UserContext(), item); err != nil {
		return upstreamError(c, h.sessions, err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": item})
}

// Update handles PUT /menu.
func (h *MenuHandler) Update(c *fiber.Ctx) error {
	item, err := h.menuItemFromBody(c)
	if err != nil {
		return err
	}
	if item.ID == "" {
		return fiber.NewError(http.StatusBadRequest, "menu item id required")
	}
	if err := h.api.UpdateMenuItem(c.UserContext(), item); err != nil {
		return upstreamError(c, h.sessions, err)
	}
	return c.JSON(fiber.Map{"data": item})
}

// Delete handles DELETE /menu/:id.
func (h *MenuHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.api.DeleteMenuItem(c.UserContext(), id); err != nil {
		return upstreamError(c, h.sessions, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// ListAdditions handles GET /additions.
func (h *MenuHandler) ListAdditions(c *fiber.Ctx) error {
	additions, err := h.api.ListAdditions(c.UserContext())
	if err != nil {
		return upstreamError(c, h.sessions, err)
	}
	return c.JSON(fiber.Map{"data": additions})
}

// CreateAddition handles POST /additions.
func (h *MenuHandler) CreateAddition(c *fiber.Ctx) error {
	var req dto.AdditionRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := validate(&req); err != nil {
		return err
	}
	addition := domain.Addition{Name: req.Name, Price: req.Price}
	if err := h.api.CreateAddition(c.UserContext(), addition); err != nil {
		return upstreamError(c, h.sessions, err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": addition})
}

func (h *MenuHandler) menuItemFromBody(c *fiber.Ctx) (domain.MenuItem, error) {
	var req dto.MenuItemRequest
	if err := parseBody(c, &req); err != nil {
		return domain.MenuItem{}, err
	}
	if err := validate(&req); err != nil {
		return domain.MenuItem{}, err
	}
	return domain.MenuItem{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Type:        domain.MenuItemType(req.Type),
	}, nil
}
