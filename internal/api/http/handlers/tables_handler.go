package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/restaurant-console/internal/api/dto"
	"github.com/spec-kit/restaurant-console/internal/backend"
)

// TablesHandler serves the table overview and order flows.
type TablesHandler struct {
	sessions Sessions
	api      *backend.Client
}

// NewTablesHandler constructs handler.
func NewTablesHandler(sessions Sessions, api *backend.Client) *TablesHandler {
	return &TablesHandler{sessions: sessions, api: api}
}

// List handles GET /tables.
func (h *TablesHandler) List(c *fiber.Ctx) error {
	tables, err := h.api.ListTables(c.UserContext())
	if err != nil {
		return upstreamError(c, h.sessions, err)
	}
	return c.JSON(fiber.Map{"data": tables})
}

// Create handles POST /tables.
func (h *TablesHandler) Create(c *fiber.Ctx) error {
	var req dto.TableCreateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := validate(&req); err != nil {
		return err
	}
	if err := h.api.CreateTable(c.UserContext(), req.Number); err != nil {
		return upstreamError(c, h.sessions, err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"tableNumber": req.Number}})
}

// ActiveOrders handles GET /tables/:number/orders.
func (h *TablesHandler) ActiveOrders(c *fiber.Ctx) error {
	number, err := c.ParamsInt("number")
	if err != nil || number <= 0 {
		return fiber.NewError(http.StatusBadRequest, "invalid table number")
	}
	orders, err := h.api.ActiveOrders(c.UserContext(), number)
	if err != nil {
		return upstreamError(c, h.sessions, err)
	}
	return c.JSON(fiber.Map{"data": orders})
}

// Finish handles POST /tables/:number/finish.
func (h *TablesHandler) Finish(c *fiber.Ctx) error {
	number, err := c.ParamsInt("number")
	if err != nil || number <= 0 {
		return fiber.NewError(http.StatusBadRequest, "invalid table number")
	}
	if err := h.api.FinishOrders(c.UserContext(), number); err != nil {
		return upstreamError(c, h.sessions, err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"tableNumber": number, "status": "finished"}})
}

// PlaceOrder handles POST /orders. Ordering for an occupied table extends
// its open order; the API decides which.
func (h *TablesHandler) PlaceOrder(c *fiber.Ctx) error {
	var req dto.OrderRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := validate(&req); err != nil {
		return err
	}

	order := backend.NewOrder{TableNumber: req.TableNumber, WaiterID: req.WaiterID}
	for _, item := range req.Items {
		order.Lines = append(order.Lines, backend.OrderLine{
			ItemID:       item.ItemID,
			AdditionIDs:  item.Additions,
			Observations: item.Observations,
		})
	}
	if err := h.api.PlaceOrder(c.UserContext(), order); err != nil {
		return upstreamError(c, h.sessions, err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"tableNumber": req.TableNumber, "items": len(order.Lines)}})
}
