package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/restaurant-console/internal/domain"
)

type idRef struct {
	ID string `json:"id"`
}

type tableRef struct {
	TableNumber int `json:"tableNumber"`
}

// OrderLine is one item of an order submission.
type OrderLine struct {
	ItemID       string
	AdditionIDs  []string
	Observations string
}

// NewOrder places or extends the order of a table.
type NewOrder struct {
	TableNumber int
	WaiterID    string
	Lines       []OrderLine
}

type orderLinePayload struct {
	Item         idRef   `json:"item"`
	Additions    []idRef `json:"additions"`
	Waiter       idRef   `json:"waiter"`
	Observations string  `json:"observations"`
}

type orderPayload struct {
	TableNumber tableRef           `json:"tableNumber"`
	TableOrders []orderLinePayload `json:"tableOrders"`
}

// UserInput carries the fields written when creating or updating a staff account.
type UserInput struct {
	ID       string      `json:"id,omitempty"`
	Name     string      `json:"name"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Password string      `json:"password,omitempty"`
	Role     domain.Role `json:"role"`
}

// Registration is the public sign-up payload. The API assigns the role.
type Registration struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ListTables returns every table with its status.
func (c *Client) ListTables(ctx context.Context) ([]domain.Table, error) {
	var tables []domain.Table
	if err := c.do(ctx, fiber.MethodGet, "/table", nil, &tables); err != nil {
		return nil, err
	}
	return tables, nil
}

// CreateTable registers a new table number.
func (c *Client) CreateTable(ctx context.Context, number int) error {
	return c.do(ctx, fiber.MethodPost, "/table", map[string]int{"number": number}, nil)
}

// ActiveOrders returns the open orders of a table. The API answers with a
// list, a single order, or nothing; all three are normalized to a slice.
func (c *Client) ActiveOrders(ctx context.Context, tableNumber int) ([]domain.Order, error) {
	var raw json.RawMessage
	if err := c.do(ctx, fiber.MethodGet, "/orders/active/"+strconv.Itoa(tableNumber), nil, &raw); err != nil {
		return nil, err
	}
	return decodeOrders(raw)
}

// FinishOrders closes the open orders of a table.
func (c *Client) FinishOrders(ctx context.Context, tableNumber int) error {
	return c.do(ctx, fiber.MethodPost, "/orders/finish/"+strconv.Itoa(tableNumber), nil, nil)
}

// PlaceOrder submits an order for a table.
func (c *Client) PlaceOrder(ctx context.Context, order NewOrder) error {
	payload := orderPayload{
		TableNumber: tableRef{TableNumber: order.TableNumber},
		TableOrders: make([]orderLinePayload, 0, len(order.Lines)),
	}
	for _, line := range order.Lines {
		additions := make([]idRef, 0, len(line.AdditionIDs))
		for _, id := range line.AdditionIDs {
			additions = append(additions, idRef{ID: id})
		}
		payload.TableOrders = append(payload.TableOrders, orderLinePayload{
			Item:         idRef{ID: line.ItemID},
			Additions:    additions,
			Waiter:       idRef{ID: order.WaiterID},
			Observations: line.Observations,
		})
	}
	return c.do(ctx, fiber.MethodPost, "/orders", payload, nil)
}

// ListMenu returns the menu.
func (c *Client) ListMenu(ctx context.Context) ([]domain.MenuItem, error) {
	var items []domain.MenuItem
	if err := c.do(ctx, fiber.MethodGet, "/menu", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateMenuItem adds a menu item.
func (c *Client) CreateMenuItem(ctx context.Context, item domain.MenuItem) error {
	return c.do(ctx, fiber.MethodPost, "/menu", item, nil)
}

// UpdateMenuItem replaces a menu item identified by item.ID.
func (c *Client) UpdateMenuItem(ctx context.Context, item domain.MenuItem) error {
	return c.do(ctx, fiber.MethodPut, "/menu", item, nil)
}

// DeleteMenuItem removes a menu item.
func (c *Client) DeleteMenuItem(ctx context.Context, id string) error {
	return c.do(ctx, fiber.MethodDelete, "/menu/"+url.PathEscape(id), nil, nil)
}

// ListAdditions returns the add-ons catalogue.
func (c *Client) ListAdditions(ctx context.Context) ([]domain.Addition, error) {
	var additions []domain.Addition
	if err := c.do(ctx, fiber.MethodGet, "/addition", nil, &additions); err != nil {
		return nil, err
	}
	return additions, nil
}

// CreateAddition adds an add-on.
func (c *Client) CreateAddition(ctx context.Context, addition domain.Addition) error {
	return c.do(ctx, fiber.MethodPost, "/addition", addition, nil)
}

// ListUsers returns the staff accounts.
func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := c.do(ctx, fiber.MethodGet, "/person", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser registers a staff account.
func (c *Client) CreateUser(ctx context.Context, user UserInput) error {
	return c.do(ctx, fiber.MethodPost, "/person", user, nil)
}

// UpdateUser rewrites a staff account identified by user.ID.
func (c *Client) UpdateUser(ctx context.Context, user UserInput) error {
	return c.do(ctx, fiber.MethodPut, "/person", user, nil)
}

// DeleteUser removes a staff account.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, fiber.MethodDelete, "/person/"+url.PathEscape(id), nil, nil)
}

func decodeOrders(raw json.RawMessage) ([]domain.Order, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []domain.Order{}, nil
	}
	if trimmed[0] == '[' {
		var orders []domain.Order
		if err := json.Unmarshal(trimmed, &orders); err != nil {
			return nil, fmt.Errorf("decode orders: %w", err)
		}
		return orders, nil
	}
	var order domain.Order
	if err := json.Unmarshal(trimmed, &order); err != nil {
		return nil, fmt.Errorf("decode order: %w", err)
	}
	return []domain.Order{order}, nil
}
