package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/restaurant-console/internal/api/dto"
	"github.com/spec-kit/restaurant-console/internal/backend"
	"github.com/spec-kit/restaurant-console/internal/domain"
)

// UsersHandler administers staff accounts.
type UsersHandler struct {
	sessions Sessions
	api      *backend.Client
}

// NewUsersHandler constructs handler.
func NewUsersHandler(sessions Sessions, api *backend.Client) *UsersHandler {
	return &UsersHandler{sessions: sessions, api: api}
}

// List handles GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.api.ListUsers(c.UserContext())
	if err != nil {
		return upstreamError(c, h.sessions, err)
	}
	return c.JSON(fiber.Map{"data": users})
}

// Create handles POST /users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.UserCreateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := validate(&req); err != nil {
		return err
	}

	role := domain.ParseRole(req.Role)
	input := backend.UserInput{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
	}
	if err := h.api.CreateUser(c.UserContext(), input); err != nil {
		return upstreamError(c, h.sessions, err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": toUser(input)})
}

// Update handles PUT /users. An empty password leaves it unchanged.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	var req dto.UserUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := validate(&req); err != nil {
		return err
	}

	role := domain.ParseRole(req.Role)
	input := backend.UserInput{
		ID:       req.ID,
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
	}
	if err := h.api.UpdateUser(c.UserContext(), input); err != nil {
		return upstreamError(c, h.sessions, err)
	}
	return c.JSON(fiber.Map{"data": toUser(input)})
}

// Delete handles DELETE /users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	if err := h.api.DeleteUser(c.UserContext(), c.Params("id")); err != nil {
		return upstreamError(c, h.sessions, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func toUser(in backend.UserInput) domain.User {
	return domain.User{ID: in.ID, Name: in.Name, Username: in.Username, Email: in.Email, Role: in.Role}
}
