package handlers

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/restaurant-console/internal/api/dto"
	"github.com/spec-kit/restaurant-console/internal/backend"
	"github.com/spec-kit/restaurant-console/internal/domain"
	apperrors "github.com/spec-kit/restaurant-console/pkg/util/errorutil"
)

// Registrar creates accounts from the public sign-up form.
type Registrar interface {
	Register(ctx context.Context, account backend.Registration) error
}

// SessionHandler serves the login, register, logout and unauthorized views.
type SessionHandler struct {
	sessions  Sessions
	registrar Registrar
	loginPath string
	landing   string
}

// NewSessionHandler constructs handler.
func NewSessionHandler(sessions Sessions, registrar Registrar, loginPath, landing string) *SessionHandler {
	return &SessionHandler{sessions: sessions, registrar: registrar, loginPath: loginPath, landing: landing}
}

// LoginView handles GET /login.
func (h *SessionHandler) LoginView(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"view":    "login",
			"session": sessionResponse(h.sessions.Session()),
		},
	})
}

// Login handles POST /login. Success redirects to the landing view.
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := validate(&req); err != nil {
		return err
	}

	if _, err := h.sessions.Login(c.UserContext(), req.Username, req.Password); err != nil {
		return err
	}
	return c.Redirect(h.landing, http.StatusSeeOther)
}

// Register handles POST /register. The new account still has to log in.
func (h *SessionHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := validate(&req); err != nil {
		return err
	}

	err := h.registrar.Register(c.UserContext(), backend.Registration{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if conflict(err) {
		return apperrors.NewDomainError("CONFLICT", "username or e-mail already exists", http.StatusConflict, nil)
	}
	if err != nil {
		return apperrors.NewUpstreamError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{"view": "login", "username": req.Username},
	})
}

// Logout handles POST /logout. It always succeeds.
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	h.sessions.Logout(c.UserContext())
	return c.Redirect(h.loginPath, http.StatusSeeOther)
}

// Unauthorized handles GET /unauthorized.
func (h *SessionHandler) Unauthorized(c *fiber.Ctx) error {
	return c.Status(http.StatusForbidden).JSON(fiber.Map{
		"data": fiber.Map{
			"view":    "unauthorized",
			"session": sessionResponse(h.sessions.Session()),
		},
	})
}

// Current handles GET /session.
func (h *SessionHandler) Current(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": sessionResponse(h.sessions.Session())})
}

func sessionResponse(s domain.Session) dto.SessionResponse {
	resp := dto.SessionResponse{
		State:         s.State.String(),
		Authenticated: s.IsAuthenticated(),
	}
	if s.IsAuthenticated() {
		resp.Subject = s.Identity.Subject
		resp.Role = s.Identity.Role.String()
		expires := s.ExpiresAt
		resp.ExpiresAt = &expires
	}
	return resp
}
