package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/restaurant-console/internal/api/dto"
	"github.com/spec-kit/restaurant-console/internal/backend"
	"github.com/spec-kit/restaurant-console/internal/domain"
	apperrors "github.com/spec-kit/restaurant-console/pkg/util/errorutil"
)

// Sessions is the view-facing side of the session manager.
type Sessions interface {
	Session() domain.Session
	Login(ctx context.Context, username, password string) (domain.Session, error)
	Logout(ctx context.Context) domain.Session
	ExpireOnRejection(ctx context.Context, credential string) domain.Session
}

// upstreamError maps a backend failure. A rejected credential ends the
// session so the next navigation lands on the login view.
func upstreamError(c *fiber.Ctx, sessions Sessions, err error) error {
	var rejected *backend.RejectedError
	if errors.As(err, &rejected) {
		sessions.ExpireOnRejection(c.UserContext(), rejected.Credential)
		return apperrors.NewSessionExpired()
	}
	if errors.Is(err, backend.ErrUnauthorized) {
		return apperrors.NewSessionExpired()
	}
	if conflict(err) {
		return apperrors.NewDomainError("CONFLICT", "resource already exists", http.StatusConflict, nil)
	}
	return apperrors.NewUpstreamError(err)
}

func conflict(err error) bool {
	var statusErr *backend.StatusError
	return errors.As(err, &statusErr) && statusErr.Status == http.StatusConflict
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	return nil
}

func validate(payload any) error {
	if details := dto.Validate(payload); details != nil {
		return apperrors.NewValidationError("validation failed", details)
	}
	return nil
}
