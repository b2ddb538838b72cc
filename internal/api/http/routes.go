package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/restaurant-console/internal/auth"
	"github.com/spec-kit/restaurant-console/internal/config"
	"github.com/spec-kit/restaurant-console/internal/domain"
)

var (
	staff        = []domain.Role{domain.RoleWaiter, domain.RoleManager, domain.RoleCashier, domain.RoleAdmin}
	managers     = []domain.Role{domain.RoleAdmin, domain.RoleManager}
	orderTakers  = []domain.Role{domain.RoleWaiter, domain.RoleManager}
	tillOperator = []domain.Role{domain.RoleCashier, domain.RoleManager, domain.RoleAdmin}
	adminOnly    = []domain.Role{domain.RoleAdmin}
)

// ConsoleRoutes returns the console's static route table.
func ConsoleRoutes(cfg config.RoutesConfig) *auth.RouteTable {
	guard := auth.NewGuard(cfg.LoginPath, cfg.UnauthorizedPath)
	return auth.NewRouteTable(guard, cfg.LandingPath,
		auth.RouteRule{Method: fiber.MethodGet, Path: cfg.LoginPath, Public: true},
		auth.RouteRule{Method: fiber.MethodPost, Path: cfg.LoginPath, Public: true},
		auth.RouteRule{Method: fiber.MethodPost, Path: "/register", Public: true},
		auth.RouteRule{Method: fiber.MethodGet, Path: cfg.UnauthorizedPath, Public: true},
		auth.RouteRule{Method: fiber.MethodPost, Path: "/logout", Public: true},
		auth.RouteRule{Method: fiber.MethodGet, Path: "/session"},

		auth.RouteRule{Method: fiber.MethodGet, Path: "/tables"},
		auth.RouteRule{Method: fiber.MethodPost, Path: "/tables", Roles: managers},
		auth.RouteRule{Method: fiber.MethodGet, Path: "/tables/:number/orders", Roles: staff},
		auth.RouteRule{Method: fiber.MethodPost, Path: "/tables/:number/finish", Roles: tillOperator},
		auth.RouteRule{Method: fiber.MethodPost, Path: "/orders", Roles: orderTakers},

		auth.RouteRule{Method: fiber.MethodGet, Path: "/menu"},
		auth.RouteRule{Method: fiber.MethodPost, Path: "/menu", Roles: managers},
		auth.RouteRule{Method: fiber.MethodPut, Path: "/menu", Roles: managers},
		auth.RouteRule{Method: fiber.MethodDelete, Path: "/menu/:id", Roles: managers},
		auth.RouteRule{Method: fiber.MethodGet, Path: "/additions"},
		auth.RouteRule{Method: fiber.MethodPost, Path: "/additions", Roles: managers},

		auth.RouteRule{Method: fiber.MethodGet, Path: "/users", Roles: adminOnly},
		auth.RouteRule{Method: fiber.MethodPost, Path: "/users", Roles: adminOnly},
		auth.RouteRule{Method: fiber.MethodPut, Path: "/users", Roles: adminOnly},
		auth.RouteRule{Method: fiber.MethodDelete, Path: "/users/:id", Roles: adminOnly},
	)
}
