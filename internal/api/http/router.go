package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/restaurant-console/internal/api/http/handlers"
	"github.com/spec-kit/restaurant-console/internal/auth"
	"github.com/spec-kit/restaurant-console/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Table   *auth.RouteTable
	Guard   *auth.GuardMiddleware
	Health  *handlers.HealthHandler
	Session *handlers.SessionHandler
	Tables  *handlers.TablesHandler
	Menu    *handlers.MenuHandler
	Users   *handlers.UsersHandler
	Metrics *observability.Metrics
}

// RegisterRoutes wires every rule of the route table to its view handler
// behind the guard, then the root redirect and the fallback.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))

	routes := cfg.Table.Guard()
	views := map[string]fiber.Handler{
		key(fiber.MethodGet, routes.LoginPath):        cfg.Session.LoginView,
		key(fiber.MethodPost, routes.LoginPath):       cfg.Session.Login,
		key(fiber.MethodPost, "/register"):            cfg.Session.Register,
		key(fiber.MethodGet, routes.UnauthorizedPath): cfg.Session.Unauthorized,
		key(fiber.MethodPost, "/logout"):              cfg.Session.Logout,
		key(fiber.MethodGet, "/session"):              cfg.Session.Current,

		key(fiber.MethodGet, "/tables"):                 cfg.Tables.List,
		key(fiber.MethodPost, "/tables"):                cfg.Tables.Create,
		key(fiber.MethodGet, "/tables/:number/orders"):  cfg.Tables.ActiveOrders,
		key(fiber.MethodPost, "/tables/:number/finish"): cfg.Tables.Finish,
		key(fiber.MethodPost, "/orders"):                cfg.Tables.PlaceOrder,

		key(fiber.MethodGet, "/menu"):        cfg.Menu.List,
		key(fiber.MethodPost, "/menu"):       cfg.Menu.Create,
		key(fiber.MethodPut, "/menu"):        cfg.Menu.Update,
		key(fiber.MethodDelete, "/menu/:id"): cfg.Menu.Delete,
		key(fiber.MethodGet, "/additions"):   cfg.Menu.ListAdditions,
		key(fiber.MethodPost, "/additions"):  cfg.Menu.CreateAddition,

		key(fiber.MethodGet, "/users"):        cfg.Users.List,
		key(fiber.MethodPost, "/users"):       cfg.Users.Create,
		key(fiber.MethodPut, "/users"):        cfg.Users.Update,
		key(fiber.MethodDelete, "/users/:id"): cfg.Users.Delete,
	}

	for _, rule := range cfg.Table.Rules() {
		view, ok := views[key(rule.Method, rule.Path)]
		if !ok {
			panic(fmt.Sprintf("no view registered for %s %s", rule.Method, rule.Path))
		}
		app.Add(rule.Method, rule.Path, cfg.Guard.Rule(rule), view)
	}

	navigate := cfg.Guard.Navigate(cfg.Table)
	app.Get("/", navigate)
	app.Use(navigate)
}

func key(method, path string) string {
	return method + " " + path
}
