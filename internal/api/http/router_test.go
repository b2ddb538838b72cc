package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/restaurant-console/internal/api/http/handlers"
	"github.com/spec-kit/restaurant-console/internal/auth"
	"github.com/spec-kit/restaurant-console/internal/backend"
	"github.com/spec-kit/restaurant-console/internal/config"
	"github.com/spec-kit/restaurant-console/internal/observability"
	"github.com/spec-kit/restaurant-console/internal/session"
)

var staffRoles = map[string]string{"alice": "WAITER", "root": "ADMIN", "carl": "CASHIER"}

// fakeAPI mimics the restaurant API. Tables answer 401 once rejectTables is
// set; "taken" is an existing username on /person.
type fakeAPI struct {
	mu           sync.Mutex
	rejectTables bool
	calls        []string
}

func (f *fakeAPI) rejectTableCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rejectTables = true
}

func (f *fakeAPI) record(c *fiber.Ctx) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	bearer := "anonymous"
	if c.Get(fiber.HeaderAuthorization) != "" {
		bearer = "bearer"
	}
	f.calls = append(f.calls, c.Method()+" "+c.Path()+" "+bearer)
	return f.rejectTables
}

func (f *fakeAPI) seen() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) handler(t *testing.T) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rejectTables := f.record(c)
		switch {
		case c.Path() == "/auth/login":
			var body struct{ Username, Password string }
			if err := json.Unmarshal(c.Body(), &body); err != nil {
				return c.SendStatus(fiber.StatusBadRequest)
			}
			role, ok := staffRoles[body.Username]
			if !ok || body.Password != "password1" {
				return c.SendStatus(fiber.StatusUnauthorized)
			}
			token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
				Role: role,
				RegisteredClaims: jwt.RegisteredClaims{
					Subject:   body.Username,
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				},
			}).SignedString([]byte("api-secret"))
			if !assert.NoError(t, err) {
				return c.SendStatus(fiber.StatusInternalServerError)
			}
			return c.JSON(fiber.Map{"token": token})
		case c.Path() == "/table":
			if rejectTables {
				return c.SendStatus(fiber.StatusUnauthorized)
			}
			if c.Method() == fiber.MethodPost {
				return c.SendStatus(fiber.StatusCreated)
			}
			return c.SendString(`[{"tableNumber":1,"status":"AVAILABLE"}]`)
		case strings.HasPrefix(c.Path(), "/orders/finish/"):
			return c.SendStatus(fiber.StatusOK)
		case c.Path() == "/menu" && c.Method() == fiber.MethodGet:
			return c.SendString(`[{"id":"m-1","name":"Cola","price":5,"type":"DRINK"}]`)
		case c.Path() == "/addition" && c.Method() == fiber.MethodGet:
			return c.SendString(`[{"id":"a-1","name":"Bacon","price":2}]`)
		case c.Path() == "/menu", c.Path() == "/addition":
			return c.SendStatus(fiber.StatusOK)
		case c.Path() == "/person" && c.Method() == fiber.MethodGet:
			return c.SendString(`[{"id":"u-1","name":"Ana","username":"ana","email":"ana@example.com","role":"WAITER"}]`)
		case c.Path() == "/person":
			var body struct{ Username string }
			if err := json.Unmarshal(c.Body(), &body); err != nil {
				return c.SendStatus(fiber.StatusBadRequest)
			}
			if body.Username == "taken" {
				return c.SendStatus(fiber.StatusConflict)
			}
			return c.SendStatus(fiber.StatusOK)
		case strings.HasPrefix(c.Path(), "/menu/"), strings.HasPrefix(c.Path(), "/person/"):
			return c.SendStatus(fiber.StatusNoContent)
		default:
			return c.SendStatus(fiber.StatusNotFound)
		}
	}
}

type consoleFixture struct {
	app     *fiber.App
	manager *session.Manager
	api     *fakeAPI
}

func newConsole(t *testing.T, hydrate bool) *consoleFixture {
	t.Helper()

	api := &fakeAPI{}
	upstream := fiber.New()
	upstream.Use(api.handler(t))
	srv := httptest.NewServer(adaptor.FiberApp(upstream))
	t.Cleanup(srv.Close)

	store, err := session.NewFileStore(filepath.Join(t.TempDir(), "credential.json"))
	require.NoError(t, err)

	client := backend.NewClient(srv.URL, 2*time.Second, nil)
	manager := session.NewManager(session.Dependencies{Store: store, Authenticator: client})
	if hydrate {
		manager.Hydrate(context.Background())
	}

	metrics := observability.NewMetrics()
	routes := config.RoutesConfig{LoginPath: "/login", UnauthorizedPath: "/unauthorized", LandingPath: "/tables"}
	table := ConsoleRoutes(routes)
	views := client.WithCredentials(manager)

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), metrics, 5*time.Second)
	RegisterRoutes(app, RouteConfig{
		Table:   table,
		Guard:   auth.NewGuardMiddleware(manager, table.Guard(), metrics),
		Health:  handlers.NewHealthHandler("console", "test", manager, nil),
		Session: handlers.NewSessionHandler(manager, client, routes.LoginPath, routes.LandingPath),
		Tables:  handlers.NewTablesHandler(manager, views),
		Menu:    handlers.NewMenuHandler(manager, views),
		Users:   handlers.NewUsersHandler(manager, views),
		Metrics: metrics,
	})
	return &consoleFixture{app: app, manager: manager, api: api}
}

func (f *consoleFixture) do(t *testing.T, method, path, body string) (int, string, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]any
	_ = json.Unmarshal(raw, &decoded)
	return resp.StatusCode, resp.Header.Get("Location"), decoded
}

func (f *consoleFixture) login(t *testing.T, username string) {
	t.Helper()
	status, location, _ := f.do(t, "POST", "/login", `{"username":"`+username+`","password":"password1"}`)
	require.Equal(t, fiber.StatusSeeOther, status)
	require.Equal(t, "/tables", location)
}

func errorCode(body map[string]any) string {
	errObj, _ := body["error"].(map[string]any)
	code, _ := errObj["code"].(string)
	return code
}

func TestLoadingSessionWaits(t *testing.T) {
	f := newConsole(t, false)

	status, _, body := f.do(t, "GET", "/tables", "")
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.Equal(t, "SESSION_LOADING", errorCode(body))

	status, _, _ = f.do(t, "GET", "/login", "")
	assert.Equal(t, fiber.StatusOK, status)
}

func TestUnauthenticatedNavigation(t *testing.T) {
	f := newConsole(t, true)

	for _, path := range []string{"/", "/tables", "/users", "/somewhere/else"} {
		status, location, _ := f.do(t, "GET", path, "")
		assert.Equal(t, fiber.StatusFound, status, path)
		assert.Equal(t, "/login", location, path)
	}
}

func TestLoginFormValidation(t *testing.T) {
	f := newConsole(t, true)

	status, _, body := f.do(t, "POST", "/login", `{"username":"al","password":"short"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(body))
}

func TestLoginRejected(t *testing.T) {
	f := newConsole(t, true)

	status, _, body := f.do(t, "POST", "/login", `{"username":"alice","password":"wrongpass"}`)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_CREDENTIALS", errorCode(body))
	assert.False(t, f.manager.Session().IsAuthenticated())
}

func TestWaiterFlow(t *testing.T) {
	f := newConsole(t, true)
	f.login(t, "alice")

	status, location, _ := f.do(t, "GET", "/", "")
	assert.Equal(t, fiber.StatusFound, status)
	assert.Equal(t, "/tables", location)

	status, _, body := f.do(t, "GET", "/tables", "")
	require.Equal(t, fiber.StatusOK, status)
	tables := body["data"].([]any)
	require.Len(t, tables, 1)

	status, location, _ = f.do(t, "GET", "/users", "")
	assert.Equal(t, fiber.StatusFound, status)
	assert.Equal(t, "/unauthorized", location)

	status, _, body = f.do(t, "GET", "/session", "")
	require.Equal(t, fiber.StatusOK, status)
	data := body["data"].(map[string]any)
	assert.Equal(t, "alice", data["subject"])
	assert.Equal(t, "WAITER", data["role"])
}

func TestOrderValidationBeforeUpstream(t *testing.T) {
	f := newConsole(t, true)
	f.login(t, "alice")

	status, _, body := f.do(t, "POST", "/orders", `{"tableNumber":3,"waiterId":"w-1","items":[]}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(body))
}

func TestCashierCannotOrder(t *testing.T) {
	f := newConsole(t, true)
	f.login(t, "carl")

	status, location, _ := f.do(t, "POST", "/orders", `{"tableNumber":3,"waiterId":"w-1","items":[{"itemId":"x"}]}`)
	assert.Equal(t, fiber.StatusFound, status)
	assert.Equal(t, "/unauthorized", location)
}

func TestRejectedCredentialEndsSession(t *testing.T) {
	f := newConsole(t, true)
	f.login(t, "root")
	f.api.rejectTableCalls()

	status, _, body := f.do(t, "GET", "/tables", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "SESSION_EXPIRED", errorCode(body))
	assert.False(t, f.manager.Session().IsAuthenticated())

	status, location, _ := f.do(t, "GET", "/tables", "")
	assert.Equal(t, fiber.StatusFound, status)
	assert.Equal(t, "/login", location)
}

func TestLogout(t *testing.T) {
	f := newConsole(t, true)
	f.login(t, "root")

	status, location, _ := f.do(t, "POST", "/logout", "")
	assert.Equal(t, fiber.StatusSeeOther, status)
	assert.Equal(t, "/login", location)

	status, location, _ = f.do(t, "GET", "/users", "")
	assert.Equal(t, fiber.StatusFound, status)
	assert.Equal(t, "/login", location)
}

func TestHealthProbes(t *testing.T) {
	f := newConsole(t, false)

	status, _, _ := f.do(t, "GET", "/health/live", "")
	assert.Equal(t, fiber.StatusOK, status)

	status, _, _ = f.do(t, "GET", "/health/ready", "")
	assert.Equal(t, fiber.StatusServiceUnavailable, status)

	f.manager.Hydrate(context.Background())
	status, _, _ = f.do(t, "GET", "/health/ready", "")
	assert.Equal(t, fiber.StatusOK, status)
}

func TestRegisterIsPublic(t *testing.T) {
	f := newConsole(t, true)

	status, _, body := f.do(t, "POST", "/register", `{"name":"Dora","username":"dora","email":"dora@example.com","password":"password1"}`)
	assert.Equal(t, fiber.StatusCreated, status)
	data := body["data"].(map[string]any)
	assert.Equal(t, "dora", data["username"])
	assert.Contains(t, f.api.seen(), "POST /person anonymous")
	assert.False(t, f.manager.Session().IsAuthenticated())
}

func TestRegisterRejections(t *testing.T) {
	f := newConsole(t, true)

	status, _, body := f.do(t, "POST", "/register", `{"name":"Do","username":"dora","email":"not-an-email","password":"password1"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(body))

	status, _, body = f.do(t, "POST", "/register", `{"name":"Dora","username":"taken","email":"dora@example.com","password":"password1"}`)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "CONFLICT", errorCode(body))
}

func TestTableMaintenance(t *testing.T) {
	f := newConsole(t, true)
	f.login(t, "carl")

	status, location, _ := f.do(t, "POST", "/tables", `{"number":7}`)
	assert.Equal(t, fiber.StatusFound, status)
	assert.Equal(t, "/unauthorized", location)

	status, _, body := f.do(t, "POST", "/tables/7/finish", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "finished", body["data"].(map[string]any)["status"])
	assert.Contains(t, f.api.seen(), "POST /orders/finish/7 bearer")

	f.login(t, "root")
	status, _, body = f.do(t, "POST", "/tables", `{"number":7}`)
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, float64(7), body["data"].(map[string]any)["tableNumber"])

	status, _, body = f.do(t, "POST", "/tables", `{"number":0}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(body))

	status, _, _ = f.do(t, "POST", "/tables/abc/finish", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestMenuMaintenance(t *testing.T) {
	f := newConsole(t, true)
	f.login(t, "alice")

	status, _, body := f.do(t, "GET", "/menu", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["data"], 1)

	status, _, body = f.do(t, "GET", "/additions", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["data"], 1)

	writes := []struct{ method, path, body string }{
		{"POST", "/menu", `{"name":"Cola","price":5,"type":"DRINK"}`},
		{"PUT", "/menu", `{"id":"m-1","name":"Cola","price":6,"type":"DRINK"}`},
		{"DELETE", "/menu/m-1", ""},
		{"POST", "/additions", `{"name":"Bacon","price":2}`},
	}
	for _, w := range writes {
		status, location, _ := f.do(t, w.method, w.path, w.body)
		assert.Equal(t, fiber.StatusFound, status, w.method+" "+w.path)
		assert.Equal(t, "/unauthorized", location, w.method+" "+w.path)
	}

	f.login(t, "root")
	status, _, body = f.do(t, "POST", "/menu", `{"name":"Cola","price":5,"type":"DRINK"}`)
	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "Cola", body["data"].(map[string]any)["name"])

	status, _, _ = f.do(t, "PUT", "/menu", `{"id":"m-1","name":"Cola","price":6,"type":"DRINK"}`)
	assert.Equal(t, fiber.StatusOK, status)

	status, _, _ = f.do(t, "PUT", "/menu", `{"name":"Cola","price":6,"type":"DRINK"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _, body = f.do(t, "POST", "/menu", `{"name":"Soup","price":5,"type":"SOUP"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(body))

	status, _, _ = f.do(t, "DELETE", "/menu/m-1", "")
	assert.Equal(t, fiber.StatusNoContent, status)

	status, _, _ = f.do(t, "POST", "/additions", `{"name":"Bacon","price":2}`)
	assert.Equal(t, fiber.StatusCreated, status)

	assert.Contains(t, f.api.seen(), "DELETE /menu/m-1 bearer")
}

func TestUserAdministration(t *testing.T) {
	f := newConsole(t, true)
	f.login(t, "alice")

	status, location, _ := f.do(t, "DELETE", "/users/u-1", "")
	assert.Equal(t, fiber.StatusFound, status)
	assert.Equal(t, "/unauthorized", location)

	f.login(t, "root")
	status, _, body := f.do(t, "GET", "/users", "")
	require.Equal(t, fiber.StatusOK, status)
	users := body["data"].([]any)
	require.Len(t, users, 1)
	assert.Equal(t, "WAITER", users[0].(map[string]any)["role"])

	status, _, body = f.do(t, "POST", "/users", `{"name":"Eve","username":"eve","email":"eve@example.com","password":"password1","role":"CASHIER"}`)
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "CASHIER", body["data"].(map[string]any)["role"])

	status, _, body = f.do(t, "POST", "/users", `{"name":"Eve","username":"eve","email":"eve@example.com","password":"password1","role":"CHEF"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(body))

	status, _, body = f.do(t, "POST", "/users", `{"name":"Tom","username":"taken","email":"tom@example.com","password":"password1","role":"WAITER"}`)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "CONFLICT", errorCode(body))

	status, _, _ = f.do(t, "PUT", "/users", `{"id":"u-1","name":"Ana","username":"ana","email":"ana@example.com","role":"MANAGER"}`)
	assert.Equal(t, fiber.StatusOK, status)

	status, _, _ = f.do(t, "DELETE", "/users/u-1", "")
	assert.Equal(t, fiber.StatusNoContent, status)
	assert.Contains(t, f.api.seen(), "DELETE /person/u-1 bearer")
}
