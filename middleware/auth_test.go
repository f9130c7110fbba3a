package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"synthara-api/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestParseBearer(t *testing.T) {
	require.Equal(t, "dev-token", ParseBearer("Bearer dev-token"))
	require.Equal(t, "dev-token", ParseBearer("  Bearer   dev-token  "))
	require.Equal(t, "dev-token", ParseBearer("dev-token"))
	require.Equal(t, "", ParseBearer("Bearer "))
	require.Equal(t, "", ParseBearer(""))
}

func whoAmI(c *fiber.Ctx) error {
	if u := CurrentUser(c); u != nil {
		return c.SendString(u.Email)
	}
	return c.SendString("anonymous")
}

func call(t *testing.T, app *fiber.App, path string, headers map[string]string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestOptionalUser(t *testing.T) {
	app := fiber.New()
	app.Get("/", OptionalUser(), whoAmI)

	status, body := call(t, app, "/", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "anonymous", body)

	status, body = call(t, app, "/", map[string]string{"Authorization": "Bearer dev-token"})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "demo@synthara.ai", body)

	status, body = call(t, app, "/", map[string]string{"Authorization": "Bearer other"})
	require.Equal(t, http.StatusUnauthorized, status)
	require.JSONEq(t, `{"detail":"Invalid token"}`, body)
}

func TestRequireUser(t *testing.T) {
	app := fiber.New()
	app.Get("/", RequireUser(), whoAmI)

	status, body := call(t, app, "/", map[string]string{"Authorization": "Bearer"})
	require.Equal(t, http.StatusUnauthorized, status)
	require.JSONEq(t, `{"detail":"Missing token"}`, body)

	status, _ = call(t, app, "/", map[string]string{"Authorization": "dev-token"})
	require.Equal(t, http.StatusOK, status)
}

func TestRequireWriteAccess(t *testing.T) {
	for env, wantAnon := range map[string]int{
		"dev":       http.StatusOK,
		"prod":      http.StatusUnauthorized,
		"mvp_canon": http.StatusUnauthorized,
		"staging":   http.StatusOK,
	} {
		cfg := &config.Config{RawAppEnv: env}
		app := fiber.New()
		app.Get("/", OptionalUser(), RequireWriteAccess(cfg), whoAmI)

		status, _ := call(t, app, "/", nil)
		require.Equal(t, wantAnon, status, env)

		status, _ = call(t, app, "/", map[string]string{"Authorization": "Bearer dev-token"})
		require.Equal(t, http.StatusOK, status, env)
	}
}

func TestRequireDevAdmin(t *testing.T) {
	cases := []struct {
		name   string
		cfg    *config.Config
		key    string
		status int
		detail string
	}{
		{"not dev", &config.Config{RawAppEnv: "prod", AdminAPIKey: "k"}, "k", http.StatusForbidden, "Seeding is only available in dev"},
		{"no key configured", &config.Config{RawAppEnv: "dev"}, "k", http.StatusServiceUnavailable, "Admin key not configured"},
		{"wrong key", &config.Config{RawAppEnv: "dev", AdminAPIKey: "k"}, "x", http.StatusUnauthorized, "Invalid admin key"},
		{"ok", &config.Config{RawAppEnv: "dev", AdminAPIKey: "k"}, "k", http.StatusOK, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", RequireDevAdmin(tc.cfg), whoAmI)
			status, body := call(t, app, "/", map[string]string{HeaderAdminKey: tc.key})
			require.Equal(t, tc.status, status)
			if tc.detail != "" {
				require.JSONEq(t, `{"detail":"`+tc.detail+`"}`, body)
			}
		})
	}
}

func TestStreamAuthReadsQueryToken(t *testing.T) {
	app := fiber.New()
	app.Get("/", StreamAuth(), whoAmI)

	status, body := call(t, app, "/?token=dev-token", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "demo@synthara.ai", body)

	status, _ = call(t, app, "/?token=bad", nil)
	require.Equal(t, http.StatusUnauthorized, status)

	status, body = call(t, app, "/", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "anonymous", body)
}
