package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/abuela-pos/internal/domain/entity"
	apphttp "github.com/tu-usuario/abuela-pos/internal/interfaces/http"
	pkgjwt "github.com/tu-usuario/abuela-pos/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testShopID    = "tienda-de-la-abuela"
	testIssuer    = "abuela-pos-test"
	testExpMin    = 60
)

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar locals
//   - Una ruta solo de dueña detrás de RequireOwner
func buildTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"shopId": apphttp.GetShopID(c),
				"role":   apphttp.GetRole(c),
			})
		},
	)
	app.Get("/owner-only",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireOwner(),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true})
		},
	)
	return app
}

// tokenForRole genera un JWT con el rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testShopID, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: token válido → pasa y los locals llevan tienda y rol.
func TestAuthMiddleware_TokenValidoCargaLocals(t *testing.T) {
	app := buildTestApp()

	resp := doRequest(t, app, "/protected", tokenForRole(t, entity.RoleStaff))
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testShopID, body["shopId"])
	assert.Equal(t, entity.RoleStaff, body["role"])
}

// Caso 2: sin header, header malformado o token firmado con otro secreto → 401.
func TestAuthMiddleware_RechazaTokensInvalidos(t *testing.T) {
	app := buildTestApp()

	casos := map[string]string{
		"sin header":      "",
		"sin esquema":     "abc.def.ghi",
		"esquema erróneo": "Basic abc",
		"token vacío":     "Bearer ",
	}
	for nombre, header := range casos {
		resp := doRequest(t, app, "/protected", header)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, nombre)
	}

	otro, err := pkgjwt.Generate("otro-secreto", testShopID, entity.RoleOwner, testIssuer, testExpMin)
	require.NoError(t, err)
	resp := doRequest(t, app, "/protected", "Bearer "+otro)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "firma ajena")
}

// Caso 3: token expirado → 401.
func TestAuthMiddleware_RechazaTokenExpirado(t *testing.T) {
	app := buildTestApp()

	expirado, err := pkgjwt.Generate(testJWTSecret, testShopID, entity.RoleOwner, testIssuer, -5)
	require.NoError(t, err)

	resp := doRequest(t, app, "/protected", "Bearer "+expirado)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireOwner
// ──────────────────────────────────────────────────────────────────────────────

// Caso 4: la dueña entra a la ruta de dueña; el personal recibe 403.
func TestRequireOwner_SeparaRoles(t *testing.T) {
	app := buildTestApp()

	resp := doRequest(t, app, "/owner-only", tokenForRole(t, entity.RoleOwner))
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, "/owner-only", tokenForRole(t, entity.RoleStaff))
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
