package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"courier-service/constants"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, roles []string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"uuid":  "user-uuid-1",
		"name":  "Test User",
		"roles": roles,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func setupApp(requiredRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected", RequireRoles(requiredRoles...), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestMissingTokenIsRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := setupApp(constants.RoleStaff)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMalformedAuthorizationHeaderIsRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := setupApp(constants.RoleStaff)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestTokenSignedWithWrongSecretIsRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := setupApp(constants.RoleStaff)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "other-secret", []string{"staff"}))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestInsufficientRoleIsForbidden(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := setupApp(constants.RoleStaff, constants.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "test-secret", []string{"customer"}))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestMatchingRoleIsAdmitted(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := setupApp(constants.RoleStaff, constants.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "test-secret", []string{"staff"}))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAnyRoleAdmitsEveryAuthenticatedCaller(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := fiber.New()
	app.Get("/protected", RequireAuthentication(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "test-secret", []string{"customer"}))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCookieFallbackIsAccepted(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := setupApp(constants.RoleStaff)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "access", Value: signToken(t, "test-secret", []string{"staff"})})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
