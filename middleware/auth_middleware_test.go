package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, username string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"username": username,
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func newProtectedApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", testSecret)

	app := fiber.New()
	app.Get("/whoami", Protected(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"username": CurrentUsername(c)})
	})
	app.Get("/users/:username", Protected(), CorrectUserRequired(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestProtectedRejectsMissingToken(t *testing.T) {
	req := require.New(t)
	app := newProtectedApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/whoami", nil), -1)
	req.NoError(err)
	req.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRejectsBadSignature(t *testing.T) {
	req := require.New(t)
	app := newProtectedApp(t)

	claims := jwt.MapClaims{"username": "alice", "exp": time.Now().Add(time.Hour).Unix()}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	req.NoError(err)

	r := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	r.Header.Set("Authorization", "Bearer "+forged)
	resp, err := app.Test(r, -1)
	req.NoError(err)
	req.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func TestCurrentUsernameFromToken(t *testing.T) {
	req := require.New(t)
	app := newProtectedApp(t)

	r := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	r.Header.Set("Authorization", "Bearer "+signToken(t, "alice"))
	resp, err := app.Test(r, -1)
	req.NoError(err)
	req.Equal(http.StatusOK, resp.StatusCode)
}

func TestCorrectUserRequired(t *testing.T) {
	req := require.New(t)
	app := newProtectedApp(t)

	r := httptest.NewRequest(http.MethodGet, "/users/alice", nil)
	r.Header.Set("Authorization", "Bearer "+signToken(t, "alice"))
	resp, err := app.Test(r, -1)
	req.NoError(err)
	req.Equal(http.StatusOK, resp.StatusCode)

	r = httptest.NewRequest(http.MethodGet, "/users/bob", nil)
	r.Header.Set("Authorization", "Bearer "+signToken(t, "alice"))
	resp, err = app.Test(r, -1)
	req.NoError(err)
	req.Equal(http.StatusForbidden, resp.StatusCode)
}
