package main

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferreinv/inventario-api/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "development", Level: "info"})
}

// TestRegisterSwagger_SinArchivoElServidorArranca verifica que un árbol sin
// docs/swagger.json no entra en pánico al arrancar y sigue sirviendo rutas.
func TestRegisterSwagger_SinArchivoElServidorArranca(t *testing.T) {
	app := fiber.New()
	missing := filepath.Join(t.TempDir(), "docs", "swagger.json")

	require.NotPanics(t, func() {
		registerSwagger(app, missing, "test", testLogger())
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

// TestRegisterSwagger_ConArchivoSirveLaUI verifica que con el JSON presente
// el middleware queda registrado y /docs responde.
func TestRegisterSwagger_ConArchivoSirveLaUI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swagger.json")
	doc := `{"swagger":"2.0","info":{"title":"test","version":"1.0"},"paths":{}}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	app := fiber.New()
	require.NotPanics(t, func() {
		registerSwagger(app, path, "test", testLogger())
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/docs", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
