package main

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/Abraxas-365/hirely/pkg/config"
	"github.com/Abraxas-365/hirely/recruitment/application"
	"github.com/Abraxas-365/hirely/recruitment/form"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testApp() *fiber.App {
	app := newApp(&config.Config{
		App:    config.AppConfig{Name: "test"},
		Server: config.ServerConfig{AllowOrigins: "*", BodyLimitMB: 1},
	})
	app.Get("/conflict", func(c *fiber.Ctx) error { return application.ErrSubmissionInFlight() })
	app.Get("/invalid", func(c *fiber.Ctx) error {
		return form.Verdict{Field: "email", Label: "Email", Message: `Field "Email" is required.`}.Err()
	})
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("boom") })
	app.Get("/panic", func(c *fiber.Ctx) error { panic("unexpected") })
	return app
}

func TestGlobalErrorHandler(t *testing.T) {
	tests := []struct {
		path   string
		status int
		code   any
	}{
		{"/conflict", fiber.StatusConflict, string(application.CodeSubmissionInFlight)},
		{"/invalid", fiber.StatusUnprocessableEntity, string(form.CodeValidationFailed)},
		{"/boom", fiber.StatusInternalServerError, "INTERNAL_ERROR"},
		{"/panic", fiber.StatusInternalServerError, "INTERNAL_ERROR"},
		{"/missing", fiber.StatusNotFound, float64(fiber.StatusNotFound)},
	}

	app := testApp()
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.status, resp.StatusCode)

			var body map[string]any
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.code, body["code"])
		})
	}
}
