package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func newKeyedApp(key string) *fiber.App {
	app := fiber.New()
	app.Post("/confirm", GatewayKeyRequired(key), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestGatewayKeyRequired(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		provided   string
		wantStatus int
	}{
		{"valid key", "secret-key", "secret-key", fiber.StatusOK},
		{"wrong key", "secret-key", "other-key", fiber.StatusUnauthorized},
		{"missing key", "secret-key", "", fiber.StatusUnauthorized},
		{"surface disabled", "", "anything", fiber.StatusForbidden},
		{"surface disabled no key", "", "", fiber.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newKeyedApp(tt.configured)

			req := httptest.NewRequest("POST", "/confirm", nil)
			if tt.provided != "" {
				req.Header.Set(GatewayKeyHeader, tt.provided)
			}

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}
