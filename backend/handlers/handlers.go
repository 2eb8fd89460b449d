package handlers

import (
	"context"
	"time"

	"github.com/braintree-go/braintree-go"
	"github.com/gofiber/fiber/v2"
	"github.com/vantage-club/clubgate/backend/models"
	webservices "github.com/vantage-club/clubgate/backend/services"
	"github.com/vantage-club/clubgate/backend/utils"
	"github.com/vantage-club/clubgate/clubgate"
	"github.com/vantage-club/clubgate/clubgate/database"
	"github.com/vantage-club/clubgate/clubgate/services"
)

// WebApp bundles the collaborators the HTTP handlers need. DB and Braintree
// may be nil when the respective integration is not configured.
type WebApp struct {
	Config        *clubgate.Config
	DB            *database.DB
	Enrollment    *services.EnrollmentService
	Redemption    *services.RedemptionService
	OAuthService  *webservices.OAuthService
	CookieService *webservices.CookieService
	Braintree     *braintree.Braintree
	Version       string
	Commit        string
}

// HealthCheck returns service health including database connectivity
func HealthCheck(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		health := models.NewHealthCheck(webApp.Version)
		health.Commit = webApp.Commit

		if webApp.DB != nil {
			ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
			defer cancel()

			if err := webApp.DB.Ping(ctx); err != nil {
				health.AddComponent("database", "unhealthy", err.Error())
			} else {
				health.AddComponent("database", "healthy", "")
			}
		} else {
			health.AddComponent("database", "disabled", "running without persistence")
		}

		if webApp.Braintree != nil {
			health.AddComponent("braintree", "healthy", "")
		} else {
			health.AddComponent("braintree", "disabled", "webhook verification off")
		}

		status := fiber.StatusOK
		if health.Status != "healthy" && health.Status != "degraded" {
			status = fiber.StatusServiceUnavailable
		}

		return utils.SendJSON(c, status, health)
	}
}
