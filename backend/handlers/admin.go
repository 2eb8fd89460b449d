package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/vantage-club/clubgate/backend/utils"
	"github.com/vantage-club/clubgate/clubgate/services"
)

// MembershipRevoke deactivates a membership link and revokes its role.
func MembershipRevoke(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		membershipID := c.Params("id")
		if membershipID == "" {
			return utils.SendBadRequest(c, "Missing membership id", nil)
		}

		if err := webApp.Redemption.RevokeAccess(c.Context(), membershipID); err != nil {
			switch {
			case errors.Is(err, services.ErrMembershipNotFound):
				return utils.SendNotFound(c, "Membership not found")
			case errors.Is(err, services.ErrCollaboratorUnavailable):
				return utils.SendServiceUnavailable(c, "Membership store unavailable")
			default:
				return utils.SendInternalServerError(c, "Failed to revoke membership")
			}
		}

		return utils.SendSuccess(c, fiber.Map{"membership_id": membershipID}, "Membership revoked")
	}
}

// MembershipResync re-grants the role for an active membership link,
// recovering from a grant that failed after redemption.
func MembershipResync(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		membershipID := c.Params("id")
		if membershipID == "" {
			return utils.SendBadRequest(c, "Missing membership id", nil)
		}

		outcome, err := webApp.Redemption.ResyncAccess(c.Context(), membershipID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrMembershipNotFound):
				return utils.SendNotFound(c, "No active membership link")
			case errors.Is(err, services.ErrCollaboratorUnavailable):
				return utils.SendServiceUnavailable(c, "Could not re-grant role")
			default:
				return utils.SendInternalServerError(c, "Failed to resync membership")
			}
		}

		return utils.SendSuccess(c, outcome, "Role re-granted")
	}
}
