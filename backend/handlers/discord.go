package handlers

import (
	"errors"
	"log/slog"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/vantage-club/clubgate/backend/utils"
	"github.com/vantage-club/clubgate/clubgate/services"
)

// DiscordLogin starts the OAuth round trip for a claim link. The claim
// travels in a signed cookie so the callback can consume it.
func DiscordLogin(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claim := c.Query("claim")
		if claim == "" {
			return utils.SendBadRequest(c, "Missing claim parameter", nil)
		}

		// Reject bad or expired links before bouncing through Discord.
		if err := webApp.Redemption.VerifyClaim(claim); err != nil {
			slog.Warn("Rejected invalid claim link",
				slog.String("type", "claim"),
				slog.String("ip", utils.GetIPAddress(c)),
				slog.String("error", err.Error()))
			return redirectFailure(c, webApp, "invalid_claim")
		}

		state, err := webApp.OAuthService.GenerateState()
		if err != nil {
			return utils.SendInternalServerError(c, "Failed to start authorization")
		}

		webApp.CookieService.SetPendingClaim(c, claim)
		webApp.CookieService.SetState(c, state)

		return c.Redirect(webApp.OAuthService.GenerateAuthURL(state), fiber.StatusTemporaryRedirect)
	}
}

// DiscordCallback finishes the OAuth round trip and redeems the pending
// claim for the authenticated Discord user.
func DiscordCallback(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if oauthErr := c.Query("error"); oauthErr != "" {
			slog.Warn("OAuth authorization denied",
				slog.String("type", "discord"),
				slog.String("error", oauthErr))
			return redirectFailure(c, webApp, "authorization_denied")
		}

		code := c.Query("code")
		if code == "" {
			return utils.SendBadRequest(c, "Missing authorization code", nil)
		}

		expectedState, err := webApp.CookieService.GetAndClearState(c)
		if err != nil || c.Query("state") != expectedState {
			slog.Warn("OAuth state mismatch",
				slog.String("type", "discord"),
				slog.String("ip", utils.GetIPAddress(c)))
			return redirectFailure(c, webApp, "state_mismatch")
		}

		claim, err := webApp.CookieService.GetAndClearPendingClaim(c)
		if err != nil {
			return redirectFailure(c, webApp, "missing_claim")
		}

		accessToken, err := webApp.OAuthService.ExchangeCodeForToken(c.Context(), code)
		if err != nil {
			slog.Error("OAuth code exchange failed",
				slog.String("type", "discord"),
				slog.String("error", err.Error()))
			return redirectFailure(c, webApp, "oauth_failed")
		}

		user, err := webApp.OAuthService.GetUserInfo(c.Context(), accessToken)
		if err != nil {
			slog.Error("Failed to fetch Discord user",
				slog.String("type", "discord"),
				slog.String("error", err.Error()))
			return redirectFailure(c, webApp, "oauth_failed")
		}

		identity := services.Identity{
			DiscordID: user.ID,
			Username:  user.Username,
			Email:     user.Email,
		}

		outcome, err := webApp.Redemption.Redeem(c.Context(), claim, identity, utils.GetIPAddress(c))
		if err != nil {
			switch {
			case errors.Is(err, services.ErrClaimAlreadyUsed):
				return redirectFailure(c, webApp, "already_used")
			case errors.Is(err, services.ErrInvalidClaim):
				return redirectFailure(c, webApp, "invalid_claim")
			case errors.Is(err, services.ErrCollaboratorUnavailable):
				slog.Error("Redemption failed on a collaborator",
					slog.String("type", "claim"),
					slog.String("error", err.Error()))
				return redirectFailure(c, webApp, "temporarily_unavailable")
			default:
				return redirectFailure(c, webApp, "redemption_failed")
			}
		}

		if webApp.Config.Web.SuccessURL != "" {
			return c.Redirect(webApp.Config.Web.SuccessURL, fiber.StatusTemporaryRedirect)
		}

		return utils.SendSuccess(c, outcome, "Membership activated")
	}
}

func redirectFailure(c *fiber.Ctx, webApp *WebApp, reason string) error {
	if webApp.Config.Web.FailureURL != "" {
		target := webApp.Config.Web.FailureURL + "?reason=" + url.QueryEscape(reason)
		return c.Redirect(target, fiber.StatusTemporaryRedirect)
	}
	return utils.SendError(c, fiber.StatusBadRequest, "REDEMPTION_FAILED", reason, nil)
}
