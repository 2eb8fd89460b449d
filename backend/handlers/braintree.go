package handlers

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/braintree-go/braintree-go"
	"github.com/gofiber/fiber/v2"
	"github.com/vantage-club/clubgate/backend/utils"
	"github.com/vantage-club/clubgate/clubgate/services"
)

// BraintreeChallenge answers the endpoint verification challenge Braintree
// sends when the webhook URL is registered.
func BraintreeChallenge(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if webApp.Braintree == nil {
			return utils.SendServiceUnavailable(c, "Braintree is not configured")
		}

		challenge := c.Query("bt_challenge")
		if challenge == "" {
			return utils.SendBadRequest(c, "Missing bt_challenge", nil)
		}

		response, err := webApp.Braintree.WebhookNotification().Verify(challenge)
		if err != nil {
			return utils.SendBadRequest(c, "Invalid challenge", nil)
		}

		return c.SendString(response)
	}
}

// BraintreeWebhook receives signed webhook notifications from Braintree and
// feeds subscription events into the enrollment and revocation flows.
func BraintreeWebhook(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if webApp.Braintree == nil {
			return utils.SendServiceUnavailable(c, "Braintree is not configured")
		}

		signature := c.FormValue("bt_signature")
		payload := c.FormValue("bt_payload")
		if signature == "" || payload == "" {
			return utils.SendBadRequest(c, "Missing webhook signature or payload", nil)
		}

		notification, err := webApp.Braintree.WebhookNotification().Parse(signature, payload)
		if err != nil {
			slog.Warn("Rejected webhook with bad signature",
				slog.String("type", "http"),
				slog.String("ip", utils.GetIPAddress(c)),
				slog.String("error", err.Error()))
			return utils.SendUnauthorized(c, "Invalid webhook signature")
		}

		slog.Info("Braintree webhook received",
			slog.String("type", "http"),
			slog.String("kind", string(notification.Kind)))

		switch notification.Kind {
		case braintree.SubscriptionChargedSuccessfullyWebhook:
			return handleSubscriptionCharged(c, webApp, notification)
		case braintree.SubscriptionCanceledWebhook, braintree.SubscriptionExpiredWebhook:
			return handleSubscriptionEnded(c, webApp, notification)
		default:
			// Kinds we do not act on are still recorded, then acknowledged
			// so Braintree stops retrying.
			if sub := notification.Subject.Subscription; sub != nil {
				eventID := fmt.Sprintf("%s:%s:%d", notification.Kind, sub.Id, notification.Timestamp.Unix())
				webApp.Enrollment.RecordEvent(c.Context(), eventID, string(notification.Kind), []byte(payload))
			}
			return utils.SendSuccess(c, nil, "Event recorded")
		}
	}
}

func handleSubscriptionCharged(c *fiber.Ctx, webApp *WebApp, n *braintree.WebhookNotification) error {
	sub := n.Subject.Subscription
	if sub == nil {
		return utils.SendBadRequest(c, "Notification carries no subscription", nil)
	}

	notice := services.PaymentNotice{
		EventID:      fmt.Sprintf("%s:%s:%d", n.Kind, sub.Id, n.Timestamp.Unix()),
		EventType:    string(n.Kind),
		PlanID:       sub.PlanId,
		MembershipID: sub.Id,
	}

	if sub.Transactions != nil && len(sub.Transactions.Transaction) > 0 {
		if customer := sub.Transactions.Transaction[0].Customer; customer != nil {
			notice.Email = customer.Email
			notice.UserName = customer.FirstName
		}
	}

	if notice.Email == "" {
		slog.Error("Subscription charge carries no customer email",
			slog.String("type", "http"),
			slog.String("subscription_id", sub.Id))
		return utils.SendBadRequest(c, "No customer email on subscription", nil)
	}

	result, err := webApp.Enrollment.HandlePaymentConfirmed(c.Context(), notice)
	if err != nil {
		if errors.Is(err, services.ErrCollaboratorUnavailable) && result != nil {
			return utils.SendJSON(c, fiber.StatusAccepted, nil)
		}
		slog.Error("Failed to process subscription charge",
			slog.String("type", "http"),
			slog.String("subscription_id", sub.Id),
			slog.String("error", err.Error()))
		return utils.SendInternalServerError(c, "Failed to process webhook")
	}

	return utils.SendSuccess(c, nil, "Claim issued")
}

func handleSubscriptionEnded(c *fiber.Ctx, webApp *WebApp, n *braintree.WebhookNotification) error {
	sub := n.Subject.Subscription
	if sub == nil {
		return utils.SendBadRequest(c, "Notification carries no subscription", nil)
	}

	if err := webApp.Redemption.RevokeAccess(c.Context(), sub.Id); err != nil {
		if errors.Is(err, services.ErrMembershipNotFound) {
			// Nothing was ever bound for this subscription.
			return utils.SendSuccess(c, nil, "No membership link to revoke")
		}
		slog.Error("Failed to revoke access",
			slog.String("type", "http"),
			slog.String("subscription_id", sub.Id),
			slog.String("error", err.Error()))
		return utils.SendInternalServerError(c, "Failed to process webhook")
	}

	return utils.SendSuccess(c, nil, "Access revoked")
}
