package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/vantage-club/clubgate/backend/models"
	"github.com/vantage-club/clubgate/backend/utils"
	"github.com/vantage-club/clubgate/clubgate/services"
)

// PaymentConfirmed handles confirmed-payment notifications posted directly
// by the payment gateway.
func PaymentConfirmed(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.PaymentConfirmedRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid JSON body", nil)
		}

		if details := req.Validate(); details != nil {
			return utils.SendBadRequest(c, "Missing required fields", details)
		}

		result, err := webApp.Enrollment.HandlePaymentConfirmed(c.Context(), services.PaymentNotice{
			EventID:      req.EventID,
			EventType:    req.EventType,
			PlanID:       req.PlanID,
			Email:        req.Email,
			MembershipID: req.MembershipID,
			UserName:     req.UserName,
		})
		if err != nil {
			if errors.Is(err, services.ErrCollaboratorUnavailable) && result != nil {
				// The claim is issued and recorded; only the email failed.
				slog.Error("Claim issued but email dispatch failed",
					slog.String("type", "http"),
					slog.String("membership_id", req.MembershipID),
					slog.String("error", err.Error()))
				return utils.SendJSON(c, fiber.StatusAccepted,
					models.NewSuccessResponse(result, "Claim issued, email delivery failed"))
			}
			slog.Error("Payment confirmation failed",
				slog.String("type", "http"),
				slog.String("membership_id", req.MembershipID),
				slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to process payment confirmation")
		}

		if result.Duplicate {
			return utils.SendSuccess(c, result, "Event already processed")
		}

		return utils.SendSuccess(c, result, "Claim issued")
	}
}
