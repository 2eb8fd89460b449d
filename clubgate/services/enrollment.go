package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/vantage-club/clubgate/clubgate/database/repositories"
	"github.com/vantage-club/clubgate/clubgate/token"
)

// ClaimCodec issues and verifies signed claim tokens.
type ClaimCodec interface {
	Issue(membershipID, planID, userName string) (string, string, error)
	Verify(tokenStr string) (*token.Payload, error)
	TTL() time.Duration
}

// Mailer delivers the redemption link to the payer.
type Mailer interface {
	SendClaimEmail(ctx context.Context, toEmail, userName, planID, claimURL string) error
}

// PaymentNotice is a confirmed-payment notification as handed over by the
// payment webhook endpoint.
type PaymentNotice struct {
	EventID      string `json:"event_id"`
	EventType    string `json:"event_type"`
	PlanID       string `json:"plan_id"`
	Email        string `json:"email"`
	MembershipID string `json:"membership_id"`
	UserName     string `json:"user_name"`
}

// EnrollmentResult is handed back to the webhook endpoint so the gateway
// response can carry the claim and the redemption link.
type EnrollmentResult struct {
	Claim     string `json:"claim"`
	Redirect  string `json:"redirect"`
	Duplicate bool   `json:"duplicate,omitempty"`
}

// EnrollmentService turns a confirmed payment into an issued claim plus a
// notification email. The ledger and audit writes are best-effort; token
// issuance and (once issued) email dispatch are the load-bearing steps.
type EnrollmentService struct {
	codec   ClaimCodec
	claims  repositories.ClaimRepository
	events  repositories.EventRepository
	mailer  Mailer
	baseURL string
}

// NewEnrollmentService wires the payment-confirmed flow. claims, events and
// mailer may be nil when the respective collaborator is not configured; the
// service degrades to the steps it can still perform.
func NewEnrollmentService(codec ClaimCodec, claims repositories.ClaimRepository, events repositories.EventRepository, mailer Mailer, baseURL string) *EnrollmentService {
	return &EnrollmentService{
		codec:   codec,
		claims:  claims,
		events:  events,
		mailer:  mailer,
		baseURL: baseURL,
	}
}

// HandlePaymentConfirmed issues and records a claim for the payment and
// emails the redemption link. When email dispatch fails the claim has
// already been durably recorded, so the error is returned alongside the
// result: the caller decides whether to retry sending, it must not re-issue.
func (s *EnrollmentService) HandlePaymentConfirmed(ctx context.Context, n PaymentNotice) (*EnrollmentResult, error) {
	if n.MembershipID == "" || n.PlanID == "" || n.Email == "" {
		return nil, fmt.Errorf("payment notice is missing required fields")
	}

	eventID := n.EventID
	if eventID == "" {
		// Gateways that post without an event id still get day-level dedup.
		eventID = fmt.Sprintf("%s:%s:%s", n.MembershipID, n.PlanID, time.Now().UTC().Format("2006-01-02"))
	}
	eventType := n.EventType
	if eventType == "" {
		eventType = "payment.confirmed"
	}

	if s.events != nil {
		payload, _ := json.Marshal(n)
		fresh, err := s.events.Record(ctx, eventID, eventType, payload)
		if err != nil {
			// Audit logging must never block payment confirmation.
			slog.Warn("Failed to record webhook event",
				slog.String("type", "claim"),
				slog.String("event_id", eventID),
				slog.Any("error", err))
		} else if !fresh {
			slog.Info("Duplicate payment event, not re-issuing claim",
				slog.String("type", "claim"),
				slog.String("event_id", eventID),
				slog.String("membership_id", n.MembershipID))
			return &EnrollmentResult{Duplicate: true}, nil
		}
	}

	// The one fatal step: without a token there is nothing to email or
	// redeem.
	claimToken, jti, err := s.codec.Issue(n.MembershipID, n.PlanID, n.UserName)
	if err != nil {
		return nil, fmt.Errorf("failed to issue claim token: %w", err)
	}

	issuedAt := time.Now()
	if s.claims != nil {
		if err := s.claims.RecordIssued(ctx, jti, n.MembershipID, n.PlanID, issuedAt, issuedAt.Add(s.codec.TTL())); err != nil {
			slog.Warn("Failed to record issued claim",
				slog.String("type", "claim"),
				slog.String("jti", jti),
				slog.Any("error", err))
		}
	}

	redirect := s.ClaimURL(claimToken)
	result := &EnrollmentResult{Claim: claimToken, Redirect: redirect}

	slog.Info("Claim issued",
		slog.String("type", "claim"),
		slog.String("jti", jti),
		slog.String("membership_id", n.MembershipID),
		slog.String("plan_id", n.PlanID))

	if s.mailer != nil {
		if err := s.mailer.SendClaimEmail(ctx, n.Email, n.UserName, n.PlanID, redirect); err != nil {
			return result, fmt.Errorf("%w: %w", ErrCollaboratorUnavailable, err)
		}
	}

	if s.events != nil {
		if err := s.events.MarkProcessed(ctx, eventID); err != nil {
			slog.Warn("Failed to mark event processed",
				slog.String("type", "claim"),
				slog.String("event_id", eventID),
				slog.Any("error", err))
		}
	}

	return result, nil
}

// RecordEvent appends a payment event to the audit log without acting on
// it. Used for webhook kinds the service observes but does not process.
func (s *EnrollmentService) RecordEvent(ctx context.Context, eventID, eventType string, data []byte) {
	if s.events == nil || eventID == "" {
		return
	}
	if _, err := s.events.Record(ctx, eventID, eventType, data); err != nil {
		slog.Warn("Failed to record webhook event",
			slog.String("type", "claim"),
			slog.String("event_id", eventID),
			slog.Any("error", err))
	}
}

// ClaimURL builds the redemption link embedded in the claim email.
func (s *EnrollmentService) ClaimURL(claimToken string) string {
	return fmt.Sprintf("%s/discord/login?claim=%s", s.baseURL, url.QueryEscape(claimToken))
}
