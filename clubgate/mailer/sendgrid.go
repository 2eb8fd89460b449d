// Package mailer delivers claim emails through SendGrid.
package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const claimEmailSubject = "Activa tu acceso a la comunidad"

// SendGridMailer sends claim emails. TTLHours only affects the wording in
// the email body; the token itself carries the authoritative expiry.
type SendGridMailer struct {
	client    *sendgrid.Client
	fromName  string
	fromEmail string
	ttlHours  int
}

func New(apiKey, fromName, fromEmail string, ttlHours int) *SendGridMailer {
	if ttlHours <= 0 {
		ttlHours = 24
	}
	return &SendGridMailer{
		client:    sendgrid.NewSendClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
		ttlHours:  ttlHours,
	}
}

// SendClaimEmail emails the redemption link to the payer.
func (m *SendGridMailer) SendClaimEmail(ctx context.Context, toEmail, userName, planID, claimURL string) error {
	data := claimEmailData{
		UserName: userName,
		PlanID:   planID,
		ClaimURL: claimURL,
		TTLHours: m.ttlHours,
	}

	html, err := renderClaimEmail(data)
	if err != nil {
		return err
	}

	from := mail.NewEmail(m.fromName, m.fromEmail)
	to := mail.NewEmail(userName, toEmail)
	message := mail.NewSingleEmail(from, claimEmailSubject, to, renderClaimEmailText(data), html)

	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send claim email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected claim email: status %d: %s", resp.StatusCode, resp.Body)
	}

	slog.Info("Claim email sent",
		slog.String("type", "claim"),
		slog.String("to", toEmail),
		slog.String("plan_id", planID),
		slog.Int("sendgrid_status", resp.StatusCode))
	return nil
}
