package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"memberfund-backend/internal/config"
	"memberfund-backend/internal/logger"
)

type emailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
	enabled   bool
}

func NewEmailService(cfg config.EmailConfig) EmailService {
	return &emailService{
		client:    sendgrid.NewSendClient(cfg.APIKey),
		fromEmail: cfg.From,
		fromName:  cfg.FromName,
		enabled:   cfg.Enabled,
	}
}

func (s *emailService) send(ctx context.Context, toEmail, toName, subject, plainText, htmlContent string) error {
	if !s.enabled {
		logger.Debug("Email disabled, skipping send", "to", toEmail, "subject", subject)
		return nil
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)

	logger.ExternalServiceCall("sendgrid", "Send", "to", toEmail, "subject", subject)
	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "Send", err)
		return fmt.Errorf("sending email to %s: %w", toEmail, err)
	}
	if response.StatusCode >= 400 {
		err := fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", "Send", err)
		return err
	}

	logger.ExternalServiceResult("sendgrid", "Send", nil)
	return nil
}

func (s *emailService) SendDefaultWarning(ctx context.Context, email, name string, daysUntilDefault int) error {
	subject := "Membership Payment Reminder"
	plainText := fmt.Sprintf("Hi %s, your membership payment is due. You have %d days before your account enters default.", name, daysUntilDefault)
	htmlContent := fmt.Sprintf(`
		<html><body>
			<h2>Payment Reminder</h2>
			<p>Hi %s,</p>
			<p>Your monthly membership payment is due. You have <strong>%d days</strong> before your account enters default and you lose your place in the payout queue.</p>
		</body></html>`, name, daysUntilDefault)
	return s.send(ctx, email, name, subject, plainText, htmlContent)
}

func (s *emailService) SendDefaultNotice(ctx context.Context, email, name string, daysSinceLastPayment int) error {
	subject := "Membership Account in Default"
	plainText := fmt.Sprintf("Hi %s, your account has entered default. Your last payment was %d days ago.", name, daysSinceLastPayment)
	htmlContent := fmt.Sprintf(`
		<html><body>
			<h2>Account in Default</h2>
			<p>Hi %s,</p>
			<p>Your account has entered default. Your last completed payment was <strong>%d days</strong> ago. Make a payment to restore your payout eligibility.</p>
		</body></html>`, name, daysSinceLastPayment)
	return s.send(ctx, email, name, subject, plainText, htmlContent)
}

func (s *emailService) SendProposalNotification(ctx context.Context, email, name string, amountCents int64, requiredApprovals int) error {
	subject := "Payout Proposal Awaiting Approval"
	plainText := fmt.Sprintf("Hi %s, a payout proposal of $%.2f requires %d approval(s). Please review it.", name, float64(amountCents)/100, requiredApprovals)
	htmlContent := fmt.Sprintf(`
		<html><body>
			<h2>Payout Proposal</h2>
			<p>Hi %s,</p>
			<p>A payout proposal of <strong>$%.2f</strong> has been drafted and requires <strong>%d approval(s)</strong>.</p>
			<p>Please sign in to record your decision.</p>
		</body></html>`, name, float64(amountCents)/100, requiredApprovals)
	return s.send(ctx, email, name, subject, plainText, htmlContent)
}

func (s *emailService) SendWorkflowResolvedNotification(ctx context.Context, email, name string, status string, amountCents int64) error {
	subject := fmt.Sprintf("Payout Workflow %s", status)
	plainText := fmt.Sprintf("Hi %s, the payout workflow for $%.2f has been resolved: %s.", name, float64(amountCents)/100, status)
	htmlContent := fmt.Sprintf(`
		<html><body>
			<h2>Payout Workflow Resolved</h2>
			<p>Hi %s,</p>
			<p>The payout workflow for <strong>$%.2f</strong> has been resolved with status <strong>%s</strong>.</p>
		</body></html>`, name, float64(amountCents)/100, status)
	return s.send(ctx, email, name, subject, plainText, htmlContent)
}

func (s *emailService) SendFundReadyNotification(ctx context.Context, email, name string, totalRevenueCents int64, potentialWinners int) error {
	subject := "Payout Fund Ready"
	plainText := fmt.Sprintf("Hi %s, the payout fund has reached its threshold with $%.2f collected, covering %d winner(s).", name, float64(totalRevenueCents)/100, potentialWinners)
	htmlContent := fmt.Sprintf(`
		<html><body>
			<h2>Payout Fund Ready</h2>
			<p>Hi %s,</p>
			<p>The payout fund has reached its threshold with <strong>$%.2f</strong> collected, enough to cover <strong>%d winner(s)</strong>.</p>
			<p>You may now draft a payout proposal.</p>
		</body></html>`, name, float64(totalRevenueCents)/100, potentialWinners)
	return s.send(ctx, email, name, subject, plainText, htmlContent)
}
