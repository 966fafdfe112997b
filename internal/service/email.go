package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

type EmailService struct {
	client    *resend.Client
	fromEmail string
	isDev     bool
	appURL    string
	appName   string
}

func NewEmailService(apiKey, fromEmail, appURL, appName string, isDev bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		isDev:     isDev,
		appURL:    appURL,
		appName:   appName,
	}
}

func (s *EmailService) goalURL(goalID string) string {
	return fmt.Sprintf("%s/api/goals/%s", s.appURL, goalID)
}

// send delivers a plain text email, or only logs it in development.
func (s *EmailService) send(ctx context.Context, kind, to, subject, body string, attrs ...any) error {
	if s.isDev {
		args := append([]any{"type", kind, "to", to, "subject", subject}, attrs...)
		slog.Info("email sent (dev mode)", args...)
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{to},
		Subject: subject,
		Text:    body,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send %s email: %w", kind, err)
	}

	slog.Info("email sent", "type", kind, "to", to)
	return nil
}

func (s *EmailService) SendWelcomeEmail(ctx context.Context, email string) error {
	dashboardURL := fmt.Sprintf("%s/api/dashboard", s.appURL)
	subject, body := welcomeEmailTemplate(dashboardURL, s.appName)
	return s.send(ctx, "welcome", email, subject, body, "url", dashboardURL)
}

func (s *EmailService) SendReminderEmail(ctx context.Context, email, goalID, goalTitle, closesAt string, streak int) error {
	url := s.goalURL(goalID)
	subject, body := reminderEmailTemplate(goalTitle, closesAt, streak, url, s.appName)
	return s.send(ctx, "reminder", email, subject, body, "goal_id", goalID, "closes_at", closesAt)
}

func (s *EmailService) SendBreakEndedEmail(ctx context.Context, email, goalID, goalTitle string, carryover int) error {
	url := s.goalURL(goalID)
	subject, body := breakEndedEmailTemplate(goalTitle, carryover, url, s.appName)
	return s.send(ctx, "break_ended", email, subject, body, "goal_id", goalID)
}
