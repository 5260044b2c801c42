package mailer

import (
	"context"

	"docportal/pkg/logger"
)

// Email is a single outbound message, already rendered.
type Email struct {
	ToEmail  string
	ToName   string
	Subject  string
	TextPart string
	HTMLPart string
}

type Mailer interface {
	Send(ctx context.Context, email Email) error
}

// ConsoleMailer logs the message instead of sending it. Used for local runs
// where no Mailjet credentials are configured.
type ConsoleMailer struct {
	log *logger.Logger
}

func NewConsole(log *logger.Logger) *ConsoleMailer {
	return &ConsoleMailer{log: log}
}

func (m *ConsoleMailer) Send(_ context.Context, email Email) error {
	m.log.Info("Email (console)",
		"to", email.ToEmail,
		"subject", email.Subject,
		"body", email.TextPart,
	)
	return nil
}
