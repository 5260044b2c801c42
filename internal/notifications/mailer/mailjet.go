package mailer

import (
	"context"
	"fmt"

	"docportal/pkg/logger"

	mailjet "github.com/mailjet/mailjet-apiv3-go/v4"
)

type MailjetMailer struct {
	client    *mailjet.Client
	fromEmail string
	fromName  string
	log       *logger.Logger
}

func NewMailjet(apiKeyPublic, apiKeyPrivate, fromEmail, fromName string, log *logger.Logger) *MailjetMailer {
	return &MailjetMailer{
		client:    mailjet.NewMailjetClient(apiKeyPublic, apiKeyPrivate),
		fromEmail: fromEmail,
		fromName:  fromName,
		log:       log,
	}
}

func (m *MailjetMailer) Send(_ context.Context, email Email) error {
	messages := mailjet.MessagesV31{
		Info: []mailjet.InfoMessagesV31{
			{
				From: &mailjet.RecipientV31{
					Email: m.fromEmail,
					Name:  m.fromName,
				},
				To: &mailjet.RecipientsV31{
					{
						Email: email.ToEmail,
						Name:  email.ToName,
					},
				},
				Subject:  email.Subject,
				TextPart: email.TextPart,
				HTMLPart: email.HTMLPart,
			},
		},
	}

	if _, err := m.client.SendMailV31(&messages); err != nil {
		return fmt.Errorf("mailjet send failed: %w", err)
	}

	m.log.Info("Email sent", "to", email.ToEmail, "subject", email.Subject)
	return nil
}
