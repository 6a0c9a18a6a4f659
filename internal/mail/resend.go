package mail

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// ResendSender delivers through the Resend API from a verified sender
// address; the original sender goes into Reply-To.
type ResendSender struct {
	logger *zap.Logger
	client *resend.Client
	from   string
}

func NewResendSender(logger *zap.Logger, client *resend.Client, from string) *ResendSender {
	return &ResendSender{
		logger: logger,
		client: client,
		from:   from,
	}
}

func (s *ResendSender) Send(ctx context.Context, message Message) ([]string, error) {
	recipients := message.recipients()
	if len(recipients) == 0 {
		return nil, ErrNoRecipients
	}

	request := &resend.SendEmailRequest{
		From:    s.from,
		To:      recipients,
		Subject: message.Subject,
		Html:    message.HTML,
		Text:    message.Text,
	}
	if message.From.Address != "" {
		request.ReplyTo = message.From.String()
	}

	sent, err := s.client.Emails.SendWithContext(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("resend delivery failed: %w", err)
	}

	s.logger.Info("Sent email through Resend", zap.String("id", sent.Id), zap.Int("recipients", len(recipients)))
	return recipients, nil
}
