package contact

import (
	"context"
	"fmt"

	"NYCU-SDC/photo-survey-backend/internal"
	"NYCU-SDC/photo-survey-backend/internal/mail"

	logutil "github.com/NYCU-SDC/summer/pkg/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type Request struct {
	Name    string `json:"name" validate:"required,min=2"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,min=10"`
}

// Service relays contact form messages to the site owner's mailbox.
type Service struct {
	logger    *zap.Logger
	tracer    trace.Tracer
	sender    mail.Sender
	recipient mail.Address
	siteName  string
}

func NewService(logger *zap.Logger, sender mail.Sender, recipient mail.Address, siteName string) *Service {
	return &Service{
		logger:    logger,
		tracer:    otel.Tracer("contact/service"),
		sender:    sender,
		recipient: recipient,
		siteName:  siteName,
	}
}

// Relay sends the request as an email on behalf of the client and returns the
// accepted recipient addresses.
func (s *Service) Relay(ctx context.Context, request Request) ([]string, error) {
	traceCtx, span := s.tracer.Start(ctx, "Relay")
	defer span.End()
	logger := logutil.WithContext(traceCtx, s.logger)

	if s.sender == nil || s.recipient.Address == "" {
		span.RecordError(internal.ErrMailNotConfigured)
		return nil, internal.ErrMailNotConfigured
	}

	subject := fmt.Sprintf("New message from %s", request.Name)
	html, err := renderEmail(templateData{
		BusinessName: s.recipient.Name,
		SiteName:     s.siteName,
		ClientName:   request.Name,
		ClientEmail:  request.Email,
		Subject:      subject,
		Message:      request.Message,
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	accepted, err := s.sender.Send(traceCtx, mail.Message{
		From:    mail.Address{Name: request.Name, Address: request.Email},
		To:      []mail.Address{s.recipient},
		Subject: subject,
		HTML:    html,
		Text:    request.Message,
	})
	if err != nil {
		logger.Error("Failed to relay contact message", zap.Error(err))
		span.RecordError(err)
		return nil, fmt.Errorf("%w: %w", internal.ErrMailSendFailed, err)
	}

	logger.Info("Relayed contact message", zap.Strings("accepted", accepted))
	return accepted, nil
}
