package mail

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"mime/multipart"
	"net"
	"net/smtp"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const implicitTLSPort = 465

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
}

// SMTPSender authenticates as a single mailbox. Port 465 uses implicit TLS,
// every other port is upgraded with STARTTLS when the relay offers it.
type SMTPSender struct {
	logger *zap.Logger
	config SMTPConfig
	now    func() time.Time
}

func NewSMTPSender(logger *zap.Logger, config SMTPConfig) *SMTPSender {
	return &SMTPSender{
		logger: logger,
		config: config,
		now:    time.Now,
	}
}

func (s *SMTPSender) Send(ctx context.Context, message Message) ([]string, error) {
	recipients := message.recipients()
	if len(recipients) == 0 {
		return nil, ErrNoRecipients
	}

	raw, err := s.buildMessage(message)
	if err != nil {
		return nil, err
	}

	addr := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
	auth := smtp.PlainAuth("", s.config.User, s.config.Password, s.config.Host)

	err = s.deliver(ctx, addr, auth, recipients, raw)
	if err != nil {
		return nil, fmt.Errorf("smtp delivery to %s failed: %w", addr, err)
	}

	s.logger.Info("Sent email over SMTP", zap.String("subject", message.Subject), zap.Int("recipients", len(recipients)))
	return recipients, nil
}

// dial opens the relay connection under ctx. Port 465 speaks TLS from the
// first byte; other ports start in plain text and are upgraded later.
func (s *SMTPSender) dial(ctx context.Context, addr string) (net.Conn, error) {
	if s.config.Port == implicitTLSPort {
		dialer := &tls.Dialer{Config: &tls.Config{ServerName: s.config.Host}}
		return dialer.DialContext(ctx, "tcp", addr)
	}

	dialer := &net.Dialer{}
	return dialer.DialContext(ctx, "tcp", addr)
}

// deliver runs one SMTP transaction. The connection carries the context
// deadline and is closed on cancellation, so a relay that stops answering
// cannot outlive the request.
func (s *SMTPSender) deliver(ctx context.Context, addr string, auth smtp.Auth, recipients []string, raw []byte) error {
	conn, err := s.dial(ctx, addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		err = conn.SetDeadline(deadline)
		if err != nil {
			return err
		}
	}
	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
	defer stop()

	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		return err
	}
	defer client.Close()

	if s.config.Port != implicitTLSPort {
		if ok, _ := client.Extension("STARTTLS"); ok {
			err = client.StartTLS(&tls.Config{ServerName: s.config.Host})
			if err != nil {
				return err
			}
		}
	}

	if ok, _ := client.Extension("AUTH"); ok {
		err = client.Auth(auth)
		if err != nil {
			return err
		}
	}

	err = client.Mail(s.config.User)
	if err != nil {
		return err
	}
	for _, recipient := range recipients {
		err = client.Rcpt(recipient)
		if err != nil {
			return err
		}
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	_, err = w.Write(raw)
	if err != nil {
		return err
	}
	err = w.Close()
	if err != nil {
		return err
	}

	return client.Quit()
}

// buildMessage renders a multipart/alternative message. The From header keeps
// the display name of the message but uses the authenticated mailbox, and
// replies go to the original sender.
func (s *SMTPSender) buildMessage(message Message) ([]byte, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	parts := []struct {
		contentType string
		content     string
	}{
		{contentType: "text/plain; charset=UTF-8", content: message.Text},
		{contentType: "text/html; charset=UTF-8", content: message.HTML},
	}
	for _, part := range parts {
		if part.content == "" {
			continue
		}
		w, err := writer.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {part.contentType},
			"Content-Transfer-Encoding": {"8bit"},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create message part: %w", err)
		}
		_, err = w.Write([]byte(part.content))
		if err != nil {
			return nil, fmt.Errorf("failed to write message part: %w", err)
		}
	}
	err := writer.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to finish message: %w", err)
	}

	to := make([]string, len(message.To))
	for i, recipient := range message.To {
		to[i] = recipient.String()
	}

	var raw bytes.Buffer
	headers := [][2]string{
		{"From", Address{Name: message.From.Name, Address: s.config.User}.String()},
		{"Reply-To", message.From.String()},
		{"To", strings.Join(to, ", ")},
		{"Subject", mime.QEncoding.Encode("utf-8", message.Subject)},
		{"Date", s.now().Format(time.RFC1123Z)},
		{"MIME-Version", "1.0"},
		{"Content-Type", "multipart/alternative; boundary=" + writer.Boundary()},
	}
	for _, header := range headers {
		fmt.Fprintf(&raw, "%s: %s\r\n", header[0], header[1])
	}
	raw.WriteString("\r\n")
	raw.Write(body.Bytes())

	return raw.Bytes(), nil
}
