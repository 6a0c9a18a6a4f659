package mail

import (
	"context"
	"errors"
	netmail "net/mail"
)

type Provider string

const (
	ProviderSMTP   Provider = "smtp"
	ProviderResend Provider = "resend"
)

var ErrNoRecipients = errors.New("message has no recipients")

type Address struct {
	Name    string
	Address string
}

func (a Address) String() string {
	return (&netmail.Address{Name: a.Name, Address: a.Address}).String()
}

// Message is a single outgoing email. From is who the message is on behalf
// of; senders that must authenticate as a fixed mailbox put it in Reply-To.
type Message struct {
	From    Address
	To      []Address
	Subject string
	HTML    string
	Text    string
}

func (m Message) recipients() []string {
	addresses := make([]string, len(m.To))
	for i, to := range m.To {
		addresses[i] = to.Address
	}
	return addresses
}

// Sender delivers a message and returns the recipient addresses the
// provider accepted.
type Sender interface {
	Send(ctx context.Context, message Message) ([]string, error)
}
