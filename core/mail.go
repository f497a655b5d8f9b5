package core

import (
	"context"
	"net/mail"
)

type (
	EmailMessage struct {
		To      []mail.Address
		Cc      []mail.Address
		Bcc     []mail.Address
		Subject string
		Body    string // text/plain
		HTML    string // optional text/html alternative
	}

	// EmailService is any service that can send emails
	EmailService interface {
		// SendMessages sends every message and returns the first delivery error.
		SendMessages(ctx context.Context, messages ...*EmailMessage) error
	}
)

func (m *EmailMessage) HasRecipients() bool { return len(m.To)+len(m.Cc)+len(m.Bcc) > 0 }
func (m *EmailMessage) HasContent() bool    { return m.Body != "" || m.HTML != "" }
