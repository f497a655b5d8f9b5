package email

import (
	"context"
	"net/mail"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/festify/console/core"
)

// searchLimit caps the accounts scanned by SearchAddresses.
const searchLimit = 1000

type (
	ServiceInterface interface {
		SearchAddresses(ctx context.Context, term string) ([]string, error)
		Send(ctx context.Context, e Email) error
	}

	Service struct {
		identities core.IdentityProvider
		mailer     core.EmailService
		validate   *validator.Validate
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(identities core.IdentityProvider, mailer core.EmailService, validate *validator.Validate) *Service {
	return &Service{identities: identities, mailer: mailer, validate: validate}
}

// SearchAddresses returns the account emails containing term, case-insensitively.
func (svc *Service) SearchAddresses(ctx context.Context, term string) ([]string, error) {
	idts, err := svc.identities.ListUsers(ctx, searchLimit)
	if err != nil {
		return nil, core.NewInternalError(err, "Failed to search email addresses")
	}
	term = core.CleanString(term, true /* lower */)
	addrs := make([]string, 0)
	for _, idt := range idts {
		if idt.Email != "" && strings.Contains(strings.ToLower(idt.Email), term) {
			addrs = append(addrs, idt.Email)
		}
	}
	return addrs, nil
}

// Send emails one address, or every account when e.To is AllRecipients (one message each).
func (svc *Service) Send(ctx context.Context, e Email) error {
	e.Clean()
	if err := e.Validate(svc.validate); err != nil {
		return err
	}

	recipients := []string{e.To}
	if e.To == AllRecipients {
		idts, err := svc.identities.ListUsers(ctx, 0)
		if err != nil {
			return core.NewInternalError(err, "Failed to get email addresses")
		}
		recipients = recipients[:0]
		for _, idt := range idts {
			if idt.Email != "" {
				recipients = append(recipients, idt.Email)
			}
		}
		if len(recipients) == 0 {
			return core.NewBadRequestError("No email address to send to")
		}
	}

	messages := make([]*core.EmailMessage, 0, len(recipients))
	for _, addr := range recipients {
		messages = append(messages, &core.EmailMessage{
			To:      []mail.Address{{Address: addr}},
			Subject: e.Subject,
			Body:    e.Body,
		})
	}
	if err := svc.mailer.SendMessages(ctx, messages...); err != nil {
		return core.NewInternalError(err, "Failed to send email")
	}
	return nil
}
