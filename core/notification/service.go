package notification

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/festify/console/core"
)

type (
	Notification struct {
		Title string `json:"title" validate:"max=100"`
		Body  string `json:"body" validate:"required,max=255"`
	}

	// TokenSource lists the push tokens of every device to notify.
	TokenSource interface {
		NotificationTokens(ctx context.Context) ([]string, error)
	}

	ServiceInterface interface {
		Send(ctx context.Context, n Notification) error
	}

	Service struct {
		tokens   TokenSource
		pusher   core.PushService
		validate *validator.Validate
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(tokens TokenSource, pusher core.PushService, validate *validator.Validate) *Service {
	return &Service{tokens: tokens, pusher: pusher, validate: validate}
}

func (n *Notification) Clean() {
	n.Title = core.CleanString(n.Title)
	n.Body = core.CleanString(n.Body)
}

// Send pushes n to every user that registered a device.
func (svc *Service) Send(ctx context.Context, n Notification) error {
	n.Clean()
	if err := svc.validate.Struct(n); err != nil {
		return err
	}

	tokens, err := svc.tokens.NotificationTokens(ctx)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		return core.NewBadRequestError("No device to notify")
	}

	if err := svc.pusher.Push(ctx, tokens, core.PushMessage{Title: n.Title, Body: n.Body}); err != nil {
		return core.NewInternalError(err, "Failed to send notifications")
	}
	return nil
}
