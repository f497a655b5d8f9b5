package pushsvc

import (
	"context"
	"fmt"
	"sync"

	"github.com/festify/console/core"
)

type Delivery struct {
	Tokens  []string
	Message core.PushMessage
}

// ConsolePush logs notifications instead of delivering them and records what it was asked to send.
type ConsolePush struct {
	logger core.Logger
	sent   []Delivery
	mu     sync.Mutex
}

var _ core.PushService = (*ConsolePush)(nil)

func NewConsolePush(logger core.Logger) *ConsolePush {
	return &ConsolePush{logger: logger}
}

func (svc *ConsolePush) Push(_ context.Context, tokens []string, msg core.PushMessage) error {
	svc.mu.Lock()
	svc.sent = append(svc.sent, Delivery{Tokens: append([]string(nil), tokens...), Message: msg})
	svc.mu.Unlock()

	if svc.logger != nil {
		svc.logger.Info(fmt.Sprintf("push %q to %d device(s): %s", msg.Title, len(tokens), msg.Body))
	}
	return nil
}

// Sent returns the recorded deliveries.
func (svc *ConsolePush) Sent() []Delivery {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return append([]Delivery(nil), svc.sent...)
}
