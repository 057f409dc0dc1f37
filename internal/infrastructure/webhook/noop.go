package webhook

import (
	"context"

	"github.com/amirhosseinghanipour/idolbase/internal/application/ports"
)

// NoopEmitter discards content events when WEBHOOK_URL is not set.
type NoopEmitter struct{}

// NewNoopEmitter returns a WebhookEmitter that discards all events.
func NewNoopEmitter() *NoopEmitter {
	return &NoopEmitter{}
}

// Emit implements ports.WebhookEmitter.
func (e *NoopEmitter) Emit(_ context.Context, _ ports.ContentEvent) error {
	return nil
}

var _ ports.WebhookEmitter = (*NoopEmitter)(nil)
