package handlers

import (
	"net/http"
	"strings"

	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/idolbase/internal/application/ports"
	"github.com/amirhosseinghanipour/idolbase/internal/infrastructure/http/middleware"
)

// Auditor records committed content changes: a log line, a metric and a webhook event.
type Auditor struct {
	log     zerolog.Logger
	emitter ports.WebhookEmitter
}

// NewAuditor creates an Auditor. emitter may be nil.
func NewAuditor(log zerolog.Logger, emitter ports.WebhookEmitter) *Auditor {
	return &Auditor{log: log, emitter: emitter}
}

// Record logs the change and, if an emitter is set, forwards it. Emit failures are logged
// and never fail the request, since the change is already committed.
func (a *Auditor) Record(r *http.Request, resource, action string, ids ...string) {
	event := singular(resource) + "." + action
	a.log.Info().
		Str("event", event).
		Str("resource", resource).
		Strs("ids", ids).
		Str("ip", middleware.ClientIP(r)).
		Str("request_id", chimid.GetReqID(r.Context())).
		Msg("content_audit")
	middleware.RecordContentMutation(resource, action)
	if a.emitter == nil {
		return
	}
	if err := a.emitter.Emit(r.Context(), ports.ContentEvent{Event: event, Resource: resource, IDs: ids}); err != nil {
		a.log.Warn().Err(err).Str("event", event).Msg("webhook emit failed")
	}
}

func singular(resource string) string {
	if resource == "data" {
		return resource
	}
	return strings.TrimSuffix(resource, "s")
}

