package ports

import "context"

// ContentEvent describes a committed content change, e.g. for purging the public site cache.
type ContentEvent struct {
	Event    string   `json:"event"`    // e.g. member.updated, setlist.bulk_deleted, data.imported
	Resource string   `json:"resource"` // groups, members, ...
	IDs      []string `json:"ids,omitempty"`
}

// WebhookEmitter sends content events to an external endpoint.
type WebhookEmitter interface {
	Emit(ctx context.Context, event ContentEvent) error
}
