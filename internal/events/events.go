package events

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	EventEntityCreated = "entity_created"
	EventEntityUpdated = "entity_updated"
	EventEntityDeleted = "entity_deleted"
	EventLogAppended   = "log_appended"
)

// Event is one entity-change notification, published on the tenant's channel
// and fanned out to that tenant's activity feed.
type Event struct {
	Type     string         `json:"type"`
	TenantID string         `json:"tenant_id"`
	Kind     string         `json:"kind"` // assets / employees / ...
	EntityID uuid.UUID      `json:"entity_id"`
	Actor    string         `json:"actor,omitempty"`
	At       time.Time      `json:"at"`
	Payload  map[string]any `json:"payload,omitempty"`
}

// Channel is the pubsub channel for one tenant's events; ChannelPattern
// matches all of them.
func Channel(tenantID string) string {
	return fmt.Sprintf("events:%s", tenantID)
}

const ChannelPattern = "events:*"

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type Subscriber interface {
	// Subscribe fans every tenant's events into handler until ctx is done.
	Subscribe(ctx context.Context, handler func(Event)) error
}
