package models

import (
	"time"

	"github.com/uptrace/bun"
)

// WebhookEvent is the append-only log of inbound payment notifications. The
// unique event_id doubles as the idempotency key for duplicate deliveries.
type WebhookEvent struct {
	bun.BaseModel `bun:"table:webhook_events,alias:we"`

	ID          int64      `bun:"id,pk,autoincrement"`
	EventID     string     `bun:"event_id,notnull,unique"`
	EventType   string     `bun:"event_type,notnull"`
	Data        []byte     `bun:"data,type:jsonb"`
	Processed   bool       `bun:"processed,notnull,default:false"`
	ProcessedAt *time.Time `bun:"processed_at"`
	CreatedAt   time.Time  `bun:"created_at,notnull,default:current_timestamp"`
}
