package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/vantage-club/clubgate/clubgate/database/models"
)

// EventRepository is the append-only audit log of inbound payment events.
// Rows are inserted on receipt and mutated once, to mark processing done.
type EventRepository interface {
	// Record appends an event. Returns false when the event id was seen
	// before; the conflict-ignoring insert is the idempotency gate for
	// duplicate webhook deliveries.
	Record(ctx context.Context, eventID, eventType string, data []byte) (bool, error)
	MarkProcessed(ctx context.Context, eventID string) error
}

type eventRepository struct {
	db *bun.DB
}

func NewEventRepository(db *bun.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Record(ctx context.Context, eventID, eventType string, data []byte) (bool, error) {
	if eventID == "" {
		return false, fmt.Errorf("event id is required")
	}

	event := &models.WebhookEvent{
		EventID:   eventID,
		EventType: eventType,
		Data:      data,
		CreatedAt: time.Now(),
	}

	result, err := r.db.NewInsert().
		Model(event).
		On("CONFLICT (event_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to record webhook event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return rowsAffected == 1, nil
}

func (r *eventRepository) MarkProcessed(ctx context.Context, eventID string) error {
	_, err := r.db.NewUpdate().
		Model((*models.WebhookEvent)(nil)).
		Set("processed = true").
		Set("processed_at = ?", time.Now()).
		Where("event_id = ?", eventID).
		Where("processed = false").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to mark event processed: %w", err)
	}
	return nil
}
