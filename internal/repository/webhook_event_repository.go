package repository

import (
	"app/internal/domain/model"
	"context"
)

type WebhookEventRepository interface {
	// MarkProcessed inserts the event id; ErrConflict means the event was
	// already handled and the caller should ack without acting again.
	MarkProcessed(ctx context.Context, ev model.WebhookEvent) error
}
