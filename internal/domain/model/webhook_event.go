package model

import "time"

// WebhookEvent records a gateway event id once it has been acted on, so a
// redelivered webhook never re-runs confirmation.
type WebhookEvent struct {
	EventID     string    `gorm:"type:varchar(128);primaryKey" json:"eventId"`
	EventType   string    `gorm:"type:varchar(64);index" json:"eventType"`
	ProcessedAt time.Time `gorm:"not null" json:"processedAt"`
}
