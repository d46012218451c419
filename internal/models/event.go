package models

import "time"

// EditorEvent is a single audit-log entry for a completed dashboard mutation.
type EditorEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // SCHEDULE_CREATED | SCHEDULE_UPDATED | SCHEDULE_DELETED | SLOTS_SAVED | ROOM_ASSIGNED | HOUR_CREATED
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
