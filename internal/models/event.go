package models

import "time"

// Event represents a loggable action in the system.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`  // e.g., "user.registered", "task.created"
	Level     string    `json:"level"` // e.g., "info", "warn"
	Message   string    `json:"message"`
	UserID    *int64    `json:"userId,omitempty"` // Nullable for system-wide events
	CreatedAt time.Time `json:"createdAt"`
}
