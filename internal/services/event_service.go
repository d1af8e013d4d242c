package services

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/dverano/tasklist-be/internal/models"
)

// EventServiceProvider defines the interface for event services.
type EventServiceProvider interface {
	Record(ctx context.Context, eventType, level, message string, userID *int64) error
	RecentByUser(ctx context.Context, userID int64, limit int) ([]models.Event, error)
}

// EventService keeps an append-only audit trail of account and task activity.
type EventService struct {
	db *sql.DB
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB) *EventService {
	return &EventService{db: db}
}

// Record logs a new event to the database.
func (s *EventService) Record(ctx context.Context, eventType, level, message string, userID *int64) error {
	ctx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()

	event := models.Event{
		ID:      uuid.New().String(),
		Type:    eventType,
		Level:   level,
		Message: message,
		UserID:  userID,
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO events (id, type, level, message, user_id) VALUES (?, ?, ?, ?, ?)",
		event.ID, event.Type, event.Level, event.Message, event.UserID)
	return err
}

// RecentByUser retrieves the most recent events recorded for a user.
func (s *EventService) RecentByUser(ctx context.Context, userID int64, limit int) ([]models.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, type, level, message, user_id, created_at FROM events WHERE user_id = ? ORDER BY created_at DESC LIMIT ?",
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var event models.Event
		if err := rows.Scan(&event.ID, &event.Type, &event.Level, &event.Message, &event.UserID, &event.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
