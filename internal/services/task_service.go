package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/dverano/tasklist-be/internal/apperror"
	"github.com/dverano/tasklist-be/internal/models"
)

// TaskServiceProvider defines the interface for task services.
type TaskServiceProvider interface {
	List(ctx context.Context, userID int64) ([]models.Task, error)
	Create(ctx context.Context, userID int64, text string) (models.Task, error)
	Update(ctx context.Context, userID, taskID int64, text string, completed bool) (models.Task, error)
	Delete(ctx context.Context, userID, taskID int64) error
}

// TaskService provides owner-scoped task CRUD. Every statement filters by
// user_id in SQL, so a task is never visible or writable across users even if
// a caller passes a foreign task id.
type TaskService struct {
	db     *sql.DB
	events EventServiceProvider
}

// NewTaskService creates a new TaskService.
func NewTaskService(db *sql.DB, events EventServiceProvider) *TaskService {
	return &TaskService{db: db, events: events}
}

// List returns the user's tasks in insertion order.
func (s *TaskService) List(ctx context.Context, userID int64) ([]models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, text, completed, user_id FROM tasks WHERE user_id = ? ORDER BY id", userID)
	if err != nil {
		return nil, apperror.NewDatabase("failed to list tasks", err)
	}
	defer rows.Close()

	// Non-nil so an empty list serializes as [] rather than null
	tasks := []models.Task{}
	for rows.Next() {
		var task models.Task
		var completed int
		if err := rows.Scan(&task.ID, &task.Text, &completed, &task.UserID); err != nil {
			return nil, apperror.NewDatabase("failed to list tasks", err)
		}
		task.Completed = completed != 0
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabase("failed to list tasks", err)
	}
	return tasks, nil
}

// Create inserts a new, uncompleted task owned by the user.
func (s *TaskService) Create(ctx context.Context, userID int64, text string) (models.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Task{}, apperror.NewValidation("task text is required")
	}

	ctx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO tasks (text, completed, user_id) VALUES (?, 0, ?)", text, userID)
	if err != nil {
		return models.Task{}, apperror.NewDatabase("failed to create task", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.Task{}, apperror.NewDatabase("failed to create task", err)
	}

	s.recordEvent(ctx, "task.created", "created task "+text, &userID)
	return models.Task{ID: id, Text: text, Completed: false, UserID: userID}, nil
}

// Update writes new text and completion state to a task, but only if it
// exists and belongs to the user. When no row matches, the update is a silent
// no-op that still returns the requested values.
func (s *TaskService) Update(ctx context.Context, userID, taskID int64, text string, completed bool) (models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()

	completedInt := 0
	if completed {
		completedInt = 1
	}

	_, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET text = ?, completed = ? WHERE id = ? AND user_id = ?",
		text, completedInt, taskID, userID)
	if err != nil {
		return models.Task{}, apperror.NewDatabase("failed to update task", err)
	}

	return models.Task{ID: taskID, Text: text, Completed: completed, UserID: userID}, nil
}

// Delete removes a task if it exists and belongs to the user. Deleting a
// missing or foreign task is a silent no-op, which makes deletes idempotent.
func (s *TaskService) Delete(ctx context.Context, userID, taskID int64) error {
	ctx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()

	_, err := s.db.ExecContext(ctx,
		"DELETE FROM tasks WHERE id = ? AND user_id = ?", taskID, userID)
	if err != nil {
		return apperror.NewDatabase("failed to delete task", err)
	}

	s.recordEvent(ctx, "task.deleted", "deleted a task", &userID)
	return nil
}

func (s *TaskService) recordEvent(ctx context.Context, eventType, message string, userID *int64) {
	if s.events == nil {
		return
	}
	if err := s.events.Record(ctx, eventType, "info", message, userID); err != nil {
		log.Warn().Err(err).Str("type", eventType).Msg("Failed to record event")
	}
}
