package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/dverano/tasklist-be/internal/apperror"
	"github.com/dverano/tasklist-be/internal/auth"
	"github.com/dverano/tasklist-be/internal/services"
)

// TaskHandler handles task CRUD for the authenticated user. It trusts the
// access gate to have resolved the caller's identity; the user id never comes
// from the request body or URL.
type TaskHandler struct {
	service services.TaskServiceProvider
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(service services.TaskServiceProvider) *TaskHandler {
	return &TaskHandler{service: service}
}

// TaskPayload defines the structure for create and update requests.
type TaskPayload struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// List returns the caller's tasks.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, r, apperror.NewInternal("server error", nil))
		return
	}

	tasks, err := h.service.List(r.Context(), claims.UserID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", claims.UserID).Msg("Failed to list tasks")
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, tasks)
}

// Create adds a new task for the caller.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, r, apperror.NewInternal("server error", nil))
		return
	}

	var payload TaskPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, r, apperror.NewValidation("invalid request body"))
		return
	}

	task, err := h.service.Create(r.Context(), claims.UserID, payload.Text)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, task)
}

// Update rewrites a task's text and completion state. A non-existent or
// foreign task id leaves storage untouched but still echoes the requested
// values, mirroring the owner-scoped UPDATE underneath.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, r, apperror.NewInternal("server error", nil))
		return
	}

	taskID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, r, apperror.NewValidation("invalid task id"))
		return
	}

	var payload TaskPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, r, apperror.NewValidation("invalid request body"))
		return
	}

	task, err := h.service.Update(r.Context(), claims.UserID, taskID, payload.Text, payload.Completed)
	if err != nil {
		log.Error().Err(err).Int64("task_id", taskID).Msg("Failed to update task")
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, task)
}

// Delete removes a task. Idempotent: deleting a missing or foreign task still
// returns 204.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, r, apperror.NewInternal("server error", nil))
		return
	}

	taskID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, r, apperror.NewValidation("invalid task id"))
		return
	}

	if err := h.service.Delete(r.Context(), claims.UserID, taskID); err != nil {
		log.Error().Err(err).Int64("task_id", taskID).Msg("Failed to delete task")
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
