package api

import (
	"net/http"
	"time"

	"github.com/babysteps/babysteps/internal/store"
)

func (s *Server) createReminder(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	var req store.Reminder
	if !decodeJSON(w, r, &req, s.logger) {
		return
	}
	if req.Title == "" || req.RemindAt.IsZero() {
		writeError(w, http.StatusBadRequest, "invalid_request", "title and remind_at are required", s.logger)
		return
	}
	if req.IntervalHours != nil && *req.IntervalHours <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "interval_hours must be positive", s.logger)
		return
	}

	reminder, err := s.store.CreateReminder(r.Context(), user.ID, req)
	if err != nil {
		s.storeError(w, err, "creating reminder")
		return
	}
	writeJSON(w, http.StatusCreated, reminder, s.logger)
}

func (s *Server) listReminders(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	reminders, err := s.store.ListReminders(r.Context(), user.ID)
	if err != nil {
		s.storeError(w, err, "listing reminders")
		return
	}
	writeJSON(w, http.StatusOK, reminders, s.logger)
}

type reminderPatch struct {
	Title         *string    `json:"title"`
	RemindAt      *time.Time `json:"remind_at"`
	IntervalHours *int       `json:"interval_hours"`
	Notes         *string    `json:"notes"`
}

func (s *Server) updateReminder(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	reminderID, ok := pathUUID(w, r, "id", s.logger)
	if !ok {
		return
	}
	var patch reminderPatch
	if !decodeJSON(w, r, &patch, s.logger) {
		return
	}

	// Read-modify-write: absent fields keep their stored values.
	current, err := s.store.GetReminder(r.Context(), user.ID, reminderID)
	if err != nil {
		s.storeError(w, err, "updating reminder")
		return
	}

	if patch.Title != nil {
		current.Title = *patch.Title
	}
	if patch.RemindAt != nil {
		current.RemindAt = *patch.RemindAt
	}
	if patch.IntervalHours != nil {
		current.IntervalHours = patch.IntervalHours
	}
	if patch.Notes != nil {
		current.Notes = *patch.Notes
	}
	if current.Title == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "title cannot be empty", s.logger)
		return
	}

	updated, err := s.store.UpdateReminder(r.Context(), user.ID, *current)
	if err != nil {
		s.storeError(w, err, "updating reminder")
		return
	}
	writeJSON(w, http.StatusOK, updated, s.logger)
}

func (s *Server) markReminderNotified(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	reminderID, ok := pathUUID(w, r, "id", s.logger)
	if !ok {
		return
	}
	reminder, err := s.store.MarkReminderNotified(r.Context(), user.ID, reminderID)
	if err != nil {
		s.storeError(w, err, "marking reminder notified")
		return
	}
	writeJSON(w, http.StatusOK, reminder, s.logger)
}

func (s *Server) deleteReminder(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	reminderID, ok := pathUUID(w, r, "id", s.logger)
	if !ok {
		return
	}
	if err := s.store.DeleteReminder(r.Context(), user.ID, reminderID); err != nil {
		s.storeError(w, err, "deleting reminder")
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Reminder deleted"}, s.logger)
}
