package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/babysteps/babysteps/internal/store"
)

// babyIDParam parses the optional baby_id query parameter.
// It returns ok=false after writing a 400 when the value is malformed.
func babyIDParam(w http.ResponseWriter, r *http.Request, s *Server) (*uuid.UUID, bool) {
	raw := r.URL.Query().Get("baby_id")
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "Invalid baby_id", s.logger)
		return nil, false
	}
	return &id, true
}

// storeError maps a store failure to an HTTP response. Ownership failures
// surface as 404 so record IDs of other users stay unguessable.
func (s *Server) storeError(w http.ResponseWriter, err error, op string) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found", "Record not found", s.logger)
		return
	}
	s.logger.Error(op, "error", err)
	writeError(w, http.StatusInternalServerError, "internal_error", "Request failed", s.logger)
}

func (s *Server) createFeeding(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	var req store.Feeding
	if !decodeJSON(w, r, &req, s.logger) {
		return
	}
	if req.BabyID == uuid.Nil || req.Type == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "baby_id and feeding_type are required", s.logger)
		return
	}
	if req.StartedAt.IsZero() {
		req.StartedAt = time.Now().UTC()
	}

	feeding, err := s.store.CreateFeeding(r.Context(), user.ID, req)
	if err != nil {
		s.storeError(w, err, "creating feeding")
		return
	}
	writeJSON(w, http.StatusCreated, feeding, s.logger)
}

func (s *Server) listFeedings(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	babyID, ok := babyIDParam(w, r, s)
	if !ok {
		return
	}
	feedings, err := s.store.ListFeedings(r.Context(), user.ID, babyID)
	if err != nil {
		s.storeError(w, err, "listing feedings")
		return
	}
	writeJSON(w, http.StatusOK, feedings, s.logger)
}

func (s *Server) deleteFeeding(w http.ResponseWriter, r *http.Request) {
	s.deleteRecord(w, r, "deleting feeding", s.store.DeleteFeeding)
}

func (s *Server) createDiaper(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	var req store.Diaper
	if !decodeJSON(w, r, &req, s.logger) {
		return
	}
	if req.BabyID == uuid.Nil || req.Type == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "baby_id and diaper_type are required", s.logger)
		return
	}
	if req.ChangedAt.IsZero() {
		req.ChangedAt = time.Now().UTC()
	}

	diaper, err := s.store.CreateDiaper(r.Context(), user.ID, req)
	if err != nil {
		s.storeError(w, err, "creating diaper")
		return
	}
	writeJSON(w, http.StatusCreated, diaper, s.logger)
}

func (s *Server) listDiapers(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	babyID, ok := babyIDParam(w, r, s)
	if !ok {
		return
	}
	diapers, err := s.store.ListDiapers(r.Context(), user.ID, babyID)
	if err != nil {
		s.storeError(w, err, "listing diapers")
		return
	}
	writeJSON(w, http.StatusOK, diapers, s.logger)
}

func (s *Server) deleteDiaper(w http.ResponseWriter, r *http.Request) {
	s.deleteRecord(w, r, "deleting diaper", s.store.DeleteDiaper)
}

func (s *Server) startSleep(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	var req store.SleepSession
	if !decodeJSON(w, r, &req, s.logger) {
		return
	}
	if req.BabyID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "baby_id is required", s.logger)
		return
	}
	if req.StartedAt.IsZero() {
		req.StartedAt = time.Now().UTC()
	}

	sess, err := s.store.StartSleep(r.Context(), user.ID, req)
	if err != nil {
		s.storeError(w, err, "starting sleep session")
		return
	}
	writeJSON(w, http.StatusCreated, sess, s.logger)
}

func (s *Server) endSleep(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	sleepID, ok := pathUUID(w, r, "id", s.logger)
	if !ok {
		return
	}
	sess, err := s.store.EndSleep(r.Context(), user.ID, sleepID, time.Now().UTC())
	if err != nil {
		s.storeError(w, err, "ending sleep session")
		return
	}
	writeJSON(w, http.StatusOK, sess, s.logger)
}

func (s *Server) listSleep(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	babyID, ok := babyIDParam(w, r, s)
	if !ok {
		return
	}
	sessions, err := s.store.ListSleep(r.Context(), user.ID, babyID)
	if err != nil {
		s.storeError(w, err, "listing sleep sessions")
		return
	}
	writeJSON(w, http.StatusOK, sessions, s.logger)
}

func (s *Server) deleteSleep(w http.ResponseWriter, r *http.Request) {
	s.deleteRecord(w, r, "deleting sleep session", s.store.DeleteSleep)
}

func (s *Server) createPumping(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	var req store.Pumping
	if !decodeJSON(w, r, &req, s.logger) {
		return
	}
	if req.AmountML <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "amount_ml must be positive", s.logger)
		return
	}
	if req.PumpedAt.IsZero() {
		req.PumpedAt = time.Now().UTC()
	}
	if req.BreastSide == "" {
		req.BreastSide = "both"
	}

	pumping, err := s.store.CreatePumping(r.Context(), user.ID, req)
	if err != nil {
		s.storeError(w, err, "creating pumping")
		return
	}
	writeJSON(w, http.StatusCreated, pumping, s.logger)
}

func (s *Server) listPumpings(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	pumpings, err := s.store.ListPumpings(r.Context(), user.ID)
	if err != nil {
		s.storeError(w, err, "listing pumpings")
		return
	}
	writeJSON(w, http.StatusOK, pumpings, s.logger)
}

func (s *Server) deletePumping(w http.ResponseWriter, r *http.Request) {
	s.deleteRecord(w, r, "deleting pumping", s.store.DeletePumping)
}

func (s *Server) createMeasurement(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	var req store.Measurement
	if !decodeJSON(w, r, &req, s.logger) {
		return
	}
	if req.BabyID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "baby_id is required", s.logger)
		return
	}
	if req.WeightKG == nil && req.HeightCM == nil && req.HeadCircumferenceCM == nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "At least one measurement value is required", s.logger)
		return
	}
	if req.MeasuredAt.IsZero() {
		req.MeasuredAt = time.Now().UTC()
	}

	m, err := s.store.CreateMeasurement(r.Context(), user.ID, req)
	if err != nil {
		s.storeError(w, err, "creating measurement")
		return
	}
	writeJSON(w, http.StatusCreated, m, s.logger)
}

func (s *Server) listMeasurements(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	babyID, ok := babyIDParam(w, r, s)
	if !ok {
		return
	}
	measurements, err := s.store.ListMeasurements(r.Context(), user.ID, babyID)
	if err != nil {
		s.storeError(w, err, "listing measurements")
		return
	}
	writeJSON(w, http.StatusOK, measurements, s.logger)
}

func (s *Server) deleteMeasurement(w http.ResponseWriter, r *http.Request) {
	s.deleteRecord(w, r, "deleting measurement", s.store.DeleteMeasurement)
}

func (s *Server) createMilestone(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	var req store.Milestone
	if !decodeJSON(w, r, &req, s.logger) {
		return
	}
	if req.BabyID == uuid.Nil || req.Title == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "baby_id and title are required", s.logger)
		return
	}
	if req.AchievedAt.IsZero() {
		req.AchievedAt = time.Now().UTC()
	}

	m, err := s.store.CreateMilestone(r.Context(), user.ID, req)
	if err != nil {
		s.storeError(w, err, "creating milestone")
		return
	}
	writeJSON(w, http.StatusCreated, m, s.logger)
}

func (s *Server) listMilestones(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	babyID, ok := babyIDParam(w, r, s)
	if !ok {
		return
	}
	milestones, err := s.store.ListMilestones(r.Context(), user.ID, babyID)
	if err != nil {
		s.storeError(w, err, "listing milestones")
		return
	}
	writeJSON(w, http.StatusOK, milestones, s.logger)
}

func (s *Server) deleteMilestone(w http.ResponseWriter, r *http.Request) {
	s.deleteRecord(w, r, "deleting milestone", s.store.DeleteMilestone)
}

// deleteRecord handles the shared shape of all activity delete endpoints.
func (s *Server) deleteRecord(w http.ResponseWriter, r *http.Request, op string, del func(ctx context.Context, userID, recordID uuid.UUID) error) {
	user, _ := userFromContext(r.Context())

	recordID, ok := pathUUID(w, r, "id", s.logger)
	if !ok {
		return
	}
	if err := del(r.Context(), user.ID, recordID); err != nil {
		s.storeError(w, err, op)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Record deleted"}, s.logger)
}
