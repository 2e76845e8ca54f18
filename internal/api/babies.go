package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/babysteps/babysteps/internal/store"
)

// birthDateFormat is the wire format for baby birth dates.
const birthDateFormat = "2006-01-02"

type babyRequest struct {
	Name      string `json:"name"`
	BirthDate string `json:"birth_date"`
	Gender    string `json:"gender"`
}

func (req babyRequest) validate() (time.Time, string, bool) {
	if req.Name == "" {
		return time.Time{}, "Name is required", false
	}
	birthDate, err := time.Parse(birthDateFormat, req.BirthDate)
	if err != nil {
		return time.Time{}, "birth_date must be formatted as YYYY-MM-DD", false
	}
	return birthDate, "", true
}

func (s *Server) createBaby(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	var req babyRequest
	if !decodeJSON(w, r, &req, s.logger) {
		return
	}
	birthDate, msg, ok := req.validate()
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_request", msg, s.logger)
		return
	}

	baby, err := s.store.CreateBaby(r.Context(), user.ID, req.Name, birthDate, req.Gender)
	if err != nil {
		s.logger.Error("creating baby", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "Could not create baby", s.logger)
		return
	}
	writeJSON(w, http.StatusCreated, baby, s.logger)
}

func (s *Server) listBabies(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	babies, err := s.store.ListBabies(r.Context(), user.ID)
	if err != nil {
		s.logger.Error("listing babies", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "Could not list babies", s.logger)
		return
	}
	writeJSON(w, http.StatusOK, babies, s.logger)
}

func (s *Server) updateBaby(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	babyID, ok := pathUUID(w, r, "id", s.logger)
	if !ok {
		return
	}
	var req babyRequest
	if !decodeJSON(w, r, &req, s.logger) {
		return
	}
	birthDate, msg, valid := req.validate()
	if !valid {
		writeError(w, http.StatusBadRequest, "invalid_request", msg, s.logger)
		return
	}

	baby, err := s.store.UpdateBaby(r.Context(), user.ID, babyID, req.Name, birthDate, req.Gender)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Baby not found", s.logger)
			return
		}
		s.logger.Error("updating baby", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "Could not update baby", s.logger)
		return
	}
	writeJSON(w, http.StatusOK, baby, s.logger)
}

func (s *Server) deleteBaby(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	babyID, ok := pathUUID(w, r, "id", s.logger)
	if !ok {
		return
	}
	if err := s.store.DeleteBaby(r.Context(), user.ID, babyID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Baby not found", s.logger)
			return
		}
		s.logger.Error("deleting baby", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "Could not delete baby", s.logger)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Baby deleted"}, s.logger)
}

// pathUUID parses the named path segment as a UUID, writing a 400 on failure.
func pathUUID(w http.ResponseWriter, r *http.Request, name string, logger *slog.Logger) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "Invalid "+name, logger)
		return uuid.UUID{}, false
	}
	return id, true
}
