package api

import (
	"errors"
	"net/http"

	"github.com/babysteps/babysteps/internal/store"
)

func (s *Server) dashboardSummary(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	babyID, ok := pathUUID(w, r, "baby_id", s.logger)
	if !ok {
		return
	}
	summary, err := s.store.DashboardSummary(r.Context(), user.ID, babyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Baby not found", s.logger)
			return
		}
		s.logger.Error("building dashboard summary", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "Request failed", s.logger)
		return
	}
	writeJSON(w, http.StatusOK, summary, s.logger)
}

func (s *Server) getDashboardLayout(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	layout, err := s.store.GetDashboardLayout(r.Context(), user.ID)
	if err != nil {
		s.storeError(w, err, "getting dashboard layout")
		return
	}
	writeJSON(w, http.StatusOK, layout, s.logger)
}

type layoutRequest struct {
	Widgets []store.Widget `json:"widgets"`
}

func (s *Server) updateDashboardLayout(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	var req layoutRequest
	if !decodeJSON(w, r, &req, s.logger) {
		return
	}
	for _, widget := range req.Widgets {
		if widget.ID == "" || widget.Type == "" {
			writeError(w, http.StatusBadRequest, "invalid_request", "Every widget needs an id and a widget_type", s.logger)
			return
		}
	}

	layout, err := s.store.ReplaceDashboardLayout(r.Context(), user.ID, req.Widgets)
	if err != nil {
		s.storeError(w, err, "replacing dashboard layout")
		return
	}
	writeJSON(w, http.StatusOK, layout, s.logger)
}

type addWidgetRequest struct {
	WidgetType string `json:"widget_type"`
}

func (s *Server) addWidget(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	var req addWidgetRequest
	if !decodeJSON(w, r, &req, s.logger) {
		return
	}

	layout, err := s.store.AddWidget(r.Context(), user.ID, req.WidgetType)
	if err != nil {
		if errors.Is(err, store.ErrUnknownWidgetType) {
			writeError(w, http.StatusBadRequest, "unknown_widget_type", "Unknown widget type", s.logger)
			return
		}
		s.storeError(w, err, "adding widget")
		return
	}
	writeJSON(w, http.StatusCreated, layout, s.logger)
}

func (s *Server) removeWidget(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	widgetID := r.PathValue("id")
	layout, err := s.store.RemoveWidget(r.Context(), user.ID, widgetID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Widget not found", s.logger)
			return
		}
		s.storeError(w, err, "removing widget")
		return
	}
	writeJSON(w, http.StatusOK, layout, s.logger)
}

type availableWidgetsResponse struct {
	WidgetTypes []string `json:"widget_types"`
}

func (s *Server) availableWidgets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, availableWidgetsResponse{WidgetTypes: store.AvailableWidgetTypes}, s.logger)
}
