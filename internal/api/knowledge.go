package api

import (
	"net/http"
)

type foodResearchRequest struct {
	Question  string `json:"question"`
	AgeMonths *int   `json:"baby_age_months"`
}

// foodResearch answers food safety questions from the curated knowledge
// base. The matcher always returns a well-formed result (an empty or
// unmatched question yields the no-match answer), so this endpoint never
// fails on input content.
func (s *Server) foodResearch(w http.ResponseWriter, r *http.Request) {
	var req foodResearchRequest
	if !decodeJSON(w, r, &req, s.logger) {
		return
	}

	result := s.matcher.FoodSafety(req.Question, req.AgeMonths)
	writeJSON(w, http.StatusOK, result, s.logger)
}

type researchRequest struct {
	Question string `json:"question"`
}

// research answers general parenting questions, composing food and
// parenting knowledge base entries when both match.
func (s *Server) research(w http.ResponseWriter, r *http.Request) {
	var req researchRequest
	if !decodeJSON(w, r, &req, s.logger) {
		return
	}

	result := s.matcher.Research(req.Question)
	writeJSON(w, http.StatusOK, result, s.logger)
}
