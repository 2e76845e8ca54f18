package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/babysteps/babysteps/internal/assistant"
	"github.com/babysteps/babysteps/internal/store"
)

var errNoAssistant = errors.New("assistant not configured")

// generate calls the configured LLM assistant. Callers are expected to
// degrade gracefully on error; an unconfigured assistant is just another
// generation failure.
func (s *Server) generate(ctx context.Context, system, prompt string) (string, error) {
	if s.assistant == nil {
		return "", errNoAssistant
	}
	return s.assistant.Generate(ctx, system, prompt)
}

type foodSafetyCheckRequest struct {
	BabyID    uuid.UUID `json:"baby_id"`
	FoodItem  string    `json:"food_item"`
	AgeMonths int       `json:"age_months"`
}

// foodSafetyCheck asks the LLM whether a food is safe at the given age and
// logs the verdict. A generation failure still records and returns a
// conservative unsafe result rather than an error.
func (s *Server) foodSafetyCheck(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	var req foodSafetyCheckRequest
	if !decodeJSON(w, r, &req, s.logger) {
		return
	}
	if req.BabyID == uuid.Nil || req.FoodItem == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "baby_id and food_item are required", s.logger)
		return
	}
	if _, err := s.store.GetBaby(r.Context(), user.ID, req.BabyID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Baby not found", s.logger)
			return
		}
		s.storeError(w, err, "checking baby ownership")
		return
	}

	check := store.FoodSafetyCheck{
		BabyID:    req.BabyID,
		FoodItem:  req.FoodItem,
		AgeMonths: req.AgeMonths,
		CheckedAt: time.Now().UTC(),
	}

	response, err := s.generate(r.Context(),
		assistant.FoodSafetySystemPrompt,
		assistant.FoodSafetyPrompt(req.FoodItem, req.AgeMonths))
	if err != nil {
		s.logger.Error("food safety generation failed", "error", err)
		check.IsSafe = false
		check.SafetyNotes = "Unable to assess safety at this time. Please consult your pediatrician."
	} else {
		check.IsSafe = assistant.AssessSafety(response)
		check.SafetyNotes = response
	}

	recorded, err := s.store.RecordFoodSafetyCheck(r.Context(), user.ID, check)
	if err != nil {
		s.storeError(w, err, "recording food safety check")
		return
	}
	writeJSON(w, http.StatusOK, recorded, s.logger)
}

func (s *Server) foodSafetyHistory(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	babyID, ok := babyIDParam(w, r, s)
	if !ok {
		return
	}
	checks, err := s.store.ListFoodSafetyChecks(r.Context(), user.ID, babyID)
	if err != nil {
		s.storeError(w, err, "listing food safety checks")
		return
	}
	writeJSON(w, http.StatusOK, checks, s.logger)
}

type emergencyRequest struct {
	EmergencyType string `json:"emergency_type"`
	BabyAgeMonths *int   `json:"baby_age_months"`
}

// emergencyTraining returns step-by-step emergency instructions. When
// generation fails the response still carries actionable content: call 911.
func (s *Server) emergencyTraining(w http.ResponseWriter, r *http.Request) {
	var req emergencyRequest
	if !decodeJSON(w, r, &req, s.logger) {
		return
	}
	if req.EmergencyType == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "emergency_type is required", s.logger)
		return
	}

	ageContext := assistant.AgeContext(req.BabyAgeMonths)
	response, err := s.generate(r.Context(),
		assistant.EmergencySystemPrompt(req.EmergencyType, ageContext),
		assistant.EmergencyPrompt(req.EmergencyType, ageContext))
	if err != nil {
		s.logger.Error("emergency training generation failed", "error", err)
		writeJSON(w, http.StatusOK, assistant.EmergencyContent{
			Steps:          []string{"CALL 911 IMMEDIATELY"},
			ImportantNotes: []string{"Emergency information unavailable - seek immediate professional help"},
			Disclaimer:     "Emergency information system unavailable. Call 911 for any emergency.",
			WhenToCall911:  []string{"ALWAYS - when emergency information is unavailable"},
		}, s.logger)
		return
	}

	writeJSON(w, http.StatusOK, assistant.ParseEmergencyResponse(response), s.logger)
}

func (s *Server) createMealPlan(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	var req store.MealPlan
	if !decodeJSON(w, r, &req, s.logger) {
		return
	}
	if req.BabyID == uuid.Nil || req.MealName == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "baby_id and meal_name are required", s.logger)
		return
	}

	meal, err := s.store.CreateMealPlan(r.Context(), user.ID, req)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Baby not found", s.logger)
			return
		}
		s.storeError(w, err, "creating meal plan")
		return
	}
	writeJSON(w, http.StatusCreated, meal, s.logger)
}

func (s *Server) listMealPlans(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	babyID, ok := babyIDParam(w, r, s)
	if !ok {
		return
	}

	var ageMonths *int
	if raw := r.URL.Query().Get("age_months"); raw != "" {
		age, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "age_months must be an integer", s.logger)
			return
		}
		ageMonths = &age
	}

	meals, err := s.store.ListMealPlans(r.Context(), user.ID, babyID, ageMonths)
	if err != nil {
		s.storeError(w, err, "listing meal plans")
		return
	}
	writeJSON(w, http.StatusOK, meals, s.logger)
}

type mealSearchRequest struct {
	Query         string `json:"query"`
	BabyAgeMonths *int   `json:"baby_age_months"`
}

type mealSearchResponse struct {
	Results   string `json:"results"`
	Query     string `json:"query"`
	AgeMonths *int   `json:"age_months"`
}

// mealSearch passes a free-form meal or food question to the LLM.
func (s *Server) mealSearch(w http.ResponseWriter, r *http.Request) {
	var req mealSearchRequest
	if !decodeJSON(w, r, &req, s.logger) {
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "query is required", s.logger)
		return
	}

	results, err := s.generate(r.Context(),
		assistant.MealSearchSystemPrompt,
		assistant.MealSearchPrompt(req.Query, req.BabyAgeMonths))
	if err != nil {
		s.logger.Error("meal search generation failed", "error", err)
		results = "Unable to search at this time. Please consult your pediatrician for feeding guidance."
	}

	writeJSON(w, http.StatusOK, mealSearchResponse{
		Results:   results,
		Query:     req.Query,
		AgeMonths: req.BabyAgeMonths,
	}, s.logger)
}
