package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babysteps/babysteps/internal/assistant"
	"github.com/babysteps/babysteps/internal/auth"
	"github.com/babysteps/babysteps/internal/knowledge"
	"github.com/babysteps/babysteps/internal/log"
	"github.com/babysteps/babysteps/internal/testutil"
)

const foodFixture = `[
  {
    "id": "food-001",
    "question": "Can babies eat honey?",
    "answer": "No. Avoid honey before 12 months due to infant botulism risk.",
    "category": "food_safety",
    "age_range": "12+ months"
  },
  {
    "id": "food-002",
    "question": "When can babies eat eggs?",
    "answer": "Eggs are safe from around 6 months when fully cooked.",
    "category": "food_safety",
    "age_range": "6+ months"
  }
]`

const parentingFixture = `[
  {
    "id": "parent-001",
    "question": "How do I sleep train my baby?",
    "answer": "Consistent bedtime routines help babies learn to fall asleep independently.",
    "category": "sleep",
    "age_range": "4+ months"
  }
]`

// newKnowledgeServer builds a Server wired with file-backed knowledge
// collections and a scripted assistant. The store stays nil, so only
// endpoints that never touch the database may be exercised.
func newKnowledgeServer(t *testing.T, a Generator) *Server {
	t.Helper()

	dir := t.TempDir()
	foodPath := filepath.Join(dir, "food.json")
	parentingPath := filepath.Join(dir, "parenting.json")
	require.NoError(t, os.WriteFile(foodPath, []byte(foodFixture), 0o600))
	require.NoError(t, os.WriteFile(parentingPath, []byte(parentingFixture), 0o600))

	logger := log.NewNop()
	matcher := knowledge.NewMatcher(
		knowledge.NewLoader(foodPath, logger),
		knowledge.NewLoader(parentingPath, logger),
		logger,
	)

	return &Server{
		logger:    logger,
		matcher:   matcher,
		tokens:    auth.NewTokenIssuer([]byte("0123456789abcdef0123456789abcdef")),
		assistant: a,
	}
}

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	handler(w, r)
	return w
}

func TestFoodResearch_Match(t *testing.T) {
	s := newKnowledgeServer(t, nil)

	w := postJSON(t, s.foodResearch, `{"question":"Can babies eat honey?"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var res knowledge.FoodResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Contains(t, res.Answer, "botulism")
	assert.Equal(t, knowledge.SafetyAvoid, res.SafetyLevel)
	assert.NotEmpty(t, res.Sources)
}

func TestFoodResearch_NoMatch(t *testing.T) {
	s := newKnowledgeServer(t, nil)

	w := postJSON(t, s.foodResearch, `{"question":"Can babies ride motorcycles?"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var res knowledge.FoodResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, knowledge.SafetyConsultDoctor, res.SafetyLevel)
}

func TestFoodResearch_EmptyQuestion(t *testing.T) {
	s := newKnowledgeServer(t, nil)

	w := postJSON(t, s.foodResearch, `{"question":""}`)

	// An empty query degrades to the no-match answer; it is not an error.
	require.Equal(t, http.StatusOK, w.Code)
}

func TestFoodResearch_WithBabyAge(t *testing.T) {
	s := newKnowledgeServer(t, nil)

	// The age field is named baby_age_months on the wire; unknown fields
	// are rejected, so the tag itself is load-bearing.
	w := postJSON(t, s.foodResearch, `{"question":"Can babies eat honey?","baby_age_months":8}`)

	require.Equal(t, http.StatusOK, w.Code)
	var res knowledge.FoodResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, knowledge.SafetyAvoid, res.SafetyLevel)
}

func TestResearch_ParentingMatch(t *testing.T) {
	s := newKnowledgeServer(t, nil)

	w := postJSON(t, s.research, `{"question":"How do I sleep train my baby?"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var res knowledge.ResearchResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Contains(t, res.Answer, "bedtime routines")
}

func TestEmergencyTraining_ParsesSections(t *testing.T) {
	scripted := testutil.NewScriptedAssistant(
		"1. Check responsiveness\n2. Give 5 back blows\nImportant notes:\n- Never shake the baby\nWhen to call 911:\n- Baby turns blue\n")
	s := newKnowledgeServer(t, scripted)

	w := postJSON(t, s.emergencyTraining, `{"emergency_type":"choking","baby_age_months":8}`)

	require.Equal(t, http.StatusOK, w.Code)
	var res assistant.EmergencyContent
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, []string{"1. Check responsiveness", "2. Give 5 back blows"}, res.Steps)
	assert.Equal(t, []string{"- Never shake the baby"}, res.ImportantNotes)
	assert.Equal(t, []string{"- Baby turns blue"}, res.WhenToCall911)
	assert.Equal(t, assistant.EmergencyDisclaimer, res.Disclaimer)

	// Age context must flow into both prompts.
	require.Len(t, scripted.Prompts, 1)
	assert.Contains(t, scripted.Prompts[0][0], "8 month old")
	assert.Contains(t, scripted.Prompts[0][1], "choking")
}

func TestEmergencyTraining_GenerationFailure(t *testing.T) {
	scripted := testutil.NewScriptedAssistant()
	scripted.Err = errors.New("model unavailable")
	s := newKnowledgeServer(t, scripted)

	w := postJSON(t, s.emergencyTraining, `{"emergency_type":"CPR"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var res assistant.EmergencyContent
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, []string{"CALL 911 IMMEDIATELY"}, res.Steps)
}

func TestEmergencyTraining_MissingType(t *testing.T) {
	s := newKnowledgeServer(t, testutil.NewScriptedAssistant())

	w := postJSON(t, s.emergencyTraining, `{"emergency_type":""}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEmergencyTraining_NoAssistantConfigured(t *testing.T) {
	s := newKnowledgeServer(t, nil)

	w := postJSON(t, s.emergencyTraining, `{"emergency_type":"choking"}`)

	// Degrades to the call-911 fallback instead of failing.
	require.Equal(t, http.StatusOK, w.Code)
	var res assistant.EmergencyContent
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, []string{"CALL 911 IMMEDIATELY"}, res.Steps)
}

func TestMealSearch(t *testing.T) {
	scripted := testutil.NewScriptedAssistant("Try mashed avocado with banana.")
	s := newKnowledgeServer(t, scripted)

	w := postJSON(t, s.mealSearch, `{"query":"breakfast ideas","baby_age_months":9}`)

	require.Equal(t, http.StatusOK, w.Code)
	var res mealSearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "Try mashed avocado with banana.", res.Results)
	assert.Equal(t, "breakfast ideas", res.Query)
	require.NotNil(t, res.AgeMonths)
	assert.Equal(t, 9, *res.AgeMonths)

	require.Len(t, scripted.Prompts, 1)
	assert.Contains(t, scripted.Prompts[0][1], "9 month old")
}

func TestMealSearch_GenerationFailure(t *testing.T) {
	scripted := testutil.NewScriptedAssistant()
	scripted.Err = errors.New("model unavailable")
	s := newKnowledgeServer(t, scripted)

	w := postJSON(t, s.mealSearch, `{"query":"lunch ideas"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var res mealSearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Contains(t, res.Results, "Unable to search at this time")
}

func TestRegister_Validation(t *testing.T) {
	s := newKnowledgeServer(t, nil)

	tests := []struct {
		name string
		body string
	}{
		{name: "missing email", body: `{"email":"","password":"longenough"}`},
		{name: "not an email", body: `{"email":"nope","password":"longenough"}`},
		{name: "short password", body: `{"email":"a@b.com","password":"short"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, s.register, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestVerifyEmail_BadToken(t *testing.T) {
	s := newKnowledgeServer(t, nil)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/auth/verify-email/bogus", nil)
	r.SetPathValue("token", "bogus")

	s.verifyEmail(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_token", decodeErrorEnvelope(t, w).Error)
}

func TestResetPassword_BadToken(t *testing.T) {
	s := newKnowledgeServer(t, nil)

	w := postJSON(t, s.resetPassword, `{"token":"bogus","new_password":"longenough"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNewServer_RequiresDependencies(t *testing.T) {
	_, err := NewServer(ServerConfig{})
	assert.Error(t, err)
}
