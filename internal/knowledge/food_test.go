package knowledge

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babysteps/babysteps/internal/log"
)

// newTestMatcher builds a matcher over the testdata collections.
func newTestMatcher(t *testing.T) *Matcher {
	t.Helper()
	logger := log.NewNop()
	food := NewLoader(filepath.Join("testdata", "food_research.json"), logger)
	parenting := NewLoader(filepath.Join("testdata", "parenting.json"), logger)
	return NewMatcher(food, parenting, logger)
}

// writeCollection writes entries as a JSON file in a temp dir and returns
// a loader for it.
func writeCollection(t *testing.T, name, content string) *Loader {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return NewLoader(path, log.NewNop())
}

func TestFoodSafety_ExactQuestionMatch(t *testing.T) {
	t.Parallel()
	m := newTestMatcher(t)

	res := m.FoodSafety("Can babies eat honey?", nil)

	assert.Contains(t, res.Answer, "botulism")
	assert.Equal(t, SafetyAvoid, res.SafetyLevel)
	assert.Equal(t, "12+ months", res.AgeRecommendation)
	require.Len(t, res.Sources, 2)
	assert.Equal(t, "Knowledge Base Question ID: food-001", res.Sources[0])
}

func TestFoodSafety_CaseInsensitive(t *testing.T) {
	t.Parallel()
	m := newTestMatcher(t)

	res := m.FoodSafety("CAN BABIES EAT HONEY?", nil)

	assert.Contains(t, res.Answer, "botulism")
	assert.Equal(t, SafetyAvoid, res.SafetyLevel)
}

func TestFoodSafety_AliasMatching(t *testing.T) {
	t.Parallel()
	m := newTestMatcher(t)

	tests := []struct {
		name      string
		question  string
		wantID    string
		wantLevel SafetyLevel
	}{
		{
			name:      "strawberries plural resolves via stem",
			question:  "Are strawberries ok for my baby?",
			wantID:    "food-004",
			wantLevel: SafetyCaution,
		},
		{
			name:      "honey safety question",
			question:  "Is honey safe for babies?",
			wantID:    "food-001",
			wantLevel: SafetyAvoid,
		},
		{
			name:      "nuts resolves to peanut entry",
			question:  "When can my baby have nuts?",
			wantID:    "food-005",
			wantLevel: SafetyCaution,
		},
		{
			name:      "avocado",
			question:  "Is avocado safe for my baby to eat?",
			wantID:    "food-003",
			wantLevel: SafetySafe,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := m.FoodSafety(tt.question, nil)

			require.Len(t, res.Sources, 2)
			assert.Equal(t, "Knowledge Base Question ID: "+tt.wantID, res.Sources[0])
			assert.Equal(t, tt.wantLevel, res.SafetyLevel)
		})
	}
}

// A query about one food must never surface an entry about another food,
// even when both entries are full of shared safety keywords.
func TestFoodSafety_NoCrossFoodLeakage(t *testing.T) {
	t.Parallel()
	m := newTestMatcher(t)

	res := m.FoodSafety("Are strawberries ok for my baby?", nil)

	assert.NotContains(t, res.Answer, "botulism")
	assert.Contains(t, strings.ToLower(res.Answer), "strawberr")
}

func TestFoodSafety_SubstringMatchWithoutAlias(t *testing.T) {
	t.Parallel()
	m := newTestMatcher(t)

	// "when can babies eat" is contained in the eggs entry question, which
	// clears the threshold on the substring score alone.
	res := m.FoodSafety("when can babies eat", nil)

	require.Len(t, res.Sources, 2)
	assert.Equal(t, "Knowledge Base Question ID: food-002", res.Sources[0])
}

func TestFoodSafety_NoMatch(t *testing.T) {
	t.Parallel()
	m := newTestMatcher(t)

	res := m.FoodSafety("Can babies eat pizza?", nil)

	assert.Contains(t, res.Answer, "Not Available")
	assert.Equal(t, SafetyConsultDoctor, res.SafetyLevel)
	assert.NotContains(t, res.Answer, "botulism", "must not fall back to an unrelated entry")
	// Example foods are listed as a display aid.
	assert.Contains(t, res.Answer, "Honey (12+ months)")
	assert.Contains(t, res.Answer, "Strawberries (6+ months)")
}

// Safety keywords alone must never clear the threshold: the keyword bonus
// is gated on a food-alias match per candidate.
func TestFoodSafety_KeywordsWithoutFoodDoNotMatch(t *testing.T) {
	t.Parallel()
	m := newTestMatcher(t)

	res := m.FoodSafety("is it safe to eat when my baby can", nil)

	assert.Contains(t, res.Answer, "Not Available")
	assert.Equal(t, SafetyConsultDoctor, res.SafetyLevel)
}

func TestFoodSafety_EmptyQuestion(t *testing.T) {
	t.Parallel()
	m := newTestMatcher(t)

	res := m.FoodSafety("", nil)

	assert.Contains(t, res.Answer, "Not Available")
	assert.Equal(t, SafetyConsultDoctor, res.SafetyLevel)
}

func TestFoodSafety_TieKeepsFirstEntry(t *testing.T) {
	t.Parallel()
	food := writeCollection(t, "food.json", `[
		{"id": "a", "question": "Egg yolk introduction", "answer": "Egg yolk first.", "category": "Food Safety", "age_range": "6+ months"},
		{"id": "b", "question": "Egg white introduction", "answer": "Egg white later.", "category": "Food Safety", "age_range": "6+ months"}
	]`)
	m := NewMatcher(food, nil, log.NewNop())

	// Both entries earn exactly the alias bonus; the first must win.
	res := m.FoodSafety("egg for my baby", nil)

	require.Len(t, res.Sources, 2)
	assert.Equal(t, "Knowledge Base Question ID: a", res.Sources[0])
}

func TestFoodSafety_MissingFile(t *testing.T) {
	t.Parallel()
	food := NewLoader(filepath.Join(t.TempDir(), "nope.json"), log.NewNop())
	m := NewMatcher(food, nil, log.NewNop())

	res := m.FoodSafety("Can babies eat honey?", nil)

	assert.Contains(t, res.Answer, "unavailable")
	assert.Equal(t, SafetyConsultDoctor, res.SafetyLevel)
	assert.Equal(t, []string{"Database Error"}, res.Sources)
}

func TestFoodSafety_MalformedFile(t *testing.T) {
	t.Parallel()
	food := writeCollection(t, "bad.json", `{not json`)
	m := NewMatcher(food, nil, log.NewNop())

	res := m.FoodSafety("Can babies eat honey?", nil)

	assert.Equal(t, SafetyConsultDoctor, res.SafetyLevel)
	assert.Equal(t, []string{"Database Error"}, res.Sources)
}

func TestFoodSafety_Idempotent(t *testing.T) {
	t.Parallel()
	m := newTestMatcher(t)

	first := m.FoodSafety("Is honey safe for babies?", nil)
	second := m.FoodSafety("Is honey safe for babies?", nil)

	assert.Equal(t, first, second)
}

func TestDeriveSafetyLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		answer string
		want   SafetyLevel
	}{
		{"never dominates", "Never give this to a baby. It is otherwise safe.", SafetyAvoid},
		{"not safe", "This is not safe before 12 months.", SafetyAvoid},
		{"avoid", "Avoid until the first birthday.", SafetyAvoid},
		{"caution", "Fine with caution.", SafetyCaution},
		{"watch beats safe", "Safe, but watch for irritation.", SafetyCaution},
		{"plain safe", "This food is safe from 6 months.", SafetySafe},
		{"nothing known", "Discuss with your provider.", SafetyConsultDoctor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, deriveSafetyLevel(tt.answer))
		})
	}
}
