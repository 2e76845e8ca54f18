package knowledge

import (
	"fmt"
	"log/slog"
	"strings"
)

// Matcher answers free-text questions against the food-safety and general
// parenting collections. The zero value is not useful; use NewMatcher.
//
// Matcher holds no mutable state of its own and is safe for concurrent use.
type Matcher struct {
	food      *Loader
	parenting *Loader
	logger    *slog.Logger
}

// NewMatcher creates a matcher over the two collections.
// parenting may be nil for food-only deployments; Research then sees an
// empty parenting collection.
func NewMatcher(food, parenting *Loader, logger *slog.Logger) *Matcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Matcher{food: food, parenting: parenting, logger: logger}
}

// Fixed response texts for degraded outcomes.
const (
	foodUnavailableAnswer = "Food safety database is currently unavailable. Please consult your pediatrician."
	foodUnableAnswer      = "Unable to access food safety database. Please consult your pediatrician for specific feeding questions."
)

// FoodSafety returns the best-matching food-safety entry for the question,
// or a structured "not available" result when nothing clears the threshold.
//
// ageMonths is display context only; it does not participate in scoring.
// The method never returns an error and never panics: unexpected failures
// during scoring are logged and converted into a consult_doctor result.
func (m *Matcher) FoodSafety(question string, ageMonths *int) (result FoodResult) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("food safety scoring failed", "panic", r)
			result = FoodResult{
				Answer:            foodUnableAnswer,
				SafetyLevel:       SafetyConsultDoctor,
				AgeRecommendation: "Unknown",
				Sources:           []string{"Database Error"},
			}
		}
	}()

	entries, ok := m.food.Entries()
	if !ok {
		return FoodResult{
			Answer:            foodUnavailableAnswer,
			SafetyLevel:       SafetyConsultDoctor,
			AgeRecommendation: "Unknown",
			Sources:           []string{"Database Error"},
		}
	}

	query := strings.ToLower(strings.TrimSpace(question))

	var best *Entry
	bestScore := 0
	if query != "" {
		for i := range entries {
			score := scoreFoodEntry(query, entries[i])
			// Strictly-greater comparison: ties keep the first entry.
			if score > bestScore {
				bestScore = score
				best = &entries[i]
			}
		}
	}

	if best == nil || bestScore < FoodThreshold {
		m.logger.Debug("no food safety match", "query", query, "best_score", bestScore)
		return noMatchFoodResult(entries)
	}

	level := deriveSafetyLevel(best.Answer)
	ageRange := best.AgeRange
	if ageRange == "" {
		ageRange = "Consult pediatrician"
	}
	category := best.Category
	if category == "" {
		category = "General"
	}
	_ = ageMonths // accepted on the wire; scoring is age-independent

	return FoodResult{
		Answer:            fmt.Sprintf("**%s** (%s)\n\n%s", category, ageRange, best.Answer),
		SafetyLevel:       level,
		AgeRecommendation: ageRange,
		Sources: []string{
			fmt.Sprintf("Knowledge Base Question ID: %s", best.ID),
			"Verified Food Safety Database",
		},
	}
}

// scoreFoodEntry scores one entry against a lowercased query.
//
// The foodFound flag is tracked per candidate: the safety-keyword bonus
// applies only to entries that themselves matched a food alias, so a
// keyword-rich query cannot drag an unrelated entry over the threshold.
func scoreFoodEntry(query string, e Entry) int {
	question := strings.ToLower(e.Question)
	entryText := question + " " + strings.ToLower(e.Answer)

	score := baseScore(query, question)

	foodFound := matchedFood(query, entryText)
	if foodFound {
		score += foodAliasBonus
		score += safetyKwBonus * countShared(query, question, safetyKeywords)
	}
	return score
}

// noMatchFoodResult builds the "not available" response, listing up to five
// example foods recognized in the first ten entries of the collection.
func noMatchFoodResult(entries []Entry) FoodResult {
	var available []string
	limit := min(len(entries), 10)
	for _, e := range entries[:limit] {
		if len(available) == 5 {
			break
		}
		question := strings.ToLower(e.Question)
		for _, ef := range exampleFoods {
			if containsAny(question, ef.stems) {
				available = append(available, "• "+ef.label)
				break
			}
		}
	}

	answer := "**Food Safety Information Not Available**\n\n" +
		"Sorry, we don't have specific safety information for your query in our verified database.\n\n" +
		"**Available in our database:**\n" + strings.Join(available, "\n") + "\n\n" +
		"**For other foods:** Please consult your pediatrician for guidance."

	return FoodResult{
		Answer:            answer,
		SafetyLevel:       SafetyConsultDoctor,
		AgeRecommendation: "Consult pediatrician",
		Sources:           []string{"Knowledge Base - No entry found"},
	}
}
