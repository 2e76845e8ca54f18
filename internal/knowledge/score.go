package knowledge

import "strings"

// Scoring weights and acceptance thresholds.
const (
	scoreExact      = 100 // query equals entry question (case-insensitive)
	scoreSubstring  = 80  // one string contains the other
	foodAliasBonus  = 80  // query and entry mention the same food
	safetyKwBonus   = 10  // per safety keyword present in both (food matcher)
	parentingBonus  = 20  // per parenting keyword present in both (research)
	researchFood    = 40  // per specific food present in both (research)
	questionWordPt  = 3   // per question word present in both, capped
	questionWordCap = 10

	// FoodThreshold is the minimum accepted score for the food-safety
	// matcher. ResearchParentingThreshold and ResearchFoodThreshold are the
	// per-collection minimums for the research matcher.
	FoodThreshold              = 50
	ResearchParentingThreshold = 20
	ResearchFoodThreshold      = 40
)

// baseScore scores the direct relationship between a query and an entry
// question, both already lowercased. Exact equality dominates; otherwise
// containment in either direction earns the substring score.
//
// Callers must ensure query is non-empty: the empty string is a substring
// of everything and would spuriously earn scoreSubstring.
func baseScore(query, question string) int {
	if query == question {
		return scoreExact
	}
	if strings.Contains(question, query) || strings.Contains(query, question) {
		return scoreSubstring
	}
	return 0
}

// containsAny reports whether s contains at least one of terms.
func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

// countShared counts terms present in both a and b.
func countShared(a, b string, terms []string) int {
	n := 0
	for _, t := range terms {
		if strings.Contains(a, t) && strings.Contains(b, t) {
			n++
		}
	}
	return n
}

// matchedFood returns true when the query and the entry text (question plus
// answer) mention the same food per the alias table. The first alias pair
// satisfied wins; remaining foods are not checked.
func matchedFood(query, entryText string) bool {
	for _, a := range foodAliases {
		if containsAny(query, a.query) && containsAny(entryText, a.entry) {
			return true
		}
	}
	return false
}

// deriveSafetyLevel classifies a matched entry's answer text. The scan is
// priority-ordered: prohibition language beats caution language beats an
// affirmative "safe"; an answer with none of them defers to a doctor.
// The classification is derived from the answer, never from the query.
func deriveSafetyLevel(answer string) SafetyLevel {
	a := strings.ToLower(answer)
	switch {
	case strings.Contains(a, "not safe") || strings.Contains(a, "never") || strings.Contains(a, "avoid"):
		return SafetyAvoid
	case strings.Contains(a, "caution") || strings.Contains(a, "careful") || strings.Contains(a, "watch"):
		return SafetyCaution
	case strings.Contains(a, "safe"):
		return SafetySafe
	default:
		return SafetyConsultDoctor
	}
}
