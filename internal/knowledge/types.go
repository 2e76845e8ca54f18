package knowledge

// Entry is a single question/answer record in a knowledge base collection.
// Entries are immutable once loaded; the collections are read-only at
// request time.
type Entry struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
	AgeRange string `json:"age_range"`
}

// SafetyLevel is a coarse food-safety classification derived by keyword
// scanning a matched entry's answer text. It is not medical logic.
type SafetyLevel string

const (
	SafetySafe          SafetyLevel = "safe"
	SafetyCaution       SafetyLevel = "caution"
	SafetyAvoid         SafetyLevel = "avoid"
	SafetyConsultDoctor SafetyLevel = "consult_doctor"
)

// FoodResult is the outcome of a food-safety query.
// It is always well-formed, even when the knowledge base is unavailable
// or no entry matched.
type FoodResult struct {
	Answer            string      `json:"answer"`
	SafetyLevel       SafetyLevel `json:"safety_level"`
	AgeRecommendation string      `json:"age_recommendation,omitempty"`
	Sources           []string    `json:"sources"`
}

// ResearchResult is the outcome of a general research query, possibly
// composed from both collections.
type ResearchResult struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
}

// candidate pairs an entry with its score during a single query.
// Discarded once the best candidates are selected.
type candidate struct {
	entry Entry
	score int
}
