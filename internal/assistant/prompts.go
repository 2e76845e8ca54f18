package assistant

import (
	"fmt"
	"regexp"
	"strings"
)

// System prompts for each LLM-backed feature.
const (
	FoodSafetySystemPrompt = "You are a pediatric nutrition safety expert. " +
		"Provide clear yes/no safety assessments for specific foods at specific ages, " +
		"following AAP guidelines. Be conservative and prioritize safety."

	MealSearchSystemPrompt = `You are a pediatric nutrition expert. Provide helpful, safe meal ideas and food safety information following AAP guidelines.

For meal searches: Include age-appropriate recipes with simple preparation steps.
For food safety questions: Provide clear safety assessments and age recommendations.
Always be concise and practical.`
)

// EmergencyDisclaimer is appended to every emergency training response.
const EmergencyDisclaimer = "⚠️ IMPORTANT DISCLAIMER: This information is for educational purposes only " +
	"and is NOT a substitute for formal CPR/First Aid training. We strongly recommend taking an " +
	"AHA-certified course. In any emergency, call 911 immediately. This app and its creators are " +
	"not liable for any outcomes from using this information."

// FoodSafetyPrompt builds the user prompt for a food safety assessment.
func FoodSafetyPrompt(foodItem string, ageMonths int) string {
	return fmt.Sprintf("Is %s safe for a %d month old baby? Provide a brief safety assessment.",
		foodItem, ageMonths)
}

// unsafePhrases flag a negative assessment when present in the response.
var unsafePhrases = []string{"not safe", "avoid", "too young", "don't", "do not"}

// bare "no" only counts as a whole word, so "know" and "note" don't flag.
var noWord = regexp.MustCompile(`\bno\b`)

// AssessSafety derives a yes/no verdict from the model's prose response.
// Conservative: any negative phrase marks the food unsafe.
func AssessSafety(response string) bool {
	lower := strings.ToLower(response)
	if noWord.MatchString(lower) {
		return false
	}
	for _, phrase := range unsafePhrases {
		if strings.Contains(lower, phrase) {
			return false
		}
	}
	return true
}

// EmergencyContent is parsed emergency training material.
type EmergencyContent struct {
	Steps          []string `json:"steps"`
	ImportantNotes []string `json:"important_notes"`
	Disclaimer     string   `json:"disclaimer"`
	WhenToCall911  []string `json:"when_to_call_911"`
}

// EmergencySystemPrompt builds the emergency training system instruction.
func EmergencySystemPrompt(emergencyType, ageContext string) string {
	return fmt.Sprintf(`You are an emergency training instructor following American Heart Association (AHA) guidelines for infant emergencies.

CRITICAL: This is educational content only. Always emphasize:
1. This is NOT a substitute for formal CPR/First Aid training
2. Recommend professional certification courses
3. When in doubt, call 911 immediately
4. Provide step-by-step AHA guidelines

Format responses as:
- Clear numbered steps
- Important safety notes
- When to call 911
- Liability disclaimer

Topic: %s %s`, emergencyType, ageContext)
}

// EmergencyPrompt builds the emergency training user prompt.
func EmergencyPrompt(emergencyType, ageContext string) string {
	return fmt.Sprintf("Provide step-by-step %s instructions %s following AHA guidelines.",
		emergencyType, ageContext)
}

// AgeContext formats an optional baby age for prompt interpolation.
// Returns "" when age is nil.
func AgeContext(ageMonths *int) string {
	if ageMonths == nil {
		return ""
	}
	return fmt.Sprintf("for a %d month old baby", *ageMonths)
}

// listLinePrefixes mark a line as a list item during section parsing.
var listLinePrefixes = []string{
	"1.", "2.", "3.", "4.", "5.", "6.", "7.", "8.", "9.", "•", "-",
}

// ParseEmergencyResponse splits the model's prose into steps, notes, and
// call-911 guidance. List items accumulate into whichever section heading
// was seen most recently. Missing sections get conservative defaults, and
// the fixed disclaimer is always attached.
func ParseEmergencyResponse(response string) EmergencyContent {
	var steps, notes, call911 []string

	section := "steps"
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		lower := strings.ToLower(line)
		switch {
		case strings.Contains(lower, "important") || strings.Contains(lower, "note"):
			section = "notes"
			continue
		case strings.Contains(line, "911") || strings.Contains(lower, "call"):
			section = "911"
			continue
		}

		if !isListLine(line) {
			continue
		}
		switch section {
		case "steps":
			steps = append(steps, line)
		case "notes":
			notes = append(notes, line)
		case "911":
			call911 = append(call911, line)
		}
	}

	if len(steps) == 0 {
		steps = []string{response}
	}
	if len(notes) == 0 {
		notes = []string{
			"Always call 911 in a real emergency",
			"This is educational content only",
		}
	}
	if len(call911) == 0 {
		call911 = []string{
			"Baby is unconscious",
			"No response to intervention",
			"You are unsure about the situation",
		}
	}

	return EmergencyContent{
		Steps:          steps,
		ImportantNotes: notes,
		Disclaimer:     EmergencyDisclaimer,
		WhenToCall911:  call911,
	}
}

func isListLine(line string) bool {
	for _, prefix := range listLinePrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// MealSearchPrompt builds the meal search user prompt.
func MealSearchPrompt(query string, ageMonths *int) string {
	return strings.TrimSpace(query + " " + AgeContext(ageMonths))
}
