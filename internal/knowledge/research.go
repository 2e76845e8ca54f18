package knowledge

import (
	"fmt"
	"strings"
)

// Fixed response texts for the research matcher.
const (
	researchNoEntryAnswer = "**Information Not Available**\n\n" +
		"I don't have specific information about your question in our knowledge base. " +
		"Our database covers common parenting topics like feeding, sleep, development milestones, and food safety.\n\n" +
		"**For reliable answers:** Please consult your pediatrician, search reputable parenting websites, " +
		"or check with healthcare professionals who can provide personalized guidance."

	researchUnableAnswer = "Unable to access parenting database. Please consult your pediatrician " +
		"for specific questions about baby care, feeding, or development."
)

// Collection display names used in citations.
const (
	sourceParenting  = "Parenting"
	sourceFoodSafety = "Food Safety"
)

// Research searches both collections and composes an answer.
//
// Topic gates run before any scoring: a query naming a clearly unrelated
// subject skips both collections, and the parenting collection requires at
// least one parenting-context keyword. When the best candidates from both
// collections clear their thresholds the answer combines a parenting
// section and a food-safety section; when neither clears, the single
// best-scoring candidate is returned as a best-effort fallback.
//
// Like FoodSafety, this method absorbs every failure mode.
func (m *Matcher) Research(question string) (result ResearchResult) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("research scoring failed", "panic", r)
			result = ResearchResult{
				Answer:  researchUnableAnswer,
				Sources: []string{"Database Error"},
			}
		}
	}()

	query := strings.ToLower(strings.TrimSpace(question))
	if query == "" {
		return ResearchResult{
			Answer:  researchNoEntryAnswer,
			Sources: []string{"Knowledge Base - No entry found"},
		}
	}

	hasUnrelated := containsAny(query, unrelatedTopicKeywords)

	parentingBest, parentingAccepted := m.searchParenting(query, hasUnrelated)
	foodBest, foodAccepted := m.searchFood(query, hasUnrelated)

	switch {
	case parentingAccepted && foodAccepted:
		return composeCombined(parentingBest.entry, foodBest.entry)
	case parentingAccepted:
		return composeSingle(parentingBest.entry, sourceParenting, "Verified Parenting Guidelines")
	case foodAccepted:
		return composeSingle(foodBest.entry, sourceFoodSafety, "Verified Food Safety Database")
	}

	// Best-effort fallback: neither collection cleared its threshold, but
	// scored candidates may still exist. Parenting wins score ties.
	var fallback *candidate
	source := sourceParenting
	if parentingBest != nil {
		fallback = parentingBest
	}
	if foodBest != nil && (fallback == nil || foodBest.score > fallback.score) {
		fallback = foodBest
		source = sourceFoodSafety
	}
	if fallback == nil {
		return ResearchResult{
			Answer:  researchNoEntryAnswer,
			Sources: []string{"Knowledge Base - No entry found"},
		}
	}
	return composeSingle(fallback.entry, source, fmt.Sprintf("Verified %s Database", source))
}

// searchParenting scores the parenting collection. The returned candidate
// is the best-scoring one regardless of threshold (nil when the collection
// was gated out or contributed nothing); accepted reports whether it clears
// ResearchParentingThreshold.
func (m *Matcher) searchParenting(query string, hasUnrelated bool) (best *candidate, accepted bool) {
	if hasUnrelated || !containsAny(query, parentingContextKeywords) {
		return nil, false
	}
	if m.parenting == nil {
		return nil, false
	}
	entries, _ := m.parenting.Entries()

	for _, e := range entries {
		score := scoreParentingEntry(query, e)
		if score <= 0 {
			continue
		}
		if best == nil || score > best.score {
			best = &candidate{entry: e, score: score}
		}
	}
	return best, best != nil && best.score >= ResearchParentingThreshold
}

// scoreParentingEntry scores one parenting entry against a lowercased query.
func scoreParentingEntry(query string, e Entry) int {
	question := strings.ToLower(e.Question)
	entryText := question + " " + strings.ToLower(e.Answer)

	score := baseScore(query, question)

	shared := countShared(query, entryText, parentingKeywords)
	score += parentingBonus * shared

	// Question-structure overlap is worth points only once the entry has
	// real parenting relevance, and is capped so it can never dominate.
	if shared > 0 {
		if qw := countShared(query, question, questionWords); qw > 0 {
			score += min(qw*questionWordPt, questionWordCap)
		}
	}
	return score
}

// searchFood scores the food collection for the research matcher. Unlike
// the food-safety endpoint, acceptance requires at least one specific food
// matched: a bare substring match cannot clear the threshold on its own
// without food relevance.
func (m *Matcher) searchFood(query string, hasUnrelated bool) (best *candidate, accepted bool) {
	if hasUnrelated {
		return nil, false
	}
	if !containsAny(query, foodContextKeywords) && !containsAny(query, specificFoods) {
		return nil, false
	}
	entries, _ := m.food.Entries()

	for _, e := range entries {
		score, foodMatched := scoreResearchFoodEntry(query, e)
		// Food relevance is mandatory here, unlike the food-safety
		// endpoint: a bare substring match never counts as a candidate.
		if !foodMatched || score <= 0 {
			continue
		}
		if best == nil || score > best.score {
			best = &candidate{entry: e, score: score}
		}
	}
	return best, best != nil && best.score >= ResearchFoodThreshold
}

// scoreResearchFoodEntry scores one food entry for the research matcher.
// foodMatched reports whether the query and entry share at least one
// specific food.
func scoreResearchFoodEntry(query string, e Entry) (score int, foodMatched bool) {
	question := strings.ToLower(e.Question)
	entryText := question + " " + strings.ToLower(e.Answer)

	score = baseScore(query, question)

	foods := countShared(query, entryText, specificFoods)
	score += researchFood * foods

	if foods > 0 {
		babyCtx := containsAny(query, babyContextKeywords)
		safetyCtx := containsAny(query, safetyContextKeywords)
		switch {
		case babyCtx && safetyCtx:
			score += 20
		case babyCtx || safetyCtx:
			score += 10
		}
	}
	return score, foods > 0
}

// composeCombined builds the two-section answer used when both collections
// produced an accepted candidate.
func composeCombined(parenting, food Entry) ResearchResult {
	var b strings.Builder
	b.WriteString("**General Parenting Guidance**\n")
	fmt.Fprintf(&b, "**%s** (%s)\n\n", orDefault(parenting.Category, "General"), orDefault(parenting.AgeRange, "All ages"))
	b.WriteString(parenting.Answer)
	b.WriteString("\n\n**Food Safety Information**\n")
	fmt.Fprintf(&b, "**%s** (%s)\n\n", orDefault(food.Category, "Safety"), orDefault(food.AgeRange, "Consult pediatrician"))
	b.WriteString(food.Answer)

	return ResearchResult{
		Answer: b.String(),
		Sources: []string{
			citation(sourceParenting, parenting.ID),
			citation(sourceFoodSafety, food.ID),
			"Verified Parenting & Food Safety Database",
		},
	}
}

// composeSingle builds the answer for a single accepted (or fallback)
// candidate.
func composeSingle(e Entry, source, trailer string) ResearchResult {
	ageDefault := "All ages"
	if source == sourceFoodSafety {
		ageDefault = "Consult pediatrician"
	}
	answer := fmt.Sprintf("**%s** (%s)\n\n%s",
		orDefault(e.Category, source), orDefault(e.AgeRange, ageDefault), e.Answer)

	return ResearchResult{
		Answer:  answer,
		Sources: []string{citation(source, e.ID), trailer},
	}
}

// citation formats a source string. The literal pattern is part of the
// endpoint contract and asserted by clients.
func citation(source, id string) string {
	if id == "" {
		id = "Unknown"
	}
	return fmt.Sprintf("%s Knowledge Base Question ID: %s", source, id)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
