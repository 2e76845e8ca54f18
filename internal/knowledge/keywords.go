package knowledge

// foodAlias maps one canonical food to the textual variants that identify
// it in a query and in an entry's question/answer text. Query and entry
// variants differ where plural forms only matter on the query side
// ("nuts" in a query, "nut" as a stem in entry text).
type foodAlias struct {
	query []string // variants matched against the query
	entry []string // variants matched against entry question+answer text
}

// foodAliases is the fixed alias table used by the food-safety matcher.
// Stems like "strawberr" intentionally match both singular and plural.
// Order matters: the first alias matched by a query wins the bonus.
var foodAliases = []foodAlias{
	{query: []string{"strawberr"}, entry: []string{"strawberr"}},
	{query: []string{"honey"}, entry: []string{"honey"}},
	{query: []string{"egg", "eggs"}, entry: []string{"egg"}},
	{query: []string{"avocado"}, entry: []string{"avocado"}},
	{query: []string{"peanut", "nut", "nuts"}, entry: []string{"peanut", "nut"}},
	{query: []string{"fish"}, entry: []string{"fish"}},
	{query: []string{"milk"}, entry: []string{"milk"}},
	{query: []string{"cheese"}, entry: []string{"cheese"}},
}

// specificFoods is the flat food list used by the research matcher's food
// gate and per-food bonus. Broader than the alias table: it also covers
// foods the research collection mentions in passing.
var specificFoods = []string{
	"avocado", "honey", "egg", "eggs", "strawberr", "nut", "peanut",
	"fish", "milk", "cheese", "banana", "apple", "carrot",
}

// safetyKeywords earn small per-keyword bonuses in the food matcher, but
// only for candidates that already matched a food alias.
var safetyKeywords = []string{"safe", "eat", "when", "can", "baby", "babies"}

// parentingContextKeywords gate the parenting collection: a query without
// any of these contributes no parenting candidates at all.
var parentingContextKeywords = []string{
	"baby", "babies", "newborn", "infant", "child", "parenting", "parent",
}

// parentingKeywords earn per-keyword bonuses in the research matcher's
// parenting scoring.
var parentingKeywords = []string{
	"baby", "newborn", "infant", "feed", "feeding", "sleep", "sleeping",
	"cry", "crying", "diaper", "milk", "development", "milestone",
	"burp", "burping",
}

// questionWords earn a small capped bonus for question-structure overlap,
// and only once at least one parenting keyword has matched.
var questionWords = []string{"how", "when", "what", "why", "should", "can", "is", "are"}

// foodContextKeywords gate the food collection in the research matcher.
var foodContextKeywords = []string{
	"food", "eat", "safe", "safety", "feed", "feeding", "nutrition",
	"allergy", "allergic",
}

// babyContextKeywords and safetyContextKeywords drive the research
// matcher's context bonus for food candidates.
var babyContextKeywords = []string{"baby", "babies", "infant", "newborn", "child"}
var safetyContextKeywords = []string{"safe", "safety", "eat", "when", "can"}

// unrelatedTopicKeywords is the topic gate: a query containing any of these
// is clearly not about infant care, so the parenting and food collections
// are skipped entirely to avoid false-positive matches.
var unrelatedTopicKeywords = []string{
	"smartphone", "phone", "computer", "laptop", "internet", "social media",
	"facebook", "instagram",
	"car", "driving", "license", "work", "job", "career", "money",
	"finance", "investment",
	"weather", "sports", "football", "basketball", "politics", "election",
	"government",
	"cooking", "recipe", "restaurant", "travel", "vacation", "hotel",
	"movie", "music",
	"adult", "teenager", "elderly", "senior", "college", "university",
	"homework",
}

// exampleFood describes how a display label is derived from entry text for
// the "not available" response. Display aid only, never part of scoring.
type exampleFood struct {
	stems []string
	label string
}

var exampleFoods = []exampleFood{
	{stems: []string{"honey"}, label: "Honey (12+ months)"},
	{stems: []string{"egg"}, label: "Eggs (6+ months)"},
	{stems: []string{"avocado"}, label: "Avocado (6+ months)"},
	{stems: []string{"strawberr"}, label: "Strawberries (6+ months)"},
	{stems: []string{"peanut", "nut"}, label: "Nuts/Peanuts (6+ months)"},
}
