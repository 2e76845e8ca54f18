package knowledge

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babysteps/babysteps/internal/log"
)

func TestResearch_CombinedAnswer(t *testing.T) {
	t.Parallel()
	m := newTestMatcher(t)

	res := m.Research("How often should I feed my baby and can babies eat eggs?")

	assert.Contains(t, res.Answer, "**General Parenting Guidance**")
	assert.Contains(t, res.Answer, "**Food Safety Information**")
	require.Len(t, res.Sources, 3)
	assert.Equal(t, "Parenting Knowledge Base Question ID: parent-001", res.Sources[0])
	assert.Equal(t, "Food Safety Knowledge Base Question ID: food-002", res.Sources[1])
}

func TestResearch_ParentingOnly(t *testing.T) {
	t.Parallel()
	m := newTestMatcher(t)

	res := m.Research("How do I burp my baby?")

	assert.Contains(t, res.Answer, "shoulder")
	assert.NotContains(t, res.Answer, "**Food Safety Information**")
	require.Len(t, res.Sources, 2)
	assert.Equal(t, "Parenting Knowledge Base Question ID: parent-004", res.Sources[0])
}

func TestResearch_FoodOnly(t *testing.T) {
	t.Parallel()
	m := newTestMatcher(t)

	// Food context without any parenting-context keyword: the parenting
	// collection contributes no candidates.
	res := m.Research("safe age to eat strawberries")

	assert.NotContains(t, res.Answer, "**General Parenting Guidance**")
	require.Len(t, res.Sources, 2)
	assert.Equal(t, "Food Safety Knowledge Base Question ID: food-004", res.Sources[0])
}

// A query naming a clearly unrelated topic must suppress the parenting
// collection even when parenting words are present.
func TestResearch_UnrelatedTopicGate(t *testing.T) {
	t.Parallel()
	m := newTestMatcher(t)

	res := m.Research("Should my baby use a smartphone?")

	assert.Contains(t, res.Answer, "Information Not Available")
	assert.NotContains(t, res.Answer, "**General Parenting Guidance**")
	assert.Equal(t, []string{"Knowledge Base - No entry found"}, res.Sources)
}

func TestResearch_NoParentingContext(t *testing.T) {
	t.Parallel()
	m := newTestMatcher(t)

	res := m.Research("What is the best way to learn guitar?")

	assert.Contains(t, res.Answer, "Information Not Available")
	assert.Equal(t, []string{"Knowledge Base - No entry found"}, res.Sources)
}

func TestResearch_EmptyQuestion(t *testing.T) {
	t.Parallel()
	m := newTestMatcher(t)

	res := m.Research("   ")

	assert.Contains(t, res.Answer, "Information Not Available")
}

// The food side of the research matcher requires an actual food match;
// a generic feeding question must not surface a food entry by substring.
func TestResearch_FoodRequiresFoodMatch(t *testing.T) {
	t.Parallel()
	m := newTestMatcher(t)

	res := m.Research("How often should I feed my newborn?")

	require.NotEmpty(t, res.Sources)
	assert.Equal(t, "Parenting Knowledge Base Question ID: parent-001", res.Sources[0])
	assert.NotContains(t, res.Answer, "**Food Safety Information**")
}

func TestResearch_BothCollectionsUnavailable(t *testing.T) {
	t.Parallel()
	missing := filepath.Join(t.TempDir(), "missing.json")
	logger := log.NewNop()
	m := NewMatcher(NewLoader(missing, logger), NewLoader(missing, logger), logger)

	res := m.Research("Is honey safe for my baby?")

	assert.Contains(t, res.Answer, "Information Not Available")
	assert.Equal(t, []string{"Knowledge Base - No entry found"}, res.Sources)
}

func TestResearch_Idempotent(t *testing.T) {
	t.Parallel()
	m := newTestMatcher(t)

	q := "How much sleep does a baby need?"
	assert.Equal(t, m.Research(q), m.Research(q))
}

func TestResearch_CitationFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Parenting Knowledge Base Question ID: p-1", citation(sourceParenting, "p-1"))
	assert.Equal(t, "Food Safety Knowledge Base Question ID: Unknown", citation(sourceFoodSafety, ""))
}
