package analytics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChamsBouzaiene/promptlab/internal/prompt"
)

func samplePrompts() []*prompt.Prompt {
	return []*prompt.Prompt{
		{
			ID: "edu-001", Title: "Explain Simply", Category: "education",
			Score:        map[string]int{"clarity": 5, "effectiveness": 4},
			ModelsTested: []string{"gpt-4", "claude-3"},
			Responses:    map[string]string{"gpt-4": "...", "claude-3": "..."},
		},
		{
			ID: "edu-002", Title: "Quiz Builder", Category: "education",
			Score:        map[string]int{"clarity": 3, "effectiveness": 5},
			ModelsTested: []string{"gpt-4"},
		},
		{
			ID: "code-001", Title: "Code Review", Category: "coding",
			Score:        map[string]int{"effectiveness": 3},
			ModelsTested: []string{"claude-3"},
		},
		{
			ID: "creative-001", Title: "Story Seed", Category: "creative",
		},
	}
}

func TestCategoryStats(t *testing.T) {
	stats := CategoryStats(samplePrompts())

	require.Contains(t, stats, "education")
	edu := stats["education"]
	assert.Equal(t, 2, edu.Count)
	assert.Equal(t, 4.0, edu.AvgScores["clarity"])
	assert.Equal(t, 4.5, edu.AvgScores["effectiveness"])
	assert.Equal(t, []string{"claude-3", "gpt-4"}, edu.ModelsUsed)

	require.Contains(t, stats, "creative")
	assert.Equal(t, 1, stats["creative"].Count)
	assert.Empty(t, stats["creative"].AvgScores)
}

func TestCategoryStats_NilPromptsSkipped(t *testing.T) {
	stats := CategoryStats([]*prompt.Prompt{nil, {ID: "edu-001", Category: "education"}})
	assert.Equal(t, 1, stats["education"].Count)
}

func TestTopPrompts(t *testing.T) {
	ranked := TopPrompts(samplePrompts(), "effectiveness", 2)

	require.Len(t, ranked, 2)
	assert.Equal(t, "edu-002", ranked[0].ID)
	assert.Equal(t, 5, ranked[0].Score)
	assert.Equal(t, "edu-001", ranked[1].ID)
}

func TestTopPrompts_UnscoredExcluded(t *testing.T) {
	ranked := TopPrompts(samplePrompts(), "clarity", 10)
	require.Len(t, ranked, 2)
	for _, r := range ranked {
		assert.NotEqual(t, "creative-001", r.ID)
	}
}

func TestTopPrompts_StableTieBreak(t *testing.T) {
	prompts := []*prompt.Prompt{
		{ID: "b-001", Category: "coding", Score: map[string]int{"clarity": 4}},
		{ID: "a-001", Category: "coding", Score: map[string]int{"clarity": 4}},
	}
	ranked := TopPrompts(prompts, "clarity", 10)
	require.Len(t, ranked, 2)
	assert.Equal(t, "a-001", ranked[0].ID)
}

func TestCoverage(t *testing.T) {
	report := Coverage(samplePrompts())

	assert.Equal(t, 2, report.TotalModels)
	assert.Equal(t, 4, report.TotalPrompts)

	gpt4 := report.Models["gpt-4"]
	assert.Equal(t, 2, gpt4.TotalPrompts)
	assert.Equal(t, 1, gpt4.CategoriesCovered)
	assert.Equal(t, 50.0, gpt4.CoveragePercent)

	claude := report.Models["claude-3"]
	assert.Equal(t, 2, claude.TotalPrompts)
	assert.Equal(t, 2, claude.CategoriesCovered)
}

func TestCompareModels(t *testing.T) {
	cmp := CompareModels(samplePrompts(), "gpt-4", "claude-3")

	assert.Equal(t, 2, cmp.Tested1)
	assert.Equal(t, 2, cmp.Tested2)
	assert.Equal(t, 1, cmp.Both)
	assert.Equal(t, [2]int{2, 1}, cmp.Categories["education"])
	assert.Equal(t, [2]int{0, 1}, cmp.Categories["coding"])
}

func TestCompareModels_ResponsesCount(t *testing.T) {
	// A recorded response counts as tested even without a models_tested entry.
	prompts := []*prompt.Prompt{
		{ID: "edu-001", Category: "education", Responses: map[string]string{"gemini": "..."}},
	}
	cmp := CompareModels(prompts, "gemini", "gpt-4")
	assert.Equal(t, 1, cmp.Tested1)
	assert.Equal(t, 0, cmp.Tested2)
}

func TestRenderComparison(t *testing.T) {
	cmp := CompareModels(samplePrompts(), "gpt-4", "claude-3")
	text := RenderComparison(cmp)

	assert.Contains(t, text, "Model Comparison: gpt-4 vs claude-3")
	assert.Contains(t, text, "gpt-4: 2")
	assert.Contains(t, text, "claude-3: 2")
	assert.Contains(t, text, "Both: 1")
	assert.Contains(t, text, "education")

	// Deterministic output.
	assert.Equal(t, text, RenderComparison(cmp))
}

func TestRenderReport(t *testing.T) {
	report := RenderReport(samplePrompts())

	assert.True(t, strings.HasPrefix(report, strings.Repeat("=", 60)))
	assert.Contains(t, report, "Total Prompts: 4")
	assert.Contains(t, report, "EDUCATION")
	assert.Contains(t, report, "MODEL COVERAGE")
	assert.Contains(t, report, "gpt-4")

	// Deterministic output.
	assert.Equal(t, report, RenderReport(samplePrompts()))
}
