// Package analytics computes corpus-level statistics: per-category
// breakdowns, score rankings and model coverage. All computations run over
// records already loaded by the corpus walker; there is no I/O here.
package analytics

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ChamsBouzaiene/promptlab/internal/prompt"
)

// CategoryStat summarizes one category.
type CategoryStat struct {
	Count      int                `json:"count"`
	AvgScores  map[string]float64 `json:"avg_scores"`
	ModelsUsed []string           `json:"models_used"`
}

// RankedPrompt is one entry in a score ranking.
type RankedPrompt struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Score    int    `json:"score"`
}

// ModelCoverage describes how broadly one model has been exercised.
type ModelCoverage struct {
	TotalPrompts      int     `json:"total_prompts"`
	CategoriesCovered int     `json:"categories_covered"`
	CoveragePercent   float64 `json:"coverage_percentage"`
}

// CoverageReport aggregates coverage across all tested models.
type CoverageReport struct {
	TotalModels  int                      `json:"total_models"`
	TotalPrompts int                      `json:"total_prompts"`
	Models       map[string]ModelCoverage `json:"models"`
}

// Comparison contrasts two models' testing footprint.
type Comparison struct {
	Model1     string         `json:"model1"`
	Model2     string         `json:"model2"`
	Tested1    int            `json:"model1_tested"`
	Tested2    int            `json:"model2_tested"`
	Both       int            `json:"both_tested"`
	Categories map[string][2]int `json:"categories"`
}

// CategoryStats computes per-category counts, average sub-scores and the set
// of models used.
func CategoryStats(prompts []*prompt.Prompt) map[string]CategoryStat {
	type acc struct {
		count  int
		scores map[string][]int
		models []string
	}
	byCat := make(map[string]*acc)

	for _, p := range prompts {
		if p == nil {
			continue
		}
		cat := p.Category
		if cat == "" {
			cat = "unknown"
		}
		a := byCat[cat]
		if a == nil {
			a = &acc{scores: make(map[string][]int)}
			byCat[cat] = a
		}
		a.count++
		for metric, value := range p.Score {
			a.scores[metric] = append(a.scores[metric], value)
		}
		a.models = append(a.models, p.ModelsTested...)
	}

	stats := make(map[string]CategoryStat, len(byCat))
	for cat, a := range byCat {
		avg := make(map[string]float64, len(a.scores))
		for metric, values := range a.scores {
			sum := 0
			for _, v := range values {
				sum += v
			}
			avg[metric] = math.Round(float64(sum)/float64(len(values))*100) / 100
		}
		stats[cat] = CategoryStat{
			Count:      a.count,
			AvgScores:  avg,
			ModelsUsed: prompt.SortedStringSet(a.models),
		}
	}
	return stats
}

// TopPrompts ranks scored prompts by the given metric, highest first. Ties
// break by id so the ranking is stable.
func TopPrompts(prompts []*prompt.Prompt, metric string, limit int) []RankedPrompt {
	var ranked []RankedPrompt
	for _, p := range prompts {
		if p == nil {
			continue
		}
		value, ok := p.Score[metric]
		if !ok {
			continue
		}
		ranked = append(ranked, RankedPrompt{
			ID:       p.ID,
			Title:    p.Title,
			Category: p.Category,
			Score:    value,
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].ID < ranked[j].ID
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// Coverage reports, for every model seen in models_tested, how many prompts
// and categories it covers.
func Coverage(prompts []*prompt.Prompt) CoverageReport {
	promptsByModel := make(map[string]int)
	categoriesByModel := make(map[string]map[string]bool)
	total := 0

	for _, p := range prompts {
		if p == nil {
			continue
		}
		total++
		for _, model := range p.ModelsTested {
			promptsByModel[model]++
			if categoriesByModel[model] == nil {
				categoriesByModel[model] = make(map[string]bool)
			}
			categoriesByModel[model][p.Category] = true
		}
	}

	report := CoverageReport{
		TotalModels:  len(promptsByModel),
		TotalPrompts: total,
		Models:       make(map[string]ModelCoverage, len(promptsByModel)),
	}
	for model, count := range promptsByModel {
		percent := 0.0
		if total > 0 {
			percent = math.Round(float64(count)/float64(total)*1000) / 10
		}
		report.Models[model] = ModelCoverage{
			TotalPrompts:      count,
			CategoriesCovered: len(categoriesByModel[model]),
			CoveragePercent:   percent,
		}
	}
	return report
}

// CompareModels contrasts two models: how many prompts each was tested
// against, the overlap, and per-category counts.
func CompareModels(prompts []*prompt.Prompt, model1, model2 string) Comparison {
	cmp := Comparison{
		Model1:     model1,
		Model2:     model2,
		Categories: make(map[string][2]int),
	}

	for _, p := range prompts {
		if p == nil {
			continue
		}
		has1 := testedWith(p, model1)
		has2 := testedWith(p, model2)

		counts := cmp.Categories[p.Category]
		if has1 {
			cmp.Tested1++
			counts[0]++
		}
		if has2 {
			cmp.Tested2++
			counts[1]++
		}
		if has1 || has2 {
			cmp.Categories[p.Category] = counts
		}
		if has1 && has2 {
			cmp.Both++
		}
	}
	return cmp
}

// testedWith reports whether a prompt was exercised against the model,
// either via models_tested or a recorded response.
func testedWith(p *prompt.Prompt, model string) bool {
	for _, m := range p.ModelsTested {
		if m == model {
			return true
		}
	}
	_, ok := p.Responses[model]
	return ok
}

// RenderComparison renders a two-model comparison as plain text.
func RenderComparison(cmp Comparison) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\nModel Comparison: %s vs %s\n", cmp.Model1, cmp.Model2)
	fmt.Fprintln(&b, "\nPrompts tested:")
	fmt.Fprintf(&b, "  %s: %d\n", cmp.Model1, cmp.Tested1)
	fmt.Fprintf(&b, "  %s: %d\n", cmp.Model2, cmp.Tested2)
	fmt.Fprintf(&b, "  Both: %d\n", cmp.Both)

	if len(cmp.Categories) > 0 {
		fmt.Fprintln(&b, "\nBy category:")
		for _, cat := range sortedKeys(cmp.Categories) {
			counts := cmp.Categories[cat]
			fmt.Fprintf(&b, "  %-15s %d vs %d\n", cat, counts[0], counts[1])
		}
	}
	return b.String()
}

// RenderReport renders the full plain-text analytics report.
func RenderReport(prompts []*prompt.Prompt) string {
	var b strings.Builder
	rule := strings.Repeat("=", 60)
	thin := strings.Repeat("-", 60)

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "PROMPTLAB - ANALYTICS REPORT")
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "Total Prompts: %d\n\n", len(prompts))

	fmt.Fprintln(&b, "CATEGORY BREAKDOWN")
	fmt.Fprintln(&b, thin)
	stats := CategoryStats(prompts)
	for _, cat := range sortedKeys(stats) {
		data := stats[cat]
		fmt.Fprintf(&b, "\n%s\n", strings.ToUpper(cat))
		fmt.Fprintf(&b, "  Prompts: %d\n", data.Count)
		if len(data.AvgScores) > 0 {
			fmt.Fprintln(&b, "  Average Scores:")
			for _, metric := range sortedKeys(data.AvgScores) {
				fmt.Fprintf(&b, "    %s: %g\n", metric, data.AvgScores[metric])
			}
		}
		fmt.Fprintf(&b, "  Models: %s\n", strings.Join(data.ModelsUsed, ", "))
	}
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "MODEL COVERAGE")
	fmt.Fprintln(&b, thin)
	coverage := Coverage(prompts)
	for _, model := range sortedKeys(coverage.Models) {
		data := coverage.Models[model]
		fmt.Fprintf(&b, "\n%s\n", model)
		fmt.Fprintf(&b, "  Prompts tested: %d\n", data.TotalPrompts)
		fmt.Fprintf(&b, "  Categories covered: %d\n", data.CategoriesCovered)
		fmt.Fprintf(&b, "  Coverage: %g%%\n", data.CoveragePercent)
	}

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, rule)
	return b.String()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
