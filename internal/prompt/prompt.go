// Package prompt defines the prompt record model shared by the validator,
// the corpus store, and the CLI.
package prompt

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Categories is the fixed set of prompt categories.
var Categories = []string{"education", "creative", "productivity", "coding"}

// ScoreMetrics is the fixed set of evaluation sub-scores. Each value, when
// present, must be an integer in [1,5].
var ScoreMetrics = []string{"clarity", "accuracy", "creativity", "effectiveness", "reusability"}

// RecommendedFields are optional fields contributors are encouraged to fill
// in. Their absence is reported as a warning, never an error.
var RecommendedFields = []string{"tags", "responses", "last_updated"}

// IDPattern constrains prompt IDs to lowercase letters, digits and hyphens,
// e.g. "edu-001".
var IDPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// placeholderPattern matches {variable_name} tokens inside prompt text.
var placeholderPattern = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// Prompt is one prompt record: a reusable AI prompt plus its metadata.
// One record per JSON file under the prompts root.
type Prompt struct {
	ID           string            `json:"id"`
	Title        string            `json:"title"`
	Category     string            `json:"category"`
	Goal         string            `json:"goal,omitempty"`
	Prompt       string            `json:"prompt"`
	Variables    []Variable        `json:"variables,omitempty"`
	Tags         []string          `json:"tags,omitempty"`
	ModelsTested []string          `json:"models_tested,omitempty"`
	Responses    map[string]string `json:"responses,omitempty"`
	Score        map[string]int    `json:"score,omitempty"`
	LastUpdated  string            `json:"last_updated,omitempty"`
}

// Variable describes one placeholder used by a prompt. Records may declare
// variables either as bare names ("topic") or as full descriptors
// ({"name": "topic", "description": "...", "required": true}).
type Variable struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required,omitempty"`
}

// UnmarshalJSON accepts both the bare-name and the descriptor form.
func (v *Variable) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		v.Name = name
		v.Description = ""
		v.Required = false
		return nil
	}

	type descriptor Variable
	var d descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("variable must be a string or an object: %w", err)
	}
	*v = Variable(d)
	return nil
}

// MarshalJSON preserves the bare-name form for variables that carry no
// description and no required flag, so round-tripping a simplified record
// does not rewrite it into the verbose form.
func (v Variable) MarshalJSON() ([]byte, error) {
	if v.Description == "" && !v.Required {
		return json.Marshal(v.Name)
	}
	type descriptor Variable
	return json.Marshal(descriptor(v))
}

// VariableNames returns the declared variable names in declaration order.
func (p *Prompt) VariableNames() []string {
	names := make([]string, 0, len(p.Variables))
	for _, v := range p.Variables {
		names = append(names, v.Name)
	}
	return names
}

// Placeholders extracts the distinct {variable_name} tokens from text,
// sorted by first appearance.
func Placeholders(text string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(text, -1)
	seen := make(map[string]bool, len(matches))
	var names []string
	for _, m := range matches {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

// ValidCategory reports whether c is one of the fixed categories.
func ValidCategory(c string) bool {
	for _, cat := range Categories {
		if c == cat {
			return true
		}
	}
	return false
}

// Slug builds a filesystem-friendly fragment from a title, used in record
// filenames: lowercase, spaces to underscores, truncated to 30 characters.
func Slug(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = strings.ReplaceAll(s, " ", "_")
	var b strings.Builder
	for _, r := range s {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_' || r == '-' {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if len(out) > 30 {
		out = out[:30]
	}
	return out
}

// Decode parses a raw JSON record into a Prompt.
func Decode(data []byte) (*Prompt, error) {
	var p Prompt
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DecodeRaw parses a raw JSON record into the generic key/value form the
// validator consumes. The validator deliberately takes the raw structure
// rather than the typed Prompt so that type mismatches survive parsing and
// can be reported as findings.
func DecodeRaw(data []byte) (map[string]any, error) {
	var record map[string]any
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return record, nil
}

// SortedStringSet returns the distinct values of in, sorted.
func SortedStringSet(in []string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
