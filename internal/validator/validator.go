// Package validator checks prompt records against the embedded JSON Schema
// and reports structured findings. Hard violations are delegated to
// gojsonschema and mapped onto a fixed error taxonomy; advisory checks the
// schema language cannot express (placeholder cross-references, recommended
// fields) are performed directly.
package validator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/ChamsBouzaiene/promptlab/internal/prompt"
	"github.com/ChamsBouzaiene/promptlab/schema"
)

// Code identifies one kind of finding.
type Code string

const (
	// Hard errors. Any of these marks the record invalid.
	CodeMissingField    Code = "MissingField"
	CodeTypeMismatch    Code = "TypeMismatch"
	CodeInvalidIDFormat Code = "InvalidIdFormat"
	CodeInvalidCategory Code = "InvalidCategory"
	CodeScoreOutOfRange Code = "ScoreOutOfRange"

	// Warnings. Reported for visibility, never affect validity.
	CodeUnboundVariable         Code = "UnboundVariable"
	CodeUnusedVariable          Code = "UnusedVariable"
	CodeMissingModelResponse    Code = "MissingModelResponse"
	CodeMissingRecommendedField Code = "MissingRecommendedField"
	CodeDuplicateID             Code = "DuplicateID"
)

// Finding is one error or warning produced by validation.
type Finding struct {
	Code    Code   `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (f Finding) String() string {
	if f.Field != "" {
		return fmt.Sprintf("[%s] %s: %s", f.Code, f.Field, f.Message)
	}
	return fmt.Sprintf("[%s] %s", f.Code, f.Message)
}

// Outcome is the result of validating one record. Valid is true iff Errors
// is empty; warnings never block acceptance.
type Outcome struct {
	Valid    bool      `json:"valid"`
	Errors   []Finding `json:"errors"`
	Warnings []Finding `json:"warnings"`
}

// Validator validates parsed prompt records. It is stateless between calls
// and safe for concurrent use: the compiled schema is read-only.
type Validator struct {
	schema *gojsonschema.Schema
}

// New creates a validator driven by the embedded prompt schema.
func New() (*Validator, error) {
	return NewWithSchema(schema.PromptSchema)
}

// NewWithSchema creates a validator from an explicit JSON Schema document.
func NewWithSchema(doc []byte) (*Validator, error) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to compile prompt schema: %w", err)
	}
	return &Validator{schema: compiled}, nil
}

// Validate checks a single parsed record. The record must already be
// well-formed JSON decoded into a generic map; unparsable input is the
// caller's ParseError, not a validation finding.
func (v *Validator) Validate(record map[string]any) Outcome {
	out := Outcome{}

	result, err := v.schema.Validate(gojsonschema.NewGoLoader(record))
	if err != nil {
		// The schema compiled and the record parsed, so this only fires on
		// inputs gojsonschema cannot load at all (e.g. a nil map).
		out.Errors = append(out.Errors, Finding{
			Code:    CodeTypeMismatch,
			Message: fmt.Sprintf("record is not an object: %v", err),
		})
		out.Valid = false
		return out
	}

	for _, re := range result.Errors() {
		out.Errors = append(out.Errors, classify(re))
	}

	// gojsonschema walks the record in map order, which Go randomizes.
	// Sort so the same record always yields the identical outcome.
	sort.SliceStable(out.Errors, func(i, j int) bool {
		a, b := out.Errors[i], out.Errors[j]
		if a.Field != b.Field {
			return a.Field < b.Field
		}
		if a.Code != b.Code {
			return a.Code < b.Code
		}
		return a.Message < b.Message
	})
	out.Errors = dedupe(out.Errors)

	out.Warnings = append(out.Warnings, variableWarnings(record)...)
	out.Warnings = append(out.Warnings, responseWarnings(record)...)
	if w, ok := recommendedFieldWarning(record); ok {
		out.Warnings = append(out.Warnings, w)
	}

	out.Valid = len(out.Errors) == 0
	return out
}

// dedupe drops repeated findings from an already sorted slice. Overlapping
// schema checks on the same value (minLength and pattern on an empty id)
// classify to the identical finding and must surface once.
func dedupe(findings []Finding) []Finding {
	out := findings[:0]
	for i, f := range findings {
		if i > 0 && f == findings[i-1] {
			continue
		}
		out = append(out, f)
	}
	return out
}

// classify maps a gojsonschema result error onto the finding taxonomy.
func classify(re gojsonschema.ResultError) Finding {
	field := re.Field()

	switch re.Type() {
	case "required":
		name, _ := re.Details()["property"].(string)
		return Finding{
			Code:    CodeMissingField,
			Field:   name,
			Message: fmt.Sprintf("missing required field %q", name),
		}

	case "string_gte": // minLength on a required string
		return Finding{
			Code:    CodeMissingField,
			Field:   field,
			Message: fmt.Sprintf("required field %q is empty", field),
		}

	case "pattern":
		if field == "id" {
			// An empty id also trips minLength; report it as absent, not
			// malformed. Both findings collapse to one in dedupe.
			if s, ok := re.Value().(string); ok && s == "" {
				return Finding{
					Code:    CodeMissingField,
					Field:   "id",
					Message: `required field "id" is empty`,
				}
			}
			return Finding{
				Code:    CodeInvalidIDFormat,
				Field:   "id",
				Message: fmt.Sprintf("id %v must contain only lowercase letters, digits and hyphens (e.g. edu-001)", re.Value()),
			}
		}

	case "enum":
		if field == "category" {
			return Finding{
				Code:    CodeInvalidCategory,
				Field:   "category",
				Message: fmt.Sprintf("category %v is not one of {%s}", re.Value(), strings.Join(prompt.Categories, ", ")),
			}
		}

	case "number_gte", "number_lte":
		if metric, ok := strings.CutPrefix(field, "score."); ok {
			return Finding{
				Code:    CodeScoreOutOfRange,
				Field:   field,
				Message: fmt.Sprintf("score %q is %v, must be an integer between 1 and 5", metric, re.Value()),
			}
		}

	case "additional_property_not_allowed":
		if field == "score" {
			name, _ := re.Details()["property"].(string)
			return Finding{
				Code:    CodeTypeMismatch,
				Field:   "score." + name,
				Message: fmt.Sprintf("unknown score metric %q, expected one of {%s}", name, strings.Join(prompt.ScoreMetrics, ", ")),
			}
		}
	}

	// Everything else (invalid_type, oneOf failures under variables, date
	// pattern on last_updated, ...) is a shape mismatch.
	return Finding{
		Code:    CodeTypeMismatch,
		Field:   field,
		Message: re.Description(),
	}
}

// variableWarnings cross-references {placeholder} tokens in the prompt text
// against the declared variables, in both directions.
func variableWarnings(record map[string]any) []Finding {
	text, _ := record["prompt"].(string)
	placeholders := prompt.Placeholders(text)
	declared := declaredVariables(record)

	declaredSet := make(map[string]bool, len(declared))
	for _, name := range declared {
		declaredSet[name] = true
	}
	usedSet := make(map[string]bool, len(placeholders))
	for _, name := range placeholders {
		usedSet[name] = true
	}

	var warnings []Finding
	for _, name := range placeholders {
		if !declaredSet[name] {
			warnings = append(warnings, Finding{
				Code:    CodeUnboundVariable,
				Field:   "prompt",
				Message: fmt.Sprintf("placeholder {%s} is not declared in variables", name),
			})
		}
	}
	for _, name := range declared {
		if !usedSet[name] {
			warnings = append(warnings, Finding{
				Code:    CodeUnusedVariable,
				Field:   "variables",
				Message: fmt.Sprintf("variable %q is declared but never used in the prompt", name),
			})
		}
	}
	return warnings
}

// declaredVariables extracts variable names from either the bare-name or the
// descriptor form, skipping entries of the wrong shape (those are already
// reported as hard errors by the schema).
func declaredVariables(record map[string]any) []string {
	raw, _ := record["variables"].([]any)
	var names []string
	for _, entry := range raw {
		switch e := entry.(type) {
		case string:
			names = append(names, e)
		case map[string]any:
			if name, ok := e["name"].(string); ok {
				names = append(names, name)
			}
		}
	}
	return names
}

// responseWarnings flags models listed in models_tested that have no sample
// response recorded.
func responseWarnings(record map[string]any) []Finding {
	models, _ := record["models_tested"].([]any)
	responses, _ := record["responses"].(map[string]any)

	var warnings []Finding
	for _, m := range models {
		name, ok := m.(string)
		if !ok {
			continue
		}
		if _, has := responses[name]; !has {
			warnings = append(warnings, Finding{
				Code:    CodeMissingModelResponse,
				Field:   "responses",
				Message: fmt.Sprintf("model %q is listed in models_tested but has no response sample", name),
			})
		}
	}
	return warnings
}

// recommendedFieldWarning emits a single warning naming every absent
// recommended field.
func recommendedFieldWarning(record map[string]any) (Finding, bool) {
	var missing []string
	for _, field := range prompt.RecommendedFields {
		if _, ok := record[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) == 0 {
		return Finding{}, false
	}
	return Finding{
		Code:    CodeMissingRecommendedField,
		Message: fmt.Sprintf("recommended fields missing: %s", strings.Join(missing, ", ")),
	}, true
}
