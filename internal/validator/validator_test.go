package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := New()
	require.NoError(t, err)
	return v
}

func validRecord() map[string]any {
	return map[string]any{
		"id":       "test-001",
		"title":    "Test Prompt",
		"category": "education",
		"prompt":   "This is a test prompt",
		"tags":     []any{"test"},
		"responses": map[string]any{
			"gpt-4": "Test response",
		},
		"last_updated": "2025-10-10",
	}
}

func TestValidate_ValidRecord(t *testing.T) {
	v := newTestValidator(t)

	outcome := v.Validate(validRecord())
	assert.True(t, outcome.Valid)
	assert.Empty(t, outcome.Errors)
	assert.Empty(t, outcome.Warnings)
}

func TestValidate_AllOptionalFields(t *testing.T) {
	v := newTestValidator(t)

	record := map[string]any{
		"id":       "test-002",
		"title":    "Test Prompt with Variables",
		"category": "coding",
		"goal":     "Test goal",
		"prompt":   "Explain {concept} in {language}",
		"variables": []any{
			map[string]any{"name": "concept", "description": "the concept", "required": true},
			"language",
		},
		"tags":          []any{"test", "example"},
		"models_tested": []any{"gpt-4"},
		"responses":     map[string]any{"gpt-4": "Test response"},
		"score": map[string]any{
			"clarity":    5,
			"accuracy":   4,
			"creativity": 3,
		},
		"last_updated": "2025-10-10",
	}

	outcome := v.Validate(record)
	assert.True(t, outcome.Valid)
	assert.Empty(t, outcome.Errors)
	assert.Empty(t, outcome.Warnings)
}

func TestValidate_MissingRequiredFields(t *testing.T) {
	v := newTestValidator(t)

	for _, field := range []string{"id", "title", "category", "prompt"} {
		t.Run(field, func(t *testing.T) {
			record := validRecord()
			delete(record, field)

			outcome := v.Validate(record)
			assert.False(t, outcome.Valid)
			require.Len(t, outcome.Errors, 1)
			assert.Equal(t, CodeMissingField, outcome.Errors[0].Code)
			assert.Equal(t, field, outcome.Errors[0].Field)
			assert.Contains(t, outcome.Errors[0].Message, field)
		})
	}
}

func TestValidate_EmptyRequiredString(t *testing.T) {
	v := newTestValidator(t)

	record := validRecord()
	record["title"] = ""

	outcome := v.Validate(record)
	assert.False(t, outcome.Valid)
	require.Len(t, outcome.Errors, 1)
	assert.Equal(t, CodeMissingField, outcome.Errors[0].Code)
	assert.Equal(t, "title", outcome.Errors[0].Field)
}

func TestValidate_EmptyID(t *testing.T) {
	// An empty id is an absent field, not a format violation, and the
	// overlapping minLength/pattern checks surface as one finding.
	v := newTestValidator(t)

	record := validRecord()
	record["id"] = ""

	outcome := v.Validate(record)
	assert.False(t, outcome.Valid)
	require.Len(t, outcome.Errors, 1)
	assert.Equal(t, CodeMissingField, outcome.Errors[0].Code)
	assert.Equal(t, "id", outcome.Errors[0].Field)
}

func TestValidate_InvalidIDFormat(t *testing.T) {
	v := newTestValidator(t)

	for _, id := range []string{"TEST_001", "Edu-001", "edu_001", "edu 001"} {
		t.Run(id, func(t *testing.T) {
			record := validRecord()
			record["id"] = id

			outcome := v.Validate(record)
			assert.False(t, outcome.Valid)
			require.Len(t, outcome.Errors, 1)
			assert.Equal(t, CodeInvalidIDFormat, outcome.Errors[0].Code)
		})
	}
}

func TestValidate_InvalidCategory(t *testing.T) {
	v := newTestValidator(t)

	record := validRecord()
	record["category"] = "Education"

	outcome := v.Validate(record)
	assert.False(t, outcome.Valid)
	require.Len(t, outcome.Errors, 1)
	assert.Equal(t, CodeInvalidCategory, outcome.Errors[0].Code)
	assert.Contains(t, outcome.Errors[0].Message, "Education")
	assert.Contains(t, outcome.Errors[0].Message, "education, creative, productivity, coding")
}

func TestValidate_ScoreOutOfRange(t *testing.T) {
	v := newTestValidator(t)

	record := validRecord()
	record["score"] = map[string]any{"clarity": 5, "accuracy": 7}

	outcome := v.Validate(record)
	assert.False(t, outcome.Valid)
	require.Len(t, outcome.Errors, 1)
	assert.Equal(t, CodeScoreOutOfRange, outcome.Errors[0].Code)
	assert.Equal(t, "score.accuracy", outcome.Errors[0].Field)
	assert.Contains(t, outcome.Errors[0].Message, "accuracy")
	assert.Contains(t, outcome.Errors[0].Message, "7")
}

func TestValidate_ScoreBelowRange(t *testing.T) {
	v := newTestValidator(t)

	record := validRecord()
	record["score"] = map[string]any{"clarity": 0}

	outcome := v.Validate(record)
	assert.False(t, outcome.Valid)
	require.Len(t, outcome.Errors, 1)
	assert.Equal(t, CodeScoreOutOfRange, outcome.Errors[0].Code)
	assert.Contains(t, outcome.Errors[0].Message, "clarity")
}

func TestValidate_ScoreNotClamped(t *testing.T) {
	// Out-of-range scores fail hard, they are never silently clamped.
	v := newTestValidator(t)

	record := validRecord()
	record["score"] = map[string]any{"effectiveness": 6}

	outcome := v.Validate(record)
	assert.False(t, outcome.Valid)
}

func TestValidate_UnknownScoreMetric(t *testing.T) {
	v := newTestValidator(t)

	record := validRecord()
	record["score"] = map[string]any{"speed": 3}

	outcome := v.Validate(record)
	assert.False(t, outcome.Valid)
	require.Len(t, outcome.Errors, 1)
	assert.Equal(t, CodeTypeMismatch, outcome.Errors[0].Code)
	assert.Contains(t, outcome.Errors[0].Message, "speed")
}

func TestValidate_TypeMismatch(t *testing.T) {
	v := newTestValidator(t)

	record := validRecord()
	record["tags"] = "not-a-list"

	outcome := v.Validate(record)
	assert.False(t, outcome.Valid)
	require.Len(t, outcome.Errors, 1)
	assert.Equal(t, CodeTypeMismatch, outcome.Errors[0].Code)
	assert.Equal(t, "tags", outcome.Errors[0].Field)
}

func TestValidate_ReportsAllViolations(t *testing.T) {
	// No early exit: every violation surfaces in a single pass.
	v := newTestValidator(t)

	record := map[string]any{
		"id":       "BAD_ID",
		"category": "nope",
		"prompt":   "text",
		"score":    map[string]any{"clarity": 9},
	}

	outcome := v.Validate(record)
	assert.False(t, outcome.Valid)

	codes := make(map[Code]int)
	for _, f := range outcome.Errors {
		codes[f.Code]++
	}
	assert.Equal(t, 1, codes[CodeMissingField], "missing title")
	assert.Equal(t, 1, codes[CodeInvalidIDFormat])
	assert.Equal(t, 1, codes[CodeInvalidCategory])
	assert.Equal(t, 1, codes[CodeScoreOutOfRange])
}

func TestValidate_UnboundVariableWarning(t *testing.T) {
	v := newTestValidator(t)

	record := map[string]any{
		"id":       "edu-001",
		"title":    "Explain X",
		"category": "education",
		"prompt":   "Explain {topic} simply.",
	}

	outcome := v.Validate(record)
	assert.True(t, outcome.Valid)
	assert.Empty(t, outcome.Errors)
	require.Len(t, outcome.Warnings, 2)

	var unbound, recommended *Finding
	for i := range outcome.Warnings {
		switch outcome.Warnings[i].Code {
		case CodeUnboundVariable:
			unbound = &outcome.Warnings[i]
		case CodeMissingRecommendedField:
			recommended = &outcome.Warnings[i]
		}
	}
	require.NotNil(t, unbound)
	assert.Contains(t, unbound.Message, "topic")
	require.NotNil(t, recommended)
	assert.Contains(t, recommended.Message, "tags")
}

func TestValidate_UnusedVariableWarning(t *testing.T) {
	v := newTestValidator(t)

	record := validRecord()
	record["prompt"] = "This prompt has no variables"
	record["variables"] = []any{"concept"}

	outcome := v.Validate(record)
	assert.True(t, outcome.Valid)
	require.NotEmpty(t, outcome.Warnings)
	assert.Equal(t, CodeUnusedVariable, outcome.Warnings[0].Code)
	assert.Contains(t, outcome.Warnings[0].Message, "concept")
}

func TestValidate_MissingModelResponseWarning(t *testing.T) {
	v := newTestValidator(t)

	record := validRecord()
	record["models_tested"] = []any{"gpt-4", "claude-3"}

	outcome := v.Validate(record)
	assert.True(t, outcome.Valid)
	require.Len(t, outcome.Warnings, 1)
	assert.Equal(t, CodeMissingModelResponse, outcome.Warnings[0].Code)
	assert.Contains(t, outcome.Warnings[0].Message, "claude-3")
}

func TestValidate_WarningsNeverAffectValidity(t *testing.T) {
	v := newTestValidator(t)

	record := map[string]any{
		"id":        "prod-004",
		"title":     "Lots of warnings",
		"category":  "productivity",
		"prompt":    "Do {thing} now",
		"variables": []any{"other"},
	}

	outcome := v.Validate(record)
	assert.True(t, outcome.Valid)
	assert.Empty(t, outcome.Errors)
	assert.GreaterOrEqual(t, len(outcome.Warnings), 3)
}

func TestValidate_Idempotent(t *testing.T) {
	v := newTestValidator(t)

	record := map[string]any{
		"id":       "BAD_ID",
		"title":    "",
		"category": "nope",
		"prompt":   "Explain {x} and {y}",
		"score":    map[string]any{"clarity": 9, "accuracy": 0},
	}

	first := v.Validate(record)
	second := v.Validate(record)
	assert.Equal(t, first, second)
}

func TestNewWithSchema_Invalid(t *testing.T) {
	_, err := NewWithSchema([]byte(`{`))
	assert.Error(t, err)
}
