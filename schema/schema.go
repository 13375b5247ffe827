// Package schema embeds the JSON Schema document that defines the prompt
// record contract. The document is the source of truth: the validator is
// driven by it rather than by hand-written field checks.
package schema

import _ "embed"

//go:embed prompt_schema.json
var PromptSchema []byte
