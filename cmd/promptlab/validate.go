package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ChamsBouzaiene/promptlab/internal/corpus"
	"github.com/ChamsBouzaiene/promptlab/internal/validator"
)

var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate prompt records against the schema",
	Long: `Validates a single record file or the whole prompts directory.
All errors and warnings are reported; exits non-zero if any record is invalid.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	v, err := newValidator()
	if err != nil {
		return err
	}

	if len(args) == 1 {
		if info, err := os.Stat(args[0]); err == nil && !info.IsDir() {
			return validateFile(v, args[0])
		}
		flagPromptsDir = args[0]
	}
	return validateDirectory(v)
}

func validateFile(v *validator.Validator, path string) error {
	record, err := corpus.LoadRecord(path)
	if err != nil {
		fmt.Printf("❌ %s failed to parse:\n   %v\n", path, err)
		return fmt.Errorf("1 file failed validation")
	}

	outcome := v.Validate(record.Raw)
	printOutcome(path, outcome)
	if !outcome.Valid {
		return fmt.Errorf("1 file failed validation")
	}
	return nil
}

func validateDirectory(v *validator.Validator) error {
	result, err := loadCorpus()
	if err != nil {
		return err
	}

	entries := make([]validator.Entry, 0, len(result.Records))
	for _, record := range result.Records {
		entries = append(entries, validator.Entry{Path: record.Path, Record: record.Raw})
	}
	report := v.ValidateAll(entries)

	fmt.Println("\n📊 Validation Results")
	fmt.Printf("   Total: %d | ✅ Passed: %d | ❌ Failed: %d | ⚠️  Warnings: %d\n",
		report.Summary.Total+len(result.Failures),
		report.Summary.Valid,
		report.Summary.Invalid+len(result.Failures),
		report.Summary.Warnings)
	fmt.Println()

	for _, failure := range result.Failures {
		fmt.Printf("❌ %s\n   [ParseFailure] %v\n", failure.Path, failure.Err)
	}
	for _, path := range report.SortedPaths() {
		printOutcome(path, report.Outcomes[path])
	}

	failed := report.Summary.Invalid + len(result.Failures)
	if failed > 0 {
		return fmt.Errorf("%d file(s) failed validation", failed)
	}
	return nil
}

func printOutcome(path string, outcome validator.Outcome) {
	name := filepath.ToSlash(path)
	if outcome.Valid {
		fmt.Printf("✅ %s\n", name)
	} else {
		fmt.Printf("❌ %s\n", name)
		for _, finding := range outcome.Errors {
			fmt.Printf("   %s\n", finding)
		}
	}
	for _, finding := range outcome.Warnings {
		fmt.Printf("   ⚠️  %s\n", finding)
	}
}
