package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ChamsBouzaiene/promptlab/internal/prompt"
	"github.com/ChamsBouzaiene/promptlab/internal/validator"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show repository statistics",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	result, err := loadCorpus()
	if err != nil {
		return err
	}
	v, err := newValidator()
	if err != nil {
		return err
	}

	entries := make([]validator.Entry, 0, len(result.Records))
	for _, record := range result.Records {
		entries = append(entries, validator.Entry{Path: record.Path, Record: record.Raw})
	}
	report := v.ValidateAll(entries)

	categories := make(map[string]int)
	var models, tags []string
	for _, record := range result.Records {
		if !report.Outcomes[record.Path].Valid || record.Prompt == nil {
			continue
		}
		p := record.Prompt
		cat := p.Category
		if cat == "" {
			cat = "unknown"
		}
		categories[cat]++
		models = append(models, p.ModelsTested...)
		tags = append(tags, p.Tags...)
	}
	uniqueModels := prompt.SortedStringSet(models)
	uniqueTags := prompt.SortedStringSet(tags)

	fmt.Println("\n📊 promptlab Statistics")
	fmt.Println()
	fmt.Printf("Total Prompts: %d\n", report.Summary.Total+len(result.Failures))
	fmt.Printf("Valid Prompts: %d\n", report.Summary.Valid)

	fmt.Println("\nBy Category:")
	catNames := make([]string, 0, len(categories))
	for cat := range categories {
		catNames = append(catNames, cat)
	}
	sort.Strings(catNames)
	for _, cat := range catNames {
		fmt.Printf("  %-15s %3d\n", cat, categories[cat])
	}

	fmt.Printf("\nUnique Models Tested: %d\n", len(uniqueModels))
	if len(uniqueModels) > 0 {
		fmt.Printf("  %s\n", strings.Join(uniqueModels, ", "))
	}
	fmt.Printf("\nUnique Tags: %d\n", len(uniqueTags))
	return nil
}
