package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ChamsBouzaiene/promptlab/internal/prompt"
	"github.com/ChamsBouzaiene/promptlab/internal/search"
)

var (
	searchCategory string
	searchLimit    int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over prompt records",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchCategory, "category", "c", "", "restrict to one category")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "k", 10, "maximum number of results")
}

func runSearch(cmd *cobra.Command, args []string) error {
	result, err := loadCorpus()
	if err != nil {
		return err
	}

	prompts := make([]*prompt.Prompt, 0, len(result.Records))
	for _, record := range result.Records {
		prompts = append(prompts, record.Prompt)
	}

	index, err := search.NewIndex(prompts)
	if err != nil {
		return err
	}
	defer index.Close()

	query := strings.Join(args, " ")
	hits, err := index.Search(query, searchCategory, searchLimit)
	if err != nil {
		return err
	}

	if len(hits) == 0 {
		fmt.Printf("No prompts matched %q\n", query)
		return nil
	}

	fmt.Printf("\n🔎 %d result(s) for %q:\n\n", len(hits), query)
	for i, hit := range hits {
		fmt.Printf("  %d. [%s] %s - %s (%.2f)\n", i+1, hit.Category, hit.ID, hit.Title, hit.Score)
	}
	return nil
}
