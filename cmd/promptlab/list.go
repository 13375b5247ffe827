package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listCategory string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List prompt records",
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "filter by category")
}

func runList(cmd *cobra.Command, args []string) error {
	result, err := loadCorpus()
	if err != nil {
		return err
	}

	var shown int
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, record := range result.Records {
		p := record.Prompt
		if p == nil {
			continue
		}
		if listCategory != "" && p.Category != listCategory {
			continue
		}
		category := p.Category
		if category == "" {
			category = "unknown"
		}
		title := p.Title
		if title == "" {
			title = "Untitled"
		}
		fmt.Fprintf(w, "[%s]\t%s\t%s\n", category, p.ID, title)
		shown++
	}

	fmt.Printf("\n📚 Found %d prompts:\n\n", shown)
	w.Flush()

	for _, failure := range result.Failures {
		fmt.Printf("  ⚠️  Error reading %s: %v\n", failure.Path, failure.Err)
	}
	return nil
}
