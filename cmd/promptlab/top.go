package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ChamsBouzaiene/promptlab/internal/analytics"
	"github.com/ChamsBouzaiene/promptlab/internal/prompt"
)

var (
	topMetric string
	topLimit  int
)

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Show top-rated prompts by score metric",
	RunE:  runTop,
}

func init() {
	topCmd.Flags().StringVar(&topMetric, "metric", "effectiveness", "score metric to rank by")
	topCmd.Flags().IntVar(&topLimit, "limit", 10, "number of prompts to show")
}

func runTop(cmd *cobra.Command, args []string) error {
	valid := false
	for _, m := range prompt.ScoreMetrics {
		if m == topMetric {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unknown metric %q, expected one of %v", topMetric, prompt.ScoreMetrics)
	}

	prompts, err := loadPrompts()
	if err != nil {
		return err
	}

	ranked := analytics.TopPrompts(prompts, topMetric, topLimit)
	if len(ranked) == 0 {
		fmt.Printf("No prompts carry a %q score yet.\n", topMetric)
		return nil
	}

	fmt.Printf("\nTop %d Prompts by %s:\n", len(ranked), topMetric)
	for i, entry := range ranked {
		fmt.Printf("  %d. [%s] %s - Score: %d\n", i+1, entry.Category, entry.Title, entry.Score)
	}
	return nil
}
