package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ChamsBouzaiene/promptlab/internal/analytics"
)

var compareCmd = &cobra.Command{
	Use:   "compare <model1> <model2>",
	Short: "Compare how two models have been tested across the corpus",
	Args:  cobra.ExactArgs(2),
	RunE:  runCompare,
}

func runCompare(cmd *cobra.Command, args []string) error {
	prompts, err := loadPrompts()
	if err != nil {
		return err
	}

	cmp := analytics.CompareModels(prompts, args[0], args[1])
	fmt.Print(analytics.RenderComparison(cmp))
	return nil
}
