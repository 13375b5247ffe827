package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ChamsBouzaiene/promptlab/internal/analytics"
)

var reportOutput string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate the full analytics report",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "write the report to a file instead of stdout")
}

func runReport(cmd *cobra.Command, args []string) error {
	prompts, err := loadPrompts()
	if err != nil {
		return err
	}

	report := analytics.RenderReport(prompts)
	if reportOutput == "" {
		fmt.Print(report)
		return nil
	}

	if err := os.WriteFile(reportOutput, []byte(report), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	fmt.Printf("Report written to %s\n", reportOutput)
	return nil
}
