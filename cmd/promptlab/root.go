package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ChamsBouzaiene/promptlab/internal/config"
	"github.com/ChamsBouzaiene/promptlab/internal/corpus"
	"github.com/ChamsBouzaiene/promptlab/internal/prompt"
	"github.com/ChamsBouzaiene/promptlab/internal/validator"
)

var (
	flagPromptsDir string
	flagVerbose    bool
)

var rootCmd = &cobra.Command{
	Use:           "promptlab",
	Short:         "Manage and validate a community prompt repository",
	Long:          "promptlab creates, lists, validates and analyzes JSON prompt records organized under a prompts directory.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagPromptsDir, "prompts", "", "path to the prompts root (default: ./prompts or config)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable diagnostic logging")

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(topCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(watchCmd)
}

// newLogger builds the diagnostic logger. Without --verbose all diagnostics
// are dropped; user-facing output always goes through stdout directly.
func newLogger() *zap.Logger {
	verbose := flagVerbose
	if !verbose {
		if cfg, err := loadUserConfig(); err == nil && cfg.Verbose {
			verbose = true
		}
	}
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func loadUserConfig() (*config.Config, error) {
	manager, err := config.NewManager()
	if err != nil {
		return nil, err
	}
	return manager.Load()
}

// promptsRoot resolves the prompts directory: flag, then user config, then
// ./prompts.
func promptsRoot() (string, error) {
	root := flagPromptsDir
	if root == "" {
		if cfg, err := loadUserConfig(); err == nil && cfg.PromptsDir != "" {
			root = cfg.PromptsDir
		}
	}
	if root == "" {
		root = "prompts"
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve prompts root: %w", err)
	}
	if info, err := os.Stat(absRoot); err != nil || !info.IsDir() {
		return "", fmt.Errorf("prompts root is not a valid directory: %s", absRoot)
	}
	return absRoot, nil
}

// loadCorpus walks the prompts root and returns the parsed records.
func loadCorpus() (corpus.WalkResult, error) {
	root, err := promptsRoot()
	if err != nil {
		return corpus.WalkResult{}, err
	}
	walker, err := corpus.NewWalker(root, newLogger())
	if err != nil {
		return corpus.WalkResult{}, err
	}
	return walker.Walk()
}

// loadPrompts returns the typed view of every parseable record.
func loadPrompts() ([]*prompt.Prompt, error) {
	result, err := loadCorpus()
	if err != nil {
		return nil, err
	}
	prompts := make([]*prompt.Prompt, 0, len(result.Records))
	for _, record := range result.Records {
		if record.Prompt != nil {
			prompts = append(prompts, record.Prompt)
		}
	}
	return prompts, nil
}

// roundTrip converts a typed prompt into the generic form the validator
// consumes, exactly as it would look when read back from disk.
func roundTrip(p *prompt.Prompt) (map[string]any, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal prompt: %w", err)
	}
	return prompt.DecodeRaw(data)
}

// newValidator builds the schema-driven validator shared by the commands.
func newValidator() (*validator.Validator, error) {
	v, err := validator.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize validator: %w", err)
	}
	return v, nil
}
