package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ChamsBouzaiene/promptlab/internal/corpus"
	"github.com/ChamsBouzaiene/promptlab/internal/prompt"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new prompt record interactively",
	RunE:  runCreate,
}

func runCreate(cmd *cobra.Command, args []string) error {
	root, err := promptsRoot()
	if err != nil {
		return err
	}

	fmt.Println("🧠 promptlab - Create New Prompt")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	p := &prompt.Prompt{
		ID:    askValid(scanner, "Prompt ID (e.g., edu-001): ", prompt.IDPattern.MatchString, "lowercase letters, digits and hyphens only"),
		Title: ask(scanner, "Title: "),
	}

	fmt.Printf("\nCategories: %s\n", strings.Join(prompt.Categories, ", "))
	p.Category = askValid(scanner, "Category: ", prompt.ValidCategory, "pick one of the listed categories")
	p.Goal = ask(scanner, "Goal/Purpose: ")
	p.Prompt = ask(scanner, "Prompt text: ")

	for _, name := range splitList(ask(scanner, "Variables (comma-separated, or press Enter to skip): ")) {
		p.Variables = append(p.Variables, prompt.Variable{Name: name})
	}
	p.Tags = splitList(ask(scanner, "Tags (comma-separated): "))

	if cfg, err := loadUserConfig(); err == nil && cfg.DefaultAuthor != "" {
		p.Tags = append(p.Tags, cfg.DefaultAuthor)
	}
	p.LastUpdated = time.Now().Format("2006-01-02")

	// Validate through the same raw path as stored records.
	v, err := newValidator()
	if err != nil {
		return err
	}
	raw, err := roundTrip(p)
	if err != nil {
		return err
	}
	outcome := v.Validate(raw)

	if !outcome.Valid {
		fmt.Println("\n❌ Validation failed:")
		for _, finding := range outcome.Errors {
			fmt.Printf("   %s\n", finding)
		}
		return fmt.Errorf("prompt not created")
	}
	if len(outcome.Warnings) > 0 {
		fmt.Println("\n⚠️  Warnings:")
		for _, finding := range outcome.Warnings {
			fmt.Printf("   - %s\n", finding)
		}
	}

	store := corpus.NewStore(root)
	if store.Exists(p) {
		return fmt.Errorf("a record named %s already exists in %s", corpus.Filename(p), p.Category)
	}
	path, err := store.Save(p)
	if err != nil {
		return err
	}

	fmt.Printf("\n✅ Prompt created: %s\n", path)
	fmt.Println("\n💡 Next steps:")
	fmt.Println("   1. Test with AI models")
	fmt.Println("   2. Add responses to the JSON file")
	fmt.Println("   3. Add scores after evaluation")
	return nil
}

func ask(scanner *bufio.Scanner, question string) string {
	fmt.Print(question)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}

// askValid re-asks until the answer passes the check. On EOF it returns the
// empty string and lets schema validation report the field.
func askValid(scanner *bufio.Scanner, question string, ok func(string) bool, hint string) string {
	for {
		fmt.Print(question)
		if !scanner.Scan() {
			return ""
		}
		answer := strings.TrimSpace(scanner.Text())
		if ok(answer) {
			return answer
		}
		fmt.Printf("   ✗ %s\n", hint)
	}
}

func splitList(input string) []string {
	if input == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(input, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
