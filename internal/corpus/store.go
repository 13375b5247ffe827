package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/ChamsBouzaiene/promptlab/internal/prompt"
)

// Store persists prompt records under the prompts root, one JSON file per
// record grouped into category subdirectories.
type Store struct {
	root string
}

// NewStore creates a store rooted at the prompts directory.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// Root returns the prompts root directory.
func (s *Store) Root() string {
	return s.root
}

// Filename builds the conventional record filename from id and title,
// e.g. edu_001_explain_like_im_five.json.
func Filename(p *prompt.Prompt) string {
	base := strings.ReplaceAll(p.ID, "-", "_")
	if slug := prompt.Slug(p.Title); slug != "" {
		base += "_" + slug
	}
	return base + ".json"
}

// Save writes a record into its category subdirectory and returns the path
// of the created file. The write goes through a uniquely named temp file and
// a rename, so a crash never leaves a half-written record in the corpus.
func (s *Store) Save(p *prompt.Prompt) (string, error) {
	dir := filepath.Join(s.root, p.Category)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create category directory: %w", err)
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal prompt: %w", err)
	}
	data = append(data, '\n')

	target := filepath.Join(dir, Filename(p))
	tmp := filepath.Join(dir, "."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write prompt file: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("failed to place prompt file: %w", err)
	}

	return target, nil
}

// Exists reports whether a record file for the given prompt already exists.
func (s *Store) Exists(p *prompt.Prompt) bool {
	_, err := os.Stat(filepath.Join(s.root, p.Category, Filename(p)))
	return err == nil
}
