// Package corpus handles discovery, loading and persistence of prompt
// record files under the prompts root. Validation itself lives in the
// validator package; corpus only deals with the filesystem.
package corpus

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	gitignore "github.com/sabhiram/go-gitignore"
	"go.uber.org/zap"

	"github.com/ChamsBouzaiene/promptlab/internal/prompt"
)

// Record is one discovered prompt file, parsed into both the generic form
// the validator consumes and the typed form the CLI presents.
type Record struct {
	Path   string
	Raw    map[string]any
	Prompt *prompt.Prompt
}

// ParseFailure marks a file that is not well-formed JSON. It is surfaced
// before validation and never reaches the validator.
type ParseFailure struct {
	Path string
	Err  error
}

func (f ParseFailure) Error() string {
	return fmt.Sprintf("%s: %v", f.Path, f.Err)
}

// WalkResult contains the outcome of a corpus walk. Failures are isolated
// per file; a broken record never hides the rest of the corpus.
type WalkResult struct {
	Records  []Record
	Failures []ParseFailure
}

// DefaultIgnorePatterns are paths never considered part of the corpus.
var DefaultIgnorePatterns = []string{
	".git",
	"node_modules",
	".idea",
	".vscode",
	".DS_Store",
	"drafts",
}

// IgnoreFile is the optional per-corpus ignore file, gitignore syntax.
const IgnoreFile = ".promptignore"

// Walker discovers prompt record files under a root directory.
type Walker struct {
	root          string
	ignoreMatcher gitignore.IgnoreParser
	concurrency   int
	log           *zap.Logger
}

// NewWalker creates a walker for the given prompts root. Patterns from a
// .promptignore file at the root are honored in addition to the defaults.
func NewWalker(root string, log *zap.Logger) (*Walker, error) {
	if log == nil {
		log = zap.NewNop()
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("prompts root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("prompts root is not a directory: %s", root)
	}

	patterns := make([]string, 0, len(DefaultIgnorePatterns)+8)
	patterns = append(patterns, DefaultIgnorePatterns...)
	patterns = append(patterns, readIgnoreLines(filepath.Join(root, IgnoreFile))...)

	return &Walker{
		root:          root,
		ignoreMatcher: gitignore.CompileIgnoreLines(patterns...),
		concurrency:   4,
		log:           log,
	}, nil
}

// readIgnoreLines loads patterns from an ignore file, skipping blanks and
// comments. A missing file is not an error.
func readIgnoreLines(path string) []string {
	file, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// Walk discovers and parses every prompt record under the root. Files are
// loaded by a small worker pool; results are returned sorted by path so the
// output never depends on scheduling.
func (w *Walker) Walk() (WalkResult, error) {
	paths, err := w.discover()
	if err != nil {
		return WalkResult{}, err
	}

	pathChan := make(chan string)
	recordChan := make(chan Record, len(paths))
	failureChan := make(chan ParseFailure, len(paths))

	var wg sync.WaitGroup
	for i := 0; i < w.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range pathChan {
				record, err := LoadRecord(filepath.Join(w.root, path))
				if err != nil {
					failureChan <- ParseFailure{Path: path, Err: err}
					continue
				}
				record.Path = path
				recordChan <- *record
			}
		}()
	}

	for _, path := range paths {
		pathChan <- path
	}
	close(pathChan)
	wg.Wait()
	close(recordChan)
	close(failureChan)

	var result WalkResult
	for record := range recordChan {
		result.Records = append(result.Records, record)
	}
	for failure := range failureChan {
		result.Failures = append(result.Failures, failure)
	}

	sort.Slice(result.Records, func(i, j int) bool {
		return result.Records[i].Path < result.Records[j].Path
	})
	sort.Slice(result.Failures, func(i, j int) bool {
		return result.Failures[i].Path < result.Failures[j].Path
	})

	w.log.Debug("corpus walk complete",
		zap.Int("records", len(result.Records)),
		zap.Int("failures", len(result.Failures)))

	return result, nil
}

// discover lists the relative paths of all candidate .json files.
func (w *Walker) discover() ([]string, error) {
	var paths []string
	err := filepath.WalkDir(w.root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			w.log.Warn("walk error", zap.String("path", path), zap.Error(err))
			return nil
		}

		relPath, err := filepath.Rel(w.root, path)
		if err != nil {
			return nil
		}

		if w.ignoreMatcher.MatchesPath(relPath) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}
		if strings.ToLower(filepath.Ext(path)) != ".json" {
			return nil
		}

		paths = append(paths, relPath)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk prompts root: %w", err)
	}
	return paths, nil
}

// LoadRecord reads and parses a single prompt record file.
func LoadRecord(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	raw, err := prompt.DecodeRaw(data)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	// The typed form is best-effort: a record whose fields have the wrong
	// shape still reaches the validator through the raw form, it just has
	// no typed view for listing.
	p, err := prompt.Decode(data)
	if err != nil {
		p = nil
	}

	return &Record{Path: path, Raw: raw, Prompt: p}, nil
}
