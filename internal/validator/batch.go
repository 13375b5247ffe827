package validator

import (
	"sort"
	"sync"
)

// Entry is one record to validate, keyed by file identity. The corpus layer
// produces entries; the validator never touches the filesystem itself.
type Entry struct {
	Path   string
	Record map[string]any
}

// Summary aggregates corpus-wide counts for a batch run.
type Summary struct {
	Total    int `json:"total"`
	Valid    int `json:"valid"`
	Invalid  int `json:"invalid"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
}

// Report holds per-record outcomes keyed by path plus the corpus summary.
type Report struct {
	Outcomes map[string]Outcome
	Summary  Summary
}

// batchConcurrency bounds the worker pool for batch validation. Records are
// independent, so this is purely a throughput knob.
const batchConcurrency = 4

// ValidateAll validates every entry independently. One record's failure
// never aborts the rest. Entries are fanned out across a small worker pool;
// the resulting report does not depend on scheduling order.
func (v *Validator) ValidateAll(entries []Entry) Report {
	outcomes := make(map[string]Outcome, len(entries))

	jobs := make(chan Entry)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < batchConcurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for entry := range jobs {
				outcome := v.Validate(entry.Record)
				mu.Lock()
				outcomes[entry.Path] = outcome
				mu.Unlock()
			}
		}()
	}

	for _, entry := range entries {
		jobs <- entry
	}
	close(jobs)
	wg.Wait()

	for path, dupes := range duplicateIDs(entries) {
		outcome := outcomes[path]
		outcome.Warnings = append(outcome.Warnings, dupes...)
		outcomes[path] = outcome
	}

	report := Report{Outcomes: outcomes}
	for _, outcome := range outcomes {
		report.Summary.Total++
		if outcome.Valid {
			report.Summary.Valid++
		} else {
			report.Summary.Invalid++
		}
		report.Summary.Errors += len(outcome.Errors)
		report.Summary.Warnings += len(outcome.Warnings)
	}
	return report
}

// duplicateIDs builds advisory findings for IDs declared by more than one
// file. Uniqueness across the corpus is a convention, not a schema rule, so
// collisions warn rather than fail.
func duplicateIDs(entries []Entry) map[string][]Finding {
	byID := make(map[string][]string)
	for _, entry := range entries {
		if id, ok := entry.Record["id"].(string); ok && id != "" {
			byID[id] = append(byID[id], entry.Path)
		}
	}

	findings := make(map[string][]Finding)
	for id, paths := range byID {
		if len(paths) < 2 {
			continue
		}
		sort.Strings(paths)
		for _, path := range paths {
			findings[path] = append(findings[path], Finding{
				Code:    CodeDuplicateID,
				Field:   "id",
				Message: "id " + id + " is declared by more than one record",
			})
		}
	}
	return findings
}

// SortedPaths returns the report's record paths in lexical order, for stable
// presentation.
func (r Report) SortedPaths() []string {
	paths := make([]string, 0, len(r.Outcomes))
	for path := range r.Outcomes {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
