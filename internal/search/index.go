// Package search provides full-text search over the prompt corpus. The
// bleve index is built in memory from the loaded records at query time;
// nothing is persisted to disk.
package search

import (
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/ChamsBouzaiene/promptlab/internal/prompt"
)

// Result is one search hit.
type Result struct {
	ID       string
	Title    string
	Category string
	Score    float64
}

// Index is an in-memory full-text index over prompt records.
type Index struct {
	index bleve.Index
}

// NewIndex builds an in-memory index over the given prompts. Records without
// a typed view (nil) are skipped; they cannot be meaningfully searched.
func NewIndex(prompts []*prompt.Prompt) (*Index, error) {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create search index: %w", err)
	}

	batch := index.NewBatch()
	for _, p := range prompts {
		if p == nil || p.ID == "" {
			continue
		}
		doc := map[string]interface{}{
			"id":        p.ID,
			"title":     p.Title,
			"category":  p.Category,
			"text":      p.Prompt,
			"goal":      p.Goal,
			"tags":      strings.Join(p.Tags, " "),
			"variables": strings.Join(p.VariableNames(), " "),
		}
		if err := batch.Index(p.ID, doc); err != nil {
			return nil, fmt.Errorf("failed to index prompt %s: %w", p.ID, err)
		}
	}
	if err := index.Batch(batch); err != nil {
		return nil, fmt.Errorf("failed to build search index: %w", err)
	}

	return &Index{index: index}, nil
}

func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()

	docMapping := bleve.NewDocumentMapping()

	idField := bleve.NewTextFieldMapping()
	idField.Analyzer = keyword.Name
	idField.Store = true
	docMapping.AddFieldMappingsAt("id", idField)

	categoryField := bleve.NewTextFieldMapping()
	categoryField.Analyzer = keyword.Name
	categoryField.Store = true
	docMapping.AddFieldMappingsAt("category", categoryField)

	titleField := bleve.NewTextFieldMapping()
	titleField.Analyzer = standard.Name
	titleField.Store = true
	docMapping.AddFieldMappingsAt("title", titleField)

	for _, name := range []string{"text", "goal", "tags", "variables"} {
		f := bleve.NewTextFieldMapping()
		f.Analyzer = standard.Name
		f.Store = false
		docMapping.AddFieldMappingsAt(name, f)
	}

	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

// Search returns the top k prompts matching the query, optionally restricted
// to one category.
func (idx *Index) Search(query, category string, k int) ([]Result, error) {
	if k <= 0 {
		k = 10
	}

	q := bleve.NewQueryStringQuery(query)
	combined := bleve.NewConjunctionQuery(q)
	if category != "" {
		catQuery := bleve.NewTermQuery(category)
		catQuery.SetField("category")
		combined.AddQuery(catQuery)
	}

	request := bleve.NewSearchRequest(combined)
	request.Size = k
	request.Fields = []string{"id", "title", "category"}

	searchResult, err := idx.index.Search(request)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	results := make([]Result, 0, len(searchResult.Hits))
	for _, hit := range searchResult.Hits {
		r := Result{ID: hit.ID, Score: hit.Score}
		if title, ok := hit.Fields["title"].(string); ok {
			r.Title = title
		}
		if cat, ok := hit.Fields["category"].(string); ok {
			r.Category = cat
		}
		results = append(results, r)
	}
	return results, nil
}

// Close releases the index.
func (idx *Index) Close() error {
	return idx.index.Close()
}
