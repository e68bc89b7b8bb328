package search

import (
	"context"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"
)

type document struct {
	ids   []string
	texts []string
}

// FuzzyIndex matches queries as subsequences of each document's text,
// ranked by github.com/sahilm/fuzzy scoring.
type FuzzyIndex struct {
	mu      sync.RWMutex
	indexes map[string]*document
}

// NewFuzzyIndex creates an empty index set.
func NewFuzzyIndex() *FuzzyIndex {
	return &FuzzyIndex{indexes: make(map[string]*document)}
}

// Add appends a document to index.
func (f *FuzzyIndex) Add(index, id, text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.indexes[index]
	if !ok {
		doc = &document{}
		f.indexes[index] = doc
	}
	doc.ids = append(doc.ids, id)
	doc.texts = append(doc.texts, text)
}

// Len returns the number of documents in index.
func (f *FuzzyIndex) Len(index string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if doc, ok := f.indexes[index]; ok {
		return len(doc.ids)
	}
	return 0
}

// Search implements Client.
func (f *FuzzyIndex) Search(ctx context.Context, index, query string, opts Options) (*Result, error) {
	f.mu.RLock()
	doc, ok := f.indexes[index]
	var ids, texts []string
	if ok {
		// Add only appends, so these prefixes never change.
		ids, texts = doc.ids[:len(doc.ids):len(doc.ids)], doc.texts[:len(doc.texts):len(doc.texts)]
	}
	f.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownIndex, index)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{Query: query}
	if query == "" {
		return result, nil
	}
	matches := fuzzy.Find(query, texts)
	result.EstimatedTotalHits = len(matches)

	offset := max(opts.Offset, 0)
	if offset >= len(matches) {
		return result, nil
	}
	matches = matches[offset:]
	if opts.Limit > 0 && len(matches) > opts.Limit {
		matches = matches[:opts.Limit]
	}
	for _, m := range matches {
		result.Hits = append(result.Hits, Hit{
			ID:      ids[m.Index],
			Text:    m.Str,
			Matches: spans(m.Str, m.MatchedIndexes),
		})
	}
	return result, nil
}

// spans merges matched character positions into contiguous byte ranges.
func spans(text string, positions []int) []Span {
	var out []Span
	for _, p := range positions {
		if p < 0 || p >= len(text) {
			continue
		}
		_, size := utf8.DecodeRuneInString(text[p:])
		if n := len(out); n > 0 && out[n-1].End == p {
			out[n-1].End = p + size
			continue
		}
		out = append(out, Span{Start: p, End: p + size})
	}
	return out
}
