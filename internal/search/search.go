// Package search defines the full-text search boundary used by the search
// pages and an in-process fuzzy implementation of it.
package search

import (
	"context"
	"errors"
)

// ErrUnknownIndex is returned when searching an index nothing was added to.
var ErrUnknownIndex = errors.New("unknown search index")

// Span is a matched byte range [Start, End) of a hit's text.
type Span struct {
	Start int
	End   int
}

// Hit is one search result. ID resolves against the content map.
type Hit struct {
	ID      string
	Text    string
	Matches []Span
}

// Result is one page of search results.
type Result struct {
	Hits               []Hit
	EstimatedTotalHits int
	Query              string
}

// Options control paging.
type Options struct {
	Offset int
	Limit  int // 0 means no limit
}

// Client runs queries against a named index.
type Client interface {
	Search(ctx context.Context, index, query string, opts Options) (*Result, error)
}

// Segment is a run of text that is either matched or not.
type Segment struct {
	Text    string
	Matched bool
}

// Segments splits text into matched and unmatched runs.
func Segments(text string, spans []Span) []Segment {
	var out []Segment
	pos := 0
	for _, s := range spans {
		if s.Start < pos || s.End > len(text) || s.Start >= s.End {
			continue
		}
		if s.Start > pos {
			out = append(out, Segment{Text: text[pos:s.Start]})
		}
		out = append(out, Segment{Text: text[s.Start:s.End], Matched: true})
		pos = s.End
	}
	if pos < len(text) {
		out = append(out, Segment{Text: text[pos:]})
	}
	return out
}
