package search

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIndex() *FuzzyIndex {
	idx := NewFuzzyIndex()
	idx.Add("assets", "t1", "cat_tail.tex")
	idx.Add("assets", "t2", "catcoon.xml")
	idx.Add("assets", "t3", "dog_house.tex")
	return idx
}

func TestFuzzySearch(t *testing.T) {
	res, err := newIndex().Search(context.Background(), "assets", "cat", Options{})
	require.NoError(t, err)

	assert.Equal(t, "cat", res.Query)
	assert.Equal(t, 2, res.EstimatedTotalHits)
	require.Len(t, res.Hits, 2)
	for _, h := range res.Hits {
		assert.Contains(t, []string{"t1", "t2"}, h.ID)
		assert.Equal(t, []Span{{Start: 0, End: 3}}, h.Matches)
	}
}

func TestFuzzySearchPaging(t *testing.T) {
	idx := newIndex()
	res, err := idx.Search(context.Background(), "assets", "t", Options{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, res.Hits, 1)
	assert.Equal(t, 3, res.EstimatedTotalHits)

	res, err = idx.Search(context.Background(), "assets", "t", Options{Offset: 100})
	require.NoError(t, err)
	assert.Empty(t, res.Hits)
}

func TestFuzzySearchNegativeOffset(t *testing.T) {
	res, err := newIndex().Search(context.Background(), "assets", "t", Options{Offset: -2, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, res.Hits, 2)
	assert.Equal(t, 3, res.EstimatedTotalHits)
}

func TestFuzzySearchWhileAdding(t *testing.T) {
	idx := newIndex()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := range 200 {
			idx.Add("assets", fmt.Sprintf("n%d", i), fmt.Sprintf("cat_%d.tex", i))
		}
	}()
	for range 50 {
		res, err := idx.Search(context.Background(), "assets", "cat", Options{})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.EstimatedTotalHits, 2)
	}
	wg.Wait()
	assert.Equal(t, 203, idx.Len("assets"))
}

func TestFuzzySearchErrors(t *testing.T) {
	_, err := newIndex().Search(context.Background(), "sounds", "x", Options{})
	assert.ErrorIs(t, err, ErrUnknownIndex)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = newIndex().Search(ctx, "assets", "x", Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEmptyQuery(t *testing.T) {
	res, err := newIndex().Search(context.Background(), "assets", "", Options{})
	require.NoError(t, err)
	assert.Empty(t, res.Hits)
}

func TestSpansMergeAdjacent(t *testing.T) {
	assert.Equal(t, []Span{{0, 2}, {4, 5}}, spans("abcdef", []int{0, 1, 4}))
	assert.Nil(t, spans("abc", nil))
}

func TestSegments(t *testing.T) {
	segs := Segments("cat_tail", []Span{{0, 3}, {4, 5}})
	assert.Equal(t, []Segment{
		{Text: "cat", Matched: true},
		{Text: "_"},
		{Text: "t", Matched: true},
		{Text: "ail"},
	}, segs)
	assert.Equal(t, []Segment{{Text: "plain"}}, Segments("plain", nil))
}
