package pages

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/assetview/internal/search"
	"github.com/Faultbox/assetview/internal/view"
)

// searchElement renders the hits of one query.
type searchElement struct {
	app     *App
	query   string
	cacheID string
}

func (e *searchElement) Render(mount *view.Node) {
	mount.AppendChild(view.NewText("heading", fmt.Sprintf("Results for %q", e.query)))

	ctx, cancel := e.app.callContext()
	defer cancel()
	res, err := e.app.deps.Search.Search(ctx, e.app.deps.Index, e.query, search.Options{Limit: e.app.deps.Limit})
	if err != nil {
		e.app.log.Warn("search failed", zap.String("query", e.query), zap.Error(err))
		mount.AppendChild(view.NewText("error", err.Error()))
		return
	}

	mount.AppendChild(view.NewText("total", fmt.Sprintf("%d hits", res.EstimatedTotalHits)))
	list := view.NewNode("hits")
	mount.AppendChild(list)
	for _, hit := range res.Hits {
		row := view.NewNode("hit:" + hit.ID)
		for _, seg := range search.Segments(hit.Text, hit.Matches) {
			name := "text"
			if seg.Matched {
				name = "mark"
			}
			row.AppendChild(view.NewText(name, seg.Text))
		}
		if a, ok := e.app.deps.Content.Get(hit.ID); ok {
			row.AppendChild(view.NewText("kind", a.Kind().String()))
		}
		list.AppendChild(row)
	}
}
