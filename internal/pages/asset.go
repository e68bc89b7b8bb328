package pages

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/Faultbox/assetview/internal/assets"
	"github.com/Faultbox/assetview/internal/view"
)

// assetElement renders the detail page of one asset.
type assetElement struct {
	app     *App
	asset   assets.Asset
	cacheID string
}

func (e *assetElement) Render(mount *view.Node) {
	mount.AppendChild(view.NewText("title", e.asset.Name()))
	mount.AppendChild(view.NewText("type", e.asset.Kind().String()))

	switch a := e.asset.(type) {
	case assets.Texture:
		mount.AppendChild(view.NewText("atlas", a.XML))
		e.preview(mount, a.ID)
	case assets.Atlas:
		mount.AppendChild(view.NewText("texture", a.TexPath))
		mount.AppendChild(view.NewText("elements", strconv.Itoa(a.NumTexes)))
		e.preview(mount, a.ID)
	case assets.Animation:
		mount.AppendChild(view.NewText("file", a.File))
		if a.Dynamic {
			mount.AppendChild(view.NewText("build", "dynamic"))
		}
	case assets.Image:
		mount.AppendChild(view.NewText("file", a.File))
		e.preview(mount, a.ID)
	case assets.Shader:
		mount.AppendChild(view.NewText("file", a.File))
	case assets.SoundEvent:
		mount.AppendChild(view.NewText("path", a.Path))
		mount.AppendChild(view.NewText("project", a.Project))
	case assets.SoundProject:
		mount.AppendChild(view.NewText("file", a.File))
	default:
		panic(fmt.Sprintf("pages: unhandled asset type %T", a))
	}
}

// preview loads the decoded image of assetID for this page.
func (e *assetElement) preview(mount *view.Node, assetID string) {
	if e.app.deps.Loader == nil {
		return
	}
	ctx, cancel := e.app.callContext()
	defer cancel()
	data, err := e.app.deps.Loader.Load(ctx, e.cacheID, assetID)
	if err != nil {
		e.app.log.Warn("preview failed", zap.String("asset", assetID), zap.Error(err))
		mount.AppendChild(view.NewText("preview-error", err.Error()))
		return
	}
	mount.AppendChild(view.NewText("preview", fmt.Sprintf("%d bytes", len(data))))
}

func invalidElement(id string) view.Element {
	return view.ElementFunc(func(mount *view.Node) {
		if id == "" {
			mount.AppendChild(view.NewText("error", "missing asset id"))
			return
		}
		mount.AppendChild(view.NewText("error", fmt.Sprintf("unknown asset id %q", id)))
	})
}
