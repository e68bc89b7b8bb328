package pages

import (
	"strconv"

	"github.com/Faultbox/assetview/internal/keepalive"
	"github.com/Faultbox/assetview/internal/view"
)

type settingsElement struct {
	provider *keepalive.Provider
}

func (e settingsElement) Render(mount *view.Node) {
	current := e.provider.Profile()
	profiles := view.NewNode("cache-profiles")
	for _, p := range keepalive.Profiles() {
		row := view.NewText(string(p), capacityLabel(p))
		if p == current {
			row.Name += " *"
		}
		profiles.AppendChild(row)
	}
	mount.AppendChild(profiles)
	mount.AppendChild(view.NewText("resident", strconv.Itoa(len(e.provider.Resident()))+" pages cached"))
}

func capacityLabel(p keepalive.Profile) string {
	var label string
	for i, ns := range keepalive.Namespaces() {
		if i > 0 {
			label += ", "
		}
		n := keepalive.Capacity(p, ns)
		if n <= 0 {
			label += string(ns) + "=unbounded"
			continue
		}
		label += string(ns) + "=" + strconv.Itoa(n)
	}
	return label
}
