package view

// Element is renderable content. Render populates mount with fresh child
// nodes; the keepalive cache calls it at most once per cached page.
type Element interface {
	Render(mount *Node)
}

// ElementFunc adapts a function to Element.
type ElementFunc func(mount *Node)

// Render calls f(mount).
func (f ElementFunc) Render(mount *Node) { f(mount) }
