package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendChildTransfersOwnership(t *testing.T) {
	a, b := NewNode("a"), NewNode("b")
	child := NewText("row", "hello")

	a.AppendChild(child)
	require.Same(t, a, child.Parent())

	b.AppendChild(child)
	assert.Same(t, b, child.Parent())
	assert.Zero(t, a.Len(), "previous owner relinquishes the node")
	assert.Equal(t, []*Node{child}, b.Children())
}

func TestAppendChildRejectsCycles(t *testing.T) {
	root := NewNode("root")
	mid := NewNode("mid")
	root.AppendChild(mid)
	assert.Panics(t, func() { mid.AppendChild(root) })
	assert.Panics(t, func() { root.AppendChild(root) })
}

func TestChildrenIsACopy(t *testing.T) {
	n := NewNode("n")
	n.AppendChild(NewNode("x"))
	kids := n.Children()
	kids[0] = nil
	assert.NotNil(t, n.Children()[0])
}

func TestClearAndFind(t *testing.T) {
	root := NewNode("root")
	list := NewNode("list")
	root.AppendChild(list)
	item := NewText("item", "a")
	list.AppendChild(item)

	assert.Same(t, item, root.Find("item"))
	assert.Nil(t, root.Find("missing"))

	root.Clear()
	assert.Nil(t, list.Parent())
	assert.Same(t, list, item.Parent())
}

func TestTree(t *testing.T) {
	root := NewNode("root")
	page := NewNode("page")
	page.Hidden = true
	root.AppendChild(page)
	page.AppendChild(NewText("title", "cats"))

	out := root.Tree()
	assert.Contains(t, out, "root")
	assert.Contains(t, out, "page (hidden)")
	assert.Contains(t, out, `title "cats"`)
}

func TestElementFunc(t *testing.T) {
	mount := NewNode("mount")
	var el Element = ElementFunc(func(m *Node) { m.AppendChild(NewNode("x")) })
	el.Render(mount)
	assert.Equal(t, 1, mount.Len())
}
