// Package view is a headless retained node tree.
//
// Pages render into Nodes, and the keepalive cache moves already rendered
// Nodes between containers instead of rendering them again. A Node has at
// most one parent at any time: attaching it somewhere detaches it from
// wherever it was.
package view

import (
	"fmt"
	"strings"

	"github.com/xlab/treeprint"
)

// Node is a handle to one element of the rendered tree.
type Node struct {
	Name      string
	Text      string
	Hidden    bool
	ScrollTop int // only meaningful for the scrollable viewport

	parent   *Node
	children []*Node
}

// NewNode creates a detached node.
func NewNode(name string) *Node {
	return &Node{Name: name}
}

// NewText creates a detached node carrying text content.
func NewText(name, text string) *Node {
	return &Node{Name: name, Text: text}
}

// Parent returns the current owner of n, or nil if detached.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns a copy of n's child list.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Len returns the number of direct children.
func (n *Node) Len() int {
	return len(n.children)
}

// AppendChild moves child to the end of n's children.
// If child is owned by another node it is removed from there first.
func (n *Node) AppendChild(child *Node) {
	if child == nil {
		return
	}
	for p := n; p != nil; p = p.parent {
		if p == child {
			panic(fmt.Sprintf("view: appending %q to its own subtree", child.Name))
		}
	}
	child.Detach()
	child.parent = n
	n.children = append(n.children, child)
}

// RemoveChild detaches child from n. It reports whether child was found.
func (n *Node) RemoveChild(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// Detach removes n from its parent, if any.
func (n *Node) Detach() {
	if n.parent != nil {
		n.parent.RemoveChild(n)
	}
}

// Clear detaches every child of n.
func (n *Node) Clear() {
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
}

// Find returns the first descendant (depth-first) with the given name.
func (n *Node) Find(name string) *Node {
	for _, c := range n.children {
		if c.Name == name {
			return c
		}
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// Walk calls fn for n and every descendant, depth-first.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// Tree renders the subtree rooted at n for debugging.
func (n *Node) Tree() string {
	tree := treeprint.NewWithRoot(n.label())
	n.addBranches(tree)
	return tree.String()
}

func (n *Node) addBranches(tree treeprint.Tree) {
	for _, c := range n.children {
		if c.Len() == 0 {
			tree.AddNode(c.label())
			continue
		}
		c.addBranches(tree.AddBranch(c.label()))
	}
}

func (n *Node) label() string {
	var b strings.Builder
	b.WriteString(n.Name)
	if n.Text != "" {
		fmt.Fprintf(&b, " %q", n.Text)
	}
	if n.Hidden {
		b.WriteString(" (hidden)")
	}
	if n.ScrollTop != 0 {
		fmt.Fprintf(&b, " scroll=%d", n.ScrollTop)
	}
	return b.String()
}
