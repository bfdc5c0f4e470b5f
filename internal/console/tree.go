package console

import (
	"strings"

	"github.com/charmbracelet/lipgloss/tree"
)

// Tree is a labelled node with children, drawn with unicode guide lines.
type Tree struct {
	Label    string
	Children []*Tree
}

// NewTree returns a node with a markup label.
func NewTree(label string) *Tree {
	return &Tree{Label: label}
}

// Add appends a child node and returns it.
func (t *Tree) Add(label string) *Tree {
	child := NewTree(label)
	t.Children = append(t.Children, child)
	return child
}

// Render draws the tree. Guides use the tree.line style and labels the
// tree style.
func (t *Tree) Render(c *Console, _ int) ([]string, error) {
	root, err := t.node(c)
	if err != nil {
		return nil, err
	}
	lt, ok := root.(*tree.Tree)
	if !ok {
		lt = tree.Root(root)
	}
	lt.EnumeratorStyle(c.Style("tree.line").lipgloss(c.lg).PaddingRight(1))
	return strings.Split(lt.String(), "\n"), nil
}

// node converts t to a lipgloss tree node: a label string for leaves, a
// subtree otherwise.
func (t *Tree) node(c *Console) (any, error) {
	label, err := c.cellText(t.Label, c.Style("tree"))
	if err != nil {
		return nil, err
	}
	if len(t.Children) == 0 {
		return label, nil
	}
	lt := tree.Root(label)
	for _, child := range t.Children {
		n, err := child.node(c)
		if err != nil {
			return nil, err
		}
		lt.Child(n)
	}
	return lt, nil
}
