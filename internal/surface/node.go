// Package surface is a small element tree the view draws into and the
// terminal front end paints from. It offers the handful of primitives a
// page needs: create an element, set properties, attach and detach
// children, and dispatch events that bubble to ancestors.
package surface

import "strings"

// Node is an element. A node with text and no children is a text leaf.
type Node struct {
	Tag string

	classes  []string
	attrs    map[string]string
	text     string
	value    string
	checked  bool
	parent   *Node
	children []*Node

	listeners map[string][]Listener
}

// CreateElement returns a detached element with the given classes.
func CreateElement(tag string, classes ...string) *Node {
	n := &Node{Tag: tag, attrs: map[string]string{}}
	for _, c := range classes {
		n.AddClass(c)
	}
	return n
}

func (n *Node) AddClass(c string) {
	if c == "" || n.HasClass(c) {
		return
	}
	n.classes = append(n.classes, c)
}

func (n *Node) HasClass(c string) bool {
	for _, have := range n.classes {
		if have == c {
			return true
		}
	}
	return false
}

func (n *Node) SetAttr(name, value string) { n.attrs[name] = value }

func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

func (n *Node) HasAttr(name string) bool {
	_, ok := n.attrs[name]
	return ok
}

func (n *Node) RemoveAttr(name string) { delete(n.attrs, name) }

// Value is the live value of an input element.
func (n *Node) Value() string     { return n.value }
func (n *Node) SetValue(v string) { n.value = v }

// Checked is the live state of a checkbox element.
func (n *Node) Checked() bool     { return n.checked }
func (n *Node) SetChecked(c bool) { n.checked = c }

// SetText drops all children and makes n a text leaf.
func (n *Node) SetText(s string) {
	for len(n.children) > 0 {
		n.RemoveChild(n.children[0])
	}
	n.text = s
}

// TextContent concatenates the text of n and its descendants.
func (n *Node) TextContent() string {
	if len(n.children) == 0 {
		return n.text
	}
	var b strings.Builder
	b.WriteString(n.text)
	for _, c := range n.children {
		b.WriteString(c.TextContent())
	}
	return b.String()
}

// Append attaches children in order, detaching each from any previous parent.
func (n *Node) Append(children ...*Node) {
	for _, c := range children {
		if c.parent != nil {
			c.parent.RemoveChild(c)
		}
		c.parent = n
		n.children = append(n.children, c)
	}
}

// RemoveChild detaches child. It does nothing if child is not a child of n.
func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i:i], n.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

func (n *Node) FirstChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[0]
}

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

func (n *Node) Parent() *Node { return n.parent }

// Closest walks from n up to the root and returns the first node matching pred.
func (n *Node) Closest(pred func(*Node) bool) *Node {
	for cur := n; cur != nil; cur = cur.parent {
		if pred(cur) {
			return cur
		}
	}
	return nil
}

// Find returns the first descendant of n, depth first, matching pred.
func (n *Node) Find(pred func(*Node) bool) *Node {
	for _, c := range n.children {
		if pred(c) {
			return c
		}
		if hit := c.Find(pred); hit != nil {
			return hit
		}
	}
	return nil
}

// Contains reports whether other is n or one of its descendants.
func (n *Node) Contains(other *Node) bool {
	return other != nil && other.Closest(func(x *Node) bool { return x == n }) != nil
}

// ByClass matches elements carrying class c.
func ByClass(c string) func(*Node) bool {
	return func(n *Node) bool { return n.HasClass(c) }
}
