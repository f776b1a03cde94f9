package ui

import (
	"strings"

	"github.com/Makepad-fr/tada/internal/surface"
)

// PaintOptions carries the front end's live state into a paint.
type PaintOptions struct {
	// Focus is highlighted, and the row containing it gets a "> " marker.
	Focus *surface.Node
	// Overrides replaces the painting of specific nodes, e.g. with a live text input.
	Overrides map[*surface.Node]string
}

// Paint draws a surface tree as terminal text.
func Paint(root *surface.Node, opt PaintOptions) string {
	return paint(root, opt, Current(), false)
}

// paint draws n. Inside the focused subtree every leaf is drawn with the
// selected style layered over its own.
func paint(n *surface.Node, opt PaintOptions, t Theme, focused bool) string {
	if s, ok := opt.Overrides[n]; ok {
		return s
	}
	focused = focused || n == opt.Focus
	hl := func(s string) string {
		if focused {
			return t.Selected.Render(StripANSI(s))
		}
		return s
	}

	var out string
	switch {
	case n.Tag == "input":
		out = hl(paintInput(n, t))
	case n.Tag == "button":
		out = hl(t.Accent.Render("[" + n.TextContent() + "]"))
	case n.Tag == "strike":
		st := t.Done
		if focused {
			st = t.Selected.Inherit(t.Done)
		}
		out = st.Render(n.TextContent())
	case len(n.Children()) == 0:
		out = hl(n.TextContent())
	default:
		parts := make([]string, 0, len(n.Children()))
		for _, c := range n.Children() {
			parts = append(parts, paint(c, opt, t, focused))
		}
		out = strings.Join(parts, separator(n.Tag))
	}

	if n.Tag == "li" {
		prefix := "  "
		if n.Contains(opt.Focus) {
			prefix = t.Selected.Render(">") + " "
		}
		out = prefix + out
	}
	return out
}

func paintInput(n *surface.Node, t Theme) string {
	if typ, _ := n.Attr("type"); typ == "checkbox" {
		if n.Checked() {
			return t.Success.Render(t.BoxChecked)
		}
		return t.Muted.Render(t.BoxUnchecked)
	}
	if v := n.Value(); v != "" {
		return "> " + v
	}
	ph, _ := n.Attr("placeholder")
	return "> " + t.Muted.Render(ph)
}

func separator(tag string) string {
	switch tag {
	case "main", "ul", "section":
		return "\n"
	case "form", "li":
		return " "
	}
	return ""
}
