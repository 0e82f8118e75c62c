package ui

import "fmt"

// Inspector is a small box under the debug lines showing the pick target
// and whether the pointer is over it. It owns its nodes and refreshes their
// text in AppendNodes.
type Inspector struct {
	title    *Node
	name     *Node
	position *Node
	color    *Node
	hover    *Node
}

// NewInspector creates an Inspector with nodes styled by .inspector-* rules.
func NewInspector() *Inspector {
	return &Inspector{
		title:    NewNode("inspector-title", "", "Target"),
		name:     NewNode("inspector-row", "inspector-name", ""),
		position: NewNode("inspector-row", "inspector-position", ""),
		color:    NewNode("inspector-row", "inspector-color", ""),
		hover:    NewNode("inspector-row", "inspector-hover", ""),
	}
}

// Selection holds the data shown in the inspector. The caller fills it from
// the scene; ui does not depend on the frame loop.
type Selection struct {
	Name     string
	Position [3]float32
	Color    string
	Hovered  bool
	Present  bool
}

// AppendNodes appends inspector nodes to dst when visible is true, after updating labels from sel.
func (in *Inspector) AppendNodes(dst []*Node, visible bool, sel Selection) []*Node {
	if !visible {
		return dst
	}
	if !sel.Present {
		in.name.Text = "Name: (removed)"
		in.position.Text = ""
		in.color.Text = ""
		in.hover.Text = ""
		return append(dst, in.title, in.name)
	}
	in.name.Text = "Name: " + sel.Name
	in.position.Text = fmt.Sprintf("Position: %.2f, %.2f, %.2f", sel.Position[0], sel.Position[1], sel.Position[2])
	in.color.Text = "Color: " + sel.Color
	if sel.Hovered {
		in.hover.Text = "Hover: yes"
	} else {
		in.hover.Text = "Hover: no"
	}
	return append(dst, in.title, in.name, in.position, in.color, in.hover)
}
