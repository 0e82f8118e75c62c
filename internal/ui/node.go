package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Node is a single styled overlay element: a box with optional text. Class
// and ID select its rules in the stylesheet.
type Node struct {
	Class  string // e.g. "row" for .row
	ID     string // e.g. "hint" for #hint
	Bounds rl.Rectangle
	Text   string
}

// NewNode creates a node with optional class, id and text.
func NewNode(class, id, text string) *Node {
	return &Node{Class: class, ID: id, Text: text}
}
