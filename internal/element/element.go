// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package element provides the attributed node tree that record book
// entities load from and save to.
package element

import (
	"strconv"
	"strings"

	"github.com/juju/schema"

	"github.com/dconnet/AgilityBook-sub002/internal/date"
)

// Lookup is the outcome of reading an attribute.
type Lookup int

const (
	// NotFound means the attribute is absent.
	NotFound Lookup = iota
	// Found means the attribute is present and well formed.
	Found
	// Invalid means the attribute is present but cannot be converted
	// to the requested type.
	Invalid
)

func (l Lookup) String() string {
	switch l {
	case Found:
		return "found"
	case Invalid:
		return "invalid"
	}
	return "not found"
}

type attrib struct {
	name  string
	value string
}

// Node is one element of the tree: a name, ordered attributes, ordered
// children and an optional text value.
type Node struct {
	name     string
	value    string
	attribs  []attrib
	children []*Node
}

// New returns an empty node with the given name.
func New(name string) *Node {
	return &Node{name: name}
}

// Name returns the element name.
func (n *Node) Name() string {
	return n.name
}

// SetName renames the element.
func (n *Node) SetName(name string) {
	n.name = name
}

// Value returns the text content.
func (n *Node) Value() string {
	return n.value
}

// SetValue sets the text content.
func (n *Node) SetValue(value string) {
	n.value = value
}

// AttribNames returns the attribute names in document order.
func (n *Node) AttribNames() []string {
	names := make([]string, len(n.attribs))
	for i, a := range n.attribs {
		names[i] = a.name
	}
	return names
}

// HasAttrib reports whether the named attribute is present.
func (n *Node) HasAttrib(name string) bool {
	return n.indexOf(name) >= 0
}

func (n *Node) indexOf(name string) int {
	for i, a := range n.attribs {
		if a.name == name {
			return i
		}
	}
	return -1
}

// SetAttrib adds the attribute, replacing any existing value.
func (n *Node) SetAttrib(name, value string) {
	if i := n.indexOf(name); i >= 0 {
		n.attribs[i].value = value
		return
	}
	n.attribs = append(n.attribs, attrib{name: name, value: value})
}

// SetAttribBool writes b as "y" or "n".
func (n *Node) SetAttribBool(name string, b bool) {
	if b {
		n.SetAttrib(name, "y")
	} else {
		n.SetAttrib(name, "n")
	}
}

// SetAttribInt writes an integer attribute.
func (n *Node) SetAttribInt(name string, v int) {
	n.SetAttrib(name, strconv.Itoa(v))
}

// SetAttribFloat writes a float attribute in its shortest form.
func (n *Node) SetAttribFloat(name string, v float64) {
	n.SetAttrib(name, strconv.FormatFloat(v, 'g', -1, 64))
}

// SetAttribDate writes a date attribute. Invalid dates are not written.
func (n *Node) SetAttribDate(name string, d date.Date) {
	if d.IsValid() {
		n.SetAttrib(name, d.String())
	}
}

// RemoveAttrib removes the named attribute and reports whether it was
// present.
func (n *Node) RemoveAttrib(name string) bool {
	i := n.indexOf(name)
	if i < 0 {
		return false
	}
	n.attribs = append(n.attribs[:i], n.attribs[i+1:]...)
	return true
}

// Attrib returns the raw attribute value.
func (n *Node) Attrib(name string) (string, Lookup) {
	i := n.indexOf(name)
	if i < 0 {
		return "", NotFound
	}
	return n.attribs[i].value, Found
}

// AttribBool reads a boolean attribute. Both "y"/"n" and the usual
// true/false spellings are accepted.
func (n *Node) AttribBool(name string) (bool, Lookup) {
	raw, lookup := n.Attrib(name)
	if lookup != Found {
		return false, lookup
	}
	switch raw {
	case "y", "Y":
		return true, Found
	case "n", "N":
		return false, Found
	}
	v, err := schema.Bool().Coerce(raw, nil)
	if err != nil {
		return false, Invalid
	}
	return v.(bool), Found
}

// AttribInt reads an integer attribute.
func (n *Node) AttribInt(name string) (int, Lookup) {
	raw, lookup := n.Attrib(name)
	if lookup != Found {
		return 0, lookup
	}
	v, err := schema.ForceInt().Coerce(raw, nil)
	if err != nil {
		return 0, Invalid
	}
	return v.(int), Found
}

// AttribFloat reads a floating point attribute.
func (n *Node) AttribFloat(name string) (float64, Lookup) {
	raw, lookup := n.Attrib(name)
	if lookup != Found {
		return 0, lookup
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, Invalid
	}
	return v, Found
}

// AttribDate reads a yyyy-mm-dd attribute.
func (n *Node) AttribDate(name string) (date.Date, Lookup) {
	raw, lookup := n.Attrib(name)
	if lookup != Found {
		return date.Date{}, lookup
	}
	d, err := date.Parse(raw)
	if err != nil {
		return date.Date{}, Invalid
	}
	return d, Found
}

// AddChild appends a new child with the given name and returns it.
func (n *Node) AddChild(name string) *Node {
	child := New(name)
	n.children = append(n.children, child)
	return child
}

// AppendChild appends an existing node.
func (n *Node) AppendChild(child *Node) {
	n.children = append(n.children, child)
}

// Children returns the child nodes in order.
func (n *Node) Children() []*Node {
	return n.children
}

// ChildrenNamed returns the children with the given name.
func (n *Node) ChildrenNamed(name string) []*Node {
	var result []*Node
	for _, child := range n.children {
		if child.name == name {
			result = append(result, child)
		}
	}
	return result
}

// Child returns the first child with the given name, or nil.
func (n *Node) Child(name string) *Node {
	for _, child := range n.children {
		if child.name == name {
			return child
		}
	}
	return nil
}

// RemoveChild removes child and reports whether it was found.
func (n *Node) RemoveChild(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the subtree rooted at n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{
		name:    n.name,
		value:   n.value,
		attribs: append([]attrib(nil), n.attribs...),
	}
	for _, child := range n.children {
		c.children = append(c.children, child.Clone())
	}
	return c
}

// Equal reports whether both subtrees have the same names, values,
// attributes (order sensitive) and children.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.name != o.name || n.value != o.value ||
		len(n.attribs) != len(o.attribs) || len(n.children) != len(o.children) {
		return false
	}
	for i := range n.attribs {
		if n.attribs[i] != o.attribs[i] {
			return false
		}
	}
	for i := range n.children {
		if !n.children[i].Equal(o.children[i]) {
			return false
		}
	}
	return true
}
