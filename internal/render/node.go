// Package render turns slides into an HTML element tree and reads edited
// trees back into content. The same tree serves the editor (contenteditable
// fields) and the player (entrance animation attributes).
package render

import (
	"html"
	"strings"
)

// Attr is one HTML attribute. Order of emission is preserved.
type Attr struct {
	Key   string
	Value string
}

// Node is one element of the rendered tree. A node carries either Text or
// Children, never both.
type Node struct {
	Tag      string
	Attrs    []Attr
	Text     string
	Children []*Node
}

func elem(tag string, attrs ...Attr) *Node {
	return &Node{Tag: tag, Attrs: attrs}
}

func text(tag string, content string, attrs ...Attr) *Node {
	return &Node{Tag: tag, Attrs: attrs, Text: content}
}

func (n *Node) add(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

func (n *Node) setAttr(key, value string) *Node {
	for i := range n.Attrs {
		if n.Attrs[i].Key == key {
			n.Attrs[i].Value = value
			return n
		}
	}
	n.Attrs = append(n.Attrs, Attr{key, value})
	return n
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(key string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// HasClass reports whether the node's class attribute contains the token.
func (n *Node) HasClass(name string) bool {
	cls, ok := n.Attr("class")
	if !ok {
		return false
	}
	for _, tok := range strings.Fields(cls) {
		if tok == name {
			return true
		}
	}
	return false
}

// FindField returns the first node (depth first) whose data-field attribute
// equals field, or nil.
func (n *Node) FindField(field string) *Node {
	return n.findByAttr("data-field", field)
}

// FindFields returns every node with the given data-field, in document order.
func (n *Node) FindFields(field string) []*Node {
	var out []*Node
	n.walk(func(node *Node) {
		if v, ok := node.Attr("data-field"); ok && v == field {
			out = append(out, node)
		}
	})
	return out
}

// FindClass returns the first node carrying the class token, or nil.
func (n *Node) FindClass(name string) *Node {
	var found *Node
	n.walk(func(node *Node) {
		if found == nil && node.HasClass(name) {
			found = node
		}
	})
	return found
}

func (n *Node) findByAttr(key, value string) *Node {
	var found *Node
	n.walk(func(node *Node) {
		if found != nil {
			return
		}
		if v, ok := node.Attr(key); ok && v == value {
			found = node
		}
	})
	return found
}

func (n *Node) walk(fn func(*Node)) {
	fn(n)
	for _, child := range n.Children {
		child.walk(fn)
	}
}

// HTML serializes the tree. All text and attribute values are escaped, so
// content can never inject markup.
func (n *Node) HTML() string {
	var b strings.Builder
	n.writeHTML(&b)
	return b.String()
}

func (n *Node) writeHTML(b *strings.Builder) {
	// A tagless node is a fragment; only its children serialize.
	if n.Tag == "" {
		for _, child := range n.Children {
			child.writeHTML(b)
		}
		return
	}
	b.WriteByte('<')
	b.WriteString(n.Tag)
	for _, a := range n.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Key)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(a.Value))
		b.WriteByte('"')
	}
	if n.Tag == "input" {
		b.WriteString(" />")
		return
	}
	b.WriteByte('>')
	if len(n.Children) > 0 {
		for _, child := range n.Children {
			child.writeHTML(b)
		}
	} else {
		b.WriteString(html.EscapeString(n.Text))
	}
	b.WriteString("</")
	b.WriteString(n.Tag)
	b.WriteByte('>')
}
