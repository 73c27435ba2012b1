// Package xmltree parses XML into a navigable node tree with path-based lookup.
package xmltree

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Node is one element in a parsed document tree.
type Node struct {
	Name     string
	Attrs    []xml.Attr
	Children []*Node

	// text holds character data segments interleaved with child elements,
	// in document order. segments[i] precedes Children[i]; the final
	// segment follows the last child.
	segments []string
}

// Parse reads XML from r and returns the root element node.
// Comments, processing instructions, and directives are skipped.
func Parse(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)
	// Archive exports use named entities (&mdash; etc.) from their DTDs
	// without inlining the declarations.
	dec.Entity = xml.HTMLEntity

	var root *Node
	var stack []*Node

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{
				Name:     t.Name.Local,
				Attrs:    t.Copy().Attr,
				segments: []string{""},
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("parsing XML: multiple root elements")
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
				parent.segments = append(parent.segments, "")
			}
			stack = append(stack, n)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("parsing XML: unbalanced end element </%s>", t.Name.Local)
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				n := stack[len(stack)-1]
				n.segments[len(n.segments)-1] += string(t)
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("parsing XML: no root element")
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("parsing XML: unclosed element <%s>", stack[len(stack)-1].Name)
	}
	return root, nil
}

// Attr returns the value of the named attribute, matching on local name.
// Returns "" when the attribute is absent.
func (n *Node) Attr(name string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// Child returns the first direct child with the given name, or nil.
func (n *Node) Child(name string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns all direct children with the given name, in document order.
func (n *Node) ChildrenNamed(name string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// FindFirst descends through the named path one level at a time and returns
// the first match at each step, nil when any step has no match. A nil result
// signals "field absent", not an error.
func (n *Node) FindFirst(path ...string) *Node {
	cur := n
	for _, name := range path {
		cur = cur.Child(name)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// FindAll returns every node reachable by the named path, in document order.
// All intermediate matches are followed, so repeated elements at any level
// contribute their subtrees.
func (n *Node) FindAll(path ...string) []*Node {
	if n == nil {
		return nil
	}
	frontier := []*Node{n}
	for _, name := range path {
		var next []*Node
		for _, f := range frontier {
			next = append(next, f.ChildrenNamed(name)...)
		}
		if len(next) == 0 {
			return nil
		}
		frontier = next
	}
	return frontier
}

// Text returns the concatenated character data of the node and all its
// descendants, in document order. Mixed content keeps its interleaving:
// "On <italic>Method</italic>" yields "On Method". Returns "" for nil.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	n.writeText(&b)
	return b.String()
}

func (n *Node) writeText(b *strings.Builder) {
	for i, seg := range n.segments {
		b.WriteString(seg)
		if i < len(n.Children) {
			n.Children[i].writeText(b)
		}
	}
}
