package render

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/livefir/html2rsx/internal/markup"
)

// Indent is the number of spaces per nesting level.
const Indent = 4

// Warning reports a value that could not be read as text and was rendered
// as an empty string instead.
type Warning struct {
	Kind  string `json:"kind"`  // "element", "attribute", "text" or "comment"
	Value string `json:"value"` // quoted form of the offending bytes
}

func (w Warning) String() string {
	return fmt.Sprintf("invalid UTF-8 in %s %s rendered as empty", w.Kind, w.Value)
}

// item is a unit of pending work: a node to emit, or a block to close.
type item struct {
	node  markup.Node
	close bool
}

// Renderer turns a node tree into block text. A Renderer is single-use
// state for one conversion and must not be shared between goroutines.
type Renderer struct {
	out   strings.Builder
	depth int

	// pending is the work stack; its front is the last slice element.
	pending []item

	elements int
	closes   int
	warnings []Warning
}

// Render renders nodes with a fresh Renderer.
func Render(nodes []markup.Node) string {
	r := &Renderer{}
	return r.Render(nodes)
}

// Warnings returns the values replaced with "" during the last Render.
func (r *Renderer) Warnings() []Warning {
	return r.warnings
}

// Elements returns the number of elements emitted by the last Render.
func (r *Renderer) Elements() int {
	return r.elements
}

// Closes returns the number of blocks closed through a deferred marker.
func (r *Renderer) Closes() int {
	return r.closes
}

// Render walks nodes depth-first in document order and returns the text.
func (r *Renderer) Render(nodes []markup.Node) string {
	r.out.Reset()
	r.depth = 0
	r.elements, r.closes = 0, 0
	r.warnings = nil
	r.pending = r.pending[:0]
	r.pushNodes(nodes)

	for len(r.pending) > 0 {
		it := r.pending[len(r.pending)-1]
		r.pending = r.pending[:len(r.pending)-1]

		if it.close {
			r.closeBlock()
			continue
		}
		switch n := it.node.(type) {
		case *markup.Element:
			r.element(n)
		case *markup.Text:
			r.indent(r.depth)
			r.out.WriteString(Quote(r.valid("text", n.Data)))
			r.out.WriteByte('\n')
		case *markup.Comment:
			r.indent(r.depth)
			r.out.WriteString("// ")
			r.out.WriteString(stripComment(r.valid("comment", n.Raw)))
			r.out.WriteByte('\n')
		}
	}
	return r.out.String()
}

// pushNodes puts nodes on the front of the work stack so that nodes[0]
// is popped first.
func (r *Renderer) pushNodes(nodes []markup.Node) {
	for i := len(nodes) - 1; i >= 0; i-- {
		r.pending = append(r.pending, item{node: nodes[i]})
	}
}

func (r *Renderer) element(el *markup.Element) {
	r.elements++
	r.indent(r.depth)
	r.out.WriteString(r.valid("element", el.Name))
	r.out.WriteString(" {")

	attrs := slices.Clone(el.Attrs)
	slices.SortStableFunc(attrs, compareAttrs)
	for _, a := range attrs {
		key := r.valid("attribute", a.Key)
		val := a.Val
		if a.HasVal {
			val = r.valid("attribute", a.Val)
		}
		r.out.WriteByte('\n')
		r.indent(r.depth + 1)
		r.out.WriteString(NormalizeName(key))
		r.out.WriteString(": ")
		r.out.WriteString(attrValue(val, a.HasVal))
		r.out.WriteByte(',')
	}

	if !el.HasChildren() {
		if el.HasAttrs() {
			r.out.WriteByte('\n')
			r.indent(r.depth)
		}
		r.out.WriteString("}\n")
		return
	}

	r.out.WriteByte('\n')
	r.pending = append(r.pending, item{close: true})
	r.pushNodes(el.Children)
	r.depth++
}

func (r *Renderer) closeBlock() {
	if r.depth == 0 {
		panic("render: block closed at depth 0; pending stack out of balance")
	}
	r.depth--
	r.closes++
	r.indent(r.depth)
	r.out.WriteString("}\n")
}

func (r *Renderer) indent(depth int) {
	for range depth * Indent {
		r.out.WriteByte(' ')
	}
}

// valid returns s, or "" with a recorded warning when s is not valid UTF-8.
func (r *Renderer) valid(kind, s string) string {
	if utf8.ValidString(s) {
		return s
	}
	r.warnings = append(r.warnings, Warning{Kind: kind, Value: fmt.Sprintf("%q", s)})
	return ""
}

// compareAttrs orders by name byte-wise. Duplicate names fall back to the
// value, with solo attributes first.
func compareAttrs(a, b markup.Attr) int {
	if c := strings.Compare(a.Key, b.Key); c != 0 {
		return c
	}
	switch {
	case a.HasVal == b.HasVal:
		return strings.Compare(a.Val, b.Val)
	case !a.HasVal:
		return -1
	default:
		return 1
	}
}
