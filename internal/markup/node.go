package markup

// Node is a parsed markup node. The set of implementations is closed:
// *Element, *Text and *Comment.
type Node interface {
	node()
}

// Attr is a single attribute pair. HasVal is false for solo attributes
// such as `disabled`, which carry no `=value` in the source.
type Attr struct {
	Key    string
	Val    string
	HasVal bool
}

// Element is a tag with its attributes and ordered children.
type Element struct {
	Name     string
	Attrs    []Attr
	Children []Node
}

// Text is a run of character data.
type Text struct {
	Data string
}

// Comment holds the source spelling of a comment, delimiters included.
type Comment struct {
	Raw string
}

func (*Element) node() {}
func (*Text) node()    {}
func (*Comment) node() {}

// HasChildren reports whether the element has at least one child.
func (e *Element) HasChildren() bool {
	return len(e.Children) > 0
}

// HasAttrs reports whether the element has at least one attribute.
func (e *Element) HasAttrs() bool {
	return len(e.Attrs) > 0
}

// Document is the root of a parsed input. It is not an element itself.
type Document struct {
	Children []Node
}
