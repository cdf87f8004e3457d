package markup

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Options tune the tokenizer.
type Options struct {
	// MaxBuf limits the bytes buffered for a single token. Zero means no limit.
	MaxBuf int
}

// voidElements never receive children, with or without a trailing slash.
var voidElements = map[atom.Atom]bool{
	atom.Area:   true,
	atom.Base:   true,
	atom.Br:     true,
	atom.Col:    true,
	atom.Embed:  true,
	atom.Hr:     true,
	atom.Img:    true,
	atom.Input:  true,
	atom.Link:   true,
	atom.Meta:   true,
	atom.Param:  true,
	atom.Source: true,
	atom.Track:  true,
	atom.Wbr:    true,
}

// builder assembles the tree from the token stream. Construction is
// literal: no implied html/head/body elements are inserted and nothing
// is reparented.
type builder struct {
	doc   *Document
	stack []*Element
}

func (b *builder) append(n Node) {
	if len(b.stack) == 0 {
		b.doc.Children = append(b.doc.Children, n)
		return
	}
	top := b.stack[len(b.stack)-1]
	top.Children = append(top.Children, n)
}

func (b *builder) open(el *Element) {
	b.append(el)
	b.stack = append(b.stack, el)
}

// close pops up to and including the nearest open element named name.
// Unmatched end tags are ignored.
func (b *builder) close(name string) {
	for i := len(b.stack) - 1; i >= 0; i-- {
		if strings.EqualFold(b.stack[i].Name, name) {
			b.stack = b.stack[:i]
			return
		}
	}
}

// Parse tokenizes input and builds a Document. Any tokenizer failure
// other than the end of input is returned and no tree is produced.
func Parse(input string, opts Options) (*Document, error) {
	z := html.NewTokenizer(strings.NewReader(input))
	if opts.MaxBuf > 0 {
		z.SetMaxBuf(opts.MaxBuf)
	}

	b := &builder{doc: &Document{}}
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("tokenize: %w", err)
			}
			return b.doc, nil

		case html.TextToken:
			// Raw keeps entities and carriage returns as written.
			b.append(&Text{Data: string(z.Raw())})

		case html.CommentToken:
			b.append(&Comment{Raw: string(z.Raw())})

		case html.StartTagToken, html.SelfClosingTagToken:
			// Raw must be copied before TagName/TagAttr lower-case the buffer.
			raw := string(z.Raw())
			el := readElement(z, raw)
			if tt == html.SelfClosingTagToken || voidElements[atom.Lookup([]byte(strings.ToLower(el.Name)))] {
				b.append(el)
			} else {
				b.open(el)
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			b.close(string(name))

		case html.DoctypeToken:
			// Dropped.
		}
	}
}

// readElement builds an element from the current tag token, restoring the
// source casing of the tag name and taking attributes as written in raw.
func readElement(z *html.Tokenizer, raw string) *Element {
	name, hasAttr := z.TagName()
	el := &Element{Name: string(name)}
	if len(raw) > len(name) && strings.EqualFold(raw[1:1+len(name)], string(name)) {
		el.Name = raw[1 : 1+len(name)]
	}
	if !hasAttr {
		return el
	}

	var decoded []Attr
	for more := true; more; {
		var key, val []byte
		key, val, more = z.TagAttr()
		decoded = append(decoded, Attr{Key: string(key), Val: string(val), HasVal: len(val) > 0})
	}

	// The scan mirrors the tokenizer; fall back to its decoded attributes
	// if the two ever disagree.
	if spelled := scanAttrs(raw); len(spelled) == len(decoded) {
		el.Attrs = spelled
	} else {
		el.Attrs = decoded
	}
	return el
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t' || c == '\f'
}

// scanAttrs re-reads the attributes of a raw start tag with the same rules
// the tokenizer applies, keeping keys and values exactly as written.
func scanAttrs(raw string) []Attr {
	i := 1
	// Tag name.
	for i < len(raw) && !isSpace(raw[i]) && raw[i] != '/' && raw[i] != '>' {
		i++
	}
	skip := func() {
		for i < len(raw) && isSpace(raw[i]) {
			i++
		}
	}

	var attrs []Attr
	skip()
	for i < len(raw) && raw[i] != '>' {
		// Key. A leading '=' is part of the name.
		start := i
		for i < len(raw) {
			c := raw[i]
			if isSpace(c) || c == '/' {
				break
			}
			if (c == '=' && i != start) || c == '>' {
				break
			}
			i++
		}
		attr := Attr{Key: raw[start:i]}
		if i < len(raw) && raw[i] == '/' {
			i++
		}

		// Value.
		skip()
		if i < len(raw) && raw[i] == '=' {
			i++
			skip()
			if i < len(raw) && raw[i] != '>' {
				attr.HasVal = true
				if q := raw[i]; q == '"' || q == '\'' {
					i++
					start := i
					for i < len(raw) && raw[i] != q {
						i++
					}
					attr.Val = raw[start:i]
					i++
				} else {
					start := i
					for i < len(raw) && !isSpace(raw[i]) && raw[i] != '>' {
						i++
					}
					attr.Val = raw[start:i]
				}
			}
		}

		if attr.Key != "" {
			attrs = append(attrs, attr)
		}
		skip()
	}
	return attrs
}
