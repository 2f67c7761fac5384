// Package dom is a small mutable view over a parsed HTML page.
//
// It stands in for the browser document: renderers and interaction
// handlers change classes, text and container markup here and the page is
// serialized once they are done.
package dom

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNoContainer is returned when a container is not present in the page.
var ErrNoContainer = errors.New("container not found")

// Port receives rendered markup for a named container.
type Port interface {
	SetContainerContent(container, markup string) error
}

// Document is a parsed HTML page.
type Document struct {
	root *html.Node
}

// Parse reads a full HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return &Document{root: root}, nil
}

// ParseString is Parse for an in-memory page.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// HTML returns the <html> element.
func (d *Document) HTML() *html.Node {
	return d.First(ByTag(atom.Html))
}

// Head returns the <head> element.
func (d *Document) Head() *html.Node {
	return d.First(ByTag(atom.Head))
}

// Body returns the <body> element.
func (d *Document) Body() *html.Node {
	return d.First(ByTag(atom.Body))
}

// FindAll returns every element matching m, in document order.
func (d *Document) FindAll(m Matcher) []*html.Node {
	return findAll(d.root, m)
}

// First returns the first element matching m, or nil.
func (d *Document) First(m Matcher) *html.Node {
	var found *html.Node
	walk(d.root, func(n *html.Node) bool {
		if m(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// SetContainerContent replaces the children of the first element carrying
// the class container with markup.
func (d *Document) SetContainerContent(container, markup string) error {
	n := d.First(ByClass(container))
	if n == nil {
		return ErrNoContainer
	}
	return SetInnerHTML(n, markup)
}

// AppendHTML parses markup in the context of parent and appends it.
func AppendHTML(parent *html.Node, markup string) error {
	nodes, err := html.ParseFragment(strings.NewReader(markup), parent)
	if err != nil {
		return err
	}
	for _, n := range nodes {
		parent.AppendChild(n)
	}
	return nil
}

// SetInnerHTML replaces the children of n with markup.
func SetInnerHTML(n *html.Node, markup string) error {
	nodes, err := html.ParseFragment(strings.NewReader(markup), n)
	if err != nil {
		return err
	}
	removeChildren(n)
	for _, c := range nodes {
		n.AppendChild(c)
	}
	return nil
}

// InnerHTML serializes the children of n.
func InnerHTML(n *html.Node) string {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&buf, c)
	}
	return buf.String()
}

// OuterHTML serializes n itself.
func OuterHTML(n *html.Node) string {
	var buf bytes.Buffer
	_ = html.Render(&buf, n)
	return buf.String()
}

// SetText replaces the children of n with a single text node.
func SetText(n *html.Node, text string) {
	removeChildren(n)
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// Text returns the concatenated text content of n.
func Text(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		return true
	})
	return b.String()
}

// Remove detaches n from its parent.
func Remove(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

func removeChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}
}

func findAll(root *html.Node, m Matcher) []*html.Node {
	var out []*html.Node
	walk(root, func(n *html.Node) bool {
		if m(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// walk visits n and its descendants depth first until visit returns false.
func walk(n *html.Node, visit func(*html.Node) bool) bool {
	if !visit(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, visit) {
			return false
		}
	}
	return true
}
