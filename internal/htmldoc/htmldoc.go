// Package htmldoc adapts goquery selections to the chain.Node interface.
package htmldoc

import (
	"bytes"
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"

	"github.com/dgnsrekt/wheelscan/internal/chain"
)

// Element wraps a single-node goquery selection.
type Element struct {
	sel *goquery.Selection
}

// Parse reads an HTML document and returns its root.
func Parse(r io.Reader) (*Element, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}
	return Wrap(doc.Selection), nil
}

// ParseBytes is Parse over an in-memory page.
func ParseBytes(b []byte) (*Element, error) {
	return Parse(bytes.NewReader(b))
}

// Wrap adapts an existing selection. Only its first node is used.
func Wrap(sel *goquery.Selection) *Element {
	return &Element{sel: sel.First()}
}

func (e *Element) Text() string {
	return e.sel.Text()
}

func (e *Element) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

func (e *Element) Children(tag string) []chain.Node {
	return wrapAll(e.sel.ChildrenFiltered(tag))
}

func (e *Element) Find(tag string) []chain.Node {
	return wrapAll(e.sel.Find(tag))
}

func (e *Element) Parent() chain.Node {
	parent := e.sel.Parent()
	if parent.Length() == 0 {
		return nil
	}
	return &Element{sel: parent}
}

func wrapAll(sel *goquery.Selection) []chain.Node {
	nodes := make([]chain.Node, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, &Element{sel: s})
	})
	return nodes
}
