package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// voidTags are elements that never have children or a closing tag.
var voidTags = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\u00a0", "&nbsp;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "\"", "&quot;", "\u00a0", "&nbsp;")
)

// ParseFragment parses serialized markup as the content of a div and
// returns the resulting top level nodes. Comments and doctypes are dropped.
func ParseFragment(markup string) ([]*Node, error) {
	context := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	parsed, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}
	nodes := make([]*Node, 0, len(parsed))
	for _, p := range parsed {
		if n := convert(p); n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes, nil
}

// Parse parses markup into a detached container element with the given tag.
func Parse(tag, markup string) (*Node, error) {
	nodes, err := ParseFragment(markup)
	if err != nil {
		return nil, err
	}
	root := NewElement(tag)
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root, nil
}

// SetInnerMarkup replaces the children of n with the parsed markup.
// On a parse error n is left unchanged.
func SetInnerMarkup(n *Node, markup string) error {
	parsed, err := Parse(n.Tag(), markup)
	if err != nil {
		return err
	}
	ReplaceChildren(n, parsed)
	return nil
}

func convert(h *html.Node) *Node {
	switch h.Type {
	case html.TextNode:
		return NewText(h.Data)
	case html.ElementNode:
		n := NewElement(h.Data)
		for _, a := range h.Attr {
			if a.Namespace != "" {
				continue
			}
			n.attrs = append(n.attrs, Attr{Key: a.Key, Val: a.Val})
		}
		for c := h.FirstChild; c != nil; c = c.NextSibling {
			if child := convert(c); child != nil {
				n.AppendChild(child)
			}
		}
		return n
	default:
		return nil
	}
}

// Render returns the serialized markup of the children of n, the form a
// browser reports as innerHTML.
func Render(n *Node) string {
	var b strings.Builder
	for _, c := range n.children {
		renderNode(&b, c)
	}
	return b.String()
}

// RenderOuter returns the serialized markup of n including n itself.
func RenderOuter(n *Node) string {
	var b strings.Builder
	renderNode(&b, n)
	return b.String()
}

func renderNode(b *strings.Builder, n *Node) {
	if n.kind == TextNode {
		b.WriteString(textEscaper.Replace(n.text))
		return
	}
	b.WriteByte('<')
	b.WriteString(n.tag)
	for _, a := range n.attrs {
		b.WriteByte(' ')
		b.WriteString(a.Key)
		b.WriteString(`="`)
		b.WriteString(attrEscaper.Replace(a.Val))
		b.WriteByte('"')
	}
	b.WriteByte('>')
	if voidTags[n.tag] {
		return
	}
	for _, c := range n.children {
		renderNode(b, c)
	}
	b.WriteString("</")
	b.WriteString(n.tag)
	b.WriteByte('>')
}

// TextContent concatenates the character data of every text node below n.
func TextContent(n *Node) string {
	if n.kind == TextNode {
		return n.text
	}
	var b strings.Builder
	Walk(n, func(c *Node) {
		if c.kind == TextNode {
			b.WriteString(c.text)
		}
	})
	return b.String()
}

// InnerText returns the plain text rendering of the children of n: line
// breaks and block boundaries become newlines.
func InnerText(l Layout, n *Node) string {
	var b strings.Builder
	var walk func(*Node)
	newline := func() {
		s := b.String()
		if s != "" && !strings.HasSuffix(s, "\n") {
			b.WriteByte('\n')
		}
	}
	walk = func(c *Node) {
		switch {
		case c.IsText():
			b.WriteString(c.text)
		case c.Is(TagBR):
			b.WriteByte('\n')
		case IsBlock(l, c):
			newline()
			for _, cc := range c.children {
				walk(cc)
			}
			newline()
		default:
			for _, cc := range c.children {
				walk(cc)
			}
		}
	}
	for _, c := range n.children {
		walk(c)
	}
	return strings.TrimSuffix(b.String(), "\n")
}
