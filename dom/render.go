package dom

import (
	"strings"

	"golang.org/x/net/html"
)

var (
	textEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"\u00a0", "&nbsp;",
	)
	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		`"`, "&quot;",
		"<", "&lt;",
		">", "&gt;",
		"\u00a0", "&nbsp;",
	)
)

// Void elements have no end tag and never hold children.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "keygen": true, "link": true,
	"meta": true, "param": true, "source": true, "track": true, "wbr": true,
}

// Raw text elements hold unescaped character data.
var rawTextElements = map[string]bool{
	"iframe": true, "noembed": true, "noframes": true, "noscript": true,
	"plaintext": true, "script": true, "style": true, "xmp": true,
}

// Whitespace is significant inside preformatted elements, so pretty printing
// leaves their content alone.
var preformatted = map[string]bool{
	"pre": true, "listing": true, "textarea": true,
}

var blockElements = map[string]bool{
	"html": true, "head": true, "body": true, "frameset": true,
	"title": true, "meta": true, "link": true, "base": true,
	"script": true, "style": true, "noscript": true, "template": true,
	"address": true, "article": true, "aside": true, "blockquote": true,
	"details": true, "dialog": true, "dd": true, "div": true, "dl": true,
	"dt": true, "fieldset": true, "figcaption": true, "figure": true,
	"footer": true, "form": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "header": true, "hgroup": true,
	"hr": true, "li": true, "main": true, "menu": true, "nav": true,
	"ol": true, "p": true, "pre": true, "section": true, "summary": true,
	"table": true, "caption": true, "colgroup": true, "col": true,
	"thead": true, "tbody": true, "tfoot": true, "tr": true, "td": true,
	"th": true, "ul": true, "iframe": true, "video": true, "audio": true,
	"canvas": true, "option": true, "optgroup": true,
}

func isBlock(tag string) bool { return blockElements[tag] }

type renderer struct {
	b      strings.Builder
	pretty bool
	indent int
}

// render serializes n, or only its children when inner is set.
func render(n *html.Node, pretty bool, indent int, inner bool) string {
	r := &renderer{pretty: pretty, indent: max(indent, 0)}
	if inner {
		r.children(n, 0)
	} else {
		r.node(n, 0, pretty)
	}
	return r.b.String()
}

func (r *renderer) children(n *html.Node, depth int) {
	block := r.pretty && formatsAsBlock(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.node(c, depth, block)
	}
}

// node writes n. block means n sits on its own line at depth.
func (r *renderer) node(n *html.Node, depth int, block bool) {
	switch n.Type {
	case html.DocumentNode:
		r.children(n, depth)
	case html.DoctypeNode:
		r.newline(depth, block)
		r.doctype(n)
	case html.CommentNode:
		r.newline(depth, block)
		r.b.WriteString("<!--")
		r.b.WriteString(n.Data)
		r.b.WriteString("-->")
	case html.TextNode:
		if !block {
			textEscaper.WriteString(&r.b, n.Data)
			return
		}
		text := trimSpace(n.Data)
		if text == "" {
			return
		}
		r.newline(depth, block)
		textEscaper.WriteString(&r.b, text)
	case html.ElementNode:
		r.element(n, depth, block)
	}
}

func (r *renderer) element(n *html.Node, depth int, block bool) {
	r.newline(depth, block)
	r.openTag(n)
	tag := n.Data
	if voidElements[tag] && n.Namespace == "" {
		return
	}

	switch {
	case rawTextElements[tag] && n.Namespace == "":
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				r.b.WriteString(c.Data)
			} else {
				r.node(c, depth+1, false)
			}
		}
	case preformatted[tag] && n.Namespace == "":
		// The parser drops a newline directly after the start tag, so one
		// has to be written back to keep a leading newline in the content.
		if c := n.FirstChild; c != nil && c.Type == html.TextNode && strings.HasPrefix(c.Data, "\n") {
			r.b.WriteByte('\n')
		}
		pretty := r.pretty
		r.pretty = false
		r.children(n, depth+1)
		r.pretty = pretty
	default:
		childBlock := r.pretty && formatsAsBlock(n)
		before := r.b.Len()
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			r.node(c, depth+1, childBlock)
		}
		if childBlock && r.b.Len() > before {
			r.newline(depth, true)
		}
	}

	r.b.WriteString("</")
	r.b.WriteString(tag)
	r.b.WriteByte('>')
}

func (r *renderer) openTag(n *html.Node) {
	r.b.WriteByte('<')
	r.b.WriteString(n.Data)
	for _, a := range n.Attr {
		r.b.WriteByte(' ')
		r.b.WriteString(qualifiedName(a))
		r.b.WriteString(`="`)
		attrEscaper.WriteString(&r.b, a.Val)
		r.b.WriteByte('"')
	}
	r.b.WriteByte('>')
}

func (r *renderer) doctype(n *html.Node) {
	r.b.WriteString("<!DOCTYPE ")
	r.b.WriteString(n.Data)
	var public, system string
	var hasPublic, hasSystem bool
	for _, a := range n.Attr {
		switch a.Key {
		case "public":
			public, hasPublic = a.Val, true
		case "system":
			system, hasSystem = a.Val, true
		}
	}
	switch {
	case hasPublic:
		r.b.WriteString(` PUBLIC "`)
		r.b.WriteString(public)
		r.b.WriteByte('"')
		if hasSystem {
			r.b.WriteString(` "`)
			r.b.WriteString(system)
			r.b.WriteByte('"')
		}
	case hasSystem:
		r.b.WriteString(` SYSTEM "`)
		r.b.WriteString(system)
		r.b.WriteByte('"')
	}
	r.b.WriteByte('>')
}

func (r *renderer) newline(depth int, block bool) {
	if !block {
		return
	}
	if r.b.Len() > 0 {
		r.b.WriteByte('\n')
	}
	r.b.WriteString(strings.Repeat(" ", depth*r.indent))
}

// formatsAsBlock reports whether the children of n are laid out one per line
// when pretty printing.
func formatsAsBlock(n *html.Node) bool {
	if n.Type == html.DocumentNode {
		return true
	}
	if n.Type != html.ElementNode || rawTextElements[n.Data] || preformatted[n.Data] {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && isBlock(c.Data) {
			return true
		}
	}
	return false
}
