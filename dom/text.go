package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// textContent concatenates the text below n. Block-level boundaries and <br>
// become spaces so that adjacent paragraphs do not run together. Script and
// style bodies are not text.
func textContent(n *html.Node, own bool) string {
	var b strings.Builder
	var visit func(*html.Node, bool)
	visit = func(n *html.Node, top bool) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			return
		case html.ElementNode:
			if top {
				break
			}
			if n.Data == "br" || isBlock(n.Data) {
				b.WriteByte(' ')
			}
			if own || nonText[n.Data] {
				return
			}
		case html.CommentNode, html.DoctypeNode:
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c, false)
		}
		if !top && n.Type == html.ElementNode && isBlock(n.Data) {
			b.WriteByte(' ')
		}
	}
	visit(n, true)
	return b.String()
}

var nonText = map[string]bool{
	"script":   true,
	"style":    true,
	"template": true,
}

// normalizeSpace collapses runs of ASCII whitespace into single spaces and
// trims both ends. Non-breaking spaces are kept.
func normalizeSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pending := false
	for _, r := range s {
		if isSpace(r) {
			pending = true
			continue
		}
		if pending && b.Len() > 0 {
			b.WriteByte(' ')
		}
		pending = false
		b.WriteRune(r)
	}
	return b.String()
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}

func isBlank(s string) bool {
	for _, r := range s {
		if !isSpace(r) {
			return false
		}
	}
	return true
}

func trimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}
