package dom

import (
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

func compile(selector string) (cascadia.Selector, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidSelector, selector, err)
	}
	return sel, nil
}

func selectAll(n *html.Node, selector string) ([]*Element, error) {
	sel, err := compile(selector)
	if err != nil {
		return nil, err
	}
	return wrapAll(sel.MatchAll(n)), nil
}

func selectFirst(n *html.Node, selector string) (*Element, error) {
	sel, err := compile(selector)
	if err != nil {
		return nil, err
	}
	return wrap(sel.MatchFirst(n)), nil
}

// walk visits n and its descendants in document order until visit returns
// false.
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

func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	var found *html.Node
	walk(n, func(c *html.Node) bool {
		if match(c) {
			found = c
			return false
		}
		return true
	})
	return found
}

func findAll(n *html.Node, match func(*html.Node) bool) []*Element {
	var out []*Element
	walk(n, func(c *html.Node) bool {
		if match(c) {
			out = append(out, wrap(c))
		}
		return true
	})
	return out
}

func elementsByTag(n *html.Node, tag string) []*Element {
	tag = strings.ToLower(tag)
	return findAll(n, func(c *html.Node) bool {
		return c.Type == html.ElementNode && c.Data == tag
	})
}

func elementsByClass(n *html.Node, class string) []*Element {
	return findAll(n, func(c *html.Node) bool {
		return c.Type == html.ElementNode && hasClass(c, class)
	})
}

func elementsByAttribute(n *html.Node, name string) []*Element {
	name = strings.ToLower(name)
	return findAll(n, func(c *html.Node) bool {
		return c.Type == html.ElementNode && hasAttr(c, name)
	})
}
