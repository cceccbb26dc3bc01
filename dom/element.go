package dom

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// Element is a handle to an element node.
type Element struct {
	n *html.Node
}

// Wrap returns a handle for an existing element node, or nil when n is not an
// element.
func Wrap(n *html.Node) *Element {
	if n == nil || n.Type != html.ElementNode {
		return nil
	}
	return &Element{n: n}
}

func wrap(n *html.Node) *Element {
	if n == nil {
		return nil
	}
	return &Element{n: n}
}

func wrapAll(nodes []*html.Node) []*Element {
	out := make([]*Element, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, wrap(n))
	}
	return out
}

// Node returns the underlying node.
func (e *Element) Node() *html.Node { return e.n }

// Tag returns the lower-cased tag name.
func (e *Element) Tag() string { return e.n.Data }

// Attr returns the value of the named attribute, or "" when absent.
func (e *Element) Attr(name string) string {
	return attr(e.n, strings.ToLower(name))
}

// HasAttr reports whether the named attribute is present.
func (e *Element) HasAttr(name string) bool {
	return hasAttr(e.n, strings.ToLower(name))
}

// SetAttr sets (or adds) the attribute name=value, keeping the position of an
// existing attribute.
func (e *Element) SetAttr(name, value string) *Element {
	name = strings.ToLower(name)
	for i, a := range e.n.Attr {
		if qualifiedName(a) == name {
			e.n.Attr[i].Val = value
			return e
		}
	}
	e.n.Attr = append(e.n.Attr, html.Attribute{Key: name, Val: value})
	return e
}

// RemoveAttr removes the named attribute if present.
func (e *Element) RemoveAttr(name string) *Element {
	name = strings.ToLower(name)
	e.n.Attr = slices.DeleteFunc(e.n.Attr, func(a html.Attribute) bool {
		return qualifiedName(a) == name
	})
	return e
}

// Attrs returns a copy of the element's attributes in document order.
func (e *Element) Attrs() []html.Attribute {
	return slices.Clone(e.n.Attr)
}

// ID returns the id attribute.
func (e *Element) ID() string { return attr(e.n, "id") }

// ClassNames returns the space-separated entries of the class attribute.
func (e *Element) ClassNames() []string {
	return strings.Fields(attr(e.n, "class"))
}

// HasClass reports whether class is one of the element's class names.
func (e *Element) HasClass(class string) bool {
	return hasClass(e.n, class)
}

// Parent returns the parent element, or nil at the top of the tree.
func (e *Element) Parent() *Element {
	return Wrap(e.n.Parent)
}

// Children returns the element children, skipping text and comments.
func (e *Element) Children() []*Element {
	var out []*Element
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, wrap(c))
		}
	}
	return out
}

// AppendChild moves child to the end of e's children, detaching it from its
// current parent first.
func (e *Element) AppendChild(child *Element) error {
	if err := e.adopt(child); err != nil {
		return err
	}
	e.n.AppendChild(child.n)
	return nil
}

// PrependChild moves child to the start of e's children, detaching it from
// its current parent first.
func (e *Element) PrependChild(child *Element) error {
	if err := e.adopt(child); err != nil {
		return err
	}
	e.n.InsertBefore(child.n, e.n.FirstChild)
	return nil
}

// AppendText adds a text node at the end of e's children.
func (e *Element) AppendText(text string) *Element {
	e.n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return e
}

func (e *Element) adopt(child *Element) error {
	for p := e.n; p != nil; p = p.Parent {
		if p == child.n {
			return fmt.Errorf("%w: <%s> into <%s>", ErrHierarchy, child.n.Data, e.n.Data)
		}
	}
	if child.n.Parent != nil {
		child.n.Parent.RemoveChild(child.n)
	}
	return nil
}

// Remove detaches the element, and its subtree, from its parent.
func (e *Element) Remove() {
	if e.n.Parent != nil {
		e.n.Parent.RemoveChild(e.n)
	}
}

// Text returns the combined, whitespace-normalized text of the element and
// its descendants.
func (e *Element) Text() string {
	return normalizeSpace(textContent(e.n, false))
}

// OwnText returns the normalized text of the element's direct text children.
func (e *Element) OwnText() string {
	return normalizeSpace(textContent(e.n, true))
}

// HTML returns the compact markup of the element's children.
func (e *Element) HTML() string {
	return render(e.n, false, 0, true)
}

// OuterHTML returns the compact markup of the element itself.
func (e *Element) OuterHTML() string {
	return render(e.n, false, 0, false)
}

// Markup renders the element like Document.Markup.
func (e *Element) Markup(pretty bool, indent int) string {
	return render(e.n, pretty, indent, false)
}

// Select returns the elements matching a CSS selector within e, e included.
func (e *Element) Select(selector string) ([]*Element, error) {
	return selectAll(e.n, selector)
}

// SelectFirst returns the first element matching a CSS selector within e.
func (e *Element) SelectFirst(selector string) (*Element, error) {
	return selectFirst(e.n, selector)
}

// ElementsByTag returns e and its descendants with the given tag name.
func (e *Element) ElementsByTag(tag string) []*Element {
	return elementsByTag(e.n, tag)
}

// AbsURL resolves the named attribute against baseURI. It returns "" when the
// attribute is missing or cannot be made absolute.
func (e *Element) AbsURL(name, baseURI string) string {
	if !e.HasAttr(name) {
		return ""
	}
	abs, ok := ResolveURL(baseURI, e.Attr(name))
	if !ok {
		return ""
	}
	return abs
}

// Clone returns a detached deep copy of the element.
func (e *Element) Clone() *Element {
	return wrap(cloneNode(e.n))
}

// Structure returns the structured form of the element.
func (e *Element) Structure() *Structured {
	return structureOf(e.n)
}

// --- helpers ---------------------------------------------------------

func qualifiedName(a html.Attribute) string {
	if a.Namespace == "" {
		return a.Key
	}
	return a.Namespace + ":" + a.Key
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if qualifiedName(a) == name {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, name string) bool {
	for _, a := range n.Attr {
		if qualifiedName(a) == name {
			return true
		}
	}
	return false
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}
