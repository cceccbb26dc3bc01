package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/encoding/htmlindex"
)

const defaultCharset = "UTF-8"

// OutputSettings control how OuterHTML renders a document.
type OutputSettings struct {
	// PrettyPrint puts block-level elements on their own lines.
	PrettyPrint bool
	// IndentAmount is the number of spaces per nesting level when
	// PrettyPrint is set.
	IndentAmount int
}

// DefaultOutputSettings returns compact output with a one-space indent
// configured for when pretty printing is switched on.
func DefaultOutputSettings() OutputSettings {
	return OutputSettings{IndentAmount: 1}
}

// Document is a parsed HTML document. The zero value is not usable; create
// documents with Parse, New or Empty.
type Document struct {
	root     *html.Node
	baseURI  string
	charset  string
	settings OutputSettings
}

func newDocument(root *html.Node, baseURI string) *Document {
	return &Document{
		root:     root,
		baseURI:  baseURI,
		charset:  defaultCharset,
		settings: DefaultOutputSettings(),
	}
}

// Node returns the underlying document node.
func (d *Document) Node() *html.Node { return d.root }

// Location returns the URL the document was loaded from, used as the base for
// resolving relative links. It is empty when unknown.
func (d *Document) Location() string { return d.baseURI }

// SetBaseURI replaces the document location.
func (d *Document) SetBaseURI(uri string) { d.baseURI = uri }

// Charset returns the canonical name of the document's character set.
func (d *Document) Charset() string { return d.charset }

// SetCharset changes the document charset and writes it to a <meta charset>
// element in the head, creating one when missing. Names are matched the way
// browsers match them ("latin1" is "WINDOWS-1252").
func (d *Document) SetCharset(name string) error {
	canonical, err := canonicalCharset(name)
	if err != nil {
		return err
	}
	d.charset = canonical

	head := d.Head()
	if head == nil {
		return nil
	}
	meta, _ := head.SelectFirst("meta[charset]")
	if meta == nil {
		meta = d.CreateElement("meta")
		if err := head.PrependChild(meta); err != nil {
			return err
		}
	}
	meta.SetAttr("charset", canonical)
	return nil
}

// OutputSettings returns the settings used by OuterHTML.
func (d *Document) OutputSettings() OutputSettings { return d.settings }

// SetOutputSettings replaces the settings used by OuterHTML.
func (d *Document) SetOutputSettings(s OutputSettings) { d.settings = s }

// Clone returns a deep copy of the document, including its metadata and
// output settings. The copy shares no nodes with d.
func (d *Document) Clone() *Document {
	c := *d
	c.root = cloneNode(d.root)
	return &c
}

// DocumentElement returns the root <html> element, or nil.
func (d *Document) DocumentElement() *Element {
	for c := d.root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return wrap(c)
		}
	}
	return nil
}

// Head returns the <head> element, or nil.
func (d *Document) Head() *Element {
	return d.shellChild(atom.Head)
}

// Body returns the <body> element (or the <frameset> of a frameset
// document), or nil.
func (d *Document) Body() *Element {
	if b := d.shellChild(atom.Body); b != nil {
		return b
	}
	return d.shellChild(atom.Frameset)
}

func (d *Document) shellChild(a atom.Atom) *Element {
	root := d.DocumentElement()
	if root == nil {
		return nil
	}
	for c := root.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == a && c.Namespace == "" {
			return wrap(c)
		}
	}
	return nil
}

// Title returns the whitespace-normalized text of the first <title> element.
func (d *Document) Title() string {
	t := findFirst(d.root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == atom.Title && n.Namespace == ""
	})
	if t == nil {
		return ""
	}
	return normalizeSpace(textContent(t, false))
}

// SetTitle replaces the text of the <title> element, creating one in the head
// when missing.
func (d *Document) SetTitle(title string) {
	t := findFirst(d.root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == atom.Title && n.Namespace == ""
	})
	if t == nil {
		head := d.Head()
		if head == nil {
			return
		}
		t = newElement(atom.Title)
		head.n.AppendChild(t)
	}
	for c := t.FirstChild; c != nil; c = t.FirstChild {
		t.RemoveChild(c)
	}
	t.AppendChild(&html.Node{Type: html.TextNode, Data: title})
}

// Text returns the combined, whitespace-normalized text of the document.
func (d *Document) Text() string {
	return normalizeSpace(textContent(d.root, false))
}

// OuterHTML renders the whole document using its OutputSettings.
func (d *Document) OuterHTML() string {
	return d.Markup(d.settings.PrettyPrint, d.settings.IndentAmount)
}

// HTML renders the document's children using its OutputSettings. For a
// document this is the same markup as OuterHTML.
func (d *Document) HTML() string {
	return render(d.root, d.settings.PrettyPrint, d.settings.IndentAmount, true)
}

// Markup renders the whole document. When pretty is set, block-level
// elements start on their own line, indented by indent spaces per level;
// otherwise the output is compact. The two forms differ only in whitespace.
func (d *Document) Markup(pretty bool, indent int) string {
	return render(d.root, pretty, indent, true)
}

// CreateElement returns a new, detached element. Append it somewhere to make
// it part of the document.
func (d *Document) CreateElement(tag string) *Element {
	tag = strings.ToLower(strings.TrimSpace(tag))
	return wrap(&html.Node{Type: html.ElementNode, DataAtom: atom.Lookup([]byte(tag)), Data: tag})
}

// Normalize makes sure the document has an html element holding exactly one
// head followed by one body. Content found outside them (stray text or
// elements, duplicate heads and bodies) is moved into the first head or body.
func (d *Document) Normalize() *Document {
	root := d.DocumentElement()
	if root == nil || root.n.DataAtom != atom.Html {
		htmlEl := newElement(atom.Html)
		d.root.AppendChild(htmlEl)
		root = wrap(htmlEl)
	}
	// Anything else at document level except doctypes and comments belongs
	// in the body.
	var stray []*html.Node
	for c := d.root.FirstChild; c != nil; c = c.NextSibling {
		if c == root.n || c.Type == html.DoctypeNode || c.Type == html.CommentNode {
			continue
		}
		stray = append(stray, c)
	}

	var head, body *html.Node
	var misplaced []*html.Node
	for c := root.n.FirstChild; c != nil; {
		next := c.NextSibling
		switch {
		case c.Type == html.ElementNode && c.DataAtom == atom.Head && head == nil:
			head = c
		case c.Type == html.ElementNode && c.DataAtom == atom.Head:
			moveChildren(c, head)
			root.n.RemoveChild(c)
		case c.Type == html.ElementNode && (c.DataAtom == atom.Body || c.DataAtom == atom.Frameset) && body == nil:
			body = c
		case c.Type == html.ElementNode && c.DataAtom == atom.Body:
			misplaced = append(misplaced, c)
		case c.Type == html.TextNode && isBlank(c.Data):
		case c.Type == html.CommentNode:
		default:
			misplaced = append(misplaced, c)
		}
		c = next
	}
	if head == nil {
		head = newElement(atom.Head)
		root.n.InsertBefore(head, root.n.FirstChild)
	} else if root.n.FirstChild != head {
		root.n.RemoveChild(head)
		root.n.InsertBefore(head, root.n.FirstChild)
	}
	if body == nil {
		body = newElement(atom.Body)
		root.n.AppendChild(body)
	}
	for _, n := range append(misplaced, stray...) {
		n.Parent.RemoveChild(n)
		if n.Type == html.ElementNode && n.DataAtom == atom.Body {
			moveChildren(n, body)
			continue
		}
		body.AppendChild(n)
	}
	return d
}

// Select returns the elements matching a CSS selector, in document order.
func (d *Document) Select(selector string) ([]*Element, error) {
	return selectAll(d.root, selector)
}

// SelectFirst returns the first element matching a CSS selector, or nil.
func (d *Document) SelectFirst(selector string) (*Element, error) {
	return selectFirst(d.root, selector)
}

// ElementByID returns the first element whose id attribute equals id.
func (d *Document) ElementByID(id string) *Element {
	if id == "" {
		return nil
	}
	return wrap(findFirst(d.root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && attr(n, "id") == id
	}))
}

// ElementsByTag returns all elements with the given tag name.
func (d *Document) ElementsByTag(tag string) []*Element {
	return elementsByTag(d.root, tag)
}

// ElementsByClass returns all elements carrying the given class name.
func (d *Document) ElementsByClass(class string) []*Element {
	return elementsByClass(d.root, class)
}

// ElementsByAttribute returns all elements that have the named attribute.
func (d *Document) ElementsByAttribute(name string) []*Element {
	return elementsByAttribute(d.root, name)
}

// Structure returns the structured form of the document element.
func (d *Document) Structure() *Structured {
	if root := d.DocumentElement(); root != nil {
		return structureOf(root.n)
	}
	s := structureOf(d.root)
	s.Tag = "#root"
	return s
}

// JSON encodes the structured form of the document as JSON.
func (d *Document) JSON(pretty bool) (string, error) {
	return d.Structure().JSON(pretty)
}

// YAML encodes the structured form of the document as YAML.
func (d *Document) YAML() (string, error) {
	return d.Structure().YAML()
}

func canonicalCharset(name string) (string, error) {
	enc, err := htmlindex.Get(strings.TrimSpace(name))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedCharset, name)
	}
	canonical, err := htmlindex.Name(enc)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedCharset, name)
	}
	return strings.ToUpper(canonical), nil
}

func cloneNode(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		c.Attr = make([]html.Attribute, len(n.Attr))
		copy(c.Attr, n.Attr)
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		c.AppendChild(cloneNode(ch))
	}
	return c
}

func moveChildren(from, to *html.Node) {
	for c := from.FirstChild; c != nil; c = from.FirstChild {
		from.RemoveChild(c)
		to.AppendChild(c)
	}
}
