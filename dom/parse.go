package dom

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"net/url"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
)

// sniffLen is the number of bytes inspected for a charset declaration.
const sniffLen = 1024

// emptyDocument is the canonical empty document. It is never handed out
// directly; Empty returns a copy.
var emptyDocument = New("")

// New returns a document holding only the html, head and body shell.
func New(baseURI string) *Document {
	root := &html.Node{Type: html.DocumentNode}
	htmlEl := newElement(atom.Html)
	htmlEl.AppendChild(newElement(atom.Head))
	htmlEl.AppendChild(newElement(atom.Body))
	root.AppendChild(htmlEl)
	return newDocument(root, baseURI)
}

// Empty returns a fresh copy of the canonical empty document: no base URI
// and an empty html/head/body shell.
func Empty() *Document {
	return emptyDocument.Clone()
}

// Parse parses s as a full HTML document. It never fails: malformed markup is
// corrected by the parser, and an empty string yields Empty().
func Parse(s string) *Document {
	return ParseWithBaseURI(s, "")
}

// ParseWithBaseURI parses s like Parse and records baseURI as the document
// location. A <base href> in the document overrides the location, resolved
// against baseURI.
func ParseWithBaseURI(s, baseURI string) *Document {
	if s == "" {
		d := Empty()
		d.baseURI = baseURI
		return d
	}
	root, err := html.Parse(strings.NewReader(s))
	if err != nil {
		// The parser only reports reader errors, and a strings.Reader has none.
		d := Empty()
		d.baseURI = baseURI
		return d
	}
	dedupeAttrs(root)
	d := newDocument(root, baseURI)
	d.applyBaseElement()
	return d
}

// ParseReader parses a document from r. The character encoding is detected
// from a byte order mark, the contentType header value and any <meta>
// declaration, in that order, and recorded on the document. Read errors are
// returned as is.
func ParseReader(r io.Reader, contentType string) (*Document, error) {
	br := bufio.NewReaderSize(r, sniffLen)
	peek, err := br.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	enc, name, certain := charset.DetermineEncoding(peek, contentType)
	if !certain && name == "windows-1252" && undeclared(peek) {
		// Plain ASCII with no declaration: the rest of the input is far more
		// likely to be UTF-8 than the legacy default.
		enc, name = encoding.Nop, "utf-8"
	}

	root, err := html.Parse(enc.NewDecoder().Reader(br))
	if err != nil {
		return nil, err
	}
	dedupeAttrs(root)
	d := newDocument(root, "")
	if canonical, err := canonicalCharset(name); err == nil {
		d.charset = canonical
	}
	d.applyBaseElement()
	return d, nil
}

// ParseBodyFragment parses s in the context of a <body> element and places the
// result in the body of a new shell document. It is the entry point for
// untrusted fragments: head-only elements stay where they were written
// instead of moving into a synthesized head.
func ParseBodyFragment(s, baseURI string) *Document {
	d := New(baseURI)
	if s == "" {
		return d
	}
	body := d.Body().Node()
	nodes, err := html.ParseFragment(strings.NewReader(s), newElement(atom.Body))
	if err != nil {
		return d
	}
	for _, n := range nodes {
		dedupeAttrs(n)
		body.AppendChild(n)
	}
	return d
}

// ResolveURL resolves ref against base. Absolute references are returned
// normalized; relative ones need an absolute base. The second result is false
// when ref does not parse or cannot be made absolute.
func ResolveURL(base, ref string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return "", false
	}
	if u.IsAbs() {
		return u.String(), true
	}
	if base == "" {
		return "", false
	}
	b, err := url.Parse(base)
	if err != nil || !b.IsAbs() {
		return "", false
	}
	return b.ResolveReference(u).String(), true
}

func (d *Document) applyBaseElement() {
	head := d.Head()
	if head == nil {
		return
	}
	base, err := head.SelectFirst("base[href]")
	if err != nil || base == nil {
		return
	}
	href := base.Attr("href")
	if abs, ok := ResolveURL(d.baseURI, href); ok {
		d.baseURI = abs
	}
}

// undeclared reports whether b is pure ASCII and names no charset.
func undeclared(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return false
		}
	}
	return !bytes.Contains(bytes.ToLower(b), []byte("charset"))
}

// dedupeAttrs keeps the first of each repeated attribute name in the tree
// rooted at n, the way browsers resolve them.
func dedupeAttrs(n *html.Node) {
	if n.Type == html.ElementNode && len(n.Attr) > 1 {
		n.Attr = uniqueAttrs(n.Attr)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		dedupeAttrs(c)
	}
}

func uniqueAttrs(attrs []html.Attribute) []html.Attribute {
	out := make([]html.Attribute, 0, len(attrs))
	for _, a := range attrs {
		if !slices.ContainsFunc(out, func(b html.Attribute) bool {
			return b.Namespace == a.Namespace && b.Key == a.Key
		}) {
			out = append(out, a)
		}
	}
	return out
}

func newElement(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}
