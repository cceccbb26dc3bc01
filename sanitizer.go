package htmlsafe

import (
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/njchilds90/htmlsafe/dom"
)

// urlRegexp matches http/https URLs inside plain text.
var urlRegexp = regexp.MustCompile(`https?://[^\s<>"]+[^\s<>".,;:!?)\]]`)

// maxPasses bounds how often Sanitize re-cleans its own output. Stripping an
// element can leave children where the parser will not put them back, so the
// first rendering may parse into a different tree.
const maxPasses = 4

// Sanitize parses input as a body fragment, keeps only what p allows and
// returns the compact markup of the result. Relative URLs are resolved
// against baseURI unless p preserves them. Empty input yields "". If p is
// nil, Relaxed is used.
//
// The result is re-parsed and cleaned again until it no longer changes, so
// sanitizing the output a second time returns it unchanged.
func Sanitize(input string, p *Policy, baseURI string) string {
	if input == "" {
		return ""
	}
	if p == nil {
		p = Relaxed()
	}
	out := sanitizeOnce(input, p, baseURI)
	for range maxPasses - 1 {
		next := sanitizeOnce(out, p, baseURI)
		if next == out {
			break
		}
		out = next
	}
	return out
}

func sanitizeOnce(input string, p *Policy, baseURI string) string {
	cleaned, _ := clean(dom.ParseBodyFragment(input, baseURI), p)
	return cleaned.Body().HTML()
}

// SanitizeReader reads all of r and sanitizes it like Sanitize.
func SanitizeReader(r io.Reader, p *Policy, baseURI string) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return Sanitize(string(b), p, baseURI), nil
}

// CleanDocument copies the safe content of doc's body into a new document.
// The head is not copied. Relative URLs are resolved against the document
// location. doc is not modified.
func CleanDocument(doc *dom.Document, p *Policy) *dom.Document {
	if p == nil {
		p = Relaxed()
	}
	cleaned, _ := clean(doc, p)
	return cleaned
}

// IsValid reports whether input passes p untouched: no element and no
// attribute would be removed. Relative URLs only pass when p preserves them.
func IsValid(input string, p *Policy) bool {
	if input == "" {
		return true
	}
	if p == nil {
		p = Relaxed()
	}
	_, removed := clean(dom.ParseBodyFragment(input, ""), p)
	return removed == 0
}

// StripTags returns the text of input with all markup removed and whitespace
// normalized. Entity references are decoded.
func StripTags(input string) string {
	return dom.ParseBodyFragment(input, "").Body().Text()
}

func clean(doc *dom.Document, p *Policy) (*dom.Document, int) {
	dst := dom.New(doc.Location())
	body := doc.Body()
	if body == nil {
		return dst, 0
	}
	c := &cleaner{policy: p, baseURI: doc.Location()}
	c.copyChildren(body.Node(), dst.Body().Node(), 1, false)
	return dst, c.removed
}

// cleaner copies safe nodes from a source tree into a fresh destination tree.
// The source is only read.
type cleaner struct {
	policy  *Policy
	baseURI string
	removed int
}

func (c *cleaner) copyChildren(src, dst *html.Node, depth int, inLink bool) {
	for n := src.FirstChild; n != nil; n = n.NextSibling {
		switch n.Type {
		case html.TextNode:
			if c.policy.linkify && !inLink {
				c.linkify(dst, n.Data)
			} else {
				dst.AppendChild(&html.Node{Type: html.TextNode, Data: n.Data})
			}

		case html.ElementNode:
			c.copyElement(n, dst, depth, inLink)

		case html.CommentNode:
			if c.policy.keepComments {
				dst.AppendChild(&html.Node{Type: html.CommentNode, Data: n.Data})
			}

		default:
			// doctypes cannot appear in a body
		}
	}
}

func (c *cleaner) copyElement(n, dst *html.Node, depth int, inLink bool) {
	tag := n.Data
	if n.Namespace != "" || c.policy.opaque[tag] {
		c.removed++
		return
	}

	tooDeep := c.policy.maxDepth > 0 && depth > c.policy.maxDepth
	if !c.policy.tags[tag] || tooDeep {
		// Strip the element itself, keep walking its content in its place.
		c.removed++
		c.copyChildren(n, dst, depth, inLink)
		return
	}

	el := &html.Node{
		Type:     html.ElementNode,
		DataAtom: n.DataAtom,
		Data:     tag,
		Attr:     c.filterAttrs(tag, n.Attr),
	}
	for _, t := range c.policy.transformers {
		if el = t(el); el == nil {
			c.removed++
			return
		}
	}
	dst.AppendChild(el)
	c.copyChildren(n, el, depth+1, inLink || n.DataAtom == atom.A)
}

func (c *cleaner) filterAttrs(tag string, attrs []html.Attribute) []html.Attribute {
	var out []html.Attribute
	seen := make(map[string]bool, len(attrs))
	for _, a := range attrs {
		key := a.Key
		if a.Namespace != "" || seen[key] {
			c.removed++
			continue
		}
		seen[key] = true
		if !c.policy.AllowsAttr(tag, key) {
			c.removed++
			continue
		}
		if v, ok := c.policy.enforcedValue(tag, key); ok {
			if v != a.Val {
				c.removed++
			}
			continue
		}
		if isURLAttr(key) || c.policy.hasProtocols(tag, key) {
			v, ok := c.checkURL(tag, key, a.Val)
			if !ok {
				c.removed++
				continue
			}
			a.Val = v
		}
		out = append(out, html.Attribute{Key: key, Val: a.Val})
	}
	return append(out, c.policy.enforced[tag]...)
}

// checkURL returns the value to keep for a URL-bearing attribute, resolving
// relative references when the policy asks for it.
func (c *cleaner) checkURL(tag, attr, raw string) (string, bool) {
	value := normalizeURL(raw)
	u, ok := parseURL(value)
	if !ok {
		return "", false
	}
	if u.Scheme == "" {
		if c.policy.preserveRelativeLinks {
			return value, true
		}
		abs, ok := dom.ResolveURL(c.baseURI, value)
		if !ok {
			return "", false
		}
		if u, ok = parseURL(abs); !ok {
			return "", false
		}
		value = abs
	}
	return value, c.policy.allowsScheme(tag, attr, strings.ToLower(u.Scheme))
}

// linkify writes text to dst, wrapping bare URLs in links that pass the
// policy's own <a href> rules.
func (c *cleaner) linkify(dst *html.Node, text string) {
	if !c.policy.tags["a"] {
		dst.AppendChild(&html.Node{Type: html.TextNode, Data: text})
		return
	}
	last := 0
	for _, m := range urlRegexp.FindAllStringIndex(text, -1) {
		rawURL := text[m[0]:m[1]]
		probe := cleaner{policy: c.policy, baseURI: c.baseURI}
		attrs := probe.filterAttrs("a", []html.Attribute{{Key: "href", Val: rawURL}})
		if probe.removed > 0 {
			continue
		}
		if m[0] > last {
			dst.AppendChild(&html.Node{Type: html.TextNode, Data: text[last:m[0]]})
		}
		a := &html.Node{Type: html.ElementNode, DataAtom: atom.A, Data: "a", Attr: attrs}
		a.AppendChild(&html.Node{Type: html.TextNode, Data: rawURL})
		dst.AppendChild(a)
		last = m[1]
	}
	if last < len(text) {
		dst.AppendChild(&html.Node{Type: html.TextNode, Data: text[last:]})
	}
}
