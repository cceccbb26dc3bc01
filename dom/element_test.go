package dom_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/njchilds90/htmlsafe/dom"
)

func TestElement_Attributes(t *testing.T) {
	doc := dom.Parse(`<a href="https://example.com" title="t">link</a>`)
	a := doc.ElementsByTag("a")[0]

	assert.Equal(t, "https://example.com", a.Attr("HREF"))
	assert.True(t, a.HasAttr("title"))
	assert.Equal(t, "", a.Attr("missing"))

	a.SetAttr("href", "https://other.com").SetAttr("target", "_blank")
	assert.Equal(t, []html.Attribute{
		{Key: "href", Val: "https://other.com"},
		{Key: "title", Val: "t"},
		{Key: "target", Val: "_blank"},
	}, a.Attrs())

	a.RemoveAttr("title")
	assert.False(t, a.HasAttr("title"))
	assert.Equal(t, `<a href="https://other.com" target="_blank">link</a>`, a.OuterHTML())
}

func TestElement_Attrs_ReturnsCopy(t *testing.T) {
	doc := dom.Parse(`<p id="x">y</p>`)
	p := doc.ElementByID("x")

	attrs := p.Attrs()
	attrs[0].Val = "changed"

	assert.Equal(t, "x", p.ID())
}

func TestElement_Classes(t *testing.T) {
	doc := dom.Parse(`<p class=" lead  intro ">x</p>`)
	p := doc.ElementsByTag("p")[0]

	assert.Equal(t, []string{"lead", "intro"}, p.ClassNames())
	assert.True(t, p.HasClass("intro"))
	assert.False(t, p.HasClass("outro"))
}

func TestElement_Tree(t *testing.T) {
	doc := dom.Parse(`<div id="a"><p>one</p>text<p>two</p></div><div id="b"></div>`)
	a := doc.ElementByID("a")
	b := doc.ElementByID("b")

	children := a.Children()
	require.Len(t, children, 2)
	assert.Equal(t, "body", a.Parent().Tag())
	assert.Same(t, a.Node(), children[0].Parent().Node())

	require.NoError(t, b.AppendChild(children[0]))
	assert.Equal(t, `text<p>two</p>`, a.HTML())
	assert.Equal(t, `<p>one</p>`, b.HTML())

	require.NoError(t, b.PrependChild(children[1]))
	assert.Equal(t, `<p>two</p><p>one</p>`, b.HTML())

	children[0].Remove()
	assert.Equal(t, `<p>two</p>`, b.HTML())
	assert.Nil(t, children[0].Parent())
}

func TestElement_AppendAncestorFails(t *testing.T) {
	doc := dom.Parse(`<div id="outer"><div id="inner"></div></div>`)
	outer := doc.ElementByID("outer")
	inner := doc.ElementByID("inner")

	err := inner.AppendChild(outer)
	require.Error(t, err)
	assert.True(t, errors.Is(err, dom.ErrHierarchy))
	assert.True(t, errors.Is(inner.AppendChild(inner), dom.ErrHierarchy))
	assert.Same(t, outer.Node(), inner.Parent().Node())
}

func TestElement_Text(t *testing.T) {
	doc := dom.Parse(`<div id="d">Hello <b>big</b>
		world<br>again<style>p{}</style></div>`)
	d := doc.ElementByID("d")

	assert.Equal(t, "Hello big world again", d.Text())
	assert.Equal(t, "Hello world again", d.OwnText())
}

func TestElement_Select(t *testing.T) {
	doc := dom.Parse(`<div class="x"><span class="x">a</span></div><span class="x">b</span>`)
	div := doc.ElementsByTag("div")[0]

	matches, err := div.Select(".x")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "div", matches[0].Tag())
	assert.Equal(t, "span", matches[1].Tag())

	span, err := div.SelectFirst("span")
	require.NoError(t, err)
	assert.Equal(t, "a", span.Text())
}

func TestElement_AbsURL(t *testing.T) {
	doc := dom.Parse(`<a href="../x?q=1">a</a><a href="mailto:me@example.com">b</a><a>c</a>`)
	links := doc.ElementsByTag("a")

	assert.Equal(t, "https://example.com/x?q=1", links[0].AbsURL("href", "https://example.com/docs/page"))
	assert.Equal(t, "", links[0].AbsURL("href", ""))
	assert.Equal(t, "mailto:me@example.com", links[1].AbsURL("href", ""))
	assert.Equal(t, "", links[2].AbsURL("href", "https://example.com/"))
}

func TestElement_Clone(t *testing.T) {
	doc := dom.Parse(`<ul id="l"><li>a</li></ul>`)
	l := doc.ElementByID("l")

	c := l.Clone()
	c.SetAttr("id", "copy")
	c.AppendText("extra")

	assert.Nil(t, c.Parent())
	assert.Equal(t, `<ul id="l"><li>a</li></ul>`, l.OuterHTML())
	assert.Equal(t, `<ul id="copy"><li>a</li>extra</ul>`, c.OuterHTML())
}

func TestWrap(t *testing.T) {
	assert.Nil(t, dom.Wrap(nil))
	assert.Nil(t, dom.Wrap(&html.Node{Type: html.TextNode, Data: "x"}))
	assert.Equal(t, "p", dom.Wrap(&html.Node{Type: html.ElementNode, Data: "p"}).Tag())
}

func TestResolveURL(t *testing.T) {
	tests := []struct {
		name string
		base string
		ref  string
		want string
		ok   bool
	}{
		{name: "absolute ref ignores base", base: "", ref: "https://a.com/x", want: "https://a.com/x", ok: true},
		{name: "root relative", base: "https://e.com/a/b", ref: "/x", want: "https://e.com/x", ok: true},
		{name: "path relative", base: "https://e.com/a/b", ref: "x", want: "https://e.com/a/x", ok: true},
		{name: "protocol relative", base: "https://e.com/", ref: "//cdn.e.com/x", want: "https://cdn.e.com/x", ok: true},
		{name: "empty base", base: "", ref: "/x", ok: false},
		{name: "relative base", base: "/docs/", ref: "x", ok: false},
		{name: "unparseable ref", base: "https://e.com/", ref: "http://[::1", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := dom.ResolveURL(tt.base, tt.ref)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
