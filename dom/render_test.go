package dom_test

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"

	"github.com/njchilds90/htmlsafe/dom"
)

func TestMarkup_Pretty(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		indent int
		want   string
	}{
		{
			name:   "empty document",
			input:  "",
			indent: 2,
			want:   "<html>\n  <head></head>\n  <body></body>\n</html>",
		},
		{
			name:   "nested blocks",
			input:  page,
			indent: 2,
			want: "<html>\n  <head>\n    <title>My Page</title>\n  </head>\n" +
				"  <body>\n    <h1>Hello World</h1>\n  </body>\n</html>",
		},
		{
			name:   "inline content stays on one line",
			input:  `<div>  <p>Hello <b>World</b></p> <span>inline</span></div>`,
			indent: 1,
			want: "<html>\n <head></head>\n <body>\n  <div>\n   <p>Hello <b>World</b></p>\n" +
				"   <span>inline</span>\n  </div>\n </body>\n</html>",
		},
		{
			name:   "doctype and comments get their own lines",
			input:  `<!DOCTYPE html><!-- top --><html><body><p>x</p><!-- tail --></body></html>`,
			indent: 2,
			want: "<!DOCTYPE html>\n<!-- top -->\n<html>\n  <head></head>\n" +
				"  <body>\n    <p>x</p>\n    <!-- tail -->\n  </body>\n</html>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dom.Parse(tt.input).Markup(true, tt.indent))
		})
	}
}

func TestMarkup_Compact(t *testing.T) {
	doc := dom.Parse(`<!DOCTYPE html><p title='say "hi"'>a &lt; b &amp; c&nbsp;d<br></p><!--note-->`)

	assert.Equal(t,
		`<!DOCTYPE html><html><head></head><body><p title="say &quot;hi&quot;">a &lt; b &amp; c&nbsp;d<br></p><!--note--></body></html>`,
		doc.Markup(false, 4))
}

func TestMarkup_RawAndPreformatted(t *testing.T) {
	doc := dom.Parse("<div><script>if (a < b) { go() }</script><pre>\n\n  keep   this\n</pre><textarea>a<b</textarea></div>")
	div := doc.ElementsByTag("div")[0]

	want := "<div><script>if (a < b) { go() }</script><pre>\n\n  keep   this\n</pre><textarea>a&lt;b</textarea></div>"
	assert.Equal(t, want, div.OuterHTML())

	pretty := div.Markup(true, 2)
	assert.Contains(t, pretty, "<pre>\n\n  keep   this\n</pre>")
	assert.Contains(t, pretty, "<script>if (a < b) { go() }</script>")
}

func TestMarkup_Doctype(t *testing.T) {
	doc := dom.Parse(`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Strict//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd"><p>x</p>`)

	assert.True(t, strings.HasPrefix(doc.OuterHTML(),
		`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Strict//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd"><html>`))
}

func TestMarkup_PrettyDiffersOnlyInWhitespace(t *testing.T) {
	inputs := []string{
		"",
		page,
		`<div><p>Test <b>bold</b> text</p><ul><li>one</li><li>two <i>2</i></li></ul></div>`,
		`<table><tr><td>a</td><td> b </td></tr></table><p>after</p>`,
		`<!DOCTYPE html><body><!-- c --><section><h2>t</h2>text<div>  x  </div></section></body>`,
		"<pre>\n  pre  formatted\n</pre><p>x\n y</p>",
	}
	for _, input := range inputs {
		doc := dom.Parse(input)
		compact := doc.Markup(false, 0)
		for _, indent := range []int{0, 2, 4} {
			pretty := doc.Markup(true, indent)
			assert.Equal(t, stripSpace(compact), stripSpace(pretty), "input %q indent %d", input, indent)
		}
	}
}

func TestOuterHTML_UsesOutputSettings(t *testing.T) {
	doc := dom.Parse(page)
	assert.Equal(t, doc.Markup(false, 0), doc.OuterHTML())

	doc.SetOutputSettings(dom.OutputSettings{PrettyPrint: true, IndentAmount: 3})
	assert.Equal(t, doc.Markup(true, 3), doc.OuterHTML())
	assert.Contains(t, doc.OuterHTML(), "\n   <head>")
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
