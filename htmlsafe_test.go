package htmlsafe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/htmlsafe"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  []htmlsafe.Option
		want  string
	}{
		{
			name:  "defaults to relaxed",
			input: `<div><h1>T</h1><script>x</script></div>`,
			want:  "<div><h1>T</h1></div>",
		},
		{
			name:  "named safelist",
			input: `<div><h1>T</h1><b>x</b></div>`,
			opts:  []htmlsafe.Option{htmlsafe.WithSafelist("simpletext")},
			want:  "T<b>x</b>",
		},
		{
			name:  "resolves relative links",
			input: `<a href="/x">l</a>`,
			opts:  []htmlsafe.Option{htmlsafe.WithBaseURI("https://e.com")},
			want:  `<a href="https://e.com/x">l</a>`,
		},
		{
			name:  "preserves relative links",
			input: `<a href="/x">l</a>`,
			opts: []htmlsafe.Option{
				htmlsafe.WithBaseURI("https://e.com"),
				htmlsafe.WithPreserveRelativeLinks(true),
			},
			want: `<a href="/x">l</a>`,
		},
		{
			name:  "none yields text",
			input: `<p>a <i>b</i></p>`,
			opts:  []htmlsafe.Option{htmlsafe.WithSafelist("NONE")},
			want:  "a b",
		},
		{
			name:  "empty input",
			input: "",
			opts:  []htmlsafe.Option{htmlsafe.WithSafelist("basic")},
			want:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := htmlsafe.Clean(tt.input, tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClean_Properties(t *testing.T) {
	got, err := htmlsafe.Clean(`<script>alert(1)</script><p>hi</p>`, htmlsafe.WithSafelist("basic"))
	require.NoError(t, err)
	assert.Equal(t, "<p>hi</p>", got)

	got, err = htmlsafe.Clean(`<div><p>Test <b>bold</b> text</p><script>document.write("x")</script></div>`)
	require.NoError(t, err)
	assert.Contains(t, got, "<div>")
	assert.Contains(t, got, "<p>Test <b>bold</b> text</p>")
	assert.NotContains(t, got, "script")
	assert.NotContains(t, got, "document.write")

	got, err = htmlsafe.Clean(`<a href='/x'>l</a>`, htmlsafe.WithSafelist("basic"), htmlsafe.WithBaseURI("https://e.com/"))
	require.NoError(t, err)
	assert.Equal(t, `<a href="https://e.com/x" rel="nofollow">l</a>`, got)

	got, err = htmlsafe.Clean(`<a href='/x'>l</a>`, htmlsafe.WithSafelist("basic"), htmlsafe.WithBaseURI("https://e.com/"),
		htmlsafe.WithPreserveRelativeLinks(true))
	require.NoError(t, err)
	assert.Equal(t, `<a href="/x" rel="nofollow">l</a>`, got)
}

func TestClean_UnknownSafelist(t *testing.T) {
	for _, input := range []string{"", "<p>x</p>"} {
		got, err := htmlsafe.Clean(input, htmlsafe.WithSafelist("unknown"))
		assert.ErrorIs(t, err, htmlsafe.ErrUnknownSafelist)
		assert.Empty(t, got)
	}
}

func TestClean_DoesNotChangePresets(t *testing.T) {
	_, err := htmlsafe.Clean(`<a href="/x">l</a>`, htmlsafe.WithPreserveRelativeLinks(true))
	require.NoError(t, err)
	assert.False(t, htmlsafe.Relaxed().PreserveRelativeLinks())
}

func TestParse(t *testing.T) {
	doc := htmlsafe.Parse(`<html><head><title>My Page</title></head><body><h1>Hello World</h1></body></html>`)

	assert.Equal(t, "My Page", doc.Title())
	assert.Equal(t, "<h1>Hello World</h1>", doc.Body().HTML())
}

func TestParse_Empty(t *testing.T) {
	doc := htmlsafe.Parse("")

	assert.Equal(t, "<html><head></head><body></body></html>", doc.Markup(false, 0))
	assert.Equal(t, "<html>\n  <head></head>\n  <body></body>\n</html>", doc.Markup(true, 2))

	out, err := doc.JSON(false)
	require.NoError(t, err)
	assert.Equal(t, `{"tag":"html","children":[{"tag":"head"},{"tag":"body"}]}`, out)
}
