package htmlsafe

import (
	"fmt"
	"strings"
)

// Preset names, from least to most permissive.
const (
	NoneSafelist            = "none"
	SimpleTextSafelist      = "simpletext"
	BasicSafelist           = "basic"
	BasicWithImagesSafelist = "basicwithimages"
	RelaxedSafelist         = "relaxed"
)

var (
	nonePolicy = NewPolicyBuilder(NoneSafelist).Build()

	simpleTextPolicy = NewPolicyBuilder(SimpleTextSafelist).
		AllowTags("b", "em", "i", "strong", "u", "br").
		Build()

	basicPolicy = basicBuilder(BasicSafelist).Build()

	basicWithImagesPolicy = basicBuilder(BasicWithImagesSafelist).
		AllowAttrs("img", "align", "alt", "height", "src", "title", "width").
		AllowProtocols("img", "src", "http", "https").
		Build()

	relaxedPolicy = NewPolicyBuilder(RelaxedSafelist).
		AllowTags(
			"a", "b", "blockquote", "br", "caption", "cite", "code", "col",
			"colgroup", "dd", "div", "dl", "dt", "em", "h1", "h2", "h3", "h4",
			"h5", "h6", "i", "img", "li", "ol", "p", "pre", "q", "small",
			"span", "strike", "strong", "sub", "sup", "table", "tbody", "td",
			"tfoot", "th", "thead", "tr", "u", "ul",
			"audio", "video", "source",
		).
		AllowAttrs("a", "href", "title").
		AllowAttrs("blockquote", "cite").
		AllowAttrs("col", "span", "width").
		AllowAttrs("colgroup", "span", "width").
		AllowAttrs("img", "align", "alt", "height", "src", "title", "width").
		AllowAttrs("ol", "start", "type").
		AllowAttrs("q", "cite").
		AllowAttrs("table", "summary", "width").
		AllowAttrs("td", "abbr", "axis", "colspan", "rowspan", "width").
		AllowAttrs("th", "abbr", "axis", "colspan", "rowspan", "scope", "width").
		AllowAttrs("ul", "type").
		AllowAttrs("audio", "controls", "src").
		AllowAttrs("video", "controls", "height", "poster", "src", "width").
		AllowAttrs("source", "src", "type").
		AllowProtocols("a", "href", "ftp", "http", "https", "mailto").
		AllowProtocols("blockquote", "cite", "http", "https").
		AllowProtocols("cite", "cite", "http", "https").
		AllowProtocols("img", "src", "http", "https").
		AllowProtocols("q", "cite", "http", "https").
		AllowProtocols("audio", "src", "http", "https").
		AllowProtocols("video", "src", "http", "https").
		AllowProtocols("video", "poster", "http", "https").
		AllowProtocols("source", "src", "http", "https").
		Build()

	presets = []*Policy{
		nonePolicy,
		simpleTextPolicy,
		basicPolicy,
		basicWithImagesPolicy,
		relaxedPolicy,
	}
)

func basicBuilder(name string) *PolicyBuilder {
	return NewPolicyBuilder(name).
		AllowTags(
			"a", "b", "blockquote", "br", "cite", "code", "dd", "dl", "dt",
			"em", "i", "li", "ol", "p", "pre", "q", "small", "span", "strike",
			"strong", "sub", "sup", "u", "ul",
		).
		AllowAttrs("a", "href").
		AllowAttrs("blockquote", "cite").
		AllowAttrs("q", "cite").
		AllowProtocols("a", "href", "ftp", "http", "https", "mailto").
		AllowProtocols("blockquote", "cite", "http", "https").
		AllowProtocols("cite", "cite", "http", "https").
		AllowProtocols("q", "cite", "http", "https").
		EnforceAttr("a", "rel", "nofollow")
}

// None allows no markup at all; only text survives.
func None() *Policy { return nonePolicy }

// SimpleText allows simple inline formatting: b, em, i, strong, u and br.
func SimpleText() *Policy { return simpleTextPolicy }

// Basic allows inline formatting, lists, quotes and links. Links must use
// ftp, http, https or mailto and are forced to rel="nofollow".
func Basic() *Policy { return basicPolicy }

// BasicWithImages is Basic plus <img> with http or https sources.
func BasicWithImages() *Policy { return basicWithImagesPolicy }

// Relaxed allows a broad range of text markup: headings, tables, images,
// media, lists and structural div/span elements.
func Relaxed() *Policy { return relaxedPolicy }

// Presets returns the preset names from least to most permissive.
func Presets() []string {
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.name
	}
	return names
}

// Resolve returns the preset called name. Matching ignores case and
// surrounding whitespace. Unknown names return an error wrapping
// ErrUnknownSafelist.
func Resolve(name string) (*Policy, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, p := range presets {
		if p.name == key {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %q, want one of %s", ErrUnknownSafelist, name, strings.Join(Presets(), ", "))
}
