package htmlsafe

import (
	"maps"
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// allTags is the attribute key that applies to every allowed tag.
const allTags = ":all"

// Transformer receives an allowed element after its attributes were filtered
// and may mutate it in place. Returning nil removes the element and its
// content from the output.
type Transformer func(n *html.Node) *html.Node

// defaultOpaque lists elements whose content is never markup the reader is
// meant to see. They are removed together with everything inside them.
var defaultOpaque = []string{
	"applet", "embed", "frame", "frameset", "iframe", "noembed", "noframes",
	"noscript", "nostyle", "object", "plaintext", "script", "style",
	"template", "xmp",
}

// Policy describes which markup survives sanitization. A Policy is immutable
// once built and safe for concurrent use; derive variants with
// WithPreserveRelativeLinks or ExtendPolicy.
type Policy struct {
	name string

	tags      map[string]bool
	attrs     map[string]map[string]bool
	protocols map[string]map[string]map[string]bool
	enforced  map[string][]html.Attribute
	opaque    map[string]bool

	transformers []Transformer
	maxDepth     int
	linkify      bool

	preserveRelativeLinks bool
	keepComments          bool
}

// Name returns the policy name, e.g. "basic".
func (p *Policy) Name() string { return p.name }

// Tags returns the allowed tag names, sorted.
func (p *Policy) Tags() []string {
	return slices.Sorted(maps.Keys(p.tags))
}

// AllowsTag reports whether elements named tag are kept.
func (p *Policy) AllowsTag(tag string) bool {
	return p.tags[strings.ToLower(tag)]
}

// AllowsAttr reports whether attribute attr is kept on tag. Attributes the
// policy enforces on tag count as allowed.
func (p *Policy) AllowsAttr(tag, attr string) bool {
	tag, attr = strings.ToLower(tag), strings.ToLower(attr)
	if !p.tags[tag] {
		return false
	}
	if p.attrs[tag][attr] || p.attrs[allTags][attr] {
		return true
	}
	_, ok := p.enforcedValue(tag, attr)
	return ok
}

// Protocols returns the URL schemes allowed in attr of tag, sorted. An empty
// result means no absolute URL is accepted there.
func (p *Policy) Protocols(tag, attr string) []string {
	set := p.protocols[strings.ToLower(tag)][strings.ToLower(attr)]
	return slices.Sorted(maps.Keys(set))
}

// IsOpaque reports whether tag is discarded along with its content.
func (p *Policy) IsOpaque(tag string) bool {
	return p.opaque[strings.ToLower(tag)]
}

// PreserveRelativeLinks reports whether relative URLs are kept as written
// instead of being resolved against the base URI.
func (p *Policy) PreserveRelativeLinks() bool { return p.preserveRelativeLinks }

// KeepsComments reports whether comments survive sanitization.
func (p *Policy) KeepsComments() bool { return p.keepComments }

// WithPreserveRelativeLinks returns p with the relative link handling set to
// preserve. p itself is never modified.
//
// Any reference without a scheme counts as relative, including
// network-path references such as "//host/x". Those are kept as written
// and take the scheme of whatever page embeds the output.
func (p *Policy) WithPreserveRelativeLinks(preserve bool) *Policy {
	if p.preserveRelativeLinks == preserve {
		return p
	}
	cp := *p
	cp.preserveRelativeLinks = preserve
	return &cp
}

func (p *Policy) allowsScheme(tag, attr, scheme string) bool {
	return p.protocols[tag][attr][scheme]
}

func (p *Policy) hasProtocols(tag, attr string) bool {
	return len(p.protocols[tag][attr]) > 0
}

func (p *Policy) enforcedValue(tag, attr string) (string, bool) {
	for _, a := range p.enforced[tag] {
		if a.Key == attr {
			return a.Val, true
		}
	}
	return "", false
}

// PolicyBuilder assembles a Policy. Names are lower-cased. Methods return
// the builder so calls can be chained.
type PolicyBuilder struct {
	p Policy
}

// NewPolicyBuilder starts an empty policy: no tags, the default set of
// opaque elements, relative links resolved, comments dropped.
func NewPolicyBuilder(name string) *PolicyBuilder {
	b := &PolicyBuilder{p: Policy{
		name:      name,
		tags:      map[string]bool{},
		attrs:     map[string]map[string]bool{},
		protocols: map[string]map[string]map[string]bool{},
		enforced:  map[string][]html.Attribute{},
		opaque:    map[string]bool{},
	}}
	return b.OpaqueTags(defaultOpaque...)
}

// ExtendPolicy starts a builder from a copy of base.
func ExtendPolicy(base *Policy, name string) *PolicyBuilder {
	b := &PolicyBuilder{p: base.clone()}
	b.p.name = name
	return b
}

// AllowTags adds tags to the allowed set.
func (b *PolicyBuilder) AllowTags(tags ...string) *PolicyBuilder {
	for _, t := range tags {
		b.p.tags[strings.ToLower(t)] = true
	}
	return b
}

// AllowAttrs allows attrs on tag. The tag itself is allowed too.
func (b *PolicyBuilder) AllowAttrs(tag string, attrs ...string) *PolicyBuilder {
	tag = strings.ToLower(tag)
	b.AllowTags(tag)
	set := b.p.attrs[tag]
	if set == nil {
		set = map[string]bool{}
		b.p.attrs[tag] = set
	}
	for _, a := range attrs {
		set[strings.ToLower(a)] = true
	}
	return b
}

// AllowAttrsOnAll allows attrs on every allowed tag.
func (b *PolicyBuilder) AllowAttrsOnAll(attrs ...string) *PolicyBuilder {
	set := b.p.attrs[allTags]
	if set == nil {
		set = map[string]bool{}
		b.p.attrs[allTags] = set
	}
	for _, a := range attrs {
		set[strings.ToLower(a)] = true
	}
	return b
}

// AllowProtocols accepts absolute URLs with the given schemes in attr of tag.
// Schemes are written without the trailing colon.
func (b *PolicyBuilder) AllowProtocols(tag, attr string, schemes ...string) *PolicyBuilder {
	tag, attr = strings.ToLower(tag), strings.ToLower(attr)
	byAttr := b.p.protocols[tag]
	if byAttr == nil {
		byAttr = map[string]map[string]bool{}
		b.p.protocols[tag] = byAttr
	}
	set := byAttr[attr]
	if set == nil {
		set = map[string]bool{}
		byAttr[attr] = set
	}
	for _, s := range schemes {
		set[strings.TrimSuffix(strings.ToLower(s), ":")] = true
	}
	return b
}

// EnforceAttr sets attr to value on every kept tag element, replacing any
// value from the input.
func (b *PolicyBuilder) EnforceAttr(tag, attr, value string) *PolicyBuilder {
	tag, attr = strings.ToLower(tag), strings.ToLower(attr)
	list := slices.DeleteFunc(b.p.enforced[tag], func(a html.Attribute) bool { return a.Key == attr })
	b.p.enforced[tag] = append(list, html.Attribute{Key: attr, Val: value})
	return b
}

// OpaqueTags marks tags as opaque: they are removed with all their content
// even when allowed.
func (b *PolicyBuilder) OpaqueTags(tags ...string) *PolicyBuilder {
	for _, t := range tags {
		b.p.opaque[strings.ToLower(t)] = true
	}
	return b
}

// KeepComments lets comments through.
func (b *PolicyBuilder) KeepComments(keep bool) *PolicyBuilder {
	b.p.keepComments = keep
	return b
}

// PreserveRelativeLinks keeps relative URLs as written. Scheme-less
// network-path references ("//host/x") are relative too.
func (b *PolicyBuilder) PreserveRelativeLinks(preserve bool) *PolicyBuilder {
	b.p.preserveRelativeLinks = preserve
	return b
}

// Transform appends fn to the transformers run on every kept element.
func (b *PolicyBuilder) Transform(fn Transformer) *PolicyBuilder {
	b.p.transformers = append(b.p.transformers, fn)
	return b
}

// MaxDepth strips elements nested deeper than n, promoting their content.
// Zero means unlimited.
func (b *PolicyBuilder) MaxDepth(n int) *PolicyBuilder {
	b.p.maxDepth = max(n, 0)
	return b
}

// Linkify turns bare http and https URLs in text into links when the policy
// allows <a href>.
func (b *PolicyBuilder) Linkify(on bool) *PolicyBuilder {
	b.p.linkify = on
	return b
}

// Build returns the policy. The builder may be reused; later changes do not
// affect policies already built.
func (b *PolicyBuilder) Build() *Policy {
	p := b.p.clone()
	return &p
}

func (p *Policy) clone() Policy {
	cp := *p
	cp.tags = maps.Clone(p.tags)
	cp.opaque = maps.Clone(p.opaque)
	cp.attrs = make(map[string]map[string]bool, len(p.attrs))
	for tag, set := range p.attrs {
		cp.attrs[tag] = maps.Clone(set)
	}
	cp.protocols = make(map[string]map[string]map[string]bool, len(p.protocols))
	for tag, byAttr := range p.protocols {
		m := make(map[string]map[string]bool, len(byAttr))
		for attr, set := range byAttr {
			m[attr] = maps.Clone(set)
		}
		cp.protocols[tag] = m
	}
	cp.enforced = make(map[string][]html.Attribute, len(p.enforced))
	for tag, list := range p.enforced {
		cp.enforced[tag] = slices.Clone(list)
	}
	cp.transformers = slices.Clone(p.transformers)
	return cp
}
