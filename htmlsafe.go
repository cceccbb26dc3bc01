package htmlsafe

import "github.com/njchilds90/htmlsafe/dom"

// DefaultSafelist is the preset Clean uses when none is given.
const DefaultSafelist = RelaxedSafelist

type options struct {
	safelist              string
	preserveRelativeLinks bool
	baseURI               string
}

// Option configures Clean.
type Option func(*options)

// WithSafelist selects the preset by name. See Resolve.
func WithSafelist(name string) Option {
	return func(o *options) {
		o.safelist = name
	}
}

// WithPreserveRelativeLinks keeps relative URLs as written instead of
// resolving them against the base URI. This includes network-path
// references like "//host/x"; see Policy.WithPreserveRelativeLinks.
func WithPreserveRelativeLinks(preserve bool) Option {
	return func(o *options) {
		o.preserveRelativeLinks = preserve
	}
}

// WithBaseURI sets the URI relative links are resolved against.
func WithBaseURI(uri string) Option {
	return func(o *options) {
		o.baseURI = uri
	}
}

// Clean sanitizes input with a named preset. The safelist is resolved before
// anything else, so an unknown name fails even for empty input.
func Clean(input string, opts ...Option) (string, error) {
	o := options{safelist: DefaultSafelist}
	for _, opt := range opts {
		opt(&o)
	}

	p, err := Resolve(o.safelist)
	if err != nil {
		return "", err
	}
	if input == "" {
		return "", nil
	}
	return Sanitize(input, p.WithPreserveRelativeLinks(o.preserveRelativeLinks), o.baseURI), nil
}

// Parse parses a complete HTML document. Empty input yields the empty
// document.
func Parse(input string) *dom.Document {
	return dom.Parse(input)
}
