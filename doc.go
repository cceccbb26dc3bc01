// Package htmlsafe sanitizes untrusted HTML against named policies and
// parses HTML into documents that can be queried and serialized.
//
// # Overview
//
// htmlsafe parses a fragment with golang.org/x/net/html in the context of a
// <body> element, walks the resulting tree and copies only the nodes a
// [Policy] allows into a fresh document. The cleaned body is returned as
// compact markup. The tree model and serializer live in the dom package.
//
// # Safelists
//
// Five presets are available, from least to most permissive:
//   - none: text only
//   - simpletext: b, em, i, strong, u and br
//   - basic: inline formatting, lists, quotes and nofollow links
//   - basicwithimages: basic plus http(s) images
//   - relaxed: headings, tables, images, media, div and span
//
// [Resolve] looks a preset up by name; [PolicyBuilder] builds custom
// policies, optionally starting from a preset with [ExtendPolicy].
//
// # Security
//
// Every preset removes script, style, iframe, object and similar elements
// together with their content, as well as all SVG and MathML. Event handler
// and style attributes never pass. URL-bearing attributes must use one of the
// schemes the policy lists; javascript: and data: are never listed by a
// preset. Relative URLs are resolved against a base URI, or kept as written
// when the policy preserves relative links.
//
// # Thread Safety
//
// All functions are safe for concurrent use. Policies are immutable once
// built.
//
// # Example
//
//	clean, err := htmlsafe.Clean(userInput,
//		htmlsafe.WithSafelist("basic"),
//		htmlsafe.WithBaseURI("https://example.com/"))
package htmlsafe
