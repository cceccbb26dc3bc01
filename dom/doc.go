// Package dom models a parsed HTML document as an in-memory tree that can be
// queried, edited and serialized.
//
// # Overview
//
// Parsing is delegated to the golang.org/x/net/html tree builder, which is
// forgiving: malformed markup never fails, missing html, head and body
// elements are synthesized, and unclosed tags are closed. The resulting
// *html.Node tree is wrapped by [Document], which adds the metadata the
// parser does not track (location, charset and [OutputSettings]).
//
// Elements are exposed through the [Element] handle, a thin wrapper around an
// *html.Node. Handles are cheap; two handles may refer to the same node, so
// compare them through [Element.Node].
//
// # Serialization
//
// A tree renders to markup, compact or pretty-printed ([Document.Markup]),
// and to a structured form ([Document.Structure]) that encodes to JSON or
// YAML. Pretty and compact markup differ only in whitespace.
//
// # Ownership
//
// Every node except the document root has exactly one parent. Moving a node
// with [Element.AppendChild] detaches it from its old parent first, and
// [Document.Clone] deep-copies the whole tree.
//
// # Example
//
//	doc := dom.Parse(`<ul><li class="item">One</li><li class="item">Two</li></ul>`)
//	items, _ := doc.Select(".item")
//	for _, it := range items {
//		fmt.Println(it.Text())
//	}
package dom
