package dom

import "errors"

var (
	// ErrSerialization is returned when a structured form cannot be encoded.
	// The encoder's own error is joined to it.
	ErrSerialization = errors.New("dom: failed to serialize document")

	// ErrInvalidSelector is returned when a CSS selector does not compile.
	ErrInvalidSelector = errors.New("dom: invalid css selector")

	// ErrUnsupportedCharset is returned by SetCharset for unknown encodings.
	ErrUnsupportedCharset = errors.New("dom: unsupported charset")

	// ErrHierarchy is returned when a node would become its own descendant.
	ErrHierarchy = errors.New("dom: node cannot contain one of its ancestors")
)
