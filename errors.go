package htmlsafe

import (
	"errors"

	"github.com/njchilds90/htmlsafe/dom"
)

var (
	// ErrUnknownSafelist is returned when a safelist name matches no preset.
	ErrUnknownSafelist = errors.New("htmlsafe: unknown safelist")

	// ErrSerialization is returned when a document cannot be encoded.
	ErrSerialization = dom.ErrSerialization
)
