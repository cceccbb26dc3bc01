package main

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/njchilds90/htmlsafe"
	"github.com/njchilds90/htmlsafe/dom"
)

var parseFormats = []string{"html", "pretty", "json", "yaml", "text"}

func newParseCmd(cfg *Config) *cobra.Command {
	var format, selector string

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse an HTML document and print it as markup, JSON, YAML or text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			if !slices.Contains(parseFormats, format) {
				return fmt.Errorf("%w: %q, want one of %s", ErrInvalidFormat, format, strings.Join(parseFormats, ", "))
			}
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			doc, err := dom.ParseReader(bytes.NewReader(input), "")
			if err != nil {
				return fmt.Errorf("parse: %w", err)
			}
			if doc.Location() == "" {
				doc.SetBaseURI(cfg.BaseURI)
			}
			log.Debug().
				Str("charset", doc.Charset()).
				Str("title", doc.Title()).
				Msg("parsed document")

			var out string
			if selector == "" {
				out, err = renderDocument(doc, format, cfg.Indent)
			} else {
				var elems []*dom.Element
				if elems, err = doc.Select(selector); err != nil {
					return err
				}
				log.Debug().Str("selector", selector).Int("matches", len(elems)).Msg("selected")
				out, err = renderElements(elems, format, cfg.Indent)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(out, "\n"))
			return err
		},
	}

	f := cmd.Flags()
	f.StringVarP(&format, "format", "f", "html", "output format, one of "+strings.Join(parseFormats, ", "))
	f.StringVar(&selector, "select", "", "CSS selector; print only the matching elements")
	f.IntVar(&cfg.Indent, "indent", cfg.Indent, "spaces per level for pretty output")
	return cmd
}

func renderDocument(doc *dom.Document, format string, indent int) (string, error) {
	switch format {
	case "pretty":
		return doc.Markup(true, indent), nil
	case "json":
		return doc.JSON(indent > 0)
	case "yaml":
		return doc.YAML()
	case "text":
		return doc.Text(), nil
	default:
		return doc.Markup(false, 0), nil
	}
}

func renderElements(elems []*dom.Element, format string, indent int) (string, error) {
	switch format {
	case "json", "yaml":
		structs := make([]*dom.Structured, len(elems))
		for i, e := range elems {
			structs[i] = e.Structure()
		}
		var (
			b   []byte
			err error
		)
		switch {
		case format == "yaml":
			b, err = yaml.Marshal(structs)
		case indent > 0:
			b, err = json.MarshalIndent(structs, "", "  ")
		default:
			b, err = json.Marshal(structs)
		}
		if err != nil {
			return "", errors.Join(htmlsafe.ErrSerialization, err)
		}
		return string(b), nil
	}

	lines := make([]string, len(elems))
	for i, e := range elems {
		switch format {
		case "pretty":
			lines[i] = e.Markup(true, indent)
		case "text":
			lines[i] = e.Text()
		default:
			lines[i] = e.OuterHTML()
		}
	}
	return strings.Join(lines, "\n"), nil
}
