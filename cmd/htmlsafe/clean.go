package main

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/njchilds90/htmlsafe"
)

func newCleanCmd(cfg *Config) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "clean [file]",
		Short: "Sanitize an HTML fragment read from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := htmlsafe.Resolve(cfg.Safelist)
			if err != nil {
				return err
			}
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			p = p.WithPreserveRelativeLinks(cfg.PreserveRelativeLinks)

			if check {
				if !htmlsafe.IsValid(string(input), p) {
					return fmt.Errorf("%w: %s", ErrUnsafeInput, p.Name())
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "ok")
				return err
			}

			out := htmlsafe.Sanitize(string(input), p, cfg.BaseURI)
			log.Debug().
				Str("safelist", p.Name()).
				Bool("preserve_relative_links", p.PreserveRelativeLinks()).
				Int("in_bytes", len(input)).
				Int("out_bytes", len(out)).
				Msg("cleaned")
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(out))
			return err
		},
	}

	f := cmd.Flags()
	f.StringVarP(&cfg.Safelist, "safelist", "s", cfg.Safelist, "safelist, one of "+strings.Join(htmlsafe.Presets(), ", "))
	f.BoolVar(&cfg.PreserveRelativeLinks, "preserve-relative-links", cfg.PreserveRelativeLinks, "keep relative links as written")
	f.BoolVar(&check, "check", false, "only report whether the input is already clean")
	return cmd
}
