package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newRootCmd(cfg Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "htmlsafe",
		Short:         "Sanitize untrusted HTML and inspect HTML documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}
			log.Logger = logger
			return nil
		},
	}

	f := cmd.PersistentFlags()
	f.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (trace, debug, info, warn, error)")
	f.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format (console or json)")
	f.StringVar(&cfg.BaseURI, "base-uri", cfg.BaseURI, "URI relative links are resolved against")

	cmd.AddCommand(newCleanCmd(&cfg), newParseCmd(&cfg))
	return cmd
}

// readInput returns the contents of the file named by args, or of stdin when
// there is no argument or it is "-". Blank input is an error.
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	var (
		b   []byte
		err error
	)
	if len(args) == 0 || args[0] == "-" {
		b, err = io.ReadAll(cmd.InOrStdin())
	} else {
		b, err = os.ReadFile(args[0])
	}
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, ErrEmptyInput
	}
	return b, nil
}
