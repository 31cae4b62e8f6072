// Command rfc2047x decodes RFC 2047 encoded MIME header values, given as
// arguments or as lines on stdin.
package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/modfin/rfc2047x"
	"github.com/modfin/rfc2047x/cmd/rfc2047x/config"
	"github.com/modfin/rfc2047x/lexer"

	// Resolve the full WHATWG set of charset labels, not just the built-in
	// table.
	_ "github.com/modfin/rfc2047x/charsets/htmlcharset"
)

var (
	configPath string
	tooLong    string
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "rfc2047x [header ...]",
		Short:   "Decode RFC 2047 encoded MIME header values",
		Long:    "Decode RFC 2047 encoded MIME header values given as arguments, or as lines on stdin when no arguments are given.",
		Version: rfc2047x.Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("too-long") {
				cfg.TooLongEncodedWords = tooLong
			}
			if verbose {
				cfg.LogLevel = "debug"
			}

			strategy, err := cfg.Strategy()
			if err != nil {
				return err
			}

			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: cfg.Level(),
			}))
			slog.SetDefault(logger)

			decoder := &rfc2047x.Decoder{
				TooLongEncodedWords: strategy,
				Logger:              logger,
			}

			if len(args) > 0 {
				return decodeAll(cmd, decoder, args)
			}
			return decodeStdin(cmd, decoder)
		},
	}

	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	rootCmd.Flags().StringVar(&tooLong, "too-long", "abort",
		fmt.Sprintf("strategy for encoded words over %d bytes: abort, skip or decode", lexer.MaxEncodedWordLength))
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log decode details to stderr")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func decodeAll(cmd *cobra.Command, decoder *rfc2047x.Decoder, headers []string) error {
	for _, header := range headers {
		decoded, err := decoder.DecodeString(header)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), decoded)
	}
	return nil
}

func decodeStdin(cmd *cobra.Command, decoder *rfc2047x.Decoder) error {
	scanner := bufio.NewScanner(cmd.InOrStdin())
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		decoded, err := decoder.Decode(scanner.Bytes())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), decoded)
	}
	return scanner.Err()
}
