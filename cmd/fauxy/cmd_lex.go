package main

import (
	"fmt"

	"github.com/dhamidi/fauxy/format"
	"github.com/spf13/cobra"
)

func newLexCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "lex [file]",
		Short: "Tokenize Fauxy source and print the tokens",
		Long: `Tokenize a Fauxy source file, or stdin when no file is given.

The lines format prints one token per line with its position. The json
format prints a token stream that "fauxy parse --tokens" reads back.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, src, err := readSource(cmd, args)
			if err != nil {
				return err
			}
			tokens, err := lexSource(name, src)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch outputFormat {
			case "lines":
				for _, tok := range tokens {
					fmt.Fprintln(out, tok)
				}
			case "json":
				if err := format.EncodeTokens(out, tokens); err != nil {
					return fmt.Errorf("encode tokens: %w", err)
				}
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "lines", "output format (lines, json)")

	return cmd
}
