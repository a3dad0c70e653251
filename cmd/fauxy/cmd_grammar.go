package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/dhamidi/fauxy/fauxy/lexer"
	"github.com/spf13/cobra"
	"golang.org/x/exp/ebnf"
)

func newGrammarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Inspect and check token grammars",
	}

	cmd.AddCommand(newGrammarCheckCmd())
	cmd.AddCommand(newGrammarPrintCmd())

	return cmd
}

func newGrammarCheckCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Parse and verify an EBNF token grammar",
		Long: `Parse and verify an EBNF grammar file, or the built-in token grammar
when no file is given.

With the default start production the grammar must also define every
token production the lexer uses. Other start productions only get the
checks of golang.org/x/exp/ebnf.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				if _, err := lexer.Grammar(); err != nil {
					printErrors(out, err)
					return err
				}
				fmt.Fprintln(out, "built-in grammar: ok")
				return nil
			}

			filename := args[0]
			if startProduction == lexer.StartProduction {
				if _, err := lexer.LoadGrammarFile(filename); err != nil {
					printErrors(out, err)
					return err
				}
				fmt.Fprintf(out, "%s: ok\n", filename)
				return nil
			}

			f, err := os.Open(filename)
			if err != nil {
				return fmt.Errorf("open file: %w", err)
			}
			defer f.Close()

			if err := checkGrammar(filename, f, startProduction); err != nil {
				printErrors(out, err)
				return err
			}
			fmt.Fprintf(out, "%s: ok\n", filename)
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", lexer.StartProduction, "start production for verification (if empty, only checks syntax)")

	return cmd
}

func checkGrammar(filename string, r io.Reader, start string) error {
	grammar, err := ebnf.Parse(filename, r)
	if err != nil {
		return err
	}
	if start == "" {
		return nil
	}
	return ebnf.Verify(grammar, start)
}

func newGrammarPrintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "print",
		Short: "Print the built-in token grammar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write(lexer.GrammarSource())
			return err
		},
	}
}

// printErrors prints each error of an ebnf error list on its own line,
// looking through one level of wrapping.
func printErrors(w io.Writer, err error) {
	v := reflect.ValueOf(err)
	if v.Kind() != reflect.Slice {
		if inner := errors.Unwrap(err); inner != nil {
			v = reflect.ValueOf(inner)
		}
	}
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(w, v.Index(i).Interface())
		}
		return
	}
	fmt.Fprintln(w, err)
}
