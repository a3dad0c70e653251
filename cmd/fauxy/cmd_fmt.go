package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/fauxy/format"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
)

func newFmtCmd() *cobra.Command {
	var fmtOverwrite bool
	var showDiff bool

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Print Fauxy source in canonical form",
		Long: `Print a Fauxy source file in canonical form to stdout.

If no file is provided, reads source from stdin. Comments are not kept.

Use -w to overwrite the file in place (requires a file argument) and
-d to print a unified diff against the input instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if fmtOverwrite && len(args) == 0 {
				return fmt.Errorf("-w requires a file argument")
			}

			name, src, err := readSource(cmd, args)
			if err != nil {
				return err
			}
			tokens, err := lexSource(name, src)
			if err != nil {
				return err
			}
			root, err := parseTokens(tokens)
			if err != nil {
				return err
			}

			output, err := format.NewSourceEncoder(nil).MarshalText(root)
			if err != nil {
				return fmt.Errorf("format: %w", err)
			}
			if len(output) > 0 {
				output = append(output, '\n')
			}

			if showDiff {
				diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
					A:        difflib.SplitLines(string(src)),
					B:        difflib.SplitLines(string(output)),
					FromFile: name,
					ToFile:   name + " (formatted)",
					Context:  3,
				})
				if err != nil {
					return fmt.Errorf("diff: %w", err)
				}
				fmt.Fprint(cmd.OutOrStdout(), diff)
				return nil
			}

			if fmtOverwrite {
				log.Infof("formatting %s", name)
				return os.WriteFile(name, output, 0644)
			}
			_, err = cmd.OutOrStdout().Write(output)
			return err
		},
	}

	cmd.Flags().BoolVarP(&fmtOverwrite, "write", "w", false, "overwrite the file in place")
	cmd.Flags().BoolVarP(&showDiff, "diff", "d", false, "print a unified diff instead of the formatted source")

	return cmd
}
