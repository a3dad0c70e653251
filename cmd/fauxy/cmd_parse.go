package main

import (
	"bytes"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dhamidi/fauxy/fauxy/parser"
	"github.com/dhamidi/fauxy/format"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var includePositions bool
	var fromTokens bool
	var query string
	var showStats bool
	var maxDepth int

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse Fauxy source and dump the syntax tree",
		Long: `Parse a Fauxy source file, or stdin when no file is given, and print
the resulting tree.

With --tokens the input is a JSON token stream as written by
"fauxy lex -f json" instead of source text. --query selects part of the
JSON form of the tree with a gjson path, e.g. "children.#.kind".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, src, err := readSource(cmd, args)
			if err != nil {
				return err
			}

			var tokens []parser.Token
			if fromTokens {
				tokens, err = format.DecodeTokens(bytes.NewReader(src))
			} else {
				tokens, err = lexSource(name, src)
			}
			if err != nil {
				return err
			}

			root, err := parseTokens(tokens, parser.WithMaxDepth(maxDepth))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if showStats {
				return writeStats(out, int64(len(src)), len(tokens), format.Collect(root))
			}

			if query != "" {
				result, err := format.Query(root, query)
				if err != nil {
					return err
				}
				if !result.Exists() {
					return fmt.Errorf("query %q: no match", query)
				}
				fmt.Fprintln(out, result.String())
				return nil
			}

			var encoder format.Encoder
			switch outputFormat {
			case "tree":
				enc := format.NewTreeEncoder(out)
				enc.ShowPositions(includePositions)
				encoder = enc
			case "json":
				encoder = format.NewASTJSONEncoder(out)
			case "source":
				encoder = format.NewSourceEncoder(out)
			case "dump":
				if includePositions {
					fmt.Fprint(out, root.StringWithPositions())
				} else {
					fmt.Fprint(out, root.String())
				}
				return nil
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			if err := encoder.Encode(root); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format (tree, json, source, dump)")
	cmd.Flags().BoolVar(&includePositions, "positions", false, "include node positions in tree and dump output")
	cmd.Flags().BoolVar(&fromTokens, "tokens", false, "read a JSON token stream instead of source")
	cmd.Flags().StringVarP(&query, "query", "q", "", "print the result of a gjson path over the JSON tree")
	cmd.Flags().BoolVar(&showStats, "stats", false, "print node counts instead of the tree")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 512, "maximum nesting depth, 0 for no limit")

	return cmd
}

func writeStats(w io.Writer, size int64, tokens int, s format.Stats) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "source\t%s\n", humanize.Bytes(uint64(size)))
	fmt.Fprintf(tw, "tokens\t%s\n", humanize.Comma(int64(tokens)))
	fmt.Fprintf(tw, "statements\t%s\n", humanize.Comma(int64(s.Statements)))
	fmt.Fprintf(tw, "nodes\t%s\n", humanize.Comma(int64(s.Nodes)))
	fmt.Fprintf(tw, "depth\t%d\n", s.Depth)
	for _, k := range s.SortedKinds() {
		fmt.Fprintf(tw, "  %s\t%s\n", k, humanize.Comma(int64(s.Kinds[k])))
	}
	return tw.Flush()
}
