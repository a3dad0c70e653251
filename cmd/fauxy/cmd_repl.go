package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhamidi/fauxy/fauxy/lexer"
	"github.com/dhamidi/fauxy/fauxy/parser"
	"github.com/dhamidi/fauxy/format"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
)

const (
	historyFile = ".fauxy_history"
	promptMain  = "fx> "
	promptCont  = "... "
)

const replHelp = `REPL commands:
  :tree    print trees as a tree (default)
  :json    print trees as JSON
  :source  print trees as canonical source
  :tokens  print the tokens instead of the tree
  :quit    exit the REPL
`

func red(s string) string { return "\x1b[31m" + s + "\x1b[0m" }

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Parse Fauxy interactively",
		Long: `Read Fauxy statements from the terminal and print their syntax trees.

Input continues on the next line while parentheses or braces are open or
the line ends in an operator that needs more input. Ctrl+C cancels the
current input, Ctrl+D exits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}

func runRepl(out, errOut io.Writer) error {
	fmt.Fprintf(out, "fauxy %s\nType :help for commands.\n", version)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	mode := "tree"
	for {
		src, ok := readStatement(ln)
		if !ok {
			fmt.Fprintln(out)
			return nil
		}

		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			switch trimmed {
			case ":quit":
				return nil
			case ":help":
				fmt.Fprint(out, replHelp)
			case ":tree", ":json", ":source", ":tokens":
				mode = trimmed[1:]
			default:
				fmt.Fprintln(errOut, red("unknown command, type :help"))
			}
			continue
		}

		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		if err := evalRepl(out, mode, src); err != nil {
			fmt.Fprintln(errOut, red(err.Error()))
		}
	}
}

func evalRepl(out io.Writer, mode, src string) error {
	tokens, err := lexSource("<repl>", []byte(src))
	if err != nil {
		return err
	}
	if mode == "tokens" {
		for _, tok := range tokens {
			fmt.Fprintln(out, tok)
		}
		return nil
	}

	root, err := parseTokens(tokens)
	if err != nil {
		return err
	}

	var encoder format.Encoder
	switch mode {
	case "json":
		encoder = format.NewASTJSONEncoder(out)
	case "source":
		encoder = format.NewSourceEncoder(out)
	default:
		encoder = format.NewTreeEncoder(out)
	}
	return encoder.Encode(root)
}

// readStatement prompts until the collected lines form complete input.
// It reports false at end of input.
func readStatement(ln *liner.State) (string, bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if !incomplete(b.String()) {
			return b.String(), true
		}
	}
}

// incomplete reports whether src leaves a delimiter open or ends in a
// token that expects more input. Input that does not lex is complete so
// the error gets reported.
func incomplete(src string) bool {
	tokens, err := lexer.Lex([]byte(src))
	if err != nil || len(tokens) == 0 {
		return false
	}

	depth := 0
	for _, tok := range tokens {
		switch tok.Kind {
		case parser.TokenOpeningParen, parser.TokenBlockStart:
			depth++
		case parser.TokenClosingParen, parser.TokenBlockEnd:
			depth--
		}
	}
	if depth > 0 {
		return true
	}

	switch tokens[len(tokens)-1].Kind {
	case parser.TokenDotAccessor, parser.TokenComma, parser.TokenBlockDeclaration,
		parser.TokenLocalAssign, parser.TokenAttrAssign:
		return true
	}
	return false
}
