package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dhamidi/fauxy/fauxy/lexer"
	"github.com/dhamidi/fauxy/fauxy/parser"
	"github.com/spf13/cobra"
)

// readSource reads the file named by args, or stdin when there is none.
func readSource(cmd *cobra.Command, args []string) (string, []byte, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", nil, fmt.Errorf("read stdin: %w", err)
		}
		return "<stdin>", data, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", nil, fmt.Errorf("read file: %w", err)
	}
	return args[0], data, nil
}

func lexSource(name string, src []byte) ([]parser.Token, error) {
	tokens, err := lexer.Lex(src, lexer.WithFile(name))
	if err != nil {
		return nil, fmt.Errorf("lex: %w", err)
	}
	log.Debugf("%s: %d tokens", name, len(tokens))
	return tokens, nil
}

func parseTokens(tokens []parser.Token, opts ...parser.Option) (*parser.Node, error) {
	root, err := parser.Parse(tokens, opts...)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return root, nil
}
