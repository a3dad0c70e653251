package format

import (
	"fmt"
	"io"

	"github.com/dhamidi/fauxy/fauxy/parser"
)

// EncodeTokens writes tokens as a JSON array of {kind, text, span}
// objects.
func EncodeTokens(w io.Writer, tokens []parser.Token) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if tokens == nil {
		tokens = []parser.Token{}
	}
	return enc.Encode(tokens)
}

// DecodeTokens reads a JSON array written by EncodeTokens. Token values
// are derived from their text again.
func DecodeTokens(r io.Reader) ([]parser.Token, error) {
	var tokens []parser.Token
	if err := json.NewDecoder(r).Decode(&tokens); err != nil {
		return nil, fmt.Errorf("decode tokens: %w", err)
	}
	return tokens, nil
}
