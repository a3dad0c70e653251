// Package format renders parsed Fauxy trees as JSON, as an indented tree
// and as canonical source text.
package format

import (
	"github.com/dhamidi/fauxy/fauxy/parser"
)

type Encoder interface {
	Encode(node *parser.Node) error
	MarshalText(node *parser.Node) ([]byte, error)
}

var (
	_ Encoder = (*ASTJSONEncoder)(nil)
	_ Encoder = (*TreeEncoder)(nil)
	_ Encoder = (*SourceEncoder)(nil)
)
