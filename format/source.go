package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/fauxy/fauxy/parser"
)

// SourceEncoder writes a tree back as Fauxy source. Parsing the output
// yields a tree of the same shape; formatting and comments are not kept.
type SourceEncoder struct {
	w io.Writer
}

func NewSourceEncoder(w io.Writer) *SourceEncoder {
	return &SourceEncoder{w: w}
}

func (e *SourceEncoder) Encode(node *parser.Node) error {
	text, err := e.MarshalText(node)
	if err != nil {
		return err
	}
	if len(text) > 0 {
		text = append(text, '\n')
	}
	_, err = e.w.Write(text)
	return err
}

func (e *SourceEncoder) MarshalText(node *parser.Node) ([]byte, error) {
	tokens, err := Tokens(node)
	if err != nil {
		return nil, err
	}
	return []byte(Text(tokens)), nil
}

// Tokens serializes node into a token sequence. A statements node becomes
// its statements separated by line ends; any other node is written as a
// single statement.
func Tokens(node *parser.Node) ([]parser.Token, error) {
	w := &tokenWriter{}
	if node.Kind == parser.KindStatements {
		w.statements(node.Children, parser.TokenLineEnd)
	} else {
		w.statement(node)
	}
	return w.tokens, w.err
}

type tokenWriter struct {
	tokens []parser.Token
	err    error
}

func (w *tokenWriter) punct(kind parser.Kind) {
	w.tokens = append(w.tokens, parser.Punct(kind))
}

func (w *tokenWriter) leaf(n *parser.Node) {
	if n.Token == nil {
		w.fail(n)
		return
	}
	tok := *n.Token
	tok.Span = parser.Span{}
	w.tokens = append(w.tokens, tok)
}

func (w *tokenWriter) fail(n *parser.Node) {
	if w.err == nil {
		w.err = fmt.Errorf("cannot write %s node: %w", n.Kind, parser.ErrUnknownTokenKind)
	}
}

func (w *tokenWriter) statements(nodes []*parser.Node, sep parser.Kind) {
	for i, n := range nodes {
		if i > 0 {
			w.punct(sep)
		}
		w.statement(n)
	}
}

func (w *tokenWriter) statement(n *parser.Node) {
	switch n.Kind {
	case parser.KindLiteral, parser.KindLookup:
		w.leaf(n)
	case parser.KindMethodCall:
		w.methodCall(n)
	case parser.KindGroup:
		if len(n.Children) > 1 {
			w.fail(n)
			return
		}
		w.punct(parser.TokenOpeningParen)
		w.statements(n.Children, parser.TokenComma)
		w.punct(parser.TokenClosingParen)
	case parser.KindList:
		w.punct(parser.TokenOpeningParen)
		w.statements(n.Children, parser.TokenComma)
		// a single comma keeps one or zero elements a list
		if len(n.Children) < 2 {
			w.punct(parser.TokenComma)
		}
		w.punct(parser.TokenClosingParen)
	case parser.KindBlock:
		w.block(n)
	case parser.KindLocalAssign:
		w.assignment(n, parser.TokenLocalAssign)
	case parser.KindAttrAssign:
		w.assignment(n, parser.TokenAttrAssign)
	default:
		w.fail(n)
	}
}

func (w *tokenWriter) methodCall(n *parser.Node) {
	if len(n.Children) != 3 {
		w.fail(n)
		return
	}
	w.statement(n.Receiver())
	w.punct(parser.TokenDotAccessor)
	w.leaf(n.MethodName())

	args := n.Arguments().Children
	var trailing *parser.Node
	if len(args) > 0 && args[len(args)-1].Kind == parser.KindBlock {
		trailing = args[len(args)-1]
		args = args[:len(args)-1]
	}
	if len(args) > 0 {
		w.punct(parser.TokenOpeningParen)
		w.statements(args, parser.TokenComma)
		w.punct(parser.TokenClosingParen)
	}
	if trailing != nil {
		w.block(trailing)
	}
}

func (w *tokenWriter) block(n *parser.Node) {
	w.punct(parser.TokenBlockDeclaration)
	if params := n.Parameters(); params != nil && len(params.Children) > 0 {
		w.punct(parser.TokenOpeningParen)
		w.statements(params.Children, parser.TokenComma)
		w.punct(parser.TokenClosingParen)
	}
	if body := n.Body(); body != nil {
		w.punct(parser.TokenBlockStart)
		w.statements(body.Children, parser.TokenStatementEnd)
		w.punct(parser.TokenBlockEnd)
	}
}

func (w *tokenWriter) assignment(n *parser.Node, op parser.Kind) {
	if len(n.Children) == 0 {
		w.fail(n)
		return
	}
	w.leaf(n.Children[0])
	w.punct(op)
	if len(n.Children) > 1 {
		w.statement(n.Children[1])
	}
}

// Text joins tokens into source text, separating them with single spaces
// except around accessors, inside parentheses and before separators.
func Text(tokens []parser.Token) string {
	var b strings.Builder
	for i, tok := range tokens {
		if i > 0 && spaced(tokens[i-1].Kind, tok.Kind) {
			b.WriteByte(' ')
		}
		b.WriteString(tok.Text())
	}
	return b.String()
}

func spaced(prev, next parser.Kind) bool {
	switch prev {
	case parser.TokenDotAccessor, parser.TokenOpeningParen, parser.TokenLineEnd:
		return false
	}
	switch next {
	case parser.TokenDotAccessor, parser.TokenClosingParen, parser.TokenComma,
		parser.TokenStatementEnd, parser.TokenLineEnd, parser.TokenAttrAssign:
		return false
	case parser.TokenOpeningParen:
		return prev != parser.TokenIdentifier && prev != parser.TokenClassIdentifier
	}
	return true
}
