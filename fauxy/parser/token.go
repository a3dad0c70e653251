package parser

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid reports whether p was set by a lexer. Lines start at 1.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Before reports whether p comes before q in the same file.
func (p Position) Before(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Column < q.Column
}

type Span struct {
	Start Position
	End   Position
}

func (s Span) IsValid() bool {
	return s.Start.IsValid()
}

// Contains reports whether the line/column pair falls inside s.
func (s Span) Contains(line, column int) bool {
	if !s.IsValid() {
		return false
	}
	if line < s.Start.Line || line > s.End.Line {
		return false
	}
	if line == s.Start.Line && column < s.Start.Column {
		return false
	}
	if line == s.End.Line && column >= s.End.Column {
		return false
	}
	return true
}

// Token is an immutable lexical unit. Literal holds the source text;
// Value holds the decoded payload: a decimal.Decimal for numbers, the
// unquoted text for strings and the name for identifiers.
type Token struct {
	Kind    Kind
	Literal string
	Value   any
	Span    Span
}

// NewToken builds a token of the given kind and derives its value from
// literal.
func NewToken(kind Kind, literal string) (Token, error) {
	tok := Token{Kind: kind, Literal: literal}
	switch kind {
	case TokenNumber:
		d, err := decimal.NewFromString(literal)
		if err != nil {
			return Token{}, fmt.Errorf("number %q: %w", literal, err)
		}
		tok.Value = d
	case TokenString:
		s, err := strconv.Unquote(literal)
		if err != nil {
			return Token{}, fmt.Errorf("string %s: %w", literal, err)
		}
		tok.Value = s
	case TokenIdentifier, TokenClassIdentifier:
		tok.Value = literal
	}
	return tok, nil
}

// Number returns a number token for v.
func Number(v int64) Token {
	d := decimal.NewFromInt(v)
	return Token{Kind: TokenNumber, Literal: d.String(), Value: d}
}

// String returns a string token for s.
func String(s string) Token {
	return Token{Kind: TokenString, Literal: strconv.Quote(s), Value: s}
}

// Ident returns an identifier token.
func Ident(name string) Token {
	return Token{Kind: TokenIdentifier, Literal: name, Value: name}
}

// ClassIdent returns a class identifier token.
func ClassIdent(name string) Token {
	return Token{Kind: TokenClassIdentifier, Literal: name, Value: name}
}

// Punct returns a structural token of the given kind.
func Punct(kind Kind) Token {
	return Token{Kind: kind, Literal: punctuation[kind]}
}

var punctuation = map[Kind]string{
	TokenDotAccessor:      ".",
	TokenOpeningParen:     "(",
	TokenClosingParen:     ")",
	TokenComma:            ",",
	TokenStatementEnd:     ";",
	TokenLineEnd:          "\n",
	TokenBlockDeclaration: "->",
	TokenBlockStart:       "{",
	TokenBlockEnd:         "}",
	TokenLocalAssign:      "=",
	TokenAttrAssign:       ":",
}

// Text returns the source text of the token, falling back to the
// canonical spelling for structural tokens built without one.
func (t Token) Text() string {
	if t.Literal != "" {
		return t.Literal
	}
	if s, ok := punctuation[t.Kind]; ok {
		return s
	}
	if t.Value != nil {
		if t.Kind == TokenString {
			return strconv.Quote(fmt.Sprint(t.Value))
		}
		return fmt.Sprint(t.Value)
	}
	return ""
}

func (t Token) String() string {
	if t.Span.IsValid() {
		return fmt.Sprintf("%s %s %q", t.Span.Start, t.Kind, t.Text())
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Text())
}

func (t Token) kindOf() Kind {
	return t.Kind
}
