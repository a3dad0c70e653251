// Package lexer turns Fauxy source text into parser tokens using a token
// grammar written in EBNF.
package lexer

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/dhamidi/fauxy/fauxy/parser"
	"golang.org/x/exp/ebnf"
)

// Error reports input that no token production matches.
type Error struct {
	Pos  parser.Position
	Char rune
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: unexpected character %q", e.Pos, e.Char)
}

// memoKey is used for memoization of match results.
type memoKey struct {
	name   string
	offset int
}

type match struct {
	n  int
	ok bool
}

type Option func(*Lexer)

// WithFile sets the file name recorded in token positions.
func WithFile(name string) Option {
	return func(l *Lexer) {
		l.filename = name
	}
}

// WithGrammar replaces the built-in token grammar.
func WithGrammar(g ebnf.Grammar) Option {
	return func(l *Lexer) {
		l.grammar = g
	}
}

type Lexer struct {
	grammar  ebnf.Grammar
	input    []byte
	filename string
	pos      int
	line     int
	column   int
	memo     map[memoKey]match
	visiting map[memoKey]bool
}

func New(input []byte, opts ...Option) (*Lexer, error) {
	l := &Lexer{
		input:  input,
		line:   1,
		column: 1,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.grammar == nil {
		g, err := Grammar()
		if err != nil {
			return nil, err
		}
		l.grammar = g
	}
	return l, nil
}

// Lex tokenizes input with the built-in grammar.
func Lex(input []byte, opts ...Option) ([]parser.Token, error) {
	l, err := New(input, opts...)
	if err != nil {
		return nil, err
	}
	return l.Tokenize()
}

func (l *Lexer) Position() parser.Position {
	return parser.Position{
		File:   l.filename,
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

func (l *Lexer) advance(n int) {
	for i := 0; i < n && l.pos < len(l.input); i++ {
		if l.input[l.pos] == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
		l.pos++
	}
}

// NextToken returns the next token, skipping whitespace and comments. At
// the end of input it returns io.EOF.
func (l *Lexer) NextToken() (parser.Token, error) {
	for {
		if l.pos >= len(l.input) {
			return parser.Token{}, io.EOF
		}

		start := l.Position()
		l.memo = make(map[memoKey]match)

		best := -1
		bestLen := 0
		for i, p := range productions {
			prod := l.grammar[p.name]
			if prod == nil || prod.Expr == nil {
				continue
			}
			l.visiting = make(map[memoKey]bool)
			m := l.tryMatch(prod.Expr, l.pos)
			if m.ok && m.n > bestLen {
				best = i
				bestLen = m.n
			}
		}

		if best < 0 {
			ch, _ := utf8.DecodeRune(l.input[l.pos:])
			return parser.Token{}, &Error{Pos: start, Char: ch}
		}

		literal := string(l.input[l.pos : l.pos+bestLen])
		l.advance(bestLen)

		kind := productions[best].kind
		if kind == parser.KindNone {
			continue
		}

		tok, err := parser.NewToken(kind, literal)
		if err != nil {
			return parser.Token{}, fmt.Errorf("%s: %w", start, err)
		}
		tok.Span = parser.Span{Start: start, End: l.Position()}
		return tok, nil
	}
}

// Tokenize reads all remaining tokens.
func (l *Lexer) Tokenize() ([]parser.Token, error) {
	var tokens []parser.Token
	for {
		tok, err := l.NextToken()
		if err == io.EOF {
			return tokens, nil
		}
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
	}
}

// tryMatch matches expr at offset. An ok match may be empty, as for an
// option or repetition that matched nothing.
func (l *Lexer) tryMatch(expr ebnf.Expression, offset int) match {
	switch e := expr.(type) {
	case nil:
		return match{ok: true}

	case *ebnf.Token:
		if bytes.HasPrefix(l.input[offset:], []byte(e.String)) {
			return match{n: len(e.String), ok: true}
		}
		return match{}

	case *ebnf.Range:
		return l.tryMatchRange(e.Begin.String, e.End.String, offset)

	case ebnf.Sequence:
		total := 0
		for _, item := range e {
			m := l.tryMatch(item, offset+total)
			if !m.ok {
				return match{}
			}
			total += m.n
		}
		return match{n: total, ok: true}

	case ebnf.Alternative:
		best := match{}
		for _, alt := range e {
			m := l.tryMatch(alt, offset)
			if m.ok && (!best.ok || m.n > best.n) {
				best = m
			}
		}
		return best

	case *ebnf.Repetition:
		total := 0
		for {
			m := l.tryMatch(e.Body, offset+total)
			if !m.ok || m.n == 0 {
				break
			}
			total += m.n
		}
		return match{n: total, ok: true}

	case *ebnf.Option:
		if m := l.tryMatch(e.Body, offset); m.ok {
			return m
		}
		return match{ok: true}

	case *ebnf.Group:
		return l.tryMatch(e.Body, offset)

	case *ebnf.Name:
		return l.tryMatchName(e.String, offset)

	default:
		return match{}
	}
}

// tryMatchName matches a named production with memoization and cycle
// detection. A production reached again at the same offset fails, which
// breaks left recursion.
func (l *Lexer) tryMatchName(name string, offset int) match {
	key := memoKey{name: name, offset: offset}
	if m, ok := l.memo[key]; ok {
		return m
	}
	if l.visiting[key] {
		return match{}
	}

	prod, ok := l.grammar[name]
	if !ok || prod.Expr == nil {
		l.memo[key] = match{}
		return match{}
	}

	l.visiting[key] = true
	m := l.tryMatch(prod.Expr, offset)
	delete(l.visiting, key)

	l.memo[key] = m
	return m
}

func (l *Lexer) tryMatchRange(begin, end string, offset int) match {
	if offset >= len(l.input) {
		return match{}
	}
	lo, _ := utf8.DecodeRuneInString(begin)
	hi, _ := utf8.DecodeRuneInString(end)
	ch, size := utf8.DecodeRune(l.input[offset:])
	if ch == utf8.RuneError && size <= 1 {
		return match{}
	}
	if ch >= lo && ch <= hi {
		return match{n: size, ok: true}
	}
	return match{}
}
