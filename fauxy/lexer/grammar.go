package lexer

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dhamidi/fauxy/fauxy/parser"
	"golang.org/x/exp/ebnf"
)

// StartProduction is the production every token grammar must reach all
// of its productions from.
const StartProduction = "Source"

//go:embed fauxy.ebnf
var grammarSource []byte

// GrammarSource returns the text of the built-in token grammar.
func GrammarSource() []byte {
	return grammarSource
}

// production maps a grammar production to the token kind it produces.
// KindNone marks productions whose matches are discarded.
type production struct {
	name string
	kind parser.Kind
}

// productions lists the token productions in priority order. When two
// productions match the same length, the earlier one wins, so "->" is a
// block declaration and "=" an assignment rather than identifiers.
var productions = []production{
	{"LineEnd", parser.TokenLineEnd},
	{"StatementEnd", parser.TokenStatementEnd},
	{"BlockDeclaration", parser.TokenBlockDeclaration},
	{"LocalAssign", parser.TokenLocalAssign},
	{"AttrAssign", parser.TokenAttrAssign},
	{"DotAccessor", parser.TokenDotAccessor},
	{"OpeningParen", parser.TokenOpeningParen},
	{"ClosingParen", parser.TokenClosingParen},
	{"Comma", parser.TokenComma},
	{"BlockStart", parser.TokenBlockStart},
	{"BlockEnd", parser.TokenBlockEnd},
	{"Number", parser.TokenNumber},
	{"String", parser.TokenString},
	{"ClassIdentifier", parser.TokenClassIdentifier},
	{"Identifier", parser.TokenIdentifier},
	{"Whitespace", parser.KindNone},
	{"Comment", parser.KindNone},
}

var (
	builtinOnce    sync.Once
	builtinGrammar ebnf.Grammar
	builtinErr     error
)

// Grammar returns the built-in token grammar, parsed and verified once.
func Grammar() (ebnf.Grammar, error) {
	builtinOnce.Do(func() {
		builtinGrammar, builtinErr = LoadGrammar("fauxy.ebnf", bytes.NewReader(grammarSource))
	})
	return builtinGrammar, builtinErr
}

// LoadGrammar parses a token grammar and verifies it from
// StartProduction. Every token production the lexer knows must be defined.
func LoadGrammar(filename string, r io.Reader) (ebnf.Grammar, error) {
	grammar, err := ebnf.Parse(filename, r)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	if err := ebnf.Verify(grammar, StartProduction); err != nil {
		return nil, fmt.Errorf("verify grammar: %w", err)
	}
	for _, p := range productions {
		if prod, ok := grammar[p.name]; !ok || prod.Expr == nil {
			return nil, fmt.Errorf("verify grammar: missing token production %s", p.name)
		}
	}
	return grammar, nil
}

// LoadGrammarFile is LoadGrammar for a file on disk.
func LoadGrammarFile(filename string) (ebnf.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()
	return LoadGrammar(filename, f)
}
