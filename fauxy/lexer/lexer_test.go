package lexer

import (
	"errors"
	"strings"
	"testing"

	"github.com/dhamidi/fauxy/fauxy/parser"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type want struct {
	kind parser.Kind
	text string
}

func lexKinds(t *testing.T, src string) []want {
	t.Helper()
	tokens, err := Lex([]byte(src))
	require.NoError(t, err)
	got := make([]want, len(tokens))
	for i, tok := range tokens {
		got[i] = want{tok.Kind, tok.Literal}
	}
	return got
}

func TestLexTokenKinds(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []want
	}{
		{"integer", "42", []want{{parser.TokenNumber, "42"}}},
		{"decimal", "3.14", []want{{parser.TokenNumber, "3.14"}}},
		{"string", `"hi there"`, []want{{parser.TokenString, `"hi there"`}}},
		{"escaped string", `"a \"b\""`, []want{{parser.TokenString, `"a \"b\""`}}},
		{"identifier", "foo_bar", []want{{parser.TokenIdentifier, "foo_bar"}}},
		{"predicate", "empty?", []want{{parser.TokenIdentifier, "empty?"}}},
		{"operator", "++", []want{{parser.TokenIdentifier, "++"}}},
		{"equality operator", "==", []want{{parser.TokenIdentifier, "=="}}},
		{"class", "Object", []want{{parser.TokenClassIdentifier, "Object"}}},
		{"block declaration", "->", []want{{parser.TokenBlockDeclaration, "->"}}},
		{"local assign", "=", []want{{parser.TokenLocalAssign, "="}}},
		{"attr assign", ":", []want{{parser.TokenAttrAssign, ":"}}},
		{
			"punctuation",
			".(),;{}",
			[]want{
				{parser.TokenDotAccessor, "."},
				{parser.TokenOpeningParen, "("},
				{parser.TokenClosingParen, ")"},
				{parser.TokenComma, ","},
				{parser.TokenStatementEnd, ";"},
				{parser.TokenBlockStart, "{"},
				{parser.TokenBlockEnd, "}"},
			},
		},
		{
			"number receiver",
			"1.to_s",
			[]want{
				{parser.TokenNumber, "1"},
				{parser.TokenDotAccessor, "."},
				{parser.TokenIdentifier, "to_s"},
			},
		},
		{
			"block",
			"-> (x) { x }",
			[]want{
				{parser.TokenBlockDeclaration, "->"},
				{parser.TokenOpeningParen, "("},
				{parser.TokenIdentifier, "x"},
				{parser.TokenClosingParen, ")"},
				{parser.TokenBlockStart, "{"},
				{parser.TokenIdentifier, "x"},
				{parser.TokenBlockEnd, "}"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, lexKinds(t, tt.src))
		})
	}
}

func TestLexSkipsWhitespaceAndComments(t *testing.T) {
	got := lexKinds(t, "x   # a comment\n\ty")
	require.Equal(t, []want{
		{parser.TokenIdentifier, "x"},
		{parser.TokenLineEnd, "\n"},
		{parser.TokenIdentifier, "y"},
	}, got)
}

func TestLexEmptyInput(t *testing.T) {
	tokens, err := Lex(nil)
	require.NoError(t, err)
	require.Empty(t, tokens)
}

func TestLexValues(t *testing.T) {
	tokens, err := Lex([]byte(`1.5 "a\tb" name`))
	require.NoError(t, err)
	require.Len(t, tokens, 3)

	d, ok := tokens[0].Value.(decimal.Decimal)
	require.True(t, ok)
	require.True(t, d.Equal(decimal.RequireFromString("1.5")))
	require.Equal(t, "a\tb", tokens[1].Value)
	require.Equal(t, "name", tokens[2].Value)
}

func TestLexSpans(t *testing.T) {
	tokens, err := Lex([]byte("ab\n  cd"), WithFile("main.fx"))
	require.NoError(t, err)
	require.Len(t, tokens, 3)

	require.Equal(t, parser.Position{File: "main.fx", Offset: 0, Line: 1, Column: 1}, tokens[0].Span.Start)
	require.Equal(t, parser.Position{File: "main.fx", Offset: 2, Line: 1, Column: 3}, tokens[0].Span.End)
	require.Equal(t, 1, tokens[1].Span.Start.Line)
	require.Equal(t, parser.Position{File: "main.fx", Offset: 5, Line: 2, Column: 3}, tokens[2].Span.Start)
	require.Equal(t, "main.fx:2:3", tokens[2].Span.Start.String())
}

func TestLexUnexpectedCharacter(t *testing.T) {
	tokens, err := Lex([]byte("x\n  @"))
	require.Error(t, err)
	require.Len(t, tokens, 2)

	var lexErr *Error
	require.True(t, errors.As(err, &lexErr))
	require.Equal(t, '@', lexErr.Char)
	require.Equal(t, 2, lexErr.Pos.Line)
	require.Equal(t, 3, lexErr.Pos.Column)
}

func TestLexUnterminatedString(t *testing.T) {
	_, err := Lex([]byte(`"open`))
	require.Error(t, err)
}

func TestLexFeedsParser(t *testing.T) {
	tokens, err := Lex([]byte("items each -> (item) { item print }\n0 ++"))
	require.NoError(t, err)

	root, err := parser.Parse(tokens)
	require.NoError(t, err)
	require.Len(t, root.Children, 2)
	require.Equal(t,
		"method_call(lookup(items), lookup(each), list(block(list(lookup(item)), statements(method_call(lookup(item), lookup(print), list())))))",
		root.Children[0].Shape())
	require.Equal(t, "method_call(literal(0), lookup(++), list())", root.Children[1].Shape())
}

func TestCustomGrammar(t *testing.T) {
	src := strings.Replace(string(GrammarSource()), `Comment          = "#" { commentChar } .`, `Comment          = "%" { commentChar } .`, 1)
	g, err := LoadGrammar("custom.ebnf", strings.NewReader(src))
	require.NoError(t, err)

	tokens, err := Lex([]byte("x % note"), WithGrammar(g))
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	require.Equal(t, "x", tokens[0].Literal)
}

func TestLoadGrammarMissingProduction(t *testing.T) {
	src := `Source = { Token } .
Token = LineEnd .
LineEnd = "\n" .
`
	_, err := LoadGrammar("small.ebnf", strings.NewReader(src))
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing token production")
}

func TestLoadGrammarUnreachableProduction(t *testing.T) {
	src := string(GrammarSource()) + "\nOrphan = \"x\" .\n"
	_, err := LoadGrammar("orphan.ebnf", strings.NewReader(src))
	require.Error(t, err)
}

func TestBuiltinGrammar(t *testing.T) {
	g, err := Grammar()
	require.NoError(t, err)
	for _, p := range productions {
		require.Contains(t, g, p.name)
	}
}
