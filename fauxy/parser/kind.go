package parser

// Kind identifies both lexical tokens and AST nodes. Stream elements are
// either raw tokens or pre-wrapped leaf nodes, and the grammar compares
// their kinds uniformly.
type Kind int

const (
	// KindNone is reported for reads past either end of a TokenStream.
	KindNone Kind = iota

	// Literal-producing tokens
	TokenNumber
	TokenString

	// Lookup-producing tokens
	TokenIdentifier
	TokenClassIdentifier

	// Structural tokens
	TokenDotAccessor
	TokenOpeningParen
	TokenClosingParen
	TokenComma
	TokenStatementEnd
	TokenLineEnd
	TokenBlockDeclaration
	TokenBlockStart
	TokenBlockEnd
	TokenLocalAssign
	TokenAttrAssign

	// Nodes
	KindLiteral
	KindLookup
	KindMethodCall
	KindList
	KindGroup
	KindBlock
	KindStatements
	KindLocalAssign
	KindAttrAssign
)

var kindNames = map[Kind]string{
	KindNone:              "none",
	TokenNumber:           "number",
	TokenString:           "string",
	TokenIdentifier:       "identifier",
	TokenClassIdentifier:  "class_identifier",
	TokenDotAccessor:      "dot_accessor",
	TokenOpeningParen:     "opening_paren",
	TokenClosingParen:     "closing_paren",
	TokenComma:            "comma",
	TokenStatementEnd:     "statement_end",
	TokenLineEnd:          "line_end",
	TokenBlockDeclaration: "block_declaration",
	TokenBlockStart:       "block_start",
	TokenBlockEnd:         "block_end",
	TokenLocalAssign:      "local_assign",
	TokenAttrAssign:       "attr_assign",
	KindLiteral:           "literal",
	KindLookup:            "lookup",
	KindMethodCall:        "method_call",
	KindList:              "list",
	KindGroup:             "group",
	KindBlock:             "block",
	KindStatements:        "statements",
	KindLocalAssign:       "local_assignment",
	KindAttrAssign:        "attr_assignment",
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		m[name] = k
	}
	return m
}()

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind returns the kind with the given name.
func ParseKind(name string) (Kind, bool) {
	k, ok := kindsByName[name]
	return k, ok
}

// IsLiteral reports whether tokens of this kind become literal leaves.
func (k Kind) IsLiteral() bool {
	return k == TokenNumber || k == TokenString
}

// IsLookup reports whether tokens of this kind become lookup leaves.
func (k Kind) IsLookup() bool {
	return k == TokenIdentifier || k == TokenClassIdentifier
}

// IsToken reports whether k is a lexical kind.
func (k Kind) IsToken() bool {
	return k >= TokenNumber && k <= TokenAttrAssign
}

// IsUnary reports whether nodes of this kind may stand alone as a
// statement or serve as an implicit receiver.
func (k Kind) IsUnary() bool {
	return k == KindLiteral || k == KindLookup
}

// KindSet is a small ordered set of kinds, used for terminator sets.
type KindSet []Kind

func (s KindSet) Contains(k Kind) bool {
	for _, kind := range s {
		if kind == k {
			return true
		}
	}
	return false
}

// With returns a new set holding s and every kind in more that s lacks.
func (s KindSet) With(more ...Kind) KindSet {
	out := make(KindSet, len(s), len(s)+len(more))
	copy(out, s)
	for _, k := range more {
		if !out.Contains(k) {
			out = append(out, k)
		}
	}
	return out
}

// DefaultTerminators end any statement.
var DefaultTerminators = KindSet{TokenStatementEnd, TokenLineEnd, KindNone}
