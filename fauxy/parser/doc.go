// Package parser turns a sequence of Fauxy tokens into an abstract syntax
// tree.
//
// # Overview
//
// Fauxy is expression oriented: every statement is a value, a method call,
// a parenthesized group or list, a block, or an assignment. Whitespace is
// the call operator, so
//
//	0 ++
//	0.++
//
// both parse to a method call with receiver 0 and method name ++.
//
// # Pipeline
//
//	┌─────────────┐     ┌──────────────┐     ┌─────────────┐
//	│   Tokens    │────▶│  Preprocess  │────▶│   Parser    │
//	│  ([]Token)  │     │ (leaf nodes) │     │ (statements)│
//	└─────────────┘     └──────────────┘     └─────────────┘
//
// Preprocess wraps number and string tokens in literal nodes and
// identifiers in lookup nodes. Structural tokens are left alone. The
// parser then walks a TokenStream whose elements are either raw tokens or
// nodes; KindOf answers for both.
//
// # Tree shape
//
//	method_call  receiver, lookup, list
//	list         zero or more elements (a comma was seen, or call/block arguments)
//	group        one parenthesized statement, no comma
//	block        list of parameters, optional statements body
//	statements   program or block body
//
// A block written directly after a call is appended to that call's
// argument list:
//
//	items each -> (item) { item print }
//
// # Errors
//
// Parsing stops at the first element no rule accepts and reports a
// *SyntaxError wrapping ErrUnknownTokenKind. There is no recovery and no
// partial tree.
package parser
