package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownTokenKind is reported when no grammar rule accepts the
	// current element.
	ErrUnknownTokenKind = errors.New("unknown token kind")

	// ErrNestingTooDeep is reported when groups, lists or blocks nest
	// deeper than the configured limit.
	ErrNestingTooDeep = errors.New("nesting too deep")
)

// SyntaxError aborts a parse. Token is the offending element's token; it
// is nil when the element was a composite node or the end of input.
type SyntaxError struct {
	Err   error
	Kind  Kind
	Token *Token
}

func (e *SyntaxError) Error() string {
	if e.Token != nil && e.Token.Span.IsValid() {
		return fmt.Sprintf("%s: %v: %s %q", e.Token.Span.Start, e.Err, e.Kind, e.Token.Text())
	}
	return fmt.Sprintf("%v: %s", e.Err, e.Kind)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Span returns the position of the offending token, if known.
func (e *SyntaxError) Span() Span {
	if e.Token != nil {
		return e.Token.Span
	}
	return Span{}
}

func newSyntaxError(err error, e Element) *SyntaxError {
	se := &SyntaxError{Err: err, Kind: KindOf(e)}
	switch v := e.(type) {
	case Token:
		if v.Kind != KindNone {
			se.Token = &v
		}
	case *Node:
		se.Token = v.Token
	}
	return se
}
