package parser

// Element is one entry of a TokenStream: a raw structural Token or a leaf
// *Node produced by Preprocess. Composite nodes built during parsing are
// Elements too, so receivers and stream entries are tested the same way.
type Element interface {
	kindOf() Kind
}

// KindOf returns the kind of e, or KindNone for a nil element.
func KindOf(e Element) Kind {
	if e == nil {
		return KindNone
	}
	return e.kindOf()
}

// none is returned for every out-of-bounds read.
var none = Token{Kind: KindNone}

// TokenStream owns a sequence of elements and a read position. No read
// ever panics: positions outside the sequence yield the none sentinel.
type TokenStream struct {
	elements []Element
	pos      int
}

func NewTokenStream(elements []Element) *TokenStream {
	return &TokenStream{elements: elements}
}

func (s *TokenStream) at(i int) Element {
	if i < 0 || i >= len(s.elements) {
		return none
	}
	return s.elements[i]
}

func (s *TokenStream) Current() Element {
	return s.at(s.pos)
}

func (s *TokenStream) Peek() Element {
	return s.at(s.pos + 1)
}

func (s *TokenStream) Prev() Element {
	return s.at(s.pos - 1)
}

// Advance moves forward by one and returns the new current element.
func (s *TokenStream) Advance() Element {
	if s.pos < len(s.elements) {
		s.pos++
	}
	return s.Current()
}

// Rollback moves back by one.
func (s *TokenStream) Rollback() {
	if s.pos > 0 {
		s.pos--
	}
}

// Complete reports whether the read position is at or past the end.
func (s *TokenStream) Complete() bool {
	return s.pos >= len(s.elements)
}

func (s *TokenStream) Pos() int {
	return s.pos
}

func (s *TokenStream) Len() int {
	return len(s.elements)
}

// Preprocess wraps every literal- and lookup-producing token in a leaf
// node. Structural tokens pass through unchanged.
func Preprocess(tokens []Token) []Element {
	elements := make([]Element, len(tokens))
	for i, tok := range tokens {
		if leaf := NewLeaf(tok); leaf != nil {
			elements[i] = leaf
		} else {
			elements[i] = tok
		}
	}
	return elements
}
