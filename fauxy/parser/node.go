package parser

import "strings"

// Node is an AST node. Leaves (literal, lookup) carry the originating
// Token and no children; every other kind holds ordered children.
type Node struct {
	Kind     Kind
	Span     Span
	Children []*Node
	Token    *Token
}

// NewLeaf wraps a literal- or lookup-producing token. Other tokens yield
// nil.
func NewLeaf(tok Token) *Node {
	var kind Kind
	switch {
	case tok.Kind.IsLiteral():
		kind = KindLiteral
	case tok.Kind.IsLookup():
		kind = KindLookup
	default:
		return nil
	}
	return &Node{Kind: kind, Token: &tok, Span: tok.Span}
}

func (n *Node) AddChild(child *Node) {
	if child == nil {
		return
	}
	n.Children = append(n.Children, child)
	n.cover(child.Span)
}

// cover widens the node's span to include s.
func (n *Node) cover(s Span) {
	if !s.IsValid() {
		return
	}
	if !n.Span.IsValid() || s.Start.Before(n.Span.Start) {
		n.Span.Start = s.Start
	}
	if !n.Span.End.IsValid() || n.Span.End.Before(s.End) {
		n.Span.End = s.End
	}
}

// MarkList reclassifies a group as a list. The change is one-way: lists
// stay lists and no other kind is affected.
func (n *Node) MarkList() {
	if n.Kind == KindGroup {
		n.Kind = KindList
	}
}

func (n *Node) IsUnary() bool {
	return n.Kind.IsUnary()
}

func (n *Node) kindOf() Kind {
	return n.Kind
}

// firstLeaf returns the leftmost descendant carrying a token, or the
// deepest leftmost node when there is none.
func (n *Node) firstLeaf() *Node {
	for n.Token == nil && len(n.Children) > 0 {
		n = n.Children[0]
	}
	return n
}

func (n *Node) FirstChildOfKind(kind Kind) *Node {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenOfKind(kind Kind) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

func (n *Node) TokenLiteral() string {
	if n.Token != nil {
		return n.Token.Text()
	}
	return ""
}

// Receiver, MethodName and Arguments return the parts of a method call.
func (n *Node) Receiver() *Node   { return n.child(KindMethodCall, 0) }
func (n *Node) MethodName() *Node { return n.child(KindMethodCall, 1) }
func (n *Node) Arguments() *Node  { return n.child(KindMethodCall, 2) }

// Parameters and Body return the parts of a block. Body is nil when the
// block was written without one.
func (n *Node) Parameters() *Node { return n.child(KindBlock, 0) }
func (n *Node) Body() *Node       { return n.child(KindBlock, 1) }

func (n *Node) child(kind Kind, i int) *Node {
	if n.Kind != kind || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// NodeAt returns the innermost node whose span contains the position.
func (n *Node) NodeAt(line, column int) *Node {
	if !n.Span.Contains(line, column) {
		return nil
	}
	for _, child := range n.Children {
		if found := child.NodeAt(line, column); found != nil {
			return found
		}
	}
	return n
}

// Walk calls fn for n and its descendants in depth-first order until fn
// returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, child := range n.Children {
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}

// Shape renders kinds and leaf text without positions. Two trees with the
// same shape are isomorphic.
func (n *Node) Shape() string {
	var b strings.Builder
	n.writeShape(&b)
	return b.String()
}

func (n *Node) writeShape(b *strings.Builder) {
	b.WriteString(n.Kind.String())
	b.WriteByte('(')
	if n.Token != nil {
		b.WriteString(n.Token.Text())
	}
	for i, child := range n.Children {
		if i > 0 || n.Token != nil {
			b.WriteString(", ")
		}
		child.writeShape(b)
	}
	b.WriteByte(')')
}

func (n *Node) String() string {
	return n.stringIndent(0, false)
}

func (n *Node) StringWithPositions() string {
	return n.stringIndent(0, true)
}

func (n *Node) stringIndent(indent int, showPositions bool) string {
	var b strings.Builder
	n.writeIndent(&b, indent, showPositions)
	return b.String()
}

func (n *Node) writeIndent(b *strings.Builder, indent int, showPositions bool) {
	b.WriteString(strings.Repeat("  ", indent))
	b.WriteString(n.Kind.String())
	if showPositions && n.Span.IsValid() {
		b.WriteString(" [" + n.Span.Start.String() + "-" + n.Span.End.String() + "]")
	}
	if n.Token != nil {
		b.WriteString(" " + n.Token.Text())
	}
	b.WriteByte('\n')
	for _, child := range n.Children {
		child.writeIndent(b, indent+1, showPositions)
	}
}
