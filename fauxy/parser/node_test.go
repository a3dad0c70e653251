package parser

import (
	"testing"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindNone, "none"},
		{TokenNumber, "number"},
		{TokenClassIdentifier, "class_identifier"},
		{TokenBlockDeclaration, "block_declaration"},
		{KindLiteral, "literal"},
		{KindMethodCall, "method_call"},
		{KindStatements, "statements"},
		{KindLocalAssign, "local_assignment"},
		{Kind(9999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
			}
		})
	}
}

func TestParseKindRoundTrip(t *testing.T) {
	for k, name := range kindNames {
		got, ok := ParseKind(name)
		if !ok || got != k {
			t.Errorf("ParseKind(%q) = %v, %v; want %v", name, got, ok, k)
		}
	}
	if _, ok := ParseKind("bogus"); ok {
		t.Error("ParseKind accepted an unknown name")
	}
}

func TestKindSetWith(t *testing.T) {
	base := KindSet{TokenComma}
	merged := base.With(TokenComma, TokenLineEnd)
	if len(base) != 1 {
		t.Errorf("With modified the receiver: %v", base)
	}
	if len(merged) != 2 || !merged.Contains(TokenComma) || !merged.Contains(TokenLineEnd) {
		t.Errorf("merged = %v", merged)
	}
}

func TestNewLeaf(t *testing.T) {
	if n := NewLeaf(Number(3)); n == nil || n.Kind != KindLiteral {
		t.Errorf("number leaf = %v", n)
	}
	if n := NewLeaf(ClassIdent("A")); n == nil || n.Kind != KindLookup {
		t.Errorf("class identifier leaf = %v", n)
	}
	if n := NewLeaf(Punct(TokenComma)); n != nil {
		t.Errorf("structural token produced a leaf: %v", n)
	}
}

func TestNodeAddChild(t *testing.T) {
	parent := &Node{Kind: KindStatements}
	child1 := NewLeaf(Ident("a"))
	child2 := NewLeaf(Ident("b"))

	parent.AddChild(child1)
	parent.AddChild(child2)
	parent.AddChild(nil)

	if len(parent.Children) != 2 {
		t.Errorf("Expected 2 children, got %d", len(parent.Children))
	}
	if parent.Children[0] != child1 {
		t.Error("First child mismatch")
	}
	if parent.Children[1] != child2 {
		t.Error("Second child mismatch")
	}
}

func TestNodeAddChildWidensSpan(t *testing.T) {
	a := Ident("a")
	a.Span = Span{Start: Position{Line: 1, Column: 1}, End: Position{Line: 1, Column: 2}}
	b := Ident("b")
	b.Span = Span{Start: Position{Line: 2, Column: 3}, End: Position{Line: 2, Column: 4}}

	parent := &Node{Kind: KindStatements}
	parent.AddChild(NewLeaf(b))
	parent.AddChild(NewLeaf(a))

	if parent.Span.Start.Line != 1 || parent.Span.Start.Column != 1 {
		t.Errorf("start = %v", parent.Span.Start)
	}
	if parent.Span.End.Line != 2 || parent.Span.End.Column != 4 {
		t.Errorf("end = %v", parent.Span.End)
	}
}

func TestMarkListIsMonotonic(t *testing.T) {
	n := &Node{Kind: KindGroup}
	n.MarkList()
	if n.Kind != KindList {
		t.Fatalf("kind = %v, want list", n.Kind)
	}
	n.MarkList()
	if n.Kind != KindList {
		t.Errorf("kind = %v after second MarkList", n.Kind)
	}

	block := &Node{Kind: KindBlock}
	block.MarkList()
	if block.Kind != KindBlock {
		t.Errorf("MarkList changed a block into %v", block.Kind)
	}
}

func TestNodeAccessors(t *testing.T) {
	recv := NewLeaf(Number(0))
	name := NewLeaf(Ident("++"))
	args := &Node{Kind: KindList}
	call := &Node{Kind: KindMethodCall, Children: []*Node{recv, name, args}}

	if call.Receiver() != recv || call.MethodName() != name || call.Arguments() != args {
		t.Error("method call accessors returned the wrong children")
	}
	if call.Body() != nil || call.Parameters() != nil {
		t.Error("block accessors should be nil on a method call")
	}

	block := &Node{Kind: KindBlock, Children: []*Node{{Kind: KindList}}}
	if block.Parameters() == nil {
		t.Error("expected parameters")
	}
	if block.Body() != nil {
		t.Error("expected no body")
	}
}

func TestNodeFirstChildOfKind(t *testing.T) {
	list := &Node{Kind: KindList}
	body := &Node{Kind: KindStatements}
	block := &Node{Kind: KindBlock, Children: []*Node{list, body}}

	if got := block.FirstChildOfKind(KindStatements); got != body {
		t.Errorf("FirstChildOfKind(statements) = %v", got)
	}
	if got := block.FirstChildOfKind(KindGroup); got != nil {
		t.Errorf("FirstChildOfKind(group) = %v, want nil", got)
	}
	if got := block.ChildrenOfKind(KindList); len(got) != 1 {
		t.Errorf("ChildrenOfKind(list) = %v", got)
	}
}

func TestNodeShapeAndString(t *testing.T) {
	call := &Node{Kind: KindMethodCall}
	call.AddChild(NewLeaf(Number(0)))
	call.AddChild(NewLeaf(Ident("++")))
	call.AddChild(&Node{Kind: KindList})

	if got, want := call.Shape(), "method_call(literal(0), lookup(++), list())"; got != want {
		t.Errorf("Shape() = %q, want %q", got, want)
	}
	want := "method_call\n  literal 0\n  lookup ++\n  list\n"
	if got := call.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestNodeAt(t *testing.T) {
	leaf := func(tok Token, line, col int) *Node {
		tok.Span = Span{
			Start: Position{Line: line, Column: col},
			End:   Position{Line: line, Column: col + len(tok.Literal)},
		}
		return NewLeaf(tok)
	}
	call := &Node{Kind: KindMethodCall}
	call.AddChild(leaf(Ident("foo"), 1, 1))
	call.AddChild(leaf(Ident("bar"), 1, 5))
	call.AddChild(&Node{Kind: KindList})

	if got := call.NodeAt(1, 6); got == nil || got.TokenLiteral() != "bar" {
		t.Errorf("NodeAt(1, 6) = %v", got)
	}
	if got := call.NodeAt(1, 4); got != call {
		t.Errorf("NodeAt(1, 4) = %v, want the call", got)
	}
	if got := call.NodeAt(2, 1); got != nil {
		t.Errorf("NodeAt(2, 1) = %v, want nil", got)
	}
}
