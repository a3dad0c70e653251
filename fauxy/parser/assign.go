package parser

// ParseLocalAssign parses `name = value` into a local_assignment node.
func ParseLocalAssign(p *Parser, terminators KindSet) (*Node, error) {
	return parseAssignment(p, terminators, KindLocalAssign)
}

// ParseAttrAssign parses `name: value` into an attr_assignment node.
func ParseAttrAssign(p *Parser, terminators KindSet) (*Node, error) {
	return parseAssignment(p, terminators, KindAttrAssign)
}

// parseAssignment expects the target on the current element and the
// operator right after it. The value is absent when the operator is
// directly followed by a terminator.
func parseAssignment(p *Parser, terminators KindSet, kind Kind) (*Node, error) {
	s := p.Stream()
	target, ok := s.Current().(*Node)
	if !ok || target.Kind != KindLookup {
		return nil, newSyntaxError(ErrUnknownTokenKind, s.Current())
	}

	node := &Node{Kind: kind}
	node.AddChild(target)
	node.cover(spanOf(s.Advance()))
	s.Advance()

	if terminators.Contains(KindOf(s.Current())) {
		return node, nil
	}
	value, err := p.ParseStatement(terminators)
	if err != nil {
		return nil, err
	}
	node.AddChild(value)
	return node, nil
}
