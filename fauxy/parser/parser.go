package parser

type Option func(*Parser)

// WithMaxDepth limits how deeply statements may nest inside groups, lists,
// blocks and assignments.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		p.maxDepth = depth
	}
}

// WithLocalAssign replaces the parser used for `name = value`.
func WithLocalAssign(sp SubParser) Option {
	return func(p *Parser) {
		p.localAssign = sp
	}
}

// WithAttrAssign replaces the parser used for `name: value`.
func WithAttrAssign(sp SubParser) Option {
	return func(p *Parser) {
		p.attrAssign = sp
	}
}

// SubParser parses a construct that starts at the current element. It
// consumes the construct and returns with the stream positioned on the
// element that follows it, which is one of terminators.
type SubParser func(p *Parser, terminators KindSet) (*Node, error)

const defaultMaxDepth = 512

var (
	elementTerminators = KindSet{TokenComma, TokenClosingParen}.With(DefaultTerminators...)
	bodyTerminators    = KindSet{TokenBlockEnd, KindNone}
)

type Parser struct {
	tokens      []Token
	stream      *TokenStream
	maxDepth    int
	depth       int
	localAssign SubParser
	attrAssign  SubParser
}

func New(tokens []Token, opts ...Option) *Parser {
	p := &Parser{
		tokens:      tokens,
		maxDepth:    defaultMaxDepth,
		localAssign: ParseLocalAssign,
		attrAssign:  ParseAttrAssign,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse is shorthand for New(tokens, opts...).Run().
func Parse(tokens []Token, opts ...Option) (*Node, error) {
	return New(tokens, opts...).Run()
}

// Stream returns the stream of the parse in progress.
func (p *Parser) Stream() *TokenStream {
	return p.stream
}

// Run parses every statement in the token sequence and returns them under
// a statements node, in source order.
func (p *Parser) Run() (*Node, error) {
	p.stream = NewTokenStream(Preprocess(p.tokens))
	p.depth = 0
	return p.parseStatements(KindSet{KindNone})
}

func (p *Parser) kind() Kind {
	return KindOf(p.stream.Current())
}

func (p *Parser) enter() error {
	p.depth++
	if p.maxDepth > 0 && p.depth > p.maxDepth {
		return newSyntaxError(ErrNestingTooDeep, p.stream.Current())
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

func (p *Parser) parseStatements(terminators KindSet) (*Node, error) {
	statements := &Node{Kind: KindStatements}
	inner := terminators.With(DefaultTerminators...)
	for !terminators.Contains(p.kind()) {
		stmt, err := p.ParseStatement(inner)
		if err != nil {
			return nil, err
		}
		statements.AddChild(stmt)
	}
	return statements, nil
}

// ParseStatement parses one statement ending at any of terminators or a
// default terminator. It returns nil for an empty statement.
func (p *Parser) ParseStatement(terminators KindSet) (*Node, error) {
	terminators = terminators.With(DefaultTerminators...)

	if p.kind() == KindNone {
		return nil, nil
	}
	if DefaultTerminators.Contains(p.kind()) {
		p.stream.Advance()
		if terminators.Contains(p.kind()) {
			return nil, nil
		}
	}

	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	current := p.stream.Current()
	switch KindOf(current) {
	case KindLiteral, KindLookup:
		return p.parseUnary(terminators, current.(*Node))
	case TokenOpeningParen:
		group, err := p.parseGroupOrList()
		if err != nil {
			return nil, err
		}
		p.stream.Advance()
		return p.concludeOrChain(terminators, group)
	case TokenBlockDeclaration:
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return p.concludeOrChain(terminators, block)
	default:
		return nil, newSyntaxError(ErrUnknownTokenKind, current)
	}
}

func (p *Parser) parseUnary(terminators KindSet, leaf *Node) (*Node, error) {
	next := KindOf(p.stream.Peek())
	switch {
	case terminators.Contains(next):
		p.stream.Advance()
		return leaf, nil
	case next == TokenDotAccessor:
		return p.parseMethodCall(terminators, leaf)
	case next == TokenLocalAssign:
		return p.localAssign(p, terminators)
	case leaf.Kind == KindLiteral:
		// a literal can never begin a receiver-less construct
		return p.parseMethodCall(terminators, leaf)
	case next == TokenAttrAssign:
		return p.attrAssign(p, terminators)
	default:
		return p.parseMethodCall(terminators, leaf)
	}
}

// parseMethodCall parses a call whose receiver is the current element.
func (p *Parser) parseMethodCall(terminators KindSet, receiver *Node) (*Node, error) {
	p.stream.Advance()
	call, err := p.buildMethodCall(receiver)
	if err != nil {
		return nil, err
	}
	return p.concludeOrChain(terminators, call)
}

// buildMethodCall parses `[.] name [(args)] [block]` for an already
// consumed receiver and leaves the stream on the element after the call.
func (p *Parser) buildMethodCall(receiver *Node) (*Node, error) {
	call := &Node{Kind: KindMethodCall}
	call.AddChild(receiver)

	if p.kind() == TokenDotAccessor {
		p.stream.Advance()
	}

	name, ok := p.stream.Current().(*Node)
	if !ok || name.Kind != KindLookup {
		return nil, newSyntaxError(ErrUnknownTokenKind, p.stream.Current())
	}
	call.AddChild(name)

	args := &Node{Kind: KindList}
	if KindOf(p.stream.Peek()) == TokenOpeningParen {
		p.stream.Advance()
		list, err := p.parseGroupOrList()
		if err != nil {
			return nil, err
		}
		list.MarkList()
		args = list
	}

	if KindOf(p.stream.Peek()) == TokenBlockDeclaration {
		p.stream.Advance()
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		args.AddChild(block)
	} else {
		p.stream.Advance()
	}

	call.AddChild(args)
	return call, nil
}

// concludeOrChain returns receiver once the stream reaches a terminator.
// Until then each further name extends the chain, so `a.b.c` and `a b c`
// nest to the left.
func (p *Parser) concludeOrChain(terminators KindSet, receiver *Node) (*Node, error) {
	for !terminators.Contains(p.kind()) {
		call, err := p.buildMethodCall(receiver)
		if err != nil {
			return nil, err
		}
		receiver = call
	}
	return receiver, nil
}

// parseGroupOrList parses `( ... )` and leaves the stream on the closing
// paren. The node is a group until a comma is seen. Line ends only
// separate an element from a following comma or paren: a group holds at
// most one statement, and list elements are always comma-separated.
func (p *Parser) parseGroupOrList() (*Node, error) {
	node := &Node{Kind: KindGroup}
	node.cover(spanOf(p.stream.Current()))
	p.stream.Advance()

	separated := true
	for k := p.kind(); k != TokenClosingParen && k != KindNone; k = p.kind() {
		if k == TokenComma {
			node.MarkList()
			separated = true
			p.stream.Advance()
			continue
		}
		elem, err := p.ParseStatement(elementTerminators)
		if err != nil {
			return nil, err
		}
		if elem == nil {
			continue
		}
		if !separated {
			return nil, newSyntaxError(ErrUnknownTokenKind, elem.firstLeaf())
		}
		separated = false
		node.AddChild(elem)
	}

	if p.kind() != TokenClosingParen {
		p.stream.Rollback()
	} else {
		node.cover(spanOf(p.stream.Current()))
	}
	return node, nil
}

// parseBlock parses `-> [(params)] [{ body }]` and leaves the stream on
// the element after the block.
func (p *Parser) parseBlock() (*Node, error) {
	block := &Node{Kind: KindBlock}
	block.cover(spanOf(p.stream.Current()))
	p.stream.Advance()

	params := &Node{Kind: KindList}
	if p.kind() == TokenOpeningParen {
		list, err := p.parseGroupOrList()
		if err != nil {
			return nil, err
		}
		list.MarkList()
		params = list
		p.stream.Advance()
	}
	block.AddChild(params)

	if p.kind() == TokenBlockStart {
		open := spanOf(p.stream.Current())
		p.stream.Advance()
		body, err := p.parseStatements(bodyTerminators)
		if err != nil {
			return nil, err
		}
		body.cover(open)
		body.cover(spanOf(p.stream.Current()))
		p.stream.Advance()
		block.AddChild(body)
	}
	return block, nil
}

func spanOf(e Element) Span {
	switch v := e.(type) {
	case Token:
		return v.Span
	case *Node:
		return v.Span
	}
	return Span{}
}
