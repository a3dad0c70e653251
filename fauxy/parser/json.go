package parser

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type jsonNode struct {
	Kind     string      `json:"kind"`
	Span     *jsonSpan   `json:"span,omitempty"`
	Token    string      `json:"token,omitempty"`
	Value    any         `json:"value,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

type jsonSpan struct {
	Start jsonPosition `json:"start"`
	End   jsonPosition `json:"end"`
}

type jsonPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

type jsonToken struct {
	Kind string    `json:"kind"`
	Text string    `json:"text,omitempty"`
	Span *jsonSpan `json:"span,omitempty"`
}

func toJSONSpan(s Span) *jsonSpan {
	if !s.IsValid() {
		return nil
	}
	return &jsonSpan{
		Start: jsonPosition{Line: s.Start.Line, Column: s.Start.Column},
		End:   jsonPosition{Line: s.End.Line, Column: s.End.Column},
	}
}

func (s *jsonSpan) toSpan() Span {
	if s == nil {
		return Span{}
	}
	return Span{
		Start: Position{Line: s.Start.Line, Column: s.Start.Column},
		End:   Position{Line: s.End.Line, Column: s.End.Column},
	}
}

func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.toJSON())
}

func (n *Node) toJSON() *jsonNode {
	jn := &jsonNode{
		Kind: n.Kind.String(),
		Span: toJSONSpan(n.Span),
	}

	if n.Token != nil {
		jn.Token = n.Token.Text()
		switch v := n.Token.Value.(type) {
		case fmt.Stringer:
			jn.Value = v.String()
		case string:
			if n.Token.Kind == TokenString {
				jn.Value = v
			}
		}
	}

	if len(n.Children) > 0 {
		jn.Children = make([]*jsonNode, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = child.toJSON()
		}
	}

	return jn
}

func (t Token) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonToken{
		Kind: t.Kind.String(),
		Text: t.Text(),
		Span: toJSONSpan(t.Span),
	})
}

func (t *Token) UnmarshalJSON(data []byte) error {
	var jt jsonToken
	if err := json.Unmarshal(data, &jt); err != nil {
		return err
	}
	kind, ok := ParseKind(jt.Kind)
	if !ok || !kind.IsToken() {
		return fmt.Errorf("token kind %q: %w", jt.Kind, ErrUnknownTokenKind)
	}
	tok, err := NewToken(kind, jt.Text)
	if err != nil {
		return err
	}
	tok.Span = jt.Span.toSpan()
	*t = tok
	return nil
}
