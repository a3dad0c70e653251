package format

import (
	"io"

	"github.com/dhamidi/fauxy/fauxy/parser"
	"github.com/xlab/treeprint"
)

// TreeEncoder draws a node and its descendants with box-drawing
// characters, one node per line.
type TreeEncoder struct {
	w         io.Writer
	positions bool
}

func NewTreeEncoder(w io.Writer) *TreeEncoder {
	return &TreeEncoder{w: w}
}

// ShowPositions adds each node's span to its label.
func (e *TreeEncoder) ShowPositions(show bool) {
	e.positions = show
}

func (e *TreeEncoder) Encode(node *parser.Node) error {
	text, err := e.MarshalText(node)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TreeEncoder) MarshalText(node *parser.Node) ([]byte, error) {
	tree := treeprint.NewWithRoot(e.label(node))
	e.addChildren(tree, node)
	return tree.Bytes(), nil
}

func (e *TreeEncoder) addChildren(tree treeprint.Tree, node *parser.Node) {
	for _, child := range node.Children {
		if len(child.Children) == 0 {
			tree.AddNode(e.label(child))
			continue
		}
		e.addChildren(tree.AddBranch(e.label(child)), child)
	}
}

func (e *TreeEncoder) label(n *parser.Node) string {
	label := n.Kind.String()
	if n.Token != nil {
		label += " " + n.Token.Text()
	}
	if e.positions && n.Span.IsValid() {
		label += " [" + n.Span.Start.String() + "-" + n.Span.End.String() + "]"
	}
	return label
}
