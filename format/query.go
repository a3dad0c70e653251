package format

import (
	"fmt"

	"github.com/dhamidi/fauxy/fauxy/parser"
	"github.com/tidwall/gjson"
)

// Query evaluates a gjson path against the JSON form of node, for example
// `children.#.kind` or `children.0.children.1.token`.
func Query(node *parser.Node, path string) (gjson.Result, error) {
	data, err := json.Marshal(node)
	if err != nil {
		return gjson.Result{}, err
	}
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, fmt.Errorf("query %q: invalid tree JSON", path)
	}
	return gjson.GetBytes(data, path), nil
}
