package format

import (
	"bytes"
	"io"

	"github.com/dhamidi/fauxy/fauxy/parser"
	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/pretty"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type ASTJSONEncoder struct {
	w      io.Writer
	indent string
}

// NewASTJSONEncoder returns an encoder writing indented JSON. Use
// SetIndent("") for compact output.
func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w, indent: "  "}
}

func (e *ASTJSONEncoder) SetIndent(indent string) {
	e.indent = indent
}

func (e *ASTJSONEncoder) Encode(node *parser.Node) error {
	text, err := e.MarshalText(node)
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *ASTJSONEncoder) MarshalText(node *parser.Node) ([]byte, error) {
	data, err := json.Marshal(node)
	if err != nil || e.indent == "" {
		return data, err
	}
	opts := *pretty.DefaultOptions
	opts.Indent = e.indent
	return bytes.TrimRight(pretty.PrettyOptions(data, &opts), "\n"), nil
}
