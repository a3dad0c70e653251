package codebase

import (
	"bytes"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/fauxy/fauxy/parser"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "fauxy"

var log = commonlog.GetLogger("fauxy.lsp")

type LSPServer struct {
	codebase *Codebase
	watcher  *FileWatcher
	handler  protocol.Handler
	server   *server.Server
	version  string
}

func NewLSPServer(version string) *LSPServer {
	ls := &LSPServer{
		version: version,
	}

	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidClose:  ls.textDocumentDidClose,
		TextDocumentDidSave:   ls.textDocumentDidSave,
		TextDocumentHover:     ls.textDocumentHover,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}
	log.Infof("initialize: root %s", rootDir)

	ls.codebase = New(rootDir)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	ls.watcher = NewFileWatcher(ls.codebase, time.Second)
	ls.watcher.Start()
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	if ls.watcher != nil {
		ls.watcher.Stop()
	}
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	info := ls.codebase.OpenFile(path, []byte(params.TextDocument.Text))
	ls.publishDiagnostics(ctx, params.TextDocument.URI, info)
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			info := ls.codebase.UpdateFile(path, []byte(textChange.Text))
			ls.publishDiagnostics(ctx, params.TextDocument.URI, info)
		}
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.codebase.CloseFile(path)
	ls.publishDiagnostics(ctx, params.TextDocument.URI, nil)
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	var info *FileInfo
	if params.Text != nil {
		info = ls.codebase.UpdateFile(path, []byte(*params.Text))
	} else {
		info = ls.codebase.GetFile(path)
	}
	ls.publishDiagnostics(ctx, params.TextDocument.URI, info)
	return nil
}

func (ls *LSPServer) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}

	info := ls.codebase.GetFile(path)
	if info == nil {
		return nil, nil
	}
	line := int(params.Position.Line) + 1
	col := byteColumn(info.Content, line, params.Position.Character)

	node := ls.codebase.NodeAt(path, line, col)
	if node == nil {
		return nil, nil
	}

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: hoverText(node.Kind.String(), node.TokenLiteral()),
		},
		Range: toRange(info.Content, node.Span),
	}, nil
}

func hoverText(kind, literal string) string {
	if literal == "" {
		return fmt.Sprintf("**%s**", kind)
	}
	return fmt.Sprintf("**%s** `%s`", kind, literal)
}

// publishDiagnostics reports info's error, or clears the diagnostics of
// uri when there is none.
func (ls *LSPServer) publishDiagnostics(ctx *glsp.Context, uri protocol.DocumentUri, info *FileInfo) {
	diagnostics := []protocol.Diagnostic{}
	if info != nil && info.Err != nil {
		log.Debugf("%s: %s", uri, info.Err)
		span := info.ErrorSpan()
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    *toRange(info.Content, span),
			Severity: severityPtr(protocol.DiagnosticSeverityError),
			Source:   strPtr(lsName),
			Message:  info.Err.Error(),
		})
	}
	ctx.Notify(string(protocol.ServerTextDocumentPublishDiagnostics), protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

// Lexer columns are 1-based byte offsets into a line; protocol
// characters are 0-based UTF-16 offsets.

// toRange converts span to a protocol range over content.
func toRange(content []byte, span parser.Span) *protocol.Range {
	return &protocol.Range{
		Start: toPosition(content, span.Start),
		End:   toPosition(content, span.End),
	}
}

func toPosition(content []byte, pos parser.Position) protocol.Position {
	return protocol.Position{
		Line:      toUInteger(pos.Line),
		Character: utf16Character(content, pos.Line, pos.Column),
	}
}

// utf16Character returns the UTF-16 offset of the 1-based byte column on
// line. Columns past the end of the line count one unit per byte.
func utf16Character(content []byte, line, column int) protocol.UInteger {
	text := lineAt(content, line)
	target := column - 1
	var units protocol.UInteger
	i := 0
	for i < len(text) && i < target {
		r, size := utf8.DecodeRune(text[i:])
		units += utf16Units(r)
		i += size
	}
	if i < target {
		units += protocol.UInteger(target - i)
	}
	return units
}

// byteColumn is the inverse of utf16Character.
func byteColumn(content []byte, line int, char protocol.UInteger) int {
	text := lineAt(content, line)
	var units protocol.UInteger
	i := 0
	for i < len(text) && units < char {
		r, size := utf8.DecodeRune(text[i:])
		units += utf16Units(r)
		i += size
	}
	if units < char {
		i += int(char - units)
	}
	return i + 1
}

func utf16Units(r rune) protocol.UInteger {
	if n := utf16.RuneLen(r); n > 0 {
		return protocol.UInteger(n)
	}
	return 1
}

// lineAt returns the 1-based line of content without its line end.
func lineAt(content []byte, line int) []byte {
	for ; line > 1; line-- {
		nl := bytes.IndexByte(content, '\n')
		if nl < 0 {
			return nil
		}
		content = content[nl+1:]
	}
	if nl := bytes.IndexByte(content, '\n'); nl >= 0 {
		content = content[:nl]
	}
	return content
}

func toUInteger(n int) protocol.UInteger {
	if n < 1 {
		return 0
	}
	return protocol.UInteger(n - 1)
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func strPtr(s string) *string {
	return &s
}

func severityPtr(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
