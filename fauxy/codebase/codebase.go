// Package codebase keeps the lexed and parsed state of a set of Fauxy
// source files and serves it over the Language Server Protocol.
package codebase

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/dhamidi/fauxy/fauxy/lexer"
	"github.com/dhamidi/fauxy/fauxy/parser"
)

// SourceExt is the extension of files picked up by ScanAll and the
// file watcher.
const SourceExt = ".fx"

type Codebase struct {
	mu      sync.RWMutex
	rootDir string
	files   map[string]*FileInfo
	opts    []parser.Option
}

// FileInfo is an immutable snapshot of one file. Err holds the lexer or
// parser error, in which case AST is nil.
type FileInfo struct {
	Path    string
	Content []byte
	Tokens  []parser.Token
	AST     *parser.Node
	Err     error
	Open    bool
}

func New(rootDir string, opts ...parser.Option) *Codebase {
	return &Codebase{
		rootDir: rootDir,
		files:   make(map[string]*FileInfo),
		opts:    opts,
	}
}

func (c *Codebase) RootDir() string {
	return c.rootDir
}

func (c *Codebase) ScanAll() error {
	return filepath.Walk(c.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			return nil
		}
		if filepath.Ext(path) == SourceExt {
			c.ScanFile(path)
		}
		return nil
	})
}

// ScanFile reads path from disk unless an editor holds it open.
func (c *Codebase) ScanFile(path string) error {
	if c.IsOpen(path) {
		return nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	c.storeFromDisk(c.analyze(path, content))
	return nil
}

// storeFromDisk stores info unless the file was opened in an editor
// while it was being read.
func (c *Codebase) storeFromDisk(info *FileInfo) *FileInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	if old := c.files[info.Path]; old != nil && old.Open {
		return old
	}
	c.files[info.Path] = info
	return info
}

// UpdateFile lexes and parses content and stores the result under path.
func (c *Codebase) UpdateFile(path string, content []byte) *FileInfo {
	info := c.analyze(path, content)

	c.mu.Lock()
	defer c.mu.Unlock()
	if old := c.files[path]; old != nil {
		info.Open = old.Open
	}
	c.files[path] = info
	return info
}

func (c *Codebase) analyze(path string, content []byte) *FileInfo {
	info := &FileInfo{Path: path, Content: content}

	info.Tokens, info.Err = lexer.Lex(content, lexer.WithFile(filepath.Base(path)))
	if info.Err != nil {
		return info
	}
	info.AST, info.Err = parser.Parse(info.Tokens, c.opts...)
	return info
}

// OpenFile records content sent by an editor. Open files are not
// rescanned from disk until CloseFile.
func (c *Codebase) OpenFile(path string, content []byte) *FileInfo {
	info := c.analyze(path, content)
	info.Open = true

	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[path] = info
	return info
}

// CloseFile drops the editor's copy of path and falls back to the file
// on disk, if any.
func (c *Codebase) CloseFile(path string) {
	c.mu.Lock()
	if f := c.files[path]; f != nil {
		closed := *f
		closed.Open = false
		c.files[path] = &closed
	}
	c.mu.Unlock()

	if err := c.ScanFile(path); errors.Is(err, os.ErrNotExist) {
		c.RemoveFile(path)
	}
}

func (c *Codebase) IsOpen(path string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	f := c.files[path]
	return f != nil && f.Open
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
}

func (c *Codebase) GetFile(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// Paths returns the known file paths in sorted order.
func (c *Codebase) Paths() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	paths := make([]string, 0, len(c.files))
	for p := range c.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// NodeAt returns the innermost node of path covering the 1-based line
// and column, or nil.
func (c *Codebase) NodeAt(path string, line, column int) *parser.Node {
	f := c.GetFile(path)
	if f == nil || f.AST == nil {
		return nil
	}
	return f.AST.NodeAt(line, column)
}

// ErrorSpan locates f.Err in the source. Errors at the end of input are
// placed after the last token.
func (f *FileInfo) ErrorSpan() parser.Span {
	var lexErr *lexer.Error
	if errors.As(f.Err, &lexErr) {
		end := lexErr.Pos
		end.Column++
		return parser.Span{Start: lexErr.Pos, End: end}
	}

	var synErr *parser.SyntaxError
	if errors.As(f.Err, &synErr) && synErr.Span().IsValid() {
		return synErr.Span()
	}

	if n := len(f.Tokens); n > 0 {
		end := f.Tokens[n-1].Span.End
		return parser.Span{Start: end, End: end}
	}
	start := parser.Position{File: filepath.Base(f.Path), Line: 1, Column: 1}
	return parser.Span{Start: start, End: start}
}
