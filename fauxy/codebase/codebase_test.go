package codebase

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dhamidi/fauxy/fauxy/lexer"
	"github.com/dhamidi/fauxy/fauxy/parser"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestUpdateFile(t *testing.T) {
	c := New(t.TempDir())
	info := c.UpdateFile("main.fx", []byte("items each -> (x) { x print }\n"))

	require.NoError(t, info.Err)
	require.NotNil(t, info.AST)
	require.NotEmpty(t, info.Tokens)
	require.Same(t, info, c.GetFile("main.fx"))
	require.Equal(t, []string{"main.fx"}, c.Paths())
}

func TestUpdateFileRecordsErrors(t *testing.T) {
	c := New(t.TempDir())

	lexFailure := c.UpdateFile("lex.fx", []byte("a @"))
	var lexErr *lexer.Error
	require.True(t, errors.As(lexFailure.Err, &lexErr))
	require.Nil(t, lexFailure.AST)

	parseFailure := c.UpdateFile("parse.fx", []byte("a\n)"))
	require.ErrorIs(t, parseFailure.Err, parser.ErrUnknownTokenKind)
	require.Nil(t, parseFailure.AST)
}

func TestParserOptionsApply(t *testing.T) {
	c := New(t.TempDir(), parser.WithMaxDepth(2))
	info := c.UpdateFile("deep.fx", []byte("((((1))))"))
	require.ErrorIs(t, info.Err, parser.ErrNestingTooDeep)
}

func TestScanAll(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.fx", "1 ++")
	writeFile(t, dir, "notes.txt", "not fauxy")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "lib"), 0o755))
	b := writeFile(t, filepath.Join(dir, "lib"), "b.fx", "x = 2")

	c := New(dir)
	require.NoError(t, c.ScanAll())
	require.Equal(t, []string{a, b}, c.Paths())
}

func TestOpenFileShadowsDisk(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.fx", "on_disk")

	c := New(dir)
	c.OpenFile(path, []byte("in_editor"))
	require.True(t, c.IsOpen(path))

	require.NoError(t, c.ScanFile(path))
	require.Equal(t, "in_editor", string(c.GetFile(path).Content))

	c.UpdateFile(path, []byte("edited"))
	require.True(t, c.IsOpen(path))

	c.CloseFile(path)
	require.False(t, c.IsOpen(path))
	require.Equal(t, "on_disk", string(c.GetFile(path).Content))
}

func TestDiskReadDoesNotReplaceEditorCopy(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.fx", "on_disk")
	c := New(dir)

	// the editor opens the file between the disk read and the store
	fromDisk := c.analyze(path, []byte("on_disk"))
	c.OpenFile(path, []byte("in_editor"))

	got := c.storeFromDisk(fromDisk)
	require.Equal(t, "in_editor", string(got.Content))
	require.Equal(t, "in_editor", string(c.GetFile(path).Content))
	require.True(t, c.IsOpen(path))

	c.CloseFile(path)
	require.Equal(t, "on_disk", string(c.GetFile(path).Content))
}

func TestCloseUnsavedFileRemovesIt(t *testing.T) {
	c := New(t.TempDir())
	c.OpenFile("/nowhere/new.fx", []byte("x"))
	c.CloseFile("/nowhere/new.fx")
	require.Nil(t, c.GetFile("/nowhere/new.fx"))
}

func TestNodeAt(t *testing.T) {
	c := New(t.TempDir())
	c.UpdateFile("a.fx", []byte("items each\nx = 5"))

	node := c.NodeAt("a.fx", 1, 8)
	require.NotNil(t, node)
	require.Equal(t, parser.KindLookup, node.Kind)
	require.Equal(t, "each", node.TokenLiteral())

	node = c.NodeAt("a.fx", 2, 5)
	require.NotNil(t, node)
	require.Equal(t, parser.KindLiteral, node.Kind)

	require.Nil(t, c.NodeAt("missing.fx", 1, 1))
}

func TestErrorSpan(t *testing.T) {
	c := New(t.TempDir())

	lexFailure := c.UpdateFile("a.fx", []byte("x\n  @"))
	span := lexFailure.ErrorSpan()
	require.Equal(t, 2, span.Start.Line)
	require.Equal(t, 3, span.Start.Column)
	require.Equal(t, 4, span.End.Column)

	parseFailure := c.UpdateFile("b.fx", []byte("a\n  }"))
	span = parseFailure.ErrorSpan()
	require.Equal(t, 2, span.Start.Line)
	require.Equal(t, 3, span.Start.Column)
}

func TestWatcherScan(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.fx", "one")
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".hidden"), 0o755))
	writeFile(t, filepath.Join(dir, ".hidden"), "skip.fx", "skip")

	c := New(dir)
	w := NewFileWatcher(c, 0)
	w.poll()
	require.Equal(t, []string{path}, c.Paths())

	require.NoError(t, os.Remove(path))
	w.poll()
	require.Empty(t, c.Paths())
}

func TestWatcherKeepsOpenFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.fx", "one")

	c := New(dir)
	w := NewFileWatcher(c, 0)
	w.poll()
	c.OpenFile(path, []byte("two"))

	require.NoError(t, os.Remove(path))
	w.poll()
	require.Equal(t, "two", string(c.GetFile(path).Content))
}

func TestWatcherChanges(t *testing.T) {
	w := NewFileWatcher(New(t.TempDir()), 0)
	t0 := time.Unix(100, 0)
	t1 := t0.Add(time.Second)

	events := w.changes(map[string]time.Time{"b.fx": t0, "a.fx": t0})
	require.Equal(t, []fileEvent{{path: "a.fx"}, {path: "b.fx"}}, events)

	require.Empty(t, w.changes(map[string]time.Time{"b.fx": t0, "a.fx": t0}))

	events = w.changes(map[string]time.Time{"b.fx": t1})
	require.Equal(t, []fileEvent{{path: "a.fx", removed: true}, {path: "b.fx"}}, events)
}

func TestWatcherLeavesOpenFileOnDiskChange(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.fx", "one")

	c := New(dir)
	w := NewFileWatcher(c, 0)
	w.poll()
	c.OpenFile(path, []byte("two"))

	w.apply(fileEvent{path: path})
	require.Equal(t, "two", string(c.GetFile(path).Content))
}

func TestWatcherStartStop(t *testing.T) {
	w := NewFileWatcher(New(t.TempDir()), 0)
	w.Start()
	w.Stop()
	w.Stop()
}
