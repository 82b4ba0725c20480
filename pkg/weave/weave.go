// Package weave is the public API for non-destructive string editing
// with Source Map v3 generation.
//
// This package is intended for programmatic use. For CLI usage, see
// cmd/weave.
package weave

import (
	"github.com/weavetext/weave/internal/editor"
	"github.com/weavetext/weave/internal/sourcemap"
	"github.com/weavetext/weave/internal/stack"
)

// Options configures Source Map v3 generation.
type Options struct {
	// File is stored as "file" in the output map.
	File string

	// SourceRoot is stored as "sourceRoot" in the output map.
	SourceRoot string

	// Source names the single entry of the output map's "sources" array.
	Source string

	// IncludeContent embeds the original source text in "sourcesContent".
	IncludeContent bool

	// Hires is reserved for finer-than-per-run mappings; currently unused.
	Hires bool
}

func (o Options) toInternal() sourcemap.Options {
	return sourcemap.Options{
		File:           o.File,
		SourceRoot:     o.SourceRoot,
		Source:         o.Source,
		IncludeContent: o.IncludeContent,
		Hires:          o.Hires,
	}
}

// Editor is a non-destructive editor over an immutable source text.
type Editor interface {
	AppendLeft(index int, content []byte) error
	AppendRight(index int, content []byte) error
	Overwrite(start, end int, content []byte) error
	ToString() []byte
	GenerateMap(opts Options) *sourcemap.SourceMap
}

// StackedEditor is a layered editor: edits apply to the current layer,
// Commit freezes it and starts a new one, Rollback discards the current
// layer and returns to editing the previous one.
type StackedEditor interface {
	Editor
	Commit()
	Rollback() error
}

// editorWrapper adapts *editor.Editor's GenerateMap (which never fails)
// to the Editor interface.
type editorWrapper struct {
	*editor.Editor
}

func (w editorWrapper) GenerateMap(opts Options) *sourcemap.SourceMap {
	return w.Editor.GenerateMap(opts.toInternal())
}

// stackWrapper adapts *stack.StackedEditor's GenerateMap (which can fail
// only if the underlying merge encounters a malformed transform map,
// impossible for maps this package itself generated) to the Editor
// interface, panicking on that unreachable error rather than widening
// every caller's signature for it.
type stackWrapper struct {
	*stack.StackedEditor
}

func (w stackWrapper) AppendLeft(index int, content []byte) error {
	return w.Current().AppendLeft(index, content)
}

func (w stackWrapper) AppendRight(index int, content []byte) error {
	return w.Current().AppendRight(index, content)
}

func (w stackWrapper) Overwrite(start, end int, content []byte) error {
	return w.Current().Overwrite(start, end, content)
}

func (w stackWrapper) GenerateMap(opts Options) *sourcemap.SourceMap {
	sm, err := w.StackedEditor.GenerateMap(opts.toInternal())
	if err != nil {
		panic(err)
	}
	return sm
}

// New creates an Editor over source.
func New(source []byte) Editor {
	return editorWrapper{editor.New(source)}
}

// NewString is a convenience constructor over a string source.
func NewString(source string) Editor {
	return editorWrapper{editor.NewString(source)}
}

// NewStacked creates a StackedEditor with a single base layer over
// source.
func NewStacked(source []byte) StackedEditor {
	return stackWrapper{stack.New(source)}
}

// NewStackedString is a convenience constructor over a string source.
func NewStackedString(source string) StackedEditor {
	return stackWrapper{stack.NewString(source)}
}
