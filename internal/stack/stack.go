// Package stack implements a stacked, layered editor: a sequence of
// editors where Commit freezes the current layer's output as the next
// layer's source, and Rollback discards the most recent uncommitted
// layer. GenerateMap composes every layer's decoded map through the
// trace-through-chain merger into one map against the base source.
package stack

import (
	"errors"

	"github.com/weavetext/weave/internal/editor"
	"github.com/weavetext/weave/internal/sourcemap"
)

// ErrCannotRollbackBase is returned by Rollback when only the base
// layer remains; there is nothing earlier to roll back to.
var ErrCannotRollbackBase = errors.New("stack: cannot roll back the base layer")

// StackedEditor is an ordered stack of editors. Edits always apply to
// the current (topmost) layer; Commit pushes a new layer seeded from
// the current layer's output, and Rollback pops back to the previous
// one.
type StackedEditor struct {
	layers []*editor.Editor
}

// New creates a StackedEditor with a single base layer over source.
func New(source []byte) *StackedEditor {
	return &StackedEditor{layers: []*editor.Editor{editor.New(source)}}
}

// NewString is a convenience constructor over a string source.
func NewString(source string) *StackedEditor {
	return New([]byte(source))
}

// Current returns the topmost, currently-editable layer.
func (s *StackedEditor) Current() *editor.Editor {
	return s.layers[len(s.layers)-1]
}

// Depth returns the number of layers, including the base.
func (s *StackedEditor) Depth() int {
	return len(s.layers)
}

// Commit freezes the current layer's output and starts a new layer on
// top of it, so that further edits apply to the committed text rather
// than retroactively changing the frozen layer's mappings.
func (s *StackedEditor) Commit() {
	frozen := s.Current().ToString()
	s.layers = append(s.layers, editor.New(frozen))
}

// Rollback discards the current layer and returns to editing the
// previous one. It fails with ErrCannotRollbackBase if only the base
// layer remains.
func (s *StackedEditor) Rollback() error {
	if len(s.layers) == 1 {
		return ErrCannotRollbackBase
	}
	s.layers = s.layers[:len(s.layers)-1]
	return nil
}

// ToString returns the current layer's materialized output.
func (s *StackedEditor) ToString() []byte {
	return s.Current().ToString()
}

// GenerateMap composes every layer's decoded map, outermost first, into
// a single Source Map v3 tracing straight back to the base source. With
// a single layer this is exactly that layer's own map.
func (s *StackedEditor) GenerateMap(opts sourcemap.Options) (*sourcemap.SourceMap, error) {
	dm, err := s.GenerateDecodedMap(opts)
	if err != nil {
		return nil, err
	}
	return dm.Encode(), nil
}

// GenerateDecodedMap is GenerateMap without the final VLQ encoding step.
func (s *StackedEditor) GenerateDecodedMap(opts sourcemap.Options) (*sourcemap.DecodedMap, error) {
	maps := make([]*sourcemap.DecodedMap, len(s.layers))
	for i, layer := range s.layers {
		layerOpts := sourcemap.Options{IncludeContent: opts.IncludeContent}
		if i == 0 {
			// The base layer's source is the true original text; only
			// it should carry the caller's source name into the chain.
			layerOpts.Source = opts.Source
		}
		maps[i] = layer.GenerateDecodedMap(layerOpts)
	}

	// Merge expects outermost (most recent) first; layers are stored
	// base-first, so reverse for the call and keep metadata from opts.
	chain := make([]*sourcemap.DecodedMap, len(maps))
	for i, m := range maps {
		chain[len(maps)-1-i] = m
	}

	merged, err := sourcemap.Merge(chain)
	if err != nil {
		return nil, err
	}
	merged.File = opts.File
	merged.SourceRoot = opts.SourceRoot
	return merged, nil
}
