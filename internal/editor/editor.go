// Package editor implements the non-destructive string editor: append
// left/right insertions bound to an original byte offset, range
// overwrites, and materialization of the edited text and its decoded
// source map.
package editor

import (
	"errors"

	"github.com/weavetext/weave/internal/segment"
	"github.com/weavetext/weave/internal/sourcemap"
)

// ErrInvalidRange is returned by Overwrite when start >= end.
var ErrInvalidRange = errors.New("editor: invalid range")

// ErrOffsetNotFound is returned by Overwrite when start or end-1 does
// not lie in a source-backed segment: it is outside [0, len(source)) or
// has already been overwritten. AppendLeft and AppendRight route any
// offset at or past the end of the source to the last segment's outro.
var ErrOffsetNotFound = errors.New("editor: offset not found")

// ErrOffsetOutOfBounds is returned by AppendLeft and AppendRight for
// negative offsets, which are never valid regardless of source length.
var ErrOffsetOutOfBounds = errors.New("editor: offset out of bounds")

// Editor is a non-destructive editor over an immutable source text.
type Editor struct {
	source []byte
	store  *segment.Store

	// headIntro/tailOutro hold insertions anchored before/after the
	// entire text when the source is empty and there is no segment to
	// attach an intro or outro to.
	headIntro []byte
	tailOutro []byte

	outputLen      int
	outputLenValid bool
}

// New creates an Editor over a copy of source.
func New(source []byte) *Editor {
	owned := make([]byte, len(source))
	copy(owned, source)
	return &Editor{
		source: owned,
		store:  segment.NewStore(owned),
	}
}

// NewString is a convenience constructor over a string source.
func NewString(source string) *Editor {
	return New([]byte(source))
}

// Len returns the length of the original source in bytes.
func (e *Editor) Len() int {
	return len(e.source)
}

// Source returns the original text this editor was constructed over.
func (e *Editor) Source() []byte {
	return e.source
}

func (e *Editor) invalidate() {
	e.outputLenValid = false
}

// ToString concatenates intro++content++outro of every segment, in
// order, plus any head/tail buffers used when the source is empty.
func (e *Editor) ToString() []byte {
	total := e.OutputLen()
	out := make([]byte, 0, total)
	out = append(out, e.headIntro...)
	for _, seg := range e.store.Segments() {
		out = append(out, seg.Intro...)
		out = append(out, seg.Content...)
		out = append(out, seg.Outro...)
	}
	out = append(out, e.tailOutro...)
	return out
}

// OutputLen returns the length ToString would currently produce, using
// and refreshing the cached offset total as needed. This is the editor's
// "offset cache" per the data model: invalidated on every mutation,
// recomputed lazily on the next read.
func (e *Editor) OutputLen() int {
	if e.outputLenValid {
		return e.outputLen
	}
	total := len(e.headIntro) + len(e.tailOutro)
	for _, seg := range e.store.Segments() {
		total += len(seg.Intro) + len(seg.Content) + len(seg.Outro)
	}
	e.outputLen = total
	e.outputLenValid = true
	return total
}

// AppendLeft binds content to the left edge of original position index.
func (e *Editor) AppendLeft(index int, content []byte) error {
	if len(content) == 0 {
		return nil
	}
	if index < 0 {
		return ErrOffsetOutOfBounds
	}

	if len(e.source) == 0 {
		e.headIntro = append(e.headIntro, content...)
		e.invalidate()
		return nil
	}

	idx, ok := e.store.FindBySource(index)
	if !ok {
		idx, ok = e.store.FindByOriginal(index)
	}
	if !ok {
		if index >= len(e.source) {
			last := e.store.Last()
			last.Outro = append(last.Outro, content...)
			e.invalidate()
			return nil
		}
		return ErrOffsetNotFound
	}

	seg := e.store.Segments()[idx]
	rel := index - seg.OriginalStart
	if rel == 0 || !seg.HasSource {
		// A replacement segment cannot be split: an offset inside it
		// binds to the replacement's own intro.
		seg.Intro = append(seg.Intro, content...)
	} else {
		e.store.Split(idx, rel)
		right := e.store.Segments()[idx+1]
		right.Intro = append(right.Intro, content...)
	}
	e.invalidate()
	return nil
}

// AppendRight binds content to the right edge of original position
// index.
func (e *Editor) AppendRight(index int, content []byte) error {
	if len(content) == 0 {
		return nil
	}
	if index < 0 {
		return ErrOffsetOutOfBounds
	}

	if len(e.source) == 0 {
		e.tailOutro = append(e.tailOutro, content...)
		e.invalidate()
		return nil
	}

	if index >= len(e.source) {
		last := e.store.Last()
		last.Outro = append(last.Outro, content...)
		e.invalidate()
		return nil
	}

	idx, ok := e.store.FindBySource(index)
	if !ok {
		idx, ok = e.store.FindByOriginal(index)
	}
	if !ok {
		return ErrOffsetNotFound
	}

	segs := e.store.Segments()
	seg := segs[idx]
	rel := index - seg.OriginalStart
	ro := seg.Len()

	switch {
	case rel == ro:
		if idx+1 < len(segs) {
			segs[idx+1].Intro = append(segs[idx+1].Intro, content...)
		} else {
			seg.Outro = append(seg.Outro, content...)
		}
	case rel == 0:
		seg.Intro = append(seg.Intro, content...)
	case !seg.HasSource:
		// A replacement segment cannot be split: an offset inside it
		// binds to the replacement's own outro.
		seg.Outro = append(seg.Outro, content...)
	default:
		e.store.Split(idx, rel)
		left := e.store.Segments()[idx]
		left.Outro = append(left.Outro, content...)
	}
	e.invalidate()
	return nil
}

// Overwrite replaces the original bytes [start, end) with content.
func (e *Editor) Overwrite(start, end int, content []byte) error {
	if start >= end {
		return ErrInvalidRange
	}

	aIdx, ok := e.store.FindBySource(start)
	if !ok {
		return ErrOffsetNotFound
	}
	bIdx, ok := e.store.FindBySource(end - 1)
	if !ok {
		return ErrOffsetNotFound
	}

	segA := e.store.Segments()[aIdx]
	if relA := start - segA.OriginalStart; relA > 0 {
		e.store.Split(aIdx, relA)
	}

	bIdx, _ = e.store.FindBySource(end - 1)
	segB := e.store.Segments()[bIdx]
	if relB := end - segB.OriginalStart; relB > 0 && relB < segB.Len() {
		e.store.Split(bIdx, relB)
	}

	aIdx, _ = e.store.FindBySource(start)
	bIdx, _ = e.store.FindBySource(end - 1)

	owned := make([]byte, len(content))
	copy(owned, content)

	savedIntro := e.store.Segments()[aIdx].Intro
	savedOutro := e.store.Segments()[bIdx].Outro
	e.store.ReplaceRange(aIdx, bIdx, owned, savedIntro, savedOutro)
	e.invalidate()
	return nil
}

// GenerateDecodedMap walks the segment store and produces the decoded
// Source Map v3 model for this editor's current state.
func (e *Editor) GenerateDecodedMap(opts sourcemap.Options) *sourcemap.DecodedMap {
	return sourcemap.Generate(e.source, e.store.Segments(), opts)
}

// GenerateMap is GenerateDecodedMap followed by VLQ encoding into a
// serializable Source Map v3 wrapper.
func (e *Editor) GenerateMap(opts sourcemap.Options) *sourcemap.SourceMap {
	return e.GenerateDecodedMap(opts).Encode()
}
