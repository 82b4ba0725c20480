package sourcemap

import "github.com/weavetext/weave/internal/segment"

// lineWalker tracks the generated-side cursor while walking a segment
// list left to right, flushing a new decoded line on every newline byte.
type lineWalker struct {
	genLine int
	genCol  int
	curLine []Mapping
	lines   [][]Mapping
}

func (w *lineWalker) newline() {
	w.lines = append(w.lines, w.curLine)
	w.curLine = nil
	w.genLine++
	w.genCol = 0
}

// walkPlain advances the generated cursor through data without emitting
// any mappings. Used for intro/outro buffers and insertion content.
func (w *lineWalker) walkPlain(data []byte) {
	for _, b := range data {
		if b == '\n' {
			w.newline()
			continue
		}
		w.genCol++
	}
}

// walkContentBacked advances the generated cursor through data, emitting
// one mapping per contiguous run (the first byte after each newline) tied
// to a source position that starts at (srcLine, srcCol). When advanceSrc
// is false the source position never moves, which is the replacement-
// segment rule: every line of a replacement maps back to the single
// original position it replaced.
func (w *lineWalker) walkContentBacked(data []byte, srcLine, srcCol int, advanceSrc bool) {
	firstInLine := true
	for _, b := range data {
		if b == '\n' {
			w.newline()
			firstInLine = true
			if advanceSrc {
				srcLine++
				srcCol = 0
			}
			continue
		}
		if firstInLine {
			w.curLine = append(w.curLine, Mapping{
				GenCol:    w.genCol,
				HasSource: true,
				SrcIdx:    0,
				SrcLine:   srcLine,
				SrcCol:    srcCol,
			})
			firstInLine = false
		}
		w.genCol++
		if advanceSrc {
			srcCol++
		}
	}
}

// Generate walks segs against source and produces the decoded map per
// the generator algorithm: intro/outro buffers advance position only,
// source-backed content emits per-run mappings whose source column
// advances with the output, and replacement content emits per-run
// mappings pinned to the single original position it replaced.
func Generate(source []byte, segs []*segment.Segment, opts Options) *DecodedMap {
	li := NewLineIndex(string(source))
	w := &lineWalker{}

	for _, seg := range segs {
		w.walkPlain(seg.Intro)

		switch {
		case seg.HasSource && len(seg.Content) > 0:
			srcLine, srcCol := li.ByteOffsetToLineColumn(seg.SourceOffset)
			w.walkContentBacked(seg.Content, srcLine, srcCol, true)
		case !seg.HasSource && seg.OriginalEnd > seg.OriginalStart && len(seg.Content) > 0:
			srcLine, srcCol := li.ByteOffsetToLineColumn(seg.OriginalStart)
			w.walkContentBacked(seg.Content, srcLine, srcCol, false)
		default:
			w.walkPlain(seg.Content)
		}

		w.walkPlain(seg.Outro)
	}
	w.lines = append(w.lines, w.curLine)

	dm := &DecodedMap{
		File:       opts.File,
		SourceRoot: opts.SourceRoot,
		Sources:    []string{opts.Source},
		Names:      []string{},
		Lines:      w.lines,
	}
	if opts.IncludeContent {
		content := string(source)
		dm.SourcesContent = []*string{&content}
	}
	return dm
}
