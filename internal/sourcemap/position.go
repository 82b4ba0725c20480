// Package sourcemap implements the decoded-map model, the Source Map v3
// generator that walks a segment store, and the trace-through-chain
// merger used to compose stacked editor layers into one map.
package sourcemap

import "sort"

// LineIndex precomputes line-start byte offsets for a source string so
// that any byte offset can be converted to a (line, column) pair with a
// binary search rather than a linear scan.
type LineIndex struct {
	source     string
	lineStarts []int
}

// NewLineIndex builds a LineIndex over source, recognizing LF, CR, and
// CRLF line endings.
func NewLineIndex(source string) *LineIndex {
	idx := &LineIndex{
		source:     source,
		lineStarts: []int{0},
	}

	for i := 0; i < len(source); i++ {
		switch source[i] {
		case '\n':
			if next := i + 1; next < len(source) {
				idx.lineStarts = append(idx.lineStarts, next)
			}
		case '\r':
			if i+1 < len(source) && source[i+1] == '\n' {
				if next := i + 2; next < len(source) {
					idx.lineStarts = append(idx.lineStarts, next)
				}
				i++
			} else if next := i + 1; next < len(source) {
				idx.lineStarts = append(idx.lineStarts, next)
			}
		}
	}

	return idx
}

// LineCount returns the number of lines in the indexed source.
func (idx *LineIndex) LineCount() int {
	return len(idx.lineStarts)
}

// ByteOffsetToLineColumn converts a byte offset into a 0-indexed
// (line, column) pair, both in bytes, via binary search over the
// precomputed line starts.
func (idx *LineIndex) ByteOffsetToLineColumn(offset int) (line, col int) {
	if offset < 0 {
		return 0, 0
	}
	if offset > len(idx.source) {
		offset = len(idx.source)
	}

	line = sort.Search(len(idx.lineStarts), func(i int) bool {
		return idx.lineStarts[i] > offset
	}) - 1
	if line < 0 {
		line = 0
	}

	col = offset - idx.lineStarts[line]
	return line, col
}
