package sourcemap

import "sort"

// Merge composes a chain of decoded maps M0..Mk — M0 the outermost
// (most recently produced) transform, Mk the leaf map that points back
// to the true original source(s) — into a single decoded map whose
// generated side is M0's and whose source side is Mk's, trimmed to the
// sources actually reached.
//
// Every map but the leaf must carry exactly one source; Merge returns
// ErrInvalidTransformMap if an intermediate map's segment claims a
// source index other than 0.
func Merge(maps []*DecodedMap) (*DecodedMap, error) {
	if len(maps) == 0 {
		return nil, ErrNoSourceMaps
	}
	if len(maps) == 1 {
		return cloneDecodedMap(maps[0]), nil
	}

	sources := newSourceAccumulator()
	names := newStringInterner()
	m0 := maps[0]
	leaf := maps[len(maps)-1]

	outLines := make([][]Mapping, len(m0.Lines))
	for lineIdx, line := range m0.Lines {
		outLine := make([]Mapping, 0, len(line))
		for _, seg := range line {
			resolved, err := resolveSegment(maps, leaf, sources, names, seg)
			if err != nil {
				return nil, err
			}
			outLine = append(outLine, resolved)
		}
		outLines[lineIdx] = outLine
	}
	outLines = trimTrailingEmptyLines(outLines)

	return &DecodedMap{
		File:           m0.File,
		SourceRoot:     m0.SourceRoot,
		Sources:        sources.sources,
		SourcesContent: sources.finalContents(),
		Names:          names.names,
		Lines:          outLines,
	}, nil
}

// resolveSegment traces one M0 segment through the chain and returns
// the fully-resolved output mapping: sourceless if the trace runs out
// before reaching the leaf, leaf-sourced (with the source interned into
// the merge's output tables) otherwise.
func resolveSegment(maps []*DecodedMap, leaf *DecodedMap, sources *sourceAccumulator, names *stringInterner, seg Mapping) (Mapping, error) {
	if !seg.HasSource {
		return Mapping{GenCol: seg.GenCol}, nil
	}

	name, hasName := "", false
	if seg.HasName {
		name, hasName = maps[0].Names[seg.NameIdx], true
	}

	res, err := trace(maps, seg.SrcLine, seg.SrcCol, name, hasName)
	if err != nil {
		return Mapping{}, err
	}
	if !res.ok {
		return Mapping{GenCol: seg.GenCol}, nil
	}

	var srcName string
	if res.srcIdx >= 0 && res.srcIdx < len(leaf.Sources) {
		srcName = leaf.Sources[res.srcIdx]
	}
	var content *string
	if res.srcIdx >= 0 && res.srcIdx < len(leaf.SourcesContent) {
		content = leaf.SourcesContent[res.srcIdx]
	}
	outIdx := sources.intern(srcName, content)

	out := Mapping{
		GenCol:    seg.GenCol,
		HasSource: true,
		SrcIdx:    outIdx,
		SrcLine:   res.srcLine,
		SrcCol:    res.srcCol,
	}
	if res.hasName {
		out.NameIdx = names.intern(res.name)
		out.HasName = true
	}
	return out, nil
}

type traceResult struct {
	ok              bool
	srcIdx          int
	srcLine, srcCol int
	name            string
	hasName         bool
}

// trace follows a query position down through maps[1:], each lookup
// asking "where did this generated position come from in the next map
// down?" It stops, without error, as soon as a depth has no matching
// segment or the matching segment carries no source; it errors if an
// intermediate (non-leaf) map's segment claims a source other than its
// single one.
func trace(maps []*DecodedMap, startLine, startCol int, name string, hasName bool) (traceResult, error) {
	k := len(maps) - 1
	line, col := startLine, startCol

	for j := 1; j <= k; j++ {
		seg, found := findByGenCol(maps[j], line, col)
		if !found {
			return traceResult{}, nil
		}
		if seg.HasName {
			name, hasName = maps[j].Names[seg.NameIdx], true
		}
		if !seg.HasSource {
			return traceResult{}, nil
		}
		if j < k && seg.SrcIdx != 0 {
			return traceResult{}, ErrInvalidTransformMap
		}
		line, col = seg.SrcLine, seg.SrcCol
		if j == k {
			return traceResult{ok: true, srcIdx: seg.SrcIdx, srcLine: line, srcCol: col, name: name, hasName: hasName}, nil
		}
	}
	return traceResult{}, nil
}

// findByGenCol binary searches m's generated line for a segment whose
// GenCol equals col exactly.
func findByGenCol(m *DecodedMap, line, col int) (Mapping, bool) {
	if line < 0 || line >= len(m.Lines) {
		return Mapping{}, false
	}
	segs := m.Lines[line]
	i := sort.Search(len(segs), func(i int) bool { return segs[i].GenCol >= col })
	if i < len(segs) && segs[i].GenCol == col {
		return segs[i], true
	}
	return Mapping{}, false
}

func trimTrailingEmptyLines(lines [][]Mapping) [][]Mapping {
	for len(lines) > 1 && len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func cloneDecodedMap(m *DecodedMap) *DecodedMap {
	clone := &DecodedMap{
		File:       m.File,
		SourceRoot: m.SourceRoot,
		Sources:    append([]string{}, m.Sources...),
		Names:      append([]string{}, m.Names...),
	}
	if m.SourcesContent != nil {
		clone.SourcesContent = append([]*string{}, m.SourcesContent...)
	}
	clone.Lines = make([][]Mapping, len(m.Lines))
	for i, line := range m.Lines {
		clone.Lines[i] = append([]Mapping{}, line...)
	}
	return clone
}

// sourceAccumulator assigns output indices to (name, content) pairs on
// first use, preserving first-use order.
type sourceAccumulator struct {
	sources    []string
	contents   []*string
	index      map[string]int
	sawContent bool
}

func newSourceAccumulator() *sourceAccumulator {
	return &sourceAccumulator{index: make(map[string]int)}
}

func (a *sourceAccumulator) intern(name string, content *string) int {
	key := name + "\x00"
	if content != nil {
		key += *content
		a.sawContent = true
	}
	if idx, ok := a.index[key]; ok {
		return idx
	}
	idx := len(a.sources)
	a.sources = append(a.sources, name)
	a.contents = append(a.contents, content)
	a.index[key] = idx
	return idx
}

// finalContents returns the interned content slice, or nil if no
// interned source ever carried actual content — leaving SourcesContent
// unset rather than a slice of nil pointers.
func (a *sourceAccumulator) finalContents() []*string {
	if !a.sawContent {
		return nil
	}
	return a.contents
}

// stringInterner assigns output indices to names on first use.
type stringInterner struct {
	names []string
	index map[string]int
}

func newStringInterner() *stringInterner {
	return &stringInterner{index: make(map[string]int)}
}

func (s *stringInterner) intern(name string) int {
	if idx, ok := s.index[name]; ok {
		return idx
	}
	idx := len(s.names)
	s.names = append(s.names, name)
	s.index[name] = idx
	return idx
}
