package sourcemap

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/weavetext/weave/internal/vlq"
)

// SourceMap is the Source Map v3 wire format: the JSON-serializable
// wrapper around a DecodedMap's VLQ-encoded mappings.
type SourceMap struct {
	Version        int       `json:"version"`
	File           string    `json:"file,omitempty"`
	SourceRoot     string    `json:"sourceRoot,omitempty"`
	Sources        []string  `json:"sources"`
	SourcesContent []*string `json:"sourcesContent,omitempty"`
	Names          []string  `json:"names"`
	Mappings       string    `json:"mappings"`
}

// Encode VLQ-encodes dm's mapping lines and wraps the result in a
// SourceMap. Per spec: within a line, prevGenCol resets to 0; the other
// previous-value fields carry across lines for the whole map.
func (dm *DecodedMap) Encode() *SourceMap {
	var b strings.Builder
	var prevSrcIdx, prevSrcLine, prevSrcCol, prevNameIdx int

	for lineIdx, line := range dm.Lines {
		if lineIdx > 0 {
			b.WriteByte(';')
		}
		prevGenCol := 0
		for segIdx, m := range line {
			if segIdx > 0 {
				b.WriteByte(',')
			}
			fields := []int{m.GenCol - prevGenCol}
			prevGenCol = m.GenCol
			if m.HasSource {
				fields = append(fields, m.SrcIdx-prevSrcIdx, m.SrcLine-prevSrcLine, m.SrcCol-prevSrcCol)
				prevSrcIdx, prevSrcLine, prevSrcCol = m.SrcIdx, m.SrcLine, m.SrcCol
			}
			if m.HasName {
				fields = append(fields, m.NameIdx-prevNameIdx)
				prevNameIdx = m.NameIdx
			}
			b.WriteString(vlq.EncodeSegment(fields))
		}
	}

	sources := dm.Sources
	if sources == nil {
		sources = []string{}
	}
	names := dm.Names
	if names == nil {
		names = []string{}
	}

	return &SourceMap{
		Version:        3,
		File:           dm.File,
		SourceRoot:     dm.SourceRoot,
		Sources:        sources,
		SourcesContent: dm.SourcesContent,
		Names:          names,
		Mappings:       b.String(),
	}
}

// ToJSON marshals sm as standard Source Map v3 JSON.
func (sm *SourceMap) ToJSON() ([]byte, error) {
	return json.Marshal(sm)
}

// ToDataURI renders sm as a base64 "data:" URI suitable for an inline
// //# sourceMappingURL= comment.
func (sm *SourceMap) ToDataURI() (string, error) {
	data, err := sm.ToJSON()
	if err != nil {
		return "", err
	}
	return "data:application/json;charset=utf-8;base64," + base64.StdEncoding.EncodeToString(data), nil
}

// ToComment renders the trailing "//# sourceMappingURL=" comment line
// for a given map file name.
func ToComment(filename string) string {
	return "//# sourceMappingURL=" + filename
}

// DecodeMappings decodes a VLQ mappings string into per-line segment
// lists. It is total over any well-formed 1/4/5-field mapping string,
// including ones produced outside this package (Decode uses it to turn a
// previously-serialized map back into a DecodedMap that Merge accepts).
func DecodeMappings(mappings string) ([][]Mapping, error) {
	var lines [][]Mapping
	var prevSrcIdx, prevSrcLine, prevSrcCol, prevNameIdx int

	for _, lineStr := range strings.Split(mappings, ";") {
		var line []Mapping
		prevGenCol := 0
		if lineStr != "" {
			for _, segStr := range strings.Split(lineStr, ",") {
				fields, err := decodeAllFields(segStr)
				if err != nil {
					return nil, err
				}
				if len(fields) != 1 && len(fields) != 4 && len(fields) != 5 {
					return nil, ErrInvalidTransformMap
				}

				m := Mapping{}
				prevGenCol += fields[0]
				m.GenCol = prevGenCol

				if len(fields) >= 4 {
					m.HasSource = true
					prevSrcIdx += fields[1]
					prevSrcLine += fields[2]
					prevSrcCol += fields[3]
					m.SrcIdx, m.SrcLine, m.SrcCol = prevSrcIdx, prevSrcLine, prevSrcCol
				}
				if len(fields) == 5 {
					m.HasName = true
					prevNameIdx += fields[4]
					m.NameIdx = prevNameIdx
				}
				line = append(line, m)
			}
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// decodeAllFields decodes every VLQ integer packed into s, in order,
// with no separators (a single comma-delimited mapping segment).
func decodeAllFields(s string) ([]int, error) {
	var fields []int
	pos := 0
	for pos < len(s) {
		v, consumed, err := vlq.DecodeInt(s[pos:])
		if err != nil {
			return nil, err
		}
		fields = append(fields, v)
		pos += consumed
	}
	return fields, nil
}

// Decode parses a Source Map v3 wire object into a DecodedMap.
func Decode(sm *SourceMap) (*DecodedMap, error) {
	lines, err := DecodeMappings(sm.Mappings)
	if err != nil {
		return nil, err
	}
	return &DecodedMap{
		File:           sm.File,
		SourceRoot:     sm.SourceRoot,
		Sources:        sm.Sources,
		SourcesContent: sm.SourcesContent,
		Names:          sm.Names,
		Lines:          lines,
	}, nil
}
