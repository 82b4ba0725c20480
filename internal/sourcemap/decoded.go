package sourcemap

// Options configures map generation. Every field is optional.
type Options struct {
	// File is stored as "file" in the output map.
	File string
	// SourceRoot is stored as "sourceRoot".
	SourceRoot string
	// Source names the single entry of Sources; empty if omitted.
	Source string
	// IncludeContent populates SourcesContent with the original text.
	IncludeContent bool
	// Hires is currently unused by the generator; reserved for finer
	// mappings than per-run.
	Hires bool
}

// Mapping is one segment of a decoded generated line: a generated
// column tied, optionally, to a source position and name. HasSource is
// false only for a bare generated-column marker (field 1 only); this
// generator never emits one, but the merger and wire decoder must
// support it since externally-produced maps may contain them.
type Mapping struct {
	GenCol  int
	SrcIdx  int
	SrcLine int
	SrcCol  int
	NameIdx int

	HasSource bool
	HasName   bool
}

// DecodedMap is the in-memory Source Map v3 model: one line list of
// segments per generated line, plus the sources/names tables.
type DecodedMap struct {
	File           string
	SourceRoot     string
	Sources        []string
	SourcesContent []*string
	Names          []string
	Lines          [][]Mapping
}
