package sourcemap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weavetext/weave/internal/sourcemap"
)

func strp(s string) *string { return &s }

func TestMergeNoMapsReturnsError(t *testing.T) {
	_, err := sourcemap.Merge(nil)
	assert.ErrorIs(t, err, sourcemap.ErrNoSourceMaps)
}

func TestMergeSingleMapIsIdentity(t *testing.T) {
	m := &sourcemap.DecodedMap{
		Sources: []string{"a.txt"},
		Names:   []string{},
		Lines: [][]sourcemap.Mapping{
			{{GenCol: 0, HasSource: true, SrcLine: 0, SrcCol: 0}},
		},
	}

	out, err := sourcemap.Merge([]*sourcemap.DecodedMap{m})
	require.NoError(t, err)
	assert.Equal(t, m.Sources, out.Sources)
	assert.Equal(t, m.Lines, out.Lines)

	// Mutating the clone must not affect the input.
	out.Sources[0] = "changed.txt"
	assert.Equal(t, "a.txt", m.Sources[0])
}

// TestMergeTwoLayerTrace composes an outer map M0 (generated "XabY", where
// "ab" traces back through to a leaf map M1) with a leaf map M1 (generated
// "ab", mapping straight back to original.txt). 'X' carries a sourceless
// segment in M0 and must stay sourceless in the merged result; 'Y' has no
// segment in M0 at all, so the merged line holds three segments.
func TestMergeTwoLayerTrace(t *testing.T) {
	m1 := &sourcemap.DecodedMap{
		Sources:        []string{"original.txt"},
		SourcesContent: []*string{strp("ab")},
		Names:          []string{},
		Lines: [][]sourcemap.Mapping{
			{
				{GenCol: 0, HasSource: true, SrcIdx: 0, SrcLine: 0, SrcCol: 0},
				{GenCol: 1, HasSource: true, SrcIdx: 0, SrcLine: 0, SrcCol: 1},
			},
		},
	}
	m0 := &sourcemap.DecodedMap{
		Sources: []string{"intermediate"},
		Names:   []string{},
		Lines: [][]sourcemap.Mapping{
			{
				{GenCol: 0, HasSource: false},
				{GenCol: 1, HasSource: true, SrcIdx: 0, SrcLine: 0, SrcCol: 0},
				{GenCol: 2, HasSource: true, SrcIdx: 0, SrcLine: 0, SrcCol: 1},
			},
		},
	}

	out, err := sourcemap.Merge([]*sourcemap.DecodedMap{m0, m1})
	require.NoError(t, err)
	require.Len(t, out.Lines, 1)
	require.Len(t, out.Lines[0], 3)

	assert.False(t, out.Lines[0][0].HasSource)

	assert.True(t, out.Lines[0][1].HasSource)
	assert.Equal(t, 0, out.Lines[0][1].SrcLine)
	assert.Equal(t, 0, out.Lines[0][1].SrcCol)

	assert.True(t, out.Lines[0][2].HasSource)
	assert.Equal(t, 0, out.Lines[0][2].SrcLine)
	assert.Equal(t, 1, out.Lines[0][2].SrcCol)

	require.Len(t, out.Sources, 1)
	assert.Equal(t, "original.txt", out.Sources[0])
	require.Len(t, out.SourcesContent, 1)
	assert.Equal(t, "ab", *out.SourcesContent[0])
}

// TestMergeThreeLayerRejectsMultiSourceIntermediate checks that an
// intermediate map (not the leaf) claiming a source index other than 0
// is rejected, since only the leaf map may have more than one source.
func TestMergeThreeLayerRejectsMultiSourceIntermediate(t *testing.T) {
	leaf := &sourcemap.DecodedMap{
		Sources: []string{"leaf.txt"},
		Names:   []string{},
		Lines: [][]sourcemap.Mapping{
			{{GenCol: 0, HasSource: true, SrcIdx: 0, SrcLine: 0, SrcCol: 0}},
		},
	}
	mid := &sourcemap.DecodedMap{
		Sources: []string{"a", "b"},
		Names:   []string{},
		Lines: [][]sourcemap.Mapping{
			{{GenCol: 0, HasSource: true, SrcIdx: 1, SrcLine: 0, SrcCol: 0}},
		},
	}
	top := &sourcemap.DecodedMap{
		Sources: []string{"top"},
		Names:   []string{},
		Lines: [][]sourcemap.Mapping{
			{{GenCol: 0, HasSource: true, SrcIdx: 0, SrcLine: 0, SrcCol: 0}},
		},
	}

	_, err := sourcemap.Merge([]*sourcemap.DecodedMap{top, mid, leaf})
	assert.ErrorIs(t, err, sourcemap.ErrInvalidTransformMap)
}

// TestMergeTraceMissFallsBackToSourceless checks that a lookup miss part
// way down the chain degrades to a field-1-only mapping rather than an
// error: the generated position simply has no traceable origin.
func TestMergeTraceMissFallsBackToSourceless(t *testing.T) {
	leaf := &sourcemap.DecodedMap{
		Sources: []string{"leaf.txt"},
		Names:   []string{},
		Lines: [][]sourcemap.Mapping{
			{{GenCol: 0, HasSource: true, SrcIdx: 0, SrcLine: 0, SrcCol: 0}},
		},
	}
	top := &sourcemap.DecodedMap{
		Sources: []string{"top"},
		Names:   []string{},
		Lines: [][]sourcemap.Mapping{
			// Points at column 5 in leaf's line 0, which has no segment there.
			{{GenCol: 0, HasSource: true, SrcIdx: 0, SrcLine: 0, SrcCol: 5}},
		},
	}

	out, err := sourcemap.Merge([]*sourcemap.DecodedMap{top, leaf})
	require.NoError(t, err)
	require.Len(t, out.Lines[0], 1)
	assert.False(t, out.Lines[0][0].HasSource)
}

func TestMergeInternsRepeatedSources(t *testing.T) {
	leaf := &sourcemap.DecodedMap{
		Sources: []string{"shared.txt"},
		Names:   []string{},
		Lines: [][]sourcemap.Mapping{
			{
				{GenCol: 0, HasSource: true, SrcIdx: 0, SrcLine: 0, SrcCol: 0},
				{GenCol: 5, HasSource: true, SrcIdx: 0, SrcLine: 0, SrcCol: 1},
			},
		},
	}
	top := &sourcemap.DecodedMap{
		Sources: []string{"top"},
		Names:   []string{},
		Lines: [][]sourcemap.Mapping{
			{
				{GenCol: 0, HasSource: true, SrcIdx: 0, SrcLine: 0, SrcCol: 0},
				{GenCol: 3, HasSource: true, SrcIdx: 0, SrcLine: 0, SrcCol: 5},
			},
		},
	}

	out, err := sourcemap.Merge([]*sourcemap.DecodedMap{top, leaf})
	require.NoError(t, err)
	require.Len(t, out.Sources, 1, "both segments resolve to the same leaf source")
	assert.Equal(t, 0, out.Lines[0][0].SrcIdx)
	assert.Equal(t, 0, out.Lines[0][1].SrcIdx)
}
