package weave_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weavetext/weave/pkg/weave"
)

func TestEditorOverwriteAndMap(t *testing.T) {
	e := weave.NewString("var x = 1")
	require.NoError(t, e.Overwrite(4, 5, []byte("answer")))
	assert.Equal(t, "var answer = 1", string(e.ToString()))

	sm := e.GenerateMap(weave.Options{Source: "input.js"})
	assert.Equal(t, 3, sm.Version)
	assert.Equal(t, []string{"input.js"}, sm.Sources)
}

func TestStackedEditorCommitAndRollback(t *testing.T) {
	s := weave.NewStackedString("world")
	require.NoError(t, s.AppendLeft(0, []byte("Hello ")))
	assert.Equal(t, "Hello world", string(s.ToString()))

	s.Commit()
	require.NoError(t, s.Overwrite(6, 11, []byte("Zig")))
	assert.Equal(t, "Hello Zig", string(s.ToString()))

	require.NoError(t, s.Rollback())
	assert.Equal(t, "Hello world", string(s.ToString()))
}

func TestStackedEditorRollbackBaseFails(t *testing.T) {
	s := weave.NewStackedString("abc")
	assert.Error(t, s.Rollback())
}

func TestStackedEditorGenerateMapSucceeds(t *testing.T) {
	s := weave.NewStackedString("world")
	require.NoError(t, s.AppendLeft(0, []byte("Hello ")))
	s.Commit()
	require.NoError(t, s.Overwrite(6, 11, []byte("Zig")))

	sm := s.GenerateMap(weave.Options{Source: "input.txt"})
	assert.Equal(t, []string{"input.txt"}, sm.Sources)
}
