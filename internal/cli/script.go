package cli

import (
	"encoding/json"
	"fmt"

	"github.com/weavetext/weave/pkg/weave"
)

// Edit is one operation in an edit script: a JSON-serializable
// instruction applied in order to an Editor.
type Edit struct {
	Op      string `json:"op"`
	Index   int    `json:"index,omitempty"`
	Start   int    `json:"start,omitempty"`
	End     int    `json:"end,omitempty"`
	Content string `json:"content"`
}

// ParseScript decodes an edit script from JSON: either a bare array of
// edits, or an object with an "edits" array.
func ParseScript(data []byte) ([]Edit, error) {
	var edits []Edit
	if err := json.Unmarshal(data, &edits); err == nil {
		return edits, nil
	}

	var wrapped struct {
		Edits []Edit `json:"edits"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("parsing edit script: %w", err)
	}
	return wrapped.Edits, nil
}

// ApplyScript applies every edit in script to e, in order.
func ApplyScript(e weave.Editor, script []Edit) error {
	for i, edit := range script {
		var err error
		switch edit.Op {
		case "appendLeft":
			err = e.AppendLeft(edit.Index, []byte(edit.Content))
		case "appendRight":
			err = e.AppendRight(edit.Index, []byte(edit.Content))
		case "overwrite":
			err = e.Overwrite(edit.Start, edit.End, []byte(edit.Content))
		default:
			err = fmt.Errorf("unknown edit op %q", edit.Op)
		}
		if err != nil {
			return fmt.Errorf("edit %d (%s): %w", i, edit.Op, err)
		}
	}
	return nil
}
