package sourcemap

import "errors"

// ErrNoSourceMaps is returned by Merge when given an empty chain.
var ErrNoSourceMaps = errors.New("sourcemap: no maps to merge")

// ErrInvalidTransformMap is returned when a mapping string fails to
// decode into well-formed 1/4/5-field segments, or when an intermediate
// map in a merge chain references a source index other than 0 (every
// map but the leaf must be a single-source transform map).
var ErrInvalidTransformMap = errors.New("sourcemap: invalid transform map")
