// Package frames extracts named sub-trees ("frames") located at configured
// paths, using the generic tree walker.
package frames

import (
	"github.com/galpin/pluck/api"
	"github.com/galpin/pluck/internal/tree"
)

// Extract walks root once and captures the value at every configured frame
// path under the path's terminal segment. A frame with no nested frame
// beneath it stops the walk at its boundary; a frame with nested frames is
// captured and descended so the nested frames are found independently.
// Every configured frame appears in the result, with an empty slice when it
// never matched.
//
// nestedFramePaths marks frame paths known to contain nested frames even
// when no configured path extends them; extension-based nesting is detected
// from framePaths itself.
//
// Two configured paths sharing a terminal segment accumulate under the one
// name: both declarations see the combined captures. This is a deliberate
// choice for the degenerate config — draining the accumulator on first use
// would leave the later declaration empty for no good reason.
func Extract(root api.Value, framePaths, nestedFramePaths []api.Path) map[string][]api.Value {
	v := &extractor{
		framePaths: framePaths,
		frameSet:   api.NewPathSet(framePaths...),
		nestedSet:  api.NewPathSet(nestedFramePaths...),
		captured:   make(map[string]struct{}),
		data:       make(map[string][]api.Value),
	}
	tree.Walk(root, v)

	// Assemble per configured path, not per captured name, so frames that
	// never matched still yield an empty sequence.
	result := make(map[string][]api.Value, len(framePaths))
	for _, p := range framePaths {
		name := p.Last()
		if values, ok := v.data[name]; ok {
			result[name] = values
		} else {
			result[name] = []api.Value{}
		}
	}
	return result
}

type extractor struct {
	tree.BaseVisitor

	framePaths []api.Path
	frameSet   *api.PathSet
	nestedSet  *api.PathSet

	// captured suppresses duplicate captures of a path while inside it;
	// entries are cleared on Leave so the same relative path under sibling
	// array elements is captured again.
	captured map[string]struct{}
	data     map[string][]api.Value
}

func (e *extractor) EnterObject(path api.Path, v api.Value) tree.Action {
	return e.enter(path, v)
}

func (e *extractor) EnterArray(path api.Path, v api.Value) tree.Action {
	return e.enter(path, v)
}

func (e *extractor) enter(path api.Path, v api.Value) tree.Action {
	key := path.Key()
	if _, done := e.captured[key]; !done && e.frameSet.Has(path) {
		e.data[path.Last()] = append(e.data[path.Last()], v)
		if !e.hasNestedFrame(path) {
			// Flattening stops at the frame boundary.
			return tree.Stop
		}
		e.captured[key] = struct{}{}
	}
	return tree.Continue
}

func (e *extractor) OnScalar(path api.Path, v api.Value) {
	// Scalars have no children, so there is no boundary to stop at.
	if _, done := e.captured[path.Key()]; !done && e.frameSet.Has(path) {
		e.data[path.Last()] = append(e.data[path.Last()], v)
	}
}

func (e *extractor) Leave(path api.Path) {
	delete(e.captured, path.Key())
}

// hasNestedFrame reports whether another configured frame lies strictly
// beneath path, or the path is explicitly marked as nested-bearing.
func (e *extractor) hasNestedFrame(path api.Path) bool {
	if e.nestedSet.Has(path) {
		return true
	}
	for _, fp := range e.framePaths {
		if len(fp) > len(path) && samePrefix(fp, path) {
			return true
		}
	}
	return false
}

func samePrefix(long, short api.Path) bool {
	for i, seg := range short {
		if long[i] != seg {
			return false
		}
	}
	return true
}
