package tree

import "github.com/galpin/pluck/api"

// Action tells the walker whether to descend into a container's children.
type Action int

const (
	// Continue descends into the node's children.
	Continue Action = iota
	// Stop skips the node's children entirely.
	Stop
)

// Visitor receives traversal events from Walk. The path passed to each
// callback is owned by the walker and must be copied if retained.
type Visitor interface {
	// EnterObject is called for every object node before its members.
	EnterObject(path api.Path, v api.Value) Action
	// EnterArray is called for every list node before its elements.
	EnterArray(path api.Path, v api.Value) Action
	// OnScalar is called for every bool, int, float and string leaf.
	OnScalar(path api.Path, v api.Value)
	// OnNull is called for every null leaf.
	OnNull(path api.Path)
	// Leave is called after all descendants of a container that was
	// descended into. A container skipped via Stop gets no Leave.
	Leave(path api.Path)
}

// BaseVisitor implements Visitor with no-op methods, for embedding.
type BaseVisitor struct{}

func (BaseVisitor) EnterObject(api.Path, api.Value) Action { return Continue }
func (BaseVisitor) EnterArray(api.Path, api.Value) Action  { return Continue }
func (BaseVisitor) OnScalar(api.Path, api.Value)           {}
func (BaseVisitor) OnNull(api.Path)                        {}
func (BaseVisitor) Leave(api.Path)                         {}

// entry is one pending traversal step on the explicit stack.
type entry struct {
	path  api.Path
	value api.Value
	leave bool
}

// Walk traverses root depth-first, tracking the current Path. Object
// members extend the path by their key; list elements keep their parent's
// path, since flattening treats arrays as row multipliers rather than path
// segments. Member and element order is the order recorded in the Value.
func Walk(root api.Value, visitor Visitor) {
	WalkFrom(root, visitor, nil)
}

// WalkFrom is Walk with an initial path prefix.
func WalkFrom(root api.Value, visitor Visitor, initial api.Path) {
	stack := []entry{{path: initial, value: root}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if top.leave {
			visitor.Leave(top.path)
			continue
		}

		switch top.value.Kind() {
		case api.KindNull:
			visitor.OnNull(top.path)
		case api.KindObject:
			if visitor.EnterObject(top.path, top.value) != Continue {
				continue
			}
			stack = append(stack, entry{path: top.path, leave: true})
			members := top.value.Members()
			for i := len(members) - 1; i >= 0; i-- {
				child := make(api.Path, len(top.path)+1)
				copy(child, top.path)
				child[len(top.path)] = members[i].Key
				stack = append(stack, entry{path: child, value: members[i].Value})
			}
		case api.KindList:
			if visitor.EnterArray(top.path, top.value) != Continue {
				continue
			}
			stack = append(stack, entry{path: top.path, leave: true})
			items := top.value.Items()
			for i := len(items) - 1; i >= 0; i-- {
				stack = append(stack, entry{path: top.path, value: items[i]})
			}
		default:
			visitor.OnScalar(top.path, top.value)
		}
	}
}
