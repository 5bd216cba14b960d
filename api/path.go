package api

import "strings"

// pathSep separates segments inside a Path key. Unit separator is safe
// because it cannot appear in JSON object keys produced by sane inputs,
// and even if it does the worst case is a cache key collision between
// paths that also collide as column names.
const pathSep = "\x1f"

// Path locates a node in a Value tree as an ordered sequence of object
// keys. Array traversal never contributes a segment. Two Paths are equal
// iff their segments are element-wise equal.
type Path []string

// Key returns a flat string usable as a map key for this Path.
func (p Path) Key() string { return strings.Join(p, pathSep) }

// Last returns the final segment, or "" for the empty Path.
func (p Path) Last() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// ParsePath splits a dotted path expression ("launches.rocket.name") into
// a Path. An empty expression yields the empty Path.
func ParsePath(expr string) Path {
	if expr == "" {
		return nil
	}
	return Path(strings.Split(expr, "."))
}

// PathSet is a set of Paths with exact membership. No prefix or suffix
// matching is performed.
type PathSet struct {
	members map[string]struct{}
}

// NewPathSet builds a PathSet from the given Paths.
func NewPathSet(paths ...Path) *PathSet {
	s := &PathSet{members: make(map[string]struct{}, len(paths))}
	for _, p := range paths {
		s.members[p.Key()] = struct{}{}
	}
	return s
}

// Add inserts a Path into the set.
func (s *PathSet) Add(p Path) { s.members[p.Key()] = struct{}{} }

// Has reports whether the exact Path is a member.
func (s *PathSet) Has(p Path) bool {
	_, ok := s.members[p.Key()]
	return ok
}

// Len returns the number of member Paths.
func (s *PathSet) Len() int { return len(s.members) }
