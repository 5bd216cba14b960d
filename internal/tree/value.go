// Package tree converts host-native Go data into the api.Value model and
// provides the generic path-tracked walker over it.
package tree

import (
	"encoding/json"
	"sort"

	"github.com/galpin/pluck/api"
)

// FromAny eagerly converts a host tree (the `any` shape produced by JSON
// parsers such as ojg) into an api.Value. The conversion happens exactly
// once per input; everything downstream operates on the owned Value tree.
//
// Mapping: nil → null, bool → bool, integer kinds → int, float kinds →
// float (an integral-valued float64 stays a float — the mapping follows the
// host kind, not the value), string → string, []any → list, map[string]any
// → object. Go maps carry no iteration order, so object members are sorted
// by key to keep traversal reproducible. Anything else degrades to null.
func FromAny(v any) api.Value {
	switch h := v.(type) {
	case nil:
		return api.Null()
	case bool:
		return api.Bool(h)
	case int:
		return api.Int(int64(h))
	case int8:
		return api.Int(int64(h))
	case int16:
		return api.Int(int64(h))
	case int32:
		return api.Int(int64(h))
	case int64:
		return api.Int(h)
	case uint:
		return api.Int(int64(h))
	case uint8:
		return api.Int(int64(h))
	case uint16:
		return api.Int(int64(h))
	case uint32:
		return api.Int(int64(h))
	case uint64:
		return api.Int(int64(h))
	case float32:
		return api.Float(float64(h))
	case float64:
		return api.Float(h)
	case string:
		return api.Str(h)
	case json.Number:
		if i, err := h.Int64(); err == nil {
			return api.Int(i)
		}
		if f, err := h.Float64(); err == nil {
			return api.Float(f)
		}
		return api.Null()
	case []any:
		items := make([]api.Value, len(h))
		for i, item := range h {
			items[i] = FromAny(item)
		}
		return api.List(items)
	case map[string]any:
		keys := make([]string, 0, len(h))
		for k := range h {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		members := make([]api.Member, len(keys))
		for i, k := range keys {
			members[i] = api.Member{Key: k, Value: FromAny(h[k])}
		}
		return api.Object(members)
	default:
		return api.Null()
	}
}
