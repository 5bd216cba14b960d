// Package normalize flattens api.Value trees into flat rows. Objects
// contribute path-named columns, arrays multiply rows via cross-join, and
// an optional selection set restricts which paths are emitted.
//
// The engine deliberately does not use the generic tree walker: cross-join
// needs to accumulate and multiply row sets eagerly, which cannot be
// expressed as a single forward visitation pass.
package normalize

import (
	"errors"
	"fmt"
	"strings"

	"github.com/galpin/pluck/api"
)

// ErrRowLimit is returned when Options.MaxRows is exceeded during
// cross-join.
var ErrRowLimit = errors.New("row limit exceeded")

// normalizer carries the mutable state of one call (or one batch): the
// shared path stack and the name cache keyed by Path. Both are pure
// performance aids and are discarded when the call returns; a normalizer
// must not be shared between goroutines.
type normalizer struct {
	opts  *api.Options
	path  api.Path
	names map[string]string
}

func newNormalizer(opts *api.Options) *normalizer {
	if opts == nil {
		opts = api.DefaultOptions()
	}
	return &normalizer{opts: opts, names: make(map[string]string)}
}

// Normalize flattens a single value into rows.
//
// An empty object yields one row with zero columns. A top-level scalar or
// null yields one row with one column named by the fallback, subject to the
// selection filter.
func Normalize(v api.Value, opts *api.Options) ([]api.Row, error) {
	return newNormalizer(opts).normalizeValue(v)
}

// NormalizeBatch flattens an ordered sequence of inputs independently and
// concatenates the resulting rows, sharing the path stack and name cache
// across inputs. Rows from structurally identical inputs share a column
// layout; the batch does not verify this (the typed materializer does).
func NormalizeBatch(values []api.Value, opts *api.Options) ([]api.Row, error) {
	n := newNormalizer(opts)
	var all []api.Row
	for i, v := range values {
		rows, err := n.normalizeValue(v)
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}
		all = append(all, rows...)
	}
	return all, nil
}

// normalizeValue flattens v starting from a fresh single empty row, at the
// current path.
func (n *normalizer) normalizeValue(v api.Value) ([]api.Row, error) {
	rows := make([]api.Row, 1)
	if v.Kind() == api.KindObject {
		for _, m := range v.Members() {
			n.path = append(n.path, m.Key)
			err := n.normalizeInto(&rows, m.Value)
			n.path = n.path[:len(n.path)-1]
			if err != nil {
				return nil, err
			}
		}
		return rows, nil
	}
	if err := n.normalizeInto(&rows, v); err != nil {
		return nil, err
	}
	return rows, nil
}

// normalizeInto flattens v into the accumulating row set at the current
// path.
func (n *normalizer) normalizeInto(rows *[]api.Row, v api.Value) error {
	switch v.Kind() {
	case api.KindObject:
		for _, m := range v.Members() {
			n.path = append(n.path, m.Key)
			err := n.normalizeInto(rows, m.Value)
			n.path = n.path[:len(n.path)-1]
			if err != nil {
				return err
			}
		}

	case api.KindList:
		// Each non-null element restarts from an empty row set at the
		// current path; null elements contribute nothing at all.
		var sub []api.Row
		for _, item := range v.Items() {
			if item.IsNull() {
				continue
			}
			itemRows, err := n.normalizeValue(item)
			if err != nil {
				return err
			}
			sub = append(sub, itemRows...)
		}
		// An empty array multiplies nothing: the existing rows stand.
		if len(sub) > 0 {
			return n.crossJoin(rows, sub)
		}

	case api.KindNull:
		if n.included() {
			n.appendCell(rows, api.Null())
		}

	default:
		if n.included() {
			n.appendCell(rows, v)
		}
	}
	return nil
}

// crossJoin replaces rows with rows × other: one merged row per pair, left
// cells before right cells. Cell names are shared string headers, so each
// merged row costs one slice copy rather than fresh string bytes.
func (n *normalizer) crossJoin(rows *[]api.Row, other []api.Row) error {
	total := len(*rows) * len(other)
	if n.opts.MaxRows > 0 && total > n.opts.MaxRows {
		return fmt.Errorf("%w: %d rows exceeds ceiling %d", ErrRowLimit, total, n.opts.MaxRows)
	}
	merged := make([]api.Row, 0, total)
	for _, left := range *rows {
		for _, right := range other {
			row := make(api.Row, 0, len(left)+len(right))
			row = append(row, left...)
			row = append(row, right...)
			merged = append(merged, row)
		}
	}
	*rows = merged
	return nil
}

func (n *normalizer) appendCell(rows *[]api.Row, v api.Value) {
	name := n.name()
	for i := range *rows {
		(*rows)[i] = append((*rows)[i], api.Cell{Name: name, Value: v})
	}
}

// included applies the selection filter to the current path. Membership is
// exact; there is no prefix or suffix matching.
func (n *normalizer) included() bool {
	return n.opts.Selection == nil || n.opts.Selection.Has(n.path)
}

// name joins the current path into a column name, consulting the cache
// first. The cache always agrees with direct computation; it only matters
// when many structurally identical inputs repeat the same paths.
func (n *normalizer) name() string {
	if len(n.path) == 0 {
		return n.opts.Fallback
	}
	key := n.path.Key()
	if cached, ok := n.names[key]; ok {
		return cached
	}
	joined := strings.Join(n.path, n.opts.Separator)
	if joined == "" {
		joined = n.opts.Fallback
	}
	n.names[key] = joined
	return joined
}
