package normalize

import (
	"testing"

	"github.com/ohler55/ojg/oj"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galpin/pluck/api"
	"github.com/galpin/pluck/internal/tree"
)

func parse(t *testing.T, src string) api.Value {
	t.Helper()
	doc, err := oj.Parse([]byte(src))
	require.NoError(t, err)
	return tree.FromAny(doc)
}

// names flattens a row to its column names.
func names(row api.Row) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = cell.Name
	}
	return out
}

func TestNormalizeObjectWithArrayCrossProduct(t *testing.T) {
	rows, err := Normalize(parse(t, `{"a": [{"x": 1}, {"x": 2}], "b": 5}`), nil)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, api.Row{{Name: "a.x", Value: api.Int(1)}, {Name: "b", Value: api.Int(5)}}, rows[0])
	assert.Equal(t, api.Row{{Name: "a.x", Value: api.Int(2)}, {Name: "b", Value: api.Int(5)}}, rows[1])
}

func TestNormalizeSiblingArraysMultiply(t *testing.T) {
	rows, err := Normalize(parse(t, `{"a": [1, 2], "b": [3, 4]}`), nil)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	var got [][2]int64
	for _, row := range rows {
		require.Equal(t, []string{"a", "b"}, names(row))
		got = append(got, [2]int64{row[0].Value.Int(), row[1].Value.Int()})
	}
	assert.Equal(t, [][2]int64{{1, 3}, {1, 4}, {2, 3}, {2, 4}}, got)
}

func TestNormalizeEmptyArrayContributesNothing(t *testing.T) {
	rows, err := Normalize(parse(t, `{"a": [], "b": 5}`), nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, api.Row{{Name: "b", Value: api.Int(5)}}, rows[0])
}

func TestNormalizeNullArrayElementsDropped(t *testing.T) {
	withNulls, err := Normalize(parse(t, `{"a": [null, {"x": 1}, null]}`), nil)
	require.NoError(t, err)
	without, err := Normalize(parse(t, `{"a": [{"x": 1}]}`), nil)
	require.NoError(t, err)
	assert.Equal(t, without, withNulls)
}

func TestNormalizeSelectionIsExact(t *testing.T) {
	opts := api.DefaultOptions()
	opts.Selection = api.NewPathSet(api.Path{"b"})

	rows, err := Normalize(parse(t, `{"a": 1, "b": 2}`), opts)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, api.Row{{Name: "b", Value: api.Int(2)}}, rows[0])
}

func TestNormalizeSelectionIgnoresPrefixes(t *testing.T) {
	opts := api.DefaultOptions()
	opts.Selection = api.NewPathSet(api.Path{"a"})

	// "a" selects only the exact path; "a.b" is not a member.
	rows, err := Normalize(parse(t, `{"a": {"b": 1}}`), opts)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Empty(t, rows[0])
}

func TestNormalizeTopLevelScalarUsesFallback(t *testing.T) {
	opts := &api.Options{Separator: ".", Fallback: "value"}
	rows, err := Normalize(api.Int(7), opts)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, api.Row{{Name: "value", Value: api.Int(7)}}, rows[0])
}

func TestNormalizeTopLevelNull(t *testing.T) {
	rows, err := Normalize(api.Null(), nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, api.Row{{Name: "?", Value: api.Null()}}, rows[0])
}

func TestNormalizeEmptyObject(t *testing.T) {
	rows, err := Normalize(parse(t, `{}`), nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Empty(t, rows[0])
}

func TestNormalizeTopLevelArrayOfScalars(t *testing.T) {
	rows, err := Normalize(parse(t, `[1, 2]`), nil)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, api.Row{{Name: "?", Value: api.Int(1)}}, rows[0])
	assert.Equal(t, api.Row{{Name: "?", Value: api.Int(2)}}, rows[1])
}

func TestNormalizeNestedObjectNames(t *testing.T) {
	opts := &api.Options{Separator: "_", Fallback: "?"}
	rows, err := Normalize(parse(t, `{"a": {"b": {"c": 1}}}`), opts)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"a_b_c"}, names(rows[0]))
}

func TestNormalizeSeparatorAndCache(t *testing.T) {
	// The same path occurs once per element; the cached name must agree
	// with direct computation every time.
	rows, err := Normalize(parse(t, `{"a": [{"x": 1}, {"x": 2}, {"x": 3}]}`), nil)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for _, row := range rows {
		assert.Equal(t, []string{"a.x"}, names(row))
	}
}

func TestNormalizeRowLimit(t *testing.T) {
	opts := api.DefaultOptions()
	opts.MaxRows = 3

	_, err := Normalize(parse(t, `{"a": [1, 2], "b": [3, 4]}`), opts)
	require.ErrorIs(t, err, ErrRowLimit)

	// The ceiling is inclusive.
	opts.MaxRows = 4
	rows, err := Normalize(parse(t, `{"a": [1, 2], "b": [3, 4]}`), opts)
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}

func TestNormalizeBatchConcatenatesRows(t *testing.T) {
	inputs := []api.Value{
		parse(t, `{"a": [{"x": 1}, {"x": 2}], "b": 5}`),
		parse(t, `{"a": [{"x": 3}], "b": 6}`),
	}

	rows, err := NormalizeBatch(inputs, nil)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for _, row := range rows {
		assert.Equal(t, []string{"a.x", "b"}, names(row))
	}
	assert.Equal(t, int64(3), rows[2][0].Value.Int())
}

func TestNormalizeBatchPropagatesRowLimit(t *testing.T) {
	opts := api.DefaultOptions()
	opts.MaxRows = 2

	inputs := []api.Value{
		parse(t, `{"a": 1}`),
		parse(t, `{"a": [1, 2], "b": [3, 4]}`),
	}
	_, err := NormalizeBatch(inputs, opts)
	require.ErrorIs(t, err, ErrRowLimit)
}
