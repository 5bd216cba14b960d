package api

// Cell is one (column name, value) pair of a Row.
type Cell struct {
	Name  string
	Value Value
}

// Row is one flattened record. Cell order reflects traversal order; names
// are expected unique within a Row but this is not enforced.
type Row []Cell

// Options configures normalization. The zero value is not usable directly;
// call DefaultOptions or fill Separator and Fallback explicitly.
type Options struct {
	// Separator joins path segments into a column name.
	Separator string
	// Fallback names columns whose path is empty (or joins to "").
	Fallback string
	// Selection, when non-nil, restricts emission to exactly these paths.
	Selection *PathSet
	// MaxRows caps the accumulated row count of a single input during
	// cross-join. Zero means unbounded, which matches the historical
	// behavior; combinatorial inputs can then exhaust memory.
	MaxRows int
}

// DefaultOptions returns the conventional settings: dot separator, "?"
// fallback, no selection, no row ceiling.
func DefaultOptions() *Options {
	return &Options{Separator: ".", Fallback: "?"}
}
