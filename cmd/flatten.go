package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/apache/arrow/go/v7/arrow/ipc"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"

	"github.com/galpin/pluck/api"
	"github.com/galpin/pluck/internal/columnar"
	"github.com/galpin/pluck/internal/normalize"
	"github.com/galpin/pluck/internal/sink"
	"github.com/galpin/pluck/internal/tree"
)

var (
	separator   string
	fallback    string
	selectPaths []string
	maxRows     int
	batchInput  bool
	format      string
	outputPath  string
	sqlitePath  string
	sqliteTable string
)

func init() {
	flattenCmd.Flags().StringVar(&separator, "separator", ".", "Text joining path segments into column names")
	flattenCmd.Flags().StringVar(&fallback, "fallback", "?", "Column name for values at the empty path")
	flattenCmd.Flags().StringArrayVar(&selectPaths, "select", nil, "Dotted path to emit (repeatable; default all)")
	flattenCmd.Flags().IntVar(&maxRows, "max-rows", 0, "Cross-join row ceiling per input (0 = unbounded)")
	flattenCmd.Flags().BoolVar(&batchInput, "batch", false, "Treat a top-level array as a sequence of documents")
	flattenCmd.Flags().StringVar(&format, "format", "records", "Output format: records, columns, csv or arrow")
	flattenCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (default stdout)")
	flattenCmd.Flags().StringVar(&sqlitePath, "sqlite", "", "Also write the typed batch to this SQLite database")
	flattenCmd.Flags().StringVar(&sqliteTable, "table", "pluck", "Table name for --sqlite")
	rootCmd.AddCommand(flattenCmd)
}

var flattenCmd = &cobra.Command{
	Use:   "flatten [input.json]",
	Short: "Flatten a JSON document into tabular rows",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(args[0])
		if err != nil {
			return err
		}
		doc, err := oj.Parse(data)
		if err != nil {
			return fmt.Errorf("parse %s: %w", args[0], err)
		}

		opts := flattenOptions()
		rows, err := normalizeDoc(doc, opts)
		if err != nil {
			return err
		}
		logger.Debug("flattened", "rows", len(rows))

		if sqlitePath != "" {
			batch, err := columnar.FromRows(rows)
			if err != nil {
				return err
			}
			if err := sink.WriteBatch(sqlitePath, sqliteTable, batch); err != nil {
				return err
			}
			logger.Debug("wrote sqlite", "path", sqlitePath, "table", sqliteTable)
		}

		out, closeOut, err := openOutput(outputPath)
		if err != nil {
			return err
		}
		defer closeOut()

		switch format {
		case "records":
			return writeRecords(out, rows)
		case "columns":
			return writeColumns(out, rows)
		case "csv":
			return writeCSV(out, rows)
		case "arrow":
			return writeArrow(out, rows)
		default:
			return fmt.Errorf("unknown format %q", format)
		}
	},
}

func flattenOptions() *api.Options {
	opts := &api.Options{Separator: separator, Fallback: fallback, MaxRows: maxRows}
	if len(selectPaths) > 0 {
		opts.Selection = api.NewPathSet()
		for _, expr := range selectPaths {
			opts.Selection.Add(api.ParsePath(expr))
		}
	}
	return opts
}

func normalizeDoc(doc any, opts *api.Options) ([]api.Row, error) {
	if items, ok := doc.([]any); ok && batchInput {
		values := make([]api.Value, len(items))
		for i, item := range items {
			values[i] = tree.FromAny(item)
		}
		return normalize.NormalizeBatch(values, opts)
	}
	return normalize.Normalize(tree.FromAny(doc), opts)
}

func writeRecords(out io.Writer, rows []api.Row) error {
	records := columnar.ToRecords(rows)
	native := make([]any, len(records))
	for i, record := range records {
		m := make(map[string]any, len(record))
		for name, v := range record {
			m[name] = v.Interface()
		}
		native[i] = m
	}
	_, err := out.Write([]byte(oj.JSON(native, 2) + "\n"))
	return err
}

func writeColumns(out io.Writer, rows []api.Row) error {
	_, cols := columnar.ToColumns(rows)
	native := make(map[string]any, len(cols))
	for name, values := range cols {
		items := make([]any, len(values))
		for i, v := range values {
			items[i] = v.Interface()
		}
		native[name] = items
	}
	_, err := out.Write([]byte(oj.JSON(native, 2) + "\n"))
	return err
}

func writeCSV(out io.Writer, rows []api.Row) error {
	batch, err := columnar.FromRows(rows)
	if err != nil {
		return err
	}
	w := csv.NewWriter(out)
	header := make([]string, len(batch.Fields))
	for i, f := range batch.Fields {
		header[i] = f.Name
	}
	if err := w.Write(header); err != nil {
		return err
	}
	record := make([]string, len(batch.Columns))
	for row := 0; row < batch.NumRows; row++ {
		for col := range batch.Columns {
			record[col] = csvCell(&batch.Columns[col], row)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// csvCell renders one cell with the same textual convention as text
// columns; nulls render empty.
func csvCell(c *api.Column, row int) string {
	v := c.Value(row)
	switch cell := v.(type) {
	case nil:
		return ""
	case bool:
		if cell {
			return "True"
		}
		return "False"
	case int64:
		return strconv.FormatInt(cell, 10)
	case float64:
		return strconv.FormatFloat(cell, 'g', -1, 64)
	case string:
		return cell
	}
	return fmt.Sprint(v)
}

func writeArrow(out io.Writer, rows []api.Row) error {
	batch, err := columnar.FromRows(rows)
	if err != nil {
		return err
	}
	rec, err := columnar.ArrowRecord(batch)
	if err != nil {
		return err
	}
	defer rec.Release()

	w := ipc.NewWriter(out, ipc.WithSchema(rec.Schema()))
	if err := w.Write(rec); err != nil {
		_ = w.Close()
		return fmt.Errorf("write arrow stream: %w", err)
	}
	return w.Close()
}
