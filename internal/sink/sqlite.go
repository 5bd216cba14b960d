// Package sink writes typed columnar batches to SQLite for downstream
// querying.
package sink

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/galpin/pluck/api"
)

// WriteBatch creates (or replaces) a table holding the batch and inserts
// every row in a single transaction.
func WriteBatch(dbPath, table string, batch api.Batch) error {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}
	defer db.Close()

	// Bulk-insert tuning; durability does not matter for a fresh export.
	if _, err := db.Exec("PRAGMA synchronous = OFF"); err != nil {
		return err
	}
	if _, err := db.Exec("PRAGMA journal_mode = MEMORY"); err != nil {
		return err
	}

	if _, err := db.Exec("DROP TABLE IF EXISTS " + quoteIdent(table)); err != nil {
		return fmt.Errorf("drop table %s: %w", table, err)
	}
	if len(batch.Fields) == 0 {
		// An empty schema has no table shape to create.
		return nil
	}
	if _, err := db.Exec(createStmt(table, batch.Fields)); err != nil {
		return fmt.Errorf("create table %s: %w", table, err)
	}
	if batch.NumRows == 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(insertStmt(table, batch.Fields))
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()

	args := make([]any, len(batch.Columns))
	for row := 0; row < batch.NumRows; row++ {
		for col := range batch.Columns {
			args[col] = batch.Columns[col].Value(row)
		}
		if _, err := stmt.Exec(args...); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert row %d: %w", row, err)
		}
	}
	return tx.Commit()
}

// quoteIdent quotes a SQL identifier. Column names come straight from JSON
// keys, so embedded double quotes must be doubled per SQL rules rather than
// backslash-escaped.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func createStmt(table string, fields []api.Field) string {
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = quoteIdent(f.Name) + " " + sqlType(f.Type)
	}
	return fmt.Sprintf(`CREATE TABLE %s (%s)`, quoteIdent(table), strings.Join(cols, ", "))
}

func insertStmt(table string, fields []api.Field) string {
	cols := make([]string, len(fields))
	marks := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = quoteIdent(f.Name)
		marks[i] = "?"
	}
	return fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		quoteIdent(table), strings.Join(cols, ", "), strings.Join(marks, ", "))
}

func sqlType(t api.ColumnType) string {
	switch t {
	case api.TypeBool, api.TypeInt:
		return "INTEGER"
	case api.TypeFloat:
		return "REAL"
	default:
		return "TEXT"
	}
}
