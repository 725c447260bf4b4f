// Package csvfile exports the comment table as a comma-delimited flat file.
package csvfile

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/openregs/docketsync/internal/comments"
)

// Write saves all rows to path: header row of column names, one row per
// comment, no index column.
func Write(path string, rows []comments.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(comments.Columns()); err != nil {
		_ = f.Close()
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range rows {
		if err := w.Write(r.Values()); err != nil {
			_ = f.Close()
			return fmt.Errorf("write csv row %s: %w", r.DocID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flush csv %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close csv %s: %w", path, err)
	}
	return nil
}
