package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV serializes the dataset with a header row, preserving field and
// record order. Values are written trimmed; missing values become empty
// cells.
func WriteCSV(w io.Writer, ds *Dataset) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(ds.Fields()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	fields := ds.Fields()
	for i := 0; i < ds.Len(); i++ {
		row := make([]string, len(fields))
		for j, field := range fields {
			row[j], _ = ds.Record(i).Value(field)
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", RowNumber(i), err)
		}
	}

	writer.Flush()
	return writer.Error()
}
