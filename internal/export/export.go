// Package export writes tidy tables to parquet or delimited files.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"

	"github.com/nconklindev/journeyload/internal/config"
	"github.com/nconklindev/journeyload/internal/types"
)

// Write serialises t to path, choosing the format from the extension:
// .parquet is columnar, .csv and .txt are comma delimited. A failed write
// leaves no file behind.
func Write(t *types.Table, path string) error {
	format, err := config.OutputFormat(path)
	if err != nil {
		return err
	}

	return writeFile(path, func(f *os.File) error {
		if format == "parquet" {
			return writeParquet(f, t)
		}
		return writeCSV(f, t)
	})
}

func writeFile(path string, write func(f *os.File) error) error {
	outFile, err := os.Create(path)
	if err != nil {
		return err
	}

	err = write(outFile)
	// the parquet writer closes its sink itself
	if cerr := outFile.Close(); err == nil && !errors.Is(cerr, os.ErrClosed) {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func writeCSV(f *os.File, t *types.Table) error {
	writer := csv.NewWriter(f)

	if err := writer.Write(t.Names()); err != nil {
		return err
	}
	record := make([]string, t.NumCols())
	for i := 0; i < t.NumRows(); i++ {
		for j, v := range t.Row(i) {
			record[j] = v.String()
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
