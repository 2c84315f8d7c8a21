// Package source reads schedule tables into the header-plus-cells shape the
// layout engine consumes.
package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gantt2svg/internal/schedule"
)

// Table is a header row and the body rows aligned to it.
type Table struct {
	Header []string
	Rows   [][]schedule.Cell
}

// ReadCSVFile opens filename and reads it with ReadCSV.
func ReadCSVFile(filename string) (Table, error) {
	file, err := os.Open(filename)
	if err != nil {
		return Table{}, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer file.Close()
	return ReadCSV(file)
}

// ReadCSV reads a CSV table. The first record is the header; header names
// are trimmed but otherwise kept as-is. Body cells stay text with surrounding
// space trimmed. Date columns are parsed later by schedule.Normalize, so a
// title such as "007" reaches the chart exactly as written.
func ReadCSV(r io.Reader) (Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return Table{}, fmt.Errorf("error reading CSV header: file is empty")
	}
	if err != nil {
		return Table{}, fmt.Errorf("error reading CSV header: %w", err)
	}
	for i, h := range header {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		header[i] = h
	}

	t := Table{Header: header}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Table{}, fmt.Errorf("error reading CSV: %w", err)
		}
		if isBlank(record) {
			continue
		}
		row := make([]schedule.Cell, len(record))
		for i, field := range record {
			row[i] = strings.TrimSpace(field)
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
