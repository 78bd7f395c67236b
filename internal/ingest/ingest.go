// Package ingest implements the two concrete ports.OrderLineSource
// adapters cmd/planctl drives: a decoded JSON array and a header-keyed
// CSV reader, grounded on
// inference-sim-inference-sim/sim/workload/tracev2.go's encoding/csv
// row-to-struct-field loop (generalized here to the planner's
// string-keyed RawRow instead of a fixed struct).
package ingest

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"loadplanner/internal/ports"
)

// JSONSource decodes a top-level JSON array of objects, each becoming
// one RawRow with every value rendered to a string via fmt's %v; numeric
// and date parsing is left to the Normalizer.
type JSONSource struct{}

var _ ports.OrderLineSource = JSONSource{}

func (JSONSource) ReadRows(r io.Reader) ([]ports.RawRow, error) {
	var raw []map[string]any
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("ingest: decode json rows: %w", err)
	}

	rows := make([]ports.RawRow, len(raw))
	for i, m := range raw {
		row := make(ports.RawRow, len(m))
		for k, v := range m {
			row[k] = fmt.Sprintf("%v", v)
		}
		rows[i] = row
	}
	return rows, nil
}

// CSVSource reads a header row followed by data rows, one RawRow per
// data row keyed by the header's column names.
type CSVSource struct{}

var _ ports.OrderLineSource = CSVSource{}

func (CSVSource) ReadRows(r io.Reader) ([]ports.RawRow, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("ingest: read csv header: %w", err)
	}

	var rows []ports.RawRow
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ingest: read csv row: %w", err)
		}

		row := make(ports.RawRow, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
