// Package importer reads the municipal CSV exports into raw rows for the
// core to normalize. All file-format concerns live here: character
// encoding, delimiter sniffing and preamble skipping. The core packages
// never see an io.Reader.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	enc "github.com/dfcarvalho/caixa-escolar/internal/encoding"
	"github.com/dfcarvalho/caixa-escolar/internal/ledger"
	"github.com/dfcarvalho/caixa-escolar/internal/registry"
)

// Ledger reads a cashflow export and returns normalized transactions.
func Ledger(r io.Reader) ([]ledger.Transaction, error) {
	rows, err := Rows(r)
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}

	return ledger.Normalize(rows), nil
}

// Registry reads a school master export and returns the school set.
func Registry(r io.Reader) ([]registry.School, error) {
	rows, err := Rows(r)
	if err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}

	return registry.FromRows(rows), nil
}

// Rows reads a CSV export into column-name-keyed rows. The header is the
// first row with at least two non-empty cells, which skips the title and
// metadata lines some exports carry. Fully empty rows are dropped; short
// rows resolve missing cells to "".
func Rows(r io.Reader) ([]map[string]string, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	header, start := findHeader(records)
	if header == nil {
		return nil, fmt.Errorf("no header row found")
	}

	var rows []map[string]string

	for _, record := range records[start:] {
		if empty(record) {
			continue
		}

		row := make(map[string]string, len(header))

		for i, name := range header {
			if name == "" {
				continue
			}

			row[name] = cell(record, i)
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// sniffDelimiter picks ';' or ',' by counting occurrences in the first
// line. pandas writes comma-separated files, the prefecture's tool writes
// semicolons.
func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}

	if bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','}) {
		return ';'
	}

	return ','
}

// findHeader returns the trimmed header row and the index of the first data
// row. A header needs at least two non-empty cells.
func findHeader(records [][]string) ([]string, int) {
	for idx, record := range records {
		filled := 0

		for _, c := range record {
			if strings.TrimSpace(c) != "" {
				filled++
			}
		}

		if filled < 2 {
			continue
		}

		header := make([]string, len(record))
		for i, c := range record {
			header[i] = strings.TrimSpace(c)
		}

		return header, idx + 1
	}

	return nil, 0
}

func cell(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}

	return strings.TrimSpace(record[i])
}

func empty(record []string) bool {
	for _, c := range record {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}
