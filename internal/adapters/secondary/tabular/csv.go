package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"answer-relay-service/internal/core/domain"
	ports "answer-relay-service/internal/core/ports/output"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type csvDecoder struct{}

// NewCSVDecoder decodes comma-separated files with a header row.
func NewCSVDecoder() ports.TableDecoder {
	return csvDecoder{}
}

func (csvDecoder) Extension() string { return ".csv" }

func (csvDecoder) Decode(name string, data []byte) (*domain.Table, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s is empty", domain.ErrMalformedTable, name)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrMalformedTable, name, err)
	}

	var rows [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrMalformedTable, name, err)
		}
		rows = append(rows, rec)
	}

	return newTable(name, header, rows)
}

// newTable squares ragged rows to the header width and rejects tables
// without data rows.
func newTable(name string, header []string, rows [][]string) (*domain.Table, error) {
	if len(header) == 0 {
		return nil, fmt.Errorf("%w: %s has no columns", domain.ErrMalformedTable, name)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s has no data rows", domain.ErrMalformedTable, name)
	}

	width := len(header)
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		sq := make([]string, width)
		copy(sq, row)
		out = append(out, sq)
	}

	return &domain.Table{
		Source:  name,
		Columns: header,
		Rows:    out,
	}, nil
}
