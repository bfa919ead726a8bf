package tabular

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"answer-relay-service/internal/core/domain"
	ports "answer-relay-service/internal/core/ports/output"
)

const defaultMaxWorkbookSize int64 = 50 << 20

type xlsxDecoder struct {
	maxSize int64
}

// NewXLSXDecoder decodes the first sheet of an Excel workbook. The first row
// is the header; fully blank rows are skipped. maxSize bounds the inflated
// size of the workbook's parts, and no part is ever spilled to disk.
func NewXLSXDecoder(maxSize int64) ports.TableDecoder {
	if maxSize <= 0 {
		maxSize = defaultMaxWorkbookSize
	}
	return xlsxDecoder{maxSize: maxSize}
}

func (xlsxDecoder) Extension() string { return ".xlsx" }

func (d xlsxDecoder) Decode(name string, data []byte) (*domain.Table, error) {
	size, err := inflatedSize(data, d.maxSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrMalformedTable, name, err)
	}
	if size > uint64(d.maxSize) {
		return nil, fmt.Errorf("%w: %s inflates to %d bytes", domain.ErrEntryTooLarge, name, size)
	}

	// Parts at or under UnzipXMLSizeLimit are kept in memory.
	f, err := excelize.OpenReader(bytes.NewReader(data), excelize.Options{
		UnzipSizeLimit:    d.maxSize,
		UnzipXMLSizeLimit: d.maxSize,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrMalformedTable, name, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Warn("close workbook")
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: %s has no sheets", domain.ErrMalformedTable, name)
	}

	all, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrMalformedTable, name, err)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", domain.ErrMalformedTable, name)
	}

	var rows [][]string
	for _, row := range all[1:] {
		if blank(row) {
			continue
		}
		rows = append(rows, row)
	}

	return newTable(name, all[0], rows)
}

// inflatedSize sums the declared uncompressed sizes of a workbook's parts,
// stopping once limit is passed. archive/zip rejects parts that inflate past
// their declared size, so the sum bounds what excelize will read.
func inflatedSize(data []byte, limit int64) (uint64, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, err
	}
	var total uint64
	for _, f := range zr.File {
		if f.UncompressedSize64 > uint64(limit) {
			return f.UncompressedSize64, nil
		}
		total += f.UncompressedSize64
		if total > uint64(limit) {
			break
		}
	}
	return total, nil
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
