package services

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"

	log "github.com/sirupsen/logrus"

	"answer-relay-service/internal/core/domain"
	ports "answer-relay-service/internal/core/ports/output"
)

// DefaultMaxEntrySize bounds the decompressed size of the data file.
const DefaultMaxEntrySize int64 = 50 << 20

// ArchiveExtractor decodes the single data file carried by an uploaded ZIP.
// It works entirely in memory and holds no per-request state.
type ArchiveExtractor struct {
	decoders     map[string]ports.TableDecoder
	maxEntrySize int64
}

// NewArchiveExtractor creates an extractor accepting the given decoders.
// A non-positive maxEntrySize falls back to DefaultMaxEntrySize.
func NewArchiveExtractor(maxEntrySize int64, decoders ...ports.TableDecoder) *ArchiveExtractor {
	if maxEntrySize <= 0 {
		maxEntrySize = DefaultMaxEntrySize
	}
	byExt := make(map[string]ports.TableDecoder, len(decoders))
	for _, d := range decoders {
		byExt[strings.ToLower(d.Extension())] = d
	}
	return &ArchiveExtractor{decoders: byExt, maxEntrySize: maxEntrySize}
}

// ExtractTable parses data as a ZIP archive and decodes its first entry.
// Only the first entry in listing order is considered, even when the archive
// carries more.
func (e *ArchiveExtractor) ExtractTable(data []byte) (*domain.Table, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidArchive, err)
	}
	if len(zr.File) == 0 {
		return nil, domain.ErrEmptyArchive
	}

	entry := zr.File[0]
	decoder, ok := e.decoders[strings.ToLower(path.Ext(entry.Name))]
	if !ok {
		return nil, fmt.Errorf("%w: first entry is %q", domain.ErrUnsupportedFileType, entry.Name)
	}
	if len(zr.File) > 1 {
		log.WithFields(log.Fields{
			"entry":   entry.Name,
			"entries": len(zr.File),
		}).Debug("archive has multiple entries, using the first")
	}

	content, err := e.readEntry(entry)
	if err != nil {
		return nil, err
	}

	return decoder.Decode(entry.Name, content)
}

func (e *ArchiveExtractor) readEntry(entry *zip.File) ([]byte, error) {
	if entry.UncompressedSize64 > uint64(e.maxEntrySize) {
		return nil, fmt.Errorf("%w: %s is %d bytes", domain.ErrEntryTooLarge, entry.Name, entry.UncompressedSize64)
	}

	rc, err := entry.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", domain.ErrInvalidArchive, entry.Name, err)
	}
	defer rc.Close()

	// The header size can lie; cap what is actually inflated.
	content, err := io.ReadAll(io.LimitReader(rc, e.maxEntrySize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrInvalidArchive, entry.Name, err)
	}
	if int64(len(content)) > e.maxEntrySize {
		return nil, fmt.Errorf("%w: %s", domain.ErrEntryTooLarge, entry.Name)
	}
	return content, nil
}
