package ports

import "answer-relay-service/internal/core/domain"

// TableDecoder turns the bytes of one archive entry into a table.
// Decoders are keyed by lower-case file extension including the dot.
type TableDecoder interface {
	Extension() string
	Decode(name string, data []byte) (*domain.Table, error)
}
