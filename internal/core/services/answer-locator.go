package services

import (
	"fmt"

	"answer-relay-service/internal/core/domain"
)

// DefaultAnswerColumn is the column read when no other is configured.
const DefaultAnswerColumn = "answer"

// LocateAnswer returns the first-row value of column. Later rows are ignored.
func LocateAnswer(t *domain.Table, column string) (string, error) {
	if t == nil || t.Len() == 0 {
		return "", domain.ErrEmptyTable
	}
	idx, ok := t.ColumnIndex(column)
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrColumnNotFound, column)
	}
	return t.Rows[0][idx], nil
}
