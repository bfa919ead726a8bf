package domain

// Table is an in-memory tabular record decoded from an uploaded file.
// Rows preserve the order in which they were stored; every row has exactly
// len(Columns) cells.
type Table struct {
	Source  string
	Columns []string
	Rows    [][]string
}

// ColumnIndex returns the position of the named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, c := range t.Columns {
		if c == name {
			return i, true
		}
	}
	return -1, false
}

func (t *Table) Len() int {
	return len(t.Rows)
}
