package models

// Table is raw tabular market data as delivered by a file or a provider,
// before any column resolution or type conversion.
type Table struct {
	Header []string
	Rows   [][]string
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}
