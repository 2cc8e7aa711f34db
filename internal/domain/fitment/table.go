package fitment

import (
	"strings"
)

// TableKind tells the presentation layer how to render a Table.
type TableKind string

const (
	TableKindData    TableKind = "data"
	TableKindMessage TableKind = "message"
	TableKindError   TableKind = "error"
)

const (
	messageColumn = "message"
	errorColumn   = "error"
)

// Table is the uniform tabular result of every query operation. Messages and errors use the same
// shape with a single column so a UI can render all of them the same way.
type Table struct {
	Kind    TableKind `json:"kind"`
	Columns []string  `json:"columns"`
	Rows    [][]any   `json:"rows"`
}

// NewDataTable returns a data table; rows must match columns in width.
func NewDataTable(columns []string, rows [][]any) *Table {
	if rows == nil {
		rows = [][]any{}
	}
	return &Table{
		Kind:    TableKindData,
		Columns: columns,
		Rows:    rows,
	}
}

// MessageTable returns a single-column table with one row per line.
func MessageTable(lines ...string) *Table {
	rows := make([][]any, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, []any{l})
	}
	return &Table{
		Kind:    TableKindMessage,
		Columns: []string{messageColumn},
		Rows:    rows,
	}
}

// ErrorTable wraps a failure as a single-row table carrying the underlying message.
func ErrorTable(err error) *Table {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return ErrorText(msg)
}

// ErrorText returns an error table carrying msg as is.
func ErrorText(msg string) *Table {
	return &Table{
		Kind:    TableKindError,
		Columns: []string{errorColumn},
		Rows:    [][]any{{msg}},
	}
}

// IsEmpty reports whether a data table holds no rows.
func (t *Table) IsEmpty() bool {
	return t == nil || len(t.Rows) == 0
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Text joins the lines of a message or error table.
func (t *Table) Text() string {
	if t == nil || t.Kind == TableKindData {
		return ""
	}
	lines := make([]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		if len(r) == 0 {
			continue
		}
		if s, ok := r[0].(string); ok {
			lines = append(lines, s)
		}
	}
	return strings.Join(lines, "\n")
}
