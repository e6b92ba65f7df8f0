package sheets

import "context"

// Store is a spreadsheet-shaped snapshot store. Row 1 is the header row;
// every other row is one bond. Column indices are 1-based. Column reads
// return body cells only (header excluded), in fixed row order.
type Store interface {
	HeaderRow(ctx context.Context) ([]string, error)
	Column(ctx context.Context, index int) ([]string, error)
	AllRows(ctx context.Context) ([][]string, error)

	// ColumnFormulas returns the body cells of a column rendered as
	// formulas (e.g. =HYPERLINK(...)), falling back to plain values
	// for cells without one.
	ColumnFormulas(ctx context.Context, index int) ([]string, error)

	// AppendColumn writes a new rightmost column with the given header
	// and body values.
	AppendColumn(ctx context.Context, header string, values []string) error
}

// columnLetter converts a 1-based column index to its A1 letter
// (1=A, 2=B, 27=AA).
func columnLetter(index int) string {
	result := ""
	for index > 0 {
		index--
		result = string(rune('A'+index%26)) + result
		index /= 26
	}
	return result
}
