package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// TopRowNumber is the 1-based sheet row holding the most recent record; row 1 is
// the header.
const TopRowNumber = 2

// ColumnLetter converts a zero-based column index to A1 letters (0 -> A, 26 -> AA).
func ColumnLetter(col int) string {
	if col < 0 {
		return ""
	}
	var b []byte
	for n := col + 1; n > 0; n = (n - 1) / 26 {
		b = append([]byte{byte('A' + (n-1)%26)}, b...)
	}
	return string(b)
}

func CellRef(col, row int) string {
	return ColumnLetter(col) + strconv.Itoa(row)
}

// ParseCellRef splits an A1 reference into a zero-based column and 1-based row.
func ParseCellRef(ref string) (col, row int, err error) {
	ref = strings.ToUpper(strings.TrimSpace(ref))
	i := 0
	col = 0
	for i < len(ref) && ref[i] >= 'A' && ref[i] <= 'Z' {
		col = col*26 + int(ref[i]-'A'+1)
		i++
	}
	if i == 0 || i == len(ref) {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidCellRef, ref)
	}
	row, err = strconv.Atoi(ref[i:])
	if err != nil || row < 1 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidCellRef, ref)
	}
	return col - 1, row, nil
}
