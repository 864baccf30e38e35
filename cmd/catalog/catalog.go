/*package catalog reads and writes the whitespace-separated text tables used
for observation files, covariance matrices, and chi^2 scans.

Any line containing a '#' is treated as a comment and skipped in its
entirety, as are blank lines. Line numbers reported in errors are file line
numbers, starting at 1.
*/
package catalog

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Table is the set of non-comment rows of a text file.
type Table struct {
	Lines  []int      // File line number of each row.
	Fields [][]string // Whitespace-separated fields of each row.
}

// Parse splits a byte block into a Table.
func Parse(data []byte) *Table {
	lines := split(data, '\n')
	t := &Table{}
	for i, line := range lines {
		if bytes.IndexByte(line, '#') != -1 {
			continue
		}
		words := fields(line)
		if len(words) == 0 {
			continue
		}
		t.Lines = append(t.Lines, i+1)
		t.Fields = append(t.Fields, words)
	}
	return t
}

// ReadFile reads and parses the named file.
func ReadFile(fname string) (*Table, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	return Parse(data), nil
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Fields) }

// CheckWidth returns an error naming the first row which does not have
// exactly n fields.
func (t *Table) CheckWidth(n int) error {
	for i, row := range t.Fields {
		if len(row) != n {
			return fmt.Errorf(
				"Line %d has %d columns, not %d.", t.Lines[i], len(row), n,
			)
		}
	}
	return nil
}

// Strings returns column col. Rows shorter than col+1 are an error.
func (t *Table) Strings(col int) ([]string, error) {
	out := make([]string, len(t.Fields))
	for i, row := range t.Fields {
		if col >= len(row) {
			return nil, fmt.Errorf(
				"Line %d has %d columns, but column %d was requested.",
				t.Lines[i], len(row), col,
			)
		}
		out[i] = row[col]
	}
	return out, nil
}

// Floats returns column col parsed as floating point numbers.
func (t *Table) Floats(col int) ([]float64, error) {
	strs, err := t.Strings(col)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(strs))
	for i := range strs {
		out[i], err = strconv.ParseFloat(strs[i], 64)
		if err != nil {
			return nil, fmt.Errorf(
				"Could not parse '%s' on line %d as a number.",
				strs[i], t.Lines[i],
			)
		}
	}
	return out, nil
}

// Ints returns column col parsed as integers.
func (t *Table) Ints(col int) ([]int, error) {
	strs, err := t.Strings(col)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(strs))
	for i := range strs {
		out[i], err = strconv.Atoi(strs[i])
		if err != nil {
			return nil, fmt.Errorf(
				"Could not parse '%s' on line %d as an integer.",
				strs[i], t.Lines[i],
			)
		}
	}
	return out, nil
}

// Matrix parses every field of a rectangular, fully numeric table. The
// result is row-major.
func (t *Table) Matrix() ([][]float64, error) {
	if t.Len() == 0 {
		return nil, fmt.Errorf("Table contains no data.")
	}
	if err := t.CheckWidth(len(t.Fields[0])); err != nil {
		return nil, err
	}

	out := make([][]float64, len(t.Fields))
	for i, row := range t.Fields {
		out[i] = make([]float64, len(row))
		for j := range row {
			x, err := strconv.ParseFloat(row[j], 64)
			if err != nil {
				return nil, fmt.Errorf(
					"Could not parse '%s' on line %d as a number.",
					row[j], t.Lines[i],
				)
			}
			out[i][j] = x
		}
	}
	return out, nil
}

// CommentString returns a header line describing the columns written by
// FormatCols when called with the same names and order. sizes gives the
// number of output columns spanned by each named column.
func CommentString(
	strNames, floatNames []string, order, sizes []int,
) string {
	tokens := []string{"# Column contents:"}
	tokens = append(tokens, strNames...)
	tokens = append(tokens, floatNames...)

	orderedTokens := []string{tokens[0]}
	orderedSizes := []int{}
	for _, idx := range order {
		if idx >= len(strNames)+len(floatNames) {
			panic("Column ordering out of range.")
		}
		orderedTokens = append(orderedTokens, tokens[idx+1])
		orderedSizes = append(orderedSizes, sizes[idx])
	}

	n := 0
	for i := 1; i < len(orderedTokens); i++ {
		if orderedSizes[i-1] == 1 {
			orderedTokens[i] = fmt.Sprintf("%s(%d)", orderedTokens[i], n)
		} else {
			orderedTokens[i] = fmt.Sprintf("%s(%d-%d)", orderedTokens[i],
				n, n+orderedSizes[i-1]-1)
		}
		n += orderedSizes[i-1]
	}

	return strings.Join(orderedTokens, " ")
}

// FormatCols lays out string and float columns as aligned text lines. order
// indexes into the concatenation of strCols and floatCols.
func FormatCols(
	strCols [][]string, floatCols [][]float64, order []int,
) []string {
	if (len(strCols) == 0 && len(floatCols) == 0) ||
		(len(strCols) > 0 && len(strCols[0]) == 0) ||
		(len(floatCols) > 0 && len(floatCols[0]) == 0) {
		return []string{}
	}

	formatted := make([][]string, 0, len(strCols)+len(floatCols))
	height := -1
	for i := range strCols {
		formatted = append(formatted, formatStringCol(strCols[i]))
		height = checkHeight(height, len(strCols[i]))
	}
	for i := range floatCols {
		formatted = append(formatted, formatFloatCol(floatCols[i]))
		height = checkHeight(height, len(floatCols[i]))
	}

	orderedCols := make([][]string, 0, len(order))
	for _, idx := range order {
		if idx >= len(formatted) {
			panic("Column ordering out of range.")
		}
		orderedCols = append(orderedCols, formatted[idx])
	}

	lines := make([]string, height)
	tokens := make([]string, len(orderedCols))
	for i := 0; i < height; i++ {
		for j := range orderedCols {
			tokens[j] = orderedCols[j][i]
		}
		lines[i] = strings.Join(tokens, " ")
	}

	return lines
}

func checkHeight(height, n int) int {
	if height != -1 && height != n {
		panic("Columns of unequal height.")
	}
	return n
}

func formatStringCol(col []string) []string {
	width := 0
	for i := range col {
		if len(col[i]) > width {
			width = len(col[i])
		}
	}

	out := make([]string, len(col))
	for i := range col {
		out[i] = fmt.Sprintf("%-*s", width, col[i])
	}
	return out
}

func formatFloatCol(col []float64) []string {
	width := 0
	for i := range col {
		n := len(fmt.Sprintf("%.6g", col[i]))
		if n > width {
			width = n
		}
	}

	out := make([]string, len(col))
	for i := range col {
		out[i] = fmt.Sprintf("%*.6g", width, col[i])
	}
	return out
}

// split splits a byte slice at each separator. Faster than bytes.Split()
// because only one separator is used and the output is sized up front.
func split(data []byte, sep byte) [][]byte {
	n := bytes.Count(data, []byte{sep})
	tokens := make([][]byte, 0, n+1)

	for {
		idx := bytes.IndexByte(data, sep)
		if idx == -1 {
			break
		}
		tokens = append(tokens, data[:idx])
		data = data[idx+1:]
	}
	return append(tokens, data)
}

// fields is bytes.Fields() returning strings.
func fields(line []byte) []string {
	words := bytes.Fields(line)
	out := make([]string, len(words))
	for i := range words {
		out[i] = string(words[i])
	}
	return out
}
