package maze

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// MaxLineLength is the longest line, in bytes, that Decode accepts
const MaxLineLength int = 16 << 20

// Decode reads a reward grid from r and validates it with New. Each
// non-blank line is one row of the grid; cells are separated by
// whitespace, commas or both. Lines beginning with '#' are comments.
// Lines may be at most MaxLineLength bytes long.
func Decode(r io.Reader) (*Maze, error) {
	var grid [][]int

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), MaxLineLength)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.FieldsFunc(text, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		row := make([]int, len(fields))
		for i, field := range fields {
			value, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("decode: line %d: could not parse "+
					"cell %d: %w", line, i, err)
			}
			row[i] = value
		}
		grid = append(grid, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("decode: could not read grid: %w", err)
	}

	return New(grid)
}

// Encode writes the reward grid of m to w in the format read by
// Decode
func Encode(w io.Writer, m *Maze) error {
	bw := bufio.NewWriter(w)
	for _, row := range m.Grid() {
		cells := make([]string, len(row))
		for i, value := range row {
			cells[i] = strconv.Itoa(value)
		}
		if _, err := fmt.Fprintln(bw, strings.Join(cells, " ")); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	}
	return bw.Flush()
}
