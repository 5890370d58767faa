// SPDX-License-Identifier: MIT

// Package gridtext reads matrices written as plain text: one row per line,
// cells separated by whitespace, blank lines ignored.
//
//	1 2 3
//	4 5 6
package gridtext

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// ErrParse reports malformed grid text: no rows, a bad number or rows of
// different lengths.
var ErrParse = errors.New("gridtext: parse error")

// line is one non-blank input line with its 1-based position.
type line struct {
	no     int
	fields []string
}

// Parse converts text into rows of float64.
func Parse(text string) ([][]float64, error) {
	lines := lo.FilterMap(strings.Split(text, "\n"), func(s string, i int) (line, bool) {
		f := strings.Fields(s)
		return line{no: i + 1, fields: f}, len(f) > 0
	})
	if len(lines) == 0 {
		return nil, fmt.Errorf("empty input: %w", ErrParse)
	}

	width := len(lines[0].fields)
	rows := make([][]float64, len(lines))
	for i, ln := range lines {
		if len(ln.fields) != width {
			return nil, fmt.Errorf("line %d: %d cells, want %d: %w", ln.no, len(ln.fields), width, ErrParse)
		}
		row := make([]float64, width)
		for j, f := range ln.fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d cell %d: %q: %w", ln.no, j+1, f, ErrParse)
			}
			row[j] = v
		}
		rows[i] = row
	}

	return rows, nil
}

// Read parses everything r yields.
func Read(r io.Reader) ([][]float64, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("gridtext: read: %w", err)
	}

	return Parse(string(b))
}

// Format renders rows in the form Parse accepts, using the shortest
// representation that round-trips.
func Format(rows [][]float64) string {
	return strings.Join(lo.Map(rows, func(row []float64, _ int) string {
		return strings.Join(lo.Map(row, func(v float64, _ int) string {
			return strconv.FormatFloat(v, 'g', -1, 64)
		}), " ")
	}), "\n")
}
