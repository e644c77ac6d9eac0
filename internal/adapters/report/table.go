// Package report renders reconciled rows for the user: a fixed-width text
// table and an optional percentage bar chart of the grade distribution.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/avasisht/gradelens/internal/domain/grade"
	"github.com/avasisht/gradelens/internal/domain/model"
)

// undefinedAvg is printed for rows whose weighted denominator was zero.
const undefinedAvg = "-"

// WriteTable renders rows as a fixed-width table: group keys, one column
// per allowed grade in canonical order, Total, and Avg. Column widths are
// sized to content.
func WriteTable(w io.Writer, rows []model.ReconciledRow) error {
	grades := grade.Canonical()

	header := []string{"Year", "Sem", "Course"}
	for _, g := range grades {
		header = append(header, string(g))
	}
	header = append(header, "Total", "Avg")

	cells := make([][]string, 0, len(rows)+1)
	cells = append(cells, header)
	for _, row := range rows {
		line := []string{row.Year, strconv.Itoa(row.Semester), row.Course}
		for _, g := range grades {
			line = append(line, strconv.Itoa(row.Count(g)))
		}
		line = append(line, strconv.Itoa(row.Total), formatAvg(row.Avg))
		cells = append(cells, line)
	}

	widths := make([]int, len(header))
	for _, line := range cells {
		for i, cell := range line {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	for _, line := range cells {
		padded := make([]string, len(line))
		for i, cell := range line {
			padded[i] = pad(cell, widths[i], i >= 3)
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(padded, "  "), " ")); err != nil {
			return err
		}
	}
	return nil
}

// formatAvg renders a weighted average to two decimals, or the undefined
// marker when no point-carrying grade was counted.
func formatAvg(avg *float64) string {
	if avg == nil {
		return undefinedAvg
	}
	return strconv.FormatFloat(*avg, 'f', 2, 64)
}

// pad left-aligns text columns and right-aligns numeric ones.
func pad(s string, width int, rightAlign bool) string {
	if len(s) >= width {
		return s
	}
	fill := strings.Repeat(" ", width-len(s))
	if rightAlign {
		return fill + s
	}
	return s + fill
}
