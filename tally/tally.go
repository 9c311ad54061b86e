// Package tally classifies grid rows into success and failure counts.
package tally

import (
	"strings"

	"github.com/moyoez/statusboard/types"
)

const (
	// StatusKeyword is matched case-insensitively as a substring of header cells.
	StatusKeyword = "status"
	// SuccessValue is the only cell value counted as a success. The match is exact.
	SuccessValue = "SUCCESS"
	// NoColumn marks a grid without a status header.
	NoColumn = -1
)

// StatusColumn returns the index of the first header containing "status", or NoColumn.
func StatusColumn(header []string) int {
	for i, h := range header {
		if strings.Contains(strings.ToLower(h), StatusKeyword) {
			return i
		}
	}
	return NoColumn
}

// Count tallies every row after the header by the cell at column.
// Missing cells land in the failed bucket.
func Count(grid types.Grid, column int) types.Counts {
	var counts types.Counts
	for row := 1; row < len(grid); row++ {
		if value, ok := grid.Cell(row, column); ok && value == SuccessValue {
			counts.Success++
		} else {
			counts.Failed++
		}
	}
	return counts
}

// Aggregate derives counts for grid. When the grid has no status header the
// previous counts are returned untouched together with NoColumn.
func Aggregate(grid types.Grid, prev types.Counts) (types.Counts, int) {
	column := StatusColumn(grid.Header())
	if column == NoColumn {
		return prev, NoColumn
	}
	return Count(grid, column), column
}
