package types

// Grid is the decoded first sheet of a workbook. Row 0 is the header row.
// A grid is never mutated after it has been produced; a new upload replaces it.
type Grid [][]string

// Header returns row 0, or nil for an empty grid.
func (g Grid) Header() []string {
	if len(g) == 0 {
		return nil
	}
	return g[0]
}

// Body returns every row after the header.
func (g Grid) Body() [][]string {
	if len(g) < 2 {
		return nil
	}
	return g[1:]
}

// Cell returns the value at (row, col) and false when the row is shorter than col.
func (g Grid) Cell(row, col int) (string, bool) {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return "", false
	}
	return g[row][col], true
}

// Counts is the success/failure tally of a grid.
type Counts struct {
	Success int `json:"successCount"`
	Failed  int `json:"failedCount"`
}

// Total is the number of classified rows.
func (c Counts) Total() int {
	return c.Success + c.Failed
}

// Max returns the larger of the two buckets.
func (c Counts) Max() int {
	if c.Success > c.Failed {
		return c.Success
	}
	return c.Failed
}
