// Package view holds the dashboard state and the two user actions that change it.
package view

import (
	"github.com/moyoez/statusboard/tally"
	"github.com/moyoez/statusboard/types"
)

// State is an immutable snapshot of what the dashboard shows. Values are
// derived only through WithUpload and Toggled; readers never mutate it.
type State struct {
	grid         types.Grid
	loaded       bool
	fileName     string
	visible      bool
	counts       types.Counts
	statusColumn int
}

// Initial is the "no data loaded" state.
func Initial() State {
	return State{statusColumn: tally.NoColumn}
}

// WithUpload replaces the grid and recomputes counts. Counts carry over when
// the new grid has no status column. The visible flag is kept.
func (s State) WithUpload(fileName string, grid types.Grid) State {
	counts, column := tally.Aggregate(grid, s.counts)
	return State{
		grid:         grid,
		loaded:       true,
		fileName:     fileName,
		visible:      s.visible,
		counts:       counts,
		statusColumn: column,
	}
}

// Toggled flips the table visibility and nothing else.
func (s State) Toggled() State {
	s.visible = !s.visible
	return s
}

// Loaded reports the "data loaded" state.
func (s State) Loaded() bool { return s.loaded }

// Visible is the table toggle. It survives uploads.
func (s State) Visible() bool { return s.visible }

// Counts are the last computed counts, kept when an upload had no status column.
func (s State) Counts() types.Counts { return s.counts }

// FileName is the name of the last uploaded file.
func (s State) FileName() string { return s.fileName }

// StatusColumn is the status column of the current grid, or tally.NoColumn.
func (s State) StatusColumn() int { return s.statusColumn }

// Grid returns the current grid; nil before the first upload.
func (s State) Grid() types.Grid { return s.grid }

// Header returns row 0 of the grid.
func (s State) Header() []string { return s.grid.Header() }

// Body returns the data rows below the header.
func (s State) Body() [][]string { return s.grid.Body() }

// ShowTable reports whether the table is rendered: data loaded and toggled on.
func (s State) ShowTable() bool { return s.Loaded() && s.visible }

// ChartMax is the upper bound of the chart's value axis.
func (s State) ChartMax() int {
	return s.counts.Max() + 1
}

// Summary converts the state into its JSON shape.
func (s State) Summary() types.Summary {
	return types.Summary{
		Loaded:       s.Loaded(),
		FileName:     s.fileName,
		Visible:      s.visible,
		StatusColumn: s.statusColumn,
		Rows:         len(s.Body()),
		ChartMax:     s.ChartMax(),
		Counts:       s.counts,
	}
}
