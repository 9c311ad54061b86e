package view

import (
	"context"
	"io"
	"sync"

	"github.com/moyoez/statusboard/tally"
	"github.com/moyoez/statusboard/tool"
	"github.com/moyoez/statusboard/types"
)

// Decoder is the grid loading capability, normally sheet.Decode.
type Decoder func(fileName string, data []byte) (types.Grid, error)

// Redrawer is the chart capability. Update redraws for the given counts and
// reports whether a new drawable was built.
type Redrawer interface {
	Update(c types.Counts) (bool, error)
}

// View is the sole owner of one dashboard's State.
type View struct {
	mu       sync.RWMutex
	state    State
	decode   Decoder
	chart    Redrawer
	maxBytes int64
}

// New creates a view in the "no data loaded" state and draws the initial empty chart.
// chart may be nil when no chart is shown.
func New(decode Decoder, chart Redrawer, maxBytes int64) *View {
	v := &View{
		state:    Initial(),
		decode:   decode,
		chart:    chart,
		maxBytes: maxBytes,
	}
	v.redraw()
	return v
}

// Upload reads and decodes a file, then applies the grid. A read or decode
// failure leaves the state untouched.
func (v *View) Upload(ctx context.Context, fileName string, r io.Reader) (State, error) {
	data, err := tool.ReadAllWithContext(ctx, r, v.maxBytes)
	if err != nil {
		return v.Snapshot(), err
	}
	grid, err := v.decode(fileName, data)
	if err != nil {
		return v.Snapshot(), err
	}
	state, _ := v.Apply(fileName, grid)
	return state, nil
}

// Apply stores grid, recomputes counts and redraws the chart if they changed.
func (v *View) Apply(fileName string, grid types.Grid) (State, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	prev := v.state.Counts()
	v.state = v.state.WithUpload(fileName, grid)
	if v.state.StatusColumn() == tally.NoColumn {
		tool.DefaultLogger.Debugf("[View] %s has no status column, counts left at %+v", fileName, prev)
	}
	redrawn := v.redraw()
	tool.DefaultLogger.Infof("[View] Loaded %s: %d rows, success=%d failed=%d",
		fileName, len(v.state.Body()), v.state.Counts().Success, v.state.Counts().Failed)
	return v.state, redrawn
}

// Toggle flips the table visibility. No recomputation, no redraw.
func (v *View) Toggle() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state = v.state.Toggled()
	return v.state
}

// Snapshot returns the current state.
func (v *View) Snapshot() State {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

// redraw must be called with mu held, or before the view is shared (New).
func (v *View) redraw() bool {
	if v.chart == nil {
		return false
	}
	redrawn, err := v.chart.Update(v.state.Counts())
	if err != nil {
		tool.DefaultLogger.Errorf("[Chart] Failed to redraw chart: %v", err)
		return false
	}
	return redrawn
}
