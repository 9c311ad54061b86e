package tui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/moyoez/statusboard/chart"
	"github.com/moyoez/statusboard/types"
)

const barWidth = 40

var (
	successBar = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failedBar  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	axisStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Bars draws the status chart as terminal bars. It satisfies view.Redrawer.
type Bars struct {
	mu         sync.Mutex
	counts     types.Counts
	drawn      bool
	rendered   string
	generation uint64
}

// Update redraws when counts differ from the last drawing.
func (b *Bars) Update(c types.Counts) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.drawn && b.counts == c {
		return false, nil
	}
	top := chart.AxisMax(c)
	b.rendered = strings.Join([]string{
		barLine(chart.LabelSuccess, c.Success, top, successBar),
		barLine(chart.LabelFailed, c.Failed, top, failedBar),
		axisStyle.Render(fmt.Sprintf("%-8s 0%s%d", "", strings.Repeat("─", barWidth-len(fmt.Sprint(top))), top)),
	}, "\n")
	b.counts = c
	b.drawn = true
	b.generation++
	return true, nil
}

// View returns the last drawing.
func (b *Bars) View() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rendered
}

// Generation counts redraws.
func (b *Bars) Generation() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.generation
}

func barLine(label string, value, top int, style lipgloss.Style) string {
	n := 0
	if top > 0 {
		n = value * barWidth / top
	}
	return fmt.Sprintf("%-8s │%s %d", label, style.Render(strings.Repeat("█", n)), value)
}
