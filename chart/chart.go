// Package chart renders the SUCCESS/FAILED bar chart and manages its lifetime.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/moyoez/statusboard/types"
)

const (
	// SurfaceWidth and SurfaceHeight are the logical drawing surface; Scale multiplies both.
	SurfaceWidth  = 300
	SurfaceHeight = 200

	FormatPNG = "png"
	FormatSVG = "svg"

	LabelSuccess = "SUCCESS"
	LabelFailed  = "FAILED"

	maxTicks = 6
)

var (
	ErrMismatchedSeries = errors.New("categories, values and colors must have the same length")
	ErrReleased         = errors.New("drawable already released")
)

var namedColors = map[string]string{
	"green": "2e7d32",
	"red":   "c62828",
	"white": "ffffff",
	"black": "000000",
}

var (
	backgroundColor = drawing.ColorFromHex("293241")
	foregroundColor = drawing.ColorWhite
)

// Drawable is one rendered chart image. It must be closed when replaced.
type Drawable struct {
	mu          sync.Mutex
	contentType string
	data        []byte
	released    bool
}

func (d *Drawable) ContentType() string {
	return d.contentType
}

// Bytes returns the encoded image, or nil once the drawable has been released.
func (d *Drawable) Bytes() []byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.data
}

func (d *Drawable) Released() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.released
}

// Close releases the image buffer. Closing twice returns ErrReleased.
func (d *Drawable) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.released {
		return ErrReleased
	}
	d.released = true
	d.data = nil
	return nil
}

// Renderer draws bar charts with go-chart.
type Renderer struct {
	Scale  int    // multiplier on the 300x200 surface, <= 0 means 1
	Format string // png or svg
	Title  string
}

// NewRenderer returns a renderer with the dashboard defaults.
func NewRenderer(scale int, format string) *Renderer {
	return &Renderer{Scale: scale, Format: format, Title: "Job Status"}
}

func (r *Renderer) scale() int {
	if r.Scale <= 0 {
		return 1
	}
	return r.Scale
}

func (r *Renderer) provider() (gochart.RendererProvider, string) {
	if r.Format == FormatSVG {
		return gochart.SVG, "image/svg+xml"
	}
	return gochart.PNG, "image/png"
}

// Render draws one bar per category with the value axis running from 0 to max.
func (r *Renderer) Render(categories []string, values []float64, colors []string, max float64) (*Drawable, error) {
	if len(categories) != len(values) || len(categories) != len(colors) {
		return nil, ErrMismatchedSeries
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("no categories to draw")
	}
	if max <= 0 {
		max = 1
	}

	scale := r.scale()
	bars := make([]gochart.Value, len(categories))
	for i := range categories {
		color := parseColor(colors[i])
		bars[i] = gochart.Value{
			Label: categories[i],
			Value: values[i],
			Style: gochart.Style{FillColor: color, StrokeColor: color},
		}
	}

	textStyle := gochart.Style{FontColor: foregroundColor, StrokeColor: foregroundColor}
	bc := gochart.BarChart{
		Title:      r.Title,
		TitleStyle: textStyle,
		Width:      SurfaceWidth * scale,
		Height:     SurfaceHeight * scale,
		DPI:        gochart.DefaultDPI * float64(scale),
		BarWidth:   50 * scale,
		BarSpacing: 40 * scale,
		Background: gochart.Style{
			FillColor: backgroundColor,
			Padding:   gochart.Box{Top: 24 * scale, Left: 8 * scale, Right: 8 * scale, Bottom: 8 * scale},
		},
		Canvas: gochart.Style{FillColor: backgroundColor},
		XAxis:  textStyle,
		YAxis: gochart.YAxis{
			Name:  "Count",
			Style: textStyle,
			Range: &gochart.ContinuousRange{Min: 0, Max: max},
			Ticks: integerTicks(max),
		},
		Bars: bars,
	}

	provider, contentType := r.provider()
	var buf bytes.Buffer
	if err := bc.Render(provider, &buf); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return &Drawable{contentType: contentType, data: buf.Bytes()}, nil
}

// RenderCounts draws the SUCCESS/FAILED chart; the axis tops out one above the tallest bar.
func (r *Renderer) RenderCounts(c types.Counts) (*Drawable, error) {
	return r.Render(
		[]string{LabelSuccess, LabelFailed},
		[]float64{float64(c.Success), float64(c.Failed)},
		[]string{"green", "red"},
		float64(AxisMax(c)),
	)
}

// AxisMax is the upper bound of the value axis for c.
func AxisMax(c types.Counts) int {
	return c.Max() + 1
}

// integerTicks labels 0..max with at most maxTicks evenly spaced integers, max always included.
func integerTicks(max float64) []gochart.Tick {
	top := int(math.Ceil(max))
	step := 1
	for top/step >= maxTicks {
		step *= 2
	}
	ticks := make([]gochart.Tick, 0, maxTicks+1)
	for v := 0; v <= top; v += step {
		ticks = append(ticks, gochart.Tick{Value: float64(v), Label: strconv.Itoa(v)})
	}
	if last := ticks[len(ticks)-1]; int(last.Value) != top {
		ticks = append(ticks, gochart.Tick{Value: float64(top), Label: strconv.Itoa(top)})
	}
	return ticks
}

func parseColor(name string) drawing.Color {
	name = strings.ToLower(strings.TrimSpace(name))
	if hex, ok := namedColors[name]; ok {
		return drawing.ColorFromHex(hex)
	}
	return drawing.ColorFromHex(strings.TrimPrefix(name, "#"))
}
