// Package chart computes the donut, bar and line charts used in campaign
// reports. Renderers are pure functions of their input: they return a vector
// description (*Chart) that can be encoded as SVG markup or painted onto a
// raster canvas.
package chart

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrEmptySeries is returned when a renderer receives no data points.
	ErrEmptySeries = errors.New("chart: empty series")
	// ErrInvalidValue is returned for negative, NaN or infinite values.
	ErrInvalidValue = errors.New("chart: invalid value")
)

// LabeledValue is one pie slice or bar.
type LabeledValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Color string  `json:"color,omitempty"`
}

// Series is an ordered list of labeled values. Order decides angular order
// in a pie and horizontal position in a bar chart.
type Series []LabeledValue

// Total returns the sum of all values.
func (s Series) Total() float64 {
	var total float64
	for _, item := range s {
		total += item.Value
	}
	return total
}

// Max returns the largest value, or 0 for an empty series.
func (s Series) Max() float64 {
	if len(s) == 0 {
		return 0
	}
	m := s[0].Value
	for _, item := range s[1:] {
		m = math.Max(m, item.Value)
	}
	return m
}

func (s Series) validate() error {
	if len(s) == 0 {
		return ErrEmptySeries
	}
	for i, item := range s {
		if err := checkValue(item.Value); err != nil {
			return fmt.Errorf("entry %d (%q): %w", i, item.Name, err)
		}
	}
	return nil
}

// WeeklyPoint carries two metrics that share one vertical axis.
type WeeklyPoint struct {
	Name   string  `json:"name"`
	Reach  float64 `json:"reach"`
	Clicks float64 `json:"clicks"`
}

func checkValue(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidValue, v)
	}
	return nil
}

// SafeDiv divides num by den with a zero-fill policy: a zero or non-finite
// denominator yields 0 instead of NaN or ±Inf.
func SafeDiv(num, den float64) float64 {
	if den == 0 || math.IsNaN(den) || math.IsInf(den, 0) {
		return 0
	}
	return num / den
}

// Kind identifies the chart type.
type Kind string

const (
	KindPie  Kind = "pie"
	KindBar  Kind = "bar"
	KindLine Kind = "line"
)

const (
	DefaultPieSize    = 200.0
	DefaultBarHeight  = 200.0
	DefaultLineHeight = 200.0
)

// Options holds the layout constants shared by the renderers.
type Options struct {
	// Donut radii as fractions of the canvas side.
	DonutOuterRatio float64
	DonutInnerRatio float64
	// PieStartAngle places the first slice; -90 is 12 o'clock.
	PieStartAngle float64

	// PlotWidth is the abstract width of bar and line charts.
	PlotWidth float64

	BarAxisReserve    float64 // subtracted from height to get the tallest bar
	BarBaselineOffset float64 // distance from the bottom edge to the bar baseline
	BarInsetRatio     float64 // gap on each side of a bar, as a fraction of its slot
	BarCornerRadius   float64
	BarDefaultColor   string

	LineBottomPad   float64 // distance from the bottom edge to the zero line
	LineVerticalPad float64 // height minus this is the plotted range
	LineStrokeWidth float64
	ReachColor      string
	ClicksColor     string

	LabelBaselineOffset float64 // axis labels sit this far above the bottom edge
	LabelFontSize       float64
	CenterFontSize      float64
	TextColor           string
	MutedTextColor      string
}

// DefaultOptions returns the report chart layout.
func DefaultOptions() Options {
	return Options{
		DonutOuterRatio: 0.35,
		DonutInnerRatio: 0.2,
		PieStartAngle:   -90,

		PlotWidth: 100,

		BarAxisReserve:    30,
		BarBaselineOffset: 20,
		BarInsetRatio:     0.1,
		BarCornerRadius:   4,
		BarDefaultColor:   "#ec4899",

		LineBottomPad:   30,
		LineVerticalPad: 50,
		LineStrokeWidth: 2,
		ReachColor:      "#3b82f6",
		ClicksColor:     "#ec4899",

		LabelBaselineOffset: 5,
		LabelFontSize:       8,
		CenterFontSize:      24,
		TextColor:           "#fafafa",
		MutedTextColor:      "#a1a1aa",
	}
}

// Chart is a renderable vector description sized to its view box.
type Chart struct {
	Kind Kind `json:"kind"`
	// Width and Height span the view box. Bar and line charts use PlotWidth
	// abstract units horizontally and stretch to whatever width they are given.
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Sectors []Sector   `json:"sectors,omitempty"`
	Bars    []Column   `json:"bars,omitempty"`
	Lines   []Polyline `json:"lines,omitempty"`
	Labels  []Label    `json:"labels,omitempty"`
}

// Sector is one donut slice.
type Sector struct {
	Name       string  `json:"name"`
	Color      string  `json:"color"`
	StartAngle float64 `json:"startAngle"`
	EndAngle   float64 `json:"endAngle"`
	Path       Path    `json:"-"`
}

// Span returns the angular width in degrees.
func (s Sector) Span() float64 { return s.EndAngle - s.StartAngle }

// Column is one bar. X and Width are percentages of the plot width.
type Column struct {
	Name   string  `json:"name"`
	Color  string  `json:"color"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Radius float64 `json:"radius"`
}

// Polyline is a straight-segment line series. X is a percentage of the plot width.
type Polyline struct {
	Name        string  `json:"name"`
	Color       string  `json:"color"`
	StrokeWidth float64 `json:"strokeWidth"`
	Points      []Point `json:"points"`
}

// Label is a text run. When Percent is set X is a percentage of the plot width.
type Label struct {
	Text    string  `json:"text"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Percent bool    `json:"percent,omitempty"`
	Middle  bool    `json:"middle,omitempty"`
	Size    float64 `json:"size"`
	Bold    bool    `json:"bold,omitempty"`
	Color   string  `json:"color"`
}
