package chart

import (
	"fmt"
	"math"
)

// Line lays out the weekly reach and clicks lines on one shared vertical
// scale: both series are normalized against the maximum of either. Points are
// spread evenly across PlotWidth and joined by straight segments.
//
// A single point sits at x = 0; an all-zero dataset lies on the zero line.
func Line(points []WeeklyPoint, height float64, opts Options) (*Chart, error) {
	if len(points) == 0 {
		return nil, ErrEmptySeries
	}
	for i, p := range points {
		if err := checkValue(p.Reach); err != nil {
			return nil, fmt.Errorf("point %d (%q) reach: %w", i, p.Name, err)
		}
		if err := checkValue(p.Clicks); err != nil {
			return nil, fmt.Errorf("point %d (%q) clicks: %w", i, p.Name, err)
		}
	}
	if height <= 0 {
		height = DefaultLineHeight
	}

	reach := make([]float64, len(points))
	clicks := make([]float64, len(points))
	var maxValue float64
	for i, p := range points {
		reach[i], clicks[i] = p.Reach, p.Clicks
		maxValue = math.Max(maxValue, math.Max(p.Reach, p.Clicks))
	}

	last := float64(len(points) - 1)
	xAt := func(i int) float64 {
		return SafeDiv(float64(i), last) * opts.PlotWidth
	}
	project := func(values []float64) []Point {
		pts := make([]Point, len(values))
		for i, v := range values {
			pts[i] = Point{
				X: xAt(i),
				Y: height - opts.LineBottomPad - SafeDiv(v, maxValue)*(height-opts.LineVerticalPad),
			}
		}
		return pts
	}

	c := &Chart{Kind: KindLine, Width: opts.PlotWidth, Height: height}
	c.Lines = []Polyline{
		{Name: "reach", Color: opts.ReachColor, StrokeWidth: opts.LineStrokeWidth, Points: project(reach)},
		{Name: "clicks", Color: opts.ClicksColor, StrokeWidth: opts.LineStrokeWidth, Points: project(clicks)},
	}
	for i, p := range points {
		c.Labels = append(c.Labels, Label{
			Text:    p.Name,
			X:       xAt(i),
			Y:       height - opts.LabelBaselineOffset,
			Percent: true,
			Size:    opts.LabelFontSize,
			Color:   opts.MutedTextColor,
		})
	}
	return c, nil
}

// PathData encodes the polyline as an SVG "d" attribute: "M x,y L x,y ...".
func (p Polyline) PathData() string {
	if len(p.Points) == 0 {
		return ""
	}
	d := "M " + num(p.Points[0].X) + "," + num(p.Points[0].Y)
	for _, pt := range p.Points[1:] {
		d += " L " + num(pt.X) + "," + num(pt.Y)
	}
	return d
}
