package chart

import (
	"math"
	"strconv"
)

// Pie lays out a donut chart on a size×size canvas. Slices run clockwise from
// opts.PieStartAngle in series order, each spanning its share of 360°. A zero
// total collapses every slice to zero width.
//
// The center label always shows the first entry's value rounded to an integer
// followed by "%", whichever slice is largest.
func Pie(series Series, size float64, opts Options) (*Chart, error) {
	if err := series.validate(); err != nil {
		return nil, err
	}
	if size <= 0 {
		size = DefaultPieSize
	}

	total := series.Total()
	center := Point{X: size / 2, Y: size / 2}
	outer := size * opts.DonutOuterRatio
	inner := size * opts.DonutInnerRatio

	c := &Chart{Kind: KindPie, Width: size, Height: size}
	accumulated := opts.PieStartAngle
	for _, item := range series {
		percentage := SafeDiv(item.Value, total) * 100
		span := percentage / 100 * 360
		c.Sectors = append(c.Sectors, Sector{
			Name:       item.Name,
			Color:      item.Color,
			StartAngle: accumulated,
			EndAngle:   accumulated + span,
			Path:       ArcPath(center, accumulated, accumulated+span, outer, inner),
		})
		accumulated += span
	}

	c.Labels = append(c.Labels, Label{
		Text:   CenterLabel(series),
		X:      center.X,
		Y:      center.Y,
		Middle: true,
		Size:   opts.CenterFontSize,
		Bold:   true,
		Color:  opts.TextColor,
	})
	return c, nil
}

// CenterLabel returns the donut caption for series: the first value rounded
// half away from zero, with a percent sign.
func CenterLabel(series Series) string {
	if len(series) == 0 {
		return "%"
	}
	return strconv.FormatFloat(math.Round(series[0].Value), 'f', 0, 64) + "%"
}
