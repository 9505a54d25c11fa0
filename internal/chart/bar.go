package chart

// Bar lays out a vertical bar chart PlotWidth units wide and height units tall.
// Bars scale linearly against the series maximum and grow upward from a
// baseline BarBaselineOffset above the bottom edge. An all-zero series yields
// zero-height bars resting on the baseline.
func Bar(series Series, height float64, opts Options) (*Chart, error) {
	if err := series.validate(); err != nil {
		return nil, err
	}
	if height <= 0 {
		height = DefaultBarHeight
	}

	maxValue := series.Max()
	slot := opts.PlotWidth / float64(len(series))
	width := slot * (1 - 2*opts.BarInsetRatio)

	c := &Chart{Kind: KindBar, Width: opts.PlotWidth, Height: height}
	for i, item := range series {
		barHeight := SafeDiv(item.Value, maxValue) * (height - opts.BarAxisReserve)
		x := float64(i)*slot + slot*opts.BarInsetRatio
		color := item.Color
		if color == "" {
			color = opts.BarDefaultColor
		}

		c.Bars = append(c.Bars, Column{
			Name:   item.Name,
			Color:  color,
			X:      x,
			Y:      height - barHeight - opts.BarBaselineOffset,
			Width:  width,
			Height: barHeight,
			Radius: opts.BarCornerRadius,
		})
		c.Labels = append(c.Labels, Label{
			Text:    item.Name,
			X:       x + width/2,
			Y:       height - opts.LabelBaselineOffset,
			Percent: true,
			Size:    opts.LabelFontSize,
			Color:   opts.MutedTextColor,
		})
	}
	return c, nil
}
