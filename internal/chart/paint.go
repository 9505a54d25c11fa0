package chart

import (
	"math"

	"github.com/aurine/docgen/internal/canvas"
)

// Paint draws the chart into r on the canvas. Pie charts keep their aspect
// ratio and are centered in r; bar and line charts stretch to fill it, the
// way the SVG encoding does with preserveAspectRatio="none".
func Paint(c *canvas.Canvas, r canvas.Rect, ch *Chart) {
	if ch == nil || ch.Width <= 0 || ch.Height <= 0 || r.W <= 0 || r.H <= 0 {
		return
	}

	sx, sy := r.W/ch.Width, r.H/ch.Height
	ox, oy := r.X, r.Y
	if ch.Kind == KindPie {
		s := math.Min(sx, sy)
		sx, sy = s, s
		ox += (r.W - ch.Width*s) / 2
		oy += (r.H - ch.Height*s) / 2
	}
	at := func(p Point) canvas.Pt {
		return canvas.Pt{X: ox + p.X*sx, Y: oy + p.Y*sy}
	}

	for _, s := range ch.Sectors {
		if s.Span() <= 0 {
			continue
		}
		flat := s.Path.Flatten()
		pts := make([]canvas.Pt, len(flat))
		for i, p := range flat {
			pts[i] = at(p)
		}
		c.FillPolygon(pts, canvas.ParseHex(s.Color))
	}

	for _, b := range ch.Bars {
		if b.Height <= 0 {
			continue
		}
		c.FillRect(canvas.Rect{
			X: ox + b.X*sx,
			Y: oy + b.Y*sy,
			W: b.Width * sx,
			H: b.Height * sy,
		}, b.Radius*math.Min(sx, sy), canvas.ParseHex(b.Color))
	}

	for _, l := range ch.Lines {
		pts := make([]canvas.Pt, len(l.Points))
		for i, p := range l.Points {
			pts[i] = at(p)
		}
		c.StrokePolyline(pts, l.StrokeWidth, canvas.ParseHex(l.Color))
	}

	textScale := sy
	if ch.Kind != KindPie {
		textScale = 1
	}
	for _, l := range ch.Labels {
		c.Text(l.Text, at(Point{X: l.X, Y: l.Y}), canvas.TextStyle{
			Size:   l.Size * textScale,
			Bold:   l.Bold,
			Color:  canvas.ParseHex(l.Color),
			Anchor: canvas.AnchorMiddle,
			Middle: l.Middle,
		})
	}
}
