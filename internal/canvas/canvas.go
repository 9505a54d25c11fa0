// Package canvas paints documents and charts onto RGBA rasters.
//
// All coordinates are logical (CSS-like) pixels; the canvas multiplies them by
// its scale (the export pixel ratio) before touching the raster.
package canvas

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/vector"
)

// Pt is a point in logical pixels.
type Pt struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in logical pixels.
type Rect struct {
	X, Y, W, H float64
}

// Inset shrinks the rectangle by d on every side.
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, W: r.W - 2*d, H: r.H - 2*d}
}

// Canvas is a raster surface addressed in logical pixels.
// A Canvas is not safe for concurrent use; paint separate pages on separate canvases.
type Canvas struct {
	img    *image.RGBA
	scale  float64
	width  float64
	height float64
	faces  map[faceKey]font.Face
}

// New allocates a canvas of width×height logical pixels rendered at scale.
func New(width, height int, scale float64) *Canvas {
	if scale <= 0 {
		scale = 1
	}
	pw := int(math.Ceil(float64(width) * scale))
	ph := int(math.Ceil(float64(height) * scale))
	return &Canvas{
		img:    image.NewRGBA(image.Rect(0, 0, pw, ph)),
		scale:  scale,
		width:  float64(width),
		height: float64(height),
		faces:  make(map[faceKey]font.Face),
	}
}

// Image returns the underlying raster.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Scale returns the pixel ratio.
func (c *Canvas) Scale() float64 { return c.scale }

// Bounds returns the logical drawing area.
func (c *Canvas) Bounds() Rect { return Rect{W: c.width, H: c.height} }

// Close releases the font faces opened by the canvas.
func (c *Canvas) Close() error {
	var firstErr error
	for k, f := range c.faces {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(c.faces, k)
	}
	return firstErr
}

// Fill paints the whole canvas.
func (c *Canvas) Fill(col color.Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

// FillRect paints a rectangle with optionally rounded corners.
func (c *Canvas) FillRect(r Rect, radius float64, col color.Color) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	c.FillPolygon(roundedRect(r, radius), col)
}

// Box paints a filled rectangle with a 1px border.
func (c *Canvas) Box(r Rect, radius float64, fill, border color.Color) {
	c.FillRect(r, radius, border)
	inner := math.Max(radius-1, 0)
	c.FillRect(r.Inset(1), inner, fill)
}

// Line paints a straight segment of the given logical width.
func (c *Canvas) Line(a, b Pt, width float64, col color.Color) {
	if quad := segmentQuad(a, b, width); quad != nil {
		c.FillPolygon(quad, col)
	}
}

// StrokePolyline paints connected straight segments with round joins.
func (c *Canvas) StrokePolyline(pts []Pt, width float64, col color.Color) {
	for i := 1; i < len(pts); i++ {
		c.Line(pts[i-1], pts[i], width, col)
	}
	if len(pts) > 2 {
		for _, p := range pts[1 : len(pts)-1] {
			c.FillPolygon(circle(p, width/2), col)
		}
	}
}

// FillCircle paints a disc.
func (c *Canvas) FillCircle(center Pt, radius float64, col color.Color) {
	c.FillPolygon(circle(center, radius), col)
}

// FillPolygon paints a closed polygon using the non-zero rule.
func (c *Canvas) FillPolygon(pts []Pt, col color.Color) {
	if len(pts) < 3 {
		return
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		x, y := p.X*c.scale, p.Y*c.scale
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	if math.IsNaN(minX) || math.IsNaN(minY) || math.IsInf(maxX, 0) || math.IsInf(maxY, 0) {
		return
	}

	box := image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX)), int(math.Ceil(maxY)))
	box = box.Intersect(c.img.Bounds())
	if box.Empty() {
		return
	}

	// The rasterizer is sized to the shape's bounding box, not the page.
	z := vector.NewRasterizer(box.Dx(), box.Dy())
	z.DrawOp = draw.Over
	ox, oy := float64(box.Min.X), float64(box.Min.Y)
	z.MoveTo(float32(pts[0].X*c.scale-ox), float32(pts[0].Y*c.scale-oy))
	for _, p := range pts[1:] {
		z.LineTo(float32(p.X*c.scale-ox), float32(p.Y*c.scale-oy))
	}
	z.ClosePath()
	z.Draw(c.img, box, image.NewUniform(col), image.Point{})
}

// ParseHex converts "#rgb" or "#rrggbb" into a color. Unknown input yields opaque black.
func ParseHex(s string) color.RGBA {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return color.RGBA{A: 0xff}
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{A: 0xff}
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

// Hex formats a color as "#rrggbb".
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// WithAlpha returns col with its alpha replaced (premultiplied).
func WithAlpha(col color.RGBA, a float64) color.RGBA {
	a = math.Max(0, math.Min(1, a))
	return color.RGBA{
		R: uint8(float64(col.R) * a),
		G: uint8(float64(col.G) * a),
		B: uint8(float64(col.B) * a),
		A: uint8(255 * a),
	}
}

const arcSteps = 24

func roundedRect(r Rect, radius float64) []Pt {
	radius = math.Max(0, math.Min(radius, math.Min(r.W, r.H)/2))
	if radius == 0 {
		return []Pt{{r.X, r.Y}, {r.X + r.W, r.Y}, {r.X + r.W, r.Y + r.H}, {r.X, r.Y + r.H}}
	}
	corners := []struct {
		c     Pt
		start float64
	}{
		{Pt{r.X + r.W - radius, r.Y + radius}, -90},
		{Pt{r.X + r.W - radius, r.Y + r.H - radius}, 0},
		{Pt{r.X + radius, r.Y + r.H - radius}, 90},
		{Pt{r.X + radius, r.Y + radius}, 180},
	}
	pts := make([]Pt, 0, 4*(arcSteps/4+1))
	for _, k := range corners {
		pts = append(pts, arc(k.c, radius, k.start, k.start+90, arcSteps/4)...)
	}
	return pts
}

func circle(center Pt, radius float64) []Pt {
	if radius <= 0 {
		return nil
	}
	pts := arc(center, radius, 0, 360, arcSteps)
	return pts[:len(pts)-1]
}

func arc(center Pt, radius, from, to float64, steps int) []Pt {
	pts := make([]Pt, 0, steps+1)
	for i := 0; i <= steps; i++ {
		a := (from + (to-from)*float64(i)/float64(steps)) * math.Pi / 180
		pts = append(pts, Pt{center.X + radius*math.Cos(a), center.Y + radius*math.Sin(a)})
	}
	return pts
}

func segmentQuad(a, b Pt, width float64) []Pt {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length == 0 || width <= 0 {
		return nil
	}
	nx, ny := -dy/length*width/2, dx/length*width/2
	return []Pt{
		{a.X + nx, a.Y + ny},
		{b.X + nx, b.Y + ny},
		{b.X - nx, b.Y - ny},
		{a.X - nx, a.Y - ny},
	}
}
