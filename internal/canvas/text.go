package canvas

import (
	"image"
	"image/color"
	"math"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Anchor is the horizontal text alignment, named after SVG text-anchor.
type Anchor int

const (
	AnchorStart Anchor = iota
	AnchorMiddle
	AnchorEnd
)

// TextStyle describes how a run of text is drawn.
type TextStyle struct {
	Size   float64 // logical pixels
	Bold   bool
	Color  color.Color
	Anchor Anchor
	// Middle centers the glyphs vertically on the given y instead of using it as baseline.
	Middle bool
}

type faceKey struct {
	size int // 1/4 px steps
	bold bool
}

var (
	fontsOnce  sync.Once
	fontsErr   error
	regularTTF *opentype.Font
	boldTTF    *opentype.Font
)

// loadFonts parses the embedded Go fonts once. Parsed fonts are shared;
// faces are per canvas because opentype faces hold scratch buffers.
func loadFonts() error {
	fontsOnce.Do(func() {
		regularTTF, fontsErr = opentype.Parse(goregular.TTF)
		if fontsErr != nil {
			return
		}
		boldTTF, fontsErr = opentype.Parse(gobold.TTF)
	})
	return fontsErr
}

func (c *Canvas) face(size float64, bold bool) font.Face {
	key := faceKey{size: int(math.Round(size * c.scale * 4)), bold: bold}
	if f, ok := c.faces[key]; ok {
		return f
	}
	if err := loadFonts(); err != nil {
		return nil
	}
	src := regularTTF
	if bold {
		src = boldTTF
	}
	f, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    float64(key.size) / 4,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil
	}
	c.faces[key] = f
	return f
}

// MeasureText returns the advance width of s in logical pixels.
func (c *Canvas) MeasureText(s string, size float64, bold bool) float64 {
	f := c.face(size, bold)
	if f == nil {
		return 0
	}
	return float64(font.MeasureString(f, s)) / 64 / c.scale
}

// Text draws s at p and returns its width in logical pixels.
func (c *Canvas) Text(s string, p Pt, style TextStyle) float64 {
	f := c.face(style.Size, style.Bold)
	if f == nil || s == "" {
		return 0
	}
	col := style.Color
	if col == nil {
		col = color.Black
	}

	adv := font.MeasureString(f, s)
	x := p.X * c.scale
	switch style.Anchor {
	case AnchorMiddle:
		x -= float64(adv) / 64 / 2
	case AnchorEnd:
		x -= float64(adv) / 64
	}
	y := p.Y * c.scale
	if style.Middle {
		m := f.Metrics()
		y += float64(m.Ascent-m.Descent) / 64 / 2
	}

	d := font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: f,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)},
	}
	d.DrawString(s)
	return float64(adv) / 64 / c.scale
}

// Wrap breaks s into lines no wider than width. Explicit newlines are kept.
func (c *Canvas) Wrap(s string, width, size float64, bold bool) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			candidate := line + " " + w
			if c.MeasureText(candidate, size, bold) > width {
				lines = append(lines, line)
				line = w
				continue
			}
			line = candidate
		}
		lines = append(lines, line)
	}
	return lines
}

// Paragraph draws wrapped text starting at the top-left of r and returns the
// y coordinate below the last line.
func (c *Canvas) Paragraph(s string, r Rect, lineHeight float64, style TextStyle) float64 {
	y := r.Y + style.Size
	for _, line := range c.Wrap(s, r.W, style.Size, style.Bold) {
		c.Text(line, Pt{X: r.X, Y: y}, style)
		y += lineHeight
	}
	return y - style.Size
}
