package document

import (
	"image/color"
	"strings"

	"github.com/aurine/docgen/internal/canvas"
)

// Palette shared by the page layouts.
var (
	zinc950  = canvas.ParseHex("#09090b")
	zinc900  = canvas.ParseHex("#18181b")
	zinc800  = canvas.ParseHex("#27272a")
	zinc700  = canvas.ParseHex("#3f3f46")
	zinc500  = canvas.ParseHex("#71717a")
	zinc400  = canvas.ParseHex("#a1a1aa")
	zinc300  = canvas.ParseHex("#d4d4d8")
	zinc200  = canvas.ParseHex("#e4e4e7")
	zinc50   = canvas.ParseHex("#fafafa")
	white    = canvas.ParseHex("#ffffff")
	ink      = canvas.ParseHex("#18181b")
	pink500  = canvas.ParseHex("#ec4899")
	pink400  = canvas.ParseHex("#f472b6")
	pink600  = canvas.ParseHex("#db2777")
	pink200  = canvas.ParseHex("#fbcfe8")
	pink50   = canvas.ParseHex("#fdf2f8")
	green500 = canvas.ParseHex("#22c55e")
)

const (
	agencyName  = "Aurine Agency"
	agencyPhone = "+48 123 456 789"
	agencyEmail = "kontakt@aurine.pl"
	agencySite  = "aurine.pl"
)

func style(size float64, bold bool, col color.RGBA) canvas.TextStyle {
	return canvas.TextStyle{Size: size, Bold: bold, Color: col}
}

func centered(s canvas.TextStyle) canvas.TextStyle {
	s.Anchor = canvas.AnchorMiddle
	return s
}

func rightAligned(s canvas.TextStyle) canvas.TextStyle {
	s.Anchor = canvas.AnchorEnd
	return s
}

// logoBadge paints the agency mark: a rounded pink tile with a letter.
func logoBadge(c *canvas.Canvas, r canvas.Rect, letter string) {
	c.FillRect(r, r.W*0.28, pink500)
	c.FillRect(r.Inset(r.W*0.08), r.W*0.22, canvas.WithAlpha(pink600, 0.35))
	c.Text(letter, canvas.Pt{X: r.X + r.W/2, Y: r.Y + r.H/2}, canvas.TextStyle{
		Size: r.H * 0.5, Bold: true, Color: white, Anchor: canvas.AnchorMiddle, Middle: true,
	})
}

// panel paints a dark card with an optional title and returns the content area.
func panel(c *canvas.Canvas, r canvas.Rect, title string) canvas.Rect {
	c.Box(r, 12, zinc900, zinc800)
	content := r.Inset(20)
	if title == "" {
		return content
	}
	c.Text(title, canvas.Pt{X: content.X, Y: content.Y + 14}, style(14, true, white))
	content.Y += 36
	content.H -= 36
	return content
}

// lightPanel is panel for white pages.
func lightPanel(c *canvas.Canvas, r canvas.Rect, fill, border color.RGBA, title string) canvas.Rect {
	c.Box(r, 12, fill, border)
	content := r.Inset(20)
	if title == "" {
		return content
	}
	c.Text(title, canvas.Pt{X: content.X, Y: content.Y + 14}, style(15, true, ink))
	content.Y += 30
	content.H -= 30
	return content
}

// kpiCard paints a labeled figure.
func kpiCard(c *canvas.Canvas, r canvas.Rect, k kpi) {
	c.Box(r, 12, zinc900, zinc800)
	c.Text(strings.ToUpper(k.Label), canvas.Pt{X: r.X + 16, Y: r.Y + 28}, style(11, false, zinc500))
	c.Text(k.Value, canvas.Pt{X: r.X + 16, Y: r.Y + 56}, style(19, true, canvas.ParseHex(k.Color)))
}

// signatureLine paints an empty signature field with a caption below.
func signatureLine(c *canvas.Canvas, x, y float64, caption string) {
	c.Line(canvas.Pt{X: x, Y: y}, canvas.Pt{X: x + 192, Y: y}, 1, zinc300)
	c.Text(caption, canvas.Pt{X: x + 96, Y: y + 20}, centered(style(12, true, zinc500)))
}

// checkMark paints a round bullet with a tick.
func checkMark(c *canvas.Canvas, center canvas.Pt, radius float64, col color.RGBA) {
	c.FillCircle(center, radius, col)
	w := radius * 0.22
	a := canvas.Pt{X: center.X - radius*0.45, Y: center.Y}
	b := canvas.Pt{X: center.X - radius*0.1, Y: center.Y + radius*0.35}
	d := canvas.Pt{X: center.X + radius*0.5, Y: center.Y - radius*0.35}
	c.StrokePolyline([]canvas.Pt{a, b, d}, w, white)
}
