package chart

import (
	"fmt"
	"strings"
)

// ════════════════════════════════════════════════════════════════════
// SVG encoding
// ════════════════════════════════════════════════════════════════════

// SVG encodes the chart as a standalone SVG document. Pie charts use a fixed
// pixel box; bar and line charts stretch horizontally to their container.
func (c *Chart) SVG() string {
	var sb strings.Builder
	switch c.Kind {
	case KindPie:
		sb.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s" font-family="sans-serif">`,
			num(c.Width), num(c.Height), num(c.Width), num(c.Height)))
	default:
		sb.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="100%%" height="%s" viewBox="0 0 %s %s" preserveAspectRatio="none" font-family="sans-serif">`,
			num(c.Height), num(c.Width), num(c.Height)))
	}

	for _, s := range c.Sectors {
		sb.WriteString(fmt.Sprintf(`<path d="%s" fill="%s"/>`, s.Path.String(), escapeXML(s.Color)))
	}
	for _, b := range c.Bars {
		sb.WriteString(fmt.Sprintf(`<rect x="%s%%" y="%s" width="%s%%" height="%s" rx="%s" fill="%s"/>`,
			num(b.X), num(b.Y), num(b.Width), num(b.Height), num(b.Radius), escapeXML(b.Color)))
	}
	for _, l := range c.Lines {
		sb.WriteString(fmt.Sprintf(`<path d="%s" fill="none" stroke="%s" stroke-width="%s" vector-effect="non-scaling-stroke"/>`,
			l.PathData(), escapeXML(l.Color), num(l.StrokeWidth)))
	}
	for _, l := range c.Labels {
		x := num(l.X)
		if l.Percent {
			x += "%"
		}
		weight := ""
		if l.Bold {
			weight = ` font-weight="bold"`
		}
		baseline := ""
		if l.Middle {
			baseline = ` dominant-baseline="middle"`
		}
		sb.WriteString(fmt.Sprintf(`<text x="%s" y="%s" text-anchor="middle"%s font-size="%s"%s fill="%s">%s</text>`,
			x, num(l.Y), baseline, num(l.Size), weight, escapeXML(l.Color), escapeXML(l.Text)))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// EmptySVG returns a placeholder graphic carrying msg.
func EmptySVG(width, height float64, msg string) string {
	if width <= 0 {
		width = DefaultPieSize
	}
	if height <= 0 {
		height = DefaultPieSize
	}
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s"><rect width="%s" height="%s" fill="#18181b"/><text x="%s" y="%s" text-anchor="middle" fill="#a1a1aa" font-size="12">%s</text></svg>`,
		num(width), num(height), num(width), num(height), num(width/2), num(height/2), escapeXML(msg))
}

func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	return s
}
