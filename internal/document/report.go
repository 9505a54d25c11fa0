package document

import (
	"bytes"
	"fmt"
	"html/template"
	"image/color"

	"github.com/aurine/docgen/internal/adapter"
	"github.com/aurine/docgen/internal/canvas"
	"github.com/aurine/docgen/internal/chart"
	"github.com/aurine/docgen/pkg/utils"
)

// ════════════════════════════════════════════════════════════════════
// Campaign report
// ════════════════════════════════════════════════════════════════════

// Report is a Facebook Ads campaign report for a beauty salon.
type Report struct {
	adapter.ReportForm
}

// Placeholders shown when header fields are blank.
const (
	reportTitle         = "Raport kampanii Facebook Ads"
	placeholderClient   = "Salon Beauty"
	placeholderCity     = "Warszawa"
	placeholderPeriod   = "Styczeń 2025"
	placeholderCTR      = "2.33"
	reportExportBgColor = "#050509"
)

func (r *Report) Kind() Kind { return KindReport }

func (r *Report) Validate() error {
	return validateForm(KindReport, r.ReportForm, reportMessages)
}

var reportMessages = map[string]string{
	"clientName.required": "Nazwa klienta wymagana",
	"city.required":       "Miasto salonu wymagane",
}

func (r *Report) PageCount() int { return 1 }

func (r *Report) Background() color.RGBA { return canvas.ParseHex(reportExportBgColor) }

func (r *Report) FileName(ext string) string {
	return "raport-" + utils.Slug(r.ClientName) + "." + ext
}

func (r *Report) applyDefaults() {}

// ChartData returns the numeric chart input derived from the form.
func (r *Report) ChartData() adapter.ChartData {
	return adapter.BuildCharts(r.ReportForm, adapter.PolishGrouping)
}

// Charts lays out the four report charts.
func (r *Report) Charts() (*adapter.Charts, error) {
	return r.ChartData().Render(chart.DefaultOptions())
}

type kpi struct {
	Label string
	Value string
	Color string
}

// reportView is the flattened model shared by the HTML template and the page painter.
type reportView struct {
	Title           string
	Subtitle        string
	ClientName      string
	City            string
	Status          string
	Objective       string
	KPIRows         [][]kpi
	Recommendations string
	GeneratedAt     string

	EngagementSVG template.HTML
	ConversionSVG template.HTML
	WeeklySVG     template.HTML
	DailySVG      template.HTML

	charts *adapter.Charts
}

func (r *Report) view() (reportView, error) {
	charts, err := r.Charts()
	if err != nil {
		return reportView{}, err
	}
	f := r.ReportForm
	ctr := f.CTR
	if ctr == "" {
		ctr = placeholderCTR
	}
	return reportView{
		Title:      reportTitle,
		Subtitle:   agencyName + " • " + orPlaceholder(f.Period, placeholderPeriod),
		ClientName: orPlaceholder(f.ClientName, placeholderClient),
		City:       orPlaceholder(f.City, placeholderCity),
		Status:     f.CampaignStatus,
		Objective:  f.CampaignObjective,
		KPIRows: [][]kpi{
			{
				{Label: "Budżet", Value: formatFormNumber(f.Budget) + " PLN", Color: "#60a5fa"},
				{Label: "Wyświetlenia", Value: formatFormNumber(f.Impressions), Color: "#c084fc"},
				{Label: "Zasięg", Value: formatFormNumber(f.Reach), Color: "#22d3ee"},
				{Label: "Kliknięcia", Value: formatFormNumber(f.Clicks), Color: "#f472b6"},
			},
			{
				{Label: "CTR", Value: ctr + "%", Color: "#34d399"},
				{Label: "Konwersje", Value: formatFormNumber(f.Conversions), Color: "#fbbf24"},
				{Label: "Koszt/konwersja", Value: formatFormNumber(f.CostPerConversion) + " PLN", Color: "#fb7185"},
				{Label: "Rezerwacje", Value: formatFormNumber(f.Bookings), Color: "#4ade80"},
			},
		},
		Recommendations: f.Recommendations,
		GeneratedAt:     utils.FormatDateTimeWarsaw(utils.NowWarsaw()),
		EngagementSVG:   template.HTML(charts.Engagement.SVG()),
		ConversionSVG:   template.HTML(charts.Conversion.SVG()),
		WeeklySVG:       template.HTML(charts.Weekly.SVG()),
		DailySVG:        template.HTML(charts.Daily.SVG()),
		charts:          charts,
	}, nil
}

// formatFormNumber re-formats a raw form number for display, or "—" when blank.
func formatFormNumber(s string) string {
	if s == "" {
		return "—"
	}
	return utils.FormatNumberPL(adapter.PolishGrouping.Parse(s))
}

func orPlaceholder(s, placeholder string) string {
	if s == "" {
		return placeholder
	}
	return s
}

// Preview renders the report as HTML with inline SVG charts.
func (r *Report) Preview() (string, error) {
	v, err := r.view()
	if err != nil {
		return "", fmt.Errorf("building report view: %w", err)
	}
	return renderTemplate("report", ReportTemplate, v)
}

// Report page geometry. Sections stack top to bottom with a fixed gap; the
// page grows past Portrait.H only when recommendations need the room.
const (
	reportPad       = 32.0
	reportGap       = 24.0
	reportHeaderH   = 56.0
	reportKPIH      = 76.0
	reportPieCardH  = 226.0
	reportLineCardH = 226.0
	reportBarCardH  = 196.0
	reportRecsLineH = 22.0
	reportRecsSize  = 14.0
	reportFooterH   = 67.0
)

func (r *Report) recommendationLines(c *canvas.Canvas) []string {
	if r.Recommendations == "" {
		return nil
	}
	width := float64(Portrait.W) - 2*reportPad - 40
	return c.Wrap(r.Recommendations, width, reportRecsSize, false)
}

func recommendationsHeight(lines []string) float64 {
	if len(lines) == 0 {
		return 0
	}
	return 20 + 36 + float64(len(lines))*reportRecsLineH + 20 + reportGap
}

// bodyBottom is the y coordinate below the bar chart card.
func bodyBottom() float64 {
	y := reportPad + reportHeaderH + reportGap + 1 + reportGap
	y += 2 * (reportKPIH + 16)
	y += reportGap - 16
	y += reportPieCardH + reportGap + reportLineCardH + reportGap + reportBarCardH + reportGap
	return y
}

// PageSize returns Portrait, stretched vertically when recommendations are long.
func (r *Report) PageSize() Size {
	measure := canvas.New(1, 1, 1)
	defer measure.Close()

	h := bodyBottom() + recommendationsHeight(r.recommendationLines(measure)) + reportFooterH
	size := Portrait
	if int(h) > size.H {
		size.H = int(h + 0.5)
	}
	return size
}

// Paint draws the report page.
func (r *Report) Paint(c *canvas.Canvas, page int) error {
	if page != 0 {
		return fmt.Errorf("report page %d out of range", page)
	}
	v, err := r.view()
	if err != nil {
		return fmt.Errorf("building report view: %w", err)
	}

	bounds := c.Bounds()
	c.Fill(zinc950)
	left, right := reportPad, bounds.W-reportPad
	contentW := right - left

	// Header
	y := reportPad
	logoBadge(c, canvas.Rect{X: left, Y: y, W: reportHeaderH, H: reportHeaderH}, "A")
	c.Text(v.Title, canvas.Pt{X: left + reportHeaderH + 16, Y: y + 24}, style(24, true, white))
	c.Text(v.Subtitle, canvas.Pt{X: left + reportHeaderH + 16, Y: y + 48}, style(14, false, zinc400))
	nameW := c.Text(v.ClientName, canvas.Pt{X: right, Y: y + 22}, rightAligned(style(18, true, white)))
	c.Text(v.City, canvas.Pt{X: right, Y: y + 44}, rightAligned(style(14, false, zinc400)))
	if v.Status != "" {
		w := c.MeasureText(v.Status, 11, true) + 20
		pill := canvas.Rect{X: right - nameW - 12 - w, Y: y + 6, W: w, H: 20}
		c.FillRect(pill, 10, canvas.WithAlpha(pink500, 0.2))
		c.Text(v.Status, canvas.Pt{X: pill.X + w/2, Y: pill.Y + 10}, canvas.TextStyle{
			Size: 11, Bold: true, Color: pink400, Anchor: canvas.AnchorMiddle, Middle: true,
		})
	}
	y += reportHeaderH + reportGap
	c.Line(canvas.Pt{X: left, Y: y}, canvas.Pt{X: right, Y: y}, 1, zinc800)
	y += 1 + reportGap

	// KPIs
	cardW := (contentW - 3*16) / 4
	for _, row := range v.KPIRows {
		for i, k := range row {
			kpiCard(c, canvas.Rect{X: left + float64(i)*(cardW+16), Y: y, W: cardW, H: reportKPIH}, k)
		}
		y += reportKPIH + 16
	}
	y += reportGap - 16

	// Donut charts
	halfW := (contentW - reportGap) / 2
	for i, item := range []struct {
		title string
		ch    *chart.Chart
	}{
		{"Zaangażowanie", v.charts.Engagement},
		{"Konwersja do rezerwacji", v.charts.Conversion},
	} {
		area := panel(c, canvas.Rect{X: left + float64(i)*(halfW+reportGap), Y: y, W: halfW, H: reportPieCardH}, item.title)
		chart.Paint(c, canvas.Rect{X: area.X, Y: area.Y, W: area.W, H: adapter.PieSize}, item.ch)
	}
	y += reportPieCardH + reportGap

	area := panel(c, canvas.Rect{X: left, Y: y, W: contentW, H: reportLineCardH}, "Zasięg i kliknięcia - trend tygodniowy")
	chart.Paint(c, canvas.Rect{X: area.X, Y: area.Y, W: area.W, H: adapter.WeeklyHeight}, v.charts.Weekly)
	y += reportLineCardH + reportGap

	area = panel(c, canvas.Rect{X: left, Y: y, W: contentW, H: reportBarCardH}, "Rezerwacje dzienne")
	chart.Paint(c, canvas.Rect{X: area.X, Y: area.Y, W: area.W, H: adapter.DailyHeight}, v.charts.Daily)
	y += reportBarCardH + reportGap

	if lines := r.recommendationLines(c); len(lines) > 0 {
		h := recommendationsHeight(lines) - reportGap
		card := canvas.Rect{X: left, Y: y, W: contentW, H: h}
		c.Box(card, 12, canvas.ParseHex("#1f0a14"), canvas.ParseHex("#4a1330"))
		c.FillCircle(canvas.Pt{X: left + 28, Y: y + 29}, 6, pink400)
		c.Text("Rekomendacje", canvas.Pt{X: left + 44, Y: y + 34}, style(14, true, white))
		ty := y + 56 + reportRecsSize
		for _, line := range lines {
			c.Text(line, canvas.Pt{X: left + 20, Y: ty}, style(reportRecsSize, false, zinc300))
			ty += reportRecsLineH
		}
		y += h + reportGap
	}

	// Footer
	c.Line(canvas.Pt{X: left, Y: y}, canvas.Pt{X: right, Y: y}, 1, zinc800)
	fy := y + 24 + 12
	x := left
	x += c.Text(agencyPhone, canvas.Pt{X: x, Y: fy}, style(12, false, zinc500)) + 16
	c.Text(agencyEmail, canvas.Pt{X: x, Y: fy}, style(12, false, zinc500))
	c.Text(agencySite, canvas.Pt{X: right, Y: fy}, rightAligned(style(12, false, zinc500)))
	return nil
}

func renderTemplate(name, text string, data any) (string, error) {
	tmpl, err := template.New(name).Funcs(templateFuncs).Parse(text)
	if err != nil {
		return "", fmt.Errorf("parsing %s template: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing %s template: %w", name, err)
	}
	return buf.String(), nil
}
