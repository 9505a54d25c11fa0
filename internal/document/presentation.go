package document

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/aurine/docgen/internal/canvas"
	"github.com/aurine/docgen/pkg/utils"
)

// SlideCount is the fixed length of a sales presentation.
const SlideCount = 6

// Presentation is a personalised cold-mail pitch deck for a salon owner.
type Presentation struct {
	OwnerName string `json:"ownerName" validate:"required"`
	SalonName string `json:"salonName" validate:"required"`
	City      string `json:"city" validate:"required"`
}

func (p *Presentation) Kind() Kind { return KindPresentation }

func (p *Presentation) Validate() error {
	return validateForm(KindPresentation, *p, nil)
}

func (p *Presentation) PageSize() Size         { return Landscape }
func (p *Presentation) PageCount() int         { return SlideCount }
func (p *Presentation) Background() color.RGBA { return zinc950 }

// JPEGPages reports that slides are embedded as JPEG rather than PNG.
func (p *Presentation) JPEGPages() bool { return true }

func (p *Presentation) FileName(ext string) string {
	return "prezentacja-" + utils.Slug(p.SalonName) + "." + ext
}

func (p *Presentation) applyDefaults() {}

type slideLayout string

const (
	slideGreeting  slideLayout = "greeting"
	slideStats     slideLayout = "stats"
	slideChecklist slideLayout = "checklist"
	slideCase      slideLayout = "case"
	slideOffer     slideLayout = "offer"
	slideClosing   slideLayout = "closing"
)

type stat struct {
	Value string
	Label string
}

type slide struct {
	Number  int
	Layout  slideLayout
	Heading string
	Lead    string
	Accent  string
	Price   string
	Items   []string
	Stats   []stat
}

func (p *Presentation) slides() []slide {
	return []slide{
		{
			Layout:  slideGreeting,
			Heading: "Dzień dobry, " + p.OwnerName + "!",
			Lead:    "Propozycja współpracy dla " + p.SalonName,
			Accent:  p.City,
		},
		{
			Layout:  slideStats,
			Heading: "Dlaczego Facebook Ads?",
			Stats: []stat{
				{"3.5 mln", "Polaków używa Facebooka dziennie"},
				{"70%", "Klientek szuka usług beauty online"},
				{"5x", "Wyższy ROI niż tradycyjna reklama"},
			},
		},
		{
			Layout:  slideChecklist,
			Heading: "Nasza strategia",
			Items: []string{
				strings.ReplaceAll("Precyzyjne targetowanie kobiet 25-55 w {city}", "{city}", p.City),
				"Kreacje wizualne dopasowane do Twojego salonu",
				"Optymalizacja pod rezerwacje wizyt",
				"Comiesięczne raporty z wynikami",
			},
		},
		{
			Layout:  slideCase,
			Heading: "Case Study",
			Lead:    "Salon Beauty w Krakowie - wyniki po 3 miesiącach:",
			Stats: []stat{
				{"+156%", "Więcej rezerwacji"},
				{"23 PLN", "Koszt pozyskania klienta"},
				{"850+", "Nowych klientek"},
				{"4.8x", "ROI"},
			},
		},
		{
			Layout:  slideOffer,
			Heading: "Propozycja dla " + p.SalonName,
			Lead:    "Pakiet Premium",
			Price:   "2 500 PLN",
			Accent:  "/miesiąc",
			Items: []string{
				"Prowadzenie kampanii Facebook & Instagram",
				"Tworzenie kreacji reklamowych",
				"Optymalizacja i testy A/B",
				"Raportowanie wyników",
			},
		},
		{
			Layout:  slideClosing,
			Heading: "Gotowy na więcej klientek?",
			Lead:    "Umówmy się na bezpłatną konsultację",
			Accent:  agencyEmail,
		},
	}
}

type presentationView struct {
	SalonName string
	Slides    []slide
}

func (p *Presentation) Preview() (string, error) {
	slides := p.slides()
	for i := range slides {
		slides[i].Number = i + 1
	}
	return renderTemplate("presentation", PresentationTemplate, presentationView{SalonName: p.SalonName, Slides: slides})
}

// Paint draws slide page+1.
func (p *Presentation) Paint(c *canvas.Canvas, page int) error {
	if page < 0 || page >= SlideCount {
		return fmt.Errorf("presentation slide %d out of range", page+1)
	}
	s := p.slides()[page]
	b := c.Bounds()
	c.Fill(zinc950)

	const padX = 80.0
	left, right := padX, b.W-padX
	contentW := right - left
	cx, cy := b.W/2, b.H/2

	heading := func(y float64) {
		c.FillCircle(canvas.Pt{X: left + 24, Y: y - 18}, 24, pink500)
		c.Text(s.Heading, canvas.Pt{X: left + 72, Y: y}, style(48, true, white))
	}

	switch s.Layout {
	case slideGreeting:
		logoBadge(c, canvas.Rect{X: cx - 64, Y: cy - 250, W: 128, H: 128}, "A")
		c.Text(s.Heading, canvas.Pt{X: cx, Y: cy - 30}, centered(style(60, true, white)))
		c.Text(s.Lead, canvas.Pt{X: cx, Y: cy + 40}, centered(style(24, false, zinc400)))
		c.Text(s.Accent, canvas.Pt{X: cx, Y: cy + 100}, centered(style(20, false, pink400)))

	case slideStats:
		heading(cy - 160)
		cardW := (contentW - 2*32) / 3
		for i, st := range s.Stats {
			r := canvas.Rect{X: left + float64(i)*(cardW+32), Y: cy - 100, W: cardW, H: 220}
			c.Box(r, 16, zinc900, zinc700)
			c.Text(st.Value, canvas.Pt{X: r.X + 32, Y: r.Y + 90}, style(48, true, pink500))
			c.Paragraph(st.Label, canvas.Rect{X: r.X + 32, Y: r.Y + 120, W: r.W - 64, H: 80}, 28, style(20, false, zinc300))
		}

	case slideChecklist:
		heading(cy - 220)
		y := cy - 160
		for _, item := range s.Items {
			r := canvas.Rect{X: left, Y: y, W: contentW, H: 80}
			c.Box(r, 12, zinc900, zinc700)
			checkMark(c, canvas.Pt{X: r.X + 48, Y: r.Y + 40}, 16, green500)
			c.Text(item, canvas.Pt{X: r.X + 88, Y: r.Y + 40}, canvas.TextStyle{Size: 24, Color: white, Middle: true})
			y += 80 + 24
		}

	case slideCase:
		heading(cy - 160)
		r := canvas.Rect{X: left, Y: cy - 100, W: contentW, H: 260}
		c.Box(r, 16, canvas.ParseHex("#1f0a14"), canvas.ParseHex("#4a1330"))
		c.Text(s.Lead, canvas.Pt{X: r.X + 40, Y: r.Y + 64}, style(24, false, zinc300))
		colW := (r.W - 80) / float64(len(s.Stats))
		for i, st := range s.Stats {
			x := r.X + 40 + colW*float64(i) + colW/2
			c.Text(st.Value, canvas.Pt{X: x, Y: r.Y + 160}, centered(style(40, true, pink400)))
			c.Text(st.Label, canvas.Pt{X: x, Y: r.Y + 200}, centered(style(18, false, zinc400)))
		}

	case slideOffer:
		c.Text(s.Heading, canvas.Pt{X: left, Y: cy - 200}, style(48, true, white))
		r := canvas.Rect{X: left, Y: cy - 150, W: contentW, H: 360}
		c.FillRect(r, 16, pink500)
		c.Text(s.Lead, canvas.Pt{X: r.X + 40, Y: r.Y + 64}, style(30, false, white))
		w := c.Text(s.Price, canvas.Pt{X: r.X + 40, Y: r.Y + 150}, style(60, true, white))
		c.Text(s.Accent, canvas.Pt{X: r.X + 48 + w, Y: r.Y + 150}, style(24, false, white))
		colW := (r.W - 80) / 2
		for i, item := range s.Items {
			x := r.X + 40 + float64(i%2)*colW
			y := r.Y + 220 + float64(i/2)*48
			checkMark(c, canvas.Pt{X: x + 10, Y: y}, 10, canvas.ParseHex("#be185d"))
			c.Text(item, canvas.Pt{X: x + 32, Y: y}, canvas.TextStyle{Size: 18, Color: white, Middle: true})
		}

	case slideClosing:
		logoBadge(c, canvas.Rect{X: cx - 48, Y: cy - 220, W: 96, H: 96}, "A")
		c.Text(s.Heading, canvas.Pt{X: cx, Y: cy - 30}, centered(style(48, true, white)))
		c.Text(s.Lead, canvas.Pt{X: cx, Y: cy + 30}, centered(style(24, false, zinc400)))
		w := c.MeasureText(s.Accent, 20, true) + 64
		pill := canvas.Rect{X: cx - w/2, Y: cy + 70, W: w, H: 60}
		c.FillRect(pill, 30, pink500)
		c.Text(s.Accent, canvas.Pt{X: cx, Y: pill.Y + 30}, canvas.TextStyle{
			Size: 20, Bold: true, Color: white, Anchor: canvas.AnchorMiddle, Middle: true,
		})
	}
	return nil
}
