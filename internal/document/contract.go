package document

import (
	"fmt"
	"image/color"
	"time"

	"github.com/aurine/docgen/internal/adapter"
	"github.com/aurine/docgen/internal/canvas"
	"github.com/aurine/docgen/pkg/utils"
)

const (
	defaultServiceScope     = "Prowadzenie kampanii reklamowych Facebook Ads, tworzenie kreacji, optymalizacja i raportowanie wyników."
	defaultPaymentTerms     = "7 dni od wystawienia faktury"
	defaultContractDuration = "3 miesiące"
	contractTitle           = "UMOWA O ŚWIADCZENIE USŁUG MARKETINGOWYCH"
	placeholderContractNo   = "UM/____/____"
)

// Contract is a marketing services agreement.
type Contract struct {
	ClientName       string `json:"clientName" validate:"required"`
	ClientAddress    string `json:"clientAddress,omitempty"`
	ClientNIP        string `json:"clientNIP,omitempty"`
	ContractNumber   string `json:"contractNumber" validate:"required"`
	SignDate         string `json:"signDate" validate:"omitempty,datetime=2006-01-02"`
	ServiceScope     string `json:"serviceScope"`
	ContractValue    string `json:"contractValue" validate:"required"`
	PaymentTerms     string `json:"paymentTerms"`
	ContractDuration string `json:"contractDuration"`
}

func (k *Contract) Kind() Kind { return KindContract }

func (k *Contract) Validate() error {
	return validateForm(KindContract, *k, map[string]string{
		"clientName.required":     "Nazwa klienta wymagana",
		"contractNumber.required": "Numer umowy wymagany",
		"contractValue.required":  "Wartość umowy wymagana",
	})
}

func (k *Contract) PageSize() Size         { return Portrait }
func (k *Contract) PageCount() int         { return 1 }
func (k *Contract) Background() color.RGBA { return white }

func (k *Contract) FileName(ext string) string {
	return utils.DocumentNumberFileName(k.ContractNumber) + "." + ext
}

func (k *Contract) applyDefaults() {
	k.applyDefaultsAt(utils.TodayWarsaw())
}

func (k *Contract) applyDefaultsAt(today time.Time) {
	if k.SignDate == "" {
		k.SignDate = utils.FormatDateWarsaw(today)
	}
	if k.ServiceScope == "" {
		k.ServiceScope = defaultServiceScope
	}
	if k.PaymentTerms == "" {
		k.PaymentTerms = defaultPaymentTerms
	}
	if k.ContractDuration == "" {
		k.ContractDuration = defaultContractDuration
	}
}

type contractSection struct {
	Title string
	Body  string
}

type contractView struct {
	Title    string
	Number   string
	SignedOn string
	Parties  []contractSection
	Sections []contractSection
	Value    string
	Terms    string
}

// formatLongDate renders a form date as "07 października 2026", or "—".
func formatLongDate(s string) string {
	if s == "" {
		return "—"
	}
	t, err := utils.ParseDateWarsaw(s)
	if err != nil {
		return s
	}
	return utils.FormatDateLongPL(t)
}

// formatFormAmount renders a money field with two decimals, "0,00" when blank.
func formatFormAmount(s string) string {
	if s == "" {
		return "0,00"
	}
	return utils.FormatAmountPL(adapter.PolishGrouping.Parse(s))
}

func (k *Contract) view() contractView {
	client := k.ClientName
	if k.ClientAddress != "" {
		client += ", " + k.ClientAddress
	}
	if k.ClientNIP != "" {
		client += ", NIP: " + k.ClientNIP
	}
	return contractView{
		Title:    contractTitle,
		Number:   orPlaceholder(k.ContractNumber, placeholderContractNo),
		SignedOn: "zawarta w dniu " + formatLongDate(k.SignDate),
		Parties: []contractSection{
			{Title: "Zleceniobiorca", Body: agencyName + ", " + agencyEmail},
			{Title: "Zleceniodawca", Body: client},
		},
		Sections: []contractSection{
			{Title: "§1 Przedmiot umowy", Body: k.ServiceScope},
			{Title: "§2 Okres obowiązywania", Body: "Umowa zostaje zawarta na okres: " + k.ContractDuration + "."},
		},
		Value: formatFormAmount(k.ContractValue) + " PLN",
		Terms: "Termin płatności: " + k.PaymentTerms + ".",
	}
}

func (k *Contract) Preview() (string, error) {
	return renderTemplate("contract", ContractTemplate, k.view())
}

func (k *Contract) Paint(c *canvas.Canvas, page int) error {
	if page != 0 {
		return fmt.Errorf("contract page %d out of range", page)
	}
	v := k.view()
	bounds := c.Bounds()
	c.Fill(white)

	const pad = 40.0
	left, right := pad, bounds.W-pad
	contentW := right - left

	y := pad
	logoBadge(c, canvas.Rect{X: left, Y: y, W: 56, H: 56}, "A")
	c.Text(agencyName, canvas.Pt{X: left + 72, Y: y + 24}, style(24, true, ink))
	c.Text("Marketing dla salonów beauty", canvas.Pt{X: left + 72, Y: y + 46}, style(14, false, zinc500))
	badgeW := 110.0
	c.FillRect(canvas.Rect{X: right - badgeW, Y: y, W: badgeW, H: 32}, 12, pink500)
	c.Text("UMOWA", canvas.Pt{X: right - badgeW/2, Y: y + 16}, canvas.TextStyle{
		Size: 14, Bold: true, Color: white, Anchor: canvas.AnchorMiddle, Middle: true,
	})
	c.Text(v.Number, canvas.Pt{X: right, Y: y + 58}, rightAligned(style(18, true, ink)))
	y += 80
	c.Line(canvas.Pt{X: left, Y: y}, canvas.Pt{X: right, Y: y}, 2, pink500)
	y += 48

	c.Text(v.Title, canvas.Pt{X: bounds.W / 2, Y: y}, centered(style(22, true, ink)))
	y += 28
	c.Text(v.SignedOn, canvas.Pt{X: bounds.W / 2, Y: y}, centered(style(14, false, zinc500)))
	y += 32

	// Parties
	halfW := (contentW - 24) / 2
	partyH := 96.0
	for i, p := range v.Parties {
		area := lightPanel(c, canvas.Rect{X: left + float64(i)*(halfW+24), Y: y, W: halfW, H: partyH}, canvas.ParseHex("#f9fafb"), zinc200, p.Title)
		c.Paragraph(p.Body, area, 18, style(13, false, zinc700))
	}
	y += partyH + 16

	for _, s := range v.Sections {
		lines := c.Wrap(s.Body, contentW-40, 14, false)
		h := 40 + 30 + float64(len(lines))*20
		area := lightPanel(c, canvas.Rect{X: left, Y: y, W: contentW, H: h}, canvas.ParseHex("#fafafa"), zinc200, s.Title)
		c.Paragraph(s.Body, area, 20, style(14, false, zinc700))
		y += h + 16
	}

	// Remuneration
	area := lightPanel(c, canvas.Rect{X: left, Y: y, W: contentW, H: 150}, pink50, pink200, "§3 Wynagrodzenie")
	inner := canvas.Rect{X: area.X, Y: area.Y, W: area.W, H: 56}
	c.Box(inner, 10, white, pink200)
	c.Text("Wartość umowy:", canvas.Pt{X: inner.X + 16, Y: inner.Y + 33}, style(14, false, zinc700))
	c.Text(v.Value, canvas.Pt{X: inner.X + inner.W - 16, Y: inner.Y + 37}, rightAligned(style(24, true, pink600)))
	c.Text(v.Terms, canvas.Pt{X: area.X, Y: inner.Y + inner.H + 24}, style(13, false, zinc700))

	// Signatures
	sigY := bounds.H - pad - 40
	c.Line(canvas.Pt{X: left, Y: sigY - 88}, canvas.Pt{X: right, Y: sigY - 88}, 1, zinc200)
	signatureLine(c, left, sigY, "Zleceniobiorca")
	signatureLine(c, right-192, sigY, "Zleceniodawca")
	c.Text("Dokument chroniony", canvas.Pt{X: bounds.W / 2, Y: sigY + 20}, centered(style(12, false, zinc400)))
	return nil
}
