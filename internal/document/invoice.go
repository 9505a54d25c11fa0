package document

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/aurine/docgen/internal/adapter"
	"github.com/aurine/docgen/internal/canvas"
	"github.com/aurine/docgen/pkg/utils"
)

// InvoiceType selects the invoice variant.
type InvoiceType string

const (
	InvoiceAdvance InvoiceType = "advance"
	InvoiceFinal   InvoiceType = "final"
	InvoiceFull    InvoiceType = "full"
)

// Label returns the Polish variant name.
func (t InvoiceType) Label() string {
	switch t {
	case InvoiceAdvance:
		return "Zaliczkowa"
	case InvoiceFinal:
		return "Końcowa"
	default:
		return "Pełna"
	}
}

const (
	defaultServiceDescription = "Usługi marketingowe Facebook Ads"
	paymentTermDays           = 7
	vatExemptNote             = "Sprzedawca zwolniony z podatku VAT na podstawie art. 113 ust. 1 ustawy o VAT."
)

// Invoice is a VAT-exempt invoice for marketing services.
type Invoice struct {
	Type               InvoiceType `json:"invoiceType" validate:"omitempty,oneof=advance final full"`
	ClientName         string      `json:"clientName" validate:"required"`
	ClientAddress      string      `json:"clientAddress,omitempty"`
	ClientNIP          string      `json:"clientNIP,omitempty"`
	InvoiceNumber      string      `json:"invoiceNumber" validate:"required"`
	IssueDate          string      `json:"issueDate" validate:"omitempty,datetime=2006-01-02"`
	PaymentDue         string      `json:"paymentDue" validate:"omitempty,datetime=2006-01-02"`
	ServiceDescription string      `json:"serviceDescription"`
	Amount             string      `json:"amount" validate:"required"`
	AdvanceAmount      string      `json:"advanceAmount,omitempty"`
}

func (inv *Invoice) Kind() Kind { return KindInvoice }

func (inv *Invoice) Validate() error {
	return validateForm(KindInvoice, *inv, map[string]string{
		"clientName.required":    "Nazwa klienta wymagana",
		"invoiceNumber.required": "Numer faktury wymagany",
		"amount.required":        "Kwota wymagana",
	})
}

func (inv *Invoice) PageSize() Size         { return Portrait }
func (inv *Invoice) PageCount() int         { return 1 }
func (inv *Invoice) Background() color.RGBA { return white }

func (inv *Invoice) FileName(ext string) string {
	return utils.DocumentNumberFileName(inv.InvoiceNumber) + "." + ext
}

func (inv *Invoice) applyDefaults() {
	inv.applyDefaultsAt(utils.TodayWarsaw())
}

func (inv *Invoice) applyDefaultsAt(today time.Time) {
	if inv.Type == "" {
		inv.Type = InvoiceFull
	}
	if inv.IssueDate == "" {
		inv.IssueDate = utils.FormatDateWarsaw(today)
	}
	if inv.PaymentDue == "" {
		inv.PaymentDue = utils.FormatDateWarsaw(utils.AddDays(today, paymentTermDays))
	}
	if inv.ServiceDescription == "" {
		inv.ServiceDescription = defaultServiceDescription
	}
	if inv.Type != InvoiceFinal {
		inv.AdvanceAmount = ""
	}
}

// Totals returns the service value, the advance already paid and the amount due.
// Only final invoices deduct an advance; the amount due never drops below zero.
func (inv *Invoice) Totals() (value, advance, due float64) {
	value = adapter.PolishGrouping.Parse(inv.Amount)
	if inv.Type == InvoiceFinal {
		advance = adapter.PolishGrouping.Parse(inv.AdvanceAmount)
	}
	return value, advance, math.Max(0, value-advance)
}

type invoiceView struct {
	Title       string
	TypeLabel   string
	Number      string
	IssueDate   string
	PaymentDue  string
	Seller      []string
	Buyer       []string
	Description string
	Value       string
	Advance     string
	Due         string
	IsFinal     bool
	VATNote     string
}

func (inv *Invoice) view() invoiceView {
	value, advance, due := inv.Totals()
	buyer := []string{inv.ClientName}
	if inv.ClientAddress != "" {
		buyer = append(buyer, inv.ClientAddress)
	}
	if inv.ClientNIP != "" {
		buyer = append(buyer, "NIP: "+inv.ClientNIP)
	}
	title := "FAKTURA"
	switch inv.Type {
	case InvoiceAdvance:
		title = "FAKTURA ZALICZKOWA"
	case InvoiceFinal:
		title = "FAKTURA KOŃCOWA"
	}
	return invoiceView{
		Title:       title,
		TypeLabel:   inv.Type.Label(),
		Number:      inv.InvoiceNumber,
		IssueDate:   formatFormDate(inv.IssueDate),
		PaymentDue:  formatFormDate(inv.PaymentDue),
		Seller:      []string{agencyName, "Marketing dla salonów beauty", agencyEmail, agencyPhone},
		Buyer:       buyer,
		Description: inv.ServiceDescription,
		Value:       utils.FormatAmountPL(value) + " PLN",
		Advance:     utils.FormatAmountPL(advance) + " PLN",
		Due:         utils.FormatAmountPL(due) + " PLN",
		IsFinal:     inv.Type == InvoiceFinal,
		VATNote:     vatExemptNote,
	}
}

// formatFormDate renders a "2006-01-02" form date as "17.10.2026", or "—".
func formatFormDate(s string) string {
	if s == "" {
		return "—"
	}
	t, err := utils.ParseDateWarsaw(s)
	if err != nil {
		return s
	}
	return utils.FormatDateShortPL(t)
}

func (inv *Invoice) Preview() (string, error) {
	return renderTemplate("invoice", InvoiceTemplate, inv.view())
}

func (inv *Invoice) Paint(c *canvas.Canvas, page int) error {
	if page != 0 {
		return fmt.Errorf("invoice page %d out of range", page)
	}
	v := inv.view()
	bounds := c.Bounds()
	c.Fill(white)

	const pad = 40.0
	left, right := pad, bounds.W-pad
	contentW := right - left

	// Header
	y := pad
	logoBadge(c, canvas.Rect{X: left, Y: y, W: 56, H: 56}, "A")
	c.Text(agencyName, canvas.Pt{X: left + 72, Y: y + 24}, style(24, true, ink))
	c.Text("Marketing dla salonów beauty", canvas.Pt{X: left + 72, Y: y + 46}, style(14, false, zinc500))
	badgeW := c.MeasureText(v.Title, 13, true) + 32
	c.FillRect(canvas.Rect{X: right - badgeW, Y: y, W: badgeW, H: 32}, 12, pink500)
	c.Text(v.Title, canvas.Pt{X: right - badgeW/2, Y: y + 16}, canvas.TextStyle{
		Size: 13, Bold: true, Color: white, Anchor: canvas.AnchorMiddle, Middle: true,
	})
	c.Text(v.Number, canvas.Pt{X: right, Y: y + 58}, rightAligned(style(18, true, ink)))
	y += 80
	c.Line(canvas.Pt{X: left, Y: y}, canvas.Pt{X: right, Y: y}, 2, pink500)
	y += 28

	// Dates
	c.Text("Data wystawienia: "+v.IssueDate, canvas.Pt{X: left, Y: y + 12}, style(13, false, zinc700))
	c.Text("Termin płatności: "+v.PaymentDue, canvas.Pt{X: right, Y: y + 12}, rightAligned(style(13, true, ink)))
	y += 36

	// Parties
	halfW := (contentW - 24) / 2
	for i, party := range []struct {
		title string
		lines []string
	}{
		{"Sprzedawca", v.Seller},
		{"Nabywca", v.Buyer},
	} {
		area := lightPanel(c, canvas.Rect{X: left + float64(i)*(halfW+24), Y: y, W: halfW, H: 150}, canvas.ParseHex("#f9fafb"), zinc200, party.title)
		ly := area.Y + 14
		for j, line := range party.lines {
			col := zinc700
			if j == 0 {
				col = ink
			}
			for _, wrapped := range c.Wrap(line, area.W, 13, j == 0) {
				c.Text(wrapped, canvas.Pt{X: area.X, Y: ly}, style(13, j == 0, col))
				ly += 20
			}
		}
	}
	y += 150 + 28

	// Service table
	c.FillRect(canvas.Rect{X: left, Y: y, W: contentW, H: 36}, 8, ink)
	c.Text("Lp.", canvas.Pt{X: left + 16, Y: y + 23}, style(12, true, white))
	c.Text("Nazwa usługi", canvas.Pt{X: left + 60, Y: y + 23}, style(12, true, white))
	c.Text("Wartość", canvas.Pt{X: right - 16, Y: y + 23}, rightAligned(style(12, true, white)))
	y += 36
	descLines := c.Wrap(v.Description, contentW-260, 13, false)
	rowH := math.Max(44, float64(len(descLines))*20+24)
	c.Line(canvas.Pt{X: left, Y: y + rowH}, canvas.Pt{X: right, Y: y + rowH}, 1, zinc200)
	c.Text("1", canvas.Pt{X: left + 16, Y: y + 27}, style(13, false, zinc700))
	ly := y + 27
	for _, line := range descLines {
		c.Text(line, canvas.Pt{X: left + 60, Y: ly}, style(13, false, ink))
		ly += 20
	}
	c.Text(v.Value, canvas.Pt{X: right - 16, Y: y + 27}, rightAligned(style(13, true, ink)))
	y += rowH + 24

	// Summary
	boxW := 320.0
	box := canvas.Rect{X: right - boxW, Y: y, W: boxW, H: 72}
	if v.IsFinal {
		box.H = 128
	}
	area := lightPanel(c, box, pink50, pink200, "")
	sy := area.Y + 14
	if v.IsFinal {
		c.Text("Wartość usługi:", canvas.Pt{X: area.X, Y: sy}, style(13, false, zinc700))
		c.Text(v.Value, canvas.Pt{X: area.X + area.W, Y: sy}, rightAligned(style(13, false, ink)))
		sy += 24
		c.Text("Zaliczka:", canvas.Pt{X: area.X, Y: sy}, style(13, false, zinc700))
		c.Text("- "+v.Advance, canvas.Pt{X: area.X + area.W, Y: sy}, rightAligned(style(13, false, ink)))
		sy += 30
	}
	c.Text("Do zapłaty:", canvas.Pt{X: area.X, Y: sy + 6}, style(15, true, ink))
	c.Text(v.Due, canvas.Pt{X: area.X + area.W, Y: sy + 8}, rightAligned(style(22, true, pink600)))
	y += box.H + 32

	c.Paragraph(v.VATNote, canvas.Rect{X: left, Y: y, W: contentW, H: 40}, 18, style(12, false, zinc500))

	// Signatures
	sigY := bounds.H - pad - 60
	signatureLine(c, left, sigY, "Wystawił")
	signatureLine(c, right-192, sigY, "Odebrał")
	return nil
}
