package document

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurine/docgen/internal/canvas"
	"github.com/aurine/docgen/pkg/utils"
)

func TestInvoiceDefaults(t *testing.T) {
	inv := &Invoice{ClientName: "Salon", InvoiceNumber: "FV/2026/001", Amount: "5000", AdvanceAmount: "100"}
	inv.applyDefaultsAt(time.Date(2026, 10, 17, 0, 0, 0, 0, utils.Warsaw))

	assert.Equal(t, InvoiceFull, inv.Type)
	assert.Equal(t, "2026-10-17", inv.IssueDate)
	assert.Equal(t, "2026-10-24", inv.PaymentDue)
	assert.Equal(t, "Usługi marketingowe Facebook Ads", inv.ServiceDescription)
	assert.Empty(t, inv.AdvanceAmount, "only final invoices carry an advance")
	assert.Equal(t, "FV-2026-001.pdf", inv.FileName("pdf"))
}

func TestInvoiceTotals(t *testing.T) {
	tests := []struct {
		name    string
		inv     Invoice
		value   float64
		advance float64
		due     float64
	}{
		{"full", Invoice{Type: InvoiceFull, Amount: "5000", AdvanceAmount: "2000"}, 5000, 0, 5000},
		{"advance", Invoice{Type: InvoiceAdvance, Amount: "1500"}, 1500, 0, 1500},
		{"final", Invoice{Type: InvoiceFinal, Amount: "5000", AdvanceAmount: "2000"}, 5000, 2000, 3000},
		{"final overpaid", Invoice{Type: InvoiceFinal, Amount: "1000", AdvanceAmount: "2000"}, 1000, 2000, 0},
		{"grouped", Invoice{Type: InvoiceFull, Amount: "12 500.50"}, 12500.5, 0, 12500.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, advance, due := tt.inv.Totals()
			assert.Equal(t, tt.value, value)
			assert.Equal(t, tt.advance, advance)
			assert.Equal(t, tt.due, due)
		})
	}
}

func TestInvoicePreview(t *testing.T) {
	inv := &Invoice{
		Type:          InvoiceFinal,
		ClientName:    "Salon Beauty XYZ",
		ClientAddress: "ul. Przykładowa 123, 00-000 Warszawa",
		ClientNIP:     "1234567890",
		InvoiceNumber: "FV/2026/002",
		Amount:        "5000",
		AdvanceAmount: "2000",
	}
	inv.applyDefaultsAt(time.Date(2026, 10, 17, 0, 0, 0, 0, utils.Warsaw))

	html, err := inv.Preview()
	require.NoError(t, err)
	doc := parseHTML(t, html)

	assert.Equal(t, "FAKTURA KOŃCOWA", doc.Find(".badge").Text())
	assert.Equal(t, "3000,00 PLN", doc.Find("#amount-due").Text())
	assert.Equal(t, 1, doc.Find(".advance").Length())
	assert.Equal(t, 3, doc.Find("#buyer p").Length())
	assert.Equal(t, "NIP: 1234567890", doc.Find("#buyer p").Last().Text())
	assert.Contains(t, doc.Find(".dates").Text(), "24.10.2026")
	assert.Contains(t, doc.Find(".note").Text(), "zwolniony z podatku VAT")

	inv.Type = InvoiceFull
	html, err = inv.Preview()
	require.NoError(t, err)
	doc = parseHTML(t, html)
	assert.Equal(t, "FAKTURA", doc.Find(".badge").Text())
	assert.Equal(t, 0, doc.Find(".advance").Length())
	assert.Equal(t, "5000,00 PLN", doc.Find("#amount-due").Text())
}

func TestInvoicePaint(t *testing.T) {
	inv := &Invoice{ClientName: "Salon", InvoiceNumber: "FV/1", Amount: "100"}
	inv.applyDefaultsAt(time.Date(2026, 10, 17, 0, 0, 0, 0, utils.Warsaw))

	c := canvas.New(Portrait.W, Portrait.H, 1)
	defer c.Close()
	require.NoError(t, inv.Paint(c, 0))

	img := c.Image()
	assert.Equal(t, white, img.RGBAAt(5, 5))
	assert.Equal(t, pink500, img.RGBAAt(Portrait.W/2, 120), "header rule")
	assert.Error(t, inv.Paint(c, 2))
}
