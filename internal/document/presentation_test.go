package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurine/docgen/internal/canvas"
)

func testPresentation() *Presentation {
	return &Presentation{OwnerName: "Anna", SalonName: "Beauty Studio", City: "Gdańsk"}
}

func TestPresentationShape(t *testing.T) {
	p := testPresentation()
	assert.Equal(t, Landscape, p.PageSize())
	assert.Equal(t, 6, p.PageCount())
	assert.True(t, p.JPEGPages())
	assert.Equal(t, "prezentacja-beauty-studio.pdf", p.FileName("pdf"))
}

func TestPresentationValidationMessages(t *testing.T) {
	require.NoError(t, testPresentation().Validate())

	err := (&Presentation{}).Validate()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	msgs := verr.Messages()
	assert.Equal(t, "Pole wymagane", msgs["ownerName"])
	assert.Equal(t, "Pole wymagane", msgs["salonName"])
	assert.Equal(t, "Pole wymagane", msgs["city"], "report wording stays on the report form")
}

func TestPresentationPreview(t *testing.T) {
	html, err := testPresentation().Preview()
	require.NoError(t, err)
	doc := parseHTML(t, html)

	assert.Equal(t, 6, doc.Find("section.slide").Length())
	assert.Equal(t, "Dzień dobry, Anna!", doc.Find("#slide-1 h1").Text())
	assert.Contains(t, doc.Find("#slide-3").Text(), "Precyzyjne targetowanie kobiet 25-55 w Gdańsk")
	assert.Equal(t, 4, doc.Find("#slide-4 .stats > div").Length())
	assert.Equal(t, "Propozycja dla Beauty Studio", doc.Find("#slide-5 h2").Text())
	assert.Equal(t, "kontakt@aurine.pl", doc.Find("#slide-6 .button").Text())
}

func TestPresentationPaint(t *testing.T) {
	p := testPresentation()
	c := canvas.New(Landscape.W, Landscape.H, 0.25)
	defer c.Close()

	for page := 0; page < SlideCount; page++ {
		require.NoError(t, p.Paint(c, page), "slide %d", page+1)
	}
	assert.Error(t, p.Paint(c, SlideCount))
}
