package export

import (
	"bytes"
	"context"
	"errors"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurine/docgen/internal/document"
)

func newTestExporter(opts Options) *Exporter {
	return New(opts, zerolog.Nop())
}

func reportDoc(t *testing.T) document.Document {
	t.Helper()
	doc, err := document.New(document.KindReport, map[string]any{
		"clientName":        "Beauty Studio",
		"city":              "Kraków",
		"period":            "Wrzesień 2026",
		"budget":            "5,000",
		"impressions":       "150,000",
		"reach":             "85,000",
		"clicks":            "3,500",
		"ctr":               "2.33",
		"conversions":       "245",
		"costPerConversion": "20.41",
		"bookings":          "178",
	})
	require.NoError(t, err)
	return doc
}

func presentationDoc(t *testing.T) document.Document {
	t.Helper()
	doc, err := document.New(document.KindPresentation, map[string]any{
		"ownerName": "Anna",
		"salonName": "Studio Urody",
		"city":      "Gdańsk",
	})
	require.NoError(t, err)
	return doc
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"pdf", FormatPDF},
		{"", FormatPDF},
		{"PNG", FormatPNG},
		{"jpg", FormatJPEG},
		{"jpeg", FormatJPEG},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseFormat("docx")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFormatMetadata(t *testing.T) {
	assert.Equal(t, "application/pdf", FormatPDF.ContentType())
	assert.Equal(t, "image/png", FormatPNG.ContentType())
	assert.Equal(t, "image/jpeg", FormatJPEG.ContentType())
	assert.Equal(t, "jpg", FormatJPEG.Extension())
	assert.Equal(t, "pdf", FormatPDF.Extension())
}

func TestNewAppliesDefaults(t *testing.T) {
	e := newTestExporter(Options{JPEGQuality: 400})
	opts := e.Options()
	assert.Equal(t, 3.0, opts.PDFPixelRatio)
	assert.Equal(t, 2.0, opts.ImagePixelRatio)
	assert.Equal(t, 95, opts.JPEGQuality)
	assert.Positive(t, opts.Workers)
}

func TestExportPNG(t *testing.T) {
	e := newTestExporter(Options{ImagePixelRatio: 0.5})
	var buf bytes.Buffer
	require.NoError(t, e.Export(context.Background(), reportDoc(t), FormatPNG, &buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 397, img.Bounds().Dx())
	assert.Equal(t, 562, img.Bounds().Dy())

	// The corner shows the flattening background.
	r, g, b, _ := img.At(0, 0).RGBA()
	assert.Less(t, r>>8, uint32(0x20))
	assert.Less(t, g>>8, uint32(0x20))
	assert.Less(t, b>>8, uint32(0x20))
}

func TestExportJPEG(t *testing.T) {
	e := newTestExporter(Options{ImagePixelRatio: 0.25})
	var buf bytes.Buffer
	require.NoError(t, e.Export(context.Background(), presentationDoc(t), FormatJPEG, &buf))

	img, err := jpeg.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 480, img.Bounds().Dx())
	assert.Equal(t, 270, img.Bounds().Dy())
}

func TestExportPDFPages(t *testing.T) {
	tests := []struct {
		name  string
		doc   document.Document
		ratio float64
		pages int
	}{
		{"report", reportDoc(t), 0.25, 1},
		{"report default ratio", reportDoc(t), 0, 1},
		{"presentation", presentationDoc(t), 0.25, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestExporter(Options{PDFPixelRatio: tt.ratio})
			var buf bytes.Buffer
			require.NoError(t, e.Export(context.Background(), tt.doc, FormatPDF, &buf))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))

			conf := model.NewDefaultConfiguration()
			conf.ValidationMode = model.ValidationRelaxed

			n, err := api.PageCount(bytes.NewReader(buf.Bytes()), conf)
			require.NoError(t, err)
			assert.Equal(t, tt.pages, n)

			// Pages keep the document size whatever the pixel ratio.
			dims, err := api.PageDims(bytes.NewReader(buf.Bytes()), conf)
			require.NoError(t, err)
			require.Len(t, dims, tt.pages)
			size := tt.doc.PageSize()
			for i, d := range dims {
				assert.InDelta(t, float64(size.W), d.Width, 0.01, "page %d width", i+1)
				assert.InDelta(t, float64(size.H), d.Height, 0.01, "page %d height", i+1)
			}
		})
	}
}

func TestImportDescription(t *testing.T) {
	imp, err := api.Import(importDescription(document.Landscape), types.POINTS)
	require.NoError(t, err)
	assert.Equal(t, 1920.0, imp.PageDim.Width)
	assert.Equal(t, 1080.0, imp.PageDim.Height)
	assert.Equal(t, types.Center, imp.Pos)
	assert.Equal(t, 1.0, imp.Scale)
	assert.False(t, imp.ScaleAbs)
}

func TestRenderPages(t *testing.T) {
	e := newTestExporter(Options{Workers: 2})
	pages, err := e.RenderPages(context.Background(), presentationDoc(t), 0.125)
	require.NoError(t, err)
	require.Len(t, pages, 6)
	for i, p := range pages {
		require.NotNil(t, p, "page %d", i)
		assert.Equal(t, 240, p.Bounds().Dx())
		assert.Equal(t, 135, p.Bounds().Dy())
	}
}

func TestRenderPagesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestExporter(Options{}).RenderPages(ctx, presentationDoc(t), 0.125)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExport)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExportRejectsInvalidDocument(t *testing.T) {
	doc, err := document.New(document.KindInvoice, map[string]any{})
	require.NoError(t, err)

	err = newTestExporter(Options{}).Export(context.Background(), doc, FormatPDF, &bytes.Buffer{})
	var verr *document.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestExportUnsupportedFormat(t *testing.T) {
	err := newTestExporter(Options{}).Export(context.Background(), reportDoc(t), Format("gif"), &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
