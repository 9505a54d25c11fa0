// Package export rasterizes documents and encodes them as PDF, PNG or JPEG.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/aurine/docgen/internal/canvas"
	"github.com/aurine/docgen/internal/document"
)

func init() {
	// pdfcpu would otherwise create a config directory under $HOME on first use.
	api.DisableConfigDir()
}

// Format is an export file format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
)

var (
	// ErrExport wraps every failure to render or encode a document.
	ErrExport = errors.New("export failed")
	// ErrUnsupportedFormat is returned for unknown format names.
	ErrUnsupportedFormat = errors.New("unsupported export format")
)

// ParseFormat resolves a format name. "jpg" is accepted for JPEG.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pdf", "":
		return FormatPDF, nil
	case "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatJPEG:
		return "image/jpeg"
	default:
		return "application/pdf"
	}
}

// Extension returns the file extension without the dot.
func (f Format) Extension() string {
	if f == FormatJPEG {
		return "jpg"
	}
	return string(f)
}

// JPEGPager is implemented by documents whose PDF pages are embedded as JPEG.
type JPEGPager interface {
	JPEGPages() bool
}

// Options controls rasterization.
type Options struct {
	// PDFPixelRatio is the canvas scale of pages embedded into a PDF.
	PDFPixelRatio float64
	// ImagePixelRatio is the canvas scale of PNG and JPEG exports.
	ImagePixelRatio float64
	JPEGQuality     int
	// Workers bounds concurrent page painting. Zero means GOMAXPROCS.
	Workers int
}

// DefaultOptions returns the export settings of the web application.
func DefaultOptions() Options {
	return Options{
		PDFPixelRatio:   3,
		ImagePixelRatio: 2,
		JPEGQuality:     95,
	}
}

// Exporter turns documents into files.
type Exporter struct {
	opts   Options
	logger zerolog.Logger
}

// New creates an exporter. Zero option values fall back to DefaultOptions.
func New(opts Options, logger zerolog.Logger) *Exporter {
	def := DefaultOptions()
	if opts.PDFPixelRatio <= 0 {
		opts.PDFPixelRatio = def.PDFPixelRatio
	}
	if opts.ImagePixelRatio <= 0 {
		opts.ImagePixelRatio = def.ImagePixelRatio
	}
	if opts.JPEGQuality <= 0 || opts.JPEGQuality > 100 {
		opts.JPEGQuality = def.JPEGQuality
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	return &Exporter{opts: opts, logger: logger.With().Str("component", "export").Logger()}
}

// Options returns the effective settings.
func (e *Exporter) Options() Options { return e.opts }

// Export validates doc and writes it to w. PNG and JPEG exports contain the
// first page only.
func (e *Exporter) Export(ctx context.Context, doc document.Document, format Format, w io.Writer) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	start := time.Now()
	var err error
	switch format {
	case FormatPDF:
		err = e.writePDF(ctx, doc, w)
	case FormatPNG, FormatJPEG:
		err = e.writeImage(ctx, doc, format, w)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		e.logger.Error().Err(err).Str("kind", string(doc.Kind())).Str("format", string(format)).Msg("export failed")
		return err
	}

	e.logger.Debug().
		Str("kind", string(doc.Kind())).
		Str("format", string(format)).
		Int("pages", doc.PageCount()).
		Dur("took", time.Since(start)).
		Msg("document exported")
	return nil
}

// RenderPages paints every page of doc at the given pixel ratio. Pages are
// painted concurrently, one canvas per page.
func (e *Exporter) RenderPages(ctx context.Context, doc document.Document, ratio float64) ([]*image.RGBA, error) {
	pages := make([]*image.RGBA, doc.PageCount())
	size := doc.PageSize()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Workers)
	for i := range pages {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := renderPage(doc, size, i, ratio)
			if err != nil {
				return err
			}
			pages[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, wrap("rendering pages", err)
	}
	return pages, nil
}

func renderPage(doc document.Document, size document.Size, page int, ratio float64) (*image.RGBA, error) {
	c := canvas.New(size.W, size.H, ratio)
	defer c.Close()

	c.Fill(doc.Background())
	if err := doc.Paint(c, page); err != nil {
		return nil, fmt.Errorf("page %d: %w", page+1, err)
	}
	return c.Image(), nil
}

func (e *Exporter) writeImage(ctx context.Context, doc document.Document, format Format, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return wrap("rendering page", err)
	}
	img, err := renderPage(doc, doc.PageSize(), 0, e.opts.ImagePixelRatio)
	if err != nil {
		return wrap("rendering page", err)
	}
	if err := e.encode(w, img, format); err != nil {
		return wrap("encoding "+string(format), err)
	}
	return nil
}

func (e *Exporter) writePDF(ctx context.Context, doc document.Document, w io.Writer) error {
	pages, err := e.RenderPages(ctx, doc, e.opts.PDFPixelRatio)
	if err != nil {
		return err
	}

	pageFormat := FormatPNG
	if jp, ok := doc.(JPEGPager); ok && jp.JPEGPages() {
		pageFormat = FormatJPEG
	}

	readers := make([]io.Reader, len(pages))
	for i, img := range pages {
		var buf bytes.Buffer
		if err := e.encode(&buf, img, pageFormat); err != nil {
			return wrap(fmt.Sprintf("encoding page %d", i+1), err)
		}
		readers[i] = &buf
	}

	imp, err := api.Import(importDescription(doc.PageSize()), types.POINTS)
	if err != nil {
		return wrap("parsing import description", err)
	}
	if err := api.ImportImages(nil, w, readers, imp, model.NewDefaultConfiguration()); err != nil {
		return wrap("assembling pdf", err)
	}
	return nil
}

// importDescription pins each PDF page to size in points and scales the page
// image to fit it. "position:full" would size the page to the image pixels.
func importDescription(size document.Size) string {
	return fmt.Sprintf("dimensions:%d %d, position:c, scalefactor:1 rel", size.W, size.H)
}

func (e *Exporter) encode(w io.Writer, img image.Image, format Format) error {
	if format == FormatJPEG {
		return jpeg.Encode(w, img, &jpeg.Options{Quality: e.opts.JPEGQuality})
	}
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	return enc.Encode(w, img)
}

func wrap(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrExport, op, err)
}
