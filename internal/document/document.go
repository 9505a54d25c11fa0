// Package document defines the generated document types (campaign report,
// invoice, contract, sales presentation): their form fields, validation,
// HTML preview and raster page layout.
package document

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/aurine/docgen/internal/canvas"
)

// Kind identifies a document type.
type Kind string

const (
	KindReport       Kind = "report"
	KindInvoice      Kind = "invoice"
	KindContract     Kind = "contract"
	KindPresentation Kind = "presentation"
)

// ErrUnknownKind is returned for an unsupported document type.
var ErrUnknownKind = errors.New("unknown document kind")

// Kinds returns all document kinds.
func Kinds() []Kind {
	return []Kind{KindReport, KindInvoice, KindContract, KindPresentation}
}

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds() {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Size is a page size in logical pixels.
type Size struct {
	W int `json:"width"`
	H int `json:"height"`
}

var (
	// Portrait is the A4-proportioned page of reports, invoices and contracts.
	Portrait = Size{W: 794, H: 1123}
	// Landscape is the full-HD slide of presentations.
	Landscape = Size{W: 1920, H: 1080}
)

// Document is a validated form that can be previewed as HTML and painted as
// raster pages.
type Document interface {
	Kind() Kind
	// Validate reports missing or malformed fields as a *ValidationError.
	Validate() error
	// PageSize returns the logical size of every page.
	PageSize() Size
	PageCount() int
	// Background is the color exported images are flattened onto.
	Background() color.RGBA
	// FileName returns the download name for the given extension ("pdf", "png").
	FileName(ext string) string
	// Preview renders the document as a standalone HTML page.
	Preview() (string, error)
	// Paint draws page (0-based) onto a canvas of PageSize.
	Paint(c *canvas.Canvas, page int) error
}

// New decodes form fields into a document of the given kind and fills in the
// defaults of blank optional fields. It does not validate.
func New(kind Kind, fields map[string]any) (Document, error) {
	var doc interface {
		Document
		applyDefaults()
	}
	switch kind {
	case KindReport:
		doc = &Report{}
	case KindInvoice:
		doc = &Invoice{}
	case KindContract:
		doc = &Contract{}
	case KindPresentation:
		doc = &Presentation{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if err := Decode(fields, doc); err != nil {
		return nil, err
	}
	doc.applyDefaults()
	return doc, nil
}

// Decode copies form fields into a struct using its json tags. Numbers and
// booleans are accepted where strings are expected; unknown keys are ignored.
func Decode(fields map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Squash:           true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("creating decoder: %w", err)
	}
	if err := dec.Decode(fields); err != nil {
		return fmt.Errorf("decoding form: %w", err)
	}
	return nil
}

// Fields flattens a document back into its non-empty form fields.
func Fields(doc Document) (map[string]string, error) {
	raw := map[string]any{}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Squash:  true,
		Result:  &raw,
	})
	if err != nil {
		return nil, fmt.Errorf("creating decoder: %w", err)
	}
	if err := dec.Decode(doc); err != nil {
		return nil, fmt.Errorf("encoding form: %w", err)
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if s := fmt.Sprint(v); s != "" {
			out[k] = s
		}
	}
	return out, nil
}

// StringFields converts string form values for New.
func StringFields(in map[string]string) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
