package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aurine/docgen/internal/chart"
	"github.com/aurine/docgen/internal/document"
	"github.com/aurine/docgen/internal/export"
	"github.com/aurine/docgen/internal/infra"
)

var (
	errRateLimited = errors.New("too many exports, try again shortly")
	errBadBody     = errors.New("invalid request body")
)

// parseDocument decodes the request body into a validated document of the
// kind named in the URL.
func parseDocument(r *http.Request) (document.Document, error) {
	kind, err := document.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		return nil, err
	}
	fields, err := decodeFields(r)
	if err != nil {
		return nil, errBadBody
	}
	doc, err := document.New(kind, fields)
	if err != nil {
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// handlePreview renders the document as HTML. Report previews are saved to
// the history.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	doc, err := parseDocument(r)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	html, err := doc.Preview()
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}

	if doc.Kind() == document.KindReport && s.history != nil {
		s.saveHistory(r, doc)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html)) //nolint:errcheck
}

func (s *Server) saveHistory(r *http.Request, doc document.Document) {
	fields, err := document.Fields(doc)
	if err != nil {
		s.logger.Warn().Err(err).Msg("flattening report form")
		return
	}
	if _, err := s.history.Save(r.Context(), fields); err != nil {
		s.logger.Warn().Err(err).Msg("saving report to history")
	}
}

// handleExport renders the document as a PDF, PNG or JPEG download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	doc, err := parseDocument(r)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}

	key, err := exportKey(doc, format)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	if res, ok := s.cache.Get(key); ok {
		writeFile(w, res, "hit")
		return
	}

	if !s.limiter.Allow() {
		s.writeFailure(w, r, errRateLimited)
		return
	}

	var buf bytes.Buffer
	if err := s.exporter.Export(r.Context(), doc, format, &buf); err != nil {
		s.writeFailure(w, r, err)
		return
	}
	res := exportResult{
		data:        buf.Bytes(),
		contentType: format.ContentType(),
		fileName:    doc.FileName(format.Extension()),
	}
	s.cache.Set(key, res)
	writeFile(w, res, "miss")
}

// exportKey identifies an export by document kind, format and form content.
func exportKey(doc document.Document, format export.Format) (string, error) {
	fields, err := document.Fields(doc)
	if err != nil {
		return "", err
	}
	// encoding/json sorts map keys, so equal forms hash equally.
	form, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("encoding form: %w", err)
	}
	return infra.HashKey([]byte(doc.Kind()), []byte(format), form), nil
}

func writeFile(w http.ResponseWriter, res exportResult, cache string) {
	w.Header().Set("Content-Type", res.contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.fileName))
	w.Header().Set("X-Cache", cache)
	w.WriteHeader(http.StatusOK)
	w.Write(res.data) //nolint:errcheck
}

// handleReportCharts returns the four report charts as SVG, along with the
// series they were drawn from.
func (s *Server) handleReportCharts(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(r)
	if err != nil {
		s.writeFailure(w, r, errBadBody)
		return
	}
	doc, err := document.New(document.KindReport, fields)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	report := doc.(*document.Report)
	charts, err := report.Charts()
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: ChartsResponse{
			Engagement: charts.Engagement.SVG(),
			Conversion: charts.Conversion.SVG(),
			Weekly:     charts.Weekly.SVG(),
			Daily:      charts.Daily.SVG(),
			Data:       report.ChartData(),
		},
	})
}

// handleChart renders a single pie, bar or line chart from raw series and
// responds with SVG markup. An empty series yields a "no data" placeholder.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	var req ChartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeFailure(w, r, errBadBody)
		return
	}

	opts := chart.DefaultOptions()
	var (
		c             *chart.Chart
		err           error
		width, height float64
	)
	switch kind := chart.Kind(chi.URLParam(r, "chart")); kind {
	case chart.KindPie:
		c, err = chart.Pie(req.Series, req.Size, opts)
		width, height = req.Size, req.Size
	case chart.KindBar:
		c, err = chart.Bar(req.Series, req.Height, opts)
		width, height = opts.PlotWidth, req.Height
	case chart.KindLine:
		c, err = chart.Line(req.Points, req.Height, opts)
		width, height = opts.PlotWidth, req.Height
	default:
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown chart type %q", kind))
		return
	}
	if errors.Is(err, chart.ErrEmptySeries) {
		writeSVG(w, chart.EmptySVG(width, height, noDataLabel))
		return
	}
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	writeSVG(w, c.SVG())
}

const noDataLabel = "Brak danych"

func writeSVG(w http.ResponseWriter, svg string) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(svg)) //nolint:errcheck
}
