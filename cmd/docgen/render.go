package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aurine/docgen/internal/document"
	"github.com/aurine/docgen/internal/export"
)

// --- Render Command ---

var renderCmd = &cobra.Command{
	Use:   "render [report|invoice|contract|presentation]",
	Short: "Render a document from a YAML or JSON form",
	Long: `Render a document from a form file. The form is a flat mapping of field
names to values, e.g.

  clientName: Beauty Studio
  city: Warszawa
  budget: "5,000"

Use --input - to read the form from stdin. Formats: pdf, png, jpeg, html.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"report", "invoice", "contract", "presentation"},
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := document.ParseKind(args[0])
		if err != nil {
			return err
		}
		input, _ := cmd.Flags().GetString("input")
		formatName, _ := cmd.Flags().GetString("format")
		out, _ := cmd.Flags().GetString("out")
		save, _ := cmd.Flags().GetBool("save")

		fields, err := readForm(input, cmd.InOrStdin())
		if err != nil {
			return err
		}
		doc, err := document.New(kind, fields)
		if err != nil {
			return err
		}
		if err := doc.Validate(); err != nil {
			return formatValidation(err)
		}

		if _, err := renderTo(cmd, doc, formatName, out); err != nil {
			return err
		}

		if save && kind == document.KindReport {
			if err := saveReport(cmd, doc); err != nil {
				logger.Warn().Err(err).Msg("saving report to history")
			}
		}
		return nil
	},
}

func init() {
	renderCmd.Flags().StringP("input", "i", "", "form file (YAML or JSON), - for stdin")
	renderCmd.Flags().StringP("format", "f", "pdf", "output format: pdf, png, jpeg, html")
	renderCmd.Flags().StringP("out", "o", "", "output path (default: document file name)")
	renderCmd.Flags().Bool("save", true, "save report forms to the history")
	_ = renderCmd.MarkFlagRequired("input")
}

func render(cmd *cobra.Command, doc document.Document, formatName string) ([]byte, string, error) {
	if strings.EqualFold(formatName, "html") {
		html, err := doc.Preview()
		if err != nil {
			return nil, "", err
		}
		return []byte(html), "html", nil
	}

	format, err := export.ParseFormat(formatName)
	if err != nil {
		return nil, "", err
	}
	var buf bytes.Buffer
	if err := newExporter().Export(cmd.Context(), doc, format, &buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), format.Extension(), nil
}

// renderTo renders doc and writes it to out, defaulting to the document's
// file name. It returns the written path.
func renderTo(cmd *cobra.Command, doc document.Document, formatName, out string) (string, error) {
	data, ext, err := render(cmd, doc, formatName)
	if err != nil {
		return "", err
	}
	if out == "" {
		out = doc.FileName(ext)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", out, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✅ %s written (%d bytes)\n", out, len(data))
	return out, nil
}

// readForm loads form fields from a YAML (or JSON, a YAML subset) file.
func readForm(path string, stdin io.Reader) (map[string]any, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(filepath.Clean(path))
	}
	if err != nil {
		return nil, fmt.Errorf("reading form: %w", err)
	}

	fields := map[string]any{}
	if err := yaml.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("parsing form %s: %w", path, err)
	}
	return fields, nil
}

// formatValidation lists field messages one per line.
func formatValidation(err error) error {
	var verr *document.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "invalid %s form:", verr.Kind)
	for _, f := range verr.Fields {
		fmt.Fprintf(&sb, "\n  %s: %s", f.Field, f.Message)
	}
	return errors.New(sb.String())
}

func saveReport(cmd *cobra.Command, doc document.Document) error {
	fields, err := document.Fields(doc)
	if err != nil {
		return err
	}
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()
	_, err = store.Save(cmd.Context(), fields)
	return err
}
