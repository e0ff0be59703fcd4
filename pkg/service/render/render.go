// Package render turns a RiskReport into a self-contained HTML document with
// inline SVG charts, or into JSON.
package render

import (
	"bytes"
	"embed"
	"encoding/json"
	"html/template"
	"io"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskcard/pkg/domain/model"
)

//go:embed templates/report.html.tmpl templates/style.css
var assets embed.FS

var (
	documentTemplate = template.Must(
		template.New("report.html.tmpl").
			Funcs(template.FuncMap{"join": strings.Join}).
			ParseFS(assets, "templates/report.html.tmpl"),
	)
	stylesheet = mustReadAsset("templates/style.css")
)

func mustReadAsset(name string) string {
	b, err := assets.ReadFile(name)
	if err != nil {
		panic(err)
	}
	return string(b)
}

// ErrNilReport is returned when no report is passed
var ErrNilReport = goerr.New("report is nil")

// Format is an output encoding of the document
type Format string

const (
	FormatHTML Format = "html"
	FormatJSON Format = "json"
)

// ParseFormat accepts "html" or "json"
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatHTML, FormatJSON:
		return f, nil
	default:
		return "", goerr.New("unsupported output format", goerr.V("format", s))
	}
}

// ContentType returns the HTTP media type of the format
func (f Format) ContentType() string {
	if f == FormatJSON {
		return "application/json; charset=utf-8"
	}
	return "text/html; charset=utf-8"
}

// Document renders report in format into memory. Nothing is produced when
// rendering fails.
func Document(report *model.RiskReport, format Format) ([]byte, error) {
	if report == nil {
		return nil, ErrNilReport
	}

	var buf bytes.Buffer
	switch format {
	case FormatHTML:
		if err := documentTemplate.Execute(&buf, newPage(report)); err != nil {
			return nil, goerr.Wrap(err, "failed to execute report template")
		}
	case FormatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return nil, goerr.Wrap(err, "failed to encode report")
		}
	default:
		return nil, goerr.New("unsupported output format", goerr.V("format", format))
	}
	return buf.Bytes(), nil
}

// HTML writes the document for report to w. The whole document is rendered
// before the first byte is written.
func HTML(w io.Writer, report *model.RiskReport) error {
	return write(w, report, FormatHTML)
}

// JSON writes report as indented JSON to w
func JSON(w io.Writer, report *model.RiskReport) error {
	return write(w, report, FormatJSON)
}

func write(w io.Writer, report *model.RiskReport, format Format) error {
	doc, err := Document(report, format)
	if err != nil {
		return err
	}
	if _, err := w.Write(doc); err != nil {
		return goerr.Wrap(err, "failed to write document", goerr.V("format", format))
	}
	return nil
}
