package report

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/leak-calc/internal/model"
)

// Format is an output rendering.
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatXLSX     Format = "xlsx"
)

// Formats lists every supported output format.
var Formats = []Format{FormatTable, FormatJSON, FormatMarkdown, FormatHTML, FormatXLSX}

// ParseFormat resolves a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatTable, FormatJSON, FormatMarkdown, FormatHTML, FormatXLSX:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	default:
		return "", eris.Errorf("report: unknown format %q", s)
	}
}

// Report is one evaluated business, ready to render.
type Report struct {
	EvaluationID string                   `json:"evaluation_id,omitempty"`
	Business     string                   `json:"business,omitempty"`
	Result       *model.CalculationResult `json:"result"`
}

// Render writes the report in the given format.
func Render(w io.Writer, rep Report, f Format) error {
	if rep.Result == nil {
		return eris.New("report: nil result")
	}
	switch f {
	case FormatTable:
		return WriteTable(w, rep)
	case FormatJSON:
		return WriteJSON(w, rep)
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(rep))
		return eris.Wrap(err, "report: write markdown")
	case FormatHTML:
		return WriteHTML(w, rep)
	case FormatXLSX:
		return WriteXLSX(w, rep)
	default:
		return eris.Errorf("report: unknown format %q", f)
	}
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return eris.Wrap(err, "report: encode json")
	}
	return nil
}

func title(rep Report) string {
	if rep.Business == "" {
		return "Revenue Leak Report"
	}
	return "Revenue Leak Report: " + rep.Business
}
