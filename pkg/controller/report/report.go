package report

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/workshopsize/pkg/domain/model"
	"github.com/m-mizutani/workshopsize/pkg/utils/units"
	"github.com/pelletier/go-toml/v2"
)

// Format is an output format of the collection report
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

var ErrUnknownFormat = goerr.New("unknown report format")

// untitled is shown in the text report for items whose title is unknown
const untitled = "unavailable"

// Formats lists every supported format
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatTOML}
}

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats() {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", goerr.Wrap(ErrUnknownFormat, "failed to parse report format", goerr.V("format", s))
}

// Document is the structured form of a report, used by the JSON and TOML formats
// and by the HTTP API
type Document struct {
	CollectionID  string       `json:"collection_id" toml:"collection_id"`
	CollectionURL string       `json:"collection_url" toml:"collection_url"`
	ItemCount     int          `json:"item_count" toml:"item_count"`
	TotalBytes    int64        `json:"total_bytes" toml:"total_bytes"`
	Total         string       `json:"total" toml:"total"`
	Items         []model.Item `json:"items" toml:"items"`
}

// NewDocument builds the structured report of a summary
func NewDocument(summary *model.Summary) *Document {
	items := summary.Items
	if items == nil {
		items = []model.Item{}
	}
	return &Document{
		CollectionID:  summary.CollectionID.String(),
		CollectionURL: summary.CollectionURL,
		ItemCount:     len(summary.Items),
		TotalBytes:    summary.Total(),
		Total:         units.FormatSize(summary.Total(), 2),
		Items:         items,
	}
}

// Renderer writes summaries in a given format
type Renderer struct {
	format Format
	color  bool
}

// Option is a functional option for Renderer
type Option func(*Renderer)

// WithColor highlights the total line of the text format
func WithColor(enabled bool) Option {
	return func(r *Renderer) {
		r.color = enabled
	}
}

// NewRenderer creates a Renderer for the format
func NewRenderer(format Format, opts ...Option) *Renderer {
	r := &Renderer{format: format}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render writes the summary to w
func (r *Renderer) Render(w io.Writer, summary *model.Summary) error {
	switch r.format {
	case FormatText:
		return r.renderText(w, summary)

	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(NewDocument(summary)); err != nil {
			return goerr.Wrap(err, "failed to encode JSON report")
		}
		return nil

	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(NewDocument(summary)); err != nil {
			return goerr.Wrap(err, "failed to encode TOML report")
		}
		return nil

	default:
		return goerr.Wrap(ErrUnknownFormat, "failed to render report", goerr.V("format", r.format))
	}
}

// renderText writes a header, the total, and a table of
// "index | size | title | url" rows
func (r *Renderer) renderText(w io.Writer, summary *model.Summary) error {
	total := color.New(color.FgGreen, color.Bold)
	if r.color {
		total.EnableColor()
	} else {
		total.DisableColor()
	}

	if _, err := fmt.Fprintf(w, "Steam Workshop collection: %s\n\n", summary.CollectionURL); err != nil {
		return goerr.Wrap(err, "failed to write report")
	}
	if _, err := total.Fprintf(w, "Total size: %s", units.FormatSize(summary.Total(), 2)); err != nil {
		return goerr.Wrap(err, "failed to write report")
	}
	if _, err := fmt.Fprintf(w, " (%d item(s))\n", len(summary.Items)); err != nil {
		return goerr.Wrap(err, "failed to write report")
	}

	if len(summary.Items) == 0 {
		return nil
	}

	sizes := make([]string, len(summary.Items))
	titles := make([]string, len(summary.Items))
	sizeWidth, titleWidth := 0, 0
	for i, item := range summary.Items {
		sizes[i] = units.FormatSize(item.Size, 0)
		sizeWidth = max(sizeWidth, len(sizes[i]))
		titles[i] = item.Title
		if titles[i] == "" {
			titles[i] = untitled
		}
		titleWidth = max(titleWidth, utf8.RuneCountInString(titles[i]))
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return goerr.Wrap(err, "failed to write report")
	}
	for i, item := range summary.Items {
		pad := strings.Repeat(" ", titleWidth-utf8.RuneCountInString(titles[i]))
		if _, err := fmt.Fprintf(w, "%03d | %*s | %s%s | %s\n", i, sizeWidth, sizes[i], titles[i], pad, item.URL); err != nil {
			return goerr.Wrap(err, "failed to write report")
		}
	}

	return nil
}
