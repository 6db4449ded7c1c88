// Package table renders bordered text tables whose cells may span several lines.
package table

import (
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/m-mizutani/goerr/v2"
)

// Table is a titled table with fixed columns
type Table struct {
	title   string
	columns []string
	rows    [][]string
}

type config struct {
	color bool
}

// Option is a functional option for Render
type Option func(*config)

// WithColor enables bold headers, cyan cells and an italic title
func WithColor(enabled bool) Option {
	return func(c *config) {
		c.color = enabled
	}
}

// New creates an empty table
func New(title string, columns ...string) *Table {
	return &Table{
		title:   title,
		columns: columns,
	}
}

// AddRow appends a row. Missing cells are left blank.
func (t *Table) AddRow(cells ...string) error {
	if len(cells) > len(t.columns) {
		return goerr.New("too many cells for table",
			goerr.V("title", t.title),
			goerr.V("columns", len(t.columns)),
			goerr.V("cells", len(cells)),
		)
	}

	row := make([]string, len(t.columns))
	copy(row, cells)
	t.rows = append(t.rows, row)
	return nil
}

// Len returns the number of data rows
func (t *Table) Len() int {
	return len(t.rows)
}

// Render writes the table to w. The title is centered above the box.
func (t *Table) Render(w io.Writer, opts ...Option) error {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	tw := table.NewWriter()
	tw.SetStyle(newStyle(cfg.color))
	tw.AppendHeader(toRow(t.columns))
	for _, row := range t.rows {
		tw.AppendRow(toRow(row))
	}

	body := tw.Render()

	var sb strings.Builder
	if t.title != "" {
		width := text.StringWidthWithoutEscSequences(strings.SplitN(body, "\n", 2)[0])
		pad := 0
		if n := text.StringWidthWithoutEscSequences(t.title); n < width {
			pad = (width - n) / 2
		}

		title := t.title
		if cfg.color {
			title = text.Colors{text.Italic}.Sprint(title)
		}
		sb.WriteString(strings.Repeat(" ", pad))
		sb.WriteString(title)
		sb.WriteString("\n")
	}
	sb.WriteString(body)
	sb.WriteString("\n")

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return goerr.Wrap(err, "failed to write table", goerr.V("title", t.title))
	}
	return nil
}

// newStyle is the ASCII box style with headers kept as given
func newStyle(color bool) table.Style {
	style := table.StyleDefault
	style.Format.Header = text.FormatDefault
	style.Format.Footer = text.FormatDefault

	if color {
		style.Color.Header = text.Colors{text.Bold}
		style.Color.Row = text.Colors{text.FgCyan}
	}

	return style
}

func toRow(cells []string) table.Row {
	row := make(table.Row, len(cells))
	for i, cell := range cells {
		row[i] = cell
	}
	return row
}
