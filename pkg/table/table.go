package table

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Style defines the visual styling for tables
type Style struct {
	Header    lipgloss.Style
	Cell      lipgloss.Style
	Separator string
}

// PlainStyle returns a plain table style with no colors
func PlainStyle() Style {
	return Style{
		Header: lipgloss.NewStyle().
			Bold(true).
			PaddingLeft(1).
			PaddingRight(1),
		Cell: lipgloss.NewStyle().
			PaddingLeft(1).
			PaddingRight(1),
		Separator: "|",
	}
}

// ColorStyle returns a table style with a highlighted header
func ColorStyle() Style {
	s := PlainStyle()
	s.Header = s.Header.
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color("#7D56F4"))
	return s
}

// Table is a simple text table rendered with lipgloss
type Table struct {
	headers   []string
	rows      [][]string
	style     Style
	alignment []lipgloss.Position
}

// NewTable creates a new table; color selects ColorStyle over PlainStyle
func NewTable(color bool) *Table {
	t := &Table{style: PlainStyle()}
	if color {
		t.style = ColorStyle()
	}
	return t
}

// SetHeaders sets the table headers. Columns are left aligned until
// SetAlignment says otherwise.
func (t *Table) SetHeaders(headers ...string) {
	t.headers = headers
	t.alignment = make([]lipgloss.Position, len(headers))
	for i := range t.alignment {
		t.alignment[i] = lipgloss.Left
	}
}

// SetAlignment sets the alignment of column col
func (t *Table) SetAlignment(col int, align lipgloss.Position) {
	if col >= 0 && col < len(t.alignment) {
		t.alignment[col] = align
	}
}

// AppendRow adds a single row to the table
func (t *Table) AppendRow(row ...string) {
	t.rows = append(t.rows, row)
}

// Len returns the number of data rows
func (t *Table) Len() int { return len(t.rows) }

func (t *Table) columnWidths() []int {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	for i := range widths {
		widths[i] += 2 // padding
	}
	return widths
}

func (t *Table) renderRow(row []string, widths []int, style lipgloss.Style) string {
	cells := make([]string, len(widths))
	for i, width := range widths {
		var cell string
		if i < len(row) {
			cell = row[i]
		}
		cells[i] = style.Width(width).Align(t.alignment[i]).Render(cell)
	}
	return strings.Join(cells, t.style.Separator)
}

// Render generates the complete table as a string
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	widths := t.columnWidths()

	var out strings.Builder
	out.WriteString(t.renderRow(t.headers, widths, t.style.Header))
	out.WriteString("\n")

	separators := make([]string, len(widths))
	for i, width := range widths {
		separators[i] = strings.Repeat("-", width)
	}
	out.WriteString(strings.Join(separators, "+"))
	out.WriteString("\n")

	for _, row := range t.rows {
		out.WriteString(t.renderRow(row, widths, t.style.Cell))
		out.WriteString("\n")
	}

	return strings.TrimRight(out.String(), "\n")
}
