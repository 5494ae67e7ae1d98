// package formatter renders table dumps for the terminal and exports them to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/desertthunder/chinook/internal/models"
	"github.com/desertthunder/chinook/internal/shared"
)

// Supported export formats.
const (
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatText     = "text"
)

// DefaultCellWidth caps cell width in terminal tables so one long value
// cannot push the rest of the row off screen.
const DefaultCellWidth = 40

var extensions = map[string]string{
	FormatCSV:      "csv",
	FormatMarkdown: "md",
	FormatText:     "txt",
}

var (
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// Formats lists the supported export formats in display order.
func Formats() []string {
	return []string{FormatCSV, FormatMarkdown, FormatText}
}

// Truncate shortens value to max runes, marking the cut with an ellipsis.
func Truncate(value string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(value)
	if len(runes) <= max {
		return value
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

// RenderTable renders a table dump as a bordered terminal table. Cells are
// truncated to maxCellWidth runes, or [DefaultCellWidth] when it is zero.
func RenderTable(dump *models.TableDump, maxCellWidth int) string {
	if maxCellWidth <= 0 {
		maxCellWidth = DefaultCellWidth
	}

	rows := make([][]string, 0, len(dump.Rows))
	for _, row := range dump.Rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = Truncate(cell, maxCellWidth)
		}
		rows = append(rows, cells)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(dump.Columns...).
		Rows(rows...)

	return t.Render()
}

// RenderCounts renders per-table row counts as a two column terminal table
// with a trailing total row.
func RenderCounts(counts []models.TableCount) string {
	rows := make([][]string, 0, len(counts)+1)
	total := 0
	for _, count := range counts {
		rows = append(rows, []string{count.Table, strconv.Itoa(count.Count)})
		total += count.Count
	}
	rows = append(rows, []string{"total", strconv.Itoa(total)})

	dump := &models.TableDump{Columns: []string{"Table", "Rows"}, Rows: rows}
	return RenderTable(dump, 0)
}

// ExportToCSV converts a table dump to CSV with the column names as the header row
func ExportToCSV(dump *models.TableDump) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(dump.Columns); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, row := range dump.Rows {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a table dump to a Markdown pipe table. Pipe
// characters inside cells are escaped so values cannot break the layout.
func ExportToMarkdown(dump *models.TableDump) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", dump.Table))
	buf.WriteString(fmt.Sprintf("**Rows**: %d\n\n", len(dump.Rows)))

	buf.WriteString("| " + strings.Join(escapeCells(dump.Columns), " | ") + " |\n")

	rule := make([]string, len(dump.Columns))
	for i := range rule {
		rule[i] = "---"
	}
	buf.WriteString("| " + strings.Join(rule, " | ") + " |\n")

	for _, row := range dump.Rows {
		buf.WriteString("| " + strings.Join(escapeCells(row), " | ") + " |\n")
	}

	return buf.Bytes(), nil
}

// ExportToText converts a table dump to plain text with aligned columns
func ExportToText(dump *models.TableDump) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Table: %s\n", dump.Table))
	buf.WriteString(fmt.Sprintf("Rows: %d\n\n", len(dump.Rows)))

	widths := columnWidths(dump)
	writeTextRow(&buf, dump.Columns, widths)

	rule := make([]string, len(widths))
	for i, width := range widths {
		rule[i] = strings.Repeat("-", width)
	}
	writeTextRow(&buf, rule, widths)

	for _, row := range dump.Rows {
		writeTextRow(&buf, row, widths)
	}

	return buf.Bytes(), nil
}

// WriteExport renders dump in the given format and writes it to path.
//
// Defaults to {table}_export.{ext} as the filename & returns the path written.
func WriteExport(dump *models.TableDump, format, path string) (string, error) {
	ext, ok := extensions[format]
	if !ok {
		return "", fmt.Errorf("%w: unsupported export format %q", shared.ErrInvalidArgument, format)
	}

	var (
		data []byte
		err  error
	)
	switch format {
	case FormatCSV:
		data, err = ExportToCSV(dump)
	case FormatMarkdown:
		data, err = ExportToMarkdown(dump)
	default:
		data, err = ExportToText(dump)
	}
	if err != nil {
		return "", fmt.Errorf("failed to generate %s export: %w", format, err)
	}

	if path == "" {
		path = fmt.Sprintf("%s_export.%s", dump.Table, ext)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}

func escapeCells(cells []string) []string {
	escaped := make([]string, len(cells))
	for i, cell := range cells {
		escaped[i] = strings.ReplaceAll(cell, "|", `\|`)
	}
	return escaped
}

func columnWidths(dump *models.TableDump) []int {
	widths := make([]int, len(dump.Columns))
	for i, col := range dump.Columns {
		widths[i] = utf8.RuneCountInString(col)
	}
	for _, row := range dump.Rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if n := utf8.RuneCountInString(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}
	return widths
}

func writeTextRow(buf *bytes.Buffer, cells []string, widths []int) {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		pad := 0
		if i < len(widths) {
			pad = widths[i] - utf8.RuneCountInString(cell)
		}
		parts[i] = cell + strings.Repeat(" ", pad)
	}
	buf.WriteString(strings.TrimRight(strings.Join(parts, "  "), " ") + "\n")
}
