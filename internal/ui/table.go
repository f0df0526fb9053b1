package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/juju-units/internal/juju"
	"github.com/rileyhilliard/juju-units/internal/units"
)

// TableColumn defines a table column with name and width.
type TableColumn struct {
	Title string
	Width int
}

// NewTable creates a new Bubbles table with default styling.
func NewTable(columns []TableColumn, rows []table.Row) table.Model {
	cols := make([]table.Column, len(columns))
	for i, c := range columns {
		cols[i] = table.Column{
			Title: c.Title,
			Width: c.Width,
		}
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)+2), // header row plus its border
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		BorderBottom(true).
		Bold(true).
		Foreground(ColorPrimary)
	s.Cell = s.Cell.
		Foreground(ColorPrimary)
	// Nothing is focused, so the first row must not look highlighted
	s.Selected = s.Cell

	t.SetStyles(s)
	return t
}

// RenderSimpleTable renders a non-interactive table string. Column widths
// grow to fit their widest cell so nothing is truncated.
func RenderSimpleTable(columns []TableColumn, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	cols := make([]TableColumn, len(columns))
	copy(cols, columns)
	tableRows := make([]table.Row, len(rows))
	for i, row := range rows {
		for j, cell := range row {
			if j < len(cols) {
				cols[j].Width = max(cols[j].Width, lipgloss.Width(cell), lipgloss.Width(cols[j].Title))
			}
		}
		tableRows[i] = table.Row(row)
	}

	t := NewTable(cols, tableRows)
	return strings.TrimRight(t.View(), " \n") + "\n"
}

// RenderUnitsTable renders unit records as a table. Subordinates are
// indented under their parent.
func RenderUnitsTable(records []units.Record) string {
	if len(records) == 0 {
		return "No units found"
	}

	columns := []TableColumn{
		{Title: "UNIT"},
		{Title: "ADDRESS"},
		{Title: "STATE"},
		{Title: "PORTS"},
	}

	rows := make([][]string, len(records))
	for i, r := range records {
		name := r.Name
		if r.Subordinate {
			name = strings.Repeat(" ", units.SubordinateIndent) + name
		}
		rows[i] = []string{name, r.PublicAddress, r.AgentState, strings.Join(r.OpenPorts, ", ")}
	}

	return RenderSimpleTable(columns, rows)
}

// RenderSettingsTable renders a service's charm settings.
func RenderSettingsTable(cfg *juju.ServiceConfig) string {
	if cfg == nil || len(cfg.Settings) == 0 {
		return "No settings"
	}

	columns := []TableColumn{
		{Title: "SETTING"},
		{Title: "TYPE"},
		{Title: "VALUE"},
		{Title: "DEFAULT"},
	}

	rows := make([][]string, len(cfg.Settings))
	for i, s := range cfg.Settings {
		def := ""
		if s.Default {
			def = "yes"
		}
		rows[i] = []string{s.Name, s.Type, s.ValueString(), def}
	}

	return RenderSimpleTable(columns, rows)
}

// padRight pads a string to the specified width.
func padRight(s string, width int) string {
	// Account for ANSI codes when calculating visible length
	visibleLen := lipgloss.Width(s)
	if visibleLen >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visibleLen)
}
