package ui

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/juju-units/internal/units"
)

// RenderStateSummary renders a one-line tally such as
// "3 units: 2 started, 1 error", with each state in its colour.
func RenderStateSummary(records []units.Record) string {
	counts := units.CountByState(records)
	noun := "units"
	if len(records) == 1 {
		noun = "unit"
	}

	parts := make([]string, 0, len(counts))
	for _, state := range units.SortedStates(counts) {
		parts = append(parts, StateStyle(state).Render(fmt.Sprintf("%d %s", counts[state], state)))
	}

	head := MutedStyle().Render(fmt.Sprintf("%d %s", len(records), noun))
	if len(parts) == 0 {
		return head
	}
	return head + MutedStyle().Render(": ") + strings.Join(parts, MutedStyle().Render(", "))
}

// RenderSettings renders settings as aligned "name: value" lines, with
// defaulted values muted.
func RenderSettings(settings []SettingLine) string {
	width := 0
	for _, s := range settings {
		width = max(width, len(s.Name)+1)
	}

	var b strings.Builder
	for _, s := range settings {
		value := s.Value
		if s.Default {
			value = MutedStyle().Render(value + " (default)")
		}
		b.WriteString(padRight(s.Name+":", width))
		b.WriteString(" ")
		b.WriteString(value)
		b.WriteString("\n")
	}
	return b.String()
}

// SettingLine is one row of RenderSettings.
type SettingLine struct {
	Name    string
	Value   string
	Default bool
}
