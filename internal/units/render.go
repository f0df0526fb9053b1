package units

import (
	"fmt"
	"strings"
)

// SubordinateIndent is the indent used for subordinate lines.
const SubordinateIndent = 2

// StateStyler decorates the padded agent state, e.g. with colour.
type StateStyler func(state, padded string) string

// Render formats one record as a single line without a trailing newline:
//
//	<indent>- <name>: <address> (<state>) <ports>
//
// The name column is padded to w.Name+3-indent so that indented subordinate
// lines keep the address column aligned with their parents. Quiet mode drops
// the indent and the leading dash.
func Render(r Record, indent int, quiet bool, w Widths) string {
	return RenderStyled(r, indent, quiet, w, nil)
}

// RenderStyled is Render with the state field passed through style after
// padding, so escape sequences never count towards the width.
func RenderStyled(r Record, indent int, quiet bool, w Widths, style StateStyler) string {
	prefix := "- "
	if quiet {
		indent = 0
		prefix = ""
	}

	state := fmt.Sprintf("%*s", w.State, r.AgentState)
	if style != nil {
		state = style(r.AgentState, state)
	}

	return fmt.Sprintf("%s%s%-*s %-*s (%s) %s",
		strings.Repeat(" ", max(indent, 0)),
		prefix,
		w.Name+3-indent, r.Name+":",
		w.Address, r.PublicAddress,
		state,
		strings.Join(r.OpenPorts, ", "),
	)
}

// IndentFor returns the indent Render expects for a record.
func IndentFor(r Record) int {
	if r.Subordinate {
		return SubordinateIndent
	}
	return 0
}
