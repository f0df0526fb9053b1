// Package ui provides terminal styling for juju-units output.
//
// # Color Scheme
//
// Colors are defined as ANSI codes for broad terminal compatibility:
//
//	ColorSuccess   (green)  - healthy agent states (started, active, idle)
//	ColorError     (red)    - failed agent states (error, down, blocked)
//	ColorWarning   (yellow) - agent states still settling (pending, installing)
//	ColorMuted     (gray)   - secondary text
//
// Use DisableColors() to switch to monochrome output (for --no-color), and
// ShouldColor to decide automatically from the output stream.
//
// # Tables
//
// RenderUnitsTable and RenderSettingsTable build on the Bubbles table
// component, rendered once as a static string rather than run as a TUI.
package ui
