package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/juju-units/internal/config"
	"github.com/rileyhilliard/juju-units/internal/doctor"
	"github.com/rileyhilliard/juju-units/internal/errors"
	"github.com/rileyhilliard/juju-units/internal/exec"
	"github.com/rileyhilliard/juju-units/internal/ui"
)

// DoctorOutput is the -o json / -o yaml shape of `doctor`.
type DoctorOutput struct {
	Categories []CategoryOutput `json:"categories" yaml:"categories"`
	Summary    SummaryOutput    `json:"summary" yaml:"summary"`
}

// CategoryOutput represents a category of check results.
type CategoryOutput struct {
	Name    string               `json:"name" yaml:"name"`
	Results []doctor.CheckResult `json:"results" yaml:"results"`
}

// SummaryOutput summarizes the check results.
type SummaryOutput struct {
	Pass     int  `json:"pass" yaml:"pass"`
	Warn     int  `json:"warn" yaml:"warn"`
	Fail     int  `json:"fail" yaml:"fail"`
	AllClear bool `json:"all_clear" yaml:"all_clear"`
}

func newDoctorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check config, SSH and the juju client are working",
		Long: `Run diagnostics for everything a listing depends on: the config file,
SSH setup when --host is set, the juju binary, and a parse of 'juju status'.

Exits 1 when any check fails.

Examples:
  juju units doctor
  juju units doctor --host jumpbox -e prod
  juju units doctor -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !ui.ShouldColor(cmd.OutOrStdout(), a.global.NoColor) {
				ui.DisableColors()
			}

			results := a.runDoctor(cmd)
			if err := a.writeDoctor(cmd.OutOrStdout(), results); err != nil {
				return err
			}
			if doctor.HasFailures(results) {
				return errors.NewExitError(1)
			}
			return nil
		},
	}
}

// runDoctor runs the checks in dependency order. Later checks are reported
// as skipped when what they need is broken.
func (a *app) runDoctor(cmd *cobra.Command) []doctor.CheckResult {
	ctx := cmd.Context()
	binaryCheck := &doctor.JujuBinaryCheck{}
	statusCheck := &doctor.JujuStatusCheck{}

	results := doctor.RunAll(ctx, doctor.NewConfigChecks(a.global.ConfigPath))
	if doctor.HasFailures(results) {
		return append(results,
			doctor.Skipped(binaryCheck, "config is broken"),
			doctor.Skipped(statusCheck, "config is broken"))
	}

	if err := a.load(cmd, nil); err != nil {
		return append(results,
			doctor.Failed("flags", doctor.CategoryConfig, err),
			doctor.Skipped(binaryCheck, "flags are invalid"),
			doctor.Skipped(statusCheck, "flags are invalid"))
	}

	var runner exec.Runner
	done := func() {}
	defer func() { done() }()

	connect := func(context.Context) error {
		r, release, err := newRunner(a.cfg, a.log)
		if err != nil {
			return err
		}
		runner, done = r, release
		return nil
	}

	if a.cfg.Host != "" {
		results = append(results, doctor.RunAll(ctx, doctor.NewSSHChecks())...)
		results = append(results, doctor.RunAll(ctx, []doctor.Check{
			&doctor.SSHConnectCheck{Host: a.cfg.Host, Connect: connect},
		})...)
	} else if err := connect(ctx); err != nil {
		results = append(results, doctor.Failed("runner", doctor.CategoryJuju, err))
	}

	if runner == nil {
		return append(results,
			doctor.Skipped(binaryCheck, "no connection"),
			doctor.Skipped(statusCheck, "no connection"))
	}

	binaryCheck.Runner = runner
	binaryCheck.Binary = a.cfg.Juju
	binaryCheck.Host = a.cfg.Host
	results = append(results, doctor.RunAll(ctx, []doctor.Check{binaryCheck})...)
	if doctor.HasFailures(results[len(results)-1:]) {
		return append(results, doctor.Skipped(statusCheck, "juju isn't runnable"))
	}

	statusCheck.Client = a.newClient(runner)
	statusCheck.Environment = a.cfg.Environment
	return append(results, doctor.RunAll(ctx, []doctor.Check{statusCheck})...)
}

func (a *app) writeDoctor(out io.Writer, results []doctor.CheckResult) error {
	payload := buildDoctorOutput(results)

	switch a.outputFormat() {
	case config.OutputJSON:
		return WriteJSONSuccess(out, payload)
	case config.OutputYAML:
		return writeYAML(out, payload)
	case config.OutputTable:
		return writeBlock(out, renderDoctorTable(results))
	}
	return writeDoctorText(out, payload, doctor.Summary(results))
}

func buildDoctorOutput(results []doctor.CheckResult) DoctorOutput {
	grouped := doctor.GroupByCategory(results)
	output := DoctorOutput{Categories: []CategoryOutput{}}
	for _, cat := range doctor.CategoryOrder {
		if rs, ok := grouped[cat]; ok {
			output.Categories = append(output.Categories, CategoryOutput{Name: cat, Results: rs})
		}
	}

	counts := doctor.CountByStatus(results)
	output.Summary = SummaryOutput{
		Pass:     counts[doctor.StatusPass],
		Warn:     counts[doctor.StatusWarn],
		Fail:     counts[doctor.StatusFail],
		AllClear: !doctor.HasIssues(results),
	}
	return output
}

func writeDoctorText(out io.Writer, output DoctorOutput, summary string) error {
	headerStyle := lipgloss.NewStyle().Bold(true)

	var b strings.Builder
	b.WriteString(ui.InfoStyle().Bold(true).Render("juju-units diagnostic report"))
	b.WriteString("\n\n")

	for _, cat := range output.Categories {
		b.WriteString(headerStyle.Render(cat.Name))
		b.WriteString("\n")
		for _, r := range cat.Results {
			renderCheckResult(&b, r)
		}
		b.WriteString("\n")
	}

	b.WriteString(strings.Repeat("━", 60))
	b.WriteString("\n\n")

	symbol := ui.SuccessStyle().Render(ui.SymbolSuccess)
	switch {
	case output.Summary.Fail > 0:
		symbol = ui.ErrorStyle().Render(ui.SymbolFail)
	case !output.Summary.AllClear:
		symbol = ui.WarningStyle().Render(ui.SymbolWarning)
	}
	fmt.Fprintf(&b, "%s %s\n", symbol, summary)

	_, err := io.WriteString(out, b.String())
	return err
}

func renderCheckResult(b *strings.Builder, result doctor.CheckResult) {
	var symbol string
	var style lipgloss.Style

	switch {
	case result.Skipped:
		symbol, style = ui.SymbolPending, ui.MutedStyle()
	case result.Status == doctor.StatusPass:
		symbol, style = ui.SymbolSuccess, ui.SuccessStyle()
	case result.Status == doctor.StatusWarn:
		symbol, style = ui.SymbolWarning, ui.WarningStyle()
	default:
		symbol, style = ui.SymbolFail, ui.ErrorStyle()
	}

	fmt.Fprintf(b, "  %s %s\n", style.Render(symbol), result.Message)

	if result.Suggestion != "" && result.Status != doctor.StatusPass {
		for _, line := range strings.Split(result.Suggestion, "\n") {
			fmt.Fprintf(b, "    %s\n", ui.MutedStyle().Render(line))
		}
	}
}

func renderDoctorTable(results []doctor.CheckResult) string {
	columns := []ui.TableColumn{
		{Title: "CATEGORY"},
		{Title: "CHECK"},
		{Title: "STATUS"},
		{Title: "MESSAGE"},
	}
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{r.Category, r.Name, r.Status.String(), r.Message})
	}
	return ui.RenderSimpleTable(columns, rows)
}
