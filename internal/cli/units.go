package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rileyhilliard/juju-units/internal/config"
	"github.com/rileyhilliard/juju-units/internal/juju"
	"github.com/rileyhilliard/juju-units/internal/ui"
	"github.com/rileyhilliard/juju-units/internal/units"
	"github.com/rileyhilliard/juju-units/internal/util"
)

// UnitsOutput is the -o json / -o yaml shape of the unit listing.
type UnitsOutput struct {
	Environment string         `json:"environment,omitempty" yaml:"environment,omitempty"`
	Count       int            `json:"count" yaml:"count"`
	Units       []units.Record `json:"units" yaml:"units"`
}

func (a *app) listUnits(ctx context.Context, out io.Writer) error {
	client, done, err := a.jujuClient()
	if err != nil {
		return err
	}
	defer done()

	tree, err := client.Status(ctx, a.cfg.Environment)
	if err != nil {
		return err
	}
	if a.list.Sort {
		tree = tree.Sorted()
	}
	a.warnUnknownServices(tree)

	records := units.Collect(tree, a.cfg.Subordinates)
	a.warnUnknownStates(records)
	filter := units.Filter{Services: a.list.Services, States: a.list.States}
	if !filter.IsZero() {
		before := len(records)
		records = filter.Apply(records)
		a.log.Debug("filter kept %d of %d units", len(records), before)
	}

	return a.writeUnits(out, records)
}

func (a *app) writeUnits(out io.Writer, records []units.Record) error {
	payload := UnitsOutput{
		Environment: a.cfg.Environment,
		Count:       len(records),
		Units:       records,
	}

	switch a.cfg.Output {
	case config.OutputJSON:
		return WriteJSONSuccess(out, payload)
	case config.OutputYAML:
		return writeYAML(out, payload)
	case config.OutputTable:
		return writeBlock(out, ui.RenderUnitsTable(records))
	}

	w := units.ComputeWidths(records, a.cfg.Align)
	var style units.StateStyler
	if a.color {
		style = ui.StyleState
	}
	for _, r := range records {
		if _, err := fmt.Fprintln(out, units.RenderStyled(r, units.IndentFor(r), a.cfg.Quiet, w, style)); err != nil {
			return err
		}
	}

	if a.global.Verbose {
		fmt.Fprintln(a.stderr, ui.RenderStateSummary(records))
	}
	return nil
}

// warnUnknownServices flags --service names the environment doesn't have.
func (a *app) warnUnknownServices(tree *juju.StatusTree) {
	known := tree.ServiceNames()
	for _, want := range a.list.Services {
		if containsFold(known, want) {
			continue
		}
		if similar := util.SuggestSimilar(want, known, 3); len(similar) > 0 {
			a.log.Warn("no service named %q, did you mean %s?", want, util.JoinOrNone(similar))
			continue
		}
		a.log.Warn("no service named %q", want)
	}
}

// warnUnknownStates flags --state values no collected unit is in.
func (a *app) warnUnknownStates(records []units.Record) {
	if len(a.list.States) == 0 {
		return
	}
	present := units.States(records)
	for _, want := range a.list.States {
		if containsFold(present, want) {
			continue
		}
		if similar := util.SuggestSimilar(want, present, 3); len(similar) > 0 {
			a.log.Warn("no unit is in state %q, did you mean %s?", want, util.JoinOrNone(similar))
			continue
		}
		a.log.Warn("no unit is in state %q (present: %s)", want, util.JoinOrNone(present))
	}
}

func containsFold(items []string, s string) bool {
	for _, item := range items {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}

func writeYAML(out io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// writeBlock writes s, making sure it ends in a newline.
func writeBlock(out io.Writer, s string) error {
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	_, err := io.WriteString(out, s)
	return err
}
