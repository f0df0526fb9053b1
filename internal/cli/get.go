package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/juju-units/internal/config"
	"github.com/rileyhilliard/juju-units/internal/juju"
	"github.com/rileyhilliard/juju-units/internal/ui"
)

// SettingsOutput is the -o json / -o yaml shape of `get`.
type SettingsOutput struct {
	Service  string          `json:"service" yaml:"service"`
	Charm    string          `json:"charm,omitempty" yaml:"charm,omitempty"`
	Settings []SettingOutput `json:"settings" yaml:"settings"`
}

// SettingOutput is one charm option.
type SettingOutput struct {
	Name        string      `json:"name" yaml:"name"`
	Type        string      `json:"type,omitempty" yaml:"type,omitempty"`
	Value       interface{} `json:"value" yaml:"value"`
	Default     bool        `json:"default" yaml:"default"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <service>",
		Short: "Show a service's charm settings",
		Long: `Run 'juju get' for a service and print its settings as aligned
name: value lines. Values still at the charm default are marked.

Examples:
  juju units get mysql
  juju units get mysql -e prod -o table`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd, nil); err != nil {
				return err
			}

			client, done, err := a.jujuClient()
			if err != nil {
				return err
			}
			defer done()

			settings, err := client.Get(cmd.Context(), args[0], a.cfg.Environment)
			if err != nil {
				return err
			}
			return a.writeSettings(cmd.OutOrStdout(), settings)
		},
	}
}

func (a *app) writeSettings(out io.Writer, cfg *juju.ServiceConfig) error {
	switch a.cfg.Output {
	case config.OutputJSON:
		return WriteJSONSuccess(out, toSettingsOutput(cfg))
	case config.OutputYAML:
		return writeYAML(out, toSettingsOutput(cfg))
	case config.OutputTable:
		return writeBlock(out, ui.RenderSettingsTable(cfg))
	}

	if len(cfg.Settings) == 0 {
		_, err := fmt.Fprintf(out, "%s has no settings\n", cfg.Service)
		return err
	}

	lines := make([]ui.SettingLine, len(cfg.Settings))
	for i, s := range cfg.Settings {
		lines[i] = ui.SettingLine{Name: s.Name, Value: s.ValueString(), Default: s.Default}
	}
	_, err := io.WriteString(out, ui.RenderSettings(lines))
	return err
}

func toSettingsOutput(cfg *juju.ServiceConfig) SettingsOutput {
	out := SettingsOutput{
		Service:  cfg.Service,
		Charm:    cfg.Charm,
		Settings: make([]SettingOutput, len(cfg.Settings)),
	}
	for i, s := range cfg.Settings {
		out.Settings[i] = SettingOutput{
			Name:        s.Name,
			Type:        s.Type,
			Value:       s.Value,
			Default:     s.Default,
			Description: s.Description,
		}
	}
	return out
}
