package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rileyhilliard/juju-units/internal/config"
	"github.com/rileyhilliard/juju-units/internal/errors"
)

// GlobalFlags are shared by the root command and its subcommands.
type GlobalFlags struct {
	Environment string
	Juju        string
	Host        string
	Timeout     string
	Output      string
	ConfigPath  string
	NoColor     bool
	Verbose     bool
}

// ListFlags only apply to the unit listing.
type ListFlags struct {
	Align        bool
	Quiet        bool
	Subordinates bool
	Description  bool
	Sort         bool
	Services     []string
	States       []string
}

// AddGlobalFlags registers the persistent flags on the root command.
func AddGlobalFlags(cmd *cobra.Command, flags *GlobalFlags) {
	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.Environment, "environment", "e", "", "juju environment to query")
	pf.StringVar(&flags.Juju, "juju", "", "juju client binary (default \"juju\")")
	pf.StringVar(&flags.Host, "host", "", "run juju on this host over SSH")
	pf.StringVar(&flags.Timeout, "timeout", "", "give up on juju after this long, 0 to wait forever (default 60s)")
	pf.StringVarP(&flags.Output, "output", "o", "", "output format: text, table, json, yaml (default text)")
	pf.StringVar(&flags.ConfigPath, "config", "", "config file (default ./.juju-units.yaml or ~/.config/juju-units/config.yaml)")
	pf.BoolVar(&flags.NoColor, "no-color", false, "disable colored output")
	pf.BoolVarP(&flags.Verbose, "verbose", "v", false, "log what juju-units is doing to stderr")
}

// AddListFlags registers the listing flags on the root command.
func AddListFlags(cmd *cobra.Command, flags *ListFlags) {
	f := cmd.Flags()
	f.BoolVarP(&flags.Align, "align", "a", false, "align columns")
	f.BoolVarP(&flags.Quiet, "quiet", "q", false, "drop the leading dash and indentation")
	f.BoolVarP(&flags.Subordinates, "subordinates", "s", false, "include subordinate units")
	f.BoolVarP(&flags.Description, "description", "d", false, "output a short description of the plugin")
	f.BoolVar(&flags.Sort, "sort", false, "sort services and units by name")
	f.StringSliceVar(&flags.Services, "service", nil, "only show units of this service (repeatable)")
	f.StringSliceVar(&flags.States, "state", nil, "only show units in this agent state (repeatable)")
}

// ParseTimeout parses a timeout string into a duration.
// Returns zero duration if the flag is empty. "0" is valid and disables
// the timeout.
func ParseTimeout(flag string) (time.Duration, error) {
	if flag == "" {
		return 0, nil
	}

	duration, err := time.ParseDuration(flag)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' doesn't look like a valid timeout", flag),
			"Try something like 30s, 2m, or 0 to wait forever.")
	}
	if duration < 0 {
		return 0, errors.New(errors.ErrConfig,
			fmt.Sprintf("Timeout '%s' is negative", flag),
			"Use a positive duration, or 0 to wait forever.")
	}
	return duration, nil
}

// ApplyFlags overlays flags that were set explicitly onto cfg.
func ApplyFlags(fs *pflag.FlagSet, g *GlobalFlags, l *ListFlags, cfg *config.Config) error {
	if fs.Changed("environment") {
		cfg.Environment = g.Environment
	}
	if fs.Changed("juju") {
		cfg.Juju = g.Juju
	}
	if fs.Changed("host") {
		cfg.Host = g.Host
	}
	if fs.Changed("timeout") {
		d, err := ParseTimeout(g.Timeout)
		if err != nil {
			return err
		}
		cfg.Timeout = d
	}
	if fs.Changed("output") {
		cfg.Output = g.Output
	}
	if fs.Changed("no-color") {
		cfg.NoColor = g.NoColor
	}

	if l == nil {
		return nil
	}
	if fs.Changed("align") {
		cfg.Align = l.Align
	}
	if fs.Changed("quiet") {
		cfg.Quiet = l.Quiet
	}
	if fs.Changed("subordinates") {
		cfg.Subordinates = l.Subordinates
	}
	return nil
}
