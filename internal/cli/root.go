package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/juju-units/internal/config"
	"github.com/rileyhilliard/juju-units/internal/errors"
	"github.com/rileyhilliard/juju-units/internal/exec"
	"github.com/rileyhilliard/juju-units/internal/juju"
	"github.com/rileyhilliard/juju-units/internal/logger"
	"github.com/rileyhilliard/juju-units/internal/ui"
	"github.com/rileyhilliard/juju-units/pkg/sshutil"
)

// Description is what --description prints; juju shows it in
// `juju help plugins`.
const Description = "List units with their public address, agent state and open ports"

// RunnerFactory builds the runner juju is executed through, plus a func
// that releases it.
type RunnerFactory func(cfg *config.Config, log logger.Logger) (exec.Runner, func(), error)

// newRunner is swapped out in tests.
var newRunner RunnerFactory = defaultRunner

// app carries flag values and resolved settings for one invocation.
type app struct {
	global GlobalFlags
	list   ListFlags

	cfg    *config.Config
	log    logger.Logger
	color  bool
	stderr io.Writer
}

// NewRootCmd returns a fresh root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	cmd, _ := newRootCmd()
	return cmd
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{log: logger.Noop(), stderr: os.Stderr}

	cmd := &cobra.Command{
		Use:   "juju-units",
		Short: Description,
		Long: `List every unit in a juju environment with its public address, agent
state and open ports, one line per unit.

Install the binary on $PATH and juju picks it up as a plugin: 'juju units'.

Examples:
  juju units
  juju units -a -s
  juju units -e prod --service mysql --state error
  juju units -o json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Answered before config or juju are touched
			if a.list.Description {
				fmt.Fprintln(cmd.OutOrStdout(), Description)
				return nil
			}

			if err := a.load(cmd, &a.list); err != nil {
				return err
			}
			return a.listUnits(cmd.Context(), cmd.OutOrStdout())
		},
	}

	AddGlobalFlags(cmd, &a.global)
	AddListFlags(cmd, &a.list)

	cmd.AddCommand(newGetCmd(a))
	cmd.AddCommand(newDoctorCmd(a))
	cmd.AddCommand(newVersionCmd())

	return cmd, a
}

// Run executes the CLI with args and returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd, a := newRootCmd()
	a.stderr = stderr
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	if code, ok := errors.GetExitCode(err); ok {
		return code
	}

	a.report(stdout, err)
	return 1
}

// Execute runs the CLI against the process's arguments and exits.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// load resolves config, applies explicit flags and sets up logging and
// colour. list is nil for commands without the listing flags.
func (a *app) load(cmd *cobra.Command, list *ListFlags) error {
	cfg, path, err := config.LoadOrDefault(a.global.ConfigPath)
	if err != nil {
		return err
	}
	if err := ApplyFlags(cmd.Flags(), &a.global, list, cfg); err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	a.cfg = cfg

	debug := a.global.Verbose || os.Getenv(logger.DebugEnv) != ""
	a.log = logger.New(cmd.ErrOrStderr(), "juju-units", debug)
	if path != "" {
		a.log.Debug("using config %s", path)
	}

	a.color = ui.ShouldColor(cmd.OutOrStdout(), cfg.NoColor)
	if !a.color {
		ui.DisableColors()
	}
	return nil
}

// outputFormat is the resolved format, or the raw flag when config never
// loaded.
func (a *app) outputFormat() string {
	if a.cfg != nil {
		return a.cfg.Output
	}
	return a.global.Output
}

// report prints err the way the chosen output format expects.
func (a *app) report(stdout io.Writer, err error) {
	if a.outputFormat() == config.OutputJSON {
		_ = WriteJSONFromError(stdout, err)
		return
	}

	var structured *errors.Error
	if stderrors.As(err, &structured) {
		fmt.Fprint(a.stderr, err.Error())
		return
	}
	fmt.Fprintf(a.stderr, "%s %s\n", ui.SymbolFail, err)
}

func (a *app) jujuClient() (*juju.Client, func(), error) {
	runner, done, err := newRunner(a.cfg, a.log)
	if err != nil {
		return nil, nil, err
	}

	return a.newClient(runner), done, nil
}

func (a *app) newClient(runner exec.Runner) *juju.Client {
	return juju.NewClient(juju.ClientConfig{
		Binary:  a.cfg.Juju,
		Timeout: a.cfg.Timeout,
		Runner:  runner,
		Host:    a.cfg.Host,
		Logger:  a.log,
	})
}

// defaultRunner runs juju locally, or over SSH when a host is configured.
func defaultRunner(cfg *config.Config, log logger.Logger) (exec.Runner, func(), error) {
	if cfg.Host == "" {
		return exec.NewLocalRunner(), func() {}, nil
	}

	opts := sshutil.DefaultDialOptions()
	opts.StrictHostKeyChecking = cfg.StrictHostKeyChecking
	opts.Warn = log.Warn

	log.Debug("connecting to %s", cfg.Host)
	client, err := sshutil.Dial(cfg.Host, opts)
	if err != nil {
		return nil, nil, err
	}
	log.Debug("connected to %s (%s)", client.GetHost(), client.GetAddress())

	return exec.NewSSHRunner(client), func() { _ = client.Close() }, nil
}
