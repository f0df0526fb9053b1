// Package juju wraps the juju command-line client: it runs `juju status` and
// `juju get`, and decodes their YAML output into ordered Go values.
package juju

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/rileyhilliard/juju-units/internal/errors"
	"github.com/rileyhilliard/juju-units/internal/exec"
	"github.com/rileyhilliard/juju-units/internal/logger"
)

// DefaultBinary is the juju client looked up on PATH.
const DefaultBinary = "juju"

// ClientConfig configures a Client.
type ClientConfig struct {
	// Binary is the juju executable. Empty means DefaultBinary.
	Binary string

	// Timeout bounds each invocation. Zero disables the timeout.
	Timeout time.Duration

	// Runner executes the binary. Nil means a LocalRunner.
	Runner exec.Runner

	// Host names the remote machine when Runner runs over SSH. It only
	// shapes error messages.
	Host string

	Logger logger.Logger
}

// Client runs juju commands.
type Client struct {
	binary  string
	timeout time.Duration
	runner  exec.Runner
	host    string
	log     logger.Logger
}

// NewClient creates a juju client.
func NewClient(cfg ClientConfig) *Client {
	c := &Client{
		binary:  cfg.Binary,
		timeout: cfg.Timeout,
		runner:  cfg.Runner,
		host:    cfg.Host,
		log:     cfg.Logger,
	}
	if c.binary == "" {
		c.binary = DefaultBinary
	}
	if c.runner == nil {
		c.runner = exec.NewLocalRunner()
	}
	if c.log == nil {
		c.log = logger.Noop()
	}
	return c
}

// StatusArgs builds the argv (minus the binary) for a status call.
func StatusArgs(environment string) []string {
	return withEnvironment([]string{"status", "--format", "yaml"}, environment)
}

// GetArgs builds the argv (minus the binary) for a settings call.
func GetArgs(service, environment string) []string {
	return withEnvironment([]string{"get", "--format", "yaml", service}, environment)
}

func withEnvironment(args []string, environment string) []string {
	if environment == "" {
		return args
	}
	return append(args, "-e", environment)
}

// Status runs `juju status` and decodes the result. An empty environment
// uses juju's current default.
func (c *Client) Status(ctx context.Context, environment string) (*StatusTree, error) {
	args := StatusArgs(environment)
	out, err := c.run(ctx, args)
	if err != nil {
		return nil, err
	}

	tree, err := DecodeStatus(out)
	if err != nil {
		return nil, errors.ExternalTool(err, c.commandLine(args),
			"juju printed status we couldn't read. Run the command yourself to see what came back.")
	}

	c.log.Debug("status: %d services, %d units", len(tree.Services), tree.UnitCount())
	return tree, nil
}

// Get runs `juju get <service>` and decodes the service's settings.
func (c *Client) Get(ctx context.Context, service, environment string) (*ServiceConfig, error) {
	if strings.TrimSpace(service) == "" {
		return nil, errors.New(errors.ErrConfig,
			"No service given",
			"Name the service whose settings you want: juju-units get <service>")
	}

	args := GetArgs(service, environment)
	out, err := c.run(ctx, args)
	if err != nil {
		return nil, err
	}

	cfg, err := DecodeServiceConfig(out)
	if err != nil {
		return nil, errors.ExternalTool(err, c.commandLine(args),
			"juju printed settings we couldn't read. Run the command yourself to see what came back.")
	}
	if cfg.Service == "" {
		cfg.Service = service
	}

	c.log.Debug("get %s: %d settings", service, len(cfg.Settings))
	return cfg, nil
}

func (c *Client) run(ctx context.Context, args []string) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	cmdLine := c.commandLine(args)
	c.log.Debug("running %s", cmdLine)

	start := time.Now()
	stdout, stderr, exitCode, err := c.runner.Run(ctx, c.binary, args...)
	c.log.Debug("%s finished in %s (exit %d)", cmdLine, time.Since(start).Round(time.Millisecond), exitCode)

	if err != nil {
		return nil, asExternal(err, cmdLine)
	}

	if exitCode != 0 {
		if c.host != "" {
			if nfErr := exec.HandleNotFound(c.binary, c.host, string(stderr), exitCode); nfErr != nil {
				if explainer, ok := c.runner.(exec.NotFoundExplainer); ok {
					if suggestion := explainer.ExplainNotFound(c.binary); suggestion != "" {
						nfErr.Suggestion = suggestion
					}
				}
				return nil, nfErr
			}
		}

		cause := fmt.Errorf("exit status %d", exitCode)
		if msg := strings.TrimSpace(string(stderr)); msg != "" {
			cause = fmt.Errorf("exit status %d: %s", exitCode, msg)
		}
		return nil, errors.ExternalTool(cause, cmdLine,
			"Check the environment exists and that juju can reach it: juju status")
	}

	return stdout, nil
}

func (c *Client) commandLine(args []string) string {
	return strings.Join(append([]string{c.binary}, args...), " ")
}

// asExternal re-labels a runner failure as an external tool error, keeping
// the runner's own explanation when it has one.
func asExternal(err error, cmdLine string) error {
	var structured *errors.Error
	if stderrors.As(err, &structured) {
		return &errors.Error{
			Code:       errors.ErrExternal,
			Message:    structured.Message,
			Suggestion: structured.Suggestion,
			Cause:      structured.Cause,
		}
	}
	return errors.ExternalTool(err, cmdLine, "Make sure juju is installed and on your PATH, or point --juju at it.")
}
